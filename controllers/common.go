package controllers

import (
	"errors"
	"net/http"

	"github.com/cmarkstaller/fit-buddy/apperrors"
	"github.com/cmarkstaller/fit-buddy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// respondError maps the error taxonomy onto status codes. Unknown errors are
// logged and surfaced generically so store details never leak to clients.
func respondError(c *gin.Context, err error) {
	var (
		validation *apperrors.ValidationError
		notFound   *apperrors.NotFoundError
		invalidOp  *apperrors.InvalidOperationError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Msg})
	case errors.As(err, &invalidOp):
		c.JSON(http.StatusConflict, gin.H{"error": invalidOp.Msg})
	default:
		utils.Logger.Error("request_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}
