package controllers

import (
	"net/http"

	"github.com/cmarkstaller/fit-buddy/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Svc     *services.StatsService
	Friends *services.FriendService
}

func NewStatsController(svc *services.StatsService, friends *services.FriendService) *StatsController {
	return &StatsController{Svc: svc, Friends: friends}
}

// GetSummary returns latest weight, per-window deltas, goal progress and BMI.
func (h *StatsController) GetSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	out, err := h.Svc.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetSeries returns the caller's own chart points for ?window=.
func (h *StatsController) GetSeries(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	w, err := services.ParseWindow(c.DefaultQuery("window", string(services.WindowMonth)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.Svc.Series(c.Request.Context(), userID, w)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": w, "points": points})
}

// GetComparison returns the multi-user series: self plus linked friends.
func (h *StatsController) GetComparison(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	w, err := services.ParseWindow(c.DefaultQuery("window", string(services.WindowMonth)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	series, err := h.Friends.Comparison(c.Request.Context(), userID, w)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": w, "series": series})
}
