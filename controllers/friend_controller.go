package controllers

import (
	"net/http"

	"github.com/cmarkstaller/fit-buddy/services"
	"github.com/cmarkstaller/fit-buddy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FriendController struct {
	Svc   *services.FriendService
	Users *services.UserService
}

func NewFriendController(svc *services.FriendService, users *services.UserService) *FriendController {
	return &FriendController{Svc: svc, Users: users}
}

type addFriendRequest struct {
	Code string `json:"code"`
}

// AddFriend links the caller to the owner of the submitted code. Duplicate
// submissions succeed without creating a second edge.
func (h *FriendController) AddFriend(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	friend, err := h.Svc.AddFriendByCode(c.Request.Context(), userID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	// best-effort heads-up to the person who was added
	adderName := "A Fit Buddy user"
	if adder, aerr := h.Users.GetProfile(c.Request.Context(), userID); aerr == nil && adder.DisplayName != "" {
		adderName = adder.DisplayName
	}
	go func(email, adder string) {
		if err := utils.SendFriendAddedEmail(email, adder); err != nil {
			utils.Logger.Warn("friend_added_email_failed", zap.Error(err))
		}
	}(friend.Email, adderName)

	c.JSON(http.StatusOK, gin.H{
		"friend_id":    friend.ID,
		"display_name": friend.DisplayName,
	})
}

// ListFriends returns one card per linked friend.
func (h *FriendController) ListFriends(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	cards, err := h.Svc.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}
