package controllers

import (
	"net/http"

	"github.com/cmarkstaller/fit-buddy/models"
	"github.com/cmarkstaller/fit-buddy/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{Svc: svc}
}

func profileJSON(u *models.User) gin.H {
	code := ""
	if u.FriendCode != nil {
		code = *u.FriendCode
	}
	return gin.H{
		"id":              u.ID,
		"email":           u.Email,
		"display_name":    u.DisplayName,
		"height":          u.Height,
		"age":             u.Age,
		"activity_level":  u.ActivityLevel,
		"starting_weight": u.StartingWeight,
		"target_weight":   u.TargetWeight,
		"friend_code":     code,
		"avatar_url":      u.AvatarURL,
		"onboarded":       u.Onboarded,
	}
}

func (h *UserController) GetProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.Svc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileJSON(user))
}

func (h *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileJSON(user))
}

// CompleteOnboarding sets goal parameters and assigns the friend code.
func (h *UserController) CompleteOnboarding(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Svc.CompleteOnboarding(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileJSON(user))
}
