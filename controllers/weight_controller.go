package controllers

import (
	"net/http"

	"github.com/cmarkstaller/fit-buddy/services"

	"github.com/gin-gonic/gin"
)

type WeightController struct {
	Svc     *services.WeightService
	Friends *services.FriendService
	Hub     *services.RealtimeHub
}

func NewWeightController(svc *services.WeightService, friends *services.FriendService, hub *services.RealtimeHub) *WeightController {
	return &WeightController{Svc: svc, Friends: friends, Hub: hub}
}

type addWeightRequest struct {
	Weight float64 `json:"weight"`
	Note   string  `json:"note"`
}

// AddWeight records today's weight and fans the update out to the author and
// their friends' open sessions.
func (h *WeightController) AddWeight(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Svc.RecordWeight(c.Request.Context(), userID, req.Weight, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.Hub != nil {
		ids, ferr := h.Friends.FriendIDs(c.Request.Context(), userID)
		if ferr == nil {
			h.Hub.BroadcastWeightUpdate(append(ids, userID), services.WeightUpdate{
				UserID: userID,
				Date:   entry.Date.Format("2006-01-02"),
				Weight: entry.Weight,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   entry.Date.Format("2006-01-02"),
		"weight": entry.Weight,
		"note":   entry.Note,
	})
}

// History returns the full descending log of entries.
func (h *WeightController) History(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entries, err := h.Svc.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{
			"date":   e.Date.Format("2006-01-02"),
			"weight": e.Weight,
			"note":   e.Note,
		})
	}
	c.JSON(http.StatusOK, out)
}
