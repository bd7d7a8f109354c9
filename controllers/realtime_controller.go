package controllers

import (
	"net/http"

	"github.com/cmarkstaller/fit-buddy/services"
	"github.com/cmarkstaller/fit-buddy/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	Hub *services.RealtimeHub
}

func NewRealtimeController(hub *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

// Connect upgrades to a websocket and keeps the session registered until the
// client goes away. The server only pushes; inbound frames are drained and
// dropped.
func (h *RealtimeController) Connect(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Logger.Warn("ws_upgrade_failed", zap.Error(err))
		return
	}

	client := &services.WSClient{UserID: userID, Conn: conn}
	h.Hub.Register(client)
	defer h.Hub.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
