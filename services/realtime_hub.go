package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSClient is one open dashboard session.
type WSClient struct {
	UserID uint
	Conn   *websocket.Conn
}

// RealtimeHub fans weight updates out to the open sessions of the users who
// are allowed to see them (the author plus their linked friends).
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// WeightUpdate is the fanout payload for a fresh weight entry.
type WeightUpdate struct {
	UserID uint    `json:"user_id"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// BroadcastWeightUpdate delivers update to every open session belonging to
// one of userIDs. Closed or slow connections are skipped, not retried.
func (h *RealtimeHub) BroadcastWeightUpdate(userIDs []uint, update WeightUpdate) {
	msg, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, id := range userIDs {
		for c := range h.clients[id] {
			_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
		}
	}
}
