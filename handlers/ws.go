package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/warikan-app/split-api/utils"
)

type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-Alive Configuration (Critical for cloud hosting)
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		sessionID, _ := s.Get("session_id")
		utils.LogWebSocket("client connected", toString(sessionID))
	})

	m.HandleDisconnect(func(s *melody.Session) {
		sessionID, _ := s.Get("session_id")
		utils.LogWebSocket("client disconnected", toString(sessionID))
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeError("WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request and attaches the viewer to a split session
func (h *WSHandler) HandleWS(c *gin.Context) {
	sessionID := c.Param("id")

	err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		"session_id": sessionID,
	})
	if err != nil {
		utils.SafeError("Failed to upgrade websocket: %v", err)
	}
}

// BroadcastUpdate signals every client viewing the session
func (h *WSHandler) BroadcastUpdate(sessionID string, updateType string) {
	// Simple JSON construction to avoid struct overhead for simple signals
	msg := []byte(`{"type": "` + updateType + `"}`)

	err := h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		id, exists := q.Get("session_id")
		return exists && id == sessionID
	})

	if err != nil {
		utils.SafeError("Error broadcasting to session %s: %v", utils.MaskID(sessionID), err)
	}
}

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}
