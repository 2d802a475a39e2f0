package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warikan-app/split-api/models"
	"github.com/warikan-app/split-api/services"
	"github.com/warikan-app/split-api/split"
)

type SessionHandler struct {
	Store   services.SessionStore
	Queue   *services.Writeback
	Recents *services.RecentSessions
	WS      *WSHandler
}

func NewSessionHandler(store services.SessionStore, queue *services.Writeback, recents *services.RecentSessions, ws *WSHandler) *SessionHandler {
	return &SessionHandler{Store: store, Queue: queue, Recents: recents, WS: ws}
}

// CreateSession creates a new split session
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	names := make([]string, len(req.Participants))
	for i, p := range req.Participants {
		names[i] = p.Name
	}

	id, err := h.Store.Create(c.Request.Context(), names, req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	h.Recents.Touch(id)
	c.JSON(http.StatusCreated, models.CreateSessionResponse{ID: id})
}

// GetSession returns the full session record
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")

	session, err := h.Store.Get(c.Request.Context(), id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
		return
	}

	h.Recents.Touch(id)
	c.JSON(http.StatusOK, session)
}

// UpdateSession shallow-merges partial fields onto the stored session.
// The write goes through the write-behind queue, so the acknowledgement only
// means the patch was accepted; a missing session stays a silent no-op.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id := c.Param("id")

	var patch models.SessionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.Queue.Enqueue(id, patch)
	h.Recents.Touch(id)

	if h.WS != nil {
		h.WS.BroadcastUpdate(id, "session_updated")
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteSession removes the session and its recents entry, best-effort
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")

	h.Recents.Remove(id)
	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetSettlements runs the balance and settlement computation server-side for
// the stored session. Balances is null when there is nothing to compute.
func (h *SessionHandler) GetSettlements(c *gin.Context) {
	id := c.Param("id")

	session, err := h.Store.Get(c.Request.Context(), id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
		return
	}

	balances := split.ComputeBalances(session.Participants, session.Payments)
	settlements := split.MatchSettlements(balances)

	c.JSON(http.StatusOK, gin.H{
		"balances":    balances,
		"settlements": settlements,
	})
}

// RemoveParticipant deletes a participant and every payment referencing it
func (h *SessionHandler) RemoveParticipant(c *gin.Context) {
	id := c.Param("id")
	participantID := c.Param("participant_id")

	session, err := h.Store.RemoveParticipant(c.Request.Context(), id, participantID)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove participant"})
		return
	}

	if h.WS != nil {
		h.WS.BroadcastUpdate(id, "session_updated")
	}

	c.JSON(http.StatusOK, session)
}

// GetRecentSessions returns recently touched session ids, most recent first
func (h *SessionHandler) GetRecentSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ids": h.Recents.List()})
}
