package routes

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/warikan-app/split-api/handlers"
	"github.com/warikan-app/split-api/services"
)

// Debounce window between an accepted PATCH and the persisted write.
const writebackDelay = time.Second

// SetupSessionRoutes wires the split-session routes and returns the
// write-behind queue so main can drain it on shutdown.
func SetupSessionRoutes(rg *gin.RouterGroup, db *sql.DB, wsHandler *handlers.WSHandler) *services.Writeback {
	store := services.NewSessionService(db)
	queue := services.NewWriteback(store, writebackDelay)
	recents := services.NewRecentSessions(services.DefaultRecentCapacity)

	h := handlers.NewSessionHandler(store, queue, recents, wsHandler)

	rg.POST("/sessions", h.CreateSession)
	rg.GET("/sessions/recent", h.GetRecentSessions)
	rg.GET("/sessions/:id", h.GetSession)
	rg.PATCH("/sessions/:id", h.UpdateSession)
	rg.DELETE("/sessions/:id", h.DeleteSession)

	rg.GET("/sessions/:id/settlements", h.GetSettlements)
	rg.DELETE("/sessions/:id/participants/:participant_id", h.RemoveParticipant)

	return queue
}
