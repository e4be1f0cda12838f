package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db       *sqlx.DB
	inboxDir string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, inboxDir string) *HealthHandler {
	return &HealthHandler{db: db, inboxDir: inboxDir}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Ready means the database answers and the
// inbox folder is reachable, since a batch run needs both.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable", "error": "database not reachable"})
		return
	}
	if info, err := os.Stat(h.inboxDir); err != nil || !info.IsDir() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable", "error": "inbox directory not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
