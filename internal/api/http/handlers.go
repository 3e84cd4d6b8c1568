package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/screenlatch/screenlatch/internal/domain/session"
	"github.com/screenlatch/screenlatch/internal/infrastructure/monitoring"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *session.Registry
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(registry *session.Registry, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		registry: registry,
		metrics:  metrics,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Screenlatch",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{
		"status":   "healthy",
		"sessions": h.registry.Stats(),
	}
	if h.metrics != nil {
		resp["metrics"] = h.metrics.GetSnapshot()
	}
	c.JSON(http.StatusOK, resp)
}

// ListSessions lists all connected shell sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sessions": h.registry.List(),
		"stats":    h.registry.Stats(),
	})
}

// GetSession returns one session's lock state
func (h *Handlers) GetSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Info())
}

// SetSessionEnabled toggles lock-on-background for a session
func (h *Handlers) SetSessionEnabled(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled field is required"})
		return
	}

	s.Controller.SetEnabled(*req.Enabled)
	c.JSON(http.StatusOK, s.Info())
}

// EnableSession enables locking for a session
func (h *Handlers) EnableSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	s.Controller.Enable()
	c.JSON(http.StatusOK, s.Info())
}

// DisableSession disables locking for a session
func (h *Handlers) DisableSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	s.Controller.Disable()
	c.JSON(http.StatusOK, s.Info())
}

// LockSession shows the lock screen on demand. The deferred unlock result
// is delivered to the shell over its own socket, so this returns as soon as
// the presentation is issued.
func (h *Handlers) LockSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	s.Controller.ShowLockScreen()
	c.JSON(http.StatusAccepted, s.Info())
}

// UnlockSession reports an out-of-band unlock for a session. Unlocking a
// session with no lock screen showing is a no-op, not an error.
func (h *Handlers) UnlockSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req struct {
		Payload interface{} `json:"payload"`
	}
	// Body is optional; a bare POST unlocks with a nil payload.
	c.ShouldBindJSON(&req)

	s.Controller.DidUnlock(req.Payload)
	c.JSON(http.StatusOK, s.Info())
}

// lookup resolves the :id path parameter into a session, writing the error
// response itself when resolution fails
func (h *Handlers) lookup(c *gin.Context) (*session.Session, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}

	s, ok := h.registry.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return s, true
}
