package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/screenlatch/screenlatch/internal/domain/lock"
	"github.com/screenlatch/screenlatch/internal/domain/session"
	"github.com/screenlatch/screenlatch/internal/infrastructure/config"
	"github.com/screenlatch/screenlatch/internal/infrastructure/logging"
	"github.com/screenlatch/screenlatch/internal/infrastructure/monitoring"
	"github.com/screenlatch/screenlatch/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Shell origin enforcement is the reverse proxy's job
	},
}

// Handler manages shell WebSocket connections. Each connection gets its own
// lock controller built from the configured defaults; the connection itself
// is the controller's presenter.
type Handler struct {
	registry *session.Registry
	cfg      config.LockConfig
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewHandler creates a new shell gateway handler
func NewHandler(registry *session.Registry, cfg config.LockConfig, logger *logging.Logger) *Handler {
	return &Handler{
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	}
}

// WithMetrics adds metrics tracking to the handler
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// HandleConnection upgrades the request and runs the shell session loop
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
		defer h.metrics.WSConnections.Dec()
	}

	presenter := newConnPresenter(conn, h.metrics)
	defer presenter.close()

	ctrl, err := lock.NewController(presenter, lock.Options{
		LockScreen:        types.Route(h.cfg.LockRoute),
		Content:           h.contentBuilder(),
		Enabled:           h.cfg.Enabled,
		BackgroundLatency: h.cfg.BackgroundLatency,
		InactivityLatency: h.cfg.InactivityLatency,
	})
	if err != nil {
		h.logger.Error("Failed to create lock controller", zap.Error(err))
		presenter.sendError("invalid lock configuration")
		return
	}
	if h.metrics != nil {
		ctrl.WithMetrics(h.metrics)
	}
	defer ctrl.Close()

	sess := h.registry.Add(c.ClientIP(), ctrl)
	defer h.registry.Remove(sess.ID)

	h.logger.Info("Shell connected",
		zap.String("session_id", sess.ID),
		zap.String("remote", sess.RemoteAddr),
	)

	presenter.send(types.Directive{
		Type:    types.DirectiveSystem,
		Message: "connected",
		Payload: map[string]interface{}{
			"session_id": sess.ID,
			"theme":      ctrl.ThemeOverride(),
		},
	})

	// Launch directive: lock screen when enabled, content otherwise.
	ctrl.Start()

	for {
		var ev types.ShellEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("WebSocket read error", zap.String("session_id", sess.ID), zap.Error(err))
			}
			break
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", ev.Type)
		}
		h.dispatch(ctrl, presenter, ev)
	}

	h.logger.Info("Shell disconnected", zap.String("session_id", sess.ID))
}

// dispatch maps one shell event onto a controller operation
func (h *Handler) dispatch(ctrl *lock.Controller, presenter *connPresenter, ev types.ShellEvent) {
	switch ev.Type {
	case types.EventLifecycle:
		if !ev.Lifecycle.Valid() {
			presenter.sendError("unknown lifecycle state")
			return
		}
		ctrl.OnLifecycleChange(ev.Lifecycle)

	case types.EventActivity:
		// Content of input events is ignored; they are activity pings only.
		ctrl.OnUserActivity()

	case types.EventUnlock:
		ctrl.DidUnlock(ev.Payload)

	case types.EventSetEnabled:
		if ev.Enabled == nil {
			presenter.sendError("set_enabled requires enabled field")
			return
		}
		ctrl.SetEnabled(*ev.Enabled)

	case types.EventShowLock:
		done := ctrl.ShowLockScreen()
		go func() {
			select {
			case <-done:
				presenter.send(types.Directive{Type: types.DirectiveUnlocked})
			case <-presenter.done:
			}
		}()

	case types.EventPing:
		presenter.send(types.Directive{Type: types.DirectivePong})

	default:
		presenter.sendError("unknown event type")
	}
}

func (h *Handler) contentBuilder() lock.ContentBuilder {
	route := types.Route(h.cfg.ContentRoute)
	return func(payload interface{}) types.Route {
		return route
	}
}
