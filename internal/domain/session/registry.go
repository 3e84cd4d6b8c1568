package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/screenlatch/screenlatch/internal/domain/lock"
	"github.com/screenlatch/screenlatch/internal/infrastructure/monitoring"
	"github.com/screenlatch/screenlatch/internal/shared/types"
)

// Session is one connected shell with its own lock controller
type Session struct {
	ID          string
	RemoteAddr  string
	ConnectedAt time.Time
	Controller  *lock.Controller
}

// Info returns the session as a wire-level snapshot
func (s *Session) Info() types.SessionInfo {
	return types.SessionInfo{
		ID:          s.ID,
		RemoteAddr:  s.RemoteAddr,
		ConnectedAt: s.ConnectedAt,
		Lock:        s.Controller.Stats(),
	}
}

// Registry tracks connected shell sessions
type Registry struct {
	sessions sync.Map
	metrics  *monitoring.Metrics
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{}
}

// WithMetrics adds metrics tracking to the registry
func (r *Registry) WithMetrics(metrics *monitoring.Metrics) *Registry {
	r.metrics = metrics
	return r
}

// Add registers a new session for the given controller and returns it
func (r *Registry) Add(remoteAddr string, ctrl *lock.Controller) *Session {
	s := &Session{
		ID:          uuid.New().String(),
		RemoteAddr:  remoteAddr,
		ConnectedAt: time.Now(),
		Controller:  ctrl,
	}
	r.sessions.Store(s.ID, s)

	if r.metrics != nil {
		r.metrics.SessionsTotal.Inc()
		r.metrics.SessionsActive.Inc()
	}
	return s
}

// Get retrieves a session by ID
func (r *Registry) Get(id string) (*Session, bool) {
	v, ok := r.sessions.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// Remove unregisters a session. The caller owns controller teardown.
func (r *Registry) Remove(id string) {
	if _, ok := r.sessions.LoadAndDelete(id); ok && r.metrics != nil {
		r.metrics.SessionsActive.Dec()
	}
}

// List returns snapshots of all connected sessions
func (r *Registry) List() []types.SessionInfo {
	infos := make([]types.SessionInfo, 0)
	r.sessions.Range(func(_, v interface{}) bool {
		infos = append(infos, v.(*Session).Info())
		return true
	})
	return infos
}

// Stats returns registry statistics
func (r *Registry) Stats() types.SessionStats {
	var total, locked int
	r.sessions.Range(func(_, v interface{}) bool {
		total++
		if v.(*Session).Controller.IsShowingLockScreen() {
			locked++
		}
		return true
	})

	return types.SessionStats{
		TotalSessions:  total,
		LockedSessions: locked,
	}
}
