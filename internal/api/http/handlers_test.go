package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenlatch/screenlatch/internal/domain/lock"
	"github.com/screenlatch/screenlatch/internal/domain/session"
	"github.com/screenlatch/screenlatch/internal/shared/types"
)

func newTestRouter(t *testing.T) (*gin.Engine, *session.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := session.NewRegistry()
	handlers := NewHandlers(registry, nil)

	router := gin.New()
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.PUT("/sessions/:id/enabled", handlers.SetSessionEnabled)
	router.POST("/sessions/:id/enable", handlers.EnableSession)
	router.POST("/sessions/:id/disable", handlers.DisableSession)
	router.POST("/sessions/:id/lock", handlers.LockSession)
	router.POST("/sessions/:id/unlock", handlers.UnlockSession)

	return router, registry
}

func addSession(t *testing.T, registry *session.Registry) *session.Session {
	t.Helper()
	ctrl, err := lock.NewController(nil, lock.Options{
		LockScreen: "lock",
		Content:    func(payload interface{}) types.Route { return "home" },
		Enabled:    true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { ctrl.Close() })
	ctrl.Start()
	return registry.Add("test", ctrl)
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRootAndHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Screenlatch")

	w = do(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestGetSession(t *testing.T) {
	router, registry := newTestRouter(t)
	s := addSession(t, registry)

	w := do(router, http.MethodGet, "/sessions/"+s.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "launch_locked")

	w = do(router, http.MethodGet, "/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/sessions/00000000-0000-0000-0000-000000000000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnableDisableSession(t *testing.T) {
	router, registry := newTestRouter(t)
	s := addSession(t, registry)

	w := do(router, http.MethodPost, "/sessions/"+s.ID+"/disable", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, s.Controller.Enabled())

	w = do(router, http.MethodPost, "/sessions/"+s.ID+"/enable", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, s.Controller.Enabled())

	w = do(router, http.MethodPut, "/sessions/"+s.ID+"/enabled", `{"enabled":false}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, s.Controller.Enabled())

	w = do(router, http.MethodPut, "/sessions/"+s.ID+"/enabled", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLockAndUnlockSession(t *testing.T) {
	router, registry := newTestRouter(t)
	s := addSession(t, registry)

	// Clear the launch lock first.
	w := do(router, http.MethodPost, "/sessions/"+s.ID+"/unlock", `{"payload":"pin"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, s.Controller.IsShowingLockScreen())

	w = do(router, http.MethodPost, "/sessions/"+s.ID+"/lock", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, s.Controller.IsShowingLockScreen())

	// Bare unlock with no body is accepted.
	w = do(router, http.MethodPost, "/sessions/"+s.ID+"/unlock", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, s.Controller.IsShowingLockScreen())

	// Unlocking an unlocked session is a silent no-op.
	w = do(router, http.MethodPost, "/sessions/"+s.ID+"/unlock", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListSessions(t *testing.T) {
	router, registry := newTestRouter(t)
	addSession(t, registry)
	addSession(t, registry)

	w := do(router, http.MethodGet, "/sessions", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "total_sessions")
}
