package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/screenlatch/screenlatch/internal/api/http"
	"github.com/screenlatch/screenlatch/internal/api/middleware"
	"github.com/screenlatch/screenlatch/internal/api/ws"
	"github.com/screenlatch/screenlatch/internal/domain/session"
	"github.com/screenlatch/screenlatch/internal/infrastructure/config"
	"github.com/screenlatch/screenlatch/internal/infrastructure/logging"
	"github.com/screenlatch/screenlatch/internal/infrastructure/monitoring"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	registry *session.Registry
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	// Initialize logger
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing Screenlatch",
		zap.String("port", cfg.Server.Port),
		zap.Bool("lock_enabled", cfg.Lock.Enabled),
		zap.Duration("background_latency", cfg.Lock.BackgroundLatency),
		zap.Duration("inactivity_latency", cfg.Lock.InactivityLatency),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	// Session registry: one entry per connected shell
	registry := session.NewRegistry().WithMetrics(metrics)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handlers
	handlers := http.NewHandlers(registry, metrics)
	wsHandler := ws.NewHandler(registry, cfg.Lock, logger).WithMetrics(metrics)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Session management
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.PUT("/sessions/:id/enabled", handlers.SetSessionEnabled)
	router.POST("/sessions/:id/enable", handlers.EnableSession)
	router.POST("/sessions/:id/disable", handlers.DisableSession)
	router.POST("/sessions/:id/lock", handlers.LockSession)
	router.POST("/sessions/:id/unlock", handlers.UnlockSession)

	// Shell WebSocket
	router.GET("/shell", wsHandler.HandleConnection)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		registry: registry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server. Per-session lock controllers are
// torn down by their connection handlers when the sockets drop.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.logger.Sync()
	return nil
}
