package server

import (
	"net/http"

	"webucket-api/internal/adapter/gin/middleware"
	ginrouter "webucket-api/internal/adapter/gin/router"
	"webucket-api/internal/config"
	"webucket-api/internal/usecase/auth"

	"go.uber.org/zap"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance
func New(
	cfg *config.Config,
	l *zap.Logger,
	handlers ginrouter.Handlers,
	authUC auth.Usecase,
	rateLimiter *middleware.RateLimiter,
) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: SetupGinServer(
			handlers,
			authUC,
			rateLimiter,
			cfg.App.CORSOrigins,
			":"+cfg.App.HTTPPort,
			l,
		),
	}
}

// Start starts the HTTP server. Blocks until the server stops.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
