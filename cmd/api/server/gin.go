package server

import (
	"net/http"
	"time"

	"webucket-api/internal/adapter/gin/middleware"
	ginrouter "webucket-api/internal/adapter/gin/router"
	"webucket-api/internal/usecase/auth"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server. CORS wraps
// the whole engine so preflight requests never reach the route table.
func SetupGinServer(
	handlers ginrouter.Handlers,
	authUC auth.Usecase,
	rateLimiter *middleware.RateLimiter,
	corsOrigins []string,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(handlers, authUC, rateLimiter, l)

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	l.Info("Gin REST API configured",
		zap.String("address", ginAddr),
		zap.Strings("cors_origins", corsOrigins),
	)

	return &http.Server{
		Addr:              ginAddr,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
