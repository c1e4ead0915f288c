// Package http provides the HTTP server and route wiring.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/accounts/internal/auth/http"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	"github.com/allisson/accounts/internal/config"
	"github.com/allisson/accounts/internal/metrics"
)

// NewRouter builds the gin engine with all routes and middleware.
// metricsProvider may be nil when metrics are disabled, and loginLimiter may
// be nil when login rate limiting is disabled. The caller owns the limiter's
// lifecycle.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	useCase authUseCase.AuthUseCase,
	metricsProvider *metrics.Provider,
	loginLimiter *authHTTP.LoginRateLimiter,
) *gin.Engine {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", healthHandler)
	router.GET("/ready", healthHandler)

	handler := authHTTP.NewAuthHandler(useCase, logger)
	authentication := authHTTP.AuthenticationMiddleware(useCase, logger)

	auth := router.Group("/v1/auth")
	{
		// The credential endpoints are unauthenticated and are the ones worth
		// brute forcing, so they share the per-IP rate limit.
		credentials := auth.Group("")
		if loginLimiter != nil {
			credentials.Use(loginLimiter.Middleware())
		}
		credentials.POST("/register", handler.RegisterHandler)
		credentials.POST("/login", handler.LoginHandler)

		auth.POST("/refresh", handler.RefreshHandler)
		auth.POST("/logout", handler.LogoutHandler)
		auth.GET("/me", authentication, handler.MeHandler)
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Server wraps the HTTP server lifecycle.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server serving the given handler.
func NewServer(host string, port int, logger *slog.Logger, handler http.Handler) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
