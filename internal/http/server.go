// Package http provides the gin HTTP server, its route table and shared middleware.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	accountHTTP "github.com/allisson/accountvault/internal/account/http"
	authHTTP "github.com/allisson/accountvault/internal/auth/http"
	"github.com/allisson/accountvault/internal/config"
	"github.com/allisson/accountvault/internal/metrics"
	userHTTP "github.com/allisson/accountvault/internal/user/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the route table.
//
// ctx bounds background work started by middleware, such as rate limiter
// eviction. meterProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	userHandler *userHTTP.UserHandler,
	accountHandler *accountHTTP.AccountHandler,
	authenticator authHTTP.Authenticator,
	meterProvider metric.MeterProvider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authGroup := router.Group("/auth")
	{
		// register and login share one per-IP bucket
		var rateLimit gin.HandlerFunc
		if cfg.RateLimitAuthEnabled {
			rateLimit = authHTTP.AuthRateLimitMiddleware(
				ctx,
				cfg.RateLimitAuthRequestsPerSec,
				cfg.RateLimitAuthBurst,
				s.logger,
			)
		}
		withRateLimit := func(handler gin.HandlerFunc) []gin.HandlerFunc {
			if rateLimit == nil {
				return []gin.HandlerFunc{handler}
			}
			return []gin.HandlerFunc{rateLimit, handler}
		}

		authGroup.POST("/register", withRateLimit(userHandler.RegisterHandler)...)
		authGroup.POST("/login", withRateLimit(userHandler.LoginHandler)...)
		authGroup.GET("/me", authHTTP.AuthenticationMiddleware(authenticator, s.logger), userHandler.MeHandler)
	}

	accounts := router.Group("/accounts")
	accounts.Use(authHTTP.AuthenticationMiddleware(authenticator, s.logger))
	{
		accounts.GET("", accountHandler.ListHandler)
		accounts.POST("", accountHandler.UpsertHandler)
		accounts.POST("/otp/bulk", accountHandler.BulkOTPHandler)
		accounts.DELETE("/:code", accountHandler.DeleteHandler)
		accounts.GET("/:code/secrets", accountHandler.SecretsHandler)
		accounts.GET("/:code/otp", accountHandler.OTPHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured: call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	dbStatus := "ok"
	if s.db == nil {
		dbStatus = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			dbStatus = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if dbStatus != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": dbStatus},
	})
}
