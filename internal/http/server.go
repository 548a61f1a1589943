// Package http provides the HTTP server, router and middleware stack.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/inkvault/inkvault/internal/config"
	documenthttp "github.com/inkvault/inkvault/internal/document/http"
	"github.com/inkvault/inkvault/internal/metrics"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is configured separately
// through SetupRouter.
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

// SetupRouter builds the Gin router with the full middleware stack and all
// API routes. Rate limiting, when enabled, covers only the endpoints that run
// the decryption workflow; everything else stays unthrottled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	documentHandler *documenthttp.DocumentHandler,
	passwordHandler *documenthttp.PasswordHandler,
	meterProvider metric.MeterProvider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	var openLimiter gin.HandlerFunc
	if cfg.RateLimitEnabled {
		limiter := NewIPRateLimiter(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst)
		openLimiter = RateLimitMiddleware(limiter, s.logger)
	}

	v1 := router.Group("/v1")
	{
		documents := v1.Group("/documents")
		if openLimiter != nil {
			documents.POST("/open", openLimiter, documentHandler.OpenHandler)
			documents.GET("/*path", openLimiter, documentHandler.GetHandler)
		} else {
			documents.POST("/open", documentHandler.OpenHandler)
			documents.GET("/*path", documentHandler.GetHandler)
		}
		documents.POST("/save", documentHandler.SaveHandler)
		documents.GET("", documentHandler.ListHandler)
		documents.PUT("/*path", documentHandler.UpsertHandler)
		documents.DELETE("/*path", documentHandler.DeleteHandler)

		passwords := v1.Group("/passwords")
		passwords.POST("/score", passwordHandler.ScoreHandler)
		passwords.POST("/generate", passwordHandler.GenerateHandler)
	}

	s.router = router
}

// GetHandler returns the router for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

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

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// each dependency individually.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
