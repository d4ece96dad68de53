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

	auditHTTP "github.com/docbrief/docbrief/internal/audit/http"
	credentialHTTP "github.com/docbrief/docbrief/internal/credentials/http"
	jobHTTP "github.com/docbrief/docbrief/internal/jobs/http"
	settingsHTTP "github.com/docbrief/docbrief/internal/settings/http"
)

// Handlers groups the module handlers mounted on the server.
type Handlers struct {
	Credential *credentialHTTP.CredentialHandler
	Job        *jobHTTP.JobHandler
	Settings   *settingsHTTP.SettingsHandler
	Audit      *auditHTTP.AuditHandler
}

// Options configures the optional server middleware.
type Options struct {
	// AdminAPIKeyHash is the Argon2id hash of the admin API key. Empty
	// disables authentication on mutating routes.
	AdminAPIKeyHash string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	CORSEnabled      bool
	CORSAllowOrigins string

	// MetricsMiddleware records per-request metrics when non-nil.
	MetricsMiddleware gin.HandlerFunc
}

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
	handlers Handlers,
	opts Options,
) *Server {
	s := &Server{
		db:     db,
		logger: logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	if opts.MetricsMiddleware != nil {
		router.Use(opts.MetricsMiddleware)
	}

	if corsMiddleware := createCORSMiddleware(opts.CORSEnabled, opts.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	if opts.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(opts.RateLimitRequestsPerSec, opts.RateLimitBurst, logger))
	}

	if opts.AdminAPIKeyHash == "" {
		logger.Warn("admin api key hash not configured - mutating routes are unauthenticated")
	}
	auth := APIKeyAuthMiddleware(opts.AdminAPIKeyHash, logger)

	if handlers.Credential != nil {
		v1.GET("/credentials", handlers.Credential.ListHandler)
		v1.GET("/credentials/:id", handlers.Credential.GetHandler)
		v1.POST("/credentials", auth, handlers.Credential.CreateHandler)
		v1.PUT("/credentials/:id", auth, handlers.Credential.UpdateHandler)
		v1.DELETE("/credentials/:id", auth, handlers.Credential.DeleteHandler)
		v1.POST("/credentials/:id/reveal", auth, handlers.Credential.RevealHandler)
	}

	if handlers.Job != nil {
		v1.POST("/uploads", auth, handlers.Job.UploadHandler)
		v1.GET("/jobs", handlers.Job.ListJobsHandler)
		v1.GET("/jobs/:id", handlers.Job.GetJobHandler)
		v1.GET("/jobs/:id/result", handlers.Job.GetResultHandler)
	}

	if handlers.Settings != nil {
		v1.GET("/settings", handlers.Settings.GetHandler)
		v1.PUT("/settings", auth, handlers.Settings.UpdateHandler)
	}

	if handlers.Audit != nil {
		v1.GET("/audit", handlers.Audit.ListHandler)
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
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

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic.
// The database is the only hard dependency checked here.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
