package ui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hormoiq/adapters/excel"
	"hormoiq/app"
	"hormoiq/internal"
	"hormoiq/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP API server
type Server struct {
	router   *gin.Engine
	service  *app.ScoreService
	importer *excel.Importer
	logger   *internal.Logger
}

// NewServer creates a new server instance with its routes registered
func NewServer(service *app.ScoreService, importer *excel.Importer, logger *internal.Logger, ginMode string) *Server {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:   gin.New(),
		service:  service,
		importer: importer,
		logger:   logger.With("http"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger(s.logger))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/reference", s.handleReference)
		api.GET("/catalog", s.handleCatalog)
	}

	users := api.Group("/users/:id", middleware.RequireUserID())
	{
		users.GET("/profile", s.handleGetProfile)
		users.PUT("/profile", s.handlePutProfile)

		users.POST("/measurements", s.handleLogMeasurement)
		users.GET("/measurements", s.handleListMeasurements)
		users.POST("/measurements/import", s.handleImport)
		users.DELETE("/measurements/:mid", s.handleDeleteMeasurement)

		users.GET("/readiness", s.handleReadiness)
		users.GET("/bioage", s.handleBioAge)
		users.GET("/bioage/history", s.handleBioAgeHistory)
		users.GET("/impact", s.handleImpact)
		users.GET("/streak", s.handleStreak)
		users.GET("/insights", s.handleInsights)
		users.GET("/report", s.handleReport)
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully within
// shutdownTimeout
func (s *Server) Start(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HormoIQ API on http://%s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
