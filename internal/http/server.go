// Package http provides the HTTP server, its router and the operational endpoints.
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

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	authHTTP "github.com/allisson/modelgate/internal/auth/http"
	authUseCase "github.com/allisson/modelgate/internal/auth/usecase"
	"github.com/allisson/modelgate/internal/config"
	apperrors "github.com/allisson/modelgate/internal/errors"
	"github.com/allisson/modelgate/internal/httputil"
	"github.com/allisson/modelgate/internal/metrics"
	recordsHTTP "github.com/allisson/modelgate/internal/records/http"
	recordsUseCase "github.com/allisson/modelgate/internal/records/usecase"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port),
	}
}

// SetupRouter builds the gin router.
//
// Resource routes run ResourceMiddleware, then AuthenticationMiddleware, then the
// optional per-user rate limiter, then CapabilityMiddleware for the verb, then the
// handler. The rate limiter sweepers stop when ctx is cancelled.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	userUseCase authUseCase.UserUseCase,
	storeResolver recordsUseCase.StoreResolver,
	metricsProvider *metrics.Provider,
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

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.NoRoute(func(c *gin.Context) {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, nil)
	})

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authHandler := authHTTP.NewAuthHandler(userUseCase, s.logger)
	authenticate := authHTTP.AuthenticationMiddleware(userUseCase, s.logger)

	var authLimit []gin.HandlerFunc
	if cfg.RateLimitAuthEnabled {
		authLimit = append(authLimit, authHTTP.AuthRateLimitMiddleware(
			ctx,
			cfg.RateLimitAuthRequestsPerSec,
			cfg.RateLimitAuthBurst,
			s.logger,
		))
	}

	router.POST("/signup", chain(authLimit, authHandler.SignupHandler)...)
	router.POST("/signin", chain(authLimit, authenticate, authHandler.SigninHandler)...)

	recordHandler := recordsHTTP.NewRecordHandler(s.logger)

	resources := router.Group("/:"+recordsHTTP.ResourceParam,
		recordsHTTP.ResourceMiddleware(storeResolver, s.logger),
		authenticate,
	)
	if cfg.RateLimitEnabled {
		resources.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	idPath := "/:" + recordsHTTP.IDParam
	resources.GET("", s.require(authDomain.ReadCapability), recordHandler.ListHandler)
	resources.POST("", s.require(authDomain.CreateCapability), recordHandler.CreateHandler)
	resources.GET(idPath, s.require(authDomain.ReadCapability), recordHandler.GetHandler)
	resources.PUT(idPath, s.require(authDomain.UpdateCapability), recordHandler.UpdateHandler)
	resources.DELETE(idPath, s.require(authDomain.DeleteCapability), recordHandler.DeleteHandler)

	s.router = router
}

func (s *Server) require(capability authDomain.Capability) gin.HandlerFunc {
	return authHTTP.CapabilityMiddleware(capability, s.logger)
}

func chain(prefix []gin.HandlerFunc, handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(prefix)+len(handlers))
	out = append(out, prefix...)
	return append(out, handlers...)
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start(_ context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
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

// readinessHandler reports whether the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"

	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	if database != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": database},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": database},
	})
}
