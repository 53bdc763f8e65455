package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "whisper-sync/docs" // Generated swagger docs
	"whisper-sync/internal/api/middleware"
	v1routes "whisper-sync/internal/api/v1/routes"
)

// Config represents API server configuration
type Config struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string
	// MaxBodyBytes caps request bodies. Zero disables the cap.
	MaxBodyBytes int64
	// AllowOrigins restricts CORS to these origins. Empty allows any.
	AllowOrigins []string
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
	errCh      chan error
}

// NewServer creates a new API server. registry may be nil, in which case
// /metrics is not mounted.
func NewServer(
	config Config,
	deps *v1routes.Dependencies,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Server {
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	cors := middleware.DefaultCORSConfig()
	if len(config.AllowOrigins) > 0 {
		cors.AllowOrigins = config.AllowOrigins
	}
	router.Use(middleware.CORS(cors))
	if registry != nil {
		router.Use(middleware.NewHTTPMetrics(registry).Middleware())
	}
	if config.MaxBodyBytes > 0 {
		router.Use(middleware.BodyLimit(config.MaxBodyBytes))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	if registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		v1 := api.Group("/v1")
		v1routes.RegisterRoutes(v1, deps)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":       "whisper-sync API",
			"version":       "1.0",
			"documentation": "/swagger/index.html",
			"endpoints": gin.H{
				"health":         "/health",
				"audio":          "/api/v1/audio",
				"transcriptions": "/api/v1/transcriptions",
				"transcript":     "/api/v1/transcript",
				"player":         "/api/v1/player",
			},
		})
	})

	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
		errCh:      make(chan error, 1),
	}
}

// Start starts the API server in the background. Listen failures are
// reported on Err.
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("host", s.config.Host),
		zap.String("port", s.config.Port),
		zap.String("environment", s.config.Environment),
	)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Failed to start server", zap.Error(err))
			s.errCh <- err
		}
	}()

	s.logger.Info("API server started successfully", zap.String("address", s.httpServer.Addr))
	return nil
}

// Err delivers a listen failure after Start.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
