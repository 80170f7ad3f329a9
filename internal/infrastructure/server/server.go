package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/profile-engine/internal/api/http"
	"github.com/GriffinCanCode/profile-engine/internal/api/middleware"
	"github.com/GriffinCanCode/profile-engine/internal/api/ws"
	"github.com/GriffinCanCode/profile-engine/internal/domain/engine"
	"github.com/GriffinCanCode/profile-engine/internal/infrastructure/config"
	"github.com/GriffinCanCode/profile-engine/internal/infrastructure/logging"
	"github.com/GriffinCanCode/profile-engine/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/profile-engine/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	engine     *engine.Engine
	tracer     *tracing.Tracer
	metrics    *monitoring.Metrics
	logger     *logging.Logger
	config     *config.Config
}

// New creates a new server instance
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing profile engine",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	eng, err := engine.New(engine.Options{
		BlankURL:           cfg.Engine.BlankURL,
		MaxUserAgentLength: cfg.Engine.MaxUserAgentLength,
		EventBuffer:        cfg.Engine.EventBuffer,
		ClosedTabRetention: cfg.Engine.ClosedTabRetention,
		PresetsFile:        cfg.Engine.PresetsFile,
		Logger:             logger.Component("engine"),
		Sink:               metrics,
		Gauges:             metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	tracer := tracing.New("profile-engine", logger.Component("tracing"))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.Server.AllowOrigins)))
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

	apihttp.NewHandlers(eng, metrics, logger.Component("http")).Register(router)

	stream := ws.NewHandler(eng, logger.Component("stream")).
		WithMetrics(metrics).
		WithStream(cfg.Stream.SubscriberBuffer, cfg.Stream.WriteTimeout)
	router.GET("/stream", stream.HandleConnection)
	router.GET("/metrics", gin.WrapH(monitoring.Handler(registry)))

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
			Handler: router,
		},
		engine:  eng,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
		config:  cfg,
	}, nil
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Engine returns the engine behind the server
func (s *Server) Engine() *engine.Engine {
	return s.engine
}

// Run serves until Shutdown is called
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains HTTP traffic, then stops rotations, closes stream
// subscribers and flushes spans
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("HTTP shutdown did not complete", zap.Error(err))
	}

	s.engine.Shutdown()
	s.tracer.Close()
	_ = s.logger.Sync()

	return err
}
