package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/profile-engine/internal/domain/engine"
	"github.com/GriffinCanCode/profile-engine/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

const (
	serviceName = "profile-engine"
	version     = "0.1.0"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	engine  *engine.Engine
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(eng *engine.Engine, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		engine:  eng,
		metrics: metrics,
		logger:  logger,
	}
}

// Register mounts every bridge route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/statistics", h.Statistics)

	profiles := r.Group("/profiles")
	profiles.POST("", h.CreateProfile)
	profiles.GET("", h.ListProfiles)
	profiles.GET("/active", h.ActiveProfile)
	profiles.GET("/:id", h.GetProfile)
	profiles.DELETE("/:id", h.DeleteProfile)
	profiles.POST("/:id/activate", h.SwitchActive)
	profiles.POST("/:id/user-agent", h.ApplyUserAgent)
	profiles.POST("/:id/user-agent/preset", h.ApplyPreset)
	profiles.POST("/:id/user-agent/random", h.ApplyRandom)
	profiles.POST("/:id/rotation", h.StartRotation)
	profiles.DELETE("/:id/rotation", h.StopRotation)
	profiles.POST("/:id/tabs", h.CreateTab)
	profiles.GET("/:id/tabs", h.ListTabs)

	r.GET("/rotations", h.ListRotations)

	tabs := r.Group("/tabs")
	tabs.GET("/:id", h.GetTab)
	tabs.DELETE("/:id", h.CloseTab)
	tabs.POST("/:id/navigate", h.Navigate)
	tabs.POST("/:id/loaded", h.ConfirmLoaded)

	presets := r.Group("/presets")
	presets.GET("", h.ListPresets)
	presets.POST("", h.AddPreset)
	presets.DELETE("/:id", h.RemovePreset)

	userAgents := r.Group("/user-agents")
	userAgents.POST("/validate", h.Validate)
	userAgents.POST("/parse", h.Parse)
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":      "healthy",
		"service":     serviceName,
		"version":     version,
		"profiles":    len(h.engine.ListProfiles()),
		"rotations":   len(h.engine.Rotations()),
		"subscribers": h.engine.Subscribers(),
	}
	if h.metrics != nil {
		body["requests"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// Statistics returns the engine counters
func (h *Handlers) Statistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Statistics())
}

// respondError maps an engine error to a status code
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrInvalidUserAgent), errors.Is(err, types.ErrInvalidInterval):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrNoPresetsAvailable):
		status = http.StatusConflict
	default:
		h.logger.Error("unexpected engine error",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}

	_ = c.Error(err)
	c.JSON(status, types.ErrorResponse{Error: err.Error(), Kind: types.ErrorKind(err)})
}

// badRequest rejects a request that failed boundary validation
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error(), Kind: "bad_request"})
}

// bindOptionalJSON binds a body that may be absent. An empty body, with or
// without a Content-Length, leaves obj at its zero value.
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
