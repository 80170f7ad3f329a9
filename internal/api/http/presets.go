package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
	"github.com/GriffinCanCode/profile-engine/internal/shared/utils"
)

// ListPresets lists presets, optionally filtered by ?category=
func (h *Handlers) ListPresets(c *gin.Context) {
	category := c.Query("category")
	if err := utils.ValidateCategory(category, false); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"presets":    h.engine.ListPresets(types.Category(category)),
		"categories": h.engine.Categories(),
	})
}

// AddPreset registers a custom preset
func (h *Handlers) AddPreset(c *gin.Context) {
	var req types.AddPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateCategory(string(req.Category), true); err != nil {
		badRequest(c, err)
		return
	}

	preset, err := h.engine.AddCustomPreset(req.Value, req.Category, utils.SanitizeName(req.Name))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, preset)
}

// RemovePreset removes a custom preset
func (h *Handlers) RemovePreset(c *gin.Context) {
	presetID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.engine.RemoveCustomPreset(presetID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
