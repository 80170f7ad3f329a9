package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
	"github.com/GriffinCanCode/profile-engine/internal/shared/utils"
)

// ApplyUserAgent sets a profile's User-Agent to a raw value
func (h *Handlers) ApplyUserAgent(c *gin.Context) {
	profileID, ok := idParam(c)
	if !ok {
		return
	}

	var req types.ApplyUserAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.engine.ApplyUserAgent(profileID, req.Value)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ApplyPreset sets a profile's User-Agent from a preset
func (h *Handlers) ApplyPreset(c *gin.Context) {
	profileID, ok := idParam(c)
	if !ok {
		return
	}

	var req types.ApplyPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateID(req.PresetID, "preset_id", true); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.engine.ApplyPreset(profileID, req.PresetID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ApplyRandom sets a profile's User-Agent from a random preset
func (h *Handlers) ApplyRandom(c *gin.Context) {
	profileID, ok := idParam(c)
	if !ok {
		return
	}

	var req types.ApplyRandomRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateCategory(string(req.Category), false); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.engine.ApplyRandom(profileID, req.Category)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Validate reports whether a User-Agent is well-formed
func (h *Handlers) Validate(c *gin.Context) {
	var req types.UserAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ValidateResponse{
		Value: req.Value,
		Valid: h.engine.Validate(req.Value),
	})
}

// Parse extracts structured fields from a User-Agent
func (h *Handlers) Parse(c *gin.Context) {
	var req types.UserAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ParseResponse{
		Value:  req.Value,
		Parsed: h.engine.Parse(req.Value),
	})
}
