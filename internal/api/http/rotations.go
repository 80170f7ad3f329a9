package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
	"github.com/GriffinCanCode/profile-engine/internal/shared/utils"
)

// StartRotation starts or replaces a profile's rotation
func (h *Handlers) StartRotation(c *gin.Context) {
	profileID, ok := idParam(c)
	if !ok {
		return
	}

	var req types.StartRotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateCategory(string(req.Category), false); err != nil {
		badRequest(c, err)
		return
	}

	rs, err := h.engine.StartRotation(profileID, req.IntervalMs, req.Category)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rs)
}

// StopRotation cancels a profile's rotation
func (h *Handlers) StopRotation(c *gin.Context) {
	profileID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.engine.StopRotation(profileID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRotations returns every active rotation
func (h *Handlers) ListRotations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rotations": h.engine.Rotations()})
}
