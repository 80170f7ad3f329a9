package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
	"github.com/GriffinCanCode/profile-engine/internal/shared/utils"
)

// CreateProfile registers a new profile
func (h *Handlers) CreateProfile(c *gin.Context) {
	var req types.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	name := utils.SanitizeName(req.Name)
	if err := utils.ValidateName(name, "name"); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateIcon(req.Icon); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.engine.CreateProfile(name, req.Icon))
}

// ListProfiles returns every profile
func (h *Handlers) ListProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profiles": h.engine.ListProfiles()})
}

// ActiveProfile returns the foreground profile
func (h *Handlers) ActiveProfile(c *gin.Context) {
	p := h.engine.ActiveProfile()
	if p == nil {
		h.respondError(c, types.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProfile returns one profile
func (h *Handlers) GetProfile(c *gin.Context) {
	profileID, ok := idParam(c)
	if !ok {
		return
	}

	p, err := h.engine.GetProfile(profileID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProfile removes a profile and everything it owns
func (h *Handlers) DeleteProfile(c *gin.Context) {
	profileID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.engine.DeleteProfile(profileID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SwitchActive makes a profile the foreground profile
func (h *Handlers) SwitchActive(c *gin.Context) {
	profileID, ok := idParam(c)
	if !ok {
		return
	}

	p, err := h.engine.SwitchActive(profileID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// idParam validates the :id path parameter
func idParam(c *gin.Context) (string, bool) {
	value := c.Param("id")
	if err := utils.ValidateID(value, "id", true); err != nil {
		badRequest(c, err)
		return "", false
	}
	return value, true
}
