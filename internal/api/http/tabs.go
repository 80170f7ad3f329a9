package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
	"github.com/GriffinCanCode/profile-engine/internal/shared/utils"
)

// CreateTab opens a tab in a profile
func (h *Handlers) CreateTab(c *gin.Context) {
	profileID, ok := idParam(c)
	if !ok {
		return
	}

	var req types.CreateTabRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateURL(req.URL, "url", false); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.engine.CreateTab(profileID, req.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// ListTabs returns a profile's open tabs
func (h *Handlers) ListTabs(c *gin.Context) {
	profileID, ok := idParam(c)
	if !ok {
		return
	}

	tabs, err := h.engine.TabsForProfile(profileID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tabs": tabs})
}

// GetTab returns one tab
func (h *Handlers) GetTab(c *gin.Context) {
	tabID, ok := idParam(c)
	if !ok {
		return
	}

	t, err := h.engine.GetTab(tabID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// CloseTab closes a tab
func (h *Handlers) CloseTab(c *gin.Context) {
	tabID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.engine.CloseTab(tabID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Navigate points a tab at a new location
func (h *Handlers) Navigate(c *gin.Context) {
	tabID, ok := idParam(c)
	if !ok {
		return
	}

	var req types.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateURL(req.URL, "url", true); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.engine.Navigate(tabID, req.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// ConfirmLoaded is the render layer's load callback
func (h *Handlers) ConfirmLoaded(c *gin.Context) {
	tabID, ok := idParam(c)
	if !ok {
		return
	}

	var req types.TabLoadedRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.engine.ConfirmLoaded(tabID, utils.SanitizeName(req.Title))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
