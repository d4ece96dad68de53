// Package http provides HTTP handlers for application settings.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docbrief/docbrief/internal/httputil"
	"github.com/docbrief/docbrief/internal/settings/http/dto"
	"github.com/docbrief/docbrief/internal/settings/usecase"
)

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsUseCase usecase.UseCase
	logger          *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsUseCase usecase.UseCase, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsUseCase: settingsUseCase,
		logger:          logger,
	}
}

// GetHandler returns the current application settings.
// GET /v1/settings
func (h *SettingsHandler) GetHandler(c *gin.Context) {
	setting, err := h.settingsUseCase.Get(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(setting))
}

// UpdateHandler replaces the application settings.
// PUT /v1/settings
func (h *SettingsHandler) UpdateHandler(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := dto.ToUpdateSettingsInput(req, httputil.Actor(c))

	setting, err := h.settingsUseCase.Update(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(setting))
}
