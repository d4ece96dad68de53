// Package http provides HTTP handlers for credential management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/credentials/http/dto"
	"github.com/docbrief/docbrief/internal/credentials/usecase"
	"github.com/docbrief/docbrief/internal/httputil"
)

// CredentialHandler handles credential HTTP requests
type CredentialHandler struct {
	credentialUseCase usecase.UseCase
	logger            *slog.Logger
}

// NewCredentialHandler creates a new CredentialHandler
func NewCredentialHandler(credentialUseCase usecase.UseCase, logger *slog.Logger) *CredentialHandler {
	return &CredentialHandler{
		credentialUseCase: credentialUseCase,
		logger:            logger,
	}
}

// parseIDParam extracts and validates the :id path parameter.
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid credential id: %w", err)
	}
	return id, nil
}

// CreateHandler stores a new credential with its API key encrypted at rest.
// POST /v1/credentials
func (h *CredentialHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := dto.ToCreateCredentialInput(req, httputil.Actor(c))

	credential, err := h.credentialUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCredentialResponse(credential))
}

// UpdateHandler updates an existing credential, re-encrypting the key when
// a new one is supplied.
// PUT /v1/credentials/:id
func (h *CredentialHandler) UpdateHandler(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := dto.ToUpdateCredentialInput(req, id, httputil.Actor(c))

	credential, err := h.credentialUseCase.Update(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCredentialResponse(credential))
}

// GetHandler returns a credential with its key masked.
// GET /v1/credentials/:id
func (h *CredentialHandler) GetHandler(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	credential, err := h.credentialUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCredentialResponse(credential))
}

// RevealHandler decrypts and returns the stored API key. Every reveal is
// recorded in the audit trail.
// POST /v1/credentials/:id/reveal
func (h *CredentialHandler) RevealHandler(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	credential, err := h.credentialUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	apiKey, err := h.credentialUseCase.Reveal(c.Request.Context(), id, httputil.Actor(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RevealCredentialResponse{
		ID:     credential.ID,
		Name:   credential.Name,
		APIKey: apiKey,
	})
}

// ListHandler returns credentials ordered by name with their keys masked.
// GET /v1/credentials?offset=0&limit=50
func (h *CredentialHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	credentials, err := h.credentialUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCredentialListResponse(credentials, offset, limit))
}

// DeleteHandler removes a credential.
// DELETE /v1/credentials/:id
func (h *CredentialHandler) DeleteHandler(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.credentialUseCase.Delete(c.Request.Context(), id, httputil.Actor(c)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
