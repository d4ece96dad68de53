// Package http provides HTTP handlers for the audit trail.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docbrief/docbrief/internal/audit/http/dto"
	"github.com/docbrief/docbrief/internal/audit/usecase"
	"github.com/docbrief/docbrief/internal/httputil"
)

// AuditHandler handles audit trail HTTP requests
type AuditHandler struct {
	auditUseCase usecase.UseCase
	logger       *slog.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditUseCase usecase.UseCase, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		auditUseCase: auditUseCase,
		logger:       logger,
	}
}

// ListHandler returns audit entries, newest first.
// GET /v1/audit?offset=0&limit=50
func (h *AuditHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	entries, err := h.auditUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditEntryListResponse(entries, offset, limit))
}
