// Package dto provides data transfer objects for the audit HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/audit/domain"
)

// AuditEntryResponse represents the API response for a single audit entry
type AuditEntryResponse struct {
	ID        uuid.UUID      `json:"id"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AuditEntryListResponse represents a paginated list of audit entries
type AuditEntryListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
	Offset  int                  `json:"offset"`
	Limit   int                  `json:"limit"`
}

// ToAuditEntryListResponse converts domain audit entries to a list response DTO
func ToAuditEntryListResponse(entries []*domain.AuditEntry, offset, limit int) AuditEntryListResponse {
	items := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, AuditEntryResponse{
			ID:        entry.ID,
			Actor:     entry.Actor,
			Action:    entry.Action,
			Details:   entry.Details,
			CreatedAt: entry.CreatedAt,
		})
	}
	return AuditEntryListResponse{
		Entries: items,
		Offset:  offset,
		Limit:   limit,
	}
}
