// Package usecase implements the audit trail business logic.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/audit/domain"
)

// UseCase defines the interface for audit trail operations
type UseCase interface {
	Record(ctx context.Context, actor, action string, details map[string]any) error
	List(ctx context.Context, offset, limit int) ([]*domain.AuditEntry, error)
}

// AuditRepository interface defines audit entry repository operations
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, offset, limit int) ([]*domain.AuditEntry, error)
}

// AuditUseCase handles audit trail business logic
type AuditUseCase struct {
	auditRepo AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase
func NewAuditUseCase(auditRepo AuditRepository) *AuditUseCase {
	return &AuditUseCase{
		auditRepo: auditRepo,
	}
}

// Record appends a new entry to the audit trail
func (uc *AuditUseCase) Record(ctx context.Context, actor, action string, details map[string]any) error {
	entry := &domain.AuditEntry{
		ID:        uuid.Must(uuid.NewV7()),
		Actor:     actor,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	return uc.auditRepo.Create(ctx, entry)
}

// List retrieves audit entries, newest first
func (uc *AuditUseCase) List(ctx context.Context, offset, limit int) ([]*domain.AuditEntry, error) {
	return uc.auditRepo.List(ctx, offset, limit)
}
