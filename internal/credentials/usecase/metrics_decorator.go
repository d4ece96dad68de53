package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/credentials/domain"
	"github.com/docbrief/docbrief/internal/metrics"
)

// credentialUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *credentialUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credentials", operation, status)
	c.metrics.RecordDuration(ctx, "credentials", operation, time.Since(start), status)
}

// Create records metrics for credential creation operations.
func (c *credentialUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateCredentialInput,
) (*domain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Create(ctx, input)
	c.record(ctx, "credential_create", start, err)
	return credential, err
}

// Update records metrics for credential update operations.
func (c *credentialUseCaseWithMetrics) Update(
	ctx context.Context,
	input UpdateCredentialInput,
) (*domain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Update(ctx, input)
	c.record(ctx, "credential_update", start, err)
	return credential, err
}

// Get records metrics for credential retrieval operations.
func (c *credentialUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Get(ctx, id)
	c.record(ctx, "credential_get", start, err)
	return credential, err
}

// Reveal records metrics for credential reveal operations.
func (c *credentialUseCaseWithMetrics) Reveal(ctx context.Context, id uuid.UUID, actor string) (string, error) {
	start := time.Now()
	plaintext, err := c.next.Reveal(ctx, id, actor)
	c.record(ctx, "credential_reveal", start, err)
	return plaintext, err
}

// ResolveActive records metrics for active credential resolution.
func (c *credentialUseCaseWithMetrics) ResolveActive(ctx context.Context) (*domain.Credential, string, error) {
	start := time.Now()
	credential, plaintext, err := c.next.ResolveActive(ctx)
	c.record(ctx, "credential_resolve_active", start, err)
	return credential, plaintext, err
}

// List records metrics for credential list operations.
func (c *credentialUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Credential, error) {
	start := time.Now()
	credentials, err := c.next.List(ctx, offset, limit)
	c.record(ctx, "credential_list", start, err)
	return credentials, err
}

// Delete records metrics for credential delete operations.
func (c *credentialUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	start := time.Now()
	err := c.next.Delete(ctx, id, actor)
	c.record(ctx, "credential_delete", start, err)
	return err
}
