package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/docbrief/docbrief/internal/credentials/domain"
)

// stubUseCase is a minimal UseCase implementation for decorator tests.
type stubUseCase struct {
	err error
}

func (s *stubUseCase) Create(context.Context, CreateCredentialInput) (*domain.Credential, error) {
	return &domain.Credential{}, s.err
}

func (s *stubUseCase) Update(context.Context, UpdateCredentialInput) (*domain.Credential, error) {
	return &domain.Credential{}, s.err
}

func (s *stubUseCase) Get(context.Context, uuid.UUID) (*domain.Credential, error) {
	return &domain.Credential{}, s.err
}

func (s *stubUseCase) Reveal(context.Context, uuid.UUID, string) (string, error) {
	return "plaintext", s.err
}

func (s *stubUseCase) ResolveActive(context.Context) (*domain.Credential, string, error) {
	return &domain.Credential{}, "plaintext", s.err
}

func (s *stubUseCase) List(context.Context, int, int) ([]*domain.Credential, error) {
	return nil, s.err
}

func (s *stubUseCase) Delete(context.Context, uuid.UUID, string) error {
	return s.err
}

func TestCredentialUseCaseWithMetrics(t *testing.T) {
	t.Run("records success status", func(t *testing.T) {
		m := &MockBusinessMetrics{}
		decorated := NewCredentialUseCaseWithMetrics(&stubUseCase{}, m)

		m.On("RecordOperation", mock.Anything, "credentials", "credential_create", "success").Return()
		m.On("RecordDuration", mock.Anything, "credentials", "credential_create", mock.Anything, "success").
			Return()

		_, err := decorated.Create(t.Context(), CreateCredentialInput{})
		require.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("records error status", func(t *testing.T) {
		m := &MockBusinessMetrics{}
		decorated := NewCredentialUseCaseWithMetrics(&stubUseCase{err: assert.AnError}, m)

		m.On("RecordOperation", mock.Anything, "credentials", "credential_reveal", "error").Return()
		m.On("RecordDuration", mock.Anything, "credentials", "credential_reveal", mock.Anything, "error").
			Return()

		_, err := decorated.Reveal(t.Context(), uuid.Must(uuid.NewV7()), "admin")
		assert.Error(t, err)
		m.AssertExpectations(t)
	})
}
