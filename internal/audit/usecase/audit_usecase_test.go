package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/docbrief/docbrief/internal/audit/domain"
)

// MockAuditRepository is a mock implementation of AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, offset, limit int) ([]*domain.AuditEntry, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditEntry), args.Error(1)
}

func TestAuditUseCase_Record(t *testing.T) {
	t.Run("records entry with generated id and timestamp", func(t *testing.T) {
		repo := &MockAuditRepository{}
		uc := NewAuditUseCase(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.AuditEntry) bool {
			return entry.ID != uuid.Nil &&
				entry.Actor == "admin" &&
				entry.Action == domain.ActionCredentialRevealed &&
				!entry.CreatedAt.IsZero()
		})).Return(nil)

		err := uc.Record(t.Context(), "admin", domain.ActionCredentialRevealed, map[string]any{"credential_id": "abc"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("propagates repository error", func(t *testing.T) {
		repo := &MockAuditRepository{}
		uc := NewAuditUseCase(repo)

		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		err := uc.Record(t.Context(), "admin", domain.ActionCredentialCreated, nil)
		assert.Error(t, err)
	})
}

func TestAuditUseCase_List(t *testing.T) {
	repo := &MockAuditRepository{}
	uc := NewAuditUseCase(repo)

	expected := []*domain.AuditEntry{{Actor: "admin", Action: domain.ActionSettingsUpdated}}
	repo.On("List", mock.Anything, 0, 10).Return(expected, nil)

	entries, err := uc.List(t.Context(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, expected, entries)
	repo.AssertExpectations(t)
}
