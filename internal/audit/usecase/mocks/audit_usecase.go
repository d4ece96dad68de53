// Package mocks provides mock implementations for testing audit consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/docbrief/docbrief/internal/audit/domain"
)

// MockAuditUseCase is a mock implementation of usecase.UseCase.
type MockAuditUseCase struct {
	mock.Mock
}

// Record mocks the Record method of UseCase.
func (m *MockAuditUseCase) Record(ctx context.Context, actor, action string, details map[string]any) error {
	args := m.Called(ctx, actor, action, details)
	return args.Error(0)
}

// List mocks the List method of UseCase.
func (m *MockAuditUseCase) List(ctx context.Context, offset, limit int) ([]*domain.AuditEntry, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditEntry), args.Error(1)
}
