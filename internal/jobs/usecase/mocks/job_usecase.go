// Package mocks provides mock implementations for testing job consumers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/docbrief/docbrief/internal/jobs/domain"
	"github.com/docbrief/docbrief/internal/jobs/usecase"
)

// MockJobUseCase is a mock implementation of usecase.UseCase.
type MockJobUseCase struct {
	mock.Mock
}

// Upload mocks the Upload method of UseCase.
func (m *MockJobUseCase) Upload(ctx context.Context, input usecase.UploadInput) (*domain.Job, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

// GetJob mocks the GetJob method of UseCase.
func (m *MockJobUseCase) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

// GetResult mocks the GetResult method of UseCase.
func (m *MockJobUseCase) GetResult(ctx context.Context, jobID uuid.UUID) (*domain.Result, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

// ListJobs mocks the ListJobs method of UseCase.
func (m *MockJobUseCase) ListJobs(ctx context.Context, offset, limit int) ([]*domain.Job, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}

// PendingJobs mocks the PendingJobs method of UseCase.
func (m *MockJobUseCase) PendingJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}

// ProcessJob mocks the ProcessJob method of UseCase.
func (m *MockJobUseCase) ProcessJob(ctx context.Context, jobID uuid.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}
