// Package mocks provides mock implementations for testing credential consumers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/docbrief/docbrief/internal/credentials/domain"
	"github.com/docbrief/docbrief/internal/credentials/usecase"
)

// MockCredentialUseCase is a mock implementation of usecase.UseCase.
type MockCredentialUseCase struct {
	mock.Mock
}

// Create mocks the Create method of UseCase.
func (m *MockCredentialUseCase) Create(
	ctx context.Context,
	input usecase.CreateCredentialInput,
) (*domain.Credential, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

// Update mocks the Update method of UseCase.
func (m *MockCredentialUseCase) Update(
	ctx context.Context,
	input usecase.UpdateCredentialInput,
) (*domain.Credential, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

// Get mocks the Get method of UseCase.
func (m *MockCredentialUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

// Reveal mocks the Reveal method of UseCase.
func (m *MockCredentialUseCase) Reveal(ctx context.Context, id uuid.UUID, actor string) (string, error) {
	args := m.Called(ctx, id, actor)
	return args.String(0), args.Error(1)
}

// ResolveActive mocks the ResolveActive method of UseCase.
func (m *MockCredentialUseCase) ResolveActive(ctx context.Context) (*domain.Credential, string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Credential), args.String(1), args.Error(2)
}

// List mocks the List method of UseCase.
func (m *MockCredentialUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Credential, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Credential), args.Error(1)
}

// Delete mocks the Delete method of UseCase.
func (m *MockCredentialUseCase) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}
