// Package mocks provides mock implementations for testing settings consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/docbrief/docbrief/internal/settings/domain"
	"github.com/docbrief/docbrief/internal/settings/usecase"
)

// MockSettingsUseCase is a mock implementation of usecase.UseCase.
type MockSettingsUseCase struct {
	mock.Mock
}

// Get mocks the Get method of UseCase.
func (m *MockSettingsUseCase) Get(ctx context.Context) (*domain.AppSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSetting), args.Error(1)
}

// Update mocks the Update method of UseCase.
func (m *MockSettingsUseCase) Update(
	ctx context.Context,
	input usecase.UpdateSettingsInput,
) (*domain.AppSetting, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSetting), args.Error(1)
}
