// Package usecase implements the application settings business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	auditDomain "github.com/docbrief/docbrief/internal/audit/domain"
	auditUseCase "github.com/docbrief/docbrief/internal/audit/usecase"
	"github.com/docbrief/docbrief/internal/database"
	"github.com/docbrief/docbrief/internal/settings/domain"

	apperrors "github.com/docbrief/docbrief/internal/errors"
	appValidation "github.com/docbrief/docbrief/internal/validation"
)

// UpdateSettingsInput contains the input data for a settings update
type UpdateSettingsInput struct {
	Actor                 string `json:"-"`
	MaxFileSizeMB         int    `json:"max_file_size_mb"`
	AllowedFormats        string `json:"allowed_formats"`
	DefaultAIModel        string `json:"default_ai_model"`
	EnableOCR             bool   `json:"enable_ocr"`
	ProcessingConcurrency int    `json:"processing_concurrency"`
}

// UseCase defines the interface for settings business logic operations
type UseCase interface {
	Get(ctx context.Context) (*domain.AppSetting, error)
	Update(ctx context.Context, input UpdateSettingsInput) (*domain.AppSetting, error)
}

// SettingsRepository interface defines settings repository operations
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.AppSetting, error)
	Save(ctx context.Context, setting *domain.AppSetting) error
}

// SettingsUseCase handles settings business logic
type SettingsUseCase struct {
	txManager    database.TxManager
	settingsRepo SettingsRepository
	auditUseCase auditUseCase.UseCase
}

// NewSettingsUseCase creates a new SettingsUseCase
func NewSettingsUseCase(
	txManager database.TxManager,
	settingsRepo SettingsRepository,
	auditUC auditUseCase.UseCase,
) *SettingsUseCase {
	return &SettingsUseCase{
		txManager:    txManager,
		settingsRepo: settingsRepo,
		auditUseCase: auditUC,
	}
}

func (uc *SettingsUseCase) validateUpdateSettingsInput(input UpdateSettingsInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.MaxFileSizeMB,
			validation.Required.Error("max_file_size_mb is required"),
			validation.Min(1).Error("max_file_size_mb must be at least 1"),
			validation.Max(500).Error("max_file_size_mb cannot exceed 500"),
		),
		validation.Field(&input.AllowedFormats,
			validation.Required.Error("allowed_formats is required"),
			appValidation.FileExtensionList{},
		),
		validation.Field(&input.DefaultAIModel,
			validation.Required.Error("default_ai_model is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("default_ai_model must be between 1 and 255 characters"),
		),
		validation.Field(&input.ProcessingConcurrency,
			validation.Required.Error("processing_concurrency is required"),
			validation.Min(1).Error("processing_concurrency must be at least 1"),
			validation.Max(32).Error("processing_concurrency cannot exceed 32"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Get returns the saved settings, falling back to defaults when none were saved yet.
func (uc *SettingsUseCase) Get(ctx context.Context) (*domain.AppSetting, error) {
	setting, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return domain.DefaultSettings(), nil
		}
		return nil, err
	}
	return setting, nil
}

// Update validates and persists new settings, recording an audit entry.
func (uc *SettingsUseCase) Update(ctx context.Context, input UpdateSettingsInput) (*domain.AppSetting, error) {
	if err := uc.validateUpdateSettingsInput(input); err != nil {
		return nil, err
	}

	setting := &domain.AppSetting{
		MaxFileSizeMB:         input.MaxFileSizeMB,
		AllowedFormats:        strings.ToLower(strings.ReplaceAll(input.AllowedFormats, " ", "")),
		DefaultAIModel:        strings.TrimSpace(input.DefaultAIModel),
		EnableOCR:             input.EnableOCR,
		ProcessingConcurrency: input.ProcessingConcurrency,
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.settingsRepo.Save(ctx, setting); err != nil {
			return err
		}

		details := map[string]any{
			"max_file_size_mb":       setting.MaxFileSizeMB,
			"allowed_formats":        setting.AllowedFormats,
			"default_ai_model":       setting.DefaultAIModel,
			"enable_ocr":             setting.EnableOCR,
			"processing_concurrency": setting.ProcessingConcurrency,
		}
		return uc.auditUseCase.Record(ctx, input.Actor, auditDomain.ActionSettingsUpdated, details)
	})
	if err != nil {
		return nil, err
	}

	return setting, nil
}
