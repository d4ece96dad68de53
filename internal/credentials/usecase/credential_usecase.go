// Package usecase implements the credential business logic: encryption of
// API keys at rest, masked reads, audited reveals, and tamper detection.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/credentials/domain"
	"github.com/docbrief/docbrief/internal/database"

	auditDomain "github.com/docbrief/docbrief/internal/audit/domain"
	auditUseCase "github.com/docbrief/docbrief/internal/audit/usecase"
	cryptoDomain "github.com/docbrief/docbrief/internal/crypto/domain"
	cryptoService "github.com/docbrief/docbrief/internal/crypto/service"
	apperrors "github.com/docbrief/docbrief/internal/errors"
	"github.com/docbrief/docbrief/internal/metrics"
	appValidation "github.com/docbrief/docbrief/internal/validation"
)

// CreateCredentialInput contains the input data for credential creation
type CreateCredentialInput struct {
	Actor    string `json:"-"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	IsActive bool   `json:"is_active"`
	IsFree   bool   `json:"is_free"`
}

// UpdateCredentialInput contains the input data for a credential update.
// An empty APIKey keeps the stored key unchanged.
type UpdateCredentialInput struct {
	Actor    string    `json:"-"`
	ID       uuid.UUID `json:"-"`
	Name     string    `json:"name"`
	Provider string    `json:"provider"`
	APIKey   string    `json:"api_key"`
	IsActive bool      `json:"is_active"`
	IsFree   bool      `json:"is_free"`
}

// UseCase defines the interface for credential business logic operations
type UseCase interface {
	Create(ctx context.Context, input CreateCredentialInput) (*domain.Credential, error)
	Update(ctx context.Context, input UpdateCredentialInput) (*domain.Credential, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Credential, error)
	Reveal(ctx context.Context, id uuid.UUID, actor string) (string, error)
	ResolveActive(ctx context.Context) (*domain.Credential, string, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Credential, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
}

// CredentialRepository interface defines credential repository operations
type CredentialRepository interface {
	Create(ctx context.Context, credential *domain.Credential) error
	Update(ctx context.Context, credential *domain.Credential) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Credential, error)
	GetActive(ctx context.Context) (*domain.Credential, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Credential, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CipherProvider supplies the lazily constructed secret cipher.
type CipherProvider interface {
	Get() (cryptoService.SecretCipher, error)
}

// CredentialUseCase handles credential business logic
type CredentialUseCase struct {
	txManager       database.TxManager
	credentialRepo  CredentialRepository
	cipherProvider  CipherProvider
	auditUseCase    auditUseCase.UseCase
	businessMetrics metrics.BusinessMetrics
}

// NewCredentialUseCase creates a new CredentialUseCase
func NewCredentialUseCase(
	txManager database.TxManager,
	credentialRepo CredentialRepository,
	cipherProvider CipherProvider,
	auditUC auditUseCase.UseCase,
	businessMetrics metrics.BusinessMetrics,
) *CredentialUseCase {
	return &CredentialUseCase{
		txManager:       txManager,
		credentialRepo:  credentialRepo,
		cipherProvider:  cipherProvider,
		auditUseCase:    auditUC,
		businessMetrics: businessMetrics,
	}
}

func (uc *CredentialUseCase) validateCreateCredentialInput(input CreateCredentialInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("name must be between 1 and 100 characters"),
		),
		validation.Field(&input.Provider,
			validation.Required.Error("provider is required"),
			appValidation.NotBlank,
			validation.Length(1, 50).Error("provider must be between 1 and 50 characters"),
		),
		validation.Field(&input.APIKey,
			validation.Required.Error("api_key is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

func (uc *CredentialUseCase) validateUpdateCredentialInput(input UpdateCredentialInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("name must be between 1 and 100 characters"),
		),
		validation.Field(&input.Provider,
			validation.Required.Error("provider is required"),
			appValidation.NotBlank,
			validation.Length(1, 50).Error("provider must be between 1 and 50 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create encrypts the API key and stores a new credential, recording an audit entry.
func (uc *CredentialUseCase) Create(ctx context.Context, input CreateCredentialInput) (*domain.Credential, error) {
	if err := uc.validateCreateCredentialInput(input); err != nil {
		return nil, err
	}

	cipher, err := uc.cipherProvider.Get()
	if err != nil {
		return nil, err
	}

	encrypted, err := cipher.Encrypt(input.APIKey)
	if err != nil {
		return nil, err
	}

	credential := &domain.Credential{
		ID:              uuid.Must(uuid.NewV7()),
		Name:            strings.TrimSpace(input.Name),
		Provider:        strings.TrimSpace(input.Provider),
		EncryptedAPIKey: encrypted,
		IsActive:        input.IsActive,
		IsFree:          input.IsFree,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.credentialRepo.Create(ctx, credential); err != nil {
			return err
		}
		details := map[string]any{"credential_id": credential.ID.String(), "name": credential.Name}
		return uc.auditUseCase.Record(ctx, input.Actor, auditDomain.ActionCredentialCreated, details)
	})
	if err != nil {
		return nil, err
	}

	return credential, nil
}

// Update re-encrypts the API key when a new one is supplied and persists the
// changes, recording an audit entry.
func (uc *CredentialUseCase) Update(ctx context.Context, input UpdateCredentialInput) (*domain.Credential, error) {
	if err := uc.validateUpdateCredentialInput(input); err != nil {
		return nil, err
	}

	credential, err := uc.credentialRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	credential.Name = strings.TrimSpace(input.Name)
	credential.Provider = strings.TrimSpace(input.Provider)
	credential.IsActive = input.IsActive
	credential.IsFree = input.IsFree

	if input.APIKey != "" {
		cipher, err := uc.cipherProvider.Get()
		if err != nil {
			return nil, err
		}
		encrypted, err := cipher.Encrypt(input.APIKey)
		if err != nil {
			return nil, err
		}
		credential.EncryptedAPIKey = encrypted
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.credentialRepo.Update(ctx, credential); err != nil {
			return err
		}
		details := map[string]any{
			"credential_id": credential.ID.String(),
			"name":          credential.Name,
			"key_rotated":   input.APIKey != "",
		}
		return uc.auditUseCase.Record(ctx, input.Actor, auditDomain.ActionCredentialUpdated, details)
	})
	if err != nil {
		return nil, err
	}

	return credential, nil
}

// Get retrieves a credential by ID. The stored key stays encrypted; callers
// display it via MaskedKey.
func (uc *CredentialUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Credential, error) {
	return uc.credentialRepo.GetByID(ctx, id)
}

// Reveal decrypts and returns the stored API key, recording an audit entry.
// A token that fails authentication indicates tampering with the stored
// ciphertext; the event is recorded in the audit trail and the business
// metrics before the error propagates.
func (uc *CredentialUseCase) Reveal(ctx context.Context, id uuid.UUID, actor string) (string, error) {
	credential, err := uc.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	cipher, err := uc.cipherProvider.Get()
	if err != nil {
		return "", err
	}

	plaintext, err := cipher.Decrypt(credential.EncryptedAPIKey)
	if err != nil {
		if apperrors.Is(err, cryptoDomain.ErrInvalidToken) {
			uc.recordTamper(ctx, credential, actor)
		}
		return "", err
	}

	details := map[string]any{"credential_id": credential.ID.String(), "name": credential.Name}
	if err := uc.auditUseCase.Record(ctx, actor, auditDomain.ActionCredentialRevealed, details); err != nil {
		return "", err
	}

	return plaintext, nil
}

// ResolveActive returns the preferred active credential together with its
// decrypted API key, for use by the processing worker.
func (uc *CredentialUseCase) ResolveActive(ctx context.Context) (*domain.Credential, string, error) {
	credential, err := uc.credentialRepo.GetActive(ctx)
	if err != nil {
		return nil, "", err
	}

	cipher, err := uc.cipherProvider.Get()
	if err != nil {
		return nil, "", err
	}

	plaintext, err := cipher.Decrypt(credential.EncryptedAPIKey)
	if err != nil {
		if apperrors.Is(err, cryptoDomain.ErrInvalidToken) {
			uc.recordTamper(ctx, credential, "worker")
		}
		return nil, "", err
	}

	return credential, plaintext, nil
}

// List retrieves credentials ordered by name
func (uc *CredentialUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Credential, error) {
	return uc.credentialRepo.List(ctx, offset, limit)
}

// Delete removes a credential, recording an audit entry.
func (uc *CredentialUseCase) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	credential, err := uc.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.credentialRepo.Delete(ctx, credential.ID); err != nil {
			return err
		}
		details := map[string]any{"credential_id": credential.ID.String(), "name": credential.Name}
		return uc.auditUseCase.Record(ctx, actor, auditDomain.ActionCredentialDeleted, details)
	})
}

// recordTamper records a tamper-detection security event. The audit write is
// best effort so it cannot mask the decryption error itself.
func (uc *CredentialUseCase) recordTamper(ctx context.Context, credential *domain.Credential, actor string) {
	uc.businessMetrics.RecordOperation(ctx, "credentials", "decrypt_tamper", "error")

	details := map[string]any{"credential_id": credential.ID.String(), "name": credential.Name}
	_ = uc.auditUseCase.Record(ctx, actor, auditDomain.ActionTamperDetected, details)
}
