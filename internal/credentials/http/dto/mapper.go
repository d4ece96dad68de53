package dto

import (
	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/credentials/domain"
	"github.com/docbrief/docbrief/internal/credentials/usecase"
)

// ToCreateCredentialInput converts a CreateCredentialRequest DTO to a use case input
func ToCreateCredentialInput(req CreateCredentialRequest, actor string) usecase.CreateCredentialInput {
	return usecase.CreateCredentialInput{
		Actor:    actor,
		Name:     req.Name,
		Provider: req.Provider,
		APIKey:   req.APIKey,
		IsActive: req.IsActive,
		IsFree:   req.IsFree,
	}
}

// ToUpdateCredentialInput converts an UpdateCredentialRequest DTO to a use case input
func ToUpdateCredentialInput(req UpdateCredentialRequest, id uuid.UUID, actor string) usecase.UpdateCredentialInput {
	return usecase.UpdateCredentialInput{
		Actor:    actor,
		ID:       id,
		Name:     req.Name,
		Provider: req.Provider,
		APIKey:   req.APIKey,
		IsActive: req.IsActive,
		IsFree:   req.IsFree,
	}
}

// ToCredentialResponse converts a domain Credential to a CredentialResponse DTO
func ToCredentialResponse(credential *domain.Credential) CredentialResponse {
	return CredentialResponse{
		ID:        credential.ID,
		Name:      credential.Name,
		Provider:  credential.Provider,
		MaskedKey: credential.MaskedKey(),
		IsActive:  credential.IsActive,
		IsFree:    credential.IsFree,
		CreatedAt: credential.CreatedAt,
		UpdatedAt: credential.UpdatedAt,
	}
}

// ToCredentialListResponse converts domain credentials to a list response DTO
func ToCredentialListResponse(credentials []*domain.Credential, offset, limit int) CredentialListResponse {
	items := make([]CredentialResponse, 0, len(credentials))
	for _, credential := range credentials {
		items = append(items, ToCredentialResponse(credential))
	}
	return CredentialListResponse{
		Credentials: items,
		Offset:      offset,
		Limit:       limit,
	}
}
