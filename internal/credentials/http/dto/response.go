package dto

import (
	"time"

	"github.com/google/uuid"
)

// CredentialResponse represents the API response for a credential.
// The API key never appears here, only its masked placeholder.
type CredentialResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	MaskedKey string    `json:"masked_key"`
	IsActive  bool      `json:"is_active"`
	IsFree    bool      `json:"is_free"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CredentialListResponse represents a paginated list of credentials
type CredentialListResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
	Offset      int                  `json:"offset"`
	Limit       int                  `json:"limit"`
}

// RevealCredentialResponse carries the decrypted API key of a single reveal
type RevealCredentialResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	APIKey string    `json:"api_key"`
}
