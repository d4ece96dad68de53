// Package domain defines the API credential domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/errors"
)

// Credential stores an AI-provider API key encrypted at rest.
// Name is unique across all credentials.
type Credential struct {
	ID              uuid.UUID
	Name            string
	Provider        string
	EncryptedAPIKey string
	IsActive        bool
	IsFree          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MaskedKey returns a display-safe placeholder for the stored key.
// The stored value is ciphertext, so nothing of the real key can be
// shown without an explicit reveal.
func (c *Credential) MaskedKey() string {
	if c.EncryptedAPIKey == "" {
		return ""
	}
	return "********"
}

// Domain-specific errors for credential operations.
var (
	// ErrCredentialNotFound indicates the requested credential does not exist.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrCredentialAlreadyExists indicates a credential with the same name already exists.
	ErrCredentialAlreadyExists = errors.Wrap(errors.ErrConflict, "credential already exists")

	// ErrNoActiveCredential indicates no active credential is available for processing.
	ErrNoActiveCredential = errors.Wrap(errors.ErrNotFound, "no active credential available")
)
