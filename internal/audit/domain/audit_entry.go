// Package domain contains the audit trail entities.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the audit trail.
const (
	ActionCredentialCreated  = "credential.created"
	ActionCredentialUpdated  = "credential.updated"
	ActionCredentialRevealed = "credential.revealed"
	ActionCredentialDeleted  = "credential.deleted"
	ActionTamperDetected     = "credential.tamper_detected"
	ActionSettingsUpdated    = "settings.updated"
)

// AuditEntry records a security-relevant action for later review.
// Details carries action-specific context such as the affected object ID.
type AuditEntry struct {
	ID        uuid.UUID
	Actor     string
	Action    string
	Details   map[string]any
	CreatedAt time.Time
}
