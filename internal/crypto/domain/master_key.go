// Package domain defines the master key model and error taxonomy for the
// encryption-at-rest core.
//
// The process holds exactly one symmetric master key, supplied through the
// MASTER_KEY environment variable as a URL-safe base64 encoding of 32 raw
// bytes. The key is never persisted by this component; absence or a
// malformed value is a hard configuration failure, not a silent default.
package domain

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

// masterKeyEnvVar is the process configuration source for the master key.
const masterKeyEnvVar = "MASTER_KEY"

// keyEncoding is the textual encoding of the master key.
var keyEncoding = base64.URLEncoding

// MasterKey holds the raw 32-byte key material used for all credential
// encryption in the process.
//
// Security considerations:
//   - Generate keys with a cryptographically secure random source
//     (see GenerateMasterKey and the create-master-key CLI command).
//   - Call Close when the key is no longer needed to clear the material
//     from memory.
type MasterKey struct {
	Key []byte
}

// Close zeroes the key material.
func (m *MasterKey) Close() {
	Zero(m.Key)
	m.Key = nil
}

// KMSKeeper decrypts a KMS-wrapped master key. *secrets.Keeper from
// gocloud.dev satisfies this interface.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// LoadMasterKeyFromEnv reads and validates the master key from the
// MASTER_KEY environment variable.
//
// When keeper is non-nil the environment value is treated as a KMS-wrapped
// key: it is base64-decoded, unwrapped through the keeper, and the result is
// validated the same way as a plain key.
//
// Returns:
//   - ErrMasterKeyNotSet if the variable is absent or empty
//   - ErrInvalidMasterKey if the value does not decode to exactly 32 bytes;
//     the error carries the expected format but never the configured value
func LoadMasterKeyFromEnv(ctx context.Context, keeper KMSKeeper) (*MasterKey, error) {
	raw := os.Getenv(masterKeyEnvVar)
	if raw == "" {
		return nil, ErrMasterKeyNotSet
	}

	key, err := keyEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding failed", ErrInvalidMasterKey)
	}

	if keeper != nil {
		unwrapped, err := keeper.Decrypt(ctx, key)
		Zero(key)
		if err != nil {
			return nil, fmt.Errorf("%w: KMS unwrap failed", ErrInvalidMasterKey)
		}
		key = unwrapped
	}

	if len(key) != MasterKeySize {
		Zero(key)
		return nil, fmt.Errorf(
			"%w: decoded to %d bytes, want %d",
			ErrInvalidMasterKey,
			len(key),
			MasterKeySize,
		)
	}

	return &MasterKey{Key: key}, nil
}

// GenerateMasterKey returns a fresh random master key in the encoding
// expected by MASTER_KEY.
func GenerateMasterKey() (string, error) {
	key := make([]byte, MasterKeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate master key: %w", err)
	}
	defer Zero(key)

	return keyEncoding.EncodeToString(key), nil
}
