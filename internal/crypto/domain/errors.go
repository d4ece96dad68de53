package domain

import (
	"github.com/docbrief/docbrief/internal/errors"
)

// Cryptographic error definitions.
//
// Configuration errors (missing or malformed master key) are deliberately
// kept apart from token errors: the former require operator intervention and
// map to internal errors at the HTTP layer, while the latter are
// security-relevant events that callers route to audit logging.
var (
	// ErrMasterKeyNotSet indicates the MASTER_KEY environment variable is absent.
	//
	// The application cannot operate securely without it, so any encryption or
	// decryption attempt fails immediately with this error. It is never
	// retried and must not be swallowed by callers.
	ErrMasterKeyNotSet = errors.New(
		"MASTER_KEY environment variable not set: cannot perform encryption or decryption",
	)

	// ErrInvalidMasterKey indicates the configured master key is malformed.
	//
	// The key must be a URL-safe base64 encoding of exactly 32 raw bytes.
	// The error message names the expected format but never echoes the
	// configured value, which may itself be sensitive.
	ErrInvalidMasterKey = errors.New(
		"invalid MASTER_KEY: must be a URL-safe base64-encoded 32-byte key",
	)

	// ErrInvalidToken indicates a ciphertext token failed authentication.
	//
	// The token was corrupted, truncated, produced with a different key, or
	// otherwise tampered with. This is a security-relevant event: callers
	// should record an audit entry before propagating it.
	ErrInvalidToken = errors.Wrap(
		errors.ErrInvalidInput,
		"token is invalid or has been tampered with",
	)

	// ErrEmptyInput indicates an empty string was passed to Encrypt or Decrypt.
	//
	// This is a caller bug, rejected before any cryptographic work occurs.
	ErrEmptyInput = errors.Wrap(errors.ErrInvalidInput, "input must be a non-empty string")
)
