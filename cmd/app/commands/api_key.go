package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/allisson/go-pwdhash"
)

// RunHashAPIKey prints the Argon2id hash of an admin API key for the
// ADMIN_API_KEY_HASH environment variable.
//
// When plainKey is empty a random 32-byte key is generated and printed
// alongside the hash. The hash uses the same policy the auth middleware
// verifies with.
func RunHashAPIKey(plainKey string, w io.Writer) error {
	generated := false
	if plainKey == "" {
		randomBytes := make([]byte, 32)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("failed to generate api key: %w", err)
		}
		plainKey = base64.URLEncoding.EncodeToString(randomBytes)
		generated = true
	}

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		return fmt.Errorf("failed to create hasher: %w", err)
	}

	hash, err := hasher.Hash([]byte(plainKey))
	if err != nil {
		return fmt.Errorf("failed to hash api key: %w", err)
	}

	fmt.Fprintln(w, "# Admin API Key Configuration")
	fmt.Fprintln(w, "# Store the hash in the environment; hand the plain key to the operator")
	fmt.Fprintln(w)
	if generated {
		fmt.Fprintf(w, "# Plain API key (not recoverable from the hash):\n")
		fmt.Fprintf(w, "# %s\n", plainKey)
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "ADMIN_API_KEY_HASH=\"%s\"\n", hash)
	return nil
}
