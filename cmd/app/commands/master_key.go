package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/docbrief/docbrief/internal/crypto/domain"
	cryptoService "github.com/docbrief/docbrief/internal/crypto/service"
)

// RunCreateMasterKey generates a fresh 32-byte master key and prints the
// environment variables to configure it.
//
// When kmsKeyURI is empty the key is printed directly in the MASTER_KEY
// encoding. When set, the key is wrapped through the KMS keeper first and
// KMS_KEY_URI is printed alongside, so the plain key never leaves the
// process.
//
// For local development use kmsKeyURI="base64key://<32-byte-base64-key>".
// Never use the base64key provider in production.
func RunCreateMasterKey(ctx context.Context, kmsKeyURI string, w io.Writer) error {
	if kmsKeyURI == "" {
		encoded, err := cryptoDomain.GenerateMasterKey()
		if err != nil {
			return fmt.Errorf("failed to generate master key: %w", err)
		}

		fmt.Fprintln(w, "# Master Key Configuration")
		fmt.Fprintln(w, "# Copy this environment variable to your .env file or secrets manager")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "MASTER_KEY=\"%s\"\n", encoded)
		return nil
	}

	masterKey := make([]byte, cryptoDomain.MasterKeySize)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(masterKey)

	kmsService := cryptoService.NewKMSService()
	keeperInterface, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closer, ok := keeperInterface.(io.Closer); ok {
			if closeErr := closer.Close(); closeErr != nil {
				fmt.Fprintf(w, "# Warning: failed to close KMS keeper: %v\n", closeErr)
			}
		}
	}()

	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	ciphertext, err := keeper.Encrypt(ctx, masterKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}

	fmt.Fprintln(w, "# Master Key Configuration (KMS Mode)")
	fmt.Fprintln(w, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	fmt.Fprintf(w, "MASTER_KEY=\"%s\"\n", base64.URLEncoding.EncodeToString(ciphertext))
	return nil
}
