package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/docbrief/docbrief/internal/crypto/domain"
	cryptoService "github.com/docbrief/docbrief/internal/crypto/service"
)

// KMSService returns the KMS service used to unwrap a KMS-wrapped master key.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// CipherProvider returns the lazy provider of the credential cipher.
//
// The master key is not read at startup: the first encrypt or decrypt
// triggers the factory below, and both success and failure are cached so the
// environment is inspected exactly once per process.
func (c *Container) CipherProvider() *cryptoService.CipherProvider {
	c.cipherProviderInit.Do(func() {
		c.cipherProvider = cryptoService.NewCipherProvider(c.buildCipher)
	})
	return c.cipherProvider
}

// buildCipher loads the master key from the environment and constructs the
// configured AEAD cipher. When KMSKeyURI is set the environment value is
// unwrapped through the keeper first.
func (c *Container) buildCipher() (cryptoService.SecretCipher, error) {
	ctx := context.Background()

	var keeper cryptoDomain.KMSKeeper
	if c.config.KMSKeyURI != "" {
		k, err := c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		keeper = k
	}

	masterKey, err := cryptoDomain.LoadMasterKeyFromEnv(ctx, keeper)
	if err != nil {
		return nil, err
	}
	defer masterKey.Close()

	return cryptoService.NewTokenCipher(masterKey, cryptoDomain.Algorithm(c.config.CipherAlgorithm))
}
