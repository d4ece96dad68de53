package service

import (
	"context"
	"encoding/base64"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/docbrief/docbrief/internal/crypto/domain"
)

// envFactory builds the cipher the way the composition root does: master key
// from the environment, then a TokenCipher on top of it.
func envFactory(alg cryptoDomain.Algorithm) func() (SecretCipher, error) {
	return func() (SecretCipher, error) {
		masterKey, err := cryptoDomain.LoadMasterKeyFromEnv(context.Background(), nil)
		if err != nil {
			return nil, err
		}
		defer masterKey.Close()

		return NewTokenCipher(masterKey, alg)
	}
}

func TestCipherProvider_Get(t *testing.T) {
	key, err := cryptoDomain.GenerateMasterKey()
	require.NoError(t, err)
	t.Setenv("MASTER_KEY", key)

	provider := NewCipherProvider(envFactory(cryptoDomain.AESGCM))

	cipher, err := provider.Get()
	require.NoError(t, err)

	token, err := cipher.Encrypt("my-secret-api-key-12345")
	require.NoError(t, err)
	assert.NotEqual(t, "my-secret-api-key-12345", token)

	plaintext, err := cipher.Decrypt(token)
	require.NoError(t, err)
	assert.Equal(t, "my-secret-api-key-12345", plaintext)

	// Second call must return the cached instance.
	again, err := provider.Get()
	require.NoError(t, err)
	assert.Same(t, cipher, again)
}

func TestCipherProvider_ConstructsExactlyOnce(t *testing.T) {
	var calls atomic.Int32
	key, err := cryptoDomain.GenerateMasterKey()
	require.NoError(t, err)
	t.Setenv("MASTER_KEY", key)

	factory := envFactory(cryptoDomain.AESGCM)
	provider := NewCipherProvider(func() (SecretCipher, error) {
		calls.Add(1)
		return factory()
	})

	var wg sync.WaitGroup
	ciphers := make([]SecretCipher, 16)
	for i := range ciphers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cipher, err := provider.Get()
			assert.NoError(t, err)
			ciphers[i] = cipher
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, cipher := range ciphers {
		assert.Same(t, ciphers[0], cipher)
	}
}

func TestCipherProvider_MissingMasterKey(t *testing.T) {
	t.Setenv("MASTER_KEY", "")

	provider := NewCipherProvider(envFactory(cryptoDomain.AESGCM))

	_, err := provider.Get()
	require.ErrorIs(t, err, cryptoDomain.ErrMasterKeyNotSet)

	// The failure is cached, not silently retried.
	_, err = provider.Get()
	assert.ErrorIs(t, err, cryptoDomain.ErrMasterKeyNotSet)
}

func TestCipherProvider_InvalidMasterKey(t *testing.T) {
	t.Setenv("MASTER_KEY", "this-is-not-a-base64-key")

	provider := NewCipherProvider(envFactory(cryptoDomain.AESGCM))

	_, err := provider.Get()
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidMasterKey)
}

func TestCipherProvider_Reset(t *testing.T) {
	t.Setenv("MASTER_KEY", "")

	provider := NewCipherProvider(envFactory(cryptoDomain.AESGCM))

	_, err := provider.Get()
	require.ErrorIs(t, err, cryptoDomain.ErrMasterKeyNotSet)

	// Fix the configuration and reset: the next Get must succeed.
	t.Setenv("MASTER_KEY", base64.URLEncoding.EncodeToString(make([]byte, cryptoDomain.MasterKeySize)))
	provider.Reset()

	cipher, err := provider.Get()
	require.NoError(t, err)
	assert.NotNil(t, cipher)
}
