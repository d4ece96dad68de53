package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/docbrief/docbrief/internal/crypto/domain"
)

func newTestKey(t *testing.T) *cryptoDomain.MasterKey {
	t.Helper()
	key := make([]byte, cryptoDomain.MasterKeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return &cryptoDomain.MasterKey{Key: key}
}

func newTestCipher(t *testing.T, alg cryptoDomain.Algorithm) *TokenCipher {
	t.Helper()
	cipher, err := NewTokenCipher(newTestKey(t), alg)
	require.NoError(t, err)
	return cipher
}

func TestNewTokenCipher(t *testing.T) {
	tests := []struct {
		name      string
		masterKey *cryptoDomain.MasterKey
		alg       cryptoDomain.Algorithm
		wantErr   error
	}{
		{
			name:      "aes-gcm",
			masterKey: newTestKey(t),
			alg:       cryptoDomain.AESGCM,
		},
		{
			name:      "chacha20-poly1305",
			masterKey: newTestKey(t),
			alg:       cryptoDomain.ChaCha20,
		},
		{
			name:      "nil key",
			masterKey: nil,
			alg:       cryptoDomain.AESGCM,
			wantErr:   cryptoDomain.ErrInvalidMasterKey,
		},
		{
			name:      "short key",
			masterKey: &cryptoDomain.MasterKey{Key: []byte("short")},
			alg:       cryptoDomain.AESGCM,
			wantErr:   cryptoDomain.ErrInvalidMasterKey,
		},
		{
			name:      "unsupported algorithm",
			masterKey: newTestKey(t),
			alg:       cryptoDomain.Algorithm("des"),
			wantErr:   cryptoDomain.ErrInvalidMasterKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cipher, err := NewTokenCipher(tt.masterKey, tt.alg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cipher)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, cipher)
		})
	}
}

func TestTokenCipher_RoundTrip(t *testing.T) {
	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			cipher := newTestCipher(t, alg)

			plaintexts := []string{
				"my-secret-api-key-12345",
				"a",
				"value with spaces and unicode: café ☕",
				"multi\nline\nvalue",
			}

			for _, plaintext := range plaintexts {
				token, err := cipher.Encrypt(plaintext)
				require.NoError(t, err)
				assert.NotEqual(t, plaintext, token)

				decrypted, err := cipher.Decrypt(token)
				require.NoError(t, err)
				assert.Equal(t, plaintext, decrypted)
			}
		})
	}
}

func TestTokenCipher_EncryptIsNonDeterministic(t *testing.T) {
	cipher := newTestCipher(t, cryptoDomain.AESGCM)

	token1, err := cipher.Encrypt("my-secret-api-key-12345")
	require.NoError(t, err)
	token2, err := cipher.Encrypt("my-secret-api-key-12345")
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
}

func TestTokenCipher_TokenIsURLSafe(t *testing.T) {
	cipher := newTestCipher(t, cryptoDomain.AESGCM)

	token, err := cipher.Encrypt("some data")
	require.NoError(t, err)

	for _, r := range token {
		assert.True(
			t,
			(r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
				(r >= '0' && r <= '9') || r == '-' || r == '_',
			"unexpected character %q in token", r,
		)
	}
}

func TestTokenCipher_DecryptTamperedToken(t *testing.T) {
	cipher := newTestCipher(t, cryptoDomain.AESGCM)

	token, err := cipher.Encrypt("some data")
	require.NoError(t, err)

	t.Run("last character mutated", func(t *testing.T) {
		last := token[len(token)-1]
		replacement := byte('Z')
		if last == replacement {
			replacement = 'z'
		}
		tampered := token[:len(token)-1] + string(replacement)

		_, err := cipher.Decrypt(tampered)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidToken)
	})

	t.Run("every single-character flip is detected", func(t *testing.T) {
		for i := range token {
			replacement := byte('A')
			if token[i] == replacement {
				replacement = 'B'
			}
			tampered := token[:i] + string(replacement) + token[i+1:]

			_, err := cipher.Decrypt(tampered)
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidToken, "flip at position %d", i)
		}
	})

	t.Run("truncated token", func(t *testing.T) {
		_, err := cipher.Decrypt(token[:len(token)/2])
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := cipher.Decrypt("not!!a%%token")
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidToken)
	})
}

func TestTokenCipher_DecryptWithDifferentKey(t *testing.T) {
	cipher1 := newTestCipher(t, cryptoDomain.AESGCM)
	cipher2 := newTestCipher(t, cryptoDomain.AESGCM)

	token, err := cipher1.Encrypt("my-secret-api-key-12345")
	require.NoError(t, err)

	_, err = cipher2.Decrypt(token)
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidToken)
}

func TestTokenCipher_AlgorithmMismatch(t *testing.T) {
	key := newTestKey(t)
	aesCipher, err := NewTokenCipher(key, cryptoDomain.AESGCM)
	require.NoError(t, err)
	chachaCipher, err := NewTokenCipher(key, cryptoDomain.ChaCha20)
	require.NoError(t, err)

	token, err := aesCipher.Encrypt("some data")
	require.NoError(t, err)

	// Same key, different algorithm: the version byte must not authenticate.
	_, err = chachaCipher.Decrypt(token)
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidToken)
}

func TestTokenCipher_EmptyInput(t *testing.T) {
	cipher := newTestCipher(t, cryptoDomain.AESGCM)

	_, err := cipher.Encrypt("")
	assert.ErrorIs(t, err, cryptoDomain.ErrEmptyInput)

	_, err = cipher.Decrypt("")
	assert.ErrorIs(t, err, cryptoDomain.ErrEmptyInput)
}
