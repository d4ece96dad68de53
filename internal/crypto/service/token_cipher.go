package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/docbrief/docbrief/internal/crypto/domain"
)

// Token layout: base64url(version || nonce || ciphertext+tag).
//
// The version byte selects the AEAD and is bound into the authentication tag
// as associated data, so a token cannot be replayed under a different
// algorithm. Strict base64 decoding rejects non-canonical encodings, which
// guarantees that flipping any single character of a token is detected.
const (
	versionAESGCM   byte = 0x01
	versionChaCha20 byte = 0x02
)

// tokenEncoding is unpadded URL-safe base64 in strict mode.
var tokenEncoding = base64.RawURLEncoding.Strict()

// TokenCipher implements SecretCipher using an AEAD over a single master key.
//
// Each Encrypt call draws a fresh random nonce, so identical plaintexts
// produce different tokens. The instance is read-only after construction and
// safe for concurrent use.
type TokenCipher struct {
	aead    cipher.AEAD
	version byte
}

// NewTokenCipher creates a cipher bound to the given master key and
// algorithm. The key material is copied into the underlying cipher state;
// callers may zero the MasterKey afterwards.
func NewTokenCipher(
	masterKey *cryptoDomain.MasterKey,
	alg cryptoDomain.Algorithm,
) (*TokenCipher, error) {
	if masterKey == nil || len(masterKey.Key) != cryptoDomain.MasterKeySize {
		return nil, cryptoDomain.ErrInvalidMasterKey
	}

	switch alg {
	case cryptoDomain.AESGCM:
		block, err := aes.NewCipher(masterKey.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to create AES cipher: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %w", err)
		}
		return &TokenCipher{aead: aead, version: versionAESGCM}, nil

	case cryptoDomain.ChaCha20:
		aead, err := chacha20poly1305.New(masterKey.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
		}
		return &TokenCipher{aead: aead, version: versionChaCha20}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", cryptoDomain.ErrInvalidMasterKey, alg)
	}
}

// Encrypt encrypts plaintext and returns a self-contained URL-safe token.
func (t *TokenCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", cryptoDomain.ErrEmptyInput
	}

	header := []byte{t.version}
	nonce := make([]byte, t.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	payload := append(header, nonce...)
	payload = t.aead.Seal(payload, nonce, []byte(plaintext), header)

	return tokenEncoding.EncodeToString(payload), nil
}

// Decrypt authenticates and decrypts a token produced by Encrypt.
func (t *TokenCipher) Decrypt(token string) (string, error) {
	if token == "" {
		return "", cryptoDomain.ErrEmptyInput
	}

	payload, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return "", cryptoDomain.ErrInvalidToken
	}

	nonceSize := t.aead.NonceSize()
	if len(payload) < 1+nonceSize+t.aead.Overhead() {
		return "", cryptoDomain.ErrInvalidToken
	}
	if payload[0] != t.version {
		return "", cryptoDomain.ErrInvalidToken
	}

	nonce := payload[1 : 1+nonceSize]
	ciphertext := payload[1+nonceSize:]

	plaintext, err := t.aead.Open(nil, nonce, ciphertext, payload[:1])
	if err != nil {
		return "", cryptoDomain.ErrInvalidToken
	}

	return string(plaintext), nil
}
