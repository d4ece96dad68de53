// Package service implements the authenticated encryption used to protect
// stored API keys at rest.
package service

// SecretCipher turns plaintext secrets into self-contained, tamper-evident,
// URL-safe ciphertext tokens and back.
//
// Implementations are stateless after construction and safe for concurrent
// use from multiple goroutines.
type SecretCipher interface {
	// Encrypt encrypts a non-empty plaintext string and returns a URL-safe
	// token. Encrypting the same plaintext twice yields different tokens.
	Encrypt(plaintext string) (string, error)

	// Decrypt authenticates and decrypts a token produced by Encrypt.
	// Returns domain.ErrInvalidToken if the token fails authentication.
	Decrypt(token string) (string, error)
}
