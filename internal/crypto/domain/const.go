package domain

// Algorithm represents the AEAD construction used for credential encryption.
//
// Both supported algorithms provide authenticated encryption: any
// modification to a ciphertext token is detected on decryption.
type Algorithm string

const (
	// AESGCM is AES-256-GCM: a 32-byte key, 12-byte random nonce, and a
	// 16-byte authentication tag appended to the ciphertext. Preferred on
	// CPUs with AES-NI acceleration.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305 with the same key, nonce and tag sizes.
	// Constant-time in software, preferred on hardware without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// MasterKeySize is the required length of the decoded master key in bytes.
const MasterKeySize = 32
