// Package service provides the cryptographic services behind encrypted documents:
// AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305) and password-based key derivation.
package service

import (
	cryptoDomain "github.com/inkvault/inkvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and
	// a freshly generated random nonce. The nonce is never caller-supplied.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD. Returns
	// cryptoDomain.ErrDecryptionFailed when the authentication tag does not
	// verify, regardless of cause.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyDeriver turns a human password plus a random salt into a fixed-length
// symmetric key. Derivation is deterministic: the same (password, salt,
// iterations) always yields the same key.
type KeyDeriver interface {
	// Derive returns a 32-byte key. The caller owns the returned slice and
	// must clear it with cryptoDomain.Zero once the key is no longer needed.
	Derive(password string, salt []byte, iterations int) ([]byte, error)
}
