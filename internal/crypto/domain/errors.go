package domain

import (
	"github.com/inkvault/inkvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors.
// ErrDecryptionFailed is deliberately a single undifferentiated error: a wrong
// key, a tampered ciphertext, and a corrupted envelope are indistinguishable
// from the caller's perspective so that failure modes do not leak information.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is
	// not supported. Supported: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeyMaterial indicates a programming-contract violation: a key
	// that is not exactly 32 bytes or a nonce that is not exactly 12 bytes.
	// Sizes are never silently coerced.
	ErrInvalidKeyMaterial = errors.Wrap(errors.ErrInvalidInput, "invalid key material")

	// ErrDecryptionFailed indicates authentication failure during decryption:
	// wrong key, tampered ciphertext, or corrupted data. The specific cause is
	// not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrEmptyPassword indicates key derivation was attempted with an empty password.
	ErrEmptyPassword = errors.Wrap(errors.ErrInvalidInput, "password must not be empty")

	// ErrInvalidSaltSize indicates a key-derivation salt shorter than MinSaltSize bytes.
	ErrInvalidSaltSize = errors.Wrap(errors.ErrInvalidInput, "salt must be at least 16 bytes")

	// ErrInvalidIterations indicates an iteration count below the mandated minimum.
	ErrInvalidIterations = errors.Wrap(errors.ErrInvalidInput, "iteration count below minimum")
)
