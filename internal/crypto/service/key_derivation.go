package service

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/inkvault/inkvault/internal/crypto/domain"
)

// PBKDF2KeyDeriver implements KeyDeriver using PBKDF2 with SHA-256.
//
// The iteration count makes derivation deliberately CPU-expensive to resist
// offline brute force; callers that must stay responsive should run Derive off
// their interactive goroutine. The deriver is stateless and safe for
// concurrent use.
type PBKDF2KeyDeriver struct{}

// NewKeyDeriver creates a new PBKDF2KeyDeriver.
func NewKeyDeriver() *PBKDF2KeyDeriver {
	return &PBKDF2KeyDeriver{}
}

// Derive returns a 32-byte key derived from the password and salt.
//
// Preconditions: password non-empty, salt at least 16 bytes, iterations at
// least cryptoDomain.PBKDF2Iterations. Violations are input errors, not
// silently corrected. The caller must zero the returned key after use.
func (d *PBKDF2KeyDeriver) Derive(password string, salt []byte, iterations int) ([]byte, error) {
	if password == "" {
		return nil, cryptoDomain.ErrEmptyPassword
	}
	if len(salt) < cryptoDomain.MinSaltSize {
		return nil, cryptoDomain.ErrInvalidSaltSize
	}
	if iterations < cryptoDomain.PBKDF2Iterations {
		return nil, cryptoDomain.ErrInvalidIterations
	}

	return pbkdf2.Key([]byte(password), salt, iterations, cryptoDomain.KeySize, sha256.New), nil
}
