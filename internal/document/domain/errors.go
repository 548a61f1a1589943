package domain

import (
	"github.com/inkvault/inkvault/internal/errors"
)

// Document workflow error definitions.
//
// These are the translated, caller-facing errors of the crypto workflow. In
// particular ErrWrongPasswordOrCorrupt is a single undifferentiated condition:
// distinguishing "wrong password" from "corrupted file" would hand an oracle
// to an attacker, so the two are deliberately reported as one.
var (
	// ErrWrongPasswordOrCorrupt indicates decryption failed: the password is
	// wrong or the document is corrupted. Recoverable by re-prompting.
	ErrWrongPasswordOrCorrupt = errors.Wrap(errors.ErrInvalidInput, "wrong password or corrupted document")

	// ErrUserCancelled indicates the user dismissed the password prompt. The
	// open operation terminates without exposing any plaintext.
	ErrUserCancelled = errors.Wrap(errors.ErrCancelled, "password prompt cancelled")

	// ErrMissingPassword indicates a save with custom mode was requested
	// without a password. Recoverable by prompting again.
	ErrMissingPassword = errors.Wrap(errors.ErrInvalidInput, "password is required for custom mode")

	// ErrInvalidSaveMode indicates an unknown save mode string.
	ErrInvalidSaveMode = errors.Wrap(errors.ErrInvalidInput, "invalid save mode")

	// ErrDocumentNotFound indicates no stored document exists at the given path.
	ErrDocumentNotFound = errors.Wrap(errors.ErrNotFound, "document not found")
)
