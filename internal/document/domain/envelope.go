// Package domain defines the core domain models for encrypted documents: the
// persisted envelope format, the document entity, and the per-document
// security state tracked by the open/save workflow.
package domain

import (
	"bytes"
	"encoding/json"

	cryptoDomain "github.com/inkvault/inkvault/internal/crypto/domain"
)

// EnvelopeVersion is the current encrypted-document format version. Unknown
// versions are rejected on parse, never guessed at.
const EnvelopeVersion = "1.0"

// Envelope is the unit of persisted secrecy: the canonical structured
// representation of one encrypted document.
//
// Serialized form is a UTF-8 JSON object; Salt, Nonce, and Ciphertext are
// base64-encoded strings (Go's encoding/json does this for []byte fields).
// An envelope is immutable once produced: re-encryption of modified plaintext
// always produces a brand-new salt+nonce pair, never reusing a prior one.
type Envelope struct {
	// Algorithm is the AEAD algorithm identifier; must match a known value
	// exactly on decode.
	Algorithm cryptoDomain.Algorithm `json:"algorithm"`
	// Version is the format version string.
	Version string `json:"version"`
	// Salt is random input to key derivation, unique per encryption operation.
	Salt []byte `json:"salt"`
	// Nonce is the AEAD nonce, unique per encryption operation under the same key.
	Nonce []byte `json:"nonce"`
	// Ciphertext is the encrypted document with authentication tag attached.
	Ciphertext []byte `json:"ciphertext"`
}

// Serialize encodes the envelope as canonical JSON.
func (e *Envelope) Serialize() (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ParseEnvelope decodes text as an encrypted-document envelope.
//
// Returns nil — never an error — when the text is not a well-formed envelope:
// invalid JSON, a missing or empty required field, invalid base64, an unknown
// algorithm, or an unknown version. This is how the workflow distinguishes
// "plaintext document" from "encrypted document" non-destructively: parse
// failure means "treat as plaintext", not "corrupt". Additional JSON fields
// (e.g. timestamps) are permitted and ignored.
func ParseEnvelope(text string) *Envelope {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil
	}

	if env.Version != EnvelopeVersion {
		return nil
	}
	switch env.Algorithm {
	case cryptoDomain.AESGCM, cryptoDomain.ChaCha20:
	default:
		return nil
	}
	if len(env.Salt) == 0 || len(env.Nonce) == 0 || len(env.Ciphertext) == 0 {
		return nil
	}

	return &env
}

// IsEnvelope reports whether text parses as a valid encrypted-document
// envelope. Returns false on any parse failure.
func IsEnvelope(text string) bool {
	return ParseEnvelope(text) != nil
}
