package domain

import (
	cryptoDomain "github.com/inkvault/inkvault/internal/crypto/domain"
)

// FallbackSecret is the well-known default password used for low-friction
// "encrypt by default" behavior.
//
// It is a build-time constant and is NOT secret from an attacker with source
// access. Its only purpose is convenience encryption against casual
// disclosure; it is not a security boundary. Do not confuse it with a true
// secret: real confidentiality requires a user-chosen password.
const FallbackSecret = "inkvault-fallback-key-v1"

// KeySource identifies which key material unlocked (or will lock) a document.
type KeySource string

const (
	// KeySourceNone means the document is plaintext; no key is in play.
	KeySourceNone KeySource = "none"
	// KeySourceFallback means the well-known fallback secret unlocked the document.
	KeySourceFallback KeySource = "fallback"
	// KeySourceUserPassword means a user-supplied password unlocked the document.
	KeySourceUserPassword KeySource = "user_password"
)

// WorkflowState is one state of the open-document state machine:
//
//	Idle → Classifying → (PlaintextReady |
//	    AttemptingFallback → (Ready | AwaitingPassword → (Ready | Cancelled)))
//
// The workflow records each transition so tests can assert on them directly
// instead of inferring them from side effects.
type WorkflowState string

const (
	StateIdle               WorkflowState = "idle"
	StateClassifying        WorkflowState = "classifying"
	StatePlaintextReady     WorkflowState = "plaintext_ready"
	StateAttemptingFallback WorkflowState = "attempting_fallback"
	StateAwaitingPassword   WorkflowState = "awaiting_password"
	StateReady              WorkflowState = "ready"
	StateCancelled          WorkflowState = "cancelled"
)

// SecurityState is the per-open-document runtime state handed to the
// workflow's caller. The session password lives only in memory for the
// session, so re-save works without re-prompting; it is never persisted and
// never logged.
type SecurityState struct {
	// IsEncrypted indicates whether the persisted form is an envelope.
	IsEncrypted bool
	// KeySource identifies which key material is active for this document.
	KeySource KeySource

	// sessionPassword is the password to reuse on silent re-save. Kept as a
	// byte slice so Clear can overwrite it (best-effort in a garbage-collected
	// runtime).
	sessionPassword []byte
}

// NewSecurityState builds a SecurityState, copying password so the caller's
// buffer is independent of the session copy.
func NewSecurityState(isEncrypted bool, source KeySource, password string) SecurityState {
	var pw []byte
	if password != "" {
		pw = []byte(password)
	}
	return SecurityState{
		IsEncrypted:     isEncrypted,
		KeySource:       source,
		sessionPassword: pw,
	}
}

// SessionPassword returns the in-memory password for silent re-save, or ""
// when none is held.
func (s *SecurityState) SessionPassword() string {
	return string(s.sessionPassword)
}

// Clear overwrites and drops the session password. Call when the document is
// closed or the application exits. Clearing is best-effort: a managed runtime
// gives no hard guarantee of memory wiping.
func (s *SecurityState) Clear() {
	cryptoDomain.Zero(s.sessionPassword)
	s.sessionPassword = nil
	s.KeySource = KeySourceNone
}
