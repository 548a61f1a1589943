// Package usecase implements the open/save crypto workflow for documents and
// the stored-document business logic built on top of it. The workflow is the
// translation boundary of the error design: it turns low-level codec and KDF
// errors into the small caller-facing set in the document domain and is the
// only layer allowed to decide whether to retry.
package usecase

import (
	"context"

	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
)

// SaveMode selects how a document is persisted.
type SaveMode string

const (
	// SaveModePlain stores the plaintext unchanged.
	SaveModePlain SaveMode = "plain"
	// SaveModeFallback encrypts with the well-known fallback secret.
	SaveModeFallback SaveMode = "fallback"
	// SaveModeCustom encrypts with a caller-supplied password.
	SaveModeCustom SaveMode = "custom"
)

// ParseSaveMode converts a mode string to a SaveMode.
// Returns ErrInvalidSaveMode for unknown values.
func ParseSaveMode(s string) (SaveMode, error) {
	switch SaveMode(s) {
	case SaveModePlain, SaveModeFallback, SaveModeCustom:
		return SaveMode(s), nil
	default:
		return "", documentDomain.ErrInvalidSaveMode
	}
}

// PasswordPrompter is the capability the caller injects to collect a password
// when the fallback key fails. The reason parameter tells the caller why the
// prompt is shown (first attempt vs. failed retry). Cancellation is signalled
// by returning documentDomain.ErrUserCancelled; the workflow invokes the
// prompter again after each failed attempt, so interactive callers get
// unlimited retries and one-shot callers simply cancel the second call.
type PasswordPrompter func(ctx context.Context, reason string) (string, error)

// Prompt reasons passed to the PasswordPrompter.
const (
	// PromptReasonLocked is used for the first prompt after the fallback key failed.
	PromptReasonLocked = "document is password-protected"
	// PromptReasonRetry is used after a user-supplied password failed.
	PromptReasonRetry = "wrong password or corrupted document"
)

// OpenResult is the outcome of a successful (or plaintext) open.
type OpenResult struct {
	// Plaintext is the decrypted or verbatim document content.
	Plaintext string
	// State is the per-document security state; the caller owns it and must
	// Clear it when the document is closed.
	State documentDomain.SecurityState
	// Transitions records the workflow states traversed, in order, so callers
	// and tests can observe the state machine directly.
	Transitions []documentDomain.WorkflowState
}

// SaveResult is the outcome of a save: the content to persist plus the
// security state for the session.
type SaveResult struct {
	Content string
	State   documentDomain.SecurityState
}

// CryptoWorkflow orchestrates open/save of possibly-encrypted content.
// Implementations hold no per-document state; every call is independent and
// safe to run concurrently on different documents.
type CryptoWorkflow interface {
	// Open classifies rawContent, decrypts it if it is an envelope (fallback
	// key first, then prompting through prompt), and returns the plaintext.
	Open(ctx context.Context, rawContent string, prompt PasswordPrompter) (*OpenResult, error)

	// Save produces the serialized content for mode. Encrypting modes generate
	// a brand-new salt and nonce on every call, even for unchanged passwords.
	Save(ctx context.Context, plaintext string, mode SaveMode, password string) (*SaveResult, error)
}

// DocumentRepository defines the interface for document persistence operations.
type DocumentRepository interface {
	Upsert(ctx context.Context, document *documentDomain.Document) error
	GetByPath(ctx context.Context, path string) (*documentDomain.Document, error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context) ([]*documentDomain.Document, error)
}

// DocumentUseCase defines the business logic for stored documents. Open and
// Save run the crypto workflow; List and Delete never touch document content.
type DocumentUseCase interface {
	Save(ctx context.Context, path, plaintext string, mode SaveMode, password string) (*documentDomain.Document, error)
	Open(ctx context.Context, path string, prompt PasswordPrompter) (*OpenResult, error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context) ([]*documentDomain.Document, error)
}
