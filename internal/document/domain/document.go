package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a stored document. Content holds either the plaintext
// or the serialized envelope, exactly as it would live on disk; the store
// never sees decrypted content of an encrypted document.
type Document struct {
	// ID is the unique identifier for the document.
	ID uuid.UUID
	// Path is the logical key used to access the document (e.g., "/notes/journal.md").
	Path string
	// Content is the raw persisted content: plaintext or a serialized envelope.
	Content string
	// IsEncrypted indicates whether Content is an envelope.
	IsEncrypted bool
	// CreatedAt is the UTC timestamp when the document was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last save.
	UpdatedAt time.Time
}
