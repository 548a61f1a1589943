package dto

import (
	"time"

	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	documentUseCase "github.com/inkvault/inkvault/internal/document/usecase"
	"github.com/inkvault/inkvault/internal/password"
)

// OpenContentResponse is the outcome of an open operation. The session
// password itself never appears in responses; key_source tells the client
// which key unlocked the document.
type OpenContentResponse struct {
	Plaintext   string   `json:"plaintext"`
	IsEncrypted bool     `json:"is_encrypted"`
	KeySource   string   `json:"key_source"`
	Transitions []string `json:"transitions"`
}

// MapOpenResult converts a workflow open result to an API response.
func MapOpenResult(result *documentUseCase.OpenResult) OpenContentResponse {
	transitions := make([]string, 0, len(result.Transitions))
	for _, state := range result.Transitions {
		transitions = append(transitions, string(state))
	}
	return OpenContentResponse{
		Plaintext:   result.Plaintext,
		IsEncrypted: result.State.IsEncrypted,
		KeySource:   string(result.State.KeySource),
		Transitions: transitions,
	}
}

// SaveContentResponse carries the serialized (possibly sealed) content of a
// stateless save.
type SaveContentResponse struct {
	Content     string `json:"content"`
	IsEncrypted bool   `json:"is_encrypted"`
	KeySource   string `json:"key_source"`
}

// MapSaveResult converts a workflow save result to an API response.
func MapSaveResult(result *documentUseCase.SaveResult) SaveContentResponse {
	return SaveContentResponse{
		Content:     result.Content,
		IsEncrypted: result.State.IsEncrypted,
		KeySource:   string(result.State.KeySource),
	}
}

// DocumentResponse represents a stored document in API responses. Content is
// omitted; encrypted documents are only readable through an open operation.
type DocumentResponse struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	IsEncrypted bool      `json:"is_encrypted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapDocument converts a domain document to an API response.
func MapDocument(document *documentDomain.Document) DocumentResponse {
	return DocumentResponse{
		ID:          document.ID.String(),
		Path:        document.Path,
		IsEncrypted: document.IsEncrypted,
		CreatedAt:   document.CreatedAt,
		UpdatedAt:   document.UpdatedAt,
	}
}

// ListDocumentsResponse wraps the document listing.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// MapDocuments converts a list of domain documents to an API response.
func MapDocuments(documents []*documentDomain.Document) ListDocumentsResponse {
	responses := make([]DocumentResponse, 0, len(documents))
	for _, document := range documents {
		responses = append(responses, MapDocument(document))
	}
	return ListDocumentsResponse{Documents: responses}
}

// ScorePasswordResponse reports password strength.
type ScorePasswordResponse struct {
	Score       int      `json:"score"`
	Acceptable  bool     `json:"acceptable"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// MapStrength converts a password strength rating to an API response.
func MapStrength(strength password.Strength) ScorePasswordResponse {
	return ScorePasswordResponse{
		Score:       strength.Score,
		Acceptable:  strength.Acceptable,
		Suggestions: strength.Suggestions,
	}
}

// GeneratePasswordResponse carries a freshly generated password and its score.
type GeneratePasswordResponse struct {
	Password string `json:"password"`
	Score    int    `json:"score"`
}
