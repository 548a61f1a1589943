package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inkvault/inkvault/internal/database"
	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	"github.com/inkvault/inkvault/internal/errors"
)

// documentUseCase implements DocumentUseCase for stored documents.
type documentUseCase struct {
	txManager    database.TxManager
	documentRepo DocumentRepository
	workflow     CryptoWorkflow
}

// NewDocumentUseCase creates a new DocumentUseCase.
func NewDocumentUseCase(
	txManager database.TxManager,
	documentRepo DocumentRepository,
	workflow CryptoWorkflow,
) DocumentUseCase {
	return &documentUseCase{
		txManager:    txManager,
		documentRepo: documentRepo,
		workflow:     workflow,
	}
}

// Save runs the crypto workflow for mode and upserts the resulting content at
// path. The plaintext never reaches the repository for encrypting modes.
func (d *documentUseCase) Save(
	ctx context.Context,
	path, plaintext string,
	mode SaveMode,
	password string,
) (*documentDomain.Document, error) {
	result, err := d.workflow.Save(ctx, plaintext, mode, password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	document := &documentDomain.Document{
		ID:          uuid.Must(uuid.NewV7()),
		Path:        path,
		Content:     result.Content,
		IsEncrypted: result.State.IsEncrypted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return d.documentRepo.Upsert(txCtx, document)
	})
	if err != nil {
		return nil, err
	}

	return document, nil
}

// Open loads the document at path and runs the open workflow on its content.
func (d *documentUseCase) Open(ctx context.Context, path string, prompt PasswordPrompter) (*OpenResult, error) {
	document, err := d.documentRepo.GetByPath(ctx, path)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, documentDomain.ErrDocumentNotFound
		}
		return nil, err
	}

	return d.workflow.Open(ctx, document.Content, prompt)
}

// Delete removes the document at path.
func (d *documentUseCase) Delete(ctx context.Context, path string) error {
	err := d.documentRepo.Delete(ctx, path)
	if errors.Is(err, errors.ErrNotFound) {
		return documentDomain.ErrDocumentNotFound
	}
	return err
}

// List returns all stored documents. Content is included verbatim; encrypted
// documents stay sealed until opened.
func (d *documentUseCase) List(ctx context.Context) ([]*documentDomain.Document, error) {
	return d.documentRepo.List(ctx)
}
