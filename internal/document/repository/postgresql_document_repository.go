// Package repository implements document persistence for PostgreSQL and
// MySQL. Stored content is whatever the crypto workflow produced: plaintext
// or a sealed envelope. The repository never inspects it.
package repository

import (
	"context"
	"database/sql"

	"github.com/inkvault/inkvault/internal/database"
	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	apperrors "github.com/inkvault/inkvault/internal/errors"
)

// PostgreSQLDocumentRepository implements Document persistence for PostgreSQL databases.
type PostgreSQLDocumentRepository struct {
	db *sql.DB
}

// NewPostgreSQLDocumentRepository creates a new PostgreSQL Document repository instance.
func NewPostgreSQLDocumentRepository(db *sql.DB) *PostgreSQLDocumentRepository {
	return &PostgreSQLDocumentRepository{db: db}
}

// Upsert inserts a document or replaces the content at an existing path. The
// original id and created_at survive an overwrite.
func (p *PostgreSQLDocumentRepository) Upsert(ctx context.Context, document *documentDomain.Document) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO documents (id, path, content, is_encrypted, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (path) DO UPDATE
			  SET content = EXCLUDED.content,
			      is_encrypted = EXCLUDED.is_encrypted,
			      updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		document.ID,
		document.Path,
		document.Content,
		document.IsEncrypted,
		document.CreatedAt,
		document.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert document")
	}
	return nil
}

// GetByPath retrieves a document by its path.
func (p *PostgreSQLDocumentRepository) GetByPath(
	ctx context.Context,
	path string,
) (*documentDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, path, content, is_encrypted, created_at, updated_at
			  FROM documents
			  WHERE path = $1
			  LIMIT 1`

	var document documentDomain.Document
	err := querier.QueryRowContext(ctx, query, path).Scan(
		&document.ID,
		&document.Path,
		&document.Content,
		&document.IsEncrypted,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document by path")
	}

	return &document, nil
}

// Delete removes a document by its path.
func (p *PostgreSQLDocumentRepository) Delete(ctx context.Context, path string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM documents WHERE path = $1`

	result, err := querier.ExecContext(ctx, query, path)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns all documents ordered by path.
func (p *PostgreSQLDocumentRepository) List(ctx context.Context) ([]*documentDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, path, content, is_encrypted, created_at, updated_at
			  FROM documents
			  ORDER BY path`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	defer func() { _ = rows.Close() }()

	var documents []*documentDomain.Document
	for rows.Next() {
		var document documentDomain.Document
		err := rows.Scan(
			&document.ID,
			&document.Path,
			&document.Content,
			&document.IsEncrypted,
			&document.CreatedAt,
			&document.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document")
		}
		documents = append(documents, &document)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate documents")
	}

	return documents, nil
}
