package repository

import (
	"context"
	"database/sql"

	"github.com/inkvault/inkvault/internal/database"
	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	apperrors "github.com/inkvault/inkvault/internal/errors"
)

// MySQLDocumentRepository implements Document persistence for MySQL databases.
type MySQLDocumentRepository struct {
	db *sql.DB
}

// NewMySQLDocumentRepository creates a new MySQL Document repository instance.
func NewMySQLDocumentRepository(db *sql.DB) *MySQLDocumentRepository {
	return &MySQLDocumentRepository{db: db}
}

// Upsert inserts a document or replaces the content at an existing path. The
// original id and created_at survive an overwrite.
func (m *MySQLDocumentRepository) Upsert(ctx context.Context, document *documentDomain.Document) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO documents (id, path, content, is_encrypted, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  content = VALUES(content),
			  is_encrypted = VALUES(is_encrypted),
			  updated_at = VALUES(updated_at)`

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
func (m *MySQLDocumentRepository) GetByPath(
	ctx context.Context,
	path string,
) (*documentDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, path, content, is_encrypted, created_at, updated_at
			  FROM documents
			  WHERE path = ?
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
func (m *MySQLDocumentRepository) Delete(ctx context.Context, path string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM documents WHERE path = ?`

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
func (m *MySQLDocumentRepository) List(ctx context.Context) ([]*documentDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

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
