package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	apperrors "github.com/inkvault/inkvault/internal/errors"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testDocument() *documentDomain.Document {
	now := time.Now().UTC()
	return &documentDomain.Document{
		ID:          uuid.Must(uuid.NewV7()),
		Path:        "/notes/todo.md",
		Content:     "- buy milk",
		IsEncrypted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func documentColumns() []string {
	return []string{"id", "path", "content", "is_encrypted", "created_at", "updated_at"}
}

func TestPostgreSQLDocumentRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLDocumentRepository(db)
	document := testDocument()

	mock.ExpectExec(`(?s)INSERT INTO documents.+ON CONFLICT \(path\) DO UPDATE`).
		WithArgs(
			document.ID,
			document.Path,
			document.Content,
			document.IsEncrypted,
			document.CreatedAt,
			document.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), document)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLDocumentRepository_GetByPath(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLDocumentRepository(db)
	document := testDocument()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(documentColumns()).AddRow(
			document.ID,
			document.Path,
			document.Content,
			document.IsEncrypted,
			document.CreatedAt,
			document.UpdatedAt,
		)
		mock.ExpectQuery(`(?s)SELECT.+FROM documents.+WHERE path = \$1`).
			WithArgs(document.Path).
			WillReturnRows(rows)

		found, err := repo.GetByPath(context.Background(), document.Path)
		require.NoError(t, err)
		assert.Equal(t, document.ID, found.ID)
		assert.Equal(t, document.Content, found.Content)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT.+FROM documents.+WHERE path = \$1`).
			WithArgs("/missing.md").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByPath(context.Background(), "/missing.md")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLDocumentRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLDocumentRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM documents WHERE path = \$1`).
			WithArgs("/notes/todo.md").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "/notes/todo.md"))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM documents WHERE path = \$1`).
			WithArgs("/missing.md").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "/missing.md")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLDocumentRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLDocumentRepository(db)
	first := testDocument()
	second := testDocument()
	second.Path = "/notes/diary.md"
	second.IsEncrypted = true

	rows := sqlmock.NewRows(documentColumns()).
		AddRow(second.ID, second.Path, second.Content, second.IsEncrypted, second.CreatedAt, second.UpdatedAt).
		AddRow(first.ID, first.Path, first.Content, first.IsEncrypted, first.CreatedAt, first.UpdatedAt)
	mock.ExpectQuery(`(?s)SELECT.+FROM documents.+ORDER BY path`).WillReturnRows(rows)

	documents, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, documents, 2)
	assert.Equal(t, "/notes/diary.md", documents[0].Path)
	assert.True(t, documents[0].IsEncrypted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
