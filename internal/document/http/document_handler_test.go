package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoService "github.com/inkvault/inkvault/internal/crypto/service"
	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	"github.com/inkvault/inkvault/internal/document/http/dto"
	documentUseCase "github.com/inkvault/inkvault/internal/document/usecase"
	apperrors "github.com/inkvault/inkvault/internal/errors"
)

type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memoryDocumentRepo struct {
	documents map[string]*documentDomain.Document
}

func newMemoryDocumentRepo() *memoryDocumentRepo {
	return &memoryDocumentRepo{documents: make(map[string]*documentDomain.Document)}
}

func (m *memoryDocumentRepo) Upsert(_ context.Context, document *documentDomain.Document) error {
	m.documents[document.Path] = document
	return nil
}

func (m *memoryDocumentRepo) GetByPath(_ context.Context, path string) (*documentDomain.Document, error) {
	document, ok := m.documents[path]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return document, nil
}

func (m *memoryDocumentRepo) Delete(_ context.Context, path string) error {
	if _, ok := m.documents[path]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.documents, path)
	return nil
}

func (m *memoryDocumentRepo) List(_ context.Context) ([]*documentDomain.Document, error) {
	documents := make([]*documentDomain.Document, 0, len(m.documents))
	for _, document := range m.documents {
		documents = append(documents, document)
	}
	return documents, nil
}

func newTestRouter() (*gin.Engine, *memoryDocumentRepo) {
	gin.SetMode(gin.TestMode)

	workflow := documentUseCase.NewCryptoWorkflow(cryptoService.NewAEADManager(), cryptoService.NewKeyDeriver())
	repo := newMemoryDocumentRepo()
	useCase := documentUseCase.NewDocumentUseCase(passthroughTxManager{}, repo, workflow)
	handler := NewDocumentHandler(workflow, useCase, slog.Default())

	router := gin.New()
	router.POST("/v1/documents/open", handler.OpenHandler)
	router.POST("/v1/documents/save", handler.SaveHandler)
	router.GET("/v1/documents", handler.ListHandler)
	router.PUT("/v1/documents/*path", handler.UpsertHandler)
	router.GET("/v1/documents/*path", handler.GetHandler)
	router.DELETE("/v1/documents/*path", handler.DeleteHandler)
	return router, repo
}

func performJSON(router *gin.Engine, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	request := httptest.NewRequest(method, target, &buf)
	request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestOpenHandler_Plaintext(t *testing.T) {
	router, _ := newTestRouter()

	recorder := performJSON(router, http.MethodPost, "/v1/documents/open", dto.OpenContentRequest{
		Content: "# hello",
	}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response dto.OpenContentResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "# hello", response.Plaintext)
	assert.False(t, response.IsEncrypted)
	assert.Equal(t, "none", response.KeySource)
	assert.Contains(t, response.Transitions, "plaintext_ready")
}

func TestOpenHandler_RoundTripWithPassword(t *testing.T) {
	router, _ := newTestRouter()

	saveRecorder := performJSON(router, http.MethodPost, "/v1/documents/save", dto.SaveContentRequest{
		Plaintext: "secret notes",
		Mode:      "custom",
		Password:  "Sup3rSecret!",
	}, nil)
	require.Equal(t, http.StatusOK, saveRecorder.Code)

	var saved dto.SaveContentResponse
	require.NoError(t, json.Unmarshal(saveRecorder.Body.Bytes(), &saved))
	assert.True(t, saved.IsEncrypted)
	assert.NotContains(t, saved.Content, "secret notes")

	openRecorder := performJSON(router, http.MethodPost, "/v1/documents/open", dto.OpenContentRequest{
		Content:  saved.Content,
		Password: "Sup3rSecret!",
	}, nil)
	require.Equal(t, http.StatusOK, openRecorder.Code)

	var opened dto.OpenContentResponse
	require.NoError(t, json.Unmarshal(openRecorder.Body.Bytes(), &opened))
	assert.Equal(t, "secret notes", opened.Plaintext)
	assert.Equal(t, "user_password", opened.KeySource)
}

func TestOpenHandler_WrongPassword(t *testing.T) {
	router, _ := newTestRouter()

	saveRecorder := performJSON(router, http.MethodPost, "/v1/documents/save", dto.SaveContentRequest{
		Plaintext: "secret notes",
		Mode:      "custom",
		Password:  "correct",
	}, nil)
	require.Equal(t, http.StatusOK, saveRecorder.Code)
	var saved dto.SaveContentResponse
	require.NoError(t, json.Unmarshal(saveRecorder.Body.Bytes(), &saved))

	recorder := performJSON(router, http.MethodPost, "/v1/documents/open", dto.OpenContentRequest{
		Content:  saved.Content,
		Password: "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "invalid_input")
}

func TestOpenHandler_MissingPasswordActsAsCancel(t *testing.T) {
	router, _ := newTestRouter()

	saveRecorder := performJSON(router, http.MethodPost, "/v1/documents/save", dto.SaveContentRequest{
		Plaintext: "secret notes",
		Mode:      "custom",
		Password:  "correct",
	}, nil)
	require.Equal(t, http.StatusOK, saveRecorder.Code)
	var saved dto.SaveContentResponse
	require.NoError(t, json.Unmarshal(saveRecorder.Body.Bytes(), &saved))

	recorder := performJSON(router, http.MethodPost, "/v1/documents/open", dto.OpenContentRequest{
		Content: saved.Content,
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "operation_cancelled")
}

func TestSaveHandler_Validation(t *testing.T) {
	router, _ := newTestRouter()

	recorder := performJSON(router, http.MethodPost, "/v1/documents/save", dto.SaveContentRequest{
		Plaintext: "x",
		Mode:      "rot13",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	recorder = performJSON(router, http.MethodPost, "/v1/documents/save", dto.SaveContentRequest{
		Plaintext: "x",
		Mode:      "custom",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "invalid_input")
}

func TestDocumentLifecycle(t *testing.T) {
	router, repo := newTestRouter()

	// Store an encrypted document.
	putRecorder := performJSON(router, http.MethodPut, "/v1/documents/notes/diary.md", dto.SaveDocumentRequest{
		Content: "dear diary",
		Mode:    "fallback",
	}, nil)
	require.Equal(t, http.StatusCreated, putRecorder.Code)
	assert.True(t, repo.documents["notes/diary.md"].IsEncrypted)

	// Open it back; the fallback key needs no password header.
	getRecorder := performJSON(router, http.MethodGet, "/v1/documents/notes/diary.md", nil, nil)
	require.Equal(t, http.StatusOK, getRecorder.Code)
	var opened dto.OpenContentResponse
	require.NoError(t, json.Unmarshal(getRecorder.Body.Bytes(), &opened))
	assert.Equal(t, "dear diary", opened.Plaintext)
	assert.Equal(t, "fallback", opened.KeySource)

	// List shows metadata, never content.
	listRecorder := performJSON(router, http.MethodGet, "/v1/documents", nil, nil)
	require.Equal(t, http.StatusOK, listRecorder.Code)
	assert.NotContains(t, listRecorder.Body.String(), "dear diary")
	assert.Contains(t, listRecorder.Body.String(), "notes/diary.md")

	// Delete and verify it is gone.
	deleteRecorder := performJSON(router, http.MethodDelete, "/v1/documents/notes/diary.md", nil, nil)
	assert.Equal(t, http.StatusNoContent, deleteRecorder.Code)

	getRecorder = performJSON(router, http.MethodGet, "/v1/documents/notes/diary.md", nil, nil)
	assert.Equal(t, http.StatusNotFound, getRecorder.Code)
}

func TestGetHandler_PasswordHeader(t *testing.T) {
	router, _ := newTestRouter()

	putRecorder := performJSON(router, http.MethodPut, "/v1/documents/vault.md", dto.SaveDocumentRequest{
		Content:  "locked away",
		Mode:     "custom",
		Password: "Sup3rSecret!",
	}, nil)
	require.Equal(t, http.StatusCreated, putRecorder.Code)

	// Without the header the prompt is cancelled.
	recorder := performJSON(router, http.MethodGet, "/v1/documents/vault.md", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "operation_cancelled")

	// With the header the document opens.
	recorder = performJSON(router, http.MethodGet, "/v1/documents/vault.md", nil, map[string]string{
		PasswordHeader: "Sup3rSecret!",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	var opened dto.OpenContentResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &opened))
	assert.Equal(t, "locked away", opened.Plaintext)
}
