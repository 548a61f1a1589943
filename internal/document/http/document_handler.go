// Package http provides HTTP handlers for document operations. The password
// prompt capability is adapted to HTTP as a one-shot answer: a request either
// carries a password or it does not, and a missing or exhausted answer counts
// as a cancelled prompt.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	"github.com/inkvault/inkvault/internal/document/http/dto"
	documentUseCase "github.com/inkvault/inkvault/internal/document/usecase"
	"github.com/inkvault/inkvault/internal/httputil"
	customValidation "github.com/inkvault/inkvault/internal/validation"
)

// PasswordHeader carries the optional password for opening stored documents.
// A header keeps passwords out of URLs and access logs.
const PasswordHeader = "X-Document-Password"

// DocumentHandler handles HTTP requests for document operations.
type DocumentHandler struct {
	workflow        documentUseCase.CryptoWorkflow
	documentUseCase documentUseCase.DocumentUseCase
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler with required dependencies.
func NewDocumentHandler(
	workflow documentUseCase.CryptoWorkflow,
	useCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		workflow:        workflow,
		documentUseCase: useCase,
		logger:          logger,
	}
}

// newOneShotPrompter adapts a request-supplied password to the prompt
// capability. It answers the first prompt with the password and cancels every
// later prompt, so a wrong password surfaces as a decryption failure instead
// of an endless prompt loop. An empty password cancels immediately.
func newOneShotPrompter(password string) documentUseCase.PasswordPrompter {
	answered := false
	return func(_ context.Context, _ string) (string, error) {
		if password == "" || answered {
			return "", documentDomain.ErrUserCancelled
		}
		answered = true
		return password, nil
	}
}

// OpenHandler classifies and decrypts caller-supplied content.
// POST /v1/documents/open
// Returns 200 OK with the plaintext and the traversed workflow states.
func (h *DocumentHandler) OpenHandler(c *gin.Context) {
	var req dto.OpenContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.workflow.Open(c.Request.Context(), req.Content, newOneShotPrompter(req.Password))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOpenResult(result))
}

// SaveHandler serializes plaintext for persistence without storing it.
// POST /v1/documents/save
// Returns 200 OK with the serialized content.
func (h *DocumentHandler) SaveHandler(c *gin.Context) {
	var req dto.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	mode, err := documentUseCase.ParseSaveMode(req.Mode)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	result, err := h.workflow.Save(c.Request.Context(), req.Plaintext, mode, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSaveResult(result))
}

// UpsertHandler stores a document at the given path.
// PUT /v1/documents/*path
// Returns 201 Created with document metadata.
func (h *DocumentHandler) UpsertHandler(c *gin.Context) {
	path := documentPath(c)
	if path == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("path cannot be empty"), h.logger)
		return
	}

	var req dto.SaveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	mode, err := documentUseCase.ParseSaveMode(req.Mode)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	document, err := h.documentUseCase.Save(c.Request.Context(), path, req.Content, mode, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapDocument(document))
}

// GetHandler opens a stored document, decrypting it when needed. The optional
// X-Document-Password header answers the password prompt.
// GET /v1/documents/*path
// Returns 200 OK with the plaintext and workflow states.
func (h *DocumentHandler) GetHandler(c *gin.Context) {
	path := documentPath(c)
	if path == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("path cannot be empty"), h.logger)
		return
	}

	result, err := h.documentUseCase.Open(
		c.Request.Context(),
		path,
		newOneShotPrompter(c.GetHeader(PasswordHeader)),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOpenResult(result))
}

// DeleteHandler removes a stored document.
// DELETE /v1/documents/*path
// Returns 204 No Content.
func (h *DocumentHandler) DeleteHandler(c *gin.Context) {
	path := documentPath(c)
	if path == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("path cannot be empty"), h.logger)
		return
	}

	if err := h.documentUseCase.Delete(c.Request.Context(), path); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListHandler lists stored documents without decrypting any content.
// GET /v1/documents
// Returns 200 OK with document metadata.
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	documents, err := h.documentUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocuments(documents))
}

// documentPath extracts the document path from the wildcard URL parameter.
func documentPath(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("path"), "/")
}
