package usecase

import (
	"context"
	"time"

	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	"github.com/inkvault/inkvault/internal/metrics"
)

// documentUseCaseWithMetrics decorates DocumentUseCase with metrics instrumentation.
type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Save records metrics for document save operations.
func (d *documentUseCaseWithMetrics) Save(
	ctx context.Context,
	path, plaintext string,
	mode SaveMode,
	password string,
) (*documentDomain.Document, error) {
	start := time.Now()
	document, err := d.next.Save(ctx, path, plaintext, mode, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "documents", "document_save", status)
	d.metrics.RecordDuration(ctx, "documents", "document_save", time.Since(start), status)

	return document, err
}

// Open records metrics for document open operations.
func (d *documentUseCaseWithMetrics) Open(
	ctx context.Context,
	path string,
	prompt PasswordPrompter,
) (*OpenResult, error) {
	start := time.Now()
	result, err := d.next.Open(ctx, path, prompt)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "documents", "document_open", status)
	d.metrics.RecordDuration(ctx, "documents", "document_open", time.Since(start), status)

	return result, err
}

// Delete records metrics for document deletion operations.
func (d *documentUseCaseWithMetrics) Delete(ctx context.Context, path string) error {
	start := time.Now()
	err := d.next.Delete(ctx, path)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "documents", "document_delete", status)
	d.metrics.RecordDuration(ctx, "documents", "document_delete", time.Since(start), status)

	return err
}

// List records metrics for document listing operations.
func (d *documentUseCaseWithMetrics) List(ctx context.Context) ([]*documentDomain.Document, error) {
	start := time.Now()
	documents, err := d.next.List(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "documents", "document_list", status)
	d.metrics.RecordDuration(ctx, "documents", "document_list", time.Since(start), status)

	return documents, err
}
