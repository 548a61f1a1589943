package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	documentUseCase "github.com/inkvault/inkvault/internal/document/usecase"
)

// defaultWorkers bounds the number of files processed concurrently when the
// caller does not specify a worker count.
const defaultWorkers = 4

// RunEncryptFiles encrypts the given files in place, processing up to workers
// files concurrently. Files that are already envelopes are skipped. The mode
// must be fallback or custom; custom requires a password.
func RunEncryptFiles(
	ctx context.Context,
	workflow documentUseCase.CryptoWorkflow,
	logger *slog.Logger,
	writer io.Writer,
	modeStr string,
	password string,
	paths []string,
	workers int,
) error {
	mode, err := documentUseCase.ParseSaveMode(modeStr)
	if err != nil {
		return fmt.Errorf("invalid mode: %s (valid options: fallback, custom)", modeStr)
	}
	if mode == documentUseCase.SaveModePlain {
		return fmt.Errorf("invalid mode: %s (valid options: fallback, custom)", modeStr)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files to encrypt")
	}
	if workers <= 0 {
		workers = defaultWorkers
	}

	logger.Info("encrypting files",
		slog.String("mode", string(mode)),
		slog.Int("files", len(paths)),
		slog.Int("workers", workers),
	)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range paths {
		g.Go(func() error {
			status, err := encryptFile(ctx, workflow, mode, password, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(writer, "%s: %s\n", path, status)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to encrypt files: %w", err)
	}

	logger.Info("encryption completed", slog.Int("files", len(paths)))
	return nil
}

// encryptFile encrypts a single file in place. Returns a short status string
// for the command output.
func encryptFile(
	ctx context.Context,
	workflow documentUseCase.CryptoWorkflow,
	mode documentUseCase.SaveMode,
	password string,
	path string,
) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Skip files that are already envelopes; encrypting an envelope again
	// would nest it and lose the original classification.
	if documentDomain.ParseEnvelope(string(raw)) != nil {
		return "skipped (already encrypted)", nil
	}

	result, err := workflow.Save(ctx, string(raw), mode, password)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}

	if err := os.WriteFile(path, []byte(result.Content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "encrypted", nil
}
