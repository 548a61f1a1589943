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

// RunDecryptFiles decrypts the given files in place, processing up to workers
// files concurrently. The fallback key is tried first; password (when
// non-empty) answers the prompt for password-protected files. Plaintext files
// are skipped.
func RunDecryptFiles(
	ctx context.Context,
	workflow documentUseCase.CryptoWorkflow,
	logger *slog.Logger,
	writer io.Writer,
	password string,
	paths []string,
	workers int,
) error {
	if len(paths) == 0 {
		return fmt.Errorf("no files to decrypt")
	}
	if workers <= 0 {
		workers = defaultWorkers
	}

	logger.Info("decrypting files",
		slog.Int("files", len(paths)),
		slog.Int("workers", workers),
	)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range paths {
		g.Go(func() error {
			status, err := decryptFile(ctx, workflow, password, path)
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
		return fmt.Errorf("failed to decrypt files: %w", err)
	}

	logger.Info("decryption completed", slog.Int("files", len(paths)))
	return nil
}

// decryptFile decrypts a single file in place. Returns a short status string
// for the command output.
func decryptFile(
	ctx context.Context,
	workflow documentUseCase.CryptoWorkflow,
	password string,
	path string,
) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	result, err := workflow.Open(ctx, string(raw), oneShotPrompter(password))
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	if !result.State.IsEncrypted {
		return "skipped (already plaintext)", nil
	}

	if err := os.WriteFile(path, []byte(result.Plaintext), 0o600); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "decrypted", nil
}

// oneShotPrompter answers the first prompt with password and cancels any
// further prompt. An empty password cancels immediately, so fallback-only
// files still open and password-protected ones fail cleanly.
func oneShotPrompter(password string) documentUseCase.PasswordPrompter {
	var answered bool
	var mu sync.Mutex

	return func(_ context.Context, _ string) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		if password == "" || answered {
			return "", documentDomain.ErrUserCancelled
		}
		answered = true
		return password, nil
	}
}
