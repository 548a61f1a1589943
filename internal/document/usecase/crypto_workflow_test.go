package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cryptoService "github.com/inkvault/inkvault/internal/crypto/service"
	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	apperrors "github.com/inkvault/inkvault/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newWorkflow() CryptoWorkflow {
	return NewCryptoWorkflow(cryptoService.NewAEADManager(), cryptoService.NewKeyDeriver())
}

// failingPrompter fails the test if the workflow asks for a password.
func failingPrompter(t *testing.T) PasswordPrompter {
	t.Helper()
	return func(ctx context.Context, reason string) (string, error) {
		t.Fatalf("unexpected password prompt: %s", reason)
		return "", nil
	}
}

// scriptedPrompter returns the given passwords in order, then cancels. It
// records the reasons it was called with.
type scriptedPrompter struct {
	passwords []string
	reasons   []string
}

func (p *scriptedPrompter) prompt(_ context.Context, reason string) (string, error) {
	p.reasons = append(p.reasons, reason)
	if len(p.passwords) == 0 {
		return "", documentDomain.ErrUserCancelled
	}
	password := p.passwords[0]
	p.passwords = p.passwords[1:]
	return password, nil
}

func TestCryptoWorkflow_Open_Plaintext(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	content := "# My Notes\n\nJust plain text with {braces} inside."
	result, err := workflow.Open(ctx, content, failingPrompter(t))
	require.NoError(t, err)

	assert.Equal(t, content, result.Plaintext)
	assert.False(t, result.State.IsEncrypted)
	assert.Equal(t, documentDomain.KeySourceNone, result.State.KeySource)
	assert.Equal(t, []documentDomain.WorkflowState{
		documentDomain.StateIdle,
		documentDomain.StateClassifying,
		documentDomain.StatePlaintextReady,
	}, result.Transitions)
}

func TestCryptoWorkflow_Open_FallbackEncrypted(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	saved, err := workflow.Save(ctx, "diary entry", SaveModeFallback, "")
	require.NoError(t, err)
	require.True(t, documentDomain.IsEnvelope(saved.Content))

	// No prompt: the fallback key must unlock it silently.
	result, err := workflow.Open(ctx, saved.Content, failingPrompter(t))
	require.NoError(t, err)

	assert.Equal(t, "diary entry", result.Plaintext)
	assert.True(t, result.State.IsEncrypted)
	assert.Equal(t, documentDomain.KeySourceFallback, result.State.KeySource)
	assert.Equal(t, []documentDomain.WorkflowState{
		documentDomain.StateIdle,
		documentDomain.StateClassifying,
		documentDomain.StateAttemptingFallback,
		documentDomain.StateReady,
	}, result.Transitions)
}

func TestCryptoWorkflow_Open_CustomPassword(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	saved, err := workflow.Save(ctx, "secret plans", SaveModeCustom, "Hunter2!Hunter2!")
	require.NoError(t, err)

	prompter := &scriptedPrompter{passwords: []string{"Hunter2!Hunter2!"}}
	result, err := workflow.Open(ctx, saved.Content, prompter.prompt)
	require.NoError(t, err)

	assert.Equal(t, "secret plans", result.Plaintext)
	assert.Equal(t, documentDomain.KeySourceUserPassword, result.State.KeySource)
	assert.Equal(t, "Hunter2!Hunter2!", result.State.SessionPassword())
	assert.Equal(t, []string{PromptReasonLocked}, prompter.reasons)
	assert.Equal(t, []documentDomain.WorkflowState{
		documentDomain.StateIdle,
		documentDomain.StateClassifying,
		documentDomain.StateAttemptingFallback,
		documentDomain.StateAwaitingPassword,
		documentDomain.StateReady,
	}, result.Transitions)
}

func TestCryptoWorkflow_Open_WrongThenCorrectPassword(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	saved, err := workflow.Save(ctx, "secret plans", SaveModeCustom, "correct-password")
	require.NoError(t, err)

	prompter := &scriptedPrompter{passwords: []string{"wrong-password", "correct-password"}}
	result, err := workflow.Open(ctx, saved.Content, prompter.prompt)
	require.NoError(t, err)

	assert.Equal(t, "secret plans", result.Plaintext)
	assert.Equal(t, []string{PromptReasonLocked, PromptReasonRetry}, prompter.reasons)
	assert.Equal(t, []documentDomain.WorkflowState{
		documentDomain.StateIdle,
		documentDomain.StateClassifying,
		documentDomain.StateAttemptingFallback,
		documentDomain.StateAwaitingPassword,
		documentDomain.StateAwaitingPassword,
		documentDomain.StateReady,
	}, result.Transitions)
}

func TestCryptoWorkflow_Open_WrongPasswordThenCancel(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	saved, err := workflow.Save(ctx, "secret plans", SaveModeCustom, "correct-password")
	require.NoError(t, err)

	prompter := &scriptedPrompter{passwords: []string{"wrong-password"}}
	result, err := workflow.Open(ctx, saved.Content, prompter.prompt)

	assert.ErrorIs(t, err, documentDomain.ErrWrongPasswordOrCorrupt)
	require.NotNil(t, result)
	assert.Empty(t, result.Plaintext)
	assert.Equal(t, documentDomain.StateCancelled, result.Transitions[len(result.Transitions)-1])
}

func TestCryptoWorkflow_Open_CancelImmediately(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	saved, err := workflow.Save(ctx, "secret plans", SaveModeCustom, "correct-password")
	require.NoError(t, err)

	prompter := &scriptedPrompter{}
	result, err := workflow.Open(ctx, saved.Content, prompter.prompt)

	assert.ErrorIs(t, err, documentDomain.ErrUserCancelled)
	assert.ErrorIs(t, err, apperrors.ErrCancelled)
	require.NotNil(t, result)
	assert.Empty(t, result.Plaintext)
	assert.Equal(t, documentDomain.StateCancelled, result.Transitions[len(result.Transitions)-1])
}

func TestCryptoWorkflow_Open_TamperedCiphertext(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	saved, err := workflow.Save(ctx, "secret plans", SaveModeCustom, "correct-password")
	require.NoError(t, err)

	envelope := documentDomain.ParseEnvelope(saved.Content)
	require.NotNil(t, envelope)
	envelope.Ciphertext[0] ^= 0xff
	tampered, err := envelope.Serialize()
	require.NoError(t, err)

	// Even the correct password cannot open tampered content, and the error
	// does not say which of the two conditions occurred.
	prompter := &scriptedPrompter{passwords: []string{"correct-password"}}
	_, err = workflow.Open(ctx, tampered, prompter.prompt)
	assert.ErrorIs(t, err, documentDomain.ErrWrongPasswordOrCorrupt)
}

func TestCryptoWorkflow_Open_ContextCancelled(t *testing.T) {
	workflow := newWorkflow()

	saved, err := workflow.Save(context.Background(), "secret plans", SaveModeFallback, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = workflow.Open(ctx, saved.Content, failingPrompter(t))
	assert.ErrorIs(t, err, apperrors.ErrCancelled)
}

func TestCryptoWorkflow_Save_Plain(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	result, err := workflow.Save(ctx, "just text", SaveModePlain, "")
	require.NoError(t, err)

	assert.Equal(t, "just text", result.Content)
	assert.False(t, result.State.IsEncrypted)
	assert.False(t, documentDomain.IsEnvelope(result.Content))
}

func TestCryptoWorkflow_Save_CustomRequiresPassword(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	_, err := workflow.Save(ctx, "secret plans", SaveModeCustom, "")
	assert.ErrorIs(t, err, documentDomain.ErrMissingPassword)
}

func TestCryptoWorkflow_Save_InvalidMode(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	_, err := workflow.Save(ctx, "secret plans", SaveMode("rot13"), "")
	assert.ErrorIs(t, err, documentDomain.ErrInvalidSaveMode)
}

func TestCryptoWorkflow_Save_FreshSaltAndNoncePerSave(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	first, err := workflow.Save(ctx, "same content", SaveModeCustom, "same-password")
	require.NoError(t, err)
	second, err := workflow.Save(ctx, "same content", SaveModeCustom, "same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first.Content, second.Content)

	firstEnv := documentDomain.ParseEnvelope(first.Content)
	secondEnv := documentDomain.ParseEnvelope(second.Content)
	require.NotNil(t, firstEnv)
	require.NotNil(t, secondEnv)
	assert.NotEqual(t, firstEnv.Salt, secondEnv.Salt)
	assert.NotEqual(t, firstEnv.Nonce, secondEnv.Nonce)
	assert.NotEqual(t, firstEnv.Ciphertext, secondEnv.Ciphertext)
}

func TestCryptoWorkflow_ConcurrentDocuments(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			content := string(rune('a' + n))
			saved, err := workflow.Save(ctx, content, SaveModeFallback, "")
			assert.NoError(t, err)

			result, err := workflow.Open(ctx, saved.Content, func(context.Context, string) (string, error) {
				return "", documentDomain.ErrUserCancelled
			})
			assert.NoError(t, err)
			assert.Equal(t, content, result.Plaintext)
		}(i)
	}
	wg.Wait()
}

func TestParseSaveMode(t *testing.T) {
	for _, valid := range []string{"plain", "fallback", "custom"} {
		mode, err := ParseSaveMode(valid)
		assert.NoError(t, err)
		assert.Equal(t, SaveMode(valid), mode)
	}

	_, err := ParseSaveMode("aes")
	assert.ErrorIs(t, err, documentDomain.ErrInvalidSaveMode)
}
