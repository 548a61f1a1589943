package usecase

import (
	"context"
	"crypto/rand"

	cryptoDomain "github.com/inkvault/inkvault/internal/crypto/domain"
	cryptoService "github.com/inkvault/inkvault/internal/crypto/service"
	documentDomain "github.com/inkvault/inkvault/internal/document/domain"
	"github.com/inkvault/inkvault/internal/errors"
)

// cryptoWorkflow implements CryptoWorkflow on top of the AEAD manager and the
// key deriver. It owns no per-document state.
type cryptoWorkflow struct {
	aeadManager cryptoService.AEADManager
	keyDeriver  cryptoService.KeyDeriver
}

// NewCryptoWorkflow creates a new CryptoWorkflow.
func NewCryptoWorkflow(aeadManager cryptoService.AEADManager, keyDeriver cryptoService.KeyDeriver) CryptoWorkflow {
	return &cryptoWorkflow{
		aeadManager: aeadManager,
		keyDeriver:  keyDeriver,
	}
}

// Open classifies rawContent and decrypts it if needed.
//
// Plaintext passes through verbatim, including content that merely resembles
// an envelope but fails to parse. Encrypted content is tried against the
// fallback secret first; only if that fails is the prompter consulted, so
// fallback-encrypted documents open without any user interaction. Derived keys
// are wiped before returning on every path.
func (w *cryptoWorkflow) Open(ctx context.Context, rawContent string, prompt PasswordPrompter) (*OpenResult, error) {
	transitions := []documentDomain.WorkflowState{
		documentDomain.StateIdle,
		documentDomain.StateClassifying,
	}

	envelope := documentDomain.ParseEnvelope(rawContent)
	if envelope == nil {
		transitions = append(transitions, documentDomain.StatePlaintextReady)
		return &OpenResult{
			Plaintext:   rawContent,
			State:       documentDomain.NewSecurityState(false, documentDomain.KeySourceNone, ""),
			Transitions: transitions,
		}, nil
	}

	transitions = append(transitions, documentDomain.StateAttemptingFallback)
	plaintext, err := w.decryptAttempt(ctx, envelope, documentDomain.FallbackSecret)
	if err == nil {
		transitions = append(transitions, documentDomain.StateReady)
		return &OpenResult{
			Plaintext:   plaintext,
			State:       documentDomain.NewSecurityState(true, documentDomain.KeySourceFallback, documentDomain.FallbackSecret),
			Transitions: transitions,
		}, nil
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		return nil, err
	}

	reason := PromptReasonLocked
	failedAttempts := 0
	for {
		transitions = append(transitions, documentDomain.StateAwaitingPassword)
		password, err := prompt(ctx, reason)
		if err != nil {
			if errors.Is(err, errors.ErrCancelled) {
				transitions = append(transitions, documentDomain.StateCancelled)
				// A cancel after a failed attempt reports the failure itself:
				// one-shot callers that supply a single password and then
				// cancel see why the open did not succeed.
				if failedAttempts > 0 {
					return &OpenResult{Transitions: transitions}, documentDomain.ErrWrongPasswordOrCorrupt
				}
				return &OpenResult{Transitions: transitions}, documentDomain.ErrUserCancelled
			}
			return nil, errors.Wrap(err, "password prompt")
		}

		plaintext, err := w.decryptAttempt(ctx, envelope, password)
		if err == nil {
			transitions = append(transitions, documentDomain.StateReady)
			return &OpenResult{
				Plaintext:   plaintext,
				State:       documentDomain.NewSecurityState(true, documentDomain.KeySourceUserPassword, password),
				Transitions: transitions,
			}, nil
		}
		if !errors.Is(err, errors.ErrInvalidInput) {
			return nil, err
		}
		failedAttempts++
		reason = PromptReasonRetry
	}
}

// Save serializes plaintext for persistence according to mode.
func (w *cryptoWorkflow) Save(ctx context.Context, plaintext string, mode SaveMode, password string) (*SaveResult, error) {
	switch mode {
	case SaveModePlain:
		return &SaveResult{
			Content: plaintext,
			State:   documentDomain.NewSecurityState(false, documentDomain.KeySourceNone, ""),
		}, nil
	case SaveModeFallback:
		content, err := w.encrypt(ctx, plaintext, documentDomain.FallbackSecret)
		if err != nil {
			return nil, err
		}
		return &SaveResult{
			Content: content,
			State:   documentDomain.NewSecurityState(true, documentDomain.KeySourceFallback, documentDomain.FallbackSecret),
		}, nil
	case SaveModeCustom:
		if password == "" {
			return nil, documentDomain.ErrMissingPassword
		}
		content, err := w.encrypt(ctx, plaintext, password)
		if err != nil {
			return nil, err
		}
		return &SaveResult{
			Content: content,
			State:   documentDomain.NewSecurityState(true, documentDomain.KeySourceUserPassword, password),
		}, nil
	default:
		return nil, documentDomain.ErrInvalidSaveMode
	}
}

// decryptAttempt derives a key from password with the envelope's own salt and
// tries to open the ciphertext. Any key, nonce or authentication failure
// collapses into the single undifferentiated ErrWrongPasswordOrCorrupt.
func (w *cryptoWorkflow) decryptAttempt(ctx context.Context, envelope *documentDomain.Envelope, password string) (string, error) {
	// Key derivation is deliberately slow; honor cancellation before paying
	// for it.
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCancelled, err.Error())
	}

	key, err := w.keyDeriver.Derive(password, envelope.Salt, cryptoDomain.PBKDF2Iterations)
	if err != nil {
		return "", documentDomain.ErrWrongPasswordOrCorrupt
	}
	defer cryptoDomain.Zero(key)

	cipher, err := w.aeadManager.CreateCipher(key, envelope.Algorithm)
	if err != nil {
		return "", documentDomain.ErrWrongPasswordOrCorrupt
	}

	plaintext, err := cipher.Decrypt(envelope.Ciphertext, envelope.Nonce, nil)
	if err != nil {
		return "", documentDomain.ErrWrongPasswordOrCorrupt
	}
	return string(plaintext), nil
}

// encrypt derives a key from password with a brand-new random salt and seals
// plaintext into a serialized envelope. The AEAD picks a fresh nonce, so two
// saves of identical content never produce identical output.
func (w *cryptoWorkflow) encrypt(ctx context.Context, plaintext, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCancelled, err.Error())
	}

	salt := make([]byte, cryptoDomain.MinSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}

	key, err := w.keyDeriver.Derive(password, salt, cryptoDomain.PBKDF2Iterations)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(key)

	cipher, err := w.aeadManager.CreateCipher(key, cryptoDomain.AESGCM)
	if err != nil {
		return "", err
	}

	ciphertext, nonce, err := cipher.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", err
	}

	envelope := &documentDomain.Envelope{
		Algorithm:  cryptoDomain.AESGCM,
		Version:    documentDomain.EnvelopeVersion,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}
	return envelope.Serialize()
}
