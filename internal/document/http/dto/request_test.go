package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenContentRequest_Validate(t *testing.T) {
	assert.Error(t, (&OpenContentRequest{}).Validate())
	assert.NoError(t, (&OpenContentRequest{Content: "# notes"}).Validate())
}

func TestSaveContentRequest_Validate(t *testing.T) {
	assert.Error(t, (&SaveContentRequest{Plaintext: "x"}).Validate(), "mode is required")
	assert.Error(t, (&SaveContentRequest{Plaintext: "x", Mode: "aes"}).Validate())
	assert.NoError(t, (&SaveContentRequest{Plaintext: "x", Mode: "fallback"}).Validate())
	// Empty plaintext is a valid document.
	assert.NoError(t, (&SaveContentRequest{Mode: "plain"}).Validate())
}

func TestSaveDocumentRequest_Validate(t *testing.T) {
	assert.Error(t, (&SaveDocumentRequest{Content: "x", Mode: "rot13"}).Validate())
	assert.NoError(t, (&SaveDocumentRequest{Content: "x", Mode: "custom", Password: "pw"}).Validate())
}

func TestScorePasswordRequest_Validate(t *testing.T) {
	assert.Error(t, (&ScorePasswordRequest{}).Validate())
	assert.NoError(t, (&ScorePasswordRequest{Password: "abc"}).Validate())
}

func TestGeneratePasswordRequest_Validate(t *testing.T) {
	assert.NoError(t, (&GeneratePasswordRequest{}).Validate())
	assert.NoError(t, (&GeneratePasswordRequest{Length: 32, Lower: true}).Validate())
	assert.Error(t, (&GeneratePasswordRequest{Length: 1000}).Validate())
}
