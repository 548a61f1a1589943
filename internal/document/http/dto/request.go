// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/inkvault/inkvault/internal/validation"
)

// OpenContentRequest asks the server to classify and decrypt a raw document.
// The optional password acts as a one-shot prompt answer: when the fallback
// key fails and no password is present, the open behaves as a cancelled
// prompt.
type OpenContentRequest struct {
	Content  string `json:"content"`
	Password string `json:"password,omitempty"`
}

// Validate checks if the open content request is valid.
func (r *OpenContentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

// SaveContentRequest asks the server to serialize plaintext for persistence
// without storing it.
type SaveContentRequest struct {
	Plaintext string `json:"plaintext"`
	Mode      string `json:"mode"`
	Password  string `json:"password,omitempty"`
}

// Validate checks if the save content request is valid.
func (r *SaveContentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Mode, validation.Required, customValidation.SaveMode),
	)
}

// SaveDocumentRequest stores a document at the path given in the URL.
type SaveDocumentRequest struct {
	Content  string `json:"content"`
	Mode     string `json:"mode"`
	Password string `json:"password,omitempty"`
}

// Validate checks if the save document request is valid.
func (r *SaveDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Mode, validation.Required, customValidation.SaveMode),
	)
}

// ScorePasswordRequest rates a candidate password.
type ScorePasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks if the score password request is valid.
func (r *ScorePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

// GeneratePasswordRequest configures password generation. When no character
// class is enabled the generator defaults are used.
type GeneratePasswordRequest struct {
	Length         int  `json:"length,omitempty"`
	Upper          bool `json:"upper,omitempty"`
	Lower          bool `json:"lower,omitempty"`
	Digits         bool `json:"digits,omitempty"`
	Symbols        bool `json:"symbols,omitempty"`
	ExcludeSimilar bool `json:"exclude_similar,omitempty"`
}

// Validate checks if the generate password request is valid.
func (r *GeneratePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Length, validation.Min(0), validation.Max(256)),
	)
}
