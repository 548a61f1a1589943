// Package validation provides custom validation rules for the application.
package validation

import (
	validation "github.com/jellydator/validation"

	apperrors "github.com/inkvault/inkvault/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// SaveMode validates that a string is one of the supported save modes.
var SaveMode = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_save_mode_type", "must be a string")
	}
	switch s {
	case "", "plain", "fallback", "custom":
		return nil
	default:
		return validation.NewError("validation_save_mode", "must be one of: plain, fallback, custom")
	}
})
