// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	validate "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator wraps the validator for echo
type CustomValidator struct {
	validator *validate.Validate
}

// New creates a CustomValidator with struct tag validation enabled
func New() *CustomValidator {
	return &CustomValidator{
		validator: validate.New(validate.WithRequiredStructEnabled()),
	}
}

// Validate validates the given struct using its validate tags
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
