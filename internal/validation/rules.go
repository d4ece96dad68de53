// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

var (
	// extensionRegex matches a bare file extension like "pdf" or "docx".
	extensionRegex = regexp.MustCompile(`^[a-z0-9]{1,10}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank checks that a string contains at least one non-whitespace character.
var NotBlank = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "cannot be blank")
	}
	return nil
})

// FileExtensionList validates a comma-separated list of file extensions,
// e.g. "pdf,docx,txt".
type FileExtensionList struct{}

// Validate checks that every entry in the list is a plausible extension.
func (f FileExtensionList) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError(
			"validation_file_extensions",
			"allowed formats must be a string",
		)
	}

	if s == "" {
		return nil
	}

	for _, part := range strings.Split(s, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		if !extensionRegex.MatchString(ext) {
			return validation.NewError(
				"validation_file_extensions",
				"allowed formats must be a comma-separated list of extensions (e.g. 'pdf,docx')",
			)
		}
	}

	return nil
}
