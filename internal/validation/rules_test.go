package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(apperrors.New("name: cannot be blank"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name: cannot be blank")
}

func TestFileExtensionList_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{name: "single extension", value: "pdf"},
		{name: "multiple extensions", value: "pdf,docx,txt"},
		{name: "whitespace tolerated", value: "pdf, docx"},
		{name: "uppercase tolerated", value: "PDF"},
		{name: "empty string", value: ""},
		{name: "dotted extension rejected", value: ".pdf", wantErr: true},
		{name: "path rejected", value: "../etc", wantErr: true},
		{name: "empty entry rejected", value: "pdf,,docx", wantErr: true},
		{name: "non-string rejected", value: 42, wantErr: true},
	}

	rule := FileExtensionList{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
