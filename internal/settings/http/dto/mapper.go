package dto

import (
	"github.com/docbrief/docbrief/internal/settings/usecase"
)

// ToUpdateSettingsInput converts an UpdateSettingsRequest DTO to a use case input
func ToUpdateSettingsInput(req UpdateSettingsRequest, actor string) usecase.UpdateSettingsInput {
	return usecase.UpdateSettingsInput{
		Actor:                 actor,
		MaxFileSizeMB:         req.MaxFileSizeMB,
		AllowedFormats:        req.AllowedFormats,
		DefaultAIModel:        req.DefaultAIModel,
		EnableOCR:             req.EnableOCR,
		ProcessingConcurrency: req.ProcessingConcurrency,
	}
}
