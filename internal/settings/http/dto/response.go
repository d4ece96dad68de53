package dto

import (
	"time"

	"github.com/docbrief/docbrief/internal/settings/domain"
)

// SettingsResponse represents the API response for application settings
type SettingsResponse struct {
	MaxFileSizeMB         int       `json:"max_file_size_mb"`
	AllowedFormats        string    `json:"allowed_formats"`
	DefaultAIModel        string    `json:"default_ai_model"`
	EnableOCR             bool      `json:"enable_ocr"`
	ProcessingConcurrency int       `json:"processing_concurrency"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ToSettingsResponse converts a domain AppSetting to a SettingsResponse DTO
func ToSettingsResponse(setting *domain.AppSetting) SettingsResponse {
	return SettingsResponse{
		MaxFileSizeMB:         setting.MaxFileSizeMB,
		AllowedFormats:        setting.AllowedFormats,
		DefaultAIModel:        setting.DefaultAIModel,
		EnableOCR:             setting.EnableOCR,
		ProcessingConcurrency: setting.ProcessingConcurrency,
		UpdatedAt:             setting.UpdatedAt,
	}
}
