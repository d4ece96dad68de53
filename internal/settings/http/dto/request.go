// Package dto provides data transfer objects for the settings HTTP layer.
package dto

// UpdateSettingsRequest represents the API request to update application settings
type UpdateSettingsRequest struct {
	MaxFileSizeMB         int    `json:"max_file_size_mb"`
	AllowedFormats        string `json:"allowed_formats"`
	DefaultAIModel        string `json:"default_ai_model"`
	EnableOCR             bool   `json:"enable_ocr"`
	ProcessingConcurrency int    `json:"processing_concurrency"`
}
