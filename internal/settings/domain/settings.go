// Package domain contains the application settings entity.
package domain

import (
	"strings"
	"time"
)

// AppSetting holds the single row of operator-tunable application settings.
type AppSetting struct {
	MaxFileSizeMB         int
	AllowedFormats        string
	DefaultAIModel        string
	EnableOCR             bool
	ProcessingConcurrency int
	UpdatedAt             time.Time
}

// DefaultSettings returns the settings used until an operator saves their own.
func DefaultSettings() *AppSetting {
	return &AppSetting{
		MaxFileSizeMB:         10,
		AllowedFormats:        "pdf,docx,txt",
		DefaultAIModel:        "openai/gpt-4o-mini",
		EnableOCR:             false,
		ProcessingConcurrency: 2,
	}
}

// AllowedFormatList splits the csv AllowedFormats into normalized extensions.
func (s *AppSetting) AllowedFormatList() []string {
	if s.AllowedFormats == "" {
		return nil
	}
	parts := strings.Split(s.AllowedFormats, ",")
	formats := make([]string, 0, len(parts))
	for _, part := range parts {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext != "" {
			formats = append(formats, ext)
		}
	}
	return formats
}

// IsFormatAllowed reports whether the given extension (without dot) is accepted.
func (s *AppSetting) IsFormatAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range s.AllowedFormatList() {
		if allowed == ext {
			return true
		}
	}
	return false
}

// MaxFileSizeBytes returns the upload size limit in bytes.
func (s *AppSetting) MaxFileSizeBytes() int64 {
	return int64(s.MaxFileSizeMB) * 1024 * 1024
}
