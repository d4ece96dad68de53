// Package domain defines the document-processing domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/errors"
)

// JobStatus is the lifecycle state of a processing job.
type JobStatus string

// Processing job lifecycle states.
const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusComplete   JobStatus = "complete"
	JobStatusError      JobStatus = "error"
)

// UploadedFile represents a document submitted for processing.
// StorageKey locates the raw bytes in the blob bucket.
type UploadedFile struct {
	ID         uuid.UUID
	Filename   string
	StorageKey string
	Filesize   int64
	Filetype   string
	UploadedAt time.Time
}

// Job tracks the state of a file being processed.
type Job struct {
	ID             uuid.UUID
	UploadedFileID uuid.UUID
	Status         JobStatus
	StatusMessage  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Flashcard is a single question/answer study prompt.
type Flashcard struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// Result stores the output of a successful processing job.
// Flashcards are persisted as a JSON column.
type Result struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	Summary     string
	KeyInsights string
	Flashcards  []Flashcard
	GeneratedAt time.Time
}

// UsageLog records one processing run for analytics.
type UsageLog struct {
	ID               uuid.UUID
	JobID            uuid.UUID
	ModelUsed        string
	ProcessingTimeMS int64
	CreatedAt        time.Time
}

// Domain-specific errors for job operations.
var (
	// ErrJobNotFound indicates the requested job does not exist.
	ErrJobNotFound = errors.Wrap(errors.ErrNotFound, "job not found")

	// ErrFileNotFound indicates the uploaded file does not exist.
	ErrFileNotFound = errors.Wrap(errors.ErrNotFound, "uploaded file not found")

	// ErrResultNotFound indicates the job has no stored result.
	ErrResultNotFound = errors.Wrap(errors.ErrNotFound, "result not found")

	// ErrJobAlreadyClaimed indicates the job was claimed by another worker.
	ErrJobAlreadyClaimed = errors.Wrap(errors.ErrConflict, "job already claimed")

	// ErrFileTooLarge indicates the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.Wrap(errors.ErrInvalidInput, "file exceeds the maximum allowed size")

	// ErrFormatNotAllowed indicates the upload has a disallowed file extension.
	ErrFormatNotAllowed = errors.Wrap(errors.ErrInvalidInput, "file format is not allowed")

	// ErrEmptyFile indicates the upload contains no data.
	ErrEmptyFile = errors.Wrap(errors.ErrInvalidInput, "file is empty")
)
