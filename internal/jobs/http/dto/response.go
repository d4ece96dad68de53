// Package dto provides data transfer objects for the jobs HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/jobs/domain"
)

// JobResponse represents the API response for a processing job
type JobResponse struct {
	ID             uuid.UUID `json:"id"`
	UploadedFileID uuid.UUID `json:"uploaded_file_id"`
	Status         string    `json:"status"`
	StatusMessage  string    `json:"status_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JobListResponse represents a paginated list of jobs
type JobListResponse struct {
	Jobs   []JobResponse `json:"jobs"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

// FlashcardResponse represents a single flashcard in a result
type FlashcardResponse struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// ResultResponse represents the API response for a job result
type ResultResponse struct {
	ID          uuid.UUID           `json:"id"`
	JobID       uuid.UUID           `json:"job_id"`
	Summary     string              `json:"summary"`
	KeyInsights string              `json:"key_insights"`
	Flashcards  []FlashcardResponse `json:"flashcards"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// ToJobResponse converts a domain Job to a JobResponse DTO
func ToJobResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:             job.ID,
		UploadedFileID: job.UploadedFileID,
		Status:         string(job.Status),
		StatusMessage:  job.StatusMessage,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

// ToJobListResponse converts domain jobs to a list response DTO
func ToJobListResponse(jobs []*domain.Job, offset, limit int) JobListResponse {
	items := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, ToJobResponse(job))
	}
	return JobListResponse{
		Jobs:   items,
		Offset: offset,
		Limit:  limit,
	}
}

// ToResultResponse converts a domain Result to a ResultResponse DTO
func ToResultResponse(result *domain.Result) ResultResponse {
	flashcards := make([]FlashcardResponse, 0, len(result.Flashcards))
	for _, card := range result.Flashcards {
		flashcards = append(flashcards, FlashcardResponse{
			Question: card.Question,
			Answer:   card.Answer,
		})
	}
	return ResultResponse{
		ID:          result.ID,
		JobID:       result.JobID,
		Summary:     result.Summary,
		KeyInsights: result.KeyInsights,
		Flashcards:  flashcards,
		GeneratedAt: result.GeneratedAt,
	}
}
