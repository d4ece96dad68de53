// Package repository provides data persistence implementations for the
// document-processing entities: uploaded files, jobs, results, and usage logs.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/database"
	"github.com/docbrief/docbrief/internal/jobs/domain"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

// PostgreSQLJobRepository handles job persistence for PostgreSQL
type PostgreSQLJobRepository struct {
	db *sql.DB
}

// NewPostgreSQLJobRepository creates a new PostgreSQLJobRepository
func NewPostgreSQLJobRepository(db *sql.DB) *PostgreSQLJobRepository {
	return &PostgreSQLJobRepository{
		db: db,
	}
}

// CreateFile inserts a new uploaded file record
func (r *PostgreSQLJobRepository) CreateFile(ctx context.Context, file *domain.UploadedFile) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO uploaded_files (id, filename, storage_key, filesize, filetype, uploaded_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())`

	_, err := querier.ExecContext(ctx, query, file.ID, file.Filename, file.StorageKey, file.Filesize, file.Filetype)
	if err != nil {
		return apperrors.Wrap(err, "failed to create uploaded file")
	}
	return nil
}

// GetFileByID retrieves an uploaded file by ID
func (r *PostgreSQLJobRepository) GetFileByID(ctx context.Context, id uuid.UUID) (*domain.UploadedFile, error) {
	var file domain.UploadedFile
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, filename, storage_key, filesize, filetype, uploaded_at
			  FROM uploaded_files WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&file.ID, &file.Filename, &file.StorageKey, &file.Filesize, &file.Filetype, &file.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get uploaded file")
	}

	return &file, nil
}

// CreateJob inserts a new processing job
func (r *PostgreSQLJobRepository) CreateJob(ctx context.Context, job *domain.Job) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO jobs (id, uploaded_file_id, status, status_message, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, job.ID, job.UploadedFileID, string(job.Status), job.StatusMessage)
	if err != nil {
		return apperrors.Wrap(err, "failed to create job")
	}
	return nil
}

// GetJobByID retrieves a job by ID
func (r *PostgreSQLJobRepository) GetJobByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	var status string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, uploaded_file_id, status, status_message, created_at, updated_at
			  FROM jobs WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&job.ID, &job.UploadedFileID, &status, &job.StatusMessage, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get job")
	}

	job.Status = domain.JobStatus(status)
	return &job, nil
}

// ListJobs retrieves jobs ordered by ID descending (newest first) with pagination
func (r *PostgreSQLJobRepository) ListJobs(ctx context.Context, offset, limit int) ([]*domain.Job, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, uploaded_file_id, status, status_message, created_at, updated_at
			  FROM jobs
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list jobs")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanJobs(rows)
}

// GetQueuedJobs retrieves up to limit queued jobs, oldest first
func (r *PostgreSQLJobRepository) GetQueuedJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, uploaded_file_id, status, status_message, created_at, updated_at
			  FROM jobs
			  WHERE status = $1
			  ORDER BY id ASC
			  LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, string(domain.JobStatusQueued), limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get queued jobs")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanJobs(rows)
}

// ClaimJob transitions a queued job to processing. Returns ErrJobAlreadyClaimed
// when another worker got there first.
func (r *PostgreSQLJobRepository) ClaimJob(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`

	result, err := querier.ExecContext(
		ctx, query, id, string(domain.JobStatusProcessing), string(domain.JobStatusQueued),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to claim job")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check claim result")
	}
	if affected == 0 {
		return domain.ErrJobAlreadyClaimed
	}
	return nil
}

// SetJobStatus updates the status and status message of a job
func (r *PostgreSQLJobRepository) SetJobStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.JobStatus,
	message string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE jobs SET status = $2, status_message = $3, updated_at = NOW() WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id, string(status), message)
	if err != nil {
		return apperrors.Wrap(err, "failed to set job status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check status update result")
	}
	if affected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// CreateResult inserts the output of a completed job. Flashcards are stored as JSON.
func (r *PostgreSQLJobRepository) CreateResult(ctx context.Context, result *domain.Result) error {
	querier := database.GetTx(ctx, r.db)

	flashcardsJSON, err := json.Marshal(result.Flashcards)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal flashcards")
	}

	query := `INSERT INTO results (id, job_id, summary, key_insights, flashcards, generated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())`

	_, err = querier.ExecContext(ctx, query, result.ID, result.JobID, result.Summary, result.KeyInsights, flashcardsJSON)
	if err != nil {
		return apperrors.Wrap(err, "failed to create result")
	}
	return nil
}

// GetResultByJobID retrieves the stored result of a job
func (r *PostgreSQLJobRepository) GetResultByJobID(ctx context.Context, jobID uuid.UUID) (*domain.Result, error) {
	var result domain.Result
	var flashcardsJSON []byte
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, job_id, summary, key_insights, flashcards, generated_at
			  FROM results WHERE job_id = $1`

	err := querier.QueryRowContext(ctx, query, jobID).Scan(
		&result.ID, &result.JobID, &result.Summary, &result.KeyInsights, &flashcardsJSON, &result.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResultNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get result")
	}

	if flashcardsJSON != nil {
		if err := json.Unmarshal(flashcardsJSON, &result.Flashcards); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal flashcards")
		}
	}

	return &result, nil
}

// CreateUsageLog inserts a usage log row for a processing run
func (r *PostgreSQLJobRepository) CreateUsageLog(ctx context.Context, usageLog *domain.UsageLog) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO usage_logs (id, job_id, model_used, processing_time_ms, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(ctx, query, usageLog.ID, usageLog.JobID, usageLog.ModelUsed, usageLog.ProcessingTimeMS)
	if err != nil {
		return apperrors.Wrap(err, "failed to create usage log")
	}
	return nil
}

// scanJobs converts job rows into domain jobs.
func scanJobs(rows *sql.Rows) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		var job domain.Job
		var status string

		err := rows.Scan(&job.ID, &job.UploadedFileID, &status, &job.StatusMessage, &job.CreatedAt, &job.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan job")
		}

		job.Status = domain.JobStatus(status)
		jobs = append(jobs, &job)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate jobs")
	}

	return jobs, nil
}
