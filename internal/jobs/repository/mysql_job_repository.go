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

// MySQLJobRepository handles job persistence for MySQL.
// UUIDs are stored as strings since MySQL lacks a native UUID type.
type MySQLJobRepository struct {
	db *sql.DB
}

// NewMySQLJobRepository creates a new MySQLJobRepository
func NewMySQLJobRepository(db *sql.DB) *MySQLJobRepository {
	return &MySQLJobRepository{
		db: db,
	}
}

// CreateFile inserts a new uploaded file record
func (r *MySQLJobRepository) CreateFile(ctx context.Context, file *domain.UploadedFile) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO uploaded_files (id, filename, storage_key, filesize, filetype, uploaded_at)
			  VALUES (?, ?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(
		ctx, query, file.ID.String(), file.Filename, file.StorageKey, file.Filesize, file.Filetype,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create uploaded file")
	}
	return nil
}

// GetFileByID retrieves an uploaded file by ID
func (r *MySQLJobRepository) GetFileByID(ctx context.Context, id uuid.UUID) (*domain.UploadedFile, error) {
	var file domain.UploadedFile
	var idStr string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, filename, storage_key, filesize, filetype, uploaded_at
			  FROM uploaded_files WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id.String()).Scan(
		&idStr, &file.Filename, &file.StorageKey, &file.Filesize, &file.Filetype, &file.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get uploaded file")
	}

	file.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse uploaded file id")
	}

	return &file, nil
}

// CreateJob inserts a new processing job
func (r *MySQLJobRepository) CreateJob(ctx context.Context, job *domain.Job) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO jobs (id, uploaded_file_id, status, status_message, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx, query, job.ID.String(), job.UploadedFileID.String(), string(job.Status), job.StatusMessage,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create job")
	}
	return nil
}

// GetJobByID retrieves a job by ID
func (r *MySQLJobRepository) GetJobByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, uploaded_file_id, status, status_message, created_at, updated_at
			  FROM jobs WHERE id = ?`

	row := querier.QueryRowContext(ctx, query, id.String())

	var job domain.Job
	var idStr, fileIDStr, status string

	err := row.Scan(&idStr, &fileIDStr, &status, &job.StatusMessage, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get job")
	}

	if err := fillJobIDs(&job, idStr, fileIDStr); err != nil {
		return nil, err
	}

	job.Status = domain.JobStatus(status)
	return &job, nil
}

// ListJobs retrieves jobs ordered by ID descending (newest first) with pagination
func (r *MySQLJobRepository) ListJobs(ctx context.Context, offset, limit int) ([]*domain.Job, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, uploaded_file_id, status, status_message, created_at, updated_at
			  FROM jobs
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list jobs")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMySQLJobs(rows)
}

// GetQueuedJobs retrieves up to limit queued jobs, oldest first
func (r *MySQLJobRepository) GetQueuedJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, uploaded_file_id, status, status_message, created_at, updated_at
			  FROM jobs
			  WHERE status = ?
			  ORDER BY id ASC
			  LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, string(domain.JobStatusQueued), limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get queued jobs")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMySQLJobs(rows)
}

// ClaimJob transitions a queued job to processing. Returns ErrJobAlreadyClaimed
// when another worker got there first.
func (r *MySQLJobRepository) ClaimJob(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE jobs SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`

	result, err := querier.ExecContext(
		ctx, query, string(domain.JobStatusProcessing), id.String(), string(domain.JobStatusQueued),
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
func (r *MySQLJobRepository) SetJobStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.JobStatus,
	message string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE jobs SET status = ?, status_message = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, string(status), message, id.String())
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
func (r *MySQLJobRepository) CreateResult(ctx context.Context, result *domain.Result) error {
	querier := database.GetTx(ctx, r.db)

	flashcardsJSON, err := json.Marshal(result.Flashcards)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal flashcards")
	}

	query := `INSERT INTO results (id, job_id, summary, key_insights, flashcards, generated_at)
			  VALUES (?, ?, ?, ?, ?, NOW())`

	_, err = querier.ExecContext(
		ctx, query, result.ID.String(), result.JobID.String(), result.Summary, result.KeyInsights, flashcardsJSON,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create result")
	}
	return nil
}

// GetResultByJobID retrieves the stored result of a job
func (r *MySQLJobRepository) GetResultByJobID(ctx context.Context, jobID uuid.UUID) (*domain.Result, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, job_id, summary, key_insights, flashcards, generated_at
			  FROM results WHERE job_id = ?`

	row := querier.QueryRowContext(ctx, query, jobID.String())

	var result domain.Result
	var idStr, jobIDStr string
	var flashcardsJSON []byte

	err := row.Scan(&idStr, &jobIDStr, &result.Summary, &result.KeyInsights, &flashcardsJSON, &result.GeneratedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResultNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get result")
	}

	result.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse result id")
	}
	result.JobID, err = uuid.Parse(jobIDStr)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse result job id")
	}

	if flashcardsJSON != nil {
		if err := json.Unmarshal(flashcardsJSON, &result.Flashcards); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal flashcards")
		}
	}

	return &result, nil
}

// CreateUsageLog inserts a usage log row for a processing run
func (r *MySQLJobRepository) CreateUsageLog(ctx context.Context, usageLog *domain.UsageLog) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO usage_logs (id, job_id, model_used, processing_time_ms, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(
		ctx, query, usageLog.ID.String(), usageLog.JobID.String(), usageLog.ModelUsed, usageLog.ProcessingTimeMS,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create usage log")
	}
	return nil
}

// fillJobIDs parses string UUID columns into the job.
func fillJobIDs(job *domain.Job, idStr, fileIDStr string) error {
	var err error

	job.ID, err = uuid.Parse(idStr)
	if err != nil {
		return apperrors.Wrap(err, "failed to parse job id")
	}

	job.UploadedFileID, err = uuid.Parse(fileIDStr)
	if err != nil {
		return apperrors.Wrap(err, "failed to parse job uploaded file id")
	}

	return nil
}

// scanMySQLJobs converts job rows into domain jobs, translating string UUIDs.
func scanMySQLJobs(rows *sql.Rows) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		var job domain.Job
		var idStr, fileIDStr, status string

		err := rows.Scan(&idStr, &fileIDStr, &status, &job.StatusMessage, &job.CreatedAt, &job.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan job")
		}

		if err := fillJobIDs(&job, idStr, fileIDStr); err != nil {
			return nil, err
		}

		job.Status = domain.JobStatus(status)
		jobs = append(jobs, &job)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate jobs")
	}

	return jobs, nil
}
