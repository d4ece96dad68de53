// Package usecase implements the document-processing business logic: upload
// validation, job lifecycle, and AI summarization runs.
package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/database"
	"github.com/docbrief/docbrief/internal/jobs/domain"
	"github.com/docbrief/docbrief/internal/jobs/service"
	"github.com/docbrief/docbrief/internal/storage"

	credentialUseCase "github.com/docbrief/docbrief/internal/credentials/usecase"
	"github.com/docbrief/docbrief/internal/metrics"
	settingsUseCase "github.com/docbrief/docbrief/internal/settings/usecase"
)

// UploadInput contains the input data for a document upload
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UseCase defines the interface for job business logic operations
type UseCase interface {
	Upload(ctx context.Context, input UploadInput) (*domain.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	GetResult(ctx context.Context, jobID uuid.UUID) (*domain.Result, error)
	ListJobs(ctx context.Context, offset, limit int) ([]*domain.Job, error)
	PendingJobs(ctx context.Context, limit int) ([]*domain.Job, error)
	ProcessJob(ctx context.Context, jobID uuid.UUID) error
}

// JobRepository interface defines job repository operations
type JobRepository interface {
	CreateFile(ctx context.Context, file *domain.UploadedFile) error
	GetFileByID(ctx context.Context, id uuid.UUID) (*domain.UploadedFile, error)
	CreateJob(ctx context.Context, job *domain.Job) error
	GetJobByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	ListJobs(ctx context.Context, offset, limit int) ([]*domain.Job, error)
	GetQueuedJobs(ctx context.Context, limit int) ([]*domain.Job, error)
	ClaimJob(ctx context.Context, id uuid.UUID) error
	SetJobStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus, message string) error
	CreateResult(ctx context.Context, result *domain.Result) error
	GetResultByJobID(ctx context.Context, jobID uuid.UUID) (*domain.Result, error)
	CreateUsageLog(ctx context.Context, usageLog *domain.UsageLog) error
}

// JobUseCase handles job business logic
type JobUseCase struct {
	txManager       database.TxManager
	jobRepo         JobRepository
	blobStore       storage.BlobStore
	settingsUC      settingsUseCase.UseCase
	credentialUC    credentialUseCase.UseCase
	summarizer      service.Summarizer
	businessMetrics metrics.BusinessMetrics
}

// NewJobUseCase creates a new JobUseCase
func NewJobUseCase(
	txManager database.TxManager,
	jobRepo JobRepository,
	blobStore storage.BlobStore,
	settingsUC settingsUseCase.UseCase,
	credentialUC credentialUseCase.UseCase,
	summarizer service.Summarizer,
	businessMetrics metrics.BusinessMetrics,
) *JobUseCase {
	return &JobUseCase{
		txManager:       txManager,
		jobRepo:         jobRepo,
		blobStore:       blobStore,
		settingsUC:      settingsUC,
		credentialUC:    credentialUC,
		summarizer:      summarizer,
		businessMetrics: businessMetrics,
	}
}

// Upload validates a document against the current settings, stores its bytes
// in the blob bucket, and creates a queued processing job.
func (uc *JobUseCase) Upload(ctx context.Context, input UploadInput) (*domain.Job, error) {
	setting, err := uc.settingsUC.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.Size <= 0 {
		return nil, domain.ErrEmptyFile
	}
	if input.Size > setting.MaxFileSizeBytes() {
		return nil, domain.ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Filename), "."))
	if !setting.IsFormatAllowed(ext) {
		return nil, domain.ErrFormatNotAllowed
	}

	fileID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()
	storageKey := fmt.Sprintf("uploads/%s/%s.%s", now.Format("2006/01/02"), fileID, ext)

	if err := uc.blobStore.Save(ctx, storageKey, input.ContentType, input.Content); err != nil {
		return nil, err
	}

	file := &domain.UploadedFile{
		ID:         fileID,
		Filename:   filepath.Base(input.Filename),
		StorageKey: storageKey,
		Filesize:   input.Size,
		Filetype:   input.ContentType,
	}
	job := &domain.Job{
		ID:             uuid.Must(uuid.NewV7()),
		UploadedFileID: fileID,
		Status:         domain.JobStatusQueued,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.jobRepo.CreateFile(ctx, file); err != nil {
			return err
		}
		return uc.jobRepo.CreateJob(ctx, job)
	})
	if err != nil {
		// Remove the orphaned blob, the database rows never landed.
		_ = uc.blobStore.Delete(ctx, storageKey)
		return nil, err
	}

	return job, nil
}

// GetJob retrieves a job by ID
func (uc *JobUseCase) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return uc.jobRepo.GetJobByID(ctx, id)
}

// GetResult retrieves the stored result of a completed job
func (uc *JobUseCase) GetResult(ctx context.Context, jobID uuid.UUID) (*domain.Result, error) {
	return uc.jobRepo.GetResultByJobID(ctx, jobID)
}

// ListJobs retrieves jobs, newest first
func (uc *JobUseCase) ListJobs(ctx context.Context, offset, limit int) ([]*domain.Job, error) {
	return uc.jobRepo.ListJobs(ctx, offset, limit)
}

// PendingJobs retrieves queued jobs for the worker, oldest first
func (uc *JobUseCase) PendingJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	return uc.jobRepo.GetQueuedJobs(ctx, limit)
}

// ProcessJob claims a queued job and runs it to completion: load the document,
// resolve an active credential, summarize, and store the result and usage log.
// Failures after the claim mark the job as errored with the failure message.
func (uc *JobUseCase) ProcessJob(ctx context.Context, jobID uuid.UUID) error {
	job, err := uc.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}

	if err := uc.jobRepo.ClaimJob(ctx, job.ID); err != nil {
		return err
	}

	start := time.Now()
	summary, err := uc.runJob(ctx, job)
	if err != nil {
		uc.businessMetrics.RecordOperation(ctx, "jobs", "job_process", "error")
		if statusErr := uc.jobRepo.SetJobStatus(ctx, job.ID, domain.JobStatusError, err.Error()); statusErr != nil {
			return statusErr
		}
		return err
	}
	elapsed := time.Since(start)

	result := &domain.Result{
		ID:          uuid.Must(uuid.NewV7()),
		JobID:       job.ID,
		Summary:     summary.Summary,
		KeyInsights: summary.KeyInsights,
		Flashcards:  summary.Flashcards,
	}
	usageLog := &domain.UsageLog{
		ID:               uuid.Must(uuid.NewV7()),
		JobID:            job.ID,
		ModelUsed:        summary.ModelUsed,
		ProcessingTimeMS: elapsed.Milliseconds(),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.jobRepo.CreateResult(ctx, result); err != nil {
			return err
		}
		if err := uc.jobRepo.SetJobStatus(ctx, job.ID, domain.JobStatusComplete, ""); err != nil {
			return err
		}
		return uc.jobRepo.CreateUsageLog(ctx, usageLog)
	})
	if err != nil {
		return err
	}

	uc.businessMetrics.RecordOperation(ctx, "jobs", "job_process", "success")
	uc.businessMetrics.RecordDuration(ctx, "jobs", "job_process", elapsed, "success")
	return nil
}

// runJob executes the summarization for a claimed job.
func (uc *JobUseCase) runJob(ctx context.Context, job *domain.Job) (*service.Summary, error) {
	file, err := uc.jobRepo.GetFileByID(ctx, job.UploadedFileID)
	if err != nil {
		return nil, err
	}

	data, err := uc.blobStore.Load(ctx, file.StorageKey)
	if err != nil {
		return nil, err
	}

	setting, err := uc.settingsUC.Get(ctx)
	if err != nil {
		return nil, err
	}

	_, apiKey, err := uc.credentialUC.ResolveActive(ctx)
	if err != nil {
		return nil, err
	}

	return uc.summarizer.Summarize(ctx, string(data), setting.DefaultAIModel, apiKey)
}
