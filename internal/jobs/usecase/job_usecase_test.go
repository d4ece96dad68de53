package usecase

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/docbrief/docbrief/internal/jobs/domain"
	"github.com/docbrief/docbrief/internal/jobs/service"

	credentialDomain "github.com/docbrief/docbrief/internal/credentials/domain"
	credentialMocks "github.com/docbrief/docbrief/internal/credentials/usecase/mocks"
	apperrors "github.com/docbrief/docbrief/internal/errors"
	settingsDomain "github.com/docbrief/docbrief/internal/settings/domain"
	settingsMocks "github.com/docbrief/docbrief/internal/settings/usecase/mocks"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockJobRepository is a mock implementation of JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) CreateFile(ctx context.Context, file *domain.UploadedFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockJobRepository) GetFileByID(ctx context.Context, id uuid.UUID) (*domain.UploadedFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadedFile), args.Error(1)
}

func (m *MockJobRepository) CreateJob(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) GetJobByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepository) ListJobs(ctx context.Context, offset, limit int) ([]*domain.Job, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}

func (m *MockJobRepository) GetQueuedJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}

func (m *MockJobRepository) ClaimJob(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobRepository) SetJobStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.JobStatus,
	message string,
) error {
	args := m.Called(ctx, id, status, message)
	return args.Error(0)
}

func (m *MockJobRepository) CreateResult(ctx context.Context, result *domain.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockJobRepository) GetResultByJobID(ctx context.Context, jobID uuid.UUID) (*domain.Result, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

func (m *MockJobRepository) CreateUsageLog(ctx context.Context, usageLog *domain.UsageLog) error {
	args := m.Called(ctx, usageLog)
	return args.Error(0)
}

// MockBlobStore is a mock implementation of storage.BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Save(ctx context.Context, key string, contentType string, r io.Reader) error {
	args := m.Called(ctx, key, contentType, r)
	return args.Error(0)
}

func (m *MockBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSummarizer is a mock implementation of service.Summarizer
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(
	ctx context.Context,
	documentText, model, apiKey string,
) (*service.Summary, error) {
	args := m.Called(ctx, documentText, model, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Summary), args.Error(1)
}

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics
type MockBusinessMetrics struct {
	mock.Mock
}

func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domainName, operation, status string) {
	m.Called(ctx, domainName, operation, status)
}

func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domainName, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domainName, operation, duration, status)
}

type testDeps struct {
	txManager    *MockTxManager
	jobRepo      *MockJobRepository
	blobStore    *MockBlobStore
	settingsUC   *settingsMocks.MockSettingsUseCase
	credentialUC *credentialMocks.MockCredentialUseCase
	summarizer   *MockSummarizer
	metrics      *MockBusinessMetrics
}

func setupUseCase(t *testing.T) (*JobUseCase, *testDeps) {
	t.Helper()

	deps := &testDeps{
		txManager:    &MockTxManager{},
		jobRepo:      &MockJobRepository{},
		blobStore:    &MockBlobStore{},
		settingsUC:   &settingsMocks.MockSettingsUseCase{},
		credentialUC: &credentialMocks.MockCredentialUseCase{},
		summarizer:   &MockSummarizer{},
		metrics:      &MockBusinessMetrics{},
	}

	uc := NewJobUseCase(
		deps.txManager,
		deps.jobRepo,
		deps.blobStore,
		deps.settingsUC,
		deps.credentialUC,
		deps.summarizer,
		deps.metrics,
	)
	return uc, deps
}

func defaultSettings() *settingsDomain.AppSetting {
	return settingsDomain.DefaultSettings()
}

func TestJobUseCase_Upload(t *testing.T) {
	t.Run("stores blob and creates queued job", func(t *testing.T) {
		uc, deps := setupUseCase(t)

		deps.settingsUC.On("Get", mock.Anything).Return(defaultSettings(), nil)
		deps.blobStore.On("Save", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "uploads/") && strings.HasSuffix(key, ".pdf")
		}), "application/pdf", mock.Anything).Return(nil)
		deps.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.jobRepo.On("CreateFile", mock.Anything, mock.MatchedBy(func(f *domain.UploadedFile) bool {
			return f.Filename == "lecture.pdf" && f.Filesize == 2048
		})).Return(nil)
		deps.jobRepo.On("CreateJob", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
			return j.Status == domain.JobStatusQueued
		})).Return(nil)

		job, err := uc.Upload(t.Context(), UploadInput{
			Filename:    "lecture.pdf",
			ContentType: "application/pdf",
			Size:        2048,
			Content:     strings.NewReader("%PDF-1.4"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusQueued, job.Status)
		deps.jobRepo.AssertExpectations(t)
	})

	t.Run("rejects empty file", func(t *testing.T) {
		uc, deps := setupUseCase(t)
		deps.settingsUC.On("Get", mock.Anything).Return(defaultSettings(), nil)

		_, err := uc.Upload(t.Context(), UploadInput{Filename: "lecture.pdf", Size: 0})
		assert.ErrorIs(t, err, domain.ErrEmptyFile)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		uc, deps := setupUseCase(t)
		deps.settingsUC.On("Get", mock.Anything).Return(defaultSettings(), nil)

		_, err := uc.Upload(t.Context(), UploadInput{
			Filename: "lecture.pdf",
			Size:     100 * 1024 * 1024,
		})
		assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	})

	t.Run("rejects disallowed format", func(t *testing.T) {
		uc, deps := setupUseCase(t)
		deps.settingsUC.On("Get", mock.Anything).Return(defaultSettings(), nil)

		_, err := uc.Upload(t.Context(), UploadInput{Filename: "malware.exe", Size: 100})
		assert.ErrorIs(t, err, domain.ErrFormatNotAllowed)
	})

	t.Run("cleans up blob when persistence fails", func(t *testing.T) {
		uc, deps := setupUseCase(t)

		deps.settingsUC.On("Get", mock.Anything).Return(defaultSettings(), nil)
		deps.blobStore.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		deps.txManager.On("WithTx", mock.Anything, mock.Anything).Return(assert.AnError)
		deps.blobStore.On("Delete", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.Upload(t.Context(), UploadInput{
			Filename:    "lecture.pdf",
			ContentType: "application/pdf",
			Size:        2048,
			Content:     strings.NewReader("%PDF-1.4"),
		})
		assert.Error(t, err)
		deps.blobStore.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestJobUseCase_ProcessJob(t *testing.T) {
	queuedJob := func() *domain.Job {
		return &domain.Job{
			ID:             uuid.Must(uuid.NewV7()),
			UploadedFileID: uuid.Must(uuid.NewV7()),
			Status:         domain.JobStatusQueued,
		}
	}

	t.Run("processes a queued job to completion", func(t *testing.T) {
		uc, deps := setupUseCase(t)
		job := queuedJob()
		file := &domain.UploadedFile{
			ID:         job.UploadedFileID,
			Filename:   "lecture.txt",
			StorageKey: "uploads/2026/08/29/file.txt",
		}

		deps.jobRepo.On("GetJobByID", mock.Anything, job.ID).Return(job, nil)
		deps.jobRepo.On("ClaimJob", mock.Anything, job.ID).Return(nil)
		deps.jobRepo.On("GetFileByID", mock.Anything, job.UploadedFileID).Return(file, nil)
		deps.blobStore.On("Load", mock.Anything, file.StorageKey).Return([]byte("document text"), nil)
		deps.settingsUC.On("Get", mock.Anything).Return(defaultSettings(), nil)
		deps.credentialUC.On("ResolveActive", mock.Anything).
			Return(&credentialDomain.Credential{Name: "openrouter-main"}, "sk-or-v1-abc123", nil)
		deps.summarizer.On("Summarize", mock.Anything, "document text", "openai/gpt-4o-mini", "sk-or-v1-abc123").
			Return(&service.Summary{
				Summary:     "A summary.",
				KeyInsights: "- one",
				Flashcards:  []domain.Flashcard{{Question: "Q?", Answer: "A."}},
				ModelUsed:   "openai/gpt-4o-mini",
			}, nil)
		deps.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.jobRepo.On("CreateResult", mock.Anything, mock.MatchedBy(func(r *domain.Result) bool {
			return r.JobID == job.ID && r.Summary == "A summary."
		})).Return(nil)
		deps.jobRepo.On("SetJobStatus", mock.Anything, job.ID, domain.JobStatusComplete, "").Return(nil)
		deps.jobRepo.On("CreateUsageLog", mock.Anything, mock.MatchedBy(func(u *domain.UsageLog) bool {
			return u.JobID == job.ID && u.ModelUsed == "openai/gpt-4o-mini"
		})).Return(nil)
		deps.metrics.On("RecordOperation", mock.Anything, "jobs", "job_process", "success").Return()
		deps.metrics.On("RecordDuration", mock.Anything, "jobs", "job_process", mock.Anything, "success").Return()

		err := uc.ProcessJob(t.Context(), job.ID)
		require.NoError(t, err)
		deps.jobRepo.AssertExpectations(t)
	})

	t.Run("skips job claimed by another worker", func(t *testing.T) {
		uc, deps := setupUseCase(t)
		job := queuedJob()

		deps.jobRepo.On("GetJobByID", mock.Anything, job.ID).Return(job, nil)
		deps.jobRepo.On("ClaimJob", mock.Anything, job.ID).Return(domain.ErrJobAlreadyClaimed)

		err := uc.ProcessJob(t.Context(), job.ID)
		assert.ErrorIs(t, err, domain.ErrJobAlreadyClaimed)
	})

	t.Run("marks job errored when summarization fails", func(t *testing.T) {
		uc, deps := setupUseCase(t)
		job := queuedJob()
		file := &domain.UploadedFile{ID: job.UploadedFileID, StorageKey: "uploads/file.txt"}

		deps.jobRepo.On("GetJobByID", mock.Anything, job.ID).Return(job, nil)
		deps.jobRepo.On("ClaimJob", mock.Anything, job.ID).Return(nil)
		deps.jobRepo.On("GetFileByID", mock.Anything, job.UploadedFileID).Return(file, nil)
		deps.blobStore.On("Load", mock.Anything, file.StorageKey).Return([]byte("text"), nil)
		deps.settingsUC.On("Get", mock.Anything).Return(defaultSettings(), nil)
		deps.credentialUC.On("ResolveActive", mock.Anything).
			Return(&credentialDomain.Credential{}, "key", nil)
		deps.summarizer.On("Summarize", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.New("upstream failure"))
		deps.metrics.On("RecordOperation", mock.Anything, "jobs", "job_process", "error").Return()
		deps.jobRepo.On("SetJobStatus", mock.Anything, job.ID, domain.JobStatusError, mock.Anything).
			Return(nil)

		err := uc.ProcessJob(t.Context(), job.ID)
		assert.Error(t, err)
		deps.jobRepo.AssertCalled(
			t, "SetJobStatus", mock.Anything, job.ID, domain.JobStatusError, mock.Anything,
		)
	})

	t.Run("marks job errored when no active credential", func(t *testing.T) {
		uc, deps := setupUseCase(t)
		job := queuedJob()
		file := &domain.UploadedFile{ID: job.UploadedFileID, StorageKey: "uploads/file.txt"}

		deps.jobRepo.On("GetJobByID", mock.Anything, job.ID).Return(job, nil)
		deps.jobRepo.On("ClaimJob", mock.Anything, job.ID).Return(nil)
		deps.jobRepo.On("GetFileByID", mock.Anything, job.UploadedFileID).Return(file, nil)
		deps.blobStore.On("Load", mock.Anything, file.StorageKey).Return([]byte("text"), nil)
		deps.settingsUC.On("Get", mock.Anything).Return(defaultSettings(), nil)
		deps.credentialUC.On("ResolveActive", mock.Anything).
			Return(nil, "", credentialDomain.ErrNoActiveCredential)
		deps.metrics.On("RecordOperation", mock.Anything, "jobs", "job_process", "error").Return()
		deps.jobRepo.On("SetJobStatus", mock.Anything, job.ID, domain.JobStatusError, mock.Anything).
			Return(nil)

		err := uc.ProcessJob(t.Context(), job.ID)
		assert.ErrorIs(t, err, credentialDomain.ErrNoActiveCredential)
	})
}

func TestJobUseCase_PendingJobs(t *testing.T) {
	uc, deps := setupUseCase(t)

	expected := []*domain.Job{{Status: domain.JobStatusQueued}}
	deps.jobRepo.On("GetQueuedJobs", mock.Anything, 10).Return(expected, nil)

	jobs, err := uc.PendingJobs(t.Context(), 10)
	require.NoError(t, err)
	assert.Equal(t, expected, jobs)
}
