package app

import (
	"fmt"

	auditHTTP "github.com/docbrief/docbrief/internal/audit/http"
	credentialHTTP "github.com/docbrief/docbrief/internal/credentials/http"
	"github.com/docbrief/docbrief/internal/http"
	jobHTTP "github.com/docbrief/docbrief/internal/jobs/http"
	jobRepository "github.com/docbrief/docbrief/internal/jobs/repository"
	jobService "github.com/docbrief/docbrief/internal/jobs/service"
	jobUsecase "github.com/docbrief/docbrief/internal/jobs/usecase"
	settingsHTTP "github.com/docbrief/docbrief/internal/settings/http"
)

// JobRepository returns the job repository instance.
func (c *Container) JobRepository() (jobUsecase.JobRepository, error) {
	c.jobRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["jobRepo"] = fmt.Errorf("failed to get database for job repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.jobRepo = jobRepository.NewMySQLJobRepository(db)
		case "postgres":
			c.jobRepo = jobRepository.NewPostgreSQLJobRepository(db)
		default:
			c.initErrors["jobRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["jobRepo"]; exists {
		return nil, storedErr
	}
	return c.jobRepo, nil
}

// Summarizer returns the document summarizer service.
func (c *Container) Summarizer() jobService.Summarizer {
	c.summarizerInit.Do(func() {
		c.summarizer = jobService.NewOpenAISummarizer(c.config.AIBaseURL)
	})
	return c.summarizer
}

// JobUseCase returns the job use case.
func (c *Container) JobUseCase() (jobUsecase.UseCase, error) {
	c.jobUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["jobUseCase"] = err
			return
		}
		jobRepo, err := c.JobRepository()
		if err != nil {
			c.initErrors["jobUseCase"] = err
			return
		}
		blobStore, err := c.BlobStore()
		if err != nil {
			c.initErrors["jobUseCase"] = err
			return
		}
		settingsUC, err := c.SettingsUseCase()
		if err != nil {
			c.initErrors["jobUseCase"] = err
			return
		}
		credentialUC, err := c.CredentialUseCase()
		if err != nil {
			c.initErrors["jobUseCase"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["jobUseCase"] = err
			return
		}

		c.jobUseCase = jobUsecase.NewJobUseCase(
			txManager,
			jobRepo,
			blobStore,
			settingsUC,
			credentialUC,
			c.Summarizer(),
			businessMetrics,
		)
	})
	if storedErr, exists := c.initErrors["jobUseCase"]; exists {
		return nil, storedErr
	}
	return c.jobUseCase, nil
}

// initHandlers assembles the HTTP handlers for every module.
func (c *Container) initHandlers() (http.Handlers, error) {
	logger := c.Logger()

	credentialUC, err := c.CredentialUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get credential use case for http server: %w", err)
	}
	jobUC, err := c.JobUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get job use case for http server: %w", err)
	}
	settingsUC, err := c.SettingsUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get settings use case for http server: %w", err)
	}
	auditUC, err := c.AuditUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get audit use case for http server: %w", err)
	}

	return http.Handlers{
		Credential: credentialHTTP.NewCredentialHandler(credentialUC, logger),
		Job:        jobHTTP.NewJobHandler(jobUC, logger),
		Settings:   settingsHTTP.NewSettingsHandler(settingsUC, logger),
		Audit:      auditHTTP.NewAuditHandler(auditUC, logger),
	}, nil
}
