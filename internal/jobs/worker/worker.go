// Package worker runs the background processor that drains queued
// document-processing jobs.
package worker

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docbrief/docbrief/internal/jobs/domain"
	"github.com/docbrief/docbrief/internal/jobs/usecase"

	apperrors "github.com/docbrief/docbrief/internal/errors"
	settingsUseCase "github.com/docbrief/docbrief/internal/settings/usecase"
)

// Worker polls for queued jobs and processes them concurrently.
// The concurrency limit comes from the application settings on every cycle,
// so operators can tune it without a restart.
type Worker struct {
	jobUseCase      usecase.UseCase
	settingsUseCase settingsUseCase.UseCase
	pollInterval    time.Duration
	logger          *slog.Logger
}

// NewWorker creates a new Worker
func NewWorker(
	jobUC usecase.UseCase,
	settingsUC settingsUseCase.UseCase,
	pollInterval time.Duration,
	logger *slog.Logger,
) *Worker {
	return &Worker{
		jobUseCase:      jobUC,
		settingsUseCase: settingsUC,
		pollInterval:    pollInterval,
		logger:          logger,
	}
}

// Run polls until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("worker started", slog.Duration("poll_interval", w.pollInterval))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil && !apperrors.Is(err, context.Canceled) {
			w.logger.Error("worker cycle failed", slog.Any("error", err))
		}

		select {
		case <-ctx.Done():
			w.logger.Info("worker stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce claims and processes one batch of queued jobs.
func (w *Worker) RunOnce(ctx context.Context) error {
	setting, err := w.settingsUseCase.Get(ctx)
	if err != nil {
		return err
	}

	concurrency := setting.ProcessingConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	jobs, err := w.jobUseCase.PendingJobs(ctx, concurrency)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, job := range jobs {
		g.Go(func() error {
			err := w.jobUseCase.ProcessJob(ctx, job.ID)
			switch {
			case err == nil:
				w.logger.Info("job processed", slog.String("job_id", job.ID.String()))
			case apperrors.Is(err, domain.ErrJobAlreadyClaimed):
				// Another worker took it, nothing to do.
			default:
				// Job failures are recorded on the job row; keep the cycle alive.
				w.logger.Error("job failed",
					slog.String("job_id", job.ID.String()),
					slog.Any("error", err),
				)
			}
			return nil
		})
	}

	return g.Wait()
}
