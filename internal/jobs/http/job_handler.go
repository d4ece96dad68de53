// Package http provides HTTP handlers for document uploads and job tracking.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/httputil"
	"github.com/docbrief/docbrief/internal/jobs/http/dto"
	"github.com/docbrief/docbrief/internal/jobs/usecase"
)

// JobHandler handles job HTTP requests
type JobHandler struct {
	jobUseCase usecase.UseCase
	logger     *slog.Logger
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobUseCase usecase.UseCase, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		jobUseCase: jobUseCase,
		logger:     logger,
	}
}

// parseIDParam extracts and validates the :id path parameter.
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid job id: %w", err)
	}
	return id, nil
}

// UploadHandler accepts a multipart document upload and queues a processing job.
// POST /v1/uploads (multipart field "file")
func (h *JobHandler) UploadHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("missing file field: %w", err), h.logger)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	input := usecase.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	}

	job, err := h.jobUseCase.Upload(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobResponse(job))
}

// GetJobHandler returns the status of a processing job.
// GET /v1/jobs/:id
func (h *JobHandler) GetJobHandler(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	job, err := h.jobUseCase.GetJob(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// GetResultHandler returns the stored result of a completed job.
// GET /v1/jobs/:id/result
func (h *JobHandler) GetResultHandler(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	result, err := h.jobUseCase.GetResult(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToResultResponse(result))
}

// ListJobsHandler returns jobs, newest first.
// GET /v1/jobs?offset=0&limit=50
func (h *JobHandler) ListJobsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	jobs, err := h.jobUseCase.ListJobs(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobListResponse(jobs, offset, limit))
}
