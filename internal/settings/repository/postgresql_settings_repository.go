// Package repository provides data persistence implementations for application settings.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/docbrief/docbrief/internal/database"
	"github.com/docbrief/docbrief/internal/settings/domain"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

// The settings table holds at most one row, keyed by a fixed ID.
const settingsRowID = 1

// PostgreSQLSettingsRepository handles settings persistence for PostgreSQL
type PostgreSQLSettingsRepository struct {
	db *sql.DB
}

// NewPostgreSQLSettingsRepository creates a new PostgreSQLSettingsRepository
func NewPostgreSQLSettingsRepository(db *sql.DB) *PostgreSQLSettingsRepository {
	return &PostgreSQLSettingsRepository{
		db: db,
	}
}

// Get retrieves the settings row. Returns ErrNotFound when none has been saved yet.
func (r *PostgreSQLSettingsRepository) Get(ctx context.Context) (*domain.AppSetting, error) {
	var setting domain.AppSetting
	querier := database.GetTx(ctx, r.db)

	query := `SELECT max_file_size_mb, allowed_formats, default_ai_model, enable_ocr, processing_concurrency, updated_at
			  FROM app_settings WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, settingsRowID).Scan(
		&setting.MaxFileSizeMB,
		&setting.AllowedFormats,
		&setting.DefaultAIModel,
		&setting.EnableOCR,
		&setting.ProcessingConcurrency,
		&setting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get settings")
	}

	return &setting, nil
}

// Save upserts the single settings row.
func (r *PostgreSQLSettingsRepository) Save(ctx context.Context, setting *domain.AppSetting) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO app_settings (id, max_file_size_mb, allowed_formats, default_ai_model, enable_ocr, processing_concurrency, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())
			  ON CONFLICT (id) DO UPDATE SET
			      max_file_size_mb = EXCLUDED.max_file_size_mb,
			      allowed_formats = EXCLUDED.allowed_formats,
			      default_ai_model = EXCLUDED.default_ai_model,
			      enable_ocr = EXCLUDED.enable_ocr,
			      processing_concurrency = EXCLUDED.processing_concurrency,
			      updated_at = NOW()`

	_, err := querier.ExecContext(
		ctx,
		query,
		settingsRowID,
		setting.MaxFileSizeMB,
		setting.AllowedFormats,
		setting.DefaultAIModel,
		setting.EnableOCR,
		setting.ProcessingConcurrency,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to save settings")
	}
	return nil
}
