package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/docbrief/docbrief/internal/database"
	"github.com/docbrief/docbrief/internal/settings/domain"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

// MySQLSettingsRepository handles settings persistence for MySQL
type MySQLSettingsRepository struct {
	db *sql.DB
}

// NewMySQLSettingsRepository creates a new MySQLSettingsRepository
func NewMySQLSettingsRepository(db *sql.DB) *MySQLSettingsRepository {
	return &MySQLSettingsRepository{
		db: db,
	}
}

// Get retrieves the settings row. Returns ErrNotFound when none has been saved yet.
func (r *MySQLSettingsRepository) Get(ctx context.Context) (*domain.AppSetting, error) {
	var setting domain.AppSetting
	querier := database.GetTx(ctx, r.db)

	query := `SELECT max_file_size_mb, allowed_formats, default_ai_model, enable_ocr, processing_concurrency, updated_at
			  FROM app_settings WHERE id = ?`

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
func (r *MySQLSettingsRepository) Save(ctx context.Context, setting *domain.AppSetting) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO app_settings (id, max_file_size_mb, allowed_formats, default_ai_model, enable_ocr, processing_concurrency, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW())
			  ON DUPLICATE KEY UPDATE
			      max_file_size_mb = VALUES(max_file_size_mb),
			      allowed_formats = VALUES(allowed_formats),
			      default_ai_model = VALUES(default_ai_model),
			      enable_ocr = VALUES(enable_ocr),
			      processing_concurrency = VALUES(processing_concurrency),
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
