package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbrief/docbrief/internal/settings/domain"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

func TestPostgreSQLSettingsRepository_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() {
			_ = db.Close()
		}()

		repo := NewPostgreSQLSettingsRepository(db)

		rows := sqlmock.NewRows([]string{
			"max_file_size_mb", "allowed_formats", "default_ai_model",
			"enable_ocr", "processing_concurrency", "updated_at",
		}).AddRow(25, "pdf,txt", "openai/gpt-4o", true, 4, time.Now().UTC())

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT max_file_size_mb, allowed_formats`)).
			WithArgs(settingsRowID).
			WillReturnRows(rows)

		setting, err := repo.Get(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 25, setting.MaxFileSizeMB)
		assert.Equal(t, "pdf,txt", setting.AllowedFormats)
		assert.True(t, setting.EnableOCR)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() {
			_ = db.Close()
		}()

		repo := NewPostgreSQLSettingsRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT max_file_size_mb, allowed_formats`)).
			WithArgs(settingsRowID).
			WillReturnError(sql.ErrNoRows)

		_, err = repo.Get(t.Context())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLSettingsRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	repo := NewPostgreSQLSettingsRepository(db)
	setting := &domain.AppSetting{
		MaxFileSizeMB:         25,
		AllowedFormats:        "pdf,txt",
		DefaultAIModel:        "openai/gpt-4o",
		EnableOCR:             true,
		ProcessingConcurrency: 4,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO app_settings`)).
		WithArgs(settingsRowID, 25, "pdf,txt", "openai/gpt-4o", true, 4).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Save(t.Context(), setting)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
