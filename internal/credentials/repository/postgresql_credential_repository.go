// Package repository provides data persistence implementations for credentials.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/credentials/domain"
	"github.com/docbrief/docbrief/internal/database"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

// PostgreSQLCredentialRepository handles credential persistence for PostgreSQL
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQLCredentialRepository
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{
		db: db,
	}
}

// Create inserts a new credential
func (r *PostgreSQLCredentialRepository) Create(ctx context.Context, credential *domain.Credential) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO credentials (id, name, provider, encrypted_api_key, is_active, is_free, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.Name,
		credential.Provider,
		credential.EncryptedAPIKey,
		credential.IsActive,
		credential.IsFree,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrCredentialAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// Update persists changes to an existing credential
func (r *PostgreSQLCredentialRepository) Update(ctx context.Context, credential *domain.Credential) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE credentials
			  SET name = $2, provider = $3, encrypted_api_key = $4, is_active = $5, is_free = $6, updated_at = NOW()
			  WHERE id = $1`

	result, err := querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.Name,
		credential.Provider,
		credential.EncryptedAPIKey,
		credential.IsActive,
		credential.IsFree,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrCredentialAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update credential")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check update result")
	}
	if affected == 0 {
		return domain.ErrCredentialNotFound
	}
	return nil
}

// GetByID retrieves a credential by ID
func (r *PostgreSQLCredentialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Credential, error) {
	var credential domain.Credential
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, encrypted_api_key, is_active, is_free, created_at, updated_at
			  FROM credentials WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&credential.ID,
		&credential.Name,
		&credential.Provider,
		&credential.EncryptedAPIKey,
		&credential.IsActive,
		&credential.IsFree,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential by id")
	}

	return &credential, nil
}

// GetActive retrieves the first active credential ordered by name.
// Free credentials are preferred over paid ones.
func (r *PostgreSQLCredentialRepository) GetActive(ctx context.Context) (*domain.Credential, error) {
	var credential domain.Credential
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, encrypted_api_key, is_active, is_free, created_at, updated_at
			  FROM credentials
			  WHERE is_active = TRUE
			  ORDER BY is_free DESC, name ASC
			  LIMIT 1`

	err := querier.QueryRowContext(ctx, query).Scan(
		&credential.ID,
		&credential.Name,
		&credential.Provider,
		&credential.EncryptedAPIKey,
		&credential.IsActive,
		&credential.IsFree,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoActiveCredential
		}
		return nil, apperrors.Wrap(err, "failed to get active credential")
	}

	return &credential, nil
}

// List retrieves credentials ordered by name with pagination
func (r *PostgreSQLCredentialRepository) List(ctx context.Context, offset, limit int) ([]*domain.Credential, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, encrypted_api_key, is_active, is_free, created_at, updated_at
			  FROM credentials
			  ORDER BY name ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	defer func() {
		_ = rows.Close()
	}()

	credentials := make([]*domain.Credential, 0)
	for rows.Next() {
		var credential domain.Credential
		err := rows.Scan(
			&credential.ID,
			&credential.Name,
			&credential.Provider,
			&credential.EncryptedAPIKey,
			&credential.IsActive,
			&credential.IsFree,
			&credential.CreatedAt,
			&credential.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}
		credentials = append(credentials, &credential)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}

	return credentials, nil
}

// Delete removes a credential by ID
func (r *PostgreSQLCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM credentials WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check delete result")
	}
	if affected == 0 {
		return domain.ErrCredentialNotFound
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
