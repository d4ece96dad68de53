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

// MySQLCredentialRepository handles credential persistence for MySQL.
// UUIDs are stored as strings since MySQL lacks a native UUID type.
type MySQLCredentialRepository struct {
	db *sql.DB
}

// NewMySQLCredentialRepository creates a new MySQLCredentialRepository
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{
		db: db,
	}
}

// Create inserts a new credential
func (r *MySQLCredentialRepository) Create(ctx context.Context, credential *domain.Credential) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO credentials (id, name, provider, encrypted_api_key, is_active, is_free, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID.String(),
		credential.Name,
		credential.Provider,
		credential.EncryptedAPIKey,
		credential.IsActive,
		credential.IsFree,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrCredentialAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// Update persists changes to an existing credential
func (r *MySQLCredentialRepository) Update(ctx context.Context, credential *domain.Credential) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE credentials
			  SET name = ?, provider = ?, encrypted_api_key = ?, is_active = ?, is_free = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		credential.Name,
		credential.Provider,
		credential.EncryptedAPIKey,
		credential.IsActive,
		credential.IsFree,
		credential.ID.String(),
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
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
func (r *MySQLCredentialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Credential, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, encrypted_api_key, is_active, is_free, created_at, updated_at
			  FROM credentials WHERE id = ?`

	return scanMySQLCredential(querier.QueryRowContext(ctx, query, id.String()))
}

// GetActive retrieves the first active credential ordered by name.
// Free credentials are preferred over paid ones.
func (r *MySQLCredentialRepository) GetActive(ctx context.Context) (*domain.Credential, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, encrypted_api_key, is_active, is_free, created_at, updated_at
			  FROM credentials
			  WHERE is_active = TRUE
			  ORDER BY is_free DESC, name ASC
			  LIMIT 1`

	credential, err := scanMySQLCredential(querier.QueryRowContext(ctx, query))
	if err != nil {
		if apperrors.Is(err, domain.ErrCredentialNotFound) {
			return nil, domain.ErrNoActiveCredential
		}
		return nil, err
	}
	return credential, nil
}

// List retrieves credentials ordered by name with pagination
func (r *MySQLCredentialRepository) List(ctx context.Context, offset, limit int) ([]*domain.Credential, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, encrypted_api_key, is_active, is_free, created_at, updated_at
			  FROM credentials
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

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
		var idStr string

		err := rows.Scan(
			&idStr,
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

		credential.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse credential id")
		}

		credentials = append(credentials, &credential)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}

	return credentials, nil
}

// Delete removes a credential by ID
func (r *MySQLCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM credentials WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id.String())
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

// scanMySQLCredential scans a single credential row, translating string UUIDs.
func scanMySQLCredential(row *sql.Row) (*domain.Credential, error) {
	var credential domain.Credential
	var idStr string

	err := row.Scan(
		&idStr,
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
		return nil, apperrors.Wrap(err, "failed to scan credential")
	}

	credential.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse credential id")
	}

	return &credential, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL duplicate entry error
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
