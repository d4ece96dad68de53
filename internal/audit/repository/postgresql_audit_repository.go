// Package repository provides data persistence implementations for audit entries.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/docbrief/docbrief/internal/audit/domain"
	"github.com/docbrief/docbrief/internal/database"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

// PostgreSQLAuditRepository handles audit entry persistence for PostgreSQL
type PostgreSQLAuditRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuditRepository creates a new PostgreSQLAuditRepository
func NewPostgreSQLAuditRepository(db *sql.DB) *PostgreSQLAuditRepository {
	return &PostgreSQLAuditRepository{
		db: db,
	}
}

// Create inserts a new audit entry. Nil details are stored as NULL.
func (r *PostgreSQLAuditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	querier := database.GetTx(ctx, r.db)

	// Untyped nil (rather than a typed nil []byte) so the driver sees NULL.
	var detailsJSON any

	if entry.Details != nil {
		data, err := json.Marshal(entry.Details)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit entry details")
		}
		detailsJSON = data
	}

	query := `INSERT INTO audit_entries (id, actor, action, details, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(ctx, query, entry.ID, entry.Actor, entry.Action, detailsJSON, entry.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit entry")
	}
	return nil
}

// List retrieves audit entries ordered by ID descending (newest first) with pagination.
func (r *PostgreSQLAuditRepository) List(ctx context.Context, offset, limit int) ([]*domain.AuditEntry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, actor, action, details, created_at
			  FROM audit_entries
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*domain.AuditEntry, 0)
	for rows.Next() {
		var entry domain.AuditEntry
		var detailsJSON []byte

		err := rows.Scan(&entry.ID, &entry.Actor, &entry.Action, &detailsJSON, &entry.CreatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit entry")
		}

		if detailsJSON != nil {
			if err := json.Unmarshal(detailsJSON, &entry.Details); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal audit entry details")
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit entries")
	}

	return entries, nil
}
