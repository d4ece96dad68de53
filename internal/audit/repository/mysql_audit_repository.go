package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/docbrief/docbrief/internal/audit/domain"
	"github.com/docbrief/docbrief/internal/database"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

// MySQLAuditRepository handles audit entry persistence for MySQL
type MySQLAuditRepository struct {
	db *sql.DB
}

// NewMySQLAuditRepository creates a new MySQLAuditRepository
func NewMySQLAuditRepository(db *sql.DB) *MySQLAuditRepository {
	return &MySQLAuditRepository{
		db: db,
	}
}

// Create inserts a new audit entry. Nil details are stored as NULL.
// UUIDs are stored as strings since MySQL lacks a native UUID type.
func (r *MySQLAuditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	querier := database.GetTx(ctx, r.db)

	var detailsJSON []byte
	var err error

	if entry.Details != nil {
		detailsJSON, err = json.Marshal(entry.Details)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit entry details")
		}
	}

	query := `INSERT INTO audit_entries (id, actor, action, details, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx, query, entry.ID.String(), entry.Actor, entry.Action, detailsJSON, entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit entry")
	}
	return nil
}

// List retrieves audit entries ordered by ID descending (newest first) with pagination.
func (r *MySQLAuditRepository) List(ctx context.Context, offset, limit int) ([]*domain.AuditEntry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, actor, action, details, created_at
			  FROM audit_entries
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

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
		var idStr string
		var detailsJSON []byte

		err := rows.Scan(&idStr, &entry.Actor, &entry.Action, &detailsJSON, &entry.CreatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit entry")
		}

		entry.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse audit entry id")
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
