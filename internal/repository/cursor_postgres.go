package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/harborcrm/harbor/internal/domain"
)

type cursorRepository struct {
	db *sql.DB
}

// NewCursorRepository creates a new PostgreSQL sync cursor repository
func NewCursorRepository(db *sql.DB) domain.CursorRepository {
	return &cursorRepository{db: db}
}

func (r *cursorRepository) GetCursor(ctx context.Context, sourceType string) (*domain.SyncCursor, error) {
	query := `
		SELECT source_type, cursor_value, last_success_at, last_error, items_synced, updated_at
		FROM sync_cursors
		WHERE source_type = $1
	`

	row := r.db.QueryRowContext(ctx, query, sourceType)
	cursor, err := domain.ScanSyncCursor(row)

	if err == sql.ErrNoRows {
		return nil, &domain.ErrCursorNotFound{SourceType: sourceType}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cursor: %w", err)
	}

	return cursor, nil
}

// UpdateCursor upserts the cursor row for a source. items_synced accumulates
// the delta onto the stored counter. On a batch error last_error is set and
// last_success_at is left untouched; on a clean batch last_success_at
// advances and last_error clears. The cursor value always advances to the
// caller-supplied position, even after a partial failure.
func (r *cursorRepository) UpdateCursor(ctx context.Context, params domain.UpdateCursorParams) error {
	if params.SourceType == "" {
		return domain.NewValidationError("source type is required")
	}

	query := `
		INSERT INTO sync_cursors (
			source_type, cursor_value, last_success_at, last_error, items_synced, updated_at
		)
		VALUES (
			$1, $2,
			CASE WHEN $3 = '' THEN $5::timestamptz ELSE NULL END,
			NULLIF($3, ''),
			$4, $5
		)
		ON CONFLICT (source_type) DO UPDATE SET
			cursor_value = EXCLUDED.cursor_value,
			items_synced = sync_cursors.items_synced + EXCLUDED.items_synced,
			last_error = NULLIF($3, ''),
			last_success_at = CASE
				WHEN $3 = '' THEN EXCLUDED.updated_at
				ELSE sync_cursors.last_success_at
			END,
			updated_at = EXCLUDED.updated_at
	`

	var cursorValue interface{}
	if len(params.CursorValue) > 0 {
		cursorValue = []byte(params.CursorValue)
	}

	_, err := r.db.ExecContext(ctx, query,
		params.SourceType,
		cursorValue,
		params.SyncError,
		params.ItemsSyncedDelta,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to update cursor: %w", err)
	}

	return nil
}

func (r *cursorRepository) ListCursors(ctx context.Context) ([]*domain.SyncCursor, error) {
	query := `
		SELECT source_type, cursor_value, last_success_at, last_error, items_synced, updated_at
		FROM sync_cursors
		ORDER BY source_type ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cursors: %w", err)
	}
	defer rows.Close()

	var cursors []*domain.SyncCursor
	for rows.Next() {
		cursor, err := domain.ScanSyncCursor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cursor: %w", err)
		}
		cursors = append(cursors, cursor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cursor rows: %w", err)
	}

	return cursors, nil
}
