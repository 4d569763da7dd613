package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborcrm/harbor/internal/domain"
	"github.com/harborcrm/harbor/internal/repository/testutil"
)

func TestGetCursor(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewCursorRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	// Test case 1: Cursor found
	rows := sqlmock.NewRows([]string{
		"source_type", "cursor_value", "last_success_at", "last_error", "items_synced", "updated_at",
	}).AddRow("storefront", []byte(`{"page_token":"abc"}`), now, nil, int64(150), now)

	mock.ExpectQuery(`SELECT (.+) FROM sync_cursors WHERE source_type = \$1`).
		WithArgs("storefront").
		WillReturnRows(rows)

	cursor, err := repo.GetCursor(context.Background(), "storefront")
	require.NoError(t, err)
	assert.Equal(t, "storefront", cursor.SourceType)
	assert.Equal(t, "abc", cursor.CursorField("page_token"))
	assert.Equal(t, int64(150), cursor.ItemsSynced)
	assert.True(t, cursor.LastError.IsNull)
	assert.False(t, cursor.LastSuccessAt.IsNull)

	// Test case 2: Cursor not found
	mock.ExpectQuery(`SELECT (.+) FROM sync_cursors WHERE source_type = \$1`).
		WithArgs("marketplace").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetCursor(context.Background(), "marketplace")
	require.Error(t, err)
	var notFound *domain.ErrCursorNotFound
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "marketplace", notFound.SourceType)
}

func TestUpdateCursor(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewCursorRepository(db)

	t.Run("clean batch advances cursor and counter", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO sync_cursors (.+) ON CONFLICT \(source_type\) DO UPDATE SET`).
			WithArgs("storefront", []byte(`{"page_token":"def"}`), "", int64(42), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateCursor(context.Background(), domain.UpdateCursorParams{
			SourceType:       "storefront",
			CursorValue:      json.RawMessage(`{"page_token":"def"}`),
			ItemsSyncedDelta: 42,
		})
		require.NoError(t, err)
	})

	t.Run("failed batch records the error", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO sync_cursors (.+) ON CONFLICT \(source_type\) DO UPDATE SET`).
			WithArgs("storefront", []byte(`{"page_token":"def"}`), "connection reset", int64(0), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateCursor(context.Background(), domain.UpdateCursorParams{
			SourceType:  "storefront",
			CursorValue: json.RawMessage(`{"page_token":"def"}`),
			SyncError:   "connection reset",
		})
		require.NoError(t, err)
	})

	t.Run("empty cursor value is stored as NULL", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO sync_cursors (.+) ON CONFLICT \(source_type\) DO UPDATE SET`).
			WithArgs("storefront", nil, "", int64(0), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateCursor(context.Background(), domain.UpdateCursorParams{
			SourceType: "storefront",
		})
		require.NoError(t, err)
	})

	t.Run("missing source type is rejected", func(t *testing.T) {
		err := repo.UpdateCursor(context.Background(), domain.UpdateCursorParams{})
		require.Error(t, err)
		assert.IsType(t, domain.ValidationError{}, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListCursors(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewCursorRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	rows := sqlmock.NewRows([]string{
		"source_type", "cursor_value", "last_success_at", "last_error", "items_synced", "updated_at",
	}).
		AddRow("accounting", nil, nil, "timeout", int64(0), now).
		AddRow("storefront", []byte(`{"page_token":"abc"}`), now, nil, int64(10), now)

	mock.ExpectQuery(`SELECT (.+) FROM sync_cursors ORDER BY source_type ASC`).
		WillReturnRows(rows)

	cursors, err := repo.ListCursors(context.Background())
	require.NoError(t, err)
	require.Len(t, cursors, 2)
	assert.Equal(t, "accounting", cursors[0].SourceType)
	assert.Equal(t, "timeout", cursors[0].LastError.StringValue())
	assert.Nil(t, cursors[0].CursorValue)
	assert.Equal(t, "storefront", cursors[1].SourceType)
}
