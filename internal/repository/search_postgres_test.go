package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborcrm/harbor/internal/repository/testutil"
)

func rankedRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "primary_email", "primary_phone", "first_name", "last_name",
		"company", "is_vip", "credit_risk_level", "created_at", "updated_at", "score",
	}).
		AddRow(int64(1), "john@example.com", nil, "John", "Smith", nil, false, nil, now, now, 13.0).
		AddRow(int64(2), nil, nil, "Johnny", "Smithers", "Acme", true, nil, now, now, 2.4)
}

func TestRankedSearch(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSearchRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("returns scored results in rank order", func(t *testing.T) {
		mock.ExpectQuery(`WITH candidates AS (.+) SELECT (.+) FROM scored WHERE score >=`).
			WithArgs(
				"john@example.com", "john@example.com", "",
				sqlmock.AnyArg(), sqlmock.AnyArg(), 20,
			).
			WillReturnRows(rankedRows(now))

		results, err := repo.RankedSearch(context.Background(), " john@example.com ", 20)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, int64(1), results[0].ID)
		assert.Equal(t, 13.0, results[0].Score)
		assert.Equal(t, 2.4, results[1].Score)
	})

	t.Run("lowercases and extracts digits from the query", func(t *testing.T) {
		mock.ExpectQuery(`WITH candidates AS`).
			WithArgs(
				"(555) 010-0100", "(555) 010-0100", "5550100100",
				sqlmock.AnyArg(), sqlmock.AnyArg(), 10,
			).
			WillReturnRows(rankedRows(now))

		_, err := repo.RankedSearch(context.Background(), "(555) 010-0100", 10)
		require.NoError(t, err)
	})

	t.Run("digit-free query binds an empty phone array", func(t *testing.T) {
		mock.ExpectQuery(`WITH candidates AS`).
			WithArgs(
				"Jane Doe", "jane doe", "",
				pq.Array([]string{"jane doe"}), pq.Array([]string{}), 20,
			).
			WillReturnRows(rankedRows(now))

		_, err := repo.RankedSearch(context.Background(), "Jane Doe", 20)
		require.NoError(t, err)
	})

	t.Run("query error is surfaced", func(t *testing.T) {
		mock.ExpectQuery(`WITH candidates AS`).
			WillReturnError(errors.New("function similarity does not exist"))

		_, err := repo.RankedSearch(context.Background(), "john", 20)
		require.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

// A digit-free query normalizes to an empty digit string, and customers with
// NULL or digit-free phones normalize to the same empty string. Every phone
// membership test must therefore be gated on $3 being non-empty, or such
// customers would flood the capped candidate set.
func TestRankedSearchQueryGuardsPhoneBranches(t *testing.T) {
	guarded := 0
	for _, line := range strings.Split(rankedSearchQuery, "\n") {
		if !strings.Contains(line, "ANY($5)") {
			continue
		}
		assert.Contains(t, line, "$3 <> ''", "unguarded phone branch: %s", strings.TrimSpace(line))
		guarded++
	}
	assert.GreaterOrEqual(t, guarded, 2)
}

func TestFallbackSearch(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSearchRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("email query filters on primary email", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM customers WHERE primary_email ILIKE \$1`).
			WithArgs("%john@example.com%").
			WillReturnRows(rankedRows(now))

		results, err := repo.FallbackSearch(context.Background(), "john@example.com", 20)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 13.0, results[0].Score)
	})

	t.Run("phone query filters on digits", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM customers WHERE regexp_replace\(coalesce\(primary_phone, ''\), '\[\^0-9\]', '', 'g'\) LIKE \$1`).
			WithArgs("%5550100%").
			WillReturnRows(rankedRows(now))

		_, err := repo.FallbackSearch(context.Background(), "555-0100", 20)
		require.NoError(t, err)
	})

	t.Run("name query filters on name or company", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM customers WHERE \(lower\(concat_ws\(' ', first_name, last_name\)\) LIKE \$1 OR lower\(coalesce\(company, ''\)\) LIKE \$2\)`).
			WithArgs("%john smith%", "%john smith%").
			WillReturnRows(rankedRows(now))

		_, err := repo.FallbackSearch(context.Background(), "John Smith", 20)
		require.NoError(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
