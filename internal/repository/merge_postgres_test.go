package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborcrm/harbor/internal/domain"
	"github.com/harborcrm/harbor/internal/repository/testutil"
)

func TestFindCustomerIDsSharingEmail(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewMergeRepository(db)

	t.Run("excludes the customer under review", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(2)).AddRow(int64(9))

		mock.ExpectQuery(`SELECT DISTINCT c\.id FROM customers c LEFT JOIN customer_identities ci`).
			WithArgs("john@example.com", int64(1)).
			WillReturnRows(rows)

		ids, err := repo.FindCustomerIDsSharingEmail(context.Background(), "John@Example.com", 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 9}, ids)
	})

	t.Run("empty signal short-circuits", func(t *testing.T) {
		ids, err := repo.FindCustomerIDsSharingEmail(context.Background(), "  ", 1)
		require.NoError(t, err)
		assert.Nil(t, ids)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCustomerIDsSharingPhone(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewMergeRepository(db)

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(4))

	mock.ExpectQuery(`SELECT DISTINCT c\.id FROM customers c LEFT JOIN customer_identities ci`).
		WithArgs("5550100", int64(1)).
		WillReturnRows(rows)

	ids, err := repo.FindCustomerIDsSharingPhone(context.Background(), "555-0100", 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, ids)
}

func TestMergeCustomers(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewMergeRepository(db)
	primaryID := int64(1)
	mergeIDs := []int64{2, 3}

	t.Run("consolidates everything in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM customers WHERE id = \$1\)`).
			WithArgs(primaryID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		for _, table := range repointTables {
			mock.ExpectExec(fmt.Sprintf(`UPDATE %s SET customer_id = \$1 WHERE customer_id = ANY\(\$2\)`, table)).
				WithArgs(primaryID, sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 2))
		}

		for _, table := range exclusiveTables {
			// Primary has no row: one losing row is promoted, the rest deleted.
			mock.ExpectQuery(fmt.Sprintf(`SELECT EXISTS\(SELECT 1 FROM %s WHERE customer_id = \$1\)`, table)).
				WithArgs(primaryID).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			mock.ExpectExec(fmt.Sprintf(`UPDATE %s SET customer_id = \$1 WHERE customer_id = \(`, table)).
				WithArgs(primaryID, sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectExec(fmt.Sprintf(`DELETE FROM %s WHERE customer_id = ANY\(\$1\)`, table)).
				WithArgs(sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		for _, loserID := range mergeIDs {
			mock.ExpectExec(`UPDATE customers p SET`).
				WithArgs(primaryID, loserID, sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		mock.ExpectExec(`DELETE FROM customers WHERE id = ANY\(\$1\)`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := repo.MergeCustomers(context.Background(), primaryID, mergeIDs)
		require.NoError(t, err)
	})

	t.Run("missing primary aborts before any write", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM customers WHERE id = \$1\)`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		err := repo.MergeCustomers(context.Background(), 99, mergeIDs)
		require.Error(t, err)
		assert.IsType(t, &domain.ErrCustomerNotFound{}, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
