package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborcrm/harbor/internal/domain"
	"github.com/harborcrm/harbor/internal/repository/testutil"
)

func TestGetIdentity(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewIdentityRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	// Test case 1: Identity found
	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "provider", "external_id", "email", "phone", "metadata", "created_at", "updated_at",
	}).AddRow(
		"11111111-1111-1111-1111-111111111111", int64(42), "storefront", "cust_789",
		"john@example.com", nil, []byte(`{"plan":"gold"}`), now, now,
	)

	mock.ExpectQuery(`SELECT (.+) FROM customer_identities WHERE provider = \$1 AND external_id = \$2`).
		WithArgs("storefront", "cust_789").
		WillReturnRows(rows)

	identity, err := repo.GetIdentity(context.Background(), domain.ProviderStorefront, "cust_789")
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.CustomerID)
	assert.Equal(t, domain.ProviderStorefront, identity.Provider)
	assert.Equal(t, "john@example.com", identity.Email.StringValue())
	assert.True(t, identity.Phone.IsNull)
	assert.Equal(t, "gold", identity.MetadataString("plan"))

	// Test case 2: Identity not found
	mock.ExpectQuery(`SELECT (.+) FROM customer_identities WHERE provider = \$1 AND external_id = \$2`).
		WithArgs("storefront", "missing").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetIdentity(context.Background(), domain.ProviderStorefront, "missing")
	require.Error(t, err)
	assert.IsType(t, &domain.ErrIdentityNotFound{}, err)
}

func TestUpsertIdentity(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewIdentityRepository(db)

	t.Run("first sighting inserts", func(t *testing.T) {
		identity := &domain.CustomerIdentity{
			CustomerID: 42,
			Provider:   domain.ProviderStorefront,
			ExternalID: domain.NonNullString("cust_789"),
			Email:      domain.NonNullString("john@example.com"),
		}

		mock.ExpectQuery(`INSERT INTO customer_identities (.+) ON CONFLICT \(provider, external_id\) WHERE external_id IS NOT NULL`).
			WithArgs(
				sqlmock.AnyArg(), int64(42), "storefront", identity.ExternalID,
				identity.Email, identity.Phone, identity.Metadata,
				sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "inserted"}).
				AddRow("11111111-1111-1111-1111-111111111111", int64(42), true))

		inserted, err := repo.UpsertIdentity(context.Background(), identity)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.Equal(t, "11111111-1111-1111-1111-111111111111", identity.ID)
		assert.NotZero(t, identity.UpdatedAt)
	})

	t.Run("existing key refreshes and keeps its customer", func(t *testing.T) {
		identity := &domain.CustomerIdentity{
			CustomerID: 99, // caller's guess; the stored row wins
			Provider:   domain.ProviderStorefront,
			ExternalID: domain.NonNullString("cust_789"),
			Phone:      domain.NonNullString("+1 555 0100"),
		}

		mock.ExpectQuery(`INSERT INTO customer_identities (.+) ON CONFLICT \(provider, external_id\) WHERE external_id IS NOT NULL`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "inserted"}).
				AddRow("11111111-1111-1111-1111-111111111111", int64(42), false))

		inserted, err := repo.UpsertIdentity(context.Background(), identity)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, int64(42), identity.CustomerID)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIdentity(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewIdentityRepository(db)

	t.Run("success", func(t *testing.T) {
		identity := &domain.CustomerIdentity{
			CustomerID: 42,
			Provider:   domain.ProviderMarketplace,
			ExternalID: domain.NonNullString("buyer_1"),
		}

		mock.ExpectExec(`INSERT INTO customer_identities`).
			WithArgs(
				sqlmock.AnyArg(), int64(42), "marketplace", identity.ExternalID,
				identity.Email, identity.Phone, identity.Metadata,
				sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CreateIdentity(context.Background(), identity)
		require.NoError(t, err)
		assert.NotEmpty(t, identity.ID)
	})

	t.Run("unique violation becomes an identity conflict", func(t *testing.T) {
		identity := &domain.CustomerIdentity{
			CustomerID: 42,
			Provider:   domain.ProviderMarketplace,
			ExternalID: domain.NonNullString("buyer_1"),
		}

		mock.ExpectExec(`INSERT INTO customer_identities`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateIdentity(context.Background(), identity)
		require.Error(t, err)
		var conflict *domain.ErrIdentityConflict
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, domain.ProviderMarketplace, conflict.Provider)
		assert.Equal(t, "buyer_1", conflict.ExternalID)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListIdentities(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewIdentityRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "provider", "external_id", "email", "phone", "metadata", "created_at", "updated_at",
	}).
		AddRow("11111111-1111-1111-1111-111111111111", int64(42), "storefront", "cust_789", "john@example.com", nil, nil, now, now).
		AddRow("22222222-2222-2222-2222-222222222222", int64(42), "accounting", nil, nil, "+15550100", nil, now.Add(time.Minute), now.Add(time.Minute))

	mock.ExpectQuery(`SELECT (.+) FROM customer_identities WHERE customer_id = \$1 ORDER BY created_at ASC`).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	identities, err := repo.ListIdentities(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, identities, 2)
	assert.Equal(t, domain.ProviderStorefront, identities[0].Provider)
	assert.True(t, identities[1].ExternalID.IsNull)
	assert.Equal(t, "+15550100", identities[1].Phone.StringValue())
}
