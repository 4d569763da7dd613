package domain

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_repositories.go -package=mocks github.com/harborcrm/harbor/internal/domain CustomerRepository,IdentityRepository,CursorRepository,SearchRepository,MergeRepository

// CustomerRepository defines customer-table database operations.
type CustomerRepository interface {
	GetCustomerByID(ctx context.Context, id int64) (*Customer, error)
	// CreateCustomerWithIdentity inserts a new customer and its first
	// identity row in one transaction, assigning customer.ID and
	// identity.CustomerID. A unique violation on (provider, external_id)
	// rolls the whole insert back.
	CreateCustomerWithIdentity(ctx context.Context, customer *Customer, identity *CustomerIdentity) error
	// FillCustomerNulls writes only the patch fields whose column is
	// currently NULL; populated fields are never overwritten.
	FillCustomerNulls(ctx context.Context, id int64, patch *Customer) error
	// RefreshCustomer overwrites the mutable fields (name, company) with
	// non-empty patch values and fills nulls for the rest.
	RefreshCustomer(ctx context.Context, id int64, patch *Customer) error
	FindCustomerIDsByEmail(ctx context.Context, email string) ([]int64, error)
	FindCustomerIDsByPhone(ctx context.Context, phone string) ([]int64, error)
}

// IdentityRepository defines customer_identities database operations.
type IdentityRepository interface {
	GetIdentity(ctx context.Context, provider Provider, externalID string) (*CustomerIdentity, error)
	// UpsertIdentity inserts or, on (provider, external_id) conflict,
	// refreshes email/phone/metadata in place. Returns true when a new row
	// was inserted.
	UpsertIdentity(ctx context.Context, identity *CustomerIdentity) (bool, error)
	// CreateIdentity inserts a new identity row. A (provider, external_id)
	// conflict surfaces as ErrIdentityConflict.
	CreateIdentity(ctx context.Context, identity *CustomerIdentity) error
	ListIdentities(ctx context.Context, customerID int64) ([]*CustomerIdentity, error)
}

// CursorRepository defines sync_cursors database operations.
type CursorRepository interface {
	GetCursor(ctx context.Context, sourceType string) (*SyncCursor, error)
	UpdateCursor(ctx context.Context, params UpdateCursorParams) error
	ListCursors(ctx context.Context) ([]*SyncCursor, error)
}

// SearchRepository defines the ranked and fallback search queries.
type SearchRepository interface {
	RankedSearch(ctx context.Context, query string, limit int) ([]*RankedCustomer, error)
	FallbackSearch(ctx context.Context, query string, limit int) ([]*RankedCustomer, error)
}

// MergeRepository defines merge candidate discovery and the merge
// transaction itself.
type MergeRepository interface {
	FindCustomerIDsSharingEmail(ctx context.Context, email string, excludeID int64) ([]int64, error)
	FindCustomerIDsSharingPhone(ctx context.Context, phone string, excludeID int64) ([]int64, error)
	// MergeCustomers re-points every customer-owned row from each merge id
	// to the primary, fills primary nulls from the losers, and deletes the
	// losing customers, all in one transaction.
	MergeCustomers(ctx context.Context, primaryID int64, mergeIDs []int64) error
}
