package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/harborcrm/harbor/internal/domain"
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new PostgreSQL customer repository
func NewCustomerRepository(db *sql.DB) domain.CustomerRepository {
	return &customerRepository{db: db}
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `
		SELECT ` + domain.CustomerColumns + `
		FROM customers
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	customer, err := domain.ScanCustomer(row)

	if err == sql.ErrNoRows {
		return nil, &domain.ErrCustomerNotFound{Message: "customer not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) CreateCustomerWithIdentity(ctx context.Context, customer *domain.Customer, identity *domain.CustomerIdentity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	err = tx.QueryRowContext(ctx, `
		INSERT INTO customers (
			primary_email, primary_phone, first_name, last_name, company,
			is_vip, credit_risk_level, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		customer.PrimaryEmail,
		customer.PrimaryPhone,
		customer.FirstName,
		customer.LastName,
		customer.Company,
		customer.IsVIP,
		customer.CreditRiskLevel,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	if identity.ID == "" {
		identity.ID = uuid.New().String()
	}
	identity.CustomerID = customer.ID
	identity.CreatedAt = now
	identity.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO customer_identities (
			id, customer_id, provider, external_id, email, phone, metadata,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		identity.ID,
		identity.CustomerID,
		string(identity.Provider),
		identity.ExternalID,
		identity.Email,
		identity.Phone,
		identity.Metadata,
		identity.CreatedAt,
		identity.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Another sync observed the same (provider, external_id) first.
			// Roll back the customer insert and let the caller converge on
			// the winning row.
			return &domain.ErrIdentityConflict{
				Provider:   identity.Provider,
				ExternalID: identity.ExternalID.StringValue(),
			}
		}
		return fmt.Errorf("failed to insert identity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FillCustomerNulls writes patch values only into columns that are NULL.
// Populated customer fields are never overwritten by a lower-authority
// source.
func (r *customerRepository) FillCustomerNulls(ctx context.Context, id int64, patch *domain.Customer) error {
	query := `
		UPDATE customers SET
			primary_email = COALESCE(primary_email, $2),
			primary_phone = COALESCE(primary_phone, $3),
			first_name = COALESCE(first_name, $4),
			last_name = COALESCE(last_name, $5),
			company = COALESCE(company, $6),
			credit_risk_level = COALESCE(credit_risk_level, $7),
			updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		id,
		patch.PrimaryEmail,
		patch.PrimaryPhone,
		patch.FirstName,
		patch.LastName,
		patch.Company,
		patch.CreditRiskLevel,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to fill customer nulls: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrCustomerNotFound{Message: "customer not found"}
	}

	return nil
}

// RefreshCustomer overwrites the mutable fields (name, company) with
// non-null patch values and fills nulls for the contact columns.
func (r *customerRepository) RefreshCustomer(ctx context.Context, id int64, patch *domain.Customer) error {
	query := `
		UPDATE customers SET
			first_name = COALESCE($4, first_name),
			last_name = COALESCE($5, last_name),
			company = COALESCE($6, company),
			primary_email = COALESCE(primary_email, $2),
			primary_phone = COALESCE(primary_phone, $3),
			credit_risk_level = COALESCE(credit_risk_level, $7),
			updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		id,
		patch.PrimaryEmail,
		patch.PrimaryPhone,
		patch.FirstName,
		patch.LastName,
		patch.Company,
		patch.CreditRiskLevel,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to refresh customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrCustomerNotFound{Message: "customer not found"}
	}

	return nil
}

func (r *customerRepository) FindCustomerIDsByEmail(ctx context.Context, email string) ([]int64, error) {
	query := `
		SELECT DISTINCT c.id
		FROM customers c
		LEFT JOIN customer_identities ci ON ci.customer_id = c.id
		WHERE lower(coalesce(c.primary_email, '')) = $1
		   OR lower(coalesce(ci.email, '')) = $1
		ORDER BY c.id
	`

	return r.queryCustomerIDs(ctx, query, domain.NormalizeEmail(email))
}

func (r *customerRepository) FindCustomerIDsByPhone(ctx context.Context, phone string) ([]int64, error) {
	query := `
		SELECT DISTINCT c.id
		FROM customers c
		LEFT JOIN customer_identities ci ON ci.customer_id = c.id
		WHERE regexp_replace(coalesce(c.primary_phone, ''), '[^0-9]', '', 'g') = $1
		   OR regexp_replace(coalesce(ci.phone, ''), '[^0-9]', '', 'g') = $1
		ORDER BY c.id
	`

	return r.queryCustomerIDs(ctx, query, domain.NormalizePhone(phone))
}

func (r *customerRepository) queryCustomerIDs(ctx context.Context, query string, arg string) ([]int64, error) {
	if arg == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan customer id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer id rows: %w", err)
	}

	return ids, nil
}
