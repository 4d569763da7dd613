package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/harborcrm/harbor/internal/domain"
)

// repointTables are the customer-owned tables whose rows move from each
// losing customer to the primary during a merge.
var repointTables = []string{
	"customer_identities",
	"contacts",
	"orders",
	"tickets",
	"interactions",
	"opportunities",
	"calls",
	"tasks",
	"invoices",
	"estimates",
	"shipments",
	"customer_search_index",
}

// exclusiveTables hold at most one row per customer. When the primary
// already has a row, losing rows are deleted instead of re-pointed;
// otherwise one losing row is promoted to the primary.
var exclusiveTables = []string{
	"customer_health_scores",
	"customer_snapshots",
}

type mergeRepository struct {
	db *sql.DB
}

// NewMergeRepository creates a new PostgreSQL merge repository
func NewMergeRepository(db *sql.DB) domain.MergeRepository {
	return &mergeRepository{db: db}
}

func (r *mergeRepository) FindCustomerIDsSharingEmail(ctx context.Context, email string, excludeID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT c.id
		FROM customers c
		LEFT JOIN customer_identities ci ON ci.customer_id = c.id
		WHERE (lower(coalesce(c.primary_email, '')) = $1 OR lower(coalesce(ci.email, '')) = $1)
		  AND c.id <> $2
		ORDER BY c.id
	`

	return r.queryIDs(ctx, query, domain.NormalizeEmail(email), excludeID)
}

func (r *mergeRepository) FindCustomerIDsSharingPhone(ctx context.Context, phone string, excludeID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT c.id
		FROM customers c
		LEFT JOIN customer_identities ci ON ci.customer_id = c.id
		WHERE (regexp_replace(coalesce(c.primary_phone, ''), '[^0-9]', '', 'g') = $1
			OR regexp_replace(coalesce(ci.phone, ''), '[^0-9]', '', 'g') = $1)
		  AND c.id <> $2
		ORDER BY c.id
	`

	return r.queryIDs(ctx, query, domain.NormalizePhone(phone), excludeID)
}

func (r *mergeRepository) queryIDs(ctx context.Context, query string, signal string, excludeID int64) ([]int64, error) {
	if signal == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, query, signal, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sharing customers: %w", err)
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
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}

// MergeCustomers consolidates the merge ids into the primary inside a
// single transaction: every foreign-keyed row is re-pointed (or, for 1:1
// tables, deleted when the primary already has one), primary nulls are
// filled from the losers, and the losing customer rows are deleted. Either
// everything moves or nothing changes.
func (r *mergeRepository) MergeCustomers(ctx context.Context, primaryID int64, mergeIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, primaryID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check primary customer: %w", err)
	}
	if !exists {
		return &domain.ErrCustomerNotFound{Message: fmt.Sprintf("primary customer %d not found", primaryID)}
	}

	losers := pq.Array(mergeIDs)

	for _, table := range repointTables {
		sqlStr, args, err := sq.Update(table).
			Set("customer_id", primaryID).
			Where(sq.Expr("customer_id = ANY(?)", losers)).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build repoint query for %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("failed to repoint %s: %w", table, err)
		}
	}

	for _, table := range exclusiveTables {
		if err := mergeExclusiveTable(ctx, tx, table, primaryID, losers); err != nil {
			return err
		}
	}

	// Fill primary nulls from the losers, lowest id first so the oldest
	// surviving value wins.
	fillQuery := `
		UPDATE customers p SET
			primary_email = COALESCE(p.primary_email, l.primary_email),
			primary_phone = COALESCE(p.primary_phone, l.primary_phone),
			first_name = COALESCE(p.first_name, l.first_name),
			last_name = COALESCE(p.last_name, l.last_name),
			company = COALESCE(p.company, l.company),
			credit_risk_level = COALESCE(p.credit_risk_level, l.credit_risk_level),
			is_vip = p.is_vip OR l.is_vip,
			updated_at = $3
		FROM customers l
		WHERE p.id = $1 AND l.id = $2
	`
	now := time.Now().UTC()
	for _, loserID := range mergeIDs {
		if _, err := tx.ExecContext(ctx, fillQuery, primaryID, loserID, now); err != nil {
			return fmt.Errorf("failed to fill primary from customer %d: %w", loserID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM customers WHERE id = ANY($1)`, losers,
	); err != nil {
		return fmt.Errorf("failed to delete merged customers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit merge transaction: %w", err)
	}

	return nil
}

// mergeExclusiveTable handles a table with at most one row per customer.
// Re-pointing a losing row when the primary already has one would violate
// the uniqueness constraint, so those rows are deleted outright.
func mergeExclusiveTable(ctx context.Context, tx *sql.Tx, table string, primaryID int64, losers interface{}) error {
	var primaryHasRow bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE customer_id = $1)`, table)
	if err := tx.QueryRowContext(ctx, query, primaryID).Scan(&primaryHasRow); err != nil {
		return fmt.Errorf("failed to check %s for primary: %w", table, err)
	}

	if !primaryHasRow {
		// Promote one losing row to the primary, preferring the most
		// recently updated.
		promote := fmt.Sprintf(`
			UPDATE %[1]s SET customer_id = $1
			WHERE customer_id = (
				SELECT customer_id FROM %[1]s
				WHERE customer_id = ANY($2)
				ORDER BY updated_at DESC
				LIMIT 1
			)
		`, table)
		if _, err := tx.ExecContext(ctx, promote, primaryID, losers); err != nil {
			return fmt.Errorf("failed to promote %s row: %w", table, err)
		}
	}

	remove := fmt.Sprintf(`DELETE FROM %s WHERE customer_id = ANY($1)`, table)
	if _, err := tx.ExecContext(ctx, remove, losers); err != nil {
		return fmt.Errorf("failed to delete %s rows: %w", table, err)
	}

	return nil
}
