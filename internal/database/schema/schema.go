// Package schema holds the DDL applied at startup. Tables are created
// idempotently; the pg_trgm extension backs the trigram indexes the ranked
// search relies on.
package schema

// TableDefinitions are executed in order by database.InitializeDatabase.
var TableDefinitions = []string{
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,

	`CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		primary_email VARCHAR(255),
		primary_phone VARCHAR(50),
		first_name VARCHAR(255),
		last_name VARCHAR(255),
		company VARCHAR(255),
		is_vip BOOLEAN NOT NULL DEFAULT FALSE,
		credit_risk_level VARCHAR(50),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_customers_primary_email ON customers (lower(primary_email))`,
	`CREATE INDEX IF NOT EXISTS idx_customers_name_trgm ON customers USING gin ((lower(concat_ws(' ', first_name, last_name))) gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_company_trgm ON customers USING gin ((lower(coalesce(company, ''))) gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_fulltext ON customers USING gin (to_tsvector('simple', concat_ws(' ', first_name, last_name, company, primary_email)))`,

	`CREATE TABLE IF NOT EXISTS customer_identities (
		id UUID PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		provider VARCHAR(50) NOT NULL,
		external_id VARCHAR(512),
		email VARCHAR(255),
		phone VARCHAR(50),
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_identities_provider_external
		ON customer_identities (provider, external_id)
		WHERE external_id IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_identities_customer ON customer_identities (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_identities_email ON customer_identities (lower(email))`,

	`CREATE TABLE IF NOT EXISTS sync_cursors (
		source_type VARCHAR(100) PRIMARY KEY,
		cursor_value JSONB,
		last_success_at TIMESTAMPTZ,
		last_error TEXT,
		items_synced BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// satelliteTable builds the DDL for a customer-owned table that merge
// re-points. These tables are owned by collaborating services; the minimal
// shape here keeps a fresh database mergeable.
func satelliteTable(name string) string {
	return `CREATE TABLE IF NOT EXISTS ` + name + ` (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
}

func exclusiveTable(name string) string {
	return `CREATE TABLE IF NOT EXISTS ` + name + ` (
		customer_id BIGINT PRIMARY KEY REFERENCES customers(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
}

func init() {
	for _, name := range []string{
		"contacts", "orders", "tickets", "interactions", "opportunities",
		"calls", "tasks", "invoices", "estimates", "shipments",
		"customer_search_index",
	} {
		TableDefinitions = append(TableDefinitions, satelliteTable(name))
	}
	for _, name := range []string{"customer_health_scores", "customer_snapshots"} {
		TableDefinitions = append(TableDefinitions, exclusiveTable(name))
	}
}
