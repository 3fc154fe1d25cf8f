package database

import "database/sql"

// Migrate creates the schema required by the POS backend. Statements are
// idempotent so the server can run them on every boot.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS tenants (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			business_name TEXT NOT NULL DEFAULT '',
			logo_url TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			tenant_id UUID REFERENCES tenants(id),
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES tenants(id),
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			permitir_fiado BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS billiard_tables (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES tenants(id),
			name TEXT NOT NULL,
			hourly_rate DOUBLE PRECISION NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS rentals (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES tenants(id),
			table_id UUID NOT NULL REFERENCES billiard_tables(id),
			client_id UUID REFERENCES clients(id),
			worker_id UUID REFERENCES users(id),
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ,
			total_amount DOUBLE PRECISION,
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		// A table can have at most one open rental.
		`CREATE UNIQUE INDEX IF NOT EXISTS one_open_rental_per_table
			ON rentals (table_id) WHERE end_time IS NULL`,
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES tenants(id),
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS stock_changes (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES tenants(id),
			product_id UUID NOT NULL REFERENCES products(id),
			change_type TEXT NOT NULL,
			quantity_change INTEGER NOT NULL,
			stock_before INTEGER NOT NULL,
			stock_after INTEGER NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS stock_changes_product_idx
			ON stock_changes (product_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES tenants(id),
			product_id UUID NOT NULL REFERENCES products(id),
			rental_id UUID REFERENCES rentals(id),
			client_id UUID REFERENCES clients(id),
			worker_id UUID REFERENCES users(id),
			quantity INTEGER NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			total_amount DOUBLE PRECISION NOT NULL,
			is_paid BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS sales_tenant_created_idx
			ON sales (tenant_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS daily_sessions (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES tenants(id),
			name TEXT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			opened_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		// At most one active session per tenant; concurrent starts lose with a
		// unique violation instead of creating a second active session.
		`CREATE UNIQUE INDEX IF NOT EXISTS one_active_session_per_tenant
			ON daily_sessions (tenant_id) WHERE is_active`,
		`CREATE TABLE IF NOT EXISTS stock_snapshots (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL REFERENCES daily_sessions(id),
			product_id UUID NOT NULL REFERENCES products(id),
			initial_stock INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (session_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES tenants(id),
			user_id UUID REFERENCES users(id),
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
