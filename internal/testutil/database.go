// Package testutil provides shared helpers for tests: an in-memory database
// with the production schema, data builders, and service constructors.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migration.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Asset table
		CREATE TABLE IF NOT EXISTS asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			kind VARCHAR(12) NOT NULL,
			name VARCHAR(100) NOT NULL,
			symbol VARCHAR(20),
			quantity FLOAT NOT NULL DEFAULT 0,
			average_cost FLOAT NOT NULL DEFAULT 0,
			current_price FLOAT NOT NULL DEFAULT 0,
			currency VARCHAR(3) NOT NULL,
			date_acquired DATE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE IF NOT EXISTS "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			kind VARCHAR(20) NOT NULL,
			date VARCHAR(35) NOT NULL,
			quantity_change FLOAT NOT NULL,
			price_per_unit FLOAT NOT NULL DEFAULT 0,
			fee FLOAT NOT NULL DEFAULT 0,
			total FLOAT NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(asset_id) REFERENCES asset(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_transaction_asset_date ON "transaction"(asset_id, date);

		-- Historical asset prices (sparse, one row per asset per day)
		CREATE TABLE IF NOT EXISTS asset_price (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			price FLOAT NOT NULL,
			FOREIGN KEY(asset_id) REFERENCES asset(id) ON DELETE CASCADE,
			CONSTRAINT unique_asset_price UNIQUE (asset_id, date)
		);

		-- Exchange rates
		CREATE TABLE IF NOT EXISTS exchange_rate (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			from_currency VARCHAR(3) NOT NULL,
			to_currency VARCHAR(3) NOT NULL,
			rate FLOAT NOT NULL,
			date DATE NOT NULL,
			CONSTRAINT unique_exchange_rate UNIQUE (from_currency, to_currency, date)
		);

		-- Single-row application settings
		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER NOT NULL PRIMARY KEY CHECK (id = 1),
			base_currency VARCHAR(3) NOT NULL,
			provider_token TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		`"transaction"`,
		"asset_price",
		"asset",
		"exchange_rate",
		"settings",
	}

	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
