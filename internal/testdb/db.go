// Package testdb provides utilities for database integration tests. It only
// depends on the store interfaces, the embedded migrations, and standard
// database packages, not on specific store implementations.
package testdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/mercato-api/mercato/migrations"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// IsIntegrationTestEnvironment returns true if a test database URL is set,
// indicating that integration tests can run.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the database URL for tests. It checks
// DATABASE_URL and MERCATO_TEST_DB_URL in that order, returning the first
// non-empty value.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("MERCATO_TEST_DB_URL")
}

// Connect opens a connection to the test database, skipping the test when no
// test database is configured.
func Connect(t *testing.T) *sql.DB {
	t.Helper()

	if !IsIntegrationTestEnvironment() {
		t.Skip("integration test requires DATABASE_URL or MERCATO_TEST_DB_URL")
	}

	db, err := sql.Open("pgx", GetTestDatabaseURL())
	require.NoError(t, err, "Failed to open test database connection")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping(), "Failed to ping test database")
	return db
}

// SetupSchema applies the embedded migrations to the test database.
func SetupSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	goose.SetLogger(&testGooseLogger{t: t})
	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"), "Failed to set migration dialect")
	require.NoError(t, goose.Up(db, "."), "Failed to run migrations")
}

// WithTx executes a test function within a transaction, rolling back after
// the test completes so tests leave no trace in the database.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("Failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// testGooseLogger routes goose output through the test log.
type testGooseLogger struct {
	t *testing.T
}

func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatalf(format, v...)
}

func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Log(fmt.Sprintf(format, v...))
}
