// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/stackarch/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// One connection, otherwise each pooled connection sees its own empty database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedEditLog inserts an edit log row with an explicit timestamp.
func seedEditLog(t *testing.T, db *sql.DB, id, slot, field, createdAt string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO edit_log (id, slot, field, old_value, new_value, source, created_at) VALUES (?, ?, ?, 'a', 'b', 'edit', ?)",
		id, slot, field, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to seed edit log: %v", err)
	}
}
