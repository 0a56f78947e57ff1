package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableColumns(t *testing.T, conn *sql.DB, table string) []string {
	t.Helper()
	rows, err := conn.Query("SELECT name FROM pragma_table_info(?)", table)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	return cols
}

func schemaVersion(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var v int
	require.NoError(t, conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v))
	return v
}

func TestOpen_FreshInstall(t *testing.T) {
	conn, err := Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, LatestVersion(), schemaVersion(t, conn))
	assert.Contains(t, tableColumns(t, conn, "edit_log"), "source")
	assert.Contains(t, tableColumns(t, conn, "snapshot_fields"), "value")
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stackarch.db")
	conn, err := Open(path)
	require.NoError(t, err)
	defer conn.Close()

	assert.FileExists(t, path)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stackarch.db")
	conn, err := Open(path)
	require.NoError(t, err)
	_, err = conn.Exec("INSERT INTO snapshots (slot) VALUES ('default')")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	conn, err = Open(path)
	require.NoError(t, err)
	defer conn.Close()

	var count int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count))
	assert.Equal(t, 1, count)
	assert.Equal(t, LatestVersion(), schemaVersion(t, conn))
}

func TestRunMigrations_UpgradesUnversionedDatabase(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	defer conn.Close()

	// A version 2 database that predates schema_version tracking.
	_, err = conn.Exec(`
		CREATE TABLE edit_log (
			id TEXT PRIMARY KEY,
			slot TEXT NOT NULL,
			field TEXT NOT NULL,
			old_value TEXT,
			new_value TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO edit_log (id, slot, field, old_value, new_value) VALUES ('e1', 'default', 'database', 'sqlite', 'postgres');
	`)
	require.NoError(t, err)

	require.NoError(t, InitSchema(conn))

	assert.Equal(t, LatestVersion(), schemaVersion(t, conn))
	assert.Contains(t, tableColumns(t, conn, "edit_log"), "session_id")

	var source, newValue string
	require.NoError(t, conn.QueryRow("SELECT source, new_value FROM edit_log WHERE id = 'e1'").Scan(&source, &newValue))
	assert.Equal(t, "edit", source)
	assert.Equal(t, "postgres", newValue)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	conn, err := Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, RunMigrations(conn))
	require.NoError(t, RunMigrations(conn))
	assert.Equal(t, LatestVersion(), schemaVersion(t, conn))
}

func TestEditLogSourceConstraint(t *testing.T) {
	conn, err := Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec("INSERT INTO edit_log (id, slot, field, source) VALUES ('x', 's', 'f', 'bogus')")
	assert.Error(t, err)
}

func TestSnapshotFieldsCascade(t *testing.T) {
	conn, err := Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(`
		INSERT INTO snapshots (slot) VALUES ('a');
		INSERT INTO snapshot_fields (slot, field, value) VALUES ('a', 'database', 'sqlite');
		DELETE FROM snapshots WHERE slot = 'a';
	`)
	require.NoError(t, err)

	var count int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM snapshot_fields").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestSetPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.db")
	SetPath(path)
	t.Cleanup(func() {
		Close()
		SetPath("")
	})

	got, err := GetDBPath()
	require.NoError(t, err)
	assert.Equal(t, path, got)

	conn, err := GetDB()
	require.NoError(t, err)
	again, err := GetDB()
	require.NoError(t, err)
	assert.Same(t, conn, again)
}
