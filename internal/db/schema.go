package db

import "database/sql"

// SchemaSQL is the complete schema for fresh stackarch installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository tests
// load it through GetSchemaSQL() instead of declaring their own tables, so a
// column referenced by repository code but missing here fails immediately
// with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run `make test` to verify alignment
const SchemaSQL = `
-- Snapshot slots (one saved configuration per slot, last write wins)
CREATE TABLE IF NOT EXISTS snapshots (
	slot TEXT PRIMARY KEY,
	schema_version INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS snapshot_fields (
	slot TEXT NOT NULL,
	field TEXT NOT NULL,
	value TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (slot, field),
	FOREIGN KEY (slot) REFERENCES snapshots(slot) ON DELETE CASCADE
);

-- Edit log (one row per changed field; survives snapshot deletion)
CREATE TABLE IF NOT EXISTS edit_log (
	id TEXT PRIMARY KEY,
	session_id TEXT,
	slot TEXT NOT NULL,
	field TEXT NOT NULL,
	old_value TEXT,
	new_value TEXT,
	source TEXT NOT NULL CHECK(source IN ('edit', 'preset', 'reset', 'import')) DEFAULT 'edit',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_edit_log_slot ON edit_log(slot);
CREATE INDEX IF NOT EXISTS idx_edit_log_session ON edit_log(session_id);
CREATE INDEX IF NOT EXISTS idx_edit_log_created ON edit_log(created_at);
`

// InitSchema creates or upgrades the schema of db.
func InitSchema(db *sql.DB) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}
	if tableCount > 0 {
		return RunMigrations(db)
	}

	// Databases created before versioning have tables but no schema_version.
	var oldTableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('snapshots', 'edit_log')").Scan(&oldTableCount)
	if err != nil {
		return err
	}
	if oldTableCount > 0 {
		return RunMigrations(db)
	}

	// Fresh install: create the current schema and mark every migration applied.
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
