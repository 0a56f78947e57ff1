package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_snapshot_tables",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "create_edit_log",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_session_and_source_to_edit_log",
		Up:      migrationV3,
	},
}

// LatestVersion returns the highest known migration version.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the snapshot slot tables.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
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
	`)
	if err != nil {
		return fmt.Errorf("failed to create snapshot tables: %w", err)
	}
	return nil
}

// migrationV2 creates the first edit log, keyed only by slot.
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS edit_log (
			id TEXT PRIMARY KEY,
			slot TEXT NOT NULL,
			field TEXT NOT NULL,
			old_value TEXT,
			new_value TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_edit_log_slot ON edit_log(slot);
	`)
	if err != nil {
		return fmt.Errorf("failed to create edit_log: %w", err)
	}
	return nil
}

// migrationV3 rebuilds edit_log with session and source columns.
// SQLite cannot add a CHECK constraint in place, so the table is copied.
func migrationV3(tx *sql.Tx) error {
	var hasSource int
	err := tx.QueryRow("SELECT COUNT(*) FROM pragma_table_info('edit_log') WHERE name = 'source'").Scan(&hasSource)
	if err != nil {
		return fmt.Errorf("failed to inspect edit_log: %w", err)
	}
	if hasSource > 0 {
		return nil
	}

	_, err = tx.Exec(`
		CREATE TABLE edit_log_new (
			id TEXT PRIMARY KEY,
			session_id TEXT,
			slot TEXT NOT NULL,
			field TEXT NOT NULL,
			old_value TEXT,
			new_value TEXT,
			source TEXT NOT NULL CHECK(source IN ('edit', 'preset', 'reset', 'import')) DEFAULT 'edit',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		INSERT INTO edit_log_new (id, slot, field, old_value, new_value, created_at)
		SELECT id, slot, field, old_value, new_value, created_at FROM edit_log;

		DROP TABLE edit_log;
		ALTER TABLE edit_log_new RENAME TO edit_log;

		CREATE INDEX IF NOT EXISTS idx_edit_log_slot ON edit_log(slot);
		CREATE INDEX IF NOT EXISTS idx_edit_log_session ON edit_log(session_id);
		CREATE INDEX IF NOT EXISTS idx_edit_log_created ON edit_log(created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to rebuild edit_log: %w", err)
	}
	return nil
}
