// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/stackarch/internal/ports/secondary"
)

// SnapshotRepository implements secondary.SnapshotRepository with SQLite.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SQLite snapshot repository.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save creates or replaces the snapshot in a slot.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *secondary.SnapshotRecord) error {
	version := snapshot.SchemaVersion
	if version == 0 {
		version = 1
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (slot, schema_version) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET schema_version = excluded.schema_version, updated_at = CURRENT_TIMESTAMP`,
		snapshot.Slot, version,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snapshot.Slot, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshot_fields WHERE slot = ?", snapshot.Slot); err != nil {
		return fmt.Errorf("failed to clear snapshot fields: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO snapshot_fields (slot, field, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot fields: %w", err)
	}
	defer stmt.Close()

	for field, value := range snapshot.Fields {
		if _, err := stmt.ExecContext(ctx, snapshot.Slot, field, value); err != nil {
			return fmt.Errorf("failed to save snapshot field %s: %w", field, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot %s: %w", snapshot.Slot, err)
	}
	return nil
}

// Get retrieves the snapshot in a slot.
func (r *SnapshotRepository) Get(ctx context.Context, slot string) (*secondary.SnapshotRecord, error) {
	var createdAt, updatedAt time.Time
	record := &secondary.SnapshotRecord{Slot: slot}

	err := r.db.QueryRowContext(ctx,
		"SELECT schema_version, created_at, updated_at FROM snapshots WHERE slot = ?",
		slot,
	).Scan(&record.SchemaVersion, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s: %w", slot, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	fields, err := r.fields(ctx, "WHERE slot = ?", slot)
	if err != nil {
		return nil, err
	}
	record.Fields = fields[slot]
	if record.Fields == nil {
		record.Fields = map[string]string{}
	}
	return record, nil
}

// List retrieves all snapshots ordered by slot.
func (r *SnapshotRepository) List(ctx context.Context) ([]*secondary.SnapshotRecord, error) {
	snapshots, err := r.listHeaders(ctx)
	if err != nil {
		return nil, err
	}

	fields, err := r.fields(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, s := range snapshots {
		s.Fields = fields[s.Slot]
		if s.Fields == nil {
			s.Fields = map[string]string{}
		}
	}
	return snapshots, nil
}

// listHeaders reads the snapshot rows; the result set is closed before
// fields are queried.
func (r *SnapshotRepository) listHeaders(ctx context.Context) ([]*secondary.SnapshotRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT slot, schema_version, created_at, updated_at FROM snapshots ORDER BY slot",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*secondary.SnapshotRecord
	for rows.Next() {
		var createdAt, updatedAt time.Time
		record := &secondary.SnapshotRecord{}
		if err := rows.Scan(&record.Slot, &record.SchemaVersion, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)
		snapshots = append(snapshots, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// Delete removes a slot and its fields.
func (r *SnapshotRepository) Delete(ctx context.Context, slot string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshot_fields WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("failed to delete snapshot fields: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("snapshot %s: %w", slot, secondary.ErrNotFound)
	}
	return tx.Commit()
}

// fields loads snapshot fields grouped by slot.
func (r *SnapshotRepository) fields(ctx context.Context, where string, args ...any) (map[string]map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT slot, field, value FROM snapshot_fields "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot fields: %w", err)
	}
	defer rows.Close()

	out := map[string]map[string]string{}
	for rows.Next() {
		var slot, field, value string
		if err := rows.Scan(&slot, &field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot field: %w", err)
		}
		if out[slot] == nil {
			out[slot] = map[string]string{}
		}
		out[slot][field] = value
	}
	return out, rows.Err()
}

// Ensure SnapshotRepository implements the interface
var _ secondary.SnapshotRepository = (*SnapshotRepository)(nil)
