package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/stackarch/internal/ports/secondary"
)

// EditLogRepository implements secondary.EditLogRepository with SQLite.
type EditLogRepository struct {
	db *sql.DB
}

// NewEditLogRepository creates a new SQLite edit log repository.
func NewEditLogRepository(db *sql.DB) *EditLogRepository {
	return &EditLogRepository{db: db}
}

// Create persists a new edit log entry.
func (r *EditLogRepository) Create(ctx context.Context, entry *secondary.EditLogRecord) error {
	var sessionID, oldValue, newValue sql.NullString
	if entry.SessionID != "" {
		sessionID = sql.NullString{String: entry.SessionID, Valid: true}
	}
	if entry.OldValue != "" {
		oldValue = sql.NullString{String: entry.OldValue, Valid: true}
	}
	if entry.NewValue != "" {
		newValue = sql.NullString{String: entry.NewValue, Valid: true}
	}
	source := entry.Source
	if source == "" {
		source = "edit"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO edit_log (id, session_id, slot, field, old_value, new_value, source) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		sessionID,
		entry.Slot,
		entry.Field,
		oldValue,
		newValue,
		source,
	)
	if err != nil {
		return fmt.Errorf("failed to create edit log entry: %w", err)
	}
	return nil
}

// List retrieves log entries matching the given filters, newest first.
func (r *EditLogRepository) List(ctx context.Context, filters secondary.EditLogFilters) ([]*secondary.EditLogRecord, error) {
	query := `SELECT id, session_id, slot, field, old_value, new_value, source, created_at FROM edit_log WHERE 1=1`
	args := []any{}

	if filters.Slot != "" {
		query += " AND slot = ?"
		args = append(args, filters.Slot)
	}

	if filters.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filters.SessionID)
	}

	if filters.Field != "" {
		query += " AND field = ?"
		args = append(args, filters.Field)
	}

	if filters.Source != "" {
		query += " AND source = ?"
		args = append(args, filters.Source)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list edit log: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.EditLogRecord
	for rows.Next() {
		var (
			sessionID sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			createdAt time.Time
		)

		record := &secondary.EditLogRecord{}
		err := rows.Scan(&record.ID,
			&sessionID,
			&record.Slot,
			&record.Field,
			&oldValue,
			&newValue,
			&record.Source,
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan edit log entry: %w", err)
		}
		record.SessionID = sessionID.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		entries = append(entries, record)
	}

	return entries, rows.Err()
}

// PruneOlderThan deletes log entries older than the given number of days.
func (r *EditLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM edit_log WHERE created_at < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune edit log: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure EditLogRepository implements the interface
var _ secondary.EditLogRepository = (*EditLogRepository)(nil)
