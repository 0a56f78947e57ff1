// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// SnapshotRepository defines the secondary port for snapshot slot persistence.
type SnapshotRepository interface {
	// Save creates or replaces the snapshot in a slot (last write wins).
	Save(ctx context.Context, snapshot *SnapshotRecord) error

	// Get retrieves the snapshot in a slot. Returns ErrNotFound if absent.
	Get(ctx context.Context, slot string) (*SnapshotRecord, error)

	// List retrieves all snapshots ordered by slot.
	List(ctx context.Context) ([]*SnapshotRecord, error)

	// Delete removes a slot. Returns ErrNotFound if absent.
	Delete(ctx context.Context, slot string) error
}

// SnapshotRecord represents a snapshot as stored in persistence.
type SnapshotRecord struct {
	Slot          string
	Fields        map[string]string
	SchemaVersion int
	CreatedAt     string
	UpdatedAt     string
}

// EditLogRepository defines the secondary port for the edit history.
type EditLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, entry *EditLogRecord) error

	// List retrieves entries matching the filters, newest first.
	List(ctx context.Context, filters EditLogFilters) ([]*EditLogRecord, error)

	// PruneOlderThan deletes entries older than the given number of days.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// EditLogRecord represents one changed field as stored in persistence.
type EditLogRecord struct {
	ID        string
	SessionID string
	Slot      string
	Field     string
	OldValue  string
	NewValue  string
	Source    string
	CreatedAt string
}

// EditLogFilters contains filter options for querying the edit log.
type EditLogFilters struct {
	Slot      string
	SessionID string
	Field     string
	Source    string
	Limit     int
}

// SnapshotArchive defines the secondary port for snapshot files.
type SnapshotArchive interface {
	// Export writes a document to path atomically.
	Export(ctx context.Context, path string, doc *ArchiveDocument) error

	// Import reads a document from path.
	Import(ctx context.Context, path string) (*ArchiveDocument, error)
}

// ArchiveDocument is the on-disk form of an exported snapshot.
type ArchiveDocument struct {
	SchemaVersion int               `yaml:"schema_version"`
	Slot          string            `yaml:"slot,omitempty"`
	ExportedAt    string            `yaml:"exported_at,omitempty"`
	Fields        map[string]string `yaml:"fields"`
}
