// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/stackarch/internal/filelock"
	"github.com/example/stackarch/internal/ports/secondary"
)

// ArchiveAdapter implements secondary.SnapshotArchive with YAML files.
type ArchiveAdapter struct {
	now func() time.Time
}

// NewArchiveAdapter creates a new YAML snapshot archive.
func NewArchiveAdapter() *ArchiveAdapter {
	return &ArchiveAdapter{now: time.Now}
}

// Export writes doc to path atomically under the path's lock file.
// ExportedAt is stamped when empty.
func (a *ArchiveAdapter) Export(ctx context.Context, path string, doc *secondary.ArchiveDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := *doc
	if out.ExportedAt == "" {
		out.ExportedAt = a.now().UTC().Format(time.RFC3339)
	}
	if out.Fields == nil {
		out.Fields = map[string]string{}
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}
	return nil
}

// Import reads a document from path.
func (a *ArchiveAdapter) Import(ctx context.Context, path string) (*secondary.ArchiveDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := filelock.LockAndRead(path)
	if err != nil {
		return nil, fmt.Errorf("failed to import snapshot: %w", err)
	}

	var doc secondary.ArchiveDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	if doc.Fields == nil {
		return nil, fmt.Errorf("snapshot %s has no fields", path)
	}
	if doc.SchemaVersion == 0 {
		doc.SchemaVersion = 1
	}
	return &doc, nil
}

// Ensure ArchiveAdapter implements the interface
var _ secondary.SnapshotArchive = (*ArchiveAdapter)(nil)
