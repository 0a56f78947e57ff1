package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/example/stackarch/internal/ports/primary"
	"github.com/example/stackarch/internal/ports/secondary"
)

// mockSnapshotRepository implements secondary.SnapshotRepository for testing.
type mockSnapshotRepository struct {
	snapshots map[string]*secondary.SnapshotRecord
	saves     int
	getErr    error
	saveErr   error
}

func newMockSnapshotRepository() *mockSnapshotRepository {
	return &mockSnapshotRepository{snapshots: make(map[string]*secondary.SnapshotRecord)}
}

func (m *mockSnapshotRepository) Save(ctx context.Context, snapshot *secondary.SnapshotRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	fields := make(map[string]string, len(snapshot.Fields))
	for k, v := range snapshot.Fields {
		fields[k] = v
	}
	m.snapshots[snapshot.Slot] = &secondary.SnapshotRecord{
		Slot:          snapshot.Slot,
		Fields:        fields,
		SchemaVersion: snapshot.SchemaVersion,
		CreatedAt:     "2024-01-01T00:00:00Z",
		UpdatedAt:     "2024-01-01T00:00:00Z",
	}
	m.saves++
	return nil
}

func (m *mockSnapshotRepository) Get(ctx context.Context, slot string) (*secondary.SnapshotRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if s, ok := m.snapshots[slot]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("snapshot %s: %w", slot, secondary.ErrNotFound)
}

func (m *mockSnapshotRepository) List(ctx context.Context) ([]*secondary.SnapshotRecord, error) {
	var out []*secondary.SnapshotRecord
	for _, s := range m.snapshots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (m *mockSnapshotRepository) Delete(ctx context.Context, slot string) error {
	if _, ok := m.snapshots[slot]; !ok {
		return fmt.Errorf("snapshot %s: %w", slot, secondary.ErrNotFound)
	}
	delete(m.snapshots, slot)
	return nil
}

// mockEditLogRepository implements secondary.EditLogRepository and
// secondary.LogWriter for testing.
type mockEditLogRepository struct {
	entries []*secondary.EditLogRecord
	pruned  int
}

func newMockEditLogRepository() *mockEditLogRepository {
	return &mockEditLogRepository{}
}

func (m *mockEditLogRepository) Create(ctx context.Context, entry *secondary.EditLogRecord) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockEditLogRepository) List(ctx context.Context, filters secondary.EditLogFilters) ([]*secondary.EditLogRecord, error) {
	var result []*secondary.EditLogRecord
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if filters.Slot != "" && e.Slot != filters.Slot {
			continue
		}
		if filters.SessionID != "" && e.SessionID != filters.SessionID {
			continue
		}
		if filters.Field != "" && e.Field != filters.Field {
			continue
		}
		if filters.Source != "" && e.Source != filters.Source {
			continue
		}
		result = append(result, e)
	}
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockEditLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	return m.pruned, nil
}

func (m *mockEditLogRepository) LogChange(ctx context.Context, slot, field, oldValue, newValue, source string) error {
	return m.Create(ctx, &secondary.EditLogRecord{
		ID:       fmt.Sprintf("log-%d", len(m.entries)+1),
		Slot:     slot,
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
		Source:   source,
	})
}

// mockArchive implements secondary.SnapshotArchive in memory.
type mockArchive struct {
	files map[string]*secondary.ArchiveDocument
}

func newMockArchive() *mockArchive {
	return &mockArchive{files: make(map[string]*secondary.ArchiveDocument)}
}

func (m *mockArchive) Export(ctx context.Context, path string, doc *secondary.ArchiveDocument) error {
	m.files[path] = doc
	return nil
}

func (m *mockArchive) Import(ctx context.Context, path string) (*secondary.ArchiveDocument, error) {
	doc, ok := m.files[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return doc, nil
}

// mockRenderer records the view it was asked to render.
type mockRenderer struct {
	last *primary.ConfigurationView
}

func (m *mockRenderer) Render(view *primary.ConfigurationView, asHTML bool) (string, string, error) {
	m.last = view
	if asHTML {
		return "<h1>" + view.ProjectName + "</h1>", "text/html", nil
	}
	return "# " + view.ProjectName, "text/markdown", nil
}

var (
	_ secondary.SnapshotRepository = (*mockSnapshotRepository)(nil)
	_ secondary.EditLogRepository  = (*mockEditLogRepository)(nil)
	_ secondary.LogWriter          = (*mockEditLogRepository)(nil)
	_ secondary.SnapshotArchive    = (*mockArchive)(nil)
	_ ReportRenderer               = (*mockRenderer)(nil)
)
