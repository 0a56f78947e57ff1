package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/stackarch/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

// mockConfiguratorService implements primary.ConfiguratorService for testing.
type mockConfiguratorService struct {
	showFn     func(ctx context.Context, slot string) (*primary.ConfigurationView, error)
	applyFn    func(ctx context.Context, req primary.ApplyEditsRequest) (*primary.ApplyResult, error)
	checkFn    func(ctx context.Context, req primary.CheckOptionRequest) (*primary.OptionStatus, error)
	optionsFn  func(ctx context.Context, slot, category string) ([]*primary.CategoryOptions, error)
	nameFn     func(ctx context.Context, name string) (*primary.NameCheck, error)
	historyFn  func(ctx context.Context, filters primary.HistoryFilters) ([]*primary.HistoryEntry, error)
	snapshots  []*primary.SnapshotSummary
	deleteErr  error
	reportResp *primary.ReportResponse

	lastApplyReq  primary.ApplyEditsRequest
	lastPresetReq primary.ApplyPresetRequest
	lastExportReq primary.ExportSnapshotRequest
	lastReportReq primary.ReportRequest
	deletedSlot   string
	pruneDays     int
}

func sampleView() *primary.ConfigurationView {
	return &primary.ConfigurationView{
		Slot:        "default",
		Saved:       true,
		ProjectName: "my-app",
		Fields: []*primary.FieldView{
			{Category: "database", Title: "Database", Value: "none"},
			{Category: "orm", Title: "ORM", Value: "none", HasIssue: true, Notes: []string{"ORM was cleared because no database is selected."}},
		},
		Command: "bun create better-t-stack@latest my-app --database none",
	}
}

func sampleResult() *primary.ApplyResult {
	return &primary.ApplyResult{
		View:     sampleView(),
		Applied:  []string{"database=none"},
		Rejected: []*primary.RejectedEdit{{Edit: "orm=drizzle", Reason: "Select a database first"}},
		Changes:  []*primary.FieldChange{{Field: "database", OldValue: "sqlite", NewValue: "none"}},
	}
}

func (m *mockConfiguratorService) Show(ctx context.Context, slot string) (*primary.ConfigurationView, error) {
	if m.showFn != nil {
		return m.showFn(ctx, slot)
	}
	return sampleView(), nil
}

func (m *mockConfiguratorService) ApplyEdits(ctx context.Context, req primary.ApplyEditsRequest) (*primary.ApplyResult, error) {
	m.lastApplyReq = req
	if m.applyFn != nil {
		return m.applyFn(ctx, req)
	}
	return sampleResult(), nil
}

func (m *mockConfiguratorService) CheckOption(ctx context.Context, req primary.CheckOptionRequest) (*primary.OptionStatus, error) {
	if m.checkFn != nil {
		return m.checkFn(ctx, req)
	}
	return &primary.OptionStatus{Category: req.Category, OptionID: req.Option}, nil
}

func (m *mockConfiguratorService) ListOptions(ctx context.Context, slot, category string) ([]*primary.CategoryOptions, error) {
	if m.optionsFn != nil {
		return m.optionsFn(ctx, slot, category)
	}
	return nil, nil
}

func (m *mockConfiguratorService) ApplyPreset(ctx context.Context, req primary.ApplyPresetRequest) (*primary.ApplyResult, error) {
	m.lastPresetReq = req
	return sampleResult(), nil
}

func (m *mockConfiguratorService) ListPresets(ctx context.Context) ([]*primary.PresetInfo, error) {
	return []*primary.PresetInfo{
		{Name: "minimal", Description: "Bare project", Builtin: true, Fields: map[string]string{"frontend": "", "backend": "none"}},
		{Name: "team", Description: "Team stack", Fields: map[string]string{"database": "postgres"}},
	}, nil
}

func (m *mockConfiguratorService) Reset(ctx context.Context, slot string) (*primary.ApplyResult, error) {
	return sampleResult(), nil
}

func (m *mockConfiguratorService) ValidateName(ctx context.Context, name string) (*primary.NameCheck, error) {
	if m.nameFn != nil {
		return m.nameFn(ctx, name)
	}
	return &primary.NameCheck{Name: name, Valid: true}, nil
}

func (m *mockConfiguratorService) ListSnapshots(ctx context.Context) ([]*primary.SnapshotSummary, error) {
	return m.snapshots, nil
}

func (m *mockConfiguratorService) DeleteSnapshot(ctx context.Context, slot string) error {
	m.deletedSlot = slot
	return m.deleteErr
}

func (m *mockConfiguratorService) ExportSnapshot(ctx context.Context, req primary.ExportSnapshotRequest) (*primary.ExportSnapshotResponse, error) {
	m.lastExportReq = req
	return &primary.ExportSnapshotResponse{Slot: req.Slot, Path: req.Slot + ".yaml"}, nil
}

func (m *mockConfiguratorService) ImportSnapshot(ctx context.Context, req primary.ImportSnapshotRequest) (*primary.ApplyResult, error) {
	return sampleResult(), nil
}

func (m *mockConfiguratorService) History(ctx context.Context, filters primary.HistoryFilters) ([]*primary.HistoryEntry, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, filters)
	}
	return nil, nil
}

func (m *mockConfiguratorService) PruneHistory(ctx context.Context, olderThanDays int) (int, error) {
	m.pruneDays = olderThanDays
	return 3, nil
}

func (m *mockConfiguratorService) Report(ctx context.Context, req primary.ReportRequest) (*primary.ReportResponse, error) {
	m.lastReportReq = req
	if m.reportResp != nil {
		return m.reportResp, nil
	}
	return &primary.ReportResponse{Content: "# my-app\n", ContentType: "text/markdown"}, nil
}

func newTestAdapter() (*ConfiguratorAdapter, *mockConfiguratorService, *bytes.Buffer) {
	mock := &mockConfiguratorService{}
	var buf bytes.Buffer
	return NewConfiguratorAdapter(mock, &buf), mock, &buf
}

func TestConfiguratorAdapter_Show(t *testing.T) {
	adapter, _, out := newTestAdapter()

	if err := adapter.Show(context.Background(), "default"); err != nil {
		t.Fatalf("Show() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"Slot: default (saved)", "Project: my-app", "Database", "! ORM was cleared", "--database none"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestConfiguratorAdapter_ShowInvalidName(t *testing.T) {
	adapter, mock, out := newTestAdapter()
	mock.showFn = func(ctx context.Context, slot string) (*primary.ConfigurationView, error) {
		v := sampleView()
		v.Saved = false
		v.NameError = "Project name contains invalid characters"
		return v, nil
	}

	if err := adapter.Show(context.Background(), ""); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if !strings.Contains(out.String(), "(not saved)") {
		t.Errorf("expected unsaved marker, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "✗ Project name contains invalid characters") {
		t.Errorf("expected name error, got:\n%s", out.String())
	}
}

func TestConfiguratorAdapter_ShowError(t *testing.T) {
	adapter, mock, _ := newTestAdapter()
	mock.showFn = func(ctx context.Context, slot string) (*primary.ConfigurationView, error) {
		return nil, errors.New("db closed")
	}

	if err := adapter.Show(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestConfiguratorAdapter_Command(t *testing.T) {
	adapter, _, out := newTestAdapter()

	if err := adapter.Command(context.Background(), ""); err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if out.String() != "bun create better-t-stack@latest my-app --database none\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestConfiguratorAdapter_Apply(t *testing.T) {
	adapter, mock, out := newTestAdapter()

	err := adapter.Apply(context.Background(), "work", []string{"database=none", "orm=drizzle"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if mock.lastApplyReq.Slot != "work" || len(mock.lastApplyReq.Edits) != 2 {
		t.Errorf("unexpected request %+v", mock.lastApplyReq)
	}
	got := out.String()
	for _, want := range []string{"✓ database=none", "✗ orm=drizzle: Select a database first", "sqlite → none"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestConfiguratorAdapter_ApplyRequiresEdits(t *testing.T) {
	adapter, _, _ := newTestAdapter()

	if err := adapter.Apply(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for empty edits")
	}
}

func TestConfiguratorAdapter_ApplyNoChanges(t *testing.T) {
	adapter, mock, out := newTestAdapter()
	mock.applyFn = func(ctx context.Context, req primary.ApplyEditsRequest) (*primary.ApplyResult, error) {
		return &primary.ApplyResult{View: sampleView(), Applied: req.Edits}, nil
	}

	if err := adapter.Apply(context.Background(), "", []string{"database=none"}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !strings.Contains(out.String(), "No changes") {
		t.Errorf("expected 'No changes', got:\n%s", out.String())
	}
}

func TestConfiguratorAdapter_Check(t *testing.T) {
	tests := []struct {
		name   string
		status primary.OptionStatus
		want   string
	}{
		{"available", primary.OptionStatus{}, "✓ orm/drizzle can be selected"},
		{"disabled", primary.OptionStatus{Disabled: true, Reason: "Select a database first"}, "✗ orm/drizzle is disabled: Select a database first"},
		{"selected", primary.OptionStatus{Selected: true}, "● orm/drizzle is selected and can be removed"},
		{"locked", primary.OptionStatus{Selected: true, Disabled: true, Reason: "Currently selected"}, "● orm/drizzle is selected (Currently selected)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, mock, out := newTestAdapter()
			mock.checkFn = func(ctx context.Context, req primary.CheckOptionRequest) (*primary.OptionStatus, error) {
				s := tt.status
				s.Category = req.Category
				s.OptionID = req.Option
				return &s, nil
			}

			if err := adapter.Check(context.Background(), "", "orm", "drizzle"); err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("expected %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestConfiguratorAdapter_Options(t *testing.T) {
	adapter, mock, out := newTestAdapter()
	mock.optionsFn = func(ctx context.Context, slot, category string) ([]*primary.CategoryOptions, error) {
		return []*primary.CategoryOptions{{
			Category: "orm",
			Title:    "ORM",
			Options: []*primary.OptionStatus{
				{OptionID: "drizzle", Name: "Drizzle", Default: true, Disabled: true, Reason: "Select a database first"},
				{OptionID: "none", Name: "No ORM", Selected: true},
			},
			Notes: []string{"ORM was cleared"},
		}}, nil
	}

	if err := adapter.Options(context.Background(), "", "orm"); err != nil {
		t.Fatalf("Options() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"ORM (orm, pick one)", "✗ drizzle", "Drizzle (default) - Select a database first", "● none", "! ORM was cleared"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestConfiguratorAdapter_Presets(t *testing.T) {
	adapter, _, out := newTestAdapter()

	if err := adapter.Presets(context.Background()); err != nil {
		t.Fatalf("Presets() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "minimal") || !strings.Contains(got, "builtin") {
		t.Errorf("missing builtin preset:\n%s", got)
	}
	if !strings.Contains(got, "backend=none frontend=none") {
		t.Errorf("fields should be sorted with empty shown as none:\n%s", got)
	}
	if !strings.Contains(got, "user") {
		t.Errorf("missing user preset:\n%s", got)
	}
}

func TestConfiguratorAdapter_Preset(t *testing.T) {
	adapter, mock, out := newTestAdapter()

	if err := adapter.Preset(context.Background(), "s1", "minimal"); err != nil {
		t.Fatalf("Preset() error = %v", err)
	}
	if mock.lastPresetReq.Preset != "minimal" || mock.lastPresetReq.Slot != "s1" {
		t.Errorf("unexpected request %+v", mock.lastPresetReq)
	}
	if !strings.Contains(out.String(), "✓ Applied preset minimal") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestConfiguratorAdapter_Name(t *testing.T) {
	adapter, mock, out := newTestAdapter()

	if err := adapter.Name(context.Background(), "my-app"); err != nil {
		t.Fatalf("Name() error = %v", err)
	}
	if !strings.Contains(out.String(), `✓ "my-app" is a valid project name`) {
		t.Errorf("unexpected output %q", out.String())
	}

	mock.nameFn = func(ctx context.Context, name string) (*primary.NameCheck, error) {
		return &primary.NameCheck{Name: name, Valid: false, Reason: "Project name contains invalid characters"}, nil
	}
	err := adapter.Name(context.Background(), "a<b")
	if err == nil || !strings.Contains(err.Error(), "invalid characters") {
		t.Errorf("expected invalid name error, got %v", err)
	}
}

func TestConfiguratorAdapter_Snapshots(t *testing.T) {
	adapter, mock, out := newTestAdapter()

	if err := adapter.Snapshots(context.Background()); err != nil {
		t.Fatalf("Snapshots() error = %v", err)
	}
	if !strings.Contains(out.String(), "No saved snapshots") {
		t.Errorf("unexpected output %q", out.String())
	}

	out.Reset()
	mock.snapshots = []*primary.SnapshotSummary{{Slot: "work", ProjectName: "api", UpdatedAt: "2024-01-01 10:00:00", Command: "bun create"}}
	if err := adapter.Snapshots(context.Background()); err != nil {
		t.Fatalf("Snapshots() error = %v", err)
	}
	if !strings.Contains(out.String(), "work") || !strings.Contains(out.String(), "api") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestConfiguratorAdapter_Delete(t *testing.T) {
	adapter, mock, out := newTestAdapter()

	if err := adapter.Delete(context.Background(), "work"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if mock.deletedSlot != "work" || !strings.Contains(out.String(), "✓ Deleted slot work") {
		t.Errorf("unexpected delete: slot=%q out=%q", mock.deletedSlot, out.String())
	}

	mock.deleteErr = errors.New("snapshot not found")
	if err := adapter.Delete(context.Background(), "gone"); err == nil {
		t.Fatal("expected error")
	}
}

func TestConfiguratorAdapter_ExportImport(t *testing.T) {
	adapter, mock, out := newTestAdapter()

	if err := adapter.Export(context.Background(), "work", ""); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if mock.lastExportReq.Slot != "work" || !strings.Contains(out.String(), "✓ Exported slot work to work.yaml") {
		t.Errorf("unexpected export output %q", out.String())
	}

	out.Reset()
	if err := adapter.Import(context.Background(), "", "work.yaml"); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !strings.Contains(out.String(), "✓ Imported work.yaml into slot default") {
		t.Errorf("unexpected import output:\n%s", out.String())
	}
}

func TestConfiguratorAdapter_History(t *testing.T) {
	adapter, mock, out := newTestAdapter()

	if err := adapter.History(context.Background(), primary.HistoryFilters{}); err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if !strings.Contains(out.String(), "No history") {
		t.Errorf("unexpected output %q", out.String())
	}

	out.Reset()
	var gotFilters primary.HistoryFilters
	mock.historyFn = func(ctx context.Context, filters primary.HistoryFilters) ([]*primary.HistoryEntry, error) {
		gotFilters = filters
		return []*primary.HistoryEntry{{Slot: "work", Field: "addons", OldValue: "", NewValue: "biome", Source: "edit", CreatedAt: "2024-01-01 10:00:00"}}, nil
	}
	if err := adapter.History(context.Background(), primary.HistoryFilters{Slot: "work", Limit: 5}); err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if gotFilters.Slot != "work" || gotFilters.Limit != 5 {
		t.Errorf("filters not passed through: %+v", gotFilters)
	}
	if !strings.Contains(out.String(), "none → biome") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestConfiguratorAdapter_Prune(t *testing.T) {
	adapter, mock, out := newTestAdapter()

	if err := adapter.Prune(context.Background(), 30); err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if mock.pruneDays != 30 || !strings.Contains(out.String(), "✓ Pruned 3 history entries older than 30 days") {
		t.Errorf("unexpected prune: days=%d out=%q", mock.pruneDays, out.String())
	}
}

func TestConfiguratorAdapter_Report(t *testing.T) {
	adapter, mock, out := newTestAdapter()
	mock.reportResp = &primary.ReportResponse{Content: "<html></html>", ContentType: "text/html"}

	if err := adapter.Report(context.Background(), "work", true); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if !mock.lastReportReq.HTML || mock.lastReportReq.Slot != "work" {
		t.Errorf("unexpected request %+v", mock.lastReportReq)
	}
	if out.String() != "<html></html>" {
		t.Errorf("unexpected output %q", out.String())
	}
}
