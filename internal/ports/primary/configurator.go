// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import "context"

// ConfiguratorService defines the primary port for the stack configurator.
// Every operation works on a named snapshot slot; an empty slot means the
// configured default slot. Slots that were never saved read as the default
// configuration.
type ConfiguratorService interface {
	// Show returns the normalized configuration of a slot with diagnostics
	// and the generated command.
	Show(ctx context.Context, slot string) (*ConfigurationView, error)

	// ApplyEdits applies edits such as "database=postgres" or "addons+=biome"
	// in order. Disabled edits are skipped and reported, not treated as errors.
	ApplyEdits(ctx context.Context, req ApplyEditsRequest) (*ApplyResult, error)

	// CheckOption reports whether one option can be selected right now.
	CheckOption(ctx context.Context, req CheckOptionRequest) (*OptionStatus, error)

	// ListOptions lists categories with per-option selectability.
	// An empty category lists every category.
	ListOptions(ctx context.Context, slot, category string) ([]*CategoryOptions, error)

	// ApplyPreset applies a built-in or user preset as one action.
	ApplyPreset(ctx context.Context, req ApplyPresetRequest) (*ApplyResult, error)

	// ListPresets lists built-in presets followed by user presets.
	ListPresets(ctx context.Context) ([]*PresetInfo, error)

	// Reset restores the default configuration in a slot.
	Reset(ctx context.Context, slot string) (*ApplyResult, error)

	// ValidateName checks a project name without changing any slot.
	ValidateName(ctx context.Context, name string) (*NameCheck, error)

	// ListSnapshots lists saved slots.
	ListSnapshots(ctx context.Context) ([]*SnapshotSummary, error)

	// DeleteSnapshot removes a saved slot.
	DeleteSnapshot(ctx context.Context, slot string) error

	// ExportSnapshot writes a slot to a YAML file.
	ExportSnapshot(ctx context.Context, req ExportSnapshotRequest) (*ExportSnapshotResponse, error)

	// ImportSnapshot reads a YAML file, normalizes it and stores it in a slot.
	ImportSnapshot(ctx context.Context, req ImportSnapshotRequest) (*ApplyResult, error)

	// History lists edit log entries, newest first.
	History(ctx context.Context, filters HistoryFilters) ([]*HistoryEntry, error)

	// PruneHistory deletes edit log entries older than the given number of days.
	PruneHistory(ctx context.Context, olderThanDays int) (int, error)

	// Report renders a slot as Markdown, or HTML when requested.
	Report(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

// ConfigurationView is a slot's configuration at the port boundary.
type ConfigurationView struct {
	Slot        string
	Saved       bool
	ProjectName string
	NameError   string
	Fields      []*FieldView
	Command     string
}

// FieldView is one category with its display value and diagnostic.
type FieldView struct {
	Category string
	Title    string
	Value    string
	Multi    bool
	Notes    []string
	HasIssue bool
}

// Field returns the field for a category, or nil.
func (v *ConfigurationView) Field(category string) *FieldView {
	for _, f := range v.Fields {
		if f.Category == category {
			return f
		}
	}
	return nil
}

// ApplyEditsRequest contains parameters for applying edits.
type ApplyEditsRequest struct {
	Slot  string
	Edits []string
}

// ApplyPresetRequest contains parameters for applying a preset.
type ApplyPresetRequest struct {
	Slot   string
	Preset string
}

// ApplyResult describes what an action did to a slot.
type ApplyResult struct {
	View     *ConfigurationView
	Applied  []string
	Rejected []*RejectedEdit
	Fired    []string
	Changes  []*FieldChange
}

// RejectedEdit is an edit that was disabled when it was attempted.
type RejectedEdit struct {
	Edit   string
	Reason string
}

// FieldChange is one field that changed.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

// CheckOptionRequest names an option to check.
type CheckOptionRequest struct {
	Slot     string
	Category string
	Option   string
}

// OptionStatus is the selectability of one option.
type OptionStatus struct {
	Category    string
	OptionID    string
	Name        string
	Description string
	Default     bool
	Selected    bool
	Disabled    bool
	Reason      string
}

// CategoryOptions is one category with all of its options.
type CategoryOptions struct {
	Category string
	Title    string
	Multi    bool
	Options  []*OptionStatus
	Notes    []string
	HasIssue bool
}

// PresetInfo describes a preset.
type PresetInfo struct {
	Name        string
	Description string
	Builtin     bool
	Fields      map[string]string
}

// NameCheck is the result of validating a project name.
type NameCheck struct {
	Name   string
	Valid  bool
	Reason string
}

// SnapshotSummary describes a saved slot.
type SnapshotSummary struct {
	Slot          string
	ProjectName   string
	SchemaVersion int
	CreatedAt     string
	UpdatedAt     string
	Command       string
}

// ExportSnapshotRequest contains parameters for exporting a slot.
type ExportSnapshotRequest struct {
	Slot string
	Path string
}

// ExportSnapshotResponse contains the result of an export.
type ExportSnapshotResponse struct {
	Slot string
	Path string
}

// ImportSnapshotRequest contains parameters for importing a slot.
type ImportSnapshotRequest struct {
	Slot string // empty uses the slot recorded in the file, then the default
	Path string
}

// HistoryEntry is one edit log entry at the port boundary.
type HistoryEntry struct {
	ID        string
	SessionID string
	Slot      string
	Field     string
	OldValue  string
	NewValue  string
	Source    string
	CreatedAt string
}

// HistoryFilters contains filter options for querying history.
type HistoryFilters struct {
	Slot      string
	SessionID string
	Field     string
	Limit     int
}

// ReportRequest contains parameters for rendering a report.
type ReportRequest struct {
	Slot string
	HTML bool
}

// ReportResponse is a rendered report.
type ReportResponse struct {
	Content     string
	ContentType string // "text/markdown" or "text/html"
}
