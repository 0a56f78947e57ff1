package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/stackarch/internal/core/catalog"
	"github.com/example/stackarch/internal/core/effects"
	"github.com/example/stackarch/internal/core/projectname"
	"github.com/example/stackarch/internal/core/session"
	"github.com/example/stackarch/internal/core/stack"
	"github.com/example/stackarch/internal/ports/primary"
	"github.com/example/stackarch/internal/ports/secondary"
)

// ReportRenderer renders a configuration view.
type ReportRenderer interface {
	Render(view *primary.ConfigurationView, asHTML bool) (content, contentType string, err error)
}

// ConfiguratorSettings carries the configuration values the service needs.
type ConfiguratorSettings struct {
	DefaultSlot     string
	LauncherPackage string
	UserPresets     []catalog.Preset
}

// ConfiguratorServiceImpl implements the ConfiguratorService interface.
type ConfiguratorServiceImpl struct {
	snapshotRepo secondary.SnapshotRepository
	logRepo      secondary.EditLogRepository
	archive      secondary.SnapshotArchive
	executor     EffectExecutor
	renderer     ReportRenderer
	settings     ConfiguratorSettings
	now          func() time.Time
}

// NewConfiguratorService creates a new ConfiguratorService with injected dependencies.
func NewConfiguratorService(
	snapshotRepo secondary.SnapshotRepository,
	logRepo secondary.EditLogRepository,
	archive secondary.SnapshotArchive,
	executor EffectExecutor,
	renderer ReportRenderer,
	settings ConfiguratorSettings,
) *ConfiguratorServiceImpl {
	if settings.DefaultSlot == "" {
		settings.DefaultSlot = "default"
	}
	if settings.LauncherPackage == "" {
		settings.LauncherPackage = stack.DefaultLauncherPackage
	}
	return &ConfiguratorServiceImpl{
		snapshotRepo: snapshotRepo,
		logRepo:      logRepo,
		archive:      archive,
		executor:     executor,
		renderer:     renderer,
		settings:     settings,
		now:          time.Now,
	}
}

// Show returns the normalized configuration of a slot.
func (s *ConfiguratorServiceImpl) Show(ctx context.Context, slot string) (*primary.ConfigurationView, error) {
	slot = s.slot(slot)
	stored, saved, err := s.load(ctx, slot)
	if err != nil {
		return nil, err
	}
	res, diags := stack.Evaluate(stored)
	return s.view(slot, saved, res.State, diags), nil
}

// ApplyEdits parses and applies edits in order.
func (s *ConfiguratorServiceImpl) ApplyEdits(ctx context.Context, req primary.ApplyEditsRequest) (*primary.ApplyResult, error) {
	edits := make([]stack.Edit, 0, len(req.Edits))
	for _, raw := range req.Edits {
		e, err := stack.ParseEdit(raw)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}

	slot := s.slot(req.Slot)
	stored, saved, err := s.load(ctx, slot)
	if err != nil {
		return nil, err
	}

	plan := session.PlanEdits(session.EditPlanInput{
		Slot:            slot,
		Current:         stored,
		Edits:           edits,
		LauncherPackage: s.settings.LauncherPackage,
	})
	return s.execute(ctx, plan, saved)
}

// CheckOption reports whether one option can be selected.
func (s *ConfiguratorServiceImpl) CheckOption(ctx context.Context, req primary.CheckOptionRequest) (*primary.OptionStatus, error) {
	c, ok := catalog.ParseCategory(req.Category)
	if !ok || c == catalog.ProjectName {
		return nil, fmt.Errorf("unknown category %q", req.Category)
	}
	if !catalog.Has(c, req.Option) {
		return nil, fmt.Errorf("unknown %s option %q", c, req.Option)
	}

	state, err := s.current(ctx, s.slot(req.Slot))
	if err != nil {
		return nil, err
	}
	opt, _ := catalog.Lookup(c, req.Option)
	return optionStatus(state, c, opt), nil
}

// ListOptions lists categories with per-option selectability.
func (s *ConfiguratorServiceImpl) ListOptions(ctx context.Context, slot, category string) ([]*primary.CategoryOptions, error) {
	categories := catalog.Categories()
	if category != "" {
		c, ok := catalog.ParseCategory(category)
		if !ok || c == catalog.ProjectName {
			return nil, fmt.Errorf("unknown category %q", category)
		}
		categories = []catalog.Category{c}
	}

	stored, _, err := s.load(ctx, s.slot(slot))
	if err != nil {
		return nil, err
	}
	res, diags := stack.Evaluate(stored)

	out := make([]*primary.CategoryOptions, 0, len(categories))
	for _, c := range categories {
		info, _ := catalog.Info(c)
		group := &primary.CategoryOptions{
			Category: string(c),
			Title:    info.Title,
			Multi:    info.Multi,
			Notes:    diags[c].Notes,
			HasIssue: diags[c].HasIssue,
		}
		for _, opt := range info.Options {
			group.Options = append(group.Options, optionStatus(res.State, c, opt))
		}
		out = append(out, group)
	}
	return out, nil
}

// ApplyPreset applies a preset as a single action.
func (s *ConfiguratorServiceImpl) ApplyPreset(ctx context.Context, req primary.ApplyPresetRequest) (*primary.ApplyResult, error) {
	preset, ok := s.lookupPreset(req.Preset)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", req.Preset)
	}

	slot := s.slot(req.Slot)
	stored, saved, err := s.load(ctx, slot)
	if err != nil {
		return nil, err
	}

	plan := session.PlanReplace(session.ReplacePlanInput{
		Slot:            slot,
		Current:         stored,
		Candidate:       session.PresetCandidate(stack.Normalize(stored), preset),
		Source:          session.SourcePreset,
		LauncherPackage: s.settings.LauncherPackage,
	})
	return s.execute(ctx, plan, saved)
}

// ListPresets lists built-in presets followed by user presets.
func (s *ConfiguratorServiceImpl) ListPresets(ctx context.Context) ([]*primary.PresetInfo, error) {
	var out []*primary.PresetInfo
	for _, p := range catalog.Presets() {
		out = append(out, presetInfo(p, true))
	}
	for _, p := range s.settings.UserPresets {
		out = append(out, presetInfo(p, false))
	}
	return out, nil
}

// Reset restores the default configuration.
func (s *ConfiguratorServiceImpl) Reset(ctx context.Context, slot string) (*primary.ApplyResult, error) {
	slot = s.slot(slot)
	stored, saved, err := s.load(ctx, slot)
	if err != nil {
		return nil, err
	}

	plan := session.PlanReplace(session.ReplacePlanInput{
		Slot:            slot,
		Current:         stored,
		Candidate:       stack.Default(),
		Source:          session.SourceReset,
		LauncherPackage: s.settings.LauncherPackage,
	})
	return s.execute(ctx, plan, saved)
}

// ValidateName checks a project name.
func (s *ConfiguratorServiceImpl) ValidateName(ctx context.Context, name string) (*primary.NameCheck, error) {
	check := &primary.NameCheck{Name: name, Valid: true}
	if err := projectname.Validate(name); err != nil {
		check.Valid = false
		check.Reason = err.Error()
	}
	return check, nil
}

// ListSnapshots lists saved slots.
func (s *ConfiguratorServiceImpl) ListSnapshots(ctx context.Context) ([]*primary.SnapshotSummary, error) {
	records, err := s.snapshotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	out := make([]*primary.SnapshotSummary, len(records))
	for i, r := range records {
		state := stack.Normalize(stack.FromRecord(stack.Default(), r.Fields))
		out[i] = &primary.SnapshotSummary{
			Slot:          r.Slot,
			ProjectName:   state.ProjectName,
			SchemaVersion: r.SchemaVersion,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
			Command:       stack.CommandWith(state, s.settings.LauncherPackage),
		}
	}
	return out, nil
}

// DeleteSnapshot removes a saved slot.
func (s *ConfiguratorServiceImpl) DeleteSnapshot(ctx context.Context, slot string) error {
	slot = s.slot(slot)
	err := s.executor.Execute(ctx, []effects.Effect{
		effects.PersistEffect{Entity: "snapshot", Operation: "delete", Key: slot},
		effects.LogEffect{Level: "info", Message: fmt.Sprintf("deleted slot %s", slot)},
	})
	if errors.Is(err, secondary.ErrNotFound) {
		return fmt.Errorf("slot %s is not saved: %w", slot, secondary.ErrNotFound)
	}
	return err
}

// ExportSnapshot writes a saved slot to a YAML file.
func (s *ConfiguratorServiceImpl) ExportSnapshot(ctx context.Context, req primary.ExportSnapshotRequest) (*primary.ExportSnapshotResponse, error) {
	slot := s.slot(req.Slot)
	stored, saved, err := s.load(ctx, slot)
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, fmt.Errorf("slot %s is not saved: %w", slot, secondary.ErrNotFound)
	}

	path := req.Path
	if path == "" {
		path = slot + ".yaml"
	}

	doc := &secondary.ArchiveDocument{
		SchemaVersion: stack.RecordVersion,
		Slot:          slot,
		ExportedAt:    s.now().UTC().Format(time.RFC3339),
		Fields:        stack.ToRecord(stack.Normalize(stored)),
	}
	if err := s.archive.Export(ctx, path, doc); err != nil {
		return nil, err
	}
	return &primary.ExportSnapshotResponse{Slot: slot, Path: path}, nil
}

// ImportSnapshot reads a YAML file, normalizes it and stores it.
func (s *ConfiguratorServiceImpl) ImportSnapshot(ctx context.Context, req primary.ImportSnapshotRequest) (*primary.ApplyResult, error) {
	doc, err := s.archive.Import(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	if doc.SchemaVersion > stack.RecordVersion {
		return nil, fmt.Errorf("snapshot %s uses schema version %d, newest supported is %d", req.Path, doc.SchemaVersion, stack.RecordVersion)
	}

	slot := req.Slot
	if strings.TrimSpace(slot) == "" {
		slot = doc.Slot
	}
	slot = s.slot(slot)

	stored, saved, err := s.load(ctx, slot)
	if err != nil {
		return nil, err
	}

	plan := session.PlanReplace(session.ReplacePlanInput{
		Slot:            slot,
		Current:         stored,
		Candidate:       stack.FromRecord(stack.Default(), doc.Fields),
		Source:          session.SourceImport,
		LauncherPackage: s.settings.LauncherPackage,
	})
	return s.execute(ctx, plan, saved)
}

// History lists edit log entries, newest first.
func (s *ConfiguratorServiceImpl) History(ctx context.Context, filters primary.HistoryFilters) ([]*primary.HistoryEntry, error) {
	records, err := s.logRepo.List(ctx, secondary.EditLogFilters{
		Slot:      filters.Slot,
		SessionID: filters.SessionID,
		Field:     filters.Field,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]*primary.HistoryEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.HistoryEntry{
			ID:        r.ID,
			SessionID: r.SessionID,
			Slot:      r.Slot,
			Field:     r.Field,
			OldValue:  r.OldValue,
			NewValue:  r.NewValue,
			Source:    r.Source,
			CreatedAt: r.CreatedAt,
		}
	}
	return entries, nil
}

// PruneHistory deletes edit log entries older than the given number of days.
func (s *ConfiguratorServiceImpl) PruneHistory(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays <= 0 {
		return 0, fmt.Errorf("days must be positive, got %d", olderThanDays)
	}
	return s.logRepo.PruneOlderThan(ctx, olderThanDays)
}

// Report renders a slot as Markdown or HTML.
func (s *ConfiguratorServiceImpl) Report(ctx context.Context, req primary.ReportRequest) (*primary.ReportResponse, error) {
	view, err := s.Show(ctx, req.Slot)
	if err != nil {
		return nil, err
	}
	content, contentType, err := s.renderer.Render(view, req.HTML)
	if err != nil {
		return nil, err
	}
	return &primary.ReportResponse{Content: content, ContentType: contentType}, nil
}

// Helper methods

func (s *ConfiguratorServiceImpl) slot(slot string) string {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return s.settings.DefaultSlot
	}
	return slot
}

// load returns the stored state of a slot as saved, without normalizing it.
// A slot that was never saved yields the default configuration.
func (s *ConfiguratorServiceImpl) load(ctx context.Context, slot string) (stack.State, bool, error) {
	record, err := s.snapshotRepo.Get(ctx, slot)
	if errors.Is(err, secondary.ErrNotFound) {
		return stack.Default(), false, nil
	}
	if err != nil {
		return stack.State{}, false, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}
	return stack.FromRecord(stack.Default(), record.Fields), true, nil
}

func (s *ConfiguratorServiceImpl) current(ctx context.Context, slot string) (stack.State, error) {
	stored, _, err := s.load(ctx, slot)
	if err != nil {
		return stack.State{}, err
	}
	return stack.Normalize(stored), nil
}

func (s *ConfiguratorServiceImpl) execute(ctx context.Context, plan session.EditPlan, saved bool) (*primary.ApplyResult, error) {
	if err := s.executor.Execute(ctx, plan.Effects()); err != nil {
		return nil, err
	}

	result := &primary.ApplyResult{
		View: s.view(plan.Slot, saved || len(plan.PersistOps) > 0, plan.State, plan.Diagnostics),
	}
	for _, e := range plan.Applied {
		result.Applied = append(result.Applied, e.String())
	}
	for _, r := range plan.Rejected {
		result.Rejected = append(result.Rejected, &primary.RejectedEdit{Edit: r.Edit.String(), Reason: r.Reason})
	}
	for _, id := range plan.Fired {
		result.Fired = append(result.Fired, string(id))
	}
	for _, ch := range plan.Changes {
		result.Changes = append(result.Changes, &primary.FieldChange{
			Field:    ch.Field,
			OldValue: ch.OldValue,
			NewValue: ch.NewValue,
		})
	}
	return result, nil
}

func (s *ConfiguratorServiceImpl) view(slot string, saved bool, state stack.State, diags stack.Diagnostics) *primary.ConfigurationView {
	v := &primary.ConfigurationView{
		Slot:        slot,
		Saved:       saved,
		ProjectName: state.ProjectName,
		Command:     stack.CommandWith(state, s.settings.LauncherPackage),
	}
	if err := projectname.Validate(state.ProjectName); err != nil {
		v.NameError = err.Error()
	}
	for _, c := range catalog.Categories() {
		info, _ := catalog.Info(c)
		d := diags[c]
		v.Fields = append(v.Fields, &primary.FieldView{
			Category: string(c),
			Title:    info.Title,
			Value:    state.Display(c),
			Multi:    info.Multi,
			Notes:    d.Notes,
			HasIssue: d.HasIssue,
		})
	}
	return v
}

func (s *ConfiguratorServiceImpl) lookupPreset(name string) (catalog.Preset, bool) {
	if p, ok := catalog.LookupPreset(name); ok {
		return p, true
	}
	for _, p := range s.settings.UserPresets {
		if p.Name == name {
			return p, true
		}
	}
	return catalog.Preset{}, false
}

func optionStatus(state stack.State, c catalog.Category, opt catalog.Option) *primary.OptionStatus {
	selected := state.Value(c) == opt.ID
	if catalog.IsMulti(c) {
		selected = state.Has(c, opt.ID)
	}
	guard := stack.CanSelect(state, c, opt.ID)
	return &primary.OptionStatus{
		Category:    string(c),
		OptionID:    opt.ID,
		Name:        opt.Name,
		Description: opt.Description,
		Default:     opt.Default,
		Selected:    selected,
		Disabled:    !guard.Allowed,
		Reason:      guard.Reason,
	}
}

func presetInfo(p catalog.Preset, builtin bool) *primary.PresetInfo {
	fields := make(map[string]string, len(p.Fields))
	for k, v := range p.Fields {
		fields[k] = v
	}
	return &primary.PresetInfo{
		Name:        p.Name,
		Description: p.Description,
		Builtin:     builtin,
		Fields:      fields,
	}
}

// Ensure ConfiguratorServiceImpl implements the interface
var _ primary.ConfiguratorService = (*ConfiguratorServiceImpl)(nil)
