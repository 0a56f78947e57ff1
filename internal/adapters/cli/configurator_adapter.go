// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/example/stackarch/internal/ports/primary"
)

var (
	selectedBadge = color.New(color.FgGreen).SprintFunc()
	disabledBadge = color.New(color.FgRed).SprintFunc()
	issueBadge    = color.New(color.FgYellow).SprintFunc()
	labelStyle    = color.New(color.FgCyan).SprintFunc()
	commandStyle  = color.New(color.Bold).SprintFunc()
)

// ConfiguratorAdapter is a thin adapter that translates CLI operations to
// ConfiguratorService calls. Command output goes to out; nothing is logged here.
type ConfiguratorAdapter struct {
	service primary.ConfiguratorService
	out     io.Writer
}

// NewConfiguratorAdapter creates a new ConfiguratorAdapter with the given service.
func NewConfiguratorAdapter(service primary.ConfiguratorService, out io.Writer) *ConfiguratorAdapter {
	return &ConfiguratorAdapter{
		service: service,
		out:     out,
	}
}

// Show prints a slot's configuration.
func (a *ConfiguratorAdapter) Show(ctx context.Context, slot string) error {
	view, err := a.service.Show(ctx, slot)
	if err != nil {
		return err
	}
	a.printView(view)
	return nil
}

// Command prints only the generated command, for scripting.
func (a *ConfiguratorAdapter) Command(ctx context.Context, slot string) error {
	view, err := a.service.Show(ctx, slot)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, view.Command)
	return nil
}

// Apply applies edits and prints the outcome.
func (a *ConfiguratorAdapter) Apply(ctx context.Context, slot string, edits []string) error {
	if len(edits) == 0 {
		return fmt.Errorf("no edits given; use category=value, category+=tag or category-=tag")
	}
	result, err := a.service.ApplyEdits(ctx, primary.ApplyEditsRequest{Slot: slot, Edits: edits})
	if err != nil {
		return err
	}
	a.printResult(result)
	return nil
}

// Check prints whether one option can be selected.
func (a *ConfiguratorAdapter) Check(ctx context.Context, slot, category, option string) error {
	status, err := a.service.CheckOption(ctx, primary.CheckOptionRequest{Slot: slot, Category: category, Option: option})
	if err != nil {
		return err
	}

	switch {
	case status.Disabled && status.Selected:
		fmt.Fprintf(a.out, "%s %s/%s is selected (%s)\n", selectedBadge("●"), status.Category, status.OptionID, status.Reason)
	case status.Disabled:
		fmt.Fprintf(a.out, "%s %s/%s is disabled: %s\n", disabledBadge("✗"), status.Category, status.OptionID, status.Reason)
	case status.Selected:
		fmt.Fprintf(a.out, "%s %s/%s is selected and can be removed\n", selectedBadge("●"), status.Category, status.OptionID)
	default:
		fmt.Fprintf(a.out, "%s %s/%s can be selected\n", selectedBadge("✓"), status.Category, status.OptionID)
	}
	return nil
}

// Options prints categories with per-option selectability.
func (a *ConfiguratorAdapter) Options(ctx context.Context, slot, category string) error {
	groups, err := a.service.ListOptions(ctx, slot, category)
	if err != nil {
		return err
	}

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		kind := "pick one"
		if g.Multi {
			kind = "pick any"
		}
		fmt.Fprintf(a.out, "%s (%s, %s)\n", labelStyle(g.Title), g.Category, kind)
		for _, o := range g.Options {
			fmt.Fprintf(a.out, "  %s %-16s %s\n", optionBadge(o), o.OptionID, optionDetail(o))
		}
		for _, n := range g.Notes {
			fmt.Fprintf(a.out, "  %s %s\n", issueBadge("!"), n)
		}
	}
	return nil
}

// Preset applies a preset.
func (a *ConfiguratorAdapter) Preset(ctx context.Context, slot, name string) error {
	result, err := a.service.ApplyPreset(ctx, primary.ApplyPresetRequest{Slot: slot, Preset: name})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Applied preset %s\n", name)
	a.printResult(result)
	return nil
}

// Presets lists available presets.
func (a *ConfiguratorAdapter) Presets(ctx context.Context) error {
	presets, err := a.service.ListPresets(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n%-20s %-8s %s\n", "NAME", "KIND", "DESCRIPTION")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, p := range presets {
		kind := "user"
		if p.Builtin {
			kind = "builtin"
		}
		fmt.Fprintf(a.out, "%-20s %-8s %s\n", p.Name, kind, p.Description)
		fmt.Fprintf(a.out, "%-20s %-8s %s\n", "", "", formatFields(p.Fields))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Reset restores the default configuration.
func (a *ConfiguratorAdapter) Reset(ctx context.Context, slot string) error {
	result, err := a.service.Reset(ctx, slot)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Slot %s reset to defaults\n", result.View.Slot)
	a.printResult(result)
	return nil
}

// Name validates a project name. Invalid names are reported as an error so
// the command exits non-zero.
func (a *ConfiguratorAdapter) Name(ctx context.Context, name string) error {
	check, err := a.service.ValidateName(ctx, name)
	if err != nil {
		return err
	}
	if !check.Valid {
		return fmt.Errorf("invalid project name %q: %s", name, check.Reason)
	}
	fmt.Fprintf(a.out, "✓ %q is a valid project name\n", name)
	return nil
}

// Snapshots lists saved slots.
func (a *ConfiguratorAdapter) Snapshots(ctx context.Context) error {
	snapshots, err := a.service.ListSnapshots(ctx)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Fprintln(a.out, "No saved snapshots")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-16s %-20s %-22s %s\n", "SLOT", "PROJECT", "UPDATED", "COMMAND")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, s := range snapshots {
		fmt.Fprintf(a.out, "%-16s %-20s %-22s %s\n", s.Slot, s.ProjectName, s.UpdatedAt, s.Command)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Delete removes a saved slot.
func (a *ConfiguratorAdapter) Delete(ctx context.Context, slot string) error {
	if err := a.service.DeleteSnapshot(ctx, slot); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted slot %s\n", slot)
	return nil
}

// Export writes a slot to a file.
func (a *ConfiguratorAdapter) Export(ctx context.Context, slot, path string) error {
	resp, err := a.service.ExportSnapshot(ctx, primary.ExportSnapshotRequest{Slot: slot, Path: path})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Exported slot %s to %s\n", resp.Slot, resp.Path)
	return nil
}

// Import reads a slot from a file.
func (a *ConfiguratorAdapter) Import(ctx context.Context, slot, path string) error {
	result, err := a.service.ImportSnapshot(ctx, primary.ImportSnapshotRequest{Slot: slot, Path: path})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Imported %s into slot %s\n", path, result.View.Slot)
	a.printResult(result)
	return nil
}

// History prints edit log entries.
func (a *ConfiguratorAdapter) History(ctx context.Context, filters primary.HistoryFilters) error {
	entries, err := a.service.History(ctx, filters)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No history")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-22s %-12s %-8s %-16s %s\n", "TIME", "SLOT", "SOURCE", "FIELD", "CHANGE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, e := range entries {
		fmt.Fprintf(a.out, "%-22s %-12s %-8s %-16s %s → %s\n", e.CreatedAt, e.Slot, e.Source, e.Field, orNone(e.OldValue), orNone(e.NewValue))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Prune deletes old history.
func (a *ConfiguratorAdapter) Prune(ctx context.Context, days int) error {
	n, err := a.service.PruneHistory(ctx, days)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Pruned %d history entries older than %d days\n", n, days)
	return nil
}

// Report writes the rendered report to out.
func (a *ConfiguratorAdapter) Report(ctx context.Context, slot string, html bool) error {
	resp, err := a.service.Report(ctx, primary.ReportRequest{Slot: slot, HTML: html})
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, resp.Content)
	return nil
}

func (a *ConfiguratorAdapter) printView(view *primary.ConfigurationView) {
	state := "saved"
	if !view.Saved {
		state = "not saved"
	}
	fmt.Fprintf(a.out, "\n%s %s (%s)\n", labelStyle("Slot:"), view.Slot, state)
	fmt.Fprintf(a.out, "%s %s", labelStyle("Project:"), view.ProjectName)
	if view.NameError != "" {
		fmt.Fprintf(a.out, "  %s %s", disabledBadge("✗"), view.NameError)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out)

	for _, f := range view.Fields {
		fmt.Fprintf(a.out, "  %-22s %s\n", f.Title, f.Value)
		for _, n := range f.Notes {
			fmt.Fprintf(a.out, "  %-22s %s %s\n", "", issueBadge("!"), n)
		}
	}

	fmt.Fprintf(a.out, "\n%s\n  %s\n\n", labelStyle("Command:"), commandStyle(view.Command))
}

func (a *ConfiguratorAdapter) printResult(result *primary.ApplyResult) {
	for _, e := range result.Applied {
		fmt.Fprintf(a.out, "%s %s\n", selectedBadge("✓"), e)
	}
	for _, r := range result.Rejected {
		fmt.Fprintf(a.out, "%s %s: %s\n", disabledBadge("✗"), r.Edit, r.Reason)
	}
	if len(result.Changes) == 0 {
		fmt.Fprintln(a.out, "No changes")
	} else {
		fmt.Fprintln(a.out, labelStyle("Changes:"))
		for _, ch := range result.Changes {
			fmt.Fprintf(a.out, "  %-16s %s → %s\n", ch.Field, ch.OldValue, ch.NewValue)
		}
	}
	a.printView(result.View)
}

func optionBadge(o *primary.OptionStatus) string {
	switch {
	case o.Selected:
		return selectedBadge("●")
	case o.Disabled:
		return disabledBadge("✗")
	default:
		return "○"
	}
}

func optionDetail(o *primary.OptionStatus) string {
	detail := o.Name
	if o.Default {
		detail += " (default)"
	}
	if o.Disabled && !o.Selected {
		detail += " - " + disabledBadge(o.Reason)
	}
	return detail
}

func formatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + orNone(fields[k])
	}
	return strings.Join(parts, " ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
