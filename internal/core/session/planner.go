// Package session contains the pure planner that turns user actions on a
// configuration slot into a normalized result plus the effects to persist it.
// This is part of the Functional Core - no I/O, only pure functions.
package session

import (
	"fmt"

	"github.com/example/stackarch/internal/core/catalog"
	"github.com/example/stackarch/internal/core/effects"
	"github.com/example/stackarch/internal/core/projectname"
	"github.com/example/stackarch/internal/core/stack"
)

// Sources recorded in the edit history.
const (
	SourceEdit   = "edit"
	SourcePreset = "preset"
	SourceReset  = "reset"
	SourceImport = "import"
)

// EditPlanInput contains the inputs needed to plan a sequence of edits.
// All values are pre-fetched by the caller - no I/O in the planner.
type EditPlanInput struct {
	Slot            string
	Current         stack.State // as stored; not trusted to be normalized
	Edits           []stack.Edit
	LauncherPackage string
}

// ReplacePlanInput plans a multi-field change applied as one action (preset,
// reset, import). The candidate is normalized once, so no intermediate
// combination of its fields is ever observable.
type ReplacePlanInput struct {
	Slot            string
	Current         stack.State
	Candidate       stack.State
	Source          string
	LauncherPackage string
}

// RejectedEdit is an edit the selectability resolver refused.
type RejectedEdit struct {
	Edit   stack.Edit
	Reason string
}

// FieldChange is one difference between the stored and the planned state.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

// EditPlan represents the planned outcome of a user action.
type EditPlan struct {
	Slot        string
	Previous    stack.State
	State       stack.State
	Applied     []stack.Edit
	Rejected    []RejectedEdit
	Fired       []stack.RuleID
	Diagnostics stack.Diagnostics
	Changes     []FieldChange
	Command     string
	NameError   error
	PersistOps  []effects.PersistEffect
	AuditOps    []effects.AuditEffect
	LogOps      []effects.LogEffect
}

// Effects returns all effects as a flat slice for execution.
func (p EditPlan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.PersistOps)+len(p.AuditOps)+len(p.LogOps))
	for _, e := range p.LogOps {
		result = append(result, e)
	}
	for _, e := range p.PersistOps {
		result = append(result, e)
	}
	for _, e := range p.AuditOps {
		result = append(result, e)
	}
	return result
}

// PlanEdits applies each edit as its own user action: the edit is checked with
// the selectability resolver against the current normalized state, applied,
// and the result normalized before the next edit is considered.
func PlanEdits(input EditPlanInput) EditPlan {
	loaded, diags := stack.Evaluate(input.Current)
	plan := EditPlan{
		Slot:     input.Slot,
		Previous: input.Current,
		Fired:    loaded.Fired,
	}

	current := loaded.State
	for _, e := range input.Edits {
		next, guard := stack.Apply(current, e)
		if !guard.Allowed {
			plan.Rejected = append(plan.Rejected, RejectedEdit{Edit: e, Reason: guard.Reason})
			plan.LogOps = append(plan.LogOps, effects.LogEffect{
				Level:   "warn",
				Message: fmt.Sprintf("skipped %s: %s", e, guard.Reason),
			})
			continue
		}

		res, d := stack.Evaluate(next)
		current = res.State
		plan.Applied = append(plan.Applied, e)
		plan.Fired = append(plan.Fired, res.Fired...)
		diags = diags.Merge(d)
	}

	return finish(plan, current, diags, SourceEdit, input.LauncherPackage)
}

// PlanReplace normalizes a whole candidate state as a single action.
func PlanReplace(input ReplacePlanInput) EditPlan {
	res, diags := stack.Evaluate(input.Candidate)
	plan := EditPlan{
		Slot:     input.Slot,
		Previous: input.Current,
		Fired:    res.Fired,
	}
	source := input.Source
	if source == "" {
		source = SourceEdit
	}
	return finish(plan, res.State, diags, source, input.LauncherPackage)
}

// PresetCandidate overlays a preset on the current state.
func PresetCandidate(current stack.State, preset catalog.Preset) stack.State {
	return stack.FromRecord(current, stack.Record(preset.Fields))
}

func finish(plan EditPlan, final stack.State, diags stack.Diagnostics, source, launcher string) EditPlan {
	plan.State = final
	plan.Diagnostics = diags
	plan.Command = stack.CommandWith(final, launcher)
	plan.NameError = projectname.Validate(final.ProjectName)
	plan.Changes = Diff(plan.Previous, final)

	for _, id := range plan.Fired {
		plan.LogOps = append(plan.LogOps, effects.LogEffect{
			Level:   "debug",
			Message: fmt.Sprintf("rule %s fired", id),
		})
	}

	if len(plan.Changes) == 0 {
		return plan
	}

	plan.PersistOps = append(plan.PersistOps, effects.PersistEffect{
		Entity:    "snapshot",
		Operation: "save",
		Key:       plan.Slot,
		Data:      stack.ToRecord(final),
	})
	for _, ch := range plan.Changes {
		plan.AuditOps = append(plan.AuditOps, effects.AuditEffect{
			Slot:     plan.Slot,
			Field:    ch.Field,
			OldValue: ch.OldValue,
			NewValue: ch.NewValue,
			Source:   source,
		})
	}
	return plan
}

// Diff lists the fields that differ between two states, in catalog order with
// the project name first.
func Diff(before, after stack.State) []FieldChange {
	var out []FieldChange
	if before.ProjectName != after.ProjectName {
		out = append(out, FieldChange{
			Field:    string(catalog.ProjectName),
			OldValue: before.ProjectName,
			NewValue: after.ProjectName,
		})
	}
	for _, c := range catalog.Categories() {
		old, cur := display(before, c), display(after, c)
		if old == cur {
			continue
		}
		out = append(out, FieldChange{Field: string(c), OldValue: old, NewValue: cur})
	}
	return out
}

// display renders sets canonically so member order never counts as a change.
func display(s stack.State, c catalog.Category) string {
	if catalog.IsMulti(c) {
		return s.WithSet(c, s.Set(c)).Display(c)
	}
	return s.Display(c)
}
