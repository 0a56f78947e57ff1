package stack

import (
	"fmt"
	"slices"

	"github.com/example/stackarch/internal/core/catalog"
)

// Diagnostic explains the auto-corrections that touched one category.
type Diagnostic struct {
	Notes    []string
	HasIssue bool
}

// Diagnostics maps every option category to its diagnostic.
type Diagnostics map[catalog.Category]Diagnostic

// Diagnose compares a raw candidate state with its normalized form. Every rule
// the candidate violates, and every rule that fired while normalizing it, adds
// its note to each category it involves.
func Diagnose(raw State) Diagnostics {
	return diagnose(raw, Explain(raw))
}

func diagnose(raw State, res Result) Diagnostics {
	out := make(Diagnostics, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		out[c] = Diagnostic{Notes: []string{}}
	}

	for _, c := range res.Replaced {
		out.add(c, fmt.Sprintf("unknown %s value replaced with the default", c))
	}

	canonical, _ := canonicalize(raw)
	involved := map[RuleID]bool{}
	for _, r := range Violations(canonical) {
		involved[r.ID] = true
	}
	for _, id := range res.Fired {
		involved[id] = true
	}

	// Table order keeps notes deterministic.
	for _, r := range rules {
		if !involved[r.ID] {
			continue
		}
		for _, c := range r.Categories {
			out.add(c, r.Note)
		}
	}
	return out
}

func (d Diagnostics) add(c catalog.Category, note string) {
	diag := d[c]
	if !slices.Contains(diag.Notes, note) {
		diag.Notes = append(diag.Notes, note)
	}
	diag.HasIssue = true
	d[c] = diag
}

// Merge folds other into d, keeping notes unique. Used when several user
// actions are evaluated in sequence.
func (d Diagnostics) Merge(other Diagnostics) Diagnostics {
	out := make(Diagnostics, len(d))
	for c, diag := range d {
		out[c] = Diagnostic{Notes: slices.Clone(diag.Notes), HasIssue: diag.HasIssue}
	}
	for c, diag := range other {
		for _, n := range diag.Notes {
			out.add(c, n)
		}
		if diag.HasIssue {
			cur := out[c]
			cur.HasIssue = true
			if cur.Notes == nil {
				cur.Notes = []string{}
			}
			out[c] = cur
		} else if _, ok := out[c]; !ok {
			out[c] = Diagnostic{Notes: []string{}}
		}
	}
	return out
}

// Issues returns the categories with an issue, in catalog order.
func (d Diagnostics) Issues() []catalog.Category {
	var out []catalog.Category
	for _, c := range catalog.Categories() {
		if d[c].HasIssue {
			out = append(out, c)
		}
	}
	return out
}

// Evaluate normalizes a raw candidate and diagnoses it in one pass.
func Evaluate(raw State) (Result, Diagnostics) {
	res := Explain(raw)
	return res, diagnose(raw, res)
}
