package stack

import "github.com/example/stackarch/internal/core/catalog"

// MaxPasses bounds fixpoint iteration. The rule table converges in at most
// one pass per stratum plus a quiet pass, whatever the rule order.
const MaxPasses = 8

// Result is the outcome of normalizing a state.
type Result struct {
	State     State
	Fired     []RuleID           // in firing order, may repeat across passes
	Replaced  []catalog.Category // categories whose unknown values were reset
	Passes    int                // passes in which at least one rule fired
	Converged bool
}

// Normalize rewrites s until every compatibility rule holds.
// Normalize(Normalize(s)) equals Normalize(s) for every s.
func Normalize(s State) State {
	return NormalizeWith(s, rules).State
}

// Explain normalizes s and reports which rules fired.
func Explain(s State) Result {
	return NormalizeWith(s, rules)
}

// NormalizeWith runs bounded fixpoint iteration over an explicit rule table.
// Tests use it to check that permuting the table does not change the result.
func NormalizeWith(s State, table []Rule) Result {
	current, replaced := canonicalize(s)
	res := Result{Replaced: replaced}

	for pass := 0; pass < MaxPasses; pass++ {
		fired := false
		for _, r := range table {
			if !r.Violated(current) || blocked(current, table, r.Stratum) {
				continue
			}
			current = r.Fix(current)
			res.Fired = append(res.Fired, r.ID)
			fired = true
		}
		if !fired {
			res.Converged = true
			break
		}
		res.Passes++
	}

	res.State = current
	return res
}

// IsNormalized reports whether s is already a fixpoint.
func IsNormalized(s State) bool {
	return s.Equal(Normalize(s))
}

// blocked reports whether any rule of a lower stratum is still violated.
func blocked(s State, table []Rule, stratum int) bool {
	for _, r := range table {
		if r.Stratum < stratum && r.Violated(s) {
			return true
		}
	}
	return false
}
