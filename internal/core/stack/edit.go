package stack

import (
	"fmt"
	"slices"
	"strings"

	"github.com/example/stackarch/internal/core/catalog"
)

// Op is the kind of change an edit makes.
type Op string

const (
	OpSet    Op = "set"
	OpAdd    Op = "add"
	OpRemove Op = "remove"
)

// Edit is a single user action on one category.
type Edit struct {
	Category catalog.Category
	Op       Op
	Value    string
}

// String renders the edit in the form ParseEdit accepts.
func (e Edit) String() string {
	switch e.Op {
	case OpAdd:
		return fmt.Sprintf("%s+=%s", e.Category, e.Value)
	case OpRemove:
		return fmt.Sprintf("%s-=%s", e.Category, e.Value)
	default:
		return fmt.Sprintf("%s=%s", e.Category, e.Value)
	}
}

// ParseEdit parses "category=value", "category+=tag" or "category-=tag".
func ParseEdit(s string) (Edit, error) {
	i := strings.Index(s, "=")
	if i <= 0 {
		return Edit{}, fmt.Errorf("invalid edit %q: expected category=value", s)
	}
	key, value := s[:i], strings.TrimSpace(s[i+1:])
	op := OpSet
	switch {
	case strings.HasSuffix(key, "+"):
		op, key = OpAdd, strings.TrimSuffix(key, "+")
	case strings.HasSuffix(key, "-"):
		op, key = OpRemove, strings.TrimSuffix(key, "-")
	}

	c, ok := catalog.ParseCategory(key)
	if !ok {
		return Edit{}, fmt.Errorf("invalid edit %q: unknown category %q", s, key)
	}
	if op != OpSet && !catalog.IsMulti(c) {
		return Edit{}, fmt.Errorf("invalid edit %q: %s holds a single value, use %s=<value>", s, c, c)
	}
	return Edit{Category: c, Op: op, Value: value}, nil
}

// Apply applies one edit to s. A disallowed edit returns s unchanged with the
// reason; the result is a candidate that still has to be normalized.
func Apply(s State, e Edit) (State, GuardResult) {
	if e.Category == catalog.ProjectName {
		if e.Op != OpSet {
			return s, deny("project name only supports set")
		}
		return s.With(catalog.ProjectName, e.Value), allow()
	}

	info, ok := catalog.Info(e.Category)
	if !ok {
		return s, deny("unknown category %s", e.Category)
	}

	if !info.Multi {
		if e.Op != OpSet {
			return s, deny("%s holds a single value", e.Category)
		}
		if r := CanSelect(s, e.Category, e.Value); !r.Allowed {
			return s, r
		}
		return s.With(e.Category, e.Value), allow()
	}

	switch e.Op {
	case OpSet:
		return replaceSet(s, e.Category, e.Value)
	case OpAdd:
		if s.Has(e.Category, e.Value) {
			return s, deny(ReasonCurrentlySelected)
		}
	case OpRemove:
		if !catalog.Has(e.Category, e.Value) {
			return s, deny("unknown %s option %q", e.Category, e.Value)
		}
		if !s.Has(e.Category, e.Value) {
			return s, deny(ReasonNotSelected)
		}
	default:
		return s, deny("unknown edit operation %q", e.Op)
	}

	if r := CanSelect(s, e.Category, e.Value); !r.Allowed {
		return s, r
	}
	return Toggle(s, e.Category, e.Value), allow()
}

// Toggle flips membership of id in a set-valued category without any check.
// Adding to frontend follows replacement semantics: "none" replaces the set,
// any tag replaces "none", and a web tag replaces the other web tag.
func Toggle(s State, c catalog.Category, id string) State {
	current := s.Set(c)
	if slices.Contains(current, id) {
		return s.WithSet(c, without(current, id))
	}
	if c != catalog.Frontend {
		return s.WithSet(c, append(current, id))
	}

	if id == catalog.None {
		return s.WithSet(c, []string{catalog.None})
	}
	next := without(current, catalog.None)
	if catalog.IsWebFrontend(id) {
		next = slices.DeleteFunc(next, catalog.IsWebFrontend)
	}
	return s.WithSet(c, append(next, id))
}

// replaceSet handles "category=a,b". "none" or an empty value clears optional
// sets; for frontend "none" is itself a member. A disabled new member rejects
// the whole edit.
func replaceSet(s State, c catalog.Category, value string) (State, GuardResult) {
	var ids []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' }) {
		if part == catalog.None && c != catalog.Frontend {
			continue
		}
		if !catalog.Has(c, part) {
			return s, deny("unknown %s option %q", c, part)
		}
		ids = append(ids, part)
	}
	if len(ids) == 0 && catalog.IsRequired(c) {
		return s, deny(ReasonOneRequired)
	}
	// Members being added are checked like individual additions against the
	// current state.
	for _, id := range ids {
		if s.Has(c, id) {
			continue
		}
		if r := CanSelect(s, c, id); !r.Allowed {
			return s, r
		}
	}
	return s.WithSet(c, ids), allow()
}
