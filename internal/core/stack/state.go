// Package stack contains the pure compatibility engine for stack configurations.
// This is part of the Functional Core - no I/O, only pure functions over State values.
package stack

import (
	"slices"
	"strings"

	"github.com/example/stackarch/internal/core/catalog"
)

// State is one complete project configuration. States are values: every
// transition returns a new State and never mutates the receiver's slices.
type State struct {
	ProjectName    string
	Frontend       []string
	Runtime        string
	Backend        string
	API            string
	Database       string
	ORM            string
	DBSetup        string
	Auth           string
	PackageManager string
	Addons         []string
	Examples       []string
	Git            string
	Install        string
}

// Default returns the configuration a new session starts from.
func Default() State {
	return State{
		ProjectName:    catalog.DefaultProjectName,
		Frontend:       catalog.DefaultSet(catalog.Frontend),
		Runtime:        catalog.Default(catalog.Runtime),
		Backend:        catalog.Default(catalog.Backend),
		API:            catalog.Default(catalog.API),
		Database:       catalog.Default(catalog.Database),
		ORM:            catalog.Default(catalog.ORM),
		DBSetup:        catalog.Default(catalog.DBSetup),
		Auth:           catalog.Default(catalog.Auth),
		PackageManager: catalog.Default(catalog.PackageManager),
		Addons:         catalog.DefaultSet(catalog.Addons),
		Examples:       catalog.DefaultSet(catalog.Examples),
		Git:            catalog.Default(catalog.Git),
		Install:        catalog.Default(catalog.Install),
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	s.Frontend = slices.Clone(s.Frontend)
	s.Addons = slices.Clone(s.Addons)
	s.Examples = slices.Clone(s.Examples)
	return s
}

// Equal compares two states; set-valued fields compare as sets.
func (s State) Equal(o State) bool {
	if s.ProjectName != o.ProjectName {
		return false
	}
	for _, c := range catalog.Categories() {
		if catalog.IsMulti(c) {
			if !sameSet(s.Set(c), o.Set(c)) {
				return false
			}
			continue
		}
		if s.Value(c) != o.Value(c) {
			return false
		}
	}
	return true
}

// Value returns the value of a single-valued category.
func (s State) Value(c catalog.Category) string {
	if p := s.single(c); p != nil {
		return *p
	}
	return ""
}

// Set returns a copy of the members of a set-valued category.
func (s State) Set(c catalog.Category) []string {
	if p := s.set(c); p != nil {
		return slices.Clone(*p)
	}
	return nil
}

// Has reports whether a set-valued category contains id.
func (s State) Has(c catalog.Category, id string) bool {
	if p := s.set(c); p != nil {
		return slices.Contains(*p, id)
	}
	return false
}

// With returns a copy of s with a single-valued category replaced.
func (s State) With(c catalog.Category, value string) State {
	out := s.Clone()
	if c == catalog.ProjectName {
		out.ProjectName = value
		return out
	}
	if p := out.single(c); p != nil {
		*p = value
	}
	return out
}

// WithSet returns a copy of s with a set-valued category replaced.
// Members are de-duplicated and kept in catalog order.
func (s State) WithSet(c catalog.Category, ids []string) State {
	out := s.Clone()
	if p := out.set(c); p != nil {
		*p = canonicalSet(c, ids)
	}
	return out
}

// Display renders a category value for humans: sets are space separated, the
// empty set is "none".
func (s State) Display(c catalog.Category) string {
	if c == catalog.ProjectName {
		return s.ProjectName
	}
	if catalog.IsMulti(c) {
		ids := s.Set(c)
		if len(ids) == 0 {
			return catalog.None
		}
		return strings.Join(ids, " ")
	}
	return s.Value(c)
}

func (s *State) single(c catalog.Category) *string {
	switch c {
	case catalog.Runtime:
		return &s.Runtime
	case catalog.Backend:
		return &s.Backend
	case catalog.API:
		return &s.API
	case catalog.Database:
		return &s.Database
	case catalog.ORM:
		return &s.ORM
	case catalog.DBSetup:
		return &s.DBSetup
	case catalog.Auth:
		return &s.Auth
	case catalog.PackageManager:
		return &s.PackageManager
	case catalog.Git:
		return &s.Git
	case catalog.Install:
		return &s.Install
	}
	return nil
}

func (s *State) set(c catalog.Category) *[]string {
	switch c {
	case catalog.Frontend:
		return &s.Frontend
	case catalog.Addons:
		return &s.Addons
	case catalog.Examples:
		return &s.Examples
	}
	return nil
}

// canonicalize drops unknown option ids, replaces unknown single values with
// the category default and orders every set by catalog position.
func canonicalize(s State) (State, []catalog.Category) {
	out := s.Clone()
	var replaced []catalog.Category
	for _, c := range catalog.Categories() {
		if catalog.IsMulti(c) {
			p := out.set(c)
			clean := canonicalSet(c, *p)
			if !sameSet(clean, *p) {
				replaced = append(replaced, c)
			}
			*p = clean
			continue
		}
		p := out.single(c)
		if !catalog.Has(c, *p) {
			*p = catalog.Default(c)
			replaced = append(replaced, c)
		}
	}
	return out, replaced
}

func canonicalSet(c catalog.Category, ids []string) []string {
	out := []string{}
	for _, o := range catalog.Get(c) {
		if slices.Contains(ids, o.ID) {
			out = append(out, o.ID)
		}
	}
	return out
}

func sameSet(a, b []string) bool {
	for _, x := range a {
		if !slices.Contains(b, x) {
			return false
		}
	}
	for _, x := range b {
		if !slices.Contains(a, x) {
			return false
		}
	}
	return true
}

func without(ids []string, remove ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(remove, id) {
			out = append(out, id)
		}
	}
	return out
}
