// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a console logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// PersistEffect represents a persistence operation.
type PersistEffect struct {
	Entity    string // e.g., "snapshot"
	Operation string // e.g., "save", "delete"
	Key       string // slot name for snapshots
	Data      any    // The entity data
}

func (e PersistEffect) EffectType() string { return "persist" }

// AuditEffect records one field change in the edit history.
type AuditEffect struct {
	Slot     string
	Field    string
	OldValue string
	NewValue string
	Source   string // "edit", "preset", "reset", "import"
}

func (e AuditEffect) EffectType() string { return "audit" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }
