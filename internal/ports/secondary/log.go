package secondary

import "context"

// LogWriter defines the interface for writing edit history entries.
// Implementations take the session from context.
type LogWriter interface {
	// LogChange records one field change in a slot.
	LogChange(ctx context.Context, slot, field, oldValue, newValue, source string) error
}
