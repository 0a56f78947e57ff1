package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/stackarch/internal/ctxutil"
	"github.com/example/stackarch/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using EditLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.EditLogRepository
	newID   func() string
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.EditLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{
		logRepo: logRepo,
		newID:   uuid.NewString,
	}
}

// LogChange records one field change, tagged with the session from context.
func (w *LogWriterAdapter) LogChange(ctx context.Context, slot, field, oldValue, newValue, source string) error {
	record := &secondary.EditLogRecord{
		ID:        w.newID(),
		SessionID: ctxutil.SessionFromContext(ctx),
		Slot:      slot,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		Source:    source,
	}
	return w.logRepo.Create(ctx, record)
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
