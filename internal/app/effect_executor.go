// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	"github.com/example/stackarch/internal/core/effects"
	"github.com/example/stackarch/internal/core/stack"
	"github.com/example/stackarch/internal/logger"
	"github.com/example/stackarch/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor against the snapshot
// repository, the edit log and the console logger.
type DefaultEffectExecutor struct {
	snapshotRepo secondary.SnapshotRepository
	logWriter    secondary.LogWriter
	log          logger.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(snapshotRepo secondary.SnapshotRepository, logWriter secondary.LogWriter, log logger.Logger) *DefaultEffectExecutor {
	if log == nil {
		log = logger.Discard()
	}
	return &DefaultEffectExecutor{
		snapshotRepo: snapshotRepo,
		logWriter:    logWriter,
		log:          log,
	}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.PersistEffect:
		return e.executePersist(ctx, typed)
	case effects.AuditEffect:
		return e.logWriter.LogChange(ctx, typed.Slot, typed.Field, typed.OldValue, typed.NewValue, typed.Source)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.log.Log(typed.Level, typed.Message)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executePersist(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Entity {
	case "snapshot":
		return e.executeSnapshotOp(ctx, eff)
	default:
		return fmt.Errorf("unknown entity: %s", eff.Entity)
	}
}

func (e *DefaultEffectExecutor) executeSnapshotOp(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Operation {
	case "save":
		rec, ok := eff.Data.(stack.Record)
		if !ok {
			return fmt.Errorf("invalid snapshot data type: %T", eff.Data)
		}
		if err := e.snapshotRepo.Save(ctx, &secondary.SnapshotRecord{
			Slot:          eff.Key,
			Fields:        rec,
			SchemaVersion: stack.RecordVersion,
		}); err != nil {
			return err
		}
		e.log.Debugf("saved slot %s", eff.Key)
		return nil
	case "delete":
		if err := e.snapshotRepo.Delete(ctx, eff.Key); err != nil {
			return err
		}
		e.log.Debugf("deleted slot %s", eff.Key)
		return nil
	default:
		return fmt.Errorf("unknown snapshot operation: %s", eff.Operation)
	}
}
