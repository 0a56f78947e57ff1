// Package cli provides CLI commands for the stackarch application.
package cli

import (
	gocontext "context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/stackarch/internal/ctxutil"
	"github.com/example/stackarch/internal/wire"
)

// globalSessionID identifies this CLI invocation in the edit log.
// Set once at startup by Bootstrap.
var globalSessionID string

// Global flag values, bound by AddGlobalFlags.
var (
	configPath string
	slotFlag   string
	logLevel   string
	colorMode  string
)

// AddGlobalFlags registers the flags every command accepts and installs
// Bootstrap as the persistent pre-run hook.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.stackarch/config.yaml, or $STACKARCH_CONFIG)")
	root.PersistentFlags().StringVarP(&slotFlag, "slot", "s", "", "Snapshot slot (default from config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	root.PersistentFlags().StringVar(&colorMode, "color", "", "Color output: auto, always, never")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return Bootstrap()
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		wire.Close()
	}
}

// Bootstrap loads configuration and starts a new edit-log session.
func Bootstrap() error {
	if err := wire.Init(wire.Options{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		Color:      colorMode,
	}); err != nil {
		return err
	}
	globalSessionID = uuid.NewString()
	wire.Logger().Tracef("session %s", globalSessionID)
	return nil
}

// GetSessionID returns the session ID stored at startup.
// Returns empty string if Bootstrap() was not called.
func GetSessionID() string {
	return globalSessionID
}

// NewContext creates a context.Background() with the current session ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx := gocontext.Background()
	if globalSessionID != "" {
		return ctxutil.WithSessionID(ctx, globalSessionID)
	}
	return ctx
}

// currentSlot returns the --slot value; empty lets the service use the
// configured default.
func currentSlot() string {
	return slotFlag
}
