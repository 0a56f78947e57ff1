package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/stackarch/internal/ports/primary"
	"github.com/example/stackarch/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	var (
		field     string
		session   string
		limit     int
		pruneDays int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the edit log",
		Long: `Show field changes recorded by apply, preset, reset and import, newest first.

Examples:
  stackarch history                    # all slots
  stackarch history --slot work -n 20  # last 20 changes in slot work
  stackarch history --prune-days 90    # delete entries older than 90 days`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			adapter := wire.ConfiguratorAdapter()

			if cmd.Flags().Changed("prune-days") {
				if pruneDays <= 0 {
					return fmt.Errorf("--prune-days must be positive")
				}
				return adapter.Prune(ctx, pruneDays)
			}

			return adapter.History(ctx, primary.HistoryFilters{
				Slot:      currentSlot(),
				SessionID: session,
				Field:     field,
				Limit:     limit,
			})
		},
	}

	cmd.Flags().StringVarP(&field, "field", "f", "", "Filter by field")
	cmd.Flags().StringVar(&session, "session", "", "Filter by session ID")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum entries to show")
	cmd.Flags().IntVar(&pruneDays, "prune-days", 0, "Delete entries older than this many days instead of listing")

	return cmd
}
