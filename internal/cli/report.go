package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/stackarch/internal/filelock"
	"github.com/example/stackarch/internal/wire"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	var (
		asHTML bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a configuration report",
		Long: `Render a slot as a Markdown report: project name, chosen options,
corrections and the generated command. --html converts it to a standalone page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			if output == "" {
				return wire.ConfiguratorAdapterWithOutput(cmd.OutOrStdout()).Report(ctx, currentSlot(), asHTML)
			}

			var buf bytes.Buffer
			if err := wire.ConfiguratorAdapterWithOutput(&buf).Report(ctx, currentSlot(), asHTML); err != nil {
				return err
			}
			if err := filelock.LockAndWrite(output, buf.Bytes()); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML instead of Markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
