package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/example/stackarch/internal/tui"
	"github.com/example/stackarch/internal/wire"
)

// ArchitectCmd returns the interactive configurator command
func ArchitectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "architect",
		Short: "Configure a slot interactively",
		Long: `Open the interactive configurator. Every selection is applied and saved
immediately; disabled options show why they cannot be chosen.

Keys: ←/→ category, ↑/↓ option, enter select or toggle, n project name,
r reset, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("architect needs an interactive terminal; use apply instead")
			}
			return tui.Run(NewContext(), wire.ConfiguratorService(), currentSlot())
		},
	}
}
