package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/stackarch/internal/wire"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "List and apply presets",
	Long:  "Presets set several categories at once; the result is normalized as one action.",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and user presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConfiguratorAdapter().Presets(NewContext())
	},
}

var presetApplyCmd = &cobra.Command{
	Use:   "apply <name>",
	Short: "Apply a preset to a slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConfiguratorAdapter().Preset(NewContext(), currentSlot(), args[0])
	},
}

// PresetCmd returns the preset command
func PresetCmd() *cobra.Command {
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetApplyCmd)

	return presetCmd
}
