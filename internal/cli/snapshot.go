package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/stackarch/internal/wire"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage saved slots",
	Long:  "List, delete, export and import saved configuration slots",
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved slots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConfiguratorAdapter().Snapshots(NewContext())
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a saved slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConfiguratorAdapter().Delete(NewContext(), args[0])
	},
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export a slot to a YAML file (default <slot>.yaml)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return wire.ConfiguratorAdapter().Export(NewContext(), currentSlot(), path)
	},
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import a YAML file into a slot",
	Long: `Import a YAML file into a slot. Without --slot the slot recorded in the file
is used. The imported configuration is normalized before it is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConfiguratorAdapter().Import(NewContext(), currentSlot(), args[0])
	},
}

// SnapshotCmd returns the snapshot command
func SnapshotCmd() *cobra.Command {
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotImportCmd)

	return snapshotCmd
}
