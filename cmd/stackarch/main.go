package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/stackarch/internal/cli"
	"github.com/example/stackarch/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "stackarch",
		Short:   "Stack Architect - compatibility-checked project stack configurator",
		Version: version.String(),
		Long: `stackarch builds a project stack configuration one choice at a time.
Incompatible combinations are corrected automatically with an explanation,
disabled options say why, and the result is a single scaffolding command.`,
		SilenceUsage: true,
	}

	cli.AddGlobalFlags(rootCmd)

	// Configuration
	rootCmd.AddCommand(cli.ShowCmd())
	rootCmd.AddCommand(cli.ApplyCmd())
	rootCmd.AddCommand(cli.CheckCmd())
	rootCmd.AddCommand(cli.OptionsCmd())
	rootCmd.AddCommand(cli.CommandCmd())
	rootCmd.AddCommand(cli.PresetCmd())
	rootCmd.AddCommand(cli.ResetCmd())
	rootCmd.AddCommand(cli.NameCmd())
	rootCmd.AddCommand(cli.ArchitectCmd())

	// Storage
	rootCmd.AddCommand(cli.SnapshotCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.ReportCmd())

	rootCmd.AddCommand(cli.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
