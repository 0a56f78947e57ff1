package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/stackarch/internal/wire"
)

// ShowCmd returns the show command.
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the configuration of a slot",
		Long: `Show the normalized configuration of a slot, the notes explaining every
automatic correction, and the generated command.

A slot that was never saved shows the default configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ConfiguratorAdapter().Show(NewContext(), currentSlot())
		},
	}
}

// ApplyCmd returns the apply command.
func ApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <edit>...",
		Short: "Apply edits to a slot",
		Long: `Apply edits in order. Each edit is checked against the configuration left by
the previous one; edits that are currently disabled are skipped and reported.

Edit forms:
  category=value     set a single-valued category (or replace a set: addons=biome,husky)
  category+=tag      add a tag to a set-valued category
  category-=tag      remove a tag from a set-valued category

Examples:
  stackarch apply database=none
  stackarch apply frontend+=native addons-=turborepo
  stackarch apply name=shop packageManager=pnpm`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ConfiguratorAdapter().Apply(NewContext(), currentSlot(), args)
		},
	}
}

// CheckCmd returns the check command.
func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <category> <option>",
		Short: "Check whether an option can be selected",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ConfiguratorAdapter().Check(NewContext(), currentSlot(), args[0], args[1])
		},
	}
}

// OptionsCmd returns the options command.
func OptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options [category]",
		Short: "List options with their current selectability",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := ""
			if len(args) == 1 {
				category = args[0]
			}
			return wire.ConfiguratorAdapter().Options(NewContext(), currentSlot(), category)
		},
	}
}

// CommandCmd returns the command command.
func CommandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "command",
		Short: "Print the scaffolding command for a slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ConfiguratorAdapter().Command(NewContext(), currentSlot())
		},
	}
}

// ResetCmd returns the reset command.
func ResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration in a slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ConfiguratorAdapter().Reset(NewContext(), currentSlot())
		},
	}
}

// NameCmd returns the name command.
func NameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <project-name>",
		Short: "Validate a project name",
		Long: `Validate a project name without changing any slot. Exits non-zero when the
name is invalid. "." means the current directory and is always valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ConfiguratorAdapter().Name(NewContext(), args[0])
		},
	}
}
