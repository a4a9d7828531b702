package commands

import (
	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/layout"
)

// NewStackCommand creates the stack command group
func NewStackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Add stacks to panels",
		Long: `A stack groups up to three buttons vertically in a panel. New stacks
start with two push buttons.

Examples:
  pyrx stack add Main/Tools
  pyrx stack add Main/Tools "Quick Tools"`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <panel> [name]",
		Short: "Add a stack seeded with two buttons",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runStackAdd,
	})

	return cmd
}

func runStackAdd(cmd *cobra.Command, args []string) error {
	var id, name string
	err := mutate(cmd, func(s *layout.Store, r *cli.Resolver) error {
		panel, err := r.Resolve(args[0], layout.KindPanel)
		if err != nil {
			return err
		}
		if id, err = s.CreateStack(panel.ID); err != nil {
			return err
		}
		if len(args) == 2 {
			if err := s.Rename(layout.KindElement, id, args[1]); err != nil {
				return err
			}
		}
		stack, err := s.Element(id)
		name = stack.Name
		return err
	})
	if err != nil {
		return err
	}
	cli.PrintSuccess("Added stack %s (%s)", name, id)
	return nil
}
