package commands

import (
	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

var moveIndex int

// NewMoveCommand creates the move command
func NewMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <element> <container>",
		Short: "Move an element into a panel, stack or pulldown",
		Long: `Move an element (with its children) to another container, or to a new
position in the same one. Without --index the element is appended.

Examples:
  # Move a button into a stack
  pyrx move "Run Script" "NEW STACK"

  # Make it the first element of its panel
  pyrx move "Run Script" Main/Tools --index 0`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	cmd.Flags().IntVarP(&moveIndex, "index", "i", -1, "Position in the target container (default: append)")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	var element, parent cli.Entity
	err := mutate(cmd, func(s *layout.Store, r *cli.Resolver) error {
		var err error
		if element, err = r.Resolve(args[0], layout.KindElement); err != nil {
			return err
		}
		var ref models.ContainerRef
		if ref, parent, err = r.Container(args[1]); err != nil {
			return err
		}
		return s.MoveElement(element.ID, ref, moveIndex)
	})
	if err != nil {
		return err
	}
	cli.PrintSuccess("Moved %s into %s", element.Name, parent.Path)
	return nil
}
