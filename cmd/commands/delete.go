package commands

import (
	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <tab|panel|element>",
		Short: "Delete a tab, panel or element",
		Long: `Delete a tab, panel or element. Deleting something that holds other
items deletes them too, after confirmation.

The last tab, and the last panel of a tab, cannot be deleted.

Examples:
  # Delete a button
  pyrx delete "Run Script"

  # Delete a stack and its buttons without asking
  pyrx delete Main/Tools/NEW\ STACK --yes`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"rm"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteEntity(cmd, args[0])
		},
	}

	return cmd
}
