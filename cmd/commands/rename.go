package commands

import (
	"github.com/spf13/cobra"
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <tab|panel|element> <new-name>",
		Short: "Rename a tab, panel or element",
		Long: `Rename any item. Names must be unique among siblings, ignoring case.

Examples:
  pyrx rename "TAB NAME" Main
  pyrx rename Main/Tools/Button\ 1 "Run Script"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renameEntity(cmd, args[0], args[1])
		},
	}

	return cmd
}
