package commands

import (
	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/layout"
)

// NewPanelCommand creates the panel command group
func NewPanelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Add, rename or delete panels",
		Long: `Manage the panels of a tab.

Examples:
  pyrx panel add Main Tools
  pyrx panel rename Main/Tools Utilities
  pyrx panel delete Main/Utilities --yes`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <tab> [name]",
			Short: "Add a panel with one button to a tab",
			Args:  cobra.RangeArgs(1, 2),
			RunE:  runPanelAdd,
		},
		&cobra.Command{
			Use:   "rename <panel> <name>",
			Short: "Rename a panel",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return renameEntity(cmd, args[0], args[1], layout.KindPanel)
			},
		},
		&cobra.Command{
			Use:   "delete <panel>",
			Short: "Delete a panel and its elements",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return deleteEntity(cmd, args[0], layout.KindPanel)
			},
		},
	)

	return cmd
}

func runPanelAdd(cmd *cobra.Command, args []string) error {
	var id, name string
	err := mutate(cmd, func(s *layout.Store, r *cli.Resolver) error {
		tab, err := r.Resolve(args[0], layout.KindTab)
		if err != nil {
			return err
		}
		if id, err = s.CreatePanel(tab.ID); err != nil {
			return err
		}
		if len(args) == 2 {
			if err := s.Rename(layout.KindPanel, id, args[1]); err != nil {
				return err
			}
		}
		panel, err := s.Panel(id)
		name = panel.Name
		return err
	})
	if err != nil {
		return err
	}
	cli.PrintSuccess("Added panel %s (%s)", name, id)
	return nil
}
