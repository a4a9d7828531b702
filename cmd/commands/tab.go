package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/layout"
)

// NewTabCommand creates the tab command group
func NewTabCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tab",
		Short: "Add, rename, delete or activate ribbon tabs",
		Long: `Manage the tabs of the extension.

Tabs are referenced by id (tab1), by name, or case-insensitively by name.

Examples:
  pyrx tab add Analysis
  pyrx tab rename "NEW TAB" Modeling
  pyrx tab use Modeling
  pyrx tab delete Modeling --yes`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add [name]",
			Short: "Add a tab with one panel and one button",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runTabAdd,
		},
		&cobra.Command{
			Use:   "rename <tab> <name>",
			Short: "Rename a tab",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return renameEntity(cmd, args[0], args[1], layout.KindTab)
			},
		},
		&cobra.Command{
			Use:   "delete <tab>",
			Short: "Delete a tab and everything in it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return deleteEntity(cmd, args[0], layout.KindTab)
			},
		},
		&cobra.Command{
			Use:   "use <tab>",
			Short: "Make a tab the active one",
			Args:  cobra.ExactArgs(1),
			RunE:  runTabUse,
		},
	)

	return cmd
}

func runTabAdd(cmd *cobra.Command, args []string) error {
	var name, id string
	err := mutate(cmd, func(s *layout.Store, _ *cli.Resolver) error {
		id = s.CreateTab()
		if len(args) == 1 {
			if err := s.Rename(layout.KindTab, id, args[0]); err != nil {
				return err
			}
		}
		tab, err := s.Tab(id)
		name = tab.Name
		return err
	})
	if err != nil {
		return err
	}
	cli.PrintSuccess("Added tab %s (%s)", name, id)
	return nil
}

func runTabUse(cmd *cobra.Command, args []string) error {
	var target cli.Entity
	err := mutate(cmd, func(s *layout.Store, r *cli.Resolver) error {
		var err error
		if target, err = r.Resolve(args[0], layout.KindTab); err != nil {
			return err
		}
		return s.SetActiveTab(target.ID)
	})
	if err != nil {
		return err
	}
	cli.PrintSuccess("Active tab is now %s", target.Name)
	return nil
}

// renameEntity renames whatever ref resolves to within kinds
func renameEntity(cmd *cobra.Command, ref, newName string, kinds ...layout.EntityKind) error {
	if err := cli.ValidateName(newName); err != nil {
		return err
	}
	var target cli.Entity
	err := mutate(cmd, func(s *layout.Store, r *cli.Resolver) error {
		var err error
		if target, err = r.Resolve(ref, kinds...); err != nil {
			return err
		}
		return s.Rename(target.Kind, target.ID, newName)
	})
	if err != nil {
		return err
	}
	cli.PrintSuccess("Renamed %s %q to %q", target.Kind, target.Name, newName)
	return nil
}

// deleteEntity deletes whatever ref resolves to, asking before cascading
func deleteEntity(cmd *cobra.Command, ref string, kinds ...layout.EntityKind) error {
	var target cli.Entity
	err := mutate(cmd, func(s *layout.Store, r *cli.Resolver) error {
		var err error
		if target, err = r.Resolve(ref, kinds...); err != nil {
			return err
		}
		prompt := fmt.Sprintf("Delete %s '%s' and everything in it?", target.Kind, target.Path)
		return cli.WithConfirmation(prompt, func(confirmed bool) error {
			switch target.Kind {
			case layout.KindTab:
				return s.DeleteTab(target.ID, confirmed)
			case layout.KindPanel:
				return s.DeletePanel(target.ID, confirmed)
			default:
				return s.DeleteElement(target.ID, confirmed)
			}
		})
	})
	if errors.Is(err, cli.ErrCancelled) {
		cli.PrintInfo("Deletion cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	cli.PrintSuccess("Deleted %s: %s", target.Kind, target.Path)
	return nil
}
