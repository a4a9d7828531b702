package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

var addFields fieldFlags

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <type> <container>",
		Short: "Add an element to a panel, stack or pulldown",
		Long: `Add an element to the end of a container.

Types:
  pushbutton, smartbutton, togglebutton, splitbutton  - script buttons
  pulldown      - drop-down holding other buttons
  stack         - vertical group of up to three elements
  linkbutton    - opens --url
  invokebutton  - runs --command

Without --name the element is called "Button n", using the smallest
free number in the container.

Examples:
  # Add a button with a script
  pyrx add pushbutton Main/Tools --name "Run Script" --script run.py

  # Add a link button to a stack
  pyrx add linkbutton "NEW STACK" --name Docs --url https://pyrevitlabs.io

  # Add an empty pulldown
  pyrx add pulldown Main/Tools --name More`,
		Args: cobra.ExactArgs(2),
		RunE: runAdd,
	}

	addFields.register(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	elementType, err := cli.ValidateElementType(args[0])
	if err != nil {
		return err
	}
	fields, err := addFields.apply(cmd, models.ElementFields{})
	if err != nil {
		return err
	}

	var id string
	var parent cli.Entity
	err = mutate(cmd, func(s *layout.Store, r *cli.Resolver) error {
		var ref models.ContainerRef
		var err error
		if ref, parent, err = r.Container(args[1]); err != nil {
			return err
		}
		id, err = s.CreateElement(elementType, ref, fields)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", elementType, err)
	}

	cli.PrintSuccess("Added %s to %s (%s)", elementType, parent.Path, id)
	return nil
}
