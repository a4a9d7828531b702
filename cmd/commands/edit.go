package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/composer"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

var (
	editFields   fieldFlags
	editType     string
	editInEditor bool
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <element>",
		Short: "Change an element's fields or type",
		Long: `Change the fields of an element. Only the flags you pass are changed.

Changing a stack or pulldown into a plain button deletes its children,
so you will be asked to confirm (or pass --yes).

Examples:
  # Set a tooltip
  pyrx edit "Run Script" --tooltip "Runs the model checker"

  # Turn a push button into a pulldown
  pyrx edit Main/Tools/Tools --type pulldown

  # Edit the script in $EDITOR
  pyrx edit "Run Script" --editor`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	editFields.register(cmd)
	cmd.Flags().StringVarP(&editType, "type", "t", "", "New element type")
	cmd.Flags().BoolVarP(&editInEditor, "editor", "e", false, "Open the script in $EDITOR")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	var newType models.ElementType
	if editType != "" {
		t, err := cli.ValidateElementType(editType)
		if err != nil {
			return err
		}
		newType = t
	}

	var target cli.Entity
	err := mutate(cmd, func(s *layout.Store, r *cli.Resolver) error {
		var err error
		if target, err = r.Resolve(args[0], layout.KindElement); err != nil {
			return err
		}
		current, err := s.Element(target.ID)
		if err != nil {
			return err
		}
		fields, err := editFields.apply(cmd, current.Fields())
		if err != nil {
			return err
		}
		if editInEditor {
			if fields.Code, err = editScript(current, fields.Code); err != nil {
				return err
			}
		}

		prompt := fmt.Sprintf("Changing %s '%s' to %s deletes its children. Continue?", current.Type, target.Path, newType)
		return cli.WithConfirmation(prompt, func(confirmed bool) error {
			return s.EditElement(target.ID, fields, newType, confirmed)
		})
	})
	if err != nil {
		if errors.Is(err, cli.ErrCancelled) {
			cli.PrintInfo("Edit cancelled")
			return nil
		}
		return err
	}

	cli.PrintSuccess("Updated %s", target.Path)
	return nil
}

// editScript opens the element's script, or its default script when it
// has none, in the user's editor
func editScript(e models.Element, code string) (string, error) {
	if code == "" && e.Type.IsExecutable() {
		def, err := composer.DefaultScript(e.Name, e.Tooltip, e.Type)
		if err != nil {
			return "", err
		}
		code = def
	}
	return cli.NewEditorLauncher().EditText("pyrx-*.py", code)
}
