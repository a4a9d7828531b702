package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/composer"
)

var (
	treeCopy bool
	treeRoot string
)

// NewTreeCommand creates the tree command
func NewTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Preview the exported extension folder",
		Long: `Print the folder tree the export would produce.

Examples:
  pyrx tree

  # Copy the preview to the clipboard
  pyrx tree --copy

  # Preview under a different root folder name
  pyrx tree --root MyTools`,
		Args:    cobra.NoArgs,
		Aliases: []string{"preview"},
		RunE:    runTree,
	}

	cmd.Flags().BoolVarP(&treeCopy, "copy", "c", false, "Copy the tree to the clipboard")
	cmd.Flags().StringVar(&treeRoot, "root", "", "Root folder name (default: extension name)")

	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	root, err := composer.ComposeExtension(store, treeRoot)
	if err != nil {
		ctx.Logger.Error("projection failed", "err", err)
		return fmt.Errorf("failed to compose extension: %w", err)
	}
	tree := composer.FormatTree(root)

	if treeCopy {
		if err := clipboard.WriteAll(tree); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		folders, files := composer.CountNodes(root)
		cli.PrintSuccess("Tree copied to clipboard (%d folders, %d files)", folders, files)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), tree)
	return nil
}
