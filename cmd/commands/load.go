package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/files"
)

// NewLoadCommand creates the load command
func NewLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Replace the working layout with a saved layout file",
		Long: `Load a layout file saved by 'pyrx save' (or the browser editor) and make
it the working layout.

The file is fully validated first; an invalid file leaves the working
layout untouched.

Examples:
  pyrx load my_tools_layout.json
  pyrx load backup.json --yes`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateFilePath(args[0])
		},
		RunE: runLoad,
	}

	return cmd
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}

	loaded, err := files.LoadLayout(args[0])
	if err != nil {
		return err
	}
	for _, repair := range loaded.Repairs() {
		cli.PrintWarning("%s: %s", args[0], repair)
	}

	if files.LayoutExists(ctx.LayoutPath) {
		ok, err := cli.Confirm(fmt.Sprintf("Replace the layout in %s?", ctx.LayoutPath), false)
		if err != nil {
			return err
		}
		if !ok {
			cli.PrintInfo("Load cancelled")
			return nil
		}
	}

	if err := files.SaveLayout(ctx.LayoutPath, loaded); err != nil {
		return err
	}
	tabs, panels, elements := loaded.Counts()
	cli.PrintSuccess("Loaded %s: %d tabs, %d panels, %d elements", loaded.ExtensionName(), tabs, panels, elements)
	return nil
}

// NewSaveCommand creates the save command
func NewSaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [dir]",
		Short: "Save a copy of the layout as {name}_layout.json",
		Long: `Write a copy of the working layout named after the extension, for
example "My Tools" is saved as my_tools_layout.json.

Examples:
  pyrx save
  pyrx save backups`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSave,
	}

	return cmd
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		if err := cli.ValidateDirectoryPath(args[0]); err != nil {
			return err
		}
		dir = args[0]
	}

	path := filepath.Join(dir, files.DefaultLayoutFileName(store.ExtensionName()))
	if err := files.SaveLayout(path, store); err != nil {
		return err
	}
	cli.PrintSuccess("Saved %s", path)
	return nil
}
