package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/files"
	"github.com/pyrx/pyrx-cli/pkg/layout"
)

var (
	initForce       bool
	initWriteConfig bool
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [extension-name]",
		Short: "Create a new extension layout",
		Long: `Creates a layout file holding one tab, one panel and one button.

The extension name defaults to the configured default name.

Examples:
  # Start a layout for "My Tools"
  pyrx init "My Tools"

  # Overwrite an existing layout
  pyrx init --force

  # Also write a .pyrx.yaml with the default settings
  pyrx init --config`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing layout file")
	cmd.Flags().BoolVar(&initWriteConfig, "config", false, "Write "+files.ConfigFileName+" with the current settings")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}

	if files.LayoutExists(ctx.LayoutPath) && !initForce {
		return fmt.Errorf("layout %s already exists. Use --force to overwrite", ctx.LayoutPath)
	}

	name := ctx.Settings.Extension.DefaultName
	if len(args) == 1 {
		if err := layout.ValidExtensionName(args[0]); err != nil {
			return err
		}
		name = args[0]
	}

	store := layout.NewStore(name)
	if err := files.SaveLayout(ctx.LayoutPath, store); err != nil {
		return err
	}
	cli.PrintSuccess("Created layout for %s at %s", store.ExtensionName(), ctx.LayoutPath)

	if initWriteConfig {
		if _, err := os.Stat(files.ConfigFileName); err == nil && !initForce {
			cli.PrintWarning("%s already exists, leaving it alone", files.ConfigFileName)
		} else {
			settings := *ctx.Settings
			settings.Layout.Path = ctx.LayoutPath
			if err := files.WriteSettings(files.ConfigFileName, &settings); err != nil {
				return err
			}
			cli.PrintSuccess("Wrote %s", files.ConfigFileName)
		}
	}

	cli.PrintInfo("Run 'pyrx' to open the editor, or 'pyrx tree' to preview the extension.")
	return nil
}
