package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/cmd/commands"
	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/internal/telemetry"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pyrx",
	Short: "Build pyRevit extension layouts from the terminal",
	Long: `pyrx designs pyRevit ribbon extensions: tabs, panels, stacks and
buttons kept in one layout file, previewed as the folder tree pyRevit
expects and exported as a zip archive.

Run 'pyrx init' to start a layout, then 'pyrx' to open the editor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.ApplyGlobalFlags(cmd)
	},
	RunE: commands.RunEditor,
}

func init() {
	commands.Version = version
	commands.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewInitCommand(),
		commands.NewVersionCommand(),
		commands.NewListCommand(),
		commands.NewShowCommand(),
		commands.NewTreeCommand(),
		commands.NewTabCommand(),
		commands.NewPanelCommand(),
		commands.NewStackCommand(),
		commands.NewAddCommand(),
		commands.NewEditCommand(),
		commands.NewMoveCommand(),
		commands.NewRenameCommand(),
		commands.NewDeleteCommand(),
		commands.NewLoadCommand(),
		commands.NewSaveCommand(),
		commands.NewExportCommand(),
		commands.NewUsageCommand(),
		commands.NewSearchCommand(),
		commands.NewSetCommand(),
		commands.NewClipboardCommand(),
		commands.NewExamplesCommand(),
		commands.NewServeCommand(),
		commands.NewUICommand(),
	)
}

func main() {
	ctx := context.Background()

	provider, err := telemetry.Setup(ctx)
	if err != nil {
		cli.PrintWarning("tracing disabled: %v", err)
	}

	err = rootCmd.ExecuteContext(ctx)
	if shutdownErr := provider.Shutdown(ctx); shutdownErr != nil {
		cli.PrintWarning("failed to flush traces: %v", shutdownErr)
	}
	if err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
