package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/assets"
	"github.com/pyrx/pyrx-cli/pkg/export"
	"github.com/pyrx/pyrx-cli/pkg/tui"
)

// NewUICommand creates the ui command
func NewUICommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ui",
		Short:   "Edit the layout in the terminal",
		Long:    `Opens the interactive editor. Running pyrx without a command does the same.`,
		Args:    cobra.NoArgs,
		Aliases: []string{"edit-ui"},
		RunE:    RunEditor,
	}
}

// RunEditor launches the terminal editor on the current layout
func RunEditor(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	app := tui.NewApp(store, tui.Options{
		LayoutPath: ctx.LayoutPath,
		ExportDir:  ctx.Settings.Export.Dir,
		Exporter:   export.New(assets.NewLoader(ctx.Settings.Icons.Source), ctx.Logger),
		Logger:     ctx.Logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	if app.Dirty() {
		cli.PrintWarning("Unsaved changes were discarded")
	}
	return nil
}
