package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/assets"
	"github.com/pyrx/pyrx-cli/pkg/composer"
	"github.com/pyrx/pyrx-cli/pkg/export"
)

var (
	exportDir  string
	exportRoot string
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the extension as a zip archive",
		Long: `Export the layout as a pyRevit extension folder packed in
{name}.extension.zip.

Icons come from the element's uploaded image, then the shared icons
configured under icons.source, then a transparent placeholder.

Examples:
  # Export to the configured directory
  pyrx export

  # Export somewhere else under another root name
  pyrx export --dir dist --root MyTools`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if exportDir != "" {
				return cli.ValidateDirectoryPath(exportDir)
			}
			return nil
		},
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Output directory (default from settings)")
	cmd.Flags().StringVar(&exportRoot, "root", "", "Root folder name (default: extension name)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	root, err := composer.ComposeExtension(store, exportRoot)
	if err != nil {
		ctx.Logger.Error("projection failed", "err", err)
		return fmt.Errorf("failed to compose extension: %w", err)
	}

	dir := exportDir
	if dir == "" {
		dir = ctx.Settings.Export.Dir
	}

	exporter := export.New(assets.NewLoader(ctx.Settings.Icons.Source), ctx.Logger)
	path, summary, err := exporter.ExportFile(cmd.Context(), dir, root)
	if err != nil {
		return err
	}

	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, struct {
			Path    string         `json:"path" yaml:"path"`
			Summary export.Summary `json:"summary" yaml:"summary"`
		}{path, summary})
	}

	cli.PrintSuccess("Exported %s (%s)", path, cli.FormatBytes(summary.Bytes))
	cli.PrintInfo("%d folders, %d files", summary.Folders, summary.Files)
	if summary.Placeholders > 0 {
		cli.PrintInfo("%d icons used the transparent placeholder", summary.Placeholders)
	}
	return nil
}
