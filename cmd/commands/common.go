package commands

import (
	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/layout"
)

// Version is set by main from build flags
var Version = "dev"

// AddGlobalFlags registers the persistent flags every subcommand reads
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP("layout", "l", "", "Layout file (default from settings, layout.json)")
	flags.StringP("output", "o", "text", "Output format: text, json or yaml")
	flags.BoolP("yes", "y", false, "Answer yes to confirmation prompts")
	flags.BoolP("quiet", "q", false, "Suppress informational output")
	flags.Bool("no-color", false, "Plain status prefixes instead of symbols")
	flags.BoolP("verbose", "v", false, "Log diagnostics at debug level")
}

// ApplyGlobalFlags validates the persistent flags and hands them to the cli
// helpers
func ApplyGlobalFlags(cmd *cobra.Command) error {
	output, _ := cmd.Flags().GetString("output")
	if err := cli.ValidateOutputFormat(output); err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")
	yes, _ := cmd.Flags().GetBool("yes")
	cli.SetGlobalFlags(quiet, noColor, yes)
	return nil
}

// commandContext builds the shared context from the global flags
func commandContext(cmd *cobra.Command) (*cli.CommandContext, error) {
	layoutPath, _ := cmd.Flags().GetString("layout")
	ctx, err := cli.NewCommandContext(layoutPath)
	if err != nil {
		return nil, err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	if err := ctx.SetupLogger(verbose, cmd.ErrOrStderr()); err != nil {
		return nil, err
	}
	return ctx, nil
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		return string(cli.FormatText)
	}
	return format
}

// mutate loads the layout, applies fn and saves the result
func mutate(cmd *cobra.Command, fn func(s *layout.Store, r *cli.Resolver) error) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}
	return ctx.Mutate(fn)
}
