package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/composer"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

var (
	clipboardFile  string
	clipboardPrint bool
)

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard <element>",
		Short: "Copy an element's generated script or bundle to the clipboard",
		Long: `Copy one generated file of an element bundle to the system clipboard.

The content is exactly what export writes, so it can be pasted into an
existing pyRevit extension. The script is copied by default; elements
without a script (link and invoke buttons, stacks) fall back to the bundle.

Examples:
  # Copy the generated script.py
  pyrx clipboard "Run Script"

  # Copy the bundle metadata instead
  pyrx clipboard Main/Tools/Docs --file bundle.yaml

  # Print instead of copying
  pyrx clipboard element4 --print`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip", "copy"},
		RunE:    runClipboard,
	}

	cmd.Flags().StringVar(&clipboardFile, "file", "", "Bundle file to copy: script.py or bundle.yaml")
	cmd.Flags().BoolVar(&clipboardPrint, "print", false, "Write the content to stdout instead of the clipboard")

	return cmd
}

func runClipboard(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	target, err := cli.NewResolver(store).Resolve(args[0], layout.KindElement)
	if err != nil {
		return err
	}

	bundle, err := composer.ComposeElement(store, target.ID)
	if err != nil {
		return fmt.Errorf("failed to compose %s: %w", target.Path, err)
	}

	file, err := bundleFile(bundle, clipboardFile)
	if err != nil {
		return fmt.Errorf("%s: %w", target.Path, err)
	}

	if clipboardPrint {
		fmt.Fprint(cmd.OutOrStdout(), file.Content)
		return nil
	}

	if err := clipboard.WriteAll(file.Content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	cli.PrintSuccess("Copied %s of '%s' to clipboard", file.Name, target.Name)
	cli.PrintInfo("%d lines", countLines(file.Content))
	return nil
}

// bundleFile picks a text file directly inside the bundle folder. An empty
// name prefers the script and falls back to the bundle metadata.
func bundleFile(bundle *models.Node, name string) (*models.Node, error) {
	switch name {
	case "", composer.ScriptFile, composer.BundleFile:
	default:
		return nil, fmt.Errorf("unsupported file %q (must be %s or %s)", name, composer.ScriptFile, composer.BundleFile)
	}

	find := func(n string) *models.Node {
		for _, child := range bundle.Children {
			if child.Kind == models.NodeFile && child.Icon == nil && child.Name == n {
				return child
			}
		}
		return nil
	}

	if name != "" {
		if f := find(name); f != nil {
			return f, nil
		}
		return nil, fmt.Errorf("bundle has no %s", name)
	}
	if f := find(composer.ScriptFile); f != nil {
		return f, nil
	}
	if f := find(composer.BundleFile); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("bundle has no text files")
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	if s[len(s)-1] != '\n' {
		n++
	}
	return n
}
