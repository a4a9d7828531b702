package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/composer"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

// ShowResult is the structured form of the show command
type ShowResult struct {
	cli.Entity `yaml:",inline"`
	Tab        *models.Tab     `json:"tab,omitempty" yaml:"tab,omitempty"`
	Panel      *models.Panel   `json:"panel,omitempty" yaml:"panel,omitempty"`
	Element    *models.Element `json:"element,omitempty" yaml:"element,omitempty"`
	Bundle     string          `json:"bundle,omitempty" yaml:"bundle,omitempty"`
}

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <tab|panel|element>",
		Short: "Display a tab, panel or element",
		Long: `Display the details of one item. For elements the exported bundle
folder is shown as well.

Examples:
  pyrx show "Run Script"
  pyrx show Main/Tools -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	target, err := cli.NewResolver(store).Resolve(args[0])
	if err != nil {
		return err
	}

	result := ShowResult{Entity: target}
	switch target.Kind {
	case layout.KindTab:
		tab, err := store.Tab(target.ID)
		if err != nil {
			return err
		}
		result.Tab = &tab
	case layout.KindPanel:
		panel, err := store.Panel(target.ID)
		if err != nil {
			return err
		}
		result.Panel = &panel
	case layout.KindElement:
		element, err := store.Element(target.ID)
		if err != nil {
			return err
		}
		result.Element = &element
		bundle, err := composer.ComposeElement(store, target.ID)
		if err != nil {
			return fmt.Errorf("failed to compose bundle: %w", err)
		}
		result.Bundle = composer.FormatTree(bundle)
	}

	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}
	writeShowText(cmd.OutOrStdout(), result)
	return nil
}

func writeShowText(w io.Writer, r ShowResult) {
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "ID: %s\n", r.ID)
	fmt.Fprintf(w, "Path: %s\n", r.Path)

	switch {
	case r.Tab != nil:
		fmt.Fprintf(w, "Kind: tab\n")
		fmt.Fprintf(w, "Panels: %d\n", len(r.Tab.Panels))
	case r.Panel != nil:
		fmt.Fprintf(w, "Kind: panel\n")
		fmt.Fprintf(w, "Elements: %d\n", len(r.Panel.Elements))
	case r.Element != nil:
		e := r.Element
		fmt.Fprintf(w, "Type: %s\n", e.Type)
		if e.Title != "" {
			fmt.Fprintf(w, "Title: %s\n", e.Title)
		}
		if e.Tooltip != "" {
			fmt.Fprintf(w, "Tooltip: %s\n", e.Tooltip)
		}
		if e.URL != "" {
			fmt.Fprintf(w, "URL: %s\n", e.URL)
		}
		if e.Command != "" {
			fmt.Fprintf(w, "Command: %s\n", e.Command)
		}
		if e.Type.IsContainer() {
			fmt.Fprintf(w, "Children: %d\n", len(e.Children))
		}
		if e.IconData != "" {
			fmt.Fprintf(w, "Icon: uploaded\n")
		}
		fmt.Fprintln(w, strings.Repeat("-", 60))
		fmt.Fprint(w, r.Bundle)
	}
}
