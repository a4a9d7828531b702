package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

// UsageResult represents the output structure for usage command
type UsageResult struct {
	Extension string         `json:"extension" yaml:"extension"`
	Tabs      int            `json:"tabs" yaml:"tabs"`
	Panels    int            `json:"panels" yaml:"panels"`
	Elements  int            `json:"elements" yaml:"elements"`
	Types     map[string]int `json:"types" yaml:"types"`
	Stacks    []StackUsage   `json:"stacks" yaml:"stacks"`
	// Empty lists pulldowns and split buttons without children
	Empty []string `json:"empty,omitempty" yaml:"empty,omitempty"`
}

// StackUsage reports how full one stack is
type StackUsage struct {
	Path     string `json:"path" yaml:"path"`
	Used     int    `json:"used" yaml:"used"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// NewUsageCommand creates the usage command
func NewUsageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Summarise what the layout holds",
		Long: `Count tabs, panels and elements by type, show how full each stack is
and point out containers that have nothing in them.

Examples:
  pyrx usage
  pyrx usage -o yaml`,
		Args:    cobra.NoArgs,
		Aliases: []string{"stats"},
		RunE:    runUsage,
	}

	return cmd
}

func runUsage(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	result := layoutUsage(store)

	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Extension: %s\n", result.Extension)
	fmt.Fprintf(out, "Tabs: %d  Panels: %d  Elements: %d\n\n", result.Tabs, result.Panels, result.Elements)

	table := cli.NewTableFormatter(out)
	table.Header("TYPE", "COUNT")
	for _, t := range models.ElementTypes {
		if n := result.Types[string(t)]; n > 0 {
			table.Row(string(t), fmt.Sprint(n))
		}
	}
	table.Flush()

	if len(result.Stacks) > 0 {
		fmt.Fprintln(out, "\nStacks:")
		for _, s := range result.Stacks {
			fmt.Fprintf(out, "  %s  %d/%d\n", s.Path, s.Used, s.Capacity)
		}
	}
	if len(result.Empty) > 0 {
		fmt.Fprintln(out, "\nEmpty containers:")
		for _, path := range result.Empty {
			fmt.Fprintf(out, "  %s\n", path)
		}
	}
	return nil
}

func layoutUsage(store *layout.Store) UsageResult {
	tabs, panels, elements := store.Counts()
	result := UsageResult{
		Extension: store.ExtensionName(),
		Tabs:      tabs,
		Panels:    panels,
		Elements:  elements,
		Types:     map[string]int{},
		Stacks:    []StackUsage{},
	}

	for _, e := range cli.NewResolver(store).Entities() {
		if e.Kind != layout.KindElement {
			continue
		}
		result.Types[string(e.Type)]++
		if !e.Type.IsContainer() {
			continue
		}
		children, err := store.Children(models.ElementRef(e.ID))
		if err != nil {
			continue
		}
		if e.Type == models.ElementStack {
			result.Stacks = append(result.Stacks, StackUsage{Path: e.Path, Used: len(children), Capacity: models.StackCapacity})
		}
		if len(children) == 0 {
			result.Empty = append(result.Empty, e.Path)
		}
	}
	slices.Sort(result.Empty)
	return result
}
