package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Extension string       `json:"extension" yaml:"extension"`
	ActiveTab string       `json:"active_tab" yaml:"active_tab"`
	Items     []cli.Entity `json:"items" yaml:"items"`
	Count     int          `json:"count" yaml:"count"`
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tabs, panels and elements",
		Long: `List every tab, panel and element in ribbon order with its id and
path. The active tab is marked with *.

Examples:
  pyrx list
  pyrx list -o json`,
		Args:    cobra.NoArgs,
		Aliases: []string{"ls"},
		RunE:    runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	items := cli.NewResolver(store).Entities()
	result := ListResult{
		Extension: store.ExtensionName(),
		ActiveTab: store.ActiveTabID(),
		Items:     items,
		Count:     len(items),
	}

	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Extension: %s\n\n", result.Extension)
	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("NAME", "ID", "TYPE")
	for _, item := range items {
		name := strings.Repeat("  ", item.Depth) + item.Name
		if item.ID == result.ActiveTab {
			name += " *"
		}
		kind := string(item.Kind)
		if item.Type != "" {
			kind = string(item.Type)
		}
		table.Row(cli.TruncateString(name, 48), item.ID, kind)
	}
	table.Flush()
	return nil
}
