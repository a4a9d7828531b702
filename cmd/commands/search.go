package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/search"
)

// SearchResultOutput represents the formatted search results
type SearchResultOutput struct {
	Query       string             `json:"query" yaml:"query"`
	Count       int                `json:"count" yaml:"count"`
	Results     []SearchItemOutput `json:"results" yaml:"results"`
	Suggestions []string           `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// SearchItemOutput represents a single search result item
type SearchItemOutput struct {
	ID      string  `json:"id" yaml:"id"`
	Kind    string  `json:"kind" yaml:"kind"`
	Type    string  `json:"type,omitempty" yaml:"type,omitempty"`
	Path    string  `json:"path" yaml:"path"`
	Score   float64 `json:"score" yaml:"score"`
	Excerpt string  `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
}

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search tabs, panels and elements",
		Long: `Search the layout using a small query syntax.

Query Syntax:
  type:pulldown        - Elements whose type starts with "pulldown"
  kind:panel           - Only panels (tab, panel or element)
  name:"run script"    - Name contains the phrase
  id:element3          - One entity by id
  title:sync           - Title contains "sync"
  tooltip:sheets       - Tooltip contains "sheets"
  sync                 - Free text over name, title, tooltip and path

  Terms are joined with AND unless OR is given; NOT negates the next term.

Examples:
  pyrx search "type:pushbutton NOT tooltip:deprecated"
  pyrx search "kind:panel OR kind:tab"
  pyrx search sync -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	engine := search.NewEngine(store)
	results, err := engine.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	ctx.Logger.Debug("search", "query", query, "indexed", engine.Len(), "hits", len(results))

	searchResult := SearchResultOutput{
		Query:   query,
		Count:   len(results),
		Results: []SearchItemOutput{},
	}
	for _, r := range results {
		item := SearchItemOutput{
			ID:    r.Item.ID,
			Kind:  string(r.Item.Kind),
			Type:  string(r.Item.Type),
			Path:  r.Item.Path,
			Score: r.Score,
		}
		if excerpts := r.Highlights["tooltip"]; len(excerpts) > 0 {
			item.Excerpt = excerpts[0]
		}
		searchResult.Results = append(searchResult.Results, item)
	}
	if len(results) == 0 {
		searchResult.Suggestions = cli.Suggest(query, cli.NewResolver(store).Entities())
	}

	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, searchResult)
	}
	return outputSearchText(cmd, searchResult)
}

func outputSearchText(cmd *cobra.Command, result SearchResultOutput) error {
	out := cmd.OutOrStdout()
	if result.Count == 0 {
		fmt.Fprintf(out, "No results found for query: %s\n", result.Query)
		if len(result.Suggestions) > 0 {
			fmt.Fprintf(out, "Did you mean: %s\n", strings.Join(result.Suggestions, ", "))
		}
		return nil
	}

	fmt.Fprintf(out, "\nSearch Results for: %s\n", result.Query)
	fmt.Fprintln(out, strings.Repeat("-", 80))

	// Group by kind
	byKind := make(map[string][]SearchItemOutput)
	for _, item := range result.Results {
		byKind[item.Kind] = append(byKind[item.Kind], item)
	}

	for _, kind := range []layout.EntityKind{layout.KindTab, layout.KindPanel, layout.KindElement} {
		items := byKind[string(kind)]
		if len(items) == 0 {
			continue
		}

		fmt.Fprintf(out, "\n%sS (%d)\n", strings.ToUpper(string(kind)), len(items))

		table := cli.NewTableFormatter(out)
		table.Header("ID", "PATH", "TYPE")
		for _, item := range items {
			typ := item.Type
			if typ == "" {
				typ = "-"
			}
			table.Row(item.ID, item.Path, typ)
		}
		table.Flush()

		for _, item := range items {
			if item.Excerpt != "" {
				fmt.Fprintf(out, "  %s └─ %s\n", item.ID, cli.TruncateString(item.Excerpt, 70))
			}
		}
	}

	fmt.Fprintf(out, "\nTotal: %d results\n", result.Count)
	return nil
}
