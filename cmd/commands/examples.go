package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/examples"
	"github.com/pyrx/pyrx-cli/pkg/layout"
)

// NewExamplesCommand creates the examples command
func NewExamplesCommand() *cobra.Command {
	var listOnly bool
	var force bool

	cmd := &cobra.Command{
		Use:   "examples [category]",
		Short: "Add example tabs to your layout",
		Long: `Add sample tabs that use every element type to the layout.

Categories:
  basic        - Push, toggle, smart, link and invoke buttons (default)
  containers   - Pulldowns, a full stack and a split button
  all          - Every example tab

Each example is added as its own tab. A tab that already exists is skipped
unless --force replaces it.`,
		Example: `  # Add the basic examples
  pyrx examples

  # See what is available without changing the layout
  pyrx examples --list

  # Add everything, replacing earlier copies
  pyrx examples all --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := "basic"
			if len(args) > 0 {
				category = args[0]
			} else if listOnly {
				category = "all"
			}

			if !slices.Contains(examples.Categories, category) {
				return fmt.Errorf("invalid category '%s'. Valid categories: %s",
					category, strings.Join(examples.Categories, ", "))
			}

			if listOnly {
				return listExamples(cmd, category)
			}
			return installExamples(cmd, category, force)
		},
	}

	cmd.Flags().BoolVar(&listOnly, "list", false, "List available examples without installing")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace example tabs that already exist")

	return cmd
}

func listExamples(cmd *cobra.Command, category string) error {
	out := cmd.OutOrStdout()
	if category == "all" {
		fmt.Fprintf(out, "Available examples (all categories):\n\n")
	} else {
		fmt.Fprintf(out, "Available examples in category '%s':\n\n", category)
	}

	for _, set := range examples.GetExamples(category) {
		fmt.Fprintf(out, "📦 [%s] %s  (tab %q)\n", set.Category, set.Name, set.Tab)
		fmt.Fprintf(out, "   %s\n", set.Description)
		for _, p := range set.Panels {
			names := make([]string, len(p.Elements))
			for i, e := range p.Elements {
				names[i] = fmt.Sprintf("%s (%s)", e.Fields.Name, e.Type)
			}
			fmt.Fprintf(out, "   • %s: %s\n", p.Name, strings.Join(names, ", "))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "To install, run: pyrx examples %s\n", category)
	return nil
}

func installExamples(cmd *cobra.Command, category string, force bool) error {
	out := cmd.OutOrStdout()
	quiet, _ := cmd.Flags().GetBool("quiet")

	installed, skipped := 0, 0
	err := mutate(cmd, func(store *layout.Store, _ *cli.Resolver) error {
		for _, set := range examples.GetExamples(category) {
			_, err := examples.Install(store, set, force)
			if errors.Is(err, layout.ErrDuplicateName) && !force {
				skipped++
				if !quiet {
					fmt.Fprintf(out, "   ⚠️  Skipped %s (tab %q exists, use --force to replace)\n", set.Name, set.Tab)
				}
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to install example %s: %w", set.Name, err)
			}

			installed++
			if !quiet {
				panels, elements := set.Count()
				fmt.Fprintf(out, "   ✓ Added tab %q (%d panels, %d elements)\n", set.Tab, panels, elements)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(out, "\n✨ Added %d example tab(s)", installed)
		if skipped > 0 {
			fmt.Fprintf(out, ", skipped %d", skipped)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "\n💡 Run 'pyrx tree' to see the extension folders they produce\n")
	}
	return nil
}
