// Package examples holds sample ribbon tabs that show every element type and
// the nesting rules, ready to be added to a layout.
package examples

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

// ExampleSet is one sample tab
type ExampleSet struct {
	Category    string
	Name        string
	Description string
	Tab         string
	Panels      []ExamplePanel
}

// ExamplePanel is a panel of an example tab
type ExamplePanel struct {
	Name     string
	Elements []ExampleElement
}

// ExampleElement describes an element and, for stacks and pulldowns, its
// children
type ExampleElement struct {
	Type     models.ElementType
	Fields   models.ElementFields
	Children []ExampleElement
}

// Categories lists the accepted category names, "all" included
var Categories = []string{"basic", "containers", "all"}

// GetExamples returns example sets for the given category
func GetExamples(category string) []ExampleSet {
	switch category {
	case "basic":
		return tagged(getBasicExamples(), "basic")
	case "containers":
		return tagged(getContainerExamples(), "containers")
	case "all":
		return slices.Concat(GetExamples("basic"), GetExamples("containers"))
	default:
		return []ExampleSet{}
	}
}

func tagged(sets []ExampleSet, category string) []ExampleSet {
	for i := range sets {
		sets[i].Category = category
	}
	return sets
}

// Count returns the number of panels and elements the set adds
func (s ExampleSet) Count() (panels, elements int) {
	var walk func([]ExampleElement)
	walk = func(list []ExampleElement) {
		for _, e := range list {
			elements++
			walk(e.Children)
		}
	}
	for _, p := range s.Panels {
		panels++
		walk(p.Elements)
	}
	return panels, elements
}

// Install adds the set to store as a new tab and returns the tab id. A tab
// with the same name is an ErrDuplicateName unless force is set, in which case
// it is replaced. The store is left untouched when anything fails.
func Install(store *layout.Store, set ExampleSet, force bool) (string, error) {
	work := store.Clone()

	existing := ""
	for _, id := range work.TabIDs() {
		if tab, err := work.Tab(id); err == nil && strings.EqualFold(tab.Name, set.Tab) {
			existing = id
		}
	}
	if existing != "" && !force {
		return "", fmt.Errorf("%w: tab %q already exists", layout.ErrDuplicateName, set.Tab)
	}

	tabID := work.CreateTab()
	if existing != "" {
		if err := work.DeleteTab(existing, true); err != nil {
			return "", err
		}
	}
	if err := work.Rename(layout.KindTab, tabID, set.Tab); err != nil {
		return "", err
	}

	for i, p := range set.Panels {
		panelID, err := examplePanel(work, tabID, i)
		if err != nil {
			return "", err
		}
		if err := work.Rename(layout.KindPanel, panelID, p.Name); err != nil {
			return "", err
		}
		if err := installElements(work, models.PanelRef(panelID), p.Elements); err != nil {
			return "", fmt.Errorf("panel %q: %w", p.Name, err)
		}
	}

	store.ReplaceAll(work)
	return tabID, nil
}

// examplePanel returns the i-th panel of the tab, creating it when needed
func examplePanel(store *layout.Store, tabID string, i int) (string, error) {
	tab, err := store.Tab(tabID)
	if err != nil {
		return "", err
	}
	if i < len(tab.Panels) {
		return tab.Panels[i], nil
	}
	return store.CreatePanel(tabID)
}

// installElements fills ref. The default button a new panel comes with is
// turned into the first element.
func installElements(store *layout.Store, ref models.ContainerRef, list []ExampleElement) error {
	existing, err := store.Children(ref)
	if err != nil {
		return err
	}

	for i, spec := range list {
		var id string
		if i == 0 && len(existing) == 1 && ref.Kind == models.ContainerPanel {
			id = existing[0]
			if err := store.EditElement(id, spec.Fields, spec.Type, false); err != nil {
				return err
			}
		} else {
			id, err = store.CreateElement(spec.Type, ref, spec.Fields)
			if err != nil {
				return err
			}
		}
		if len(spec.Children) > 0 {
			if err := installElements(store, models.ElementRef(id), spec.Children); err != nil {
				return fmt.Errorf("%s %q: %w", spec.Type, spec.Fields.Name, err)
			}
		}
	}
	return nil
}
