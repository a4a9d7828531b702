package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

// Check walks the layout from its tabs and verifies every structural
// invariant: references resolve, back references agree with the ordered
// sequences, every element is reachable exactly once, stacks respect their
// capacity, nesting follows the container contract, sibling names are unique
// and no id is at or beyond its counter. It returns the first violation.
func (s *Store) Check() error {
	if len(s.tabOrder) != len(s.tabs) {
		return fmt.Errorf("tab order lists %d tabs, store holds %d", len(s.tabOrder), len(s.tabs))
	}
	if len(s.tabs) == 0 {
		return fmt.Errorf("layout has no tabs")
	}
	if _, ok := s.tabs[s.activeTabID]; !ok {
		return fmt.Errorf("active tab %q does not exist", s.activeTabID)
	}

	seenTabs := map[string]bool{}
	seenPanels := map[string]bool{}
	seenElements := map[string]bool{}
	var tabNames []string

	for _, tabID := range s.tabOrder {
		t, ok := s.tabs[tabID]
		if !ok {
			return fmt.Errorf("tab order references missing tab %q", tabID)
		}
		if seenTabs[tabID] {
			return fmt.Errorf("tab %q listed twice", tabID)
		}
		seenTabs[tabID] = true
		if err := checkIDCounter(tabID, KindTab, s.nextIDs.Tab); err != nil {
			return err
		}
		if err := checkName(t.Name, tabNames, "tab "+tabID); err != nil {
			return err
		}
		tabNames = append(tabNames, t.Name)
		if len(t.Panels) == 0 {
			return fmt.Errorf("tab %q has no panels", tabID)
		}

		var panelNames []string
		for _, panelID := range t.Panels {
			p, ok := s.panels[panelID]
			if !ok {
				return fmt.Errorf("tab %q references missing panel %q", tabID, panelID)
			}
			if seenPanels[panelID] {
				return fmt.Errorf("panel %q is listed more than once", panelID)
			}
			seenPanels[panelID] = true
			if p.TabID != tabID {
				return fmt.Errorf("panel %q points at tab %q but is listed in %q", panelID, p.TabID, tabID)
			}
			if err := checkIDCounter(panelID, KindPanel, s.nextIDs.Panel); err != nil {
				return err
			}
			if err := checkName(p.Name, panelNames, "panel "+panelID); err != nil {
				return err
			}
			panelNames = append(panelNames, p.Name)
			if err := s.checkSequence(models.PanelRef(panelID), p.Elements, seenElements); err != nil {
				return err
			}
		}
	}

	if len(seenPanels) != len(s.panels) {
		return fmt.Errorf("%d panel(s) are not listed in any tab", len(s.panels)-len(seenPanels))
	}
	if len(seenElements) != len(s.elements) {
		return fmt.Errorf("%d element(s) are not reachable from any panel", len(s.elements)-len(seenElements))
	}
	return nil
}

func (s *Store) checkSequence(ref models.ContainerRef, ids []string, seen map[string]bool) error {
	var names []string
	for _, id := range ids {
		e, ok := s.elements[id]
		if !ok {
			return fmt.Errorf("%s references missing element %q", ref, id)
		}
		if seen[id] {
			return fmt.Errorf("element %q belongs to more than one container", id)
		}
		seen[id] = true

		if e.Container() != ref || (e.PanelID != "" && e.ParentID != "") {
			return fmt.Errorf("element %q back reference does not match %s", id, ref)
		}
		if !e.Type.Valid() {
			return fmt.Errorf("element %q has unknown type %q", id, e.Type)
		}
		if err := checkIDCounter(id, KindElement, s.nextIDs.Element); err != nil {
			return err
		}
		if err := checkName(e.Name, names, "element "+id); err != nil {
			return err
		}
		names = append(names, e.Name)

		if ref.Kind == models.ContainerElement {
			parent := s.elements[ref.ID]
			if err := checkNesting(parent, e); err != nil {
				return err
			}
		}

		if !e.Type.IsContainer() {
			if e.Children != nil {
				return fmt.Errorf("%s %q must not have children", e.Type, id)
			}
			continue
		}
		if e.Children == nil {
			return fmt.Errorf("%s %q has no child list", e.Type, id)
		}
		if e.Type == models.ElementStack && len(e.Children) > models.StackCapacity {
			return fmt.Errorf("stack %q holds %d elements, at most %d allowed", id, len(e.Children), models.StackCapacity)
		}
		if err := s.checkSequence(models.ElementRef(id), e.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

func checkNesting(parent, child *models.Element) error {
	switch parent.Type {
	case models.ElementStack:
		if child.Type == models.ElementStack {
			return fmt.Errorf("stack %q is nested inside stack %q", child.ID, parent.ID)
		}
	case models.ElementPulldown:
		if child.Type.IsContainer() {
			return fmt.Errorf("%s %q is nested inside pulldown %q", child.Type, child.ID, parent.ID)
		}
	default:
		return fmt.Errorf("%s %q cannot hold elements", parent.Type, parent.ID)
	}
	return nil
}

func checkName(name string, taken []string, what string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s has an empty name", what)
	}
	if containsName(taken, name) {
		return fmt.Errorf("%s duplicates the name %q", what, name)
	}
	return nil
}

func checkIDCounter(id string, kind EntityKind, next int) error {
	n, ok := idSuffix(id, kind)
	if ok && n >= next {
		return fmt.Errorf("id %q is not below the %s counter %d", id, kind, next)
	}
	return nil
}

// idSuffix extracts n from ids shaped like "{kind}{n}"
func idSuffix(id string, kind EntityKind) (int, bool) {
	rest, ok := strings.CutPrefix(id, string(kind))
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
