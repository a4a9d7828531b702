package layout

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

// Document returns a snapshot of the store in its serialisable form. The
// snapshot shares no memory with the store.
func (s *Store) Document() *models.Document {
	next := s.nextIDs
	doc := &models.Document{
		Version:       models.DocumentVersion,
		ExtensionName: s.extensionName,
		Tabs:          models.NewTabSet(),
		Panels:        make(map[string]*models.Panel, len(s.panels)),
		Elements:      make(map[string]*models.Element, len(s.elements)),
		ActiveTabID:   s.activeTabID,
		NextIDs:       &next,
	}
	for _, id := range s.tabOrder {
		t := copyTab(s.tabs[id])
		doc.Tabs.Add(id, &t)
	}
	for id, p := range s.panels {
		cp := copyPanel(p)
		doc.Panels[id] = &cp
	}
	for id, e := range s.elements {
		cp := copyElement(e)
		doc.Elements[id] = &cp
	}
	return doc
}

// Restore builds a store from a document. Missing id counters are rebuilt
// from the highest numeric id suffix of each kind, and a missing or unknown
// active tab falls back to the first tab in document order. Panels and
// elements that no tab reaches are dropped and duplicate sibling names are
// renamed; Repairs lists what changed. The result is then fully checked;
// any other violation is reported as ErrInvalidDocument and no store is
// returned.
func Restore(doc *models.Document) (*Store, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	if doc.Tabs.Len() == 0 {
		return nil, fmt.Errorf("%w: no tabs", ErrInvalidDocument)
	}
	if len(doc.Panels) == 0 {
		return nil, fmt.Errorf("%w: no panels", ErrInvalidDocument)
	}

	s := newEmptyStore()
	s.extensionName = cleanExtensionName(doc.ExtensionName)
	if s.extensionName == "" {
		s.extensionName = loadedExtensionName
	}
	if original := strings.TrimSpace(doc.ExtensionName); original != "" && original != s.extensionName {
		s.repairs = append(s.repairs, fmt.Sprintf("renamed extension %q to %q", original, s.extensionName))
	}

	for _, id := range doc.Tabs.Order {
		t := doc.Tabs.ByID[id]
		if t == nil {
			return nil, fmt.Errorf("%w: tab %q is null", ErrInvalidDocument, id)
		}
		cp := copyTab(t)
		cp.ID = id
		if cp.Panels == nil {
			cp.Panels = []string{}
		}
		s.tabs[id] = &cp
		s.tabOrder = append(s.tabOrder, id)
	}
	for id, p := range doc.Panels {
		if p == nil {
			return nil, fmt.Errorf("%w: panel %q is null", ErrInvalidDocument, id)
		}
		cp := copyPanel(p)
		cp.ID = id
		if cp.Elements == nil {
			cp.Elements = []string{}
		}
		s.panels[id] = &cp
	}
	for id, e := range doc.Elements {
		if e == nil {
			return nil, fmt.Errorf("%w: element %q is null", ErrInvalidDocument, id)
		}
		cp := copyElement(e)
		cp.ID = id
		switch {
		case cp.Type.IsContainer() && cp.Children == nil:
			cp.Children = []string{}
		case !cp.Type.IsContainer() && len(cp.Children) == 0:
			cp.Children = nil
		}
		s.elements[id] = &cp
	}

	s.repair()

	s.nextIDs = reconstructNextIDs(s)
	if doc.NextIDs != nil {
		s.nextIDs.Tab = max(s.nextIDs.Tab, doc.NextIDs.Tab)
		s.nextIDs.Panel = max(s.nextIDs.Panel, doc.NextIDs.Panel)
		s.nextIDs.Element = max(s.nextIDs.Element, doc.NextIDs.Element)
	}

	s.activeTabID = doc.ActiveTabID
	if _, ok := s.tabs[s.activeTabID]; !ok {
		s.activeTabID = s.tabOrder[0]
	}

	if err := s.Check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return s, nil
}

// Repairs lists the changes Restore made to load the document. It is empty
// for stores that were not restored or needed no changes.
func (s *Store) Repairs() []string {
	return slices.Clone(s.repairs)
}

// repair drops panels and elements that no tab reaches and renames
// duplicate sibling names. References that do not resolve are left for
// Check to report.
func (s *Store) repair() {
	reachedPanels := map[string]bool{}
	reachedElements := map[string]bool{}

	var tabNames []string
	for _, tabID := range s.tabOrder {
		t := s.tabs[tabID]
		s.renameDuplicate(&t.Name, tabNames, "tab "+tabID)
		tabNames = append(tabNames, t.Name)

		var panelNames []string
		for _, panelID := range t.Panels {
			p, ok := s.panels[panelID]
			if !ok || reachedPanels[panelID] {
				continue
			}
			reachedPanels[panelID] = true
			s.renameDuplicate(&p.Name, panelNames, "panel "+panelID)
			panelNames = append(panelNames, p.Name)
			s.reachElements(p.Elements, reachedElements)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(s.panels)) {
		if !reachedPanels[id] {
			delete(s.panels, id)
			s.repairs = append(s.repairs, fmt.Sprintf("dropped panel %q, no tab lists it", id))
		}
	}
	for _, id := range slices.Sorted(maps.Keys(s.elements)) {
		if !reachedElements[id] {
			delete(s.elements, id)
			s.repairs = append(s.repairs, fmt.Sprintf("dropped element %q, no panel reaches it", id))
		}
	}
}

func (s *Store) reachElements(ids []string, reached map[string]bool) {
	var names []string
	for _, id := range ids {
		e, ok := s.elements[id]
		if !ok || reached[id] {
			continue
		}
		reached[id] = true
		s.renameDuplicate(&e.Name, names, "element "+id)
		names = append(names, e.Name)
		s.reachElements(e.Children, reached)
	}
}

func (s *Store) renameDuplicate(name *string, taken []string, what string) {
	if strings.TrimSpace(*name) == "" || !containsName(taken, *name) {
		return
	}
	renamed := uniqueName(*name, taken)
	s.repairs = append(s.repairs, fmt.Sprintf("renamed %s from %q to %q", what, *name, renamed))
	*name = renamed
}

// reconstructNextIDs returns one past the highest numeric suffix per kind
func reconstructNextIDs(s *Store) models.NextIDs {
	next := func(kind EntityKind, ids []string) int {
		highest := 0
		for _, id := range ids {
			if n, ok := idSuffix(id, kind); ok && n > highest {
				highest = n
			}
		}
		return highest + 1
	}
	return models.NextIDs{
		Tab:     next(KindTab, slices.Collect(maps.Keys(s.tabs))),
		Panel:   next(KindPanel, slices.Collect(maps.Keys(s.panels))),
		Element: next(KindElement, slices.Collect(maps.Keys(s.elements))),
	}
}
