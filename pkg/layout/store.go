// Package layout holds the in-memory ribbon layout and every structural edit
// that may be applied to it.
package layout

import (
	"fmt"
	"slices"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

// EntityKind names one of the three entity tables
type EntityKind string

const (
	KindTab     EntityKind = "tab"
	KindPanel   EntityKind = "panel"
	KindElement EntityKind = "element"
)

// ParseEntityKind converts user input into an EntityKind
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(s) {
	case KindTab, KindPanel, KindElement:
		return EntityKind(s), nil
	}
	return "", fmt.Errorf("unknown entity kind: %q", s)
}

// Default names used by the create operations
const (
	DefaultTabName       = "NEW TAB"
	DefaultPanelName     = "NEW PANEL"
	DefaultStackName     = "NEW STACK"
	DefaultButtonPrefix  = "Button"
	initialTabName       = "TAB NAME"
	initialPanelName     = "PANEL NAME"
	defaultExtensionName = "MyExtension"
	loadedExtensionName  = "Loaded Extension"
)

// Store is the single source of truth for a layout. It is owned by whoever
// constructs it and is only changed through its methods; it is not safe for
// concurrent use.
type Store struct {
	extensionName string
	tabOrder      []string
	tabs          map[string]*models.Tab
	panels        map[string]*models.Panel
	elements      map[string]*models.Element
	activeTabID   string
	nextIDs       models.NextIDs
	repairs       []string
}

// NewStore returns a store seeded with one tab, one panel and one button
func NewStore(extensionName string) *Store {
	if extensionName == "" {
		extensionName = defaultExtensionName
	}
	s := newEmptyStore()
	s.extensionName = extensionName
	s.nextIDs = models.NextIDs{Tab: 1, Panel: 1, Element: 1}

	tabID := s.AllocateID(KindTab)
	panelID := s.AllocateID(KindPanel)
	buttonID := s.AllocateID(KindElement)

	s.tabs[tabID] = &models.Tab{ID: tabID, Name: initialTabName, Panels: []string{panelID}}
	s.tabOrder = []string{tabID}
	s.panels[panelID] = &models.Panel{ID: panelID, Name: initialPanelName, Elements: []string{buttonID}, TabID: tabID}
	s.elements[buttonID] = newElement(buttonID, models.ElementPushButton, models.ElementFields{Name: "Button 1"})
	s.elements[buttonID].PanelID = panelID
	s.activeTabID = tabID
	return s
}

func newEmptyStore() *Store {
	return &Store{
		tabs:     map[string]*models.Tab{},
		panels:   map[string]*models.Panel{},
		elements: map[string]*models.Element{},
	}
}

func newElement(id string, t models.ElementType, f models.ElementFields) *models.Element {
	e := &models.Element{ID: id, Type: t}
	applyFields(e, f)
	if t.IsContainer() {
		e.Children = []string{}
	}
	return e
}

// applyFields copies f onto e, keeping only the fields e.Type uses: code for
// script bundles, url for link buttons and command for invoke buttons.
// e.Type must be set first.
func applyFields(e *models.Element, f models.ElementFields) {
	e.Name = f.Name
	e.Title = f.Title
	e.Tooltip = f.Tooltip
	e.IconData = f.IconData
	e.Code, e.URL, e.Command = "", "", ""
	switch {
	case e.Type == models.ElementLinkButton:
		e.URL = f.URL
	case e.Type == models.ElementInvokeButton:
		e.Command = f.Command
	case e.Type.IsExecutable():
		e.Code = f.Code
	}
}

// ExtensionName returns the name used for the exported root folder
func (s *Store) ExtensionName() string {
	return s.extensionName
}

// ActiveTabID returns the id of the tab being edited
func (s *Store) ActiveTabID() string {
	return s.activeTabID
}

// NextIDs returns the current id counters
func (s *Store) NextIDs() models.NextIDs {
	return s.nextIDs
}

// TabIDs returns tab ids in ribbon order
func (s *Store) TabIDs() []string {
	return slices.Clone(s.tabOrder)
}

// Counts returns the number of tabs, panels and elements
func (s *Store) Counts() (tabs, panels, elements int) {
	return len(s.tabs), len(s.panels), len(s.elements)
}

// AllocateID returns a fresh id for kind and advances its counter. Ids are
// never reused, even after the entity that held one is deleted.
func (s *Store) AllocateID(kind EntityKind) string {
	var n *int
	switch kind {
	case KindTab:
		n = &s.nextIDs.Tab
	case KindPanel:
		n = &s.nextIDs.Panel
	case KindElement:
		n = &s.nextIDs.Element
	default:
		panic(fmt.Sprintf("layout: unknown entity kind %q", kind))
	}
	if *n < 1 {
		*n = 1
	}
	id := fmt.Sprintf("%s%d", kind, *n)
	*n++
	return id
}

// Get returns a copy of the entity of the given kind, or ErrNotFound
func (s *Store) Get(kind EntityKind, id string) (any, error) {
	switch kind {
	case KindTab:
		return s.Tab(id)
	case KindPanel:
		return s.Panel(id)
	case KindElement:
		return s.Element(id)
	}
	return nil, fmt.Errorf("%w: unknown entity kind %q", ErrNotFound, kind)
}

// Exists reports whether an entity with this id exists
func (s *Store) Exists(kind EntityKind, id string) bool {
	switch kind {
	case KindTab:
		_, ok := s.tabs[id]
		return ok
	case KindPanel:
		_, ok := s.panels[id]
		return ok
	case KindElement:
		_, ok := s.elements[id]
		return ok
	}
	return false
}

// Tab returns a copy of the tab
func (s *Store) Tab(id string) (models.Tab, error) {
	t, err := s.tab(id)
	if err != nil {
		return models.Tab{}, err
	}
	return copyTab(t), nil
}

// Panel returns a copy of the panel
func (s *Store) Panel(id string) (models.Panel, error) {
	p, err := s.panel(id)
	if err != nil {
		return models.Panel{}, err
	}
	return copyPanel(p), nil
}

// Element returns a copy of the element
func (s *Store) Element(id string) (models.Element, error) {
	e, err := s.element(id)
	if err != nil {
		return models.Element{}, err
	}
	return copyElement(e), nil
}

func (s *Store) tab(id string) (*models.Tab, error) {
	t, ok := s.tabs[id]
	if !ok {
		return nil, fmt.Errorf("%w: tab %q", ErrNotFound, id)
	}
	return t, nil
}

func (s *Store) panel(id string) (*models.Panel, error) {
	p, ok := s.panels[id]
	if !ok {
		return nil, fmt.Errorf("%w: panel %q", ErrNotFound, id)
	}
	return p, nil
}

func (s *Store) element(id string) (*models.Element, error) {
	e, ok := s.elements[id]
	if !ok {
		return nil, fmt.Errorf("%w: element %q", ErrNotFound, id)
	}
	return e, nil
}

// ContainerOf returns the container that owns the element
func (s *Store) ContainerOf(elementID string) (models.ContainerRef, error) {
	e, err := s.element(elementID)
	if err != nil {
		return models.ContainerRef{}, err
	}
	return e.Container(), nil
}

// Children returns a copy of the ordered element ids held by a container
func (s *Store) Children(ref models.ContainerRef) ([]string, error) {
	ids, err := s.childSlice(ref)
	if err != nil {
		return nil, err
	}
	return slices.Clone(*ids), nil
}

// childSlice returns a pointer to the container's ordered sequence
func (s *Store) childSlice(ref models.ContainerRef) (*[]string, error) {
	switch ref.Kind {
	case models.ContainerPanel:
		p, err := s.panel(ref.ID)
		if err != nil {
			return nil, err
		}
		return &p.Elements, nil
	case models.ContainerElement:
		e, err := s.element(ref.ID)
		if err != nil {
			return nil, err
		}
		if !e.Type.IsContainer() {
			return nil, fmt.Errorf("%w: %s %q is not a container", ErrUnsupportedNesting, e.Type, e.Name)
		}
		return &e.Children, nil
	}
	return nil, fmt.Errorf("%w: container kind %q", ErrNotFound, ref.Kind)
}

// ReplaceAll swaps the whole state of s for that of other. other must not be
// used afterwards.
func (s *Store) ReplaceAll(other *Store) {
	*s = *other
	*other = Store{}
}

// Clone returns a deep copy of the store
func (s *Store) Clone() *Store {
	c := newEmptyStore()
	c.extensionName = s.extensionName
	c.tabOrder = slices.Clone(s.tabOrder)
	c.activeTabID = s.activeTabID
	c.nextIDs = s.nextIDs
	c.repairs = slices.Clone(s.repairs)
	for id, t := range s.tabs {
		cp := copyTab(t)
		c.tabs[id] = &cp
	}
	for id, p := range s.panels {
		cp := copyPanel(p)
		c.panels[id] = &cp
	}
	for id, e := range s.elements {
		cp := copyElement(e)
		c.elements[id] = &cp
	}
	return c
}

func copyTab(t *models.Tab) models.Tab {
	cp := *t
	cp.Panels = slices.Clone(t.Panels)
	return cp
}

func copyPanel(p *models.Panel) models.Panel {
	cp := *p
	cp.Elements = slices.Clone(p.Elements)
	return cp
}

func copyElement(e *models.Element) models.Element {
	cp := *e
	if e.Children != nil {
		cp.Children = append([]string{}, e.Children...)
	}
	return cp
}
