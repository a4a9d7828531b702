package layout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

// CreateTab adds a tab named "NEW TAB" (suffixed when taken) holding one
// default panel with one default button, and makes it the active tab
func (s *Store) CreateTab() string {
	name := uniqueName(DefaultTabName, s.tabNames(""))
	tabID := s.AllocateID(KindTab)
	s.tabs[tabID] = &models.Tab{ID: tabID, Name: name, Panels: []string{}}
	s.tabOrder = append(s.tabOrder, tabID)
	s.addPanel(tabID)
	s.activeTabID = tabID
	return tabID
}

// CreatePanel adds a panel with one default button to the tab
func (s *Store) CreatePanel(tabID string) (string, error) {
	if _, err := s.tab(tabID); err != nil {
		return "", err
	}
	return s.addPanel(tabID), nil
}

func (s *Store) addPanel(tabID string) string {
	t := s.tabs[tabID]
	name := uniqueName(DefaultPanelName, s.panelNames(tabID, ""))
	panelID := s.AllocateID(KindPanel)
	s.panels[panelID] = &models.Panel{ID: panelID, Name: name, Elements: []string{}, TabID: tabID}
	t.Panels = append(t.Panels, panelID)
	s.addButton(models.PanelRef(panelID), nextButtonName(nil))
	return panelID
}

func (s *Store) addButton(ref models.ContainerRef, name string) string {
	id := s.AllocateID(KindElement)
	e := newElement(id, models.ElementPushButton, models.ElementFields{Name: name})
	s.elements[id] = e
	// ref was validated by the caller
	_ = s.attach(e, ref, -1)
	return id
}

// CreateStack adds a stack named "NEW STACK" (suffixed when taken) to the
// panel, seeded with two push buttons
func (s *Store) CreateStack(panelID string) (string, error) {
	ref := models.PanelRef(panelID)
	if _, err := s.panel(panelID); err != nil {
		return "", err
	}
	name := uniqueName(DefaultStackName, s.siblingNames(ref, ""))
	stackID := s.AllocateID(KindElement)
	stack := newElement(stackID, models.ElementStack, models.ElementFields{Name: name})
	s.elements[stackID] = stack
	if err := s.attach(stack, ref, -1); err != nil {
		delete(s.elements, stackID)
		return "", err
	}
	stackRef := models.ElementRef(stackID)
	for i := 0; i < 2; i++ {
		s.addButton(stackRef, nextButtonName(s.siblingNames(stackRef, "")))
	}
	return stackID, nil
}

// CreateElement adds an element of type t to the container. A blank name is
// replaced by the next free "Button n".
func (s *Store) CreateElement(t models.ElementType, ref models.ContainerRef, fields models.ElementFields) (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("unknown element type %q", t)
	}
	if err := s.checkPlacement(t, ref, ""); err != nil {
		return "", err
	}

	siblings := s.siblingNames(ref, "")
	if strings.TrimSpace(fields.Name) == "" {
		fields.Name = nextButtonName(siblings)
	} else if containsName(siblings, fields.Name) {
		return "", fmt.Errorf("%w: %q already exists in %s", ErrDuplicateName, fields.Name, s.describe(ref))
	}

	id := s.AllocateID(KindElement)
	e := newElement(id, t, fields)
	s.elements[id] = e
	if err := s.attach(e, ref, -1); err != nil {
		delete(s.elements, id)
		return "", err
	}
	return id, nil
}

// EditElement overwrites the element's fields and, when newType differs,
// changes its variant. Turning a container with children into a leaf deletes
// the children and requires confirmed. The element keeps its position.
func (s *Store) EditElement(id string, fields models.ElementFields, newType models.ElementType, confirmed bool) error {
	e, err := s.element(id)
	if err != nil {
		return err
	}
	if newType == "" {
		newType = e.Type
	}
	if !newType.Valid() {
		return fmt.Errorf("unknown element type %q", newType)
	}

	ref := e.Container()
	if strings.TrimSpace(fields.Name) == "" {
		fields.Name = e.Name
	} else if containsName(s.siblingNames(ref, id), fields.Name) {
		return fmt.Errorf("%w: %q already exists in %s", ErrDuplicateName, fields.Name, s.describe(ref))
	}

	dropChildren := false
	if newType != e.Type {
		if err := s.checkPlacement(newType, ref, id); err != nil {
			return err
		}
		switch {
		case e.Type.IsContainer() && !newType.IsContainer():
			if len(e.Children) > 0 && !confirmed {
				return fmt.Errorf("%w: changing %s %q to %s deletes its %d element(s)",
					ErrConfirmationRequired, e.Type, e.Name, newType, len(e.Children))
			}
			dropChildren = true
		case e.Type.IsContainer() && newType.IsContainer():
			if err := s.checkChildrenFit(e, newType); err != nil {
				return err
			}
		}
	}

	if dropChildren {
		s.removeChildren(e)
		e.Children = nil
	} else if newType.IsContainer() && e.Children == nil {
		e.Children = []string{}
	}
	e.Type = newType
	applyFields(e, fields)
	return nil
}

// checkChildrenFit verifies that a container's current children are allowed
// in a container of type newType
func (s *Store) checkChildrenFit(e *models.Element, newType models.ElementType) error {
	switch newType {
	case models.ElementStack:
		if len(e.Children) > models.StackCapacity {
			return fmt.Errorf("%w: %q holds %d elements, a stack holds at most %d",
				ErrCapacityExceeded, e.Name, len(e.Children), models.StackCapacity)
		}
	case models.ElementPulldown:
		for _, childID := range e.Children {
			if child, ok := s.elements[childID]; ok && child.Type.IsContainer() {
				return fmt.Errorf("%w: %s %q cannot stay inside a pulldown", ErrUnsupportedNesting, child.Type, child.Name)
			}
		}
	}
	return nil
}

// MoveElement detaches the element from its container and attaches it to
// the target at index (append when index < 0). Reordering inside the same
// container is a move too.
func (s *Store) MoveElement(id string, to models.ContainerRef, index int) error {
	e, err := s.element(id)
	if err != nil {
		return err
	}
	if _, err := s.childSlice(to); err != nil {
		return err
	}
	if to.Kind == models.ContainerElement && (to.ID == id || s.isDescendant(to.ID, id)) {
		return fmt.Errorf("%w: %q cannot be moved inside itself", ErrUnsupportedNesting, e.Name)
	}
	if err := s.checkPlacement(e.Type, to, id); err != nil {
		return err
	}
	if containsName(s.siblingNames(to, id), e.Name) {
		return fmt.Errorf("%w: %q already exists in %s", ErrDuplicateName, e.Name, s.describe(to))
	}

	if err := s.detach(e); err != nil {
		return err
	}
	return s.attach(e, to, index)
}

// DeleteElement removes the element, and every element below it, from the
// store. Deleting a container that still has children requires confirmed.
func (s *Store) DeleteElement(id string, confirmed bool) error {
	e, err := s.element(id)
	if err != nil {
		return err
	}
	if len(e.Children) > 0 && !confirmed {
		return fmt.Errorf("%w: %s %q contains %d element(s)", ErrConfirmationRequired, e.Type, e.Name, len(e.Children))
	}
	return s.removeElementTree(id)
}

// DeleteTab removes the tab with all of its panels and elements. The only
// tab cannot be deleted.
func (s *Store) DeleteTab(id string, confirmed bool) error {
	t, err := s.tab(id)
	if err != nil {
		return err
	}
	if len(s.tabs) < 2 {
		return fmt.Errorf("%w: %q is the only tab", ErrLastContainer, t.Name)
	}
	if len(t.Panels) > 0 && !confirmed {
		return fmt.Errorf("%w: deleting tab %q deletes all its panels and elements", ErrConfirmationRequired, t.Name)
	}

	for _, panelID := range t.Panels {
		s.dropPanelContents(panelID)
		delete(s.panels, panelID)
	}
	delete(s.tabs, id)
	s.tabOrder = slices.DeleteFunc(s.tabOrder, func(tid string) bool { return tid == id })
	if s.activeTabID == id {
		s.activeTabID = s.tabOrder[0]
	}
	return nil
}

// DeletePanel removes the panel and its elements. The only panel of a tab
// cannot be deleted.
func (s *Store) DeletePanel(id string, confirmed bool) error {
	p, err := s.panel(id)
	if err != nil {
		return err
	}
	t, err := s.tab(p.TabID)
	if err != nil {
		return err
	}
	if len(t.Panels) < 2 {
		return fmt.Errorf("%w: %q is the only panel in tab %q", ErrLastContainer, p.Name, t.Name)
	}
	if len(p.Elements) > 0 && !confirmed {
		return fmt.Errorf("%w: deleting panel %q deletes %d element(s)", ErrConfirmationRequired, p.Name, len(p.Elements))
	}

	s.dropPanelContents(id)
	delete(s.panels, id)
	t.Panels = slices.DeleteFunc(t.Panels, func(pid string) bool { return pid == id })
	return nil
}

func (s *Store) dropPanelContents(panelID string) {
	p := s.panels[panelID]
	for _, elementID := range p.Elements {
		for _, d := range s.subtree(elementID) {
			delete(s.elements, d)
		}
	}
	p.Elements = []string{}
}

// Rename changes the name of a tab, panel or element. Names must be unique,
// ignoring case, among siblings at the same level.
func (s *Store) Rename(kind EntityKind, id, newName string) error {
	if err := validName(newName); err != nil {
		return err
	}

	switch kind {
	case KindTab:
		t, err := s.tab(id)
		if err != nil {
			return err
		}
		if containsName(s.tabNames(id), newName) {
			return fmt.Errorf("%w: a tab named %q already exists", ErrDuplicateName, newName)
		}
		t.Name = newName
	case KindPanel:
		p, err := s.panel(id)
		if err != nil {
			return err
		}
		if containsName(s.panelNames(p.TabID, id), newName) {
			return fmt.Errorf("%w: a panel named %q already exists in this tab", ErrDuplicateName, newName)
		}
		p.Name = newName
	case KindElement:
		e, err := s.element(id)
		if err != nil {
			return err
		}
		ref := e.Container()
		if containsName(s.siblingNames(ref, id), newName) {
			return fmt.Errorf("%w: %q already exists in %s", ErrDuplicateName, newName, s.describe(ref))
		}
		e.Name = newName
	default:
		return fmt.Errorf("%w: unknown entity kind %q", ErrNotFound, kind)
	}
	return nil
}

// SetActiveTab selects the tab being edited
func (s *Store) SetActiveTab(id string) error {
	if _, err := s.tab(id); err != nil {
		return err
	}
	s.activeTabID = id
	return nil
}

// SetExtensionName changes the exported root folder name
func (s *Store) SetExtensionName(name string) error {
	if err := ValidExtensionName(name); err != nil {
		return err
	}
	s.extensionName = strings.TrimSpace(name)
	return nil
}

// describe renders a container for error messages
func (s *Store) describe(ref models.ContainerRef) string {
	switch ref.Kind {
	case models.ContainerPanel:
		if p, ok := s.panels[ref.ID]; ok {
			return fmt.Sprintf("panel %q", p.Name)
		}
	case models.ContainerElement:
		if e, ok := s.elements[ref.ID]; ok {
			return fmt.Sprintf("%s %q", e.Type, e.Name)
		}
	}
	return ref.String()
}
