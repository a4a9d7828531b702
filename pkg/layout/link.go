package layout

import (
	"fmt"
	"slices"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

// attach inserts the element into the container's ordered sequence and sets
// its back reference in one step. index < 0 or past the end appends.
func (s *Store) attach(e *models.Element, ref models.ContainerRef, index int) error {
	ids, err := s.childSlice(ref)
	if err != nil {
		return err
	}
	if index < 0 || index > len(*ids) {
		index = len(*ids)
	}
	*ids = slices.Insert(*ids, index, e.ID)

	e.PanelID, e.ParentID = "", ""
	if ref.Kind == models.ContainerPanel {
		e.PanelID = ref.ID
	} else {
		e.ParentID = ref.ID
	}
	return nil
}

// detach removes the element from its container's sequence and clears the
// back reference
func (s *Store) detach(e *models.Element) error {
	ids, err := s.childSlice(e.Container())
	if err != nil {
		return err
	}
	*ids = slices.DeleteFunc(*ids, func(id string) bool { return id == e.ID })
	e.PanelID, e.ParentID = "", ""
	return nil
}

// checkPlacement verifies that an element of type t may live in ref. self is
// the id of an element already in ref (moves and edits) and does not count
// toward stack capacity.
func (s *Store) checkPlacement(t models.ElementType, ref models.ContainerRef, self string) error {
	ids, err := s.childSlice(ref)
	if err != nil {
		return err
	}
	if ref.Kind == models.ContainerPanel {
		return nil
	}

	container := s.elements[ref.ID]
	switch container.Type {
	case models.ElementStack:
		if t == models.ElementStack {
			return fmt.Errorf("%w: a stack cannot be placed inside stack %q", ErrUnsupportedNesting, container.Name)
		}
		if !slices.Contains(*ids, self) && len(*ids) >= models.StackCapacity {
			return fmt.Errorf("%w: stack %q already holds %d elements", ErrCapacityExceeded, container.Name, models.StackCapacity)
		}
	case models.ElementPulldown:
		if t.IsContainer() {
			return fmt.Errorf("%w: a %s cannot be placed inside pulldown %q", ErrUnsupportedNesting, t, container.Name)
		}
	default:
		return fmt.Errorf("%w: %s %q cannot hold elements", ErrUnsupportedNesting, container.Type, container.Name)
	}
	return nil
}

// isDescendant reports whether candidate sits somewhere below ancestor
func (s *Store) isDescendant(candidate, ancestor string) bool {
	for id := candidate; id != ""; {
		e, ok := s.elements[id]
		if !ok {
			return false
		}
		if e.ParentID == ancestor {
			return true
		}
		id = e.ParentID
	}
	return false
}

// subtree returns the element and all of its descendants, children first
func (s *Store) subtree(id string) []string {
	e, ok := s.elements[id]
	if !ok {
		return nil
	}
	var out []string
	for _, child := range e.Children {
		out = append(out, s.subtree(child)...)
	}
	return append(out, id)
}

// removeElementTree detaches the element and deletes it with every
// descendant
func (s *Store) removeElementTree(id string) error {
	e, err := s.element(id)
	if err != nil {
		return err
	}
	doomed := s.subtree(id)
	if err := s.detach(e); err != nil {
		return err
	}
	for _, d := range doomed {
		delete(s.elements, d)
	}
	return nil
}

// removeChildren deletes every descendant of a container element and leaves
// it with an empty child list
func (s *Store) removeChildren(e *models.Element) {
	for _, child := range e.Children {
		for _, d := range s.subtree(child) {
			delete(s.elements, d)
		}
	}
	e.Children = []string{}
}
