package layout

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

func elementNames(t *testing.T, s *Store, ref models.ContainerRef) []string {
	t.Helper()
	ids, err := s.Children(ref)
	require.NoError(t, err)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		e, err := s.Element(id)
		require.NoError(t, err)
		names = append(names, e.Name)
	}
	return names
}

func TestCreateTab(t *testing.T) {
	s := NewStore("Ext")

	first := s.CreateTab()
	second := s.CreateTab()

	assert.Equal(t, []string{"tab1", first, second}, s.TabIDs())
	assert.Equal(t, second, s.ActiveTabID())

	tab, err := s.Tab(first)
	require.NoError(t, err)
	assert.Equal(t, "NEW TAB", tab.Name)
	require.Len(t, tab.Panels, 1)

	panel, err := s.Panel(tab.Panels[0])
	require.NoError(t, err)
	assert.Equal(t, "NEW PANEL", panel.Name)
	assert.Equal(t, []string{"Button 1"}, elementNames(t, s, models.PanelRef(panel.ID)))

	tab, err = s.Tab(second)
	require.NoError(t, err)
	assert.Equal(t, "NEW TAB 1", tab.Name)

	require.NoError(t, s.Check())
}

func TestCreatePanel(t *testing.T) {
	t.Run("auto suffixes case-insensitively", func(t *testing.T) {
		s := NewStore("Ext")
		require.NoError(t, s.Rename(KindPanel, "panel1", "new panel"))

		id, err := s.CreatePanel("tab1")
		require.NoError(t, err)

		panel, err := s.Panel(id)
		require.NoError(t, err)
		assert.Equal(t, "NEW PANEL 1", panel.Name)
		assert.Equal(t, "tab1", panel.TabID)
		assert.Equal(t, []string{"Button 1"}, elementNames(t, s, models.PanelRef(id)))

		tab, err := s.Tab("tab1")
		require.NoError(t, err)
		assert.Equal(t, []string{"panel1", id}, tab.Panels)
	})

	t.Run("unknown tab", func(t *testing.T) {
		s := NewStore("Ext")
		before := s.Document()

		_, err := s.CreatePanel("tab9")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, before, s.Document())
	})
}

func TestCreateStack(t *testing.T) {
	s := NewStore("Ext")

	stackID, err := s.CreateStack("panel1")
	require.NoError(t, err)

	stack, err := s.Element(stackID)
	require.NoError(t, err)
	assert.Equal(t, models.ElementStack, stack.Type)
	assert.Equal(t, "NEW STACK", stack.Name)
	assert.Equal(t, "panel1", stack.PanelID)
	assert.Equal(t, []string{"Button 1", "Button 2"}, elementNames(t, s, models.ElementRef(stackID)))

	next, err := s.CreateStack("panel1")
	require.NoError(t, err)
	stack, err = s.Element(next)
	require.NoError(t, err)
	assert.Equal(t, "NEW STACK 1", stack.Name)

	_, err = s.CreateStack("panel9")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Check())
}

func TestNextButtonName(t *testing.T) {
	tests := []struct {
		name     string
		siblings []string
		want     string
	}{
		{"empty", nil, "Button 1"},
		{"fills gap", []string{"Button 1", "Button 3"}, "Button 2"},
		{"appends", []string{"Button 1", "Button 2"}, "Button 3"},
		{"fills first slot", []string{"Button 2"}, "Button 1"},
		{"ignores other names", []string{"Run", "Button 1", "Button x"}, "Button 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextButtonName(tt.siblings))
		})
	}
}

func TestCreateElement(t *testing.T) {
	t.Run("default name fills gaps", func(t *testing.T) {
		s := NewStore("Ext")
		ref := models.PanelRef("panel1")
		_, err := s.CreateElement(models.ElementPushButton, ref, models.ElementFields{Name: "Button 3"})
		require.NoError(t, err)

		name, err := s.DefaultElementName(ref)
		require.NoError(t, err)
		assert.Equal(t, "Button 2", name)

		id, err := s.CreateElement(models.ElementToggleButton, ref, models.ElementFields{})
		require.NoError(t, err)
		e, err := s.Element(id)
		require.NoError(t, err)
		assert.Equal(t, "Button 2", e.Name)
		assert.Equal(t, models.ElementToggleButton, e.Type)
	})

	t.Run("duplicate name is case-insensitive", func(t *testing.T) {
		s := NewStore("Ext")
		before := s.Document()

		_, err := s.CreateElement(models.ElementPushButton, models.PanelRef("panel1"), models.ElementFields{Name: "button 1"})
		assert.ErrorIs(t, err, ErrDuplicateName)
		assert.Equal(t, before, s.Document())
	})

	t.Run("keeps only fields the type uses", func(t *testing.T) {
		all := models.ElementFields{Code: "print(1)", URL: "https://example.com", Command: "Addin.Cmd"}
		tests := []struct {
			typ     models.ElementType
			code    string
			url     string
			command string
		}{
			{typ: models.ElementPushButton, code: "print(1)"},
			{typ: models.ElementPulldown, code: "print(1)"},
			{typ: models.ElementStack},
			{typ: models.ElementLinkButton, url: "https://example.com"},
			{typ: models.ElementInvokeButton, command: "Addin.Cmd"},
		}
		for _, tt := range tests {
			s := NewStore("Ext")
			id, err := s.CreateElement(tt.typ, models.PanelRef("panel1"), all)
			require.NoError(t, err, tt.typ)

			e, err := s.Element(id)
			require.NoError(t, err)
			assert.Equal(t, tt.code, e.Code, tt.typ)
			assert.Equal(t, tt.url, e.URL, tt.typ)
			assert.Equal(t, tt.command, e.Command, tt.typ)
		}
	})

	t.Run("containers start empty", func(t *testing.T) {
		s := NewStore("Ext")
		id, err := s.CreateElement(models.ElementPulldown, models.PanelRef("panel1"), models.ElementFields{Name: "Tools"})
		require.NoError(t, err)

		e, err := s.Element(id)
		require.NoError(t, err)
		assert.NotNil(t, e.Children)
		assert.Empty(t, e.Children)
	})

	t.Run("unknown type", func(t *testing.T) {
		s := NewStore("Ext")
		_, err := s.CreateElement(models.ElementType("ribbonbutton"), models.PanelRef("panel1"), models.ElementFields{})
		assert.Error(t, err)
	})

	t.Run("missing container", func(t *testing.T) {
		s := NewStore("Ext")
		_, err := s.CreateElement(models.ElementPushButton, models.PanelRef("panel9"), models.ElementFields{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("leaf is not a container", func(t *testing.T) {
		s := NewStore("Ext")
		_, err := s.CreateElement(models.ElementPushButton, models.ElementRef("element1"), models.ElementFields{})
		assert.ErrorIs(t, err, ErrUnsupportedNesting)
	})
}

func TestNestingContract(t *testing.T) {
	s := NewStore("Ext")
	stackID, err := s.CreateStack("panel1")
	require.NoError(t, err)
	pulldownID, err := s.CreateElement(models.ElementPulldown, models.PanelRef("panel1"), models.ElementFields{Name: "Tools"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		typ     models.ElementType
		ref     models.ContainerRef
		wantErr error
	}{
		{"pulldown in stack", models.ElementPulldown, models.ElementRef(stackID), nil},
		{"stack in stack", models.ElementStack, models.ElementRef(stackID), ErrUnsupportedNesting},
		{"pulldown in pulldown", models.ElementPulldown, models.ElementRef(pulldownID), ErrUnsupportedNesting},
		{"stack in pulldown", models.ElementStack, models.ElementRef(pulldownID), ErrUnsupportedNesting},
		{"link in pulldown", models.ElementLinkButton, models.ElementRef(pulldownID), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := s.Clone()
			_, err := c.CreateElement(tt.typ, tt.ref, models.ElementFields{Name: "Nested"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, s.Document(), c.Document())
				return
			}
			require.NoError(t, err)
			require.NoError(t, c.Check())
		})
	}
}

func TestStackCapacity(t *testing.T) {
	s := NewStore("Ext")
	stackID, err := s.CreateStack("panel1")
	require.NoError(t, err)
	stackRef := models.ElementRef(stackID)

	_, err = s.CreateElement(models.ElementPushButton, stackRef, models.ElementFields{})
	require.NoError(t, err)

	t.Run("create fourth fails", func(t *testing.T) {
		before := s.Document()
		_, err := s.CreateElement(models.ElementPushButton, stackRef, models.ElementFields{})
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, before, s.Document())
	})

	t.Run("move fourth fails", func(t *testing.T) {
		before := s.Document()
		err := s.MoveElement("element1", stackRef, -1)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, before, s.Document())
	})

	t.Run("reorder inside full stack", func(t *testing.T) {
		children, err := s.Children(stackRef)
		require.NoError(t, err)
		require.Len(t, children, 3)

		require.NoError(t, s.MoveElement(children[2], stackRef, 0))

		reordered, err := s.Children(stackRef)
		require.NoError(t, err)
		assert.Equal(t, []string{children[2], children[0], children[1]}, reordered)
	})

	require.NoError(t, s.Check())
}

func TestEditElement(t *testing.T) {
	newPulldown := func(t *testing.T) (*Store, string) {
		t.Helper()
		s := NewStore("Ext")
		id, err := s.CreateElement(models.ElementPushButton, models.PanelRef("panel1"), models.ElementFields{Name: "Last"})
		require.NoError(t, err)
		pulldownID, err := s.CreateElement(models.ElementPulldown, models.PanelRef("panel1"), models.ElementFields{Name: "Tools"})
		require.NoError(t, err)
		require.NoError(t, s.MoveElement(id, models.PanelRef("panel1"), -1))
		for range 2 {
			_, err := s.CreateElement(models.ElementPushButton, models.ElementRef(pulldownID), models.ElementFields{})
			require.NoError(t, err)
		}
		return s, pulldownID
	}

	t.Run("overwrites fields in place", func(t *testing.T) {
		s := NewStore("Ext")
		err := s.EditElement("element1", models.ElementFields{Name: "Run Script", Title: "Run", Tooltip: "Runs it", Code: "print(1)"}, "", false)
		require.NoError(t, err)

		e, err := s.Element("element1")
		require.NoError(t, err)
		assert.Equal(t, "Run Script", e.Name)
		assert.Equal(t, "Run", e.Title)
		assert.Equal(t, "Runs it", e.Tooltip)
		assert.Equal(t, "print(1)", e.Code)
		assert.Equal(t, models.ElementPushButton, e.Type)
	})

	t.Run("type change drops fields of the old type", func(t *testing.T) {
		s := NewStore("Ext")
		require.NoError(t, s.EditElement("element1", models.ElementFields{Code: "print(1)", URL: "https://example.com"}, "", false))
		e, err := s.Element("element1")
		require.NoError(t, err)
		assert.Equal(t, "print(1)", e.Code)
		assert.Empty(t, e.URL)

		fields := models.ElementFields{Name: e.Name, Code: e.Code, URL: "https://example.com"}
		require.NoError(t, s.EditElement("element1", fields, models.ElementLinkButton, false))
		e, err = s.Element("element1")
		require.NoError(t, err)
		assert.Empty(t, e.Code)
		assert.Equal(t, "https://example.com", e.URL)
	})

	t.Run("blank name keeps current name", func(t *testing.T) {
		s := NewStore("Ext")
		require.NoError(t, s.EditElement("element1", models.ElementFields{Title: "T"}, "", false))
		e, err := s.Element("element1")
		require.NoError(t, err)
		assert.Equal(t, "Button 1", e.Name)
	})

	t.Run("container to leaf needs confirmation", func(t *testing.T) {
		s, pulldownID := newPulldown(t)
		before := s.Document()

		err := s.EditElement(pulldownID, models.ElementFields{Name: "Tools"}, models.ElementPushButton, false)
		assert.ErrorIs(t, err, ErrConfirmationRequired)
		assert.Equal(t, before, s.Document())
	})

	t.Run("confirmed container to leaf deletes children", func(t *testing.T) {
		s, pulldownID := newPulldown(t)
		_, _, elementsBefore := s.Counts()
		order, err := s.Children(models.PanelRef("panel1"))
		require.NoError(t, err)

		err = s.EditElement(pulldownID, models.ElementFields{Name: "Tools"}, models.ElementPushButton, true)
		require.NoError(t, err)

		e, err := s.Element(pulldownID)
		require.NoError(t, err)
		assert.Equal(t, models.ElementPushButton, e.Type)
		assert.Nil(t, e.Children)

		_, _, elementsAfter := s.Counts()
		assert.Equal(t, elementsBefore-2, elementsAfter)

		after, err := s.Children(models.PanelRef("panel1"))
		require.NoError(t, err)
		assert.Equal(t, order, after)
		require.NoError(t, s.Check())
	})

	t.Run("leaf to container starts empty", func(t *testing.T) {
		s := NewStore("Ext")
		require.NoError(t, s.EditElement("element1", models.ElementFields{}, models.ElementStack, false))
		e, err := s.Element("element1")
		require.NoError(t, err)
		assert.NotNil(t, e.Children)
		assert.Empty(t, e.Children)
		require.NoError(t, s.Check())
	})

	t.Run("pulldown to stack respects capacity", func(t *testing.T) {
		s, pulldownID := newPulldown(t)
		_, err := s.CreateElement(models.ElementPushButton, models.ElementRef(pulldownID), models.ElementFields{})
		require.NoError(t, err)
		_, err = s.CreateElement(models.ElementPushButton, models.ElementRef(pulldownID), models.ElementFields{})
		require.NoError(t, err)

		err = s.EditElement(pulldownID, models.ElementFields{}, models.ElementStack, true)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("stack holding a pulldown cannot become a pulldown", func(t *testing.T) {
		s := NewStore("Ext")
		stackID, err := s.CreateStack("panel1")
		require.NoError(t, err)
		require.NoError(t, s.DeleteElement(mustChild(t, s, stackID, 0), false))
		_, err = s.CreateElement(models.ElementPulldown, models.ElementRef(stackID), models.ElementFields{Name: "Inner"})
		require.NoError(t, err)

		err = s.EditElement(stackID, models.ElementFields{}, models.ElementPulldown, true)
		assert.ErrorIs(t, err, ErrUnsupportedNesting)
	})

	t.Run("child of pulldown cannot become a container", func(t *testing.T) {
		s, pulldownID := newPulldown(t)
		child := mustChild(t, s, pulldownID, 0)
		err := s.EditElement(child, models.ElementFields{}, models.ElementStack, false)
		assert.ErrorIs(t, err, ErrUnsupportedNesting)
	})

	t.Run("rename collision", func(t *testing.T) {
		s, _ := newPulldown(t)
		err := s.EditElement("element1", models.ElementFields{Name: "TOOLS"}, "", false)
		assert.ErrorIs(t, err, ErrDuplicateName)
	})
}

func mustChild(t *testing.T, s *Store, containerID string, i int) string {
	t.Helper()
	ids, err := s.Children(models.ElementRef(containerID))
	require.NoError(t, err)
	require.Greater(t, len(ids), i)
	return ids[i]
}

func TestMoveElement(t *testing.T) {
	t.Run("between panels", func(t *testing.T) {
		s := NewStore("Ext")
		panelID, err := s.CreatePanel("tab1")
		require.NoError(t, err)
		require.NoError(t, s.Rename(KindElement, "element1", "Run"))

		require.NoError(t, s.MoveElement("element1", models.PanelRef(panelID), 0))

		e, err := s.Element("element1")
		require.NoError(t, err)
		assert.Equal(t, panelID, e.PanelID)
		assert.Empty(t, e.ParentID)
		assert.Equal(t, []string{"Run", "Button 1"}, elementNames(t, s, models.PanelRef(panelID)))
		assert.Empty(t, elementNames(t, s, models.PanelRef("panel1")))
		require.NoError(t, s.Check())
	})

	t.Run("into a stack sets parent", func(t *testing.T) {
		s := NewStore("Ext")
		stackID, err := s.CreateStack("panel1")
		require.NoError(t, err)
		require.NoError(t, s.Rename(KindElement, "element1", "Run"))

		require.NoError(t, s.MoveElement("element1", models.ElementRef(stackID), 1))

		e, err := s.Element("element1")
		require.NoError(t, err)
		assert.Equal(t, stackID, e.ParentID)
		assert.Empty(t, e.PanelID)
		assert.Equal(t, []string{"Button 1", "Run", "Button 2"}, elementNames(t, s, models.ElementRef(stackID)))
		require.NoError(t, s.Check())
	})

	t.Run("into itself", func(t *testing.T) {
		s := NewStore("Ext")
		stackID, err := s.CreateStack("panel1")
		require.NoError(t, err)

		err = s.MoveElement(stackID, models.ElementRef(stackID), -1)
		assert.ErrorIs(t, err, ErrUnsupportedNesting)
	})

	t.Run("into a descendant", func(t *testing.T) {
		s := NewStore("Ext")
		stackID, err := s.CreateStack("panel1")
		require.NoError(t, err)
		require.NoError(t, s.DeleteElement(mustChild(t, s, stackID, 0), false))
		pulldownID, err := s.CreateElement(models.ElementPulldown, models.ElementRef(stackID), models.ElementFields{Name: "Inner"})
		require.NoError(t, err)

		err = s.MoveElement(stackID, models.ElementRef(pulldownID), -1)
		assert.ErrorIs(t, err, ErrUnsupportedNesting)
	})

	t.Run("name clash in target", func(t *testing.T) {
		s := NewStore("Ext")
		stackID, err := s.CreateStack("panel1")
		require.NoError(t, err)
		before := s.Document()

		err = s.MoveElement("element1", models.ElementRef(stackID), -1)
		assert.ErrorIs(t, err, ErrDuplicateName)
		assert.Equal(t, before, s.Document())
	})
}

func TestDeleteElement(t *testing.T) {
	s := NewStore("Ext")
	stackID, err := s.CreateStack("panel1")
	require.NoError(t, err)
	children, err := s.Children(models.ElementRef(stackID))
	require.NoError(t, err)

	err = s.DeleteElement(stackID, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	require.NoError(t, s.DeleteElement(stackID, true))
	assert.False(t, s.Exists(KindElement, stackID))
	for _, id := range children {
		assert.False(t, s.Exists(KindElement, id))
	}
	assert.Equal(t, []string{"element1"}, mustPanelElements(t, s, "panel1"))

	require.NoError(t, s.DeleteElement("element1", false))
	assert.Empty(t, mustPanelElements(t, s, "panel1"))

	assert.ErrorIs(t, s.DeleteElement("element1", true), ErrNotFound)
	require.NoError(t, s.Check())
}

func mustPanelElements(t *testing.T, s *Store, panelID string) []string {
	t.Helper()
	p, err := s.Panel(panelID)
	require.NoError(t, err)
	return p.Elements
}

func TestDeleteTab(t *testing.T) {
	t.Run("last tab", func(t *testing.T) {
		s := NewStore("Ext")
		before := s.Document()

		err := s.DeleteTab("tab1", true)
		assert.ErrorIs(t, err, ErrLastContainer)
		assert.Equal(t, before, s.Document())
	})

	t.Run("second to last tab cascades", func(t *testing.T) {
		s := NewStore("Ext")
		tabID := s.CreateTab()
		tab, err := s.Tab(tabID)
		require.NoError(t, err)
		panelID := tab.Panels[0]
		buttons := mustPanelElements(t, s, panelID)

		assert.ErrorIs(t, s.DeleteTab(tabID, false), ErrConfirmationRequired)
		require.NoError(t, s.DeleteTab(tabID, true))

		assert.Equal(t, []string{"tab1"}, s.TabIDs())
		assert.Equal(t, "tab1", s.ActiveTabID())
		assert.False(t, s.Exists(KindPanel, panelID))
		for _, id := range buttons {
			assert.False(t, s.Exists(KindElement, id))
		}
		tabs, panels, elements := s.Counts()
		assert.Equal(t, 1, tabs)
		assert.Equal(t, 1, panels)
		assert.Equal(t, 1, elements)
		require.NoError(t, s.Check())
	})

	t.Run("active tab moves to first remaining", func(t *testing.T) {
		s := NewStore("Ext")
		second := s.CreateTab()
		third := s.CreateTab()
		require.NoError(t, s.SetActiveTab("tab1"))

		require.NoError(t, s.DeleteTab("tab1", true))
		assert.Equal(t, second, s.ActiveTabID())
		assert.Equal(t, []string{second, third}, s.TabIDs())
	})
}

func TestDeletePanel(t *testing.T) {
	s := NewStore("Ext")

	assert.ErrorIs(t, s.DeletePanel("panel1", true), ErrLastContainer)

	panelID, err := s.CreatePanel("tab1")
	require.NoError(t, err)
	assert.ErrorIs(t, s.DeletePanel(panelID, false), ErrConfirmationRequired)

	require.NoError(t, s.DeletePanel(panelID, true))
	tab, err := s.Tab("tab1")
	require.NoError(t, err)
	assert.Equal(t, []string{"panel1"}, tab.Panels)
	_, _, elements := s.Counts()
	assert.Equal(t, 1, elements)
	require.NoError(t, s.Check())
}

func TestRename(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(s *Store)
		kind    EntityKind
		id      string
		newName string
		wantErr error
	}{
		{name: "tab", kind: KindTab, id: "tab1", newName: "Main"},
		{name: "case change of same name", kind: KindTab, id: "tab1", newName: "tab name"},
		{name: "blank", kind: KindPanel, id: "panel1", newName: "  ", wantErr: ErrInvalidName},
		{name: "missing", kind: KindElement, id: "element9", newName: "X", wantErr: ErrNotFound},
		{
			name:    "tab collision",
			setup:   func(s *Store) { s.CreateTab() },
			kind:    KindTab,
			id:      "tab1",
			newName: "new tab",
			wantErr: ErrDuplicateName,
		},
		{
			name: "panel collision",
			setup: func(s *Store) {
				_, _ = s.CreatePanel("tab1")
			},
			kind:    KindPanel,
			id:      "panel1",
			newName: "New Panel",
			wantErr: ErrDuplicateName,
		},
		{
			name: "element collision",
			setup: func(s *Store) {
				_, _ = s.CreateElement(models.ElementPushButton, models.PanelRef("panel1"), models.ElementFields{Name: "Run"})
			},
			kind:    KindElement,
			id:      "element1",
			newName: "RUN",
			wantErr: ErrDuplicateName,
		},
		{
			name:    "same name in other tab is fine",
			setup:   func(s *Store) { s.CreateTab() },
			kind:    KindPanel,
			id:      "panel1",
			newName: "NEW PANEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore("Ext")
			if tt.setup != nil {
				tt.setup(s)
			}
			before := s.Document()

			err := s.Rename(tt.kind, tt.id, tt.newName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, s.Document())
				return
			}
			require.NoError(t, err)
			got, err := s.Get(tt.kind, tt.id)
			require.NoError(t, err)
			assert.Contains(t, fmt.Sprintf("%+v", got), tt.newName)
		})
	}
}

func TestSetExtensionName(t *testing.T) {
	s := NewStore("Ext")
	require.NoError(t, s.SetExtensionName("  Tools  "))
	assert.Equal(t, "Tools", s.ExtensionName())
	assert.ErrorIs(t, s.SetExtensionName(""), ErrInvalidName)
	assert.ErrorIs(t, s.SetActiveTab("tab9"), ErrNotFound)

	for _, name := range []string{"../../evil", `..\evil`, "a/b", "..", "."} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.SetExtensionName(name), ErrInvalidName)
			assert.Equal(t, "Tools", s.ExtensionName())
		})
	}
	require.NoError(t, s.SetExtensionName("v1.2 Tools"))
}

// Random operation sequences must keep every invariant, and failing
// operations must leave the store untouched.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	s := NewStore("Ext")

	pick := func(ids []string) string {
		if len(ids) == 0 {
			return "missing"
		}
		return ids[rng.IntN(len(ids))]
	}

	for step := 0; step < 2000; step++ {
		tabIDs := s.TabIDs()
		panelIDs := slices.Sorted(maps.Keys(s.panels))
		elementIDs := slices.Sorted(maps.Keys(s.elements))
		typ := models.ElementTypes[rng.IntN(len(models.ElementTypes))]
		confirmed := rng.IntN(2) == 0

		var target models.ContainerRef
		if rng.IntN(2) == 0 {
			target = models.PanelRef(pick(panelIDs))
		} else {
			target = models.ElementRef(pick(elementIDs))
		}

		before := s.Document()
		var err error
		op := rng.IntN(10)
		switch op {
		case 0:
			s.CreateTab()
		case 1:
			_, err = s.CreatePanel(pick(tabIDs))
		case 2:
			_, err = s.CreateStack(pick(panelIDs))
		case 3, 4:
			_, err = s.CreateElement(typ, target, models.ElementFields{})
		case 5:
			err = s.MoveElement(pick(elementIDs), target, rng.IntN(4)-1)
		case 6:
			err = s.DeleteElement(pick(elementIDs), confirmed)
		case 7:
			if rng.IntN(3) == 0 {
				err = s.DeleteTab(pick(tabIDs), confirmed)
			} else {
				err = s.DeletePanel(pick(panelIDs), confirmed)
			}
		case 8:
			err = s.EditElement(pick(elementIDs), models.ElementFields{}, typ, confirmed)
		case 9:
			err = s.Rename(KindElement, pick(elementIDs), fmt.Sprintf("Button %d", rng.IntN(4)))
		}

		require.NoError(t, s.Check(), "step %d op %d", step, op)
		if err != nil {
			require.Equal(t, before, s.Document(), "step %d op %d failed with %v but changed the store", step, op, err)
		}
	}
}
