package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

func populatedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore("MyExt")
	require.NoError(t, s.Rename(KindTab, "tab1", "Main"))
	require.NoError(t, s.Rename(KindPanel, "panel1", "Tools"))
	require.NoError(t, s.EditElement("element1", models.ElementFields{Name: "Run Script", Tooltip: "Runs a script", Code: "print('hi')"}, "", false))

	stackID, err := s.CreateStack("panel1")
	require.NoError(t, err)
	pulldownID, err := s.CreateElement(models.ElementPulldown, models.ElementRef(stackID), models.ElementFields{Name: "More"})
	require.NoError(t, err)
	_, err = s.CreateElement(models.ElementLinkButton, models.ElementRef(pulldownID), models.ElementFields{Name: "Docs", URL: "https://example.com"})
	require.NoError(t, err)

	tabID := s.CreateTab()
	require.NoError(t, s.Rename(KindTab, tabID, "Second"))
	require.NoError(t, s.SetActiveTab("tab1"))
	require.NoError(t, s.DeleteElement("element3", false))
	return s
}

func TestDocumentRestoreRoundTrip(t *testing.T) {
	s := populatedStore(t)

	restored, err := Restore(s.Document())
	require.NoError(t, err)

	assert.Equal(t, s.Document(), restored.Document())
	assert.Equal(t, s.TabIDs(), restored.TabIDs())
	assert.Equal(t, s.NextIDs(), restored.NextIDs())
	assert.Equal(t, "tab1", restored.ActiveTabID())
}

func TestDocumentIsDetached(t *testing.T) {
	s := NewStore("Ext")
	doc := s.Document()
	doc.Panels["panel1"].Name = "changed"
	doc.Tabs.ByID["tab1"].Panels = nil

	panel, err := s.Panel("panel1")
	require.NoError(t, err)
	assert.Equal(t, "PANEL NAME", panel.Name)
	require.NoError(t, s.Check())
}

func TestRestoreReconstructsCounters(t *testing.T) {
	s := populatedStore(t)
	doc := s.Document()
	doc.NextIDs = nil
	doc.ActiveTabID = ""

	restored, err := Restore(doc)
	require.NoError(t, err)

	// element3 was deleted, the highest surviving suffix decides
	assert.Equal(t, models.NextIDs{Tab: 3, Panel: 3, Element: s.NextIDs().Element}, restored.NextIDs())
	assert.Equal(t, "tab1", restored.ActiveTabID())
}

func TestRestoreKeepsHigherCounters(t *testing.T) {
	doc := NewStore("Ext").Document()
	doc.NextIDs = &models.NextIDs{Tab: 10, Panel: 1, Element: 50}

	restored, err := Restore(doc)
	require.NoError(t, err)
	assert.Equal(t, models.NextIDs{Tab: 10, Panel: 2, Element: 50}, restored.NextIDs())
}

func TestRestoreUnknownActiveTab(t *testing.T) {
	s := NewStore("Ext")
	second := s.CreateTab()
	doc := s.Document()
	doc.ActiveTabID = "tab99"

	restored, err := Restore(doc)
	require.NoError(t, err)
	assert.Equal(t, "tab1", restored.ActiveTabID())
	assert.NotEqual(t, second, restored.ActiveTabID())
}

func TestRestoreNormalisesChildLists(t *testing.T) {
	s := NewStore("Ext")
	stackID, err := s.CreateElement(models.ElementStack, models.PanelRef("panel1"), models.ElementFields{Name: "Empty"})
	require.NoError(t, err)
	doc := s.Document()
	doc.Elements[stackID].Children = nil
	doc.Elements["element1"].Children = []string{}

	restored, err := Restore(doc)
	require.NoError(t, err)

	stack, err := restored.Element(stackID)
	require.NoError(t, err)
	assert.NotNil(t, stack.Children)
	button, err := restored.Element("element1")
	require.NoError(t, err)
	assert.Nil(t, button.Children)
}

func TestRestoreRejectsBrokenDocuments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *models.Document)
	}{
		{"nil tabs", func(doc *models.Document) { doc.Tabs = models.NewTabSet() }},
		{"no panels", func(doc *models.Document) { doc.Panels = map[string]*models.Panel{} }},
		{"dangling panel", func(doc *models.Document) {
			doc.Tabs.ByID["tab1"].Panels = append(doc.Tabs.ByID["tab1"].Panels, "panel9")
		}},
		{"dangling element", func(doc *models.Document) {
			doc.Panels["panel1"].Elements = append(doc.Panels["panel1"].Elements, "element9")
		}},
		{"double membership", func(doc *models.Document) {
			doc.Panels["panel1"].Elements = append(doc.Panels["panel1"].Elements, "element1")
		}},
		{"wrong back reference", func(doc *models.Document) {
			doc.Elements["element1"].PanelID = "panel7"
		}},
		{"both back references", func(doc *models.Document) {
			doc.Elements["element1"].ParentID = "element5"
		}},
		{"unknown type", func(doc *models.Document) {
			doc.Elements["element1"].Type = "ribbonbutton"
		}},
		{"leaf with children", func(doc *models.Document) {
			doc.Elements["element1"].Children = []string{"element1"}
		}},
		{"overfull stack", func(doc *models.Document) {
			doc.Elements["element1"].Type = models.ElementStack
			doc.Elements["element1"].Children = []string{}
			for _, id := range []string{"element2", "element3", "element4", "element5"} {
				doc.Elements[id] = &models.Element{Type: models.ElementPushButton, Name: id, ParentID: "element1"}
				doc.Elements["element1"].Children = append(doc.Elements["element1"].Children, id)
			}
		}},
		{"pulldown in pulldown", func(doc *models.Document) {
			doc.Elements["element1"].Type = models.ElementPulldown
			doc.Elements["element1"].Children = []string{"element2"}
			doc.Elements["element2"] = &models.Element{Type: models.ElementPulldown, Name: "Inner", ParentID: "element1", Children: []string{}}
		}},
		{"null element", func(doc *models.Document) { doc.Elements["element1"] = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewStore("Ext").Document()
			tt.mutate(doc)

			restored, err := Restore(doc)
			assert.ErrorIs(t, err, ErrInvalidDocument)
			assert.Nil(t, restored)
		})
	}
}

func TestRestoreDropsUnreachableEntities(t *testing.T) {
	s := NewStore("Ext")
	stackID, err := s.CreateStack("panel1")
	require.NoError(t, err)
	pulldownID, err := s.CreateElement(models.ElementPulldown, models.ElementRef(stackID), models.ElementFields{Name: "More"})
	require.NoError(t, err)
	childID, err := s.CreateElement(models.ElementPushButton, models.ElementRef(pulldownID), models.ElementFields{Name: "Inner"})
	require.NoError(t, err)

	// a one-level cascade removes the stack and its direct children but
	// leaves the pulldown's child behind with a dangling parent
	doc := s.Document()
	doc.Panels["panel1"].Elements = []string{"element1"}
	delete(doc.Elements, stackID)
	delete(doc.Elements, pulldownID)
	delete(doc.Elements, "element3")
	delete(doc.Elements, "element4")
	doc.Panels["panel9"] = &models.Panel{Name: "Stray", TabID: "tab7", Elements: []string{}}

	restored, err := Restore(doc)
	require.NoError(t, err)
	require.NoError(t, restored.Check())

	assert.False(t, restored.Exists(KindElement, childID))
	assert.False(t, restored.Exists(KindPanel, "panel9"))
	_, _, elements := restored.Counts()
	assert.Equal(t, 1, elements)
	assert.Equal(t, []string{
		`dropped panel "panel9", no tab lists it`,
		`dropped element "` + childID + `", no panel reaches it`,
	}, restored.Repairs())

	// the counter still covers the dropped id
	assert.Greater(t, restored.NextIDs().Element, 6)
}

func TestRestoreRenamesDuplicateSiblings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *models.Document)
		check  func(t *testing.T, s *Store)
	}{
		{
			name: "panel elements",
			mutate: func(doc *models.Document) {
				doc.Elements["element2"] = &models.Element{Type: models.ElementPushButton, Name: "button 1", PanelID: "panel1"}
				doc.Panels["panel1"].Elements = append(doc.Panels["panel1"].Elements, "element2")
			},
			check: func(t *testing.T, s *Store) {
				e, err := s.Element("element2")
				require.NoError(t, err)
				assert.Equal(t, "button 1 1", e.Name)
			},
		},
		{
			name: "panels in a tab",
			mutate: func(doc *models.Document) {
				doc.Panels["panel2"] = &models.Panel{Name: "Panel Name", TabID: "tab1", Elements: []string{}}
				doc.Tabs.ByID["tab1"].Panels = append(doc.Tabs.ByID["tab1"].Panels, "panel2")
			},
			check: func(t *testing.T, s *Store) {
				p, err := s.Panel("panel2")
				require.NoError(t, err)
				assert.Equal(t, "Panel Name 1", p.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewStore("Ext").Document()
			tt.mutate(doc)

			restored, err := Restore(doc)
			require.NoError(t, err)
			require.NoError(t, restored.Check())
			tt.check(t, restored)
			assert.Len(t, restored.Repairs(), 1)
		})
	}
}

func TestRestoreCleansExtensionName(t *testing.T) {
	doc := NewStore("Ext").Document()
	doc.ExtensionName = "../../evil"

	restored, err := Restore(doc)
	require.NoError(t, err)
	assert.Equal(t, "evil", restored.ExtensionName())
	assert.Len(t, restored.Repairs(), 1)

	doc.ExtensionName = ".."
	restored, err = Restore(doc)
	require.NoError(t, err)
	assert.Equal(t, loadedExtensionName, restored.ExtensionName())
}

func TestRestoreCleanDocumentHasNoRepairs(t *testing.T) {
	restored, err := Restore(populatedStore(t).Document())
	require.NoError(t, err)
	assert.Empty(t, restored.Repairs())
}
