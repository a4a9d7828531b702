package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabSetPreservesOrder(t *testing.T) {
	set := NewTabSet()
	set.Add("tab3", &Tab{Name: "Zeta", Panels: []string{"panel3"}})
	set.Add("tab1", &Tab{Name: "Alpha", Panels: []string{"panel1"}})
	set.Add("tab2", &Tab{Name: "Mid", Panels: []string{}})

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tab3":{"name":"Zeta","panels":["panel3"]},"tab1":{"name":"Alpha","panels":["panel1"]},"tab2":{"name":"Mid","panels":[]}}`, string(data))

	var decoded TabSet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"tab3", "tab1", "tab2"}, decoded.Order)
	assert.Equal(t, "Alpha", decoded.ByID["tab1"].Name)
	assert.Equal(t, 3, decoded.Len())
}

func TestTabSetAddReplaces(t *testing.T) {
	var set TabSet
	set.Add("tab1", &Tab{Name: "First"})
	set.Add("tab1", &Tab{Name: "Second"})

	assert.Equal(t, []string{"tab1"}, set.Order)
	assert.Equal(t, "Second", set.ByID["tab1"].Name)
}

func TestTabSetRejectsNonObject(t *testing.T) {
	var set TabSet
	assert.Error(t, json.Unmarshal([]byte(`["tab1"]`), &set))
}

func TestDocumentJSONKeys(t *testing.T) {
	doc := Document{
		Version:       DocumentVersion,
		ExtensionName: "MyExt",
		Tabs:          NewTabSet(),
		Panels:        map[string]*Panel{"panel1": {Name: "Tools", Elements: []string{"element1"}, TabID: "tab1"}},
		Elements: map[string]*Element{
			"element1": {Type: ElementPushButton, Name: "Run", PanelID: "panel1"},
		},
		ActiveTabID: "tab1",
		NextIDs:     &NextIDs{Tab: 2, Panel: 2, Element: 2},
	}
	doc.Tabs.Add("tab1", &Tab{Name: "Main", Panels: []string{"panel1"}})

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"version", "extensionName", "tabs", "panels", "elements", "activeTabId", "nextIds"} {
		assert.Contains(t, raw, key)
	}
	assert.JSONEq(t, `{"type":"pushbutton","name":"Run","title":"","tooltip":"","panelId":"panel1"}`,
		string(mustField(t, raw["elements"], "element1")))
}

func mustField(t *testing.T, data json.RawMessage, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	return m[key]
}
