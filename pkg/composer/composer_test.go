package composer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

func runScriptStore(t *testing.T) *layout.Store {
	t.Helper()
	s := layout.NewStore("MyExt")
	require.NoError(t, s.Rename(layout.KindTab, "tab1", "Main"))
	require.NoError(t, s.Rename(layout.KindPanel, "panel1", "Tools"))
	require.NoError(t, s.Rename(layout.KindElement, "element1", "Run Script"))
	return s
}

func childNames(n *models.Node) []string {
	var names []string
	for _, c := range n.Children {
		names = append(names, c.Name)
	}
	return names
}

func TestComposeExtensionRunScript(t *testing.T) {
	s := runScriptStore(t)

	root, err := ComposeExtension(s, "")
	require.NoError(t, err)

	assert.Equal(t, "MyExt.extension", root.Name)
	bundle := root.Find("main.tab", "tools.panel", "run_script.pushbutton")
	require.NotNil(t, bundle)
	assert.Equal(t, []string{"bundle.yaml", "script.py", "icon.png", "icon.dark.png"}, childNames(bundle))

	yamlFile := bundle.Child(BundleFile)
	assert.Contains(t, yamlFile.Content, "title: Run Script")
	assert.NotContains(t, yamlFile.Content, "tooltip")

	script := bundle.Child(ScriptFile)
	assert.True(t, strings.HasPrefix(script.Content, "# -*- coding: utf-8 -*-\n"))
	assert.Contains(t, script.Content, `__title__ = "Run Script"`)
	assert.Contains(t, script.Content, `__author__ = "pyRevit Extension Builder"`)

	icon := bundle.Child(models.IconFile)
	require.NotNil(t, icon.Icon)
	assert.Empty(t, icon.Icon.DataURI)
	assert.Equal(t, models.IconFile, icon.Icon.Asset)
}

func TestComposeExtensionRootName(t *testing.T) {
	s := runScriptStore(t)

	root, err := ComposeExtension(s, "Other Name")
	require.NoError(t, err)
	assert.Equal(t, "Other Name.extension", root.Name)

	_, err = ComposeExtension(nil, "x")
	assert.Error(t, err)

	for _, name := range []string{"../evil", `dir\evil`, ".."} {
		_, err := ComposeExtension(s, name)
		assert.ErrorIs(t, err, layout.ErrInvalidName, name)
	}
}

func TestComposeExtensionBundleContents(t *testing.T) {
	s := runScriptStore(t)
	panel := models.PanelRef("panel1")

	stackID, err := s.CreateStack("panel1")
	require.NoError(t, err)
	pulldownID, err := s.CreateElement(models.ElementPulldown, models.ElementRef(stackID),
		models.ElementFields{Name: "More Tools", Tooltip: "Extra commands"})
	require.NoError(t, err)
	_, err = s.CreateElement(models.ElementToggleButton, models.ElementRef(pulldownID), models.ElementFields{Name: "Switch"})
	require.NoError(t, err)
	_, err = s.CreateElement(models.ElementLinkButton, panel, models.ElementFields{Name: "Docs", URL: "https://pyrevitlabs.io"})
	require.NoError(t, err)
	_, err = s.CreateElement(models.ElementInvokeButton, panel, models.ElementFields{Name: "Invoke It", Command: "MyAddin.Command"})
	require.NoError(t, err)
	_, err = s.CreateElement(models.ElementSmartButton, panel, models.ElementFields{Name: "Smart", Code: "print('custom')"})
	require.NoError(t, err)

	root, err := ComposeExtension(s, "")
	require.NoError(t, err)
	panelFolder := root.Find("main.tab", "tools.panel")
	require.NotNil(t, panelFolder)
	assert.Equal(t, []string{
		"run_script.pushbutton",
		"new_stack.stack",
		"docs.linkbutton",
		"invoke_it.invokebutton",
		"smart.smartbutton",
	}, childNames(panelFolder))

	t.Run("stack has no script or icons", func(t *testing.T) {
		stack := panelFolder.Child("new_stack.stack")
		assert.Equal(t, []string{"bundle.yaml", "button_1.pushbutton", "button_2.pushbutton", "more_tools.pulldown"}, childNames(stack))
	})

	t.Run("pulldown inside stack", func(t *testing.T) {
		pulldown := panelFolder.Find("new_stack.stack", "more_tools.pulldown")
		require.NotNil(t, pulldown)
		assert.Equal(t, []string{"bundle.yaml", "script.py", "icon.png", "icon.dark.png", "switch.togglebutton"}, childNames(pulldown))

		var desc map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(pulldown.Child(BundleFile).Content), &desc))
		assert.Equal(t, map[string]any{"title": "More Tools", "tooltip": "Extra commands", "pulldown": true}, desc)
	})

	t.Run("link button", func(t *testing.T) {
		link := panelFolder.Child("docs.linkbutton")
		assert.Equal(t, []string{"bundle.yaml", "icon.png", "icon.dark.png"}, childNames(link))
		assert.Contains(t, link.Child(BundleFile).Content, "hyperlink: https://pyrevitlabs.io")
	})

	t.Run("invoke button", func(t *testing.T) {
		invoke := panelFolder.Child("invoke_it.invokebutton")
		assert.Equal(t, []string{"bundle.yaml", "icon.png", "icon.dark.png"}, childNames(invoke))
		assert.Contains(t, invoke.Child(BundleFile).Content, "invoke: MyAddin.Command")
	})

	t.Run("custom script wins", func(t *testing.T) {
		smart := panelFolder.Child("smart.smartbutton")
		assert.Equal(t, "print('custom')", smart.Child(ScriptFile).Content)
	})
}

func TestComposeExtensionTabOrder(t *testing.T) {
	s := runScriptStore(t)
	second := s.CreateTab()
	require.NoError(t, s.Rename(layout.KindTab, second, "Aardvark"))

	root, err := ComposeExtension(s, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"main.tab", "aardvark.tab"}, childNames(root))
}

func TestComposeExtensionIconData(t *testing.T) {
	s := runScriptStore(t)
	uri := "data:image/png;base64,AAAA"
	require.NoError(t, s.EditElement("element1", models.ElementFields{IconData: uri}, "", false))

	root, err := ComposeExtension(s, "")
	require.NoError(t, err)
	bundle := root.Find("main.tab", "tools.panel", "run_script.pushbutton")
	assert.Equal(t, uri, bundle.Child(models.IconFile).Icon.DataURI)
	assert.Equal(t, uri, bundle.Child(models.DarkIconFile).Icon.DataURI)
	assert.Equal(t, models.DarkIconFile, bundle.Child(models.DarkIconFile).Icon.Asset)
}

func TestComposeIsPure(t *testing.T) {
	s := runScriptStore(t)
	before := s.Document()

	first, err := ComposeExtension(s, "")
	require.NoError(t, err)
	second, err := ComposeExtension(s, "")
	require.NoError(t, err)

	assert.Equal(t, FormatTree(first), FormatTree(second))
	assert.Equal(t, before, s.Document())
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Run Script", "run_script"},
		{"  Multiple   Spaces ", "_multiple_spaces_"},
		{"Tab\tName\nHere", "tab_name_here"},
		{"Über-Tool #1!", "ber-tool_1"},
		{"already_clean-name", "already_clean-name"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestDefaultScript(t *testing.T) {
	for _, typ := range models.ElementTypes {
		t.Run(string(typ), func(t *testing.T) {
			script, err := DefaultScript(`Say "Hi"`, "Greets", typ)
			if !typ.IsExecutable() {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, script, `__title__ = "Say \"Hi\""`)
			assert.Contains(t, script, `__doc__ = "Greets"`)
		})
	}
}

func TestDefaultScriptEscapesText(t *testing.T) {
	tests := []struct {
		name     string
		elName   string
		tooltip  string
		typ      models.ElementType
		contains []string
	}{
		{
			name:    "newlines and quotes",
			elName:  "Line\nBreak",
			tooltip: "He said \"go\"\nnow",
			typ:     models.ElementPushButton,
			contains: []string{
				`"""Line Break button script.`,
				`__title__ = "Line\nBreak"`,
				`__doc__ = "He said \"go\"\nnow"`,
				`output.print_md("# Line\nBreak Command")`,
			},
		},
		{
			name:    "triple quotes and backslash",
			elName:  `End """ \`,
			typ:     models.ElementSmartButton,
			contains: []string{
				`"""End \"\"\" \\ button script.`,
				`__title__ = "End \"\"\" \\"`,
			},
		},
		{
			name:     "format braces",
			elName:   "Mode {x}",
			typ:      models.ElementToggleButton,
			contains: []string{`output.print_md("# Mode {x} is now " + ("ON" if enabled else "OFF"))`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := DefaultScript(tt.elName, tt.tooltip, tt.typ)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, script, want)
			}
			assert.NotContains(t, script, "__title__ = \"Line\n")
		})
	}
}
