// Package composer projects a layout into the pyRevit extension folder tree
// and renders that tree as text.
package composer

import (
	"fmt"
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

// Folder suffixes of the pyRevit bundle naming convention
const (
	ExtensionSuffix = ".extension"
	TabSuffix       = ".tab"
	PanelSuffix     = ".panel"

	BundleFile = "bundle.yaml"
	ScriptFile = "script.py"
)

// ComposeExtension builds the folder tree for the whole store. rootName
// names the extension folder and falls back to the store's extension name.
// The store is only read.
func ComposeExtension(store *layout.Store, rootName string) (*models.Node, error) {
	if store == nil {
		return nil, fmt.Errorf("cannot compose extension: nil store provided")
	}
	if rootName == "" {
		rootName = store.ExtensionName()
	}
	if err := layout.ValidExtensionName(rootName); err != nil {
		return nil, fmt.Errorf("invalid root folder name: %w", err)
	}
	rootName = strings.TrimSpace(rootName)

	root := models.Folder(rootName + ExtensionSuffix)
	for _, tabID := range store.TabIDs() {
		tab, err := store.Tab(tabID)
		if err != nil {
			return nil, err
		}
		tabFolder := models.Folder(Sanitize(tab.Name) + TabSuffix)

		for _, panelID := range tab.Panels {
			panel, err := store.Panel(panelID)
			if err != nil {
				return nil, fmt.Errorf("tab %q: %w", tab.Name, err)
			}
			panelFolder := models.Folder(Sanitize(panel.Name) + PanelSuffix)

			for _, elementID := range panel.Elements {
				bundle, err := composeElement(store, elementID)
				if err != nil {
					return nil, fmt.Errorf("panel %q: %w", panel.Name, err)
				}
				panelFolder.Children = append(panelFolder.Children, bundle)
			}
			tabFolder.Children = append(tabFolder.Children, panelFolder)
		}
		root.Children = append(root.Children, tabFolder)
	}
	return root, nil
}

// ComposeElement builds the bundle folder of a single element, children
// included
func ComposeElement(store *layout.Store, elementID string) (*models.Node, error) {
	return composeElement(store, elementID)
}

func composeElement(store *layout.Store, elementID string) (*models.Node, error) {
	e, err := store.Element(elementID)
	if err != nil {
		return nil, err
	}

	folder := models.Folder(BundleName(e.Name, e.Type))
	bundleYAML, err := renderBundle(&e)
	if err != nil {
		return nil, err
	}
	folder.Children = append(folder.Children, models.TextFile(BundleFile, bundleYAML))

	switch e.Type {
	case models.ElementPushButton, models.ElementSmartButton, models.ElementToggleButton,
		models.ElementSplitButton, models.ElementPulldown:
		script, err := renderScript(&e)
		if err != nil {
			return nil, err
		}
		folder.Children = append(folder.Children, models.TextFile(ScriptFile, script))
		folder.Children = append(folder.Children, iconFiles(&e)...)
	case models.ElementLinkButton, models.ElementInvokeButton:
		folder.Children = append(folder.Children, iconFiles(&e)...)
	case models.ElementStack:
		// grouping only, no script or icons
	default:
		return nil, fmt.Errorf("element %q has unknown type %q", e.Name, e.Type)
	}

	for _, childID := range e.Children {
		child, err := composeElement(store, childID)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", e.Type, e.Name, err)
		}
		folder.Children = append(folder.Children, child)
	}
	return folder, nil
}

func iconFiles(e *models.Element) []*models.Node {
	return []*models.Node{
		models.IconFileNode(models.IconFile, e.IconData),
		models.IconFileNode(models.DarkIconFile, e.IconData),
	}
}

// BundleName returns the folder name of an element bundle
func BundleName(name string, t models.ElementType) string {
	return Sanitize(name) + "." + string(t)
}
