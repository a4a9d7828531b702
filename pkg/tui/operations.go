package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/composer"
	"github.com/pyrx/pyrx-cli/pkg/files"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

// apply runs op unconfirmed first. When the store asks for confirmation the
// dialog opens and op runs again with the answer. op returns the id to
// select afterwards.
func (a *App) apply(what string, op func(confirmed bool) (string, error)) {
	id, err := op(false)
	if errors.Is(err, layout.ErrConfirmationRequired) {
		a.confirm.Show(ConfirmationConfig{
			Title:       what,
			Message:     "Are you sure?",
			Warning:     strings.TrimPrefix(err.Error(), layout.ErrConfirmationRequired.Error()+": "),
			Destructive: true,
			Width:       a.dialogWidth(),
		}, func() tea.Cmd {
			id, err := op(true)
			a.finish(what, id, err)
			return nil
		}, func() tea.Cmd {
			a.setStatus(what + " cancelled")
			return nil
		})
		return
	}
	a.finish(what, id, err)
}

func (a *App) finish(what, selectID string, err error) {
	if err != nil {
		a.logger.Debug("operation rejected", "op", what, "err", err)
		a.setError(err)
		return
	}
	a.dirty = true
	// the carried element may have gone with its container
	if a.carrying != "" && !a.store.Exists(layout.KindElement, a.carrying) {
		a.carrying = ""
	}
	a.refresh(selectID)
	a.setStatus("✓ " + what)
}

func (a *App) addTab() {
	a.apply("Add tab", func(bool) (string, error) {
		return a.store.CreateTab(), nil
	})
}

func (a *App) addPanel() {
	row, ok := a.selected()
	if !ok {
		return
	}
	a.apply("Add panel", func(bool) (string, error) {
		tabID, err := a.tabOf(row)
		if err != nil {
			return "", err
		}
		return a.store.CreatePanel(tabID)
	})
}

func (a *App) addButton() {
	row, ok := a.selected()
	if !ok {
		return
	}
	a.apply("Add button", func(bool) (string, error) {
		ref, _, err := a.containerAt(row)
		if err != nil {
			return "", err
		}
		return a.store.CreateElement(models.ElementPushButton, ref, models.ElementFields{})
	})
}

func (a *App) addStack() {
	row, ok := a.selected()
	if !ok {
		return
	}
	a.apply("Add stack", func(bool) (string, error) {
		panelID, err := a.panelOf(row)
		if err != nil {
			return "", err
		}
		return a.store.CreateStack(panelID)
	})
}

func (a *App) startRename() tea.Cmd {
	row, ok := a.selected()
	if !ok {
		return nil
	}
	a.renaming = &row
	a.input.SetValue(row.Name)
	a.input.CursorEnd()
	return a.input.Focus()
}

func (a *App) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		row := *a.renaming
		name := strings.TrimSpace(a.input.Value())
		a.endRename()
		a.apply(fmt.Sprintf("Rename %s", row.Kind), func(bool) (string, error) {
			return row.ID, a.store.Rename(row.Kind, row.ID, name)
		})
		return nil
	case "esc":
		a.endRename()
		a.setStatus("Rename cancelled")
		return nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

func (a *App) endRename() {
	a.renaming = nil
	a.input.Blur()
	a.input.SetValue("")
}

// cycleType switches the element to the next type it can take in its
// container
func (a *App) cycleType() {
	row, ok := a.selected()
	if !ok || row.Kind != layout.KindElement {
		a.setStatus("Only elements have a type")
		return
	}
	e, err := a.store.Element(row.ID)
	if err != nil {
		a.setError(err)
		return
	}

	start := slices.Index(models.ElementTypes, e.Type)
	var candidates []models.ElementType
	for i := 1; i < len(models.ElementTypes); i++ {
		candidates = append(candidates, models.ElementTypes[(start+i)%len(models.ElementTypes)])
	}

	a.apply("Change type", func(confirmed bool) (string, error) {
		var err error
		for _, t := range candidates {
			err = a.store.EditElement(row.ID, e.Fields(), t, confirmed)
			if !errors.Is(err, layout.ErrUnsupportedNesting) && !errors.Is(err, layout.ErrCapacityExceeded) {
				break
			}
		}
		return row.ID, err
	})
}

func (a *App) deleteSelected() {
	row, ok := a.selected()
	if !ok {
		return
	}
	what := fmt.Sprintf("Delete %s %q", row.Kind, row.Name)
	a.apply(what, func(confirmed bool) (string, error) {
		switch row.Kind {
		case layout.KindTab:
			return "", a.store.DeleteTab(row.ID, confirmed)
		case layout.KindPanel:
			return "", a.store.DeletePanel(row.ID, confirmed)
		}
		return "", a.store.DeleteElement(row.ID, confirmed)
	})
}

func (a *App) activateTab() {
	row, ok := a.selected()
	if !ok {
		return
	}
	a.apply("Activate tab", func(bool) (string, error) {
		tabID, err := a.tabOf(row)
		if err != nil {
			return "", err
		}
		return "", a.store.SetActiveTab(tabID)
	})
}

// pickOrDrop picks up the selected element, or drops the carried one at the
// selected row. Dropping on a panel or container appends; dropping on any
// other element inserts before it.
func (a *App) pickOrDrop() {
	row, ok := a.selected()
	if !ok {
		return
	}

	if a.carrying == "" {
		if row.Kind != layout.KindElement {
			a.setStatus("Only elements can be moved")
			return
		}
		a.carrying = row.ID
		a.setStatus(fmt.Sprintf("Moving %q: select a target and press m, esc to cancel", row.Name))
		return
	}

	id := a.carrying
	if row.ID == id {
		a.carrying = ""
		a.setStatus("Move cancelled")
		return
	}
	ref, index, err := a.containerAt(row)
	if err != nil {
		a.setError(err)
		return
	}
	// the carried element leaves its slot before it is inserted again
	if from, err := a.store.ContainerOf(id); err == nil && from == ref && index > 0 {
		if siblings, err := a.store.Children(ref); err == nil && slices.Index(siblings, id) < index {
			index--
		}
	}
	a.apply("Move element", func(bool) (string, error) {
		return id, a.store.MoveElement(id, ref, index)
	})
	if !a.statusErr {
		a.carrying = ""
	}
}

func (a *App) save() {
	if a.opts.LayoutPath == "" {
		a.setError(errors.New("no layout file to save to"))
		return
	}
	if err := files.SaveLayout(a.opts.LayoutPath, a.store); err != nil {
		a.setError(err)
		return
	}
	a.dirty = false
	a.setStatus("✓ Saved " + a.opts.LayoutPath)
}

func (a *App) startExport() tea.Cmd {
	if a.exporting || a.opts.Exporter.Running() {
		a.setStatus("An export is already running")
		return nil
	}
	root, err := composer.ComposeExtension(a.store, "")
	if err != nil {
		a.setError(err)
		return nil
	}
	a.exporting = true
	return tea.Batch(a.spinner.Tick, a.exportArchive(root))
}

// exportArchive writes the archive in the background. root is detached
// from the store, so edits made meanwhile do not race with it.
func (a *App) exportArchive(root *models.Node) tea.Cmd {
	exporter := a.opts.Exporter
	dir := a.opts.ExportDir
	return func() tea.Msg {
		path, summary, err := exporter.ExportFile(context.Background(), dir, root)
		return exportDoneMsg{path: path, summary: summary, err: err}
	}
}

func (a *App) copyPreview() {
	if err := clipboard.WriteAll(a.previewText); err != nil {
		a.setError(fmt.Errorf("failed to copy to clipboard: %w", err))
		return
	}
	a.setStatus("✓ Preview → clipboard")
}

// tabOf returns the tab that holds row
func (a *App) tabOf(row cli.Entity) (string, error) {
	if row.Kind == layout.KindTab {
		return row.ID, nil
	}
	panelID, err := a.panelOf(row)
	if err != nil {
		return "", err
	}
	p, err := a.store.Panel(panelID)
	if err != nil {
		return "", err
	}
	return p.TabID, nil
}

// panelOf returns the panel that holds row. A tab resolves to its first
// panel.
func (a *App) panelOf(row cli.Entity) (string, error) {
	switch row.Kind {
	case layout.KindTab:
		tab, err := a.store.Tab(row.ID)
		if err != nil {
			return "", err
		}
		if len(tab.Panels) == 0 {
			return "", fmt.Errorf("%w: tab %q has no panels", layout.ErrNotFound, tab.Name)
		}
		return tab.Panels[0], nil
	case layout.KindPanel:
		return row.ID, nil
	}

	id := row.ID
	for {
		ref, err := a.store.ContainerOf(id)
		if err != nil {
			return "", err
		}
		if ref.Kind == models.ContainerPanel {
			return ref.ID, nil
		}
		id = ref.ID
	}
}

// containerAt returns where an element placed at row goes. Panels and
// containers take it at the end; a leaf element's container takes it at
// the leaf's position.
func (a *App) containerAt(row cli.Entity) (models.ContainerRef, int, error) {
	if row.Kind == layout.KindTab {
		panelID, err := a.panelOf(row)
		return models.PanelRef(panelID), -1, err
	}
	if ref, err := row.ContainerRef(); err == nil {
		return ref, -1, nil
	}

	ref, err := a.store.ContainerOf(row.ID)
	if err != nil {
		return models.ContainerRef{}, 0, err
	}
	siblings, err := a.store.Children(ref)
	if err != nil {
		return models.ContainerRef{}, 0, err
	}
	return ref, slices.Index(siblings, row.ID), nil
}
