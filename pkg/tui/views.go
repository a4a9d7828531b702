package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/layout"
)

const (
	headerHeight  = 1
	detailsHeight = 5
	statusHeight  = 1
	helpHeight    = 4
	inputHeight   = 3
)

var helpRows = [][]string{
	{"↑/↓ nav", "t tab", "p panel", "b button", "s stack", "r rename", "T type", "d delete"},
	{"m move", "a activate", "^s save", "e export", "c copy", "pgup/pgdn scroll", "q quit"},
}

func (a *App) resize() {
	a.preview.Width = max(1, a.paneWidth()-4)
	a.preview.Height = max(1, a.bodyHeight()-3)
	a.input.Width = max(1, a.width-16)
}

func (a *App) paneWidth() int {
	return max(20, a.width/2)
}

func (a *App) bodyHeight() int {
	h := a.height - headerHeight - detailsHeight - statusHeight - helpHeight
	if a.renaming != nil {
		h -= inputHeight
	}
	return max(5, h)
}

func (a *App) dialogWidth() int {
	if a.width == 0 {
		return 60
	}
	return min(60, max(30, a.width-4))
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var body string
	if a.confirm.Active() {
		body = lipgloss.Place(a.width, a.bodyHeight(), lipgloss.Center, lipgloss.Center, a.confirm.View())
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.renderRows(), a.renderPreview())
	}

	parts := []string{a.renderHeader(), body, a.renderDetails()}
	if a.renaming != nil {
		parts = append(parts, InputStyle.Width(a.width-4).Render("Rename: "+a.input.View()))
	}
	parts = append(parts, a.renderStatus(), a.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderHeader() string {
	title := TitleStyle.Render("pyrx") + "  " + HeaderStyle.Render(a.store.ExtensionName())
	if a.dirty {
		title += " " + TypeStyle.Render("●")
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(title)
}

func (a *App) renderRows() string {
	width := a.paneWidth()
	height := a.bodyHeight() - 2
	inner := width - 4

	start := 0
	if a.cursor >= height {
		start = a.cursor - height + 1
	}
	end := min(len(a.rows), start+height)

	var b strings.Builder
	for i := start; i < end; i++ {
		line := cli.TruncateString(a.rowLabel(a.rows[i]), inner)
		switch {
		case i == a.cursor:
			line = SelectedStyle.Width(inner).Render(line)
		case a.rows[i].ID == a.carrying:
			line = CarriedStyle.Render(line)
		default:
			line = NormalStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	style := ActiveBorderStyle
	if a.confirm.Active() {
		style = InactiveBorderStyle
	}
	return style.Width(width - 2).Height(height).Padding(0, 1).Render(b.String())
}

func (a *App) rowLabel(row cli.Entity) string {
	indent := strings.Repeat("  ", row.Depth)
	switch row.Kind {
	case layout.KindTab:
		label := indent + "▸ " + row.Name
		if row.ID == a.store.ActiveTabID() {
			label += " *"
		}
		return label
	case layout.KindPanel:
		return indent + row.Name
	}
	label := indent + row.Name + " [" + string(row.Type) + "]"
	if row.ID == a.carrying {
		label += " (moving)"
	}
	return label
}

func (a *App) renderPreview() string {
	width := max(20, a.width-a.paneWidth())
	heading := HeaderStyle.Render("PREVIEW")
	return InactiveBorderStyle.
		Width(width - 2).
		Height(a.bodyHeight() - 2).
		Padding(0, 1).
		Render(heading + "\n" + a.preview.View())
}

func (a *App) renderDetails() string {
	row, ok := a.selected()
	if !ok {
		return ""
	}
	width := max(10, a.width-4)

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(row.Path))
	b.WriteString("\n")

	switch row.Kind {
	case layout.KindTab:
		if tab, err := a.store.Tab(row.ID); err == nil {
			fmt.Fprintf(&b, "Tab with %d panel(s)", len(tab.Panels))
		}
	case layout.KindPanel:
		if panel, err := a.store.Panel(row.ID); err == nil {
			fmt.Fprintf(&b, "Panel with %d element(s)", len(panel.Elements))
		}
	default:
		if e, err := a.store.Element(row.ID); err == nil {
			b.WriteString(TypeStyle.Render(string(e.Type)))
			if e.Title != "" {
				b.WriteString("  " + e.Title)
			}
			if e.Tooltip != "" {
				b.WriteString("\n")
				b.WriteString(DescriptionStyle.Render(wordwrap.String(e.Tooltip, width)))
			}
		}
	}

	lines := strings.Split(b.String(), "\n")
	if len(lines) > detailsHeight {
		lines = lines[:detailsHeight]
	}
	return lipgloss.NewStyle().PaddingLeft(1).Height(detailsHeight).Render(strings.Join(lines, "\n"))
}

func (a *App) renderStatus() string {
	switch {
	case a.exporting:
		return StatusBarStyle.Render(a.spinner.View() + " Exporting...")
	case a.status == "":
		return ""
	case a.statusErr:
		return ErrorStyle.PaddingLeft(1).Render(a.status)
	}
	return StatusBarStyle.Render(a.status)
}

func (a *App) renderHelp() string {
	lines := make([]string, len(helpRows))
	for i, row := range helpRows {
		lines[i] = strings.Join(row, "  ")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorInactive)).
		Foreground(lipgloss.Color(ColorDim)).
		Width(max(10, a.width-4)).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
