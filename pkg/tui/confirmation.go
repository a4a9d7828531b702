package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string
	Message     string
	Warning     string // shown in orange below the message
	Destructive bool   // Yes is red, No is green
	Width       int
}

// ConfirmationModel is a yes/no dialog. The answer is handed to the
// callbacks so the caller can retry its operation as confirmed.
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the dialog
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation. Any key other than
// y, n or esc is ignored while the dialog is open.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

// View renders the dialog
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	width := m.config.Width
	if width == 0 {
		width = 60
	}
	contentWidth := width - 4
	center := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center)

	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(center.Render(TitleStyle.Render(m.config.Title)))
		b.WriteString("\n\n")
	}
	b.WriteString(center.Render(m.config.Message))
	b.WriteString("\n")
	if m.config.Warning != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(TypeStyle.Render(m.config.Warning)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center.Render(formatConfirmOptions(m.config.Destructive)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(1, 1).
		Width(width).
		Render(b.String())
}

func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Bold(true)
	no := lipgloss.NewStyle().Bold(true)
	if destructive {
		yes = yes.Foreground(lipgloss.Color(ColorDanger))
		no = no.Foreground(lipgloss.Color(ColorSuccess))
	}
	return fmt.Sprintf("[%s] yes   [%s] no", yes.Render("y"), no.Render("n"))
}
