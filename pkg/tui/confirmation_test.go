package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		confirmed bool
		cancelled bool
		stillOpen bool
	}{
		{name: "yes", key: "y", confirmed: true},
		{name: "enter confirms", key: "enter", confirmed: true},
		{name: "no", key: "n", cancelled: true},
		{name: "esc cancels", key: "esc", cancelled: true},
		{name: "other keys ignored", key: "x", stillOpen: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var confirmed, cancelled bool
			m := NewConfirmation()
			m.Show(ConfirmationConfig{Message: "Delete it?"},
				func() tea.Cmd { confirmed = true; return nil },
				func() tea.Cmd { cancelled = true; return nil })

			m.Update(keyMsg(tt.key))

			assert.Equal(t, tt.confirmed, confirmed)
			assert.Equal(t, tt.cancelled, cancelled)
			assert.Equal(t, tt.stillOpen, m.Active())
		})
	}
}

func TestConfirmationView(t *testing.T) {
	m := NewConfirmation()
	assert.Empty(t, m.View())

	m.Show(ConfirmationConfig{Title: "Delete tab", Message: "Are you sure?", Warning: "deletes 2 panels"}, nil, nil)
	view := m.View()
	assert.Contains(t, view, "Delete tab")
	assert.Contains(t, view, "Are you sure?")
	assert.Contains(t, view, "deletes 2 panels")
	assert.Contains(t, view, "yes")
}
