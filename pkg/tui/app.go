// Package tui is the terminal layout editor.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/composer"
	"github.com/pyrx/pyrx-cli/pkg/export"
	"github.com/pyrx/pyrx-cli/pkg/layout"
)

// Options configure the editor
type Options struct {
	// LayoutPath is where ctrl+s writes the layout
	LayoutPath string
	ExportDir  string
	// Exporter is shared so a running export blocks a second one; nil means
	// one without shared icons
	Exporter *export.Exporter
	Logger   *slog.Logger
}

// StatusMsg sets the status line
type StatusMsg string

type exportDoneMsg struct {
	path    string
	summary export.Summary
	err     error
}

// App is the editor model. It owns the store for the lifetime of the
// program; every change goes through the layout package so the same rules
// apply as on the command line.
type App struct {
	store  *layout.Store
	opts   Options
	logger *slog.Logger

	rows     []cli.Entity
	cursor   int
	carrying string // element picked up with m

	previewText string
	preview     viewport.Model
	input       textinput.Model
	renaming    *cli.Entity
	confirm     *ConfirmationModel
	spinner     spinner.Model
	exporting   bool

	dirty     bool
	status    string
	statusErr bool

	width  int
	height int
}

// NewApp creates the editor over store
func NewApp(store *layout.Store, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Exporter == nil {
		opts.Exporter = export.New(nil, opts.Logger)
	}

	input := textinput.New()
	input.Placeholder = "Name"
	input.CharLimit = 80

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	a := &App{
		store:   store,
		opts:    opts,
		logger:  opts.Logger,
		preview: viewport.New(0, 0),
		input:   input,
		confirm: NewConfirmation(),
		spinner: s,
	}
	a.refresh("")
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

// Dirty reports whether there are unsaved changes
func (a *App) Dirty() bool {
	return a.dirty
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case StatusMsg:
		a.setStatus(string(msg))
		return a, nil

	case exportDoneMsg:
		a.exporting = false
		if msg.err != nil {
			a.logger.Error("export failed", "err", msg.err)
			a.setError(msg.err)
			return a, nil
		}
		a.setStatus("✓ Exported " + msg.path + " (" + cli.FormatBytes(msg.summary.Bytes) + ")")
		return a, nil

	case spinner.TickMsg:
		if !a.exporting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.confirm.Active() {
			return a, a.confirm.Update(msg)
		}
		if a.renaming != nil {
			return a, a.updateRename(msg)
		}
		return a, a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return a.quit()
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "home", "g":
		a.cursor = 0
	case "end", "G":
		a.cursor = len(a.rows) - 1
	case "pgup", "pgdown":
		var cmd tea.Cmd
		a.preview, cmd = a.preview.Update(msg)
		return cmd
	case "t":
		a.addTab()
	case "p":
		a.addPanel()
	case "b":
		a.addButton()
	case "s":
		a.addStack()
	case "r", "f2":
		return a.startRename()
	case "T":
		a.cycleType()
	case "d", "delete":
		a.deleteSelected()
	case "a":
		a.activateTab()
	case "m":
		a.pickOrDrop()
	case "esc":
		if a.carrying != "" {
			a.carrying = ""
			a.setStatus("Move cancelled")
		}
	case "ctrl+s":
		a.save()
	case "e":
		return a.startExport()
	case "c":
		a.copyPreview()
	}
	return nil
}

func (a *App) quit() tea.Cmd {
	if !a.dirty {
		return tea.Quit
	}
	a.confirm.Show(ConfirmationConfig{
		Title:       "Unsaved changes",
		Message:     "Quit without saving?",
		Warning:     "Press ctrl+s first to keep your changes",
		Destructive: true,
		Width:       a.dialogWidth(),
	}, func() tea.Cmd {
		return tea.Quit
	}, nil)
	return nil
}

func (a *App) moveCursor(delta int) {
	a.cursor = max(0, min(len(a.rows)-1, a.cursor+delta))
}

// selected returns the row under the cursor
func (a *App) selected() (cli.Entity, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return cli.Entity{}, false
	}
	return a.rows[a.cursor], true
}

// refresh rebuilds the rows and the preview from the store and moves the
// cursor to selectID when it is set
func (a *App) refresh(selectID string) {
	a.rows = cli.NewResolver(a.store).Entities()
	if selectID != "" {
		for i, row := range a.rows {
			if row.ID == selectID {
				a.cursor = i
				break
			}
		}
	}
	a.cursor = max(0, min(len(a.rows)-1, a.cursor))

	root, err := composer.ComposeExtension(a.store, "")
	if err != nil {
		a.logger.Error("projection failed", "err", err)
		a.previewText = "Preview unavailable: " + err.Error()
	} else {
		a.previewText = composer.FormatTree(root)
	}
	a.preview.SetContent(a.previewText)
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = "✗ " + err.Error()
	a.statusErr = true
}
