package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/files"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

// CommandContext manages the layout file and common command context
type CommandContext struct {
	LayoutPath string
	Settings   *models.Settings
	Logger     *slog.Logger
	store      *layout.Store
}

// NewCommandContext reads settings and picks the layout file. layoutPath
// overrides the configured one when set.
func NewCommandContext(layoutPath string) (*CommandContext, error) {
	settings, err := files.ReadSettings()
	if err != nil {
		return nil, err
	}
	if layoutPath == "" {
		layoutPath = settings.Layout.Path
	}
	return &CommandContext{
		LayoutPath: layoutPath,
		Settings:   settings,
		Logger:     slog.New(slog.DiscardHandler),
	}, nil
}

// SetupLogger replaces the discard logger with one built from settings.
// verbose forces debug level.
func (c *CommandContext) SetupLogger(verbose bool, w io.Writer) error {
	level := c.Settings.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := NewLogger(level, c.Settings.Log.Format, w)
	if err != nil {
		return err
	}
	c.Logger = logger
	return nil
}

// ValidateLayout ensures the layout file exists
func (c *CommandContext) ValidateLayout() error {
	if !files.LayoutExists(c.LayoutPath) {
		return fmt.Errorf("no layout found at %s. Run 'pyrx init' first", c.LayoutPath)
	}
	return nil
}

// Store loads the layout on first use
func (c *CommandContext) Store() (*layout.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	if err := c.ValidateLayout(); err != nil {
		return nil, err
	}
	store, err := files.LoadLayout(c.LayoutPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("layout loaded", "path", c.LayoutPath, "extension", store.ExtensionName())
	for _, repair := range store.Repairs() {
		c.Logger.Warn("layout repaired on load", "path", c.LayoutPath, "change", repair)
	}
	c.store = store
	return store, nil
}

// Save writes the current store back to the layout file
func (c *CommandContext) Save() error {
	if c.store == nil {
		return errors.New("no layout loaded")
	}
	if err := files.SaveLayout(c.LayoutPath, c.store); err != nil {
		return err
	}
	c.Logger.Debug("layout saved", "path", c.LayoutPath)
	return nil
}

// Mutate applies fn to the loaded store and saves it when fn succeeds. The
// file is left alone when fn fails.
func (c *CommandContext) Mutate(fn func(*layout.Store, *Resolver) error) error {
	store, err := c.Store()
	if err != nil {
		return err
	}
	if err := fn(store, NewResolver(store)); err != nil {
		return err
	}
	return c.Save()
}

// EditorLauncher handles all editor-related operations
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher
func NewEditorLauncher() *EditorLauncher {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// OpenFile opens a file in the configured editor
func (e *EditorLauncher) OpenFile(filepath string) error {
	parts := strings.Fields(e.DefaultEditor)

	var editorCmd *exec.Cmd
	if len(parts) > 1 {
		editorCmd = exec.Command(parts[0], append(parts[1:], filepath)...)
	} else {
		editorCmd = exec.Command(e.DefaultEditor, filepath)
	}

	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}

// EditText opens content in the editor and returns what was saved
func (e *EditorLauncher) EditText(pattern, content string) (string, error) {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := tmpFile.Name()
	defer os.Remove(name)

	_, err = tmpFile.WriteString(content)
	if closeErr := tmpFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := e.OpenFile(name); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}
