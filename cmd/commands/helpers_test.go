package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/pyrx/pyrx-cli/pkg/files"
	"github.com/pyrx/pyrx-cli/pkg/layout"
)

const testLayoutFile = "layout.json"

// newTestRoot mirrors the real root command: global flags and their
// validation, plus every layout subcommand
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "pyrx",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ApplyGlobalFlags(cmd)
		},
	}
	AddGlobalFlags(root)
	root.AddCommand(
		NewInitCommand(),
		NewVersionCommand(),
		NewListCommand(),
		NewShowCommand(),
		NewTreeCommand(),
		NewTabCommand(),
		NewPanelCommand(),
		NewStackCommand(),
		NewAddCommand(),
		NewEditCommand(),
		NewMoveCommand(),
		NewRenameCommand(),
		NewDeleteCommand(),
		NewLoadCommand(),
		NewSaveCommand(),
		NewExportCommand(),
		NewUsageCommand(),
		NewSearchCommand(),
		NewSetCommand(),
		NewClipboardCommand(),
		NewExamplesCommand(),
	)
	return root
}

// run executes one command line and returns what it wrote to its output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newTestRoot()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// mustRun is run for steps that are expected to succeed
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "pyrx %v", args)
	return out
}

// setupWorkspace moves into an empty directory with its own settings file
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(files.ConfigEnvVar, filepath.Join(dir, "settings.yaml"))
	return dir
}

// setupLayout is setupWorkspace plus a fresh layout for "Ext"
func setupLayout(t *testing.T) string {
	t.Helper()
	dir := setupWorkspace(t)
	require.NoError(t, files.SaveLayout(testLayoutFile, layout.NewStore("Ext")))
	return dir
}

func loadTestLayout(t *testing.T) *layout.Store {
	t.Helper()
	store, err := files.LoadLayout(testLayoutFile)
	require.NoError(t, err)
	require.NoError(t, store.Check())
	return store
}
