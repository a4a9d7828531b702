package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyrx/pyrx-cli/pkg/layout"
)

func withInput(t *testing.T, input string) {
	t.Helper()
	prev := confirmInput
	confirmInput = strings.NewReader(input)
	t.Cleanup(func() { confirmInput = prev })
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"full yes", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default no", "\n", false, false},
		{"empty takes default yes", "\n", true, true},
		{"no trailing newline", "yes", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withInput(t, tt.input)
			got, err := Confirm("Continue?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithConfirmation(t *testing.T) {
	needsConfirm := func(calls *[]bool) func(bool) error {
		return func(confirmed bool) error {
			*calls = append(*calls, confirmed)
			if !confirmed {
				return layout.ErrConfirmationRequired
			}
			return nil
		}
	}

	t.Run("no confirmation needed", func(t *testing.T) {
		var calls []bool
		err := WithConfirmation("Delete?", func(confirmed bool) error {
			calls = append(calls, confirmed)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []bool{false}, calls)
	})

	t.Run("accepted", func(t *testing.T) {
		withInput(t, "y\n")
		var calls []bool
		require.NoError(t, WithConfirmation("Delete?", needsConfirm(&calls)))
		assert.Equal(t, []bool{false, true}, calls)
	})

	t.Run("declined", func(t *testing.T) {
		withInput(t, "n\n")
		var calls []bool
		err := WithConfirmation("Delete?", needsConfirm(&calls))
		assert.ErrorIs(t, err, ErrCancelled)
		assert.Equal(t, []bool{false}, calls)
	})

	t.Run("skipped by --yes", func(t *testing.T) {
		SetGlobalFlags(true, true, true)
		t.Cleanup(func() { SetGlobalFlags(false, false, false) })
		withInput(t, "")

		var calls []bool
		require.NoError(t, WithConfirmation("Delete?", needsConfirm(&calls)))
		assert.Equal(t, []bool{false, true}, calls)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		var calls []bool
		err := WithConfirmation("Delete?", func(confirmed bool) error {
			calls = append(calls, confirmed)
			return layout.ErrLastContainer
		})
		assert.ErrorIs(t, err, layout.ErrLastContainer)
		assert.Len(t, calls, 1)
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("json at debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger("debug", "json", &buf)
		require.NoError(t, err)
		logger.Debug("hello", "key", "value")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
		assert.Contains(t, buf.String(), `"key":"value"`)
	})

	t.Run("text filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger("warn", "text", &buf)
		require.NoError(t, err)
		logger.Info("quiet")
		logger.Warn("loud")
		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "msg=loud")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := NewLogger("chatty", "text", &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewLogger("info", "xml", &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestPrintStatus(t *testing.T) {
	tests := []struct {
		name    string
		quiet   bool
		noColor bool
		print   func(string, ...any)
		wantOut string
		wantErr string
	}{
		{name: "success", print: PrintSuccess, wantOut: "✓ saved 2\n"},
		{name: "success plain", noColor: true, print: PrintSuccess, wantOut: "OK: saved 2\n"},
		{name: "info quiet", quiet: true, print: PrintInfo},
		{name: "warning quiet", quiet: true, print: PrintWarning, wantErr: "⚠ saved 2\n"},
		{name: "error plain", noColor: true, print: PrintError, wantErr: "ERROR: saved 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			prevOut, prevErr := stdout, stderr
			stdout, stderr = &out, &errOut
			SetGlobalFlags(tt.quiet, tt.noColor, false)
			t.Cleanup(func() {
				stdout, stderr = prevOut, prevErr
				SetGlobalFlags(false, false, false)
			})

			tt.print("saved %d", 2)
			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantErr, errOut.String())
		})
	}
}
