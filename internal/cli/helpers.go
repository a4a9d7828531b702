package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/layout"
)

// confirmInput is where Confirm reads answers from
var confirmInput io.Reader = os.Stdin

// Confirm asks a yes/no question. --yes answers it without reading input.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}

	fmt.Fprint(stdout, prompt+suffix)

	reader := bufio.NewReader(confirmInput)
	response, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && response != "") {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

// ErrCancelled is returned when the user declines a confirmation prompt
var ErrCancelled = errors.New("cancelled")

// WithConfirmation runs op unconfirmed first. If the store asks for
// confirmation, the user is prompted and op is run again with confirmed set.
func WithConfirmation(prompt string, op func(confirmed bool) error) error {
	err := op(false)
	if !errors.Is(err, layout.ErrConfirmationRequired) {
		return err
	}

	ok, err := Confirm(prompt, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return op(true)
}

// Status output goes to these writers; tests swap them
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

type statusLevel int

const (
	levelSuccess statusLevel = iota
	levelInfo
	levelWarning
	levelError
)

// prefixes holds the symbol and the --no-color label for each level
var prefixes = map[statusLevel][2]string{
	levelSuccess: {"✓", "OK:"},
	levelInfo:    {"ℹ", "INFO:"},
	levelWarning: {"⚠", "WARNING:"},
	levelError:   {"✗", "ERROR:"},
}

func printStatus(level statusLevel, format string, args ...any) {
	w := stdout
	switch level {
	case levelSuccess, levelInfo:
		if quiet {
			return
		}
	default:
		w = stderr
	}

	prefix := prefixes[level][0]
	if noColor {
		prefix = prefixes[level][1]
	}
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// PrintSuccess reports a completed change. Quiet mode drops it.
func PrintSuccess(format string, args ...any) { printStatus(levelSuccess, format, args...) }

// PrintInfo prints a hint. Quiet mode drops it.
func PrintInfo(format string, args ...any) { printStatus(levelInfo, format, args...) }

// PrintWarning goes to stderr even in quiet mode
func PrintWarning(format string, args ...any) { printStatus(levelWarning, format, args...) }

// PrintError goes to stderr even in quiet mode
func PrintError(format string, args ...any) { printStatus(levelError, format, args...) }

var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags applies --quiet, --no-color and --yes
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}
