// Package terminal decides whether output goes to an interactive terminal.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

// EnvNoColor disables color when set to any non-empty value (https://no-color.org).
const EnvNoColor = "NO_COLOR"

var (
	isTerminal = term.IsTerminal
	lookupEnv  = os.LookupEnv
)

type fdWriter interface {
	Fd() uintptr
}

// IsTerminalWriter reports whether w is backed by a terminal file descriptor.
func IsTerminalWriter(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isTerminal(int(f.Fd()))
}

// ColorEnabled reports whether colored output should be written to w.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	if value, ok := lookupEnv(EnvNoColor); ok && value != "" {
		return false
	}
	return IsTerminalWriter(w)
}
