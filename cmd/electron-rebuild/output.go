package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/electron-rebuild/internal/terminal"
)

// printer writes status lines, colored only when the writer is a terminal.
type printer struct {
	out   io.Writer
	color bool
}

func newPrinter(out io.Writer, noColor bool) printer {
	return printer{out: out, color: terminal.ColorEnabled(out, noColor)}
}

func (p printer) colored(attr color.Attribute, msg string) string {
	c := color.New(attr)
	if p.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(msg)
}

func (p printer) line(attr color.Attribute, msg string) {
	_, _ = fmt.Fprintln(p.out, p.colored(attr, msg))
}

func (p printer) success(msg string) { p.line(color.FgGreen, msg) }

func (p printer) notice(msg string) { p.line(color.FgYellow, msg) }

func (p printer) plain(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
