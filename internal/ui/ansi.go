package ui

import (
	"fmt"
	"io"
	"os"
)

const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

// Printer writes themed output. Colors are emitted only when Out is a
// terminal, unless ForceColor is set.
type Printer struct {
	Out, Err   io.Writer
	Theme      Theme
	ForceColor bool
}

func NewPrinter(out, errOut io.Writer, theme Theme) *Printer {
	return &Printer{Out: out, Err: errOut, Theme: theme}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// C wraps s in color when coloring is enabled.
func (p *Printer) C(color, s string) string {
	if p.Theme.NoColor || color == "" {
		return s
	}
	if p.ForceColor || isTTY(p.Out) {
		return color + s + reset
	}
	return s
}

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.Out, p.C(p.Theme.Success, symCheck+" "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.Err, p.C(p.Theme.Error, symCross+" "+msg))
}

// Hint prints a muted line to Err.
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.Err, p.C(p.Theme.Muted, msg))
}
