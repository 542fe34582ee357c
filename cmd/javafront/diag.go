package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/javafront/java/resolve"
	"github.com/mattn/go-isatty"
)

const (
	colorBold  = "\033[1m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

// printDiagnostics writes one "file:line:col: error: message" line per
// diagnostic, highlighted when w is a terminal.
func printDiagnostics(w io.Writer, diags []resolve.Diagnostic) {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	for _, d := range diags {
		fmt.Fprintln(w, formatDiagnostic(d, color))
	}
}

func formatDiagnostic(d resolve.Diagnostic, color bool) string {
	if !color {
		return d.String()
	}
	where := d.File
	if d.Pos.IsValid() {
		where = d.Pos.String()
	}
	return fmt.Sprintf("%s%s:%s %s%serror:%s %s", colorBold, where, colorReset, colorBold, colorRed, colorReset, d.Message)
}
