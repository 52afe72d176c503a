package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiBlue, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Field prints one aligned "label  value" summary line.
func Field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s  %v\n", Brand.Sprintf("%-14s", label), value)
}

// Note prints a dimmed hint line.
func Note(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", Subtle.Sprintf(format, args...))
}

// Failure prints an error line.
func Failure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", Bad.Sprintf(format, args...))
}
