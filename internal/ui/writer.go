// Package ui provides the terminal output for notemend.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/notemend/notemend/internal/diff"
)

// Color definitions for consistent UI
var (
	// Brown color for startup info
	brownColor = color.New(color.FgYellow, color.Faint)

	// Gray color for secondary detail
	grayColor = color.New(color.FgWhite, color.Faint)

	// Red for errors
	errorColor = color.New(color.FgRed)

	// Yellow for warnings
	warnColor = color.New(color.FgYellow)

	// Green for applied changes
	successColor = color.New(color.FgGreen)

	// Diff rendering
	diffAddColor    = color.New(color.FgGreen)
	diffRemoveColor = color.New(color.FgRed)
	diffHeaderColor = color.New(color.FgWhite, color.Faint)
)

// Writer provides formatted output with consistent prefixes and optional colors.
type Writer struct {
	quiet bool
	out   io.Writer
}

// NewWriter creates a new Writer. Quiet mode suppresses everything except
// errors and per-file apply results.
func NewWriter(quiet bool) *Writer {
	return &Writer{quiet: quiet, out: os.Stdout}
}

// SetOutput redirects output, used by tests.
func (w *Writer) SetOutput(out io.Writer) {
	w.out = out
}

// StartupInfo prints startup information in brown.
func (w *Writer) StartupInfo(msg string) {
	if w.quiet {
		return
	}
	brownColor.Fprintln(w.out, msg)
}

// Info prints an info message with [info] prefix in gray.
func (w *Writer) Info(msg string) {
	if w.quiet {
		return
	}
	grayColor.Fprintf(w.out, "[info] %s\n", msg)
}

// Warn prints a warning message with [warn] prefix in yellow.
func (w *Writer) Warn(msg string) {
	if w.quiet {
		return
	}
	warnColor.Fprintf(w.out, "[warn] %s\n", msg)
}

// Error prints an error message with [error] prefix in red. Not silenced by
// quiet mode.
func (w *Writer) Error(msg string) {
	errorColor.Fprintf(w.out, "[error] %s\n", msg)
}

// Success prints a success message with [ok] prefix in green. Not silenced by
// quiet mode: apply results are the program's output.
func (w *Writer) Success(msg string) {
	successColor.Fprintf(w.out, "[ok] %s\n", msg)
}

// DiffBlock renders a diff block for review: header line with the target
// file, then the raw diff with adds green, removes red, headers faint.
func (w *Writer) DiffBlock(b diff.DiffBlock) {
	fmt.Fprintf(w.out, "--- %s ---\n", b.FileName)
	for _, line := range strings.Split(b.RawDiff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			diffHeaderColor.Fprintln(w.out, line)
		case strings.HasPrefix(line, "+"):
			diffAddColor.Fprintln(w.out, line)
		case strings.HasPrefix(line, "-"):
			diffRemoveColor.Fprintln(w.out, line)
		default:
			fmt.Fprintln(w.out, line)
		}
	}
	fmt.Fprintln(w.out)
}
