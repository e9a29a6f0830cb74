// Package cli provides utilities for nicer CLI output
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
)

const (
	indentation = "  "
	bullet      = "- "
)

func makeIndentation(indent int) string {
	return strings.Repeat(indentation, indent)
}

// Indented

func IndentedFprintf(indent int, w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprint(w, makeIndentation(indent))
	_, _ = fmt.Fprintf(w, format, a...)
}

func IndentedFprintln(indent int, w io.Writer, a ...any) {
	_, _ = fmt.Fprint(w, makeIndentation(indent))
	_, _ = fmt.Fprintln(w, a...)
}

// Bulleted

func BulletedFprintf(indent int, w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprint(w, makeIndentation(indent)+bullet)
	_, _ = fmt.Fprintf(w, format, a...)
}

func BulletedFprintln(indent int, w io.Writer, a ...any) {
	_, _ = fmt.Fprint(w, makeIndentation(indent)+bullet)
	_, _ = fmt.Fprintln(w, a...)
}

// IndentedWriter

// An IndentedWriter indents every line written through it, leaving ANSI escape sequences intact.
type IndentedWriter struct {
	indent     string
	ansiWriter *ansi.Writer
	midLine    bool
	inSequence bool
}

func NewIndentedWriter(indent int, forward io.Writer) *IndentedWriter {
	return &IndentedWriter{
		indent: makeIndentation(indent),
		ansiWriter: &ansi.Writer{
			Forward: forward,
		},
	}
}

// IndentedWriter: io.Writer

// Write indents b at the start of each line; lines end with `\n` or `\r`. Like the indent package
// of github.com/muesli/reflow, it resets any active ANSI styling around the indentation.
func (w *IndentedWriter) Write(b []byte) (n int, err error) {
	for _, c := range string(b) {
		switch {
		case c == '\x1B':
			w.inSequence = true
		case w.inSequence:
			if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
				w.inSequence = false
			}
		default:
			if err = w.startLine(); err != nil {
				return 0, err
			}
			if c == '\n' || c == '\r' {
				w.midLine = false
			}
		}
		if _, err = w.ansiWriter.Write([]byte(string(c))); err != nil {
			return 0, err
		}
	}
	return len(b), nil
}

func (w *IndentedWriter) startLine() error {
	if w.midLine {
		return nil
	}
	w.ansiWriter.ResetAnsi()
	if _, err := w.ansiWriter.Write([]byte(w.indent)); err != nil {
		return err
	}
	w.midLine = true
	w.ansiWriter.RestoreAnsi()
	return nil
}
