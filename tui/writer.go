package tui

import (
	"fmt"
	"io"
)

// labelWidth is the padded width of field labels in detail views.
const labelWidth = 14

// tableWriter wraps an io.Writer and keeps the first write error. Every
// write after a failure is skipped.
type tableWriter struct {
	w      io.Writer
	indent string
	err    error
}

func (tw *tableWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *tableWriter) println(args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintln(tw.w, args...)
}

// field writes a "label value" line, label padded to labelWidth.
func (tw *tableWriter) field(label, value string) {
	tw.printf("%s%-*s %s\n", tw.indent, labelWidth, label, value)
}

// section writes a title line and indents the fields that follow it.
func (tw *tableWriter) section(title string) {
	tw.indent = ""
	tw.println(title)
	tw.indent = "  "
}

// Err returns the first error encountered during any write, or nil.
func (tw *tableWriter) Err() error {
	return tw.err
}
