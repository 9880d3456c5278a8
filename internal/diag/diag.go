// Package diag is the diagnostic sink shared by every pipeline stage:
// the lexer and resolver report through it directly, and the tarnish
// facade forwards the parser's collected errors and the interpreter's
// runtime errors to it, so no stage prints diagnostics itself.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Sink accumulates the HadError/HadRuntimeError flags and writes one
// formatted line per diagnostic to Writer. A zero Sink is usable;
// diagnostics are silently dropped while Writer is nil.
type Sink struct {
	Writer          io.Writer
	HadError        bool
	HadRuntimeError bool

	errColor *color.Color
}

// New creates a Sink writing to w. Color is enabled by default; callers
// that pipe output to a non-terminal should call DisableColor.
func New(w io.Writer) *Sink {
	return &Sink{Writer: w, errColor: color.New(color.FgRed)}
}

// DisableColor turns off ANSI coloring, e.g. when Writer is not a TTY.
func (s *Sink) DisableColor() {
	s.color().DisableColor()
}

// color returns the error color, lazily constructed so a zero Sink works.
func (s *Sink) color() *color.Color {
	if s.errColor == nil {
		s.errColor = color.New(color.FgRed)
	}
	return s.errColor
}

// Reset clears both flags. The REPL calls this after every line so one
// bad statement doesn't poison the rest of the session.
func (s *Sink) Reset() {
	s.HadError = false
	s.HadRuntimeError = false
}

// ReportLine records a lex/parse/resolve error tied to a bare line number
// (used by the lexer, which has no token to attach the error to).
func (s *Sink) ReportLine(line int, message string) {
	s.report(line, "", message)
}

// ReportAt records an error tied to a specific token: EOF tokens report
// "at end", everything else reports "at '<lexeme>'".
func (s *Sink) ReportAt(line int, lexeme string, atEOF bool, message string) {
	where := fmt.Sprintf(" at '%s'", lexeme)
	if atEOF {
		where = " at end"
	}
	s.report(line, where, message)
}

// WriteDiagnostic writes a fully-formatted diagnostic line (e.g. a parse
// error message the caller already assembled) straight to Writer, setting
// HadError the same way report does. Used for messages built outside the
// sink (the parser's own synchronize-and-collect error list).
func (s *Sink) WriteDiagnostic(message string) {
	s.HadError = true
	if s.Writer == nil {
		return
	}
	s.color().Fprintf(s.Writer, "%s\n", message)
}

func (s *Sink) report(line int, where, message string) {
	s.HadError = true
	if s.Writer == nil {
		return
	}
	s.color().Fprintf(s.Writer, "[line %d] - Error%s: %s\n", line, where, message)
}

// RuntimeError is anything the interpreter can present with a source
// token and message; *object.RuntimeError satisfies this without diag
// needing to import object (which would create a cycle).
type RuntimeError interface {
	error
	Line() int
}

// ReportRuntime prints a runtime error and sets HadRuntimeError.
func (s *Sink) ReportRuntime(err RuntimeError) {
	s.HadRuntimeError = true
	if s.Writer == nil {
		return
	}
	s.color().Fprintf(s.Writer, "[line %d] - %s\n", err.Line(), err.Error())
}
