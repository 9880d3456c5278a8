// Package tarnish is the public facade over the lexer/parser/resolver/
// interpreter pipeline: Run, RunFile and RunPrompt cover one-shot
// execution, file mode and the interactive prompt, implemented here so
// cmd/tarnish stays a thin flag-parsing shell.
package tarnish

import (
	"io"
	"os"

	"github.com/PA055/Tarnish/internal/builtin"
	"github.com/PA055/Tarnish/internal/diag"
	"github.com/PA055/Tarnish/internal/interp"
	"github.com/PA055/Tarnish/internal/lexer"
	"github.com/PA055/Tarnish/internal/object"
	"github.com/PA055/Tarnish/internal/parser"
	"github.com/PA055/Tarnish/internal/replutil"
	"github.com/PA055/Tarnish/internal/resolver"
	"github.com/PA055/Tarnish/internal/session"
)

// Exit codes for a single Run: 65 on a lex/parse/resolve error, 1 on a
// runtime error, 0 otherwise.
const (
	ExitOK      = 0
	ExitUsage   = 65
	ExitRuntime = 1
)

// Session is a persistent Tarnish execution context: one Interpreter
// and one diagnostic Sink shared across repeated Run calls, so the REPL
// keeps its definitions from line to line.
type Session struct {
	sink   *diag.Sink
	interp *interp.Interpreter
}

// NewSession creates a Session writing diagnostics and print output to
// out.
func NewSession(out io.Writer) *Session {
	sink := diag.New(out)
	in := interp.New(nil)
	in.SetOutput(out)
	builtin.Register(in.Globals)
	return &Session{sink: sink, interp: in}
}

// DisableColor turns off ANSI coloring on the session's diagnostic
// sink, for non-TTY output.
func (s *Session) DisableColor() {
	s.sink.DisableColor()
}

// Run lexes, parses, resolves and interprets one chunk of source
// against this session's persistent environment, returning the exit
// code matching the outcome. The diagnostic flags are
// reset before each call so a later Run is not poisoned by an earlier
// one's failure (the REPL's use case); RunFile makes a single Run call
// per process, so its caller never sees a stale flag either way.
func (s *Session) Run(source string) int {
	s.sink.Reset()

	lx := lexer.New(source, s.sink)
	tokens := lx.ScanTokens()

	p := parser.New(tokens)
	stmts := p.Parse()
	if p.HasErrors() {
		for _, msg := range p.GetErrors() {
			s.sink.WriteDiagnostic(msg)
		}
		return ExitUsage
	}
	if s.sink.HadError {
		return ExitUsage
	}

	res := resolver.New(s.sink)
	res.Resolve(stmts)
	if s.sink.HadError {
		return ExitUsage
	}

	s.interp.MergeLocals(res.Locals)
	if err := s.interp.Interpret(stmts); err != nil {
		if rtErr, ok := err.(*object.RuntimeError); ok {
			s.sink.ReportRuntime(rtErr)
			return ExitRuntime
		}
		return ExitRuntime
	}
	return ExitOK
}

// Run executes source as a brand-new one-shot Session, writing
// diagnostics and print output to out. Most callers that only need a
// single execution (tests, one-off snippets) should use this instead
// of managing a Session themselves.
func Run(source string, out io.Writer) int {
	return NewSession(out).Run(source)
}

// RunFile reads path and executes it as a single Session.
func RunFile(path string, out io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		io.WriteString(os.Stderr, "Could not read file '"+path+"': "+err.Error()+"\n")
		return ExitUsage
	}
	return Run(string(data), out)
}

// RunPrompt starts the interactive REPL described by cfg, writing its
// banner/prompt/output to out and reusing a single Session across every
// line so variables and functions persist for the life of the prompt.
func RunPrompt(cfg *session.Config, out io.Writer) error {
	sess := NewSession(out)
	return replutil.New(cfg).Start(out, func(line string) { sess.Run(line) })
}
