// Package replutil implements the interactive Read-Eval-Print Loop: a
// readline-backed input loop with a colorized banner and prompt, handing
// every line to one shared execution callback so variables and functions
// persist across the session.
package replutil

import (
	"io"
	"strings"

	"github.com/PA055/Tarnish/internal/session"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor = color.New(color.FgBlue)
	cyanColor = color.New(color.FgCyan)
	redColor  = color.New(color.FgRed)
)

// REPL is a configured interactive session: its banner, prompt, and
// history path come from session.Config rather than hardcoded package
// vars, so a .tarnishrc.yaml can restyle the prompt without a rebuild.
type REPL struct {
	cfg *session.Config
}

// New creates a REPL using cfg (see session.Load / session.Default).
func New(cfg *session.Config) *REPL {
	return &REPL{cfg: cfg}
}

// PrintBanner writes the welcome banner to w.
func (r *REPL) PrintBanner(w io.Writer) {
	blueColor.Fprintln(w, strings.Repeat("-", 60))
	cyanColor.Fprint(w, r.cfg.Banner)
	blueColor.Fprintln(w, strings.Repeat("-", 60))
}

// Start runs the REPL loop until the user exits (".exit", Ctrl+D, or a
// readline error), reading lines with history/editing support and
// handing each one to exec. exec is a callback rather than a concrete
// session type so replutil never needs to import the tarnish facade
// package that constructs it (tarnish.RunPrompt wires this up, and
// importing tarnish here would cycle back to it).
func (r *REPL) Start(w io.Writer, exec func(line string)) error {
	r.PrintBanner(w)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.cfg.Prompt,
		HistoryFile:     r.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			io.WriteString(w, "Good bye!\n")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			io.WriteString(w, "Good bye!\n")
			return nil
		}

		r.executeWithRecovery(w, line, exec)
	}
}

// executeWithRecovery runs one line through exec, catching any panic.
// The pipeline reports every error through its own return values rather
// than panicking, so this is a last-resort backstop, kept so one
// malformed line can never take down the REPL.
func (r *REPL) executeWithRecovery(w io.Writer, line string, exec func(string)) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(w, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()
	exec(line)
}
