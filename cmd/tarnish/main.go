// Command tarnish is the Tarnish interpreter's entry point: no
// arguments starts the REPL, one argument runs that file. Exit codes:
// 65 on a parse/resolve error, 1 on a runtime error, 0 on success.
package main

import (
	"fmt"
	"os"

	"github.com/PA055/Tarnish/internal/session"
	"github.com/PA055/Tarnish/tarnish"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var cyanColor = color.New(color.FgCyan)

const configPath = ".tarnishrc.yaml"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			showHelp()
			os.Exit(0)
		case "--version", "-v":
			showVersion()
			os.Exit(0)
		}
		os.Exit(tarnish.RunFile(os.Args[1], os.Stdout))
	}

	cfg, err := session.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to read %s: %v\n", configPath, err)
		cfg = session.Default()
	}
	if enabled, ok := cfg.ColorForced(); ok {
		color.NoColor = !enabled
	} else if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	if err := tarnish.RunPrompt(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "repl error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	cyanColor.Println("Tarnish - a small class-based scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	cyanColor.Println("  tarnish                 Start interactive REPL mode")
	cyanColor.Println("  tarnish <path-to-file>   Execute a Tarnish file")
	cyanColor.Println("  tarnish --help           Display this help message")
	cyanColor.Println("  tarnish --version        Display version information")
}

func showVersion() {
	cyanColor.Println("Tarnish v0.1.0")
}
