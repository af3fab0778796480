// Command glox is the tree-walking Lox interpreter's command-line driver: it
// runs a script file, a one-off program passed with -c, or an interactive
// REPL when invoked with neither.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/halprin/glox/internal/loxerr"
	"github.com/halprin/glox/interp"
	"github.com/halprin/glox/parser"
	"github.com/halprin/glox/resolver"
	"github.com/halprin/glox/scanner"
)

// Exit codes follow the convention used by sysexits.h, matching jlox.
const (
	exitUsageError   = 64
	exitStaticError  = 65
	exitRuntimeError = 70
)

func main() {
	color.NoColor = !isatty.IsTerminal(os.Stderr.Fd())

	args := os.Args[1:]

	var cmd string
	if len(args) >= 2 && args[0] == "-c" {
		cmd = args[1]
		args = args[2:]
	}

	if cmd != "" {
		os.Exit(runSource(cmd, interp.New(nil, os.Stdout), os.Stderr))
	}

	switch len(args) {
	case 0:
		runREPL()
	case 1:
		os.Exit(runFile(args[0]))
	default:
		fmt.Fprintln(os.Stderr, "Usage: glox [script]")
		os.Exit(exitUsageError)
	}
}

func runFile(name string) int {
	src, err := os.ReadFile(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}
	return runSource(string(src), interp.New(nil, os.Stdout), os.Stderr)
}

// runSource scans, parses, resolves and interprets src, reporting errors to
// stderr and returning the process exit code that reflects what happened.
func runSource(src string, it *interp.Interpreter, stderr io.Writer) int {
	var errs loxerr.Errors

	tokens := scanner.New(src, &errs).ScanTokens()
	stmts := parser.New(tokens, &errs).Parse()
	if errs.HasErrors() {
		loxerr.Fprint(stderr, errs.Err())
		return exitStaticError
	}

	depths := resolver.New(&errs).Resolve(stmts)
	if errs.HasErrors() {
		loxerr.Fprint(stderr, errs.Err())
		return exitStaticError
	}
	it.AddDepths(depths)

	if err := it.Interpret(stmts); err != nil {
		loxerr.Fprint(stderr, err)
		return exitRuntimeError
	}
	return 0
}

func runREPL() {
	cfg := &readline.Config{
		Prompt: "glox> ",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(homeDir, ".glox_history")
	} else {
		fmt.Fprintf(os.Stderr, "Can't get current user's home directory (%s). Command history will not be saved.\n", err)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "running Lox REPL:", err)
		os.Exit(1)
	}
	defer rl.Close()

	banner := "Welcome to glox!"
	if !color.NoColor {
		banner = color.New(color.Bold).Sprint(banner)
	}
	fmt.Fprintln(os.Stderr, banner)

	it := interp.New(nil, os.Stdout)
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			panic(fmt.Sprintf("unexpected error from readline: %s", err))
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		runSource(line, it, os.Stderr)
	}
}
