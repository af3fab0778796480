// Package loxerr implements the error reporting sink shared by the scanner,
// parser, resolver and interpreter, and the runtime error value raised by the
// interpreter.
package loxerr

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Reporter is implemented by anything that can record a static error tied to
// a source line. The scanner, parser and resolver only depend on this
// interface, never on a concrete sink, so that the driver (cmd/glox) is free
// to decide how errors are surfaced.
type Reporter interface {
	// Report records an error at the given line. where describes the location
	// within the line (often a lexeme, or "" for scanner errors); message is the
	// human-readable description.
	Report(line int, where, message string)
}

// Error is a single static error produced by the scanner, parser or resolver.
type Error struct {
	Line    int
	Where   string
	Message string
}

// Error formats e as "[line N] Error<where>: message", matching the textual
// error format that the file-mode CLI and REPL both print to stderr.
func (e *Error) Error() string {
	where := e.Where
	if where != "" {
		where = " " + where
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, where, e.Message)
}

// Errors collects zero or more *Error values in report order and implements
// Reporter. Its zero value is ready to use.
type Errors struct {
	errs []*Error
}

// Report implements Reporter.
func (e *Errors) Report(line int, where, message string) {
	e.errs = append(e.errs, &Error{Line: line, Where: where, Message: message})
}

// HasErrors reports whether any error has been reported.
func (e *Errors) HasErrors() bool {
	return len(e.errs) > 0
}

// All returns the reported errors in report order.
func (e *Errors) All() []*Error {
	return e.errs
}

// Err returns e as an error, or nil if no errors were reported.
func (e *Errors) Err() error {
	if len(e.errs) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface for Errors, joining every reported
// error onto its own line.
func (e *Errors) Error() string {
	var b strings.Builder
	for i, err := range e.errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// RuntimeError is the single structured error that the interpreter raises
// when evaluation cannot proceed. Exactly one is live at a time: evaluating a
// statement either completes or unwinds with a RuntimeError, which is caught
// at the top of Interpret.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

// Fprint writes err to w in bold, so that it stands out from ordinary program
// output in a terminal. Coloring is controlled globally by color.NoColor,
// which cmd/glox sets based on whether stderr is a terminal.
func Fprint(w io.Writer, err error) {
	color.New(color.Bold).Fprintln(w, err.Error())
}
