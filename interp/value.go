// Package interp implements the tree-walking evaluator: the runtime value
// model, the chained Environment, and the Interpreter that walks a resolved
// AST to produce side effects.
package interp

import (
	"fmt"
	"strconv"

	"github.com/halprin/glox/internal/loxerr"
	"github.com/halprin/glox/token"
)

// Value is a Lox runtime value. The concrete dynamic type is one of:
// nil (the Lox nil), bool, float64, string, Callable, or *Instance.
type Value any

// Callable is implemented by every value that can appear on the left of a
// call expression: user-defined functions, classes (which construct
// instances when called) and native functions such as clock.
type Callable interface {
	Arity() int
	Call(it *Interpreter, args []Value) (Value, error)
	String() string
}

func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if inst, ok := a.(*Instance); ok {
		other, ok := b.(*Instance)
		return ok && inst.id == other.id
	}
	return a == b
}

func stringify(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func runtimeError(tok token.Token, format string, args ...any) error {
	return &loxerr.RuntimeError{Line: tok.Line, Message: fmt.Sprintf(format, args...)}
}
