package interp

import (
	"fmt"
	"io"
	"math"

	"github.com/halprin/glox/ast"
	"github.com/halprin/glox/token"
)

type signal int

const (
	signalNone signal = iota
	signalReturn
	signalBreak
	signalContinue
)

// execResult is the explicit, non-panic stand-in for the control-flow
// signals that can unwind out of a statement: a plain return value for
// Return, and a bare marker for the break/continue loop signals. Every
// exec* method returns one of these alongside an error, and propagates
// a non-signalNone result upward without running the statements after it.
type execResult struct {
	signal signal
	value  Value
}

var normalResult = execResult{signal: signalNone}

// Interpreter walks a resolved AST, evaluating it for its side effects.
type Interpreter struct {
	globals *Environment
	env     *Environment
	depths  map[int]int
	stdout  io.Writer
}

// New constructs an Interpreter. depths is the expr-id -> scope-depth map
// produced by resolver.Resolve; stdout is where `print` statements write.
func New(depths map[int]int, stdout io.Writer) *Interpreter {
	globals := NewEnvironment()
	globals.Define("clock", clockFn{})
	if depths == nil {
		depths = make(map[int]int)
	}
	return &Interpreter{
		globals: globals,
		env:     globals,
		depths:  depths,
		stdout:  stdout,
	}
}

// AddDepths merges depths produced by a later resolver.Resolve call into it,
// so that a single long-lived Interpreter (as used by the REPL) can keep its
// global environment across separately parsed and resolved lines. Since
// ast node ids are process-unique, merging never collides across calls.
func (it *Interpreter) AddDepths(depths map[int]int) {
	for id, depth := range depths {
		it.depths[id] = depth
	}
}

// Interpret executes stmts in order, stopping and returning the first
// runtime error encountered.
func (it *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if _, err := it.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execStmts(stmts []ast.Stmt) (execResult, error) {
	for _, stmt := range stmts {
		result, err := it.execStmt(stmt)
		if err != nil {
			return execResult{}, err
		}
		if result.signal != signalNone {
			return result, nil
		}
	}
	return normalResult, nil
}

func (it *Interpreter) execStmt(stmt ast.Stmt) (execResult, error) {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := it.evalExpr(stmt.Expr)
		return normalResult, err
	case *ast.PrintStmt:
		v, err := it.evalExpr(stmt.Expr)
		if err != nil {
			return execResult{}, err
		}
		fmt.Fprintln(it.stdout, stringify(v))
		return normalResult, nil
	case *ast.VarStmt:
		var v Value
		if stmt.Initializer != nil {
			var err error
			v, err = it.evalExpr(stmt.Initializer)
			if err != nil {
				return execResult{}, err
			}
		}
		it.env.Define(stmt.Name.Lexeme, v)
		return normalResult, nil
	case *ast.BlockStmt:
		return it.execBlock(stmt.Stmts, it.env.Child())
	case *ast.IfStmt:
		return it.execIfStmt(stmt)
	case *ast.WhileStmt:
		return it.execWhileStmt(stmt)
	case *ast.FunctionStmt:
		it.env.Define(stmt.Name.Lexeme, NewFunction(stmt, it.env, false))
		return normalResult, nil
	case *ast.ReturnStmt:
		var v Value
		if stmt.Value != nil {
			var err error
			v, err = it.evalExpr(stmt.Value)
			if err != nil {
				return execResult{}, err
			}
		}
		return execResult{signal: signalReturn, value: v}, nil
	case *ast.BreakStmt:
		return execResult{signal: signalBreak}, nil
	case *ast.ContinueStmt:
		return execResult{signal: signalContinue}, nil
	case *ast.ClassStmt:
		return it.execClassStmt(stmt)
	default:
		panic("interp: unhandled stmt type")
	}
}

// execBlock runs stmts in env, restoring the interpreter's previous
// environment before returning (even on error or a propagated signal).
func (it *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) (execResult, error) {
	previous := it.env
	it.env = env
	defer func() { it.env = previous }()
	return it.execStmts(stmts)
}

func (it *Interpreter) execIfStmt(stmt *ast.IfStmt) (execResult, error) {
	cond, err := it.evalExpr(stmt.Cond)
	if err != nil {
		return execResult{}, err
	}
	if isTruthy(cond) {
		return it.execStmt(stmt.Then)
	}
	if stmt.Else != nil {
		return it.execStmt(stmt.Else)
	}
	return normalResult, nil
}

func (it *Interpreter) execWhileStmt(stmt *ast.WhileStmt) (execResult, error) {
	for {
		cond, err := it.evalExpr(stmt.Cond)
		if err != nil {
			return execResult{}, err
		}
		if !isTruthy(cond) {
			return normalResult, nil
		}

		result, err := it.execStmt(stmt.Body)
		if err != nil {
			return execResult{}, err
		}
		switch result.signal {
		case signalBreak:
			return normalResult, nil
		case signalReturn:
			return result, nil
		case signalContinue, signalNone:
			// A continue must still run the increment (if this is a desugared
			// for loop) before the next condition check, the same as falling
			// off the end of the body normally would.
			if stmt.Increment != nil {
				if _, err := it.evalExpr(stmt.Increment); err != nil {
					return execResult{}, err
				}
			}
		}
	}
}

func (it *Interpreter) execClassStmt(stmt *ast.ClassStmt) (execResult, error) {
	var superclass *Class
	if stmt.Superclass != nil {
		v, err := it.evalExpr(stmt.Superclass)
		if err != nil {
			return execResult{}, err
		}
		class, ok := v.(*Class)
		if !ok {
			return execResult{}, runtimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	it.env.Define(stmt.Name.Lexeme, nil)

	classEnv := it.env
	if superclass != nil {
		classEnv = it.env.Child()
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, classEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(stmt.Name.Lexeme, superclass, methods)
	if err := it.env.Assign(stmt.Name, class); err != nil {
		return execResult{}, err
	}
	return normalResult, nil
}

func (it *Interpreter) evalExpr(expr ast.Expr) (Value, error) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		return expr.Value, nil
	case *ast.GroupingExpr:
		return it.evalExpr(expr.Inner)
	case *ast.UnaryExpr:
		return it.evalUnaryExpr(expr)
	case *ast.BinaryExpr:
		return it.evalBinaryExpr(expr)
	case *ast.LogicalExpr:
		return it.evalLogicalExpr(expr)
	case *ast.TernaryExpr:
		return it.evalTernaryExpr(expr)
	case *ast.VariableExpr:
		return it.lookUpVariable(expr.Name, expr)
	case *ast.AssignExpr:
		return it.evalAssignExpr(expr)
	case *ast.CallExpr:
		return it.evalCallExpr(expr)
	case *ast.GetExpr:
		return it.evalGetExpr(expr)
	case *ast.SetExpr:
		return it.evalSetExpr(expr)
	case *ast.ThisExpr:
		return it.lookUpVariable(expr.Keyword, expr)
	case *ast.SuperExpr:
		return it.evalSuperExpr(expr)
	default:
		panic("interp: unhandled expr type")
	}
}

func (it *Interpreter) evalUnaryExpr(expr *ast.UnaryExpr) (Value, error) {
	right, err := it.evalExpr(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Type {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, runtimeError(expr.Op, "Operand must be a number.")
		}
		return -n, nil
	case token.Bang:
		return !isTruthy(right), nil
	default:
		panic("interp: unhandled unary operator " + expr.Op.Type.String())
	}
}

func (it *Interpreter) evalBinaryExpr(expr *ast.BinaryExpr) (Value, error) {
	left, err := it.evalExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.Equal:
		return isEqual(left, right), nil
	case token.NotEqual:
		return !isEqual(left, right), nil
	}

	if expr.Op.Type == token.Plus {
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, runtimeError(expr.Op, "Operands must be two numbers or two strings.")
	}

	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return nil, runtimeError(expr.Op, "Operands must be numbers.")
	}

	switch expr.Op.Type {
	case token.Minus:
		return ln - rn, nil
	case token.Asterisk:
		return ln * rn, nil
	case token.Slash:
		// Host float semantics: division by zero yields +/-Inf or NaN,
		// it is not a runtime error.
		return ln / rn, nil
	case token.Percent:
		return math.Mod(ln, rn), nil
	case token.Less:
		return ln < rn, nil
	case token.LessEqual:
		return ln <= rn, nil
	case token.Greater:
		return ln > rn, nil
	case token.GreaterEqual:
		return ln >= rn, nil
	default:
		panic("interp: unhandled binary operator " + expr.Op.Type.String())
	}
}

func (it *Interpreter) evalLogicalExpr(expr *ast.LogicalExpr) (Value, error) {
	left, err := it.evalExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	if expr.Op.Type == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return it.evalExpr(expr.Right)
}

func (it *Interpreter) evalTernaryExpr(expr *ast.TernaryExpr) (Value, error) {
	cond, err := it.evalExpr(expr.Cond)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return it.evalExpr(expr.Then)
	}
	return it.evalExpr(expr.Else)
}

func (it *Interpreter) evalAssignExpr(expr *ast.AssignExpr) (Value, error) {
	v, err := it.evalExpr(expr.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := it.depths[expr.ID()]; ok {
		it.env.AssignAt(distance, expr.Name, v)
	} else {
		if err := it.globals.Assign(expr.Name, v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (it *Interpreter) evalCallExpr(expr *ast.CallExpr) (Value, error) {
	callee, err := it.evalExpr(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(expr.Args))
	for i, argExpr := range expr.Args {
		v, err := it.evalExpr(argExpr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, runtimeError(expr.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, runtimeError(expr.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(it, args)
}

func (it *Interpreter) evalGetExpr(expr *ast.GetExpr) (Value, error) {
	obj, err := it.evalExpr(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeError(expr.Name, "Only instances have properties.")
	}
	return instance.Get(expr.Name)
}

func (it *Interpreter) evalSetExpr(expr *ast.SetExpr) (Value, error) {
	obj, err := it.evalExpr(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeError(expr.Name, "Only instances have fields.")
	}
	v, err := it.evalExpr(expr.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(expr.Name, v)
	return v, nil
}

func (it *Interpreter) evalSuperExpr(expr *ast.SuperExpr) (Value, error) {
	distance := it.depths[expr.ID()]
	superclass, _ := it.env.GetAt(distance, "super").(*Class)
	instance, _ := it.env.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.FindMethod(expr.Method.Lexeme)
	if !ok {
		return nil, runtimeError(expr.Method, "Undefined property '%s'.", expr.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (it *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := it.depths[expr.ID()]; ok {
		return it.env.GetAt(distance, name.Lexeme), nil
	}
	return it.globals.Get(name)
}
