// Package resolver implements the static resolution pass that runs between
// parsing and evaluation: it binds every variable reference to the number of
// scopes between its use and its declaration, and catches a handful of static
// semantic errors that the parser's grammar can't express.
package resolver

import (
	"github.com/halprin/glox/ast"
	"github.com/halprin/glox/internal/loxerr"
	"github.com/halprin/glox/token"
)

type identState int

const (
	declared identState = iota
	defined
)

// scope maps a local variable's lexeme to its declaration state within a
// single block. The global scope is never represented here; unresolved names
// are left for the interpreter to look up in the global environment.
type scope map[string]identState

type functionKind int

const (
	noFunction functionKind = iota
	function
	initializer
	method
)

type classKind int

const (
	noClass classKind = iota
	inClass
	inSubclass
)

// Resolver walks a parsed Lox program and produces the depth map that the
// interpreter uses to resolve variable references without a runtime search of
// enclosing environments.
type Resolver struct {
	scopes scopeStack
	depths map[int]int

	currentFunction functionKind
	currentClass    classKind
	loopDepth       int

	report loxerr.Reporter
}

// New constructs a Resolver which reports static errors to reporter.
func New(reporter loxerr.Reporter) *Resolver {
	return &Resolver{
		depths: make(map[int]int),
		report: reporter,
	}
}

// Resolve walks stmts and returns the expr-id -> scope-depth map to be passed
// to interp.Interpreter. It should only be consulted if reporter reported no
// errors during the call.
func (r *Resolver) Resolve(stmts []ast.Stmt) map[int]int {
	r.resolveStmts(stmts)
	return r.depths
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(stmt.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(stmt.Expr)
	case *ast.VarStmt:
		r.resolveVarStmt(stmt)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(stmt.Stmts)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Then)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(stmt.Cond)
		r.loopDepth++
		r.resolveStmt(stmt.Body)
		r.loopDepth--
		if stmt.Increment != nil {
			r.resolveExpr(stmt.Increment)
		}
	case *ast.FunctionStmt:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.resolveFunction(stmt, function)
	case *ast.ReturnStmt:
		r.resolveReturnStmt(stmt)
	case *ast.BreakStmt:
		if r.loopDepth == 0 {
			r.reportTok(stmt.Keyword, "Can't break outside of a loop.")
		}
	case *ast.ContinueStmt:
		if r.loopDepth == 0 {
			r.reportTok(stmt.Keyword, "Can't continue outside of a loop.")
		}
	case *ast.ClassStmt:
		r.resolveClassStmt(stmt)
	default:
		panic("resolver: unhandled stmt type")
	}
}

func (r *Resolver) resolveVarStmt(stmt *ast.VarStmt) {
	r.declare(stmt.Name)
	if stmt.Initializer != nil {
		r.resolveExpr(stmt.Initializer)
	}
	r.define(stmt.Name)
}

func (r *Resolver) resolveReturnStmt(stmt *ast.ReturnStmt) {
	if r.currentFunction == noFunction {
		r.reportTok(stmt.Keyword, "Can't return from top-level code.")
	}
	if stmt.Value != nil {
		if r.currentFunction == initializer {
			r.reportTok(stmt.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(stmt.Value)
	}
}

func (r *Resolver) resolveClassStmt(stmt *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = inClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.reportTok(stmt.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = inSubclass
		r.resolveExpr(stmt.Superclass)

		r.beginScope()
		defer r.endScope()
		r.scopes.peek()["super"] = defined
	}

	r.beginScope()
	defer r.endScope()
	r.scopes.peek()["this"] = defined

	for _, m := range stmt.Methods {
		kind := method
		if m.Name.Lexeme == "init" {
			kind = initializer
		}
		r.resolveFunction(m, kind)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	enclosingLoopDepth := r.loopDepth
	r.loopDepth = 0
	defer func() { r.loopDepth = enclosingLoopDepth }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.BinaryExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *ast.UnaryExpr:
		r.resolveExpr(expr.Right)
	case *ast.TernaryExpr:
		r.resolveExpr(expr.Cond)
		r.resolveExpr(expr.Then)
		r.resolveExpr(expr.Else)
	case *ast.GroupingExpr:
		r.resolveExpr(expr.Inner)
	case *ast.LiteralExpr:
		// no sub-expressions, nothing to bind
	case *ast.VariableExpr:
		r.resolveVariableExpr(expr)
	case *ast.AssignExpr:
		r.resolveExpr(expr.Value)
		r.resolveLocal(expr, expr.Name)
	case *ast.CallExpr:
		r.resolveExpr(expr.Callee)
		for _, arg := range expr.Args {
			r.resolveExpr(arg)
		}
	case *ast.GetExpr:
		r.resolveExpr(expr.Object)
	case *ast.SetExpr:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)
	case *ast.ThisExpr:
		if r.currentClass == noClass {
			r.reportTok(expr.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(expr, expr.Keyword)
	case *ast.SuperExpr:
		switch r.currentClass {
		case noClass:
			r.reportTok(expr.Keyword, "Can't use 'super' outside of a class.")
		case inClass:
			r.reportTok(expr.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(expr, expr.Keyword)
	default:
		panic("resolver: unhandled expr type")
	}
}

func (r *Resolver) resolveVariableExpr(expr *ast.VariableExpr) {
	if r.scopes.len() > 0 {
		if state, ok := r.scopes.peek()[expr.Name.Lexeme]; ok && state == declared {
			r.reportTok(expr.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(expr, expr.Name)
}

// resolveLocal walks outward from the innermost scope looking for name,
// recording how many scopes out it was found in. If it's never found, it's
// left unresolved and the interpreter treats it as a global lookup.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := r.scopes.len() - 1; i >= 0; i-- {
		if _, ok := r.scopes.at(i)[name.Lexeme]; ok {
			r.depths[expr.ID()] = r.scopes.len() - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes.push(scope{})
}

func (r *Resolver) endScope() {
	r.scopes.pop()
}

func (r *Resolver) declare(name token.Token) {
	if r.scopes.len() == 0 {
		return
	}
	sc := r.scopes.peek()
	if _, ok := sc[name.Lexeme]; ok {
		r.reportTok(name, "Already a variable with this name in this scope.")
	}
	sc[name.Lexeme] = declared
}

func (r *Resolver) define(name token.Token) {
	if r.scopes.len() == 0 {
		return
	}
	r.scopes.peek()[name.Lexeme] = defined
}

func (r *Resolver) reportTok(tok token.Token, message string) {
	where := "at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = "at end"
	}
	r.report.Report(tok.Line, where, message)
}
