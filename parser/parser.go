// Package parser defines Parser, which parses a stream of lexical tokens into
// an abstract syntax tree using recursive descent with panic-mode recovery.
package parser

import (
	"slices"

	"github.com/halprin/glox/ast"
	"github.com/halprin/glox/internal/loxerr"
	"github.com/halprin/glox/token"
)

const maxArgs = 255

// parseError is the sentinel panic value used to unwind to the nearest
// statement boundary when a required token is missing. It carries no data:
// the error itself has already been reported to the Reporter by the time it's
// raised.
type parseError struct{}

// Parser parses a token stream into an abstract syntax tree.
type Parser struct {
	tokens  []token.Token
	current int
	report  loxerr.Reporter
}

// New constructs a Parser over tokens, which must end with a token.EOF.
// Syntax errors are reported to reporter.
func New(tokens []token.Token, reporter loxerr.Reporter) *Parser {
	return &Parser{tokens: tokens, report: reporter}
}

// Parse parses the token stream and returns the resulting statements.
// Parsing always completes; a statement that can't be parsed is simply
// omitted from the result and an error is reported. Callers should check
// their Reporter for errors before evaluating the result.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.EOF) {
		if stmt, ok := p.safeDeclaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// safeDeclaration parses a single declaration, recovering to the next
// statement boundary if a syntax error is encountered partway through. ok is
// false if the declaration couldn't be parsed at all, in which case it
// contributes nothing to the result (callers are expected to check their
// Reporter for errors before using the parsed statements regardless).
func (p *Parser) safeDeclaration() (stmt ast.Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
			ok = false
		}
	}()
	return p.declaration(), true
}

// synchronize discards tokens until it finds a likely statement boundary:
// either the token after a ';', or a keyword that starts a new declaration.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.Ident, "Expect class name.")

	var superclass *ast.VariableExpr
	if p.match(token.Less) {
		superName := p.consume(token.Ident, "Expect superclass name.")
		superclass = ast.NewVariable(superName)
	}

	p.consume(token.OpenBrace, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(token.CloseBrace) && !p.check(token.EOF) {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.CloseBrace, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.Ident, "Expect "+kind+" name.")
	p.consume(token.OpenParen, "Expect '(' after "+kind+" name.")
	var params []token.Token
	if !p.check(token.CloseParen) {
		for {
			if len(params) >= maxArgs {
				p.reportAtCurrent("Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.Ident, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.CloseParen, "Expect ')' after parameters.")
	p.consume(token.OpenBrace, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Ident, "Expect variable name.")
	var initializer ast.Expr
	if p.match(token.Assign) {
		initializer = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.Break):
		return p.breakStmt()
	case p.match(token.Continue):
		return p.continueStmt()
	case p.match(token.OpenBrace):
		return &ast.BlockStmt{Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: expr}
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.CloseBrace) && !p.check(token.EOF) {
		if stmt, ok := p.safeDeclaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.CloseBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.OpenParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.CloseParen, "Expect ')' after if condition.")
	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.OpenParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.CloseParen, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body}
}

// forStmt desugars a for loop into a while loop carrying the increment clause
// separately from the body, so that continue still runs it. If there is an
// initializer, the result is a block holding the initializer followed by the
// while loop; otherwise it is the bare while loop. A missing condition
// defaults to "true".
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.OpenParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.CloseParen) {
		increment = p.expression()
	}
	p.consume(token.CloseParen, "Expect ')' after for clauses.")

	body := p.statement()

	if cond == nil {
		cond = ast.NewLiteral(true, token.Token{Type: token.True, Lexeme: "true"})
	}
	whileStmt := &ast.WhileStmt{Cond: cond, Body: body, Increment: increment}
	var result ast.Stmt = whileStmt
	if initializer != nil {
		result = &ast.BlockStmt{Stmts: []ast.Stmt{initializer, whileStmt}}
	}
	return result
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) breakStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(token.Semicolon, "Expect ';' after 'break'.")
	return &ast.BreakStmt{Keyword: keyword}
}

func (p *Parser) continueStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(token.Semicolon, "Expect ';' after 'continue'.")
	return &ast.ContinueStmt{Keyword: keyword}
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses a left-hand expression and, if '=' follows, rewrites it
// into an Assign or Set node. Any other left-hand side is a syntax error, but
// unlike most errors here, it doesn't stop the right-hand side from being
// parsed: the error is reported and parsing continues as if the '=' wasn't
// there.
func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()

	if p.match(token.Assign) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.VariableExpr:
			return ast.NewAssign(e.Name, value)
		case *ast.GetExpr:
			return ast.NewSet(e.Object, e.Name, value)
		default:
			p.reportAt(equals, "Invalid assignment target.")
			return expr
		}
	}

	return expr
}

func (p *Parser) ternary() ast.Expr {
	cond := p.logicOr()
	if p.match(token.Question) {
		then := p.expression()
		p.consume(token.Colon, "Expect ':' after then branch of conditional expression.")
		elseExpr := p.ternary()
		return ast.NewTernary(cond, then, elseExpr)
	}
	return cond
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.Or) {
		op := p.previous()
		right := p.logicAnd()
		expr = ast.NewLogical(expr, op, right)
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewLogical(expr, op, right)
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	return p.binary(p.comparison, token.NotEqual, token.Equal)
}

func (p *Parser) comparison() ast.Expr {
	return p.binary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() ast.Expr {
	return p.binary(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() ast.Expr {
	return p.binary(p.unary, token.Slash, token.Asterisk, token.Percent)
}

// binary parses a left-associative chain of binary operators at one
// precedence level. next parses an operand of the next higher precedence.
func (p *Parser) binary(next func() ast.Expr, types ...token.Type) ast.Expr {
	expr := next()
	for p.match(types...) {
		op := p.previous()
		right := next()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return ast.NewUnary(op, right)
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.OpenParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Ident, "Expect property name after '.'.")
			expr = ast.NewGet(expr, name)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.CloseParen) {
		for {
			if len(args) >= maxArgs {
				p.reportAtCurrent("Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.CloseParen, "Expect ')' after arguments.")
	return ast.NewCall(callee, paren, args)
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return ast.NewLiteral(false, p.previous())
	case p.match(token.True):
		return ast.NewLiteral(true, p.previous())
	case p.match(token.Nil):
		return ast.NewLiteral(nil, p.previous())
	case p.match(token.Number, token.String):
		tok := p.previous()
		return ast.NewLiteral(tok.Literal, tok)
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "Expect '.' after 'super'.")
		method := p.consume(token.Ident, "Expect superclass method name.")
		return ast.NewSuper(keyword, method)
	case p.match(token.This):
		return ast.NewThis(p.previous())
	case p.match(token.Ident):
		return ast.NewVariable(p.previous())
	case p.match(token.OpenParen):
		expr := p.expression()
		p.consume(token.CloseParen, "Expect ')' after expression.")
		return ast.NewGrouping(expr)
	default:
		p.reportAtCurrent("Expect expression.")
		panic(parseError{})
	}
}

// match reports whether the current token is one of types and advances past
// it if so.
func (p *Parser) match(types ...token.Type) bool {
	if slices.Contains(types, p.peek().Type) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Type != token.EOF {
		p.current++
	}
	return tok
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// consume advances past the current token if it has type t, raising a
// parseError panic otherwise.
func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.reportAtCurrent(message)
	panic(parseError{})
}

func (p *Parser) reportAtCurrent(message string) {
	p.reportAt(p.peek(), message)
}

func (p *Parser) reportAt(tok token.Token, message string) {
	where := "at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = "at end"
	}
	p.report.Report(tok.Line, where, message)
}
