package ast_test

import (
	"strings"
	"testing"

	"github.com/halprin/glox/ast"
	"github.com/halprin/glox/token"
)

func TestSprintStmtsExpression(t *testing.T) {
	plus := token.Token{Type: token.Plus, Lexeme: "+"}
	one := ast.NewLiteral(1.0, token.Token{Type: token.Number, Lexeme: "1"})
	two := ast.NewLiteral(2.0, token.Token{Type: token.Number, Lexeme: "2"})
	stmts := []ast.Stmt{&ast.ExpressionStmt{Expr: ast.NewBinary(one, plus, two)}}

	got := ast.SprintStmts(stmts)
	want := "(expr (+ 1 2))"
	if got != want {
		t.Errorf("SprintStmts() = %q, want %q", got, want)
	}
}

func TestSprintStmtsBlock(t *testing.T) {
	printStmt := &ast.PrintStmt{Expr: ast.NewLiteral("hi", token.Token{Type: token.String, Lexeme: `"hi"`})}
	stmts := []ast.Stmt{&ast.BlockStmt{Stmts: []ast.Stmt{printStmt}}}

	got := ast.SprintStmts(stmts)
	if !strings.Contains(got, "(block") || !strings.Contains(got, "(print hi)") {
		t.Errorf("SprintStmts() = %q, want it to contain a block wrapping a print", got)
	}
}
