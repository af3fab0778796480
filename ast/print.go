package ast

import (
	"fmt"
	"strings"
)

// Print prints a slice of statements to stdout as an indented s-expression tree.
// It's a debugging aid only; nothing in the interpreter pipeline depends on its output.
func Print(stmts []Stmt) {
	fmt.Println(SprintStmts(stmts))
}

// SprintStmts formats a slice of statements as an indented s-expression tree.
func SprintStmts(stmts []Stmt) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sprintStmt(stmt, 0))
	}
	return b.String()
}

func sprintStmt(stmt Stmt, depth int) string {
	switch stmt := stmt.(type) {
	case *ExpressionStmt:
		return sexpr(depth, "expr", sprintExpr(stmt.Expr))
	case *PrintStmt:
		return sexpr(depth, "print", sprintExpr(stmt.Expr))
	case *VarStmt:
		if stmt.Initializer == nil {
			return sexpr(depth, "var", stmt.Name.Lexeme)
		}
		return sexpr(depth, "var", stmt.Name.Lexeme, sprintExpr(stmt.Initializer))
	case *BlockStmt:
		children := make([]string, len(stmt.Stmts))
		for i, s := range stmt.Stmts {
			children[i] = sprintStmt(s, depth+1)
		}
		return sexprBlock(depth, "block", children)
	case *IfStmt:
		children := []string{sprintExpr(stmt.Cond), sprintStmt(stmt.Then, depth+1)}
		if stmt.Else != nil {
			children = append(children, sprintStmt(stmt.Else, depth+1))
		}
		return sexprBlock(depth, "if", children)
	case *WhileStmt:
		children := []string{sprintExpr(stmt.Cond), sprintStmt(stmt.Body, depth+1)}
		if stmt.Increment != nil {
			children = append(children, sprintExpr(stmt.Increment))
		}
		return sexprBlock(depth, "while", children)
	case *FunctionStmt:
		children := make([]string, len(stmt.Body))
		for i, s := range stmt.Body {
			children[i] = sprintStmt(s, depth+1)
		}
		return sexprBlock(depth, "fun "+stmt.Name.Lexeme, children)
	case *ReturnStmt:
		if stmt.Value == nil {
			return sexpr(depth, "return")
		}
		return sexpr(depth, "return", sprintExpr(stmt.Value))
	case *BreakStmt:
		return sexpr(depth, "break")
	case *ContinueStmt:
		return sexpr(depth, "continue")
	case *ClassStmt:
		children := make([]string, len(stmt.Methods))
		for i, m := range stmt.Methods {
			children[i] = sprintStmt(m, depth+1)
		}
		name := "class " + stmt.Name.Lexeme
		if stmt.Superclass != nil {
			name += " < " + stmt.Superclass.Name.Lexeme
		}
		return sexprBlock(depth, name, children)
	default:
		panic(fmt.Sprintf("ast.Print: unhandled stmt type %T", stmt))
	}
}

func sprintExpr(expr Expr) string {
	switch expr := expr.(type) {
	case *LiteralExpr:
		if expr.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", expr.Value)
	case *VariableExpr:
		return expr.Name.Lexeme
	case *AssignExpr:
		return fmt.Sprintf("(= %s %s)", expr.Name.Lexeme, sprintExpr(expr.Value))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", expr.Op.Lexeme, sprintExpr(expr.Left), sprintExpr(expr.Right))
	case *LogicalExpr:
		return fmt.Sprintf("(%s %s %s)", expr.Op.Lexeme, sprintExpr(expr.Left), sprintExpr(expr.Right))
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", expr.Op.Lexeme, sprintExpr(expr.Right))
	case *TernaryExpr:
		return fmt.Sprintf("(?: %s %s %s)", sprintExpr(expr.Cond), sprintExpr(expr.Then), sprintExpr(expr.Else))
	case *GroupingExpr:
		return fmt.Sprintf("(group %s)", sprintExpr(expr.Inner))
	case *CallExpr:
		args := make([]string, len(expr.Args))
		for i, a := range expr.Args {
			args[i] = sprintExpr(a)
		}
		return fmt.Sprintf("(call %s %s)", sprintExpr(expr.Callee), strings.Join(args, " "))
	case *GetExpr:
		return fmt.Sprintf("(. %s %s)", sprintExpr(expr.Object), expr.Name.Lexeme)
	case *SetExpr:
		return fmt.Sprintf("(.= %s %s %s)", sprintExpr(expr.Object), expr.Name.Lexeme, sprintExpr(expr.Value))
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return "super." + expr.Method.Lexeme
	default:
		panic(fmt.Sprintf("ast.Print: unhandled expr type %T", expr))
	}
}

func sexpr(depth int, name string, children ...string) string {
	indent := strings.Repeat("  ", depth)
	if len(children) == 0 {
		return fmt.Sprintf("%s(%s)", indent, name)
	}
	return fmt.Sprintf("%s(%s %s)", indent, name, strings.Join(children, " "))
}

func sexprBlock(depth int, name string, children []string) string {
	indent := strings.Repeat("  ", depth)
	if len(children) == 0 {
		return fmt.Sprintf("%s(%s)", indent, name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s\n", indent, name)
	for i, c := range children {
		b.WriteString(c)
		if i < len(children)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString(")")
	return b.String()
}
