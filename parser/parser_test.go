package parser_test

import (
	"testing"

	"github.com/halprin/glox/ast"
	"github.com/halprin/glox/internal/loxerr"
	"github.com/halprin/glox/parser"
	"github.com/halprin/glox/scanner"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *loxerr.Errors) {
	t.Helper()
	var errs loxerr.Errors
	tokens := scanner.New(src, &errs).ScanTokens()
	stmts := parser.New(tokens, &errs).Parse()
	return stmts, &errs
}

func TestParsePrintsAsExpectedSExpressions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "left associative addition",
			src:  `1 + 2 + 3;`,
			want: "(expr (+ (+ 1 2) 3))",
		},
		{
			name: "precedence of * over +",
			src:  `1 + 2 * 3;`,
			want: "(expr (+ 1 (* 2 3)))",
		},
		{
			name: "ternary binds looser than or",
			src:  `true or false ? 1 : 2;`,
			want: "(expr (?: (or true false) 1 2))",
		},
		{
			name: "modulo",
			src:  `7 % 2;`,
			want: "(expr (% 7 2))",
		},
		{
			name: "grouping",
			src:  `(1 + 2) * 3;`,
			want: "(expr (* (group (+ 1 2)) 3))",
		},
		{
			name: "assignment is right associative and nests as an expression",
			src:  `a = b = 1;`,
			want: "(expr (= a (= b 1)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, errs := parse(t, tt.src)
			if errs.HasErrors() {
				t.Fatalf("unexpected errors: %v", errs.Err())
			}
			if got := ast.SprintStmts(stmts); got != tt.want {
				t.Errorf("SprintStmts() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, errs := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Err())
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(stmts))
	}
	block, ok := stmts[0].(*ast.BlockStmt)
	if !ok || len(block.Stmts) != 2 {
		t.Fatalf("expected the for loop to desugar to a 2-statement block, got %#v", stmts[0])
	}
	if _, ok := block.Stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("expected the first statement to be the initializer, got %#v", block.Stmts[0])
	}
	whileStmt, ok := block.Stmts[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected the second statement to be the desugared while loop, got %#v", block.Stmts[1])
	}
	if _, ok := whileStmt.Body.(*ast.PrintStmt); !ok {
		t.Errorf("expected the while body to be the original loop body, got %#v", whileStmt.Body)
	}
	if whileStmt.Increment == nil {
		t.Error("expected the desugared while loop to carry the increment separately from the body")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantMessage string
	}{
		{
			name:        "missing expression",
			src:         `var a = ;`,
			wantMessage: "Expect expression.",
		},
		{
			name:        "invalid assignment target",
			src:         `1 + 2 = 3;`,
			wantMessage: "Invalid assignment target.",
		},
		{
			name:        "missing semicolon",
			src:         `var a = 1`,
			wantMessage: "Expect ';' after variable declaration.",
		},
		{
			name:        "missing closing paren",
			src:         `print (1 + 2;`,
			wantMessage: "Expect ')' after expression.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parse(t, tt.src)
			if !errs.HasErrors() {
				t.Fatal("expected an error, got none")
			}
			all := errs.All()
			found := false
			for _, e := range all {
				if e.Message == tt.wantMessage {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error with message %q, got %v", tt.wantMessage, all)
			}
		})
	}
}

func TestParseSynchronizesAfterError(t *testing.T) {
	stmts, errs := parse(t, `var a = ; var b = 2; print b;`)
	if !errs.HasErrors() {
		t.Fatal("expected an error")
	}
	// The broken declaration is dropped, but the parser should recover and
	// parse the remaining, valid statements.
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements to survive synchronization, got %d: %#v", len(stmts), stmts)
	}
}
