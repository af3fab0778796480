package token_test

import (
	"testing"

	"github.com/halprin/glox/token"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  token.Type
	}{
		{"var", token.Var},
		{"class", token.Class},
		{"this", token.This},
		{"super", token.Super},
		{"break", token.Break},
		{"continue", token.Continue},
		{"foo", token.Ident},
		{"_", token.Ident},
		{"classify", token.Ident},
	}
	for _, tt := range tests {
		if got := token.LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.ident, got, tt.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  token.Type
		want string
	}{
		{token.Plus, "+"},
		{token.GreaterEqual, ">="},
		{token.Fun, "fun"},
		{token.EOF, "EOF"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
