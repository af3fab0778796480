package token

import "strconv"

var typeStrings = [...]string{
	Illegal:       "Illegal",
	keywordsStart: "keywordsStart",
	Print:         "print",
	Var:           "var",
	True:          "true",
	False:         "false",
	Nil:           "nil",
	If:            "if",
	Else:          "else",
	And:           "and",
	Or:            "or",
	While:         "while",
	For:           "for",
	Break:         "break",
	Continue:      "continue",
	Fun:           "fun",
	Return:        "return",
	Class:         "class",
	This:          "this",
	Super:         "super",
	keywordsEnd:   "keywordsEnd",
	Ident:         "identifier",
	String:        "string",
	Number:        "number",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	Assign:        "=",
	Plus:          "+",
	Minus:         "-",
	Asterisk:      "*",
	Slash:         "/",
	Percent:       "%",
	Question:      "?",
	Colon:         ":",
	Less:          "<",
	LessEqual:     "<=",
	Greater:       ">",
	GreaterEqual:  ">=",
	Equal:         "==",
	NotEqual:      "!=",
	Bang:          "!",
	OpenParen:     "(",
	CloseParen:    ")",
	OpenBrace:     "{",
	CloseBrace:    "}",
	EOF:           "EOF",
}

// String returns the name that stringer would generate for t from the -linecomment directive in token.go.
func (t Type) String() string {
	if int(t) < len(typeStrings) {
		return typeStrings[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}
