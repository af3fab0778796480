// Package scanner defines Scanner, which scans Lox source code into a
// sequence of lexical tokens.
package scanner

import (
	"strconv"

	"github.com/halprin/glox/internal/loxerr"
	"github.com/halprin/glox/token"
)

const nullChar = 0

// Scanner scans Lox source code into lexical tokens.
//
// It operates with a single forward cursor (pos) and a mark (start) at the
// beginning of the lexeme currently being scanned; the scanned substring is
// src[start:pos].
type Scanner struct {
	src   string
	start int
	pos   int
	line  int

	report loxerr.Reporter
}

// New constructs a Scanner which will scan src, reporting lexical errors to reporter.
func New(src string, reporter loxerr.Reporter) *Scanner {
	return &Scanner{src: src, line: 1, report: reporter}
}

// ScanTokens scans the whole source and returns the resulting tokens, always
// ending with a single EOF token. Lexical errors are reported via the
// Scanner's Reporter; the offending lexeme contributes no token and scanning
// continues from the character after it.
func (s *Scanner) ScanTokens() []token.Token {
	var tokens []token.Token
	for {
		tok, ok := s.scanToken()
		if ok {
			tokens = append(tokens, tok)
		}
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (s *Scanner) scanToken() (token.Token, bool) {
	s.skipWhitespaceAndComments()
	s.start = s.pos
	startLine := s.line

	if s.atEnd() {
		return s.token(token.EOF, nil, startLine), true
	}

	c := s.advance()
	switch c {
	case ';':
		return s.token(token.Semicolon, nil, startLine), true
	case ',':
		return s.token(token.Comma, nil, startLine), true
	case '.':
		return s.token(token.Dot, nil, startLine), true
	case '(':
		return s.token(token.OpenParen, nil, startLine), true
	case ')':
		return s.token(token.CloseParen, nil, startLine), true
	case '{':
		return s.token(token.OpenBrace, nil, startLine), true
	case '}':
		return s.token(token.CloseBrace, nil, startLine), true
	case '+':
		return s.token(token.Plus, nil, startLine), true
	case '-':
		return s.token(token.Minus, nil, startLine), true
	case '*':
		return s.token(token.Asterisk, nil, startLine), true
	case '/':
		return s.token(token.Slash, nil, startLine), true
	case '%':
		return s.token(token.Percent, nil, startLine), true
	case '?':
		return s.token(token.Question, nil, startLine), true
	case ':':
		return s.token(token.Colon, nil, startLine), true
	case '!':
		if s.match('=') {
			return s.token(token.NotEqual, nil, startLine), true
		}
		return s.token(token.Bang, nil, startLine), true
	case '=':
		if s.match('=') {
			return s.token(token.Equal, nil, startLine), true
		}
		return s.token(token.Assign, nil, startLine), true
	case '<':
		if s.match('=') {
			return s.token(token.LessEqual, nil, startLine), true
		}
		return s.token(token.Less, nil, startLine), true
	case '>':
		if s.match('=') {
			return s.token(token.GreaterEqual, nil, startLine), true
		}
		return s.token(token.Greater, nil, startLine), true
	case '"':
		return s.scanString(startLine)
	default:
		switch {
		case isDigit(c):
			return s.scanNumber(startLine), true
		case isAlpha(c):
			return s.scanIdent(startLine), true
		default:
			s.report.Report(startLine, "", "Unexpected character.")
			return token.Token{}, false
		}
	}
}

func (s *Scanner) skipWhitespaceAndComments() {
	for !s.atEnd() {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.advance()
		case '\n':
			s.advance()
			s.line++
		case '/':
			if s.peekNext() == '/' {
				for !s.atEnd() && s.peek() != '\n' {
					s.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) scanString(startLine int) (token.Token, bool) {
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		s.report.Report(startLine, "", "Unterminated string.")
		return token.Token{}, false
	}
	s.advance() // consume closing '"'
	literal := s.src[s.start+1 : s.pos-1]
	return s.token(token.String, literal, startLine), true
}

func (s *Scanner) scanNumber(startLine int) token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	lexeme := s.src[s.start:s.pos]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		panic("scanner: number lexeme failed to parse as float64: " + lexeme)
	}
	return s.token(token.Number, value, startLine)
}

func (s *Scanner) scanIdent(startLine int) token.Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	ident := s.src[s.start:s.pos]
	return s.token(token.LookupIdent(ident), nil, startLine)
}

func (s *Scanner) token(typ token.Type, literal any, startLine int) token.Token {
	return token.Token{
		Type:    typ,
		Lexeme:  s.src[s.start:s.pos],
		Literal: literal,
		Line:    startLine,
	}
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return nullChar
	}
	return s.src[s.pos]
}

func (s *Scanner) peekNext() byte {
	if s.pos+1 >= len(s.src) {
		return nullChar
	}
	return s.src[s.pos+1]
}

func (s *Scanner) match(want byte) bool {
	if s.peek() != want {
		return false
	}
	s.pos++
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
