package lexer

import (
	"strconv"
	"strings"

	"github.com/PA055/Tarnish/internal/token"
)

// isDigit reports whether c is an ASCII decimal digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isAlpha reports whether c can start or continue an identifier.
func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// readString scans a string literal. A literal opening with `"""` is a
// multi-line string terminated by a balanced `"""`; otherwise it is a
// single-line string terminated by the next `"` (there are no escape
// sequences), and a raw newline or EOF before that quote is an
// unterminated-string error.
func (l *Lexer) readString() (token.Token, bool) {
	if l.peek() == '"' && l.peekNext() == '"' {
		return l.readTripleQuotedString()
	}

	var sb strings.Builder
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.report("Unterminated string.")
			return token.Token{}, false
		}
		sb.WriteByte(l.advance())
	}
	if l.atEnd() {
		l.report("Unterminated string.")
		return token.Token{}, false
	}
	l.advance() // closing quote
	return token.NewLiteral(token.String, l.lexeme(), sb.String(), l.line), true
}

func (l *Lexer) readTripleQuotedString() (token.Token, bool) {
	l.advance() // second quote
	l.advance() // third quote

	var sb strings.Builder
	for !l.atEnd() {
		if l.peek() == '"' && l.peekAt(1) == '"' && l.peekAt(2) == '"' {
			l.advance()
			l.advance()
			l.advance()
			return token.NewLiteral(token.String, l.lexeme(), sb.String(), l.line), true
		}
		if l.peek() == '\n' {
			l.line++
		}
		sb.WriteByte(l.advance())
	}
	l.report("Unterminated triple-quoted string.")
	return token.Token{}, false
}

// readNumber scans an integer or float literal: one or more digits,
// optionally followed by '.' and at least one more digit. The stored
// literal is always a float64; the parser decides Int vs Float from the
// lexeme.
func (l *Lexer) readNumber() (token.Token, bool) {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	lexeme := l.lexeme()
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		l.report("Malformed number literal '" + lexeme + "'.")
		return token.Token{}, false
	}
	return token.NewLiteral(token.Number, lexeme, value, l.line), true
}

func (l *Lexer) readIdentifier() (token.Token, bool) {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	lexeme := l.lexeme()
	return token.New(token.Lookup(lexeme), lexeme, l.line), true
}
