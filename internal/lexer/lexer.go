// Package lexer turns Tarnish source text into an ordered token stream.
package lexer

import (
	"fmt"

	"github.com/PA055/Tarnish/internal/diag"
	"github.com/PA055/Tarnish/internal/token"
)

// Lexer scans Tarnish source code one token at a time. It tracks a
// start/current cursor pair plus the current line, and reports bad input
// through a diagnostic sink instead of printing directly.
type Lexer struct {
	src     string
	start   int
	current int
	line    int
	sink    *diag.Sink
}

// New creates a Lexer over src. Diagnostics (unterminated strings, unknown
// characters) are reported to sink; sink may be nil to discard them.
func New(src string, sink *diag.Sink) *Lexer {
	return &Lexer{src: src, start: 0, current: 0, line: 1, sink: sink}
}

// ScanTokens tokenizes the entire source and returns the token stream,
// always terminated by exactly one EOF token. The lexer never aborts:
// bad characters and unterminated strings are reported through the sink
// and scanning continues, so the parser always sees a complete stream.
func (l *Lexer) ScanTokens() []token.Token {
	var tokens []token.Token
	for !l.atEnd() {
		l.start = l.current
		tok, ok := l.scanToken()
		if ok {
			tokens = append(tokens, tok)
		}
	}
	tokens = append(tokens, token.New(token.EOF, "", l.line))
	return tokens
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.src)
}

func (l *Lexer) advance() byte {
	c := l.src[l.current]
	l.current++
	return c
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.src) {
		return 0
	}
	return l.src[l.current+1]
}

func (l *Lexer) peekAt(offset int) byte {
	idx := l.current + offset
	if idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

// match consumes the current character if it equals expected, reporting
// whether it did. Used for the greedy multi-character operator lookahead.
func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.src[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) lexeme() string {
	return l.src[l.start:l.current]
}

func (l *Lexer) simple(kind token.Kind) (token.Token, bool) {
	return token.New(kind, l.lexeme(), l.line), true
}

// scanToken produces the next token, or (zero, false) when the character
// consumed was whitespace/comment and nothing should be emitted.
func (l *Lexer) scanToken() (token.Token, bool) {
	c := l.advance()

	switch c {
	case ' ', '\r', '\t':
		return token.Token{}, false
	case '\n':
		l.line++
		return token.Token{}, false
	case '(':
		return l.simple(token.LeftParen)
	case ')':
		return l.simple(token.RightParen)
	case '{':
		return l.simple(token.LeftBrace)
	case '}':
		return l.simple(token.RightBrace)
	case ',':
		return l.simple(token.Comma)
	case '.':
		if isDigit(l.peek()) {
			return l.readNumber()
		}
		return l.simple(token.Dot)
	case ';':
		return l.simple(token.Semicolon)
	case ':':
		return l.simple(token.Colon)
	case '?':
		return l.simple(token.Question)

	case '~':
		if l.match('~') {
			return l.simple(token.DoubleTilde)
		}
		return l.simple(token.Tilde)

	case '-':
		switch {
		case l.match('-'):
			return l.simple(token.MinusMinus)
		case l.match('='):
			return l.simple(token.MinusEqual)
		case l.match('>'):
			return l.simple(token.Arrow)
		default:
			return l.simple(token.Minus)
		}
	case '+':
		switch {
		case l.match('+'):
			return l.simple(token.PlusPlus)
		case l.match('='):
			return l.simple(token.PlusEqual)
		default:
			return l.simple(token.Plus)
		}
	case '*':
		switch {
		case l.match('*'):
			return l.simple(token.StarStar)
		case l.match('='):
			return l.simple(token.StarEqual)
		default:
			return l.simple(token.Star)
		}
	case '%':
		if l.match('=') {
			return l.simple(token.PercentEqual)
		}
		return l.simple(token.Percent)

	case '/':
		switch {
		case l.match('/'):
			l.skipLineComment()
			return token.Token{}, false
		case l.match('*'):
			l.skipBlockComment()
			return token.Token{}, false
		case l.match('='):
			return l.simple(token.SlashEqual)
		default:
			return l.simple(token.Slash)
		}

	case '!':
		if l.match('=') {
			return l.simple(token.BangEqual)
		}
		return l.simple(token.Bang)
	case '=':
		if l.match('=') {
			return l.simple(token.EqualEqual)
		}
		return l.simple(token.Equal)

	case '<':
		switch {
		case l.match('<'):
			if l.match('=') {
				return l.simple(token.LessLessEqual)
			}
			return l.simple(token.LessLess)
		case l.match('='):
			return l.simple(token.LessEqual)
		default:
			return l.simple(token.Less)
		}
	case '>':
		switch {
		case l.match('>'):
			if l.match('=') {
				return l.simple(token.GreaterGreaterEqual)
			}
			return l.simple(token.GreaterGreater)
		case l.match('='):
			return l.simple(token.GreaterEqual)
		default:
			return l.simple(token.Greater)
		}

	case '&':
		switch {
		case l.match('&'):
			return l.simple(token.AndAnd)
		case l.match('='):
			return l.simple(token.AmpEqual)
		default:
			return l.simple(token.Amp)
		}
	case '|':
		switch {
		case l.match('|'):
			return l.simple(token.OrOr)
		case l.match('='):
			return l.simple(token.PipeEqual)
		default:
			return l.simple(token.Pipe)
		}
	case '^':
		if l.match('=') {
			return l.simple(token.CaretEqual)
		}
		return l.simple(token.Caret)

	case '"':
		return l.readString()

	default:
		switch {
		case isDigit(c):
			return l.readNumber()
		case isAlpha(c):
			return l.readIdentifier()
		default:
			l.report(fmt.Sprintf("Unexpected character '%c'.", c))
			return token.Token{}, false
		}
	}
}

func (l *Lexer) report(message string) {
	if l.sink != nil {
		l.sink.ReportLine(l.line, message)
	}
}

func (l *Lexer) skipLineComment() {
	for l.peek() != '\n' && !l.atEnd() {
		l.advance()
	}
}

// skipBlockComment consumes a /* ... */ comment. Nesting is supported:
// every additional "/*" increases the depth, and only a balanced "*/"
// closes the outermost one.
func (l *Lexer) skipBlockComment() {
	depth := 1
	for depth > 0 && !l.atEnd() {
		switch {
		case l.peek() == '/' && l.peekNext() == '*':
			l.advance()
			l.advance()
			depth++
		case l.peek() == '*' && l.peekNext() == '/':
			l.advance()
			l.advance()
			depth--
		case l.peek() == '\n':
			l.line++
			l.advance()
		default:
			l.advance()
		}
	}
	if depth > 0 {
		l.report("Unterminated block comment.")
	}
}
