package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer scans Roadman source text into tokens. It never aborts: malformed
// input produces a Diagnostic and scanning continues with the next rune.
type Lexer struct {
	source string

	start    int // byte offset of the token being scanned
	current  int // byte offset of the next rune to read
	line     int
	column   int // column of the next rune to read, 1-based
	startCol int // column where the current token began

	tokens      []Token
	diagnostics []Diagnostic
}

// New creates a Lexer over the given source text.
func New(source string) *Lexer {
	return &Lexer{source: source, line: 1, column: 1}
}

// Tokenize scans the whole source and returns the token sequence, always
// terminated by exactly one EOF token, together with any diagnostics.
func Tokenize(source string) ([]Token, []Diagnostic) {
	return New(source).Tokenize()
}

// Tokenize scans the remaining input to completion.
func (l *Lexer) Tokenize() ([]Token, []Diagnostic) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startCol = l.column
		l.scanToken()
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Line: l.line, Column: l.column})
	return l.tokens, l.diagnostics
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	l.column++
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.current >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return r
}

// match consumes the next rune only when it equals expected.
func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) newline() {
	l.line++
	l.column = 1
}

func (l *Lexer) addToken(tt TokenType) {
	l.addTokenValue(tt, l.source[l.start:l.current])
}

func (l *Lexer) addTokenValue(tt TokenType, value string) {
	l.tokens = append(l.tokens, Token{Type: tt, Value: value, Line: l.line, Column: l.startCol})
}

func (l *Lexer) report(format string, args ...any) {
	l.diagnostics = append(l.diagnostics, Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Line:    l.line,
		Column:  l.startCol,
	})
}

func (l *Lexer) scanToken() {
	ch := l.advance()

	switch ch {
	case ' ', '\r', '\t':
		// whitespace produces no token
	case '\n':
		l.newline()
	case '/':
		switch l.peek() {
		case '/':
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		case '*':
			l.blockComment()
		default:
			l.addToken(SLASH)
		}
	case '"':
		l.scanString()
	case '(':
		l.addToken(LPAREN)
	case ')':
		l.addToken(RPAREN)
	case '{':
		l.addToken(LBRACE)
	case '}':
		l.addToken(RBRACE)
	case '[':
		l.addToken(LBRACKET)
	case ']':
		l.addToken(RBRACKET)
	case ',':
		l.addToken(COMMA)
	case '.':
		l.addToken(DOT)
	case ';':
		l.addToken(SEMICOLON)
	case ':':
		l.addToken(COLON)
	case '+':
		l.addToken(PLUS)
	case '-':
		l.addToken(MINUS)
	case '*':
		l.addToken(STAR)
	case '%':
		l.addToken(PERCENT)
	case '=':
		if l.match('=') {
			l.addToken(EQ_EQ)
		} else {
			l.addToken(EQ)
		}
	case '!':
		if l.match('=') {
			l.addToken(BANG_EQ)
		} else {
			l.addToken(BANG)
		}
	case '<':
		if l.match('=') {
			l.addToken(LESS_EQ)
		} else {
			l.addToken(LESS)
		}
	case '>':
		if l.match('=') {
			l.addToken(GREATER_EQ)
		} else {
			l.addToken(GREATER)
		}
	case '&':
		if l.match('&') {
			l.addToken(AND)
		} else {
			l.report("Unexpected character '&'.")
		}
	case '|':
		if l.match('|') {
			l.addToken(OR)
		} else {
			l.report("Unexpected character '|'.")
		}
	default:
		switch {
		case isDigit(ch):
			l.scanNumber()
		case isIdentStart(ch):
			l.scanIdentifier()
		default:
			l.report("Unexpected character '%c'.", ch)
		}
	}
}

// blockComment consumes a /* ... */ span, tracking line numbers through it.
// The leading '/' is already consumed and '*' is next.
func (l *Lexer) blockComment() {
	l.advance() // the '*'
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.advance() == '\n' {
			l.newline()
		}
	}
	// Unterminated block comments run to end of input without complaint.
}

// scanString consumes a double-quoted string. No escape sequences are
// processed; a newline inside a string is taken literally.
func (l *Lexer) scanString() {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.advance() == '\n' {
			l.newline()
		}
	}

	if l.isAtEnd() {
		l.report("Unterminated string.")
		return
	}

	l.advance() // closing quote
	l.addTokenValue(WORD, l.source[l.start+1:l.current-1])
}

func (l *Lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	l.addToken(DIGIT)
}

func (l *Lexer) scanIdentifier() {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	l.addToken(LookupIdent(l.source[l.start:l.current]))
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
