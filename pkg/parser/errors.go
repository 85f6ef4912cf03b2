package parser

import (
	"fmt"
	"strings"

	"roadman/interpreter-go/pkg/lexer"
)

// ParseError describes a single grammar violation, positioned at the
// offending token.
type ParseError struct {
	Message string
	Line    int
	Column  int
	AtEnd   bool   // the offending token was EOF
	Lexeme  string // the offending token's text when not at end
}

func errorAt(token lexer.Token, message string) *ParseError {
	return &ParseError{
		Message: message,
		Line:    token.Line,
		Column:  token.Column,
		AtEnd:   token.Type == lexer.EOF,
		Lexeme:  token.Value,
	}
}

func (e *ParseError) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("[line %d:%d] Error at end: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("[line %d:%d] Error at '%s': %s", e.Line, e.Column, e.Lexeme, e.Message)
}

// ErrorList aggregates every violation found in one parse. Recovery at
// statement boundaries lets the parser keep going after an error, but any
// error still aborts the unit: no AST is produced.
type ErrorList []*ParseError

func (el ErrorList) Error() string {
	msgs := make([]string, 0, len(el))
	for _, e := range el {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Err returns the list as an error, or nil when empty.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}
