package lexer

import "fmt"

// TokenType classifies a lexical unit of Roadman source.
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals and names
	IDENTIFIER
	DIGIT // numeric literal: 42, 3.14
	WORD  // string literal, quotes stripped

	// Keywords
	INNIT   // innit (if)
	ELSEWAY // elseway (else)
	LOOPZ   // loopz (while)
	STOPIT  // stopit (break)
	CONSTE  // conste (constant declaration)
	GIMME   // gimme (mutable declaration)
	FAM     // fam (function declaration)
	RETURNZ // returnz (return)
	TRUE
	FALSE

	// Reserved but never parsed: pattern-matching keywords the language
	// claims for future use.
	SWITCHUP
	CASEZ
	DEFEND

	// Reserved type names. Tokenized as keywords, never type-checked.
	TYPE_DIGIT
	TYPE_WORD
	TYPE_BOOLA
	TYPE_LISTZ
	TYPE_MAPZ

	// Two-character operators
	EQ_EQ      // ==
	BANG_EQ    // !=
	LESS_EQ    // <=
	GREATER_EQ // >=
	AND        // &&
	OR         // ||

	// Single-character operators and punctuation
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	BANG      // !
	EQ        // =
	LESS      // <
	GREATER   // >
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;
	COLON     // :
)

var tokenNames = [...]string{
	EOF:        "EOF",
	ILLEGAL:    "ILLEGAL",
	IDENTIFIER: "IDENTIFIER",
	DIGIT:      "DIGIT",
	WORD:       "WORD",
	INNIT:      "INNIT",
	ELSEWAY:    "ELSEWAY",
	LOOPZ:      "LOOPZ",
	STOPIT:     "STOPIT",
	CONSTE:     "CONSTE",
	GIMME:      "GIMME",
	FAM:        "FAM",
	RETURNZ:    "RETURNZ",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	SWITCHUP:   "SWITCHUP",
	CASEZ:      "CASEZ",
	DEFEND:     "DEFEND",
	TYPE_DIGIT: "TYPE_DIGIT",
	TYPE_WORD:  "TYPE_WORD",
	TYPE_BOOLA: "TYPE_BOOLA",
	TYPE_LISTZ: "TYPE_LISTZ",
	TYPE_MAPZ:  "TYPE_MAPZ",
	EQ_EQ:      "EQ_EQ",
	BANG_EQ:    "BANG_EQ",
	LESS_EQ:    "LESS_EQ",
	GREATER_EQ: "GREATER_EQ",
	AND:        "AND",
	OR:         "OR",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	PERCENT:    "PERCENT",
	BANG:       "BANG",
	EQ:         "EQ",
	LESS:       "LESS",
	GREATER:    "GREATER",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	COMMA:      "COMMA",
	DOT:        "DOT",
	SEMICOLON:  "SEMICOLON",
	COLON:      "COLON",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords maps reserved spellings to their token types. Built-in
// functions like say are plain identifiers resolved in the interpreter's
// environment, not keywords.
var keywords = map[string]TokenType{
	"innit":    INNIT,
	"elseway":  ELSEWAY,
	"loopz":    LOOPZ,
	"stopit":   STOPIT,
	"switchup": SWITCHUP,
	"casez":    CASEZ,
	"defend":   DEFEND,
	"conste":   CONSTE,
	"gimme":    GIMME,
	"fam":      FAM,
	"returnz":  RETURNZ,
	"true":     TRUE,
	"false":    FALSE,
	"digit":    TYPE_DIGIT,
	"word":     TYPE_WORD,
	"boola":    TYPE_BOOLA,
	"listz":    TYPE_LISTZ,
	"mapz":     TYPE_MAPZ,
}

// LookupIdent returns the keyword token type for a spelling, or IDENTIFIER.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENTIFIER
}

// Token is an immutable lexical unit with its source position.
// For WORD tokens Value holds the string contents with the surrounding
// quotes stripped; for every other kind it holds the matched source text.
type Token struct {
	Type   TokenType
	Value  string
	Line   int // 1-based
	Column int // 1-based
}

// Position returns a formatted position string for error reporting.
func (t Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Value, t.Position())
}

// Diagnostic is a lex-time problem the scanner recovered from. The lexer
// never prints; callers decide how to surface these.
type Diagnostic struct {
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("[line %d:%d] %s", d.Line, d.Column, d.Message)
}
