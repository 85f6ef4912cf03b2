// Package driver ties the language pipeline together: it turns source
// text into tokens, tokens into a syntax tree, and hands the tree to the
// interpreter or the transpiler. Commands and tests go through this
// package instead of wiring the stages by hand.
package driver

import (
	"fmt"
	"os"
	"strings"

	"roadman/interpreter-go/pkg/ast"
	"roadman/interpreter-go/pkg/interpreter"
	"roadman/interpreter-go/pkg/lexer"
	"roadman/interpreter-go/pkg/parser"
	"roadman/interpreter-go/pkg/transpiler"
)

// SyntaxError aggregates everything the front end found wrong with a
// piece of source: lexical diagnostics first, then parse errors.
type SyntaxError struct {
	Diagnostics []lexer.Diagnostic
	ParseErrors parser.ErrorList
}

func (e *SyntaxError) Error() string {
	lines := make([]string, 0, len(e.Diagnostics)+len(e.ParseErrors))
	for _, d := range e.Diagnostics {
		lines = append(lines, d.Error())
	}
	for _, p := range e.ParseErrors {
		lines = append(lines, p.Error())
	}
	return strings.Join(lines, "\n")
}

// Parse runs the lexer and parser over source. Lexical diagnostics do
// not stop the parse; they are collected alongside any parse errors so a
// caller can report every problem in one pass.
func Parse(source string) (*ast.Program, error) {
	tokens, diagnostics := lexer.Tokenize(source)
	program, parseErr := parser.Parse(tokens)
	if len(diagnostics) > 0 || parseErr != nil {
		parseErrs, _ := parseErr.(parser.ErrorList)
		return nil, &SyntaxError{Diagnostics: diagnostics, ParseErrors: parseErrs}
	}
	return program, nil
}

// RunSource parses and evaluates source in the given interpreter. Syntax
// errors are returned before any statement runs.
func RunSource(interp *interpreter.Interpreter, source string) error {
	program, err := Parse(source)
	if err != nil {
		return err
	}
	return interp.Interpret(program)
}

// RunFile reads path and evaluates it in the given interpreter.
func RunFile(interp *interpreter.Interpreter, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return RunSource(interp, string(source))
}

// TranspileSource parses source and renders it as JavaScript.
func TranspileSource(source string) (string, error) {
	program, err := Parse(source)
	if err != nil {
		return "", err
	}
	return transpiler.Transpile(program), nil
}

// TranspileFile reads path and renders it as JavaScript.
func TranspileFile(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return TranspileSource(string(source))
}
