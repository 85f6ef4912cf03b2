package interpreter

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"roadman/interpreter-go/pkg/ast"
	"roadman/interpreter-go/pkg/lexer"
	"roadman/interpreter-go/pkg/runtime"
)

// RuntimeError is an evaluation-time failure: undefined variable, wrong
// arity, non-numeric operand, division by zero, calling a non-callable.
// It halts the remainder of the unit being interpreted and nothing else;
// the interpreter and its environments stay usable.
type RuntimeError struct {
	Message string
	Token   lexer.Token // offending token when one is known
}

func (e *RuntimeError) Error() string {
	if e.Token.Line > 0 {
		return fmt.Sprintf("[line %d:%d] %s", e.Token.Line, e.Token.Column, e.Message)
	}
	return e.Message
}

func runtimeErrorAt(token lexer.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Token: token}
}

// Interpreter walks a Roadman AST and executes it. One instance owns one
// global environment; interactive mode reuses a single instance so state
// persists across inputs. Not safe for concurrent use.
type Interpreter struct {
	globals *runtime.Environment
	stdout  io.Writer
}

// Option configures an Interpreter at construction.
type Option func(*Interpreter)

// WithStdout redirects the output primitive (used by tests and embedders).
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

// New returns an interpreter whose global environment has the native
// callables registered.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		globals: runtime.NewEnvironment(nil),
		stdout:  os.Stdout,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.registerBuiltins()
	return i
}

// Globals returns the interpreter's global environment.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// Interpret executes each statement of the program in order. A runtime
// error stops the remaining statements and is returned as a value; the
// interpreter never panics and never terminates the host. Callers own the
// reporting.
func (i *Interpreter) Interpret(program *ast.Program) error {
	for _, stmt := range program.Statements {
		ctrl, err := i.executeStatement(stmt, i.globals)
		if err != nil {
			return err
		}
		switch ctrl.kind {
		case ctrlReturn:
			return runtimeErrorAt(ctrl.token, "Cannot use 'returnz' outside a function.")
		case ctrlBreak:
			return runtimeErrorAt(ctrl.token, "Cannot use 'stopit' outside a loop.")
		}
	}
	return nil
}

func undefinedVariable(token lexer.Token, env *runtime.Environment) *RuntimeError {
	msg := fmt.Sprintf("Undefined variable '%s'.", token.Value)
	if best := closestName(token.Value, env.Names()); best != "" {
		msg = fmt.Sprintf("%s Did you mean '%s'?", msg, best)
	}
	return &RuntimeError{Message: msg, Token: token}
}

// closestName ranks visible names against the misspelled one and returns
// the best match, or "" when nothing is close.
func closestName(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
