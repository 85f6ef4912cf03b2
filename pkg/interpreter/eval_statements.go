package interpreter

import (
	"fmt"

	"roadman/interpreter-go/pkg/ast"
	"roadman/interpreter-go/pkg/lexer"
	"roadman/interpreter-go/pkg/runtime"
)

// control is the outcome of executing one statement. Most statements
// complete normally; returnz and stopit produce an outcome that outer
// statements observe and either consume or re-propagate. This replaces
// exception-style unwinding: a WhileLoop consumes ctrlBreak, a function
// call consumes ctrlReturn, a Block passes both through untouched.
type ctrlKind int

const (
	ctrlNormal ctrlKind = iota
	ctrlReturn
	ctrlBreak
)

type control struct {
	kind  ctrlKind
	value runtime.Value // the returnz value, nil-valued for the others
	token lexer.Token   // keyword that produced the outcome, for errors
}

var normal = control{kind: ctrlNormal}

func (i *Interpreter) executeStatement(stmt ast.Statement, env *runtime.Environment) (control, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(s.Expr, env)
		return normal, err
	case *ast.VarDeclaration:
		return i.executeVarDeclaration(s, env)
	case *ast.Block:
		return i.executeBlock(s.Statements, runtime.NewEnvironment(env))
	case *ast.IfStatement:
		return i.executeIf(s, env)
	case *ast.WhileLoop:
		return i.executeWhile(s, env)
	case *ast.BreakStatement:
		return control{kind: ctrlBreak, token: s.Keyword}, nil
	case *ast.FunctionDeclaration:
		env.Define(s.Name.Value, &runtime.FunctionValue{Declaration: s, Closure: env})
		return normal, nil
	case *ast.ReturnStatement:
		return i.executeReturn(s, env)
	default:
		// The statement variant set is closed; a new variant without a
		// case here is a bug in this package, not a user error.
		panic(fmt.Sprintf("interpreter: unhandled statement type %s", stmt.NodeType()))
	}
}

func (i *Interpreter) executeVarDeclaration(stmt *ast.VarDeclaration, env *runtime.Environment) (control, error) {
	var value runtime.Value = runtime.NilValue{}
	if stmt.Initializer != nil {
		v, err := i.evaluateExpression(stmt.Initializer, env)
		if err != nil {
			return normal, err
		}
		value = v
	}
	env.Define(stmt.Name.Value, value)
	return normal, nil
}

// executeBlock runs statements in the given environment, re-propagating
// any non-normal outcome to the enclosing statement.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *runtime.Environment) (control, error) {
	for _, stmt := range statements {
		ctrl, err := i.executeStatement(stmt, env)
		if err != nil {
			return normal, err
		}
		if ctrl.kind != ctrlNormal {
			return ctrl, nil
		}
	}
	return normal, nil
}

func (i *Interpreter) executeIf(stmt *ast.IfStatement, env *runtime.Environment) (control, error) {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return normal, err
	}
	if isTruthy(cond) {
		return i.executeStatement(stmt.ThenBranch, env)
	}
	if stmt.ElseBranch != nil {
		return i.executeStatement(stmt.ElseBranch, env)
	}
	return normal, nil
}

// executeWhile re-evaluates the condition before each iteration. A
// ctrlBreak outcome from the body terminates the loop; ctrlReturn
// propagates outward to the enclosing call.
func (i *Interpreter) executeWhile(stmt *ast.WhileLoop, env *runtime.Environment) (control, error) {
	for {
		cond, err := i.evaluateExpression(stmt.Condition, env)
		if err != nil {
			return normal, err
		}
		if !isTruthy(cond) {
			return normal, nil
		}
		ctrl, err := i.executeStatement(stmt.Body, env)
		if err != nil {
			return normal, err
		}
		switch ctrl.kind {
		case ctrlBreak:
			return normal, nil
		case ctrlReturn:
			return ctrl, nil
		}
	}
}

func (i *Interpreter) executeReturn(stmt *ast.ReturnStatement, env *runtime.Environment) (control, error) {
	var value runtime.Value = runtime.NilValue{}
	if stmt.Value != nil {
		v, err := i.evaluateExpression(stmt.Value, env)
		if err != nil {
			return normal, err
		}
		value = v
	}
	return control{kind: ctrlReturn, value: value, token: stmt.Keyword}, nil
}
