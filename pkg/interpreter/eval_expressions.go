package interpreter

import (
	"fmt"
	"math"

	"roadman/interpreter-go/pkg/ast"
	"roadman/interpreter-go/pkg/lexer"
	"roadman/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: e.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: e.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: e.Value}, nil
	case *ast.ListLiteral:
		return i.evaluateListLiteral(e, env)
	case *ast.Variable:
		value, ok := env.Get(e.Token.Value)
		if !ok {
			return nil, undefinedVariable(e.Token, env)
		}
		return value, nil
	case *ast.Assignment:
		value, err := i.evaluateExpression(e.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.Assign(e.Name.Value, value) {
			return nil, undefinedVariable(e.Name, env)
		}
		return value, nil
	case *ast.Grouping:
		return i.evaluateExpression(e.Expr, env)
	case *ast.UnaryOp:
		return i.evaluateUnary(e, env)
	case *ast.BinaryOp:
		return i.evaluateBinary(e, env)
	case *ast.FunctionCall:
		return i.evaluateCall(e, env)
	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %s", expr.NodeType()))
	}
}

func (i *Interpreter) evaluateListLiteral(expr *ast.ListLiteral, env *runtime.Environment) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(expr.Elements))
	for _, el := range expr.Elements {
		v, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}
	return &runtime.ListValue{Elements: elements}, nil
}

func (i *Interpreter) evaluateUnary(expr *ast.UnaryOp, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case lexer.MINUS:
		n, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtimeErrorAt(expr.Operator, "%s: Operand must be a number.", expr.Operator.Value)
		}
		return runtime.NumberValue{Val: -n.Val}, nil
	case lexer.BANG:
		return runtime.BoolValue{Val: !isTruthy(right)}, nil
	default:
		panic(fmt.Sprintf("interpreter: unhandled unary operator %s", expr.Operator.Type))
	}
}

func (i *Interpreter) evaluateBinary(expr *ast.BinaryOp, env *runtime.Environment) (runtime.Value, error) {
	// Logical operators short-circuit: the right operand only evaluates
	// when the left doesn't decide the answer. The deciding operand is
	// the result, truthiness untouched.
	switch expr.Operator.Type {
	case lexer.OR, lexer.AND:
		left, err := i.evaluateExpression(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if expr.Operator.Type == lexer.OR {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}
		return i.evaluateExpression(expr.Right, env)
	}

	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	op := expr.Operator
	switch op.Type {
	case lexer.PLUS:
		if ln, lok := left.(runtime.NumberValue); lok {
			if rn, rok := right.(runtime.NumberValue); rok {
				return runtime.NumberValue{Val: ln.Val + rn.Val}, nil
			}
		}
		if ls, lok := left.(runtime.StringValue); lok {
			if rs, rok := right.(runtime.StringValue); rok {
				return runtime.StringValue{Val: ls.Val + rs.Val}, nil
			}
		}
		return nil, runtimeErrorAt(op, "%s: Operands must be two numbers or two strings.", op.Value)
	case lexer.MINUS:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: ln - rn}, nil
	case lexer.STAR:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: ln * rn}, nil
	case lexer.SLASH:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		if rn == 0 {
			return nil, runtimeErrorAt(op, "Division by zero.")
		}
		return runtime.NumberValue{Val: ln / rn}, nil
	case lexer.PERCENT:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		if rn == 0 {
			return nil, runtimeErrorAt(op, "Division by zero.")
		}
		return runtime.NumberValue{Val: math.Mod(ln, rn)}, nil
	case lexer.GREATER:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: ln > rn}, nil
	case lexer.GREATER_EQ:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: ln >= rn}, nil
	case lexer.LESS:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: ln < rn}, nil
	case lexer.LESS_EQ:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: ln <= rn}, nil
	case lexer.EQ_EQ:
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case lexer.BANG_EQ:
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	default:
		panic(fmt.Sprintf("interpreter: unhandled binary operator %s", op.Type))
	}
}

func numberOperands(op lexer.Token, left, right runtime.Value) (float64, float64, error) {
	ln, lok := left.(runtime.NumberValue)
	rn, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, runtimeErrorAt(op, "%s: Operands must be numbers.", op.Value)
	}
	return ln.Val, rn.Val, nil
}

func (i *Interpreter) evaluateCall(expr *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(expr.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, 0, len(expr.Arguments))
	for _, arg := range expr.Arguments {
		v, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		if len(args) != fn.Arity() {
			return nil, runtimeErrorAt(expr.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		return i.invokeFunction(fn, args, expr.Paren)
	case runtime.NativeFunctionValue:
		if len(args) != fn.Arity {
			return nil, runtimeErrorAt(expr.Paren, "Expected %d arguments but got %d.", fn.Arity, len(args))
		}
		result, err := fn.Impl(args)
		if err != nil {
			return nil, &RuntimeError{Message: err.Error(), Token: expr.Paren}
		}
		return result, nil
	default:
		return nil, runtimeErrorAt(expr.Paren, "Can only call functions.")
	}
}

// invokeFunction runs a user function in a fresh environment enclosed by
// the function's closure, not the caller's environment; that is what makes
// scoping lexical regardless of call site.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value, paren lexer.Token) (runtime.Value, error) {
	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Value, args[idx])
	}

	ctrl, err := i.executeBlock(fn.Declaration.Body.Statements, env)
	if err != nil {
		return nil, err
	}
	switch ctrl.kind {
	case ctrlReturn:
		return ctrl.value, nil
	case ctrlBreak:
		return nil, runtimeErrorAt(ctrl.token, "Cannot use 'stopit' outside a loop.")
	}
	return runtime.NilValue{}, nil
}

// isTruthy: absence is false, booleans are themselves, zero and the empty
// string are false, everything else (lists, callables) is true.
func isTruthy(value runtime.Value) bool {
	switch v := value.(type) {
	case runtime.NilValue:
		return false
	case runtime.BoolValue:
		return v.Val
	case runtime.NumberValue:
		return v.Val != 0
	case runtime.StringValue:
		return v.Val != ""
	default:
		return true
	}
}

// valuesEqual compares structurally: scalars by value, lists element-wise,
// callables by identity. Absence equals only absence.
func valuesEqual(a, b runtime.Value) bool {
	switch av := a.(type) {
	case runtime.NilValue:
		_, ok := b.(runtime.NilValue)
		return ok
	case runtime.NumberValue:
		bv, ok := b.(runtime.NumberValue)
		return ok && av.Val == bv.Val
	case runtime.StringValue:
		bv, ok := b.(runtime.StringValue)
		return ok && av.Val == bv.Val
	case runtime.BoolValue:
		bv, ok := b.(runtime.BoolValue)
		return ok && av.Val == bv.Val
	case *runtime.ListValue:
		bv, ok := b.(*runtime.ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for idx := range av.Elements {
			if !valuesEqual(av.Elements[idx], bv.Elements[idx]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
