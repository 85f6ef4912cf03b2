// Package transpiler renders a Roadman AST as equivalent JavaScript
// source. It is a pure re-rendering of the tree: no evaluation, no
// semantic validation, and it never fails on a well-formed AST.
package transpiler

import (
	"fmt"
	"strconv"
	"strings"

	"roadman/interpreter-go/pkg/ast"
	"roadman/interpreter-go/pkg/lexer"
)

const indentUnit = "  "

// Transpile renders a Program as newline-separated JavaScript statements.
func Transpile(program *ast.Program) string {
	t := &transpiler{}
	lines := make([]string, 0, len(program.Statements))
	for _, stmt := range program.Statements {
		lines = append(lines, t.statement(stmt, 0))
	}
	return strings.Join(lines, "\n")
}

type transpiler struct{}

func (t *transpiler) statement(stmt ast.Statement, depth int) string {
	indent := strings.Repeat(indentUnit, depth)
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return indent + t.expression(s.Expr) + ";"
	case *ast.VarDeclaration:
		keyword := "let"
		if s.Constant {
			keyword = "const"
		}
		if s.Initializer != nil {
			return fmt.Sprintf("%s%s %s = %s;", indent, keyword, s.Name.Value, t.expression(s.Initializer))
		}
		return fmt.Sprintf("%s%s %s;", indent, keyword, s.Name.Value)
	case *ast.Block:
		return indent + t.block(s, depth)
	case *ast.IfStatement:
		out := fmt.Sprintf("%sif (%s) %s", indent, t.expression(s.Condition), t.branch(s.ThenBranch, depth))
		if s.ElseBranch != nil {
			out += " else " + t.branch(s.ElseBranch, depth)
		}
		return out
	case *ast.WhileLoop:
		return fmt.Sprintf("%swhile (%s) %s", indent, t.expression(s.Condition), t.branch(s.Body, depth))
	case *ast.BreakStatement:
		return indent + "break;"
	case *ast.FunctionDeclaration:
		params := make([]string, 0, len(s.Params))
		for _, p := range s.Params {
			params = append(params, p.Value)
		}
		return fmt.Sprintf("%sfunction %s(%s) %s", indent, s.Name.Value, strings.Join(params, ", "), t.block(s.Body, depth))
	case *ast.ReturnStatement:
		if s.Value != nil {
			return fmt.Sprintf("%sreturn %s;", indent, t.expression(s.Value))
		}
		return indent + "return;"
	default:
		panic(fmt.Sprintf("transpiler: unhandled statement type %s", stmt.NodeType()))
	}
}

// branch renders the body of an if/while. A block keeps brace form; a
// single statement nests on its own line.
func (t *transpiler) branch(stmt ast.Statement, depth int) string {
	if block, ok := stmt.(*ast.Block); ok {
		return t.block(block, depth)
	}
	return "\n" + t.statement(stmt, depth+1)
}

// block renders a brace-delimited, newline-separated, indented statement
// list. depth is the nesting level of the braces themselves.
func (t *transpiler) block(block *ast.Block, depth int) string {
	if len(block.Statements) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, stmt := range block.Statements {
		b.WriteString(t.statement(stmt, depth+1))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString("}")
	return b.String()
}

func (t *transpiler) expression(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return strconv.FormatFloat(e.Value, 'f', -1, 64)
	case *ast.StringLiteral:
		return strconv.Quote(e.Value)
	case *ast.BooleanLiteral:
		if e.Value {
			return "true"
		}
		return "false"
	case *ast.ListLiteral:
		parts := make([]string, 0, len(e.Elements))
		for _, el := range e.Elements {
			parts = append(parts, t.expression(el))
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case *ast.Variable:
		return e.Token.Value
	case *ast.Assignment:
		return fmt.Sprintf("%s = %s", e.Name.Value, t.expression(e.Value))
	case *ast.Grouping:
		return fmt.Sprintf("(%s)", t.expression(e.Expr))
	case *ast.UnaryOp:
		return e.Operator.Value + t.expression(e.Right)
	case *ast.BinaryOp:
		// Parentheses around every binary pair keep the source precedence
		// textually explicit in the output.
		return fmt.Sprintf("(%s %s %s)", t.expression(e.Left), binaryOperator(e.Operator), t.expression(e.Right))
	case *ast.FunctionCall:
		args := make([]string, 0, len(e.Arguments))
		for _, arg := range e.Arguments {
			args = append(args, t.expression(arg))
		}
		return fmt.Sprintf("%s(%s)", t.callee(e.Callee), strings.Join(args, ", "))
	default:
		panic(fmt.Sprintf("transpiler: unhandled expression type %s", expr.NodeType()))
	}
}

// callee rewrites the output primitive to the JavaScript ecosystem's
// logging call; everything else renders as usual.
func (t *transpiler) callee(expr ast.Expression) string {
	if v, ok := expr.(*ast.Variable); ok && v.Token.Value == "say" {
		return "console.log"
	}
	return t.expression(expr)
}

func binaryOperator(op lexer.Token) string {
	switch op.Type {
	case lexer.AND:
		return "&&"
	case lexer.OR:
		return "||"
	default:
		return op.Value
	}
}
