package parser_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"roadman/interpreter-go/pkg/ast"
	"roadman/interpreter-go/pkg/lexer"
	"roadman/interpreter-go/pkg/parser"
)

// treeOptions compares parser output against hand-built trees. Tokens
// from the parser carry positions and source text that the shorthand
// constructors leave blank, so tokens match on type, and on text only
// when both sides have it.
var treeOptions = cmp.Options{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmp.Comparer(func(a, b lexer.Token) bool {
		if a.Type != b.Type {
			return false
		}
		if a.Value == "" || b.Value == "" {
			return true
		}
		return a.Value == b.Value
	}),
}

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, diags := lexer.Tokenize(source)
	if len(diags) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", diags)
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return program
}

func parseErrors(t *testing.T, source string) parser.ErrorList {
	t.Helper()
	tokens, diags := lexer.Tokenize(source)
	if len(diags) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", diags)
	}
	program, err := parser.Parse(tokens)
	if err == nil {
		t.Fatalf("expected parse of %q to fail", source)
	}
	if program != nil {
		t.Fatalf("expected nil program on error, got %v", program)
	}
	var list parser.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected ErrorList, got %T", err)
	}
	return list
}

func expectTree(t *testing.T, source string, want *ast.Program) {
	t.Helper()
	got := parseSource(t, source)
	if diff := cmp.Diff(want, got, treeOptions); diff != "" {
		t.Fatalf("parse %q mismatch (-want +got):\n%s", source, diff)
	}
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	expectTree(t, "1 + 2 * 3;", ast.Prog(
		ast.ExprStmt(ast.Bin(ast.Num(1), "+", ast.Bin(ast.Num(2), "*", ast.Num(3)))),
	))
	expectTree(t, "1 * 2 + 3;", ast.Prog(
		ast.ExprStmt(ast.Bin(ast.Bin(ast.Num(1), "*", ast.Num(2)), "+", ast.Num(3))),
	))
}

func TestLogicalPrecedence(t *testing.T) {
	expectTree(t, "a || b && c;", ast.Prog(
		ast.ExprStmt(ast.Bin(ast.ID("a"), "||", ast.Bin(ast.ID("b"), "&&", ast.ID("c")))),
	))
	expectTree(t, "a == b < c;", ast.Prog(
		ast.ExprStmt(ast.Bin(ast.ID("a"), "==", ast.Bin(ast.ID("b"), "<", ast.ID("c")))),
	))
}

func TestBinaryOperatorsAreLeftAssociative(t *testing.T) {
	expectTree(t, "10 - 3 - 2;", ast.Prog(
		ast.ExprStmt(ast.Bin(ast.Bin(ast.Num(10), "-", ast.Num(3)), "-", ast.Num(2))),
	))
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	expectTree(t, "a = b = 1;", ast.Prog(
		ast.ExprStmt(ast.Assign("a", ast.Assign("b", ast.Num(1)))),
	))
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	expectTree(t, "(1 + 2) * 3;", ast.Prog(
		ast.ExprStmt(ast.Bin(ast.Group(ast.Bin(ast.Num(1), "+", ast.Num(2))), "*", ast.Num(3))),
	))
}

func TestUnaryBindsTighterThanMultiplication(t *testing.T) {
	expectTree(t, "-x * 2;", ast.Prog(
		ast.ExprStmt(ast.Bin(ast.Un("-", ast.ID("x")), "*", ast.Num(2))),
	))
	expectTree(t, "!!ok;", ast.Prog(
		ast.ExprStmt(ast.Un("!", ast.Un("!", ast.ID("ok")))),
	))
}

func TestCallChaining(t *testing.T) {
	expectTree(t, "counter()();", ast.Prog(
		ast.ExprStmt(ast.Call(ast.Call(ast.ID("counter")))),
	))
	expectTree(t, "add(1, 2);", ast.Prog(
		ast.ExprStmt(ast.Call(ast.ID("add"), ast.Num(1), ast.Num(2))),
	))
}

func TestVarDeclarations(t *testing.T) {
	expectTree(t, "gimme x = 1; conste y = 2; gimme z;", ast.Prog(
		ast.Gimme("x", ast.Num(1)),
		ast.Conste("y", ast.Num(2)),
		ast.Gimme("z", nil),
	))
}

func TestListLiteral(t *testing.T) {
	expectTree(t, `gimme xs = [1, "two", true];`, ast.Prog(
		ast.Gimme("xs", ast.List(ast.Num(1), ast.Str("two"), ast.Bool(true))),
	))
}

func TestIfElseAndWhile(t *testing.T) {
	expectTree(t,
		"innit (x > 1) { say(x); } elseway { stopit; }",
		ast.Prog(
			ast.If(ast.Bin(ast.ID("x"), ">", ast.Num(1)),
				ast.BlockOf(ast.ExprStmt(ast.Call(ast.ID("say"), ast.ID("x")))),
				ast.BlockOf(ast.Brk()),
			),
		))
	expectTree(t,
		"loopz (true) say(1);",
		ast.Prog(
			ast.While(ast.Bool(true), ast.ExprStmt(ast.Call(ast.ID("say"), ast.Num(1)))),
		))
}

func TestFunctionDeclaration(t *testing.T) {
	expectTree(t,
		"fam add(a, b) { returnz a + b; }",
		ast.Prog(
			ast.Fam("add", []string{"a", "b"},
				ast.Ret(ast.Bin(ast.ID("a"), "+", ast.ID("b"))),
			),
		))
}

func TestBareReturn(t *testing.T) {
	expectTree(t,
		"fam f() { returnz; }",
		ast.Prog(ast.Fam("f", nil, ast.Ret(nil))),
	)
}

func TestInvalidAssignmentTarget(t *testing.T) {
	errs := parseErrors(t, "1 = 2;")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Message != "Invalid assignment target." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestMissingExpression(t *testing.T) {
	errs := parseErrors(t, "gimme x = ;")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Message != "Expect expression." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
	if !strings.Contains(errs[0].Error(), "Error at ';'") {
		t.Fatalf("error should name the offending lexeme: %q", errs[0].Error())
	}
}

func TestMissingClosingBrace(t *testing.T) {
	errs := parseErrors(t, "fam f() { returnz 1;")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Message != "Expect '}' after block." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
	if !errs[0].AtEnd {
		t.Fatalf("expected error positioned at end of input")
	}
}

func TestRecoveryReportsEveryStatement(t *testing.T) {
	errs := parseErrors(t, "gimme = 1;\nsay(2);\nconste;\n")
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Line != 1 || errs[1].Line != 3 {
		t.Fatalf("errors should point at lines 1 and 3: %v", errs)
	}
}
