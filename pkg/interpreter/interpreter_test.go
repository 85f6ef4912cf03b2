package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"roadman/interpreter-go/pkg/ast"
	"roadman/interpreter-go/pkg/interpreter"
	"roadman/interpreter-go/pkg/lexer"
	"roadman/interpreter-go/pkg/parser"
	"roadman/interpreter-go/pkg/runtime"
)

func runOutput(t *testing.T, source string) string {
	t.Helper()
	tokens, diags := lexer.Tokenize(source)
	if len(diags) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", diags)
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	interp := interpreter.New(interpreter.WithStdout(&out))
	if err := interp.Interpret(program); err != nil {
		t.Fatalf("interpret: %v", err)
	}
	return out.String()
}

func runError(t *testing.T, source string) *interpreter.RuntimeError {
	t.Helper()
	tokens, diags := lexer.Tokenize(source)
	if len(diags) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", diags)
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	interp := interpreter.New(interpreter.WithStdout(&out))
	runErr := interp.Interpret(program)
	if runErr == nil {
		t.Fatalf("expected a runtime error from %q", source)
	}
	rtErr, ok := runErr.(*interpreter.RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T", runErr)
	}
	return rtErr
}

func expectLines(t *testing.T, got string, want ...string) {
	t.Helper()
	if got != strings.Join(want, "\n")+"\n" {
		t.Fatalf("output mismatch:\ngot:\n%s\nwant:\n%s", got, strings.Join(want, "\n"))
	}
}

func TestArithmeticAndDisplay(t *testing.T) {
	out := runOutput(t, `
		gimme a = 10;
		conste b = 2.5;
		say(a * b - (a / 4));
	`)
	expectLines(t, out, "22.5")
}

func TestWholeNumbersDisplayFractionalPart(t *testing.T) {
	out := runOutput(t, `say(40 + 2);`)
	expectLines(t, out, "42.0")
}

func TestBlockScopingAndShadowing(t *testing.T) {
	out := runOutput(t, `
		gimme x = 10;
		{
			gimme x = 20;
			say(x);
		}
		say(x);
	`)
	expectLines(t, out, "20.0", "10.0")
}

func TestAssignmentReachesEnclosingScope(t *testing.T) {
	out := runOutput(t, `
		gimme x = 1;
		{
			x = 5;
		}
		say(x);
	`)
	expectLines(t, out, "5.0")
}

func TestRecursionFactorial(t *testing.T) {
	out := runOutput(t, `
		fam factorial(n) {
			innit (n <= 1) {
				returnz 1;
			}
			returnz n * factorial(n - 1);
		}
		say(factorial(5));
	`)
	expectLines(t, out, "120.0")
}

func TestClosuresCaptureDeclarationEnvironment(t *testing.T) {
	out := runOutput(t, `
		fam makeCounter() {
			gimme count = 0;
			fam increment() {
				count = count + 1;
				returnz count;
			}
			returnz increment;
		}
		gimme counter = makeCounter();
		say(counter());
		say(counter());
		gimme other = makeCounter();
		say(other());
	`)
	expectLines(t, out, "1.0", "2.0", "1.0")
}

func TestListDisplay(t *testing.T) {
	out := runOutput(t, `say([1, "two", true]);`)
	expectLines(t, out, `[1.0, two, true]`)
}

func TestStringConcatenation(t *testing.T) {
	out := runOutput(t, `say("road" + "man");`)
	expectLines(t, out, "roadman")
}

func TestWhileLoopWithBreak(t *testing.T) {
	out := runOutput(t, `
		gimme i = 0;
		loopz (true) {
			i = i + 1;
			innit (i >= 3) {
				stopit;
			}
		}
		say(i);
	`)
	expectLines(t, out, "3.0")
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	out := runOutput(t, `
		fam boom() {
			say("should not run");
			returnz true;
		}
		gimme a = true || boom();
		gimme b = false && boom();
		say(a);
		say(b);
	`)
	expectLines(t, out, "true", "false")
}

func TestTruthiness(t *testing.T) {
	out := runOutput(t, `
		innit (0) { say("zero"); } elseway { say("not zero"); }
		innit ("") { say("empty"); } elseway { say("not empty"); }
		innit ([]) { say("list"); }
	`)
	expectLines(t, out, "not zero", "not empty", "list")
}

func TestDivisionByZero(t *testing.T) {
	err := runError(t, `say(1 / 0);`)
	if !strings.Contains(err.Message, "Division by zero.") {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestModuloByZero(t *testing.T) {
	err := runError(t, `say(10 % 0);`)
	if !strings.Contains(err.Message, "Division by zero.") {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestArityMismatch(t *testing.T) {
	err := runError(t, `
		fam greet(name) { say(name); }
		greet("a", "b");
	`)
	if err.Message != "Expected 1 arguments but got 2." {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestCallingNonCallable(t *testing.T) {
	err := runError(t, `
		gimme x = 4;
		x();
	`)
	if err.Message != "Can only call functions." {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestUndefinedVariableSuggestsClosestName(t *testing.T) {
	err := runError(t, `
		gimme count = 1;
		say(cout);
	`)
	if !strings.Contains(err.Message, "Undefined variable 'cout'.") {
		t.Fatalf("unexpected message: %q", err.Message)
	}
	if !strings.Contains(err.Message, "Did you mean 'count'?") {
		t.Fatalf("expected a suggestion, got: %q", err.Message)
	}
}

func TestMixedOperandTypes(t *testing.T) {
	err := runError(t, `say("age: " + 30);`)
	if err.Message != "+: Operands must be two numbers or two strings." {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestComparingNonNumbers(t *testing.T) {
	err := runError(t, `say("a" < "b");`)
	if err.Message != "<: Operands must be numbers." {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestBreakOutsideLoop(t *testing.T) {
	err := runError(t, `stopit;`)
	if err.Message != "Cannot use 'stopit' outside a loop." {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	err := runError(t, `returnz 1;`)
	if err.Message != "Cannot use 'returnz' outside a function." {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestBreakInsideFunctionBodyIsAnError(t *testing.T) {
	err := runError(t, `
		fam f() { stopit; }
		f();
	`)
	if err.Message != "Cannot use 'stopit' outside a loop." {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestRuntimeErrorLeavesInterpreterUsable(t *testing.T) {
	var out bytes.Buffer
	interp := interpreter.New(interpreter.WithStdout(&out))

	parse := func(source string) *ast.Program {
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

	if err := interp.Interpret(parse(`gimme x = 1; say(1 / 0);`)); err == nil {
		t.Fatalf("expected a runtime error")
	}
	// Bindings made before the failure survive it.
	if err := interp.Interpret(parse(`say(x);`)); err != nil {
		t.Fatalf("interpreter should stay usable after an error: %v", err)
	}
	if out.String() != "1.0\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestEqualityIsStructuralForLists(t *testing.T) {
	out := runOutput(t, `
		say([1, 2] == [1, 2]);
		say([1, 2] == [1, 3]);
		say(1 == "1");
	`)
	expectLines(t, out, "true", "false", "false")
}

func TestFunctionValueDisplay(t *testing.T) {
	out := runOutput(t, `
		fam greet() { }
		say(greet);
		say(say);
	`)
	expectLines(t, out, "<fam greet>", "<native fam say>")
}

func TestGlobalsPersistAcrossInterpretCalls(t *testing.T) {
	var out bytes.Buffer
	interp := interpreter.New(interpreter.WithStdout(&out))

	for _, source := range []string{"gimme x = 1;", "x = x + 1;", "say(x);"} {
		tokens, diags := lexer.Tokenize(source)
		if len(diags) != 0 {
			t.Fatalf("unexpected lex diagnostics: %v", diags)
		}
		program, err := parser.Parse(tokens)
		if err != nil {
			t.Fatalf("parse %q: %v", source, err)
		}
		if err := interp.Interpret(program); err != nil {
			t.Fatalf("interpret %q: %v", source, err)
		}
	}
	if out.String() != "2.0\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestNativeClockReturnsNumber(t *testing.T) {
	var out bytes.Buffer
	interp := interpreter.New(interpreter.WithStdout(&out))
	clock, ok := interp.Globals().Get("clock")
	if !ok {
		t.Fatalf("clock not registered")
	}
	native, ok := clock.(runtime.NativeFunctionValue)
	if !ok {
		t.Fatalf("expected native function, got %T", clock)
	}
	result, err := native.Impl(nil)
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	if _, ok := result.(runtime.NumberValue); !ok {
		t.Fatalf("expected a number, got %T", result)
	}
}
