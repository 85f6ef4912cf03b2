package interpreter

import (
	"fmt"
	"time"

	"roadman/interpreter-go/pkg/runtime"
)

// registerBuiltins installs the native callables into the outermost
// environment. They are ordinary identifiers, not keywords: a program can
// shadow say with its own binding.
func (i *Interpreter) registerBuiltins() {
	i.globals.Define("say", runtime.NativeFunctionValue{
		Name:  "say",
		Arity: 1,
		Impl: func(args []runtime.Value) (runtime.Value, error) {
			fmt.Fprintln(i.stdout, FormatValue(args[0]))
			return runtime.NilValue{}, nil
		},
	})

	i.globals.Define("clock", runtime.NativeFunctionValue{
		Name:  "clock",
		Arity: 0,
		Impl: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.NumberValue{Val: float64(time.Now().UnixNano()) / 1e9}, nil
		},
	})
}
