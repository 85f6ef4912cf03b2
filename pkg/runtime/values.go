package runtime

import (
	"fmt"

	"roadman/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindList
	KindFunction
	KindNativeFunction
	KindNil
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindNil:
		return "nil"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// Scalars. Roadman has one numeric type: double-precision float.

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// NilValue is the absence of a value: an uninitialized gimme, or the
// result of a function that falls off the end.
type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

// ListValue has reference semantics: two bindings to one list observe each
// other's element writes.
type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

// FunctionValue pairs a function declaration with the environment that was
// active at its declaration site. The declaration node is shared and
// read-only, owned by the Program it was parsed into; the closure
// environment is shared with every other closure and call frame that
// captured it and stays alive as long as any of them does.
type FunctionValue struct {
	Declaration *ast.FunctionDeclaration
	Closure     *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Name() string { return v.Declaration.Name.Value }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

// NativeFunc is the implementation hook for built-in callables.
type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }
