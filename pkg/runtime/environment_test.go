package runtime_test

import (
	"reflect"
	"testing"

	"roadman/interpreter-go/pkg/runtime"
)

func TestDefineAndGet(t *testing.T) {
	env := runtime.NewEnvironment(nil)
	env.Define("x", runtime.NumberValue{Val: 1})

	got, ok := env.Get("x")
	if !ok {
		t.Fatalf("expected x to be bound")
	}
	if got != (runtime.NumberValue{Val: 1}) {
		t.Fatalf("unexpected value: %#v", got)
	}
	if _, ok := env.Get("y"); ok {
		t.Fatalf("y should not be bound")
	}
}

func TestGetSearchesEnclosingScopes(t *testing.T) {
	outer := runtime.NewEnvironment(nil)
	outer.Define("x", runtime.NumberValue{Val: 1})
	inner := runtime.NewEnvironment(outer)

	got, ok := inner.Get("x")
	if !ok || got != (runtime.NumberValue{Val: 1}) {
		t.Fatalf("inner scope should see outer binding, got %#v (ok=%v)", got, ok)
	}
}

func TestShadowingLeavesOuterBindingIntact(t *testing.T) {
	outer := runtime.NewEnvironment(nil)
	outer.Define("x", runtime.NumberValue{Val: 1})
	inner := runtime.NewEnvironment(outer)
	inner.Define("x", runtime.NumberValue{Val: 2})

	got, _ := inner.Get("x")
	if got != (runtime.NumberValue{Val: 2}) {
		t.Fatalf("inner should see the shadow, got %#v", got)
	}
	got, _ = outer.Get("x")
	if got != (runtime.NumberValue{Val: 1}) {
		t.Fatalf("outer binding should be untouched, got %#v", got)
	}
}

func TestAssignUpdatesInnermostHolder(t *testing.T) {
	outer := runtime.NewEnvironment(nil)
	outer.Define("x", runtime.NumberValue{Val: 1})
	inner := runtime.NewEnvironment(outer)

	if !inner.Assign("x", runtime.NumberValue{Val: 5}) {
		t.Fatalf("assign should find x in the outer scope")
	}
	got, _ := outer.Get("x")
	if got != (runtime.NumberValue{Val: 5}) {
		t.Fatalf("outer binding should be updated, got %#v", got)
	}
}

func TestAssignToUnboundNameFails(t *testing.T) {
	env := runtime.NewEnvironment(nil)
	if env.Assign("ghost", runtime.NilValue{}) {
		t.Fatalf("assigning an unbound name must not define it")
	}
	if _, ok := env.Get("ghost"); ok {
		t.Fatalf("failed assign must not create a binding")
	}
}

func TestNamesAreSortedAndDeduplicated(t *testing.T) {
	outer := runtime.NewEnvironment(nil)
	outer.Define("b", runtime.NilValue{})
	outer.Define("a", runtime.NilValue{})
	inner := runtime.NewEnvironment(outer)
	inner.Define("a", runtime.NilValue{})
	inner.Define("c", runtime.NilValue{})

	want := []string{"a", "b", "c"}
	if got := inner.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
