package runtime

import "sort"

// Environment provides lexical scoping for Roadman runtime values. Scopes
// chain outward through enclosing; closures hold a shared reference to the
// environment of their declaration site, which keeps the whole chain alive
// for as long as any closure or call frame still points at it.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a scope, optionally nested under an enclosing one.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Enclosing exposes the lexical parent (nil for the global scope).
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define inserts or shadows a binding in this scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the innermost scope where the name
// appears. It reports false when the name is not bound anywhere; defining
// on assignment is not Roadman semantics.
func (e *Environment) Assign(name string, value Value) bool {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return true
		}
	}
	return false
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Names returns every name visible from this scope, sorted, innermost
// shadowing included once. Used for "did you mean" suggestions.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})
	for env := e; env != nil; env = env.enclosing {
		for name := range env.values {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
