package interp

import "github.com/halprin/glox/token"

// Environment is a single lexical scope: a mapping from variable name to
// value, plus a link to the enclosing scope it's nested inside. The global
// scope is the only Environment with a nil parent.
type Environment struct {
	parent *Environment
	values map[string]Value
}

// NewEnvironment constructs the top-level global Environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Child constructs a new Environment nested inside e, such as one introduced
// by a block, function call, or the synthetic scope that binds super/this.
func (e *Environment) Child() *Environment {
	return &Environment{parent: e, values: make(map[string]Value)}
}

// Define binds name to value in e, overwriting any existing binding of the
// same name in this scope. Used for var/fun/class declarations and for
// binding function parameters, which may legally redeclare a name.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get looks up name, searching e and its ancestors, and reports a runtime
// error if it's never declared.
func (e *Environment) Get(name token.Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, runtimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// GetAt looks up name exactly distance scopes up the chain from e, as
// determined by the resolver. It never fails: the resolver only records a
// distance when it found the name at exactly that depth.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// Assign rebinds name to value, searching e and its ancestors for the
// nearest scope that already declares it, and reports a runtime error if
// it's never declared anywhere in the chain.
func (e *Environment) Assign(name token.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value)
	}
	return runtimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// AssignAt rebinds name exactly distance scopes up the chain from e.
func (e *Environment) AssignAt(distance int, name token.Token, value Value) {
	e.ancestor(distance).values[name.Lexeme] = value
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for range distance {
		env = env.parent
	}
	return env
}
