package interp

import (
	"github.com/google/uuid"

	"github.com/halprin/glox/token"
)

// Instance is an instance of a Lox class: its fields, and the class used to
// resolve method lookups that miss the fields map.
//
// id exists purely so that isEqual can treat instances as reference types
// without leaking Go pointer comparison into the public Value contract: two
// distinct instances are never equal, and an instance is always equal to
// itself, matching jlox's reference-equality semantics for objects.
type Instance struct {
	Class  *Class
	Fields map[string]Value
	id     uuid.UUID
}

// NewInstance constructs a new, fieldless Instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value), id: uuid.New()}
}

// Get returns the named property: a field if i has one, else a method bound
// to i, else a runtime error.
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if method, ok := i.Class.FindMethod(name.Lexeme); ok {
		return method.Bind(i), nil
	}
	return nil, runtimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// Set assigns value to the named field, creating it if it doesn't already
// exist. Unlike Get, this never fails: Lox instances are open, untyped bags
// of fields.
func (i *Instance) Set(name token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}

// String implements fmt.Stringer.
func (i *Instance) String() string {
	return i.Class.Name + " instance"
}
