package interp

// Class is a Lox class: its name, optional superclass, and its own methods
// (not including inherited ones, which are found by walking Superclass).
// Class is itself Callable: calling it constructs a new Instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// NewClass constructs a Class.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

var _ Callable = (*Class)(nil)

// FindMethod looks up name among c's own methods, then its superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity implements Callable: a class's arity is its initializer's, or 0 if it
// has none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call implements Callable: it constructs a new Instance and runs init on it,
// if the class defines one.
func (c *Class) Call(it *Interpreter, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(it, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// String implements Callable and fmt.Stringer.
func (c *Class) String() string {
	return c.Name
}
