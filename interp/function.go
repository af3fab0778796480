package interp

import "github.com/halprin/glox/ast"

// Function is a user-defined Lox function or method: the parsed declaration,
// plus the Environment it closes over at the point it was declared.
type Function struct {
	declaration   *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

// NewFunction constructs a Function closing over closure. isInitializer is
// true iff this is a class's init method, which always returns the instance
// regardless of its own return statements.
func NewFunction(declaration *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

var _ Callable = (*Function)(nil)

// Bind returns a copy of f whose closure is a new scope, nested inside f's
// original closure, that defines "this" as instance. Called when a method is
// looked up on an instance so that its body sees the right receiver.
func (f *Function) Bind(instance *Instance) *Function {
	env := f.closure.Child()
	env.Define("this", instance)
	return &Function{declaration: f.declaration, closure: env, isInitializer: f.isInitializer}
}

// Arity implements Callable.
func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

// Call implements Callable: it binds each parameter to the matching argument
// in a new scope nested inside the closure, then executes the body there.
func (f *Function) Call(it *Interpreter, args []Value) (Value, error) {
	env := f.closure.Child()
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	result, err := it.execBlock(f.declaration.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if result.signal == signalReturn {
		return result.value, nil
	}
	return nil, nil
}

// String implements Callable and fmt.Stringer.
func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}
