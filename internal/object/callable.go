package object

import "github.com/PA055/Tarnish/internal/token"

// Callable is any Value that can appear on the left of a call
// expression: host builtins, user functions, and classes (which
// construct an Instance when called). Instance is deliberately NOT
// Callable: Tarnish has no `__call__` protocol for instances.
type Callable interface {
	Value
	Arity() int
	Call(args []Value) (Value, error)
}

// HostFn wraps a Go function as a Tarnish built-in, e.g. time() and
// str(x).
type HostFn struct {
	Name   string
	ArityN int
	Fn     func(args []Value) (Value, error)
}

func (f *HostFn) Kind() Kind     { return KindHostFn }
func (f *HostFn) String() string { return "<builtin fn " + f.Name + ">" }
func (f *HostFn) Arity() int     { return f.ArityN }
func (f *HostFn) Call(args []Value) (Value, error) {
	return f.Fn(args)
}

// FunctionDecl is the subset of an ast.Func/ast.Lambda that Function
// needs to execute: its parameter names and the body statements, typed
// as `any` here since object cannot import ast (ast has no reason to
// import object, so the cycle risk runs the other way: interp, which
// imports both, is what reconstitutes the concrete []ast.Stmt before
// calling Invoke).
type FunctionDecl struct {
	Name   string
	Params []token.Token
	Body   any
}

// Function is a user-defined Tarnish function, method, or lambda: a
// declaration closed over the environment active at definition time.
// IsInitializer marks a class's `__init__` method, which always returns
// `this` regardless of its own return statements.
type Function struct {
	Decl          *FunctionDecl
	Closure       *Environment
	IsInitializer bool
	// Invoke is supplied by the interpreter package at construction time
	// (it closes over the interpreter instance) so object need not import
	// interp to execute a function body.
	Invoke func(fn *Function, args []Value) (Value, error)
}

func (f *Function) Kind() Kind     { return KindFunction }
func (f *Function) String() string { return "<fn " + f.Decl.Name + ">" }
func (f *Function) Arity() int     { return len(f.Decl.Params) }
func (f *Function) Call(args []Value) (Value, error) {
	return f.Invoke(f, args)
}

// Bind returns a copy of f whose closure is a fresh environment,
// parented on f's original closure, with `this` bound to instance. The
// captured closure itself is never mutated, so binding the same method
// to two instances yields two independent functions.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{
		Decl:          f.Decl,
		Closure:       env,
		IsInitializer: f.IsInitializer,
		Invoke:        f.Invoke,
	}
}

// Class is a Tarnish class value: callable (it constructs an Instance),
// carrying its own methods and an optional superclass for single
// inheritance.
type Class struct {
	Name       string
	Methods    map[string]*Function
	Superclass *Class
}

func (c *Class) Kind() Kind     { return KindClass }
func (c *Class) String() string { return "<class " + c.Name + ">" }

// FindMethod walks the superclass chain looking for name; a class's own
// Methods map is checked before falling back to the superclass.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the initializer's arity, or 0 if the class has none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("__init__"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and runs its initializer (if any),
// returning the instance itself regardless of what __init__ returns.
func (c *Class) Call(args []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("__init__"); ok {
		if _, err := init.Bind(instance).Call(args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a live object: a pointer to its class plus its own field
// table. Instance is not Callable.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// NewInstance allocates an Instance with an empty field table.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

func (i *Instance) Kind() Kind     { return KindInstance }
func (i *Instance) String() string { return "<" + i.Class.Name + " instance>" }

// Get looks a property up: fields first, then a bound method from the
// instance's class chain.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set writes a field unconditionally; no declaration is needed first.
func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}
