package object

import (
	"testing"

	"github.com/PA055/Tarnish/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramNames(names ...string) []token.Token {
	out := make([]token.Token, len(names))
	for i, n := range names {
		out[i] = token.New(token.Identifier, n, 1)
	}
	return out
}

func TestEnvironment_GetScansEnclosingScopes(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", Int(1))
	child := NewEnvironment(global)

	v, err := child.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Int(1), v)

	_, err = child.Get("missing")
	assert.Error(t, err)
}

func TestEnvironment_AssignUpdatesNearestDefiningScope(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", Int(1))
	child := NewEnvironment(global)

	require.NoError(t, child.Assign("x", Int(2)))
	v, err := global.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Int(2), v)

	assert.Error(t, child.Assign("missing", Int(0)))
}

func TestEnvironment_ShadowingKeepsOuterBinding(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", Str("outer"))
	inner := NewEnvironment(outer)
	inner.Define("x", Str("inner"))

	v, err := inner.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Str("inner"), v)

	v, err = outer.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Str("outer"), v)
}

func TestEnvironment_GetAtSkipsExactlyDistanceLinks(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("x", Str("root"))
	mid := NewEnvironment(root)
	mid.Define("x", Str("mid"))
	leaf := NewEnvironment(mid)

	v, err := leaf.GetAt(1, "x")
	require.NoError(t, err)
	assert.Equal(t, Str("mid"), v)

	v, err = leaf.GetAt(2, "x")
	require.NoError(t, err)
	assert.Equal(t, Str("root"), v)

	// No fallthrough: leaf itself does not define x.
	_, err = leaf.GetAt(0, "x")
	assert.Error(t, err)
}

func TestEnvironment_AssignAtWritesDirectly(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("x", Int(0))
	leaf := NewEnvironment(root)

	leaf.AssignAt(1, "x", Int(9))
	v, err := root.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Int(9), v)
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(NoneVal))
	assert.False(t, Truthy(Bool(false)))
	assert.False(t, Truthy(Int(0)))
	assert.False(t, Truthy(Float(0)))
	assert.False(t, Truthy(Str("")))

	assert.True(t, Truthy(Bool(true)))
	assert.True(t, Truthy(Int(-1)))
	assert.True(t, Truthy(Float(0.5)))
	assert.True(t, Truthy(Str("x")))
	assert.True(t, Truthy(&Class{Name: "C"}))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(NoneVal, NoneVal))
	assert.False(t, Equal(NoneVal, Int(0)))
	assert.True(t, Equal(Int(1), Float(1)))
	assert.True(t, Equal(Float(2), Int(2)))
	assert.False(t, Equal(Int(1), Str("1")))
	assert.True(t, Equal(Str("a"), Str("a")))
	assert.False(t, Equal(Bool(true), Int(1)))
}

func TestInstance_GetPrefersFieldsOverMethods(t *testing.T) {
	method := &Function{
		Decl:   &FunctionDecl{Name: "name"},
		Invoke: func(f *Function, args []Value) (Value, error) { return NoneVal, nil },
	}
	class := &Class{Name: "C", Methods: map[string]*Function{"name": method}}
	inst := NewInstance(class)

	v, ok := inst.Get("name")
	require.True(t, ok)
	_, isFn := v.(*Function)
	assert.True(t, isFn)

	inst.Set("name", Str("shadowed"))
	v, ok = inst.Get("name")
	require.True(t, ok)
	assert.Equal(t, Str("shadowed"), v)
}

func TestClass_FindMethodWalksSuperclassChain(t *testing.T) {
	inherited := &Function{Decl: &FunctionDecl{Name: "speak"}}
	base := &Class{Name: "Animal", Methods: map[string]*Function{"speak": inherited}}
	derived := &Class{Name: "Dog", Methods: map[string]*Function{}, Superclass: base}

	m, ok := derived.FindMethod("speak")
	require.True(t, ok)
	assert.Same(t, inherited, m)

	_, ok = derived.FindMethod("fly")
	assert.False(t, ok)
}

func TestClass_ArityFollowsInitializer(t *testing.T) {
	plain := &Class{Name: "Plain", Methods: map[string]*Function{}}
	assert.Equal(t, 0, plain.Arity())

	init := &Function{Decl: &FunctionDecl{Name: "__init__", Params: paramNames("a", "b")}}
	withInit := &Class{Name: "Pair", Methods: map[string]*Function{"__init__": init}}
	assert.Equal(t, 2, withInit.Arity())
}

func TestFunction_BindDefinesThisInFreshScope(t *testing.T) {
	closure := NewEnvironment(nil)
	var sawThis Value
	fn := &Function{
		Decl:    &FunctionDecl{Name: "m"},
		Closure: closure,
		Invoke: func(f *Function, args []Value) (Value, error) {
			v, err := f.Closure.GetAt(0, "this")
			sawThis = v
			return NoneVal, err
		},
	}
	inst := NewInstance(&Class{Name: "C"})

	bound := fn.Bind(inst)
	_, err := bound.Call(nil)
	require.NoError(t, err)
	assert.Same(t, inst, sawThis)

	// Binding never mutates the original closure.
	_, err = closure.Get("this")
	assert.Error(t, err)
}
