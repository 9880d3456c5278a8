package resolver

import (
	"bytes"
	"testing"

	"github.com/PA055/Tarnish/internal/diag"
	"github.com/PA055/Tarnish/internal/lexer"
	"github.com/PA055/Tarnish/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSource(t *testing.T, source string) (*Resolver, *diag.Sink) {
	t.Helper()
	var out bytes.Buffer
	sink := diag.New(&out)
	sink.DisableColor()

	toks := lexer.New(source, sink).ScanTokens()
	p := parser.New(toks)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.GetErrors())

	r := New(sink)
	r.Resolve(stmts)
	return r, sink
}

func TestResolve_LocalVariableGetsDepth(t *testing.T) {
	r, sink := resolveSource(t, `{ var x = 1; { var y = x; } }`)
	assert.False(t, sink.HadError)
	// The only recorded reference is `x` inside the inner block, one scope
	// out from where it is read.
	require.Len(t, r.Locals, 1)
	for _, depth := range r.Locals {
		assert.Equal(t, 1, depth)
	}
}

func TestResolve_SelfReferenceInOwnInitializerIsAnError(t *testing.T) {
	_, sink := resolveSource(t, `{ var a = a; }`)
	assert.True(t, sink.HadError)
}

func TestResolve_RedeclarationInSameScopeIsAnError(t *testing.T) {
	_, sink := resolveSource(t, `{ var a = 1; var a = 2; }`)
	assert.True(t, sink.HadError)
}

func TestResolve_ReturnOutsideFunctionIsAnError(t *testing.T) {
	_, sink := resolveSource(t, `return 1;`)
	assert.True(t, sink.HadError)
}

func TestResolve_ReturnValueInInitializerIsAnError(t *testing.T) {
	_, sink := resolveSource(t, `
		class Foo {
			func __init__() { return 1; }
		}
	`)
	assert.True(t, sink.HadError)
}

func TestResolve_BreakOutsideLoopIsAnError(t *testing.T) {
	_, sink := resolveSource(t, `break;`)
	assert.True(t, sink.HadError)
}

func TestResolve_ContinueInsideLoopIsFine(t *testing.T) {
	_, sink := resolveSource(t, `while (true) { continue; }`)
	assert.False(t, sink.HadError)
}

func TestResolve_BreakInsideFunctionDeclaredInLoopIsAnError(t *testing.T) {
	_, sink := resolveSource(t, `
		while (true) {
			func f() { break; }
		}
	`)
	assert.True(t, sink.HadError)
}

func TestResolve_LoopInsideFunctionInsideLoopIsFine(t *testing.T) {
	_, sink := resolveSource(t, `
		while (true) {
			func f() { while (true) { break; } }
		}
	`)
	assert.False(t, sink.HadError)
}

func TestResolve_ThisOutsideClassIsAnError(t *testing.T) {
	_, sink := resolveSource(t, `func f() { print this; }`)
	assert.True(t, sink.HadError)
}

func TestResolve_SuperWithoutSuperclassIsAnError(t *testing.T) {
	_, sink := resolveSource(t, `
		class Foo {
			func bar() { super.bar(); }
		}
	`)
	assert.True(t, sink.HadError)
}

func TestResolve_SuperWithSuperclassIsFine(t *testing.T) {
	_, sink := resolveSource(t, `
		class Animal { func speak() { print "..."; } }
		class Dog(Animal) {
			func speak() { super.speak(); }
		}
	`)
	assert.False(t, sink.HadError)
}
