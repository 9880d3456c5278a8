package interp

import (
	"bytes"
	"testing"

	"github.com/PA055/Tarnish/internal/builtin"
	"github.com/PA055/Tarnish/internal/lexer"
	"github.com/PA055/Tarnish/internal/object"
	"github.com/PA055/Tarnish/internal/parser"
	"github.com/PA055/Tarnish/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalSource runs source through the full lex/parse/resolve/interpret
// pipeline, returning printed output and the terminal error (nil on a
// clean run).
func evalSource(t *testing.T, source string) (string, error) {
	t.Helper()
	toks := lexer.New(source, nil).ScanTokens()
	p := parser.New(toks)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.GetErrors())

	r := resolver.New(nil)
	r.Resolve(stmts)

	in := New(r.Locals)
	var out bytes.Buffer
	in.SetOutput(&out)
	builtin.Register(in.Globals)
	err := in.Interpret(stmts)
	return out.String(), err
}

func mustEval(t *testing.T, source string) string {
	t.Helper()
	out, err := evalSource(t, source)
	require.NoError(t, err)
	return out
}

func TestInterpret_IntegerArithmeticStaysIntegral(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`print 1 + 2 * 3;`, "7\n"},
		{`print 2 ** 10;`, "1024\n"},
		{`print (0 - 7) % 3;`, "2\n"},
		{`print 10 - 4 * 2;`, "2\n"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, mustEval(t, tt.input), "input: %s", tt.input)
	}
}

func TestInterpret_DivisionIsAlwaysTrueDivision(t *testing.T) {
	assert.Equal(t, "3.5\n", mustEval(t, `print 7 / 2;`))
}

func TestInterpret_FloatPromotion(t *testing.T) {
	assert.Equal(t, "3.5\n", mustEval(t, `print 1 + 2.5;`))
	assert.Equal(t, "5\n", mustEval(t, `print 2.5 * 2;`))
}

func TestInterpret_StringConcatenationCoercesEitherSide(t *testing.T) {
	assert.Equal(t, "v=1.5\n", mustEval(t, `print "v=" + 1.5;`))
	assert.Equal(t, "3 items\n", mustEval(t, `print 3 + " items";`))
}

func TestInterpret_BitwiseOperatorsRequireIntegers(t *testing.T) {
	assert.Equal(t, "2\n", mustEval(t, `print 6 & 3;`))
	assert.Equal(t, "7\n", mustEval(t, `print 6 | 3;`))
	assert.Equal(t, "5\n", mustEval(t, `print 6 ^ 3;`))
	assert.Equal(t, "24\n", mustEval(t, `print 3 << 3;`))
	assert.Equal(t, "3\n", mustEval(t, `print 24 >> 3;`))

	_, err := evalSource(t, `print 1.5 & 2;`)
	var rtErr *object.RuntimeError
	require.ErrorAs(t, err, &rtErr)
	assert.Contains(t, rtErr.Message, "integers")
}

func TestInterpret_LogicalOperatorsReturnOperands(t *testing.T) {
	assert.Equal(t, "x\n", mustEval(t, `print "" || "x";`))
	assert.Equal(t, "0\n", mustEval(t, `print 0 && 1;`))
	assert.Equal(t, "2\n", mustEval(t, `print 1 && 2;`))
	assert.Equal(t, "1\n", mustEval(t, `print 1 || 2;`))
}

func TestInterpret_ShortCircuitSkipsRightOperand(t *testing.T) {
	out := mustEval(t, `
		func boom() { print "evaluated"; return true; }
		var x = false && boom();
		print x;
	`)
	assert.Equal(t, "false\n", out)
}

func TestInterpret_CompoundAssignments(t *testing.T) {
	out := mustEval(t, `
		var x = 8;
		x += 2;
		x <<= 1;
		x %= 7;
		print x;
	`)
	assert.Equal(t, "6\n", out)
}

func TestInterpret_CompoundAssignmentOnProperty(t *testing.T) {
	out := mustEval(t, `
		class Counter {
			func __init__() { this.n = 1; }
		}
		var c = Counter();
		c.n += 2;
		c.n <<= 3;
		print c.n;
	`)
	assert.Equal(t, "24\n", out)
}

func TestInterpret_PrefixPostfixTilde(t *testing.T) {
	out := mustEval(t, `
		var x = 0;
		print x~~;
		print x;
		print ~~x;
	`)
	assert.Equal(t, "0\n-1\n0\n", out)
}

func TestInterpret_UnaryOperators(t *testing.T) {
	assert.Equal(t, "-5\n", mustEval(t, `print -5;`))
	assert.Equal(t, "true\n", mustEval(t, `print !0;`))
	assert.Equal(t, "false\n", mustEval(t, `print !"text";`))
	assert.Equal(t, "-8\n", mustEval(t, `print ~7;`))
}

func TestInterpret_EqualityAcrossNumericKinds(t *testing.T) {
	assert.Equal(t, "true\n", mustEval(t, `print 1 == 1.0;`))
	assert.Equal(t, "false\n", mustEval(t, `print 1 == "1";`))
	assert.Equal(t, "true\n", mustEval(t, `print none == none;`))
	assert.Equal(t, "true\n", mustEval(t, `print none != 0;`))
}

func TestInterpret_CallingNonCallableFails(t *testing.T) {
	_, err := evalSource(t, `var x = 3; x();`)
	var rtErr *object.RuntimeError
	require.ErrorAs(t, err, &rtErr)
	assert.Contains(t, rtErr.Message, "call")
}

func TestInterpret_ArityMismatchFails(t *testing.T) {
	_, err := evalSource(t, `func f(a, b) { return a; } f(1);`)
	var rtErr *object.RuntimeError
	require.ErrorAs(t, err, &rtErr)
	assert.Contains(t, rtErr.Message, "Expected 2 arguments but got 1")
}

func TestInterpret_UndefinedPropertyFails(t *testing.T) {
	_, err := evalSource(t, `
		class Empty { }
		var e = Empty();
		print e.missing;
	`)
	var rtErr *object.RuntimeError
	require.ErrorAs(t, err, &rtErr)
	assert.Contains(t, rtErr.Message, "Undefined property 'missing'")
}

func TestInterpret_PropertyAccessOnNonInstanceFails(t *testing.T) {
	_, err := evalSource(t, `print (1).field;`)
	var rtErr *object.RuntimeError
	require.ErrorAs(t, err, &rtErr)
	assert.Contains(t, rtErr.Message, "instances")
}

func TestInterpret_BadSuperclassFails(t *testing.T) {
	_, err := evalSource(t, `var NotAClass = 1; class Sub(NotAClass) { }`)
	var rtErr *object.RuntimeError
	require.ErrorAs(t, err, &rtErr)
	assert.Contains(t, rtErr.Message, "Superclass must be a class")
}

func TestInterpret_InitializerAlwaysReturnsInstance(t *testing.T) {
	out := mustEval(t, `
		class Point {
			func __init__(x) {
				this.x = x;
				if (x == 0) return;
				this.x = x * 2;
			}
		}
		print Point(0).x;
		print Point(3).x;
	`)
	assert.Equal(t, "0\n6\n", out)
}

func TestInterpret_BoundMethodKeepsThis(t *testing.T) {
	out := mustEval(t, `
		class Greeter {
			func __init__(name) { this.name = name; }
			func greet() { print "hi " + this.name; }
		}
		var g = Greeter("ada");
		var f = g.greet;
		f();
	`)
	assert.Equal(t, "hi ada\n", out)
}

func TestInterpret_SuperDispatchesToSuperclassMethod(t *testing.T) {
	out := mustEval(t, `
		class A { func greet() { print "hi"; } }
		class B(A) { func greet() { super.greet(); print "yo"; } }
		B().greet();
	`)
	assert.Equal(t, "hi\nyo\n", out)
}

func TestInterpret_BreakDepthUnwindsExactlyNLoops(t *testing.T) {
	out := mustEval(t, `
		for (var i = 0; i < 3; i = i + 1) {
			for (var j = 0; j < 3; j = j + 1) {
				for (var k = 0; k < 3; k = k + 1) {
					if (k == 1) break 2;
					print str(i) + str(j) + str(k);
				}
			}
		}
	`)
	assert.Equal(t, "000\n100\n200\n", out)
}

func TestInterpret_ReturnUnwindsNestedBlocksOnly(t *testing.T) {
	out := mustEval(t, `
		func find() {
			for (var i = 0; i < 10; i = i + 1) {
				if (i == 4) return i;
			}
			return -1;
		}
		print find();
	`)
	assert.Equal(t, "4\n", out)
}

func TestInterpret_TernarySelectsLazily(t *testing.T) {
	assert.Equal(t, "small\n", mustEval(t, `print 1 < 2 ? "small" : 1 / 0;`))
	assert.Equal(t, "big\n", mustEval(t, `print 1 > 2 ? 1 / 0 : "big";`))
}

func TestInterpret_ShadowingResolvesToNearestScope(t *testing.T) {
	out := mustEval(t, `
		var a = "outer";
		{
			var a = "inner";
			print a;
		}
		print a;
	`)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestInterpret_ClosureSeesCreationTimeBinding(t *testing.T) {
	out := mustEval(t, `
		var a = "global";
		{
			func show() { print a; }
			show();
			var a = "block";
			show();
		}
	`)
	assert.Equal(t, "global\nglobal\n", out)
}

func TestInterpret_StrBuiltinLowercasesSpecials(t *testing.T) {
	out := mustEval(t, `
		print str(true) + " " + str(false) + " " + str(none);
	`)
	assert.Equal(t, "true false none\n", out)
}
