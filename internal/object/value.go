// Package object defines the Tarnish runtime value domain and the
// environment chain that binds names to values.
package object

import (
	"fmt"
	"strconv"
)

// Kind tags a Value's concrete type, used for error messages and the
// handful of places the interpreter needs to branch on "what is this".
type Kind string

const (
	KindNone     Kind = "none"
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindStr      Kind = "string"
	KindHostFn   Kind = "builtin"
	KindFunction Kind = "function"
	KindClass    Kind = "class"
	KindInstance Kind = "instance"
)

// Value is any Tarnish runtime value. Every concrete type below
// implements it; Kind identifies which one, and String renders the
// `print`-style display form (lowercase true/false/none for those
// three, host conversion otherwise).
type Value interface {
	Kind() Kind
	String() string
}

// None is Tarnish's singleton null value. There is exactly one instance,
// NoneVal, since None carries no data.
type None struct{}

// NoneVal is the single None value; compare equality with object.NoneVal
// directly rather than constructing new None{} values.
var NoneVal = None{}

func (None) Kind() Kind     { return KindNone }
func (None) String() string { return "none" }

// Bool is a Tarnish boolean.
type Bool bool

func (b Bool) Kind() Kind     { return KindBool }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Int is a Tarnish integer, produced by number literals without a '.';
// the bitwise operators require Int operands.
type Int int64

func (i Int) Kind() Kind     { return KindInt }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is a Tarnish floating-point number; `+`, `-`, `*`, `/`, `%`, `**`
// all operate on Float once their operands are coerced.
type Float float64

func (f Float) Kind() Kind { return KindFloat }
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// Str is a Tarnish string.
type Str string

func (s Str) Kind() Kind     { return KindStr }
func (s Str) String() string { return string(s) }

// Truthy is the canonical boolean projection: none, false, 0, 0.0 and
// "" are falsy; everything else (including callables and instances) is
// truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case None:
		return false
	case Bool:
		return bool(val)
	case Int:
		return val != 0
	case Float:
		return val != 0
	case Str:
		return val != ""
	default:
		return true
	}
}

// Equal is the `==`/`!=` structural equality: None equals only None,
// numeric kinds compare by value (Int and Float
// compare across kinds by numeric value), booleans compare to booleans,
// strings compare by content, everything else compares by identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case None:
		_, ok := b.(None)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case Int:
		switch bv := b.(type) {
		case Int:
			return av == bv
		case Float:
			return Float(av) == bv
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Int:
			return av == Float(bv)
		case Float:
			return av == bv
		}
		return false
	default:
		return a == b
	}
}

// IsNumeric reports whether v is an Int or Float, the operand class the
// arithmetic and comparison operators require.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	default:
		return false
	}
}

// AsFloat coerces a numeric Value to float64; the caller must have
// checked IsNumeric first.
func AsFloat(v Value) float64 {
	switch val := v.(type) {
	case Int:
		return float64(val)
	case Float:
		return float64(val)
	default:
		panic(fmt.Sprintf("object: AsFloat on non-numeric %T", v))
	}
}

// AsInt coerces an Int Value to int64; the caller must have checked the
// Kind first (bitwise operators require genuine integers, not floats).
func AsInt(v Value) (int64, bool) {
	i, ok := v.(Int)
	return int64(i), ok
}
