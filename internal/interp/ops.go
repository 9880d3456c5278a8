package interp

import (
	"math"

	"github.com/PA055/Tarnish/internal/object"
	"github.com/PA055/Tarnish/internal/token"
)

// applyBinary implements every two-operand operator, shared by plain
// Binary evaluation and the combine step of a compound assignment. op
// carries the line/lexeme used for any RuntimeError.
func applyBinary(kind token.Kind, left, right object.Value, op token.Token) (object.Value, error) {
	switch kind {
	case token.Comma:
		// The comma operator discards its left operand. The grammar level
		// is reserved, so nothing produces this today.
		return right, nil
	case token.EqualEqual:
		return object.Bool(object.Equal(left, right)), nil
	case token.BangEqual:
		return object.Bool(!object.Equal(left, right)), nil

	case token.Amp, token.Pipe, token.Caret, token.LessLess, token.GreaterGreater:
		li, ok := object.AsInt(left)
		if !ok {
			return object.NoneVal, runtimeErr(op, "Operands must be integers.")
		}
		ri, ok := object.AsInt(right)
		if !ok {
			return object.NoneVal, runtimeErr(op, "Operands must be integers.")
		}
		switch kind {
		case token.Amp:
			return object.Int(li & ri), nil
		case token.Pipe:
			return object.Int(li | ri), nil
		case token.Caret:
			return object.Int(li ^ ri), nil
		case token.LessLess:
			return object.Int(li << uint(ri)), nil
		default:
			return object.Int(li >> uint(ri)), nil
		}

	case token.Plus:
		if left.Kind() == object.KindStr || right.Kind() == object.KindStr {
			return object.Str(left.String() + right.String()), nil
		}
		if !object.IsNumeric(left) || !object.IsNumeric(right) {
			return object.NoneVal, runtimeErr(op, "Operands must be two numbers or two strings.")
		}
		if li, ri, ok := bothInt(left, right); ok {
			return object.Int(li + ri), nil
		}
		return object.Float(object.AsFloat(left) + object.AsFloat(right)), nil

	case token.Minus, token.Star, token.Slash, token.Percent, token.StarStar:
		if !object.IsNumeric(left) || !object.IsNumeric(right) {
			return object.NoneVal, runtimeErr(op, "Operands must be numbers.")
		}
		lf, rf := object.AsFloat(left), object.AsFloat(right)
		li, ri, bothIntegers := bothInt(left, right)
		switch kind {
		case token.Minus:
			if bothIntegers {
				return object.Int(li - ri), nil
			}
			return object.Float(lf - rf), nil
		case token.Star:
			if bothIntegers {
				return object.Int(li * ri), nil
			}
			return object.Float(lf * rf), nil
		case token.Slash:
			// Division is always true division: 7 / 2 is 3.5, not 3.
			if rf == 0 {
				return object.NoneVal, runtimeErr(op, "Division by zero.")
			}
			return object.Float(lf / rf), nil
		case token.Percent:
			if rf == 0 {
				return object.NoneVal, runtimeErr(op, "Division by zero.")
			}
			if bothIntegers {
				return object.Int(imod(li, ri)), nil
			}
			return object.Float(mod(lf, rf)), nil
		default: // StarStar, right-associative at the parser level; here it's just pow
			if bothIntegers && ri >= 0 {
				return object.Int(ipow(li, ri)), nil
			}
			return object.Float(pow(lf, rf)), nil
		}

	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		if !object.IsNumeric(left) || !object.IsNumeric(right) {
			return object.NoneVal, runtimeErr(op, "Operands must be numbers.")
		}
		lf, rf := object.AsFloat(left), object.AsFloat(right)
		switch kind {
		case token.Greater:
			return object.Bool(lf > rf), nil
		case token.GreaterEqual:
			return object.Bool(lf >= rf), nil
		case token.Less:
			return object.Bool(lf < rf), nil
		default:
			return object.Bool(lf <= rf), nil
		}
	}
	return object.NoneVal, runtimeErr(op, "Unknown binary operator.")
}

// bothInt reports whether left and right are both genuine object.Int
// values (as opposed to Float), returning their int64 payloads.
// Arithmetic that starts from two integers stays in the Int
// representation; promotion to Float kicks in only once a Float operand
// is involved.
func bothInt(left, right object.Value) (int64, int64, bool) {
	li, lok := object.AsInt(left)
	ri, rok := object.AsInt(right)
	return li, ri, lok && rok
}

func ipow(base, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

// imod is the integer counterpart of mod: Go's native % truncates toward
// zero like C, so it needs the same floored-sign correction.
func imod(a, b int64) int64 {
	result := a % b
	if result != 0 && (result < 0) != (b < 0) {
		result += b
	}
	return result
}

// mod implements floored modulo: the result always takes the sign of
// the divisor, so -7 % 3 is 2, not -1. math.Mod truncates toward zero,
// hence the correction.
func mod(a, b float64) float64 {
	result := math.Mod(a, b)
	if result != 0 && (result < 0) != (b < 0) {
		result += b
	}
	return result
}

func pow(base, exp float64) float64 {
	return math.Pow(base, exp)
}
