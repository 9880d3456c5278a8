package interp

import (
	"github.com/PA055/Tarnish/internal/ast"
	"github.com/PA055/Tarnish/internal/object"
	"github.com/PA055/Tarnish/internal/token"
)

// evalExpr evaluates expr to a Value, or returns a *object.RuntimeError,
// the only error shape an expression can produce: none of the
// statement-level control signals can originate inside an expression.
func (in *Interpreter) evalExpr(expr ast.Expr) (object.Value, error) {
	switch e := expr.(type) {
	case *ast.Assign:
		return in.evalAssign(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Call:
		return in.evalCall(e)
	case *ast.Get:
		return in.evalGet(e)
	case *ast.Grouping:
		return in.evalExpr(e.Inner)
	case *ast.Lambda:
		return in.makeFunction(&object.FunctionDecl{Name: "lambda", Params: e.Params, Body: []ast.Stmt{e.Body}}, in.env, false), nil
	case *ast.List:
		// The grammar slot is reserved; the parser never produces one.
		return object.NoneVal, object.NewRuntimeError(0, "", "List expressions are not supported.")
	case *ast.Literal:
		return literalValue(e.Value), nil
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.Postfix:
		return in.evalPostfix(e)
	case *ast.Prefix:
		return in.evalPrefix(e)
	case *ast.Set:
		return in.evalSet(e)
	case *ast.Super:
		return in.evalSuper(e)
	case *ast.Ternary:
		return in.evalTernary(e)
	case *ast.This:
		return in.lookUpVariable("this", e, e.Keyword)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Variable:
		return in.lookUpVariable(e.Name.Lexeme, e, e.Name)
	}
	return object.NoneVal, nil
}

// literalValue converts the parser's raw Go literal (nil, bool,
// float64, string) into the matching object.Value.
func literalValue(v any) object.Value {
	switch val := v.(type) {
	case nil:
		return object.NoneVal
	case bool:
		return object.Bool(val)
	case int64:
		return object.Int(val)
	case float64:
		return object.Float(val)
	case string:
		return object.Str(val)
	default:
		return object.NoneVal
	}
}

func (in *Interpreter) evalAssign(e *ast.Assign) (object.Value, error) {
	value, err := in.evalExpr(e.Value)
	if err != nil {
		return object.NoneVal, err
	}

	if e.Op.Kind != token.Equal {
		current, err := in.lookUpVariable(e.Name.Lexeme, e, e.Name)
		if err != nil {
			return object.NoneVal, err
		}
		value, err = combineAssign(e.Op, current, value, e.Name)
		if err != nil {
			return object.NoneVal, err
		}
	}

	if depth, ok := in.locals[e.ID()]; ok {
		in.env.AssignAt(depth, e.Name.Lexeme, value)
	} else if err := in.Globals.Assign(e.Name.Lexeme, value); err != nil {
		return object.NoneVal, runtimeErr(e.Name, "%s", err.Error())
	}
	return value, nil
}

// combineAssign applies the operator half of a compound assignment
// (`+=`, `&=`, `<<=`, …) to (current, rhs), reusing the same arithmetic
// and bitwise rules evalBinary applies to a plain Binary node.
func combineAssign(op token.Token, current, rhs object.Value, name token.Token) (object.Value, error) {
	binOp, ok := compoundToBinary[op.Kind]
	if !ok {
		return object.NoneVal, runtimeErr(name, "Unsupported compound assignment operator.")
	}
	return applyBinary(binOp, current, rhs, op)
}

var compoundToBinary = map[token.Kind]token.Kind{
	token.PlusEqual:           token.Plus,
	token.MinusEqual:          token.Minus,
	token.StarEqual:           token.Star,
	token.SlashEqual:          token.Slash,
	token.PercentEqual:        token.Percent,
	token.CaretEqual:          token.Caret,
	token.AmpEqual:            token.Amp,
	token.PipeEqual:           token.Pipe,
	token.GreaterGreaterEqual: token.GreaterGreater,
	token.LessLessEqual:       token.LessLess,
}

func (in *Interpreter) evalBinary(e *ast.Binary) (object.Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return object.NoneVal, err
	}
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return object.NoneVal, err
	}
	return applyBinary(e.Op.Kind, left, right, e.Op)
}

func (in *Interpreter) evalLogical(e *ast.Logical) (object.Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return object.NoneVal, err
	}
	if e.Op.Kind == token.OrOr {
		if object.Truthy(left) {
			return left, nil
		}
	} else {
		if !object.Truthy(left) {
			return left, nil
		}
	}
	return in.evalExpr(e.Right)
}

func (in *Interpreter) evalTernary(e *ast.Ternary) (object.Value, error) {
	cond, err := in.evalExpr(e.One)
	if err != nil {
		return object.NoneVal, err
	}
	if object.Truthy(cond) {
		return in.evalExpr(e.Two)
	}
	return in.evalExpr(e.Three)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (object.Value, error) {
	right, err := in.evalExpr(e.Inner)
	if err != nil {
		return object.NoneVal, err
	}
	switch e.Op.Kind {
	case token.Minus:
		if !object.IsNumeric(right) {
			return object.NoneVal, runtimeErr(e.Op, "Operand must be a number.")
		}
		return object.Float(-object.AsFloat(right)), nil
	case token.Plus:
		if !object.IsNumeric(right) {
			return object.NoneVal, runtimeErr(e.Op, "Operand must be a number.")
		}
		return object.Float(object.AsFloat(right)), nil
	case token.Tilde:
		i, ok := object.AsInt(right)
		if !ok {
			return object.NoneVal, runtimeErr(e.Op, "Operand must be an integer.")
		}
		return object.Int(^i), nil
	case token.Bang:
		return object.Bool(!object.Truthy(right)), nil
	}
	return object.NoneVal, runtimeErr(e.Op, "Unknown unary operator.")
}

// evalPrefix and evalPostfix read the variable, compute v+-1 (or ~v for
// ~~), and write back via the same resolved-depth-or-global choice as a
// plain assignment. Prefix yields the new value, postfix the old one.
func (in *Interpreter) evalPrefix(e *ast.Prefix) (object.Value, error) {
	old, err := in.lookUpVariable(e.Name.Lexeme, e, e.Name)
	if err != nil {
		return object.NoneVal, err
	}
	updated, err := stepValue(e.Op, old, e.Name)
	if err != nil {
		return object.NoneVal, err
	}
	in.storeVariable(e, e.Name, updated)
	return updated, nil
}

func (in *Interpreter) evalPostfix(e *ast.Postfix) (object.Value, error) {
	old, err := in.lookUpVariable(e.Name.Lexeme, e, e.Name)
	if err != nil {
		return object.NoneVal, err
	}
	updated, err := stepValue(e.Op, old, e.Name)
	if err != nil {
		return object.NoneVal, err
	}
	in.storeVariable(e, e.Name, updated)
	return old, nil
}

func (in *Interpreter) storeVariable(expr ast.Expr, name token.Token, value object.Value) {
	if depth, ok := in.locals[expr.ID()]; ok {
		in.env.AssignAt(depth, name.Lexeme, value)
		return
	}
	in.Globals.Assign(name.Lexeme, value)
}

func stepValue(op token.Token, v object.Value, name token.Token) (object.Value, error) {
	switch op.Kind {
	case token.PlusPlus:
		if !object.IsNumeric(v) {
			return object.NoneVal, runtimeErr(name, "Operand must be a number.")
		}
		if i, ok := object.AsInt(v); ok {
			return object.Int(i + 1), nil
		}
		return object.Float(object.AsFloat(v) + 1), nil
	case token.MinusMinus:
		if !object.IsNumeric(v) {
			return object.NoneVal, runtimeErr(name, "Operand must be a number.")
		}
		if i, ok := object.AsInt(v); ok {
			return object.Int(i - 1), nil
		}
		return object.Float(object.AsFloat(v) - 1), nil
	case token.DoubleTilde:
		i, ok := object.AsInt(v)
		if !ok {
			return object.NoneVal, runtimeErr(name, "Operand must be an integer.")
		}
		return object.Int(^i), nil
	}
	return object.NoneVal, runtimeErr(name, "Unknown prefix/postfix operator.")
}

func (in *Interpreter) evalCall(e *ast.Call) (object.Value, error) {
	callee, err := in.evalExpr(e.Callee)
	if err != nil {
		return object.NoneVal, err
	}
	args := make([]object.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evalExpr(a)
		if err != nil {
			return object.NoneVal, err
		}
		args[i] = v
	}

	callable, ok := callee.(object.Callable)
	if !ok {
		return object.NoneVal, runtimeErr(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return object.NoneVal, runtimeErr(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(args)
}

func (in *Interpreter) evalGet(e *ast.Get) (object.Value, error) {
	obj, err := in.evalExpr(e.Object)
	if err != nil {
		return object.NoneVal, err
	}
	instance, ok := obj.(*object.Instance)
	if !ok {
		return object.NoneVal, runtimeErr(e.Name, "Only instances have properties.")
	}
	value, ok := instance.Get(e.Name.Lexeme)
	if !ok {
		return object.NoneVal, runtimeErr(e.Name, "Undefined property '%s'.", e.Name.Lexeme)
	}
	return value, nil
}

func (in *Interpreter) evalSet(e *ast.Set) (object.Value, error) {
	obj, err := in.evalExpr(e.Object)
	if err != nil {
		return object.NoneVal, err
	}
	instance, ok := obj.(*object.Instance)
	if !ok {
		return object.NoneVal, runtimeErr(e.Name, "Only instances have fields.")
	}
	value, err := in.evalExpr(e.Value)
	if err != nil {
		return object.NoneVal, err
	}
	instance.Set(e.Name.Lexeme, value)
	return value, nil
}

// evalSuper resolves the superclass stored at the expression's recorded
// depth, reads `this` from one scope closer in, looks the method up on
// the superclass chain and binds it to that instance.
func (in *Interpreter) evalSuper(e *ast.Super) (object.Value, error) {
	depth := in.locals[e.ID()]
	superVal, err := in.env.GetAt(depth, "super")
	if err != nil {
		return object.NoneVal, runtimeErr(e.Keyword, "Undefined variable 'super'.")
	}
	superclass, ok := superVal.(*object.Class)
	if !ok {
		return object.NoneVal, runtimeErr(e.Keyword, "super is not a class.")
	}
	thisVal, err := in.env.GetAt(depth-1, "this")
	if err != nil {
		return object.NoneVal, runtimeErr(e.Keyword, "Undefined variable 'this'.")
	}
	instance, ok := thisVal.(*object.Instance)
	if !ok {
		return object.NoneVal, runtimeErr(e.Keyword, "this is not an instance.")
	}
	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return object.NoneVal, runtimeErr(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
