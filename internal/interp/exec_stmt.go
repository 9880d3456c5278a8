package interp

import (
	"fmt"

	"github.com/PA055/Tarnish/internal/ast"
	"github.com/PA055/Tarnish/internal/object"
	"github.com/PA055/Tarnish/internal/token"
)

// execStmt runs one statement, returning whatever control signal (if
// any) should propagate to the nearest handler: return unwinds to the
// enclosing Function.Call, break/continue unwind to the enclosing
// while/for.
func (in *Interpreter) execStmt(stmt ast.Stmt) (object.Value, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return in.execBlock(s.Stmts, object.NewEnvironment(in.env))

	case *ast.Class:
		return in.execClass(s)

	case *ast.Expression:
		_, err := in.evalExpr(s.Value)
		return object.NoneVal, err

	case *ast.Func:
		fn := in.makeFunction(&object.FunctionDecl{Name: s.Name.Lexeme, Params: s.Params, Body: s.Body}, in.env, false)
		in.env.Define(s.Name.Lexeme, fn)
		return object.NoneVal, nil

	case *ast.If:
		cond, err := in.evalExpr(s.Cond)
		if err != nil {
			return object.NoneVal, err
		}
		if object.Truthy(cond) {
			return in.execStmt(s.Then)
		} else if s.Else != nil {
			return in.execStmt(s.Else)
		}
		return object.NoneVal, nil

	case *ast.LoopInterrupt:
		if s.Keyword.Kind == token.Continue {
			return object.NoneVal, &continueSignal{}
		}
		return object.NoneVal, &breakSignal{N: s.N}

	case *ast.Print:
		value, err := in.evalExpr(s.Value)
		if err != nil {
			return object.NoneVal, err
		}
		fmt.Fprintln(in.out, value.String())
		return object.NoneVal, nil

	case *ast.Return:
		var value object.Value = object.NoneVal
		if s.Value != nil {
			v, err := in.evalExpr(s.Value)
			if err != nil {
				return object.NoneVal, err
			}
			value = v
		}
		return object.NoneVal, &returnSignal{Value: value}

	case *ast.Var:
		var value object.Value = object.NoneVal
		if s.Init != nil {
			v, err := in.evalExpr(s.Init)
			if err != nil {
				return object.NoneVal, err
			}
			value = v
		}
		in.env.Define(s.Name.Lexeme, value)
		return object.NoneVal, nil

	case *ast.While:
		return in.execWhile(s)
	}
	return object.NoneVal, nil
}

// execBlock runs stmts in env, restoring the interpreter's previous
// environment on every exit path, including an early control-signal
// return.
func (in *Interpreter) execBlock(stmts []ast.Stmt, env *object.Environment) (object.Value, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if _, err := in.execStmt(stmt); err != nil {
			return object.NoneVal, err
		}
	}
	return object.NoneVal, nil
}

// execWhile runs the loop body until Cond is falsy, consuming
// breakSignal (decrementing multi-level depth and re-raising if >1) and
// continueSignal locally; every other control signal (return, a runtime
// error) propagates unchanged. For a for-desugared loop, the increment is
// the last statement of the Block body; a continue that unwinds from
// inside that block would otherwise skip it, so it is re-run explicitly
// in a fresh environment before the condition is re-tested.
func (in *Interpreter) execWhile(s *ast.While) (object.Value, error) {
	var increment ast.Stmt
	if s.ForTransformed {
		if block, ok := s.Body.(*ast.Block); ok && len(block.Stmts) > 0 {
			increment = block.Stmts[len(block.Stmts)-1]
		}
	}

	for {
		cond, err := in.evalExpr(s.Cond)
		if err != nil {
			return object.NoneVal, err
		}
		if !object.Truthy(cond) {
			return object.NoneVal, nil
		}

		_, err = in.execStmt(s.Body)
		if err == nil {
			continue
		}
		switch sig := err.(type) {
		case *breakSignal:
			if sig.N > 1 {
				return object.NoneVal, &breakSignal{N: sig.N - 1}
			}
			return object.NoneVal, nil
		case *continueSignal:
			if increment != nil {
				if _, err := in.execBlock([]ast.Stmt{increment}, object.NewEnvironment(in.env)); err != nil {
					return object.NoneVal, err
				}
			}
			continue
		default:
			return object.NoneVal, err
		}
	}
}

// execClass builds the runtime Class value: resolves the superclass (if
// any), binds every method's closure to the class's defining
// environment, and for a subclass wraps that environment in one more
// scope exposing `super`, matching the resolver's corresponding extra
// scope.
func (in *Interpreter) execClass(s *ast.Class) (object.Value, error) {
	var superclass *object.Class
	if s.Superclass != nil {
		v, err := in.evalExpr(s.Superclass)
		if err != nil {
			return object.NoneVal, err
		}
		sc, ok := v.(*object.Class)
		if !ok {
			return object.NoneVal, runtimeErr(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, object.NoneVal)

	methodEnv := in.env
	if superclass != nil {
		methodEnv = object.NewEnvironment(in.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*object.Function)
	for _, m := range s.Methods {
		decl := &object.FunctionDecl{Name: m.Name.Lexeme, Params: m.Params, Body: m.Body}
		methods[m.Name.Lexeme] = in.makeFunction(decl, methodEnv, m.Name.Lexeme == "__init__")
	}

	class := &object.Class{Name: s.Name.Lexeme, Methods: methods, Superclass: superclass}
	if err := in.env.Assign(s.Name.Lexeme, class); err != nil {
		return object.NoneVal, runtimeErr(s.Name, "Undefined variable '%s'.", s.Name.Lexeme)
	}
	return object.NoneVal, nil
}

// makeFunction builds an object.Function whose Invoke closes over this
// interpreter, running decl.Body in a fresh environment parented on
// closure with each parameter bound to its argument.
func (in *Interpreter) makeFunction(decl *object.FunctionDecl, closure *object.Environment, isInitializer bool) *object.Function {
	fn := &object.Function{Decl: decl, Closure: closure, IsInitializer: isInitializer}
	fn.Invoke = func(f *object.Function, args []object.Value) (object.Value, error) {
		callEnv := object.NewEnvironment(f.Closure)
		for i, param := range f.Decl.Params {
			callEnv.Define(param.Lexeme, args[i])
		}
		body, _ := f.Decl.Body.([]ast.Stmt)
		_, err := in.execBlock(body, callEnv)

		if ret, ok := err.(*returnSignal); ok {
			if f.IsInitializer {
				return f.Closure.GetAt(0, "this")
			}
			return ret.Value, nil
		}
		if err != nil {
			return object.NoneVal, err
		}
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this")
		}
		return object.NoneVal, nil
	}
	return fn
}
