package resolver

import "github.com/PA055/Tarnish/internal/ast"

// resolveExpr dispatches on concrete Expr type. Only Variable, Assign,
// This, Super, Prefix and Postfix are ever recorded in Locals;
// everything else here exists purely to walk into child expressions.
func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Grouping:
		r.resolveExpr(e.Inner)

	case *ast.Lambda:
		r.resolveFunctionBody(e.Params, []ast.Stmt{e.Body}, fnLambda)

	case *ast.List:
		for _, item := range e.Items {
			r.resolveExpr(item)
		}

	case *ast.Literal:
		// nothing to resolve

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Postfix:
		r.resolveLocal(e, e.Name)

	case *ast.Prefix:
		r.resolveLocal(e, e.Name)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.Super:
		if r.currentClass == classNone {
			r.report(e.Keyword, "Can't use 'super' outside of a class.")
		} else if r.currentClass != classSubclass {
			r.report(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.Ternary:
		r.resolveExpr(e.One)
		r.resolveExpr(e.Two)
		r.resolveExpr(e.Three)

	case *ast.This:
		if r.currentClass == classNone {
			r.report(e.Keyword, "Can't use 'this' outside of a class.")
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.Unary:
		r.resolveExpr(e.Inner)

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopeAt(0)[e.Name.Lexeme]; ok && !defined {
				r.report(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	}
}
