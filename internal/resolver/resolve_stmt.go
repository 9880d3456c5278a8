package resolver

import (
	"github.com/PA055/Tarnish/internal/ast"
	"github.com/PA055/Tarnish/internal/token"
)

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()

	case *ast.Class:
		r.resolveClass(s)

	case *ast.Expression:
		r.resolveExpr(s.Value)

	case *ast.Func:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunctionBody(s.Params, s.Body, fnFunction)

	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.LoopInterrupt:
		if r.loopDepth == 0 {
			kind := "break"
			if s.Keyword.Kind == token.Continue {
				kind = "continue"
			}
			r.report(s.Keyword, "Can't "+kind+" outside of a loop.")
		}

	case *ast.Print:
		r.resolveExpr(s.Value)

	case *ast.Return:
		if r.currentFunction == fnNone {
			r.report(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.report(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.Var:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)

	case *ast.While:
		r.resolveExpr(s.Cond)
		r.loopDepth++
		r.resolveStmt(s.Body)
		r.loopDepth--
	}
}

func (r *Resolver) resolveClass(s *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopeAt(0)["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.scopeAt(0)["this"] = true
	defer r.endScope()

	for _, method := range s.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "__init__" {
			kind = fnInitializer
		}
		r.resolveFunctionBody(method.Params, method.Body, kind)
	}
}
