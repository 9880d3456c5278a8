// Package resolver performs a single static pass over the AST: it
// assigns every name reference a scope depth (or leaves it unresolved
// for the global environment) and rejects a handful of structurally
// invalid programs before the interpreter ever runs them.
package resolver

import (
	"github.com/PA055/Tarnish/internal/ast"
	"github.com/PA055/Tarnish/internal/diag"
	"github.com/PA055/Tarnish/internal/token"
)

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnInitializer
	fnMethod
	fnLambda
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// Resolver walks the AST once, maintaining a stack of lexical scopes
// and a handful of enum-valued "are we inside X" flags that validate
// return, break/continue, this and super placement.
type Resolver struct {
	scopes          []map[string]bool
	loopDepth       int
	currentFunction functionKind
	currentClass    classKind

	// Locals maps every name-reference Expr this pass resolved to a scope
	// depth; the interpreter consults it instead of walking the AST again.
	Locals map[ast.ExprID]int

	sink *diag.Sink
}

// New creates a Resolver reporting errors through sink.
func New(sink *diag.Sink) *Resolver {
	return &Resolver{Locals: make(map[ast.ExprID]int), sink: sink}
}

// Resolve runs the pass over a whole program.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) scopeAt(fromTop int) map[string]bool {
	return r.scopes[len(r.scopes)-1-fromTop]
}

// declare marks name as present but not yet initialized in the
// innermost scope, rejecting a redeclaration in that same scope.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopeAt(0)
	if _, ok := scope[name.Lexeme]; ok {
		r.report(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

// define marks name as fully initialized in the innermost scope.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopeAt(0)[name.Lexeme] = true
}

// resolveLocal walks scopes from innermost outward; if found at depth d
// it records Locals[expr] = d. An unresolved name is left absent,
// meaning "look up in the global environment" to both the resolver and
// the interpreter.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.Locals[expr.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) report(tok token.Token, message string) {
	if r.sink == nil {
		return
	}
	r.sink.ReportAt(tok.Line, tok.Lexeme, tok.Kind == token.EOF, message)
}

func (r *Resolver) resolveFunctionBody(params []token.Token, body []ast.Stmt, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	// A function body starts outside any loop, even when the declaration
	// sits inside one: a break there must not unwind through the call.
	enclosingLoopDepth := r.loopDepth
	r.loopDepth = 0
	defer func() {
		r.currentFunction = enclosingFunction
		r.loopDepth = enclosingLoopDepth
	}()

	r.beginScope()
	defer r.endScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(body)
}
