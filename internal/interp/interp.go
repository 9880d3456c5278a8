// Package interp is the tree-walking interpreter: it executes the
// ast.Stmt/ast.Expr tree the parser produced, using the resolver's depth
// map for variable lookups and object.Environment for scope storage.
package interp

import (
	"io"
	"os"

	"github.com/PA055/Tarnish/internal/ast"
	"github.com/PA055/Tarnish/internal/object"
	"github.com/PA055/Tarnish/internal/token"
)

// returnSignal, breakSignal and continueSignal are the three non-local
// control-flow carriers. They satisfy Go's error interface so every
// eval/exec method can thread them through an ordinary
// (object.Value, error) return instead of panic/recover.
// Only the statement that actually handles a given signal (while/for for
// break and continue, Function.Call for return) ever type-switches on
// it; everything else just propagates the error unchanged.
type returnSignal struct{ Value object.Value }

func (r *returnSignal) Error() string { return "return" }

type breakSignal struct{ N int }

func (b *breakSignal) Error() string { return "break" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue" }

// Interpreter walks the AST, holding the global environment, the
// currently active environment, the resolver's depth map, and the
// stream print writes to.
type Interpreter struct {
	Globals *object.Environment
	env     *object.Environment
	locals  map[ast.ExprID]int
	out     io.Writer
}

// New creates an Interpreter with a fresh global environment. locals is
// the resolver's output; it may be nil (every lookup then falls back to
// the global environment), but in practice Interpret is always called
// after a successful Resolve.
func New(locals map[ast.ExprID]int) *Interpreter {
	globals := object.NewEnvironment(nil)
	return &Interpreter{
		Globals: globals,
		env:     globals,
		locals:  locals,
		out:     os.Stdout,
	}
}

// SetOutput redirects print statements, used by tests to capture
// output.
func (in *Interpreter) SetOutput(w io.Writer) {
	in.out = w
}

// MergeLocals folds a resolver depth map into the interpreter's own,
// used when the same Interpreter evaluates several independently-resolved
// chunks (the REPL resolves and interprets one line at a time but keeps
// one Interpreter alive across the whole session). Merging rather than
// replacing keeps closures from earlier chunks working: their bodies'
// depth entries must survive later Run calls. ExprIDs are process-wide
// unique, so entries from different chunks can never collide.
func (in *Interpreter) MergeLocals(locals map[ast.ExprID]int) {
	if in.locals == nil {
		in.locals = make(map[ast.ExprID]int)
	}
	for id, depth := range locals {
		in.locals[id] = depth
	}
}

// Interpret runs a whole program. A *object.RuntimeError surfacing here
// is the only error shape that should ever reach the caller: returnSignal
// and breakSignal/continueSignal escaping to this level indicate a
// resolver bug (e.g. a loop body with a break the resolver failed to
// reject), since every statement context is matched to its own handler.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if _, err := in.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// lookUpVariable chooses between a resolved-depth lookup and a global
// lookup, shared by Variable, This, and Super evaluation. tok ties a
// failed lookup's RuntimeError to the referencing token's source line.
func (in *Interpreter) lookUpVariable(name string, expr ast.Expr, tok token.Token) (object.Value, error) {
	var value object.Value
	var err error
	if depth, ok := in.locals[expr.ID()]; ok {
		value, err = in.env.GetAt(depth, name)
	} else {
		value, err = in.Globals.Get(name)
	}
	if err != nil {
		return object.NoneVal, runtimeErr(tok, "Undefined variable '%s'.", name)
	}
	return value, nil
}

func runtimeErr(tok token.Token, format string, args ...any) *object.RuntimeError {
	return object.NewRuntimeError(tok.Line, tok.Lexeme, format, args...)
}
