package parser

import (
	"github.com/PA055/Tarnish/internal/ast"
	"github.com/PA055/Tarnish/internal/token"
)

// declaration is the top of the statement grammar: `var`, `func`, and
// `class` declarations fall through to statement for everything else.
func (p *Parser) declaration() (ast.Stmt, error) {
	switch {
	case p.match(token.Var):
		return p.varDeclaration()
	case p.match(token.Func):
		return p.funcDeclaration("function")
	case p.match(token.Class):
		return p.classDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.match(token.Equal) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.Var{Name: name, Init: init}, nil
}

// funcDeclaration parses `func name(params) { body }`; kind names the
// declaration being parsed ("function" or "method") purely for error
// messages.
func (p *Parser) funcDeclaration(kind string) (*ast.Func, error) {
	name, err := p.consume(token.Identifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}
	params, err := p.parameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.Func{Name: name, Params: params, Body: body}, nil
}

// classDeclaration parses `class Name [(Super)] { func ... }`; the body
// is a sequence of method declarations only.
func (p *Parser) classDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.Variable
	if p.match(token.LeftParen) {
		superName, err := p.consume(token.Identifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		if superName.Lexeme == name.Lexeme {
			return nil, p.errorAt(superName, "A class can't inherit from itself.")
		}
		superclass = ast.NewVariable(superName)
		if _, err := p.consume(token.RightParen, "Expect ')' after superclass name."); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	var methods []*ast.Func
	for !p.check(token.RightBrace) && !p.atEnd() {
		if _, err := p.consume(token.Func, "Expect method declaration."); err != nil {
			return nil, err
		}
		method, err := p.funcDeclaration("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}, nil
}

// statement dispatches on the current token to one of the simple
// statement forms, falling back to an expression statement.
func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.Break):
		return p.loopInterrupt(token.Break)
	case p.match(token.Continue):
		return p.loopInterrupt(token.Continue)
	case p.match(token.LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.Block{Stmts: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) block() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Cond: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after while condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

// forStatement desugars `for (init; cond; inc) body` into
// Block{init?, While{cond ?? true, Block{body, inc}}}, or just body in
// place of the inner Block when there is no increment. Only a loop with
// an increment is marked ForTransformed, so the interpreter can re-run
// the increment when a continue unwinds past it.
func (p *Parser) forStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		var err error
		initializer, err = p.varDeclaration()
		if err != nil {
			return nil, err
		}
	default:
		var err error
		initializer, err = p.expressionStatement()
		if err != nil {
			return nil, err
		}
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		var err error
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(token.RightParen) {
		var err error
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.Block{Stmts: []ast.Stmt{body, &ast.Expression{Value: increment}}}
	}
	if condition == nil {
		condition = ast.NewLiteral(true)
	}
	loop := &ast.While{Cond: condition, Body: body, ForTransformed: increment != nil}

	if initializer != nil {
		return &ast.Block{Stmts: []ast.Stmt{initializer, loop}}, nil
	}
	return loop, nil
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.Print{Value: value}, nil
}

func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.Return{Keyword: keyword, Value: value}, nil
}

// loopInterrupt parses `break [n];` or `continue;`; a break's depth must
// be a positive integer literal, else it is a parse error.
func (p *Parser) loopInterrupt(kind token.Kind) (ast.Stmt, error) {
	keyword := p.previous()
	n := 1
	if kind == token.Break && !p.check(token.Semicolon) {
		numTok, err := p.consume(token.Number, "Expect integer break depth.")
		if err != nil {
			return nil, err
		}
		f, ok := numTok.Literal.(float64)
		if !ok || f != float64(int(f)) || f < 1 {
			return nil, p.errorAt(numTok, "Break depth must be a positive integer literal.")
		}
		n = int(f)
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.LoopInterrupt{Keyword: keyword, N: n}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.Expression{Value: value}, nil
}

// consumeSemicolon enforces the semicolon policy: required after every
// statement unless the parser is already at EOF.
func (p *Parser) consumeSemicolon() error {
	if p.atEnd() {
		return nil
	}
	_, err := p.consume(token.Semicolon, "Expect ';' after statement.")
	return err
}
