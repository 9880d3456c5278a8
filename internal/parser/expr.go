package parser

import (
	"strconv"
	"strings"

	"github.com/PA055/Tarnish/internal/ast"
	"github.com/PA055/Tarnish/internal/token"
)

// expression is the entry point used by argument lists, statement
// bodies and every other expression position: assignment is the
// loosest-binding level below the reserved comma operator.
func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment is right-associative and requires its left-hand side to be
// a Variable (-> Assign) or a Get (-> Set); it accepts plain `=` and
// every compound form from `+=` through `<<=`.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.ternary()
	if err != nil {
		return nil, err
	}

	if p.match(token.Equal, token.PlusEqual, token.MinusEqual, token.StarEqual,
		token.SlashEqual, token.PercentEqual, token.CaretEqual, token.AmpEqual,
		token.PipeEqual, token.GreaterGreaterEqual, token.LessLessEqual) {
		op := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *ast.Variable:
			return ast.NewAssign(target.Name, op, value), nil
		case *ast.Get:
			// Set carries no operator, so a compound form desugars to a
			// plain store of `object.name <op> value`.
			if op.Kind != token.Equal {
				base, ok := compoundBase[op.Kind]
				if !ok {
					return nil, p.errorAt(op, "Invalid assignment target.")
				}
				current := ast.NewGet(target.Object, target.Name)
				binOp := token.New(base, strings.TrimSuffix(op.Lexeme, "="), op.Line)
				value = ast.NewBinary(current, binOp, value)
			}
			return ast.NewSet(target.Object, target.Name, value), nil
		}
		return nil, p.errorAt(op, "Invalid assignment target.")
	}
	return expr, nil
}

// compoundBase maps each compound assignment operator to the binary
// operator it combines with.
var compoundBase = map[token.Kind]token.Kind{
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

// ternary is `cond ? then : else`, right-associative; both `?` and `:`
// are required.
func (p *Parser) ternary() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.match(token.Question) {
		op1 := p.previous()
		then, err := p.ternary()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.Colon, "Expect ':' in ternary expression."); err != nil {
			return nil, err
		}
		op2 := p.previous()
		elseExpr, err := p.ternary()
		if err != nil {
			return nil, err
		}
		return ast.NewTernary(expr, op1, then, op2, elseExpr), nil
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.OrOr) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.AndAnd) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.leftAssocBinary(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.leftAssocBinary(p.bitOr, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) bitOr() (ast.Expr, error) {
	return p.leftAssocBinary(p.bitXor, token.Pipe)
}

func (p *Parser) bitXor() (ast.Expr, error) {
	return p.leftAssocBinary(p.bitAnd, token.Caret)
}

func (p *Parser) bitAnd() (ast.Expr, error) {
	return p.leftAssocBinary(p.shift, token.Amp)
}

func (p *Parser) shift() (ast.Expr, error) {
	return p.leftAssocBinary(p.term, token.LessLess, token.GreaterGreater)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.leftAssocBinary(p.factor, token.Plus, token.Minus)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.leftAssocBinary(p.unary, token.Star, token.Slash, token.Percent)
}

// leftAssocBinary factors out the "parse one operand of next, then loop
// while the current token is one of kinds" shape shared by every binary
// precedence level from equality down to factor.
func (p *Parser) leftAssocBinary(next func() (ast.Expr, error), kinds ...token.Kind) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(kinds...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, op, right)
	}
	return expr, nil
}

// unary is the right-associative prefix level: `- ! + ~`.
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.Minus, token.Bang, token.Plus, token.Tilde) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(op, right), nil
	}
	return p.prefix()
}

// prefix is `++name`, `--name`, `~~name`; the operand must be a bare
// Variable.
func (p *Parser) prefix() (ast.Expr, error) {
	if p.match(token.PlusPlus, token.MinusMinus, token.DoubleTilde) {
		op := p.previous()
		name, err := p.consume(token.Identifier, "Expect variable name after prefix operator.")
		if err != nil {
			return nil, err
		}
		return ast.NewPrefix(op, name), nil
	}
	return p.exponent()
}

// exponent is `**`, right-associative: 2 ** 3 ** 2 is 2 ** (3 ** 2).
func (p *Parser) exponent() (ast.Expr, error) {
	expr, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if p.match(token.StarStar) {
		op := p.previous()
		right, err := p.exponent()
		if err != nil {
			return nil, err
		}
		return ast.NewBinary(expr, op, right), nil
	}
	return expr, nil
}

// postfix is `name++`, `name--`, `name~~` applied after a call/get
// chain has already been parsed; the result must be a bare Variable.
func (p *Parser) postfix() (ast.Expr, error) {
	expr, err := p.call()
	if err != nil {
		return nil, err
	}
	if p.match(token.PlusPlus, token.MinusMinus, token.DoubleTilde) {
		op := p.previous()
		variable, ok := expr.(*ast.Variable)
		if !ok {
			return nil, p.errorAt(op, "Invalid postfix operand.")
		}
		return ast.NewPostfix(variable.Name, op), nil
	}
	return expr, nil
}

// call parses a left-associative chain of `(args)` calls and `.name`
// property accesses following a primary expression.
func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.lambdaOrPrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(token.LeftParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(token.Dot):
			name, err := p.consume(token.Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = ast.NewGet(expr, name)
		default:
			return expr, nil
		}
	}
}

const maxArgs = 255

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				return nil, p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(token.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.NewCall(callee, paren, args), nil
}

// lambdaOrPrimary handles `lambda(params) body` before falling through
// to primary, since lambda is its own grammar level above primary but
// below call/get (a lambda's result can itself be called).
func (p *Parser) lambdaOrPrimary() (ast.Expr, error) {
	if p.match(token.Lambda) {
		if _, err := p.consume(token.LeftParen, "Expect '(' after 'lambda'."); err != nil {
			return nil, err
		}
		params, err := p.parameterList()
		if err != nil {
			return nil, err
		}
		body, err := p.statement()
		if err != nil {
			return nil, err
		}
		return ast.NewLambda(params, body), nil
	}
	return p.primary()
}

func (p *Parser) parameterList() ([]token.Token, error) {
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				return nil, p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			name, err := p.consume(token.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, name)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	return params, nil
}

// numberLiteral decides whether a scanned NUMBER token denotes a Tarnish
// Int or Float value: a lexeme with no '.' is an integer literal, parsed
// exactly as int64 rather than through the lexer's float64 token.Literal
// so a large literal doesn't lose precision. Without this split no
// Tarnish program could ever produce an Int value, leaving the bitwise
// operators and `~~` permanently unreachable.
func numberLiteral(tok token.Token) any {
	if !strings.Contains(tok.Lexeme, ".") {
		if i, err := strconv.ParseInt(tok.Lexeme, 10, 64); err == nil {
			return i
		}
	}
	return tok.Literal
}

// primary is the lowest grammar level: literals, `this`, `super.name`,
// identifiers, and parenthesized sub-expressions.
func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(token.False):
		return ast.NewLiteral(false), nil
	case p.match(token.True):
		return ast.NewLiteral(true), nil
	case p.match(token.None):
		return ast.NewLiteral(nil), nil
	case p.match(token.Number):
		return ast.NewLiteral(numberLiteral(p.previous())), nil
	case p.match(token.String):
		return ast.NewLiteral(p.previous().Literal), nil
	case p.match(token.Super):
		keyword := p.previous()
		if _, err := p.consume(token.Dot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(token.Identifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return ast.NewSuper(keyword, method), nil
	case p.match(token.This):
		return ast.NewThis(p.previous()), nil
	case p.match(token.Identifier):
		return ast.NewVariable(p.previous()), nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	}
	return nil, p.errorAt(p.peek(), "Expect expression.")
}
