package parser

import (
	"strconv"

	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/types"
)

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression is the Pratt climbing loop. precedence is the binding
// power of the caller; the loop keeps folding infix operators into left
// as long as the next operator binds tighter.
func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		return nil, newSyntaxError(p.curToken.Pos, "unexpected token %s (%q) in expression", p.curToken.Type, p.curToken.Literal)
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for !p.curTokenIs(lexer.SEMICOLON) && precedence < p.curPrecedence() {
		infix, ok := p.infixParseFns[p.curToken.Type]
		if !ok {
			return left, nil
		}
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseIntLiteral() (ast.Expression, error) {
	tok := p.curToken
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, newSyntaxError(tok.Pos, "invalid integer literal %q", tok.Literal)
	}
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: types.Int, IntVal: int32(v)}, nil
}

func (p *Parser) parseFloatLiteral() (ast.Expression, error) {
	tok := p.curToken
	v, err := strconv.ParseFloat(tok.Literal, 32)
	if err != nil {
		return nil, newSyntaxError(tok.Pos, "invalid float literal %q", tok.Literal)
	}
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: types.Float, FloatVal: float32(v)}, nil
}

func (p *Parser) parseBoolLiteral() (ast.Expression, error) {
	tok := p.curToken
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: types.Bool, BoolVal: tok.Type == lexer.TRUE}, nil
}

func (p *Parser) parseVarRef() (ast.Expression, error) {
	tok := p.curToken
	p.nextToken()
	return &ast.VarRef{Token: tok, Name: tok.Literal}, nil
}

func (p *Parser) parseGroupedExpr() (ast.Expression, error) {
	p.nextToken() // consume '('
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseCastExpr parses `"[" type "]" expr`, an explicit cast.
func (p *Parser) parseCastExpr() (ast.Expression, error) {
	tok := p.curToken
	p.nextToken() // consume '['
	target, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	return &ast.CastExpr{Token: tok, Target: target, Value: value}, nil
}

// parseUnaryExpr parses a prefix unary operator. The recursive call at
// PREFIX precedence is what makes chained prefixes (e.g. "- -$x") nest
// right-to-left.
func (p *Parser) parseUnaryExpr() (ast.Expression, error) {
	tok := p.curToken
	var op ast.UnaryOp
	switch tok.Type {
	case lexer.MINUS:
		op = ast.OpNeg
	case lexer.NOT:
		op = ast.OpNot
	}
	p.nextToken()
	operand, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Token: tok, Op: op, Operand: operand}, nil
}

func (p *Parser) parseCallExpr() (ast.Expression, error) {
	tok := p.curToken
	name := tok.Literal
	p.nextToken() // consume the identifier

	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.curTokenIs(lexer.RPAREN) {
		arg, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Token: tok, Callee: name, Arguments: args}, nil
}

// parseBinaryExpr parses a left-associative binary operator: the
// recursive call uses the operator's own precedence, so a same-precedence
// operator encountered while parsing the right side stops the recursion
// and folds left instead of nesting right.
func (p *Parser) parseBinaryExpr(left ast.Expression) (ast.Expression, error) {
	tok := p.curToken
	op, ok := binaryOpFor(tok.Type)
	if !ok {
		return nil, newSyntaxError(tok.Pos, "unexpected operator %s", tok.Type)
	}
	prec := p.curPrecedence()
	p.nextToken()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Token: tok, Op: op, Left: left, Right: right}, nil
}

func binaryOpFor(t lexer.TokenType) (ast.BinaryOp, bool) {
	switch t {
	case lexer.PLUS:
		return ast.OpAdd, true
	case lexer.MINUS:
		return ast.OpSub, true
	case lexer.ASTERISK:
		return ast.OpMul, true
	case lexer.SLASH:
		return ast.OpDiv, true
	case lexer.EQ:
		return ast.OpEq, true
	case lexer.LT:
		return ast.OpLt, true
	case lexer.GT:
		return ast.OpGt, true
	case lexer.AND:
		return ast.OpAnd, true
	case lexer.OR:
		return ast.OpOr, true
	default:
		return 0, false
	}
}

// parseAssignExpr is the sole infix handler for ASSIGN. The grammar
// restricts the left side to a bare varid; recursing at ASSIGN-1 makes
// the operator right-associative so "$x = $y = 1" nests as "$x = ($y = 1)".
func (p *Parser) parseAssignExpr(left ast.Expression) (ast.Expression, error) {
	varRef, ok := left.(*ast.VarRef)
	if !ok {
		return nil, newSyntaxError(p.curToken.Pos, "left side of '=' must be a variable")
	}
	tok := p.curToken
	p.nextToken()
	value, err := p.parseExpression(ASSIGN - 1)
	if err != nil {
		return nil, err
	}
	return &ast.AssignExpr{Token: tok, Name: varRef.Name, Value: value}, nil
}
