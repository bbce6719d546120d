package parser

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// parseExternDecl parses `"extern" type ID "(" typelist? ")" ";"`.
func (p *Parser) parseExternDecl() (*ast.ExternDecl, error) {
	tok := p.curToken
	p.nextToken() // consume 'extern'

	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(lexer.IDENT) {
		return nil, newSyntaxError(p.curToken.Pos, "expected function name, got %s", p.curToken.Type)
	}
	name := p.curToken.Literal
	p.nextToken()

	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var paramTypes []types.Type
	for !p.curTokenIs(lexer.RPAREN) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		paramTypes = append(paramTypes, t)
		if p.curTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.ExternDecl{Token: tok, ReturnType: retType, Name: name, ParamTypes: paramTypes}, nil
}

// parseFunctionDecl parses `"def" type ID "(" paramlist? ")" block`.
func (p *Parser) parseFunctionDecl() (*ast.FunctionDecl, error) {
	tok := p.curToken
	p.nextToken() // consume 'def'

	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(lexer.IDENT) {
		return nil, newSyntaxError(p.curToken.Pos, "expected function name, got %s", p.curToken.Type)
	}
	name := p.curToken.Literal
	p.nextToken()

	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var params []*ast.ParamDecl
	for !p.curTokenIs(lexer.RPAREN) {
		param, err := p.parseParamDecl()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.curTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlockStmt()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{Token: tok, ReturnType: retType, Name: name, Params: params, Body: body}, nil
}

// parseParamDecl parses `type varid`.
func (p *Parser) parseParamDecl() (*ast.ParamDecl, error) {
	tok := p.curToken
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(lexer.VARID) {
		return nil, newSyntaxError(p.curToken.Pos, "expected a variable name, got %s", p.curToken.Type)
	}
	name := p.curToken.Literal
	p.nextToken()
	return &ast.ParamDecl{Token: tok, Type: t, Name: name}, nil
}

// startsType reports whether the current token can begin a type, used to
// disambiguate `type varid = expr;` from a bare expression statement
// whose first token happens to also be a VARID-leading expression.
func (p *Parser) startsType() bool {
	switch p.curToken.Type {
	case lexer.INT_TYPE, lexer.CINT_TYPE, lexer.FLOAT_TYPE, lexer.BOOL_TYPE, lexer.VOID_TYPE, lexer.REF, lexer.NOALIAS:
		return true
	default:
		return false
	}
}
