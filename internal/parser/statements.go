package parser

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/lexer"
)

// parseBlockStmt parses `"{" stmt* "}"`.
func (p *Parser) parseBlockStmt() (*ast.BlockStmt, error) {
	tok := p.curToken
	if err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}

	block := &ast.BlockStmt{Token: tok}
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

// parseStatement dispatches on the current token per the stmt grammar.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curToken.Type {
	case lexer.LBRACE:
		return p.parseBlockStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.PRINT:
		return p.parsePrintStmt()
	default:
		if p.startsType() {
			return p.parseVarDeclStmt()
		}
		return p.parseExprStmt()
	}
}

func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, error) {
	tok := p.curToken
	p.nextToken() // consume 'return'

	stmt := &ast.ReturnStmt{Token: tok}
	if !p.curTokenIs(lexer.SEMICOLON) {
		val, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		stmt.Value = val
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (*ast.WhileStmt, error) {
	tok := p.curToken
	p.nextToken() // consume 'while'

	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}, nil
}

// parseIfStmt parses `"if" "(" expr ")" stmt ("else" stmt)?`. A trailing
// "else" binds to the nearest enclosing "if" simply because this call
// consumes it before returning to any outer if's own else-check.
func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	tok := p.curToken
	p.nextToken() // consume 'if'

	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Token: tok, Condition: cond, Then: then}
	if p.curTokenIs(lexer.ELSE) {
		p.nextToken()
		elseBranch, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBranch
	}
	return stmt, nil
}

// parsePrintStmt parses `"print" expr ";"` or `"print" slit ";"`.
func (p *Parser) parsePrintStmt() (ast.Statement, error) {
	tok := p.curToken
	p.nextToken() // consume 'print'

	if p.curTokenIs(lexer.STRING) {
		text := p.curToken.Literal
		p.nextToken()
		if err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.PrintStringStmt{Token: tok, Text: text}, nil
	}

	val, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.PrintValueStmt{Token: tok, Value: val}, nil
}

// parseVarDeclStmt parses `vdecl "=" expr ";"`.
func (p *Parser) parseVarDeclStmt() (*ast.VarDeclStmt, error) {
	tok := p.curToken
	decl, err := p.parseParamDecl()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	val, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.VarDeclStmt{Token: tok, Decl: decl, Value: val}, nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	tok := p.curToken
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Token: tok, Expression: expr}, nil
}
