// Package parser builds an AST from a token stream using a fixed
// precedence table. There is no panic-mode recovery: the first
// SyntaxError aborts the parse and the caller receives no AST.
package parser

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// Precedence levels, lowest to highest, matching the fixed table:
// IF < ELSE < ASSIGN < OR < AND < EQUAL < {LT,GT} < {PLUS,MINUS} <
// {TIMES,DIVIDE} < {UOP,TYPECAST}. IF/ELSE bind at the statement level
// (dangling-else falls out of recursive descent, not this table).
const (
	_ int = iota
	LOWEST
	ASSIGN
	OR
	AND
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:   ASSIGN,
	lexer.OR:       OR,
	lexer.AND:      AND,
	lexer.EQ:       EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
}

type prefixParseFn func() (ast.Expression, error)
type infixParseFn func(ast.Expression) (ast.Expression, error)

// Parser consumes tokens from a lexer two at a time (current + lookahead)
// and builds AST nodes top-down.
type Parser struct {
	l *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New constructs a Parser over l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.INT:      p.parseIntLiteral,
		lexer.FLOAT:    p.parseFloatLiteral,
		lexer.TRUE:     p.parseBoolLiteral,
		lexer.FALSE:    p.parseBoolLiteral,
		lexer.VARID:    p.parseVarRef,
		lexer.IDENT:    p.parseCallExpr,
		lexer.LPAREN:   p.parseGroupedExpr,
		lexer.LBRACKET: p.parseCastExpr,
		lexer.MINUS:    p.parseUnaryExpr,
		lexer.NOT:      p.parseUnaryExpr,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseBinaryExpr,
		lexer.MINUS:    p.parseBinaryExpr,
		lexer.ASTERISK: p.parseBinaryExpr,
		lexer.SLASH:    p.parseBinaryExpr,
		lexer.EQ:       p.parseBinaryExpr,
		lexer.LT:       p.parseBinaryExpr,
		lexer.GT:       p.parseBinaryExpr,
		lexer.AND:      p.parseBinaryExpr,
		lexer.OR:       p.parseBinaryExpr,
		lexer.ASSIGN:   p.parseAssignExpr,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// expect asserts the current token is t, consumes it, and returns a
// SyntaxError identifying what was expected otherwise.
func (p *Parser) expect(t lexer.TokenType) error {
	if !p.curTokenIs(t) {
		return newSyntaxError(p.curToken.Pos, "expected %s, got %s (%q)", t, p.curToken.Type, p.curToken.Literal)
	}
	p.nextToken()
	return nil
}

// Parse parses a full program: extern* function+. The first syntax error
// aborts immediately with a nil Program.
func Parse(l *lexer.Lexer) (*ast.Program, error) {
	p := New(l)
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	for p.curTokenIs(lexer.EXTERN) {
		decl, err := p.parseExternDecl()
		if err != nil {
			return nil, err
		}
		prog.Externs = append(prog.Externs, decl)
	}

	if !p.curTokenIs(lexer.DEF) {
		return nil, newSyntaxError(p.curToken.Pos, "expected at least one function definition, got %s", p.curToken.Type)
	}
	for p.curTokenIs(lexer.DEF) {
		fn, err := p.parseFunctionDecl()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}

	if !p.curTokenIs(lexer.EOF) {
		return nil, newSyntaxError(p.curToken.Pos, "unexpected token %s after function definitions", p.curToken.Type)
	}
	return prog, nil
}

// parseType parses the type grammar literally, including its recursive
// "ref" production: "ref ref int" parses without complaint here and is
// rejected later by the semantic analyzer's reference-well-formedness
// pass, not by the parser.
func (p *Parser) parseType() (types.Type, error) {
	if p.curTokenIs(lexer.NOALIAS) {
		p.nextToken()
		if err := p.expect(lexer.REF); err != nil {
			return types.Type{}, err
		}
		base, err := p.parseType()
		if err != nil {
			return types.Type{}, err
		}
		return types.UncheckedReference(base, true), nil
	}
	if p.curTokenIs(lexer.REF) {
		p.nextToken()
		base, err := p.parseType()
		if err != nil {
			return types.Type{}, err
		}
		return types.UncheckedReference(base, false), nil
	}
	return p.parseScalarType()
}

func (p *Parser) parseScalarType() (types.Type, error) {
	var kind types.Kind
	switch p.curToken.Type {
	case lexer.INT_TYPE:
		kind = types.Int
	case lexer.CINT_TYPE:
		kind = types.CInt
	case lexer.FLOAT_TYPE:
		kind = types.Float
	case lexer.BOOL_TYPE:
		kind = types.Bool
	case lexer.VOID_TYPE:
		kind = types.Void
	default:
		return types.Type{}, newSyntaxError(p.curToken.Pos, "expected a type, got %s (%q)", p.curToken.Type, p.curToken.Literal)
	}
	p.nextToken()
	return types.Scalar(kind), nil
}
