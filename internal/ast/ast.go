// Package ast defines the abstract syntax tree node types produced by the
// parser and decorated in place by the semantic analyzer.
package ast

import (
	"bytes"
	"strings"

	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that produces a value. The semantic analyzer
// annotates every Expression with a resolved Type before IR generation.
type Expression interface {
	Node
	expressionNode()
	ResolvedType() types.Type
	SetResolvedType(types.Type)
}

// Statement is a node that performs an action without itself producing a
// value.
type Statement interface {
	Node
	statementNode()
}

// typedExpr is embedded by every Expression implementation to provide the
// resolved-type side table required by ResolvedType/SetResolvedType.
type typedExpr struct {
	resolved types.Type
}

func (e *typedExpr) ResolvedType() types.Type        { return e.resolved }
func (e *typedExpr) SetResolvedType(t types.Type)    { e.resolved = t }

// Program is the root node: a list of extern declarations followed by a
// list of function definitions, in source order.
type Program struct {
	Externs   []*ExternDecl
	Functions []*FunctionDecl
}

func (p *Program) TokenLiteral() string {
	if len(p.Externs) > 0 {
		return p.Externs[0].TokenLiteral()
	}
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Position {
	if len(p.Externs) > 0 {
		return p.Externs[0].Pos()
	}
	if len(p.Functions) > 0 {
		return p.Functions[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, e := range p.Externs {
		out.WriteString(e.String())
		out.WriteString("\n")
	}
	for _, f := range p.Functions {
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	return out.String()
}

// ParamDecl is a single `type varid` pair, used both for function
// parameters and for vardecl-statement targets.
type ParamDecl struct {
	Token lexer.Token
	Type  types.Type
	Name  string // includes the leading '$'
}

func (d *ParamDecl) TokenLiteral() string { return d.Token.Literal }
func (d *ParamDecl) Pos() lexer.Position  { return d.Token.Pos }
func (d *ParamDecl) String() string       { return d.Type.String() + " " + d.Name }

// ExternDecl declares an external function: a return type, a global name,
// and an ordered list of parameter types (no names, since an extern has
// no body that could refer to them).
type ExternDecl struct {
	Token      lexer.Token
	ReturnType types.Type
	Name       string
	ParamTypes []types.Type
}

func (e *ExternDecl) statementNode()         {}
func (e *ExternDecl) TokenLiteral() string   { return e.Token.Literal }
func (e *ExternDecl) Pos() lexer.Position    { return e.Token.Pos }
func (e *ExternDecl) String() string {
	var parts []string
	for _, t := range e.ParamTypes {
		parts = append(parts, t.String())
	}
	return "extern " + e.ReturnType.String() + " " + e.Name + "(" + strings.Join(parts, ", ") + ");"
}

// FunctionDecl is a named function definition.
type FunctionDecl struct {
	Token      lexer.Token
	ReturnType types.Type
	Name       string
	Params     []*ParamDecl
	Body       *BlockStmt
}

func (f *FunctionDecl) statementNode()       {}
func (f *FunctionDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDecl) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDecl) String() string {
	var parts []string
	for _, p := range f.Params {
		parts = append(parts, p.String())
	}
	return "def " + f.ReturnType.String() + " " + f.Name + "(" + strings.Join(parts, ", ") + ") " + f.Body.String()
}
