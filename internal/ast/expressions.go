package ast

import (
	"strconv"
	"strings"

	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// BinaryOp tags the fixed set of binary operators the grammar admits.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpLt
	OpGt
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "=="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "<bad-binop>"
	}
}

// UnaryOp tags the fixed set of unary operators the grammar admits.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	default:
		return "<bad-unop>"
	}
}

// Literal is a numeric or boolean constant. Kind distinguishes int/float/
// bool literal forms since the lexer already separated dotted from
// undotted numbers; the semantic analyzer assigns ResolvedType.
type Literal struct {
	typedExpr
	Token   lexer.Token
	IntVal  int32
	FloatVal float32
	BoolVal bool
	Kind    types.Kind // Int, Float, or Bool — never CInt or Void at parse time
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Pos() lexer.Position  { return l.Token.Pos }
func (l *Literal) String() string {
	switch l.Kind {
	case types.Float:
		return strconv.FormatFloat(float64(l.FloatVal), 'g', -1, 32)
	case types.Bool:
		if l.BoolVal {
			return "true"
		}
		return "false"
	default:
		return strconv.FormatInt(int64(l.IntVal), 10)
	}
}

// VarRef references a variable by its '$'-prefixed name. Whether it names
// a scalar local or a reference parameter is resolved during semantic
// analysis, not by the parser.
type VarRef struct {
	typedExpr
	Token lexer.Token
	Name  string
}

func (v *VarRef) expressionNode()      {}
func (v *VarRef) TokenLiteral() string { return v.Token.Literal }
func (v *VarRef) Pos() lexer.Position  { return v.Token.Pos }
func (v *VarRef) String() string       { return v.Name }

// CallExpr calls a global function (user-defined or extern) by name.
type CallExpr struct {
	typedExpr
	Token     lexer.Token
	Callee    string
	Arguments []Expression
}

func (c *CallExpr) expressionNode()      {}
func (c *CallExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpr) Pos() lexer.Position  { return c.Token.Pos }
func (c *CallExpr) String() string {
	var parts []string
	for _, a := range c.Arguments {
		parts = append(parts, a.String())
	}
	return c.Callee + "(" + strings.Join(parts, ", ") + ")"
}

// BinaryExpr applies a fixed binary operator to two operands.
type BinaryExpr struct {
	typedExpr
	Token lexer.Token
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (b *BinaryExpr) expressionNode()      {}
func (b *BinaryExpr) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpr) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// UnaryExpr applies a fixed unary operator to one operand.
type UnaryExpr struct {
	typedExpr
	Token   lexer.Token
	Op      UnaryOp
	Operand Expression
}

func (u *UnaryExpr) expressionNode()      {}
func (u *UnaryExpr) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpr) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryExpr) String() string {
	return "(" + u.Op.String() + u.Operand.String() + ")"
}

// AssignExpr assigns the result of Value to the variable named Name. It is
// itself an expression so that `$x = $y = 1;` parses, matching the fixed
// precedence table's placement of ASSIGN above OR.
type AssignExpr struct {
	typedExpr
	Token lexer.Token
	Name  string
	Value Expression
}

func (a *AssignExpr) expressionNode()      {}
func (a *AssignExpr) TokenLiteral() string { return a.Token.Literal }
func (a *AssignExpr) Pos() lexer.Position  { return a.Token.Pos }
func (a *AssignExpr) String() string {
	return "(" + a.Name + " = " + a.Value.String() + ")"
}

// CastExpr explicitly converts Value to Target (lowered with fptosi or
// sitofp, not the store coercion table); reference types are never valid
// cast targets.
type CastExpr struct {
	typedExpr
	Token  lexer.Token
	Target types.Type
	Value  Expression
}

func (c *CastExpr) expressionNode()      {}
func (c *CastExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CastExpr) Pos() lexer.Position  { return c.Token.Pos }
func (c *CastExpr) String() string {
	return "(" + c.Target.String() + ")" + c.Value.String()
}
