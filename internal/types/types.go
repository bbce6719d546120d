// Package types defines ekcc's closed set of scalar and reference types.
package types

import "fmt"

// Kind is the scalar type tag. Reference-ness is layered on top via Type,
// never folded into Kind, so "is this a ref" is one field check away.
type Kind int

const (
	Invalid Kind = iota
	Int
	CInt
	Float
	Bool
	Void
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case CInt:
		return "cint"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Void:
		return "void"
	default:
		return "<invalid>"
	}
}

// Type is a scalar Kind optionally wrapped in a reference. RefDepth counts
// how many "ref" layers the parser actually saw: 0 for a scalar, 1 for a
// well-formed reference, 2+ for an illegally nested one. The grammar
// admits "ref" wrapping any type recursively; rejecting the nested and
// ref-void forms is the semantic analyzer's job (IsWellFormed), not the
// parser's — see UncheckedReference.
type Type struct {
	Kind     Kind
	Ref      bool
	NoAlias  bool
	RefDepth int
}

// Scalar builds a non-reference type of the given kind.
func Scalar(k Kind) Type {
	return Type{Kind: k}
}

// Reference builds a `ref T` (or `noalias ref T`) type over a scalar base.
// Returns an error if base is itself a reference or is void. Use this
// constructor wherever a type is known by construction to be well-formed
// (IR generation, tests); the parser uses UncheckedReference instead so
// that bad-reference-type remains a semantic-analysis diagnostic.
func Reference(base Type, noAlias bool) (Type, error) {
	if base.Ref {
		return Type{}, fmt.Errorf("cannot form a reference to a reference type")
	}
	if base.Kind == Void {
		return Type{}, fmt.Errorf("cannot form a reference to void")
	}
	return Type{Kind: base.Kind, Ref: true, NoAlias: noAlias, RefDepth: base.RefDepth + 1}, nil
}

// UncheckedReference builds `ref base` without rejecting a nested or
// void-wrapping reference, so the parser can follow the grammar's
// recursive `type := "ref" type` production literally. Call IsWellFormed
// on the result before trusting it; the semantic analyzer's
// reference-well-formedness pass is what actually enforces the rule.
func UncheckedReference(base Type, noAlias bool) Type {
	return Type{Kind: base.Kind, Ref: true, NoAlias: noAlias, RefDepth: base.RefDepth + 1}
}

// IsWellFormed reports whether t obeys the two reference rules: never
// wraps void, never nests.
func (t Type) IsWellFormed() bool {
	if !t.Ref {
		return true
	}
	if t.Kind == Void {
		return false
	}
	return t.RefDepth <= 1
}

// Elem returns the pointee type of a reference, stripping the ref flag.
// Calling it on a non-reference type panics — callers must check IsRef.
func (t Type) Elem() Type {
	if !t.Ref {
		panic("types: Elem called on a non-reference type")
	}
	return Type{Kind: t.Kind}
}

// IsRef reports whether t is `ref T` or `noalias ref T`.
func (t Type) IsRef() bool { return t.Ref }

// IsVoid reports whether t is the scalar void type.
func (t Type) IsVoid() bool { return !t.Ref && t.Kind == Void }

// IsNumeric reports whether t's scalar kind is int, cint, or float.
func (t Type) IsNumeric() bool {
	return t.Kind == Int || t.Kind == CInt || t.Kind == Float
}

// IsInteger reports whether t's scalar kind is int or cint.
func (t Type) IsInteger() bool {
	return t.Kind == Int || t.Kind == CInt
}

// Equal reports structural equality: same kind, same ref-ness, same
// noalias flag, same ref depth. Binop operands are checked with
// BinopCompatible instead, which also accepts int alongside cint.
func (t Type) Equal(other Type) bool {
	return t.Kind == other.Kind && t.Ref == other.Ref && t.NoAlias == other.NoAlias && t.RefDepth == other.RefDepth
}

// BinopCompatible reports whether t and other may sit on either side of
// the same binary operator. int and cint share one machine
// representation and differ only in whether overflow traps, so a plain
// int literal is compatible with a cint operand and vice versa; every
// other pairing falls back to Equal. Neither side may be a reference.
func (t Type) BinopCompatible(other Type) bool {
	if t.Ref || other.Ref {
		return false
	}
	if t.IsInteger() && other.IsInteger() {
		return true
	}
	return t.Kind == other.Kind
}

// ResultKind returns the scalar kind a binop over t and other produces
// when arithmetic (not comparison/logical). Mixing int and cint yields
// cint: the checked-ness of either operand infects the result.
func ResultKind(t, other Type) Kind {
	if t.Kind == CInt || other.Kind == CInt {
		return CInt
	}
	return t.Kind
}

// IsValid reports whether t carries a recognized scalar kind.
func (t Type) IsValid() bool { return t.Kind != Invalid }

func (t Type) String() string {
	if !t.Ref {
		return t.Kind.String()
	}
	if t.NoAlias {
		return "noalias ref " + t.Kind.String()
	}
	return "ref " + t.Kind.String()
}
