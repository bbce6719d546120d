package semantic

import "github.com/ekcc-lang/ekcc/internal/types"

// Scope is one lexical variable scope: a flat name→type map plus a link
// to the enclosing scope. Entering a block pushes a new Scope; leaving it
// pops back, so additions inside never escape upward.
type Scope struct {
	vars   map[string]types.Type
	Parent *Scope
}

func newScope(parent *Scope) *Scope {
	return &Scope{vars: make(map[string]types.Type), Parent: parent}
}

// Define binds name to t in this scope, shadowing any outer binding.
func (s *Scope) Define(name string, t types.Type) {
	s.vars[name] = t
}

// Lookup walks this scope and its parents, returning the first binding
// found.
func (s *Scope) Lookup(name string) (types.Type, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if t, ok := sc.vars[name]; ok {
			return t, true
		}
	}
	return types.Type{}, false
}

// FuncSig is a global function table entry: built from either an extern
// declaration or a function definition.
type FuncSig struct {
	Name       string
	ReturnType types.Type
	ParamTypes []types.Type
	IsExtern   bool
}

// IsCInt reports whether the i'th parameter is the checked-int type —
// the bit-vector the spec describes, computed on demand from ParamTypes
// rather than stored separately.
func (f *FuncSig) IsCInt(i int) bool {
	return f.ParamTypes[i].Kind == types.CInt
}

// Context is the shared state threaded through every pass: the global
// function table (built by the function-table pass) and the current
// variable scope (pushed/popped by the type-annotation pass).
type Context struct {
	Source string
	File   string

	Functions map[string]*FuncSig
	scope     *Scope
}

// NewContext creates an analysis context over the given source text,
// used only to render diagnostics with a source line and caret.
func NewContext(source, file string) *Context {
	return &Context{
		Source:    source,
		File:      file,
		Functions: make(map[string]*FuncSig),
		scope:     newScope(nil),
	}
}

// PushScope enters a new nested variable scope.
func (c *Context) PushScope() { c.scope = newScope(c.scope) }

// PopScope leaves the current variable scope.
func (c *Context) PopScope() { c.scope = c.scope.Parent }

// Define binds name in the current scope.
func (c *Context) Define(name string, t types.Type) { c.scope.Define(name, t) }

// Lookup resolves name against the current scope chain.
func (c *Context) Lookup(name string) (types.Type, bool) { return c.scope.Lookup(name) }

// ResetScope discards all scoping and starts over at a fresh global
// scope, used between functions during the type-annotation pass.
func (c *Context) ResetScope() { c.scope = newScope(nil) }
