package stlc

import (
	"maps"

	"github.com/vito/nameless/pkg/nameless"
)

// Context is a persistent typing context mapping free variables to
// their types. Extension always returns a new Context and never
// mutates the receiver, so sibling branches of the checker can extend
// their own copies without observing each other's bindings, and a
// child scope's bindings are discarded by simply dropping the child
// context.
type Context struct {
	types map[nameless.FreeVar]Type
}

// NewContext returns an empty typing context.
func NewContext() Context {
	return Context{}
}

// Lookup returns the type bound to a variable, by token identity.
func (ctx Context) Lookup(v nameless.FreeVar) (Type, bool) {
	t, ok := ctx.types[v]
	return t, ok
}

// Insert returns a new context with an additional binding. An existing
// binding for the same token is shadowed in the copy only.
func (ctx Context) Insert(v nameless.FreeVar, t Type) Context {
	types := maps.Clone(ctx.types)
	if types == nil {
		types = map[nameless.FreeVar]Type{}
	}
	types[v] = t
	return Context{types: types}
}

// Extend returns a new context with every binding of the other context
// added, shadowing the receiver's on collision. Used to merge the
// telescope produced by checking a pattern into the ambient context.
func (ctx Context) Extend(other Context) Context {
	if len(other.types) == 0 {
		return ctx
	}
	types := maps.Clone(ctx.types)
	if types == nil {
		types = map[nameless.FreeVar]Type{}
	}
	maps.Copy(types, other.types)
	return Context{types: types}
}

// Len returns the number of bindings.
func (ctx Context) Len() int {
	return len(ctx.types)
}
