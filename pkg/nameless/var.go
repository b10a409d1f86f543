// Package nameless implements the locally nameless representation of
// variable binding: free variables are globally unique identity tokens,
// bound variables are positional coordinates resolved against an
// enclosing scope. Terms built on this package never need a global
// rename pass to stay capture-free.
package nameless

import (
	"fmt"
	"sync/atomic"
)

// tokens is the process-wide source of fresh variable identities. It
// only ever increments, so a token handed out by Fresh can never
// collide with one already live elsewhere in the process. This is the
// single piece of mutable state in the whole module.
var tokens atomic.Uint64

// FreeVar is a globally unique variable identity. The label is carried
// for diagnostics only; equality is by token, never by label, so two
// variables spelled the same way in source remain distinct.
type FreeVar struct {
	id    uint64
	label string
}

// Fresh allocates a new FreeVar that is distinct from every other
// FreeVar allocated during the lifetime of the process. Safe to call
// from multiple goroutines.
func Fresh(label string) FreeVar {
	return FreeVar{id: tokens.Add(1), label: label}
}

// Refresh allocates a new FreeVar carrying the same label but a brand
// new identity. Used when opening a scope: every binder gets a token
// that cannot collide with anything in the ambient context.
func (v FreeVar) Refresh() FreeVar {
	return Fresh(v.label)
}

// Label returns the diagnostic name of the variable, which may be
// empty and is never consulted for equality.
func (v FreeVar) Label() string {
	return v.label
}

// Eq reports whether two free variables are the same identity.
func (v FreeVar) Eq(other FreeVar) bool {
	return v.id == other.id
}

func (v FreeVar) String() string {
	if v.label == "" {
		return fmt.Sprintf("$%d", v.id)
	}
	return fmt.Sprintf("%s$%d", v.label, v.id)
}

// Binder marks a site in a pattern that introduces a variable.
type Binder struct {
	Name FreeVar
}

// NewBinder allocates a binder around a fresh variable with the given
// diagnostic label.
func NewBinder(label string) Binder {
	return Binder{Name: Fresh(label)}
}

func (b Binder) String() string {
	return b.Name.String()
}

// Var is a variable reference: either Free, resolved by identity
// against an ambient context, or Bound, resolved positionally against
// the nearest enclosing scope.
type Var interface {
	fmt.Stringer

	// Eq compares two references. Free references compare by token
	// identity; Bound references compare by coordinates, ignoring the
	// diagnostic hint. A Free reference never equals a Bound one.
	Eq(Var) bool

	isVar()
}

// Free is a reference to a FreeVar.
type Free struct {
	Name FreeVar
}

var _ Var = Free{}

func (Free) isVar() {}

func (f Free) Eq(other Var) bool {
	o, ok := other.(Free)
	return ok && f.Name.Eq(o.Name)
}

func (f Free) String() string {
	return f.Name.String()
}

// Bound is a positional reference: Depth counts enclosing scopes
// outward from the reference (0 is the nearest), Index selects a
// binder within that scope's pattern in left-to-right order. Hint is
// the original diagnostic label, ignored by Eq.
type Bound struct {
	Depth int
	Index int
	Hint  string
}

var _ Var = Bound{}

func (Bound) isVar() {}

func (b Bound) Eq(other Var) bool {
	o, ok := other.(Bound)
	return ok && b.Depth == o.Depth && b.Index == o.Index
}

func (b Bound) String() string {
	if b.Hint == "" {
		return fmt.Sprintf("@%d.%d", b.Depth, b.Index)
	}
	return fmt.Sprintf("%s@%d.%d", b.Hint, b.Depth, b.Index)
}
