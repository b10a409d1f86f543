package stlc

import (
	"fmt"

	"github.com/vito/nameless/pkg/nameless"
)

// Scope couples a pattern containing binder sites with a body whose
// references to those binders have been converted to positional Bound
// coordinates. Bind and Unbind are the sole conversion boundary
// between the bound and free forms; nothing else inspects Bound
// coordinates.
type Scope struct {
	pattern Pattern
	body    Expr
}

// Bind closes a pattern and body into a Scope: every free occurrence
// in body of a variable introduced by one of the pattern's binders
// becomes a Bound reference addressed by (depth, binder index).
func Bind(pattern Pattern, body Expr) *Scope {
	return &Scope{
		pattern: pattern,
		body:    closeExpr(body, 0, binders(pattern)),
	}
}

// Unbind opens a scope: each binder site in the pattern receives a
// newly allocated FreeVar, and the corresponding Bound references in
// the body are replaced by those fresh variables. Tokens come from the
// process-wide monotonic source, so they can never collide with
// variables already live in the caller's context.
func (s *Scope) Unbind() (Pattern, Expr) {
	pattern, fresh := refreshPattern(s.pattern)
	return pattern, openExpr(s.body, 0, fresh)
}

// withBody pairs the scope's pattern with a new bound-form body.
// Internal to substitution, which rewrites bodies without disturbing
// binder structure.
func (s *Scope) withBody(body Expr) *Scope {
	return &Scope{pattern: s.pattern, body: body}
}

// binders collects the variables introduced by a pattern's binder
// sites in left-to-right order. The position of a variable in this
// slice is its Bound index.
func binders(pattern Pattern) []nameless.FreeVar {
	var vars []nameless.FreeVar
	pattern.Walk(func(p Pattern) bool {
		if b, ok := p.(*BinderPattern); ok {
			vars = append(vars, b.Binder.Name)
		}
		return true
	})
	return vars
}

// refreshPattern returns a copy of the pattern in which every binder
// site carries a fresh variable, along with the fresh variables in
// binder order. Type annotations inside the pattern are shared, not
// copied: types carry no binders.
func refreshPattern(pattern Pattern) (Pattern, []nameless.FreeVar) {
	var fresh []nameless.FreeVar
	renamed := mapBinders(pattern, func(b nameless.Binder) nameless.Binder {
		v := b.Name.Refresh()
		fresh = append(fresh, v)
		return nameless.Binder{Name: v}
	})
	return renamed, fresh
}

func mapBinders(pattern Pattern, fn func(nameless.Binder) nameless.Binder) Pattern {
	switch p := pattern.(type) {
	case *AnnPattern:
		return &AnnPattern{Pattern: mapBinders(p.Pattern, fn), Type: p.Type}
	case *LiteralPattern:
		return p
	case *BinderPattern:
		return &BinderPattern{Binder: fn(p.Binder)}
	case *RecordPattern:
		fields := make([]Field[Pattern], len(p.Fields))
		for i, f := range p.Fields {
			fields[i] = Field[Pattern]{Label: f.Label, Value: mapBinders(f.Value, fn)}
		}
		return &RecordPattern{Fields: fields}
	case *TagPattern:
		return &TagPattern{Label: p.Label, Pattern: mapBinders(p.Pattern, fn)}
	default:
		panic(fmt.Sprintf("stlc: unhandled pattern variant %T", pattern))
	}
}

// closeExpr replaces free references to the given binder variables
// with Bound coordinates at the given depth. Subtrees containing no
// such reference are returned unchanged and stay shared with the
// input.
func closeExpr(expr Expr, depth int, vars []nameless.FreeVar) Expr {
	switch e := expr.(type) {
	case *Ann:
		inner := closeExpr(e.Expr, depth, vars)
		if inner == e.Expr {
			return e
		}
		return &Ann{Expr: inner, Type: e.Type}
	case *Lit:
		return e
	case *Var:
		free, ok := e.Ref.(nameless.Free)
		if !ok {
			return e
		}
		for i, v := range vars {
			if free.Name.Eq(v) {
				return &Var{Ref: nameless.Bound{Depth: depth, Index: i, Hint: v.Label()}}
			}
		}
		return e
	case *Lam:
		body := closeExpr(e.Scope.body, depth+1, vars)
		if body == e.Scope.body {
			return e
		}
		return &Lam{Scope: e.Scope.withBody(body)}
	case *App:
		fn := closeExpr(e.Fn, depth, vars)
		arg := closeExpr(e.Arg, depth, vars)
		if fn == e.Fn && arg == e.Arg {
			return e
		}
		return &App{Fn: fn, Arg: arg}
	case *Record:
		fields, changed := closeFields(e.Fields, depth, vars)
		if !changed {
			return e
		}
		return &Record{Fields: fields}
	case *Proj:
		inner := closeExpr(e.Expr, depth, vars)
		if inner == e.Expr {
			return e
		}
		return &Proj{Expr: inner, Label: e.Label}
	case *Tag:
		inner := closeExpr(e.Expr, depth, vars)
		if inner == e.Expr {
			return e
		}
		return &Tag{Label: e.Label, Expr: inner}
	case *Case:
		scrutinee := closeExpr(e.Scrutinee, depth, vars)
		clauses := e.Clauses
		copied := false
		for i, clause := range e.Clauses {
			body := closeExpr(clause.body, depth+1, vars)
			if body == clause.body {
				continue
			}
			if !copied {
				clauses = append([]*Scope(nil), e.Clauses...)
				copied = true
			}
			clauses[i] = clause.withBody(body)
		}
		if scrutinee == e.Scrutinee && !copied {
			return e
		}
		return &Case{Scrutinee: scrutinee, Clauses: clauses}
	default:
		panic(fmt.Sprintf("stlc: unhandled expression variant %T", expr))
	}
}

func closeFields(fields []Field[Expr], depth int, vars []nameless.FreeVar) ([]Field[Expr], bool) {
	out := make([]Field[Expr], len(fields))
	changed := false
	for i, f := range fields {
		inner := closeExpr(f.Value, depth, vars)
		changed = changed || inner != f.Value
		out[i] = Field[Expr]{Label: f.Label, Value: inner}
	}
	return out, changed
}

// openExpr replaces Bound references addressed to the given depth with
// the supplied free variables, indexed positionally. An index with no
// corresponding variable means the term was not well-scoped, which is
// a front-end bug, so it panics.
func openExpr(expr Expr, depth int, vars []nameless.FreeVar) Expr {
	switch e := expr.(type) {
	case *Ann:
		inner := openExpr(e.Expr, depth, vars)
		if inner == e.Expr {
			return e
		}
		return &Ann{Expr: inner, Type: e.Type}
	case *Lit:
		return e
	case *Var:
		bound, ok := e.Ref.(nameless.Bound)
		if !ok || bound.Depth != depth {
			return e
		}
		if bound.Index < 0 || bound.Index >= len(vars) {
			panic(fmt.Sprintf("stlc: bound variable %s indexes past its scope's %d binder(s)", bound, len(vars)))
		}
		return &Var{Ref: nameless.Free{Name: vars[bound.Index]}}
	case *Lam:
		body := openExpr(e.Scope.body, depth+1, vars)
		if body == e.Scope.body {
			return e
		}
		return &Lam{Scope: e.Scope.withBody(body)}
	case *App:
		fn := openExpr(e.Fn, depth, vars)
		arg := openExpr(e.Arg, depth, vars)
		if fn == e.Fn && arg == e.Arg {
			return e
		}
		return &App{Fn: fn, Arg: arg}
	case *Record:
		fields := make([]Field[Expr], len(e.Fields))
		changed := false
		for i, f := range e.Fields {
			inner := openExpr(f.Value, depth, vars)
			changed = changed || inner != f.Value
			fields[i] = Field[Expr]{Label: f.Label, Value: inner}
		}
		if !changed {
			return e
		}
		return &Record{Fields: fields}
	case *Proj:
		inner := openExpr(e.Expr, depth, vars)
		if inner == e.Expr {
			return e
		}
		return &Proj{Expr: inner, Label: e.Label}
	case *Tag:
		inner := openExpr(e.Expr, depth, vars)
		if inner == e.Expr {
			return e
		}
		return &Tag{Label: e.Label, Expr: inner}
	case *Case:
		scrutinee := openExpr(e.Scrutinee, depth, vars)
		clauses := e.Clauses
		copied := false
		for i, clause := range e.Clauses {
			body := openExpr(clause.body, depth+1, vars)
			if body == clause.body {
				continue
			}
			if !copied {
				clauses = append([]*Scope(nil), e.Clauses...)
				copied = true
			}
			clauses[i] = clause.withBody(body)
		}
		if scrutinee == e.Scrutinee && !copied {
			return e
		}
		return &Case{Scrutinee: scrutinee, Clauses: clauses}
	default:
		panic(fmt.Sprintf("stlc: unhandled expression variant %T", expr))
	}
}
