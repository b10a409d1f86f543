package stlc

import (
	"fmt"

	"github.com/vito/nameless/pkg/nameless"
)

// Mapping pairs a free variable with the expression that replaces it.
type Mapping struct {
	Var  nameless.FreeVar
	With Expr
}

// Substitute replaces every free occurrence of each mapped variable
// with its paired expression. Mappings are scanned in order and the
// first match wins. Scope bodies are rewritten directly in their bound
// form: binder sites hold no free references into the surrounding
// context, so no capture can occur and patterns are left untouched.
//
// Subtrees containing none of the mapped variables are returned
// unchanged and stay shared with the input.
func Substitute(expr Expr, mappings []Mapping) Expr {
	switch e := expr.(type) {
	case *Ann:
		inner := Substitute(e.Expr, mappings)
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
		for _, m := range mappings {
			if free.Name.Eq(m.Var) {
				return m.With
			}
		}
		return e
	case *Lam:
		body := Substitute(e.Scope.body, mappings)
		if body == e.Scope.body {
			return e
		}
		return &Lam{Scope: e.Scope.withBody(body)}
	case *App:
		fn := Substitute(e.Fn, mappings)
		arg := Substitute(e.Arg, mappings)
		if fn == e.Fn && arg == e.Arg {
			return e
		}
		return &App{Fn: fn, Arg: arg}
	case *Record:
		fields := e.Fields
		copied := false
		for i, f := range e.Fields {
			inner := Substitute(f.Value, mappings)
			if inner == f.Value {
				continue
			}
			if !copied {
				fields = append([]Field[Expr](nil), e.Fields...)
				copied = true
			}
			fields[i] = Field[Expr]{Label: f.Label, Value: inner}
		}
		if !copied {
			return e
		}
		return &Record{Fields: fields}
	case *Proj:
		inner := Substitute(e.Expr, mappings)
		if inner == e.Expr {
			return e
		}
		return &Proj{Expr: inner, Label: e.Label}
	case *Tag:
		inner := Substitute(e.Expr, mappings)
		if inner == e.Expr {
			return e
		}
		return &Tag{Label: e.Label, Expr: inner}
	case *Case:
		scrutinee := Substitute(e.Scrutinee, mappings)
		clauses := e.Clauses
		copied := false
		for i, clause := range e.Clauses {
			body := Substitute(clause.body, mappings)
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
