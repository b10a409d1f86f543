package stlc

import (
	"github.com/vito/nameless/pkg/nameless"
)

// Term construction shorthands shared across the package tests.

func fv(v nameless.FreeVar) Expr {
	return &Var{Ref: nameless.Free{Name: v}}
}

func lit(l Literal) Expr {
	return &Lit{Value: l}
}

func lam(pattern Pattern, body Expr) Expr {
	return &Lam{Scope: Bind(pattern, body)}
}

func binderPat(b nameless.Binder) Pattern {
	return &BinderPattern{Binder: b}
}

func annPat(pattern Pattern, t Type) Pattern {
	return &AnnPattern{Pattern: pattern, Type: t}
}

func recordExpr(fields ...Field[Expr]) Expr {
	return &Record{Fields: fields}
}

func recordPat(fields ...Field[Pattern]) Pattern {
	return &RecordPattern{Fields: fields}
}

func clause(pattern Pattern, body Expr) *Scope {
	return Bind(pattern, body)
}

// unknownExpr and unknownPattern stand in for an AST variant the
// traversals have not been taught about, for asserting that every
// hand-written fold fails loudly instead of misbehaving quietly.

type unknownExpr struct{}

func (*unknownExpr) isExpr() {}

func (e *unknownExpr) Walk(fn func(Expr) bool) { fn(e) }

type unknownPattern struct{}

func (*unknownPattern) isPattern() {}

func (p *unknownPattern) Walk(fn func(Pattern) bool) { fn(p) }
