// Package stlc implements the semantic core of a simply typed lambda
// calculus with literals, records, and tagged variants: term trees in
// the locally nameless representation, capture-avoiding substitution,
// structural pattern matching, a call-by-value evaluator, and a
// bidirectional type checker.
//
// Terms are immutable once built and freely shared between parent and
// child subterms. Well-scopedness (every Bound reference introduced by
// an enclosing Scope) is the front end's obligation; behavior on
// ill-scoped input is undefined.
package stlc

import (
	"fmt"
	"strconv"

	"github.com/vito/nameless/pkg/nameless"
)

// Literal is the closed union of literal values. Equality is exact per
// kind.
type Literal interface {
	fmt.Stringer

	// Eq reports whether two literals are the same kind and value.
	Eq(Literal) bool

	// TypeOf returns the built-in scalar type of the literal.
	TypeOf() Type

	isLiteral()
}

// IntLit is an integer literal.
type IntLit int64

// FloatLit is a floating point literal.
type FloatLit float64

// StringLit is a string literal.
type StringLit string

var _ Literal = IntLit(0)
var _ Literal = FloatLit(0)
var _ Literal = StringLit("")

func (IntLit) isLiteral()    {}
func (FloatLit) isLiteral()  {}
func (StringLit) isLiteral() {}

func (l IntLit) Eq(other Literal) bool {
	o, ok := other.(IntLit)
	return ok && l == o
}

func (l FloatLit) Eq(other Literal) bool {
	o, ok := other.(FloatLit)
	return ok && l == o
}

func (l StringLit) Eq(other Literal) bool {
	o, ok := other.(StringLit)
	return ok && l == o
}

func (IntLit) TypeOf() Type    { return IntType{} }
func (FloatLit) TypeOf() Type  { return FloatType{} }
func (StringLit) TypeOf() Type { return StringType{} }

func (l IntLit) String() string    { return strconv.FormatInt(int64(l), 10) }
func (l FloatLit) String() string  { return strconv.FormatFloat(float64(l), 'g', -1, 64) }
func (l StringLit) String() string { return strconv.Quote(string(l)) }

// Pattern is the closed union of patterns. Patterns contain binder
// sites but no free references into the surrounding context.
//
// Standing invariant: there is no derived traversal for these unions.
// Every variant must be handled by hand in Walk, binders and
// refreshPattern (scope.go), alphaPatternEq (alpha.go), Match
// (match.go), and CheckPattern/InferPattern (check.go). Adding a
// variant means updating each of those.
type Pattern interface {
	// Walk visits this pattern and then, if fn returns true, every
	// subpattern in left-to-right order.
	Walk(fn func(Pattern) bool)

	isPattern()
}

// AnnPattern is a pattern annotated with a type.
type AnnPattern struct {
	Pattern Pattern
	Type    Type
}

// LiteralPattern matches a literal value exactly.
type LiteralPattern struct {
	Value Literal
}

// BinderPattern introduces a variable bound to the matched value.
type BinderPattern struct {
	Binder nameless.Binder
}

// RecordPattern matches a record field-by-field. Field order is
// significant: a record value with the same fields in a different
// order does not match.
type RecordPattern struct {
	Fields []Field[Pattern]
}

// TagPattern matches a variant introduction with the same label.
type TagPattern struct {
	Label   string
	Pattern Pattern
}

var _ Pattern = (*AnnPattern)(nil)
var _ Pattern = (*LiteralPattern)(nil)
var _ Pattern = (*BinderPattern)(nil)
var _ Pattern = (*RecordPattern)(nil)
var _ Pattern = (*TagPattern)(nil)

func (*AnnPattern) isPattern()     {}
func (*LiteralPattern) isPattern() {}
func (*BinderPattern) isPattern()  {}
func (*RecordPattern) isPattern()  {}
func (*TagPattern) isPattern()     {}

func (p *AnnPattern) Walk(fn func(Pattern) bool) {
	if !fn(p) {
		return
	}
	p.Pattern.Walk(fn)
}

func (p *LiteralPattern) Walk(fn func(Pattern) bool) {
	fn(p)
}

func (p *BinderPattern) Walk(fn func(Pattern) bool) {
	fn(p)
}

func (p *RecordPattern) Walk(fn func(Pattern) bool) {
	if !fn(p) {
		return
	}
	for _, f := range p.Fields {
		f.Value.Walk(fn)
	}
}

func (p *TagPattern) Walk(fn func(Pattern) bool) {
	if !fn(p) {
		return
	}
	p.Pattern.Walk(fn)
}

// Expr is the closed union of expressions.
//
// The same standing invariant as Pattern applies: every variant must
// be handled by hand in Walk, closeExpr/openExpr (scope.go), AlphaEq
// (alpha.go), Substitute (subst.go), Eval (eval.go), and Infer/Check
// (check.go).
type Expr interface {
	// Walk visits this expression and then, if fn returns true, every
	// subexpression in left-to-right order. Scope bodies are visited
	// in their bound form.
	Walk(fn func(Expr) bool)

	isExpr()
}

// Ann is an expression annotated with a type.
type Ann struct {
	Expr Expr
	Type Type
}

// Lit is a literal expression.
type Lit struct {
	Value Literal
}

// Var is a variable reference, free or bound.
type Var struct {
	Ref nameless.Var
}

// Lam is a function literal: a pattern binding the parameter, closed
// over the body.
type Lam struct {
	Scope *Scope
}

// App is a function application.
type App struct {
	Fn  Expr
	Arg Expr
}

// Record is a record introduction with ordered labeled fields.
type Record struct {
	Fields []Field[Expr]
}

// Proj projects a labeled field out of a record.
type Proj struct {
	Expr  Expr
	Label string
}

// Tag is a variant introduction.
type Tag struct {
	Label string
	Expr  Expr
}

// Case scrutinizes a value against a sequence of clauses, each a
// pattern closed over its body. Clauses are tried in source order.
type Case struct {
	Scrutinee Expr
	Clauses   []*Scope
}

var _ Expr = (*Ann)(nil)
var _ Expr = (*Lit)(nil)
var _ Expr = (*Var)(nil)
var _ Expr = (*Lam)(nil)
var _ Expr = (*App)(nil)
var _ Expr = (*Record)(nil)
var _ Expr = (*Proj)(nil)
var _ Expr = (*Tag)(nil)
var _ Expr = (*Case)(nil)

func (*Ann) isExpr()    {}
func (*Lit) isExpr()    {}
func (*Var) isExpr()    {}
func (*Lam) isExpr()    {}
func (*App) isExpr()    {}
func (*Record) isExpr() {}
func (*Proj) isExpr()   {}
func (*Tag) isExpr()    {}
func (*Case) isExpr()   {}

func (e *Ann) Walk(fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	e.Expr.Walk(fn)
}

func (e *Lit) Walk(fn func(Expr) bool) {
	fn(e)
}

func (e *Var) Walk(fn func(Expr) bool) {
	fn(e)
}

func (e *Lam) Walk(fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	e.Scope.body.Walk(fn)
}

func (e *App) Walk(fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	e.Fn.Walk(fn)
	e.Arg.Walk(fn)
}

func (e *Record) Walk(fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	for _, f := range e.Fields {
		f.Value.Walk(fn)
	}
}

func (e *Proj) Walk(fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	e.Expr.Walk(fn)
}

func (e *Tag) Walk(fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	e.Expr.Walk(fn)
}

func (e *Case) Walk(fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	e.Scrutinee.Walk(fn)
	for _, clause := range e.Clauses {
		clause.body.Walk(fn)
	}
}

// FreeVars returns the free variables referenced by an expression, in
// order of first occurrence. Bound references are positional and do
// not appear.
func FreeVars(expr Expr) []nameless.FreeVar {
	var vars []nameless.FreeVar
	seen := map[nameless.FreeVar]bool{}
	expr.Walk(func(e Expr) bool {
		if v, ok := e.(*Var); ok {
			if free, ok := v.Ref.(nameless.Free); ok && !seen[free.Name] {
				seen[free.Name] = true
				vars = append(vars, free.Name)
			}
		}
		return true
	})
	return vars
}
