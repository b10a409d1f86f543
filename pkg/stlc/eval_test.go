package stlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vito/nameless/pkg/nameless"
)

func TestEval(t *testing.T) {
	t.Run("annotations are discarded", func(t *testing.T) {
		out := Eval(&Ann{Expr: lit(IntLit(1)), Type: IntType{}})
		assert.True(t, AlphaEq(out, lit(IntLit(1))))
	})

	t.Run("values evaluate to themselves", func(t *testing.T) {
		x := nameless.NewBinder("x")
		for _, value := range []Expr{
			lit(StringLit("s")),
			fv(nameless.Fresh("a")),
			lam(binderPat(x), fv(x.Name)),
		} {
			assert.Equal(t, value, Eval(value))
		}
	})

	t.Run("beta reduction through a binder pattern", func(t *testing.T) {
		x := nameless.NewBinder("x")
		expr := &App{
			Fn:  lam(binderPat(x), fv(x.Name)),
			Arg: lit(IntLit(42)),
		}
		assert.True(t, AlphaEq(Eval(expr), lit(IntLit(42))))
	})

	t.Run("application of a non-function is stuck", func(t *testing.T) {
		expr := &App{Fn: lit(IntLit(1)), Arg: lit(IntLit(2))}
		assert.Equal(t, Expr(expr), Eval(expr))
	})

	t.Run("record fields evaluate left to right", func(t *testing.T) {
		x := nameless.NewBinder("x")
		expr := recordExpr(
			Field[Expr]{Label: "x", Value: &App{
				Fn:  lam(binderPat(x), fv(x.Name)),
				Arg: lit(IntLit(1)),
			}},
			Field[Expr]{Label: "y", Value: lit(StringLit("a"))},
		)

		out := Eval(expr).(*Record)
		require.Len(t, out.Fields, 2)
		assert.True(t, AlphaEq(out.Fields[0].Value, lit(IntLit(1))))
		assert.True(t, AlphaEq(out.Fields[1].Value, lit(StringLit("a"))))
	})

	t.Run("projection returns the stored field", func(t *testing.T) {
		expr := &Proj{
			Expr: recordExpr(
				Field[Expr]{Label: "x", Value: lit(IntLit(1))},
				Field[Expr]{Label: "y", Value: lit(StringLit("a"))},
			),
			Label: "x",
		}
		assert.True(t, AlphaEq(Eval(expr), lit(IntLit(1))))
	})

	t.Run("projection of a missing label is stuck", func(t *testing.T) {
		expr := &Proj{
			Expr:  recordExpr(Field[Expr]{Label: "x", Value: lit(IntLit(1))}),
			Label: "z",
		}
		assert.Equal(t, Expr(expr), Eval(expr))
	})

	t.Run("projection of a non-record is stuck", func(t *testing.T) {
		expr := &Proj{Expr: lit(IntLit(1)), Label: "x"}
		assert.Equal(t, Expr(expr), Eval(expr))
	})

	t.Run("tag evaluates its payload", func(t *testing.T) {
		x := nameless.NewBinder("x")
		expr := &Tag{Label: "ok", Expr: &App{
			Fn:  lam(binderPat(x), fv(x.Name)),
			Arg: lit(IntLit(5)),
		}}

		out := Eval(expr).(*Tag)
		assert.Equal(t, "ok", out.Label)
		assert.True(t, AlphaEq(out.Expr, lit(IntLit(5))))
	})

	t.Run("case selects the first matching clause", func(t *testing.T) {
		n := nameless.NewBinder("n")
		e := nameless.NewBinder("e")
		expr := &Case{
			Scrutinee: &Tag{Label: "ok", Expr: lit(IntLit(5))},
			Clauses: []*Scope{
				clause(&TagPattern{Label: "ok", Pattern: binderPat(n)}, fv(n.Name)),
				clause(&TagPattern{Label: "err", Pattern: binderPat(e)}, lit(IntLit(0))),
			},
		}
		assert.True(t, AlphaEq(Eval(expr), lit(IntLit(5))))
	})

	t.Run("case falls through non-matching clauses", func(t *testing.T) {
		n := nameless.NewBinder("n")
		e := nameless.NewBinder("e")
		expr := &Case{
			Scrutinee: &Tag{Label: "err", Expr: lit(StringLit("boom"))},
			Clauses: []*Scope{
				clause(&TagPattern{Label: "ok", Pattern: binderPat(n)}, fv(n.Name)),
				clause(&TagPattern{Label: "err", Pattern: binderPat(e)}, lit(IntLit(0))),
			},
		}
		assert.True(t, AlphaEq(Eval(expr), lit(IntLit(0))))
	})

	t.Run("case with no matching clause is stuck", func(t *testing.T) {
		n := nameless.NewBinder("n")
		expr := &Case{
			Scrutinee: &Tag{Label: "other", Expr: lit(IntLit(1))},
			Clauses: []*Scope{
				clause(&TagPattern{Label: "ok", Pattern: binderPat(n)}, fv(n.Name)),
			},
		}
		assert.Equal(t, Expr(expr), Eval(expr))
	})

	t.Run("record pattern against a variant argument is stuck", func(t *testing.T) {
		a := nameless.NewBinder("a")
		expr := &App{
			Fn: lam(
				recordPat(Field[Pattern]{Label: "x", Value: binderPat(a)}),
				fv(a.Name),
			),
			Arg: &Tag{Label: "foo", Expr: lit(IntLit(1))},
		}
		assert.Equal(t, Expr(expr), Eval(expr))
	})

	t.Run("idempotent up to alpha-equivalence", func(t *testing.T) {
		x := nameless.NewBinder("x")
		n := nameless.NewBinder("n")
		exprs := []Expr{
			&App{Fn: lam(binderPat(x), fv(x.Name)), Arg: lit(IntLit(1))},
			&Tag{Label: "ok", Expr: lit(IntLit(5))},
			&Case{
				Scrutinee: &Tag{Label: "ok", Expr: lit(IntLit(5))},
				Clauses: []*Scope{
					clause(&TagPattern{Label: "ok", Pattern: binderPat(n)}, fv(n.Name)),
				},
			},
			&App{Fn: lit(IntLit(1)), Arg: lit(IntLit(2))}, // stuck
		}
		for _, expr := range exprs {
			once := Eval(expr)
			assert.True(t, AlphaEq(Eval(once), once))
		}
	})

	t.Run("beta agrees with direct substitution", func(t *testing.T) {
		x := nameless.NewBinder("x")
		body := &App{Fn: fv(x.Name), Arg: fv(x.Name)}
		value := lam(binderPat(nameless.NewBinder("y")), lit(IntLit(1)))

		applied := Eval(&App{Fn: lam(binderPat(x), body), Arg: value})
		substituted := Eval(Substitute(body, []Mapping{{Var: x.Name, With: value}}))
		assert.True(t, AlphaEq(applied, substituted))
	})
}
