package stlc

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/vito/nameless/pkg/nameless"
)

func TestMatch(t *testing.T) {
	t.Run("literal matches exactly", func(t *testing.T) {
		bindings, err := Match(&LiteralPattern{Value: IntLit(1)}, lit(IntLit(1)))
		assert.NilError(t, err)
		assert.Assert(t, is.Len(bindings, 0))

		_, err = Match(&LiteralPattern{Value: IntLit(1)}, lit(IntLit(2)))
		assert.ErrorContains(t, err, "cannot match")
	})

	t.Run("literal kinds never cross-match", func(t *testing.T) {
		_, err := Match(&LiteralPattern{Value: IntLit(1)}, lit(FloatLit(1)))
		assert.ErrorContains(t, err, "cannot match")
	})

	t.Run("binder matches anything, binding the whole value", func(t *testing.T) {
		n := nameless.NewBinder("n")
		value := &Tag{Label: "ok", Expr: lit(IntLit(5))}

		bindings, err := Match(binderPat(n), value)
		assert.NilError(t, err)
		assert.Assert(t, is.Len(bindings, 1))
		assert.Assert(t, bindings[0].Var.Eq(n.Name))
		assert.Equal(t, Expr(value), bindings[0].Value)
	})

	t.Run("annotation is erased at runtime", func(t *testing.T) {
		n := nameless.NewBinder("n")
		bindings, err := Match(annPat(binderPat(n), IntType{}), lit(IntLit(1)))
		assert.NilError(t, err)
		assert.Assert(t, is.Len(bindings, 1))
	})

	t.Run("record bindings concatenate left to right", func(t *testing.T) {
		a := nameless.NewBinder("a")
		b := nameless.NewBinder("b")
		pattern := recordPat(
			Field[Pattern]{Label: "x", Value: binderPat(a)},
			Field[Pattern]{Label: "y", Value: binderPat(b)},
		)
		value := recordExpr(
			Field[Expr]{Label: "x", Value: lit(IntLit(1))},
			Field[Expr]{Label: "y", Value: lit(StringLit("s"))},
		)

		bindings, err := Match(pattern, value)
		assert.NilError(t, err)
		assert.Assert(t, is.Len(bindings, 2))
		assert.Assert(t, bindings[0].Var.Eq(a.Name))
		assert.Assert(t, bindings[1].Var.Eq(b.Name))
	})

	t.Run("record field order mismatch fails", func(t *testing.T) {
		a := nameless.NewBinder("a")
		b := nameless.NewBinder("b")
		pattern := recordPat(
			Field[Pattern]{Label: "x", Value: binderPat(a)},
			Field[Pattern]{Label: "y", Value: binderPat(b)},
		)
		// Same fields, permuted. Matching is order-sensitive.
		value := recordExpr(
			Field[Expr]{Label: "y", Value: lit(StringLit("s"))},
			Field[Expr]{Label: "x", Value: lit(IntLit(1))},
		)

		_, err := Match(pattern, value)
		var labelErr MatchLabelError
		assert.Assert(t, errors.As(err, &labelErr))
		assert.Equal(t, "x", labelErr.Want)
		assert.Equal(t, "y", labelErr.Got)
	})

	t.Run("record arity mismatch fails", func(t *testing.T) {
		a := nameless.NewBinder("a")
		pattern := recordPat(Field[Pattern]{Label: "x", Value: binderPat(a)})
		value := recordExpr(
			Field[Expr]{Label: "x", Value: lit(IntLit(1))},
			Field[Expr]{Label: "y", Value: lit(IntLit(2))},
		)

		_, err := Match(pattern, value)
		var arityErr MatchArityError
		assert.Assert(t, errors.As(err, &arityErr))
		assert.Equal(t, 1, arityErr.Want)
		assert.Equal(t, 2, arityErr.Got)
	})

	t.Run("record sub-match failure short-circuits", func(t *testing.T) {
		b := nameless.NewBinder("b")
		pattern := recordPat(
			Field[Pattern]{Label: "x", Value: &LiteralPattern{Value: IntLit(1)}},
			Field[Pattern]{Label: "y", Value: binderPat(b)},
		)
		value := recordExpr(
			Field[Expr]{Label: "x", Value: lit(IntLit(2))},
			Field[Expr]{Label: "y", Value: lit(IntLit(3))},
		)

		bindings, err := Match(pattern, value)
		assert.Assert(t, err != nil)
		assert.Assert(t, is.Len(bindings, 0))
	})

	t.Run("tag label must agree", func(t *testing.T) {
		n := nameless.NewBinder("n")
		pattern := &TagPattern{Label: "ok", Pattern: binderPat(n)}

		bindings, err := Match(pattern, &Tag{Label: "ok", Expr: lit(IntLit(5))})
		assert.NilError(t, err)
		assert.Assert(t, is.Len(bindings, 1))
		assert.Assert(t, AlphaEq(bindings[0].Value, lit(IntLit(5))))

		_, err = Match(pattern, &Tag{Label: "err", Expr: lit(IntLit(5))})
		var labelErr MatchLabelError
		assert.Assert(t, errors.As(err, &labelErr))
	})

	t.Run("record pattern cannot match a variant value", func(t *testing.T) {
		a := nameless.NewBinder("a")
		pattern := recordPat(Field[Pattern]{Label: "x", Value: binderPat(a)})

		_, err := Match(pattern, &Tag{Label: "foo", Expr: lit(IntLit(1))})
		var shapeErr MatchShapeError
		assert.Assert(t, errors.As(err, &shapeErr))
	})
}
