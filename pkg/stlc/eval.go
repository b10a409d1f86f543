package stlc

import (
	"fmt"
	"log/slog"
)

// Eval normalizes an expression under call-by-value. It is pure and
// deterministic, and total on well-typed closed terms: the calculus
// has no general recursion construct, so reduction always terminates.
//
// Reduction that cannot proceed leaves the term stuck rather than
// failing: applying a non-function, a parameter pattern that does not
// match the argument, or a case with no matching clause all return the
// original redex unchanged. Stuck terms are results, not errors.
func Eval(expr Expr) Expr {
	result := eval(expr)
	slog.Debug("evaluation completed", "result", fmt.Sprintf("%T", result))
	return result
}

func eval(expr Expr) Expr {
	switch e := expr.(type) {
	case *Ann:
		return eval(e.Expr)
	case *Lit, *Var, *Lam:
		return e
	case *App:
		fn := eval(e.Fn)
		lam, ok := fn.(*Lam)
		if !ok {
			return e // stuck
		}
		pattern, body := lam.Scope.Unbind()
		bindings, err := Match(pattern, eval(e.Arg))
		if err != nil {
			return e // stuck
		}
		return eval(Substitute(body, mappings(bindings)))
	case *Record:
		fields := make([]Field[Expr], len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = Field[Expr]{Label: f.Label, Value: eval(f.Value)}
		}
		return &Record{Fields: fields}
	case *Proj:
		head := eval(e.Expr)
		if record, ok := head.(*Record); ok {
			// Record fields were evaluated on the way in; return the
			// stored field as-is.
			if v, ok := lookupField(record.Fields, e.Label); ok {
				return v
			}
		}
		return e // stuck
	case *Tag:
		return &Tag{Label: e.Label, Expr: eval(e.Expr)}
	case *Case:
		scrutinee := eval(e.Scrutinee)
		for _, clause := range e.Clauses {
			pattern, body := clause.Unbind()
			bindings, err := Match(pattern, scrutinee)
			if err != nil {
				continue
			}
			return eval(Substitute(body, mappings(bindings)))
		}
		return e // stuck
	default:
		panic(fmt.Sprintf("stlc: unhandled expression variant %T", expr))
	}
}
