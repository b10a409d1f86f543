package stlc

// AlphaEq reports alpha-equivalence of two expressions: structural
// equality in which Bound references compare by their positional
// coordinates, Free references compare by token identity (never by
// label), and the tokens carried by binder sites are ignored. It is an
// equivalence relation and is invariant under rebinding, so it holds
// across Unbind/Bind round trips.
//
// Scope bodies are compared in their bound form directly, which is
// what makes the comparison O(size of the terms) with no renaming.
func AlphaEq(a, b Expr) bool {
	switch a := a.(type) {
	case *Ann:
		o, ok := b.(*Ann)
		return ok && a.Type.Eq(o.Type) && AlphaEq(a.Expr, o.Expr)
	case *Lit:
		o, ok := b.(*Lit)
		return ok && a.Value.Eq(o.Value)
	case *Var:
		o, ok := b.(*Var)
		return ok && a.Ref.Eq(o.Ref)
	case *Lam:
		o, ok := b.(*Lam)
		return ok && scopeEq(a.Scope, o.Scope)
	case *App:
		o, ok := b.(*App)
		return ok && AlphaEq(a.Fn, o.Fn) && AlphaEq(a.Arg, o.Arg)
	case *Record:
		o, ok := b.(*Record)
		if !ok || len(a.Fields) != len(o.Fields) {
			return false
		}
		for i, f := range a.Fields {
			if f.Label != o.Fields[i].Label || !AlphaEq(f.Value, o.Fields[i].Value) {
				return false
			}
		}
		return true
	case *Proj:
		o, ok := b.(*Proj)
		return ok && a.Label == o.Label && AlphaEq(a.Expr, o.Expr)
	case *Tag:
		o, ok := b.(*Tag)
		return ok && a.Label == o.Label && AlphaEq(a.Expr, o.Expr)
	case *Case:
		o, ok := b.(*Case)
		if !ok || len(a.Clauses) != len(o.Clauses) {
			return false
		}
		if !AlphaEq(a.Scrutinee, o.Scrutinee) {
			return false
		}
		for i, clause := range a.Clauses {
			if !scopeEq(clause, o.Clauses[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func scopeEq(a, b *Scope) bool {
	return alphaPatternEq(a.pattern, b.pattern) && AlphaEq(a.body, b.body)
}

// alphaPatternEq compares pattern structure: labels, literals, and
// annotations must agree, while the specific tokens at binder sites
// are ignored. Binder positions still matter, since they determine the
// Bound indices in the body.
func alphaPatternEq(a, b Pattern) bool {
	switch a := a.(type) {
	case *AnnPattern:
		o, ok := b.(*AnnPattern)
		return ok && a.Type.Eq(o.Type) && alphaPatternEq(a.Pattern, o.Pattern)
	case *LiteralPattern:
		o, ok := b.(*LiteralPattern)
		return ok && a.Value.Eq(o.Value)
	case *BinderPattern:
		_, ok := b.(*BinderPattern)
		return ok
	case *RecordPattern:
		o, ok := b.(*RecordPattern)
		if !ok || len(a.Fields) != len(o.Fields) {
			return false
		}
		for i, f := range a.Fields {
			if f.Label != o.Fields[i].Label || !alphaPatternEq(f.Value, o.Fields[i].Value) {
				return false
			}
		}
		return true
	case *TagPattern:
		o, ok := b.(*TagPattern)
		return ok && a.Label == o.Label && alphaPatternEq(a.Pattern, o.Pattern)
	default:
		return false
	}
}
