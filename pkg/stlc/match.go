package stlc

import (
	"github.com/vito/nameless/pkg/nameless"
)

// Binding pairs a pattern variable with the value it matched.
type Binding struct {
	Var   nameless.FreeVar
	Value Expr
}

// Match matches an already-evaluated value against a pattern. On
// success it returns the bindings introduced by the pattern's binder
// sites, ordered by their left-to-right occurrence; on failure it
// returns a typed error describing the first mismatch. The evaluator
// treats any failure as a stuck term; it never distinguishes the
// reasons.
//
// The value must be in normal form already; this is a precondition,
// not re-checked here. Record matching is order- and arity-sensitive:
// the same fields in a different order do not match. No exhaustiveness
// or overlap analysis happens here or anywhere else.
func Match(pattern Pattern, value Expr) ([]Binding, error) {
	switch p := pattern.(type) {
	case *AnnPattern:
		// Annotations are erased at runtime.
		return Match(p.Pattern, value)
	case *LiteralPattern:
		lit, ok := value.(*Lit)
		if !ok || !p.Value.Eq(lit.Value) {
			return nil, MatchShapeError{Pattern: p, Value: value}
		}
		return []Binding{}, nil
	case *BinderPattern:
		return []Binding{{Var: p.Binder.Name, Value: value}}, nil
	case *RecordPattern:
		record, ok := value.(*Record)
		if !ok {
			return nil, MatchShapeError{Pattern: p, Value: value}
		}
		if len(p.Fields) != len(record.Fields) {
			return nil, MatchArityError{Want: len(p.Fields), Got: len(record.Fields)}
		}
		bindings := []Binding{}
		for i, f := range p.Fields {
			if f.Label != record.Fields[i].Label {
				return nil, MatchLabelError{Want: f.Label, Got: record.Fields[i].Label}
			}
			sub, err := Match(f.Value, record.Fields[i].Value)
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, sub...)
		}
		return bindings, nil
	case *TagPattern:
		tag, ok := value.(*Tag)
		if !ok {
			return nil, MatchShapeError{Pattern: p, Value: value}
		}
		if p.Label != tag.Label {
			return nil, MatchLabelError{Want: p.Label, Got: tag.Label}
		}
		return Match(p.Pattern, tag.Expr)
	default:
		return nil, MatchShapeError{Pattern: pattern, Value: value}
	}
}

// mappings converts match bindings into substitution mappings.
func mappings(bindings []Binding) []Mapping {
	ms := make([]Mapping, len(bindings))
	for i, b := range bindings {
		ms[i] = Mapping{Var: b.Var, With: b.Value}
	}
	return ms
}
