package stlc

import (
	"fmt"
	"log/slog"

	"github.com/kr/pretty"
	"github.com/pkg/errors"

	"github.com/vito/nameless/pkg/nameless"
)

// Infer synthesizes the type of an expression against a typing
// context. Inherently ambiguous forms (bare variant introductions,
// bare case expressions, bare binder patterns) fail with an
// annotation-needed error; see Check for the checking direction.
//
// A Bound reference reaching Infer means the front end handed over an
// ill-scoped term; that is an internal invariant violation and panics
// rather than returning an error.
func Infer(ctx Context, expr Expr) (Type, error) {
	if expr == nil {
		return nil, errors.Errorf("cannot infer a nil expression")
	}
	inferred, err := infer(ctx, expr)
	if err != nil {
		return nil, err
	}
	slog.Debug("type inference completed", "type", inferred)
	return inferred, nil
}

func infer(ctx Context, expr Expr) (Type, error) {
	switch e := expr.(type) {
	case *Ann:
		if err := Check(ctx, e.Expr, e.Type); err != nil {
			return nil, err
		}
		return e.Type, nil
	case *Lit:
		return e.Value.TypeOf(), nil
	case *Var:
		free, ok := e.Ref.(nameless.Free)
		if !ok {
			panic(pretty.Sprintf("stlc: bound variable escaped its scope: %# v", e.Ref))
		}
		t, ok := ctx.Lookup(free.Name)
		if !ok {
			return nil, UnboundVariableError{Var: free.Name}
		}
		return t, nil
	case *Lam:
		pattern, body := e.Scope.Unbind()
		paramType, telescope, err := InferPattern(ctx, pattern)
		if err != nil {
			return nil, err
		}
		bodyType, err := infer(ctx.Extend(telescope), body)
		if err != nil {
			return nil, err
		}
		return NewArrowType(paramType, bodyType), nil
	case *App:
		fnType, err := infer(ctx, e.Fn)
		if err != nil {
			return nil, err
		}
		arrow, ok := fnType.(*ArrowType)
		if !ok {
			return nil, NotAFunctionError{Type: fnType}
		}
		argType, err := infer(ctx, e.Arg)
		if err != nil {
			return nil, err
		}
		if !argType.Eq(arrow.Param) {
			return nil, errors.Wrap(TypeMismatchError{Found: argType, Expected: arrow.Param}, "argument")
		}
		return arrow.Result, nil
	case *Record:
		fields := make([]Field[Type], len(e.Fields))
		for i, f := range e.Fields {
			t, err := infer(ctx, f.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "field %q", f.Label)
			}
			fields[i] = Field[Type]{Label: f.Label, Value: t}
		}
		return &RecordType{Fields: fields}, nil
	case *Proj:
		headType, err := infer(ctx, e.Expr)
		if err != nil {
			return nil, err
		}
		record, ok := headType.(*RecordType)
		if !ok {
			return nil, NotARecordError{Type: headType}
		}
		t, ok := record.Lookup(e.Label)
		if !ok {
			return nil, LabelNotFoundError{Label: e.Label, Type: record}
		}
		return t, nil
	case *Tag, *Case:
		return nil, AmbiguousExpressionError{Expr: e}
	default:
		panic(fmt.Sprintf("stlc: unhandled expression variant %T", expr))
	}
}

// Check verifies that an expression conforms to an expected type. The
// structural rules for lambdas, variant introductions, and case
// expressions apply first; everything else is inferred and compared
// for equality.
func Check(ctx Context, expr Expr, expected Type) error {
	if expr == nil {
		return errors.Errorf("cannot check a nil expression")
	}

	switch e := expr.(type) {
	case *Lam:
		if arrow, ok := expected.(*ArrowType); ok {
			pattern, body := e.Scope.Unbind()
			telescope, err := CheckPattern(ctx, pattern, arrow.Param)
			if err != nil {
				return err
			}
			return Check(ctx.Extend(telescope), body, arrow.Result)
		}
	case *Tag:
		if variant, ok := expected.(*VariantType); ok {
			payloadType, ok := variant.Lookup(e.Label)
			if !ok {
				return LabelNotFoundError{Label: e.Label, Type: variant}
			}
			return Check(ctx, e.Expr, payloadType)
		}
	case *Case:
		scrutineeType, err := infer(ctx, e.Scrutinee)
		if err != nil {
			return err
		}
		// Every clause must check, not just the first match.
		for i, clause := range e.Clauses {
			pattern, body := clause.Unbind()
			telescope, err := CheckPattern(ctx, pattern, scrutineeType)
			if err != nil {
				return errors.Wrapf(err, "clause %d", i)
			}
			if err := Check(ctx.Extend(telescope), body, expected); err != nil {
				return errors.Wrapf(err, "clause %d", i)
			}
		}
		return nil
	}

	inferred, err := infer(ctx, expr)
	if err != nil {
		return err
	}
	if !inferred.Eq(expected) {
		return TypeMismatchError{Found: inferred, Expected: expected}
	}
	return nil
}

// CheckPattern verifies that a pattern conforms to an expected type
// and returns the telescope of bindings the pattern introduces, for
// extending the context under the scope's body.
func CheckPattern(ctx Context, pattern Pattern, expected Type) (Context, error) {
	switch p := pattern.(type) {
	case *BinderPattern:
		return NewContext().Insert(p.Binder.Name, expected), nil
	case *TagPattern:
		if variant, ok := expected.(*VariantType); ok {
			payloadType, ok := variant.Lookup(p.Label)
			if !ok {
				return Context{}, LabelNotFoundError{Label: p.Label, Type: variant}
			}
			return CheckPattern(ctx, p.Pattern, payloadType)
		}
	}

	inferred, telescope, err := InferPattern(ctx, pattern)
	if err != nil {
		return Context{}, err
	}
	if !inferred.Eq(expected) {
		return Context{}, TypeMismatchError{Found: inferred, Expected: expected}
	}
	return telescope, nil
}

// InferPattern synthesizes the type of an unambiguous pattern,
// returning the type alongside the telescope of bindings the pattern
// introduces. Bare binders and bare tag patterns are ambiguous and
// need an annotation.
func InferPattern(ctx Context, pattern Pattern) (Type, Context, error) {
	switch p := pattern.(type) {
	case *AnnPattern:
		telescope, err := CheckPattern(ctx, p.Pattern, p.Type)
		if err != nil {
			return nil, Context{}, err
		}
		return p.Type, telescope, nil
	case *LiteralPattern:
		return p.Value.TypeOf(), NewContext(), nil
	case *RecordPattern:
		telescope := NewContext()
		fields := make([]Field[Type], len(p.Fields))
		for i, f := range p.Fields {
			fieldType, fieldTelescope, err := InferPattern(ctx, f.Value)
			if err != nil {
				return nil, Context{}, errors.Wrapf(err, "field %q", f.Label)
			}
			telescope = telescope.Extend(fieldTelescope)
			fields[i] = Field[Type]{Label: f.Label, Value: fieldType}
		}
		return &RecordType{Fields: fields}, telescope, nil
	case *BinderPattern, *TagPattern:
		return nil, Context{}, AmbiguousPatternError{Pattern: p}
	default:
		panic(fmt.Sprintf("stlc: unhandled pattern variant %T", pattern))
	}
}
