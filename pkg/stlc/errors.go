package stlc

import (
	"fmt"

	"github.com/vito/nameless/pkg/nameless"
)

// Checking and matching failures are ordinary values, never panics and
// never control flow. A failure in a subterm aborts the enclosing
// operation with the same error; recovery is the caller's concern.
// The one exception is a Bound reference reaching Infer, which is a
// well-scopedness violation upstream and panics (see check.go).

// UnboundVariableError reports a free variable with no entry in the
// typing context.
type UnboundVariableError struct {
	Var nameless.FreeVar
}

func (e UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %s", e.Var)
}

// TypeMismatchError reports that an inferred type differs from the
// expected one.
type TypeMismatchError struct {
	Found    Type
	Expected Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: found %s but expected %s", e.Found, e.Expected)
}

// NotAFunctionError reports an application whose head does not have an
// arrow type.
type NotAFunctionError struct {
	Type Type
}

func (e NotAFunctionError) Error() string {
	return fmt.Sprintf("%s is not a function type", e.Type)
}

// NotARecordError reports a projection out of a non-record type.
type NotARecordError struct {
	Type Type
}

func (e NotARecordError) Error() string {
	return fmt.Sprintf("%s is not a record type", e.Type)
}

// LabelNotFoundError reports a label missing from a record or variant
// type.
type LabelNotFoundError struct {
	Label string
	Type  Type
}

func (e LabelNotFoundError) Error() string {
	return fmt.Sprintf("label %q not found in %s", e.Label, e.Type)
}

// AmbiguousExpressionError reports an expression whose type cannot be
// synthesized: bare variant introductions and bare case expressions
// need an annotation.
type AmbiguousExpressionError struct {
	Expr Expr
}

func (e AmbiguousExpressionError) Error() string {
	return fmt.Sprintf("ambiguous expression (%T): type annotation needed", e.Expr)
}

// AmbiguousPatternError reports a pattern whose type cannot be
// synthesized: bare binders and bare tag patterns need an annotation.
type AmbiguousPatternError struct {
	Pattern Pattern
}

func (e AmbiguousPatternError) Error() string {
	return fmt.Sprintf("ambiguous pattern (%T): type annotation needed", e.Pattern)
}

// MatchLabelError reports a record field or variant tag whose label
// differs from the pattern's.
type MatchLabelError struct {
	Want string
	Got  string
}

func (e MatchLabelError) Error() string {
	return fmt.Sprintf("pattern expects label %q but value has %q", e.Want, e.Got)
}

// MatchArityError reports a record value with a different number of
// fields than the pattern.
type MatchArityError struct {
	Want int
	Got  int
}

func (e MatchArityError) Error() string {
	return fmt.Sprintf("pattern expects %d field(s) but value has %d", e.Want, e.Got)
}

// MatchShapeError reports a pattern and value whose shapes do not
// line up at all, such as a record pattern against a tagged value.
type MatchShapeError struct {
	Pattern Pattern
	Value   Expr
}

func (e MatchShapeError) Error() string {
	return fmt.Sprintf("pattern (%T) cannot match value (%T)", e.Pattern, e.Value)
}
