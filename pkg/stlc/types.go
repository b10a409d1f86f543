package stlc

import (
	"fmt"
	"strings"
)

// Type is the closed union of types in the calculus. Types carry no
// binders, so equality is plain structural equality; record and
// variant field order is significant.
//
// Every variant must be handled by Eq and String below, and by the
// checker in check.go. There is no codegen keeping these in sync; when
// adding a variant, update each by hand.
type Type interface {
	fmt.Stringer

	// Eq reports structural equality with another type.
	Eq(Type) bool

	isType()
}

// Field is an ordered (label, value) pair inside a record or variant.
// Labels are assumed unique within a single record or variant but this
// is not enforced.
type Field[X any] struct {
	Label string
	Value X
}

// IntType is the type of integer literals.
type IntType struct{}

// FloatType is the type of floating point literals.
type FloatType struct{}

// StringType is the type of string literals.
type StringType struct{}

var _ Type = IntType{}
var _ Type = FloatType{}
var _ Type = StringType{}

func (IntType) isType()    {}
func (FloatType) isType()  {}
func (StringType) isType() {}

func (IntType) Eq(other Type) bool {
	_, ok := other.(IntType)
	return ok
}

func (FloatType) Eq(other Type) bool {
	_, ok := other.(FloatType)
	return ok
}

func (StringType) Eq(other Type) bool {
	_, ok := other.(StringType)
	return ok
}

func (IntType) String() string    { return "Int" }
func (FloatType) String() string  { return "Float" }
func (StringType) String() string { return "String" }

// ArrowType is a function type.
type ArrowType struct {
	Param  Type
	Result Type
}

var _ Type = (*ArrowType)(nil)

// NewArrowType builds a function type from a parameter and result
// type.
func NewArrowType(param, result Type) *ArrowType {
	return &ArrowType{Param: param, Result: result}
}

func (*ArrowType) isType() {}

func (t *ArrowType) Eq(other Type) bool {
	o, ok := other.(*ArrowType)
	return ok && t.Param.Eq(o.Param) && t.Result.Eq(o.Result)
}

func (t *ArrowType) String() string {
	return fmt.Sprintf("(%s -> %s)", t.Param, t.Result)
}

// RecordType is an ordered sequence of labeled field types.
type RecordType struct {
	Fields []Field[Type]
}

var _ Type = (*RecordType)(nil)

func (*RecordType) isType() {}

// Lookup returns the type of the named field.
func (t *RecordType) Lookup(label string) (Type, bool) {
	return lookupField(t.Fields, label)
}

func (t *RecordType) Eq(other Type) bool {
	o, ok := other.(*RecordType)
	return ok && fieldsEq(t.Fields, o.Fields)
}

func (t *RecordType) String() string {
	return formatFields("{", t.Fields, "}")
}

// VariantType is an ordered sequence of labeled alternatives.
type VariantType struct {
	Cases []Field[Type]
}

var _ Type = (*VariantType)(nil)

func (*VariantType) isType() {}

// Lookup returns the payload type of the named alternative.
func (t *VariantType) Lookup(label string) (Type, bool) {
	return lookupField(t.Cases, label)
}

func (t *VariantType) Eq(other Type) bool {
	o, ok := other.(*VariantType)
	return ok && fieldsEq(t.Cases, o.Cases)
}

func (t *VariantType) String() string {
	return formatFields("<", t.Cases, ">")
}

func lookupField[X any](fields []Field[X], label string) (X, bool) {
	for _, f := range fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	var zero X
	return zero, false
}

// fieldsEq compares labeled field lists pairwise. Order is
// significant: permuted fields are unequal.
func fieldsEq(a, b []Field[Type]) bool {
	if len(a) != len(b) {
		return false
	}
	for i, f := range a {
		if f.Label != b[i].Label || !f.Value.Eq(b[i].Value) {
			return false
		}
	}
	return true
}

func formatFields(open string, fields []Field[Type], closing string) string {
	var sb strings.Builder
	sb.WriteString(open)
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", f.Label, f.Value)
	}
	sb.WriteString(closing)
	return sb.String()
}
