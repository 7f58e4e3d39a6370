package dsl

import (
	"fmt"

	"github.com/reoring/bounded"
)

// Spec describes a field apart from its name; Object().Field attaches the
// name.
type Spec interface {
	Descriptor() bounded.Field
}

// NumberSpec describes an integer or real field.
type NumberSpec struct{ f bounded.Field }

// Float describes a real-valued field.
func Float() *NumberSpec {
	return &NumberSpec{f: bounded.Field{Type: "float", Kind: bounded.KindNumeric}}
}

// Int describes an integer field.
func Int() *NumberSpec {
	return &NumberSpec{f: bounded.Field{Type: "int", Kind: bounded.KindNumeric, Integer: true}}
}

func (s *NumberSpec) Ge(v float64) *NumberSpec { s.f.Lower = bounded.Inclusive(v); return s }
func (s *NumberSpec) Gt(v float64) *NumberSpec { s.f.Lower = bounded.Exclusive(v); return s }
func (s *NumberSpec) Le(v float64) *NumberSpec { s.f.Upper = bounded.Inclusive(v); return s }
func (s *NumberSpec) Lt(v float64) *NumberSpec { s.f.Upper = bounded.Exclusive(v); return s }

// Range sets inclusive bounds on both sides.
func (s *NumberSpec) Range(lo, hi float64) *NumberSpec { return s.Ge(lo).Le(hi) }

// Between sets exclusive bounds on both sides.
func (s *NumberSpec) Between(lo, hi float64) *NumberSpec { return s.Gt(lo).Lt(hi) }

// Nullable marks the field as accepting null. Samples are never null.
func (s *NumberSpec) Nullable() *NumberSpec { s.f.Nullable = true; return s }

// TypeName overrides the type name used in diagnostics.
func (s *NumberSpec) TypeName(name string) *NumberSpec { s.f.Type = name; return s }

func (s *NumberSpec) Descriptor() bounded.Field { return s.f }

// ChoiceSpec describes a field drawn from a fixed set of values.
type ChoiceSpec struct{ f bounded.Field }

// Literal describes a field restricted to the given constants, in order.
func Literal(values ...any) *ChoiceSpec {
	vals := append([]any(nil), values...)
	return &ChoiceSpec{f: bounded.Field{Type: literalTypeName(vals), Kind: bounded.KindLiteral, Values: vals}}
}

// Bool describes a boolean field: the literal set [false, true].
func Bool() *ChoiceSpec {
	return &ChoiceSpec{f: bounded.Field{Type: "bool", Kind: bounded.KindLiteral, Values: []any{false, true}}}
}

// EnumOf describes a field whose type is the enumeration T with the given
// members, in order.
func EnumOf[T comparable](members ...T) *ChoiceSpec {
	vals := make([]any, len(members))
	for i, m := range members {
		vals[i] = m
	}
	var zero T
	return &ChoiceSpec{f: bounded.Field{Type: fmt.Sprintf("%T", zero), Kind: bounded.KindEnum, Values: vals}}
}

func (s *ChoiceSpec) Nullable() *ChoiceSpec            { s.f.Nullable = true; return s }
func (s *ChoiceSpec) TypeName(name string) *ChoiceSpec { s.f.Type = name; return s }
func (s *ChoiceSpec) Descriptor() bounded.Field        { return s.f }

// NestedSpec describes a field whose type is another schema.
type NestedSpec struct{ f bounded.Field }

// Nested describes a field of schema type s.
func Nested(s *bounded.Schema) *NestedSpec {
	f := bounded.Field{Kind: bounded.KindNested, Schema: s}
	if s != nil {
		f.Type = s.Name
	}
	return &NestedSpec{f: f}
}

func (s *NestedSpec) Nullable() *NestedSpec     { s.f.Nullable = true; return s }
func (s *NestedSpec) Descriptor() bounded.Field { return s.f }

// OpaqueSpec describes a field without a constraint model. Such fields are
// unbounded in the default registry and need a default to be sampled.
type OpaqueSpec struct{ f bounded.Field }

// String describes a string field.
func String() *OpaqueSpec { return Opaque("string") }

// List describes a variable-length sequence field.
func List() *OpaqueSpec { return Opaque("list") }

// Opaque describes a field of an arbitrary type name.
func Opaque(typeName string) *OpaqueSpec {
	return &OpaqueSpec{f: bounded.Field{Type: typeName, Kind: bounded.KindOpaque}}
}

// MaxLen records a maximum length. Custom handlers may use it.
func (s *OpaqueSpec) MaxLen(n int) *OpaqueSpec  { s.f.MaxLength = &n; return s }
func (s *OpaqueSpec) Nullable() *OpaqueSpec     { s.f.Nullable = true; return s }
func (s *OpaqueSpec) Descriptor() bounded.Field { return s.f }

func literalTypeName(values []any) string {
	b := []byte("Literal[")
	for i, v := range values {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = fmt.Appendf(b, "%#v", v)
	}
	return string(append(b, ']'))
}
