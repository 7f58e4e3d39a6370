package bounded

import (
	"fmt"
	"math"
)

// Bound is one side of a numeric interval.
type Bound struct {
	Value     float64
	Exclusive bool // gt/lt when true, ge/le otherwise.
}

// Inclusive returns a ge/le bound.
func Inclusive(v float64) *Bound { return &Bound{Value: v} }

// Exclusive returns a gt/lt bound.
func Exclusive(v float64) *Bound { return &Bound{Value: v, Exclusive: true} }

// FoldBounds combines an inclusive and an exclusive limit on the same side
// of an interval into one bound. The tighter limit wins; on a tie the
// exclusive one does. lower selects the side. It returns nil when neither
// limit is set.
func FoldBounds(inclusive, exclusive *float64, lower bool) *Bound {
	switch {
	case inclusive != nil && exclusive != nil:
		tighter := *exclusive >= *inclusive
		if !lower {
			tighter = *exclusive <= *inclusive
		}
		if tighter {
			return Exclusive(*exclusive)
		}
		return Inclusive(*inclusive)
	case inclusive != nil:
		return Inclusive(*inclusive)
	case exclusive != nil:
		return Exclusive(*exclusive)
	}
	return nil
}

// Field describes one named field of a schema. Only the attribute group
// matching Kind is meaningful.
type Field struct {
	Name string
	Type string // declared type name, used in diagnostics.
	Kind Kind

	// KindNumeric
	Lower   *Bound
	Upper   *Bound
	Integer bool

	// KindLiteral, KindEnum
	Values []any

	// KindNested
	Schema *Schema

	Nullable  bool
	MaxLength *int

	Default        any
	HasDefault     bool
	DefaultFactory func() any
}

// HasConstant reports whether the field declares a default value or factory.
func (f Field) HasConstant() bool { return f.HasDefault || f.DefaultFactory != nil }

// Constant produces the declared default. Factories are invoked on every
// call; composite default values are copied so samples never share them.
func (f Field) Constant() any {
	if f.DefaultFactory != nil {
		return f.DefaultFactory()
	}
	return cloneValue(f.Default)
}

// TypeName returns Type, falling back to a name derived from Kind.
func (f Field) TypeName() string {
	if f.Type != "" {
		return f.Type
	}
	switch f.Kind {
	case KindNumeric:
		if f.Integer {
			return "int"
		}
		return "float"
	case KindNested:
		if f.Schema != nil && f.Schema.Name != "" {
			return f.Schema.Name
		}
	}
	return f.Kind.String()
}

// Validate checks the descriptor for internal consistency.
func (f Field) Validate() error {
	var iss Issues
	bad := func(reason string) { iss = append(iss, invalidSchemaError(f.Name, reason)) }
	if f.Name == "" {
		bad("field name is empty")
	}
	if f.HasDefault && f.DefaultFactory != nil {
		bad("default and default factory are mutually exclusive")
	}
	if f.Kind != KindNumeric && (f.Lower != nil || f.Upper != nil) {
		bad(fmt.Sprintf("numeric bounds on %s field", f.Kind))
	}
	for _, b := range []*Bound{f.Lower, f.Upper} {
		if b != nil && math.IsNaN(b.Value) {
			bad("bound is NaN")
		}
	}
	switch f.Kind {
	case KindLiteral, KindEnum:
		if len(f.Values) == 0 {
			bad(fmt.Sprintf("%s field has no values", f.Kind))
		}
	case KindNested:
		if f.Schema == nil {
			bad("nested field has no schema")
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// Schema is an ordered collection of fields. Field order is significant:
// it fixes the order in which unit values are consumed.
type Schema struct {
	Name   string
	Fields []Field
}

// NewSchema builds a schema and validates its fields.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	s := &Schema{Name: name, Fields: append([]Field(nil), fields...)}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustSchema is NewSchema that panics on error.
func MustSchema(name string, fields ...Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks every field and rejects duplicate names. Nested schemas
// are validated recursively.
func (s *Schema) Validate() error {
	var iss Issues
	s.validate("", &iss)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *Schema) validate(prefix string, iss *Issues) {
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		path := joinPath(prefix, f.Name)
		if _, dup := seen[f.Name]; dup {
			*iss = append(*iss, invalidSchemaError(path, "duplicate field name"))
		}
		seen[f.Name] = struct{}{}
		if err := f.Validate(); err != nil {
			if fi, ok := AsIssues(err); ok {
				for _, it := range fi {
					it.Path = path
					*iss = append(*iss, it)
				}
			}
		}
		if f.Kind == KindNested && f.Schema != nil {
			f.Schema.validate(path, iss)
		}
	}
}

// Lookup returns the field with the given name.
func (s *Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case *Object:
		return x.clone()
	default:
		return v
	}
}
