package jsonschema

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Schema is the JSON Schema subset used for import and export: object
// structure, numeric bounds, enumerations, references and defaults.
type Schema struct {
	Ref         string      `json:"$ref,omitempty"`
	Defs        *Properties `json:"$defs,omitempty"`
	Definitions *Properties `json:"definitions,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`

	// Core
	Type     Types  `json:"type,omitempty"`
	Format   string `json:"format,omitempty"`
	Enum     []any  `json:"enum,omitempty"`
	Const    any    `json:"const,omitempty"`
	Default  any    `json:"default,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`

	// HasConst and HasDefault distinguish an explicit null or false from absence.
	HasConst   bool `json:"-"`
	HasDefault bool `json:"-"`

	// Number
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`

	// String
	MaxLength *int `json:"maxLength,omitempty"`

	// Object
	Properties           *Properties `json:"properties,omitempty"`
	Required             []string    `json:"required,omitempty"`
	AdditionalProperties any         `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Composition
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Kubernetes extensions
	IntOrString bool `json:"x-kubernetes-int-or-string,omitempty"`
}

// MarshalJSON writes a single type as a string and several as an array.
func (s *Schema) MarshalJSON() ([]byte, error) {
	type plain Schema
	out := struct {
		Type any `json:"type,omitempty"`
		*plain
	}{plain: (*plain)(s)}
	switch len(s.Type) {
	case 0:
	case 1:
		out.Type = s.Type[0]
	default:
		out.Type = []string(s.Type)
	}
	return json.Marshal(out)
}

// Types is the "type" keyword: a single name or a list of names.
type Types []string

// Has reports whether t lists name.
func (t Types) Has(name string) bool {
	for _, n := range t {
		if n == name {
			return true
		}
	}
	return false
}

// NonNull returns the listed names other than "null".
func (t Types) NonNull() []string {
	var out []string
	for _, n := range t {
		if n != "null" {
			out = append(out, n)
		}
	}
	return out
}

// Properties is an ordered name -> schema mapping.
type Properties struct {
	keys []string
	m    map[string]*Schema
}

// NewProperties returns an empty mapping.
func NewProperties() *Properties { return &Properties{m: map[string]*Schema{}} }

// Set adds or replaces name; new names are appended.
func (p *Properties) Set(name string, s *Schema) {
	if p.m == nil {
		p.m = map[string]*Schema{}
	}
	if _, ok := p.m[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.m[name] = s
}

// Get returns the schema for name.
func (p *Properties) Get(name string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.m[name]
	return s, ok
}

// Keys returns names in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// MarshalJSON writes entries in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(p.m[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
