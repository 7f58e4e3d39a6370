package jsonschema

import (
	"fmt"

	"github.com/reoring/bounded/internal/docnode"
)

// ParseJSON decodes a JSON Schema document, keeping property order.
func ParseJSON(data []byte) (*Schema, error) {
	n, err := docnode.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return FromNode(n)
}

// ParseYAML decodes the first document of a YAML stream as a JSON Schema.
func ParseYAML(data []byte) (*Schema, error) {
	n, err := docnode.ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return FromNode(n)
}

// FromNode decodes a schema from a document node. Unknown keywords are
// ignored; keywords with the wrong shape are errors.
func FromNode(n *docnode.Node) (*Schema, error) {
	return fromNode(n, "")
}

func fromNode(n *docnode.Node, at string) (*Schema, error) {
	if n.Kind == docnode.Bool {
		// true accepts anything, false nothing; both carry no constraint model.
		return &Schema{}, nil
	}
	if n.Kind != docnode.Object {
		return nil, fmt.Errorf("jsonschema: %s: schema must be an object, got %s", label(at), n.Kind)
	}
	s := &Schema{}
	for _, m := range n.Members {
		v := m.Value
		path := docnode.Join(at, m.Key)
		var err error
		switch m.Key {
		case "$ref":
			s.Ref, err = str(v, path)
		case "$defs":
			s.Defs, err = properties(v, path)
		case "definitions":
			s.Definitions, err = properties(v, path)
		case "title":
			s.Title, err = str(v, path)
		case "description":
			s.Description, err = str(v, path)
		case "type":
			s.Type, err = types(v, path)
		case "format":
			s.Format, err = str(v, path)
		case "enum":
			if v.Kind != docnode.Array {
				err = fmt.Errorf("jsonschema: %s: enum must be an array", path)
				break
			}
			s.Enum = make([]any, len(v.Items))
			for i, it := range v.Items {
				s.Enum[i] = it.Value()
			}
		case "const":
			s.Const, s.HasConst = v.Value(), true
		case "default":
			s.Default, s.HasDefault = v.Value(), true
		case "nullable":
			s.Nullable, err = boolean(v, path)
		case "minimum":
			s.Minimum, err = number(v, path)
		case "maximum":
			s.Maximum, err = number(v, path)
		case "exclusiveMinimum":
			s.ExclusiveMinimum, err = exclusive(v, n, "minimum", path)
		case "exclusiveMaximum":
			s.ExclusiveMaximum, err = exclusive(v, n, "maximum", path)
		case "maxLength":
			s.MaxLength, err = integer(v, path)
		case "minItems":
			s.MinItems, err = integer(v, path)
		case "maxItems":
			s.MaxItems, err = integer(v, path)
		case "properties":
			s.Properties, err = properties(v, path)
		case "required":
			s.Required, err = strList(v, path)
		case "additionalProperties":
			s.AdditionalProperties = v.Value()
		case "items":
			if v.Kind == docnode.Object {
				s.Items, err = fromNode(v, path)
			}
		case "allOf":
			s.AllOf, err = list(v, path)
		case "anyOf":
			s.AnyOf, err = list(v, path)
		case "oneOf":
			s.OneOf, err = list(v, path)
		case "x-kubernetes-int-or-string":
			s.IntOrString, err = boolean(v, path)
		}
		if err != nil {
			return nil, err
		}
	}
	// Draft-04 boolean exclusivity moves the bound out of minimum/maximum.
	if b, ok := n.Get("exclusiveMinimum"); ok && b.Kind == docnode.Bool && b.Bool {
		s.Minimum = nil
	}
	if b, ok := n.Get("exclusiveMaximum"); ok && b.Kind == docnode.Bool && b.Bool {
		s.Maximum = nil
	}
	return s, nil
}

func label(at string) string {
	if at == "" {
		return "root"
	}
	return at
}

func str(v *docnode.Node, at string) (string, error) {
	if v.Kind != docnode.String {
		return "", fmt.Errorf("jsonschema: %s: expected string, got %s", at, v.Kind)
	}
	return v.Str, nil
}

func boolean(v *docnode.Node, at string) (bool, error) {
	if v.Kind != docnode.Bool {
		return false, fmt.Errorf("jsonschema: %s: expected boolean, got %s", at, v.Kind)
	}
	return v.Bool, nil
}

func number(v *docnode.Node, at string) (*float64, error) {
	f, ok := v.Float()
	if !ok {
		return nil, fmt.Errorf("jsonschema: %s: expected number, got %s", at, v.Kind)
	}
	return &f, nil
}

func integer(v *docnode.Node, at string) (*int, error) {
	i, ok := v.Int()
	if !ok {
		return nil, fmt.Errorf("jsonschema: %s: expected integer, got %s", at, v.Kind)
	}
	n := int(i)
	return &n, nil
}

// exclusive accepts the numeric form and the draft-04 boolean form, where
// true turns the sibling minimum/maximum into an exclusive bound.
func exclusive(v, parent *docnode.Node, sibling, at string) (*float64, error) {
	if v.Kind == docnode.Bool {
		if !v.Bool {
			return nil, nil
		}
		b, ok := parent.Get(sibling)
		if !ok {
			return nil, fmt.Errorf("jsonschema: %s: boolean form needs %s", at, sibling)
		}
		return number(b, sibling)
	}
	return number(v, at)
}

func types(v *docnode.Node, at string) (Types, error) {
	switch v.Kind {
	case docnode.String:
		return Types{v.Str}, nil
	case docnode.Array:
		return strList(v, at)
	}
	return nil, fmt.Errorf("jsonschema: %s: type must be a string or array", at)
}

func strList(v *docnode.Node, at string) ([]string, error) {
	if v.Kind != docnode.Array {
		return nil, fmt.Errorf("jsonschema: %s: expected array, got %s", at, v.Kind)
	}
	out := make([]string, 0, len(v.Items))
	for i, it := range v.Items {
		s, err := str(it, fmt.Sprintf("%s/%d", at, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func list(v *docnode.Node, at string) ([]*Schema, error) {
	if v.Kind != docnode.Array {
		return nil, fmt.Errorf("jsonschema: %s: expected array, got %s", at, v.Kind)
	}
	out := make([]*Schema, 0, len(v.Items))
	for i, it := range v.Items {
		s, err := fromNode(it, fmt.Sprintf("%s/%d", at, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func properties(v *docnode.Node, at string) (*Properties, error) {
	if v.Kind != docnode.Object {
		return nil, fmt.Errorf("jsonschema: %s: expected object, got %s", at, v.Kind)
	}
	p := NewProperties()
	for _, m := range v.Members {
		s, err := fromNode(m.Value, docnode.Join(at, m.Key))
		if err != nil {
			return nil, err
		}
		p.Set(m.Key, s)
	}
	return p, nil
}
