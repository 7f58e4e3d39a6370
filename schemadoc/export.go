package schemadoc

import (
	"github.com/reoring/bounded"
	"github.com/reoring/bounded/jsonschema"
)

// Export renders s as a JSON Schema object. Exclusive bounds use the numeric
// exclusiveMinimum/exclusiveMaximum form; property order follows s.
func Export(s *bounded.Schema) *jsonschema.Schema {
	out := &jsonschema.Schema{Title: s.Name, Type: jsonschema.Types{"object"}, Properties: jsonschema.NewProperties()}
	for _, f := range s.Fields {
		out.Properties.Set(f.Name, exportField(f))
	}
	return out
}

func exportField(f bounded.Field) *jsonschema.Schema {
	var out *jsonschema.Schema
	switch f.Kind {
	case bounded.KindNumeric:
		out = &jsonschema.Schema{Type: jsonschema.Types{"number"}}
		if f.Integer {
			out.Type = jsonschema.Types{"integer"}
		}
		if b := f.Lower; b != nil {
			v := b.Value
			if b.Exclusive {
				out.ExclusiveMinimum = &v
			} else {
				out.Minimum = &v
			}
		}
		if b := f.Upper; b != nil {
			v := b.Value
			if b.Exclusive {
				out.ExclusiveMaximum = &v
			} else {
				out.Maximum = &v
			}
		}
	case bounded.KindLiteral, bounded.KindEnum:
		out = &jsonschema.Schema{Enum: append([]any(nil), f.Values...)}
		if isBoolPair(f.Values) {
			out = &jsonschema.Schema{Type: jsonschema.Types{"boolean"}}
		}
	case bounded.KindNested:
		out = Export(f.Schema)
	default:
		out = &jsonschema.Schema{}
		switch f.Type {
		case "string", "str":
			out.Type = jsonschema.Types{"string"}
			out.MaxLength = f.MaxLength
		case "array", "list":
			out.Type = jsonschema.Types{"array"}
			out.MaxItems = f.MaxLength
		case "object", "map":
			out.Type = jsonschema.Types{"object"}
		}
	}
	out.Nullable = f.Nullable
	if f.HasDefault {
		out.Default, out.HasDefault = f.Default, true
	}
	return out
}

func isBoolPair(vs []any) bool {
	if len(vs) != 2 {
		return false
	}
	a, ok1 := vs[0].(bool)
	b, ok2 := vs[1].(bool)
	return ok1 && ok2 && a != b
}
