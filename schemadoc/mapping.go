package schemadoc

import (
	"fmt"
	"strings"

	"github.com/reoring/bounded"
	"github.com/reoring/bounded/internal/docnode"
	"github.com/reoring/bounded/jsonschema"
)

type importer struct {
	resolve resolver
	d       *simpleDiag

	// stack holds the $refs on the current expansion chain plus those the
	// enclosing fields were expanded from; a ref seen twice on it is a cycle.
	stack  []string
	active map[string]bool

	// expanded collects the refs resolved by the running normalize call.
	expanded []string
}

func newImporter(r resolver, d *simpleDiag) *importer {
	return &importer{resolve: r, d: d, active: map[string]bool{}}
}

func (im *importer) push(ref string) {
	im.stack = append(im.stack, ref)
	im.active[ref] = true
}

func (im *importer) pop() {
	ref := im.stack[len(im.stack)-1]
	im.stack = im.stack[:len(im.stack)-1]
	delete(im.active, ref)
}

// expand normalizes s and keeps the refs it was built from active until the
// caller leaves, so nested properties referring back to them are cycles.
func (im *importer) expand(s *jsonschema.Schema, at string) (*jsonschema.Schema, error) {
	start := len(im.expanded)
	out, err := im.normalize(s, at)
	refs := append([]string(nil), im.expanded[start:]...)
	im.expanded = im.expanded[:start]
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		im.push(ref)
	}
	return out, nil
}

// leave pops the refs pushed since mark.
func (im *importer) leave(mark int) {
	for _, ref := range im.stack[mark:] {
		delete(im.active, ref)
	}
	im.stack = im.stack[:mark]
}

func (im *importer) root(s *jsonschema.Schema, name string) (*bounded.Schema, error) {
	defer im.leave(len(im.stack))
	s, err := im.expand(s, "")
	if err != nil {
		return nil, err
	}
	if t := s.Type.NonNull(); len(t) > 0 && (len(t) != 1 || t[0] != "object") {
		return nil, fmt.Errorf("schemadoc: root schema must be an object, got type %v", []string(s.Type))
	}
	if s.Properties.Len() == 0 {
		im.d.warnf("root schema declares no properties")
	}
	return im.object(s, name, "")
}

func (im *importer) object(s *jsonschema.Schema, name, at string) (*bounded.Schema, error) {
	fields := make([]bounded.Field, 0, s.Properties.Len())
	for _, key := range s.Properties.Keys() {
		ps, _ := s.Properties.Get(key)
		f, err := im.field(key, ps, joinPath(at, key))
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	out, err := bounded.NewSchema(name, fields...)
	if err != nil {
		return nil, fmt.Errorf("schemadoc: %s: %w", label(at), err)
	}
	return out, nil
}

// normalize expands $ref, merges allOf and collapses anyOf/oneOf with a
// single non-null branch. The result carries no composition keywords
// except multi-branch unions.
func (im *importer) normalize(s *jsonschema.Schema, at string) (*jsonschema.Schema, error) {
	if s.Ref != "" {
		ref := s.Ref
		if im.active[ref] {
			return nil, fmt.Errorf("schemadoc: %s: cyclic $ref %q", label(at), ref)
		}
		target, err := im.resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("schemadoc: %s: %w", label(at), err)
		}
		im.push(ref)
		base, err := im.normalize(target, at)
		im.pop()
		im.expanded = append(im.expanded, ref)
		if err != nil {
			return nil, err
		}
		own := *s
		own.Ref = ""
		if base.Title == "" {
			base = withTitle(base, refName(ref))
		}
		s = merge(base, &own)
	}
	if len(s.AllOf) > 0 {
		acc := &jsonschema.Schema{}
		for i, br := range s.AllOf {
			n, err := im.normalize(br, fmt.Sprintf("%s[allOf %d]", at, i))
			if err != nil {
				return nil, err
			}
			acc = merge(acc, n)
		}
		own := *s
		own.AllOf = nil
		s = merge(acc, &own)
	}
	for _, union := range [][]*jsonschema.Schema{s.AnyOf, s.OneOf} {
		if len(union) == 0 {
			continue
		}
		var keep []*jsonschema.Schema
		null := false
		for _, br := range union {
			n, err := im.normalize(br, at)
			if err != nil {
				return nil, err
			}
			if len(n.Type) > 0 && len(n.Type.NonNull()) == 0 {
				null = true
				continue
			}
			keep = append(keep, n)
		}
		if len(keep) != 1 {
			// Several alternatives have no single constraint model.
			continue
		}
		own := *s
		own.AnyOf, own.OneOf = nil, nil
		own.Nullable = own.Nullable || null
		s = merge(keep[0], &own)
	}
	return s, nil
}

func (im *importer) field(name string, raw *jsonschema.Schema, at string) (bounded.Field, error) {
	defer im.leave(len(im.stack))
	s, err := im.expand(raw, at)
	if err != nil {
		return bounded.Field{}, err
	}
	f := bounded.Field{Name: name, Nullable: s.Nullable || s.Type.Has("null")}
	if s.HasDefault {
		f.Default, f.HasDefault = s.Default, true
	}
	types := s.Type.NonNull()

	switch {
	case len(s.AnyOf) > 0 || len(s.OneOf) > 0:
		im.d.warnf("%s: union with several alternatives imported as opaque", at)
		f.Kind, f.Type = bounded.KindOpaque, "union"
	case s.HasConst:
		f.Kind, f.Type, f.Values = bounded.KindLiteral, "const", []any{s.Const}
	case len(s.Enum) > 0:
		for _, v := range s.Enum {
			if v == nil {
				f.Nullable = true
				continue
			}
			f.Values = append(f.Values, v)
		}
		f.Kind, f.Type = bounded.KindLiteral, "enum"
		if len(f.Values) == 0 {
			return f, fmt.Errorf("schemadoc: %s: enum has no non-null values", at)
		}
	case s.IntOrString:
		f.Kind, f.Type = bounded.KindOpaque, "int-or-string"
	case len(types) > 1:
		im.d.warnf("%s: multiple types %v imported as opaque", at, types)
		f.Kind, f.Type = bounded.KindOpaque, strings.Join(types, "|")
	case len(types) == 1 && types[0] == "boolean":
		f.Kind, f.Type, f.Values = bounded.KindLiteral, "boolean", []any{false, true}
	case len(types) == 1 && (types[0] == "integer" || types[0] == "number"):
		f.Kind, f.Type = bounded.KindNumeric, types[0]
		f.Integer = types[0] == "integer"
		f.Lower = bounded.FoldBounds(s.Minimum, s.ExclusiveMinimum, true)
		f.Upper = bounded.FoldBounds(s.Maximum, s.ExclusiveMaximum, false)
	case (len(types) == 0 || types[0] == "object") && s.Properties.Len() > 0:
		typeName := s.Title
		if typeName == "" {
			typeName = name
		}
		nested, err := im.object(s, typeName, at)
		if err != nil {
			return f, err
		}
		f.Kind, f.Type, f.Schema = bounded.KindNested, typeName, nested
	case len(types) == 1 && types[0] == "string":
		f.Kind, f.Type, f.MaxLength = bounded.KindOpaque, "string", s.MaxLength
	case len(types) == 1 && types[0] == "array":
		f.Kind, f.Type, f.MaxLength = bounded.KindOpaque, "array", s.MaxItems
	case len(types) == 1 && types[0] == "object":
		if s.AdditionalProperties != nil {
			im.d.warnf("%s: map schema (additionalProperties) imported as opaque", at)
		}
		f.Kind, f.Type = bounded.KindOpaque, "object"
	default:
		f.Kind, f.Type = bounded.KindOpaque, "any"
	}
	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("schemadoc: %s: %w", at, err)
	}
	return f, nil
}

// merge overlays the keywords set in over onto a copy of base.
func merge(base, over *jsonschema.Schema) *jsonschema.Schema {
	out := *base
	if over.Title != "" {
		out.Title = over.Title
	}
	if over.Description != "" {
		out.Description = over.Description
	}
	if len(over.Type) > 0 {
		out.Type = over.Type
	}
	if over.Format != "" {
		out.Format = over.Format
	}
	if len(over.Enum) > 0 {
		out.Enum = over.Enum
	}
	if over.HasConst {
		out.Const, out.HasConst = over.Const, true
	}
	if over.HasDefault {
		out.Default, out.HasDefault = over.Default, true
	}
	out.Nullable = out.Nullable || over.Nullable
	out.IntOrString = out.IntOrString || over.IntOrString
	for _, p := range []struct{ dst, src **float64 }{
		{&out.Minimum, &over.Minimum},
		{&out.Maximum, &over.Maximum},
		{&out.ExclusiveMinimum, &over.ExclusiveMinimum},
		{&out.ExclusiveMaximum, &over.ExclusiveMaximum},
	} {
		if *p.src != nil {
			*p.dst = *p.src
		}
	}
	if over.MaxLength != nil {
		out.MaxLength = over.MaxLength
	}
	if over.MaxItems != nil {
		out.MaxItems = over.MaxItems
	}
	if over.Properties.Len() > 0 {
		props := jsonschema.NewProperties()
		for _, k := range out.Properties.Keys() {
			v, _ := out.Properties.Get(k)
			props.Set(k, v)
		}
		for _, k := range over.Properties.Keys() {
			v, _ := over.Properties.Get(k)
			props.Set(k, v)
		}
		out.Properties = props
	}
	if len(over.Required) > 0 {
		out.Required = append(append([]string(nil), out.Required...), over.Required...)
	}
	if over.AdditionalProperties != nil {
		out.AdditionalProperties = over.AdditionalProperties
	}
	if over.Items != nil {
		out.Items = over.Items
	}
	if len(over.AnyOf) > 0 {
		out.AnyOf = over.AnyOf
	}
	if len(over.OneOf) > 0 {
		out.OneOf = over.OneOf
	}
	if len(over.AllOf) > 0 {
		out.AllOf = over.AllOf
	}
	return &out
}

func withTitle(s *jsonschema.Schema, title string) *jsonschema.Schema {
	out := *s
	out.Title = title
	return &out
}

func refName(ref string) string {
	i := strings.LastIndex(ref, "/")
	if i < 0 {
		return ""
	}
	return docnode.UnescapeToken(ref[i+1:])
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func label(at string) string {
	if at == "" {
		return "root"
	}
	return at
}
