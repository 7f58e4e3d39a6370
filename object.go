package bounded

import (
	"bytes"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Object is a sampled instance: field values keyed by name, in schema
// declaration order. Nested schemas produce nested *Object values.
type Object struct {
	schema string
	keys   []string
	values map[string]any
}

func newObject(schema string, capacity int) *Object {
	return &Object{schema: schema, keys: make([]string, 0, capacity), values: make(map[string]any, capacity)}
}

func (o *Object) set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// SchemaName returns the name of the schema the object was sampled from.
func (o *Object) SchemaName() string { return o.schema }

// Keys returns field names in declaration order.
func (o *Object) Keys() []string { return append([]string(nil), o.keys...) }

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.keys) }

// Get returns the value of a field.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Map converts the object into plain maps, recursively.
func (o *Object) Map() map[string]any {
	out := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		v := o.values[k]
		if n, ok := v.(*Object); ok {
			out[k] = n.Map()
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

func (o *Object) clone() *Object {
	if o == nil {
		return nil
	}
	c := newObject(o.schema, len(o.keys))
	for _, k := range o.keys {
		c.set(k, cloneValue(o.values[k]))
	}
	return c
}

// MarshalJSON encodes the object with keys in declaration order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the object as an ordered mapping node.
func (o *Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range o.keys {
		kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		vn := &yaml.Node{}
		if err := vn.Encode(o.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, kn, vn)
	}
	return node, nil
}
