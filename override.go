package bounded

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Override adjusts a field at call time. Bounds are merged into the declared
// constraints with the override winning; a default or default factory turns
// the field into a zero-dimension constant.
type Override struct {
	Ge, Le, Gt, Lt *float64

	Default        any
	HasDefault     bool
	DefaultFactory func() any
}

// Range overrides both bounds with an inclusive interval.
func Range(lo, hi float64) Override { return Override{Ge: &lo, Le: &hi} }

// Between overrides both bounds with an exclusive interval.
func Between(lo, hi float64) Override { return Override{Gt: &lo, Lt: &hi} }

// Const pins the field to v.
func Const(v any) Override { return Override{Default: v, HasDefault: true} }

// Factory pins the field to a value produced by fn on each sample.
func Factory(fn func() any) Override { return Override{DefaultFactory: fn} }

func (o Override) hasDefault() bool { return o.HasDefault || o.Default != nil }

// IsConstant reports whether the override carries a default or factory.
func (o Override) IsConstant() bool { return o.hasDefault() || o.DefaultFactory != nil }

func (o Override) hasBounds() bool { return o.Ge != nil || o.Le != nil || o.Gt != nil || o.Lt != nil }

// Validate rejects an override that sets both a default and a default factory.
func (o Override) Validate() error {
	if o.hasDefault() && o.DefaultFactory != nil {
		return fmt.Errorf("default and default factory are mutually exclusive")
	}
	for _, p := range []*float64{o.Ge, o.Le, o.Gt, o.Lt} {
		if p != nil && math.IsNaN(*p) {
			return fmt.Errorf("bound is NaN")
		}
	}
	return nil
}

func (o Override) constant() any {
	if o.DefaultFactory != nil {
		return o.DefaultFactory()
	}
	return cloneValue(o.Default)
}

func (o Override) lower() *Bound { return FoldBounds(o.Ge, o.Gt, true) }

func (o Override) upper() *Bound { return FoldBounds(o.Le, o.Lt, false) }

// apply merges the override's bounds into f. Bounds only affect numeric
// fields.
func (o Override) apply(f Field) Field {
	if f.Kind != KindNumeric || !o.hasBounds() {
		return f
	}
	if lo := o.lower(); lo != nil {
		f.Lower = lo
	}
	if hi := o.upper(); hi != nil {
		f.Upper = hi
	}
	return f
}

// Overrides maps dotted field paths ("inner.value") to overrides. A path
// naming a nested field overrides the whole subtree.
type Overrides map[string]Override

// Validate checks every override and resolves every path against s.
func (ov Overrides) Validate(s *Schema) error {
	_, err := compileOverrides(ov, s)
	return err
}

// overrideNode is one level of the compiled override trie, aligned with the
// schema tree.
type overrideNode struct {
	self     *Override
	children map[string]*overrideNode
}

func (n *overrideNode) child(name string) *overrideNode {
	if n == nil {
		return nil
	}
	return n.children[name]
}

func (n *overrideNode) override() *Override {
	if n == nil {
		return nil
	}
	return n.self
}

// compileOverrides resolves dotted paths against s. Every path must name a
// field; every non-final segment must name a nested field.
func compileOverrides(ov Overrides, s *Schema) (*overrideNode, error) {
	if len(ov) == 0 {
		return nil, nil
	}
	paths := make([]string, 0, len(ov))
	for p := range ov {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	root := &overrideNode{}
	var iss Issues
	for _, p := range paths {
		o := ov[p]
		if err := o.Validate(); err != nil {
			iss = AppendIssues(iss, overrideConfigError(p, err.Error()))
			continue
		}
		if err := root.insert(p, o, s); err != nil {
			iss = AppendIssues(iss, overrideConfigError(p, err.Error()))
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return root, nil
}

func (n *overrideNode) insert(path string, o Override, s *Schema) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	segs := strings.Split(path, ".")
	cur := n
	schema := s
	for i, seg := range segs {
		if schema == nil {
			return fmt.Errorf("%q is not a nested schema", strings.Join(segs[:i], "."))
		}
		f, ok := schema.Lookup(seg)
		if !ok {
			return fmt.Errorf("no field %q in %s", seg, schemaLabel(schema))
		}
		if cur.children == nil {
			cur.children = make(map[string]*overrideNode)
		}
		next, ok := cur.children[seg]
		if !ok {
			next = &overrideNode{}
			cur.children[seg] = next
		}
		cur = next
		schema = nil
		if f.Kind == KindNested {
			schema = f.Schema
		}
	}
	cur.self = &o
	return nil
}

// compileFieldOverrides compiles overrides for a lone field: the field's own name is
// the root path segment.
func compileFieldOverrides(ov Overrides, f Field) (*overrideNode, error) {
	if len(ov) == 0 {
		return nil, nil
	}
	root, err := compileOverrides(ov, &Schema{Name: f.Name, Fields: []Field{f}})
	if err != nil {
		return nil, err
	}
	return root.child(f.Name), nil
}

func schemaLabel(s *Schema) string {
	if s.Name == "" {
		return "schema"
	}
	return s.Name
}
