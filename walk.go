package bounded

import (
	"math"

	"github.com/sirupsen/logrus"
)

type walkMode int

const (
	modeCheck  walkMode = iota // strict boundedness, constants never count
	modeAllow                  // dimensions/sampling with ConstantsAllow
	modeReject                 // dimensions/sampling with ConstantsReject
)

func modeFor(p ConstantPolicy) walkMode {
	if p == ConstantsReject {
		return modeReject
	}
	return modeAllow
}

// walker traverses a schema tree. It holds no cursor: sampling passes an
// explicit window of unit values to each field.
//
// A walker lives for one call and memoizes the boundedness and dimensions
// of each nested subtree it visits.
type walker struct {
	r    *Registry
	mode walkMode

	dims    map[subtree]dimsResult
	bounded map[subtree]bool
}

// subtree identifies a nested schema within one traversal.
type subtree struct {
	path   string
	schema *Schema
	node   *overrideNode
}

type dimsResult struct {
	n   int
	err error
}

func (w *walker) scope(path string, node *overrideNode) Scope {
	return Scope{w: w, path: path, node: node}
}

func (w *walker) resolve(f Field, node *overrideNode) (Field, *Override) {
	o := node.override()
	if o == nil {
		return f, nil
	}
	return o.apply(f), o
}

func (w *walker) handlerFor(path string, f Field) Handler {
	h := w.r.HandlerFor(f)
	if h == nil {
		logrus.Debugf("bounded: no handler for %s (%s kind %s), treating as unbounded", path, f.TypeName(), f.Kind)
	}
	return h
}

func (w *walker) overrideConstant(o *Override) bool {
	return w.mode == modeAllow && o != nil && o.IsConstant()
}

func (w *walker) fieldBounded(path string, f Field, node *overrideNode) bool {
	eff, _ := w.resolve(f, node)
	h := w.handlerFor(path, eff)
	return h != nil && h.Bounded(eff, w.scope(path, node))
}

func (w *walker) modelBounded(prefix string, s *Schema, node *overrideNode) bool {
	key := subtree{prefix, s, node}
	if ok, hit := w.bounded[key]; hit {
		return ok
	}
	ok := true
	for _, f := range s.Fields {
		if !w.fieldBounded(joinPath(prefix, f.Name), f, node.child(f.Name)) {
			ok = false
			break
		}
	}
	if w.bounded == nil {
		w.bounded = make(map[subtree]bool)
	}
	w.bounded[key] = ok
	return ok
}

// firstUnbounded returns the path of the first unbounded field, descending
// into nested schemas to name the innermost offender.
func (w *walker) firstUnbounded(prefix string, s *Schema, node *overrideNode) string {
	for _, f := range s.Fields {
		path := joinPath(prefix, f.Name)
		child := node.child(f.Name)
		if w.fieldBounded(path, f, child) {
			continue
		}
		eff, _ := w.resolve(f, child)
		if eff.Kind == KindNested && eff.Schema != nil {
			if inner := w.firstUnbounded(path, eff.Schema, child); inner != "" {
				return inner
			}
		}
		return path
	}
	return ""
}

// unresolved reports why a field that is neither bounded nor a usable
// constant cannot be dimensioned.
func (w *walker) unresolved(path string, eff Field, h Handler, sc Scope) error {
	if ex, ok := h.(explainer); ok {
		if err := ex.Explain(eff, sc); err != nil {
			return err
		}
	}
	if w.mode == modeReject {
		return unboundedFieldError(path, eff)
	}
	return missingDefaultError(path, eff)
}

func (w *walker) fieldDims(path string, f Field, node *overrideNode) (int, error) {
	eff, o := w.resolve(f, node)
	if w.overrideConstant(o) {
		return 0, nil
	}
	sc := w.scope(path, node)
	h := w.handlerFor(path, eff)
	if h != nil && h.Bounded(eff, sc) {
		return h.Dimensions(eff, sc)
	}
	if w.mode == modeAllow && eff.HasConstant() {
		return 0, nil
	}
	return 0, w.unresolved(path, eff, h, sc)
}

func (w *walker) modelDims(prefix string, s *Schema, node *overrideNode) (int, error) {
	if s == nil {
		return 0, invalidSchemaError(prefix, "nil schema")
	}
	key := subtree{prefix, s, node}
	if r, hit := w.dims[key]; hit {
		return r.n, r.err
	}
	total, err := w.sumDims(prefix, s, node)
	if w.dims == nil {
		w.dims = make(map[subtree]dimsResult)
	}
	w.dims[key] = dimsResult{n: total, err: err}
	return total, err
}

func (w *walker) sumDims(prefix string, s *Schema, node *overrideNode) (int, error) {
	total := 0
	for _, f := range s.Fields {
		d, err := w.fieldDims(joinPath(prefix, f.Name), f, node.child(f.Name))
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}

func (w *walker) sampleField(u []float64, path string, f Field, node *overrideNode) (any, error) {
	eff, o := w.resolve(f, node)
	if w.overrideConstant(o) {
		if len(u) != 0 {
			return nil, dimensionMismatchError(path, 0, len(u))
		}
		return o.constant(), nil
	}
	sc := w.scope(path, node)
	h := w.handlerFor(path, eff)
	if h != nil && h.Bounded(eff, sc) {
		d, err := h.Dimensions(eff, sc)
		if err != nil {
			return nil, err
		}
		if len(u) != d {
			return nil, dimensionMismatchError(path, d, len(u))
		}
		return h.Sample(u, eff, sc)
	}
	if w.mode == modeAllow && eff.HasConstant() {
		if len(u) != 0 {
			return nil, dimensionMismatchError(path, 0, len(u))
		}
		return eff.Constant(), nil
	}
	return nil, w.unresolved(path, eff, h, sc)
}

func (w *walker) sampleModel(u []float64, prefix string, s *Schema, node *overrideNode) (*Object, error) {
	if s == nil {
		return nil, invalidSchemaError(prefix, "nil schema")
	}
	obj := newObject(s.Name, len(s.Fields))
	off := 0
	for _, f := range s.Fields {
		path := joinPath(prefix, f.Name)
		child := node.child(f.Name)
		d, err := w.fieldDims(path, f, child)
		if err != nil {
			return nil, err
		}
		if off+d > len(u) {
			return nil, dimensionMismatchError(prefix, off+d, len(u))
		}
		v, err := w.sampleField(u[off:off+d], path, f, child)
		if err != nil {
			return nil, err
		}
		obj.set(f.Name, v)
		off += d
	}
	if off != len(u) {
		return nil, dimensionMismatchError(prefix, off, len(u))
	}
	return obj, nil
}

func checkUnit(u []float64) error {
	for i, v := range u {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return unitRangeError(i, v)
		}
	}
	return nil
}
