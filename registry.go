package bounded

import (
	"github.com/sirupsen/logrus"
)

// Registry dispatches fields to the first handler that supports them.
// A registry is immutable once built and safe for concurrent use; With
// derives a new registry instead of mutating the receiver.
type Registry struct {
	handlers []Handler
}

// NewRegistry builds a registry consulting handlers in the given order.
func NewRegistry(handlers ...Handler) *Registry {
	return &Registry{handlers: append([]Handler(nil), handlers...)}
}

// DefaultHandlers returns the handlers of the default registry in priority
// order: numeric, literal, enum, nested.
func DefaultHandlers() []Handler {
	return []Handler{NumericHandler{}, LiteralHandler{}, EnumHandler{}, NestedHandler{}}
}

var defaultRegistry = NewRegistry(DefaultHandlers()...)

// Default returns the process-wide default registry.
func Default() *Registry { return defaultRegistry }

// With returns a copy of r with h inserted at priority (0 is consulted
// first). A negative or out-of-range priority appends h.
func (r *Registry) With(h Handler, priority int) *Registry {
	hs := make([]Handler, 0, len(r.handlers)+1)
	if priority < 0 || priority >= len(r.handlers) {
		hs = append(hs, r.handlers...)
		hs = append(hs, h)
		return &Registry{handlers: hs}
	}
	hs = append(hs, r.handlers[:priority]...)
	hs = append(hs, h)
	hs = append(hs, r.handlers[priority:]...)
	return &Registry{handlers: hs}
}

// Handlers returns the handlers in priority order.
func (r *Registry) Handlers() []Handler { return append([]Handler(nil), r.handlers...) }

// HandlerFor returns the first handler supporting f, or nil.
func (r *Registry) HandlerFor(f Field) Handler {
	for _, h := range r.handlers {
		if h.Supports(f) {
			return h
		}
	}
	return nil
}

// CheckFieldBoundedness reports whether f is bounded. Fields no handler
// supports are unbounded. Override bounds apply; constants never make a
// field bounded. An invalid override table yields false.
func (r *Registry) CheckFieldBoundedness(f Field, opts ...Opt) bool {
	node, err := compileFieldOverrides(pickOpt(opts).Overrides, f)
	if err != nil {
		logrus.Warnf("bounded: %v", err)
		return false
	}
	w := &walker{r: r, mode: modeCheck}
	return w.fieldBounded(f.Name, f, node)
}

// CheckModelBoundedness reports whether every field of s, at every nesting
// level, is bounded.
func (r *Registry) CheckModelBoundedness(s *Schema, opts ...Opt) bool {
	if s == nil {
		return false
	}
	node, err := compileOverrides(pickOpt(opts).Overrides, s)
	if err != nil {
		logrus.Warnf("bounded: %v", err)
		return false
	}
	w := &walker{r: r, mode: modeCheck}
	return w.modelBounded("", s, node)
}

// FirstUnbounded returns the dotted path of the first unbounded field of s
// in declaration order. ok is false when s is bounded.
func (r *Registry) FirstUnbounded(s *Schema, opts ...Opt) (path string, ok bool) {
	if s == nil {
		return "", false
	}
	node, err := compileOverrides(pickOpt(opts).Overrides, s)
	if err != nil {
		logrus.Warnf("bounded: %v", err)
		return "", false
	}
	w := &walker{r: r, mode: modeCheck}
	path = w.firstUnbounded("", s, node)
	return path, path != ""
}

// FieldDimensions returns the number of unit values needed to sample f.
func (r *Registry) FieldDimensions(f Field, opts ...Opt) (int, error) {
	o := pickOpt(opts)
	node, err := compileFieldOverrides(o.Overrides, f)
	if err != nil {
		return 0, err
	}
	w := &walker{r: r, mode: modeFor(o.Constants)}
	return w.fieldDims(f.Name, f, node)
}

// ModelDimensions returns the number of unit values needed to sample s:
// the sum over its fields, nested schemas included.
func (r *Registry) ModelDimensions(s *Schema, opts ...Opt) (int, error) {
	o := pickOpt(opts)
	node, err := compileOverrides(o.Overrides, s)
	if err != nil {
		return 0, err
	}
	w := &walker{r: r, mode: modeFor(o.Constants)}
	return w.modelDims("", s, node)
}

// SampleField maps u onto a value of f. len(u) must equal FieldDimensions.
func (r *Registry) SampleField(u []float64, f Field, opts ...Opt) (any, error) {
	o := pickOpt(opts)
	node, err := compileFieldOverrides(o.Overrides, f)
	if err != nil {
		return nil, err
	}
	w := &walker{r: r, mode: modeFor(o.Constants)}
	d, err := w.fieldDims(f.Name, f, node)
	if err != nil {
		return nil, err
	}
	if d != len(u) {
		return nil, dimensionMismatchError(f.Name, d, len(u))
	}
	if err := checkUnit(u); err != nil {
		return nil, err
	}
	return w.sampleField(u, f.Name, f, node)
}

// SampleModel maps u onto a new instance of s. Unit values are consumed in
// field declaration order, depth first. Every error is reported before any
// value or default factory is produced.
func (r *Registry) SampleModel(u []float64, s *Schema, opts ...Opt) (*Object, error) {
	o := pickOpt(opts)
	node, err := compileOverrides(o.Overrides, s)
	if err != nil {
		return nil, err
	}
	w := &walker{r: r, mode: modeFor(o.Constants)}
	d, err := w.modelDims("", s, node)
	if err != nil {
		return nil, err
	}
	if d != len(u) {
		return nil, dimensionMismatchError("", d, len(u))
	}
	if err := checkUnit(u); err != nil {
		return nil, err
	}
	return w.sampleModel(u, "", s, node)
}
