package bounded

// Handler decides boundedness, dimension count and sampling for the field
// kinds it supports. Dimensions and Sample are only called on fields for
// which Bounded returned true, except that Dimensions may be called on an
// unbounded field to obtain a precise error.
//
// Handlers must be stateless or immutable; a registry shares them between
// concurrent callers.
type Handler interface {
	Supports(f Field) bool
	Bounded(f Field, sc Scope) bool
	Dimensions(f Field, sc Scope) (int, error)
	// Sample maps exactly Dimensions(f) unit values to a value of f.
	Sample(u []float64, f Field, sc Scope) (any, error)
}

// explainer is implemented by handlers that can name the innermost cause of
// an unbounded field, such as a nested schema pointing at its own field.
type explainer interface {
	Explain(f Field, sc Scope) error
}

// Scope is the traversal context handed to handlers. It carries the dotted
// path of the current field, the constant policy and the override subtree
// below the field, so handlers of composite kinds can recurse with the same
// rules.
type Scope struct {
	w    *walker
	path string
	node *overrideNode
}

// Path returns the dotted path of the field being handled.
func (sc Scope) Path() string { return sc.path }

// Registry returns the registry driving the traversal.
func (sc Scope) Registry() *Registry { return sc.w.r }

// Constants returns the constant policy in effect. Boundedness checks run
// under ConstantsReject.
func (sc Scope) Constants() ConstantPolicy {
	if sc.w.mode == modeAllow {
		return ConstantsAllow
	}
	return ConstantsReject
}

// ModelBounded reports whether schema, nested at the current path, can be
// addressed by unit values. When constants are allowed this includes
// unbounded fields rescued by a default.
func (sc Scope) ModelBounded(schema *Schema) bool {
	if sc.w.mode == modeAllow {
		_, err := sc.w.modelDims(sc.path, schema, sc.node)
		return err == nil
	}
	return sc.w.modelBounded(sc.path, schema, sc.node)
}

// ModelDimensions counts the dimensions of schema nested at the current path.
func (sc Scope) ModelDimensions(schema *Schema) (int, error) {
	return sc.w.modelDims(sc.path, schema, sc.node)
}

// SampleModel builds an instance of schema nested at the current path.
func (sc Scope) SampleModel(u []float64, schema *Schema) (*Object, error) {
	return sc.w.sampleModel(u, sc.path, schema, sc.node)
}
