package bounded

// NestedHandler handles fields whose type is itself a schema. The nested
// schema is traversed with the same policy and the override subtree below
// the field.
type NestedHandler struct{}

func (NestedHandler) Supports(f Field) bool { return f.Kind == KindNested && f.Schema != nil }

func (NestedHandler) Bounded(f Field, sc Scope) bool { return sc.ModelBounded(f.Schema) }

func (NestedHandler) Dimensions(f Field, sc Scope) (int, error) {
	return sc.ModelDimensions(f.Schema)
}

func (NestedHandler) Sample(u []float64, f Field, sc Scope) (any, error) {
	return sc.SampleModel(u, f.Schema)
}

// Explain returns the error of the first nested field that cannot be
// dimensioned.
func (NestedHandler) Explain(f Field, sc Scope) error {
	_, err := sc.ModelDimensions(f.Schema)
	return err
}
