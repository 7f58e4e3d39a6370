package bounded

// The functions below operate on the default registry.

// CheckFieldBoundedness reports whether f is bounded.
func CheckFieldBoundedness(f Field, opts ...Opt) bool {
	return defaultRegistry.CheckFieldBoundedness(f, opts...)
}

// CheckModelBoundedness reports whether every field of s is bounded.
func CheckModelBoundedness(s *Schema, opts ...Opt) bool {
	return defaultRegistry.CheckModelBoundedness(s, opts...)
}

// FirstUnbounded returns the path of the first unbounded field of s.
func FirstUnbounded(s *Schema, opts ...Opt) (string, bool) {
	return defaultRegistry.FirstUnbounded(s, opts...)
}

// FieldDimensions returns the number of unit values needed to sample f.
func FieldDimensions(f Field, opts ...Opt) (int, error) {
	return defaultRegistry.FieldDimensions(f, opts...)
}

// ModelDimensions returns the number of unit values needed to sample s.
func ModelDimensions(s *Schema, opts ...Opt) (int, error) {
	return defaultRegistry.ModelDimensions(s, opts...)
}

// SampleField maps u onto a value of f.
func SampleField(u []float64, f Field, opts ...Opt) (any, error) {
	return defaultRegistry.SampleField(u, f, opts...)
}

// SampleModel maps u onto a new instance of s.
func SampleModel(u []float64, s *Schema, opts ...Opt) (*Object, error) {
	return defaultRegistry.SampleModel(u, s, opts...)
}
