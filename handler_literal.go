package bounded

import "math"

// LiteralHandler handles fields restricted to a declared set of literal
// constants. Values are addressed in declaration order.
type LiteralHandler struct{}

func (LiteralHandler) Supports(f Field) bool { return f.Kind == KindLiteral }

func (LiteralHandler) Bounded(f Field, _ Scope) bool { return len(f.Values) > 0 }

func (h LiteralHandler) Dimensions(f Field, sc Scope) (int, error) {
	return choiceDimensions(f, sc)
}

func (LiteralHandler) Sample(u []float64, f Field, sc Scope) (any, error) {
	return sampleChoice(u, f, sc)
}

// EnumHandler handles fields whose type is an enumeration; members are
// addressed in declaration order.
type EnumHandler struct{}

func (EnumHandler) Supports(f Field) bool { return f.Kind == KindEnum }

func (EnumHandler) Bounded(f Field, _ Scope) bool { return len(f.Values) > 0 }

func (EnumHandler) Dimensions(f Field, sc Scope) (int, error) {
	return choiceDimensions(f, sc)
}

func (EnumHandler) Sample(u []float64, f Field, sc Scope) (any, error) {
	return sampleChoice(u, f, sc)
}

func choiceDimensions(f Field, sc Scope) (int, error) {
	if len(f.Values) == 0 {
		return 0, unboundedFieldError(sc.Path(), f)
	}
	return 1, nil
}

func sampleChoice(u []float64, f Field, sc Scope) (any, error) {
	if len(u) != 1 {
		return nil, dimensionMismatchError(sc.Path(), 1, len(u))
	}
	n := len(f.Values)
	if n == 0 {
		return nil, unboundedFieldError(sc.Path(), f)
	}
	return cloneValue(f.Values[choiceIndex(u[0], n)]), nil
}

// choiceIndex maps u onto n equal buckets: min(floor(u*n), n-1).
func choiceIndex(u float64, n int) int {
	i := int(math.Floor(u * float64(n)))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
