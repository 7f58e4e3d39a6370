package bounded

import "math"

// NumericHandler handles integer and real fields. A numeric field is bounded
// when both bounds are present, finite and describe a non-empty interval.
// Exclusive bounds are mapped as if they were inclusive.
type NumericHandler struct{}

func (NumericHandler) Supports(f Field) bool { return f.Kind == KindNumeric }

func (NumericHandler) Bounded(f Field, _ Scope) bool {
	_, _, ok := numericInterval(f)
	return ok
}

func (h NumericHandler) Dimensions(f Field, sc Scope) (int, error) {
	if !h.Bounded(f, sc) {
		return 0, unboundedFieldError(sc.Path(), f)
	}
	return 1, nil
}

func (h NumericHandler) Sample(u []float64, f Field, sc Scope) (any, error) {
	if len(u) != 1 {
		return nil, dimensionMismatchError(sc.Path(), 1, len(u))
	}
	lo, hi, ok := numericInterval(f)
	if !ok {
		return nil, unboundedFieldError(sc.Path(), f)
	}
	if f.Integer {
		return sampleInt(u[0], lo, hi), nil
	}
	return sampleReal(u[0], lo, hi), nil
}

// numericInterval returns the closed interval sampled for f. Integer
// intervals are narrowed to their integral endpoints within int64.
func numericInterval(f Field) (lo, hi float64, ok bool) {
	if f.Lower == nil || f.Upper == nil {
		return 0, 0, false
	}
	lo, hi = f.Lower.Value, f.Upper.Value
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, false
	}
	if f.Integer {
		lo, hi = math.Max(math.Ceil(lo), minInt64), math.Min(math.Floor(hi), maxInt64)
	}
	if lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// Integer samples are int64; intervals are cut to the part it can hold.
const (
	minInt64 = -(1 << 63)
	maxInt64 = 1<<63 - 1024 // largest float64 below 2^63
)

func sampleReal(u, lo, hi float64) float64 {
	if u >= 1 {
		return hi
	}
	var v float64
	if w := hi - lo; math.IsInf(w, 0) {
		v = lo*(1-u) + hi*u
	} else {
		v = lo + u*w
	}
	return math.Min(math.Max(v, lo), hi)
}

// sampleInt splits [lo, hi] into hi-lo+1 equal buckets; u=1 lands in the last.
func sampleInt(u, lo, hi float64) int64 {
	n := hi - lo + 1
	idx := math.Min(math.Floor(u*n), n-1)
	return int64(math.Min(lo+idx, hi))
}
