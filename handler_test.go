package bounded_test

import (
	"math"
	"testing"

	"github.com/reoring/bounded"
)

func TestNumeric_RealEndpointsAndContainment(t *testing.T) {
	f := realField("x", 0.1, 0.7)
	for _, tc := range []struct {
		u, want float64
	}{{0, 0.1}, {1, 0.7}} {
		v, err := bounded.SampleField([]float64{tc.u}, f)
		if err != nil || v != tc.want {
			t.Fatalf("u=%v: v=%v err=%v", tc.u, v, err)
		}
	}
	for i := 0; i <= 100; i++ {
		v, _ := bounded.SampleField([]float64{float64(i) / 100}, f)
		if x := v.(float64); x < 0.1 || x > 0.7 {
			t.Fatalf("out of range: %v", x)
		}
	}
}

func TestNumeric_IntegerReachabilityAndMonotonicity(t *testing.T) {
	f := integer("count", 1, 10)
	seen := map[int64]bool{}
	prev := int64(math.MinInt64)
	for i := 0; i <= 1000; i++ {
		v, err := bounded.SampleField([]float64{float64(i) / 1000}, f)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		n := v.(int64)
		if n < prev {
			t.Fatalf("not monotone at %d: %d < %d", i, n, prev)
		}
		prev = n
		seen[n] = true
	}
	for n := int64(1); n <= 10; n++ {
		if !seen[n] {
			t.Fatalf("value %d unreachable", n)
		}
	}
	if v, _ := bounded.SampleField([]float64{0.9}, f); v != int64(10) {
		t.Fatalf("u=0.9 -> %v", v)
	}
}

func TestNumeric_IntegerFractionalBounds(t *testing.T) {
	f := bounded.Field{Name: "n", Kind: bounded.KindNumeric, Integer: true, Lower: bounded.Inclusive(0.5), Upper: bounded.Inclusive(3.5)}
	lo, _ := bounded.SampleField([]float64{0}, f)
	hi, _ := bounded.SampleField([]float64{1}, f)
	if lo != int64(1) || hi != int64(3) {
		t.Fatalf("lo=%v hi=%v", lo, hi)
	}
	empty := f
	empty.Lower, empty.Upper = bounded.Inclusive(0.2), bounded.Inclusive(0.8)
	if bounded.CheckFieldBoundedness(empty) {
		t.Fatalf("interval without integers must be unbounded")
	}
}

func TestNumeric_Unbounded(t *testing.T) {
	cases := map[string]bounded.Field{
		"no bounds":  {Name: "a", Kind: bounded.KindNumeric},
		"lower only": {Name: "b", Kind: bounded.KindNumeric, Lower: bounded.Inclusive(0)},
		"infinite":   {Name: "c", Kind: bounded.KindNumeric, Lower: bounded.Inclusive(0), Upper: bounded.Inclusive(math.Inf(1))},
		"inverted":   {Name: "d", Kind: bounded.KindNumeric, Lower: bounded.Inclusive(2), Upper: bounded.Inclusive(1)},
	}
	for name, f := range cases {
		if bounded.CheckFieldBoundedness(f) {
			t.Fatalf("%s: expected unbounded", name)
		}
	}
}

func TestNumeric_ExclusiveBoundsMappedClosed(t *testing.T) {
	f := bounded.Field{Name: "p", Kind: bounded.KindNumeric, Lower: bounded.Exclusive(0), Upper: bounded.Exclusive(1)}
	v, err := bounded.SampleField([]float64{1}, f)
	if err != nil || v != 1.0 {
		t.Fatalf("v=%v err=%v", v, err)
	}
}

func TestLiteral_Buckets(t *testing.T) {
	f := literal("mode", "fast", "slow", "medium")
	cases := []struct {
		u    float64
		want string
	}{{0, "fast"}, {0.33, "fast"}, {0.34, "slow"}, {0.5, "slow"}, {0.67, "medium"}, {1, "medium"}}
	for _, tc := range cases {
		v, err := bounded.SampleField([]float64{tc.u}, f)
		if err != nil || v != tc.want {
			t.Fatalf("u=%v: v=%v err=%v", tc.u, v, err)
		}
	}
	if bounded.CheckFieldBoundedness(literal("none")) {
		t.Fatalf("empty literal set must be unbounded")
	}
}

type color int

func TestEnum_Members(t *testing.T) {
	f := bounded.Field{Name: "color", Type: "color", Kind: bounded.KindEnum, Values: []any{color(0), color(1)}}
	d, err := bounded.FieldDimensions(f)
	if err != nil || d != 1 {
		t.Fatalf("dims=%d err=%v", d, err)
	}
	v, _ := bounded.SampleField([]float64{0.75}, f)
	if v != color(1) {
		t.Fatalf("v=%v", v)
	}
}

func TestNested_NilSchemaIsUnbounded(t *testing.T) {
	f := bounded.Field{Name: "inner", Kind: bounded.KindNested}
	if bounded.CheckFieldBoundedness(f) {
		t.Fatalf("nested field without schema must be unbounded")
	}
}

func TestNumeric_ExtremeBoundsStayInRange(t *testing.T) {
	wide := integer("n", 0, math.MaxInt64)
	for _, u := range []float64{0, 0.5, 1} {
		v, err := bounded.SampleField([]float64{u}, wide)
		if err != nil {
			t.Fatalf("u=%v: %v", u, err)
		}
		if n := v.(int64); n < 0 {
			t.Fatalf("u=%v: %d below lower bound", u, n)
		}
	}
	if v, _ := bounded.SampleField([]float64{1}, wide); v.(int64) < math.MaxInt64/2 {
		t.Fatalf("u=1 should land near the upper bound, got %v", v)
	}
	if bounded.CheckFieldBoundedness(integer("n", 1e19, 2e19)) {
		t.Fatalf("integer interval beyond int64 cannot be sampled")
	}

	full := realField("x", -math.MaxFloat64, math.MaxFloat64)
	for _, tc := range []struct {
		u, want float64
	}{{0, -math.MaxFloat64}, {0.5, 0}, {1, math.MaxFloat64}} {
		v, err := bounded.SampleField([]float64{tc.u}, full)
		if err != nil || v != tc.want {
			t.Fatalf("u=%v: v=%v err=%v", tc.u, v, err)
		}
	}
}
