package bounded_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/bounded"
)

func realField(name string, lo, hi float64) bounded.Field {
	return bounded.Field{Name: name, Type: "float", Kind: bounded.KindNumeric, Lower: bounded.Inclusive(lo), Upper: bounded.Inclusive(hi)}
}

func integer(name string, lo, hi float64) bounded.Field {
	return bounded.Field{Name: name, Type: "int", Kind: bounded.KindNumeric, Integer: true, Lower: bounded.Inclusive(lo), Upper: bounded.Inclusive(hi)}
}

func literal(name string, values ...any) bounded.Field {
	return bounded.Field{Name: name, Type: "Literal", Kind: bounded.KindLiteral, Values: values}
}

func nested(name string, s *bounded.Schema) bounded.Field {
	return bounded.Field{Name: name, Type: s.Name, Kind: bounded.KindNested, Schema: s}
}

func str(name string) bounded.Field {
	return bounded.Field{Name: name, Type: "string", Kind: bounded.KindOpaque}
}

func configSchema() *bounded.Schema {
	return bounded.MustSchema("Config",
		literal("mode", "fast", "slow", "medium"),
		realField("threshold", 0, 1),
		integer("count", 1, 10),
	)
}

func TestSampleModel_Flat(t *testing.T) {
	s := configSchema()
	if !bounded.CheckModelBoundedness(s) {
		t.Fatalf("expected bounded")
	}
	d, err := bounded.ModelDimensions(s)
	if err != nil || d != 3 {
		t.Fatalf("dims=%d err=%v", d, err)
	}
	obj, err := bounded.SampleModel([]float64{0.5, 0.5, 0.9}, s)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	want := map[string]any{"mode": "slow", "threshold": 0.5, "count": int64(10)}
	if diff := cmp.Diff(want, obj.Map()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"mode", "threshold", "count"}, obj.Keys()); diff != "" {
		t.Fatalf("key order (-want +got):\n%s", diff)
	}
}

func TestSampleModel_NestedConsumesDepthFirst(t *testing.T) {
	inner := bounded.MustSchema("Inner", realField("value", 0, 10))
	outer := bounded.MustSchema("Outer", realField("x", 0, 1), nested("inner", inner))

	d, err := bounded.ModelDimensions(outer)
	if err != nil || d != 2 {
		t.Fatalf("dims=%d err=%v", d, err)
	}
	obj, err := bounded.SampleModel([]float64{0.5, 0.3}, outer)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	want := map[string]any{"x": 0.5, "inner": map[string]any{"value": 3.0}}
	if diff := cmp.Diff(want, obj.Map()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	in, _ := obj.Get("inner")
	if _, ok := in.(*bounded.Object); !ok {
		t.Fatalf("nested value should be *Object, got %T", in)
	}
}

func TestConstants_Policy(t *testing.T) {
	name := str("name")
	name.Default, name.HasDefault = "default_name", true
	s := bounded.MustSchema("WithName", realField("x", 0, 1), name)

	if bounded.CheckModelBoundedness(s) {
		t.Fatalf("string field must not be bounded")
	}
	_, err := bounded.ModelDimensions(s, bounded.Opt{Constants: bounded.ConstantsReject})
	if !errors.Is(err, bounded.ErrUnboundedField) {
		t.Fatalf("expected unbounded field error, got %v", err)
	}
	it, ok := bounded.AsIssue(err)
	if !ok || it.Path != "name" || it.Type != "string" {
		t.Fatalf("unexpected issue %+v", it)
	}

	d, err := bounded.ModelDimensions(s)
	if err != nil || d != 1 {
		t.Fatalf("dims=%d err=%v", d, err)
	}
	obj, err := bounded.SampleModel([]float64{0.5}, s)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"x": 0.5, "name": "default_name"}, obj.Map()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestConstants_MissingDefault(t *testing.T) {
	inner := bounded.MustSchema("Inner", bounded.Field{Name: "value", Type: "float", Kind: bounded.KindNumeric})
	outer := bounded.MustSchema("Outer", realField("x", 0, 1), nested("inner", inner))

	_, err := bounded.ModelDimensions(outer)
	if !errors.Is(err, bounded.ErrMissingDefault) {
		t.Fatalf("expected missing default, got %v", err)
	}
	it, _ := bounded.AsIssue(err)
	if it.Path != "inner.value" {
		t.Fatalf("expected innermost path, got %q", it.Path)
	}
	if !strings.Contains(err.Error(), "inner.value") || !strings.Contains(err.Error(), "float") {
		t.Fatalf("message should name field and type: %v", err)
	}

	_, err = bounded.ModelDimensions(outer, bounded.Opt{Constants: bounded.ConstantsReject})
	if it, _ := bounded.AsIssue(err); it.Code != bounded.CodeUnboundedField || it.Path != "inner.value" {
		t.Fatalf("expected unbounded at inner.value, got %v", err)
	}
	if p, ok := bounded.FirstUnbounded(outer); !ok || p != "inner.value" {
		t.Fatalf("first unbounded = %q %v", p, ok)
	}
}

func TestConstants_BoundedFieldIgnoresDeclaredDefault(t *testing.T) {
	x := realField("x", 0, 1)
	x.Default, x.HasDefault = 0.25, true
	d, err := bounded.FieldDimensions(x)
	if err != nil || d != 1 {
		t.Fatalf("dims=%d err=%v", d, err)
	}
	v, err := bounded.SampleField([]float64{1}, x)
	if err != nil || v != 1.0 {
		t.Fatalf("v=%v err=%v", v, err)
	}
}

func TestConstants_FactoryInvokedPerSample(t *testing.T) {
	calls := 0
	tags := bounded.Field{Name: "tags", Type: "list", Kind: bounded.KindOpaque, DefaultFactory: func() any {
		calls++
		return []any{}
	}}
	s := bounded.MustSchema("Tagged", realField("x", 0, 1), tags)
	a, err := bounded.SampleModel([]float64{0.1}, s)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	b, _ := bounded.SampleModel([]float64{0.1}, s)
	if calls != 2 {
		t.Fatalf("factory calls = %d, want 2", calls)
	}
	if _, ok := a.Get("tags"); !ok {
		t.Fatalf("missing constant field")
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d", b.Len())
	}
}

func TestSampleModel_DimensionMismatch(t *testing.T) {
	s := configSchema()
	for _, u := range [][]float64{{0.5, 0.5}, {0.1, 0.2, 0.3, 0.4}, nil} {
		_, err := bounded.SampleModel(u, s)
		if !errors.Is(err, bounded.ErrDimensionMismatch) {
			t.Fatalf("len %d: expected dimension mismatch, got %v", len(u), err)
		}
		it, _ := bounded.AsIssue(err)
		if it.Params["want"] != 3 || it.Params["got"] != len(u) {
			t.Fatalf("params %+v", it.Params)
		}
	}
}

func TestSampleModel_UnitRange(t *testing.T) {
	_, err := bounded.SampleModel([]float64{0.5, 1.5, 0}, configSchema())
	if !errors.Is(err, bounded.ErrUnitRange) {
		t.Fatalf("expected unit range error, got %v", err)
	}
}

func TestSampleModel_ErrorsBeforeFactories(t *testing.T) {
	calls := 0
	tags := bounded.Field{Name: "tags", Kind: bounded.KindOpaque, DefaultFactory: func() any { calls++; return nil }}
	s := bounded.MustSchema("S", tags, str("name"))
	if _, err := bounded.SampleModel(nil, s); err == nil {
		t.Fatalf("expected error")
	}
	if calls != 0 {
		t.Fatalf("factory invoked before failure: %d", calls)
	}
}

func TestSampleModel_Idempotent(t *testing.T) {
	s := configSchema()
	u := []float64{0.12, 0.34, 0.56}
	a, _ := bounded.SampleModel(u, s)
	b, _ := bounded.SampleModel(u, s)
	if diff := cmp.Diff(a.Map(), b.Map()); diff != "" {
		t.Fatalf("not idempotent:\n%s", diff)
	}
}

func TestSampleModel_Corners(t *testing.T) {
	inner := bounded.MustSchema("Inner", realField("value", -5, 5), literal("flag", false, true))
	s := bounded.MustSchema("Outer", integer("n", 1, 3), nested("inner", inner))
	lows, _ := bounded.SampleModel([]float64{0, 0, 0}, s)
	highs, _ := bounded.SampleModel([]float64{1, 1, 1}, s)
	wantLow := map[string]any{"n": int64(1), "inner": map[string]any{"value": -5.0, "flag": false}}
	wantHigh := map[string]any{"n": int64(3), "inner": map[string]any{"value": 5.0, "flag": true}}
	if diff := cmp.Diff(wantLow, lows.Map()); diff != "" {
		t.Fatalf("low corner (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantHigh, highs.Map()); diff != "" {
		t.Fatalf("high corner (-want +got):\n%s", diff)
	}
}

func TestFieldDimensions_UnsupportedKindFailsOpenToUnbounded(t *testing.T) {
	f := bounded.Field{Name: "blob", Type: "bytes", Kind: bounded.KindOpaque}
	if bounded.CheckFieldBoundedness(f) {
		t.Fatalf("opaque field must be unbounded")
	}
	_, err := bounded.FieldDimensions(f)
	if !errors.Is(err, bounded.ErrMissingDefault) {
		t.Fatalf("got %v", err)
	}
}

func TestSampleModel_ScalesEachRange(t *testing.T) {
	s := bounded.MustSchema("XY", realField("x", 0, 10), realField("y", -5, 5))
	obj, err := bounded.SampleModel([]float64{0.5, 0.25}, s)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"x": 5.0, "y": -2.5}, obj.Map()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
