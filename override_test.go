package bounded_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/bounded"
)

func nestedOuter() *bounded.Schema {
	inner := bounded.MustSchema("Inner", realField("value", 0, 10))
	return bounded.MustSchema("Outer", realField("x", 0, 1), nested("inner", inner))
}

func TestOverride_ConstantDropsDimension(t *testing.T) {
	s := bounded.MustSchema("XY", realField("x", 0, 1), realField("y", 0, 1))
	opt := bounded.Opt{Overrides: bounded.Overrides{"x": bounded.Const(0.5)}}

	d, err := bounded.ModelDimensions(s, opt)
	if err != nil || d != 1 {
		t.Fatalf("dims=%d err=%v", d, err)
	}
	obj, err := bounded.SampleModel([]float64{0.25}, s, opt)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"x": 0.5, "y": 0.25}, obj.Map()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOverride_NestedPathBounds(t *testing.T) {
	s := nestedOuter()
	opt := bounded.Opt{Overrides: bounded.Overrides{"inner.value": bounded.Range(5, 6)}}

	d, err := bounded.ModelDimensions(s, opt)
	if err != nil || d != 2 {
		t.Fatalf("dims=%d err=%v", d, err)
	}
	obj, err := bounded.SampleModel([]float64{0, 0.5}, s, opt)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	want := map[string]any{"x": 0.0, "inner": map[string]any{"value": 5.5}}
	if diff := cmp.Diff(want, obj.Map()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOverride_BoundsMakeUnboundedFieldBounded(t *testing.T) {
	f := bounded.Field{Name: "rate", Type: "float", Kind: bounded.KindNumeric, Lower: bounded.Inclusive(0)}
	if bounded.CheckFieldBoundedness(f) {
		t.Fatalf("half-open field must be unbounded")
	}
	hi := 2.0
	opt := bounded.Opt{Overrides: bounded.Overrides{"rate": {Le: &hi}}}
	if !bounded.CheckFieldBoundedness(f, opt) {
		t.Fatalf("override upper bound should bound the field")
	}
	v, err := bounded.SampleField([]float64{0.5}, f, opt)
	if err != nil || v != 1.0 {
		t.Fatalf("v=%v err=%v", v, err)
	}
}

func TestOverride_WholeSubtreeConstant(t *testing.T) {
	s := nestedOuter()
	pinned := map[string]any{"value": 7.0}
	opt := bounded.Opt{Overrides: bounded.Overrides{"inner": bounded.Const(pinned)}}

	d, err := bounded.ModelDimensions(s, opt)
	if err != nil || d != 1 {
		t.Fatalf("dims=%d err=%v", d, err)
	}
	obj, err := bounded.SampleModel([]float64{1}, s, opt)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	want := map[string]any{"x": 1.0, "inner": map[string]any{"value": 7.0}}
	if diff := cmp.Diff(want, obj.Map()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOverride_ConstantRescuesUnboundedField(t *testing.T) {
	s := bounded.MustSchema("Named", realField("x", 0, 1), str("name"))
	opt := bounded.Opt{Overrides: bounded.Overrides{"name": bounded.Factory(func() any { return "generated" })}}
	obj, err := bounded.SampleModel([]float64{0}, s, opt)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if v, _ := obj.Get("name"); v != "generated" {
		t.Fatalf("name=%v", v)
	}
}

func TestOverride_IgnoredUnderReject(t *testing.T) {
	s := bounded.MustSchema("XY", realField("x", 0, 1), str("name"))
	opt := bounded.Opt{Constants: bounded.ConstantsReject, Overrides: bounded.Overrides{
		"x":    bounded.Const(0.5),
		"name": bounded.Const("n"),
	}}
	_, err := bounded.ModelDimensions(s, opt)
	if it, _ := bounded.AsIssue(err); it.Code != bounded.CodeUnboundedField || it.Path != "name" {
		t.Fatalf("expected unbounded name, got %v", err)
	}
}

func TestOverride_ConfigurationErrors(t *testing.T) {
	s := nestedOuter()
	both := bounded.Override{Default: 1.0, HasDefault: true, DefaultFactory: func() any { return 2.0 }}

	tests := []struct {
		name string
		ov   bounded.Overrides
	}{
		{"default and factory", bounded.Overrides{"x": both}},
		{"unknown field", bounded.Overrides{"nope": bounded.Range(0, 1)}},
		{"unknown nested field", bounded.Overrides{"inner.nope": bounded.Range(0, 1)}},
		{"path through leaf", bounded.Overrides{"x.value": bounded.Range(0, 1)}},
		{"empty segment", bounded.Overrides{"inner.": bounded.Range(0, 1)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opt := bounded.Opt{Overrides: tc.ov}
			if _, err := bounded.ModelDimensions(s, opt); !errors.Is(err, bounded.ErrOverrideConfig) {
				t.Fatalf("dims: expected override config error, got %v", err)
			}
			if _, err := bounded.SampleModel([]float64{0, 0}, s, opt); !errors.Is(err, bounded.ErrOverrideConfig) {
				t.Fatalf("sample: expected override config error, got %v", err)
			}
			if err := tc.ov.Validate(s); err == nil {
				t.Fatalf("Validate accepted %v", tc.ov)
			}
		})
	}
}

func TestOverride_TighterBoundWins(t *testing.T) {
	f := realField("x", -100, 100)
	ge, gt := 1.0, 2.0
	opt := bounded.Opt{Overrides: bounded.Overrides{"x": {Ge: &ge, Gt: &gt, Le: bounded.Range(0, 3).Le}}}
	v, err := bounded.SampleField([]float64{0}, f, opt)
	if err != nil || v != 2.0 {
		t.Fatalf("v=%v err=%v", v, err)
	}
}

func TestOverride_BoundsUnboundedNestedField(t *testing.T) {
	inner := bounded.MustSchema("Inner", bounded.Field{Name: "value", Type: "float", Kind: bounded.KindNumeric})
	outer := bounded.MustSchema("Outer", nested("inner", inner), realField("rate", 0, 1))
	if _, err := bounded.ModelDimensions(outer); err == nil {
		t.Fatalf("inner.value is unbounded without an override")
	}

	opt := bounded.Opt{Overrides: bounded.Overrides{"inner.value": bounded.Range(0, 10)}}
	d, err := bounded.ModelDimensions(outer, opt)
	if err != nil || d != 2 {
		t.Fatalf("dims=%d err=%v", d, err)
	}
	obj, err := bounded.SampleModel([]float64{0.5, 0.5}, outer, opt)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	want := map[string]any{"inner": map[string]any{"value": 5.0}, "rate": 0.5}
	if diff := cmp.Diff(want, obj.Map()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOverride_ConstantString(t *testing.T) {
	s := bounded.MustSchema("Run", str("name"))
	opt := bounded.Opt{Overrides: bounded.Overrides{"name": bounded.Const("experiment")}}

	d, err := bounded.ModelDimensions(s, opt)
	if err != nil || d != 0 {
		t.Fatalf("dims=%d err=%v", d, err)
	}
	for i := 0; i < 3; i++ {
		obj, err := bounded.SampleModel(nil, s, opt)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		if v, _ := obj.Get("name"); v != "experiment" {
			t.Fatalf("name = %v", v)
		}
	}
}

func TestFoldBounds(t *testing.T) {
	one, two := 1.0, 2.0
	cases := []struct {
		name       string
		incl, excl *float64
		lower      bool
		want       *bounded.Bound
	}{
		{"lower exclusive tighter", &one, &two, true, bounded.Exclusive(2)},
		{"lower inclusive tighter", &two, &one, true, bounded.Inclusive(2)},
		{"upper exclusive tighter", &two, &one, false, bounded.Exclusive(1)},
		{"tie is exclusive", &one, &one, true, bounded.Exclusive(1)},
		{"inclusive only", &one, nil, false, bounded.Inclusive(1)},
		{"neither", nil, nil, true, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, bounded.FoldBounds(tc.incl, tc.excl, tc.lower)); diff != "" {
				t.Fatalf("bound (-want +got):\n%s", diff)
			}
		})
	}
}
