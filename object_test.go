package bounded_test

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/bounded"
)

func sampledOuter(t *testing.T) *bounded.Object {
	t.Helper()
	inner := bounded.MustSchema("Inner", literal("zeta", "z"), realField("alpha", 0, 1))
	s := bounded.MustSchema("Outer", integer("b", 0, 4), nested("inner", inner), literal("a", true))
	obj, err := bounded.SampleModel([]float64{0.5, 0, 0.5, 0}, s)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	return obj
}

func TestObject_MarshalJSONKeepsDeclarationOrder(t *testing.T) {
	b, err := json.Marshal(sampledOuter(t))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	const want = `{"b":2,"inner":{"zeta":"z","alpha":0.5},"a":true}`
	if string(b) != want {
		t.Fatalf("got %s want %s", b, want)
	}
}

func TestObject_MarshalYAMLKeepsDeclarationOrder(t *testing.T) {
	b, err := yaml.Marshal(sampledOuter(t))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	if strings.Index(got, "b:") > strings.Index(got, "inner:") || strings.Index(got, "zeta:") > strings.Index(got, "alpha:") {
		t.Fatalf("order not preserved:\n%s", got)
	}
}

func TestObject_Accessors(t *testing.T) {
	obj := sampledOuter(t)
	if obj.SchemaName() != "Outer" || obj.Len() != 3 {
		t.Fatalf("name=%q len=%d", obj.SchemaName(), obj.Len())
	}
	if _, ok := obj.Get("missing"); ok {
		t.Fatalf("unexpected key")
	}
	keys := obj.Keys()
	keys[0] = "mutated"
	if obj.Keys()[0] != "b" {
		t.Fatalf("Keys must return a copy")
	}
}
