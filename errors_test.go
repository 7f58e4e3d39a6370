package bounded_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/reoring/bounded"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := bounded.Issues{
		{Path: "a", Code: bounded.CodeOverrideConfig},
		{Path: "b", Code: bounded.CodeOverrideConfig},
		{Path: "c", Code: bounded.CodeInvalidSchema},
		{Path: "d", Code: bounded.CodeInvalidSchema},
	}
	s := iss.Error()
	if !strings.HasPrefix(s, "override_config at a") || !strings.Contains(s, "(total 4)") {
		t.Fatalf("unexpected summary %q", s)
	}
	if !errors.Is(iss, bounded.ErrInvalidSchema) || errors.Is(iss, bounded.ErrUnitRange) {
		t.Fatalf("Issues.Is should match contained codes only")
	}
}

func TestIssue_WrappedStillMatches(t *testing.T) {
	_, err := bounded.ModelDimensions(bounded.MustSchema("S", str("name")))
	wrapped := fmt.Errorf("loading config: %w", err)
	if !errors.Is(wrapped, bounded.ErrMissingDefault) {
		t.Fatalf("errors.Is through wrap failed: %v", wrapped)
	}
	iss, ok := bounded.AsIssues(wrapped)
	if !ok || len(iss) != 1 || iss[0].Path != "name" {
		t.Fatalf("AsIssues = %v %v", iss, ok)
	}
}

func TestSchema_Validate(t *testing.T) {
	_, err := bounded.NewSchema("Dup", realField("x", 0, 1), realField("x", 0, 2))
	if !errors.Is(err, bounded.ErrInvalidSchema) {
		t.Fatalf("expected invalid schema, got %v", err)
	}
	bad := bounded.Field{Name: "f", Kind: bounded.KindOpaque, HasDefault: true, DefaultFactory: func() any { return 1 }}
	if err := bad.Validate(); err == nil {
		t.Fatalf("default and factory must conflict")
	}
	inner := &bounded.Schema{Name: "Inner", Fields: []bounded.Field{literal("empty")}}
	_, err = bounded.NewSchema("Outer", nested("inner", inner))
	iss, _ := bounded.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "inner.empty" {
		t.Fatalf("expected nested path, got %v", err)
	}
}

func TestIssue_MissingDefaultIsUnboundedField(t *testing.T) {
	f := bounded.Field{Name: "count", Kind: bounded.KindNumeric, Integer: true}
	_, err := bounded.FieldDimensions(f)
	if !errors.Is(err, bounded.ErrMissingDefault) || !errors.Is(err, bounded.ErrUnboundedField) {
		t.Fatalf("missing default should match both sentinels: %v", err)
	}
	if !strings.Contains(err.Error(), ", type int)") {
		t.Fatalf("type should fall back to the kind: %q", err.Error())
	}

	_, err = bounded.FieldDimensions(f, bounded.Opt{Constants: bounded.ConstantsReject})
	if !errors.Is(err, bounded.ErrUnboundedField) || errors.Is(err, bounded.ErrMissingDefault) {
		t.Fatalf("unbounded field is not a missing default: %v", err)
	}
}
