package bounded

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/bounded/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnboundedField    = "unbounded_field"
	CodeMissingDefault    = "missing_default"
	CodeOverrideConfig    = "override_config"
	CodeDimensionMismatch = "dimension_mismatch"
	CodeUnitRange         = "unit_range"
	CodeInvalidSchema     = "invalid_schema"
)

// Sentinel errors matched by Issue.Is, so callers can write
// errors.Is(err, bounded.ErrMissingDefault).
var (
	ErrUnboundedField    = errors.New("bounded: unbounded field")
	ErrMissingDefault    = errors.New("bounded: missing default")
	ErrOverrideConfig    = errors.New("bounded: invalid override")
	ErrDimensionMismatch = errors.New("bounded: dimension mismatch")
	ErrUnitRange         = errors.New("bounded: unit value out of range")
	ErrInvalidSchema     = errors.New("bounded: invalid schema")
)

var sentinels = map[string]error{
	CodeUnboundedField:    ErrUnboundedField,
	CodeMissingDefault:    ErrMissingDefault,
	CodeOverrideConfig:    ErrOverrideConfig,
	CodeDimensionMismatch: ErrDimensionMismatch,
	CodeUnitRange:         ErrUnitRange,
	CodeInvalidSchema:     ErrInvalidSchema,
}

// Issue is a single failure reported by the registry or a schema builder.
type Issue struct {
	Path    string // dotted field path (for example: inner.value); empty for whole-input errors.
	Code    string // One of the codes listed above.
	Type    string // declared type name of the offending field, when known.
	Message string
	// Params carries structured parameters (e.g., {"want":3, "got":2})
	// for i18n and observability.
	Params map[string]any
}

// Error renders "<message> (code at path, type T)".
func (i Issue) Error() string {
	b := &strings.Builder{}
	b.WriteString(i.Message)
	if i.Message == "" {
		b.WriteString(i.Code)
	}
	b.WriteString(" (")
	b.WriteString(i.Code)
	if i.Path != "" {
		fmt.Fprintf(b, " at %s", i.Path)
	}
	if i.Type != "" {
		fmt.Fprintf(b, ", type %s", i.Type)
	}
	b.WriteString(")")
	return b.String()
}

// Is reports whether target is the sentinel error for the issue's code. A
// missing default is a kind of unbounded field and also matches
// ErrUnboundedField.
func (i Issue) Is(target error) bool {
	if i.Code == CodeMissingDefault && target == ErrUnboundedField {
		return true
	}
	s, ok := sentinels[i.Code]
	return ok && s == target
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. override_config at inner.value
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is matches when any contained issue matches target.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if it.Is(target) {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssue extracts a single Issue from an error using errors.As internally.
func AsIssue(err error) (Issue, bool) {
	if err == nil {
		return Issue{}, false
	}
	var it Issue
	if errors.As(err, &it) {
		return it, true
	}
	return Issue{}, false
}

// AsIssues extracts Issues from an error. A lone Issue is returned as a
// one-element slice.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	if it, ok := AsIssue(err); ok {
		return Issues{it}, true
	}
	return nil, false
}

func newIssue(code, path, typ string, params map[string]any) Issue {
	data := map[string]string{"path": path, "type": typ}
	for k, v := range params {
		data[k] = fmt.Sprint(v)
	}
	return Issue{Path: path, Code: code, Type: typ, Message: i18n.T(code, data), Params: params}
}

func unboundedFieldError(path string, f Field) error {
	return newIssue(CodeUnboundedField, path, f.TypeName(), nil)
}

func missingDefaultError(path string, f Field) error {
	return newIssue(CodeMissingDefault, path, f.TypeName(), nil)
}

func overrideConfigError(path, reason string) Issue {
	it := newIssue(CodeOverrideConfig, path, "", map[string]any{"reason": reason})
	return it
}

func dimensionMismatchError(path string, want, got int) error {
	return newIssue(CodeDimensionMismatch, path, "", map[string]any{"want": want, "got": got})
}

func unitRangeError(index int, v float64) error {
	return newIssue(CodeUnitRange, "", "", map[string]any{"index": index, "value": v})
}

func invalidSchemaError(path, reason string) Issue {
	return newIssue(CodeInvalidSchema, path, "", map[string]any{"reason": reason})
}
