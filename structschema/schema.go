package structschema

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/reoring/bounded"
)

// Enumeration is implemented by types whose values form a closed,
// ordered set. EnumValues is called on the zero value.
type Enumeration interface {
	EnumValues() []any
}

// DefaultFactories is implemented by struct types that provide default
// factories for some of their fields, keyed by schema key. It is called on
// the zero value.
type DefaultFactories interface {
	BoundedDefaults() map[string]func() any
}

var (
	enumerationType = reflect.TypeOf((*Enumeration)(nil)).Elem()
	factoriesType   = reflect.TypeOf((*DefaultFactories)(nil)).Elem()
	timeType        = reflect.TypeOf(time.Time{})
)

var cache sync.Map // reflect.Type -> *bounded.Schema

// For returns the schema of struct type T. Results are cached per type.
func For[T any]() (*bounded.Schema, error) {
	return Of(reflect.TypeOf((*T)(nil)).Elem())
}

// MustFor is like For but panics on error.
func MustFor[T any]() *bounded.Schema {
	s, err := For[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// Of returns the schema of struct type t (or pointer to struct).
func Of(t reflect.Type) (*bounded.Schema, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("structschema: %s is not a struct", t)
	}
	if s, ok := cache.Load(t); ok {
		return s.(*bounded.Schema), nil
	}
	return (&builder{visiting: map[reflect.Type]bool{}}).schema(t)
}

type builder struct {
	visiting map[reflect.Type]bool
}

func (b *builder) schema(t reflect.Type) (*bounded.Schema, error) {
	if s, ok := cache.Load(t); ok {
		return s.(*bounded.Schema), nil
	}
	if b.visiting[t] {
		return nil, fmt.Errorf("structschema: cyclic type %s", t)
	}
	b.visiting[t] = true
	defer delete(b.visiting, t)

	var factories map[string]func() any
	if t.Implements(factoriesType) {
		factories = reflect.Zero(t).Interface().(DefaultFactories).BoundedDefaults()
	}

	fields := make([]bounded.Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveKey(sf)
		if key == "-" || key == "" {
			continue
		}
		f, err := b.field(sf, key)
		if err != nil {
			return nil, fmt.Errorf("structschema: %s.%s: %w", t.Name(), sf.Name, err)
		}
		if fn, ok := factories[key]; ok {
			f.DefaultFactory = fn
		}
		fields = append(fields, f)
	}
	s, err := bounded.NewSchema(t.Name(), fields...)
	if err != nil {
		return nil, fmt.Errorf("structschema: %s: %w", t.Name(), err)
	}
	actual, _ := cache.LoadOrStore(t, s)
	return actual.(*bounded.Schema), nil
}

func (b *builder) field(sf reflect.StructField, key string) (bounded.Field, error) {
	c, err := parseConstraints(sf.Tag.Get("bounded"))
	if err != nil {
		return bounded.Field{}, err
	}
	t := sf.Type
	f := bounded.Field{Name: key}
	if t.Kind() == reflect.Pointer {
		f.Nullable = true
		t = t.Elem()
	}
	f.Type = t.String()
	f.MaxLength = c.maxLen

	switch {
	case t.Implements(enumerationType):
		f.Kind = bounded.KindEnum
		f.Values = reflect.Zero(t).Interface().(Enumeration).EnumValues()
	case len(c.oneof) > 0:
		f.Kind = bounded.KindLiteral
		for _, raw := range c.oneof {
			v, err := parseValue(t, raw)
			if err != nil {
				return f, fmt.Errorf("oneof %q: %w", raw, err)
			}
			f.Values = append(f.Values, v)
		}
	case t.Kind() == reflect.Bool:
		f.Kind = bounded.KindLiteral
		f.Values = []any{reflect.ValueOf(false).Convert(t).Interface(), reflect.ValueOf(true).Convert(t).Interface()}
	case isInt(t.Kind()) || isFloat(t.Kind()):
		f.Kind = bounded.KindNumeric
		f.Integer = isInt(t.Kind())
		f.Lower = bounded.FoldBounds(c.ge, c.gt, true)
		f.Upper = bounded.FoldBounds(c.le, c.lt, false)
		if f.Integer {
			if err := checkIntRange(t, f.Lower, f.Upper); err != nil {
				return f, err
			}
		}
	case t.Kind() == reflect.Struct && t != timeType:
		s, err := b.schema(t)
		if err != nil {
			return f, err
		}
		f.Kind = bounded.KindNested
		f.Schema = s
	default:
		f.Kind = bounded.KindOpaque
	}
	if f.Kind != bounded.KindNumeric && (c.ge != nil || c.le != nil || c.gt != nil || c.lt != nil) {
		return f, fmt.Errorf("numeric bounds on %s field", f.Kind)
	}

	if raw, ok := sf.Tag.Lookup("default"); ok {
		v, err := parseValue(t, raw)
		if err != nil {
			return f, fmt.Errorf("default %q: %w", raw, err)
		}
		f.Default, f.HasDefault = v, true
	}
	return f, nil
}

// parseValue decodes a tag literal into a value of type t. String kinds are
// taken verbatim; everything else is read as JSON.
func parseValue(t reflect.Type, raw string) (any, error) {
	if t.Kind() == reflect.String {
		v := reflect.New(t).Elem()
		v.SetString(raw)
		return v.Interface(), nil
	}
	ptr := reflect.New(t)
	if err := json.Unmarshal([]byte(raw), ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// checkIntRange rejects tag bounds that the integer type t cannot hold.
func checkIntRange(t reflect.Type, bounds ...*bounded.Bound) error {
	bits := t.Bits()
	lo, hi := -math.Ldexp(1, bits-1), math.Ldexp(1, bits-1)-1
	if isUint(t.Kind()) {
		lo, hi = 0, math.Ldexp(1, bits)-1
	}
	for _, b := range bounds {
		if b != nil && (b.Value < lo || b.Value > hi) {
			return fmt.Errorf("bound %v outside the range of %s", b.Value, t)
		}
	}
	return nil
}

func isFloat(k reflect.Kind) bool { return k == reflect.Float32 || k == reflect.Float64 }
