package structschema

import (
	"fmt"
	"math"
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/reoring/bounded"
)

// Sample maps u onto a new value of T using the default registry.
func Sample[T any](u []float64, opts ...bounded.Opt) (T, error) {
	return SampleWith[T](bounded.Default(), u, opts...)
}

// SampleWith maps u onto a new value of T using r.
func SampleWith[T any](r *bounded.Registry, u []float64, opts ...bounded.Opt) (T, error) {
	var out T
	s, err := For[T]()
	if err != nil {
		return out, err
	}
	obj, err := r.SampleModel(u, s, opts...)
	if err != nil {
		return out, err
	}
	if err := Decode(obj, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Dimensions returns the number of unit values needed to sample T.
func Dimensions[T any](opts ...bounded.Opt) (int, error) {
	s, err := For[T]()
	if err != nil {
		return 0, err
	}
	return bounded.ModelDimensions(s, opts...)
}

// Bounded reports whether every field of T is bounded.
func Bounded[T any](opts ...bounded.Opt) bool {
	s, err := For[T]()
	if err != nil {
		return false
	}
	return bounded.CheckModelBoundedness(s, opts...)
}

// Decode copies a sampled object into the struct pointed to by dst. Fields
// are matched by schema key; values are converted to the field types.
func Decode(obj *bounded.Object, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("structschema: Decode needs a non-nil pointer, got %T", dst)
	}
	return decodeStruct(obj, rv.Elem(), "")
}

func decodeStruct(obj *bounded.Object, v reflect.Value, prefix string) error {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("structschema: cannot decode object into %s", v.Type())
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveKey(sf)
		if key == "-" || key == "" {
			continue
		}
		val, ok := obj.Get(key)
		if !ok {
			continue
		}
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if err := assign(v.Field(i), val, path); err != nil {
			return err
		}
	}
	return nil
}

func assign(fv reflect.Value, val any, path string) error {
	if val == nil {
		return nil
	}
	if n, ok := val.(*bounded.Object); ok {
		return decodeStruct(n, fv, path)
	}
	rv := reflect.ValueOf(val)
	if rv.Type().AssignableTo(fv.Type()) {
		fv.Set(rv)
		return nil
	}
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return assign(fv.Elem(), val, path)
	}
	if convertible(rv.Type(), fv.Type()) {
		if overflows(rv, fv) {
			return fmt.Errorf("structschema: %s: %v overflows %s", path, val, fv.Type())
		}
		fv.Set(rv.Convert(fv.Type()))
		return nil
	}
	// Constants given as plain maps or slices go through JSON.
	b, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("structschema: %s: %w", path, err)
	}
	if err := json.Unmarshal(b, fv.Addr().Interface()); err != nil {
		return fmt.Errorf("structschema: %s: cannot assign %T to %s: %w", path, val, fv.Type(), err)
	}
	return nil
}

// overflows reports whether the numeric value rv does not fit in fv.
func overflows(rv, fv reflect.Value) bool {
	switch {
	case rv.CanInt():
		n := rv.Int()
		if fv.CanInt() {
			return fv.OverflowInt(n)
		}
		if fv.CanUint() {
			return n < 0 || fv.OverflowUint(uint64(n))
		}
	case rv.CanUint():
		n := rv.Uint()
		if fv.CanInt() {
			return n > math.MaxInt64 || fv.OverflowInt(int64(n))
		}
		if fv.CanUint() {
			return fv.OverflowUint(n)
		}
	case rv.CanFloat():
		if fv.CanFloat() {
			return fv.OverflowFloat(rv.Float())
		}
	}
	return false
}

// convertible limits reflect conversions to same-family kinds so that, for
// example, an int is never turned into a one-rune string.
func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	fk, tk := from.Kind(), to.Kind()
	switch {
	case (isInt(fk) || isFloat(fk)) && (isInt(tk) || isFloat(tk)):
		return true
	case fk == reflect.String && tk == reflect.String:
		return true
	case fk == reflect.Bool && tk == reflect.Bool:
		return true
	}
	return false
}
