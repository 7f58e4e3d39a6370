package structschema

import (
	"reflect"
	"strings"
)

// Path returns the dotted override path of a field of T selected by
// selector, for use as a key of bounded.Overrides:
//
//	structschema.Path(func(o *Outer) *float64 { return &o.Inner.Value }) // "inner.value"
//
// The link to the struct field is checked at compile time, so renaming the
// field breaks the build instead of silently orphaning the override.
// Only non-pointer struct hops are followed.
func Path[T any, F any](selector func(*T) *F) string {
	if selector == nil {
		panic("structschema.Path: selector must not be nil")
	}
	var zero T
	target := reflect.ValueOf(selector(&zero)).Pointer()
	ft := reflect.TypeOf((*F)(nil)).Elem()
	keys, ok := findPathKeys(reflect.ValueOf(&zero).Elem(), target, ft, 0)
	if !ok || len(keys) == 0 {
		panic("structschema.Path: selector must address a field of T through non-pointer struct fields")
	}
	return strings.Join(keys, ".")
}

const maxPathDepth = 32

// findPathKeys matches on address and type: a struct shares its address
// with its first field.
func findPathKeys(v reflect.Value, target uintptr, ft reflect.Type, depth int) ([]string, bool) {
	if depth > maxPathDepth {
		return nil, false
	}
	t := v.Type()
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		name := ResolveKey(sf)
		if name == "" || name == "-" {
			continue
		}
		if fv.CanAddr() && fv.Addr().Pointer() == target && fv.Type() == ft {
			return []string{name}, true
		}
		if fv.Kind() == reflect.Struct {
			if rest, ok := findPathKeys(fv, target, ft, depth+1); ok {
				return append([]string{name}, rest...), true
			}
		}
	}
	return nil, false
}
