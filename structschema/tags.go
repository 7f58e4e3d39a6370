package structschema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ResolveKey applies the package-wide rule to resolve a struct field's
// schema key.
// Priority: bounded:"name=..." > json tag name > field name; "-" disables the field.
func ResolveKey(sf reflect.StructField) string {
	if bt := sf.Tag.Get("bounded"); bt != "" {
		if bt == "-" {
			return "-"
		}
		for _, p := range strings.Split(bt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if i == 0 {
				return sf.Name
			}
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// constraints holds the parsed bounded:"..." tag.
type constraints struct {
	ge, le, gt, lt *float64
	oneof          []string
	maxLen         *int
}

func parseConstraints(tag string) (constraints, error) {
	var c constraints
	if tag == "" || tag == "-" {
		return c, nil
	}
	for _, p := range strings.Split(tag, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return c, fmt.Errorf("malformed constraint %q", p)
		}
		switch k {
		case "name":
		case "ge", "le", "gt", "lt":
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return c, fmt.Errorf("constraint %s: %w", k, err)
			}
			switch k {
			case "ge":
				c.ge = &f
			case "le":
				c.le = &f
			case "gt":
				c.gt = &f
			case "lt":
				c.lt = &f
			}
		case "oneof":
			c.oneof = strings.Fields(v)
			if len(c.oneof) == 0 {
				return c, fmt.Errorf("constraint oneof: no values")
			}
		case "maxlen":
			n, err := strconv.Atoi(v)
			if err != nil {
				return c, fmt.Errorf("constraint maxlen: %w", err)
			}
			c.maxLen = &n
		default:
			return c, fmt.Errorf("unknown constraint %q", k)
		}
	}
	return c, nil
}
