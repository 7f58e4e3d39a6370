// Package structschema derives bounded schemas from Go struct types and
// decodes samples back into them.
//
// Field keys follow ResolveKey (bounded:"name=..." > json > Go name). The
// bounded tag carries constraints:
//
//	type Config struct {
//		Mode      string  `json:"mode" bounded:"oneof=fast slow medium"`
//		Threshold float64 `json:"threshold" bounded:"ge=0,le=1"`
//		Count     int     `json:"count" bounded:"ge=1,le=10"`
//		Name      string  `json:"name" default:"default_name"`
//	}
//
// Mapping: bool is the literal set [false, true]; types implementing
// Enumeration are enums; structs (other than time.Time) are nested schemas;
// pointers are nullable and unwrapped; strings, slices, maps and interfaces
// are opaque. Self-referential types are rejected.
//
// Default tags are read verbatim for string kinds and as JSON otherwise.
// Struct types implementing DefaultFactories supply per-field factories.
package structschema
