// Package jsonschema holds the JSON Schema subset used by schemadoc.
// Properties keep declaration order on decode and encode.
package jsonschema
