// Package dsl provides a fluent builder for bounded schemas.
//
// Overview
//   - Builder API: Object(name).Field(name, spec) appends fields in order; Default/DefaultFunc attach defaults.
//   - Numbers: Float()/Int() with Ge/Gt/Le/Lt/Range/Between.
//   - Choices: Literal(values...), Bool(), EnumOf[T](members...).
//   - Composition: Nested(schema) embeds another schema.
//   - Opaque: String()/List()/Opaque(typeName) for fields without a constraint model.
//
// Quickstart
//
//	inner := dsl.Object("Inner").
//		Field("value", dsl.Float().Range(0, 10)).
//		MustBuild()
//
//	outer := dsl.Object("Outer").
//		Field("x", dsl.Float().Range(0, 1)).
//		Field("mode", dsl.Literal("fast", "slow")).
//		Field("inner", dsl.Nested(inner)).
//		Field("name", dsl.String()).Default("default_name").
//		MustBuild()
//
// Build reports duplicate names, empty literal sets, nested fields without a
// schema and fields carrying both a default and a default factory as
// bounded.Issues with code invalid_schema.
package dsl
