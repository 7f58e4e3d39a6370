// Package bounded decides whether a schema describes a finite, explicitly
// bounded value space, counts the unit coordinates needed to address it and
// maps points of the unit hypercube [0,1]^d onto concrete instances.
//
// It provides:
//
// - A Registry of Handlers dispatching each Field to the first handler that supports it
// - Numeric, literal, enum and nested-schema handlers (DefaultHandlers)
// - Call-time Overrides addressed by dotted paths ("inner.value")
// - A constant policy turning unbounded fields with defaults into zero-dimension constants
// - A stable error model via Issue/Issues (code, dotted path, declared type)
//
// Design policy:
// - Keep only public APIs in the root package; schema sources live in dsl/, structschema/ and schemadoc/.
// - Registries, schemas and overrides are immutable and shared without locks.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := dsl.Object("Config").
//		Field("threshold", dsl.Float().Range(0, 1)).
//		Field("count", dsl.Int().Range(1, 10)).
//		MustBuild()
//
//	d, err := bounded.ModelDimensions(s)          // 2
//	obj, err := bounded.SampleModel([]float64{0.5, 0.9}, s)
//	// {"threshold":0.5,"count":10}
package bounded
