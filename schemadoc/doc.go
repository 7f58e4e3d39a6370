// Package schemadoc converts schema documents into bounded schemas and back.
//
// It provides:
//   - ImportJSON / ImportYAML for JSON Schema, OpenAPI (select a component
//     with Options.Pointer) and Kubernetes CRDs (openAPIV3Schema is unwrapped,
//     served versions first)
//   - ImportYAMLForCRDKind to pick one CRD out of a multi-document bundle
//   - LoadOverrides for dotted-path override files
//   - Export to render a bounded.Schema as JSON Schema
//
// Mapping:
//   - enum and const become literal fields; boolean becomes [false, true]
//   - integer and number keep minimum/maximum and both exclusive forms
//   - objects with properties become nested schemas in declaration order
//   - local $ref is resolved and cycles are rejected; allOf is merged and
//     anyOf/oneOf with a single non-null branch collapse to that branch
//   - everything else is opaque and needs a default (or override) to sample
//
// Approximations are reported through Diag instead of failing the import.
package schemadoc
