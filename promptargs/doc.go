// Package promptargs resolves and validates prompt handler arguments against
// a declared schema. A prompt declares, once, an ordered set of typed fields
// (type, description, tri-state required flag, optional default); Resolve
// then turns a possibly-partial, possibly-absent raw argument object into a
// fully-populated, type-checked object, or fails with an error enumerating
// every offending field.
//
// The design separates two concerns:
//  1. Schema declaration (what a prompt accepts)
//  2. Resolution (how a raw input becomes a complete, validated object)
//
// Resolution is a pure function: it reads only the schema and the raw input,
// never mutates either, and holds no state between calls.
//
// # Default resolution
//
// For every field absent from the input:
//   - an explicit default wins, always;
//   - a field marked not-required (or whose type accepts absence) stays
//     absent;
//   - a required field with no default synthesizes its type's canonical zero
//     ("" / 0 / false / empty sequence / empty mapping) so that calls with no
//     input never fail spuriously. Types without a canonical zero stay absent
//     and fail validation, surfacing the schema authoring gap at call time.
//
// # Optionality
//
// Whether a field may be absent is a derived predicate, never stored state:
// a field is optional iff it is explicitly marked not-required, or carries a
// default, or its type itself accepts absence. The same predicate drives
// both validation and the Describe catalog view, so the two cannot drift.
//
// # Authoring modes
//
//	Builder     NewSchema() with fluent per-type methods, mirroring dynamic
//	            scenarios.
//	Reflection  SchemaForStruct[T]() derives a schema from a struct type via
//	            JSON Schema reflection; pointer fields are optional.
//	Files       ParseSchema reads a YAML or JSON schema document, used by
//	            filesystem-backed prompt containers and tooling.
package promptargs
