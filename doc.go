// Package jsonish implements a schema-directed tolerant parser that turns
// arbitrary text produced by large language models into structured values.
// Inputs range from clean JSON to prose containing embedded JSON fragments,
// fenced code blocks, malformed JSON, and truncated streams; the output is
// coerced to match a caller-supplied schema, with type coercion, field-name
// aliasing, union scoring, and partial fills of missing data.
//
// jsonish treats schemas as an abstract capability set (see SchemaShape) so
// that it has no compile-time dependency on any particular schema library.
// The sibling package github.com/kaptinlin/jsonish/schema provides a
// concrete SchemaShape backed by JSON Schema documents, for callers who
// don't already have one.
package jsonish
