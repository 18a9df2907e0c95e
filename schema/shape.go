package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonish"
)

// Shape adapts a compiled JSON Schema Draft 2020-12 *Schema to
// jsonish.SchemaShape, so callers who already model their data with this
// package's Schema can feed it straight to the tolerant parser.
type Shape struct {
	schema *Schema
}

// NewShape wraps s as a jsonish.SchemaShape.
func NewShape(s *Schema) *Shape {
	return &Shape{schema: s}
}

func (s *Shape) resolved() *Schema {
	sc := s.schema
	for sc.Ref != "" && sc.ResolvedRef != nil {
		sc = sc.ResolvedRef
	}
	return sc
}

// Kind maps the underlying Schema's declared type and combinators onto a
// jsonish.ShapeKind, per the precedence: $ref (Lazy) > discriminator
// (DiscriminatedUnion) > anyOf/oneOf (Union) > const (Literal) > enum >
// declared type.
func (s *Shape) Kind() jsonish.ShapeKind {
	sc := s.schema

	if sc.Ref != "" {
		return jsonish.ShapeLazy
	}
	if _, ok := sc.Extra["discriminator"]; ok && len(sc.AnyOf)+len(sc.OneOf) > 0 {
		return jsonish.ShapeDiscriminatedUnion
	}
	if len(sc.AnyOf) > 0 || len(sc.OneOf) > 0 {
		return jsonish.ShapeUnion
	}
	if sc.Const != nil && sc.Const.IsSet {
		return jsonish.ShapeLiteral
	}
	if len(sc.Enum) > 0 {
		if allStrings(sc.Enum) {
			return jsonish.ShapeEnum
		}
		return jsonish.ShapeUnion
	}
	if isNullableType(sc.Type) {
		return jsonish.ShapeNullable
	}

	switch primaryType(sc.Type) {
	case "string":
		return jsonish.ShapeString
	case "number", "integer":
		return jsonish.ShapeNumber
	case "boolean":
		return jsonish.ShapeBoolean
	case "null":
		return jsonish.ShapeNull
	case "array":
		return jsonish.ShapeArray
	case "object":
		if sc.Properties == nil || len(*sc.Properties) == 0 {
			if sc.AdditionalProperties != nil {
				return jsonish.ShapeRecord
			}
		}
		return jsonish.ShapeObject
	default:
		if sc.Properties != nil && len(*sc.Properties) > 0 {
			return jsonish.ShapeObject
		}
		return jsonish.ShapeString
	}
}

func allStrings(vals []any) bool {
	for _, v := range vals {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}

func primaryType(t SchemaType) string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// isNullableType reports whether t is a multi-type declaration (e.g.
// ["string", "null"]) that includes "null" alongside some other type —
// JSON Schema's idiom for an optional/nullable value, since the
// specification has no dedicated "nullable" keyword.
func isNullableType(t SchemaType) bool {
	if len(t) < 2 {
		return false
	}
	hasNull := false
	for _, v := range t {
		if v == "null" {
			hasNull = true
		}
	}
	return hasNull
}

func (s *Shape) Elem() jsonish.SchemaShape {
	sc := s.schema
	if sc.Items != nil {
		return NewShape(sc.Items)
	}
	if len(sc.PrefixItems) > 0 {
		return NewShape(sc.PrefixItems[0])
	}
	return NewShape(&Schema{})
}

func (s *Shape) Fields() []jsonish.Field {
	sc := s.schema
	if sc.Properties == nil {
		return nil
	}
	required := make(map[string]bool, len(sc.Required))
	for _, r := range sc.Required {
		required[r] = true
	}
	names := make([]string, 0, len(*sc.Properties))
	for name := range *sc.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]jsonish.Field, 0, len(names))
	for _, name := range names {
		propSchema := (*sc.Properties)[name]
		fields = append(fields, jsonish.Field{
			Name:     name,
			Schema:   NewShape(propSchema),
			Optional: !required[name],
		})
	}
	return fields
}

func (s *Shape) RecordKey() jsonish.SchemaShape {
	return NewShape(&Schema{Type: SchemaType{"string"}})
}

func (s *Shape) RecordValue() jsonish.SchemaShape {
	if s.schema.AdditionalProperties != nil {
		return NewShape(s.schema.AdditionalProperties)
	}
	return NewShape(&Schema{})
}

func (s *Shape) Variants() []string {
	vals := s.schema.Enum
	variants := make([]string, 0, len(vals))
	for _, v := range vals {
		if str, ok := v.(string); ok {
			variants = append(variants, str)
		}
	}
	return variants
}

func (s *Shape) LiteralValue() any {
	if s.schema.Const != nil {
		return s.schema.Const.Value
	}
	if len(s.schema.Enum) == 1 {
		return s.schema.Enum[0]
	}
	return nil
}

func (s *Shape) Options() []jsonish.SchemaShape {
	sc := s.schema
	branches := append([]*Schema{}, sc.AnyOf...)
	branches = append(branches, sc.OneOf...)
	opts := make([]jsonish.SchemaShape, 0, len(branches))
	for _, b := range branches {
		opts = append(opts, NewShape(b))
	}
	if len(opts) == 0 && len(sc.Enum) > 0 {
		for _, v := range sc.Enum {
			opts = append(opts, NewShape(&Schema{Const: &ConstValue{Value: v, IsSet: true}}))
		}
	}
	return opts
}

func (s *Shape) Discriminator() (string, map[string]jsonish.SchemaShape) {
	sc := s.schema
	raw, ok := sc.Extra["discriminator"]
	if !ok {
		return "", nil
	}
	disc, ok := raw.(map[string]any)
	if !ok {
		return "", nil
	}
	field, _ := disc["propertyName"].(string)
	byValue := make(map[string]jsonish.SchemaShape)
	mapping, _ := disc["mapping"].(map[string]any)
	branches := append([]*Schema{}, sc.AnyOf...)
	branches = append(branches, sc.OneOf...)
	for key, ref := range mapping {
		refStr, ok := ref.(string)
		if !ok {
			continue
		}
		for _, b := range branches {
			if b.Ref == refStr || b.ID == refStr {
				byValue[key] = NewShape(b)
			}
		}
	}
	return field, byValue
}

// Inner unwraps a ShapeNullable's ["T", "null"] type declaration down to
// "T", or follows a $ref for ShapeLazy. jsonish's core never calls Inner on
// any other ShapeKind.
func (s *Shape) Inner() jsonish.SchemaShape {
	sc := s.schema
	if isNullableType(sc.Type) {
		stripped := *sc
		remaining := make(SchemaType, 0, len(sc.Type)-1)
		for _, t := range sc.Type {
			if t != "null" {
				remaining = append(remaining, t)
			}
		}
		stripped.Type = remaining
		return NewShape(&stripped)
	}
	return NewShape(s.resolved())
}

func (s *Shape) Resolve() jsonish.SchemaShape {
	return NewShape(s.resolved())
}

// ValidationError reports the keywords a candidate failed after jsonish's
// core had already coerced it to the shape's kind. jsonish's validation step
// (validateResult in jsonish's coerce.go) looks for the Failures method below so it can
// render this through its own {placeholder} template machinery instead of
// flattening it to an opaque string at the package boundary.
type ValidationError struct {
	Keywords []string
	Details  map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Keywords))
	for _, keyword := range e.Keywords {
		parts = append(parts, fmt.Sprintf("%s: %s", keyword, e.Details[keyword]))
	}
	return strings.Join(parts, "; ")
}

// Failures implements the (unexported, duck-typed) interface jsonish's
// errValidation construction looks for, so a rejection can carry structured
// Params rather than a pre-rendered message.
func (e *ValidationError) Failures() map[string]string {
	return e.Details
}

// Validate runs the wrapped Schema's full Draft 2020-12 validation against
// candidate, satisfying jsonish.SchemaShape's boundary refinement hook:
// jsonish calls this only after a value has already been coerced to match
// the shape, so a rejection here means the coerced value violates a
// constraint coercion itself doesn't enforce (bounds, pattern, format,
// uniqueness, and the like) rather than a shape mismatch.
//
// result.ToList().Errors is a map, so iterating it directly would pick an
// arbitrary first entry on every call — acceptable for *which* candidates
// pass or fail, but not for jsonish's own determinism requirement that the
// same input and schema always produce the same output, error message
// included. Validate instead collects every failing keyword, sorts it, and
// returns a ValidationError built from the sorted order so both Error() and
// Failures() report consistently across runs.
func (s *Shape) Validate(candidate any) (any, error) {
	result := s.schema.Validate(candidate)
	if result.IsValid() {
		return candidate, nil
	}
	list := result.ToList()
	if list == nil || len(list.Errors) == 0 {
		return nil, fmt.Errorf("schema validation failed for %v", candidate)
	}
	keywords := make([]string, 0, len(list.Errors))
	for keyword := range list.Errors {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	return nil, &ValidationError{Keywords: keywords, Details: list.Errors}
}

// DefaultValue implements jsonish.DefaultValuer from the "default" keyword.
func (s *Shape) DefaultValue() (any, bool) {
	if s.schema.Default != nil {
		return s.schema.Default, true
	}
	return nil, false
}

// SchemaFingerprint implements jsonish.Fingerprint, giving cycle detection
// a stable identity across $ref resolution.
func (s *Shape) SchemaFingerprint() string {
	sc := s.schema
	if sc.Ref != "" {
		return "ref:" + sc.Ref
	}
	return fmt.Sprintf("ptr:%p", sc)
}
