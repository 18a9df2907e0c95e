package jsonish

// ShapeKind discriminates the capability a SchemaShape exposes to the
// coercer. The core never inspects a concrete schema library's own type
// system; it only ever asks a SchemaShape which Kind it is.
type ShapeKind int

const (
	ShapeString ShapeKind = iota
	ShapeNumber
	ShapeBoolean
	ShapeNull
	ShapeArray
	ShapeObject
	ShapeRecord
	ShapeEnum
	ShapeLiteral
	ShapeUnion
	ShapeDiscriminatedUnion
	ShapeOptional
	ShapeNullable
	ShapeLazy
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeString:
		return "string"
	case ShapeNumber:
		return "number"
	case ShapeBoolean:
		return "boolean"
	case ShapeNull:
		return "null"
	case ShapeArray:
		return "array"
	case ShapeObject:
		return "object"
	case ShapeRecord:
		return "record"
	case ShapeEnum:
		return "enum"
	case ShapeLiteral:
		return "literal"
	case ShapeUnion:
		return "union"
	case ShapeDiscriminatedUnion:
		return "discriminated_union"
	case ShapeOptional:
		return "optional"
	case ShapeNullable:
		return "nullable"
	case ShapeLazy:
		return "lazy"
	default:
		return "unknown"
	}
}

// Field describes one member of an Object shape.
type Field struct {
	Name     string
	Schema   SchemaShape
	Optional bool
}

// SchemaShape is the abstract capability set the coercer operates against.
// A concrete schema library implements this once; the core never imports
// that library. See github.com/kaptinlin/jsonish/schema for a JSON-Schema
// backed implementation.
type SchemaShape interface {
	// Kind reports which coercion path applies.
	Kind() ShapeKind

	// Elem returns the element schema for ShapeArray.
	Elem() SchemaShape

	// Fields returns the ordered field set for ShapeObject.
	Fields() []Field

	// RecordKey and RecordValue return the key/value schemas for ShapeRecord.
	RecordKey() SchemaShape
	RecordValue() SchemaShape

	// Variants returns the ordered string variants for ShapeEnum.
	Variants() []string

	// LiteralValue returns the expected scalar for ShapeLiteral.
	LiteralValue() any

	// Options returns the ordered branch list for ShapeUnion and
	// ShapeDiscriminatedUnion (branches of the latter in map-iteration-free
	// declared order, discriminator value attached via Discriminator()).
	Options() []SchemaShape

	// Discriminator returns the field name and value→schema map for
	// ShapeDiscriminatedUnion.
	Discriminator() (field string, byValue map[string]SchemaShape)

	// Inner returns the wrapped schema for ShapeOptional, ShapeNullable,
	// and (after resolving) ShapeLazy.
	Inner() SchemaShape

	// Resolve forces a ShapeLazy thunk, returning the real schema.
	Resolve() SchemaShape

	// Validate enforces refinements the core does not model (length
	// bounds, regex, format, ...) at the coercion boundary. Called each
	// time the coercer has built a candidate for this shape, at every
	// nesting level; a non-nil error fails that attempt with
	// ValidationFailed. The dispatcher does not stop on it: later
	// strategies may still produce another candidate.
	Validate(candidate any) (any, error)
}

// DefaultValuer is an optional extension a SchemaShape may implement to
// supply a schema-declared default (e.g. from a JSON Schema "default"
// keyword, or a dynamic default function) for use during partial fill
// (spec §4.9), consulted before the kind-based defaults.
type DefaultValuer interface {
	DefaultValue() (any, bool)
}

// Fingerprint is an optional extension a SchemaShape may implement to give
// cycle detection (spec §3.3) a stable identity. If a shape does not
// implement it, or returns "", the coercer does no cycle detection for that
// shape; only the MaxDepth bound applies.
type Fingerprint interface {
	SchemaFingerprint() string
}
