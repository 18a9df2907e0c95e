package jsonish

// fakeShape is a minimal, hand-built jsonish.SchemaShape used to exercise
// the coercer without depending on the schema adapter package (which would
// create an import cycle from this package's own tests).
type fakeShape struct {
	kind          ShapeKind
	elem          *fakeShape
	fields        []Field
	recordKey     *fakeShape
	recordValue   *fakeShape
	variants      []string
	literal       any
	options       []SchemaShape
	discField     string
	discByValue   map[string]SchemaShape
	inner         *fakeShape
	lazyResolve   func() SchemaShape
	validateHook  func(any) (any, error)
	defaultValue  any
	hasDefault    bool
	fingerprint   string
}

func (s *fakeShape) Kind() ShapeKind                 { return s.kind }
func (s *fakeShape) Elem() SchemaShape               { return s.elem }
func (s *fakeShape) Fields() []Field                 { return s.fields }
func (s *fakeShape) RecordKey() SchemaShape          { return s.recordKey }
func (s *fakeShape) RecordValue() SchemaShape        { return s.recordValue }
func (s *fakeShape) Variants() []string              { return s.variants }
func (s *fakeShape) LiteralValue() any               { return s.literal }
func (s *fakeShape) Options() []SchemaShape          { return s.options }
func (s *fakeShape) Discriminator() (string, map[string]SchemaShape) {
	return s.discField, s.discByValue
}
func (s *fakeShape) Inner() SchemaShape {
	if s.inner == nil {
		return nil
	}
	return s.inner
}
func (s *fakeShape) Resolve() SchemaShape {
	if s.lazyResolve != nil {
		return s.lazyResolve()
	}
	return s.inner
}
func (s *fakeShape) Validate(candidate any) (any, error) {
	if s.validateHook != nil {
		return s.validateHook(candidate)
	}
	return candidate, nil
}
func (s *fakeShape) DefaultValue() (any, bool) { return s.defaultValue, s.hasDefault }

// fingerprint, when set, lets a fakeShape participate in cycle detection
// (jsonish.Fingerprint) the way a real recursive schema would.
func (s *fakeShape) SchemaFingerprint() string { return s.fingerprint }

func stringShape() *fakeShape  { return &fakeShape{kind: ShapeString} }
func numberShape() *fakeShape  { return &fakeShape{kind: ShapeNumber} }
func boolShape() *fakeShape    { return &fakeShape{kind: ShapeBoolean} }
func nullShape() *fakeShape    { return &fakeShape{kind: ShapeNull} }

func arrayShape(elem *fakeShape) *fakeShape {
	return &fakeShape{kind: ShapeArray, elem: elem}
}

func objectShape(fields ...Field) *fakeShape {
	return &fakeShape{kind: ShapeObject, fields: fields}
}

func enumShape(variants ...string) *fakeShape {
	return &fakeShape{kind: ShapeEnum, variants: variants}
}

func literalShape(val any) *fakeShape {
	return &fakeShape{kind: ShapeLiteral, literal: val}
}

func unionShape(options ...SchemaShape) *fakeShape {
	return &fakeShape{kind: ShapeUnion, options: options}
}

func optionalShape(inner *fakeShape) *fakeShape {
	return &fakeShape{kind: ShapeOptional, inner: inner}
}

func nullableShape(inner *fakeShape) *fakeShape {
	return &fakeShape{kind: ShapeNullable, inner: inner}
}

func field(name string, schema SchemaShape, optional bool) Field {
	return Field{Name: name, Schema: schema, Optional: optional}
}
