package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Scenario 1: prose + JSON, Object schema {hi: string[]}.
func TestScenarioProseWithEmbeddedJSON(t *testing.T) {
	shape := objectShape(field("hi", arrayShape(stringShape()), false))
	result, err := ParseInto(shape, `The output is: {"hi": ["a", "b"]}`)
	assert.NoError(t, err)
	obj := result.(map[string]any)
	assert.Equal(t, []any{"a", "b"}, obj["hi"])
}

// Scenario 2: literal with case coercion.
func TestScenarioLiteralCaseCoercion(t *testing.T) {
	shape := literalShape("TWO")
	ctx := newParsingContext(DefaultOptions())
	result, err := Coerce(ctx, shape, NewString("two"))
	assert.NoError(t, err)
	assert.Equal(t, "TWO", result)
}

// Scenario 3: enum ambiguity must fail.
func TestScenarioEnumAmbiguity(t *testing.T) {
	shape := enumShape("ONE", "TWO")
	ctx := newParsingContext(DefaultOptions())
	_, err := Coerce(ctx, shape, NewString(`"Two" is one of the correct answers.`))
	assert.Error(t, err)
	var e *Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, Ambiguous, e.Kind)
}

// Scenario 4: number coercion variants.
func TestScenarioNumberCoercion(t *testing.T) {
	ctx := newParsingContext(DefaultOptions())
	shape := numberShape()

	result, err := Coerce(ctx, shape, NewString("$1,234.56"))
	assert.NoError(t, err)
	assert.Equal(t, 1234.56, result)

	result, err = Coerce(ctx, shape, NewString("1/5"))
	assert.NoError(t, err)
	assert.Equal(t, 0.2, result)

	result, err = Coerce(ctx, shape, NewString("1 cup butter"))
	assert.NoError(t, err)
	assert.Equal(t, 1.0, result)
}

// Scenario 5: partial object with truncated array. Exercises partialObject
// directly against a hand-built Value so the test is independent of
// whether an earlier dispatcher strategy would also happen to succeed on
// this particular truncated text.
func TestScenarioPartialObjectTruncatedArray(t *testing.T) {
	shape := objectShape(
		field("name", stringShape(), false),
		field("email", nullableShape(stringShape()), false),
		field("phone", nullableShape(stringShape()), false),
		field("experience", arrayShape(stringShape()), false),
		field("education", arrayShape(stringShape()), false),
		field("skills", arrayShape(stringShape()), false),
	)

	// experience's second element is Incomplete (as the state-machine
	// parser would mark an unterminated quoted string); partialArray must
	// stop at the first Incomplete element instead of including it.
	input := NewObject([]Pair{
		{Key: "name", Value: NewString("Jane")},
		{Key: "experience", Value: NewArray([]*Value{
			NewString("built X"),
			NewStringIncomplete("led Y"),
		}, true)},
	}, true)

	ctx := newParsingContext(DefaultOptions())
	result, err := partialObject(ctx, shape, input)
	assert.NoError(t, err)
	obj := result.(map[string]any)
	assert.Equal(t, "Jane", obj["name"])
	assert.Nil(t, obj["email"])
	assert.Nil(t, obj["phone"])
	assert.Equal(t, []any{"built X"}, obj["experience"])
	assert.Equal(t, []any{}, obj["education"])
	assert.Equal(t, []any{}, obj["skills"])
}

// Scenario 6: union resolution by scoring.
func TestScenarioUnionScoring(t *testing.T) {
	shape := unionShape(numberShape(), stringShape())
	ctx := newParsingContext(DefaultOptions())
	result, err := Coerce(ctx, shape, NewString("1 cup unsalted butter"))
	assert.NoError(t, err)
	assert.Equal(t, "1 cup unsalted butter", result)
}

// Scenario 7: streaming guard on an unterminated literal union.
func TestScenarioStreamingGuard(t *testing.T) {
	shape := unionShape(literalShape("pay"), literalShape("pay_without_credit_card"))
	ctx := newParsingContext(DefaultOptions())
	v, _ := Parse("\n \"pay\n ")
	_, err := Coerce(ctx, shape, v)
	assert.Error(t, err)
	var e *Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, Incomplete, e.Kind)
}

// Scenario 7b: the same streaming guard exercised through the public
// ParseInto entry point, where the fixing layer's auto-close would
// otherwise repair the truncated string into a clean match before any
// coercer saw the truncation.
func TestScenarioStreamingGuardThroughParseInto(t *testing.T) {
	shape := unionShape(literalShape("pay"), literalShape("pay_without_credit_card"))
	_, err := ParseInto(shape, "\n \"pay\n ")
	assert.Error(t, err)
	var e *Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, Incomplete, e.Kind)
}

// Scenario 8: null{...} recovery preserves the embedded fragment as a string.
func TestScenarioNullBraceRecovery(t *testing.T) {
	shape := objectShape(field("field", stringShape(), false))
	result, err := ParseInto(shape, `{"field": null{"inner": "value"}}`)
	assert.NoError(t, err)
	obj := result.(map[string]any)
	assert.Contains(t, obj["field"], "null{")
}

func TestStringSchemaShortcutReturnsRawInput(t *testing.T) {
	result, err := ParseInto(stringShape(), `  {"a": 1}  `)
	assert.NoError(t, err)
	assert.Equal(t, `  {"a": 1}  `, result)
}

func TestCleanJSONIdentity(t *testing.T) {
	shape := objectShape(field("a", numberShape(), false))
	result, err := ParseInto(shape, `{"a": 1}`)
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0}, result)
}

func TestDeterminism(t *testing.T) {
	shape := objectShape(field("a", numberShape(), false))
	r1, err1 := ParseInto(shape, `{"a": 1}`)
	r2, err2 := ParseInto(shape, `{"a": 1}`)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, r1, r2)
}

func TestCycleDetection(t *testing.T) {
	var self *fakeShape
	self = &fakeShape{kind: ShapeLazy, fingerprint: "self", lazyResolve: func() SchemaShape { return self }}
	ctx := newParsingContext(DefaultOptions())
	_, err := Coerce(ctx, self, NewString("x"))
	assert.Error(t, err)
	var e *Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, CycleDetected, e.Kind)
}
