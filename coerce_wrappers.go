package jsonish

// coerceOptional implements spec §4.5.12: on inner-coerce failure, yield
// absent (reported to the caller as (nil, errOptionalAbsent) — an Object
// coercer treats this as "field absent" rather than an error).
func coerceOptional(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	if isFencedJSONNull(v) {
		return nil, errOptionalAbsent
	}
	result, err := Coerce(ctx, shape.Inner(), v)
	if err != nil {
		if isShortCircuiting(err) {
			return nil, err
		}
		return nil, errOptionalAbsent
	}
	return result, nil
}

// errOptionalAbsent is a private sentinel meaning "field should be treated
// as absent", consumed by coerceObject, which drops the field. Coerce
// returns it unchanged when it is called directly on an Optional shape.
var errOptionalAbsent = errTypeMismatch("optional_absent", "optional field has no value", nil)

// coerceNullable implements spec §4.5.12: a Null Value maps to null; a
// fenced ```json null``` literal also maps to null.
func coerceNullable(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	if v.Unwrap().Kind() == KindNull || isFencedJSONNull(v) {
		return nil, nil
	}
	return Coerce(ctx, shape.Inner(), v)
}

func isFencedJSONNull(v *Value) bool {
	if v.Kind() != KindMarkdown {
		return false
	}
	inner := v.Inner()
	return inner != nil && inner.Unwrap().Kind() == KindNull
}
