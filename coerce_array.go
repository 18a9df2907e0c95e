package jsonish

// coerceArray implements spec §4.5.8.
func coerceArray(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	uw := v.Unwrap()
	elemShape := shape.Elem()

	if uw.Kind() == KindArray {
		if wrapped, ok, err := tryUnionWrapperPattern(ctx, elemShape, uw); ok {
			return validateResult(shape, wrapped)
		} else if err != nil {
			return nil, err
		}

		result := make([]any, 0, len(uw.Elements()))
		for _, e := range uw.Elements() {
			coerced, err := Coerce(ctx, elemShape, e)
			if err != nil {
				if isShortCircuiting(err) {
					return nil, err
				}
				return nil, err
			}
			result = append(result, coerced)
		}
		return validateResult(shape, result)
	}

	// single-value-to-array: coerce as element and wrap.
	coerced, err := Coerce(ctx, elemShape, v)
	if err != nil {
		return nil, err
	}
	return validateResult(shape, []any{coerced})
}

// tryUnionWrapperPattern implements the spec §4.5.8 union-wrapper pattern:
// when elemShape is a single-field Object whose field type is a Union, and
// every array element coerces cleanly, each element is wrapped under that
// field name.
func tryUnionWrapperPattern(ctx *ParsingContext, elemShape SchemaShape, arr *Value) ([]any, bool, error) {
	if elemShape.Kind() != ShapeObject {
		return nil, false, nil
	}
	fields := elemShape.Fields()
	if len(fields) != 1 || fields[0].Schema.Kind() != ShapeUnion {
		return nil, false, nil
	}
	fieldName := fields[0].Name
	unionShape := fields[0].Schema

	wrapped := make([]any, 0, len(arr.Elements()))
	for _, e := range arr.Elements() {
		if e.Unwrap().Kind() == KindObject {
			return nil, false, nil // already object-shaped, not a bare union payload
		}
		coerced, err := Coerce(ctx, unionShape, e)
		if err != nil {
			return nil, false, nil
		}
		wrapped = append(wrapped, map[string]any{fieldName: coerced})
	}
	return wrapped, true, nil
}
