package jsonish

// coerceObject implements spec §4.5.7.
func coerceObject(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	uw := v.Unwrap()

	if uw.Kind() == KindString {
		trimmed := uw.Text()
		if looksLikeContainer(trimmed) {
			if reparsed := parseCandidateText(trimmed); reparsed != nil {
				return coerceObject(ctx, shape, reparsed)
			}
		}
	}

	fields := shape.Fields()

	if uw.Kind() == KindObject {
		result := make(map[string]any, len(fields))
		for _, f := range fields {
			inputValue, ok := lookupObjectField(uw, f.Name)
			if !ok {
				continue
			}
			coerced, err := Coerce(ctx, f.Schema, inputValue)
			if err != nil {
				if isShortCircuiting(err) {
					return nil, err
				}
				if f.Optional || err == errOptionalAbsent {
					continue
				}
				return nil, err
			}
			result[f.Name] = coerced
		}
		return validateResult(shape, result)
	}

	// single-field wrapping: a primitive Value fills the lone field.
	if len(fields) == 1 && isPrimitiveKind(uw.Kind()) {
		coerced, err := Coerce(ctx, fields[0].Schema, v)
		if err != nil {
			return nil, err
		}
		return validateResult(shape, map[string]any{fields[0].Name: coerced})
	}

	return nil, errTypeMismatch("object_coercion_failed", "cannot coerce {kind} to object", map[string]any{"kind": uw.Kind()})
}

// lookupObjectField finds the input entry that best matches fieldName using
// the field-match priority order (spec §4.6), trying each input key against
// the single target field.
func lookupObjectField(obj *Value, fieldName string) (*Value, bool) {
	target := []Field{{Name: fieldName}}
	bestKey, best, found := "", matchNone, false
	for _, key := range obj.Keys() {
		if _, c, ok := matchField(key, target); ok && (!found || c < best) {
			bestKey, best, found = key, c, true
		}
	}
	if !found {
		return nil, false
	}
	val, _ := obj.Get(bestKey)
	return val, true
}

func looksLikeContainer(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		case '{', '[':
			return true
		default:
			return false
		}
	}
	return false
}

func isPrimitiveKind(k Kind) bool {
	switch k {
	case KindNull, KindBoolean, KindNumber, KindString:
		return true
	default:
		return false
	}
}
