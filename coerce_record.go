package jsonish

import "strings"

// coerceRecord implements spec §4.5.9.
func coerceRecord(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	uw := v.Unwrap()
	keyShape := shape.RecordKey()
	valueShape := shape.RecordValue()

	if uw.Kind() == KindObject {
		result := make(map[string]any, len(uw.Entries()))
		for _, e := range uw.Entries() {
			key, err := coerceRecordKey(keyShape, e.Key)
			if err != nil {
				continue
			}
			val, err := Coerce(ctx, valueShape, e.Value)
			if err != nil {
				if isShortCircuiting(err) {
					return nil, err
				}
				continue
			}
			result[key] = val
		}
		return validateResult(shape, result)
	}

	if uw.Kind() == KindString {
		trimmed := strings.TrimSpace(uw.Text())
		if looksLikeContainer(trimmed) {
			if reparsed := parseCandidateText(trimmed); reparsed != nil {
				return coerceRecord(ctx, shape, reparsed)
			}
		}
		// trivial inputs fail gracefully to an empty record.
		return validateResult(shape, map[string]any{})
	}

	return validateResult(shape, map[string]any{})
}

func coerceRecordKey(keyShape SchemaShape, key string) (string, error) {
	switch keyShape.Kind() {
	case ShapeEnum:
		s, status := matchEnumString(keyShape.Variants(), key)
		if status == matchStatusOK {
			return s, nil
		}
		return "", errTypeMismatch("record_key_no_match", "key {key} does not match enum", map[string]any{"key": key})
	case ShapeLiteral:
		if expected, ok := keyShape.LiteralValue().(string); ok && expected == key {
			return key, nil
		}
		return "", errTypeMismatch("record_key_no_match", "key {key} does not match literal", map[string]any{"key": key})
	default:
		return key, nil
	}
}
