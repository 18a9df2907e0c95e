package jsonish

import "strings"

// partialFill implements spec §4.9: recover a well-shaped value from
// truncated streaming input, filling unseen fields with kind-based
// defaults.
func partialFill(ctx *ParsingContext, shape SchemaShape, input string) (any, error) {
	closed := autoCloseText(strings.TrimSpace(input))

	var v *Value
	if parsed := tryStandardJSON(closed); parsed != nil {
		v = parsed
	} else if parsed := tryStandardJSON(fixText(closed)); parsed != nil {
		v = parsed
	} else {
		sv, _ := Parse(closed)
		v = sv
	}

	switch shape.Kind() {
	case ShapeObject:
		return partialObject(ctx, shape, v)
	case ShapeArray:
		return partialArray(ctx, shape, v)
	case ShapeRecord:
		return partialRecord(ctx, shape, v)
	default:
		return Coerce(ctx, shape, v)
	}
}

// coercePartialField coerces a single present field's value during partial
// fill, recursing into the truncation-aware container helpers instead of
// the plain Coerce dispatch so an Incomplete element nested in a field's
// array or record still gets truncated rather than silently kept.
func coercePartialField(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	switch shape.Kind() {
	case ShapeArray:
		return partialArray(ctx, shape, v)
	case ShapeObject:
		return partialObject(ctx, shape, v)
	case ShapeRecord:
		return partialRecord(ctx, shape, v)
	default:
		return Coerce(ctx, shape, v)
	}
}

func partialObject(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	result := make(map[string]any)
	uw := v.Unwrap()
	for _, f := range shape.Fields() {
		var inputValue *Value
		var present bool
		if uw.Kind() == KindObject {
			inputValue, present = lookupObjectField(uw, f.Name)
		}
		if present {
			coerced, err := coercePartialField(ctx, f.Schema, inputValue)
			if err == nil {
				result[f.Name] = coerced
				continue
			}
			if isShortCircuiting(err) {
				return nil, err
			}
		}
		if f.Optional {
			continue
		}
		result[f.Name] = defaultForShape(f.Schema)
	}
	return validateResult(shape, result)
}

func partialArray(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	uw := v.Unwrap()
	if uw.Kind() != KindArray {
		return []any{}, nil
	}
	elemShape := shape.Elem()
	result := make([]any, 0, len(uw.Elements()))
	for _, e := range uw.Elements() {
		if e.Completion() == Incomplete {
			break
		}
		coerced, err := Coerce(ctx, elemShape, e)
		if err != nil {
			if isShortCircuiting(err) {
				return nil, err
			}
			break
		}
		result = append(result, coerced)
	}
	return validateResult(shape, result)
}

func partialRecord(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	uw := v.Unwrap()
	if uw.Kind() != KindObject {
		return map[string]any{}, nil
	}
	keyShape := shape.RecordKey()
	valueShape := shape.RecordValue()
	result := make(map[string]any)
	for _, e := range uw.Entries() {
		if e.Value.Completion() == Incomplete {
			continue
		}
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

// defaultForShape returns the default used to fill a field that could not
// be recovered from truncated input (spec §4.9): a schema-declared default
// from DefaultValuer if there is one, else the kind-based default.
func defaultForShape(shape SchemaShape) any {
	if dv, ok := shape.(DefaultValuer); ok {
		if val, has := dv.DefaultValue(); has {
			return val
		}
	}
	switch shape.Kind() {
	case ShapeString:
		return ""
	case ShapeNumber:
		return 0.0
	case ShapeBoolean:
		return false
	case ShapeArray:
		return []any{}
	case ShapeObject, ShapeRecord:
		return map[string]any{}
	case ShapeNull, ShapeNullable:
		return nil
	case ShapeOptional:
		return nil
	default:
		return nil
	}
}

// autoCloseText walks the text tracking a stack of open '{'/'[' outside
// strings, strips a trailing ',', and appends closing brackets in LIFO
// order.
func autoCloseText(text string) string {
	var stack []byte
	inQuote := false
	escape := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuote {
			if escape {
				escape = false
			} else if c == '\\' {
				escape = true
			} else if c == '"' {
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	trimmed := strings.TrimRight(text, " \t\n\r")
	trimmed = strings.TrimSuffix(trimmed, ",")
	var sb strings.Builder
	sb.WriteString(trimmed)
	if inQuote {
		sb.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			sb.WriteByte('}')
		} else {
			sb.WriteByte(']')
		}
	}
	return sb.String()
}
