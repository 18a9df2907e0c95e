package jsonish

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// Coerce maps v onto shape under ctx, dispatching on shape.Kind() (spec
// §4.5). It is the single entry point the dispatcher and container
// coercers call recursively.
func Coerce(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	done, err := ctx.enter(shape, v)
	defer done()
	if err != nil {
		return nil, err
	}

	switch shape.Kind() {
	case ShapeString:
		return coerceString(v)
	case ShapeNumber:
		return coerceNumber(v)
	case ShapeBoolean:
		return coerceBoolean(v)
	case ShapeNull:
		return coerceNull(v)
	case ShapeEnum:
		return coerceEnum(shape, v)
	case ShapeLiteral:
		return coerceLiteral(ctx, shape, v)
	case ShapeObject:
		return coerceObject(ctx, shape, v)
	case ShapeArray:
		return coerceArray(ctx, shape, v)
	case ShapeRecord:
		return coerceRecord(ctx, shape, v)
	case ShapeUnion:
		return coerceUnion(ctx, shape, v)
	case ShapeDiscriminatedUnion:
		return coerceDiscriminatedUnion(ctx, shape, v)
	case ShapeOptional:
		return coerceOptional(ctx, shape, v)
	case ShapeNullable:
		return coerceNullable(ctx, shape, v)
	case ShapeLazy:
		return Coerce(ctx, shape.Resolve(), v)
	default:
		return nil, errTypeMismatch("unknown_shape", "unsupported schema shape {kind}", map[string]any{"kind": shape.Kind()})
	}
}

// failureReporter is satisfied by schema adapters (e.g. jsonish/schema's
// Shape) that can break a validation rejection down by failing keyword.
// When present, its Details feed errValidation's {keywords}/{details}
// placeholders directly, instead of collapsing the rejection to whatever
// string the adapter's error happens to format on its own.
type failureReporter interface {
	Failures() map[string]string
}

func validateResult(shape SchemaShape, result any) (any, error) {
	validated, err := shape.Validate(result)
	if err == nil {
		return validated, nil
	}
	var fr failureReporter
	if errors.As(err, &fr) {
		details := fr.Failures()
		keywords := make([]string, 0, len(details))
		for keyword := range details {
			keywords = append(keywords, keyword)
		}
		sort.Strings(keywords)
		parts := make([]string, 0, len(keywords))
		for _, keyword := range keywords {
			parts = append(parts, keyword+": "+details[keyword])
		}
		return nil, errValidation("validation_failed", "schema validation failed for keywords [{keywords}]: {details}", map[string]any{
			"keywords": strings.Join(keywords, ", "),
			"details":  strings.Join(parts, "; "),
		})
	}
	return nil, errValidation("validation_failed", err.Error())
}

// coerceString implements spec §4.5.1.
func coerceString(v *Value) (any, error) {
	uw := v.Unwrap()
	switch uw.Kind() {
	case KindString:
		return uw.Text(), nil
	case KindNumber:
		return formatNumber(uw.Num()), nil
	case KindBoolean:
		return strconv.FormatBool(uw.Bool()), nil
	case KindNull:
		return "null", nil
	case KindObject, KindArray:
		return uw.Render(), nil
	case KindAnyOf:
		return uw.OriginalText(), nil
	default:
		return nil, errTypeMismatch("string_coercion_failed", "cannot coerce {kind} to string", map[string]any{"kind": uw.Kind()})
	}
}

// coerceNumber implements spec §4.5.2.
func coerceNumber(v *Value) (any, error) {
	uw := v.Unwrap()
	switch uw.Kind() {
	case KindNumber:
		return uw.Num(), nil
	case KindBoolean:
		if uw.Bool() {
			return 1.0, nil
		}
		return 0.0, nil
	case KindString:
		if n, ok := parseTolerantNumber(uw.Text()); ok {
			return n, nil
		}
		if n, ok := extractFirstNumber(uw.Text()); ok {
			return n, nil
		}
		return nil, errTypeMismatch("number_coercion_failed", "no number found in {text}", map[string]any{"text": uw.Text()})
	default:
		return nil, errTypeMismatch("number_coercion_failed", "cannot coerce {kind} to number", map[string]any{"kind": uw.Kind()})
	}
}

// parseTolerantNumber handles spec §4.5.2's string-to-number rules:
// stripped commas, a leading '$', p/q division, and a tolerated trailing
// '.'.
func parseTolerantNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return 0, false
	}
	if idx := strings.IndexByte(s, '/'); idx > 0 {
		numer, err1 := strconv.ParseFloat(s[:idx], 64)
		denom, err2 := strconv.ParseFloat(s[idx+1:], 64)
		if err1 == nil && err2 == nil && denom != 0 {
			return numer / denom, true
		}
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// extractFirstNumber scans free text for the first decimal-number
// substring, e.g. "1 cup butter" -> 1.
func extractFirstNumber(s string) (float64, bool) {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '-' || (runes[i] >= '0' && runes[i] <= '9') {
			j := i
			if runes[j] == '-' {
				j++
			}
			start := j
			for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
				j++
			}
			if j == start {
				continue
			}
			if j < len(runes) && runes[j] == '.' {
				j++
				for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
					j++
				}
			}
			if n, err := strconv.ParseFloat(string(runes[i:j]), 64); err == nil {
				return n, true
			}
			i = j
		}
	}
	return 0, false
}

// coerceBoolean implements spec §4.5.3.
func coerceBoolean(v *Value) (any, error) {
	uw := v.Unwrap()
	switch uw.Kind() {
	case KindBoolean:
		return uw.Bool(), nil
	case KindNumber:
		return uw.Num() != 0, nil
	case KindString:
		text := strings.Trim(uw.Text(), "*")
		text = strings.TrimSpace(text)
		switch strings.ToLower(text) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		hasTrue := containsWholeWordFold(uw.Text(), "true")
		hasFalse := containsWholeWordFold(uw.Text(), "false")
		if hasTrue && hasFalse {
			return nil, errAmbiguous("ambiguous_boolean", "both true and false appear in {text}", map[string]any{"text": uw.Text()})
		}
		if hasTrue {
			return true, nil
		}
		if hasFalse {
			return false, nil
		}
		return nil, errTypeMismatch("boolean_coercion_failed", "no boolean found in {text}", map[string]any{"text": uw.Text()})
	default:
		return nil, errTypeMismatch("boolean_coercion_failed", "cannot coerce {kind} to boolean", map[string]any{"kind": uw.Kind()})
	}
}

// coerceNull implements spec §4.5.4: only a Null Value matches.
func coerceNull(v *Value) (any, error) {
	if v.Unwrap().Kind() == KindNull {
		return nil, nil
	}
	return nil, errTypeMismatch("null_coercion_failed", "value is not null", nil)
}

func containsWholeWordFold(text, word string) bool {
	lower := strings.ToLower(text)
	target := strings.ToLower(word)
	idx := 0
	for {
		pos := strings.Index(lower[idx:], target)
		if pos == -1 {
			return false
		}
		pos += idx
		before := rune(0)
		if pos > 0 {
			before = rune(lower[pos-1])
		}
		afterIdx := pos + len(target)
		after := rune(0)
		if afterIdx < len(lower) {
			after = rune(lower[afterIdx])
		}
		if !isIdentRune(before) && !isIdentRune(after) {
			return true
		}
		idx = pos + 1
	}
}
