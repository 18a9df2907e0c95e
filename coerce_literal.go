package jsonish

import "strings"

// coerceLiteral implements spec §4.5.6's layered literal matching.
func coerceLiteral(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	expected := shape.LiteralValue()
	uw := v.Unwrap()

	// streaming guard: an unterminated quoted string must fail, not fall
	// through to a weaker match.
	if uw.Kind() == KindString && uw.Completion() == Incomplete {
		return nil, errIncomplete("incomplete_literal", "unterminated quoted string while matching a literal", nil)
	}

	// 1. exact equality on matching kind.
	if eq, ok := literalExactMatch(expected, uw); ok {
		return eq, nil
	}

	// 2. string-specific layered comparison.
	if expStr, ok := expected.(string); ok && uw.Kind() == KindString {
		text := uw.Text()
		if dequote(text) == expStr {
			return expStr, nil
		}
		if strings.EqualFold(dequote(text), expStr) {
			return expStr, nil
		}
		if normalizeLiteralText(text) == normalizeLiteralText(expStr) {
			return expStr, nil
		}
	}

	// 3. single-key object unwrap.
	if uw.Kind() == KindObject && len(uw.Entries()) == 1 {
		return coerceLiteral(ctx, shape, uw.Entries()[0].Value)
	}

	// 4. text-extract as for Enum, using the literal's stringified form as
	// the sole variant.
	if uw.Kind() == KindString || uw.Kind() == KindNumber || uw.Kind() == KindBoolean {
		target := literalText(expected)
		if target != "" {
			if _, ok := findWholeWord(stripMarkdownEmphasis(uw.Render()), target, false); ok {
				return expected, nil
			}
		}
	}

	return nil, errTypeMismatch("literal_no_match", "value does not match literal {expected}", map[string]any{"expected": expected})
}

func literalExactMatch(expected any, uw *Value) (any, bool) {
	switch e := expected.(type) {
	case string:
		if uw.Kind() == KindString && uw.Text() == e {
			return e, true
		}
	case bool:
		if uw.Kind() == KindBoolean && uw.Bool() == e {
			return e, true
		}
	case float64:
		if uw.Kind() == KindNumber && uw.Num() == e {
			return e, true
		}
	}
	return nil, false
}

func literalText(expected any) string {
	switch e := expected.(type) {
	case string:
		return e
	case bool:
		if e {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(e)
	default:
		return ""
	}
}
