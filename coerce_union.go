package jsonish

// coerceUnion implements spec §4.5.10.
func coerceUnion(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	options := shape.Options()
	uw := v.Unwrap()

	if uw.Kind() == KindString {
		if uw.Completion() == Incomplete && hasLiteralOption(options) {
			return nil, errIncomplete("incomplete_union", "unterminated quoted string in a union with a literal option", nil)
		}
		if countNonStringLiteralHits(options, uw.Text()) >= 2 {
			return nil, errAmbiguous("ambiguous_union", "multiple non-string literal options match {text}", map[string]any{"text": uw.Text()})
		}
	}

	var results []scoredResult
	for _, opt := range options {
		coerced, err := Coerce(ctx, opt, v)
		if err != nil {
			if isShortCircuiting(err) {
				return nil, err
			}
			continue
		}
		score := scoreFor(opt, v, coerced) + hostTypeBonus(opt, coerced)
		results = append(results, scoredResult{value: coerced, score: score})
	}

	if best, ok := bestScored(results); ok {
		return validateResult(shape, best)
	}

	return unionFallback(ctx, options, v)
}

func hasLiteralOption(options []SchemaShape) bool {
	for _, o := range options {
		if o.Kind() == ShapeLiteral {
			return true
		}
	}
	return false
}

func countNonStringLiteralHits(options []SchemaShape, text string) int {
	count := 0
	for _, o := range options {
		if o.Kind() != ShapeLiteral {
			continue
		}
		if _, isString := o.LiteralValue().(string); isString {
			continue
		}
		target := literalText(o.LiteralValue())
		if target == "" {
			continue
		}
		if _, ok := findWholeWord(text, target, false); ok {
			count++
		}
	}
	return count
}

// unionFallback implements spec §4.5.10's progressively more aggressive
// fallbacks when no option coerced cleanly.
func unionFallback(ctx *ParsingContext, options []SchemaShape, v *Value) (any, error) {
	for _, opt := range options {
		if opt.Kind() == ShapeString {
			return v.Unwrap().Render(), nil
		}
	}
	uw := v.Unwrap()
	if uw.Kind() == KindString {
		for _, opt := range options {
			if opt.Kind() == ShapeNumber {
				if n, ok := extractFirstNumber(uw.Text()); ok {
					return n, nil
				}
			}
		}
		for _, opt := range options {
			if opt.Kind() == ShapeBoolean {
				if containsWholeWordFold(uw.Text(), "yes") || containsWholeWordFold(uw.Text(), "true") {
					return true, nil
				}
				if containsWholeWordFold(uw.Text(), "no") || containsWholeWordFold(uw.Text(), "false") {
					return false, nil
				}
			}
		}
	}
	return nil, errTypeMismatch("union_no_match", "no union option matched", nil)
}

// coerceDiscriminatedUnion implements spec §4.5.11.
func coerceDiscriminatedUnion(ctx *ParsingContext, shape SchemaShape, v *Value) (any, error) {
	field, byValue := shape.Discriminator()
	uw := v.Unwrap()

	if uw.Kind() == KindObject {
		if discVal, ok := lookupObjectField(uw, field); ok {
			key := discVal.Unwrap().Text()
			if target, ok := byValue[key]; ok {
				return Coerce(ctx, target, v)
			}
		}
	}

	return coerceUnion(ctx, shape, v)
}
