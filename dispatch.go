package jsonish

import "strings"

// ParseInto runs the ordered strategy dispatcher of spec §4.8 against raw
// LLM output text, coercing the first successful Value against shape. It is
// the package's public entry point (spec §6.1's parse(input, schema,
// options)); the lower-level tolerant tokenizer is exposed separately as
// Parse for callers that want a Value without coercion.
func ParseInto(shape SchemaShape, input string, opts ...Option) (any, error) {
	o := NewOptions(opts...)
	ctx := newParsingContext(o)
	return dispatch(ctx, shape, input)
}

func dispatch(ctx *ParsingContext, shape SchemaShape, input string) (any, error) {
	// 1. String-schema shortcut: return the raw input verbatim.
	if shape.Kind() == ShapeString {
		return validateResult(shape, input)
	}

	// 2. Union-with-string-only shortcut.
	if shape.Kind() == ShapeUnion {
		if v, ok := unionStringOnlyShortcut(shape, input); ok {
			return Coerce(ctx, shape, v)
		}
	}

	// Streaming guard, checked against the raw un-fixed input: a bare
	// unterminated quoted string must fail a literal/enum/union-with-literal
	// schema outright (spec §8.3 scenario 7), not be silently "completed" by
	// step 5's fixing-layer auto-close before a coercer ever sees the
	// truncation. coerceLiteral/coerceUnion already carry this guard, but
	// only see it if the Value handed to them still reports Incomplete —
	// which the auto-closed, freshly-standard-JSON-decoded Value from step 5
	// never does.
	trimmedInput := strings.TrimSpace(input)
	if shapeHasLiteralMatching(shape) && rawInputIsUnterminatedQuotedString(trimmedInput) {
		return nil, errIncomplete("incomplete_streaming_value", "unterminated quoted string while matching a literal schema", nil)
	}

	// 3. Standard JSON parse.
	if v := tryStandardJSON(trimmedInput); v != nil {
		if result, err := Coerce(ctx, shape, v); err == nil {
			return result, nil
		} else if isShortCircuiting(err) {
			return nil, err
		}
	}

	// 4. Extract candidates from text for container schemas.
	if isContainerKind(shape.Kind()) {
		if result, err, handled := tryExtractedCandidates(ctx, shape, input); handled {
			if err != nil && isShortCircuiting(err) {
				return nil, err
			}
			if err == nil {
				return result, nil
			}
		}
	}

	// 5. Fixing layer -> standard JSON -> coerce.
	if o := ctx.opts; o.AllowFixes {
		fixed := fixText(trimmedInput)
		if v := tryStandardJSON(fixed); v != nil {
			if result, err := Coerce(ctx, shape, v); err == nil {
				return result, nil
			} else if isShortCircuiting(err) {
				return nil, err
			}
		}
	}

	// 6. State-machine parse -> coerce (container kinds, see isContainerKind).
	if isContainerKind(shape.Kind()) && ctx.opts.AllowMalformed {
		v, fixes := Parse(trimmedInput)
		wrapped := v
		if len(fixes) > 0 {
			wrapped = NewFixedJSON(v, fixes)
		}
		if result, err := Coerce(ctx, shape, wrapped); err == nil {
			return result, nil
		} else if isShortCircuiting(err) {
			return nil, err
		}
	}

	// 7. Extract-from-text per-schema for scalar kinds.
	if isScalarKind(shape.Kind()) {
		if result, err := Coerce(ctx, shape, NewString(input)); err == nil {
			return result, nil
		} else if isShortCircuiting(err) {
			return nil, err
		}
	}

	// 8. Partial fill.
	if ctx.opts.AllowPartial && isContainerKind(shape.Kind()) {
		if result, err := partialFill(ctx, shape, input); err == nil {
			return result, nil
		} else if isShortCircuiting(err) {
			return nil, err
		}
	}

	// 9. Final fallback: wrap raw input as a String Value.
	if ctx.opts.AllowAsString {
		return Coerce(ctx, shape, NewString(input))
	}

	return nil, errParseFailure("no_strategy_succeeded", "no parse strategy matched schema {kind}", map[string]any{"kind": shape.Kind()})
}

func isContainerKind(k ShapeKind) bool {
	switch k {
	case ShapeObject, ShapeArray, ShapeRecord, ShapeUnion, ShapeDiscriminatedUnion, ShapeOptional, ShapeNullable, ShapeLazy:
		return true
	default:
		return false
	}
}

func isScalarKind(k ShapeKind) bool {
	switch k {
	case ShapeNumber, ShapeBoolean, ShapeEnum, ShapeLiteral, ShapeNull:
		return true
	default:
		return false
	}
}

// shapeHasLiteralMatching reports whether coercing against shape can ever
// hinge on an exact literal match — directly (Literal/Enum) or through a
// union option — the cases where an unterminated string must never be
// treated as a clean match.
func shapeHasLiteralMatching(shape SchemaShape) bool {
	switch shape.Kind() {
	case ShapeLiteral, ShapeEnum:
		return true
	case ShapeUnion, ShapeDiscriminatedUnion:
		return hasLiteralOption(shape.Options())
	default:
		return false
	}
}

// rawInputIsUnterminatedQuotedString reports whether trimmed is a single
// top-level quoted string left open at EOF, the exact shape step 5's
// fixAutoClose would silently repair into a complete string.
func rawInputIsUnterminatedQuotedString(trimmed string) bool {
	if len(trimmed) == 0 {
		return false
	}
	quote := trimmed[0]
	if quote != '"' && quote != '\'' {
		return false
	}
	escape := false
	for i := 1; i < len(trimmed); i++ {
		c := trimmed[i]
		if escape {
			escape = false
			continue
		}
		if c == '\\' {
			escape = true
			continue
		}
		if c == quote {
			return false
		}
	}
	return true
}

func unionStringOnlyShortcut(shape SchemaShape, input string) (*Value, bool) {
	hasString := false
	for _, opt := range shape.Options() {
		switch opt.Kind() {
		case ShapeString:
			hasString = true
		case ShapeArray, ShapeObject:
			return nil, false
		}
	}
	if !hasString {
		return nil, false
	}
	trimmed := strings.TrimSpace(input)
	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
		return NewString(dequote(trimmed)), true
	}
	return nil, false
}

// tryExtractedCandidates runs the extraction pipeline and, for Array
// schemas, additionally builds a synthetic Array Value from multiple
// sibling object spans (spec §4.8 step 4). handled reports whether any
// candidate was attempted at all.
func tryExtractedCandidates(ctx *ParsingContext, shape SchemaShape, input string) (any, error, bool) {
	candidates := extractCandidates(input)
	if !ctx.opts.AllowMarkdownJSON {
		// extractCandidates lists the fenced-block candidates first.
		candidates = candidates[len(extractMarkdownBlocks(input)):]
	}

	if shape.Kind() == ShapeArray {
		spans := extractObjectSpans(input)
		if len(spans) >= 2 {
			elems := make([]*Value, 0, len(spans))
			for _, span := range spans {
				if v := parseCandidateText(span); v != nil {
					elems = append(elems, v)
				}
			}
			if len(elems) >= 2 {
				candidates = append([]candidate{{value: NewArray(elems, false), text: input}}, candidates...)
			}
		}
	}

	if len(candidates) == 0 {
		return nil, nil, false
	}

	var lastErr error
	for _, c := range candidates {
		result, err := Coerce(ctx, shape, c.value)
		if err == nil {
			return result, nil, true
		}
		if isShortCircuiting(err) {
			return nil, err, true
		}
		lastErr = err
	}
	return nil, lastErr, true
}
