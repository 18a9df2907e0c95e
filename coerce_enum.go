package jsonish

import "strings"

// coerceEnum implements spec §4.5.5's ordered match strategy.
func coerceEnum(shape SchemaShape, v *Value) (any, error) {
	variants := shape.Variants()
	uw := v.Unwrap()

	if uw.Kind() == KindString {
		s, status := matchEnumString(variants, uw.Text())
		switch status {
		case matchStatusOK:
			return s, nil
		case matchStatusAmbiguous:
			return nil, errAmbiguous("enum_ambiguous", "multiple enum variants match {text}", map[string]any{"text": uw.Text()})
		default:
			return nil, errTypeMismatch("enum_no_match", "no enum variant matches {text}", map[string]any{"text": uw.Text()})
		}
	}

	if uw.Kind() == KindArray {
		for _, e := range uw.Elements() {
			if s, err := coerceEnum(shape, e); err == nil {
				return s, nil
			}
		}
		return nil, errTypeMismatch("enum_no_match", "no array element matches an enum variant", nil)
	}

	if uw.Kind() != KindNull {
		return coerceEnum(shape, NewString(uw.Render()))
	}

	return nil, errTypeMismatch("enum_no_match", "cannot match enum against {kind}", map[string]any{"kind": uw.Kind()})
}

type matchStatus int

const (
	matchStatusNone matchStatus = iota
	matchStatusOK
	matchStatusAmbiguous
)

func matchEnumString(variants []string, text string) (string, matchStatus) {
	// 1. exact equality.
	for _, v := range variants {
		if v == text {
			return v, matchStatusOK
		}
	}

	// 2. dequote then exact.
	deq := dequote(text)
	if deq != text {
		for _, v := range variants {
			if v == deq {
				return v, matchStatusOK
			}
		}
	}

	// 3. case-insensitive.
	for _, v := range variants {
		if strings.EqualFold(v, deq) {
			return v, matchStatusOK
		}
	}

	// 4/5. substring search for whole-word occurrences, preferring
	// exact-case over case-insensitive; detect ambiguity.
	stripped := stripMarkdownEmphasis(text)
	var exactHits, foldHits []string
	var exactPos, foldPos []int
	for _, v := range variants {
		if pos, ok := findWholeWord(stripped, v, true); ok {
			exactHits = append(exactHits, v)
			exactPos = append(exactPos, pos)
		} else if pos, ok := findWholeWord(stripped, v, false); ok {
			foldHits = append(foldHits, v)
			foldPos = append(foldPos, pos)
		}
	}

	if len(exactHits) == 1 {
		return exactHits[0], matchStatusOK
	}
	if len(exactHits) == 0 && len(foldHits) == 1 {
		return foldHits[0], matchStatusOK
	}

	allHits := append(append([]string{}, exactHits...), foldHits...)
	allPos := append(append([]int{}, exactPos...), foldPos...)
	if len(allHits) >= 2 {
		// earliest variant immediately followed by ':' or '-' wins if no
		// other variant appears later.
		earliestIdx := 0
		for i, p := range allPos {
			if p < allPos[earliestIdx] {
				earliestIdx = i
			}
		}
		markerPos := allPos[earliestIdx] + len(allHits[earliestIdx])
		if markerPos < len(stripped) && (stripped[markerPos] == ':' || stripped[markerPos] == '-') {
			isOnlyLater := true
			for i, p := range allPos {
				if i != earliestIdx && p > allPos[earliestIdx] {
					isOnlyLater = false
				}
			}
			if isOnlyLater {
				return allHits[earliestIdx], matchStatusOK
			}
		}
		return "", matchStatusAmbiguous
	}
	if len(allHits) == 1 {
		return allHits[0], matchStatusOK
	}

	return "", matchStatusNone
}

func dequote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func stripMarkdownEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	return s
}

// findWholeWord returns the byte offset of the first whole-word occurrence
// of word within text, case-sensitively or case-insensitively.
func findWholeWord(text, word string, exact bool) (int, bool) {
	haystack := text
	needle := word
	if !exact {
		haystack = strings.ToLower(text)
		needle = strings.ToLower(word)
	}
	idx := 0
	for {
		pos := strings.Index(haystack[idx:], needle)
		if pos == -1 {
			return 0, false
		}
		pos += idx
		before := rune(0)
		if pos > 0 {
			before = rune(haystack[pos-1])
		}
		afterIdx := pos + len(needle)
		after := rune(0)
		if afterIdx < len(haystack) {
			after = rune(haystack[afterIdx])
		}
		if !isIdentRune(before) && !isIdentRune(after) {
			return pos, true
		}
		idx = pos + 1
	}
}
