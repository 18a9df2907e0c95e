package jsonish

import (
	"strings"

	"github.com/goccy/go-json"
)

// candidate is one extracted value together with the raw text it came
// from. The dispatcher coerces value; text is carried alongside and is not
// read by the dispatcher.
type candidate struct {
	value *Value
	text  string
}

// extractMarkdownBlocks finds fenced code blocks and parses each as a
// candidate (spec §4.3). Blocks not tagged json/javascript are still
// attempted; on failure the raw fence contents are kept as a String.
func extractMarkdownBlocks(input string) []candidate {
	var out []candidate
	rest := input
	for {
		start := strings.Index(rest, "```")
		if start == -1 {
			break
		}
		afterFence := rest[start+3:]
		nl := strings.IndexByte(afterFence, '\n')
		var lang, body string
		if nl == -1 {
			body = afterFence
		} else {
			lang = strings.TrimSpace(afterFence[:nl])
			if !isFenceLangTag(lang) {
				lang = ""
				body = afterFence
			} else {
				body = afterFence[nl+1:]
			}
		}
		end := strings.Index(body, "```")
		var content string
		if end == -1 {
			content = body
			rest = ""
		} else {
			content = body[:end]
			rest = body[end+3:]
		}

		v := parseCandidateText(content)
		if v == nil {
			v = NewString(strings.TrimSpace(content))
		}
		if lang != "" {
			v = NewMarkdown(lang, v)
		}
		out = append(out, candidate{value: v, text: content})

		if end == -1 {
			break
		}
	}
	return out
}

func isFenceLangTag(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}

// parseCandidateText tries standard JSON, then the fixing layer, then the
// tolerant state machine, returning nil if nothing produced a value.
func parseCandidateText(text string) *Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if v := tryStandardJSON(trimmed); v != nil {
		return v
	}
	if v := tryStandardJSON(fixText(trimmed)); v != nil {
		return v
	}
	v, fixes := Parse(trimmed)
	if len(fixes) > 0 {
		return NewFixedJSON(v, fixes)
	}
	return v
}

func tryStandardJSON(text string) *Value {
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil
	}
	return FromJSON(decoded)
}

// extractBalancedSpans scans text for balanced '{'/'}' or '['/']' spans at
// nesting depth zero, outside quoted regions, in order of appearance.
func extractBalancedSpans(text string, open, close byte) []string {
	var spans []string
	depth := 0
	start := -1
	inQuote := false
	quote := byte(0)
	escape := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuote {
			if escape {
				escape = false
			} else if c == '\\' {
				escape = true
			} else if c == quote {
				inQuote = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inQuote = true
			quote = c
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					spans = append(spans, text[start:i+1])
					start = -1
				}
			}
		}
	}
	if depth > 0 && start != -1 {
		// unterminated tail; caller repairs via the fixing layer.
		spans = append(spans, text[start:])
	}
	return spans
}

// extractCandidates runs the full extraction pipeline over free text (spec
// §4.3): markdown blocks first, then balanced object/array spans in order
// of appearance.
func extractCandidates(input string) []candidate {
	var out []candidate
	out = append(out, extractMarkdownBlocks(input)...)

	for _, span := range extractBalancedSpans(input, '{', '}') {
		v := parseCandidateText(span)
		if v != nil {
			out = append(out, candidate{value: v, text: span})
		}
	}
	for _, span := range extractBalancedSpans(input, '[', ']') {
		v := parseCandidateText(span)
		if v != nil {
			out = append(out, candidate{value: v, text: span})
		}
	}
	return out
}

// extractObjectSpans returns every balanced {...} span found in input, used
// to build an Array Value when the target schema is an array of objects
// and the text contains several sibling objects (spec §4.3, §4.8 step 4).
func extractObjectSpans(input string) []string {
	return extractBalancedSpans(input, '{', '}')
}
