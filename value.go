package jsonish

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Value.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
	KindMarkdown
	KindFixedJSON
	KindAnyOf
)

var kindNames = [...]string{
	"null", "boolean", "number", "string", "array", "object", "markdown", "fixed_json", "any_of",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "<unknown>"
	}
	return kindNames[k]
}

// Completion records whether a parsed fragment reached a natural end or was
// forced to auto-close by the tolerant parser.
type Completion int

const (
	Complete Completion = iota
	Incomplete
)

// Pair is an ordered object entry. Duplicate keys are preserved during
// parsing; Object.Get resolves duplicates last-wins.
type Pair struct {
	Key   string
	Value *Value
}

// Value is the intermediate tagged representation produced by the
// extractors and the tolerant parser, and consumed by the coercer.
//
// Only the fields relevant to Kind are meaningful; callers should switch on
// Kind rather than inspect fields directly.
type Value struct {
	kind Kind

	boolean bool
	number  float64

	text       string // String payload, or Markdown's language tag
	completion Completion

	elements []*Value // Array elements, Markdown's single inner value ([0]), AnyOf candidates
	entries  []Pair   // Object entries

	fixes []string // FixedJSON fix descriptors, also used to carry parser fix notes on any container

	originalText string // AnyOf's original source text
}

// Kind returns the tag of this Value.
func (v *Value) Kind() Kind { return v.kind }

// Completion returns whether v (or, for containers, its deepest auto-closed
// member) reached a natural end.
func (v *Value) Completion() Completion { return v.completion }

// Fixes returns the fix descriptors accumulated while producing v, if any.
func (v *Value) Fixes() []string { return v.fixes }

// --- constructors ---

func NewNull() *Value { return &Value{kind: KindNull, completion: Complete} }

func NewBool(b bool) *Value { return &Value{kind: KindBoolean, boolean: b, completion: Complete} }

func NewNumber(n float64) *Value { return &Value{kind: KindNumber, number: n, completion: Complete} }

func NewNumberIncomplete(n float64) *Value {
	return &Value{kind: KindNumber, number: n, completion: Incomplete}
}

func NewString(s string) *Value { return &Value{kind: KindString, text: s, completion: Complete} }

func NewStringIncomplete(s string) *Value {
	return &Value{kind: KindString, text: s, completion: Incomplete}
}

// NewArray builds an Array Value; completion is Complete unless any element
// is Incomplete or closeForced is true.
func NewArray(elements []*Value, closeForced bool) *Value {
	c := Complete
	if closeForced {
		c = Incomplete
	}
	for _, e := range elements {
		if e.completion == Incomplete {
			c = Incomplete
		}
	}
	return &Value{kind: KindArray, elements: elements, completion: c}
}

// NewObject builds an Object Value from ordered entries, preserving
// duplicate keys exactly as parsed.
func NewObject(entries []Pair, closeForced bool) *Value {
	c := Complete
	if closeForced {
		c = Incomplete
	}
	for _, e := range entries {
		if e.Value.completion == Incomplete {
			c = Incomplete
		}
	}
	return &Value{kind: KindObject, entries: entries, completion: c}
}

// NewMarkdown wraps inner as the contents of a fenced code block tagged lang.
func NewMarkdown(lang string, inner *Value) *Value {
	return &Value{kind: KindMarkdown, text: lang, elements: []*Value{inner}, completion: inner.completion}
}

// Inner returns the wrapped Value for Markdown, or nil for other kinds.
func (v *Value) Inner() *Value {
	if v.kind == KindMarkdown && len(v.elements) == 1 {
		return v.elements[0]
	}
	return nil
}

// Lang returns the fence language tag for a Markdown Value.
func (v *Value) Lang() string {
	if v.kind == KindMarkdown {
		return v.text
	}
	return ""
}

// NewFixedJSON wraps inner as a Value recovered via textual repair.
func NewFixedJSON(inner *Value, fixes []string) *Value {
	return &Value{kind: KindFixedJSON, elements: []*Value{inner}, fixes: fixes, completion: inner.completion}
}

// NewAnyOf wraps multiple extraction candidates for the same input text.
// Completion is Complete only if every candidate is Complete.
func NewAnyOf(candidates []*Value, originalText string) *Value {
	c := Complete
	for _, cand := range candidates {
		if cand.completion == Incomplete {
			c = Incomplete
		}
	}
	return &Value{kind: KindAnyOf, elements: candidates, originalText: originalText, completion: c}
}

// --- accessors ---

func (v *Value) Bool() bool { return v.boolean }

func (v *Value) Num() float64 { return v.number }

// Text returns the String payload. For Markdown it returns the fence language
// tag, and for other kinds the empty string; use Render for a textual
// representation of any Value.
func (v *Value) Text() string { return v.text }

func (v *Value) Elements() []*Value { return v.elements }

func (v *Value) Entries() []Pair { return v.entries }

func (v *Value) Candidates() []*Value { return v.elements }

func (v *Value) OriginalText() string { return v.originalText }

// Unwrap strips Markdown and FixedJSON wrappers, returning the innermost
// Value. AnyOf is not unwrapped (the coercer must choose a candidate).
func (v *Value) Unwrap() *Value {
	for v != nil && (v.kind == KindMarkdown || v.kind == KindFixedJSON) {
		if len(v.elements) != 1 {
			return v
		}
		v = v.elements[0]
	}
	return v
}

// Get resolves duplicate keys last-wins, per the coerce-time object policy.
func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	var found *Value
	ok := false
	for _, e := range v.entries {
		if e.Key == key {
			found = e.Value
			ok = true
		}
	}
	return found, ok
}

// Keys returns the distinct keys of an Object Value in first-occurrence
// insertion order.
func (v *Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	seen := make(map[string]struct{}, len(v.entries))
	keys := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		if _, ok := seen[e.Key]; !ok {
			seen[e.Key] = struct{}{}
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// FromJSON lifts a generic decoded JSON tree (as produced by
// encoding/json-shaped decoders: map[string]any, []any, string, float64,
// bool, nil) into a fully Complete Value.
func FromJSON(v any) *Value {
	switch t := v.(type) {
	case nil:
		return NewNull()
	case bool:
		return NewBool(t)
	case float64:
		return NewNumber(t)
	case int:
		return NewNumber(float64(t))
	case string:
		return NewString(t)
	case []any:
		elems := make([]*Value, len(t))
		for i, e := range t {
			elems[i] = FromJSON(e)
		}
		return NewArray(elems, false)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Pair, len(keys))
		for i, k := range keys {
			entries[i] = Pair{Key: k, Value: FromJSON(t[k])}
		}
		return NewObject(entries, false)
	default:
		return NewString(fmt.Sprint(t))
	}
}

// Render renders v as canonical JSON-ish text, used by the String coercion
// path (spec §4.5.1) for Object/Array inputs and by union fallbacks.
func (v *Value) Render() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v *Value) render(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBoolean:
		sb.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		sb.WriteString(formatNumber(v.number))
	case KindString:
		sb.WriteString(strconv.Quote(v.text))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.render(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(e.Key))
			sb.WriteString(": ")
			e.Value.render(sb)
		}
		sb.WriteByte('}')
	case KindMarkdown, KindFixedJSON:
		v.Inner().render(sb)
	case KindAnyOf:
		sb.WriteString(v.originalText)
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// fingerprint returns a cheap identity for cycle detection built from v's
// address and kind; it identifies the same Value, not structurally equal ones.
func (v *Value) fingerprint() string {
	if v == nil {
		return "nil"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%p:%s", v, v.kind)
	return sb.String()
}
