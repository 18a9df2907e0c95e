package jsonish

import "strings"

// semanticAliases is a process-wide immutable equivalence table between
// human-intent field names, consulted after exact/trimmed/case-insensitive
// matching fails (spec §4.6). It is read-only after init.
var semanticAliases = map[string][]string{
	"signature":  {"function_signature", "func_signature", "method_signature"},
	"description": {"desc", "details", "summary"},
	"properties": {"props", "attributes", "fields"},
}

// aliasIndex maps every alias word to its canonical field name, built once
// from semanticAliases.
var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	idx := make(map[string]string)
	for canonical, aliases := range semanticAliases {
		for _, a := range aliases {
			idx[a] = canonical
		}
	}
	return idx
}

// matchConfidence orders field-match strength; lower is better.
type matchConfidence int

const (
	matchExact matchConfidence = iota
	matchTrimmed
	matchCaseInsensitive
	matchSemanticAlias
	matchFormatNormalized
	matchNone
)

// matchField resolves an input key to a schema field using the stable
// priority order of spec §4.6: exact > trimmed > case-insensitive >
// semantic alias > format normalization.
func matchField(inputKey string, fields []Field) (Field, matchConfidence, bool) {
	best := matchNone
	var bestField Field
	found := false

	consider := func(f Field, c matchConfidence) {
		if !found || c < best {
			best, bestField, found = c, f, true
		}
	}

	for _, f := range fields {
		if f.Name == inputKey {
			consider(f, matchExact)
		}
	}
	if found && best == matchExact {
		return bestField, best, true
	}

	trimmedKey := strings.TrimSpace(inputKey)
	for _, f := range fields {
		if f.Name == trimmedKey {
			consider(f, matchTrimmed)
		}
	}
	if found && best == matchTrimmed {
		return bestField, best, true
	}

	lowerKey := strings.ToLower(trimmedKey)
	for _, f := range fields {
		if strings.ToLower(f.Name) == lowerKey {
			consider(f, matchCaseInsensitive)
		}
	}
	if found && best == matchCaseInsensitive {
		return bestField, best, true
	}

	if canonical, ok := aliasIndex[lowerKey]; ok {
		for _, f := range fields {
			if strings.ToLower(f.Name) == canonical {
				consider(f, matchSemanticAlias)
			}
		}
	}
	for _, f := range fields {
		if canonical, ok := aliasIndex[strings.ToLower(f.Name)]; ok && canonical == lowerKey {
			consider(f, matchSemanticAlias)
		}
	}
	if found && best == matchSemanticAlias {
		return bestField, best, true
	}

	normKey := normalizeFieldFormat(lowerKey)
	for _, f := range fields {
		if normalizeFieldFormat(strings.ToLower(f.Name)) == normKey {
			consider(f, matchFormatNormalized)
		}
	}
	if found {
		return bestField, best, true
	}

	return Field{}, matchNone, false
}

// normalizeFieldFormat strips kebab/snake/space separators so "user-id",
// "user_id", "user id", and "userid" all compare equal.
func normalizeFieldFormat(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '-', '_', ' ':
			continue
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
