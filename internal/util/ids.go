package util

import (
	"strings"
	"unicode"
)

// UnmappedPrefix marks variable ids the extraction stage could not map onto
// the standard variable set. The cleaner removes paths that reference them.
const UnmappedPrefix = "unmapped_"

// IsUnmappedVariable reports whether id belongs to the unmapped namespace.
func IsUnmappedVariable(id string) bool {
	return strings.HasPrefix(id, UnmappedPrefix)
}

// SlugifyVariableID turns a free-text variable label into a stable id
// fragment: lowercased, non-alphanumeric runs collapsed to single
// underscores, trimmed at both ends.
func SlugifyVariableID(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	lastUnderscore := true
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
