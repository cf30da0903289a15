// Package content loads authored campaign documents: per-location
// routine tables for NPCs, written in YAML and validated against an
// embedded CUE schema. The engine only ever sees the parsed
// (routine, overrides) pairs; file paths and encodings stop here.
package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug normalizes an NPC display name into the identifier routine
// tables are keyed by: accents stripped, lowercased, runs of
// non-alphanumerics collapsed to single underscores.
//
// "Mira Thistledown" -> "mira_thistledown"
// "Frère Jacques" -> "frere_jacques"
func Slug(name string) string {
	flat, _, err := transform.String(deaccent, name)
	if err != nil {
		flat = name
	}
	flat = strings.ToLower(flat)

	var b strings.Builder
	pendingSep := false
	for _, r := range flat {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
