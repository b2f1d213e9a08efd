package models

import "strings"

// nameStopWords are organizational suffixes/prefixes and sport words that
// providers sometimes embed in team names. Stripped only when they stand as
// a separate token, so "CF Pachuca" and "Pachuca" compare equal but
// "Crawford" keeps its "c".
var nameStopWords = map[string]bool{
	"fc": true, "cf": true, "ud": true, "sc": true, "ac": true,
	"cd": true, "fk": true, "bk": true, "sk": true, "afc": true,
	"cfc": true, "club": true,
	"basketball": true, "hockey": true, "baseball": true, "handball": true,
	"volleyball": true,
}

// NormalizeName canonicalizes a team/participant name for comparison.
// Used by the match engine and event ids only — displayed names stay as the
// provider sent them.
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if nameStopWords[f] {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		// Name was nothing but stop words; keep the collapsed original.
		return strings.Join(fields, " ")
	}
	return strings.Join(kept, " ")
}

// normalizeToken lower-cases and trims a single enum-ish token.
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
