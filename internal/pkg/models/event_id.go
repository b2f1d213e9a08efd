package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// EventID builds a stable cross-provider event identifier.
//
// IMPORTANT: re-fetching the same still-unresolved match must reproduce the
// same id across runs, so the id is a deterministic hash of the normalized
// category, both normalized names and the minute-precision UTC start. A
// provider-supplied native id, when present, is used verbatim instead (see
// CanonicalEvent confirmation in the store).
func EventID(category, homeName, awayName string, startUTC time.Time) string {
	category = normalizeToken(category)
	home := NormalizeName(homeName)
	away := NormalizeName(awayName)

	ts := "unknown-time"
	if !startUTC.IsZero() {
		ts = startUTC.UTC().Truncate(time.Minute).Format(time.RFC3339)
	}

	h := sha256.Sum256([]byte(category + "|" + home + "|" + away + "|" + ts))
	return hex.EncodeToString(h[:])[:16]
}
