package ingest

import (
	"regexp"
	"strings"
)

var (
	courtJunkRe = regexp.MustCompile(`[.\s]+`)
	honorificRe = regexp.MustCompile(`(?i)^(hon\.?|judge|justice)(\s+|$)`)
)

// NormalizeCourt collapses court name variations onto one key.
// "S.D.N.Y." and "S.D.N.Y" both normalize to "SDNY".
func NormalizeCourt(raw string) string {
	if raw == "" {
		return ""
	}
	return courtJunkRe.ReplaceAllString(strings.ToUpper(raw), "")
}

// NormalizeJudge strips a leading honorific and lowercases.
// "Hon. Maria Rodriguez" and "Judge Maria Rodriguez" both normalize to
// "maria rodriguez". Honorific-only input yields the empty key, which the
// resolver treats as "no judge".
func NormalizeJudge(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = honorificRe.ReplaceAllString(s, "")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeParty collapses whitespace and lowercases. Legal-entity suffix
// variants ("Corp" vs "Corporation") intentionally stay distinct to avoid
// false merges.
func NormalizeParty(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}
