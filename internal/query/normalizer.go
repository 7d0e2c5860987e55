// Package query cleans raw search input before interpretation.
package query

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// misspellings maps common travel-search typos to their corrected forms.
// Multi-word fixes come first so they run before any single-word substring
// of theirs. The table is intentionally small and conservative; deeper
// language understanding is the provider's job.
var misspellings = [][2]string{
	{"nuware eliya", "nuwara eliya"},
	{"nuwera eliya", "nuwara eliya"},
	{"restuarent", "restaurant"},
	{"restraurent", "restaurant"},
	{"restuarant", "restaurant"},
	{"resturent", "restaurant"},
	{"resturants", "restaurant"},
	{"restorant", "restaurant"},
	{"coffie", "coffee"},
	{"accomodation", "accommodation"},
	{"hotal", "hotel"},
	{"hotell", "hotel"},
	{"anuradapura", "anuradhapura"},
	{"polanaruwa", "polonnaruwa"},
	{"sigirya", "sigiriya"},
	{"girfriend", "girlfriend"},
	{"boyfreind", "boyfriend"},
}

// Normalize lower-cases the query, strips punctuation, collapses whitespace
// and applies the misspelling table. Pure and deterministic; blank input
// normalizes to the empty string.
func Normalize(raw string) string {
	q := strings.ToLower(raw)
	q = nonAlnum.ReplaceAllString(q, " ")
	q = strings.Join(strings.Fields(q), " ")
	if q == "" {
		return ""
	}

	for _, m := range misspellings {
		if strings.Contains(q, m[0]) {
			q = strings.ReplaceAll(q, m[0], m[1])
		}
	}

	return strings.Join(strings.Fields(q), " ")
}
