// Package geo resolves Sri Lankan districts and landmarks from query text.
// All reference tables are static and read-only after process start.
package geo

import (
	"regexp"
	"strings"
)

// districts lists the 25 administrative districts in detection order.
// Detection is first-match-wins over this order, so the order is part of
// the behavior and must stay fixed.
var districts = []string{
	"colombo", "gampaha", "kalutara", "kandy", "matale", "nuwara eliya",
	"galle", "matara", "hambantota", "jaffna", "kilinochchi", "mannar",
	"vavuniya", "mullaitivu", "batticaloa", "ampara", "trincomalee",
	"kurunegala", "puttalam", "anuradhapura", "polonnaruwa", "badulla",
	"monaragala", "ratnapura", "kegalle",
}

var nonAlpha = regexp.MustCompile(`[^a-z\s]`)

// NormalizeKey reduces a district name to its matching form: lower-case,
// punctuation stripped, the standalone word "district" removed.
func NormalizeKey(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return ""
	}
	cleaned = nonAlpha.ReplaceAllString(cleaned, " ")

	words := strings.Fields(cleaned)
	kept := words[:0]
	for _, w := range words {
		if w != "district" {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// DisplayName converts a district key to its display form.
func DisplayName(key string) string {
	d := strings.TrimSpace(key)
	if d == "" {
		return ""
	}
	if d == "nuwara eliya" {
		return "Nuwara Eliya"
	}
	return titleCase(d)
}

func titleCase(text string) string {
	parts := strings.Fields(text)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// matchDistrict returns the first district whose name is a substring of the
// query, or "" when none matches.
func matchDistrict(queryLower string) string {
	for _, d := range districts {
		if strings.Contains(queryLower, d) {
			return d
		}
	}
	return ""
}
