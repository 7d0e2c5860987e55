package geo

import "strings"

// adjacency maps each district to 2-4 geographically plausible neighbors.
// Hand-curated; used only as a fallback when the target district has no
// listings, never for primary matching.
var adjacency = map[string][]string{
	"Colombo":  {"Gampaha", "Kalutara"},
	"Gampaha":  {"Colombo", "Kalutara", "Puttalam"},
	"Kalutara": {"Colombo", "Gampaha", "Galle"},
	"Galle":    {"Matara", "Kalutara"},
	"Matara":   {"Galle", "Hambantota"},
	"Hambantota": {"Matara", "Monaragala"},

	"Kandy":        {"Matale", "Nuwara Eliya", "Kegalle"},
	"Matale":       {"Kandy", "Kurunegala", "Anuradhapura", "Polonnaruwa"},
	"Nuwara Eliya": {"Kandy", "Badulla", "Kegalle"},
	"Badulla":      {"Nuwara Eliya", "Monaragala", "Kandy"},
	"Monaragala":   {"Badulla", "Hambantota", "Ampara"},

	"Anuradhapura": {"Kurunegala", "Puttalam", "Polonnaruwa", "Matale"},
	"Polonnaruwa":  {"Anuradhapura", "Matale", "Trincomalee", "Batticaloa"},
	"Kurunegala":   {"Puttalam", "Kegalle", "Matale", "Anuradhapura"},
	"Puttalam":     {"Kurunegala", "Gampaha", "Anuradhapura"},
	"Kegalle":      {"Kandy", "Kurunegala", "Ratnapura", "Nuwara Eliya"},
	"Ratnapura":    {"Kegalle", "Kalutara", "Galle"},

	"Trincomalee": {"Polonnaruwa", "Batticaloa", "Anuradhapura"},
	"Batticaloa":  {"Ampara", "Polonnaruwa", "Trincomalee"},
	"Ampara":      {"Batticaloa", "Monaragala"},
}

// Nearby returns the ordered neighbor list for a district display name,
// excluding the district itself. Unknown districts get an empty list.
func Nearby(district string) []string {
	d := strings.TrimSpace(district)
	if d == "" {
		return []string{}
	}

	out := []string{}
	for _, n := range adjacency[d] {
		if !strings.EqualFold(n, d) {
			out = append(out, n)
		}
	}
	return out
}
