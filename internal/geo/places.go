package geo

import "strings"

// placeEntry maps a well-known landmark or town to its district display name.
type placeEntry struct {
	place    string
	district string
}

// places is a small curated knowledge base for common Sri Lanka travel
// queries, checked in order (first match wins). Misspelling variants sit at
// the end so the canonical spellings are preferred.
var places = []placeEntry{
	{"sigiriya", "Matale"},
	{"dambulla", "Matale"},
	{"minneriya", "Polonnaruwa"},
	{"polonnaruwa", "Polonnaruwa"},
	{"anuradhapura", "Anuradhapura"},
	{"kandy", "Kandy"},
	{"nuwara eliya", "Nuwara Eliya"},
	{"ella", "Badulla"},
	{"badulla", "Badulla"},
	{"galle fort", "Galle"},
	{"galle", "Galle"},
	{"mirissa", "Matara"},
	{"unawatuna", "Galle"},
	{"hikkaduwa", "Galle"},
	{"bentota", "Kalutara"},
	{"colombo", "Colombo"},
	{"negombo", "Gampaha"},
	{"trincomalee", "Trincomalee"},
	{"arugam bay", "Ampara"},
	{"yala", "Hambantota"},
	{"katunayake", "Gampaha"},
	{"bandaranaike", "Gampaha"},

	{"sigirya", "Matale"},
	{"sigirya rock", "Matale"},
	{"nuwera eliya", "Nuwara Eliya"},
	{"nuwaraeliya", "Nuwara Eliya"},
}

// lookupPlace finds the first landmark mentioned in the query. Returns the
// place display name and its district, or empty strings when nothing matched.
func lookupPlace(queryLower string) (place, district string) {
	for _, e := range places {
		if strings.Contains(queryLower, e.place) {
			return titleCase(e.place), e.district
		}
	}
	return "", ""
}
