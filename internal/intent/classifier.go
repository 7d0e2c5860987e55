// Package intent classifies normalized queries into an intent and a set of
// suggested service categories via a fixed heuristic rule ladder.
package intent

import "strings"

// Known service category keys (normalized snake_case form).
const (
	CategoryRestaurant = "restaurant"
	CategoryHotel      = "hotel"
	CategoryDriver     = "driver"
	CategoryTourGuide  = "tour_guide"
	CategoryExperience = "experience"
)

// IntentGeneral is the classification for queries with no recognizable signal.
const IntentGeneral = "general"

// categoryFamily is a fixed ordered keyword family for one category.
// Misspellings stay in the lists on purpose: the classifier must hold up
// even when the normalizer's correction table misses a variant.
type categoryFamily struct {
	category string
	intent   string
	keywords []string
}

var categoryFamilies = []categoryFamily{
	{CategoryRestaurant, "food", []string{
		"restaurant", "restuarent", "restraurent", "food", "dine",
		"coffee", "coffie", "cafe",
	}},
	{CategoryHotel, "stay", []string{
		"hotel", "stay", "resort", "room", "accommodation", "accomodation",
	}},
	{CategoryDriver, "transport", []string{
		"driver", "taxi", "cab", "transport", "van", "pickup", "ride",
	}},
	{CategoryTourGuide, "sightseeing", []string{
		"guide", "tour", "excursion", "sightseeing", "sight seeing",
	}},
	{CategoryExperience, "experience", []string{
		"experience", "workshop", "activity", "class", "lesson",
	}},
}

// intentRule maps a keyword set to an intent and the categories that fit it.
type intentRule struct {
	intent     string
	categories []string
	keywords   []string
}

// intentLadder is checked in priority order after the category families miss.
var intentLadder = []intentRule{
	{"food", []string{CategoryRestaurant, CategoryHotel}, []string{
		"cake", "dessert", "bakery", "pastry", "sweet", "ice cream",
		"chocolate", "cupcake", "cup cake",
	}},
	{"celebration", []string{CategoryRestaurant, CategoryHotel, CategoryExperience}, []string{
		"birthday", "bday", "party", "celebration", "celebrate",
		"surprise", "anniversary",
	}},
	{"amenities", []string{CategoryHotel, CategoryRestaurant}, []string{
		"toilet", "restroom", "washroom", "bathroom", "wc",
	}},
	{"romantic", []string{CategoryHotel, CategoryRestaurant, CategoryExperience}, []string{
		"date", "girlfriend", "boyfriend", "wife", "husband", "romantic",
		"anniversary", "proposal", "honeymoon",
	}},
	{"romantic", []string{CategoryHotel, CategoryRestaurant, CategoryExperience}, []string{
		"girfriend", "girlfrnd", "boyfreind", "romantc", "romntic", "honeymon",
	}},
	{"family", []string{CategoryHotel, CategoryRestaurant, CategoryExperience}, []string{
		"family", "kids", "children", "child", "baby",
	}},
	{"adventure", []string{CategoryExperience, CategoryTourGuide, CategoryDriver}, []string{
		"adventure", "hike", "trek", "surf", "diving", "rafting", "safari",
	}},
	{"budget", []string{CategoryHotel, CategoryRestaurant, CategoryDriver}, []string{
		"cheap", "budget", "low price", "affordable",
	}},
}

// DetectCategory returns the first category whose keyword family hits the
// query, or "" when none does.
func DetectCategory(queryLower string) string {
	for _, f := range categoryFamilies {
		for _, kw := range f.keywords {
			if strings.Contains(queryLower, kw) {
				return f.category
			}
		}
	}
	return ""
}

// Classify resolves an intent and suggested categories for a normalized
// query. The category families run first; the intent ladder only when they
// miss. First rule matching wins. Queries with no signal come back as
// (general, empty).
func Classify(queryLower string) (string, []string) {
	for _, f := range categoryFamilies {
		for _, kw := range f.keywords {
			if strings.Contains(queryLower, kw) {
				return f.intent, []string{f.category}
			}
		}
	}

	for _, r := range intentLadder {
		for _, kw := range r.keywords {
			if strings.Contains(queryLower, kw) {
				cats := make([]string, len(r.categories))
				copy(cats, r.categories)
				return r.intent, cats
			}
		}
	}

	return IntentGeneral, []string{}
}
