package intent

import "strings"

// allowedIntents is the closed set of intents the provider may return.
var allowedIntents = map[string]struct{}{
	"general": {}, "food": {}, "stay": {}, "transport": {},
	"sightseeing": {}, "experience": {}, "romantic": {}, "family": {},
	"adventure": {}, "budget": {}, "amenities": {}, "celebration": {},
}

// allowedCategories is the closed set of category keys the provider may return.
var allowedCategories = map[string]struct{}{
	CategoryRestaurant: {}, CategoryHotel: {}, CategoryDriver: {},
	CategoryTourGuide: {}, CategoryExperience: {},
}

// maxProviderCategories caps how many categories a provider response may
// contribute to an interpretation.
const maxProviderCategories = 4

// SanitizeIntent validates a provider-supplied intent against the allow-list.
// Blank stays blank; anything unrecognized collapses to general.
func SanitizeIntent(raw string) string {
	i := strings.ToLower(strings.TrimSpace(raw))
	if i == "" {
		return ""
	}
	if _, ok := allowedIntents[i]; ok {
		return i
	}
	return IntentGeneral
}

// SanitizeCategories keeps only allow-listed category keys, de-duplicated and
// capped, preserving the provider's order.
func SanitizeCategories(raw []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, c := range raw {
		cc := strings.ToLower(strings.TrimSpace(c))
		if cc == "" {
			continue
		}
		if _, ok := allowedCategories[cc]; !ok {
			continue
		}
		if _, dup := seen[cc]; dup {
			continue
		}
		seen[cc] = struct{}{}
		out = append(out, cc)
		if len(out) >= maxProviderCategories {
			break
		}
	}
	return out
}

// NormalizeCategory reduces a display category ("Tour Guide") to its key
// form ("tour_guide").
func NormalizeCategory(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" {
		return ""
	}
	return strings.ReplaceAll(c, " ", "_")
}
