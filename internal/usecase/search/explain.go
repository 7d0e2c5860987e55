package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/travelcommerce/smartsearch/internal/domain"
	"github.com/travelcommerce/smartsearch/internal/geo"
	"github.com/travelcommerce/smartsearch/internal/intent"
)

// topSummaryLimit caps the categories/districts cited in the explanation.
const topSummaryLimit = 3

const emptyQueryExplanation = "Tell me what you're looking for (place, district, " +
	"or intent like 'romantic dinner'), and I'll explain my understanding and " +
	"suggest relevant services."

// Explain composes the user-facing explanation. It is a pure function of the
// query, the interpretation, the catalog, and the final matched IDs, so it
// can never claim something the response does not contain: the cited top
// categories and districts are recomputed from the matched entries, and
// nearby districts are only mentioned when they actually hold listings.
func Explain(query string, interp domain.Interpretation, posts []domain.Post, matchedIDs []string) string {
	if query == "" {
		return emptyQueryExplanation
	}
	if len(posts) == 0 {
		return fmt.Sprintf("I understood your request as: %q. Right now there are "+
			"no service posts available on the platform, so I can't recommend anything yet.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I understood your search as: %q. ", query)

	if interp.Intent != "" && !strings.EqualFold(interp.Intent, intent.IntentGeneral) {
		fmt.Fprintf(&b, "Based on your message, your intent looks %s. ", interp.Intent)
	} else {
		b.WriteString("Based on your message, I treated this as a general request. ")
	}

	if len(interp.SuggestedCategories) > 0 {
		fmt.Fprintf(&b, "I focused on categories that fit that intent: %s. ",
			strings.Join(interp.SuggestedCategories, ", "))
	}

	writeLocation(&b, interp)

	if len(matchedIDs) == 0 {
		writeNoMatches(&b, interp, posts)
		return strings.TrimSpace(b.String())
	}

	total, topCategories, topDistricts := summarizeMatches(matchedIDs, posts)
	if total > 0 {
		plural := "s"
		if total == 1 {
			plural = ""
		}
		fmt.Fprintf(&b, "I found %d relevant service%s ", total, plural)
		if len(topCategories) > 0 {
			fmt.Fprintf(&b, "(top categories: %s) ", strings.Join(topCategories, ", "))
		}
		if len(topDistricts) > 0 {
			fmt.Fprintf(&b, "from %s. ", strings.Join(topDistricts, ", "))
		} else {
			b.WriteString("from the current service posts. ")
		}
	}

	b.WriteString(closingSentence(interp, posts))
	return strings.TrimSpace(b.String())
}

func writeLocation(b *strings.Builder, interp domain.Interpretation) {
	hasDistrict := interp.District != ""

	switch {
	case interp.Place != "" && hasDistrict:
		if strings.EqualFold(interp.Place, "Sigiriya") {
			fmt.Fprintf(b, "Sigiriya is an ancient rock fortress, located in the %s District. ", interp.District)
		} else {
			fmt.Fprintf(b, "%s is located in the %s District. ", interp.Place, interp.District)
		}
	case hasDistrict:
		fmt.Fprintf(b, "You mentioned the %s District. ", interp.District)
	default:
		b.WriteString("You didn't specify a location, so I prioritized your intent " +
			"first and then searched across all districts (not exact keyword matching). ")
		switch strings.ToLower(interp.Intent) {
		case "food":
			b.WriteString("For food/desserts, you can usually get this from " +
				"restaurants/cafés or hotel dining (sometimes a bakery if listed). ")
		case "celebration":
			b.WriteString("For celebrations (like birthdays), people usually choose " +
				"a restaurant for a meal/cake, a hotel/resort package, and/or an " +
				"experience (photoshoot, spa, special activity). ")
		case "amenities":
			b.WriteString("For facilities like restrooms, hotels and restaurants " +
				"are the most common places travellers use. ")
		}
	}
}

func writeNoMatches(b *strings.Builder, interp domain.Interpretation, posts []domain.Post) {
	if interp.District != "" && len(interp.NearbyDistricts) > 0 {
		if nearbyWithPosts := districtsWithPosts(interp.NearbyDistricts, posts); len(nearbyWithPosts) > 0 {
			fmt.Fprintf(b, "I couldn't find matching services for that exact request, "+
				"so I checked %s and nearby districts where services exist (%s). ",
				interp.District, strings.Join(nearbyWithPosts, ", "))
		} else {
			b.WriteString("I couldn't find matching services for that exact request, " +
				"and there are no service posts available in nearby districts right now. ")
		}
	} else {
		b.WriteString("I couldn't find relevant services for that request in the current service posts. ")
	}
	b.WriteString("No matching services are available right now.")
}

func closingSentence(interp domain.Interpretation, posts []domain.Post) string {
	switch interp.Strategy {
	case domain.StrategyAIDistrict:
		return fmt.Sprintf("I used the AI model to interpret your intent and selected services from %s.", interp.District)
	case domain.StrategyAINearby:
		if nearbyWithPosts := districtsWithPosts(interp.NearbyDistricts, posts); interp.District != "" && len(nearbyWithPosts) > 0 {
			return fmt.Sprintf("I used the AI model. No good matches in %s, so I'm showing nearby districts (%s).",
				interp.District, strings.Join(nearbyWithPosts, ", "))
		}
		return "I used the AI model and showed nearby alternatives based on location."
	case domain.StrategyAICategory:
		return "I used the AI model and matched services by intent-related categories."
	case domain.StrategyAI:
		return "I used the AI model and matched services by intent and suitability."
	case domain.StrategyDistrict:
		return fmt.Sprintf("Showing services primarily from %s.", interp.District)
	case domain.StrategyNearby:
		if nearbyWithPosts := districtsWithPosts(interp.NearbyDistricts, posts); interp.District != "" && len(nearbyWithPosts) > 0 {
			return fmt.Sprintf("No exact matches in %s, so I'm also showing services from nearby districts (%s).",
				interp.District, strings.Join(nearbyWithPosts, ", "))
		}
		return "Showing nearby alternatives based on location."
	case domain.StrategyCategory:
		return "Showing services that match the intent-related categories."
	default:
		return "Showing the most relevant services based on your query."
	}
}

// summarizeMatches recomputes the top categories and districts directly from
// the matched entries: frequency-ranked, ties broken alphabetically, capped.
func summarizeMatches(matchedIDs []string, posts []domain.Post) (int, []string, []string) {
	idSet := make(map[string]struct{}, len(matchedIDs))
	for _, id := range matchedIDs {
		if id = strings.TrimSpace(id); id != "" {
			idSet[id] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return 0, []string{}, []string{}
	}

	categoryCounts := map[string]int{}
	districtCounts := map[string]int{}
	total := 0

	for _, p := range posts {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			continue
		}
		if _, ok := idSet[id]; !ok {
			continue
		}
		total++

		if c := intent.NormalizeCategory(p.Category); c != "" {
			categoryCounts[c]++
		}
		if d := geo.DisplayName(geo.NormalizeKey(p.District)); d != "" {
			districtCounts[d]++
		}
	}

	return total, topKeys(categoryCounts, topSummaryLimit), topKeys(districtCounts, topSummaryLimit)
}

func topKeys(counts map[string]int, limit int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// districtsWithPosts keeps only the districts that actually contain at least
// one catalog entry, computed live rather than asserted from the static
// adjacency map.
func districtsWithPosts(names []string, posts []domain.Post) []string {
	if len(names) == 0 || len(posts) == 0 {
		return []string{}
	}

	available := map[string]struct{}{}
	for _, p := range posts {
		if key := geo.NormalizeKey(p.District); key != "" {
			available[key] = struct{}{}
		}
	}

	out := []string{}
	for _, name := range names {
		if key := geo.NormalizeKey(name); key != "" {
			if _, ok := available[key]; ok {
				out = append(out, name)
			}
		}
	}
	return out
}
