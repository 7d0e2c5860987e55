package openai

import (
	"fmt"
	"strings"

	"github.com/travelcommerce/smartsearch/internal/domain"
)

// interpretationPrompt forces a constrained JSON object so the provider
// cannot answer with free-form text.
func interpretationPrompt(query string) string {
	var b strings.Builder
	b.WriteString("You interpret a travel/search query for a Sri Lanka travel commerce platform.\n")
	b.WriteString("Infer intent and suitable service categories using general knowledge.\n")
	b.WriteString("Do NOT do keyword matching. Do NOT mention services.\n\n")
	fmt.Fprintf(&b, "User query: %q\n\n", query)
	b.WriteString("Return ONLY a single raw JSON object with this schema (no markdown):\n")
	b.WriteString("{\n")
	b.WriteString("  \"intent\": one of [general, food, stay, transport, sightseeing, experience, romantic, family, adventure, budget, amenities, celebration],\n")
	b.WriteString("  \"categories\": array with any of [restaurant, hotel, driver, tour_guide, experience],\n")
	b.WriteString("  \"place\": string (optional),\n")
	b.WriteString("  \"district\": string (optional; use Sri Lanka district name if user implied a location)\n")
	b.WriteString("}\n")
	b.WriteString("Rules:\n")
	b.WriteString("- If the query is about food/desserts (e.g., cake), categories should include restaurant and/or hotel.\n")
	b.WriteString("- If the query is about birthdays/celebrations, categories should include restaurant and/or hotel and/or experience.\n")
	b.WriteString("- If no clear intent, use intent=general and categories=[].\n")
	return b.String()
}

// rankingPrompt instructs the provider to return only an ordered JSON array
// of IDs drawn from the compacted catalog.
func rankingPrompt(query string, interp domain.Interpretation, compactPostsJSON string) string {
	var b strings.Builder
	b.WriteString("You are an AI semantic search and recommendation engine for a travel services platform.\n")
	b.WriteString("Your job: rank service posts by relevance to the user's request using intent and general travel knowledge.\n")
	b.WriteString("Do NOT do keyword matching. Use meaning (intent, place, district, category suitability).\n\n")

	fmt.Fprintf(&b, "User query: %q\n", query)
	if interp.Intent != "" {
		fmt.Fprintf(&b, "Detected intent: %s\n", interp.Intent)
	}
	if interp.Place != "" {
		fmt.Fprintf(&b, "Place mention: %s\n", interp.Place)
	}
	if interp.District != "" {
		fmt.Fprintf(&b, "Target district: %s\n", interp.District)
	}
	if len(interp.NearbyDistricts) > 0 {
		fmt.Fprintf(&b, "Nearby districts (fallback): %s\n", strings.Join(interp.NearbyDistricts, ", "))
	}
	if len(interp.SuggestedCategories) > 0 {
		fmt.Fprintf(&b, "Preferred categories: %s\n", strings.Join(interp.SuggestedCategories, ", "))
	}

	b.WriteString("\nAvailable posts (JSON array). Each object has: id, category, district, title, description:\n")
	b.WriteString(compactPostsJSON)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Output ONLY a JSON array of IDs from the list above (strings), ordered best to worst.\n")
	b.WriteString("- NEVER invent IDs, NEVER return objects, NEVER include explanation text.\n")
	b.WriteString("- If a target district is provided, prefer that district. Use nearby districts only if no posts exist in the target district.\n")
	b.WriteString("- If preferred categories are provided, prioritize those categories.\n")
	b.WriteString("- Return [] if nothing is relevant.\n")
	return b.String()
}
