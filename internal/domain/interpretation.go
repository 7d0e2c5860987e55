package domain

// Strategy records which ranking tier produced the final result set.
type Strategy string

// Ranking strategies, deterministic tiers plus their AI-assisted counterparts.
const (
	StrategyNone       Strategy = "none"
	StrategyDistrict   Strategy = "district"
	StrategyNearby     Strategy = "nearby"
	StrategyCategory   Strategy = "category"
	StrategyAI         Strategy = "ai"
	StrategyAIDistrict Strategy = "ai_district"
	StrategyAINearby   Strategy = "ai_nearby"
	StrategyAICategory Strategy = "ai_category"
)

// Interpretation is the structured reading of a search query: intent,
// location, and the categories the engine will constrain results to.
// The *Key fields are normalized matching forms (lower-case, "district"
// suffix stripped); the display fields are title-cased for the response.
type Interpretation struct {
	OriginalQuery       string   `json:"originalQuery"`
	Intent              string   `json:"intent"`
	Place               string   `json:"place"`
	District            string   `json:"district"`
	DistrictKey         string   `json:"-"`
	NearbyDistricts     []string `json:"nearbyDistricts"`
	NearbyDistrictKeys  []string `json:"-"`
	SuggestedCategories []string `json:"suggestedCategories"`
	Strategy            Strategy `json:"strategy"`
}

// ProviderInterpretation is the unvalidated output of the provider's
// interpret operation. The engine sanitizes every field against its
// allow-lists before use.
type ProviderInterpretation struct {
	Intent     string   `json:"intent"`
	Place      string   `json:"place"`
	District   string   `json:"district"`
	Categories []string `json:"categories"`
}

// SearchResponse is the full result of an explainable smart search.
// The explanation is always consistent with MatchedPostIDs: it is rebuilt
// from the final result set, never from the interpretation alone.
type SearchResponse struct {
	Explanation    string         `json:"explanation"`
	Interpretation Interpretation `json:"interpretation"`
	MatchedPostIDs []string       `json:"matchedPostIds"`
}
