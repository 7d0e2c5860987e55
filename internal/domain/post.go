package domain

// Post is the read-only service listing projection the engine searches over.
// Extra fields from the upstream catalog are dropped at the boundary.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	District    string `json:"district"`
}

// CompactPost is the size-capped projection of a Post sent to the AI provider
// to bound prompt size.
type CompactPost struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	District    string `json:"district"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
