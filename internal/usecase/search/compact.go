package search

import (
	"strings"

	"github.com/travelcommerce/smartsearch/internal/domain"
)

const (
	compactTitleLen       = 90
	compactDescriptionLen = 180
)

// compactPosts builds the size-capped catalog projection sent to the AI
// provider, bounding prompt size.
func compactPosts(posts []domain.Post, limit int) []domain.CompactPost {
	out := []domain.CompactPost{}
	for _, p := range posts {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			continue
		}
		out = append(out, domain.CompactPost{
			ID:          id,
			Category:    p.Category,
			District:    p.District,
			Title:       truncate(p.Title, compactTitleLen),
			Description: truncate(p.Description, compactDescriptionLen),
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}

// truncate trims s to at most max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	t := strings.TrimSpace(s)
	r := []rune(t)
	if len(r) <= max {
		return t
	}
	return strings.TrimSpace(string(r[:max-1])) + "…"
}
