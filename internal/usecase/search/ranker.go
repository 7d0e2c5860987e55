package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/travelcommerce/smartsearch/internal/domain"
	"github.com/travelcommerce/smartsearch/internal/geo"
	"github.com/travelcommerce/smartsearch/internal/intent"
)

const (
	// maxResults caps every ranking tier.
	maxResults = 30

	// maxCompactPosts caps the catalog projection sent to the provider.
	maxCompactPosts = 120
)

// catalog indexes posts by ID, in input order, with normalized district and
// category keys for constraint matching.
type catalog struct {
	order []string
	meta  map[string]postMeta
}

type postMeta struct {
	district string
	category string
}

func newCatalog(posts []domain.Post) catalog {
	c := catalog{meta: make(map[string]postMeta, len(posts))}
	for _, p := range posts {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			continue
		}
		if _, dup := c.meta[id]; dup {
			continue
		}
		c.meta[id] = postMeta{
			district: geo.NormalizeKey(p.District),
			category: intent.NormalizeCategory(p.Category),
		}
		c.order = append(c.order, id)
	}
	return c
}

// filter walks the catalog in input order, keeping posts whose district is in
// districts (nil means any) and whose category is in categories (nil means
// any), capped at maxResults.
func (c catalog) filter(districts, categories map[string]struct{}) []string {
	ids := []string{}
	for _, id := range c.order {
		m := c.meta[id]
		if districts != nil {
			if _, ok := districts[m.district]; !ok {
				continue
			}
		}
		if categories != nil {
			if _, ok := categories[m.category]; !ok {
				continue
			}
		}
		ids = append(ids, id)
		if len(ids) >= maxResults {
			break
		}
	}
	return ids
}

// rank produces the final ID list plus the strategy tag naming the tier that
// fired. The AI-assisted pass runs first when configured; the deterministic
// tiers serve both as its constraint rules and as the fallback, so a provider
// failure is invisible to the caller.
func (s *Service) rank(
	ctx context.Context, trimmed string,
	interp domain.Interpretation, posts []domain.Post,
) ([]string, domain.Strategy) {
	if len(posts) == 0 {
		return []string{}, domain.StrategyNone
	}

	cat := newCatalog(posts)

	if ids, strategy, ok := s.rankWithProvider(ctx, trimmed, interp, posts, cat); ok {
		return ids, strategy
	}
	return rankDeterministic(interp, cat)
}

func (s *Service) rankWithProvider(
	ctx context.Context, trimmed string,
	interp domain.Interpretation, posts []domain.Post, cat catalog,
) ([]string, domain.Strategy, bool) {
	if !s.cfg.RankingEnabled || s.gateway == nil || trimmed == "" {
		return nil, domain.StrategyNone, false
	}

	ranked, err := s.gateway.Rank(ctx, trimmed, interp, compactPosts(posts, maxCompactPosts))
	if err != nil {
		s.logger.Warn("provider ranking failed, using deterministic tiers", zap.Error(err))
		return nil, domain.StrategyNone, false
	}

	ids, strategy := constrainRanked(validIDs(ranked, cat), interp, cat)
	if len(ids) == 0 {
		return nil, domain.StrategyNone, false
	}
	return ids, strategy, true
}

// validIDs keeps provider-returned IDs that exist in the catalog,
// de-duplicated and capped. Invented IDs are discarded, never trusted.
func validIDs(ranked []string, cat catalog) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, id := range ranked {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := cat.meta[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) >= maxResults {
			break
		}
	}
	return out
}

// constrainRanked applies the constraint tiers to an AI-provided order,
// preserving that order within each tier.
func constrainRanked(
	ranked []string, interp domain.Interpretation, cat catalog,
) ([]string, domain.Strategy) {
	if len(ranked) == 0 {
		return []string{}, domain.StrategyNone
	}

	preferred := stringSet(interp.SuggestedCategories)

	if interp.DistrictKey != "" {
		target := map[string]struct{}{interp.DistrictKey: {}}
		all, withPreferred := splitByDistrict(ranked, cat, target, preferred)
		if len(withPreferred) > 0 {
			return withPreferred, domain.StrategyAIDistrict
		}
		if len(all) > 0 {
			return all, domain.StrategyAIDistrict
		}

		if nearby := stringSet(interp.NearbyDistrictKeys); len(nearby) > 0 {
			all, withPreferred = splitByDistrict(ranked, cat, nearby, preferred)
			if len(withPreferred) > 0 {
				return withPreferred, domain.StrategyAINearby
			}
			if len(all) > 0 {
				return all, domain.StrategyAINearby
			}
		}
		return []string{}, domain.StrategyNone
	}

	if len(preferred) > 0 {
		kept := []string{}
		for _, id := range ranked {
			if _, ok := preferred[cat.meta[id].category]; ok {
				kept = append(kept, id)
			}
		}
		if len(kept) > 0 {
			return kept, domain.StrategyAICategory
		}
	}

	return ranked, domain.StrategyAI
}

func splitByDistrict(
	ranked []string, cat catalog, districts, preferred map[string]struct{},
) (all, withPreferred []string) {
	for _, id := range ranked {
		m := cat.meta[id]
		if _, ok := districts[m.district]; !ok {
			continue
		}
		all = append(all, id)
		if len(preferred) > 0 {
			if _, ok := preferred[m.category]; ok {
				withPreferred = append(withPreferred, id)
			}
		}
	}
	return all, withPreferred
}

// rankDeterministic applies the tiered precedence over the full catalog:
// district+category, district, nearby+category, nearby, then category-only
// when no district was resolved. First non-empty tier wins.
func rankDeterministic(interp domain.Interpretation, cat catalog) ([]string, domain.Strategy) {
	preferred := stringSet(interp.SuggestedCategories)

	if interp.DistrictKey != "" {
		target := map[string]struct{}{interp.DistrictKey: {}}
		if len(preferred) > 0 {
			if ids := cat.filter(target, preferred); len(ids) > 0 {
				return ids, domain.StrategyDistrict
			}
		}
		if ids := cat.filter(target, nil); len(ids) > 0 {
			return ids, domain.StrategyDistrict
		}

		if nearby := stringSet(interp.NearbyDistrictKeys); len(nearby) > 0 {
			if len(preferred) > 0 {
				if ids := cat.filter(nearby, preferred); len(ids) > 0 {
					return ids, domain.StrategyNearby
				}
			}
			if ids := cat.filter(nearby, nil); len(ids) > 0 {
				return ids, domain.StrategyNearby
			}
		}
		return []string{}, domain.StrategyNone
	}

	if len(preferred) > 0 {
		if ids := cat.filter(nil, preferred); len(ids) > 0 {
			return ids, domain.StrategyCategory
		}
	}

	return []string{}, domain.StrategyNone
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[strings.ToLower(v)] = struct{}{}
		}
	}
	return set
}
