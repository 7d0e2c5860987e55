package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/travelcommerce/smartsearch/internal/domain"
	"github.com/travelcommerce/smartsearch/internal/geo"
	"github.com/travelcommerce/smartsearch/internal/intent"
	"github.com/travelcommerce/smartsearch/internal/query"
)

// interpret builds the structured reading of the query: normalization,
// district resolution, intent classification, the provider fallback for
// signal-free queries, and the nearby-district expansion.
func (s *Service) interpret(ctx context.Context, trimmed string) domain.Interpretation {
	interp := domain.Interpretation{
		OriginalQuery:       trimmed,
		Intent:              intent.IntentGeneral,
		NearbyDistricts:     []string{},
		SuggestedCategories: []string{},
		Strategy:            domain.StrategyNone,
	}
	if trimmed == "" {
		return interp
	}

	normalized := query.Normalize(trimmed)

	loc := geo.Resolve(normalized)
	interp.District = loc.District
	interp.DistrictKey = loc.Key
	interp.Place = loc.Place

	in, cats := intent.Classify(normalized)
	interp.Intent = in
	interp.SuggestedCategories = cats

	// Only go to the provider when the heuristics found nothing at all.
	if interp.DistrictKey == "" && interp.Place == "" && len(cats) == 0 {
		s.interpretWithProvider(ctx, trimmed, &interp)
	}

	if interp.District != "" {
		interp.NearbyDistricts = geo.Nearby(interp.District)
		keys := make([]string, 0, len(interp.NearbyDistricts))
		for _, nd := range interp.NearbyDistricts {
			if key := geo.NormalizeKey(nd); key != "" {
				keys = append(keys, key)
			}
		}
		interp.NearbyDistrictKeys = keys
	}

	return interp
}

// interpretWithProvider asks the AI provider to read the query. Every field
// is validated against the allow-lists before use; a failed or fully
// unusable response leaves the interpretation untouched.
func (s *Service) interpretWithProvider(ctx context.Context, trimmed string, interp *domain.Interpretation) {
	if !s.cfg.RankingEnabled || !s.cfg.InterpretationEnabled || s.gateway == nil {
		return
	}

	raw, err := s.gateway.Interpret(ctx, trimmed)
	if err != nil {
		s.logger.Warn("provider interpretation failed, keeping heuristic result", zap.Error(err))
		return
	}
	if raw == nil {
		return
	}

	in := intent.SanitizeIntent(raw.Intent)
	cats := intent.SanitizeCategories(raw.Categories)
	district := geo.SanitizeDistrict(raw.District)
	place := strings.TrimSpace(raw.Place)

	if in == "" && place == "" && district == "" && len(cats) == 0 {
		return
	}

	if in != "" {
		interp.Intent = in
	}
	if place != "" {
		interp.Place = place
	}
	if district != "" {
		interp.District = district
		interp.DistrictKey = geo.NormalizeKey(district)
	}
	if len(cats) > 0 {
		interp.SuggestedCategories = cats
	}
}
