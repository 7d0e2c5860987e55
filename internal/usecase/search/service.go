// Package search implements the explainable smart-search engine: query
// interpretation, constraint-enforced ranking, and an explanation rebuilt
// from the final output so it can never contradict the returned results.
package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/travelcommerce/smartsearch/internal/domain"
)

// Config holds the immutable engine settings, fixed at construction.
type Config struct {
	// RankingEnabled turns on the AI-assisted ranking pass. The engine
	// falls back to the deterministic tiers when it is off, when no
	// gateway is wired, or when the provider call fails.
	RankingEnabled bool

	// InterpretationEnabled lets the engine ask the provider to interpret
	// queries that produced no local signal. Requires RankingEnabled.
	InterpretationEnabled bool
}

// Service is the smart-search engine.
type Service struct {
	gateway Gateway
	cfg     Config
	logger  *zap.Logger
}

// New creates the engine. gateway may be nil when no provider is configured;
// every AI-assisted path is then skipped silently.
func New(gateway Gateway, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, cfg: cfg, logger: logger}
}

// Search interprets the query, ranks the catalog, and explains the result.
// It is total: every call returns a valid response with an interpretation,
// including empty queries and empty catalogs, and no provider failure ever
// surfaces to the caller.
func (s *Service) Search(ctx context.Context, query string, posts []domain.Post) domain.SearchResponse {
	trimmed := strings.TrimSpace(query)

	interp := s.interpret(ctx, trimmed)
	matched, strategy := s.rank(ctx, trimmed, interp, posts)
	interp.Strategy = strategy

	s.logger.Debug("smart search completed",
		zap.String("query", trimmed),
		zap.String("district", interp.District),
		zap.String("intent", interp.Intent),
		zap.String("strategy", string(strategy)),
		zap.Int("matches", len(matched)),
	)

	return domain.SearchResponse{
		Explanation:    Explain(trimmed, interp, posts, matched),
		Interpretation: interp,
		MatchedPostIDs: matched,
	}
}
