package search

import (
	"context"

	"github.com/travelcommerce/smartsearch/internal/domain"
)

// Gateway is the AI provider contract the engine depends on. Implementations
// must fail closed: any transport or parse failure yields an error, never a
// partially trusted result. The engine sanitizes everything that comes back
// regardless.
type Gateway interface {
	// Interpret asks the provider for a structured reading of the query.
	Interpret(ctx context.Context, query string) (*domain.ProviderInterpretation, error)

	// Rank asks the provider to order the compacted catalog by relevance,
	// returning IDs best to worst.
	Rank(
		ctx context.Context, query string,
		interp domain.Interpretation, posts []domain.CompactPost,
	) ([]string, error)
}
