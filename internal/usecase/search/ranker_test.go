package search

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/travelcommerce/smartsearch/internal/domain"
)

func TestNewCatalog(t *testing.T) {
	posts := []domain.Post{
		{ID: "p1", Category: "Hotel", District: "Kandy"},
		{ID: " p2 ", Category: "restaurant", District: "Kandy District"},
		{ID: "", Category: "hotel", District: "Galle"},
		{ID: "p1", Category: "driver", District: "Colombo"}, // duplicate id
		{ID: "p3", Category: "Tour Guide", District: "Nuwara-Eliya"},
	}

	cat := newCatalog(posts)

	if !reflect.DeepEqual(cat.order, []string{"p1", "p2", "p3"}) {
		t.Errorf("order = %v", cat.order)
	}
	if cat.meta["p1"].category != "hotel" || cat.meta["p1"].district != "kandy" {
		t.Errorf("p1 meta = %+v", cat.meta["p1"])
	}
	if cat.meta["p2"].district != "kandy" {
		t.Errorf("p2 district = %q, want kandy", cat.meta["p2"].district)
	}
	if cat.meta["p3"].category != "tour_guide" || cat.meta["p3"].district != "nuwara eliya" {
		t.Errorf("p3 meta = %+v", cat.meta["p3"])
	}
}

func TestCatalogFilterCap(t *testing.T) {
	posts := make([]domain.Post, 0, maxResults+10)
	for i := 0; i < maxResults+10; i++ {
		posts = append(posts, domain.Post{
			ID: fmt.Sprintf("p%d", i), Category: "hotel", District: "Kandy",
		})
	}
	cat := newCatalog(posts)

	ids := cat.filter(nil, nil)
	if len(ids) != maxResults {
		t.Errorf("len = %d, want %d", len(ids), maxResults)
	}
}

func TestRankDeterministicTiers(t *testing.T) {
	posts := []domain.Post{
		{ID: "kandy-hotel", Category: "hotel", District: "Kandy"},
		{ID: "kandy-guide", Category: "tour_guide", District: "Kandy"},
		{ID: "matale-hotel", Category: "hotel", District: "Matale"},
		{ID: "galle-hotel", Category: "hotel", District: "Galle"},
	}
	cat := newCatalog(posts)

	tests := []struct {
		name         string
		interp       domain.Interpretation
		wantIDs      []string
		wantStrategy domain.Strategy
	}{
		{
			name: "district plus category",
			interp: domain.Interpretation{
				DistrictKey:         "kandy",
				SuggestedCategories: []string{"hotel"},
			},
			wantIDs:      []string{"kandy-hotel"},
			wantStrategy: domain.StrategyDistrict,
		},
		{
			name: "district any category when preferred misses",
			interp: domain.Interpretation{
				DistrictKey:         "kandy",
				SuggestedCategories: []string{"driver"},
			},
			wantIDs:      []string{"kandy-hotel", "kandy-guide"},
			wantStrategy: domain.StrategyDistrict,
		},
		{
			name: "nearby with category",
			interp: domain.Interpretation{
				DistrictKey:         "polonnaruwa",
				NearbyDistrictKeys:  []string{"anuradhapura", "matale"},
				SuggestedCategories: []string{"hotel"},
			},
			wantIDs:      []string{"matale-hotel"},
			wantStrategy: domain.StrategyNearby,
		},
		{
			name: "nearby any category",
			interp: domain.Interpretation{
				DistrictKey:         "polonnaruwa",
				NearbyDistrictKeys:  []string{"matale"},
				SuggestedCategories: []string{"driver"},
			},
			wantIDs:      []string{"matale-hotel"},
			wantStrategy: domain.StrategyNearby,
		},
		{
			name: "category only without district",
			interp: domain.Interpretation{
				SuggestedCategories: []string{"hotel"},
			},
			wantIDs:      []string{"kandy-hotel", "matale-hotel", "galle-hotel"},
			wantStrategy: domain.StrategyCategory,
		},
		{
			name: "district and nearby both empty",
			interp: domain.Interpretation{
				DistrictKey:        "jaffna",
				NearbyDistrictKeys: []string{"kilinochchi"},
			},
			wantIDs:      []string{},
			wantStrategy: domain.StrategyNone,
		},
		{
			name:         "nothing resolved",
			interp:       domain.Interpretation{},
			wantIDs:      []string{},
			wantStrategy: domain.StrategyNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, strategy := rankDeterministic(tt.interp, cat)
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
			if strategy != tt.wantStrategy {
				t.Errorf("strategy = %q, want %q", strategy, tt.wantStrategy)
			}
		})
	}
}

func TestValidIDs(t *testing.T) {
	cat := newCatalog([]domain.Post{
		{ID: "p1", Category: "hotel", District: "Kandy"},
		{ID: "p2", Category: "restaurant", District: "Galle"},
	})

	got := validIDs([]string{" p2 ", "ghost", "p1", "p2", ""}, cat)
	if !reflect.DeepEqual(got, []string{"p2", "p1"}) {
		t.Errorf("got %v, want [p2 p1]", got)
	}
}

func TestConstrainRanked(t *testing.T) {
	cat := newCatalog([]domain.Post{
		{ID: "kandy-hotel", Category: "hotel", District: "Kandy"},
		{ID: "kandy-guide", Category: "tour_guide", District: "Kandy"},
		{ID: "matale-hotel", Category: "hotel", District: "Matale"},
		{ID: "galle-hotel", Category: "hotel", District: "Galle"},
	})
	ranked := []string{"galle-hotel", "kandy-guide", "kandy-hotel", "matale-hotel"}

	tests := []struct {
		name         string
		interp       domain.Interpretation
		wantIDs      []string
		wantStrategy domain.Strategy
	}{
		{
			name: "district with preferred category",
			interp: domain.Interpretation{
				DistrictKey:         "kandy",
				SuggestedCategories: []string{"hotel"},
			},
			wantIDs:      []string{"kandy-hotel"},
			wantStrategy: domain.StrategyAIDistrict,
		},
		{
			name: "district any category",
			interp: domain.Interpretation{
				DistrictKey:         "kandy",
				SuggestedCategories: []string{"driver"},
			},
			wantIDs:      []string{"kandy-guide", "kandy-hotel"},
			wantStrategy: domain.StrategyAIDistrict,
		},
		{
			name: "nearby fallback",
			interp: domain.Interpretation{
				DistrictKey:        "polonnaruwa",
				NearbyDistrictKeys: []string{"matale"},
			},
			wantIDs:      []string{"matale-hotel"},
			wantStrategy: domain.StrategyAINearby,
		},
		{
			name: "district and nearby empty",
			interp: domain.Interpretation{
				DistrictKey:        "jaffna",
				NearbyDistrictKeys: []string{"mannar"},
			},
			wantIDs:      []string{},
			wantStrategy: domain.StrategyNone,
		},
		{
			name: "category only",
			interp: domain.Interpretation{
				SuggestedCategories: []string{"hotel"},
			},
			wantIDs:      []string{"galle-hotel", "kandy-hotel", "matale-hotel"},
			wantStrategy: domain.StrategyAICategory,
		},
		{
			name:         "unconstrained passes through",
			interp:       domain.Interpretation{},
			wantIDs:      ranked,
			wantStrategy: domain.StrategyAI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, strategy := constrainRanked(ranked, tt.interp, cat)
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
			if strategy != tt.wantStrategy {
				t.Errorf("strategy = %q, want %q", strategy, tt.wantStrategy)
			}
		})
	}
}
