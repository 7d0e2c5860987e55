package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/travelcommerce/smartsearch/internal/domain"
)

type mockGateway struct {
	interp         *domain.ProviderInterpretation
	interpretErr   error
	interpretCalls int

	rankIDs   []string
	rankErr   error
	rankCalls int
}

func (m *mockGateway) Interpret(_ context.Context, _ string) (*domain.ProviderInterpretation, error) {
	m.interpretCalls++
	return m.interp, m.interpretErr
}

func (m *mockGateway) Rank(
	_ context.Context, _ string,
	_ domain.Interpretation, _ []domain.CompactPost,
) ([]string, error) {
	m.rankCalls++
	return m.rankIDs, m.rankErr
}

func testPosts() []domain.Post {
	return []domain.Post{
		{ID: "p1", Title: "Hilltop Hotel", Category: "hotel", District: "Kandy"},
		{ID: "p2", Title: "Spice Garden Restaurant", Category: "restaurant", District: "Kandy"},
		{ID: "p3", Title: "Rock View Hotel", Category: "hotel", District: "Matale"},
		{ID: "p4", Title: "Lake Tours", Category: "tour_guide", District: "Kandy"},
		{ID: "p5", Title: "Beach Villa", Category: "hotel", District: "Galle"},
		{ID: "p6", Title: "Fort Cafe", Category: "restaurant", District: "Galle"},
	}
}

func newDeterministicService() *Service {
	return New(nil, Config{}, zap.NewNop())
}

func TestSearchDistrictQuery(t *testing.T) {
	svc := newDeterministicService()

	resp := svc.Search(context.Background(), "hotel in kandy", testPosts())

	if resp.Interpretation.District != "Kandy" {
		t.Errorf("district = %q, want Kandy", resp.Interpretation.District)
	}
	if resp.Interpretation.Intent != "stay" {
		t.Errorf("intent = %q, want stay", resp.Interpretation.Intent)
	}
	if resp.Interpretation.Strategy != domain.StrategyDistrict {
		t.Errorf("strategy = %q, want district", resp.Interpretation.Strategy)
	}
	// district+category tier: only the Kandy hotel.
	if len(resp.MatchedPostIDs) != 1 || resp.MatchedPostIDs[0] != "p1" {
		t.Errorf("matched = %v, want [p1]", resp.MatchedPostIDs)
	}
	if !strings.Contains(resp.Explanation, "Kandy") {
		t.Errorf("explanation does not mention the district: %q", resp.Explanation)
	}
}

func TestSearchLandmarkQuery(t *testing.T) {
	svc := newDeterministicService()

	resp := svc.Search(context.Background(), "things to do near Sigiriya", testPosts())

	if resp.Interpretation.Place != "Sigiriya" {
		t.Errorf("place = %q, want Sigiriya", resp.Interpretation.Place)
	}
	if resp.Interpretation.District != "Matale" {
		t.Errorf("district = %q, want Matale", resp.Interpretation.District)
	}
	// Only Matale post is p3.
	if len(resp.MatchedPostIDs) != 1 || resp.MatchedPostIDs[0] != "p3" {
		t.Errorf("matched = %v, want [p3]", resp.MatchedPostIDs)
	}
	if !strings.Contains(resp.Explanation, "ancient rock fortress") {
		t.Errorf("explanation missing the Sigiriya note: %q", resp.Explanation)
	}
}

func TestSearchIntentOnlyQuery(t *testing.T) {
	svc := newDeterministicService()

	resp := svc.Search(context.Background(), "birthday surprise", testPosts())

	if resp.Interpretation.Intent != "celebration" {
		t.Errorf("intent = %q, want celebration", resp.Interpretation.Intent)
	}
	if resp.Interpretation.District != "" {
		t.Errorf("district = %q, want empty", resp.Interpretation.District)
	}
	if resp.Interpretation.Strategy != domain.StrategyCategory {
		t.Errorf("strategy = %q, want category", resp.Interpretation.Strategy)
	}
	// Category tier across all districts: restaurants, hotels, experiences.
	want := map[string]struct{}{"p1": {}, "p2": {}, "p3": {}, "p5": {}, "p6": {}}
	if len(resp.MatchedPostIDs) != len(want) {
		t.Fatalf("matched = %v, want 5 ids", resp.MatchedPostIDs)
	}
	for _, id := range resp.MatchedPostIDs {
		if _, ok := want[id]; !ok {
			t.Errorf("unexpected id %q in %v", id, resp.MatchedPostIDs)
		}
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := newDeterministicService()

	resp := svc.Search(context.Background(), "   ", testPosts())

	if len(resp.MatchedPostIDs) != 0 {
		t.Errorf("matched = %v, want empty", resp.MatchedPostIDs)
	}
	if resp.MatchedPostIDs == nil {
		t.Error("matched must be an empty slice, not nil")
	}
	if resp.Interpretation.Strategy != domain.StrategyNone {
		t.Errorf("strategy = %q, want none", resp.Interpretation.Strategy)
	}
	if resp.Explanation != emptyQueryExplanation {
		t.Errorf("explanation = %q", resp.Explanation)
	}
}

func TestSearchEmptyCatalog(t *testing.T) {
	svc := newDeterministicService()

	resp := svc.Search(context.Background(), "hotel in kandy", nil)

	if len(resp.MatchedPostIDs) != 0 {
		t.Errorf("matched = %v, want empty", resp.MatchedPostIDs)
	}
	if !strings.Contains(resp.Explanation, "no service posts available") {
		t.Errorf("explanation = %q", resp.Explanation)
	}
}

func TestSearchNoSignalQuery(t *testing.T) {
	svc := newDeterministicService()

	resp := svc.Search(context.Background(), "zzz qqq", testPosts())

	if resp.Interpretation.Intent != "general" {
		t.Errorf("intent = %q, want general", resp.Interpretation.Intent)
	}
	if len(resp.MatchedPostIDs) != 0 {
		t.Errorf("matched = %v, want empty", resp.MatchedPostIDs)
	}
	if resp.Interpretation.Strategy != domain.StrategyNone {
		t.Errorf("strategy = %q, want none", resp.Interpretation.Strategy)
	}
}

func TestSearchClosedWorld(t *testing.T) {
	svc := newDeterministicService()
	posts := testPosts()

	queries := []string{
		"hotel in kandy", "birthday cake", "restaurant", "sigiriya tour",
		"cheap ride", "romantic stay in galle", "", "unrelated words",
	}

	valid := map[string]struct{}{}
	for _, p := range posts {
		valid[p.ID] = struct{}{}
	}

	for _, q := range queries {
		resp := svc.Search(context.Background(), q, posts)
		seen := map[string]struct{}{}
		for _, id := range resp.MatchedPostIDs {
			if _, ok := valid[id]; !ok {
				t.Errorf("query %q returned unknown id %q", q, id)
			}
			if _, dup := seen[id]; dup {
				t.Errorf("query %q returned duplicate id %q", q, id)
			}
			seen[id] = struct{}{}
		}
		if resp.Explanation == "" {
			t.Errorf("query %q returned empty explanation", q)
		}
	}
}

func TestSearchDeterministicForSameInput(t *testing.T) {
	svc := newDeterministicService()
	posts := testPosts()

	first := svc.Search(context.Background(), "hotel in kandy", posts)
	second := svc.Search(context.Background(), "hotel in kandy", posts)

	if first.Explanation != second.Explanation {
		t.Error("explanations differ across identical calls")
	}
	if len(first.MatchedPostIDs) != len(second.MatchedPostIDs) {
		t.Fatal("matched lengths differ across identical calls")
	}
	for i := range first.MatchedPostIDs {
		if first.MatchedPostIDs[i] != second.MatchedPostIDs[i] {
			t.Errorf("matched[%d] differs: %q vs %q", i, first.MatchedPostIDs[i], second.MatchedPostIDs[i])
		}
	}
}

func TestProviderInterpretationUsedForSignalFreeQuery(t *testing.T) {
	gw := &mockGateway{
		interp: &domain.ProviderInterpretation{
			Intent:     "food",
			District:   "Galle",
			Categories: []string{"restaurant"},
		},
	}
	svc := New(gw, Config{RankingEnabled: true, InterpretationEnabled: true}, zap.NewNop())

	resp := svc.Search(context.Background(), "somewhere to grab a bite", testPosts())

	if gw.interpretCalls != 1 {
		t.Errorf("interpretCalls = %d, want 1", gw.interpretCalls)
	}
	if resp.Interpretation.Intent != "food" {
		t.Errorf("intent = %q, want food", resp.Interpretation.Intent)
	}
	if resp.Interpretation.District != "Galle" {
		t.Errorf("district = %q, want Galle", resp.Interpretation.District)
	}
}

func TestProviderInterpretationSkippedWhenHeuristicsFound(t *testing.T) {
	gw := &mockGateway{}
	svc := New(gw, Config{RankingEnabled: true, InterpretationEnabled: true}, zap.NewNop())

	svc.Search(context.Background(), "hotel in kandy", testPosts())

	if gw.interpretCalls != 0 {
		t.Errorf("interpretCalls = %d, want 0", gw.interpretCalls)
	}
}

func TestProviderInterpretationSanitized(t *testing.T) {
	gw := &mockGateway{
		interp: &domain.ProviderInterpretation{
			Intent:     "world domination",
			District:   "Atlantis",
			Categories: []string{"restaurant", "time travel", "restaurant"},
		},
	}
	svc := New(gw, Config{RankingEnabled: true, InterpretationEnabled: true}, zap.NewNop())

	resp := svc.Search(context.Background(), "zzz qqq", testPosts())

	if resp.Interpretation.Intent != "general" {
		t.Errorf("intent = %q, want general", resp.Interpretation.Intent)
	}
	if resp.Interpretation.District != "" {
		t.Errorf("district = %q, want empty", resp.Interpretation.District)
	}
	if len(resp.Interpretation.SuggestedCategories) != 1 ||
		resp.Interpretation.SuggestedCategories[0] != "restaurant" {
		t.Errorf("categories = %v, want [restaurant]", resp.Interpretation.SuggestedCategories)
	}
}

func TestProviderInterpretationFailureFallsBack(t *testing.T) {
	gw := &mockGateway{interpretErr: errors.New("timeout")}
	svc := New(gw, Config{RankingEnabled: true, InterpretationEnabled: true}, zap.NewNop())

	resp := svc.Search(context.Background(), "zzz qqq", testPosts())

	if resp.Interpretation.Intent != "general" {
		t.Errorf("intent = %q, want general", resp.Interpretation.Intent)
	}
	if resp.Interpretation.Strategy != domain.StrategyNone {
		t.Errorf("strategy = %q, want none", resp.Interpretation.Strategy)
	}
}

func TestProviderRankingConstrainedToDistrict(t *testing.T) {
	// Provider prefers the Galle hotel, but the query names Kandy.
	gw := &mockGateway{rankIDs: []string{"p5", "p1", "p2"}}
	svc := New(gw, Config{RankingEnabled: true}, zap.NewNop())

	resp := svc.Search(context.Background(), "hotel in kandy", testPosts())

	if gw.rankCalls != 1 {
		t.Fatalf("rankCalls = %d, want 1", gw.rankCalls)
	}
	if resp.Interpretation.Strategy != domain.StrategyAIDistrict {
		t.Errorf("strategy = %q, want ai_district", resp.Interpretation.Strategy)
	}
	// p5 (Galle) must be dropped; p1 is the Kandy hotel.
	if len(resp.MatchedPostIDs) != 1 || resp.MatchedPostIDs[0] != "p1" {
		t.Errorf("matched = %v, want [p1]", resp.MatchedPostIDs)
	}
}

func TestProviderRankingInventedIDsDropped(t *testing.T) {
	gw := &mockGateway{rankIDs: []string{"ghost", "p2", "p2", "phantom"}}
	svc := New(gw, Config{RankingEnabled: true}, zap.NewNop())

	resp := svc.Search(context.Background(), "restaurant in kandy", testPosts())

	if len(resp.MatchedPostIDs) != 1 || resp.MatchedPostIDs[0] != "p2" {
		t.Errorf("matched = %v, want [p2]", resp.MatchedPostIDs)
	}
}

func TestProviderRankingFailureFallsBackToDeterministic(t *testing.T) {
	gw := &mockGateway{rankErr: errors.New("rate limited")}
	svc := New(gw, Config{RankingEnabled: true}, zap.NewNop())

	resp := svc.Search(context.Background(), "hotel in kandy", testPosts())

	if resp.Interpretation.Strategy != domain.StrategyDistrict {
		t.Errorf("strategy = %q, want district", resp.Interpretation.Strategy)
	}
	if len(resp.MatchedPostIDs) != 1 || resp.MatchedPostIDs[0] != "p1" {
		t.Errorf("matched = %v, want [p1]", resp.MatchedPostIDs)
	}
}

func TestProviderRankingEmptyAfterConstraintsFallsBack(t *testing.T) {
	// Provider returns only IDs outside the resolved district; constraints
	// empty the list, so the deterministic tiers take over.
	gw := &mockGateway{rankIDs: []string{"ghost"}}
	svc := New(gw, Config{RankingEnabled: true}, zap.NewNop())

	resp := svc.Search(context.Background(), "hotel in kandy", testPosts())

	if resp.Interpretation.Strategy != domain.StrategyDistrict {
		t.Errorf("strategy = %q, want district", resp.Interpretation.Strategy)
	}
	if len(resp.MatchedPostIDs) != 1 || resp.MatchedPostIDs[0] != "p1" {
		t.Errorf("matched = %v, want [p1]", resp.MatchedPostIDs)
	}
}

func TestProviderRankingUnconstrainedQuery(t *testing.T) {
	// No district and no categories: the provider order passes through as-is.
	gw := &mockGateway{
		interp:  &domain.ProviderInterpretation{Intent: "general"},
		rankIDs: []string{"p6", "p3"},
	}
	svc := New(gw, Config{RankingEnabled: true, InterpretationEnabled: true}, zap.NewNop())

	resp := svc.Search(context.Background(), "zzz qqq", testPosts())

	if resp.Interpretation.Strategy != domain.StrategyAI {
		t.Errorf("strategy = %q, want ai", resp.Interpretation.Strategy)
	}
	if len(resp.MatchedPostIDs) != 2 || resp.MatchedPostIDs[0] != "p6" || resp.MatchedPostIDs[1] != "p3" {
		t.Errorf("matched = %v, want [p6 p3]", resp.MatchedPostIDs)
	}
}
