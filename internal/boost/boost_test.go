// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boost

import (
	"math"
	"testing"
	"time"

	"github.com/pdiddy/rank-eval/pkg/types"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func mustScorer(t *testing.T, cfg types.BoostConfig) *Scorer {
	t.Helper()
	s, err := newScorerAt(cfg, testNow)
	if err != nil {
		t.Fatalf("newScorerAt: %v", err)
	}
	return s
}

// --- configuration validation ---

func TestNewScorerRejectsUnknownMethod(t *testing.T) {
	_, err := NewScorer(types.BoostConfig{CombinationMethod: "median"})
	if err == nil {
		t.Fatal("expected error for unknown combination method")
	}
}

func TestNewScorerRejectsUnknownRecencyFunction(t *testing.T) {
	_, err := NewScorer(types.BoostConfig{RecencyFunction: "sigmoid"})
	if err == nil {
		t.Fatal("expected error for unknown recency function")
	}
}

func TestNewScorerDefaults(t *testing.T) {
	if _, err := NewScorer(types.BoostConfig{}); err != nil {
		t.Fatalf("empty config should validate with defaults: %v", err)
	}
}

// --- individual factors ---

func TestCiteFactor(t *testing.T) {
	s := mustScorer(t, types.BoostConfig{CiteBoostWeight: 2.0})

	zero := s.Factors(types.Record{Title: "T"})
	if zero[FactorCite] != 0 {
		t.Errorf("cite factor for 0 citations = %f, want 0", zero[FactorCite])
	}

	hundred := s.Factors(types.Record{Title: "T", CitationCount: 100})
	want := math.Log(101) * 2.0
	if math.Abs(hundred[FactorCite]-want) > 1e-12 {
		t.Errorf("cite factor = %f, want %f", hundred[FactorCite], want)
	}
}

func TestRecencyFactorExponentialDecay(t *testing.T) {
	s := mustScorer(t, types.BoostConfig{
		RecencyBoostWeight:    1.0,
		RecencyFunction:       types.RecencyExponential,
		RecencyMidpointMonths: 36,
	})

	fresh := s.Factors(types.Record{Title: "T", Year: 2026})
	old := s.Factors(types.Record{Title: "T", Year: 2010})
	if fresh[FactorRecency] <= old[FactorRecency] {
		t.Errorf("recent record factor %f should exceed old record factor %f",
			fresh[FactorRecency], old[FactorRecency])
	}
	if old[FactorRecency] < 0 {
		t.Errorf("recency factor = %f, must not go negative", old[FactorRecency])
	}
}

func TestRecencyFactorLinearHitsZero(t *testing.T) {
	s := mustScorer(t, types.BoostConfig{
		RecencyBoostWeight:    1.0,
		RecencyFunction:       types.RecencyLinear,
		RecencyMidpointMonths: 12,
	})

	// 16 years old, far past twice the midpoint.
	old := s.Factors(types.Record{Title: "T", Year: 2010})
	if old[FactorRecency] != 0 {
		t.Errorf("linear recency for ancient record = %f, want 0", old[FactorRecency])
	}
}

func TestRecencyFactorDerivesMissingYear(t *testing.T) {
	s := mustScorer(t, types.BoostConfig{RecencyBoostWeight: 1.0})

	// Year comes from the bibcode prefix.
	withBibcode := s.Factors(types.Record{ID: "2024ApJ...900..100X", Title: "T"})
	// No derivable year: falls back to now minus three years.
	fallback := s.Factors(types.Record{ID: "nonnumeric", Title: "No Year"})

	if withBibcode[FactorRecency] <= fallback[FactorRecency] {
		t.Errorf("2024 record factor %f should exceed fallback-year factor %f",
			withBibcode[FactorRecency], fallback[FactorRecency])
	}
	if fallback[FactorRecency] <= 0 {
		t.Errorf("fallback-year factor = %f, want > 0", fallback[FactorRecency])
	}
}

func TestDoctypeFactor(t *testing.T) {
	s := mustScorer(t, types.BoostConfig{
		DoctypeBoostWeight: 1.5,
		DoctypeAllowList:   []string{"article", "eprint"},
	})

	tests := []struct {
		name    string
		docType string
		want    float64
	}{
		{"allowed", "article", 1.5},
		{"allowed case-insensitive", "Article", 1.5},
		{"not allowed", "abstract", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Factors(types.Record{Title: "T", DocType: tt.docType})
			if got[FactorDoctype] != tt.want {
				t.Errorf("doctype factor = %f, want %f", got[FactorDoctype], tt.want)
			}
		})
	}
}

func TestRefereedFactor(t *testing.T) {
	s := mustScorer(t, types.BoostConfig{RefereedBoostWeight: 0.5})

	yes := s.Factors(types.Record{Title: "T", Properties: []string{"openaccess", "REFEREED"}})
	if yes[FactorRefereed] != 0.5 {
		t.Errorf("refereed factor = %f, want 0.5", yes[FactorRefereed])
	}
	no := s.Factors(types.Record{Title: "T", Properties: []string{"openaccess"}})
	if no[FactorRefereed] != 0 {
		t.Errorf("refereed factor = %f, want 0", no[FactorRefereed])
	}
}

// --- combination methods ---

func combineCfg(method types.CombinationMethod) types.BoostConfig {
	return types.BoostConfig{
		CiteBoostWeight:     1.0,
		RefereedBoostWeight: 0.5,
		CombinationMethod:   method,
	}
}

func TestCombineMethods(t *testing.T) {
	r := types.Record{Title: "T", CitationCount: 100, Properties: []string{"refereed"}}
	cite := math.Log(101)

	tests := []struct {
		method types.CombinationMethod
		want   float64
	}{
		{types.CombineSum, cite + 0.5},
		{types.CombineProduct, (1+cite)*(1+0.5) - 1},
		{types.CombineMax, cite},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			s := mustScorer(t, combineCfg(tt.method))
			scored := s.Rerank([]types.Record{r})
			if math.Abs(scored[0].FinalBoost-tt.want) > 1e-12 {
				t.Errorf("FinalBoost = %f, want %f", scored[0].FinalBoost, tt.want)
			}
		})
	}
}

// --- Rerank ---

func TestRerankOrdersByBoost(t *testing.T) {
	s := mustScorer(t, types.BoostConfig{
		CiteBoostWeight:   1.0,
		CombinationMethod: types.CombineSum,
	})
	records := []types.Record{
		{ID: "low", Title: "Low Citations", CitationCount: 0, Rank: 1},
		{ID: "high", Title: "High Citations", CitationCount: 100, Rank: 2},
	}

	scored := s.Rerank(records)
	if scored[0].ID != "high" {
		t.Fatalf("scored[0] = %s, want high", scored[0].ID)
	}
	if scored[0].FinalBoost <= scored[1].FinalBoost {
		t.Errorf("high boost %f must strictly exceed low boost %f",
			scored[0].FinalBoost, scored[1].FinalBoost)
	}
	if scored[0].RankChange != 1 {
		t.Errorf("high RankChange = %d, want 1 (moved up)", scored[0].RankChange)
	}
	if scored[1].RankChange != -1 {
		t.Errorf("low RankChange = %d, want -1 (moved down)", scored[1].RankChange)
	}
}

func TestRerankZeroWeightsPreservesOrder(t *testing.T) {
	s := mustScorer(t, types.BoostConfig{})
	records := []types.Record{
		{ID: "a", Title: "Alpha", CitationCount: 5, Rank: 1},
		{ID: "b", Title: "Beta", CitationCount: 500, Rank: 2},
		{ID: "c", Title: "Gamma", CitationCount: 50, Rank: 3},
	}

	scored := s.Rerank(records)
	for i, want := range []string{"a", "b", "c"} {
		if scored[i].ID != want {
			t.Errorf("scored[%d] = %s, want %s (no-op rerank must keep order)", i, scored[i].ID, want)
		}
		if scored[i].RankChange != 0 {
			t.Errorf("scored[%d].RankChange = %d, want 0", i, scored[i].RankChange)
		}
	}
}

func TestRerankTiesKeepOriginalOrder(t *testing.T) {
	s := mustScorer(t, types.BoostConfig{
		RefereedBoostWeight: 1.0,
		CombinationMethod:   types.CombineSum,
	})
	// All refereed: identical boosts across the board.
	records := []types.Record{
		{ID: "a", Title: "Alpha", Properties: []string{"refereed"}, Rank: 1},
		{ID: "b", Title: "Beta", Properties: []string{"refereed"}, Rank: 2},
		{ID: "c", Title: "Gamma", Properties: []string{"refereed"}, Rank: 3},
	}

	scored := s.Rerank(records)
	for i, want := range []string{"a", "b", "c"} {
		if scored[i].ID != want {
			t.Errorf("scored[%d] = %s, want %s", i, scored[i].ID, want)
		}
	}
}

func TestRerankDoesNotMutateInput(t *testing.T) {
	s := mustScorer(t, types.BoostConfig{CiteBoostWeight: 1.0})
	records := []types.Record{
		{ID: "a", Title: "Alpha", CitationCount: 1, Rank: 1},
		{ID: "b", Title: "Beta", CitationCount: 99, Rank: 2},
	}

	s.Rerank(records)
	if records[0].ID != "a" || records[1].ID != "b" {
		t.Error("Rerank mutated its input slice")
	}
}
