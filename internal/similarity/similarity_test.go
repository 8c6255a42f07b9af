package similarity

import (
	"math"
	"testing"

	"github.com/pdiddy/rank-eval/pkg/types"
)

func rec(id, title string, rank int) types.Record {
	return types.Record{ID: id, Title: title, Rank: rank}
}

// --- Jaccard ---

func TestJaccardIdenticallists(t *testing.T) {
	a := []types.Record{
		rec("x", "Weak Lensing Survey", 1),
		rec("y", "Dark Energy Constraints", 2),
	}
	if got := Jaccard(a, a); got != 1.0 {
		t.Errorf("Jaccard(A, A) = %f, want 1.0", got)
	}
}

func TestJaccardSymmetry(t *testing.T) {
	a := []types.Record{
		rec("x", "Weak Lensing Survey", 1),
		rec("y", "Dark Energy Constraints", 2),
	}
	b := []types.Record{
		rec("x", "Weak Lensing Survey", 1),
		rec("z", "Galaxy Rotation Curves", 2),
	}
	if Jaccard(a, b) != Jaccard(b, a) {
		t.Errorf("Jaccard not symmetric: %f vs %f", Jaccard(a, b), Jaccard(b, a))
	}
	// 1 match, union = 2 + 2 - 1 = 3.
	if got, want := Jaccard(a, b), 1.0/3.0; got != want {
		t.Errorf("Jaccard = %f, want %f", got, want)
	}
}

func TestJaccardSingleSharedRecord(t *testing.T) {
	a := []types.Record{rec("x", "Weak Lensing Survey", 1)}
	b := []types.Record{rec("x", "Weak Lensing Survey", 1)}

	if got := Jaccard(a, b); got != 1.0 {
		t.Errorf("Jaccard = %f, want 1.0", got)
	}
	if got := Compare(a, b).OverlapCount; got != 1 {
		t.Errorf("OverlapCount = %d, want 1", got)
	}
}

func TestJaccardEmptyLists(t *testing.T) {
	if got := Jaccard(nil, nil); got != 0 {
		t.Errorf("Jaccard(nil, nil) = %f, want 0", got)
	}
	if got := Jaccard(nil, []types.Record{rec("x", "T", 1)}); got != 0 {
		t.Errorf("Jaccard(nil, B) = %f, want 0", got)
	}
}

func TestJaccardExcludesFuzzyMatches(t *testing.T) {
	// Near-identical titles that only the fuzzy rule would relate.
	a := []types.Record{rec("x", "Exoplanet Detection via Transit Photometry", 1)}
	b := []types.Record{rec("y", "Exoplanet Detection Transit Photometry Methods", 1)}
	if got := Jaccard(a, b); got != 0 {
		t.Errorf("Jaccard = %f, want 0 (fuzzy matches excluded)", got)
	}
}

// --- RankBiasedOverlap ---

func TestRBOIdenticalLists(t *testing.T) {
	a := []types.Record{
		rec("x", "Alpha", 1),
		rec("y", "Beta", 2),
		rec("z", "Gamma", 3),
	}
	if got := RankBiasedOverlap(a, a, 0.9); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("RBO(A, A) = %f, want 1.0", got)
	}
}

func TestRBOBounds(t *testing.T) {
	a := []types.Record{rec("x", "Alpha", 1), rec("y", "Beta", 2)}
	b := []types.Record{rec("p", "Delta", 1), rec("q", "Epsilon", 2), rec("r", "Zeta", 3)}

	got := RankBiasedOverlap(a, b, 0.9)
	if got < 0 || got > 1 {
		t.Errorf("RBO = %f, outside [0, 1]", got)
	}
	if got != 0 {
		t.Errorf("RBO of disjoint lists = %f, want 0", got)
	}
}

func TestRBOEmptyLists(t *testing.T) {
	if got := RankBiasedOverlap(nil, nil, 0.9); got != 0 {
		t.Errorf("RBO(nil, nil) = %f, want 0", got)
	}
}

func TestRBOTopWeighted(t *testing.T) {
	// One shared record: at the top of both lists versus at the bottom.
	// The shallow match must score strictly higher.
	topA := []types.Record{rec("s", "Shared", 1), rec("a1", "Alpha", 2), rec("a2", "Beta", 3)}
	topB := []types.Record{rec("s", "Shared", 1), rec("b1", "Gamma", 2), rec("b2", "Delta", 3)}

	deepA := []types.Record{rec("a1", "Alpha", 1), rec("a2", "Beta", 2), rec("s", "Shared", 3)}
	deepB := []types.Record{rec("b1", "Gamma", 1), rec("b2", "Delta", 2), rec("s", "Shared", 3)}

	shallow := RankBiasedOverlap(topA, topB, 0.9)
	deep := RankBiasedOverlap(deepA, deepB, 0.9)
	if shallow <= deep {
		t.Errorf("top-rank match RBO %f should exceed bottom-rank match RBO %f", shallow, deep)
	}
}

func TestRBOShorterListStillBounded(t *testing.T) {
	a := []types.Record{rec("x", "Alpha", 1)}
	b := []types.Record{
		rec("x", "Alpha", 1),
		rec("y", "Beta", 2),
		rec("z", "Gamma", 3),
		rec("w", "Delta", 4),
	}
	got := RankBiasedOverlap(a, b, 0.9)
	if got <= 0 || got > 1 {
		t.Errorf("RBO = %f, want in (0, 1]", got)
	}
}

// --- Compare ---

func TestCompareBuckets(t *testing.T) {
	a := []types.Record{
		{ID: "bibA", DOI: "10.1000/one", Title: "First Paper", Rank: 1},
		{ID: "bibB", Title: "Second Paper", Rank: 2},
		{ID: "bibC", Title: "Third Paper", Rank: 3},
	}
	b := []types.Record{
		{ID: "otherA", DOI: "10.1000/ONE", Title: "First Paper Renamed Completely", Rank: 1},
		{ID: "otherB", Title: "Second Paper", Rank: 2},
		{ID: "bibC", Title: "Unrelated Caption", Rank: 3},
	}

	got := Compare(a, b)
	if got.OverlapCount != 3 {
		t.Errorf("OverlapCount = %d, want 3", got.OverlapCount)
	}
	if len(got.MatchingDOIIDs) != 1 || got.MatchingDOIIDs[0] != "bibA" {
		t.Errorf("MatchingDOIIDs = %v, want [bibA]", got.MatchingDOIIDs)
	}
	if len(got.MatchingTitleIDs) != 1 || got.MatchingTitleIDs[0] != "bibB" {
		t.Errorf("MatchingTitleIDs = %v, want [bibB]", got.MatchingTitleIDs)
	}
	// All three matched pairs hold identical ranks.
	if got.SameRankCount != 3 {
		t.Errorf("SameRankCount = %d, want 3", got.SameRankCount)
	}
}

func TestCompareNoDuplicateConsumption(t *testing.T) {
	a := []types.Record{
		rec("x", "Alpha Survey", 1),
		rec("y", "Alpha Survey", 2),
	}
	b := []types.Record{rec("z", "Alpha Survey", 1)}

	got := Compare(a, b)
	if got.OverlapCount != 1 {
		t.Errorf("OverlapCount = %d, want 1 (b record consumed once)", got.OverlapCount)
	}
}

// --- ComparePairs ---

func TestComparePairsAllPairsDeterministicOrder(t *testing.T) {
	lists := map[string][]types.Record{
		"ads":      {rec("x", "Alpha", 1)},
		"crossref": {rec("x", "Alpha", 1)},
		"scholar":  {rec("y", "Beta", 1)},
	}

	got := ComparePairs(lists, 0.9)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 pairs", len(got))
	}
	wantPairs := [][2]string{
		{"ads", "crossref"},
		{"ads", "scholar"},
		{"crossref", "scholar"},
	}
	for i, w := range wantPairs {
		if got[i].SourceA != w[0] || got[i].SourceB != w[1] {
			t.Errorf("pair %d = %s/%s, want %s/%s", i, got[i].SourceA, got[i].SourceB, w[0], w[1])
		}
	}
	if got[0].Jaccard != 1.0 {
		t.Errorf("ads/crossref Jaccard = %f, want 1.0", got[0].Jaccard)
	}
	if got[1].Jaccard != 0 {
		t.Errorf("ads/scholar Jaccard = %f, want 0", got[1].Jaccard)
	}
}
