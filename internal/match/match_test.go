// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"testing"
	"time"

	"github.com/pdiddy/rank-eval/pkg/types"
)

// --- NormalizeTitle ---

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"lowercase", "Weak Lensing Survey", "weak lensing survey"},
		{"punctuation stripped", "Dark-Matter: A Review!", "darkmatter a review"},
		{"whitespace collapsed", "  a   b\tc  ", "a b c"},
		{"empty", "", ""},
		{"digits kept", "Gaia DR3 Catalog", "gaia dr3 catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.title); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

// --- TokenJaccard ---

func TestTokenJaccard(t *testing.T) {
	// 5 shared tokens out of 6 distinct: 5/6 ≈ 0.83, above threshold.
	a := "Exoplanet Detection via Transit Photometry"
	b := "Exoplanet Detection Transit Photometry Methods"
	if got := TokenJaccard(a, b); got < FuzzyThreshold {
		t.Errorf("TokenJaccard(%q, %q) = %f, want >= %f", a, b, got, FuzzyThreshold)
	}

	if got := TokenJaccard("Exoplanet Detection", "Stellar Wind Dynamics"); got != 0 {
		t.Errorf("disjoint titles: TokenJaccard = %f, want 0", got)
	}

	if got := TokenJaccard("", ""); got != 0 {
		t.Errorf("empty titles: TokenJaccard = %f, want 0", got)
	}

	if got := TokenJaccard("same title", "same title"); got != 1.0 {
		t.Errorf("identical titles: TokenJaccard = %f, want 1.0", got)
	}
}

// --- Match / MatchExact ---

func TestMatchPriorityRules(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Record
		want bool
	}{
		{
			"doi case-insensitive",
			types.Record{DOI: "10.1093/MNRAS/stu123", Title: "A"},
			types.Record{DOI: "10.1093/mnras/stu123", Title: "B"},
			true,
		},
		{
			"bibcode equal",
			types.Record{ID: "2019ApJ...870L..12P", Title: "A"},
			types.Record{ID: "2019ApJ...870L..12P", Title: "B"},
			true,
		},
		{
			"normalized title",
			types.Record{ID: "x", Title: "Weak Lensing: Survey"},
			types.Record{ID: "y", Title: "weak lensing survey"},
			true,
		},
		{
			"no identifiers no title overlap",
			types.Record{ID: "x", Title: "Exoplanet Detection"},
			types.Record{ID: "y", Title: "Stellar Wind Dynamics"},
			false,
		},
		{
			"empty dois do not match each other",
			types.Record{Title: "Alpha"},
			types.Record{Title: "Beta"},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchExact(tt.a, tt.b); got != tt.want {
				t.Errorf("MatchExact = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchFuzzyFallback(t *testing.T) {
	a := types.Record{ID: "x", Title: "Exoplanet Detection via Transit Photometry"}
	b := types.Record{ID: "y", Title: "Exoplanet Detection Transit Photometry Methods"}

	if MatchExact(a, b) {
		t.Error("MatchExact should not use fuzzy similarity")
	}
	if !Match(a, b) {
		t.Error("Match should accept fuzzy similarity above threshold")
	}
}

func TestMatchIgnoresYear(t *testing.T) {
	a := types.Record{ID: "x", Title: "Weak Lensing Survey", Year: 2019}
	b := types.Record{ID: "x", Title: "Weak Lensing Survey"}
	if !Match(a, b) {
		t.Error("missing year must not prevent a match")
	}
}

// --- FindCorrespondence ---

func TestFindCorrespondenceExact(t *testing.T) {
	original := []types.Record{
		{ID: "bib1", Title: "Alpha Survey", Rank: 1},
		{ID: "bib2", Title: "Beta Catalog", Rank: 2},
		{ID: "bib3", Title: "Gamma Review", Rank: 3},
	}
	updated := []types.Record{
		{ID: "bib3", Title: "Gamma Review", Rank: 1},
		{ID: "bib1", Title: "Alpha Survey", Rank: 2},
		{ID: "bib9", Title: "Unrelated Thing Entirely", Rank: 3},
	}

	got := FindCorrespondence(original, updated)
	want := []int{2, 0, -1}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mapping[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFindCorrespondenceConsumesOriginals(t *testing.T) {
	// Two updated records resolve to the same original title; only the
	// first (by updated order) may claim it.
	original := []types.Record{
		{ID: "bib1", Title: "Dark Matter Halos", Rank: 1},
	}
	updated := []types.Record{
		{ID: "a", Title: "Dark Matter Halos", Rank: 1},
		{ID: "b", Title: "Dark Matter Halos", Rank: 2},
	}

	got := FindCorrespondence(original, updated)
	if got[0] != 0 {
		t.Errorf("mapping[0] = %d, want 0", got[0])
	}
	if got[1] != -1 {
		t.Errorf("mapping[1] = %d, want -1 (original already consumed)", got[1])
	}
}

func TestFindCorrespondenceFuzzyTieBreak(t *testing.T) {
	// Both originals score identically against the updated title; the
	// earlier-ranked original wins.
	original := []types.Record{
		{ID: "bib1", Title: "Galaxy Cluster Mass Estimation Methods", Rank: 1},
		{ID: "bib2", Title: "Galaxy Cluster Mass Estimation Methods", Rank: 2},
	}
	updated := []types.Record{
		{ID: "new1", Title: "Galaxy Cluster Mass Estimation Methods Review", Rank: 1},
	}

	got := FindCorrespondence(original, updated)
	if got[0] != 0 {
		t.Errorf("mapping[0] = %d, want 0 (earliest original rank wins tie)", got[0])
	}
}

func TestFindCorrespondenceEmptyLists(t *testing.T) {
	if got := FindCorrespondence(nil, nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	got := FindCorrespondence(nil, []types.Record{{ID: "x", Title: "T"}})
	if got[0] != -1 {
		t.Errorf("mapping[0] = %d, want -1", got[0])
	}
}

// --- DeriveYear ---

func TestDeriveYear(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  types.Record
		want int
	}{
		{"already set", types.Record{Year: 2001}, 2001},
		{"from bibcode", types.Record{ID: "2019ApJ...870L..12P"}, 2019},
		{"from url", types.Record{URL: "https://example.org/abs/2020/12345"}, 2020},
		{"url skips implausible doi prefix", types.Record{URL: "https://doi.org/10.1234/j.2021.555"}, 2021},
		{"url with only implausible groups", types.Record{URL: "https://doi.org/10.9999/0042"}, 2023},
		{"from title", types.Record{Title: "Gaia Mission Overview (2016)"}, 2016},
		{"fallback", types.Record{ID: "nonnumeric", Title: "No Year Here"}, 2023},
		{"implausible leading digits rejected", types.Record{ID: "0042ABC"}, 2023},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveYear(tt.rec, now); got != tt.want {
				t.Errorf("DeriveYear = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRepairDoesNotMutateInput(t *testing.T) {
	in := []types.Record{{ID: "2019ApJ...870L..12P", Title: "T"}}
	out := Repair(in, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	if in[0].Year != 0 {
		t.Errorf("input mutated: Year = %d, want 0", in[0].Year)
	}
	if out[0].Year != 2019 {
		t.Errorf("output Year = %d, want 2019", out[0].Year)
	}
}
