// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity quantifies how much two ranked result lists agree.
// Implements: prd010-comparison (R2, R3);
//
//	docs/ARCHITECTURE § Comparison Metrics.
package similarity

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/rank-eval/internal/match"
	"github.com/pdiddy/rank-eval/pkg/types"
)

// DefaultPersistence is the default RBO p parameter (R3.2).
const DefaultPersistence = 0.9

// Jaccard returns the set similarity of two result lists: matched pairs
// over the union size, where matching is exact only (DOI, bibcode,
// normalized title). Fuzzy title similarity is excluded so near-duplicate
// titles never inflate the score (R2.4). Empty union yields 0, not an
// error (R2.5).
func Jaccard(listA, listB []types.Record) float64 {
	matched := countExactPairs(listA, listB)
	unionSize := len(listA) + len(listB) - matched
	if unionSize == 0 {
		return 0
	}
	return float64(matched) / float64(unionSize)
}

// countExactPairs counts distinct exactly-matched pairs between the two
// lists. Each record participates in at most one pair.
func countExactPairs(listA, listB []types.Record) int {
	consumed := make([]bool, len(listB))
	matched := 0
	for _, a := range listA {
		for j, b := range listB {
			if consumed[j] {
				continue
			}
			if match.MatchExact(a, b) {
				consumed[j] = true
				matched++
				break
			}
		}
	}
	return matched
}

// RankBiasedOverlap computes the RBO of two ranked lists with persistence
// p: the weighted average of prefix overlap ratios, weights (1-p)·p^(d-1),
// top ranks weighted heaviest (R3.1-R3.3). The sum is normalized by the
// weight actually available at max(|A|,|B|) depths, so short lists still
// produce a value in [0, 1]. Both lists empty yields 0.
func RankBiasedOverlap(listA, listB []types.Record, p float64) float64 {
	maxDepth := len(listA)
	if len(listB) > maxDepth {
		maxDepth = len(listB)
	}
	if maxDepth == 0 {
		return 0
	}
	if p <= 0 || p >= 1 {
		p = DefaultPersistence
	}

	var weighted, totalWeight float64
	for d := 1; d <= maxDepth; d++ {
		prefixA := listA[:min(d, len(listA))]
		prefixB := listB[:min(d, len(listB))]
		overlap := float64(countExactPairs(prefixA, prefixB)) / float64(d)

		weight := (1 - p) * math.Pow(p, float64(d-1))
		weighted += weight * overlap
		totalWeight += weight
	}
	return weighted / totalWeight
}

// Compare summarizes the overlap between two result lists: how many pairs
// matched, which matched by DOI versus by normalized title, and how many
// matched pairs hold the same rank in both lists (R2.1-R2.3).
func Compare(listA, listB []types.Record) types.ComparisonResult {
	var result types.ComparisonResult
	consumed := make([]bool, len(listB))

	for _, a := range listA {
		for j, b := range listB {
			if consumed[j] || !match.MatchExact(a, b) {
				continue
			}
			consumed[j] = true
			result.OverlapCount++

			switch {
			case a.DOI != "" && b.DOI != "" && strings.EqualFold(a.DOI, b.DOI):
				result.MatchingDOIIDs = append(result.MatchingDOIIDs, recordID(a))
			case a.ID != "" && a.ID == b.ID:
				// Bibcode match; neither a DOI nor a title bucket.
			default:
				result.MatchingTitleIDs = append(result.MatchingTitleIDs, recordID(a))
			}

			if a.Rank == b.Rank {
				result.SameRankCount++
			}
			break
		}
	}
	return result
}

// recordID prefers the bibcode, falling back to DOI then normalized title.
func recordID(r types.Record) string {
	if r.ID != "" {
		return r.ID
	}
	if r.DOI != "" {
		return strings.ToLower(r.DOI)
	}
	return match.NormalizeTitle(r.Title)
}

// PairComparison holds the metrics for one source pair.
type PairComparison struct {
	SourceA string                 `json:"source_a" yaml:"source_a"`
	SourceB string                 `json:"source_b" yaml:"source_b"`
	Result  types.ComparisonResult `json:"result" yaml:"result"`
	Jaccard float64                `json:"jaccard" yaml:"jaccard"`
	RBO     float64                `json:"rbo" yaml:"rbo"`
}

// ComparePairs computes Compare, Jaccard, and RBO for every pair of source
// lists. Pairs are independent, so each runs in its own goroutine; the
// output is ordered by source name for deterministic presentation (R3.4).
func ComparePairs(lists map[string][]types.Record, p float64) []PairComparison {
	names := make([]string, 0, len(lists))
	for name := range lists {
		names = append(names, name)
	}
	sort.Strings(names)

	var pairs [][2]string
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			pairs = append(pairs, [2]string{names[i], names[j]})
		}
	}

	out := make([]PairComparison, len(pairs))
	var wg sync.WaitGroup
	for i, pair := range pairs {
		wg.Add(1)
		go func(i int, nameA, nameB string) {
			defer wg.Done()
			listA, listB := lists[nameA], lists[nameB]
			out[i] = PairComparison{
				SourceA: nameA,
				SourceB: nameB,
				Result:  Compare(listA, listB),
				Jaccard: Jaccard(listA, listB),
				RBO:     RankBiasedOverlap(listA, listB, p),
			}
		}(i, pair[0], pair[1])
	}
	wg.Wait()
	return out
}
