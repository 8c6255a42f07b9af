// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"math"
	"sort"

	"github.com/pdiddy/rank-eval/pkg/types"
)

// NDCGAtK scores the quality of a ranked list against per-record relevance
// values, truncated to the top k (R2.1-R2.4). rel maps record ID to a
// consensus relevance in [0, 1]; records absent from the map count as 0.
//
// Gain is 2^rel − 1 with discount log2(position + 2) over 0-based
// positions. IDCG uses the same formula over the list re-sorted descending
// by relevance. The result is DCG/IDCG, defined as 0 when IDCG is 0 (all
// relevances zero) or the list is empty (R2.5).
func NDCGAtK(results []types.Record, rel map[string]float64, k int) float64 {
	if len(results) == 0 || k < 1 {
		return 0
	}

	gains := make([]float64, len(results))
	for i, r := range results {
		gains[i] = math.Pow(2, relevanceFor(r, rel)) - 1
	}

	dcg := discountedSum(gains, k)

	ideal := append([]float64(nil), gains...)
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))
	idcg := discountedSum(ideal, k)

	if idcg == 0 {
		return 0
	}
	return dcg / idcg
}

// Judged reports whether the record has a consensus relevance entry under
// its bibcode or DOI.
func Judged(r types.Record, rel map[string]float64) bool {
	_, ok := lookup(r, rel)
	return ok
}

// relevanceFor looks up the record's consensus relevance, trying the
// bibcode first and the DOI second.
func relevanceFor(r types.Record, rel map[string]float64) float64 {
	v, _ := lookup(r, rel)
	return v
}

func lookup(r types.Record, rel map[string]float64) (float64, bool) {
	if v, ok := rel[r.ID]; ok {
		return v, true
	}
	if r.DOI != "" {
		if v, ok := rel[r.DOI]; ok {
			return v, true
		}
	}
	return 0, false
}

func discountedSum(gains []float64, k int) float64 {
	if k > len(gains) {
		k = len(gains)
	}
	total := 0.0
	for i := 0; i < k; i++ {
		total += gains[i] / math.Log2(float64(i)+2)
	}
	return total
}

// SnapLabel snaps a raw score onto the graded relevance label domain
// {0, 0.33, 0.67, 1} used for individual judgments (R1.2). Consensus
// scores stay continuous and never pass through here.
func SnapLabel(score float64) float64 {
	labels := []float64{0, 0.33, 0.67, 1}
	best, bestDist := labels[0], math.Abs(score-labels[0])
	for _, l := range labels[1:] {
		if d := math.Abs(score - l); d < bestDist {
			best, bestDist = l, d
		}
	}
	return best
}
