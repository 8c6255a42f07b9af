// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores ranked lists against graded judgments: consensus
// aggregation across raters and NDCG@k against the ideal ordering.
// Implements: prd012-relevance (R1-R3);
//
//	docs/ARCHITECTURE § Relevance Evaluation.
package relevance

import (
	"fmt"
	"sort"

	"github.com/pdiddy/rank-eval/pkg/types"
)

// Strategy selects how multiple raters' scores collapse into one
// consensus value per record. Aggregation is a separate step feeding the
// evaluator so strategies can change without touching the NDCG math (R1.4).
type Strategy string

const (
	StrategyMean    Strategy = "mean"
	StrategyMedian  Strategy = "median"
	StrategyTrimmed Strategy = "trimmed"
)

// trimmedFraction is the share of scores dropped from each end by the
// trimmed-mean strategy.
const trimmedFraction = 0.25

// Aggregate collapses one record's rater scores under the given strategy.
// An unknown strategy is a caller bug and fails fast (R1.5); an empty
// score slice yields 0.
func Aggregate(scores []float64, strategy Strategy) (float64, error) {
	switch strategy {
	case StrategyMean, "":
		return mean(scores), nil
	case StrategyMedian:
		return median(scores), nil
	case StrategyTrimmed:
		return trimmedMean(scores), nil
	default:
		return 0, fmt.Errorf("unknown consensus strategy %q: want mean, median, or trimmed", strategy)
	}
}

// Consensus aggregates a flat judgment sequence into one relevance value
// per record ID (R1.1-R1.3). Judgments for different queries must not be
// mixed; callers filter by query first.
func Consensus(judgments []types.Judgment, strategy Strategy) (map[string]float64, error) {
	byRecord := make(map[string][]float64)
	for _, j := range judgments {
		if j.RecordID == "" {
			continue
		}
		byRecord[j.RecordID] = append(byRecord[j.RecordID], j.Score)
	}

	out := make(map[string]float64, len(byRecord))
	for id, scores := range byRecord {
		v, err := Aggregate(scores, strategy)
		if err != nil {
			return nil, err
		}
		out[id] = v
	}
	return out, nil
}

func mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

func median(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// trimmedMean drops the lowest and highest quarter of scores before
// averaging. With fewer than three scores nothing is trimmed.
func trimmedMean(scores []float64) float64 {
	if len(scores) < 3 {
		return mean(scores)
	}
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	trim := int(float64(len(sorted)) * trimmedFraction)
	return mean(sorted[trim : len(sorted)-trim])
}
