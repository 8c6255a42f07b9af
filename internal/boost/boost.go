// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package boost computes composite re-ranking scores for a single result
// list from configurable citation, recency, doctype, and refereed factors.
// Implements: prd011-boost (R1-R4);
//
//	docs/ARCHITECTURE § Boost Scoring.
package boost

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/rank-eval/internal/match"
	"github.com/pdiddy/rank-eval/pkg/types"
)

// Factor names used as keys in ScoredRecord.BoostFactors.
const (
	FactorCite     = "cite"
	FactorRecency  = "recency"
	FactorDoctype  = "doctype"
	FactorRefereed = "refereed"
)

const (
	defaultRecencyMultiplier = 1.0
	defaultRecencyMidpoint   = 36.0 // months
)

// Scorer applies one BoostConfig to record lists. The config is validated
// once at construction so scoring itself never fails (R1.2): a record
// missing the inputs for a factor simply earns 0 from it.
type Scorer struct {
	cfg types.BoostConfig
	now time.Time
}

// NewScorer validates cfg and returns a Scorer. An unknown combination
// method or recency function is a caller bug and fails fast (R1.3).
func NewScorer(cfg types.BoostConfig) (*Scorer, error) {
	return newScorerAt(cfg, time.Now())
}

// newScorerAt pins the clock; tests use it for a stable notion of "now".
func newScorerAt(cfg types.BoostConfig, now time.Time) (*Scorer, error) {
	if cfg.CombinationMethod == "" {
		cfg.CombinationMethod = types.CombineSum
	}
	switch cfg.CombinationMethod {
	case types.CombineSum, types.CombineProduct, types.CombineMax:
	default:
		return nil, fmt.Errorf("unknown combination method %q: want sum, product, or max", cfg.CombinationMethod)
	}

	if cfg.RecencyFunction == "" {
		cfg.RecencyFunction = types.RecencyExponential
	}
	switch cfg.RecencyFunction {
	case types.RecencyExponential, types.RecencyLinear:
	default:
		return nil, fmt.Errorf("unknown recency function %q: want exponential or linear", cfg.RecencyFunction)
	}

	if cfg.RecencyMultiplier <= 0 {
		cfg.RecencyMultiplier = defaultRecencyMultiplier
	}
	if cfg.RecencyMidpointMonths <= 0 {
		cfg.RecencyMidpointMonths = defaultRecencyMidpoint
	}

	return &Scorer{cfg: cfg, now: now}, nil
}

// Factors returns the per-factor weighted contributions for one record.
// Disabled factors (weight 0) are omitted from the map.
func (s *Scorer) Factors(r types.Record) map[string]float64 {
	factors := make(map[string]float64, 4)
	if s.cfg.CiteBoostWeight != 0 {
		factors[FactorCite] = s.citeFactor(r)
	}
	if s.cfg.RecencyBoostWeight != 0 {
		factors[FactorRecency] = s.recencyFactor(r)
	}
	if s.cfg.DoctypeBoostWeight != 0 {
		factors[FactorDoctype] = s.doctypeFactor(r)
	}
	if s.cfg.RefereedBoostWeight != 0 {
		factors[FactorRefereed] = s.refereedFactor(r)
	}
	return factors
}

// citeFactor is log(1 + citations) scaled by the citation weight (R3.1).
func (s *Scorer) citeFactor(r types.Record) float64 {
	if r.CitationCount <= 0 {
		return 0
	}
	return math.Log(1+float64(r.CitationCount)) * s.cfg.CiteBoostWeight
}

// recencyFactor decays with the record's age in months (R3.2). The
// exponential form halves at the configured midpoint when the multiplier
// is 1; the linear form reaches 0.5 at the midpoint and 0 at twice the
// midpoint. Records whose year cannot be derived earn 0, never an error.
func (s *Scorer) recencyFactor(r types.Record) float64 {
	year := match.DeriveYear(r, s.now)
	if year <= 0 {
		return 0
	}
	ageMonths := float64(s.now.Year()-year)*12 + float64(s.now.Month()-1)
	if ageMonths < 0 {
		ageMonths = 0
	}

	var decay float64
	switch s.cfg.RecencyFunction {
	case types.RecencyLinear:
		decay = 1 - ageMonths/(2*s.cfg.RecencyMidpointMonths)
		if decay < 0 {
			decay = 0
		}
	default: // exponential
		decay = math.Exp(-s.cfg.RecencyMultiplier * math.Ln2 * ageMonths / s.cfg.RecencyMidpointMonths)
	}
	return decay * s.cfg.RecencyBoostWeight
}

// doctypeFactor grants the doctype weight when the record's type is in the
// allow-list (R3.3). An empty doctype never qualifies.
func (s *Scorer) doctypeFactor(r types.Record) float64 {
	if r.DocType == "" {
		return 0
	}
	for _, allowed := range s.cfg.DoctypeAllowList {
		if strings.EqualFold(r.DocType, allowed) {
			return s.cfg.DoctypeBoostWeight
		}
	}
	return 0
}

// refereedFactor grants the refereed weight when the record carries the
// "refereed" property (R3.4).
func (s *Scorer) refereedFactor(r types.Record) float64 {
	if r.HasProperty("refereed") {
		return s.cfg.RefereedBoostWeight
	}
	return 0
}

// combine folds the enabled factor values into one boost (R2.1-R2.3):
// sum adds them, product multiplies (1 + f) and subtracts 1, max takes the
// largest. No enabled factors yields 0 under every method.
func (s *Scorer) combine(factors map[string]float64) float64 {
	if len(factors) == 0 {
		return 0
	}
	switch s.cfg.CombinationMethod {
	case types.CombineProduct:
		product := 1.0
		for _, f := range factors {
			product *= 1 + f
		}
		return product - 1
	case types.CombineMax:
		best := math.Inf(-1)
		for _, f := range factors {
			if f > best {
				best = f
			}
		}
		return best
	default: // sum
		total := 0.0
		for _, f := range factors {
			total += f
		}
		return total
	}
}

// Rerank scores every record and returns them sorted descending by final
// boost, ties broken by ascending original rank (R4.1, R4.2). With all
// weights at 0 the output order equals the input order exactly (R4.4).
// The input slice is never mutated.
func (s *Scorer) Rerank(records []types.Record) []types.ScoredRecord {
	scored := make([]types.ScoredRecord, len(records))
	for i, r := range records {
		factors := s.Factors(r)
		scored[i] = types.ScoredRecord{
			Record:       r,
			BoostFactors: factors,
			FinalBoost:   s.combine(factors),
			OriginalRank: i + 1,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].FinalBoost != scored[j].FinalBoost {
			return scored[i].FinalBoost > scored[j].FinalBoost
		}
		return scored[i].OriginalRank < scored[j].OriginalRank
	})

	for i := range scored {
		scored[i].RankChange = scored[i].OriginalRank - (i + 1)
	}
	return scored
}
