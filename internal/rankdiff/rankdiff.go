// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rankdiff pairs a boosted result list with its original ordering
// and reports how far each record moved.
// Implements: prd011-boost (R5.1-R5.3);
//
//	docs/ARCHITECTURE § Rank Change Tracking.
package rankdiff

import (
	"github.com/pdiddy/rank-eval/internal/match"
	"github.com/pdiddy/rank-eval/pkg/types"
)

// Annotate maps each record of boosted back to its position in original
// via record correspondence and computes the signed rank delta: positive
// means the record moved up (R5.1). Records without a counterpart get
// OriginalRank 0 and RankChange 0 (R5.2). Neither input list is mutated
// (R5.3).
//
// Correspondence uses the fuzzy-grade matcher: tracking is a UI-facing
// diff, so near-identical titles across passes should still pair up even
// when a source rewrites punctuation or appends a subtitle.
func Annotate(original, boosted []types.Record) []types.ScoredRecord {
	mapping := match.FindCorrespondence(original, boosted)

	out := make([]types.ScoredRecord, len(boosted))
	for i, r := range boosted {
		sr := types.ScoredRecord{Record: r}
		if idx := mapping[i]; idx >= 0 {
			sr.OriginalRank = idx + 1
			sr.RankChange = idx - i
		}
		out[i] = sr
	}
	return out
}
