// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether two records from different sources denote
// the same publication.
// Implements: prd010-comparison (R1.1-R1.6);
//
//	docs/ARCHITECTURE § Record Matching.
package match

import (
	"strings"
	"unicode"

	"github.com/pdiddy/rank-eval/pkg/types"
)

// FuzzyThreshold is the minimum token-Jaccard similarity between two
// normalized titles for a fuzzy match (R1.4).
const FuzzyThreshold = 0.8

// MatchExact reports whether a and b denote the same publication under the
// strict rules used by the comparison metrics: equal DOI (case-insensitive),
// equal bibcode/ID, or equal normalized title (R1.1-R1.3). Fuzzy title
// similarity is deliberately excluded here so Jaccard and RBO stay strict;
// use Match for the looser UI-facing rule.
func MatchExact(a, b types.Record) bool {
	if a.DOI != "" && b.DOI != "" && strings.EqualFold(a.DOI, b.DOI) {
		return true
	}
	if a.ID != "" && b.ID != "" && a.ID == b.ID {
		return true
	}
	na, nb := NormalizeTitle(a.Title), NormalizeTitle(b.Title)
	return na != "" && na == nb
}

// Match reports whether a and b denote the same publication. It applies
// the exact rules first, then falls back to fuzzy title matching at
// FuzzyThreshold (R1.4). Missing years are never grounds for non-match:
// only identifiers and titles participate.
func Match(a, b types.Record) bool {
	if MatchExact(a, b) {
		return true
	}
	return TokenJaccard(a.Title, b.Title) >= FuzzyThreshold
}

// NormalizeTitle lowercases the title, strips everything but letters,
// digits, and spaces, and collapses runs of whitespace (R1.3).
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// titleStopwords are function words excluded from the token sets. Without
// this, short titles differing only in connectives fall under the
// threshold (R1.4).
var titleStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "by": {}, "for": {}, "from": {},
	"in": {}, "of": {}, "on": {}, "the": {}, "to": {}, "via": {},
	"with": {},
}

// TokenJaccard returns the Jaccard similarity between the word sets of two
// titles after normalization and stopword removal: |intersection| / |union|,
// 0 when either set is empty (R1.4).
func TokenJaccard(titleA, titleB string) float64 {
	setA := tokenSet(titleA)
	setB := tokenSet(titleB)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	common := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			common++
		}
	}
	union := len(setA) + len(setB) - common
	return float64(common) / float64(union)
}

func tokenSet(title string) map[string]struct{} {
	fields := strings.Fields(NormalizeTitle(title))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, stop := titleStopwords[f]; stop {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}

// FindCorrespondence maps each record of updated back to its position in
// original. The returned slice has one entry per updated record: the
// 0-based original index, or -1 when no counterpart exists (R1.5).
//
// Resolution is first-matched, first-served in updated order: an original
// record consumed by one updated record is unavailable to later ones.
// Exact lookups (DOI, ID, normalized title) are tried before the fuzzy
// rule; among fuzzy candidates the highest-scoring unconsumed original
// wins, ties broken by the earliest original rank (R1.6).
func FindCorrespondence(original, updated []types.Record) []int {
	byDOI := make(map[string]int, len(original))
	byID := make(map[string]int, len(original))
	byTitle := make(map[string]int, len(original))
	for i, r := range original {
		if r.DOI != "" {
			key := strings.ToLower(r.DOI)
			if _, ok := byDOI[key]; !ok {
				byDOI[key] = i
			}
		}
		if r.ID != "" {
			if _, ok := byID[r.ID]; !ok {
				byID[r.ID] = i
			}
		}
		if t := NormalizeTitle(r.Title); t != "" {
			if _, ok := byTitle[t]; !ok {
				byTitle[t] = i
			}
		}
	}

	consumed := make([]bool, len(original))
	mapping := make([]int, len(updated))

	for i, rec := range updated {
		mapping[i] = -1

		idx := exactLookup(rec, byDOI, byID, byTitle)
		if idx >= 0 && !consumed[idx] {
			mapping[i] = idx
			consumed[idx] = true
			continue
		}

		// Fuzzy fallback over the unconsumed originals.
		best, bestScore := -1, 0.0
		for j, orig := range original {
			if consumed[j] {
				continue
			}
			score := TokenJaccard(rec.Title, orig.Title)
			if score >= FuzzyThreshold && score > bestScore {
				best, bestScore = j, score
			}
		}
		if best >= 0 {
			mapping[i] = best
			consumed[best] = true
		}
	}
	return mapping
}

func exactLookup(rec types.Record, byDOI, byID, byTitle map[string]int) int {
	if rec.DOI != "" {
		if idx, ok := byDOI[strings.ToLower(rec.DOI)]; ok {
			return idx
		}
	}
	if rec.ID != "" {
		if idx, ok := byID[rec.ID]; ok {
			return idx
		}
	}
	if t := NormalizeTitle(rec.Title); t != "" {
		if idx, ok := byTitle[t]; ok {
			return idx
		}
	}
	return -1
}
