// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the rank-eval pipeline.
// Implements: prd010-comparison (Record, ComparisonResult);
//
//	prd011-boost (BoostConfig, ScoredRecord);
//	prd012-relevance (Judgment).
//
// See docs/ARCHITECTURE.md § Data Structures.
package types

import (
	"strings"
	"time"
)

// Record represents one search result from a bibliographic source.
// Per prd010-comparison R1.1, a record carries the identifiers used for
// cross-source matching (bibcode, DOI, normalized title) plus the metadata
// the boost stage scores on.
type Record struct {
	// ID is the stable identifier from the source (bibcode for ADS,
	// DOI for Crossref).
	ID string `json:"id" yaml:"id"`

	// Title is the record title as returned by the source. Required for
	// matching; records without both ID and Title are dropped on ingest.
	Title string `json:"title" yaml:"title"`

	// DOI is the Digital Object Identifier, when the source provides one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Authors lists the authors in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the publication year, 0 when unknown. The boost stage
	// repairs unknown years via the derivation chain in internal/match.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// CitationCount is the number of citations reported by the source.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// DocType is the source's document type label (e.g. "article",
	// "inproceedings"). Empty when the source does not report one.
	DocType string `json:"doc_type,omitempty" yaml:"doc_type,omitempty"`

	// Properties holds source property flags (e.g. "refereed", "openaccess").
	Properties []string `json:"properties,omitempty" yaml:"properties,omitempty"`

	// URL is the landing page for the record, when known. Used as a
	// fallback for year derivation.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Rank is the 1-based position in the source result list, assigned by
	// the producing source adapter and immutable afterwards.
	Rank int `json:"rank" yaml:"rank"`

	// SourceID identifies which source produced this record (e.g. "ads",
	// "crossref").
	SourceID string `json:"source_id" yaml:"source_id"`
}

// HasProperty reports whether the record carries the given property flag.
// Comparison is case-insensitive per prd011-boost R3.4.
func (r Record) HasProperty(name string) bool {
	for _, p := range r.Properties {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// ComparisonResult summarizes the overlap between two source result lists.
// Per prd010-comparison R2.4, only exact matches (DOI, bibcode, normalized
// title) count; fuzzy title matches are excluded so the metrics stay strict.
type ComparisonResult struct {
	// OverlapCount is the number of distinct record pairs the two lists share.
	OverlapCount int `json:"overlap_count" yaml:"overlap_count"`

	// MatchingDOIIDs lists the IDs of records matched via DOI.
	MatchingDOIIDs []string `json:"matching_doi_ids,omitempty" yaml:"matching_doi_ids,omitempty"`

	// MatchingTitleIDs lists the IDs of records matched via normalized title.
	MatchingTitleIDs []string `json:"matching_title_ids,omitempty" yaml:"matching_title_ids,omitempty"`

	// SameRankCount is the number of matched pairs holding the identical
	// rank in both lists.
	SameRankCount int `json:"same_rank_count" yaml:"same_rank_count"`
}

// ScoredRecord is a Record annotated with boost scoring output.
// Derived per pass; recomputed on every re-run (prd011-boost R4.1).
type ScoredRecord struct {
	Record `yaml:",inline"`

	// BoostFactors maps factor name ("cite", "recency", "doctype",
	// "refereed") to its weighted contribution.
	BoostFactors map[string]float64 `json:"boost_factors,omitempty" yaml:"boost_factors,omitempty"`

	// FinalBoost is the combined boost value used for re-ranking.
	FinalBoost float64 `json:"final_boost" yaml:"final_boost"`

	// OriginalRank is the record's 1-based rank before this pass, or 0
	// when the record has no counterpart in the original list.
	OriginalRank int `json:"original_rank,omitempty" yaml:"original_rank,omitempty"`

	// RankChange is originalRank minus newRank: positive means the record
	// moved up. 0 for unmatched records.
	RankChange int `json:"rank_change" yaml:"rank_change"`
}

// Judgment is one rater's graded relevance assessment of a record for a
// query. Judgments are persisted by internal/judgments and consumed by
// internal/relevance (prd012-relevance R1.1-R1.3).
type Judgment struct {
	// RecordID identifies the judged record (bibcode or DOI).
	RecordID string `json:"record_id" yaml:"record_id"`

	// Query is the search query the judgment applies to.
	Query string `json:"query" yaml:"query"`

	// RaterID identifies the human or model that produced the score.
	RaterID string `json:"rater_id" yaml:"rater_id"`

	// Score is the graded relevance. Individual labels are snapped to
	// {0, 0.33, 0.67, 1}; consensus scores are continuous in [0, 1].
	Score float64 `json:"score" yaml:"score"`

	// Note is an optional free-text rationale.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`

	// CreatedAt is when the judgment was recorded.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
