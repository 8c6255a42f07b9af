// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pdiddy/rank-eval/pkg/types"
)

// fallbackYearOffset is subtracted from the current year when no year can
// be derived from any record field. Carried over from observed upstream
// behavior; see DESIGN.md.
const fallbackYearOffset = 3

var (
	// Bibcodes open with the publication year (e.g. "2019ApJ...870L..12P").
	leadingYearRe = regexp.MustCompile(`^(\d{4})`)

	// URLs often embed the year as a path segment or query value.
	urlYearRe = regexp.MustCompile(`[/=.](\d{4})(?:[/?&._]|$)`)

	// Titles occasionally carry a parenthesized year, e.g. "(2021)".
	titleYearRe = regexp.MustCompile(`\((\d{4})\)`)
)

// DeriveYear returns the record's publication year, repairing a missing one
// via the extraction chain: leading four digits of the identifier, then the
// first plausible four-digit group in the URL, then a parenthesized
// four-digit group in the title, then now's year minus three (R4.2).
//
// Derivation is a scoring pre-processing step only. Matching never consults
// the year, so it is safe to apply this after correspondence resolution.
func DeriveYear(r types.Record, now time.Time) int {
	if r.Year > 0 {
		return r.Year
	}
	if y := plausibleYear(leadingYearRe.FindStringSubmatch(r.ID), now); y > 0 {
		return y
	}
	// A URL may carry several four-digit groups (DOI prefixes, page
	// numbers); take the first plausible one.
	for _, m := range urlYearRe.FindAllStringSubmatch(r.URL, -1) {
		if y := plausibleYear(m, now); y > 0 {
			return y
		}
	}
	if y := plausibleYear(titleYearRe.FindStringSubmatch(r.Title), now); y > 0 {
		return y
	}
	return now.Year() - fallbackYearOffset
}

// plausibleYear converts a regex capture to a year, rejecting values
// outside 1500..now+1 (four digits alone match page numbers and DOIs too).
func plausibleYear(m []string, now time.Time) int {
	if len(m) < 2 {
		return 0
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	if y < 1500 || y > now.Year()+1 {
		return 0
	}
	return y
}

// Repair returns a copy of records with missing years filled in via
// DeriveYear. Input is never mutated (R4.3). Citation counts need no
// repair: the zero value is the documented default.
func Repair(records []types.Record, now time.Time) []types.Record {
	out := make([]types.Record, len(records))
	copy(out, records)
	for i := range out {
		out[i].Year = DeriveYear(out[i], now)
	}
	return out
}
