// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query rewrites a free-text query into a field-boosted structured
// query string for re-submission to a search provider.
// Implements: prd014-query (R1.1-R1.5);
//
//	docs/ARCHITECTURE § Query Transformation.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/rank-eval/pkg/types"
)

// boostedClauseRe recognizes the first clause of a query this transformer
// already produced: field:"term"^weight or field:term^weight, optionally
// followed by further OR clauses. Capture 1 is the quoted term, capture 2
// the unquoted one.
var boostedClauseRe = regexp.MustCompile(`^\s*\w+:(?:"((?:[^"\\]|\\.)*)"|([^\s^]+))(?:\^[0-9.]+)?(?:\s+OR\s.*)?$`)

// Transform rewrites query into OR-joined field clauses, one per field
// with a positive weight: field:"term"^weight. The term is quoted when it
// contains whitespace, weights print with one decimal (R1.2). All weights
// zero returns the bare term unchanged (R1.3).
//
// A query that already carries boost syntax is first reduced to its bare
// term so repeated transformation never compounds clauses: Transform is
// idempotent for fixed weights (R1.4).
func Transform(query string, boosts types.FieldBoosts) string {
	term := strings.TrimSpace(query)
	if isBoosted(term) {
		if bare := extractBareTerm(term); bare != "" {
			term = bare
		}
	}
	if term == "" || boosts.IsZero() {
		return term
	}

	var clauses []string
	for _, fb := range []struct {
		field  string
		weight float64
	}{
		{"title", boosts.Title},
		{"abstract", boosts.Abstract},
		{"author", boosts.Author},
		{"year", boosts.Year},
	} {
		if fb.weight <= 0 {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s:%s^%.1f", fb.field, quoteTerm(term), fb.weight))
	}
	if len(clauses) == 0 {
		return term
	}
	return strings.Join(clauses, " OR ")
}

// isBoosted reports whether the query already carries boost syntax: a ^
// weight marker, or more than one field separator (R1.4).
func isBoosted(q string) bool {
	return strings.Contains(q, "^") || strings.Count(q, ":") > 1
}

// extractBareTerm recovers the original search term from a boosted query.
// It reads the first clause's term, preferring the quoted form; an empty
// return means extraction failed and the caller keeps the query as-is.
func extractBareTerm(q string) string {
	m := boostedClauseRe.FindStringSubmatch(q)
	if m == nil {
		// No field clause: a plain "term^2" style boost. Take the run
		// before the first marker.
		if idx := strings.IndexAny(q, ":^"); idx > 0 {
			return strings.TrimSpace(q[:idx])
		}
		return ""
	}
	if m[1] != "" {
		return unescapeQuotes(m[1])
	}
	return m[2]
}

// quoteTerm renders the term for clause embedding: quoted when it contains
// whitespace, with interior quotes escaped either way so the output is a
// syntactically safe query parameter (R1.5).
func quoteTerm(term string) string {
	escaped := strings.ReplaceAll(term, `"`, `\"`)
	if strings.ContainsAny(term, " \t") {
		return `"` + escaped + `"`
	}
	return escaped
}

func unescapeQuotes(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}
