// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/rank-eval/internal/httputil"
	"github.com/pdiddy/rank-eval/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossrefSource queries the Crossref REST API (R2.2).
type CrossrefSource struct {
	Client *http.Client
	// Mailto is sent as the mailto parameter for polite pool access.
	Mailto string
}

// Name returns the source identifier.
func (s *CrossrefSource) Name() string { return "crossref" }

// Search queries the Crossref API and returns ranked records (R2.2).
func (s *CrossrefSource) Search(ctx context.Context, query string, cfg types.SourceConfig) ([]types.Record, error) {
	rows := cfg.MaxResults
	if rows <= 0 {
		rows = 20
	}

	params := url.Values{
		"query": {query},
		"rows":  {strconv.Itoa(rows)},
	}
	if s.Mailto != "" {
		params.Set("mailto", s.Mailto)
	}
	reqURL := crossrefAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing Crossref response: %w", err)
	}

	var records []types.Record
	for _, item := range cr.Message.Items {
		title := ""
		if len(item.Title) > 0 {
			title = strings.TrimSpace(item.Title[0])
		}
		if item.DOI == "" && title == "" {
			continue
		}

		r := types.Record{
			ID:            item.DOI,
			DOI:           item.DOI,
			Title:         title,
			CitationCount: item.CitedByCount,
			DocType:       item.Type,
			URL:           item.URL,
			SourceID:      s.Name(),
			Rank:          len(records) + 1,
		}
		for _, a := range item.Author {
			name := strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
			if name != "" {
				r.Authors = append(r.Authors, name)
			}
		}
		if len(item.Issued.DateParts) > 0 && len(item.Issued.DateParts[0]) > 0 {
			r.Year = item.Issued.DateParts[0][0]
		}
		records = append(records, r)
	}
	return records, nil
}

// Crossref JSON response structures.
type crossrefResponse struct {
	Message struct {
		Items []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	DOI          string           `json:"DOI"`
	Title        []string         `json:"title"`
	Author       []crossrefAuthor `json:"author"`
	Type         string           `json:"type"`
	URL          string           `json:"URL"`
	CitedByCount int              `json:"is-referenced-by-count"`
	Issued       struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}
