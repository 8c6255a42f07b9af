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

// adsAPIBase is the ADS search endpoint. Declared as a var so tests can
// substitute an httptest server.
var adsAPIBase = "https://api.adsabs.harvard.edu/v1/search/query"

const adsFields = "bibcode,title,author,year,citation_count,doctype,property,doi"

// ADSSource queries the NASA ADS API (R2.1).
type ADSSource struct {
	Client *http.Client
	Token  string
}

// Name returns the source identifier.
func (s *ADSSource) Name() string { return "ads" }

// Search queries the ADS API and returns ranked records (R2.1).
func (s *ADSSource) Search(ctx context.Context, query string, cfg types.SourceConfig) ([]types.Record, error) {
	if s.Token == "" {
		return nil, fmt.Errorf("ADS token not configured: add .secrets/ads-api-token")
	}

	rows := cfg.MaxResults
	if rows <= 0 {
		rows = 20
	}

	params := url.Values{
		"q":    {query},
		"fl":   {adsFields},
		"rows": {strconv.Itoa(rows)},
	}
	reqURL := adsAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Authorization", "Bearer "+s.Token)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("ADS API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ADS API returned HTTP %d", resp.StatusCode)
	}

	var ar adsResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("parsing ADS response: %w", err)
	}

	var records []types.Record
	for _, doc := range ar.Response.Docs {
		title := ""
		if len(doc.Title) > 0 {
			title = strings.TrimSpace(doc.Title[0])
		}
		// Records with neither bibcode nor title cannot be matched; skip
		// and continue (R1.4).
		if doc.Bibcode == "" && title == "" {
			continue
		}

		r := types.Record{
			ID:            doc.Bibcode,
			Title:         title,
			Authors:       doc.Author,
			CitationCount: doc.CitationCount,
			DocType:       doc.Doctype,
			Properties:    doc.Property,
			SourceID:      s.Name(),
			Rank:          len(records) + 1,
		}
		if len(doc.DOI) > 0 {
			r.DOI = doc.DOI[0]
		}
		// ADS reports the year as a string field.
		if y, convErr := strconv.Atoi(doc.Year); convErr == nil {
			r.Year = y
		}
		records = append(records, r)
	}
	return records, nil
}

// ADS JSON response structures.
type adsResponse struct {
	Response struct {
		Docs []adsDoc `json:"docs"`
	} `json:"response"`
}

type adsDoc struct {
	Bibcode       string   `json:"bibcode"`
	Title         []string `json:"title"`
	Author        []string `json:"author"`
	Year          string   `json:"year"`
	CitationCount int      `json:"citation_count"`
	Doctype       string   `json:"doctype"`
	Property      []string `json:"property"`
	DOI           []string `json:"doi"`
}
