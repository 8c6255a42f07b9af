// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources fetches ranked result lists from bibliographic search
// providers, one adapter per provider.
// Implements: prd013-sources (R1-R5);
//
//	docs/ARCHITECTURE § Source Adapters.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pdiddy/rank-eval/pkg/types"
)

// Source fetches one provider's ranked results for a query. Each provider
// (ADS, Crossref) implements this interface per the Strategy pattern
// (R1.1). Adapters assign 1-based ranks in arrival order and drop records
// carrying neither a title nor an identifier (R1.4): such records cannot
// participate in matching and would poison the metrics downstream.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SourceConfig) ([]types.Record, error)
}

// FetchOutput holds the per-source lists and any per-source failures.
type FetchOutput struct {
	// Lists maps source name to its ranked result list.
	Lists map[string][]types.Record

	// SourceErrors records sources that failed; a failure never aborts
	// the whole fetch (R1.5).
	SourceErrors []string
}

// FetchAll queries every source concurrently and collects the per-source
// lists. Lists are kept separate rather than merged: the comparison stage
// needs each provider's ordering intact (R1.2). Failures are reported as
// warnings on w and collected into the output.
func FetchAll(ctx context.Context, query string, srcs []Source, cfg types.SourceConfig, w io.Writer) (FetchOutput, error) {
	if query == "" {
		return FetchOutput{}, fmt.Errorf("query is empty")
	}
	if len(srcs) == 0 {
		return FetchOutput{}, fmt.Errorf("no sources configured")
	}

	type sourceResult struct {
		name    string
		records []types.Record
		err     error
	}

	ch := make(chan sourceResult, len(srcs))
	var wg sync.WaitGroup

	for i, src := range srcs {
		if i > 0 && cfg.InterSourceDelay > 0 {
			time.Sleep(cfg.InterSourceDelay)
		}
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			records, err := src.Search(ctx, query, cfg)
			ch <- sourceResult{name: src.Name(), records: records, err: err}
		}(src)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	out := FetchOutput{Lists: make(map[string][]types.Record, len(srcs))}
	for sr := range ch {
		if sr.err != nil {
			msg := fmt.Sprintf("%s: %v", sr.name, sr.err)
			out.SourceErrors = append(out.SourceErrors, msg)
			fmt.Fprintf(w, "warning: source %s failed: %v\n", sr.name, sr.err)
			continue
		}
		out.Lists[sr.name] = sr.records
	}
	return out, nil
}

// Enabled assembles the configured sources.
func Enabled(cfg types.SourceConfig) []Source {
	client := newClient(cfg)
	var srcs []Source
	if cfg.EnableADS {
		srcs = append(srcs, &ADSSource{Client: client, Token: cfg.ADSToken})
	}
	if cfg.EnableCrossref {
		srcs = append(srcs, &CrossrefSource{Client: client, Mailto: cfg.CrossrefMailto})
	}
	return srcs
}

func newClient(cfg types.SourceConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
