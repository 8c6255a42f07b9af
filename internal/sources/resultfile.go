// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rank-eval/pkg/types"
)

// ResultFile is the on-disk representation of one fetch: the query, the
// per-source ranked lists, and fetch statistics. The comparison, boost,
// and evaluation commands all read result files so a single fetch can be
// analyzed repeatedly without re-querying the providers.
// Implements: prd013-sources R4.1, R4.2.
type ResultFile struct {
	Query   string                    `yaml:"query"`
	Config  ResultFileConfig          `yaml:"config"`
	Lists   map[string][]types.Record `yaml:"lists"`
	Summary ResultSummary             `yaml:"summary"`
}

// ResultFileConfig stores the fetch configuration that produced the lists.
type ResultFileConfig struct {
	MaxResults int `yaml:"max_results"`
}

// ResultSummary stores fetch statistics and a timestamp.
type ResultSummary struct {
	TotalRecords int       `yaml:"total_records"`
	SourceErrors []string  `yaml:"source_errors,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteResultFile saves a fetch to a YAML file.
func WriteResultFile(path, query string, cfg types.SourceConfig, out FetchOutput) error {
	total := 0
	for _, list := range out.Lists {
		total += len(list)
	}

	rf := ResultFile{
		Query:  query,
		Config: ResultFileConfig{MaxResults: cfg.MaxResults},
		Lists:  out.Lists,
		Summary: ResultSummary{
			TotalRecords: total,
			SourceErrors: out.SourceErrors,
			Timestamp:    time.Now(),
		},
	}

	data, err := yaml.Marshal(rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved fetch.
func ReadResultFile(path string) (ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResultFile{}, fmt.Errorf("reading result file: %w", err)
	}

	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return ResultFile{}, fmt.Errorf("parsing result file %s: %w", path, err)
	}
	if len(rf.Lists) == 0 {
		return ResultFile{}, fmt.Errorf("result file %s contains no source lists", path)
	}
	return rf, nil
}
