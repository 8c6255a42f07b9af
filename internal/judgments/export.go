// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package judgments

import (
	"context"
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rank-eval/pkg/types"
)

// ExportFile is the on-disk YAML layout for a judgment export: one block
// per query, raters' rows grouped under it (R4.5).
type ExportFile struct {
	Queries []QueryExport `yaml:"queries"`
}

// QueryExport groups a query's judgments.
type QueryExport struct {
	Query     string           `yaml:"query"`
	Judgments []types.Judgment `yaml:"judgments"`
}

// ExportYAML writes the whole store to path as YAML, grouped by query.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	all, err := s.All(ctx)
	if err != nil {
		return err
	}

	grouped := make(map[string][]types.Judgment)
	for _, j := range all {
		grouped[j.Query] = append(grouped[j.Query], j)
	}

	queries := make([]string, 0, len(grouped))
	for q := range grouped {
		queries = append(queries, q)
	}
	sort.Strings(queries)

	var file ExportFile
	for _, q := range queries {
		file.Queries = append(file.Queries, QueryExport{Query: q, Judgments: grouped[q]})
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
