package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rank-eval/internal/sources"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fetch per-source result lists for a query",
	Long: `Search queries the enabled bibliographic sources (ADS, Crossref) and saves
each provider's ranked list, separately, to a YAML result file. The compare,
boost, and eval commands analyze result files so one fetch can be examined
repeatedly without re-querying the providers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	out, _ := cmd.Flags().GetString("out")

	cfg := sourceConfig()
	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		cfg.MaxResults = maxResults
	}

	srcs := sources.Enabled(cfg)
	fetched, err := sources.FetchAll(cmd.Context(), query, srcs, cfg, os.Stderr)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(fetched.Lists))
	for name := range fetched.Lists {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-10s  %d records\n", name, len(fetched.Lists[name]))
	}

	if len(fetched.Lists) == 0 {
		return fmt.Errorf("every source failed: %s", strings.Join(fetched.SourceErrors, "; "))
	}

	if err := sources.WriteResultFile(out, query, cfg, fetched); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", out)
	return nil
}

func init() {
	searchCmd.Flags().String("out", "results.yaml", "output result file")
	searchCmd.Flags().Int("max-results", 0, "maximum records per source (overrides config)")

	rootCmd.AddCommand(searchCmd)
}
