// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rank-eval/internal/relevance"
	"github.com/pdiddy/rank-eval/internal/sources"
)

var evalCmd = &cobra.Command{
	Use:   "eval [result-file]",
	Short: "Score each source's ranking against stored judgments",
	Long: `Eval computes NDCG@k for every source list in a result file against
the consensus relevance of the judgments stored for the file's query.
Records without a judgment count as relevance zero. A query with no
judgments at all is an error rather than a silent zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

// sourceScore is one row of eval output.
type sourceScore struct {
	Source  string  `json:"source"`
	Records int     `json:"records"`
	Judged  int     `json:"judged"`
	NDCG    float64 `json:"ndcg"`
	K       int     `json:"k"`
}

func runEval(cmd *cobra.Command, args []string) error {
	rf, err := sources.ReadResultFile(args[0])
	if err != nil {
		return err
	}

	k, _ := cmd.Flags().GetInt("k")
	if k < 1 {
		k = viper.GetInt("eval.k")
	}
	strategy := relevance.Strategy(viper.GetString("eval.consensus_strategy"))
	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		strategy = relevance.Strategy(s)
	}

	store, err := openJudgmentStore()
	if err != nil {
		return err
	}
	defer store.Close()

	judged, err := store.ForQuery(cmd.Context(), rf.Query)
	if err != nil {
		return err
	}
	if len(judged) == 0 {
		return fmt.Errorf("no judgments stored for query %q; run judge add first", rf.Query)
	}

	rel, err := relevance.Consensus(judged, strategy)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(rf.Lists))
	for name := range rf.Lists {
		names = append(names, name)
	}
	sort.Strings(names)

	scores := make([]sourceScore, 0, len(names))
	for _, name := range names {
		list := rf.Lists[name]
		judgedCount := 0
		for _, r := range list {
			if relevance.Judged(r, rel) {
				judgedCount++
			}
		}
		scores = append(scores, sourceScore{
			Source:  name,
			Records: len(list),
			Judged:  judgedCount,
			NDCG:    relevance.NDCGAtK(list, rel, k),
			K:       k,
		})
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scores)
	}

	fmt.Printf("Query: %s  (strategy %s, %d judgments)\n\n", rf.Query, strategy, len(judged))
	fmt.Printf("%-12s  %-8s  %-7s  %s\n", "Source", "Records", "Judged", fmt.Sprintf("NDCG@%d", k))
	for _, s := range scores {
		fmt.Printf("%-12s  %-8d  %-7d  %.4f\n", s.Source, s.Records, s.Judged, s.NDCG)
	}
	return nil
}

func init() {
	evalCmd.Flags().Int("k", 0, "NDCG truncation depth (default from config)")
	evalCmd.Flags().String("strategy", "", "consensus strategy: mean, median, or trimmed")
	evalCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(evalCmd)
}
