// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rank-eval/internal/similarity"
	"github.com/pdiddy/rank-eval/internal/sources"
)

var compareCmd = &cobra.Command{
	Use:   "compare [result-file]",
	Short: "Compare result lists across sources",
	Long: `Compare reads a result file and reports, for every source pair, how much
the lists agree: shared records (split by DOI and title matches), records at
identical ranks, Jaccard set similarity, and rank-biased overlap (RBO).

Jaccard and RBO use exact matching only, so near-duplicate titles never
inflate the scores.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	rf, err := sources.ReadResultFile(args[0])
	if err != nil {
		return err
	}
	if len(rf.Lists) < 2 {
		return fmt.Errorf("result file has %d source list(s); comparison needs at least 2", len(rf.Lists))
	}

	p, _ := cmd.Flags().GetFloat64("p")
	if p == 0 {
		p = viper.GetFloat64("compare.rbo_persistence")
	}

	pairs := similarity.ComparePairs(rf.Lists, p)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pairs)
	}

	fmt.Printf("Query: %s\n\n", rf.Query)
	fmt.Printf("%-22s  %-8s  %-4s  %-6s  %-9s  %-8s  %s\n",
		"Pair", "Overlap", "DOI", "Title", "SameRank", "Jaccard", "RBO")
	fmt.Println(strings.Repeat("-", 78))
	for _, pc := range pairs {
		fmt.Printf("%-22s  %-8d  %-4d  %-6d  %-9d  %-8.3f  %.3f\n",
			pc.SourceA+"/"+pc.SourceB,
			pc.Result.OverlapCount,
			len(pc.Result.MatchingDOIIDs),
			len(pc.Result.MatchingTitleIDs),
			pc.Result.SameRankCount,
			pc.Jaccard,
			pc.RBO)
	}
	return nil
}

func init() {
	compareCmd.Flags().Float64("p", 0, "RBO persistence parameter (default from config)")
	compareCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(compareCmd)
}
