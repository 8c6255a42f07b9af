// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rank-eval/internal/boost"
	"github.com/pdiddy/rank-eval/internal/match"
	"github.com/pdiddy/rank-eval/internal/sources"
	"github.com/pdiddy/rank-eval/pkg/types"
)

var boostCmd = &cobra.Command{
	Use:   "boost [result-file]",
	Short: "Re-rank one source's list with configurable boost factors",
	Long: `Boost re-ranks a single source's result list using weighted citation,
recency, doctype, and refereed factors. Factors combine by sum, product, or
max; the output shows each record's factor contributions and how far it
moved from its original rank.

All weights at zero leaves the original order untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runBoost,
}

func runBoost(cmd *cobra.Command, args []string) error {
	rf, err := sources.ReadResultFile(args[0])
	if err != nil {
		return err
	}

	sourceName, _ := cmd.Flags().GetString("source")
	list, ok := rf.Lists[sourceName]
	if !ok {
		return fmt.Errorf("source %q not in result file (have: %s)", sourceName, strings.Join(sourceNames(rf), ", "))
	}

	cfg := boostConfigFromFlags(cmd)
	scorer, err := boost.NewScorer(cfg)
	if err != nil {
		return err
	}

	// Year repair is scoring pre-processing; matching never sees it.
	scored := scorer.Rerank(match.Repair(list, time.Now()))

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scored)
	}

	formatScoredTable(scored, os.Stdout)
	return nil
}

func boostConfigFromFlags(cmd *cobra.Command) types.BoostConfig {
	cite, _ := cmd.Flags().GetFloat64("cite-weight")
	recency, _ := cmd.Flags().GetFloat64("recency-weight")
	recencyFn, _ := cmd.Flags().GetString("recency-function")
	multiplier, _ := cmd.Flags().GetFloat64("recency-multiplier")
	midpoint, _ := cmd.Flags().GetFloat64("recency-midpoint")
	doctype, _ := cmd.Flags().GetFloat64("doctype-weight")
	doctypes, _ := cmd.Flags().GetStringSlice("doctypes")
	refereed, _ := cmd.Flags().GetFloat64("refereed-weight")
	method, _ := cmd.Flags().GetString("method")

	return types.BoostConfig{
		CiteBoostWeight:       cite,
		RecencyBoostWeight:    recency,
		RecencyFunction:       types.RecencyFunction(recencyFn),
		RecencyMultiplier:     multiplier,
		RecencyMidpointMonths: midpoint,
		DoctypeBoostWeight:    doctype,
		DoctypeAllowList:      doctypes,
		RefereedBoostWeight:   refereed,
		CombinationMethod:     types.CombinationMethod(method),
	}
}

func formatScoredTable(scored []types.ScoredRecord, w *os.File) {
	if len(scored) == 0 {
		fmt.Fprintln(w, "No records.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-6s  %-50s  %-4s  %-8s  %s\n",
		"Rank", "Moved", "Title", "Year", "Boost", "Factors")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, sr := range scored {
		title := sr.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-6s  %-50s  %-4d  %-8.3f  %s\n",
			i+1, moveMarker(sr.RankChange), title, sr.Year, sr.FinalBoost, formatFactors(sr.BoostFactors))
	}
}

// moveMarker renders a rank delta: "+2" moved up two, "-1" moved down one.
func moveMarker(delta int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("+%d", delta)
	case delta < 0:
		return fmt.Sprintf("%d", delta)
	default:
		return "="
	}
}

func formatFactors(factors map[string]float64) string {
	var parts []string
	for _, name := range []string{boost.FactorCite, boost.FactorRecency, boost.FactorDoctype, boost.FactorRefereed} {
		if v, ok := factors[name]; ok {
			parts = append(parts, fmt.Sprintf("%s=%.2f", name, v))
		}
	}
	return strings.Join(parts, " ")
}

func sourceNames(rf sources.ResultFile) []string {
	names := make([]string, 0, len(rf.Lists))
	for name := range rf.Lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	boostCmd.Flags().String("source", "ads", "which source's list to re-rank")
	boostCmd.Flags().Float64("cite-weight", 0, "citation factor weight")
	boostCmd.Flags().Float64("recency-weight", 0, "recency factor weight")
	boostCmd.Flags().String("recency-function", "exponential", "recency decay: exponential or linear")
	boostCmd.Flags().Float64("recency-multiplier", 1.0, "recency decay multiplier")
	boostCmd.Flags().Float64("recency-midpoint", 36, "recency half-strength age in months")
	boostCmd.Flags().Float64("doctype-weight", 0, "doctype factor weight")
	boostCmd.Flags().StringSlice("doctypes", []string{"article", "eprint"}, "doctypes earning the doctype boost")
	boostCmd.Flags().Float64("refereed-weight", 0, "refereed factor weight")
	boostCmd.Flags().String("method", "sum", "factor combination: sum, product, or max")
	boostCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(boostCmd)
}
