// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rank-eval/internal/rankdiff"
	"github.com/pdiddy/rank-eval/internal/sources"
)

var diffCmd = &cobra.Command{
	Use:   "diff [original-file] [updated-file]",
	Short: "Show how one source's ranking moved between two fetches",
	Long: `Diff pairs a source's records across two result files, typically a plain
fetch and a re-fetch with a transformed query, and reports each record's
rank movement. Records appearing only in the updated file show as new.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	original, err := sources.ReadResultFile(args[0])
	if err != nil {
		return err
	}
	updated, err := sources.ReadResultFile(args[1])
	if err != nil {
		return err
	}

	sourceName, _ := cmd.Flags().GetString("source")
	originalList, ok := original.Lists[sourceName]
	if !ok {
		return fmt.Errorf("source %q not in %s (have: %s)", sourceName, args[0], strings.Join(sourceNames(original), ", "))
	}
	updatedList, ok := updated.Lists[sourceName]
	if !ok {
		return fmt.Errorf("source %q not in %s (have: %s)", sourceName, args[1], strings.Join(sourceNames(updated), ", "))
	}

	annotated := rankdiff.Annotate(originalList, updatedList)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(annotated)
	}

	fmt.Printf("%s: %q -> %q\n\n", sourceName, original.Query, updated.Query)
	fmt.Printf("%-4s  %-6s  %-6s  %s\n", "Rank", "Was", "Moved", "Title")
	for i, sr := range annotated {
		title := sr.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		if sr.OriginalRank == 0 {
			fmt.Printf("%-4d  %-6s  %-6s  %s\n", i+1, "-", "new", title)
			continue
		}
		fmt.Printf("%-4d  %-6d  %-6s  %s\n", i+1, sr.OriginalRank, moveMarker(sr.RankChange), title)
	}
	return nil
}

func init() {
	diffCmd.Flags().String("source", "ads", "which source's lists to diff")
	diffCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(diffCmd)
}
