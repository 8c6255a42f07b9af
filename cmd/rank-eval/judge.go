// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rank-eval/internal/judgments"
	"github.com/pdiddy/rank-eval/internal/relevance"
	"github.com/pdiddy/rank-eval/pkg/types"
)

var judgeCmd = &cobra.Command{
	Use:   "judge",
	Short: "Record and inspect graded relevance judgments",
	Long: `Judge manages the relevance judgment store. Scores are graded on
[0, 1]; use --snap to round a score to the nearest standard label
(0, 0.33, 0.67, 1). A rater re-judging the same record for the same query
replaces their earlier judgment.`,
}

var judgeAddCmd = &cobra.Command{
	Use:   "add [record-id] [score]",
	Short: "Record one judgment for a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runJudgeAdd,
}

var judgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored judgments",
	Args:  cobra.NoArgs,
	RunE:  runJudgeList,
}

var judgeExportCmd = &cobra.Command{
	Use:   "export [out-file]",
	Short: "Export all judgments to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runJudgeExport,
}

func openJudgmentStore() (*judgments.Store, error) {
	return judgments.Open(viper.GetString("eval.judgments_db"))
}

func runJudgeAdd(cmd *cobra.Command, args []string) error {
	score, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parsing score %q: %w", args[1], err)
	}
	if snap, _ := cmd.Flags().GetBool("snap"); snap {
		score = relevance.SnapLabel(score)
	}

	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		return fmt.Errorf("a judgment needs --query")
	}
	rater, _ := cmd.Flags().GetString("rater")
	note, _ := cmd.Flags().GetString("note")

	store, err := openJudgmentStore()
	if err != nil {
		return err
	}
	defer store.Close()

	j := types.Judgment{
		RecordID: args[0],
		Query:    query,
		RaterID:  rater,
		Score:    score,
		Note:     note,
	}
	if err := store.Save(cmd.Context(), j); err != nil {
		return err
	}

	fmt.Printf("Recorded %.2f for %s (query %q, rater %s)\n", score, j.RecordID, query, rater)
	return nil
}

func runJudgeList(cmd *cobra.Command, args []string) error {
	store, err := openJudgmentStore()
	if err != nil {
		return err
	}
	defer store.Close()

	query, _ := cmd.Flags().GetString("query")

	var list []types.Judgment
	if query != "" {
		list, err = store.ForQuery(cmd.Context(), query)
	} else {
		list, err = store.All(cmd.Context())
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No judgments stored.")
		return nil
	}

	fmt.Printf("%-24s  %-30s  %-10s  %-5s  %s\n", "Record", "Query", "Rater", "Score", "Note")
	for _, j := range list {
		q := j.Query
		if len(q) > 30 {
			q = q[:27] + "..."
		}
		fmt.Printf("%-24s  %-30s  %-10s  %-5.2f  %s\n", j.RecordID, q, j.RaterID, j.Score, j.Note)
	}
	return nil
}

func runJudgeExport(cmd *cobra.Command, args []string) error {
	store, err := openJudgmentStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ExportYAML(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported judgments to %s\n", args[0])
	return nil
}

func init() {
	judgeAddCmd.Flags().String("query", "", "query the judgment grades relevance against")
	judgeAddCmd.Flags().String("rater", "default", "rater identity")
	judgeAddCmd.Flags().String("note", "", "free-form note")
	judgeAddCmd.Flags().Bool("snap", false, "round the score to the nearest standard label")

	judgeListCmd.Flags().String("query", "", "limit the listing to one query")

	judgeCmd.AddCommand(judgeAddCmd, judgeListCmd, judgeExportCmd)
	rootCmd.AddCommand(judgeCmd)
}
