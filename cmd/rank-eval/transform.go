package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rank-eval/internal/query"
	"github.com/pdiddy/rank-eval/pkg/types"
)

var transformCmd = &cobra.Command{
	Use:   "transform [query]",
	Short: "Rewrite a query with per-field boost weights",
	Long: `Transform rewrites a plain query into field-boosted clauses, e.g.
"dark matter" with title=2 and abstract=1.5 becomes

  title:"dark matter"^2.0 OR abstract:"dark matter"^1.5

Feeding a transformed query back in re-applies the current weights to the
bare term instead of stacking clauses. All weights at zero returns the
query unchanged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTransform,
}

func runTransform(cmd *cobra.Command, args []string) error {
	q := args[0]
	for _, extra := range args[1:] {
		q += " " + extra
	}

	title, _ := cmd.Flags().GetFloat64("title")
	abstract, _ := cmd.Flags().GetFloat64("abstract")
	author, _ := cmd.Flags().GetFloat64("author")
	year, _ := cmd.Flags().GetFloat64("year")

	boosts := types.FieldBoosts{
		Title:    title,
		Abstract: abstract,
		Author:   author,
		Year:     year,
	}

	fmt.Fprintln(cmd.OutOrStdout(), query.Transform(q, boosts))
	return nil
}

func init() {
	transformCmd.Flags().Float64("title", 0, "title field weight")
	transformCmd.Flags().Float64("abstract", 0, "abstract field weight")
	transformCmd.Flags().Float64("author", 0, "author field weight")
	transformCmd.Flags().Float64("year", 0, "year field weight")

	rootCmd.AddCommand(transformCmd)
}
