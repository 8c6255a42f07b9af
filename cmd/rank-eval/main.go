// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rank-eval CLI.
// Implements: prd010-comparison, prd011-boost, prd012-relevance,
//             prd013-sources, prd014-query (CLI surface).
// See docs/ARCHITECTURE § Command Surface.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rank-eval/internal/secrets"
	"github.com/pdiddy/rank-eval/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, else the named secret.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

// rootCmd is the base command for the rank-eval CLI.
var rootCmd = &cobra.Command{
	Use:   "rank-eval",
	Short: "Compare, re-rank, and evaluate bibliographic search results",
	Long: `rank-eval compares ranked result lists from bibliographic search providers
(ADS, Crossref), re-ranks a list with configurable boost factors, and scores
ranking quality against graded relevance judgments.

A typical session: fetch per-source lists with "search", inspect cross-source
agreement with "compare", experiment with boost weights via "boost", record
judgments with "judge", and score the ranking with "eval".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rank-eval.yaml or ~/.config/rank-eval/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rank-eval")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rank-eval"))
		}
	}

	viper.SetEnvPrefix("RANK_EVAL")
	viper.AutomaticEnv()

	viper.SetDefault("sources.max_results", 20)
	viper.SetDefault("sources.timeout", "30s")
	viper.SetDefault("sources.user_agent", "rank-eval/0.1")
	viper.SetDefault("sources.enable_ads", true)
	viper.SetDefault("sources.enable_crossref", true)
	viper.SetDefault("sources.inter_source_delay", "1s")
	viper.SetDefault("compare.rbo_persistence", 0.9)
	viper.SetDefault("eval.k", 10)
	viper.SetDefault("eval.consensus_strategy", "mean")
	viper.SetDefault("eval.judgments_db", filepath.Join("judgments", "judgments.db"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// sourceConfig assembles the fetch configuration from viper and secrets.
func sourceConfig() types.SourceConfig {
	timeout, _ := time.ParseDuration(viper.GetString("sources.timeout"))
	delay, _ := time.ParseDuration(viper.GetString("sources.inter_source_delay"))

	return types.SourceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("sources.user_agent"),
		},
		MaxResults:       viper.GetInt("sources.max_results"),
		EnableADS:        viper.GetBool("sources.enable_ads"),
		EnableCrossref:   viper.GetBool("sources.enable_crossref"),
		ADSToken:         secretDefault("ads-api-token", viper.GetString("sources.ads_token")),
		CrossrefMailto:   secretDefault("crossref-mailto", viper.GetString("sources.crossref_mailto")),
		InterSourceDelay: delay,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
