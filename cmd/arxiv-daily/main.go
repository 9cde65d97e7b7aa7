// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-daily CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-daily/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-daily CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-daily",
	Short: "Incremental daily ingestion of arXiv paper metadata",
	Long: `arxiv-daily ingests metadata for newly published arXiv entries once a day:
it walks the query feed in descending submission order until it crosses the
day boundary, normalizes each entry into paper, author, and category records,
and merges them idempotently into a local store. A secondary pass derives
lightweight topic tags from titles and abstracts.

Each stage is a subcommand: ingest, enrich, runs, export, and schedule.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-daily.yaml or ~/.config/arxiv-daily/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the persisted tables (default: ./data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-daily")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-daily"))
		}
	}

	viper.SetEnvPrefix("ARXIV_DAILY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig builds the effective configuration: built-in defaults,
// overridden by config file / environment, overridden by flags.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.DefaultConfig()

	if viper.IsSet("feed.query") {
		cfg.Feed.Query = viper.GetString("feed.query")
	}
	if viper.IsSet("feed.page_size") {
		cfg.Feed.PageSize = viper.GetInt("feed.page_size")
	}
	if viper.IsSet("feed.max_results") {
		cfg.Feed.MaxResults = viper.GetInt("feed.max_results")
	}
	if viper.IsSet("feed.min_interval") {
		cfg.Feed.MinInterval = viper.GetDuration("feed.min_interval")
	}
	if viper.IsSet("feed.retry_wait") {
		cfg.Feed.RetryWait = viper.GetDuration("feed.retry_wait")
	}
	if viper.IsSet("feed.retry_attempts") {
		cfg.Feed.RetryAttempts = viper.GetInt("feed.retry_attempts")
	}
	if viper.IsSet("feed.timeout") {
		cfg.Feed.Timeout = viper.GetDuration("feed.timeout")
	}
	if viper.IsSet("feed.user_agent") {
		cfg.Feed.UserAgent = viper.GetString("feed.user_agent")
	}
	if viper.IsSet("store.data_dir") {
		cfg.Store.DataDir = viper.GetString("store.data_dir")
	}
	if viper.IsSet("schedule.cron") {
		cfg.Schedule.Cron = viper.GetString("schedule.cron")
	}

	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Store.DataDir = dataDir
	}
	return cfg
}

// newLogger builds the structured logger used by the pipeline stages. Human
// summaries still go to stdout; the logger carries the operational detail.
func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
