// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-daily/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for the feed fetcher and boundary scanner.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// Query is the feed search expression (default "all:*").
	Query string `json:"query" yaml:"query"`

	// PageSize is the number of entries requested per page (default 200).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxResults bounds the total entries fetched in one run (default 2000).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MinInterval is the minimum delay between consecutive requests
	// (default 3s). The feed's terms of use require at least this much;
	// it is enforced, not best-effort.
	MinInterval time.Duration `json:"min_interval" yaml:"min_interval"`

	// RetryWait is the fixed delay between retry attempts (default 5s).
	RetryWait time.Duration `json:"retry_wait" yaml:"retry_wait"`

	// RetryAttempts bounds the attempts per page request (default 5).
	RetryAttempts int `json:"retry_attempts" yaml:"retry_attempts"`
}

// StoreConfig holds settings for the persisted table store.
type StoreConfig struct {
	// DataDir is the directory holding the table database and exports.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ScheduleConfig holds settings for the recurring-run daemon.
type ScheduleConfig struct {
	// Cron is the schedule expression for daily runs (default "0 6 * * *").
	Cron string `json:"cron" yaml:"cron"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Feed     FeedConfig     `json:"feed" yaml:"feed"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule"`
}

// DefaultConfig returns the built-in configuration. Values mirror the feed
// provider's published usage guidance.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		Feed: FeedConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   60 * time.Second,
				UserAgent: "arxiv-daily/0.1",
			},
			Query:         "all:*",
			PageSize:      200,
			MaxResults:    2000,
			MinInterval:   3 * time.Second,
			RetryWait:     5 * time.Second,
			RetryAttempts: 5,
		},
		Store: StoreConfig{
			DataDir: "data",
		},
		Schedule: ScheduleConfig{
			Cron: "0 6 * * *",
		},
	}
}
