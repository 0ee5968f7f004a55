// Package config provides configuration management for the auto-indexer.
// It handles loading, validation, and access to configuration values from
// YAML files and environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/blog-indexer/internal/logger"
)

// Defaults for optional settings.
const (
	DefaultMaxURLsPerRun = 25
	DefaultRequestDelay  = 2 * time.Second
	DefaultFetchTimeout  = 10 * time.Second
	DefaultCronSchedule  = "0 */3 * * *"
)

// DefaultKeywords are the title keywords that raise a candidate's priority
// when no keyword list is configured.
var DefaultKeywords = []string{"news", "update", "release", "guide", "how to"}

// BlogConfig identifies the blog being indexed.
type BlogConfig struct {
	// URL is the blog's canonical root URL.
	URL string `yaml:"url"`
	// FeedURL is an explicit feed URL. When empty, the Blogger default
	// feed path is derived from URL.
	FeedURL string `yaml:"feed_url"`
	// FetchTimeout bounds feed and page fetches.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// IndexingConfig holds Google Indexing API settings.
type IndexingConfig struct {
	// ServiceAccountEmail is the Google service account's client email.
	ServiceAccountEmail string `yaml:"service_account_email"`
	// PrivateKey is the service account's PEM private key. Literal "\n"
	// sequences are unescaped at load time.
	PrivateKey string `yaml:"private_key"`
	// MaxURLsPerRun caps how many candidates one run submits.
	MaxURLsPerRun int `yaml:"max_urls_per_run"`
	// RequestDelay is the pause between consecutive submissions. Zero
	// disables pacing (test environments).
	RequestDelay time.Duration `yaml:"request_delay"`
}

// ScheduleConfig controls the recurring mode.
type ScheduleConfig struct {
	// Cron is a standard 5-field cron expression.
	Cron string `yaml:"cron"`
	// RunOnStart triggers a run immediately when the scheduler starts.
	RunOnStart bool `yaml:"run_on_start"`
}

// PriorityConfig tunes candidate scoring.
type PriorityConfig struct {
	// Keywords raise a candidate's score when found in its title.
	Keywords []string `yaml:"keywords"`
}

// Config represents the application configuration.
type Config struct {
	Blog     BlogConfig     `yaml:"blog"`
	Indexing IndexingConfig `yaml:"indexing"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Priority PriorityConfig `yaml:"priority"`
	Logger   logger.Config  `yaml:"logger"`
}

// Load builds a Config from the global viper instance. Defaults and
// environment bindings are established by the root command before Load
// is called.
func Load() (*Config, error) {
	cfg := &Config{
		Blog: BlogConfig{
			URL:          viper.GetString("blog.url"),
			FeedURL:      viper.GetString("blog.feed_url"),
			FetchTimeout: viper.GetDuration("blog.fetch_timeout"),
		},
		Indexing: IndexingConfig{
			ServiceAccountEmail: viper.GetString("indexing.service_account_email"),
			PrivateKey:          unescapeKey(viper.GetString("indexing.private_key")),
			MaxURLsPerRun:       viper.GetInt("indexing.max_urls_per_run"),
			RequestDelay:        viper.GetDuration("indexing.request_delay"),
		},
		Schedule: ScheduleConfig{
			Cron:       viper.GetString("schedule.cron"),
			RunOnStart: viper.GetBool("schedule.run_on_start"),
		},
		Priority: PriorityConfig{
			Keywords: viper.GetStringSlice("priority.keywords"),
		},
		Logger: logger.Config{
			Level:       logger.Level(viper.GetString("logger.level")),
			Development: viper.GetBool("logger.development"),
			Encoding:    viper.GetString("logger.encoding"),
		},
	}

	if len(cfg.Priority.Keywords) == 0 {
		cfg.Priority.Keywords = DefaultKeywords
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required settings are present and well-formed.
func (c *Config) Validate() error {
	if c.Blog.URL == "" {
		return errors.New("blog URL must be specified")
	}

	parsed, err := url.Parse(c.Blog.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid blog URL: %q", c.Blog.URL)
	}

	if c.Indexing.MaxURLsPerRun <= 0 {
		return fmt.Errorf("max URLs per run must be positive, got %d", c.Indexing.MaxURLsPerRun)
	}

	if c.Indexing.RequestDelay < 0 {
		return errors.New("request delay must not be negative")
	}

	if c.Schedule.Cron == "" {
		return errors.New("cron schedule must be specified")
	}

	return nil
}

// ResolvedFeedURL returns the configured feed URL, or the Blogger default
// feed derived from the blog URL when none is configured.
func (c *Config) ResolvedFeedURL() string {
	if c.Blog.FeedURL != "" {
		return c.Blog.FeedURL
	}

	return strings.TrimRight(c.Blog.URL, "/") + "/feeds/posts/default"
}

// unescapeKey converts literal "\n" sequences to newlines. Private keys
// arrive this way when passed through single-line environment variables.
func unescapeKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
