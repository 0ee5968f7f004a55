// Package cmd implements the command-line interface for the blog
// auto-indexer. It provides the root command and subcommands for one-shot
// and scheduled submission runs.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdrun "github.com/jonesrussell/blog-indexer/cmd/run"
	cmdschedule "github.com/jonesrussell/blog-indexer/cmd/schedule"
	"github.com/jonesrussell/blog-indexer/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	// rootCmd represents the root command for the auto-indexer CLI.
	rootCmd = &cobra.Command{
		Use:   "blog-indexer",
		Short: "Discover new blog posts and submit them to the Google Indexing API",
		Long: `blog-indexer discovers newly published posts from a blog's RSS/Atom
feed (falling back to page scraping) and submits their URLs to the
Google Indexing API, respecting the service's rate limits and quota.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	// Parse flags early so --config and --debug influence initConfig.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("initialize configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("blog-indexer version %s\n", version)
		},
	})

	rootCmd.AddCommand(cmdrun.Command())
	rootCmd.AddCommand(cmdschedule.Command())
}

// initConfig reads the config file and environment variables into viper.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// The config file is optional; environment variables and defaults
	// cover a full configuration.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: config file not loaded: %v\n", err)
		}
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	if debug {
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
	}

	return nil
}

// bindEnvVars maps well-known environment variables onto config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"blog.url":                       {"BLOG_URL"},
		"blog.feed_url":                  {"RSS_FEED_URL"},
		"indexing.service_account_email": {"GOOGLE_SERVICE_ACCOUNT_EMAIL"},
		"indexing.private_key":           {"GOOGLE_PRIVATE_KEY"},
		"schedule.cron":                  {"CHECK_INTERVAL"},
		"logger.level":                   {"LOG_LEVEL"},
		"logger.encoding":                {"LOG_FORMAT"},
	}

	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind %s: %w", envs[0], err)
		}
	}

	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("blog", map[string]any{
		"fetch_timeout": config.DefaultFetchTimeout.String(),
	})

	viper.SetDefault("indexing", map[string]any{
		"max_urls_per_run": config.DefaultMaxURLsPerRun,
		"request_delay":    config.DefaultRequestDelay.String(),
	})

	viper.SetDefault("schedule", map[string]any{
		"cron":         config.DefaultCronSchedule,
		"run_on_start": true,
	})

	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "console",
	})
}
