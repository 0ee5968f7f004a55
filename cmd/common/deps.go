// Package common provides shared wiring for command implementations.
package common

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jonesrussell/blog-indexer/internal/config"
	"github.com/jonesrussell/blog-indexer/internal/discover"
	"github.com/jonesrussell/blog-indexer/internal/feed"
	"github.com/jonesrussell/blog-indexer/internal/indexing"
	"github.com/jonesrussell/blog-indexer/internal/logger"
	"github.com/jonesrussell/blog-indexer/internal/metrics"
	"github.com/jonesrussell/blog-indexer/internal/pipeline"
)

// CommandDeps holds common dependencies for all commands. Explicit struct
// wiring instead of context.Value or package-level singletons; the
// session dedup set lives inside the gate carried here, with lifetime
// equal to the process.
type CommandDeps struct {
	Logger  logger.Interface
	Config  *config.Config
	Metrics *metrics.Metrics
	Runner  *pipeline.Runner
}

// NewCommandDeps loads configuration and builds the full pipeline.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log, logErr := logger.New(&cfg.Logger)
	if logErr != nil {
		return nil, fmt.Errorf("create logger: %w", logErr)
	}

	fetcher := feed.NewHTTPFetcher(&http.Client{Timeout: fetchTimeout(cfg)})
	reader := feed.NewReader(fetcher)

	source := discover.NewSource(
		reader,
		fetcher,
		log.WithComponent("discover"),
		cfg.ResolvedFeedURL(),
		cfg.Blog.URL,
	)

	factory := indexing.NewFactory(indexing.Credentials{
		Email:      cfg.Indexing.ServiceAccountEmail,
		PrivateKey: cfg.Indexing.PrivateKey,
	})
	gate := indexing.NewGate(factory, log.WithComponent("indexing"))

	m := metrics.New()

	runner := pipeline.NewRunner(
		source,
		gate,
		log.WithComponent("pipeline"),
		m,
		pipeline.Options{
			BlogURL:       cfg.Blog.URL,
			Keywords:      cfg.Priority.Keywords,
			MaxURLsPerRun: cfg.Indexing.MaxURLsPerRun,
			RequestDelay:  cfg.Indexing.RequestDelay,
		},
	)

	return &CommandDeps{
		Logger:  log,
		Config:  cfg,
		Metrics: m,
		Runner:  runner,
	}, nil
}

// fetchTimeout returns the configured fetch timeout or the default.
func fetchTimeout(cfg *config.Config) time.Duration {
	if cfg.Blog.FetchTimeout > 0 {
		return cfg.Blog.FetchTimeout
	}

	return config.DefaultFetchTimeout
}
