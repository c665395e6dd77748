package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/giftscout/giftscout/internal/extract"
	"github.com/giftscout/giftscout/internal/gift"
	"github.com/giftscout/giftscout/internal/llm"
	"github.com/giftscout/giftscout/internal/service"
	"github.com/giftscout/giftscout/internal/source"
	"github.com/giftscout/giftscout/internal/storage"
)

func databasePath() (string, error) {
	if dbPath := viper.GetString("storage.path"); dbPath != "" {
		return dbPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "giftscout", "giftscout.db"), nil
}

func openStorage() (*storage.SQLiteStorage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// buildExtractor returns the configured extraction strategy: the generative
// one when enabled and credentialed, otherwise the rule-based one. A close
// function is returned for the strategies that hold resources.
func buildExtractor() (service.Extractor, func(), error) {
	rules := extract.NewRuleExtractor()

	if !viper.GetBool("llm.enabled") {
		return rules, func() {}, nil
	}

	apiKey := viper.GetString("llm.api_key")
	if apiKey == "" {
		slog.Warn("llm.enabled set but no API key configured, using rule extraction")
		return rules, func() {}, nil
	}

	cfg := llm.Config{
		Provider:  viper.GetString("llm.provider"),
		APIKey:    apiKey,
		Model:     viper.GetString("llm.model"),
		CacheTTL:  viper.GetDuration("llm.cache_ttl"),
		RateLimit: viper.GetInt("llm.rate_limit"),
	}
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}

	extractor, err := llm.NewExtractor(cfg, rules, slog.Default().With("component", "llm"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM extractor: %w", err)
	}
	return extractor, func() { _ = extractor.Close() }, nil
}

// buildSources constructs the enabled candidate sources in configuration
// order.
func buildSources() ([]service.CandidateSource, error) {
	images, err := source.NewImageCache(viper.GetString("sources.image_dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to set up image cache: %w", err)
	}

	timeout := viper.GetDuration("sources.timeout")
	enabled := viper.GetStringSlice("sources.enabled")
	if len(enabled) == 0 {
		enabled = []string{"firebox", "prezzybox"}
	}

	var sources []service.CandidateSource
	for _, name := range enabled {
		switch name {
		case "firebox":
			sources = append(sources, source.NewFirebox(viper.GetString("sources.firebox.base_url"), timeout, images))
		case "prezzybox":
			sources = append(sources, source.NewPrezzybox(viper.GetString("sources.prezzybox.base_url"), timeout, images))
		default:
			return nil, fmt.Errorf("unknown candidate source: %s", name)
		}
	}
	return sources, nil
}

func buildFinder(store service.Storage, sources []service.CandidateSource) *gift.Finder {
	return gift.NewFinder(store, sources, gift.FinderOptions{
		MinResults:    viper.GetInt("retrieval.min_results"),
		SourceTimeout: viper.GetDuration("sources.timeout"),
	})
}

func serverAddr() string {
	if addr := viper.GetString("server.addr"); addr != "" {
		return addr
	}
	return ":8080"
}

// shutdownTimeout bounds graceful drain on SIGTERM.
const shutdownTimeout = 10 * time.Second
