package llm

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/giftscout/giftscout/internal/common"
	"github.com/giftscout/giftscout/internal/extract"
	"github.com/giftscout/giftscout/internal/model"
	"github.com/giftscout/giftscout/internal/service"
)

// Config holds configuration for the generative extraction strategy.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}

// Extractor is the generative-text extraction strategy. Every failure mode
// of the underlying client degrades to the rule-based fallback; Extract
// never surfaces an error to the caller.
type Extractor struct {
	client      Client
	fallback    service.Extractor
	cache       *criteriaCache
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

// NewExtractor creates a generative extractor backed by the configured
// provider, with the given fallback strategy.
func NewExtractor(cfg Config, fallback service.Extractor, logger *slog.Logger) (*Extractor, error) {
	if fallback == nil {
		fallback = extract.NewRuleExtractor()
	}

	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		client, err = newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Extractor{
		client:      client,
		fallback:    fallback,
		cache:       newCriteriaCache(cfg.CacheTTL),
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// Extract asks the model for structured criteria, falling back to the rule
// strategy on any failure. Categories are always derived from interests via
// the category mapper, same as the rule path.
func (e *Extractor) Extract(ctx context.Context, description string) model.Criteria {
	if strings.TrimSpace(description) == "" {
		return e.fallback.Extract(ctx, description)
	}

	key := descriptionHash(description)
	if cached, found := e.cache.get(key); found {
		e.logger.Debug("cache hit for description", "hash", key)
		return toCriteria(cached)
	}

	if err := e.rateLimiter.wait(ctx); err != nil {
		e.logger.Warn("rate limiter interrupted, using rule extraction", "error", err)
		return e.fallback.Extract(ctx, description)
	}

	var response CriteriaResponse
	err := common.WithRetry(ctx, func() error {
		resp, reqErr := e.client.ExtractCriteria(ctx, description)
		if reqErr != nil {
			e.logger.Warn("LLM extraction attempt failed", "error", reqErr)
			return &common.RetryableError{Err: reqErr, Retryable: true}
		}
		response = resp
		return nil
	}, e.retryOpts)

	if err != nil {
		e.logger.Error("LLM extraction failed, falling back to rule extraction",
			"error", err)
		return e.fallback.Extract(ctx, description)
	}

	e.cache.set(key, response)

	criteria := toCriteria(response)
	e.logger.Info("criteria extracted via LLM",
		"interests", len(criteria.Interests),
		"occasion", criteria.Occasion,
		"relationship", criteria.Relationship)
	return criteria
}

// Close stops background goroutines and cleans up resources.
func (e *Extractor) Close() error {
	if e.cache != nil {
		e.cache.Close()
	}
	if e.rateLimiter != nil {
		e.rateLimiter.Close()
	}
	return nil
}

func toCriteria(resp CriteriaResponse) model.Criteria {
	interests := resp.Interests
	if interests == nil {
		interests = []string{}
	}
	return model.Criteria{
		Age:          resp.Age,
		MaxPrice:     resp.MaxPrice,
		Gender:       resp.Gender,
		Occasion:     resp.Occasion,
		Relationship: resp.Relationship,
		Interests:    interests,
		Categories:   extract.MapCategories(interests),
	}
}

func descriptionHash(description string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(description))))
	return fmt.Sprintf("%x", sum)
}
