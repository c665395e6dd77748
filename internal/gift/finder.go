// Package gift implements the tiered retrieval orchestrator: serve from the
// store when it has enough matches, otherwise top up from the candidate
// sources, persist what came back, and merge.
package gift

import (
	"context"
	"log/slog"
	"time"

	"github.com/giftscout/giftscout/internal/model"
	"github.com/giftscout/giftscout/internal/service"
)

const (
	// DefaultMinResults is the store-result threshold below which the
	// candidate sources are consulted.
	DefaultMinResults = 10

	// DefaultSourceTimeout bounds each source's fetch independently so one
	// slow provider cannot stall the whole request.
	DefaultSourceTimeout = 20 * time.Second
)

// Finder coordinates the store and the candidate sources for one search.
type Finder struct {
	store         service.Storage
	logger        *slog.Logger
	sources       []service.CandidateSource
	minResults    int
	sourceTimeout time.Duration
}

// FinderOptions configures a Finder. Zero values fall back to the defaults.
type FinderOptions struct {
	MinResults    int
	SourceTimeout time.Duration
}

// NewFinder builds a Finder over the given store and ordered sources.
func NewFinder(store service.Storage, sources []service.CandidateSource, opts FinderOptions) *Finder {
	if opts.MinResults <= 0 {
		opts.MinResults = DefaultMinResults
	}
	if opts.SourceTimeout <= 0 {
		opts.SourceTimeout = DefaultSourceTimeout
	}
	return &Finder{
		store:         store,
		sources:       sources,
		minResults:    opts.MinResults,
		sourceTimeout: opts.SourceTimeout,
		logger:        slog.Default().With("component", "finder"),
	}
}

// FindGifts returns listings matching the criteria. The store is consulted
// first; only when it holds fewer than the configured minimum are the
// candidate sources fetched, deduplicated, persisted, and appended. Storage
// and source failures degrade the result rather than failing the search.
func (f *Finder) FindGifts(ctx context.Context, criteria model.Criteria) []model.Listing {
	existing, err := f.store.SearchListings(ctx, criteria)
	if err != nil {
		f.logger.Error("store search failed, continuing with sources", "error", err)
		existing = nil
	}

	if len(existing) >= f.minResults {
		f.logger.Info("store satisfied search", "count", len(existing))
		return existing
	}

	fresh := f.fetchFromSources(ctx, criteria, existing)
	if len(fresh) == 0 {
		return existing
	}

	saved, err := f.store.SaveListings(ctx, fresh)
	if err != nil {
		// Fetched results are still worth returning.
		f.logger.Error("failed to persist fetched listings", "error", err)
	} else {
		f.logger.Info("persisted fetched listings", "fetched", len(fresh), "saved", saved)
	}

	return append(existing, fresh...)
}

// fetchFromSources runs each source in order under its own timeout,
// dropping anything already present in the store results or fetched by an
// earlier source.
func (f *Finder) fetchFromSources(ctx context.Context, criteria model.Criteria, existing []model.Listing) []model.Listing {
	var fresh []model.Listing

	for _, source := range f.sources {
		sourceCtx, cancel := context.WithTimeout(ctx, f.sourceTimeout)
		listings, err := source.Fetch(sourceCtx, criteria)
		cancel()

		if err != nil {
			f.logger.Error("source fetch failed", "source", source.Name(), "error", err)
			continue
		}

		added := 0
		for i := range listings {
			if containsItem(existing, &listings[i]) || containsItem(fresh, &listings[i]) {
				continue
			}
			fresh = append(fresh, listings[i])
			added++
		}
		f.logger.Info("source fetch complete", "source", source.Name(), "fetched", len(listings), "added", added)

		if ctx.Err() != nil {
			break
		}
	}

	return fresh
}

func containsItem(listings []model.Listing, candidate *model.Listing) bool {
	for i := range listings {
		if listings[i].SameItem(candidate) {
			return true
		}
	}
	return false
}
