// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/giftscout/giftscout/internal/model"
)

// Extractor turns a free-text gift description into structured criteria.
// Implementations must never fail: an empty or unparseable description
// yields an empty Criteria, and strategy-specific failures degrade to a
// fallback strategy rather than surfacing an error.
type Extractor interface {
	Extract(ctx context.Context, description string) model.Criteria
}

// Storage defines the contract for the listings persistence layer.
type Storage interface {
	// SearchListings returns listings matching the present criteria fields.
	// Absent fields impose no filter.
	SearchListings(ctx context.Context, criteria model.Criteria) ([]model.Listing, error)
	// SaveListings persists listings that do not duplicate stored ones
	// under either dedup key, returning how many were inserted.
	SaveListings(ctx context.Context, listings []model.Listing) (int, error)
	GetListingByID(ctx context.Context, id int64) (*model.Listing, error)
	CountListings(ctx context.Context) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}

// CandidateSource fetches candidate listings from one external retail
// provider. Fetch always returns a (possibly empty) slice; single
// query-target failures are logged and skipped, never propagated.
type CandidateSource interface {
	Name() string
	BuildSearchQueries(criteria model.Criteria) []string
	Fetch(ctx context.Context, criteria model.Criteria) ([]model.Listing, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
