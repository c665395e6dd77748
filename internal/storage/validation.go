// Package storage provides the data persistence layer for the giftscout application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/giftscout/giftscout/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidListing = errors.New("invalid listing")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateListing validates a single listing ahead of persistence.
func validateListing(listing *model.Listing) error {
	if listing == nil {
		return fmt.Errorf("%w: listing", ErrNilParameter)
	}
	if strings.TrimSpace(listing.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidListing)
	}
	if strings.TrimSpace(listing.Source) == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidListing)
	}
	if listing.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidListing)
	}
	return nil
}
