// Package model defines the core domain types shared across the application.
package model

import (
	"sort"
	"strings"
	"time"
)

// Listing represents a single gift product, either persisted in the local
// catalog or freshly fetched from an external provider.
type Listing struct {
	CreatedAt     time.Time `json:"created_at,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	AffiliateLink string    `json:"affiliate_link,omitempty"`
	Source        string    `json:"source"`
	ImagePath     string    `json:"image_path,omitempty"`
	Tags          []string  `json:"tags"`
	ID            int64     `json:"id,omitempty"`
	Price         float64   `json:"price"`
}

// JoinTags serializes the tag list into the stored comma-joined form.
// Tags are sorted and deduplicated so the stored form is canonical.
func JoinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(tags))
	unique := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		unique = append(unique, tag)
	}

	sort.Strings(unique)
	return strings.Join(unique, ",")
}

// SplitTags parses the stored comma-joined form back into a tag list.
// An empty stored value yields an empty list, never nil-panics downstream.
func SplitTags(stored string) []string {
	if stored == "" {
		return []string{}
	}

	parts := strings.Split(stored, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// SameItem reports whether two listings refer to the same product for
// duplicate detection. Listings match when they share (name, source) or a
// non-empty affiliate link. Both keys must be checked everywhere a listing
// is persisted.
func (l *Listing) SameItem(other *Listing) bool {
	if other == nil {
		return false
	}
	if l.Name == other.Name && l.Source == other.Source {
		return true
	}
	if l.AffiliateLink != "" && l.AffiliateLink == other.AffiliateLink {
		return true
	}
	return false
}
