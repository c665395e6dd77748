package source

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/giftscout/giftscout/internal/model"
	"github.com/giftscout/giftscout/internal/service"
)

const prezzyboxMaxResults = 25

// prezzyboxCategorySlugs maps internal categories to the provider's
// browse endpoints.
var prezzyboxCategorySlugs = map[string]string{
	"food":           "food-and-drink-gifts",
	"food_drink":     "food-and-drink-gifts",
	"sports_outdoor": "sports-gifts",
	"sports":         "sports-gifts",
	"technology":     "gadget-gifts",
	"experiences":    "experience-days",
	"gaming":         "gaming-gifts",
}

// Prezzybox fetches candidate listings from the Prezzybox catalogue API.
// Criteria that map onto known category slugs become browse queries; the
// remaining terms are folded into a single keyword search.
type Prezzybox struct {
	api    *httpAPI
	images *ImageCache
	base   string
}

// NewPrezzybox constructs the Prezzybox source adapter.
func NewPrezzybox(baseURL string, timeout time.Duration, images *ImageCache) *Prezzybox {
	return &Prezzybox{
		base:   strings.TrimSuffix(baseURL, "/"),
		api:    newHTTPAPI(timeout),
		images: images,
	}
}

// Name identifies this provider; it is also the Source field on every
// listing it returns.
func (p *Prezzybox) Name() string { return "prezzybox" }

// BuildSearchQueries produces one browse query per mapped category, then a
// keyword search built from the remaining criteria terms. With nothing to
// go on it falls back to the provider's general gifts endpoint.
func (p *Prezzybox) BuildSearchQueries(criteria model.Criteria) []string {
	var queries []string
	seenSlugs := make(map[string]struct{})

	for _, category := range criteria.Categories {
		slug, ok := prezzyboxCategorySlugs[strings.ToLower(category)]
		if !ok {
			continue
		}
		if _, dup := seenSlugs[slug]; dup {
			continue
		}
		seenSlugs[slug] = struct{}{}
		queries = append(queries, p.base+"/api/catalogue/"+slug)
	}

	terms := prezzyboxSearchTerms(criteria)
	if len(terms) > 0 {
		params := url.Values{}
		params.Set("q", strings.Join(terms, " "))
		queries = append(queries, p.base+"/api/search?"+params.Encode())
	}

	if len(queries) == 0 {
		queries = append(queries, p.base+"/api/catalogue/gifts")
	}
	return queries
}

// prezzyboxSearchTerms collects the free-text keywords worth searching on:
// relationship, occasion, gender, and any interests without a category slug
// of their own.
func prezzyboxSearchTerms(criteria model.Criteria) []string {
	var terms []string
	if criteria.Relationship != "" {
		terms = append(terms, criteria.Relationship)
	}
	if criteria.Occasion != "" {
		terms = append(terms, criteria.Occasion)
	}
	if criteria.Gender != "" {
		terms = append(terms, criteria.Gender)
	}
	for _, interest := range criteria.Interests {
		if _, mapped := prezzyboxCategorySlugs[strings.ToLower(interest)]; !mapped {
			terms = append(terms, interest)
		}
	}
	return terms
}

// prezzyboxResponse mirrors the provider's catalogue and search JSON
// responses, which share an item shape.
type prezzyboxResponse struct {
	Items []prezzyboxItem `json:"items"`
}

type prezzyboxItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ProductURL  string  `json:"product_url"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// Fetch executes each query, filters by budget, and classifies what comes
// back. Single query failures are logged and skipped so one bad endpoint
// cannot empty the whole source.
func (p *Prezzybox) Fetch(ctx context.Context, criteria model.Criteria) ([]model.Listing, error) {
	if p.base == "" {
		slog.Warn("prezzybox base URL not configured, skipping source")
		return nil, nil
	}

	var listings []model.Listing
	seen := make(map[string]struct{})

	for _, query := range p.BuildSearchQueries(criteria) {
		if len(listings) >= prezzyboxMaxResults {
			break
		}

		var resp prezzyboxResponse
		if err := p.api.getJSON(ctx, query, &resp); err != nil {
			slog.Error("prezzybox query failed", "url", query, "error", err)
			continue
		}

		for _, item := range resp.Items {
			if len(listings) >= prezzyboxMaxResults {
				break
			}
			listing, ok := p.toListing(ctx, item, criteria)
			if !ok {
				continue
			}
			key := listing.Name + "|" + listing.AffiliateLink
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			listings = append(listings, listing)
		}
	}

	slog.Info("prezzybox fetch complete", "count", len(listings))
	return listings, nil
}

func (p *Prezzybox) toListing(ctx context.Context, item prezzyboxItem, criteria model.Criteria) (model.Listing, bool) {
	if strings.TrimSpace(item.Name) == "" || item.Price < 0 {
		return model.Listing{}, false
	}
	if criteria.MaxPrice != nil && item.Price > *criteria.MaxPrice {
		return model.Listing{}, false
	}

	category := ClassifyTitle(item.Name, item.Price)
	return model.Listing{
		Name:          item.Name,
		Description:   item.Description,
		Price:         item.Price,
		Category:      category,
		Tags:          GenerateTags(item.Name, category),
		AffiliateLink: item.ProductURL,
		Source:        p.Name(),
		ImagePath:     p.images.Download(ctx, item.Image, item.Name),
	}, true
}

var _ service.CandidateSource = (*Prezzybox)(nil)
