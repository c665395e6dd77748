package source

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/giftscout/giftscout/internal/model"
	"github.com/giftscout/giftscout/internal/service"
)

const fireboxMaxResults = 100

// fireboxGenderParams maps extracted gender to the provider's audience
// filter IDs.
var fireboxGenderParams = map[string]string{
	model.GenderMale:   "3246",
	model.GenderFemale: "3247",
}

// fireboxPriceBands maps a budget ceiling to the provider's price filter
// ID. Bands are checked in ascending order; budgets above the last band use
// the open-ended filter.
var fireboxPriceBands = []struct {
	ceiling float64
	param   string
}{
	{ceiling: 15, param: "2651"},
	{ceiling: 30, param: "2830"},
	{ceiling: 60, param: "2650"},
}

const fireboxOpenPriceParam = "2649"

// fireboxProductTags maps internal interest/category vocabulary to the
// provider's product tag IDs.
var fireboxProductTags = map[string][]string{
	"gaming":     {"3288", "9547"},
	"technology": {"9547", "3288"},
	"gadgets":    {"9547", "3288"},
	"tech":       {"9547", "3288"},
	"computers":  {"9547", "3288"},
	"music":      {"3239"},
	"wine":       {"3238"},
	"beer":       {"3262", "9559"},
	"alcohol":    {"3262", "3238", "3259", "9559"},
	"cooking":    {"3268"},
	"animals":    {"9561"},
	"outdoor":    {"9517"},
	"gardening":  {"9519"},
	"sports":     {"3270"},
	"fitness":    {"3270"},
	"wellness":   {"3234"},
	"romantic":   {"9560"},
}

// Firebox fetches candidate listings from the Firebox gift-finder API.
// With no base URL configured, Fetch returns nothing and logs a warning so
// the orchestrator simply moves on to the next source.
type Firebox struct {
	api    *httpAPI
	images *ImageCache
	base   string
}

// NewFirebox constructs the Firebox source adapter.
func NewFirebox(baseURL string, timeout time.Duration, images *ImageCache) *Firebox {
	return &Firebox{
		base:   strings.TrimSuffix(baseURL, "/"),
		api:    newHTTPAPI(timeout),
		images: images,
	}
}

// Name identifies this provider; it is also the Source field on every
// listing it returns.
func (f *Firebox) Name() string { return "firebox" }

// BuildSearchQueries maps criteria onto the provider's filter parameters.
// Each matched product tag becomes its own query target; with no tag
// matches a single query with the audience and price filters is used.
func (f *Firebox) BuildSearchQueries(criteria model.Criteria) []string {
	base := url.Values{}

	if param, ok := fireboxGenderParams[criteria.Gender]; ok {
		base.Set("gift_gender", param)
	}

	if criteria.MaxPrice != nil {
		base.Set("price_filter", fireboxPriceParam(*criteria.MaxPrice))
	}

	tagIDs := make(map[string]struct{})
	for _, term := range append(append([]string{}, criteria.Interests...), criteria.Categories...) {
		for _, id := range fireboxProductTags[strings.ToLower(term)] {
			tagIDs[id] = struct{}{}
		}
	}

	endpoint := f.base + "/api/gift-finder"
	if len(tagIDs) == 0 {
		return []string{endpoint + "?" + base.Encode()}
	}

	ids := make([]string, 0, len(tagIDs))
	for id := range tagIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	queries := make([]string, 0, len(ids))
	for _, id := range ids {
		params := url.Values{}
		for key, values := range base {
			params[key] = values
		}
		params.Set("product_tags", id)
		queries = append(queries, endpoint+"?"+params.Encode())
	}
	return queries
}

func fireboxPriceParam(maxPrice float64) string {
	for _, band := range fireboxPriceBands {
		if maxPrice <= band.ceiling {
			return band.param
		}
	}
	return fireboxOpenPriceParam
}

// fireboxResponse mirrors the provider's gift-finder JSON response.
type fireboxResponse struct {
	Products []fireboxProduct `json:"products"`
}

type fireboxProduct struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
}

// Fetch executes each query target, classifying and tagging what comes
// back. Single query failures are logged and skipped so one bad filter
// combination cannot empty the whole source.
func (f *Firebox) Fetch(ctx context.Context, criteria model.Criteria) ([]model.Listing, error) {
	if f.base == "" {
		slog.Warn("firebox base URL not configured, skipping source")
		return nil, nil
	}

	var listings []model.Listing
	seen := make(map[string]struct{})

	for _, query := range f.BuildSearchQueries(criteria) {
		if len(listings) >= fireboxMaxResults {
			break
		}

		var resp fireboxResponse
		if err := f.api.getJSON(ctx, query, &resp); err != nil {
			slog.Error("firebox query failed", "url", query, "error", err)
			continue
		}

		for _, product := range resp.Products {
			if len(listings) >= fireboxMaxResults {
				break
			}
			listing, ok := f.toListing(ctx, product, criteria)
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

	slog.Info("firebox fetch complete", "count", len(listings))
	return listings, nil
}

func (f *Firebox) toListing(ctx context.Context, product fireboxProduct, criteria model.Criteria) (model.Listing, bool) {
	if strings.TrimSpace(product.Title) == "" || product.Price < 0 {
		return model.Listing{}, false
	}
	if criteria.MaxPrice != nil && product.Price > *criteria.MaxPrice {
		return model.Listing{}, false
	}

	category := ClassifyTitle(product.Title, product.Price)
	return model.Listing{
		Name:          product.Title,
		Description:   product.Description,
		Price:         product.Price,
		Category:      category,
		Tags:          GenerateTags(product.Title, category),
		AffiliateLink: product.URL,
		Source:        f.Name(),
		ImagePath:     f.images.Download(ctx, product.ImageURL, product.Title),
	}, true
}

var _ service.CandidateSource = (*Firebox)(nil)
