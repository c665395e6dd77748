package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftscout/giftscout/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestFireboxBuildSearchQueries(t *testing.T) {
	firebox := NewFirebox("https://shop.test", 0, nil)

	t.Run("no criteria yields single bare query", func(t *testing.T) {
		queries := firebox.BuildSearchQueries(model.Criteria{})
		require.Len(t, queries, 1)
		assert.Equal(t, "https://shop.test/api/gift-finder?", queries[0])
	})

	t.Run("gender and price map to filter params", func(t *testing.T) {
		queries := firebox.BuildSearchQueries(model.Criteria{
			Gender:   model.GenderFemale,
			MaxPrice: floatPtr(25),
		})
		require.Len(t, queries, 1)
		assert.Contains(t, queries[0], "gift_gender=3247")
		assert.Contains(t, queries[0], "price_filter=2830")
	})

	t.Run("one query per matched product tag", func(t *testing.T) {
		queries := firebox.BuildSearchQueries(model.Criteria{
			Interests: []string{"wine", "gardening"},
		})
		require.Len(t, queries, 2)
		// Tag IDs are emitted in sorted order.
		assert.Contains(t, queries[0], "product_tags=3238")
		assert.Contains(t, queries[1], "product_tags=9519")
	})

	t.Run("overlapping interests deduplicate tag IDs", func(t *testing.T) {
		queries := firebox.BuildSearchQueries(model.Criteria{
			Interests: []string{"gaming", "technology"},
		})
		assert.Len(t, queries, 2)
	})
}

func TestFireboxPriceParam(t *testing.T) {
	assert.Equal(t, "2651", fireboxPriceParam(10))
	assert.Equal(t, "2651", fireboxPriceParam(15))
	assert.Equal(t, "2830", fireboxPriceParam(30))
	assert.Equal(t, "2650", fireboxPriceParam(50))
	assert.Equal(t, "2649", fireboxPriceParam(500))
}

func TestFireboxFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("parses and classifies products", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/gift-finder", r.URL.Path)
			_ = json.NewEncoder(w).Encode(fireboxResponse{Products: []fireboxProduct{
				{Title: "Spa Day for Two", Price: 89, URL: "https://shop.test/spa", Description: "Relax"},
				{Title: "Racing Simulator Session", Price: 45, URL: "https://shop.test/race"},
			}})
		}))
		defer server.Close()

		firebox := NewFirebox(server.URL, time.Second, nil)
		listings, err := firebox.Fetch(ctx, model.Criteria{})
		require.NoError(t, err)
		require.Len(t, listings, 2)

		assert.Equal(t, "firebox", listings[0].Source)
		assert.Equal(t, "spa", listings[0].Category)
		assert.Contains(t, listings[0].Tags, "romantic")
		assert.Equal(t, "https://shop.test/spa", listings[0].AffiliateLink)
		assert.Equal(t, "driving", listings[1].Category)
	})

	t.Run("filters out items above budget", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(fireboxResponse{Products: []fireboxProduct{
				{Title: "Cheap Gift", Price: 10, URL: "https://shop.test/a"},
				{Title: "Pricey Gift", Price: 300, URL: "https://shop.test/b"},
			}})
		}))
		defer server.Close()

		firebox := NewFirebox(server.URL, time.Second, nil)
		listings, err := firebox.Fetch(ctx, model.Criteria{MaxPrice: floatPtr(50)})
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, "Cheap Gift", listings[0].Name)
	})

	t.Run("deduplicates across queries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(fireboxResponse{Products: []fireboxProduct{
				{Title: "Gaming Headset", Price: 60, URL: "https://shop.test/headset"},
			}})
		}))
		defer server.Close()

		firebox := NewFirebox(server.URL, time.Second, nil)
		// Two tag IDs means two queries against the same stub payload.
		listings, err := firebox.Fetch(ctx, model.Criteria{Interests: []string{"gaming"}})
		require.NoError(t, err)
		assert.Len(t, listings, 1)
	})

	t.Run("unconfigured base URL skips quietly", func(t *testing.T) {
		firebox := NewFirebox("", time.Second, nil)
		listings, err := firebox.Fetch(ctx, model.Criteria{})
		require.NoError(t, err)
		assert.Empty(t, listings)
	})

	t.Run("server error yields empty result not failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		firebox := NewFirebox(server.URL, time.Second, nil)
		listings, err := firebox.Fetch(ctx, model.Criteria{})
		require.NoError(t, err)
		assert.Empty(t, listings)
	})
}
