package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftscout/giftscout/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testListing(name, source string) model.Listing {
	return model.Listing{
		Name:   name,
		Source: source,
		Price:  49.99,
		Tags:   []string{"adventure", "experiences"},
	}
}

func TestMigrate(t *testing.T) {
	store := createTestStorage(t)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Migrate is idempotent.
	require.NoError(t, store.Migrate(context.Background()))
}

func TestSaveAndSearchListings(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	listings := []model.Listing{
		{Name: "Spa Day for Two", Source: "firebox", Price: 120, Category: "spa", Tags: []string{"relaxation", "romantic", "spa"}},
		{Name: "Stadium Tour", Source: "firebox", Price: 35, Category: "sports_outdoor", Tags: []string{"sports", "birthday"}},
		{Name: "Cocktail Masterclass", Source: "prezzybox", Price: 55, Category: "food_drink", Tags: []string{"food_lover", "learning"}},
	}

	saved, err := store.SaveListings(ctx, listings)
	require.NoError(t, err)
	assert.Equal(t, 3, saved)
	assert.NotZero(t, listings[0].ID)
	assert.False(t, listings[0].CreatedAt.IsZero())

	t.Run("no filters returns everything", func(t *testing.T) {
		got, err := store.SearchListings(ctx, model.Criteria{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("price ceiling", func(t *testing.T) {
		maxPrice := 60.0
		got, err := store.SearchListings(ctx, model.Criteria{MaxPrice: &maxPrice})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		for _, listing := range got {
			assert.LessOrEqual(t, listing.Price, maxPrice)
		}
	})

	t.Run("category membership", func(t *testing.T) {
		got, err := store.SearchListings(ctx, model.Criteria{Categories: []string{"spa", "food_drink"}})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("tag disjunction over interests and occasion", func(t *testing.T) {
		got, err := store.SearchListings(ctx, model.Criteria{
			Occasion:  "birthday",
			Interests: []string{"relaxation"},
		})
		require.NoError(t, err)
		// One matches via occasion tag, one via interest tag.
		assert.Len(t, got, 2)
	})

	t.Run("conjunction of filters", func(t *testing.T) {
		maxPrice := 60.0
		got, err := store.SearchListings(ctx, model.Criteria{
			MaxPrice:  &maxPrice,
			Interests: []string{"sports"},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Stadium Tour", got[0].Name)
	})

	t.Run("tags round trip through storage", func(t *testing.T) {
		got, err := store.SearchListings(ctx, model.Criteria{Categories: []string{"spa"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		// Stored comma-joined, returned as the sorted canonical list.
		assert.Equal(t, []string{"relaxation", "romantic", "spa"}, got[0].Tags)
	})
}

func TestSaveListingsDedup(t *testing.T) {
	ctx := context.Background()

	t.Run("same name and source", func(t *testing.T) {
		store := createTestStorage(t)

		first := testListing("Helicopter Ride", "firebox")
		saved, err := store.SaveListings(ctx, []model.Listing{first})
		require.NoError(t, err)
		require.Equal(t, 1, saved)

		// Same (name, source) with a different price is still a duplicate.
		second := testListing("Helicopter Ride", "firebox")
		second.Price = 99
		saved, err = store.SaveListings(ctx, []model.Listing{second})
		require.NoError(t, err)
		assert.Zero(t, saved)

		count, err := store.CountListings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("same affiliate link different name", func(t *testing.T) {
		store := createTestStorage(t)

		first := testListing("Helicopter Ride", "firebox")
		first.AffiliateLink = "https://example.com/heli"
		saved, err := store.SaveListings(ctx, []model.Listing{first})
		require.NoError(t, err)
		require.Equal(t, 1, saved)

		second := testListing("Helicopter Experience", "prezzybox")
		second.AffiliateLink = "https://example.com/heli"
		saved, err = store.SaveListings(ctx, []model.Listing{second})
		require.NoError(t, err)
		assert.Zero(t, saved)
	})

	t.Run("empty affiliate links never collide", func(t *testing.T) {
		store := createTestStorage(t)

		saved, err := store.SaveListings(ctx, []model.Listing{
			testListing("A", "firebox"),
			testListing("B", "firebox"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, saved)
	})

	t.Run("duplicates within one batch", func(t *testing.T) {
		store := createTestStorage(t)

		saved, err := store.SaveListings(ctx, []model.Listing{
			testListing("C", "firebox"),
			testListing("C", "firebox"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, saved)
	})
}

func TestSaveListingsValidation(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	t.Run("missing name", func(t *testing.T) {
		_, err := store.SaveListings(ctx, []model.Listing{{Source: "firebox", Price: 10}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidListing)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := store.SaveListings(ctx, []model.Listing{{Name: "X", Price: 10}})
		require.Error(t, err)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := store.SaveListings(ctx, []model.Listing{{Name: "X", Source: "firebox", Price: -1}})
		require.Error(t, err)
	})
}

func TestGetListingByID(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	batch := []model.Listing{testListing("Wine Tasting", "prezzybox")}
	_, err := store.SaveListings(ctx, batch)
	require.NoError(t, err)

	got, err := store.GetListingByID(ctx, batch[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Wine Tasting", got.Name)

	missing, err := store.GetListingByID(ctx, 99999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
