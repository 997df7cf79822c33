package memory

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/roomboom-api/internal/favorites"
	"github.com/redmonkez12/roomboom-api/internal/listing"
	"github.com/redmonkez12/roomboom-api/internal/query"
	"github.com/redmonkez12/roomboom-api/internal/spot"
	"github.com/redmonkez12/roomboom-api/internal/user"
)

// stepClock returns a new instant one second later on every call
func stepClock() Clock {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func TestListingRepository_Order(t *testing.T) {
	repo := NewListingRepository()
	repo.now = stepClock()
	ctx := context.Background()

	older, err := repo.Create(ctx, &listing.Listing{Title: "older", Available: true})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, &listing.Listing{Title: "newer", Available: true})
	require.NoError(t, err)

	featured := listing.Listing{ID: uuid.New(), Title: "featured", Available: true, Featured: true, CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo.Put(featured)

	items, total, err := repo.List(ctx, query.ListingFilter{Page: query.Page{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	ids := []uuid.UUID{items[0].ID, items[1].ID, items[2].ID}
	assert.Equal(t, []uuid.UUID{featured.ID, newer.ID, older.ID}, ids)
}

func TestListingRepository_PagesAreDisjoint(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()

	// Same timestamp for every row so only the id breaks ties
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for range 25 {
		repo.Put(listing.Listing{ID: uuid.New(), Available: true, CreatedAt: created})
	}

	seen := make(map[uuid.UUID]bool)
	for page := 1; page <= 3; page++ {
		items, total, err := repo.List(ctx, query.ListingFilter{Page: query.Page{Page: page, Limit: 10}})
		require.NoError(t, err)
		assert.Equal(t, 25, total)

		for _, l := range items {
			assert.False(t, seen[l.ID], "listing %s returned twice", l.ID)
			seen[l.ID] = true
		}
	}
	assert.Len(t, seen, 25)

	first, _, err := repo.List(ctx, query.ListingFilter{Page: query.Page{Page: 1, Limit: 10}})
	require.NoError(t, err)
	again, _, err := repo.List(ctx, query.ListingFilter{Page: query.Page{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestRepositories_HugePageIsEmpty(t *testing.T) {
	ctx := context.Background()
	values := url.Values{"page": {"1537228672809129302"}}

	listings := NewListingRepository()
	for range 15 {
		listings.Put(listing.Listing{ID: uuid.New(), Available: true})
	}
	items, total, err := listings.List(ctx, query.BuildListingFilter(values))
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 15, total)

	spots := NewSpotRepository()
	_, err = spots.Create(ctx, &spot.Spot{Title: "Lake"})
	require.NoError(t, err)
	found, total, err := spots.List(ctx, query.BuildSpotFilter(values))
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Equal(t, 1, total)
}

func TestListingRepository_Filters(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()

	repo.Put(listing.Listing{Title: "Sunny loft", Description: "Near the lake", PropertyType: "Loft", Price: 15000, Bedrooms: 2, Available: true, Location: listing.Location{City: "Hubli"}})
	repo.Put(listing.Listing{Title: "Villa", PropertyType: "Villa", Price: 90000, Bedrooms: 4, Available: true, Location: listing.Location{City: "Goa"}})
	repo.Put(listing.Listing{Title: "Hidden", Price: 15000, Available: false, Location: listing.Location{City: "Hubli"}})

	tests := []struct {
		name   string
		filter query.ListingFilter
		want   int
	}{
		{"no filter skips unavailable", query.ListingFilter{}, 2},
		{"city substring ignores case", query.ListingFilter{City: "HUB"}, 1},
		{"property type exact", query.ListingFilter{PropertyType: "Villa"}, 1},
		{"bedrooms exact", query.ListingFilter{Bedrooms: ptr(2)}, 1},
		{"search every term", query.ListingFilter{Search: "sunny lake"}, 1},
		{"search city", query.ListingFilter{Search: "goa"}, 1},
		{"search no match", query.ListingFilter{Search: "sunny mountain"}, 0},
		{"price range", query.ListingFilter{MinPrice: ptr(10000), MaxPrice: ptr(20000)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Page = query.Page{Page: 1, Limit: 10}
			_, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestListingRepository_UpdateKeepsServerFields(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	host := uuid.New()

	stored := listing.Listing{ID: uuid.New(), Title: "Flat", HostID: host, Rating: 4.2, Featured: true, Available: true}
	repo.Put(stored)

	changed := stored
	changed.Title = "Renamed"
	changed.HostID = uuid.New()
	changed.Rating = 1
	changed.Featured = false

	out, err := repo.Update(ctx, &changed)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.Title)
	assert.Equal(t, host, out.HostID)
	assert.Equal(t, 4.2, out.Rating)
	assert.True(t, out.Featured)

	_, err = repo.Update(ctx, &listing.Listing{ID: uuid.New()})
	assert.ErrorIs(t, err, listing.ErrNotFound)
}

func TestListingRepository_ReturnsCopies(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()

	stored := listing.Listing{ID: uuid.New(), Amenities: []string{"Wifi"}, Available: true}
	repo.Put(stored)

	got, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	got.Amenities[0] = "Pool"

	again, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wifi"}, again.Amenities)
}

func TestSpotRepository(t *testing.T) {
	repo := NewSpotRepository()
	repo.now = stepClock()
	ctx := context.Background()

	first, err := repo.Create(ctx, &spot.Spot{Title: "Fort walk", Tag: "Culture", Rating: 4.1, Trending: true})
	require.NoError(t, err)
	assert.False(t, first.Trending, "trending is curated, not client controlled")

	second, err := repo.Create(ctx, &spot.Spot{Title: "Night market", Tag: "Food", Rating: 4.6})
	require.NoError(t, err)

	items, total, err := repo.List(ctx, query.SpotFilter{Page: query.Page{Page: 1, Limit: 20}})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, second.ID, items[0].ID)

	minRating := 4.5
	_, total, err = repo.List(ctx, query.SpotFilter{MinRating: &minRating, Page: query.Page{Page: 1, Limit: 20}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	byIDs, err := repo.GetByIDs(ctx, []uuid.UUID{first.ID, uuid.New(), second.ID})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), spot.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, "Asha", "Asha@Example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)

	_, err = repo.Create(ctx, "Other", "asha@example.com", "hash")
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)

	got, err := repo.GetByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrNotFound)

	summaries, err := repo.GetSummaries(ctx, []uuid.UUID{u.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]user.Summary{u.ID: {ID: u.ID, Name: "Asha"}}, summaries)
}

func TestFavoriteStore_ConcurrentToggles(t *testing.T) {
	store := NewFavoriteStore()
	ctx := context.Background()
	userID := uuid.New()
	target := uuid.New()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Add(ctx, userID, favorites.KindSpot, target)
		}()
	}
	wg.Wait()

	ids, err := store.Members(ctx, userID, favorites.KindSpot)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{target}, ids)

	require.NoError(t, store.Remove(ctx, userID, favorites.KindSpot, target))
	require.NoError(t, store.Remove(ctx, uuid.New(), favorites.KindSpot, target))

	ok, err := store.Contains(ctx, userID, favorites.KindSpot, target)
	require.NoError(t, err)
	assert.False(t, ok)
}

func ptr[T any](v T) *T { return &v }
