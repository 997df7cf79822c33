package spot_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
	"github.com/redmonkez12/roomboom-api/internal/query"
	"github.com/redmonkez12/roomboom-api/internal/spot"
	"github.com/redmonkez12/roomboom-api/internal/storage/memory"
)

func ptr[T any](v T) *T { return &v }

func newService(t *testing.T) (*spot.Service, *memory.SpotRepository, *memory.UserRepository) {
	t.Helper()

	users := memory.NewUserRepository()
	repo := memory.NewSpotRepository()
	return spot.NewService(repo, users), repo, users
}

func newUser(t *testing.T, users *memory.UserRepository, name string) uuid.UUID {
	t.Helper()

	u, err := users.Create(context.Background(), name, name+"@example.com", "hash")
	require.NoError(t, err)
	return u.ID
}

func beachRequest() spot.CreateRequest {
	return spot.CreateRequest{
		Title:       "Palolem Beach",
		Description: "Quiet crescent beach with calm water",
		Tag:         "Chill",
		Location: spot.Location{
			City:        "Canacona",
			State:       "Goa",
			Coordinates: spot.Coordinates{Lat: ptr(15.01), Lng: ptr(74.02)},
		},
		Image:  "https://example.com/palolem.jpg",
		Rating: 4.6,
	}
}

func TestService_Create(t *testing.T) {
	svc, _, users := newService(t)
	author := newUser(t, users, "alice")

	s, err := svc.Create(context.Background(), author, beachRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, author, s.CreatedBy)
	assert.Equal(t, "bg-green-500", s.TagColor)
	assert.False(t, s.Trending)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*spot.CreateRequest)
	}{
		{"missing title", func(r *spot.CreateRequest) { r.Title = "" }},
		{"unknown tag", func(r *spot.CreateRequest) { r.Tag = "Shopping" }},
		{"missing tag", func(r *spot.CreateRequest) { r.Tag = "" }},
		{"missing image", func(r *spot.CreateRequest) { r.Image = " " }},
		{"rating above five", func(r *spot.CreateRequest) { r.Rating = 5.5 }},
		{"negative rating", func(r *spot.CreateRequest) { r.Rating = -1 }},
		{"latitude out of range", func(r *spot.CreateRequest) { r.Location.Coordinates.Lat = ptr(91.0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, users := newService(t)
			req := beachRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), newUser(t, users, "alice"), req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestService_Update_Ownership(t *testing.T) {
	ctx := context.Background()
	svc, _, users := newService(t)
	author := newUser(t, users, "alice")
	other := newUser(t, users, "bob")

	created, err := svc.Create(ctx, author, beachRequest())
	require.NoError(t, err)

	_, err = svc.Update(ctx, other, created.ID, spot.UpdateRequest{Title: ptr("Mine now")})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.Update(ctx, author, uuid.New(), spot.UpdateRequest{Title: ptr("Ghost")})
	assert.ErrorIs(t, err, spot.ErrNotFound)

	updated, err := svc.Update(ctx, author, created.ID, spot.UpdateRequest{Tag: ptr("Food")})
	require.NoError(t, err)
	assert.Equal(t, "Food", updated.Tag)
	assert.Equal(t, "bg-red-400", updated.TagColor)
	assert.Equal(t, "Palolem Beach", updated.Title)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, "alice", got.Author.Name)
}

func TestService_Delete_Ownership(t *testing.T) {
	ctx := context.Background()
	svc, _, users := newService(t)
	author := newUser(t, users, "alice")
	other := newUser(t, users, "bob")

	created, err := svc.Create(ctx, author, beachRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, other, created.ID), apperr.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, author, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_Delete_UnownedSpot(t *testing.T) {
	ctx := context.Background()
	svc, repo, users := newService(t)
	someone := newUser(t, users, "alice")

	seeded := spot.Spot{ID: uuid.New(), Title: "Seeded", Tag: "Nature", Image: "x"}
	repo.Put(seeded)

	assert.ErrorIs(t, svc.Delete(ctx, someone, seeded.ID), apperr.ErrForbidden)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc, _, users := newService(t)
	author := newUser(t, users, "alice")

	for i, tag := range []string{"Chill", "Food", "Chill"} {
		req := beachRequest()
		req.Tag = tag
		req.Rating = float64(3 + i)
		_, err := svc.Create(ctx, author, req)
		require.NoError(t, err)
	}

	minRating := 4.0
	result, err := svc.List(ctx, query.SpotFilter{
		Tag:       "Chill",
		MinRating: &minRating,
		Page:      query.Page{Page: 1, Limit: query.DefaultSpotLimit},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Data, 1)
	assert.Equal(t, 5.0, result.Data[0].Rating)
}

func TestService_Trending(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.Put(spot.Spot{Title: "a", Trending: true, Rating: 4.1})
	repo.Put(spot.Spot{Title: "b", Trending: true, Rating: 4.9})
	repo.Put(spot.Spot{Title: "c", Rating: 5})

	items, err := svc.Trending(context.Background(), spot.DefaultTrendingLimit)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].Title)
}
