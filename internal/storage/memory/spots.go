package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/query"
	"github.com/redmonkez12/roomboom-api/internal/search"
	"github.com/redmonkez12/roomboom-api/internal/spot"
)

type SpotRepository struct {
	mu     sync.RWMutex
	rows   map[uuid.UUID]spot.Spot
	search search.Memory
	now    Clock
}

func NewSpotRepository() *SpotRepository {
	return &SpotRepository{
		rows:   make(map[uuid.UUID]spot.Spot),
		search: search.NewMemory(),
		now:    defaultClock,
	}
}

func (r *SpotRepository) matches(s *spot.Spot, f query.SpotFilter) bool {
	switch {
	case f.Tag != "" && s.Tag != f.Tag:
		return false
	case f.City != "" && !strings.Contains(strings.ToLower(s.Location.City), strings.ToLower(f.City)):
		return false
	case f.MinRating != nil && s.Rating < *f.MinRating:
		return false
	}
	return r.search.Match(f.Search, s.Title, s.Description)
}

func (r *SpotRepository) List(_ context.Context, f query.SpotFilter) ([]spot.Spot, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []spot.Spot
	for _, s := range r.rows {
		if r.matches(&s, f) {
			matched = append(matched, s)
		}
	}

	slices.SortFunc(matched, func(a, b spot.Spot) int {
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})

	total := len(matched)
	window := query.Paginate(f.Page, total)
	if window.Skip >= total {
		return []spot.Spot{}, total, nil
	}
	end := min(window.Skip+window.Limit, total)

	return cloneSpots(matched[window.Skip:end]), total, nil
}

func (r *SpotRepository) Trending(_ context.Context, limit int) ([]spot.Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trending []spot.Spot
	for _, s := range r.rows {
		if s.Trending {
			trending = append(trending, s)
		}
	}

	slices.SortFunc(trending, func(a, b spot.Spot) int {
		return cmp.Or(
			cmp.Compare(b.Rating, a.Rating),
			cmp.Compare(b.ReviewCount, a.ReviewCount),
			newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID),
		)
	})

	return cloneSpots(trending[:min(limit, len(trending))]), nil
}

func (r *SpotRepository) GetByID(_ context.Context, id uuid.UUID) (*spot.Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.rows[id]
	if !ok {
		return nil, spot.ErrNotFound
	}
	s = cloneSpot(s)
	return &s, nil
}

func (r *SpotRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]spot.Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []spot.Spot{}
	for _, id := range ids {
		if s, ok := r.rows[id]; ok {
			out = append(out, cloneSpot(s))
		}
	}
	slices.SortFunc(out, func(a, b spot.Spot) int {
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out, nil
}

func (r *SpotRepository) Create(_ context.Context, s *spot.Spot) (*spot.Spot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := cloneSpot(*s)
	row.ID = uuid.New()
	row.CreatedAt = r.now()
	row.ReviewCount = 0
	row.Trending = false
	r.rows[row.ID] = row

	out := cloneSpot(row)
	return &out, nil
}

// Put stores s as is, keeping its id and trending flag. Used to seed
// fixtures.
func (r *SpotRepository) Put(s spot.Spot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now()
	}
	r.rows[s.ID] = cloneSpot(s)
}

func (r *SpotRepository) Update(_ context.Context, s *spot.Spot) (*spot.Spot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[s.ID]
	if !ok {
		return nil, spot.ErrNotFound
	}

	row := cloneSpot(*s)
	row.CreatedBy = current.CreatedBy
	row.CreatedAt = current.CreatedAt
	row.ReviewCount = current.ReviewCount
	row.Trending = current.Trending
	r.rows[row.ID] = row

	out := cloneSpot(row)
	return &out, nil
}

func (r *SpotRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return spot.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func cloneSpots(in []spot.Spot) []spot.Spot {
	out := make([]spot.Spot, len(in))
	for i := range in {
		out[i] = cloneSpot(in[i])
	}
	return out
}

func cloneSpot(s spot.Spot) spot.Spot {
	if c := s.Location.Coordinates; c.Lat != nil || c.Lng != nil {
		var coords spot.Coordinates
		if c.Lat != nil {
			lat := *c.Lat
			coords.Lat = &lat
		}
		if c.Lng != nil {
			lng := *c.Lng
			coords.Lng = &lng
		}
		s.Location.Coordinates = coords
	}
	s.Author = nil
	return s
}
