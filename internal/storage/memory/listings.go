package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/listing"
	"github.com/redmonkez12/roomboom-api/internal/query"
	"github.com/redmonkez12/roomboom-api/internal/search"
)

type ListingRepository struct {
	mu     sync.RWMutex
	rows   map[uuid.UUID]listing.Listing
	search search.Memory
	now    Clock
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{
		rows:   make(map[uuid.UUID]listing.Listing),
		search: search.NewMemory(),
		now:    defaultClock,
	}
}

func (r *ListingRepository) matches(l *listing.Listing, f query.ListingFilter) bool {
	switch {
	case !l.Available:
		return false
	case f.City != "" && !strings.Contains(strings.ToLower(l.Location.City), strings.ToLower(f.City)):
		return false
	case f.MinPrice != nil && l.Price < *f.MinPrice:
		return false
	case f.MaxPrice != nil && l.Price > *f.MaxPrice:
		return false
	case f.Bedrooms != nil && l.Bedrooms != *f.Bedrooms:
		return false
	case f.PropertyType != "" && l.PropertyType != f.PropertyType:
		return false
	}
	return r.search.Match(f.Search, l.Title, l.Description, l.Location.City)
}

func (r *ListingRepository) List(_ context.Context, f query.ListingFilter) ([]listing.Listing, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []listing.Listing
	for _, l := range r.rows {
		if r.matches(&l, f) {
			matched = append(matched, l)
		}
	}

	slices.SortFunc(matched, func(a, b listing.Listing) int {
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})

	total := len(matched)
	window := query.Paginate(f.Page, total)
	if window.Skip >= total {
		return []listing.Listing{}, total, nil
	}
	end := min(window.Skip+window.Limit, total)

	return cloneListings(matched[window.Skip:end]), total, nil
}

func (r *ListingRepository) Featured(_ context.Context, limit int) ([]listing.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var featured []listing.Listing
	for _, l := range r.rows {
		if l.Featured && l.Available {
			featured = append(featured, l)
		}
	}

	slices.SortFunc(featured, func(a, b listing.Listing) int {
		return cmp.Or(
			cmp.Compare(b.Rating, a.Rating),
			cmp.Compare(b.ReviewCount, a.ReviewCount),
			newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID),
		)
	})

	return cloneListings(featured[:min(limit, len(featured))]), nil
}

func (r *ListingRepository) GetByID(_ context.Context, id uuid.UUID) (*listing.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.rows[id]
	if !ok {
		return nil, listing.ErrNotFound
	}
	l = cloneListing(l)
	return &l, nil
}

func (r *ListingRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]listing.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []listing.Listing{}
	for _, id := range ids {
		if l, ok := r.rows[id]; ok {
			out = append(out, cloneListing(l))
		}
	}
	slices.SortFunc(out, func(a, b listing.Listing) int {
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out, nil
}

func (r *ListingRepository) Create(_ context.Context, l *listing.Listing) (*listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := cloneListing(*l)
	row.ID = uuid.New()
	row.CreatedAt = r.now()
	row.Rating = 0
	row.ReviewCount = 0
	row.Featured = false
	r.rows[row.ID] = row

	out := cloneListing(row)
	return &out, nil
}

// Put stores l as is, keeping its id, rating and featured flag. Used to
// seed fixtures.
func (r *ListingRepository) Put(l listing.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = r.now()
	}
	r.rows[l.ID] = cloneListing(l)
}

func (r *ListingRepository) Update(_ context.Context, l *listing.Listing) (*listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[l.ID]
	if !ok {
		return nil, listing.ErrNotFound
	}

	row := cloneListing(*l)
	row.HostID = current.HostID
	row.CreatedAt = current.CreatedAt
	row.Rating = current.Rating
	row.ReviewCount = current.ReviewCount
	row.Featured = current.Featured
	r.rows[row.ID] = row

	out := cloneListing(row)
	return &out, nil
}

func (r *ListingRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return listing.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func cloneListings(in []listing.Listing) []listing.Listing {
	out := make([]listing.Listing, len(in))
	for i := range in {
		out[i] = cloneListing(in[i])
	}
	return out
}

func cloneListing(l listing.Listing) listing.Listing {
	l.Amenities = slices.Clone(l.Amenities)
	l.Images = slices.Clone(l.Images)
	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	if l.Sqft != nil {
		sqft := *l.Sqft
		l.Sqft = &sqft
	}
	l.Host = nil
	return l
}
