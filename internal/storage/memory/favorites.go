package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/favorites"
)

type favoriteKey struct {
	user uuid.UUID
	kind favorites.Kind
}

// FavoriteStore keeps favorite sets behind a single mutex, so each toggle
// is one atomic set operation
type FavoriteStore struct {
	mu   sync.RWMutex
	sets map[favoriteKey]map[uuid.UUID]struct{}
}

func NewFavoriteStore() *FavoriteStore {
	return &FavoriteStore{sets: make(map[favoriteKey]map[uuid.UUID]struct{})}
}

func (s *FavoriteStore) Add(_ context.Context, userID uuid.UUID, kind favorites.Kind, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := favoriteKey{user: userID, kind: kind}
	set, ok := s.sets[key]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		s.sets[key] = set
	}
	set[id] = struct{}{}
	return nil
}

func (s *FavoriteStore) Remove(_ context.Context, userID uuid.UUID, kind favorites.Kind, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sets[favoriteKey{user: userID, kind: kind}], id)
	return nil
}

func (s *FavoriteStore) Contains(_ context.Context, userID uuid.UUID, kind favorites.Kind, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sets[favoriteKey{user: userID, kind: kind}][id]
	return ok, nil
}

func (s *FavoriteStore) Members(_ context.Context, userID uuid.UUID, kind favorites.Kind) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.sets[favoriteKey{user: userID, kind: kind}]
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	favorites.SortIDs(ids)
	return ids, nil
}
