package favorites

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/listing"
	"github.com/redmonkez12/roomboom-api/internal/spot"
)

// SpotCatalog is the part of the spot service favorites depend on
type SpotCatalog interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]spot.Spot, error)
}

// ListingCatalog is the part of the listing service favorites depend on
type ListingCatalog interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]listing.Listing, error)
}

// IDs are a user's favorite ids grouped by kind
type IDs struct {
	Spots    []uuid.UUID `json:"spots"`
	Listings []uuid.UUID `json:"listings"`
}

// List is a user's favorites with the resources loaded
type List struct {
	Spots    []spot.Spot       `json:"spots"`
	Listings []listing.Listing `json:"listings"`
}

type Service struct {
	store    Store
	spots    SpotCatalog
	listings ListingCatalog
}

func NewService(store Store, spots SpotCatalog, listings ListingCatalog) *Service {
	return &Service{store: store, spots: spots, listings: listings}
}

// Add marks a resource as a favorite. The resource must exist; adding it
// twice leaves a single membership.
func (s *Service) Add(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) error {
	exists, err := s.exists(ctx, kind, id)
	if err != nil {
		return err
	}
	if !exists {
		if kind == KindSpot {
			return spot.ErrNotFound
		}
		return listing.ErrNotFound
	}

	return s.store.Add(ctx, userID, kind, id)
}

// Remove drops a favorite. Removing a missing favorite is not an error.
func (s *Service) Remove(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) error {
	return s.store.Remove(ctx, userID, kind, id)
}

func (s *Service) Check(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) (bool, error) {
	return s.store.Contains(ctx, userID, kind, id)
}

// IDs returns the favorite ids of userID
func (s *Service) IDs(ctx context.Context, userID uuid.UUID) (IDs, error) {
	spots, err := s.store.Members(ctx, userID, KindSpot)
	if err != nil {
		return IDs{}, err
	}
	listings, err := s.store.Members(ctx, userID, KindListing)
	if err != nil {
		return IDs{}, err
	}
	return IDs{Spots: spots, Listings: listings}, nil
}

// List loads the favorite resources of userID. Favorites whose resource
// has since been deleted are left out.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (*List, error) {
	ids, err := s.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	spots, err := s.spots.GetMany(ctx, ids.Spots)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite spots: %w", err)
	}
	listings, err := s.listings.GetMany(ctx, ids.Listings)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite listings: %w", err)
	}

	return &List{Spots: spots, Listings: listings}, nil
}

func (s *Service) exists(ctx context.Context, kind Kind, id uuid.UUID) (bool, error) {
	if kind == KindSpot {
		return s.spots.Exists(ctx, id)
	}
	return s.listings.Exists(ctx, id)
}

// FavoriteIDs is IDs split into its two id lists
func (s *Service) FavoriteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, []uuid.UUID, error) {
	ids, err := s.IDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return ids.Spots, ids.Listings, nil
}
