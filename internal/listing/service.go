package listing

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/ownership"
	"github.com/redmonkez12/roomboom-api/internal/query"
	"github.com/redmonkez12/roomboom-api/internal/user"
)

const DefaultFeaturedLimit = 6

// HostLookup resolves host ids to their public profiles
type HostLookup interface {
	GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Summary, error)
}

// Service implements listing use cases
type Service struct {
	repo  Repository
	hosts HostLookup
}

func NewService(repo Repository, hosts HostLookup) *Service {
	return &Service{repo: repo, hosts: hosts}
}

// List returns one filtered page of available listings
func (s *Service) List(ctx context.Context, f query.ListingFilter) (query.Result[Listing], error) {
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return query.Result[Listing]{}, err
	}
	if err := s.attachHosts(ctx, items); err != nil {
		return query.Result[Listing]{}, err
	}
	return query.NewResult(items, total, f.Page), nil
}

func (s *Service) Featured(ctx context.Context, limit int) ([]Listing, error) {
	items, err := s.repo.Featured(ctx, limit)
	if err != nil {
		return nil, err
	}
	if err := s.attachHosts(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := []Listing{*l}
	if err := s.attachHosts(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// GetMany returns the listings that still exist among ids
func (s *Service) GetMany(ctx context.Context, ids []uuid.UUID) ([]Listing, error) {
	return s.repo.GetByIDs(ctx, ids)
}

// Exists reports whether a listing with id is stored
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Create stores a new listing hosted by hostID
func (s *Service) Create(ctx context.Context, hostID uuid.UUID, req CreateRequest) (*Listing, error) {
	l := newListing(req)
	if err := validate(l, req.Price != nil); err != nil {
		return nil, err
	}
	l.HostID = hostID

	return s.repo.Create(ctx, l)
}

// Update applies a partial update after checking that principal hosts the
// listing. Nothing is written when the check fails.
func (s *Service) Update(ctx context.Context, principal, id uuid.UUID, req UpdateRequest) (*Listing, error) {
	l, err := s.authorize(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	req.apply(l)
	if err := validate(l, true); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, l)
}

// Delete removes a listing after checking that principal hosts it
func (s *Service) Delete(ctx context.Context, principal, id uuid.UUID) error {
	if _, err := s.authorize(ctx, principal, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) authorize(ctx context.Context, principal, id uuid.UUID) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var owner uuid.UUID
	if l != nil {
		owner = l.HostID
	}

	switch ownership.Authorize(principal, owner, l != nil) {
	case ownership.NotFound:
		return nil, ErrNotFound
	case ownership.Forbidden:
		return nil, ownership.Forbidden.Err()
	}
	return l, nil
}

func (s *Service) attachHosts(ctx context.Context, items []Listing) error {
	if s.hosts == nil || len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, l := range items {
		if l.HostID != uuid.Nil {
			ids = append(ids, l.HostID)
		}
	}

	hosts, err := s.hosts.GetSummaries(ctx, ids)
	if err != nil {
		return err
	}

	for i := range items {
		if h, ok := hosts[items[i].HostID]; ok {
			items[i].Host = &h
		}
	}
	return nil
}
