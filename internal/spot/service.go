package spot

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/ownership"
	"github.com/redmonkez12/roomboom-api/internal/query"
	"github.com/redmonkez12/roomboom-api/internal/user"
)

const DefaultTrendingLimit = 4

// AuthorLookup resolves author ids to their public profiles
type AuthorLookup interface {
	GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Summary, error)
}

type Service struct {
	repo    Repository
	authors AuthorLookup
}

func NewService(repo Repository, authors AuthorLookup) *Service {
	return &Service{repo: repo, authors: authors}
}

func (s *Service) List(ctx context.Context, f query.SpotFilter) (query.Result[Spot], error) {
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return query.Result[Spot]{}, err
	}
	if err := s.attachAuthors(ctx, items); err != nil {
		return query.Result[Spot]{}, err
	}
	return query.NewResult(items, total, f.Page), nil
}

func (s *Service) Trending(ctx context.Context, limit int) ([]Spot, error) {
	items, err := s.repo.Trending(ctx, limit)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Spot, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := []Spot{*sp}
	if err := s.attachAuthors(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *Service) GetMany(ctx context.Context, ids []uuid.UUID) ([]Spot, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Create stores a new spot authored by authorID
func (s *Service) Create(ctx context.Context, authorID uuid.UUID, req CreateRequest) (*Spot, error) {
	sp := newSpot(req)
	if err := validate(sp); err != nil {
		return nil, err
	}
	sp.CreatedBy = authorID

	return s.repo.Create(ctx, sp)
}

// Update applies a partial update after checking that principal authored
// the spot
func (s *Service) Update(ctx context.Context, principal, id uuid.UUID, req UpdateRequest) (*Spot, error) {
	sp, err := s.authorize(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	req.apply(sp)
	if err := validate(sp); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, sp)
}

func (s *Service) Delete(ctx context.Context, principal, id uuid.UUID) error {
	if _, err := s.authorize(ctx, principal, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) authorize(ctx context.Context, principal, id uuid.UUID) (*Spot, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var owner uuid.UUID
	if sp != nil {
		owner = sp.CreatedBy
	}

	switch ownership.Authorize(principal, owner, sp != nil) {
	case ownership.NotFound:
		return nil, ErrNotFound
	case ownership.Forbidden:
		return nil, ownership.Forbidden.Err()
	}
	return sp, nil
}

func (s *Service) attachAuthors(ctx context.Context, items []Spot) error {
	if s.authors == nil || len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, sp := range items {
		if sp.CreatedBy != uuid.Nil {
			ids = append(ids, sp.CreatedBy)
		}
	}

	authors, err := s.authors.GetSummaries(ctx, ids)
	if err != nil {
		return err
	}

	for i := range items {
		if a, ok := authors[items[i].CreatedBy]; ok {
			items[i].Author = &a
		}
	}
	return nil
}
