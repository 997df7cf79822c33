package spot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
	"github.com/redmonkez12/roomboom-api/internal/database"
	"github.com/redmonkez12/roomboom-api/internal/query"
	"github.com/redmonkez12/roomboom-api/internal/search"
)

var ErrNotFound = fmt.Errorf("spot %w", apperr.ErrNotFound)

var tracer = otel.Tracer("roomboom/spot/repository")

// Repository is the storage contract for discovery spots
type Repository interface {
	List(ctx context.Context, f query.SpotFilter) ([]Spot, int, error)
	Trending(ctx context.Context, limit int) ([]Spot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Spot, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Spot, error)
	Create(ctx context.Context, s *Spot) (*Spot, error)
	Update(ctx context.Context, s *Spot) (*Spot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresRepository struct {
	db     bun.IDB
	search search.Postgres
}

func NewPostgresRepository(db bun.IDB) *PostgresRepository {
	return &PostgresRepository{db: db, search: search.NewPostgres()}
}

func (r *PostgresRepository) applyFilter(q *bun.SelectQuery, f query.SpotFilter) *bun.SelectQuery {
	if f.Tag != "" {
		q = q.Where("tag = ?", f.Tag)
	}
	if f.City != "" {
		q = q.Where("city ILIKE ?", query.ContainsPattern(f.City))
	}
	if f.MinRating != nil {
		q = q.Where("rating >= ?", *f.MinRating)
	}
	return r.search.Filter(q, search.KindSpot, f.Search)
}

func (r *PostgresRepository) List(ctx context.Context, f query.SpotFilter) ([]Spot, int, error) {
	ctx, span := tracer.Start(ctx, "ListSpots",
		trace.WithAttributes(
			attribute.String("tag", f.Tag),
			attribute.String("search", f.Search),
			attribute.Int("page", f.Page.Page),
			attribute.Int("limit", f.Page.Limit),
		),
	)
	defer span.End()

	total, err := r.applyFilter(r.db.NewSelect().Model((*database.Spot)(nil)), f).Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to count spots")
		return nil, 0, fmt.Errorf("failed to count spots: %w", err)
	}

	window := query.Paginate(f.Page, total)
	if window.Skip >= total {
		return []Spot{}, total, nil
	}

	var rows []database.Spot
	err = r.applyFilter(r.db.NewSelect().Model(&rows), f).
		OrderExpr("created_at DESC, id DESC").
		Limit(window.Limit).
		Offset(window.Skip).
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list spots")
		return nil, 0, fmt.Errorf("failed to list spots: %w", err)
	}

	span.SetAttributes(attribute.Int("total", total), attribute.Int("count", len(rows)))
	return mapDBSpots(rows), total, nil
}

// Trending returns spots flagged as trending ranked by rating
func (r *PostgresRepository) Trending(ctx context.Context, limit int) ([]Spot, error) {
	var rows []database.Spot
	err := r.db.NewSelect().
		Model(&rows).
		Where("trending = ?", true).
		OrderExpr("rating DESC, review_count DESC, id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending spots: %w", err)
	}
	return mapDBSpots(rows), nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Spot, error) {
	row := new(database.Spot)
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get spot: %w", err)
	}
	return mapDBSpot(row), nil
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Spot, error) {
	if len(ids) == 0 {
		return []Spot{}, nil
	}

	var rows []database.Spot
	err := r.db.NewSelect().
		Model(&rows).
		Where("id IN (?)", bun.In(ids)).
		OrderExpr("created_at DESC, id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get spots by ids: %w", err)
	}
	return mapDBSpots(rows), nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *Spot) (*Spot, error) {
	row := mapSpotToDB(s)

	err := r.db.NewInsert().
		Model(row).
		ExcludeColumn("id", "created_at", "review_count", "trending").
		Returning("*").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create spot: %w", err)
	}
	return mapDBSpot(row), nil
}

// Update writes the mutable columns of s. The author never changes.
func (r *PostgresRepository) Update(ctx context.Context, s *Spot) (*Spot, error) {
	row := mapSpotToDB(s)

	res, err := r.db.NewUpdate().
		Model(row).
		ExcludeColumn("id", "created_by", "created_at", "review_count", "trending").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update spot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return mapDBSpot(row), nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*database.Spot)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete spot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func mapDBSpots(rows []database.Spot) []Spot {
	out := make([]Spot, len(rows))
	for i := range rows {
		out[i] = *mapDBSpot(&rows[i])
	}
	return out
}

func mapDBSpot(row *database.Spot) *Spot {
	s := &Spot{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Tag:         row.Tag,
		TagColor:    row.TagColor,
		Location: Location{
			City:        row.City,
			State:       row.State,
			Country:     row.Country,
			Coordinates: Coordinates{Lat: row.Lat, Lng: row.Lng},
		},
		Image:       row.Image,
		Rating:      row.Rating,
		ReviewCount: row.ReviewCount,
		Trending:    row.Trending,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt,
	}
	if s.TagColor == "" {
		s.TagColor = defaultTagColor
	}
	return s
}

func mapSpotToDB(s *Spot) *database.Spot {
	return &database.Spot{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Tag:         s.Tag,
		TagColor:    s.TagColor,
		City:        s.Location.City,
		State:       s.Location.State,
		Country:     s.Location.Country,
		Lat:         s.Location.Coordinates.Lat,
		Lng:         s.Location.Coordinates.Lng,
		Image:       s.Image,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		Trending:    s.Trending,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
	}
}
