package listing

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

var ErrNotFound = fmt.Errorf("listing %w", apperr.ErrNotFound)

var tracer = otel.Tracer("roomboom/listing/repository")

// Repository is the storage contract for listings. List must compute its
// total with the same filter as the returned page.
type Repository interface {
	List(ctx context.Context, f query.ListingFilter) ([]Listing, int, error)
	Featured(ctx context.Context, limit int) ([]Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Listing, error)
	Create(ctx context.Context, l *Listing) (*Listing, error)
	Update(ctx context.Context, l *Listing) (*Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresRepository stores listings with bun
type PostgresRepository struct {
	db     bun.IDB
	search search.Postgres
}

func NewPostgresRepository(db bun.IDB) *PostgresRepository {
	return &PostgresRepository{db: db, search: search.NewPostgres()}
}

// applyFilter adds every predicate of f to q. It is shared by the count and
// page queries so both see the same rows.
func (r *PostgresRepository) applyFilter(q *bun.SelectQuery, f query.ListingFilter) *bun.SelectQuery {
	q = q.Where("available = ?", true)

	if f.City != "" {
		q = q.Where("city ILIKE ?", query.ContainsPattern(f.City))
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		q = q.Where("bedrooms = ?", *f.Bedrooms)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}

	return r.search.Filter(q, search.KindListing, f.Search)
}

// List returns one page of available listings and the total match count
func (r *PostgresRepository) List(ctx context.Context, f query.ListingFilter) ([]Listing, int, error) {
	ctx, span := tracer.Start(ctx, "ListListings",
		trace.WithAttributes(
			attribute.String("search", f.Search),
			attribute.Int("page", f.Page.Page),
			attribute.Int("limit", f.Page.Limit),
		),
	)
	defer span.End()

	total, err := r.applyFilter(r.db.NewSelect().Model((*database.Listing)(nil)), f).Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to count listings")
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	window := query.Paginate(f.Page, total)
	if window.Skip >= total {
		return []Listing{}, total, nil
	}

	var rows []database.Listing
	err = r.applyFilter(r.db.NewSelect().Model(&rows), f).
		OrderExpr("featured DESC, created_at DESC, id DESC").
		Limit(window.Limit).
		Offset(window.Skip).
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list listings")
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}

	span.SetAttributes(attribute.Int("total", total), attribute.Int("count", len(rows)))
	return mapDBListings(rows), total, nil
}

// Featured returns featured, available listings ranked by rating
func (r *PostgresRepository) Featured(ctx context.Context, limit int) ([]Listing, error) {
	var rows []database.Listing
	err := r.db.NewSelect().
		Model(&rows).
		Where("featured = ?", true).
		Where("available = ?", true).
		OrderExpr("rating DESC, review_count DESC, id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured listings: %w", err)
	}
	return mapDBListings(rows), nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	row := new(database.Listing)
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return mapDBListing(row), nil
}

// GetByIDs returns the listings found among ids, newest first
func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Listing, error) {
	if len(ids) == 0 {
		return []Listing{}, nil
	}

	var rows []database.Listing
	err := r.db.NewSelect().
		Model(&rows).
		Where("id IN (?)", bun.In(ids)).
		OrderExpr("created_at DESC, id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get listings by ids: %w", err)
	}
	return mapDBListings(rows), nil
}

func (r *PostgresRepository) Create(ctx context.Context, l *Listing) (*Listing, error) {
	row := mapListingToDB(l)
	row.ID = uuid.Nil

	err := r.db.NewInsert().
		Model(row).
		ExcludeColumn("id", "created_at", "rating", "review_count", "featured").
		Returning("*").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return mapDBListing(row), nil
}

// Update writes the mutable columns of l. The host never changes.
func (r *PostgresRepository) Update(ctx context.Context, l *Listing) (*Listing, error) {
	row := mapListingToDB(l)

	res, err := r.db.NewUpdate().
		Model(row).
		ExcludeColumn("id", "host_id", "created_at", "rating", "review_count", "featured").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return mapDBListing(row), nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*database.Listing)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func mapDBListings(rows []database.Listing) []Listing {
	out := make([]Listing, len(rows))
	for i := range rows {
		out[i] = *mapDBListing(&rows[i])
	}
	return out
}

func mapDBListing(row *database.Listing) *Listing {
	l := &Listing{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		PropertyType: row.PropertyType,
		Location: Location{
			Address: row.Address,
			City:    row.City,
			State:   row.State,
			Country: row.Country,
			ZipCode: row.ZipCode,
		},
		Price:       row.Price,
		Bedrooms:    row.Bedrooms,
		Bathrooms:   row.Bathrooms,
		Sqft:        row.Sqft,
		Amenities:   row.Amenities,
		Images:      row.Images,
		MainImage:   row.MainImage,
		Rating:      row.Rating,
		ReviewCount: row.ReviewCount,
		Featured:    row.Featured,
		Available:   row.Available,
		HostID:      row.HostID,
		CreatedAt:   row.CreatedAt,
	}
	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	return l
}

func mapListingToDB(l *Listing) *database.Listing {
	return &database.Listing{
		ID:           l.ID,
		Title:        l.Title,
		Description:  l.Description,
		PropertyType: l.PropertyType,
		Address:      l.Location.Address,
		City:         l.Location.City,
		State:        l.Location.State,
		Country:      l.Location.Country,
		ZipCode:      l.Location.ZipCode,
		Price:        l.Price,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		Sqft:         l.Sqft,
		Amenities:    l.Amenities,
		Images:       l.Images,
		MainImage:    l.MainImage,
		Rating:       l.Rating,
		ReviewCount:  l.ReviewCount,
		Featured:     l.Featured,
		Available:    l.Available,
		HostID:       l.HostID,
		CreatedAt:    l.CreatedAt,
	}
}
