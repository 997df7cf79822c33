package listing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
	"github.com/redmonkez12/roomboom-api/internal/database"
	"github.com/redmonkez12/roomboom-api/internal/query"
)

func setupListingMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewPostgresRepository(database.NewBunDB(sqlDB)), mock
}

func intPtr(v int) *int { return &v }

func TestPostgresRepository_List_PriceRange(t *testing.T) {
	repo, mock := setupListingMock(t)
	id := uuid.New()
	host := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "listings" AS "l" WHERE .*available = TRUE.*price >= 5000.*price <= 20000`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .* FROM "listings" AS "l" WHERE .*price >= 5000.*price <= 20000.*ORDER BY featured DESC, created_at DESC, id DESC LIMIT 12`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "city", "price", "available", "host_id", "created_at"}).
			AddRow(id.String(), "2BHK Flat", "Hubli", 15000, true, host.String(), now))

	items, total, err := repo.List(context.Background(), query.ListingFilter{
		MinPrice: intPtr(5000),
		MaxPrice: intPtr(20000),
		Page:     query.Page{Page: 1, Limit: query.DefaultListingLimit},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, 15000, items[0].Price)
	assert.Equal(t, host, items[0].HostID)
	assert.Equal(t, []string{}, items[0].Amenities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_List_PageBeyondTotal(t *testing.T) {
	repo, mock := setupListingMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "listings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	items, total, err := repo.List(context.Background(), query.ListingFilter{
		Page: query.Page{Page: 5, Limit: 12},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_List_CountError(t *testing.T) {
	repo, mock := setupListingMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "listings"`).
		WillReturnError(errors.New("connection reset"))

	_, _, err := repo.List(context.Background(), query.ListingFilter{Page: query.Page{Page: 1, Limit: 12}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := setupListingMock(t)

	mock.ExpectQuery(`SELECT .* FROM "listings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByIDs_Empty(t *testing.T) {
	repo, mock := setupListingMock(t)

	items, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Update_NotFound(t *testing.T) {
	repo, mock := setupListingMock(t)

	mock.ExpectExec(`UPDATE "listings"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), &Listing{ID: uuid.New(), Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Delete(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		repo, mock := setupListingMock(t)

		mock.ExpectExec(`DELETE FROM "listings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), uuid.New()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := setupListingMock(t)

		mock.ExpectExec(`DELETE FROM "listings"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_List_RecordsSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	repo, mock := setupListingMock(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "listings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT .* FROM "listings" AS "l"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(uuid.New().String(), "Loft"))

	_, _, err := repo.List(context.Background(), query.ListingFilter{
		Search: "loft",
		Page:   query.Page{Page: 1, Limit: 10},
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "listings"`).WillReturnError(errors.New("connection reset"))
	_, _, err = repo.List(context.Background(), query.ListingFilter{Page: query.Page{Page: 1, Limit: 10}})
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "ListListings", ok.Name)
	assert.Equal(t, codes.Unset, ok.Status.Code)
	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range ok.Attributes {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "loft", attrs["search"].AsString())
	assert.Equal(t, int64(3), attrs["total"].AsInt64())
	assert.Equal(t, int64(1), attrs["count"].AsInt64())

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status.Code)
	assert.Equal(t, "failed to count listings", failed.Status.Description)
	require.NotEmpty(t, failed.Events)
	assert.Equal(t, "exception", failed.Events[0].Name)
}
