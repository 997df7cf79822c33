package spot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
	"github.com/redmonkez12/roomboom-api/internal/database"
	"github.com/redmonkez12/roomboom-api/internal/query"
)

func setupSpotMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewPostgresRepository(database.NewBunDB(sqlDB)), mock
}

func TestPostgresRepository_List(t *testing.T) {
	repo, mock := setupSpotMock(t)
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	minRating := 4.5

	mock.ExpectQuery(`SELECT count\(\*\) FROM "discovery_spots" AS "s" WHERE .*tag = 'Food'.*city ILIKE '%goa%'.*rating >= 4\.5`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))
	mock.ExpectQuery(`SELECT .* FROM "discovery_spots" AS "s" WHERE .*tag = 'Food'.*ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 20`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "tag", "tag_color", "city", "rating", "created_at"}).
			AddRow(id.String(), "Fish Thali", "Food", "bg-red-400", "Goa", 4.7, now))

	items, total, err := repo.List(context.Background(), query.SpotFilter{
		Tag:       "Food",
		City:      "goa",
		MinRating: &minRating,
		Page:      query.Page{Page: 2, Limit: query.DefaultSpotLimit},
	})
	require.NoError(t, err)
	assert.Equal(t, 21, total)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "Goa", items[0].Location.City)
	assert.Equal(t, "bg-red-400", items[0].TagColor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := setupSpotMock(t)

	mock.ExpectQuery(`SELECT .* FROM "discovery_spots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Trending(t *testing.T) {
	repo, mock := setupSpotMock(t)

	mock.ExpectQuery(`SELECT .* FROM "discovery_spots" AS "s" WHERE \(trending = TRUE\) ORDER BY rating DESC, review_count DESC, id DESC LIMIT 4`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "trending"}).
			AddRow(uuid.NewString(), "Sunset Point", true))

	items, err := repo.Trending(context.Background(), DefaultTrendingLimit)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Trending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Delete_NotFound(t *testing.T) {
	repo, mock := setupSpotMock(t)

	mock.ExpectExec(`DELETE FROM "discovery_spots"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
