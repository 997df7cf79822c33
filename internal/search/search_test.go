package search

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/redmonkez12/roomboom-api/internal/database"
)

func newBunDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)

	db := bun.NewDB(sqlDB, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgresFilter(t *testing.T) {
	db := newBunDB(t)
	pg := NewPostgres()

	t.Run("spot document", func(t *testing.T) {
		q := pg.Filter(db.NewSelect().Model((*database.Spot)(nil)), KindSpot, "  sunset beach ")

		sql := q.String()
		assert.Contains(t, sql, "to_tsvector('english', title || ' ' || description)")
		assert.Contains(t, sql, "websearch_to_tsquery('english', 'sunset beach')")
	})

	t.Run("listing document includes city", func(t *testing.T) {
		q := pg.Filter(db.NewSelect().Model((*database.Listing)(nil)), KindListing, "loft")

		assert.Contains(t, q.String(), "title || ' ' || description || ' ' || city")
	})

	t.Run("search text is escaped", func(t *testing.T) {
		q := pg.Filter(db.NewSelect().Model((*database.Spot)(nil)), KindSpot, "x'; DROP TABLE users; --")

		assert.Contains(t, q.String(), "'x''; DROP TABLE users; --'")
	})

	t.Run("blank text adds nothing", func(t *testing.T) {
		q := pg.Filter(db.NewSelect().Model((*database.Spot)(nil)), KindSpot, "   ")

		assert.NotContains(t, q.String(), "tsquery")
	})

	t.Run("unknown kind adds nothing", func(t *testing.T) {
		q := pg.Filter(db.NewSelect().Model((*database.Spot)(nil)), Kind("user"), "alice")

		assert.NotContains(t, q.String(), "tsquery")
	})
}

func TestMemoryMatch(t *testing.T) {
	m := NewMemory()

	tests := []struct {
		name   string
		text   string
		fields []string
		want   bool
	}{
		{"blank matches everything", "  ", []string{"anything"}, true},
		{"single term case insensitive", "BEACH", []string{"Sunset Beach", ""}, true},
		{"terms may hit different fields", "loft hubli", []string{"Sunny Loft", "near station", "Hubli"}, true},
		{"every term must match", "loft pune", []string{"Sunny Loft", "Hubli"}, false},
		{"no fields", "loft", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.text, tt.fields...))
		})
	}
}
