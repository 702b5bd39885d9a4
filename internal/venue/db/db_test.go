package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"ms-booking/internal/database"
	"ms-booking/internal/database/migrations"
	"ms-booking/internal/models"
	"ms-booking/internal/venue/db"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	database.RegisterModels(bunDB)
	require.NoError(t, migrations.Bootstrap(context.Background(), bunDB))

	t.Cleanup(func() { bunDB.Close() })
	return &db.DB{Bun: bunDB}, bunDB
}

func TestFindVenueByNaturalKey(t *testing.T) {
	venueDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	seeded := &models.Venue{Name: "Jazz House", City: "Austin", State: "TX"}
	_, err := bunDB.NewInsert().Model(seeded).Exec(ctx)
	require.NoError(t, err)

	found, err := venueDB.FindVenueByNaturalKey(ctx, "Jazz House", "Austin", "TX")
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, seeded.ID, found.ID)

	// The natural key is case-sensitive and exact.
	miss, err := venueDB.FindVenueByNaturalKey(ctx, "jazz house", "Austin", "TX")
	assert.NoError(t, err)
	assert.Nil(t, miss)

	miss, err = venueDB.FindVenueByNaturalKey(ctx, "Jazz House", "Austin", "OR")
	assert.NoError(t, err)
	assert.Nil(t, miss)
}

func TestSearchVenuesByName(t *testing.T) {
	venueDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	venues := []models.Venue{
		{Name: "The Jazz House", City: "Austin", State: "TX"},
		{Name: "JAZZHOLE", City: "Portland", State: "OR"},
		{Name: "Rock Cellar", City: "Austin", State: "TX"},
	}
	_, err := bunDB.NewInsert().Model(&venues).Exec(ctx)
	require.NoError(t, err)

	matches, err := venueDB.SearchVenuesByName(ctx, "jazz")
	assert.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "The Jazz House", matches[0].Name)
	assert.Equal(t, "JAZZHOLE", matches[1].Name)
}

func TestAttachGenresRejectsDuplicates(t *testing.T) {
	venueDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	v := &models.Venue{Name: "Jazz House", City: "Austin", State: "TX"}
	_, err := bunDB.NewInsert().Model(v).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, venueDB.AttachGenres(ctx, v.ID, []int64{3, 11}))
	// Resubmitting genre 3 must not produce a second association row.
	require.NoError(t, venueDB.AttachGenres(ctx, v.ID, []int64{3}))

	count, err := bunDB.NewSelect().
		Model((*models.VenueGenre)(nil)).
		Where("venue_id = ?", v.ID).
		Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGetVenueByIDLoadsRelations(t *testing.T) {
	venueDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	v := &models.Venue{Name: "Jazz House", City: "Austin", State: "TX"}
	_, err := bunDB.NewInsert().Model(v).Exec(ctx)
	require.NoError(t, err)

	a := &models.Artist{Name: "The Band"}
	_, err = bunDB.NewInsert().Model(a).Exec(ctx)
	require.NoError(t, err)

	s := &models.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: time.Date(2024, 7, 4, 21, 0, 0, 0, time.UTC)}
	_, err = bunDB.NewInsert().Model(s).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, venueDB.AttachGenres(ctx, v.ID, []int64{11}))

	loaded, err := venueDB.GetVenueByID(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Genres, 1)
	assert.Equal(t, "Jazz", loaded.Genres[0].Name)
	require.Len(t, loaded.Shows, 1)
	require.NotNil(t, loaded.Shows[0].Artist)
	assert.Equal(t, "The Band", loaded.Shows[0].Artist.Name)

	_, err = venueDB.GetVenueByID(ctx, 9999)
	assert.Error(t, err)
}

func TestDeleteVenueCascades(t *testing.T) {
	venueDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	v := &models.Venue{Name: "Jazz House", City: "Austin", State: "TX"}
	_, err := bunDB.NewInsert().Model(v).Exec(ctx)
	require.NoError(t, err)

	a := &models.Artist{Name: "The Band"}
	_, err = bunDB.NewInsert().Model(a).Exec(ctx)
	require.NoError(t, err)

	s := &models.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: time.Now().Add(24 * time.Hour)}
	_, err = bunDB.NewInsert().Model(s).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, venueDB.AttachGenres(ctx, v.ID, []int64{3}))
	require.NoError(t, venueDB.DeleteVenue(ctx, v.ID))

	showCount, err := bunDB.NewSelect().Model((*models.Show)(nil)).Where("venue_id = ?", v.ID).Count(ctx)
	assert.NoError(t, err)
	assert.Zero(t, showCount)

	assocCount, err := bunDB.NewSelect().Model((*models.VenueGenre)(nil)).Where("venue_id = ?", v.ID).Count(ctx)
	assert.NoError(t, err)
	assert.Zero(t, assocCount)

	// The artist survives its venue.
	artistCount, err := bunDB.NewSelect().Model((*models.Artist)(nil)).Where("id = ?", a.ID).Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, artistCount)
}
