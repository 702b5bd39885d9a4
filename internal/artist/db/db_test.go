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

	"ms-booking/internal/artist/db"
	"ms-booking/internal/database"
	"ms-booking/internal/database/migrations"
	"ms-booking/internal/models"
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

func TestFindArtistByName(t *testing.T) {
	artistDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	seeded := &models.Artist{Name: "The Band", City: "Portland", State: "OR"}
	_, err := bunDB.NewInsert().Model(seeded).Exec(ctx)
	require.NoError(t, err)

	found, err := artistDB.FindArtistByName(ctx, "The Band")
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, seeded.ID, found.ID)

	miss, err := artistDB.FindArtistByName(ctx, "the band")
	assert.NoError(t, err)
	assert.Nil(t, miss)
}

func TestSearchArtistsByName(t *testing.T) {
	artistDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	artists := []models.Artist{
		{Name: "The Band"},
		{Name: "bandwagon"},
		{Name: "Solo Act"},
	}
	_, err := bunDB.NewInsert().Model(&artists).Exec(ctx)
	require.NoError(t, err)

	matches, err := artistDB.SearchArtistsByName(ctx, "BAND")
	assert.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "The Band", matches[0].Name)
	assert.Equal(t, "bandwagon", matches[1].Name)
}

func TestAttachGenresRejectsDuplicates(t *testing.T) {
	artistDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	a := &models.Artist{Name: "The Band"}
	_, err := bunDB.NewInsert().Model(a).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, artistDB.AttachGenres(ctx, a.ID, []int64{3, 11}))
	require.NoError(t, artistDB.AttachGenres(ctx, a.ID, []int64{11, 15}))

	count, err := bunDB.NewSelect().
		Model((*models.ArtistGenre)(nil)).
		Where("artist_id = ?", a.ID).
		Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestGetArtistByIDLoadsRelations(t *testing.T) {
	artistDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	a := &models.Artist{Name: "The Band"}
	_, err := bunDB.NewInsert().Model(a).Exec(ctx)
	require.NoError(t, err)

	v := &models.Venue{Name: "Jazz House", City: "Austin", State: "TX"}
	_, err = bunDB.NewInsert().Model(v).Exec(ctx)
	require.NoError(t, err)

	s := &models.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: time.Date(2024, 7, 4, 21, 0, 0, 0, time.UTC)}
	_, err = bunDB.NewInsert().Model(s).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, artistDB.AttachGenres(ctx, a.ID, []int64{11}))

	loaded, err := artistDB.GetArtistByID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Genres, 1)
	assert.Equal(t, "Jazz", loaded.Genres[0].Name)
	require.Len(t, loaded.Shows, 1)
	require.NotNil(t, loaded.Shows[0].Venue)
	assert.Equal(t, "Jazz House", loaded.Shows[0].Venue.Name)

	_, err = artistDB.GetArtistByID(ctx, 9999)
	assert.Error(t, err)
}

func TestUpdateArtistTouchesOnlyNamedColumns(t *testing.T) {
	artistDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	a := &models.Artist{Name: "The Band", City: "Portland", Phone: "503-555-0100"}
	_, err := bunDB.NewInsert().Model(a).Exec(ctx)
	require.NoError(t, err)

	a.Phone = "503-555-0199"
	a.City = "changed in memory only"
	require.NoError(t, artistDB.UpdateArtist(ctx, a, []string{"phone"}))

	var stored models.Artist
	err = bunDB.NewSelect().Model(&stored).Where("a.id = ?", a.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "503-555-0199", stored.Phone)
	assert.Equal(t, "Portland", stored.City)
}
