package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-booking/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ListShows fetches all shows with their venue and artist loaded, in
// start-time order.
func (d *DB) ListShows(ctx context.Context) ([]*models.Show, error) {
	var shows []*models.Show
	err := d.Bun.NewSelect().
		Model(&shows).
		Relation("Venue").
		Relation("Artist").
		Order("s.start_time").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return shows, nil
}

// GetVenueByID checks the venue referent. Only existence matters here, so
// no relations are loaded.
func (d *DB) GetVenueByID(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("v.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// GetArtistByID checks the artist referent.
func (d *DB) GetArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Where("a.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// InsertShow inserts a show row. A duplicate (venue, artist, start_time)
// violates uq_show_slot and surfaces as an error.
func (d *DB) InsertShow(ctx context.Context, show *models.Show) error {
	_, err := d.Bun.NewInsert().Model(show).Exec(ctx)
	return err
}
