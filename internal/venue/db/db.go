package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"ms-booking/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// GetVenueByID fetches one venue with its genres and shows (each show
// carrying its artist) eagerly loaded.
func (d *DB) GetVenueByID(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("v.id = ?", id).
		Relation("Genres").
		Relation("Shows").
		Relation("Shows.Artist").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// ListVenues fetches all venues with their shows, for the grouped listing.
func (d *DB) ListVenues(ctx context.Context) ([]*models.Venue, error) {
	var venues []*models.Venue
	err := d.Bun.NewSelect().
		Model(&venues).
		Relation("Shows").
		Order("v.id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return venues, nil
}

// SearchVenuesByName matches the term as a case-insensitive substring of
// the venue name.
func (d *DB) SearchVenuesByName(ctx context.Context, term string) ([]*models.Venue, error) {
	var venues []*models.Venue
	err := d.Bun.NewSelect().
		Model(&venues).
		Where("LOWER(v.name) LIKE '%' || LOWER(?) || '%'", term).
		Relation("Shows").
		Order("v.id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return venues, nil
}

// FindVenueByNaturalKey looks up the venue identified by the exact
// (name, city, state) tuple. A miss returns (nil, nil).
func (d *DB) FindVenueByNaturalKey(ctx context.Context, name, city, state string) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("v.name = ?", name).
		Where("v.city = ?", city).
		Where("v.state = ?", state).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// InsertVenue inserts a new venue; the generated id is written back onto
// the model.
func (d *DB) InsertVenue(ctx context.Context, venue *models.Venue) error {
	_, err := d.Bun.NewInsert().Model(venue).Exec(ctx)
	return err
}

// UpdateVenue overwrites only the named columns.
func (d *DB) UpdateVenue(ctx context.Context, venue *models.Venue, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	_, err := d.Bun.NewUpdate().
		Model(venue).
		Column(columns...).
		Where("id = ?", venue.ID).
		Exec(ctx)
	return err
}

// AttachGenres appends genre associations. The composite primary key on
// venue_genres makes re-attachment a no-op rather than a duplicate row.
func (d *DB) AttachGenres(ctx context.Context, venueID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	rows := make([]models.VenueGenre, len(genreIDs))
	for i, genreID := range genreIDs {
		rows[i] = models.VenueGenre{VenueID: venueID, GenreID: genreID}
	}
	_, err := d.Bun.NewInsert().
		Model(&rows).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return err
}

// DeleteVenue removes the venue together with its shows and genre
// associations, atomically.
func (d *DB) DeleteVenue(ctx context.Context, id int64) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.Show)(nil)).
			Where("venue_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*models.VenueGenre)(nil)).
			Where("venue_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*models.Venue)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}
