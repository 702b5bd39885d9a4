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

// GetArtistByID fetches one artist with genres and shows (each show
// carrying its venue) eagerly loaded.
func (d *DB) GetArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Where("a.id = ?", id).
		Relation("Genres").
		Relation("Shows").
		Relation("Shows.Venue").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// ListArtists fetches all artists. The listing page needs id and name
// only, so no relations are loaded.
func (d *DB) ListArtists(ctx context.Context) ([]*models.Artist, error) {
	var artists []*models.Artist
	err := d.Bun.NewSelect().
		Model(&artists).
		Order("a.id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return artists, nil
}

// SearchArtistsByName matches the term as a case-insensitive substring of
// the artist name.
func (d *DB) SearchArtistsByName(ctx context.Context, term string) ([]*models.Artist, error) {
	var artists []*models.Artist
	err := d.Bun.NewSelect().
		Model(&artists).
		Where("LOWER(a.name) LIKE '%' || LOWER(?) || '%'", term).
		Relation("Shows").
		Order("a.id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return artists, nil
}

// FindArtistByName looks up an artist by exact name; a miss returns
// (nil, nil). The name is the artist natural key, weaker than the venue's
// composite one.
func (d *DB) FindArtistByName(ctx context.Context, name string) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Where("a.name = ?", name).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// InsertArtist inserts a new artist; the generated id is written back
// onto the model.
func (d *DB) InsertArtist(ctx context.Context, artist *models.Artist) error {
	_, err := d.Bun.NewInsert().Model(artist).Exec(ctx)
	return err
}

// UpdateArtist overwrites only the named columns.
func (d *DB) UpdateArtist(ctx context.Context, artist *models.Artist, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	_, err := d.Bun.NewUpdate().
		Model(artist).
		Column(columns...).
		Where("id = ?", artist.ID).
		Exec(ctx)
	return err
}

// AttachGenres appends genre associations; the composite primary key on
// artist_genres rejects duplicates.
func (d *DB) AttachGenres(ctx context.Context, artistID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	rows := make([]models.ArtistGenre, len(genreIDs))
	for i, genreID := range genreIDs {
		rows[i] = models.ArtistGenre{ArtistID: artistID, GenreID: genreID}
	}
	_, err := d.Bun.NewInsert().
		Model(&rows).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return err
}
