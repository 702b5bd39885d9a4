package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"ms-booking/internal/models"
)

// Bootstrap creates the schema through bun and seeds the genre
// vocabulary. It is the migration path for sqlite (dev and tests), where
// the postgres SQL files do not apply. Idempotent.
func Bootstrap(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.Venue)(nil),
		(*models.Artist)(nil),
		(*models.Genre)(nil),
		(*models.Show)(nil),
		(*models.VenueGenre)(nil),
		(*models.ArtistGenre)(nil),
	}
	for _, m := range tables {
		_, err := db.NewCreateTable().Model(m).IfNotExists().WithForeignKeys().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m, err)
		}
	}
	return SeedGenres(ctx, db)
}

// SeedGenres inserts the fixed genre vocabulary, skipping names that are
// already present.
func SeedGenres(ctx context.Context, db *bun.DB) error {
	genres := make([]models.Genre, len(models.GenreNames))
	for i, name := range models.GenreNames {
		genres[i] = models.Genre{Name: name}
	}
	_, err := db.NewInsert().
		Model(&genres).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}
	return nil
}
