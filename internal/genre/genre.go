// Package genre reads the seeded genre vocabulary. Genres are immutable
// reference data; there is no write path.
package genre

import (
	"context"

	"github.com/uptrace/bun"

	"ms-booking/internal/models"
)

type Store struct {
	Bun *bun.DB
}

// List returns every genre in id order, for form choices.
func (s *Store) List(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	err := s.Bun.NewSelect().
		Model(&genres).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return genres, nil
}

// ByIDs resolves the given genre ids; unknown ids are simply absent from
// the result.
func (s *Store) ByIDs(ctx context.Context, ids []int64) ([]models.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var genres []models.Genre
	err := s.Bun.NewSelect().
		Model(&genres).
		Where("id IN (?)", bun.In(ids)).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return genres, nil
}
