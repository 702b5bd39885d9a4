package show

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ms-booking/internal/forms"
	"ms-booking/internal/models"
	"ms-booking/internal/projection"
)

// ErrNotFound reports a missing venue or artist referent on create.
var ErrNotFound = errors.New("show referent not found")

type DBLayer interface {
	ListShows(ctx context.Context) ([]*models.Show, error)
	GetVenueByID(ctx context.Context, id int64) (*models.Venue, error)
	GetArtistByID(ctx context.Context, id int64) (*models.Artist, error)
	InsertShow(ctx context.Context, show *models.Show) error
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

// List returns every show as a flat listing row.
func (s *Service) List(ctx context.Context) ([]projection.ShowRow, error) {
	shows, err := s.DB.ListShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	rows := make([]projection.ShowRow, len(shows))
	for i, show := range shows {
		rows[i] = projection.ProjectShow(show)
	}
	return rows, nil
}

// Create links an existing artist to an existing venue at the submitted
// start time. A missing referent is ErrNotFound, any other lookup error
// propagates; there is no conflict pre-check, a duplicate slot surfaces
// as a constraint violation from the insert.
func (s *Service) Create(ctx context.Context, form *forms.ShowForm) error {
	venue, err := s.DB.GetVenueByID(ctx, form.VenueID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("venue lookup: %w", err)
	}
	artist, err := s.DB.GetArtistByID(ctx, form.ArtistID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("artist lookup: %w", err)
	}

	show := &models.Show{
		VenueID:   venue.ID,
		ArtistID:  artist.ID,
		StartTime: form.StartTime,
	}
	if err := s.DB.InsertShow(ctx, show); err != nil {
		return fmt.Errorf("insert show: %w", err)
	}
	return nil
}
