package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ms-booking/internal/forms"
	"ms-booking/internal/models"
	"ms-booking/internal/projection"
)

// ErrNotFound reports a venue id that does not exist.
var ErrNotFound = errors.New("venue not found")

type DBLayer interface {
	GetVenueByID(ctx context.Context, id int64) (*models.Venue, error)
	ListVenues(ctx context.Context) ([]*models.Venue, error)
	SearchVenuesByName(ctx context.Context, term string) ([]*models.Venue, error)
	FindVenueByNaturalKey(ctx context.Context, name, city, state string) (*models.Venue, error)
	InsertVenue(ctx context.Context, venue *models.Venue) error
	UpdateVenue(ctx context.Context, venue *models.Venue, columns []string) error
	AttachGenres(ctx context.Context, venueID int64, genreIDs []int64) error
	DeleteVenue(ctx context.Context, id int64) error
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

// SearchResults is the venue search response shape.
type SearchResults struct {
	Count int
	Data  []projection.VenueSummary
}

// List returns all venues grouped by (city, state) in first-occurrence
// order.
func (s *Service) List(ctx context.Context) ([]projection.VenueGroup, error) {
	venues, err := s.DB.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return projection.GroupVenuesByLocation(venues, time.Now()), nil
}

// Search matches the term case-insensitively against venue names.
func (s *Service) Search(ctx context.Context, term string) (SearchResults, error) {
	venues, err := s.DB.SearchVenuesByName(ctx, term)
	if err != nil {
		return SearchResults{}, fmt.Errorf("search venues: %w", err)
	}
	now := time.Now()
	results := SearchResults{Count: len(venues), Data: make([]projection.VenueSummary, len(venues))}
	for i, venue := range venues {
		results.Data[i] = projection.ProjectVenueSummary(venue, now)
	}
	return results, nil
}

// Get returns the full detail projection for one venue. Only a lookup
// miss is ErrNotFound; infrastructure failures propagate as-is.
func (s *Service) Get(ctx context.Context, id int64) (projection.VenueDetail, error) {
	venue, err := s.DB.GetVenueByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return projection.VenueDetail{}, ErrNotFound
	}
	if err != nil {
		return projection.VenueDetail{}, fmt.Errorf("get venue %d: %w", id, err)
	}
	return projection.ProjectVenueDetail(venue, time.Now()), nil
}

// CreateOrUpdate inserts a venue, or converges onto the existing row when
// the title-cased (name, city, state) natural key already exists. Genre
// selections accumulate across submissions. Two concurrent creates with
// the same new key can both miss the lookup and insert twice; the dedup
// is best-effort, not locked.
func (s *Service) CreateOrUpdate(ctx context.Context, form *forms.VenueForm) (*models.Venue, error) {
	form.Name = forms.TitleCase(form.Name)
	form.City = forms.TitleCase(form.City)

	venue, err := s.DB.FindVenueByNaturalKey(ctx, form.Name, form.City, form.State)
	if err != nil {
		return nil, fmt.Errorf("venue natural key lookup: %w", err)
	}

	if venue == nil {
		venue = &models.Venue{}
		applyVenueForm(venue, form)
		if err := s.DB.InsertVenue(ctx, venue); err != nil {
			return nil, fmt.Errorf("insert venue: %w", err)
		}
	} else {
		columns := applyVenueForm(venue, form)
		if err := s.DB.UpdateVenue(ctx, venue, columns); err != nil {
			return nil, fmt.Errorf("update venue: %w", err)
		}
	}

	if err := s.DB.AttachGenres(ctx, venue.ID, form.GenreIDs); err != nil {
		return nil, fmt.Errorf("attach venue genres: %w", err)
	}
	return venue, nil
}

// Update overwrites the submitted fields of an existing venue and appends
// any submitted genres.
func (s *Service) Update(ctx context.Context, id int64, form *forms.VenueForm) (*models.Venue, error) {
	venue, err := s.DB.GetVenueByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get venue %d: %w", id, err)
	}

	columns := applyVenueForm(venue, form)
	if err := s.DB.UpdateVenue(ctx, venue, columns); err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}
	if err := s.DB.AttachGenres(ctx, venue.ID, form.GenreIDs); err != nil {
		return nil, fmt.Errorf("attach venue genres: %w", err)
	}
	return venue, nil
}

// Delete removes the venue and, by decision, cascades to its shows and
// genre associations. Returns the deleted venue's name for the flash.
func (s *Service) Delete(ctx context.Context, id int64) (string, error) {
	venue, err := s.DB.GetVenueByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get venue %d: %w", id, err)
	}
	if err := s.DB.DeleteVenue(ctx, id); err != nil {
		return "", fmt.Errorf("delete venue: %w", err)
	}
	return venue.Name, nil
}

// applyVenueForm copies the submitted fields onto the model and returns
// the touched column names. Fields absent from the submission stay as
// they are; this is the explicit counterpart of a reflective
// set-attribute-if-present copy.
func applyVenueForm(venue *models.Venue, form *forms.VenueForm) []string {
	var columns []string
	set := func(key string, assign func()) {
		if form.Has(key) {
			assign()
			columns = append(columns, key)
		}
	}
	set("name", func() { venue.Name = form.Name })
	set("city", func() { venue.City = form.City })
	set("state", func() { venue.State = form.State })
	set("address", func() { venue.Address = form.Address })
	set("phone", func() { venue.Phone = form.Phone })
	set("image_link", func() { venue.ImageLink = form.ImageLink })
	set("facebook_link", func() { venue.FacebookLink = form.FacebookLink })
	set("website_link", func() { venue.WebsiteLink = form.WebsiteLink })
	set("seeking_talent", func() { venue.SeekingTalent = form.SeekingTalent })
	set("seeking_description", func() { venue.SeekingDescription = form.SeekingDescription })
	return columns
}
