package artist

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

// ErrNotFound reports an artist id that does not exist.
var ErrNotFound = errors.New("artist not found")

type DBLayer interface {
	GetArtistByID(ctx context.Context, id int64) (*models.Artist, error)
	ListArtists(ctx context.Context) ([]*models.Artist, error)
	SearchArtistsByName(ctx context.Context, term string) ([]*models.Artist, error)
	FindArtistByName(ctx context.Context, name string) (*models.Artist, error)
	InsertArtist(ctx context.Context, artist *models.Artist) error
	UpdateArtist(ctx context.Context, artist *models.Artist, columns []string) error
	AttachGenres(ctx context.Context, artistID int64, genreIDs []int64) error
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

// ListItem is one row of the artists listing page: id and name only.
type ListItem struct {
	ID   int64
	Name string
}

// SearchResults is the artist search response shape.
type SearchResults struct {
	Count int
	Data  []projection.ArtistSummary
}

// List returns all artists as id/name rows.
func (s *Service) List(ctx context.Context) ([]ListItem, error) {
	artists, err := s.DB.ListArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	items := make([]ListItem, len(artists))
	for i, artist := range artists {
		items[i] = ListItem{ID: artist.ID, Name: artist.Name}
	}
	return items, nil
}

// Search matches the term case-insensitively against artist names.
func (s *Service) Search(ctx context.Context, term string) (SearchResults, error) {
	artists, err := s.DB.SearchArtistsByName(ctx, term)
	if err != nil {
		return SearchResults{}, fmt.Errorf("search artists: %w", err)
	}
	now := time.Now()
	results := SearchResults{Count: len(artists), Data: make([]projection.ArtistSummary, len(artists))}
	for i, artist := range artists {
		results.Data[i] = projection.ProjectArtistSummary(artist, now)
	}
	return results, nil
}

// Get returns the full detail projection for one artist. Only a lookup
// miss is ErrNotFound; infrastructure failures propagate as-is.
func (s *Service) Get(ctx context.Context, id int64) (projection.ArtistDetail, error) {
	artist, err := s.DB.GetArtistByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return projection.ArtistDetail{}, ErrNotFound
	}
	if err != nil {
		return projection.ArtistDetail{}, fmt.Errorf("get artist %d: %w", id, err)
	}
	return projection.ProjectArtistDetail(artist, time.Now()), nil
}

// CreateOrUpdate inserts an artist, or converges onto the existing row
// when the title-cased name already exists. Same unlocked best-effort
// dedup as venues.
func (s *Service) CreateOrUpdate(ctx context.Context, form *forms.ArtistForm) (*models.Artist, error) {
	form.Name = forms.TitleCase(form.Name)

	artist, err := s.DB.FindArtistByName(ctx, form.Name)
	if err != nil {
		return nil, fmt.Errorf("artist name lookup: %w", err)
	}

	if artist == nil {
		artist = &models.Artist{}
		applyArtistForm(artist, form)
		if err := s.DB.InsertArtist(ctx, artist); err != nil {
			return nil, fmt.Errorf("insert artist: %w", err)
		}
	} else {
		columns := applyArtistForm(artist, form)
		if err := s.DB.UpdateArtist(ctx, artist, columns); err != nil {
			return nil, fmt.Errorf("update artist: %w", err)
		}
	}

	if err := s.DB.AttachGenres(ctx, artist.ID, form.GenreIDs); err != nil {
		return nil, fmt.Errorf("attach artist genres: %w", err)
	}
	return artist, nil
}

// Update overwrites the submitted fields of an existing artist and
// appends any submitted genres.
func (s *Service) Update(ctx context.Context, id int64, form *forms.ArtistForm) (*models.Artist, error) {
	artist, err := s.DB.GetArtistByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist %d: %w", id, err)
	}

	columns := applyArtistForm(artist, form)
	if err := s.DB.UpdateArtist(ctx, artist, columns); err != nil {
		return nil, fmt.Errorf("update artist: %w", err)
	}
	if err := s.DB.AttachGenres(ctx, artist.ID, form.GenreIDs); err != nil {
		return nil, fmt.Errorf("attach artist genres: %w", err)
	}
	return artist, nil
}

func applyArtistForm(artist *models.Artist, form *forms.ArtistForm) []string {
	var columns []string
	set := func(key string, assign func()) {
		if form.Has(key) {
			assign()
			columns = append(columns, key)
		}
	}
	set("name", func() { artist.Name = form.Name })
	set("city", func() { artist.City = form.City })
	set("state", func() { artist.State = form.State })
	set("phone", func() { artist.Phone = form.Phone })
	set("image_link", func() { artist.ImageLink = form.ImageLink })
	set("facebook_link", func() { artist.FacebookLink = form.FacebookLink })
	set("website_link", func() { artist.WebsiteLink = form.WebsiteLink })
	set("seeking_venue", func() { artist.SeekingVenue = form.SeekingVenue })
	set("seeking_description", func() { artist.SeekingDescription = form.SeekingDescription })
	return columns
}
