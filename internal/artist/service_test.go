package artist_test

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/artist"
	"ms-booking/internal/forms"
	"ms-booking/internal/models"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) GetArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockDBLayer) ListArtists(ctx context.Context) ([]*models.Artist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Artist), args.Error(1)
}

func (m *MockDBLayer) SearchArtistsByName(ctx context.Context, term string) ([]*models.Artist, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Artist), args.Error(1)
}

func (m *MockDBLayer) FindArtistByName(ctx context.Context, name string) (*models.Artist, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockDBLayer) InsertArtist(ctx context.Context, a *models.Artist) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockDBLayer) UpdateArtist(ctx context.Context, a *models.Artist, columns []string) error {
	args := m.Called(ctx, a, columns)
	return args.Error(0)
}

func (m *MockDBLayer) AttachGenres(ctx context.Context, artistID int64, genreIDs []int64) error {
	args := m.Called(ctx, artistID, genreIDs)
	return args.Error(0)
}

func artistForm(t *testing.T, values url.Values) *forms.ArtistForm {
	t.Helper()
	f := forms.ParseArtistForm(values)
	require.NoError(t, f.Validate())
	return f
}

func TestCreateTitleCasesName(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := artist.NewService(mockDB)

	form := artistForm(t, url.Values{"name": {"the band"}, "genres": {"15"}})

	mockDB.On("FindArtistByName", mock.Anything, "The Band").Return(nil, nil)
	mockDB.On("InsertArtist", mock.Anything, mock.AnythingOfType("*models.Artist")).
		Run(func(args mock.Arguments) {
			a := args.Get(1).(*models.Artist)
			a.ID = 8
		}).
		Return(nil)
	mockDB.On("AttachGenres", mock.Anything, int64(8), []int64{15}).Return(nil)

	created, err := service.CreateOrUpdate(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "The Band", created.Name)
	mockDB.AssertExpectations(t)
}

func TestCreateConvergesOnExistingName(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := artist.NewService(mockDB)

	existing := &models.Artist{ID: 4, Name: "The Band", City: "Portland"}

	form := artistForm(t, url.Values{"name": {"The Band"}, "phone": {"503-555-0100"}})

	mockDB.On("FindArtistByName", mock.Anything, "The Band").Return(existing, nil)
	mockDB.On("UpdateArtist", mock.Anything, existing, []string{"name", "phone", "seeking_venue"}).Return(nil)
	mockDB.On("AttachGenres", mock.Anything, int64(4), []int64(nil)).Return(nil)

	created, err := service.CreateOrUpdate(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, "Portland", created.City)
	mockDB.AssertNotCalled(t, "InsertArtist", mock.Anything, mock.Anything)
	mockDB.AssertExpectations(t)
}

func TestListProjectsIDAndNameOnly(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := artist.NewService(mockDB)

	mockDB.On("ListArtists", mock.Anything).Return([]*models.Artist{
		{ID: 1, Name: "The Band", City: "Portland"},
		{ID: 2, Name: "Solo Act"},
	}, nil)

	items, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, artist.ListItem{ID: 1, Name: "The Band"}, items[0])
	assert.Equal(t, artist.ListItem{ID: 2, Name: "Solo Act"}, items[1])
}

func TestGetMissingArtistIsNotFound(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := artist.NewService(mockDB)

	mockDB.On("GetArtistByID", mock.Anything, int64(9999)).Return(nil, sql.ErrNoRows)

	_, err := service.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, artist.ErrNotFound)
}

func TestGetInfrastructureErrorIsNotNotFound(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := artist.NewService(mockDB)

	dbErr := errors.New("pq: connection refused")
	mockDB.On("GetArtistByID", mock.Anything, int64(1)).Return(nil, dbErr)

	_, err := service.Get(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, artist.ErrNotFound)
	assert.ErrorIs(t, err, dbErr)
}

func TestUpdateClearsUncheckedSeekingVenue(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := artist.NewService(mockDB)

	existing := &models.Artist{ID: 4, Name: "The Band", SeekingVenue: true}

	form := artistForm(t, url.Values{"name": {"The Band"}})

	mockDB.On("GetArtistByID", mock.Anything, int64(4)).Return(existing, nil)
	mockDB.On("UpdateArtist", mock.Anything, existing, []string{"name", "seeking_venue"}).Return(nil)
	mockDB.On("AttachGenres", mock.Anything, int64(4), []int64(nil)).Return(nil)

	updated, err := service.Update(context.Background(), 4, form)
	require.NoError(t, err)
	assert.False(t, updated.SeekingVenue)
	mockDB.AssertExpectations(t)
}
