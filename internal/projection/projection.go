// Package projection holds the pure transformations from persisted
// entities to the flat records the pages render. Nothing here touches the
// database; relations must already be loaded.
package projection

import (
	"time"

	"ms-booking/internal/models"
)

// startTimeSuffix is appended literally: start times render with a fixed
// zero-millisecond UTC token regardless of the stored sub-second value.
const (
	startTimeLayout = "2006-01-02T15:04:05"
	startTimeSuffix = ".000Z"
)

// FormatStartTime renders a show start time as YYYY-MM-DDTHH:MM:SS.000Z.
func FormatStartTime(t time.Time) string {
	return t.Format(startTimeLayout) + startTimeSuffix
}

// SplitShows partitions shows into past and upcoming relative to now,
// preserving order. A show starting exactly at now counts as upcoming.
func SplitShows(shows []*models.Show, now time.Time) (past, upcoming []*models.Show) {
	for _, show := range shows {
		if now.After(show.StartTime) {
			past = append(past, show)
		} else {
			upcoming = append(upcoming, show)
		}
	}
	return past, upcoming
}

// VenueSummary is the listing/search row for a venue.
type VenueSummary struct {
	ID               int64
	Name             string
	NumUpcomingShows int
}

// ArtistSummary is the search row for an artist.
type ArtistSummary struct {
	ID               int64
	Name             string
	NumUpcomingShows int
}

// ShowForVenue is one show entry on a venue detail page.
type ShowForVenue struct {
	ArtistID        int64
	ArtistName      string
	ArtistImageLink string
	StartTime       string
}

// ShowForArtist is one show entry on an artist detail page.
type ShowForArtist struct {
	VenueID        int64
	VenueName      string
	VenueImageLink string
	StartTime      string
}

// VenueDetail is the full venue page record.
type VenueDetail struct {
	ID                 int64
	Name               string
	Genres             []string
	Address            string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingTalent      bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ShowForVenue
	UpcomingShows      []ShowForVenue
	PastShowsCount     int
	UpcomingShowsCount int
}

// ArtistDetail is the full artist page record.
type ArtistDetail struct {
	ID                 int64
	Name               string
	Genres             []string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingVenue       bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ShowForArtist
	UpcomingShows      []ShowForArtist
	PastShowsCount     int
	UpcomingShowsCount int
}

// ShowRow is one entry on the all-shows listing.
type ShowRow struct {
	VenueID         int64
	VenueName       string
	ArtistID        int64
	ArtistName      string
	ArtistImageLink string
	StartTime       string
}

// VenueGroup is one city/state section of the venues listing.
type VenueGroup struct {
	City   string
	State  string
	Venues []VenueSummary
}

// ProjectVenueSummary reduces a venue to its listing row.
func ProjectVenueSummary(venue *models.Venue, now time.Time) VenueSummary {
	_, upcoming := SplitShows(venue.Shows, now)
	return VenueSummary{
		ID:               venue.ID,
		Name:             venue.Name,
		NumUpcomingShows: len(upcoming),
	}
}

// ProjectArtistSummary reduces an artist to its search row.
func ProjectArtistSummary(artist *models.Artist, now time.Time) ArtistSummary {
	_, upcoming := SplitShows(artist.Shows, now)
	return ArtistSummary{
		ID:               artist.ID,
		Name:             artist.Name,
		NumUpcomingShows: len(upcoming),
	}
}

// ProjectVenueDetail builds the full venue page record. venue.Shows must
// have their Artist loaded.
func ProjectVenueDetail(venue *models.Venue, now time.Time) VenueDetail {
	past, upcoming := SplitShows(venue.Shows, now)
	return VenueDetail{
		ID:                 venue.ID,
		Name:               venue.Name,
		Genres:             genreNames(venue.Genres),
		Address:            venue.Address,
		City:               venue.City,
		State:              venue.State,
		Phone:              venue.Phone,
		Website:            venue.WebsiteLink,
		FacebookLink:       venue.FacebookLink,
		SeekingTalent:      venue.SeekingTalent,
		SeekingDescription: venue.SeekingDescription,
		ImageLink:          venue.ImageLink,
		PastShows:          showsForVenue(past),
		UpcomingShows:      showsForVenue(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

// ProjectArtistDetail builds the full artist page record. artist.Shows
// must have their Venue loaded.
func ProjectArtistDetail(artist *models.Artist, now time.Time) ArtistDetail {
	past, upcoming := SplitShows(artist.Shows, now)
	return ArtistDetail{
		ID:                 artist.ID,
		Name:               artist.Name,
		Genres:             genreNames(artist.Genres),
		City:               artist.City,
		State:              artist.State,
		Phone:              artist.Phone,
		Website:            artist.WebsiteLink,
		FacebookLink:       artist.FacebookLink,
		SeekingVenue:       artist.SeekingVenue,
		SeekingDescription: artist.SeekingDescription,
		ImageLink:          artist.ImageLink,
		PastShows:          showsForArtist(past),
		UpcomingShows:      showsForArtist(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

// ProjectShow flattens a show with its loaded Venue and Artist into an
// all-shows listing row.
func ProjectShow(show *models.Show) ShowRow {
	return ShowRow{
		VenueID:         show.VenueID,
		VenueName:       show.Venue.Name,
		ArtistID:        show.ArtistID,
		ArtistName:      show.Artist.Name,
		ArtistImageLink: show.Artist.ImageLink,
		StartTime:       FormatStartTime(show.StartTime),
	}
}

// GroupVenuesByLocation buckets venues by exact (city, state). A venue
// joins the first group that matches, so group order follows the first
// occurrence of each location in the input.
func GroupVenuesByLocation(venues []*models.Venue, now time.Time) []VenueGroup {
	var groups []VenueGroup
	for _, venue := range venues {
		summary := ProjectVenueSummary(venue, now)
		placed := false
		for i := range groups {
			if groups[i].City == venue.City && groups[i].State == venue.State {
				groups[i].Venues = append(groups[i].Venues, summary)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, VenueGroup{
				City:   venue.City,
				State:  venue.State,
				Venues: []VenueSummary{summary},
			})
		}
	}
	return groups
}

func genreNames(genres []models.Genre) []string {
	names := make([]string, len(genres))
	for i, genre := range genres {
		names[i] = genre.Name
	}
	return names
}

func showsForVenue(shows []*models.Show) []ShowForVenue {
	out := make([]ShowForVenue, len(shows))
	for i, show := range shows {
		out[i] = ShowForVenue{
			ArtistID:        show.Artist.ID,
			ArtistName:      show.Artist.Name,
			ArtistImageLink: show.Artist.ImageLink,
			StartTime:       FormatStartTime(show.StartTime),
		}
	}
	return out
}

func showsForArtist(shows []*models.Show) []ShowForArtist {
	out := make([]ShowForArtist, len(shows))
	for i, show := range shows {
		out[i] = ShowForArtist{
			VenueID:        show.Venue.ID,
			VenueName:      show.Venue.Name,
			VenueImageLink: show.Venue.ImageLink,
			StartTime:      FormatStartTime(show.StartTime),
		}
	}
	return out
}
