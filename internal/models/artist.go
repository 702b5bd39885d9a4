package models

import (
	"github.com/uptrace/bun"
)

// Artist mirrors Venue without an address; its natural key is the
// title-cased name alone.
type Artist struct {
	bun.BaseModel `bun:"table:artists,alias:a"`

	ID                 int64  `bun:"id,pk,autoincrement"`
	Name               string `bun:"name,notnull"`
	City               string `bun:"city"`
	State              string `bun:"state"`
	Phone              string `bun:"phone"`
	ImageLink          string `bun:"image_link"`
	FacebookLink       string `bun:"facebook_link"`
	WebsiteLink        string `bun:"website_link"`
	SeekingVenue       bool   `bun:"seeking_venue,notnull,default:false"`
	SeekingDescription string `bun:"seeking_description"`

	Genres []Genre `bun:"m2m:artist_genres,join:Artist=Genre"`
	Shows  []*Show `bun:"rel:has-many,join:id=artist_id"`
}

type ArtistGenre struct {
	bun.BaseModel `bun:"table:artist_genres"`

	ArtistID int64   `bun:"artist_id,pk"`
	GenreID  int64   `bun:"genre_id,pk"`
	Artist   *Artist `bun:"rel:belongs-to,join:artist_id=id"`
	Genre    *Genre  `bun:"rel:belongs-to,join:genre_id=id"`
}
