package models

import (
	"github.com/uptrace/bun"
)

// Venue is the venue side of the directory. The tuple (name, city, state)
// is treated as the natural key on create; see venue.Service.
type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:v"`

	ID                 int64  `bun:"id,pk,autoincrement"`
	Name               string `bun:"name,notnull"`
	City               string `bun:"city"`
	State              string `bun:"state"`
	Address            string `bun:"address"`
	Phone              string `bun:"phone"`
	ImageLink          string `bun:"image_link"`
	FacebookLink       string `bun:"facebook_link"`
	WebsiteLink        string `bun:"website_link"`
	SeekingTalent      bool   `bun:"seeking_talent,notnull,default:false"`
	SeekingDescription string `bun:"seeking_description"`

	Genres []Genre `bun:"m2m:venue_genres,join:Venue=Genre"`
	Shows  []*Show `bun:"rel:has-many,join:id=venue_id"`
}

// VenueGenre is the venue<->genre association row. The composite primary
// key is what rejects duplicate attachments.
type VenueGenre struct {
	bun.BaseModel `bun:"table:venue_genres"`

	VenueID int64  `bun:"venue_id,pk"`
	GenreID int64  `bun:"genre_id,pk"`
	Venue   *Venue `bun:"rel:belongs-to,join:venue_id=id"`
	Genre   *Genre `bun:"rel:belongs-to,join:genre_id=id"`
}
