package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Show links one artist to one venue at a start time. It carries a
// surrogate id; (venue_id, artist_id, start_time) is UNIQUE so the same
// pair can play again at a different time but not twice at the same one.
type Show struct {
	bun.BaseModel `bun:"table:shows,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement"`
	VenueID   int64     `bun:"venue_id,notnull,unique:uq_show_slot"`
	ArtistID  int64     `bun:"artist_id,notnull,unique:uq_show_slot"`
	StartTime time.Time `bun:"start_time,notnull,unique:uq_show_slot"`

	Venue  *Venue  `bun:"rel:belongs-to,join:venue_id=id"`
	Artist *Artist `bun:"rel:belongs-to,join:artist_id=id"`
}
