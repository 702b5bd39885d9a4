package models

import (
	"github.com/uptrace/bun"
)

// Genre is immutable reference data seeded once at migration time.
type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,unique,notnull"`
}

// GenreNames is the seeded vocabulary, in seed order.
var GenreNames = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
	"Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
	"Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
	"Soul", "Other",
}
