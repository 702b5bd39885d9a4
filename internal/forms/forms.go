// Package forms parses and validates the POST bodies of the create/edit
// pages. Each form remembers which keys were actually submitted so that
// partial updates never blank out stored fields.
package forms

import (
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var validate = newValidator()

var phonePattern = regexp.MustCompile(`^[0-9+()\-. ]{7,20}$`)

func newValidator() *validator.Validate {
	v := validator.New()
	// WTForms-style phone check: digits plus common separators.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// TitleCase normalizes a submitted name the way the create handlers
// store it: "jazz house" becomes "Jazz House".
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Result is the outcome a write handler hands to the presentation layer.
type Result struct {
	Success bool
	Message string
}

// VenueForm carries a venue create/edit submission.
type VenueForm struct {
	Name               string `validate:"required"`
	City               string
	State              string `validate:"omitempty,len=2,alpha"`
	Address            string
	Phone              string `validate:"omitempty,phone"`
	ImageLink          string `validate:"omitempty,url"`
	FacebookLink       string `validate:"omitempty,url"`
	WebsiteLink        string `validate:"omitempty,url"`
	SeekingTalent      bool
	SeekingDescription string
	GenreIDs           []int64 `validate:"omitempty,dive,gt=0"`

	submitted map[string]bool
}

// ArtistForm carries an artist create/edit submission.
type ArtistForm struct {
	Name               string `validate:"required"`
	City               string
	State              string `validate:"omitempty,len=2,alpha"`
	Phone              string `validate:"omitempty,phone"`
	ImageLink          string `validate:"omitempty,url"`
	FacebookLink       string `validate:"omitempty,url"`
	WebsiteLink        string `validate:"omitempty,url"`
	SeekingVenue       bool
	SeekingDescription string
	GenreIDs           []int64 `validate:"omitempty,dive,gt=0"`

	submitted map[string]bool
}

// ShowForm carries a show create submission.
type ShowForm struct {
	VenueID   int64     `validate:"required,gt=0"`
	ArtistID  int64     `validate:"required,gt=0"`
	StartTime time.Time `validate:"required"`
}

// ParseVenueForm decodes a venue submission from POST form values.
func ParseVenueForm(values url.Values) *VenueForm {
	f := &VenueForm{
		Name:               values.Get("name"),
		City:               values.Get("city"),
		State:              values.Get("state"),
		Address:            values.Get("address"),
		Phone:              values.Get("phone"),
		ImageLink:          values.Get("image_link"),
		FacebookLink:       values.Get("facebook_link"),
		WebsiteLink:        values.Get("website_link"),
		SeekingTalent:      parseBool(values.Get("seeking_talent")),
		SeekingDescription: values.Get("seeking_description"),
		GenreIDs:           parseIDs(values["genres"]),
		submitted:          submittedKeys(values),
	}
	// An unchecked checkbox never appears in the POST body; absent means
	// false, so the flag is always part of the submission.
	f.submitted["seeking_talent"] = true
	return f
}

// ParseArtistForm decodes an artist submission from POST form values.
func ParseArtistForm(values url.Values) *ArtistForm {
	f := &ArtistForm{
		Name:               values.Get("name"),
		City:               values.Get("city"),
		State:              values.Get("state"),
		Phone:              values.Get("phone"),
		ImageLink:          values.Get("image_link"),
		FacebookLink:       values.Get("facebook_link"),
		WebsiteLink:        values.Get("website_link"),
		SeekingVenue:       parseBool(values.Get("seeking_venue")),
		SeekingDescription: values.Get("seeking_description"),
		GenreIDs:           parseIDs(values["genres"]),
		submitted:          submittedKeys(values),
	}
	f.submitted["seeking_venue"] = true
	return f
}

// ParseShowForm decodes a show submission from POST form values.
func ParseShowForm(values url.Values) *ShowForm {
	venueID, _ := strconv.ParseInt(values.Get("venue_id"), 10, 64)
	artistID, _ := strconv.ParseInt(values.Get("artist_id"), 10, 64)
	startTime, _ := parseStartTime(values.Get("start_time"))
	return &ShowForm{
		VenueID:   venueID,
		ArtistID:  artistID,
		StartTime: startTime,
	}
}

func (f *VenueForm) Validate() error  { return validate.Struct(f) }
func (f *ArtistForm) Validate() error { return validate.Struct(f) }
func (f *ShowForm) Validate() error   { return validate.Struct(f) }

// Has reports whether the named form key was part of the submission.
func (f *VenueForm) Has(key string) bool  { return f.submitted[key] }
func (f *ArtistForm) Has(key string) bool { return f.submitted[key] }

func submittedKeys(values url.Values) map[string]bool {
	keys := make(map[string]bool, len(values))
	for key := range values {
		keys[key] = true
	}
	return keys
}

func parseBool(value string) bool {
	switch value {
	case "y", "on", "true", "1":
		return true
	}
	return false
}

func parseIDs(raw []string) []int64 {
	var ids []int64
	for _, s := range raw {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

func parseStartTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
