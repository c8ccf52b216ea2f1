package model

import (
	"encoding/json"
	"time"

	"meetupdocs/internal/stableid"
)

// Sponsor is a venue or food sponsor reference from an Info.yml.
type Sponsor struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Image   string `json:"image,omitempty"`
}

// NewSponsor hashes (name, website, image).
func NewSponsor(name, website, image string) Sponsor {
	return Sponsor{
		ID:      stableid.New(name, website, image),
		Name:    name,
		Website: website,
		Image:   image,
	}
}

// Sponsors groups the sponsors of one event. The venue key keeps the
// "vanue" spelling used by existing Info.yml files and JSON consumers.
type Sponsors struct {
	Venue Sponsor  `json:"vanue"`
	Food  *Sponsor `json:"food,omitempty"`
}

// SponsorIDs is how an EventInfo references its sponsors in JSON.
type SponsorIDs struct {
	VenueSponsorID string `json:"vanueSponsorID"`
	FoodSponsorID  string `json:"foodSponsorID,omitempty"`
}

// IDs returns the id-only view of s.
func (s Sponsors) IDs() SponsorIDs {
	ids := SponsorIDs{VenueSponsorID: s.Venue.ID}
	if s.Food != nil {
		ids.FoodSponsorID = s.Food.ID
	}
	return ids
}

// Coordinates pin the venue on a map.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
}

// Location is the venue of an event.
type Location struct {
	Name        string      `json:"name"`
	Map         string      `json:"map"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

// EventInfo is the optional per-event configuration from Info.yml.
type EventInfo struct {
	ID       string
	EventID  string
	Date     time.Time
	About    string
	Location Location
	Sponsors Sponsors
	PhotoURL string
}

// NewEventInfo hashes (about, date, eventID).
func NewEventInfo(eventID string, date time.Time, about string, location Location, sponsors Sponsors, photoURL string) EventInfo {
	return EventInfo{
		ID:       stableid.New(about, date, eventID),
		EventID:  eventID,
		Date:     date,
		About:    about,
		Location: location,
		Sponsors: sponsors,
		PhotoURL: photoURL,
	}
}

type eventInfoJSON struct {
	ID       string     `json:"id"`
	EventID  string     `json:"eventID"`
	Date     time.Time  `json:"date"`
	About    string     `json:"about"`
	Location Location   `json:"location"`
	Sponsors SponsorIDs `json:"sponsors"`
	PhotoURL string     `json:"photoURL,omitempty"`
}

// MarshalJSON writes sponsors as ids; the sponsors export carries the rest.
func (e EventInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventInfoJSON{
		ID:       e.ID,
		EventID:  e.EventID,
		Date:     e.Date,
		About:    e.About,
		Location: e.Location,
		Sponsors: e.Sponsors.IDs(),
		PhotoURL: e.PhotoURL,
	})
}
