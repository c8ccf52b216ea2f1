package model

import (
	"fmt"
	"time"

	"meetupdocs/internal/stableid"
)

// AgendaType classifies a slot in an event's run-of-show.
type AgendaType string

const (
	AgendaRegistration AgendaType = "registration"
	AgendaTalk         AgendaType = "talk"
	AgendaSponsorTalk  AgendaType = "sponsorTalk"
	AgendaBreak        AgendaType = "break"
	AgendaNetworking   AgendaType = "networking"
)

// ParseAgendaType accepts exactly the known type names.
func ParseAgendaType(s string) (AgendaType, error) {
	switch t := AgendaType(s); t {
	case AgendaRegistration, AgendaTalk, AgendaSponsorTalk, AgendaBreak, AgendaNetworking:
		return t, nil
	default:
		return "", fmt.Errorf("unknown agenda type %q", s)
	}
}

// Agenda is one scheduled item of an event.
type Agenda struct {
	ID      string    `json:"id"`
	EventID string    `json:"eventID"`
	Time    time.Time `json:"time"`
	Title   string    `json:"title"`
	// Speakers are free-text names; AgendaSpeakerID rows carry the resolved
	// links, so the names are not exported.
	Speakers []string   `json:"-"`
	Type     AgendaType `json:"type"`
}

// NewAgenda hashes (title, time, eventID).
func NewAgenda(eventID string, at time.Time, title string, speakers []string, typ AgendaType) Agenda {
	return Agenda{
		ID:       stableid.New(title, at, eventID),
		EventID:  eventID,
		Time:     at,
		Title:    title,
		Speakers: speakers,
		Type:     typ,
	}
}

// AgendaSpeakerID links an agenda item to a speaker matched by name.
type AgendaSpeakerID struct {
	ID        string `json:"id"`
	AgendaID  string `json:"agendaID"`
	SpeakerID string `json:"speakerID"`
}

// NewAgendaSpeakerID hashes (agendaID, speakerID).
func NewAgendaSpeakerID(agendaID, speakerID string) AgendaSpeakerID {
	return AgendaSpeakerID{
		ID:        stableid.New(agendaID, speakerID),
		AgendaID:  agendaID,
		SpeakerID: speakerID,
	}
}
