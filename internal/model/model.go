package model

import (
	"time"

	"meetupdocs/internal/stableid"
)

// Event is one meetup, keyed by its folder name and the date in that name.
type Event struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// NewEvent hashes (title, date). Later overrides of Date from Info.yml do
// not change the id, so talks and agendas keep pointing at it.
func NewEvent(title string, date time.Time) Event {
	return Event{
		ID:    stableid.New(title, date),
		Title: title,
		Date:  date,
	}
}

// Talk is one presentation folder inside an event.
type Talk struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	EventID string `json:"eventID"`
}

// NewTalk hashes (title, eventID).
func NewTalk(title, eventID string) Talk {
	return Talk{
		ID:      stableid.New(title, eventID),
		Title:   title,
		EventID: eventID,
	}
}

// TalkSpeaker links a talk to one of its speakers.
type TalkSpeaker struct {
	ID        string `json:"id"`
	TalkID    string `json:"talkID"`
	SpeakerID string `json:"speakerID"`
}

// NewTalkSpeaker hashes (talkID, speakerID).
func NewTalkSpeaker(talkID, speakerID string) TalkSpeaker {
	return TalkSpeaker{
		ID:        stableid.New(talkID, speakerID),
		TalkID:    talkID,
		SpeakerID: speakerID,
	}
}

// TalkWithSpeakers groups a talk with the speakers decoded from its folder.
type TalkWithSpeakers struct {
	Talk     Talk      `json:"talk"`
	Speakers []Speaker `json:"speakers"`
}

// EventWithTalks is the README-facing view of one event.
type EventWithTalks struct {
	Event     Event              `json:"event"`
	Talks     []TalkWithSpeakers `json:"talks"`
	EventInfo *EventInfo         `json:"eventInfo,omitempty"`
}

// PhotoURL returns the event's photo album link, if its Info.yml has one.
func (e EventWithTalks) PhotoURL() string {
	if e.EventInfo == nil {
		return ""
	}
	return e.EventInfo.PhotoURL
}
