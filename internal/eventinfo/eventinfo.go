// Package eventinfo reads an event's Info.yml.
//
// Decoding is split in two steps. Decode turns the file into a plain
// Document without any knowledge of the event it belongs to. Build then
// takes the event id and a date parser and produces the model values,
// resolving every agenda clock against the document's date string.
package eventinfo

import (
	"errors"
	"fmt"
	"net/url"

	"gopkg.in/yaml.v3"

	"meetupdocs/internal/dates"
	appLog "meetupdocs/internal/log"
	"meetupdocs/internal/model"
)

// FileName is the per-event config file looked up in every event folder.
const FileName = "Info.yml"

// Document mirrors Info.yml.
type Document struct {
	About    string       `yaml:"about"`
	Date     string       `yaml:"date"`
	Location LocationDoc  `yaml:"location"`
	Sponsors SponsorsDoc  `yaml:"sponsors"`
	Agenda   []AgendaItem `yaml:"agenda"`
	PhotoURL string       `yaml:"photoURL"`
}

type LocationDoc struct {
	Name        string         `yaml:"name"`
	Map         string         `yaml:"map"`
	Address     string         `yaml:"address"`
	Coordinates CoordinatesDoc `yaml:"coordinates"`
}

type CoordinatesDoc struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Zoom      float64 `yaml:"zoom"`
}

type SponsorsDoc struct {
	Venue *SponsorDoc `yaml:"vanue"`
	Food  *SponsorDoc `yaml:"food"`
}

// SponsorDoc is either a bare name or a {name, website, image} mapping.
type SponsorDoc struct {
	Name    string `yaml:"name"`
	Website string `yaml:"website"`
	Image   string `yaml:"image"`
}

func (s *SponsorDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Name = node.Value
		return nil
	}
	type plain SponsorDoc
	return node.Decode((*plain)(s))
}

// AgendaItem is one raw agenda entry; Time is a clock like "10:15 AM".
type AgendaItem struct {
	Time     string   `yaml:"time"`
	Title    string   `yaml:"title"`
	Speakers []string `yaml:"speakers"`
	Type     string   `yaml:"type"`
}

// Decode parses Info.yml content into a Document.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("eventinfo: decode: %w", err)
	}
	if doc.Sponsors.Venue == nil {
		return Document{}, errors.New("eventinfo: decode: sponsors.vanue is required")
	}
	return doc, nil
}

// Options tune Build.
type Options struct {
	// SkipInvalidAgenda logs and drops agenda entries whose time or type
	// cannot be parsed instead of failing the whole file.
	SkipInvalidAgenda bool
}

// Built is the model view of one Info.yml.
type Built struct {
	Info    model.EventInfo
	Agendas []model.Agenda
}

// Build converts doc into an EventInfo and its agenda for the event eventID.
func Build(doc Document, eventID string, p dates.Parser, opts Options) (Built, error) {
	date, err := p.ConfigDate(doc.Date)
	if err != nil {
		return Built{}, fmt.Errorf("eventinfo: date: %w", err)
	}

	location, err := buildLocation(doc.Location)
	if err != nil {
		return Built{}, err
	}

	sponsors, err := buildSponsors(doc.Sponsors)
	if err != nil {
		return Built{}, err
	}

	if doc.PhotoURL != "" {
		if err := checkURL("photoURL", doc.PhotoURL); err != nil {
			return Built{}, err
		}
	}

	out := Built{
		Info:    model.NewEventInfo(eventID, date, doc.About, location, sponsors, doc.PhotoURL),
		Agendas: make([]model.Agenda, 0, len(doc.Agenda)),
	}

	for i, item := range doc.Agenda {
		agenda, err := buildAgenda(item, eventID, doc.Date, p)
		if err != nil {
			if opts.SkipInvalidAgenda {
				appLog.Warn("skipping agenda entry", "index", i, "title", item.Title, "err", err)
				continue
			}
			return Built{}, fmt.Errorf("eventinfo: agenda[%d]: %w", i, err)
		}
		out.Agendas = append(out.Agendas, agenda)
	}

	return out, nil
}

func buildAgenda(item AgendaItem, eventID, date string, p dates.Parser) (model.Agenda, error) {
	at, err := p.AgendaTime(date, item.Time)
	if err != nil {
		return model.Agenda{}, err
	}
	typ, err := model.ParseAgendaType(item.Type)
	if err != nil {
		return model.Agenda{}, err
	}
	return model.NewAgenda(eventID, at, item.Title, item.Speakers, typ), nil
}

func buildLocation(doc LocationDoc) (model.Location, error) {
	if doc.Map != "" {
		if err := checkURL("location.map", doc.Map); err != nil {
			return model.Location{}, err
		}
	}
	return model.Location{
		Name:    doc.Name,
		Map:     doc.Map,
		Address: doc.Address,
		Coordinates: model.Coordinates{
			Latitude:  doc.Coordinates.Latitude,
			Longitude: doc.Coordinates.Longitude,
			Zoom:      doc.Coordinates.Zoom,
		},
	}, nil
}

func buildSponsors(doc SponsorsDoc) (model.Sponsors, error) {
	venue, err := buildSponsor("sponsors.vanue", doc.Venue)
	if err != nil {
		return model.Sponsors{}, err
	}
	out := model.Sponsors{Venue: venue}
	if doc.Food != nil {
		food, err := buildSponsor("sponsors.food", doc.Food)
		if err != nil {
			return model.Sponsors{}, err
		}
		out.Food = &food
	}
	return out, nil
}

func buildSponsor(field string, doc *SponsorDoc) (model.Sponsor, error) {
	if doc == nil || doc.Name == "" {
		return model.Sponsor{}, fmt.Errorf("eventinfo: %s: name is required", field)
	}
	if doc.Website != "" {
		if err := checkURL(field+".website", doc.Website); err != nil {
			return model.Sponsor{}, err
		}
	}
	return model.NewSponsor(doc.Name, doc.Website, doc.Image), nil
}

func checkURL(field, raw string) error {
	if _, err := url.Parse(raw); err != nil {
		return fmt.Errorf("eventinfo: %s: %w", field, err)
	}
	return nil
}
