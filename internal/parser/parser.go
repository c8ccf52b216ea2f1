package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"meetupdocs/internal/dates"
	"meetupdocs/internal/eventinfo"
	appLog "meetupdocs/internal/log"
	"meetupdocs/internal/model"
	"meetupdocs/internal/walker"
)

// DefaultSkipExtensions are the generated or tooling files that live next
// to the event folders.
var DefaultSkipExtensions = []string{"md", "json", "sh"}

// SpeakerMarker is the substring that identifies a talk's speaker file.
const SpeakerMarker = "Speaker"

// ErrMissingSpeakerFile is matched by errors.Is on MissingSpeakerFileError.
var ErrMissingSpeakerFile = errors.New("missing speaker file")

// MissingSpeakerFileError names the talk folder without a speaker file.
type MissingSpeakerFileError struct {
	TalkPath string
}

func (e *MissingSpeakerFileError) Error() string {
	return fmt.Sprintf("parser: %s: no file containing %q", e.TalkPath, SpeakerMarker)
}

func (e *MissingSpeakerFileError) Is(target error) bool {
	return target == ErrMissingSpeakerFile
}

// Options control one Parse run.
type Options struct {
	// SkipExtensions are extensions (without dot) ignored at every level.
	// nil means DefaultSkipExtensions.
	SkipExtensions []string
	// Dates places every parsed date in its location.
	Dates dates.Parser
	// SkipInvalidAgenda drops unparseable agenda entries instead of
	// failing the run.
	SkipInvalidAgenda bool
}

func (o Options) skipExtensions() []string {
	if o.SkipExtensions == nil {
		return DefaultSkipExtensions
	}
	return o.SkipExtensions
}

// Result is everything one Parse run produced. Slices follow directory
// listing order (sorted by name), not event date.
type Result struct {
	Events            []model.Event
	EventsWithTalks   []model.EventWithTalks
	Speakers          []model.Speaker
	Talks             []model.Talk
	TalksWithSpeakers []model.TalkWithSpeakers
	TalkSpeakers      []model.TalkSpeaker
	EventInfos        []model.EventInfo
	Agendas           []model.Agenda
	Sponsors          []model.Sponsors
	AgendaSpeakerIDs  []model.AgendaSpeakerID
}

// Parse walks root and builds the normalized entity set.
//
// Folders under root whose name carries no date are skipped. Any other
// problem (a talk without speaker file, malformed YAML, a bad Info.yml
// date or agenda time, an unreadable directory) aborts the run and the
// partial result is discarded.
func Parse(root string, opts Options) (*Result, error) {
	res := &Result{}

	events, err := walker.List(root, opts.skipExtensions())
	if err != nil {
		return nil, err
	}

	for _, entry := range events {
		if !entry.IsDir {
			appLog.Debug("skipping non-directory entry", "path", entry.Path)
			continue
		}
		if err := parseEvent(res, entry, opts); err != nil {
			return nil, err
		}
	}

	// Resolved once, after every speaker is known, so an agenda can name a
	// speaker whose talk lives in a later event folder.
	res.AgendaSpeakerIDs = ResolveAgendaSpeakers(res.Agendas, res.Speakers)

	appLog.Info("parse completed",
		"root", root,
		"events", len(res.Events),
		"talks", len(res.Talks),
		"speakers", len(res.Speakers),
		"agendas", len(res.Agendas),
		"agenda_speakers", len(res.AgendaSpeakerIDs),
	)
	return res, nil
}

func parseEvent(res *Result, entry walker.Entry, opts Options) error {
	date, ok := opts.Dates.FolderDate(entry.Name)
	if !ok {
		appLog.Debug("skipping folder without date", "folder", entry.Name)
		return nil
	}
	appLog.Debug("event", "folder", entry.Name)

	event := model.NewEvent(entry.Name, date)

	info, err := readEventInfo(entry.Path, event.ID, opts)
	if err != nil {
		return err
	}
	if info != nil {
		event.Date = info.Info.Date
		res.EventInfos = append(res.EventInfos, info.Info)
		res.Agendas = append(res.Agendas, info.Agendas...)
		res.Sponsors = append(res.Sponsors, info.Info.Sponsors)
	}

	talkEntries, err := walker.List(entry.Path, opts.skipExtensions(), eventinfo.FileName)
	if err != nil {
		return err
	}

	talks := make([]model.TalkWithSpeakers, 0, len(talkEntries))
	for _, talkEntry := range talkEntries {
		if !talkEntry.IsDir {
			appLog.Debug("skipping non-directory entry", "path", talkEntry.Path)
			continue
		}
		tws, err := parseTalk(talkEntry, event.ID, opts)
		if err != nil {
			return err
		}

		res.Talks = append(res.Talks, tws.Talk)
		res.Speakers = append(res.Speakers, tws.Speakers...)
		res.TalksWithSpeakers = append(res.TalksWithSpeakers, tws)
		for _, sp := range tws.Speakers {
			res.TalkSpeakers = append(res.TalkSpeakers, model.NewTalkSpeaker(tws.Talk.ID, sp.ID))
		}
		talks = append(talks, tws)
	}

	ewt := model.EventWithTalks{Event: event, Talks: talks}
	if info != nil {
		ewt.EventInfo = &info.Info
	}
	res.EventsWithTalks = append(res.EventsWithTalks, ewt)
	res.Events = append(res.Events, event)
	return nil
}

// readEventInfo returns nil when the event folder has no Info.yml.
func readEventInfo(eventPath, eventID string, opts Options) (*eventinfo.Built, error) {
	path := filepath.Join(eventPath, eventinfo.FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("parser: read %s: %w", path, err)
	}

	doc, err := eventinfo.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parser: %s: %w", path, err)
	}
	built, err := eventinfo.Build(doc, eventID, opts.Dates, eventinfo.Options{
		SkipInvalidAgenda: opts.SkipInvalidAgenda,
	})
	if err != nil {
		return nil, fmt.Errorf("parser: %s: %w", path, err)
	}
	return &built, nil
}

func parseTalk(entry walker.Entry, eventID string, opts Options) (model.TalkWithSpeakers, error) {
	appLog.Debug("talk", "folder", entry.Name)

	contents, err := walker.List(entry.Path, opts.skipExtensions())
	if err != nil {
		return model.TalkWithSpeakers{}, err
	}

	var speakerFile *walker.Entry
	for i := range contents {
		c := contents[i]
		if c.IsDir || !strings.Contains(c.Name, SpeakerMarker) {
			continue
		}
		if speakerFile != nil {
			appLog.Warn("ignoring extra speaker file", "talk", entry.Name, "file", c.Name, "using", speakerFile.Name)
			continue
		}
		speakerFile = &c
	}
	if speakerFile == nil {
		return model.TalkWithSpeakers{}, &MissingSpeakerFileError{TalkPath: entry.Path}
	}

	speakers, err := readSpeakers(speakerFile.Path)
	if err != nil {
		return model.TalkWithSpeakers{}, err
	}

	return model.TalkWithSpeakers{
		Talk:     model.NewTalk(entry.Name, eventID),
		Speakers: speakers,
	}, nil
}

func readSpeakers(path string) ([]model.Speaker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: read %s: %w", path, err)
	}
	var speakers []model.Speaker
	if err := yaml.Unmarshal(data, &speakers); err != nil {
		return nil, fmt.Errorf("parser: decode %s: %w", path, err)
	}
	return speakers, nil
}
