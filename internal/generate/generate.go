// Package generate turns a parse result into the files published next to
// the event folders: the README, one JSON array per collection, and the
// optional calendar feed and HTML preview.
package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"meetupdocs/internal/config"
	appLog "meetupdocs/internal/log"
	"meetupdocs/internal/model"
	"meetupdocs/internal/parser"
)

// Run writes every configured output into dir.
func Run(dir string, res *parser.Result, out config.Outputs) error {
	readme := Markdown(SortByDate(res.EventsWithTalks))
	if err := writeFile(dir, out.Readme, []byte(readme)); err != nil {
		return err
	}

	exports := []struct {
		name string
		v    any
	}{
		{out.EventsJSON, nonNil(res.Events)},
		{out.SpeakersJSON, UniqueSpeakers(res.Speakers)},
		{out.TalksJSON, nonNil(res.Talks)},
		{out.TalkSpeakersJSON, nonNil(res.TalkSpeakers)},
		{out.EventInfosJSON, nonNil(res.EventInfos)},
		{out.SponsorsJSON, nonNil(res.Sponsors)},
		{out.AgendasJSON, nonNil(res.Agendas)},
		{out.AgendaSpeakers, nonNil(res.AgendaSpeakerIDs)},
	}
	for _, e := range exports {
		if err := writeJSON(dir, e.name, e.v); err != nil {
			return err
		}
	}

	if out.CalendarICS != "" {
		var buf bytes.Buffer
		if err := WriteCalendar(&buf, res, calendarName(dir)); err != nil {
			return fmt.Errorf("generate: calendar: %w", err)
		}
		if err := writeFile(dir, out.CalendarICS, buf.Bytes()); err != nil {
			return err
		}
	}

	if out.ReadmeHTML != "" {
		html, err := HTML(readme)
		if err != nil {
			return err
		}
		if err := writeFile(dir, out.ReadmeHTML, html); err != nil {
			return err
		}
	}

	appLog.Info("outputs written", "dir", dir, "readme", out.Readme)
	return nil
}

func calendarName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(dir)
}

// UniqueSpeakers drops repeated speaker ids, keeping the first occurrence.
// The same person speaking at several events is listed once.
func UniqueSpeakers(speakers []model.Speaker) []model.Speaker {
	seen := make(map[string]struct{}, len(speakers))
	out := make([]model.Speaker, 0, len(speakers))
	for _, s := range speakers {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}

// nonNil makes empty collections encode as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(dir, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("generate: encode %s: %w", name, err)
	}
	return writeFile(dir, name, append(data, '\n'))
}

// writeFile replaces dir/name atomically via a temp file + rename.
func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, ".meetupdocs-*.tmp")
	if err != nil {
		return fmt.Errorf("generate: %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("generate: %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("generate: %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("generate: %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("generate: %s: %w", path, err)
	}

	appLog.Debug("wrote file", "path", path, "bytes", len(data))
	return nil
}
