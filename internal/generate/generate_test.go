package generate_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetupdocs/internal/config"
	"meetupdocs/internal/dates"
	"meetupdocs/internal/generate"
	"meetupdocs/internal/model"
	"meetupdocs/internal/parser"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const johny = `- name: Johny Appleseed
  socials:
    linkedIn: https://www.linkedin.com/in/johny-appleseed-0a0123456/
  about: Apple Engineer
`

func parse(t *testing.T, root string) *parser.Result {
	t.Helper()
	res, err := parser.Parse(root, parser.Options{Dates: dates.NewParser(time.UTC)})
	require.NoError(t, err)
	return res
}

func TestMarkdown_singleEvent(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "1. Apr 20, 2025", "Talk1", "Speaker.yml"), johny)

	md := generate.Markdown(parse(t, root).EventsWithTalks)

	assert.Contains(t, md, "# 1. Apr 20, 2025\n")
	assert.Contains(t, md, "## Talk1\n")
	assert.Contains(t, md, "### By: **Johny Appleseed**\nApple Engineer\n")
	assert.Contains(t, md, "Follow on: [LinkedIn](https://www.linkedin.com/in/johny-appleseed-0a0123456/)")
}

func TestMarkdown_exactLayout(t *testing.T) {
	event := model.NewEvent("2. May 18, 2025", time.Date(2025, time.May, 18, 0, 0, 0, 0, time.UTC))
	talk := model.NewTalk("Concurrency", event.ID)
	info := model.NewEventInfo(event.ID, event.Date, "", model.Location{}, model.Sponsors{}, "https://photos/may")
	ewt := model.EventWithTalks{
		Event: event,
		Talks: []model.TalkWithSpeakers{{
			Talk: talk,
			Speakers: []model.Speaker{
				model.NewSpeaker("Ann", &model.Socials{Github: "https://gh/ann", Twitter: "https://x/ann"}, "", ""),
				model.NewSpeaker("Bob", &model.Socials{}, "Gopher", ""),
			},
		}},
		EventInfo: &info,
	}

	want := "# 2. May 18, 2025\n" +
		"## Concurrency\n" +
		"### By: **Ann**\n\nFollow on: [Github](https://gh/ann), [Twitter](https://x/ann)\n" +
		"### By: **Bob**\nGopher\n" +
		"[Event Photos](https://photos/may)\n"

	assert.Equal(t, want, generate.Markdown([]model.EventWithTalks{ewt}))
}

func TestSortByDate(t *testing.T) {
	mk := func(title string, day int) model.EventWithTalks {
		return model.EventWithTalks{Event: model.NewEvent(title, time.Date(2025, time.October, day, 0, 0, 0, 0, time.UTC))}
	}
	events := []model.EventWithTalks{mk("b", 3), mk("a", 1), mk("c", 3)}

	sorted := generate.SortByDate(events)

	assert.Equal(t, []string{"a", "b", "c"}, []string{sorted[0].Event.Title, sorted[1].Event.Title, sorted[2].Event.Title})
	assert.Equal(t, "b", events[0].Event.Title)
}

func TestUniqueSpeakers(t *testing.T) {
	a := model.NewSpeaker("Ann", nil, "first", "")
	again := model.NewSpeaker("Ann", nil, "second", "")
	b := model.NewSpeaker("Bob", nil, "", "")

	got := generate.UniqueSpeakers([]model.Speaker{a, b, again})

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].About)
}

const infoYML = `about: October meetup
date: October 11, 2025
location:
  name: Acme HQ
  map: https://maps.example/acme
  address: 1 Infinite Loop
  coordinates: {latitude: 18.5, longitude: 73.8, zoom: 14}
sponsors:
  vanue:
    name: Acme
    website: https://acme.example
    image: acme.png
  food: Pizza Place
agenda:
  - time: "10:00 AM"
    title: Registration
    type: registration
  - time: "10:30 AM"
    title: Talk
    speakers: [Johny Appleseed]
    type: talk
`

func TestRun_writesAllOutputs(t *testing.T) {
	root := t.TempDir()
	event := filepath.Join(root, "1. Oct 4, 2025")
	write(t, filepath.Join(event, "Info.yml"), infoYML)
	write(t, filepath.Join(event, "Talk1", "Speaker.yml"), johny)
	write(t, filepath.Join(root, "2. Nov 8, 2025", "Talk1", "Speaker.yml"), johny)
	write(t, filepath.Join(root, "README.md"), "stale")

	res := parse(t, root)
	out := config.DefaultConfig().Outputs
	out.ReadmeHTML = "README.html"
	require.NoError(t, generate.Run(root, res, out))

	readme, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(readme), "# 1. Oct 4, 2025\n"))
	assert.NotContains(t, string(readme), "stale")

	var speakers []map[string]any
	readJSON(t, filepath.Join(root, "speakers.json"), &speakers)
	assert.Len(t, speakers, 1)
	assert.Len(t, res.Speakers, 2)

	var events []map[string]any
	readJSON(t, filepath.Join(root, "events.json"), &events)
	require.Len(t, events, 2)
	assert.Equal(t, "2025-10-11T00:00:00Z", events[0]["date"])

	var infos []map[string]any
	readJSON(t, filepath.Join(root, "eventinfos.json"), &infos)
	require.Len(t, infos, 1)
	sponsors := infos[0]["sponsors"].(map[string]any)
	assert.Equal(t, res.Sponsors[0].Venue.ID, sponsors["vanueSponsorID"])
	assert.Equal(t, res.Sponsors[0].Food.ID, sponsors["foodSponsorID"])

	var agendas []map[string]any
	readJSON(t, filepath.Join(root, "agendas.json"), &agendas)
	require.Len(t, agendas, 2)
	assert.NotContains(t, agendas[1], "speakers")

	var links []map[string]any
	readJSON(t, filepath.Join(root, "agendaspeakers.json"), &links)
	assert.Len(t, links, 2)

	for _, name := range []string{"talks.json", "talkspeakers.json", "sponsors.json"} {
		_, err := os.Stat(filepath.Join(root, name))
		assert.NoError(t, err, name)
	}

	ics, err := os.ReadFile(filepath.Join(root, "events.ics"))
	require.NoError(t, err)
	assert.Contains(t, string(ics), "BEGIN:VCALENDAR")
	assert.Equal(t, 4, strings.Count(string(ics), "BEGIN:VEVENT"))

	html, err := os.ReadFile(filepath.Join(root, "README.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1")
	assert.Contains(t, string(html), "<strong>Johny Appleseed</strong>")

	// Generated files are skipped on the next run.
	again := parse(t, root)
	assert.Equal(t, res.Events, again.Events)
}

func TestRun_emptyCollectionsAreArrays(t *testing.T) {
	root := t.TempDir()
	out := config.DefaultConfig().Outputs
	out.CalendarICS = ""

	require.NoError(t, generate.Run(root, parse(t, root), out))

	data, err := os.ReadFile(filepath.Join(root, "agendas.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
	_, err = os.Stat(filepath.Join(root, "events.ics"))
	assert.True(t, os.IsNotExist(err))
}

func TestCalendar_agendaSlots(t *testing.T) {
	root := t.TempDir()
	event := filepath.Join(root, "1. Oct 4, 2025")
	write(t, filepath.Join(event, "Info.yml"), infoYML)
	write(t, filepath.Join(event, "Talk1", "Speaker.yml"), johny)

	var buf bytes.Buffer
	require.NoError(t, generate.WriteCalendar(&buf, parse(t, root), "Meetups"))

	out := buf.String()
	assert.Contains(t, out, "X-WR-CALNAME:Meetups")
	assert.Contains(t, out, "SUMMARY:Registration")
	assert.Contains(t, out, "20251011T100000Z")
	assert.Contains(t, out, "20251011T103000Z")
	assert.Contains(t, out, "20251011T110000Z")
	assert.Contains(t, out, "Acme HQ")
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}
