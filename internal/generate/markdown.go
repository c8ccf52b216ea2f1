package generate

import (
	"slices"
	"strings"

	"meetupdocs/internal/model"
)

// SortByDate returns events ordered by event date; events on the same day
// keep their listing order.
func SortByDate(events []model.EventWithTalks) []model.EventWithTalks {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b model.EventWithTalks) int {
		return a.Event.Date.Compare(b.Event.Date)
	})
	return out
}

// Markdown renders the README body for events in the given order.
func Markdown(events []model.EventWithTalks) string {
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, eventMarkdown(e))
	}
	return strings.Join(parts, "\n")
}

func eventMarkdown(e model.EventWithTalks) string {
	talks := make([]string, 0, len(e.Talks))
	for _, t := range e.Talks {
		talks = append(talks, talkMarkdown(t))
	}

	var b strings.Builder
	b.WriteString("# " + e.Event.Title + "\n")
	b.WriteString(strings.Join(talks, "\n") + "\n")
	if photo := e.PhotoURL(); photo != "" {
		b.WriteString("[Event Photos](" + photo + ")")
	}
	b.WriteString("\n")
	return b.String()
}

func talkMarkdown(t model.TalkWithSpeakers) string {
	speakers := make([]string, 0, len(t.Speakers))
	for _, s := range t.Speakers {
		speakers = append(speakers, speakerMarkdown(s))
	}
	return "## " + t.Talk.Title + "\n" + strings.Join(speakers, "\n")
}

func speakerMarkdown(s model.Speaker) string {
	var b strings.Builder
	b.WriteString("### By: **" + s.Name + "**")
	if s.About != "" {
		b.WriteString("\n" + s.About)
	}
	if s.Socials != nil {
		if links := s.Socials.Links(); len(links) > 0 {
			md := make([]string, 0, len(links))
			for _, l := range links {
				md = append(md, "["+l.Label+"]("+l.URL+")")
			}
			b.WriteString("\n\nFollow on: " + strings.Join(md, ", "))
		}
	}
	return b.String()
}
