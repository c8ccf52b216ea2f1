package generate

import (
	"io"
	"slices"
	"time"

	ical "github.com/arran4/golang-ical"

	"meetupdocs/internal/model"
	"meetupdocs/internal/parser"
)

const (
	calendarProductID = "-//meetupdocs//events//EN"
	uidSuffix         = "@meetupdocs"
	// lastAgendaSlot is the length given to the final agenda item of a day.
	lastAgendaSlot = 30 * time.Minute
)

// Calendar builds an iCalendar feed: one all-day VEVENT per event and one
// timed VEVENT per agenda item. DTSTAMP is derived from the event date so
// the same input produces the same file.
func Calendar(res *parser.Result, name string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(calendarProductID)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	infoByEvent := make(map[string]model.EventInfo, len(res.EventInfos))
	for _, info := range res.EventInfos {
		infoByEvent[info.EventID] = info
	}
	agendasByEvent := make(map[string][]model.Agenda)
	for _, a := range res.Agendas {
		agendasByEvent[a.EventID] = append(agendasByEvent[a.EventID], a)
	}

	for _, ewt := range SortByDate(res.EventsWithTalks) {
		ev := ewt.Event
		info, hasInfo := infoByEvent[ev.ID]

		vevent := cal.AddEvent(ev.ID + uidSuffix)
		vevent.SetDtStampTime(ev.Date.UTC())
		vevent.SetAllDayStartAt(ev.Date)
		vevent.SetAllDayEndAt(ev.Date.AddDate(0, 0, 1))
		vevent.SetSummary(ev.Title)
		if hasInfo {
			vevent.SetDescription(info.About)
			vevent.SetLocation(locationText(info.Location))
			if info.PhotoURL != "" {
				vevent.SetURL(info.PhotoURL)
			}
		}

		addAgenda(cal, ev, info, hasInfo, agendasByEvent[ev.ID])
	}

	return cal
}

func addAgenda(cal *ical.Calendar, ev model.Event, info model.EventInfo, hasInfo bool, agendas []model.Agenda) {
	sorted := slices.Clone(agendas)
	slices.SortStableFunc(sorted, func(a, b model.Agenda) int {
		return a.Time.Compare(b.Time)
	})

	for i, a := range sorted {
		end := a.Time.Add(lastAgendaSlot)
		if i+1 < len(sorted) && sorted[i+1].Time.After(a.Time) {
			end = sorted[i+1].Time
		}

		vevent := cal.AddEvent(a.ID + uidSuffix)
		vevent.SetDtStampTime(ev.Date.UTC())
		vevent.SetStartAt(a.Time)
		vevent.SetEndAt(end)
		vevent.SetSummary(a.Title)
		vevent.SetDescription(ev.Title + " (" + string(a.Type) + ")")
		if hasInfo {
			vevent.SetLocation(locationText(info.Location))
		}
	}
}

func locationText(l model.Location) string {
	switch {
	case l.Name != "" && l.Address != "":
		return l.Name + ", " + l.Address
	case l.Name != "":
		return l.Name
	default:
		return l.Address
	}
}

// WriteCalendar serializes the feed for res to w.
func WriteCalendar(w io.Writer, res *parser.Result, name string) error {
	return Calendar(res, name).SerializeTo(w)
}
