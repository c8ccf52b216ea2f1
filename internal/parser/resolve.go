package parser

import "meetupdocs/internal/model"

// ResolveAgendaSpeakers links agenda speaker names to speakers with exactly
// the same name. A name with no match yields nothing; a name shared by
// several speakers yields one row per speaker.
func ResolveAgendaSpeakers(agendas []model.Agenda, speakers []model.Speaker) []model.AgendaSpeakerID {
	byName := make(map[string][]string, len(speakers))
	for _, sp := range speakers {
		byName[sp.Name] = append(byName[sp.Name], sp.ID)
	}

	var out []model.AgendaSpeakerID
	for _, agenda := range agendas {
		for _, name := range agenda.Speakers {
			for _, speakerID := range byName[name] {
				out = append(out, model.NewAgendaSpeakerID(agenda.ID, speakerID))
			}
		}
	}
	return out
}
