package model

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"meetupdocs/internal/stableid"
)

// Socials holds a speaker's optional profile links.
type Socials struct {
	LinkedIn  string `yaml:"linkedIn,omitempty" json:"linkedIn,omitempty"`
	Github    string `yaml:"github,omitempty" json:"github,omitempty"`
	Portfolio string `yaml:"portfolio,omitempty" json:"portfolio,omitempty"`
	Twitter   string `yaml:"twitter,omitempty" json:"twitter,omitempty"`
}

// Link is one labelled profile URL.
type Link struct {
	Label string
	URL   string
}

// Links returns the set links in display order.
func (s Socials) Links() []Link {
	var out []Link
	for _, l := range []Link{
		{"LinkedIn", s.LinkedIn},
		{"Github", s.Github},
		{"Portfolio", s.Portfolio},
		{"Twitter", s.Twitter},
	} {
		if l.URL != "" {
			out = append(out, l)
		}
	}
	return out
}

// Speaker is one entry of a talk's speaker file.
type Speaker struct {
	ID      string   `yaml:"-" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Socials *Socials `yaml:"socials,omitempty" json:"socials,omitempty"`
	About   string   `yaml:"about,omitempty" json:"about,omitempty"`
	Image   string   `yaml:"image,omitempty" json:"image,omitempty"`
}

// NewSpeaker hashes (name, LinkedIn URL or "").
func NewSpeaker(name string, socials *Socials, about, image string) Speaker {
	s := Speaker{Name: name, Socials: socials, About: about, Image: image}
	s.ID = speakerID(name, socials)
	return s
}

func speakerID(name string, socials *Socials) string {
	linkedIn := ""
	if socials != nil {
		linkedIn = socials.LinkedIn
	}
	return stableid.New(name, linkedIn)
}

// UnmarshalYAML decodes a speaker record and assigns its id. Older speaker
// files use "speaker" instead of "name"; it is read when "name" is absent.
func (s *Speaker) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name    string   `yaml:"name"`
		Legacy  string   `yaml:"speaker"`
		Socials *Socials `yaml:"socials"`
		About   string   `yaml:"about"`
		Image   string   `yaml:"image"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	name := raw.Name
	if name == "" {
		name = raw.Legacy
	}
	if name == "" {
		return fmt.Errorf("speaker at line %d: name is required", node.Line)
	}
	*s = NewSpeaker(name, raw.Socials, raw.About, raw.Image)
	return nil
}
