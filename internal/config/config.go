package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	// Timezone must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Outputs names every file written next to the event folders. An empty
// CalendarICS or ReadmeHTML disables that output.
type Outputs struct {
	Readme           string `yaml:"readme" json:"readme"`
	EventsJSON       string `yaml:"events_json" json:"events_json"`
	SpeakersJSON     string `yaml:"speakers_json" json:"speakers_json"`
	TalksJSON        string `yaml:"talks_json" json:"talks_json"`
	TalkSpeakersJSON string `yaml:"talk_speakers_json" json:"talk_speakers_json"`
	EventInfosJSON   string `yaml:"event_infos_json" json:"event_infos_json"`
	SponsorsJSON     string `yaml:"sponsors_json" json:"sponsors_json"`
	AgendasJSON      string `yaml:"agendas_json" json:"agendas_json"`
	AgendaSpeakers   string `yaml:"agenda_speakers_json" json:"agenda_speakers_json"`
	CalendarICS      string `yaml:"calendar_ics" json:"calendar_ics"`
	ReadmeHTML       string `yaml:"readme_html" json:"readme_html"`
}

// Config is the generator configuration.
type Config struct {
	// SkipExtensions are file extensions (no dot) ignored while walking.
	SkipExtensions []string `yaml:"skip_extensions" json:"skip_extensions"`

	// Timezone is the IANA zone folder and Info.yml dates are read in.
	Timezone string `yaml:"timezone" json:"timezone"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Schedule is a cron spec (e.g. "*/30 * * * *"). When set, the
	// generator keeps running and regenerates on every tick.
	Schedule string `yaml:"schedule,omitempty" json:"schedule,omitempty"`

	// SkipInvalidAgenda drops unparseable agenda entries with a warning
	// instead of failing the run.
	SkipInvalidAgenda bool `yaml:"skip_invalid_agenda" json:"skip_invalid_agenda"`

	Outputs Outputs `yaml:"outputs" json:"outputs"`
}

func defaultSkipExtensions() []string {
	return []string{"md", "json", "sh"}
}

func defaultOutputs() Outputs {
	return Outputs{
		Readme:           "README.md",
		EventsJSON:       "events.json",
		SpeakersJSON:     "speakers.json",
		TalksJSON:        "talks.json",
		TalkSpeakersJSON: "talkspeakers.json",
		EventInfosJSON:   "eventinfos.json",
		SponsorsJSON:     "sponsors.json",
		AgendasJSON:      "agendas.json",
		AgendaSpeakers:   "agendaspeakers.json",
		CalendarICS:      "events.ics",
		ReadmeHTML:       "",
	}
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		SkipExtensions: defaultSkipExtensions(),
		Timezone:       "UTC",
		LogLevel:       "info",
		Outputs:        defaultOutputs(),
	}
}

// Normalize fills in missing values so partially-filled files still work.
// Optional outputs (calendar, HTML) are left as configured.
func (c *Config) Normalize() {
	if c.SkipExtensions == nil {
		c.SkipExtensions = defaultSkipExtensions()
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	def := defaultOutputs()
	o := &c.Outputs
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&o.Readme, def.Readme)
	fill(&o.EventsJSON, def.EventsJSON)
	fill(&o.SpeakersJSON, def.SpeakersJSON)
	fill(&o.TalksJSON, def.TalksJSON)
	fill(&o.TalkSpeakersJSON, def.TalkSpeakersJSON)
	fill(&o.EventInfosJSON, def.EventInfosJSON)
	fill(&o.SponsorsJSON, def.SponsorsJSON)
	fill(&o.AgendasJSON, def.AgendasJSON)
	fill(&o.AgendaSpeakers, def.AgendaSpeakers)
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load loads configuration from the given YAML path.
//
// An empty path or a missing file yields DefaultConfig; nothing is written.
// An existing file is decoded and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	// Keys present in the file replace the defaults; calendar_ics: "" in
	// the file switches the calendar off.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists.
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".meetupdocs-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method that delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
