package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/robfig/cron/v3"

	"meetupdocs/internal/config"
	"meetupdocs/internal/dates"
	"meetupdocs/internal/generate"
	appLog "meetupdocs/internal/log"
	"meetupdocs/internal/parser"
)

const version = "0.1.0"

// flagConfig holds CLI flag values; non-empty values override the config file.
type flagConfig struct {
	path       string
	configPath string
	initConfig bool
	skipExt    string
	timezone   string
	schedule   string
	logLevel   string
	readme     string
	eventsJSON string
	speakers   string
	talks      string
	talkSpkrs  string
	calendar   string
	readmeHTML string
	skipAgenda bool
}

func main() {
	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		appLog.Error("meetupdocs failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	conf, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", flags.configPath, err)
	}
	applyFlags(conf, flags)
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	if flags.initConfig {
		if flags.configPath == "" {
			return errors.New("-init-config needs -config")
		}
		if err := conf.Save(flags.configPath); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		appLog.Info("config written", "config_path", flags.configPath)
	}

	loc, err := conf.Location()
	if err != nil {
		return fmt.Errorf("timezone %q: %w", conf.Timezone, err)
	}

	appLog.Info("meetupdocs starting",
		"version", version,
		"path", flags.path,
		"timezone", loc.String(),
		"skip_extensions", strings.Join(conf.SkipExtensions, ","),
		"schedule", conf.Schedule,
	)

	opts := parser.Options{
		SkipExtensions:    conf.SkipExtensions,
		Dates:             dates.NewParser(loc),
		SkipInvalidAgenda: conf.SkipInvalidAgenda,
	}

	if conf.Schedule == "" {
		return generateOnce(flags.path, opts, conf.Outputs)
	}
	return runScheduled(ctx, conf.Schedule, flags.path, opts, conf.Outputs)
}

func generateOnce(path string, opts parser.Options, out config.Outputs) error {
	res, err := parser.Parse(path, opts)
	if err != nil {
		return err
	}
	return generate.Run(path, res, out)
}

// runScheduled regenerates once immediately, then on every cron tick until
// ctx is canceled. A failed run is logged and the next tick tries again.
func runScheduled(ctx context.Context, spec, path string, opts parser.Options, out config.Outputs) error {
	logger := cronLogger{}
	c := cron.New(cron.WithLogger(logger), cron.WithChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	))

	job := func() {
		if err := generateOnce(path, opts, out); err != nil {
			appLog.Error("scheduled generation failed", err, "path", path)
		}
	}
	if _, err := c.AddFunc(spec, job); err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}

	job()
	c.Start()
	<-ctx.Done()
	appLog.Info("shutdown requested, waiting for running generation")
	<-c.Stop().Done()
	appLog.Info("meetupdocs exiting")
	return nil
}

// cronLogger sends cron's own messages through the app logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...any) {
	appLog.Debug("cron: "+msg, kv...)
}

func (cronLogger) Error(err error, msg string, kv ...any) {
	appLog.Error("cron: "+msg, err, kv...)
}

func parseFlags(args []string, stderr io.Writer) (flagConfig, error) {
	var cfg flagConfig

	fs := flag.NewFlagSet("meetupdocs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: meetupdocs [flags] <path>")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.configPath, "config", "", "Path to config file (optional)")
	fs.BoolVar(&cfg.initConfig, "init-config", false, "Write the effective config to -config")
	fs.StringVar(&cfg.skipExt, "skip-ext", "", "Comma-separated file extensions to skip (default md,json,sh)")
	fs.StringVar(&cfg.timezone, "timezone", "", "IANA timezone for folder and Info.yml dates (default UTC)")
	fs.StringVar(&cfg.schedule, "schedule", "", "Cron spec; keep running and regenerate on every tick")
	fs.StringVar(&cfg.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&cfg.readme, "readme", "", "README file name (default README.md)")
	fs.StringVar(&cfg.eventsJSON, "events-json", "", "Events JSON file name (default events.json)")
	fs.StringVar(&cfg.speakers, "speakers-json", "", "Speakers JSON file name (default speakers.json)")
	fs.StringVar(&cfg.talks, "talks-json", "", "Talks JSON file name (default talks.json)")
	fs.StringVar(&cfg.talkSpkrs, "talk-speakers-json", "", "Talk-speaker JSON file name (default talkspeakers.json)")
	fs.StringVar(&cfg.calendar, "calendar", "", "ICS calendar file name (default events.ics)")
	fs.StringVar(&cfg.readmeHTML, "readme-html", "", "Also render the README as HTML to this file")
	fs.BoolVar(&cfg.skipAgenda, "skip-invalid-agenda", false, "Skip Info.yml agenda entries that fail to parse instead of aborting")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return cfg, errors.New("exactly one <path> argument is required")
	}
	cfg.path = fs.Arg(0)

	return cfg, nil
}

func applyFlags(conf *config.Config, f flagConfig) {
	if f.skipAgenda {
		conf.SkipInvalidAgenda = true
	}
	if f.skipExt != "" {
		conf.SkipExtensions = splitCSV(f.skipExt)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&conf.Timezone, f.timezone)
	set(&conf.Schedule, f.schedule)
	set(&conf.LogLevel, f.logLevel)
	set(&conf.Outputs.Readme, f.readme)
	set(&conf.Outputs.EventsJSON, f.eventsJSON)
	set(&conf.Outputs.SpeakersJSON, f.speakers)
	set(&conf.Outputs.TalksJSON, f.talks)
	set(&conf.Outputs.TalkSpeakersJSON, f.talkSpkrs)
	set(&conf.Outputs.CalendarICS, f.calendar)
	set(&conf.Outputs.ReadmeHTML, f.readmeHTML)
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring
// empty entries and a leading dot on each extension.
func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimPrefix(strings.TrimSpace(part), "."); t != "" {
			out = append(out, t)
		}
	}
	return out
}
