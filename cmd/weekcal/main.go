package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/lululau/weekcal/internal/calendar"
	"github.com/lululau/weekcal/internal/config"
	"github.com/lululau/weekcal/internal/events"
	"github.com/lululau/weekcal/internal/locale"
	"github.com/lululau/weekcal/internal/render"
	"github.com/lululau/weekcal/internal/tui"
)

var (
	monthFlag        = flag.Bool("m", false, "start in month view")
	plain            = flag.Bool("n", false, "render once and exit (non-interactive)")
	eventsFile       = flag.String("e", "", "load events from a .json, .yaml or .ics file")
	eventsFileLong   = flag.String("events", "", "load events from a .json, .yaml or .ics file")
	updateEvents     = flag.String("u", "", "download an events feed from URL into the cache")
	updateEventsLong = flag.String("update-events", "", "download an events feed from URL into the cache")
	configFile       = flag.String("c", config.DefaultPath(), "configuration file")
	noColor          = flag.Bool("N", false, "disable all colour output")
	noColorLong      = flag.Bool("no-color", false, "disable all colour output")
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] [YYYY-MM-DD]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), `
  no arguments   show the current week
  -m             show the current month
  2025-05-10     show the week containing 10 May 2025
  -m 2025-05-10  show May 2025

options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.Level())

	if *noColor || *noColorLong || cfg.NoColor {
		render.SetNoColor(true)
		tui.SetNoColor(true)
	}

	if feed := firstNonEmpty(*updateEvents, *updateEventsLong); feed != "" {
		if err := events.DownloadEvents(feed); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	evs, source, err := events.Resolve(firstNonEmpty(*eventsFile, *eventsFileLong, cfg.EventsFile))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	names, err := locale.New(cfg.Locale)
	if err != nil {
		log.WithError(err).Warn("falling back to English labels")
	}

	opts := []calendar.Option{
		calendar.WithEvents(evs),
		calendar.WithWeekStart(cfg.Weekday()),
		calendar.WithLunar(cfg.Lunar),
	}
	if names != nil {
		opts = append(opts, calendar.WithNames(names))
	}
	service := calendar.NewService(opts...)
	if n := service.Index().Unmatched(); n > 0 {
		log.Warnf("%d events have malformed dates and will not be shown", n)
	}

	clock, err := parseClock(service, cfg.ViewMode(), *monthFlag, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	notice := fmt.Sprintf("%d events from %s", len(evs), source)
	if *plain {
		if err := render.RunPlain(render.PlainOptions{
			Service: service,
			Clock:   clock,
			Notice:  notice,
		}); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	if err := tui.Run(service, clock, notice); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseClock(svc *calendar.Service, mode calendar.ViewMode, month bool, args []string) (*calendar.Clock, error) {
	clock := svc.NewClock()
	if month {
		mode = calendar.ModeMonth
	}
	clock.SetViewMode(mode)

	switch len(args) {
	case 0:
		return clock, nil
	case 1:
		anchor, err := calendar.ParseKey(args[0])
		if err != nil {
			return nil, err
		}
		clock.Jump(anchor)
		return clock, nil
	default:
		return nil, errors.New("too many arguments, see --help")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
