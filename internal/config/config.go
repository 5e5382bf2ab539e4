package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"

	"github.com/lululau/weekcal/internal/calendar"
)

// EnvPrefix prefixes environment overrides, e.g. WEEKCAL_WEEK_START=monday.
const EnvPrefix = "WEEKCAL_"

// Application is the top-level configuration.
type Application struct {
	// WeekStart is the weekday of the first grid column ("sunday", "monday", ...).
	WeekStart string `koanf:"week_start"`
	// Locale is a BCP-47 tag for weekday and month names.
	Locale string `koanf:"locale"`
	// DefaultView is "week" or "month".
	DefaultView string `koanf:"default_view"`
	// EventsFile overrides the cached feed and built-in fixture.
	EventsFile string `koanf:"events_file"`
	// Lunar toggles lunar labels under day numbers.
	Lunar    bool   `koanf:"lunar"`
	NoColor  bool   `koanf:"no_color"`
	LogLevel string `koanf:"log_level"`
}

// Defaults returns the built-in configuration.
func Defaults() Application {
	return Application{
		WeekStart:   "sunday",
		Locale:      "en",
		DefaultView: "week",
		Lunar:       true,
		LogLevel:    "warn",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/weekcal/config.yaml or its platform
// equivalent. It returns "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "weekcal", "config.yaml")
}

// Load layers defaults, the YAML file at path (optional) and WEEKCAL_*
// environment variables, then normalizes the result.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Application{}, fmt.Errorf("error loading config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if os.IsNotExist(err) {
				log.Debugf("Config file not found at %s, using defaults and environment variables", path)
			} else {
				return Application{}, fmt.Errorf("error loading config from YAML: %w", err)
			}
		} else {
			log.Debugf("Loaded configuration from file: %s", path)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			// Keys are flat, so underscores are kept.
			return strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), v
		},
	}), nil)
	if err != nil {
		return Application{}, fmt.Errorf("error loading config from envs: %w", err)
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	app.Normalize()
	return app, nil
}

// Normalize replaces unknown values with defaults so a partial or stale file
// still yields a usable layout.
func (a *Application) Normalize() {
	if _, ok := parseWeekday(a.WeekStart); !ok {
		if a.WeekStart != "" {
			log.Warnf("unknown week_start %q, using sunday", a.WeekStart)
		}
		a.WeekStart = "sunday"
	}
	if _, err := calendar.ParseViewMode(a.DefaultView); err != nil {
		a.DefaultView = "week"
	}
	if a.Locale == "" {
		a.Locale = "en"
	}
	if _, err := log.ParseLevel(a.LogLevel); err != nil {
		a.LogLevel = "warn"
	}
}

// Weekday returns the configured first column.
func (a Application) Weekday() time.Weekday {
	day, _ := parseWeekday(a.WeekStart)
	return day
}

// ViewMode returns the configured initial view.
func (a Application) ViewMode() calendar.ViewMode {
	mode, _ := calendar.ParseViewMode(a.DefaultView)
	return mode
}

// Level returns the configured log level.
func (a Application) Level() log.Level {
	level, err := log.ParseLevel(a.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

func parseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Sunday, false
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return time.Sunday, false
}
