package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/lululau/weekcal/internal/calendar"
)

// CacheMaxAge is how long a downloaded feed is considered fresh.
const CacheMaxAge = 7 * 24 * time.Hour

// ErrUnsupportedFormat is returned for files that are not JSON, YAML or ICS.
var ErrUnsupportedFormat = errors.New("unsupported events file format (want .json, .yaml, .yml, .ics or .ical)")

// Fixture returns the sample events shipped with the binary.
func Fixture() []calendar.Event {
	return []calendar.Event{
		{ID: 1, Title: "Team Meeting", Date: "2025-05-10", StartTime: "10:00", EndTime: "11:00", Type: "meeting"},
		{ID: 2, Title: "Project Deadline", Date: "2025-05-10", StartTime: "14:00", EndTime: "16:00", Type: "deadline"},
		{ID: 3, Title: "Code Review", Date: "2025-05-15", StartTime: "09:00", EndTime: "10:00", Type: "review"},
		{ID: 4, Title: "Lunch with Sabrina", Date: "2025-05-02", StartTime: "12:00", EndTime: "13:00", Type: "social"},
		{ID: 5, Title: "Breakfast with Steven", Date: "2025-05-04", StartTime: "08:00", EndTime: "09:00", Type: "social"},
		{ID: 6, Title: "Weekly Stand Up", Date: "2025-05-08", StartTime: "13:00", EndTime: "14:30", Type: "meeting"},
	}
}

// LoadFromFile reads events from path, choosing the decoder by extension.
func LoadFromFile(path string) ([]calendar.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read events file: %w", err)
	}
	events, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(log.Fields{"path": path, "count": len(events)}).Debug("events loaded")
	return events, nil
}

// Decode parses raw bytes in the format named by ext (".json", ".yaml",
// ".yml" or ".ics").
func Decode(ext string, data []byte) ([]calendar.Event, error) {
	switch strings.ToLower(ext) {
	case ".json":
		var events []calendar.Event
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, fmt.Errorf("failed to parse events JSON: %w", err)
		}
		return events, nil
	case ".yaml", ".yml":
		var events []calendar.Event
		if err := yaml.Unmarshal(data, &events); err != nil {
			return nil, fmt.Errorf("failed to parse events YAML: %w", err)
		}
		return events, nil
	case ".ics", ".ical":
		return ParseICS(bytes.NewReader(data))
	default:
		return nil, ErrUnsupportedFormat
	}
}

// GetCachePath returns where downloaded feeds are stored.
func GetCachePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "weekcal", "events.json"), nil
}

// LoadFromCache reads the last downloaded feed.
func LoadFromCache() ([]calendar.Event, error) {
	cachePath, err := GetCachePath()
	if err != nil {
		return nil, err
	}
	return LoadFromFile(cachePath)
}

// IsCacheValid checks that the cache file exists and is younger than
// CacheMaxAge.
func IsCacheValid(cachePath string) (bool, error) {
	info, err := os.Stat(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return time.Since(info.ModTime()) < CacheMaxAge, nil
}

// Source describes where a loaded event list came from.
type Source string

const (
	SourceFile    Source = "file"
	SourceCache   Source = "cache"
	SourceFixture Source = "fixture"
)

// Resolve picks the event list by precedence: an explicit path, then a fresh
// cached download, then the built-in fixture. A missing or stale cache is not
// an error; an unreadable explicit path is.
func Resolve(path string) ([]calendar.Event, Source, error) {
	if path != "" {
		evs, err := LoadFromFile(path)
		if err != nil {
			return nil, SourceFile, err
		}
		return evs, SourceFile, nil
	}

	if cachePath, err := GetCachePath(); err == nil {
		valid, err := IsCacheValid(cachePath)
		switch {
		case err != nil:
			log.WithError(err).Warn("could not stat events cache")
		case valid:
			evs, err := LoadFromFile(cachePath)
			if err == nil {
				return evs, SourceCache, nil
			}
			log.WithError(err).Warn("events cache unreadable, using fixture")
		default:
			log.WithField("path", cachePath).Debug("events cache missing or stale")
		}
	}
	return Fixture(), SourceFixture, nil
}
