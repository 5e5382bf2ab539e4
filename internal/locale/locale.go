package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundle     *i18n.Bundle
	bundleErr  error
	bundleOnce sync.Once
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			bundleErr = fmt.Errorf("failed to read embedded locales: %w", err)
			return
		}
		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
				continue
			}
			if _, err := b.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
				bundleErr = fmt.Errorf("failed to load locale %s: %w", name, err)
				return
			}
			log.WithField("file", name).Debug("locale loaded")
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Supported lists the language tags that ship with the binary.
func Supported() []language.Tag {
	b, err := loadBundle()
	if err != nil {
		return []language.Tag{language.English}
	}
	return b.LanguageTags()
}

// Names resolves weekday and month labels for one language.
type Names struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// New picks the supported language closest to tag (a BCP-47 string such as
// "zh-CN" or "fr"). Unknown or empty tags resolve to English.
func New(tag string) (*Names, error) {
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	want := language.English
	if tag != "" {
		parsed, err := language.Parse(tag)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", tag, err)
		}
		want = parsed
	}
	supported := b.LanguageTags()
	_, i, confidence := language.NewMatcher(supported).Match(want)
	matched := supported[i]
	if confidence == language.No {
		matched = language.English
	}
	log.WithFields(log.Fields{"requested": tag, "matched": matched.String()}).Debug("locale resolved")
	return &Names{
		tag:       matched,
		localizer: i18n.NewLocalizer(b, matched.String()),
	}, nil
}

// Tag is the resolved language.
func (n *Names) Tag() language.Tag {
	return n.tag
}

// WeekdayShort implements calendar.Names.
func (n *Names) WeekdayShort(w time.Weekday) string {
	return n.lookup("Weekday"+w.String(), w.String()[:3])
}

// MonthLong implements calendar.Names.
func (n *Names) MonthLong(m time.Month) string {
	return n.lookup("Month"+m.String(), m.String())
}

func (n *Names) lookup(id, fallback string) string {
	if n == nil || n.localizer == nil {
		return fallback
	}
	msg, err := n.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
