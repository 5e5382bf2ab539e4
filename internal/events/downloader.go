package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/lululau/weekcal/internal/calendar"
)

// Progress reports transfer state to a listener.
type Progress struct {
	Downloaded int64
	Total      int64 // -1 when unknown
	Speed      float64
}

// Fetch downloads a feed and decodes it. The format is taken from the URL
// path extension, then the Content-Type, defaulting to JSON. onProgress may
// be nil.
func Fetch(ctx context.Context, client *http.Client, feedURL string, onProgress func(Progress)) ([]calendar.Event, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to start download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %s", resp.Status)
	}

	var downloaded int64
	start := time.Now()
	reader := io.TeeReader(resp.Body, &progressWriter{
		onWrite: func(n int) {
			cur := atomic.AddInt64(&downloaded, int64(n))
			if onProgress != nil {
				elapsed := time.Since(start).Seconds()
				speed := 0.0
				if elapsed > 0 {
					speed = float64(cur) / elapsed
				}
				onProgress(Progress{Downloaded: cur, Total: resp.ContentLength, Speed: speed})
			}
		},
	})
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	evs, err := Decode(feedFormat(feedURL, resp.Header.Get("Content-Type")), buf.Bytes())
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"url": redactURL(feedURL), "count": len(evs)}).Info("feed downloaded")
	return evs, nil
}

func feedFormat(feedURL, contentType string) string {
	if u, err := url.Parse(feedURL); err == nil {
		switch ext := strings.ToLower(path.Ext(u.Path)); ext {
		case ".json", ".yaml", ".yml", ".ics", ".ical":
			return ext
		}
	}
	switch {
	case strings.Contains(contentType, "calendar"):
		return ".ics"
	case strings.Contains(contentType, "yaml"):
		return ".yaml"
	default:
		return ".json"
	}
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid>"
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}

// SaveCache writes events as JSON to cachePath, creating parent directories.
func SaveCache(cachePath string, evs []calendar.Event) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := json.MarshalIndent(evs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	tmp := cachePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, cachePath); err != nil {
		return fmt.Errorf("failed to replace cache: %w", err)
	}
	return nil
}

type progressWriter struct {
	onWrite func(int)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	if pw.onWrite != nil {
		pw.onWrite(len(p))
	}
	return len(p), nil
}

type progressMsg Progress

type doneMsg struct {
	count    int
	filePath string
	err      error
}

type downloadModel struct {
	url        string
	destPath   string
	progress   Progress
	done       bool
	result     doneMsg
	progressCh chan Progress
	doneCh     chan doneMsg
	cancel     context.CancelFunc
}

func newDownloadModel(feedURL, destPath string) *downloadModel {
	return &downloadModel{
		url:        feedURL,
		destPath:   destPath,
		progress:   Progress{Total: -1},
		progressCh: make(chan Progress, 10),
		doneCh:     make(chan doneMsg, 1),
	}
}

func (m *downloadModel) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go func() {
		evs, err := Fetch(ctx, nil, m.url, func(p Progress) {
			select {
			case m.progressCh <- p:
			default:
				// Channel is full, skip this update
			}
		})
		if err == nil {
			err = SaveCache(m.destPath, evs)
		}
		m.doneCh <- doneMsg{count: len(evs), filePath: m.destPath, err: err}
	}()
	return m.listen
}

func (m *downloadModel) listen() tea.Msg {
	select {
	case p := <-m.progressCh:
		return progressMsg(p)
	case d := <-m.doneCh:
		return d
	}
}

func (m *downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			if m.cancel != nil {
				m.cancel()
			}
			return m, m.listen
		}
	case progressMsg:
		m.progress = Progress(msg)
		return m, m.listen
	case doneMsg:
		m.done = true
		m.result = msg
		return m, nil
	}
	return m, nil
}

func (m *downloadModel) View() string {
	if m.done {
		if m.result.err != nil {
			return fmt.Sprintf("Download failed\n\n%v\n\nPress any key to exit...\n", m.result.err)
		}
		return fmt.Sprintf("Downloaded %d events\nSaved to: %s\n\nPress any key to exit...\n",
			m.result.count, m.result.filePath)
	}

	const barWidth = 50
	p := m.progress
	if p.Total > 0 {
		percent := min(float64(p.Downloaded)/float64(p.Total), 1.0)
		filled := int(percent * barWidth)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		return fmt.Sprintf("Downloading events...\n\n[%s]\n%s / %s  %s  %.1f%%\n\nPress Ctrl+C to cancel\n",
			bar, formatBytes(p.Downloaded), formatBytes(p.Total), formatSpeed(p.Speed), percent*100)
	}
	return fmt.Sprintf("Downloading events...\n\n[%s]\n%s  %s\n\nPress Ctrl+C to cancel\n",
		strings.Repeat("░", barWidth), formatBytes(p.Downloaded), formatSpeed(p.Speed))
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatSpeed(speed float64) string {
	return fmt.Sprintf("%s/s", formatBytes(int64(speed)))
}

// DownloadEvents fetches feedURL into the cache with a progress screen.
func DownloadEvents(feedURL string) error {
	cachePath, err := GetCachePath()
	if err != nil {
		return err
	}

	m := newDownloadModel(feedURL, cachePath)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	if !m.done {
		return fmt.Errorf("download interrupted")
	}
	return m.result.err
}
