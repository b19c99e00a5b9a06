// Package stream provides reference implementations of the session's
// transport and media collaborators: a lightweight HLS manifest monitor and
// a silent media sink. Neither decodes audio; they exist so the player can
// follow a real stream's lifecycle, quality levels, and failures.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/playground-x/neoradio/internal/core"
)

// TransportConfig configures the manifest transport.
type TransportConfig struct {
	URL        string
	HTTPClient *http.Client
	Logger     zerolog.Logger

	// LivenessInterval is how often the playlist is re-fetched to confirm
	// the stream is still up.
	LivenessInterval time.Duration

	// RetryWait is the base delay before retrying a failed playlist fetch.
	// The delay doubles per consecutive failure up to maxRetryWait.
	RetryWait time.Duration
}

const maxRetryWait = 30 * time.Second

// NewFactory returns a transport factory for the given stream URL.
func NewFactory(cfg TransportConfig) core.TransportFactory {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.LivenessInterval == 0 {
		cfg.LivenessInterval = 30 * time.Second
	}
	if cfg.RetryWait == 0 {
		cfg.RetryWait = time.Second
	}

	return func(events core.TransportEvents) (core.Transport, error) {
		if cfg.URL == "" {
			return nil, fmt.Errorf("no stream URL configured")
		}

		ctx, cancel := context.WithCancel(context.Background())
		t := &Transport{
			cfg:     cfg,
			events:  events,
			ctx:     ctx,
			cancel:  cancel,
			current: -1,
		}
		go t.load()
		return t, nil
	}
}

// Transport follows an HLS playlist over HTTP. It reports manifest
// readiness, quality levels parsed from #EXT-X-STREAM-INF entries, and
// classifies fetch failures as fatal network errors. It never parses
// segments, so it emits no embedded-tag events.
type Transport struct {
	cfg    TransportConfig
	events core.TransportEvents
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	levels       []core.QualityLevel
	current      int
	manifestSent bool
	watching     bool
	loading      bool
	failures     int
}

// load fetches the playlist, signals manifest-ready on success, and begins
// the liveness watch. Consecutive failures back off exponentially, and at
// most one load runs at a time, so a fast-failing endpoint is never hammered
// in a tight retry loop. Manifest-ready is re-signaled after a recovery
// fetch; the session ignores it unless it is waiting on one.
func (t *Transport) load() {
	t.mu.Lock()
	if t.loading {
		t.mu.Unlock()
		return
	}
	t.loading = true
	failures := t.failures
	t.mu.Unlock()

	if failures > 0 && !t.waitRetry(failures) {
		t.mu.Lock()
		t.loading = false
		t.mu.Unlock()
		return
	}

	levels, err := t.fetchPlaylist()
	if t.ctx.Err() != nil {
		t.mu.Lock()
		t.loading = false
		t.mu.Unlock()
		return
	}
	if err != nil {
		t.mu.Lock()
		t.failures++
		t.loading = false
		t.mu.Unlock()

		t.cfg.Logger.Warn().Err(err).Msg("playlist fetch failed")
		t.events.TransportError(core.TransportError{
			Class: core.ErrorClassNetwork,
			Fatal: true,
			Err:   err,
		})
		return
	}

	t.mu.Lock()
	t.levels = levels
	if len(levels) > 0 && t.current < 0 {
		t.current = 0
	}
	first := !t.manifestSent
	t.manifestSent = true
	t.failures = 0
	t.loading = false
	startWatch := !t.watching
	t.watching = true
	t.mu.Unlock()

	t.events.ManifestReady()
	if first && len(levels) > 0 {
		t.events.LevelSwitched(0)
	}
	if startWatch {
		go t.watch()
	}
}

// waitRetry sleeps out the backoff for the given failure count. It returns
// false if the transport was destroyed while waiting.
func (t *Transport) waitRetry(failures int) bool {
	shift := failures - 1
	if shift > 5 {
		shift = 5
	}
	delay := t.cfg.RetryWait << shift
	if delay > maxRetryWait {
		delay = maxRetryWait
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-t.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// watch re-fetches the playlist on the liveness interval.
func (t *Transport) watch() {
	ticker := time.NewTicker(t.cfg.LivenessInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			if _, err := t.fetchPlaylist(); err != nil {
				if t.ctx.Err() != nil {
					return
				}
				t.cfg.Logger.Warn().Err(err).Msg("stream liveness check failed")
				t.events.TransportError(core.TransportError{
					Class: core.ErrorClassNetwork,
					Fatal: true,
					Err:   err,
				})
			}
		}
	}
}

func (t *Transport) fetchPlaylist() ([]core.QualityLevel, error) {
	req, err := http.NewRequestWithContext(t.ctx, http.MethodGet, t.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("playlist request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("playlist fetch: status %d", resp.StatusCode)
	}

	return ParsePlaylist(resp.Body), nil
}

// StartLoad restarts loading after a fatal network error. No new transport
// instance is allocated.
func (t *Transport) StartLoad() {
	go t.load()
}

// RecoverMediaError is a no-op for the manifest monitor; there is no media
// pipeline to reset.
func (t *Transport) RecoverMediaError() {
	t.cfg.Logger.Debug().Msg("media error recovery requested")
}

// Destroy stops all playlist fetching. No events are delivered afterwards.
func (t *Transport) Destroy() {
	t.cancel()
}

// Levels returns the quality levels parsed from the master playlist.
func (t *Transport) Levels() []core.QualityLevel {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.QualityLevel, len(t.levels))
	copy(out, t.levels)
	return out
}

// CurrentLevel returns the index of the active level, or -1 if unknown.
func (t *Transport) CurrentLevel() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

var _ core.Transport = (*Transport)(nil)

// ParsePlaylist extracts quality levels from an HLS playlist. Media
// playlists, which carry no #EXT-X-STREAM-INF entries, yield no levels.
func ParsePlaylist(r io.Reader) []core.QualityLevel {
	var levels []core.QualityLevel

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#EXT-X-STREAM-INF:") {
			continue
		}

		attrs := parseAttributes(strings.TrimPrefix(line, "#EXT-X-STREAM-INF:"))
		level := core.QualityLevel{}
		if v, ok := attrs["BANDWIDTH"]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				level.Bitrate = n
			}
		}
		if v, ok := attrs["CODECS"]; ok {
			level.AudioCodec = audioCodec(v)
		}
		levels = append(levels, level)
	}

	return levels
}

// parseAttributes parses an HLS attribute list, respecting quoted values.
func parseAttributes(s string) map[string]string {
	attrs := make(map[string]string)

	var key strings.Builder
	var value strings.Builder
	inValue := false
	inQuotes := false

	flush := func() {
		if key.Len() > 0 {
			attrs[key.String()] = value.String()
		}
		key.Reset()
		value.Reset()
		inValue = false
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == '=' && !inQuotes && !inValue:
			inValue = true
		case r == ',' && !inQuotes:
			flush()
		case inValue:
			value.WriteRune(r)
		default:
			key.WriteRune(r)
		}
	}
	flush()

	return attrs
}

// audioCodec picks the audio codec out of a CODECS attribute value, which
// may list several comma-separated codecs.
func audioCodec(codecs string) string {
	for _, c := range strings.Split(codecs, ",") {
		c = strings.TrimSpace(c)
		if strings.HasPrefix(c, "mp4a") || strings.HasPrefix(c, "ac-3") ||
			strings.HasPrefix(c, "ec-3") || strings.HasPrefix(c, "flac") ||
			strings.HasPrefix(c, "opus") {
			return c
		}
	}
	// Single unrecognized codec: report it as-is.
	if !strings.Contains(codecs, ",") {
		return strings.TrimSpace(codecs)
	}
	return ""
}
