package stream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/playground-x/neoradio/internal/core"
)

const masterPlaylist = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=128000,CODECS="mp4a.40.2"
low/playlist.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=256000,CODECS="avc1.64001f,mp4a.40.2",RESOLUTION=1280x720
high/playlist.m3u8
`

const mediaPlaylist = `#EXTM3U
#EXT-X-TARGETDURATION:6
#EXTINF:6.0,
segment0.aac
#EXTINF:6.0,
segment1.aac
`

func TestParsePlaylistMaster(t *testing.T) {
	levels := ParsePlaylist(strings.NewReader(masterPlaylist))

	if len(levels) != 2 {
		t.Fatalf("levels = %d, want 2", len(levels))
	}
	if levels[0].Bitrate != 128000 || levels[0].AudioCodec != "mp4a.40.2" {
		t.Errorf("levels[0] = %+v", levels[0])
	}
	// The audio codec is picked out of a mixed CODECS list.
	if levels[1].Bitrate != 256000 || levels[1].AudioCodec != "mp4a.40.2" {
		t.Errorf("levels[1] = %+v", levels[1])
	}
}

func TestParsePlaylistMedia(t *testing.T) {
	levels := ParsePlaylist(strings.NewReader(mediaPlaylist))

	if len(levels) != 0 {
		t.Errorf("levels = %d, want 0 for a media playlist", len(levels))
	}
}

func TestParseAttributes(t *testing.T) {
	attrs := parseAttributes(`BANDWIDTH=128000,CODECS="avc1.64001f,mp4a.40.2",NAME="main, backup"`)

	if attrs["BANDWIDTH"] != "128000" {
		t.Errorf("BANDWIDTH = %q", attrs["BANDWIDTH"])
	}
	// Commas inside quoted values do not split attributes.
	if attrs["CODECS"] != "avc1.64001f,mp4a.40.2" {
		t.Errorf("CODECS = %q", attrs["CODECS"])
	}
	if attrs["NAME"] != "main, backup" {
		t.Errorf("NAME = %q", attrs["NAME"])
	}
}

func TestAudioCodec(t *testing.T) {
	tests := []struct {
		codecs string
		want   string
	}{
		{codecs: "mp4a.40.2", want: "mp4a.40.2"},
		{codecs: "avc1.64001f,mp4a.40.2", want: "mp4a.40.2"},
		{codecs: "ec-3", want: "ec-3"},
		{codecs: "weird-codec", want: "weird-codec"},
		{codecs: "avc1.64001f,hvc1.1.6", want: ""},
	}

	for _, tt := range tests {
		if got := audioCodec(tt.codecs); got != tt.want {
			t.Errorf("audioCodec(%q) = %q, want %q", tt.codecs, got, tt.want)
		}
	}
}

// eventRecorder collects transport events for inspection.
type eventRecorder struct {
	mu        sync.Mutex
	manifests int
	switches  []int
	errors    []core.TransportError
}

func (e *eventRecorder) ManifestReady() {
	e.mu.Lock()
	e.manifests++
	e.mu.Unlock()
}

func (e *eventRecorder) LevelSwitched(level int) {
	e.mu.Lock()
	e.switches = append(e.switches, level)
	e.mu.Unlock()
}

func (e *eventRecorder) TagsParsed(samples []core.TagSample) {}

func (e *eventRecorder) TransportError(err core.TransportError) {
	e.mu.Lock()
	e.errors = append(e.errors, err)
	e.mu.Unlock()
}

func (e *eventRecorder) snapshot() (manifests int, errors []core.TransportError) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.manifests, append([]core.TransportError(nil), e.errors...)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestFactoryRequiresURL(t *testing.T) {
	factory := NewFactory(TransportConfig{Logger: zerolog.Nop()})

	if _, err := factory(&eventRecorder{}); err == nil {
		t.Error("factory error = nil, want missing URL error")
	}
}

func TestTransportManifestReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(masterPlaylist))
	}))
	defer server.Close()

	rec := &eventRecorder{}
	factory := NewFactory(TransportConfig{
		URL:              server.URL,
		Logger:           zerolog.Nop(),
		LivenessInterval: time.Hour,
	})

	transport, err := factory(rec)
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	defer transport.Destroy()

	waitFor(t, "manifest ready", func() bool {
		manifests, _ := rec.snapshot()
		return manifests == 1
	})

	levels := transport.Levels()
	if len(levels) != 2 {
		t.Fatalf("levels = %d, want 2", len(levels))
	}
	if transport.CurrentLevel() != 0 {
		t.Errorf("CurrentLevel() = %d, want 0", transport.CurrentLevel())
	}

	rec.mu.Lock()
	switches := append([]int(nil), rec.switches...)
	rec.mu.Unlock()
	if len(switches) != 1 || switches[0] != 0 {
		t.Errorf("level switches = %v, want [0]", switches)
	}
}

func TestTransportFetchFailureIsFatalNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	rec := &eventRecorder{}
	factory := NewFactory(TransportConfig{
		URL:              server.URL,
		Logger:           zerolog.Nop(),
		LivenessInterval: time.Hour,
	})

	transport, err := factory(rec)
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	defer transport.Destroy()

	waitFor(t, "transport error", func() bool {
		_, errs := rec.snapshot()
		return len(errs) == 1
	})

	_, errs := rec.snapshot()
	if errs[0].Class != core.ErrorClassNetwork || !errs[0].Fatal {
		t.Errorf("error = %+v, want fatal network", errs[0])
	}

	manifests, _ := rec.snapshot()
	if manifests != 0 {
		t.Errorf("manifests = %d, want 0", manifests)
	}
}

func TestTransportRetriesBackOff(t *testing.T) {
	var fetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	rec := &eventRecorder{}
	factory := NewFactory(TransportConfig{
		URL:              server.URL,
		Logger:           zerolog.Nop(),
		LivenessInterval: time.Hour,
		RetryWait:        300 * time.Millisecond,
	})

	transport, err := factory(rec)
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	defer transport.Destroy()

	waitFor(t, "first failure", func() bool { return fetches.Load() == 1 })

	// An error handler that restarts immediately must not produce a tight
	// fetch loop: retries wait out the backoff and loads never overlap.
	for i := 0; i < 50; i++ {
		transport.StartLoad()
	}
	time.Sleep(150 * time.Millisecond)
	if n := fetches.Load(); n != 1 {
		t.Fatalf("fetches during backoff window = %d, want 1", n)
	}

	waitFor(t, "backed-off retry", func() bool { return fetches.Load() == 2 })
}

func TestTransportRecoverySignalsManifestReady(t *testing.T) {
	var failing atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(masterPlaylist))
	}))
	defer server.Close()

	rec := &eventRecorder{}
	factory := NewFactory(TransportConfig{
		URL:              server.URL,
		Logger:           zerolog.Nop(),
		LivenessInterval: time.Hour,
		RetryWait:        10 * time.Millisecond,
	})

	transport, err := factory(rec)
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	defer transport.Destroy()

	waitFor(t, "initial manifest", func() bool {
		manifests, _ := rec.snapshot()
		return manifests == 1
	})

	failing.Store(true)
	transport.StartLoad()
	waitFor(t, "fetch failure", func() bool {
		_, errs := rec.snapshot()
		return len(errs) == 1
	})

	// Once the stream is back, the recovery fetch re-signals readiness so
	// a session stuck in its loading state can resume.
	failing.Store(false)
	transport.StartLoad()
	waitFor(t, "recovery manifest", func() bool {
		manifests, _ := rec.snapshot()
		return manifests == 2
	})
}

func TestTransportDestroySilencesEvents(t *testing.T) {
	requests := make(chan struct{}, 16)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- struct{}{}
		_, _ = w.Write([]byte(masterPlaylist))
	}))
	defer server.Close()

	rec := &eventRecorder{}
	factory := NewFactory(TransportConfig{
		URL:              server.URL,
		Logger:           zerolog.Nop(),
		LivenessInterval: 10 * time.Millisecond,
	})

	transport, err := factory(rec)
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}

	<-requests
	waitFor(t, "manifest ready", func() bool {
		manifests, _ := rec.snapshot()
		return manifests == 1
	})

	transport.Destroy()

	// Drain anything already in flight, then confirm fetching stopped.
	time.Sleep(50 * time.Millisecond)
	for len(requests) > 0 {
		<-requests
	}
	time.Sleep(50 * time.Millisecond)
	if len(requests) != 0 {
		t.Error("transport still fetching after Destroy")
	}
}
