package monitoring

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/junsooki/yuvview/internal/config"
	"github.com/junsooki/yuvview/internal/logger"
	"github.com/junsooki/yuvview/internal/render"
)

func TestRegisterCompositor(t *testing.T) {
	reg := prometheus.NewRegistry()
	st := render.Stats{Submitted: 10, Dropped: 3, Rejected: 1, Drawn: 6, Skipped: 2}
	RegisterCompositor(reg, func() render.Stats { return st })

	expected := `
# HELP yuvview_compositor_frames_dropped_total Frames overwritten before they were drawn.
# TYPE yuvview_compositor_frames_dropped_total counter
yuvview_compositor_frames_dropped_total 3
# HELP yuvview_compositor_draws_total Completed draw calls.
# TYPE yuvview_compositor_draws_total counter
yuvview_compositor_draws_total 6
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"yuvview_compositor_frames_dropped_total", "yuvview_compositor_draws_total")
	if err != nil {
		t.Error(err)
	}

	// read on every scrape
	st.Drawn = 7
	expected = `
# HELP yuvview_compositor_draws_total Completed draw calls.
# TYPE yuvview_compositor_draws_total counter
yuvview_compositor_draws_total 7
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "yuvview_compositor_draws_total"); err != nil {
		t.Error(err)
	}
}

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, _ := io.ReadAll(rec.Result().Body)
	return rec.Code, string(body)
}

func TestRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCompositor(reg, func() render.Stats { return render.Stats{Drawn: 4} })
	feed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "feed") })

	tests := []struct {
		name string
		conf config.Monitoring
		path string
		code int
		body string
	}{
		{"metrics", config.Monitoring{MetricEnabled: true}, "/metrics", 200, "yuvview_compositor_draws_total 4"},
		{"metrics prefix", config.Monitoring{MetricEnabled: true, URLPrefix: "/v"}, "/v/metrics", 200, "draws_total"},
		{"metrics off", config.Monitoring{}, "/metrics", 404, ""},
		{"pprof", config.Monitoring{ProfilingEnabled: true}, "/debug/pprof/", 200, "goroutine"},
		{"feed", config.Monitoring{QoSFeedEnabled: true}, "/qos", 200, "feed"},
		{"feed off", config.Monitoring{MetricEnabled: true}, "/qos", 404, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.conf, reg, feed, logger.Nop())
			code, body := get(t, m.Handler(), tt.path)
			if code != tt.code {
				t.Fatalf("code = %d", code)
			}
			if !strings.Contains(body, tt.body) {
				t.Errorf("body = %.200s", body)
			}
		})
	}
}

func TestRunShutdown(t *testing.T) {
	m := New(config.Monitoring{Port: 0, MetricEnabled: true}, NewRegistry(), nil, logger.Nop())
	m.server.Addr = "127.0.0.1:0"
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

type closingFeed struct {
	http.Handler
	closed chan struct{}
}

func (f *closingFeed) Close() { close(f.closed) }

func TestShutdownClosesFeed(t *testing.T) {
	feed := &closingFeed{Handler: http.NotFoundHandler(), closed: make(chan struct{})}
	m := New(config.Monitoring{QoSFeedEnabled: true}, nil, feed, logger.Nop())
	m.server.Addr = "127.0.0.1:0"
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-feed.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("feed not closed on shutdown")
	}
	if err := <-done; err != nil {
		t.Errorf("Run = %v", err)
	}
}
