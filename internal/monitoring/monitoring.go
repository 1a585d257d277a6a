package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/junsooki/yuvview/internal/config"
	"github.com/junsooki/yuvview/internal/logger"
)

// Monitoring serves metrics, pprof and the QoS feed over HTTP.
type Monitoring struct {
	conf   config.Monitoring
	log    *logger.Logger
	server *http.Server
}

// New creates the monitoring server. feed may be nil.
func New(conf config.Monitoring, reg *prometheus.Registry, feed http.Handler, log *logger.Logger) *Monitoring {
	m := &Monitoring{conf: conf, log: log.Component("monitoring")}
	m.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Port),
		Handler:           m.handler(reg, feed),
		ReadHeaderTimeout: 5 * time.Second,
	}
	// websocket clients are hijacked and not closed by Shutdown
	if c, ok := feed.(interface{ Close() }); ok {
		m.server.RegisterOnShutdown(c.Close)
	}
	return m
}

func (m *Monitoring) handler(reg *prometheus.Registry, feed http.Handler) http.Handler {
	h := http.NewServeMux()
	prefix := m.conf.URLPrefix

	if m.conf.ProfilingEnabled {
		pp := prefix + "/debug/pprof"
		m.log.Info().Msgf("profiling is enabled at %v", pp)
		h.HandleFunc(pp+"/", pprof.Index)
		h.HandleFunc(pp+"/cmdline", pprof.Cmdline)
		h.HandleFunc(pp+"/profile", pprof.Profile)
		h.HandleFunc(pp+"/symbol", pprof.Symbol)
		h.HandleFunc(pp+"/trace", pprof.Trace)
		// named profiles are not routed by Index under a custom prefix
		for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
			h.Handle(pp+"/"+name, pprof.Handler(name))
		}
	}

	if m.conf.MetricEnabled && reg != nil {
		mp := prefix + "/metrics"
		m.log.Info().Msgf("prometheus metrics are enabled at %v", mp)
		h.Handle(mp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}

	if m.conf.QoSFeedEnabled && feed != nil {
		fp := prefix + "/qos"
		m.log.Info().Msgf("qos feed is enabled at %v", fp)
		h.Handle(fp, feed)
	}
	return h
}

// Handler returns the routes, mostly for tests.
func (m *Monitoring) Handler() http.Handler { return m.server.Handler }

// Run serves until ctx is done, then shuts the server down.
func (m *Monitoring) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", m.server.Addr)
	if err != nil {
		return err
	}
	m.log.Info().Str("addr", ln.Addr().String()).Msg("starting monitoring server")

	errc := make(chan error, 1)
	go func() { errc <- m.server.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	m.log.Debug().Msg("shutting down monitoring server")
	sctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.server.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (m *Monitoring) String() string {
	return fmt.Sprintf("monitoring::%s:%d", m.conf.URLPrefix, m.conf.Port)
}
