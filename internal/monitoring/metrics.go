package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/junsooki/yuvview/internal/render"
)

// NewRegistry returns a registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return reg
}

// RegisterCompositor exports the compositor counters. stats is read on
// every scrape.
func RegisterCompositor(reg prometheus.Registerer, stats func() render.Stats) {
	counter := func(name, help string, get func(render.Stats) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "yuvview",
			Subsystem: "compositor",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(get(stats())) })
	}
	reg.MustRegister(
		counter("frames_submitted_total", "Frames accepted by the frame buffer.",
			func(s render.Stats) uint64 { return s.Submitted }),
		counter("frames_dropped_total", "Frames overwritten before they were drawn.",
			func(s render.Stats) uint64 { return s.Dropped }),
		counter("frames_rejected_total", "Frames rejected for bad plane geometry.",
			func(s render.Stats) uint64 { return s.Rejected }),
		counter("draws_total", "Completed draw calls.",
			func(s render.Stats) uint64 { return s.Drawn }),
		counter("draws_skipped_total", "Paint ticks skipped after a failed upload or draw.",
			func(s render.Stats) uint64 { return s.Skipped }),
	)
}
