package qos

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/junsooki/yuvview/internal/logger"
)

// LogObserver writes every notification to the log.
type LogObserver struct {
	log *logger.Logger
}

func NewLogObserver(log *logger.Logger) *LogObserver {
	return &LogObserver{log: log.Component("qos")}
}

func (l *LogObserver) OnRequestSendKeyFrame(s StreamType) {
	l.log.Info().Stringer("stream", s).Msg("key frame requested")
}

func (l *LogObserver) OnBitrateUpdated(bps uint32, s StreamType) {
	l.log.Debug().Stringer("stream", s).Uint32("bps", bps).Msg("bitrate")
}

func (l *LogObserver) OnVideoCodecUpdated(c CodecType, s StreamType) {
	l.log.Info().Stringer("stream", s).Stringer("codec", c).Str("mime", c.Capability().MimeType).Msg("codec")
}

// Metrics exports notifications as prometheus series.
type Metrics struct {
	keyFrames *prometheus.CounterVec
	bitrate   *prometheus.GaugeVec
	codec     *prometheus.GaugeVec

	mu    sync.Mutex
	codes map[StreamType]CodecType
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		keyFrames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yuvview",
			Subsystem: "qos",
			Name:      "key_frame_requests_total",
			Help:      "Key frame requests from the encoder.",
		}, []string{"stream"}),
		bitrate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "yuvview",
			Subsystem: "qos",
			Name:      "bitrate_bps",
			Help:      "Last reported video bitrate.",
		}, []string{"stream"}),
		codec: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "yuvview",
			Subsystem: "qos",
			Name:      "codec_info",
			Help:      "Current video codec, 1 for the active codec label.",
		}, []string{"stream", "codec"}),
		codes: make(map[StreamType]CodecType),
	}
	reg.MustRegister(m.keyFrames, m.bitrate, m.codec)
	return m
}

func (m *Metrics) OnRequestSendKeyFrame(s StreamType) {
	m.keyFrames.WithLabelValues(s.String()).Inc()
}

func (m *Metrics) OnBitrateUpdated(bps uint32, s StreamType) {
	m.bitrate.WithLabelValues(s.String()).Set(float64(bps))
}

func (m *Metrics) OnVideoCodecUpdated(c CodecType, s StreamType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.codes[s]; ok && prev != c {
		m.codec.DeleteLabelValues(s.String(), prev.String())
	}
	m.codes[s] = c
	m.codec.WithLabelValues(s.String(), c.String()).Set(1)
}
