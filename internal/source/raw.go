package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/junsooki/yuvview/internal/frame"
	"github.com/junsooki/yuvview/internal/logger"
	"github.com/junsooki/yuvview/internal/qos"
)

var ErrShortInput = errors.New("input smaller than one frame")

// RawFile plays a headerless I420 file.
type RawFile struct {
	Path          string
	Width, Height int
	Loop          bool

	Clock *Clock
	QoS   qos.Observer
	Log   *logger.Logger
}

func (r *RawFile) Run(ctx context.Context, sink Sink) error {
	file, err := os.Open(r.Path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	size := frame.I420Size(r.Width, r.Height)
	st, err := file.Stat()
	if err != nil {
		return err
	}
	if st.Size() < int64(size) {
		return fmt.Errorf("%s: %w (%d < %d bytes)", r.Path, ErrShortInput, st.Size(), size)
	}
	if rest := st.Size() % int64(size); rest != 0 {
		r.Log.Warn().Int64("trailing", rest).Msg("file is not a whole number of frames")
	}
	r.Log.Info().Str("path", r.Path).Int64("frames", st.Size()/int64(size)).
		Int("w", r.Width).Int("h", r.Height).Msg("playing")

	r.QoS.OnVideoCodecUpdated(qos.CodecRaw, qos.StreamHigh)
	r.QoS.OnRequestSendKeyFrame(qos.StreamHigh)

	br := bufio.NewReaderSize(file, size)
	buf := make([]byte, size)
	m := newMeter(r.QoS)
	n := 0

	return r.Clock.Run(ctx, func() error {
		if _, err := io.ReadFull(br, buf); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				return err
			}
			if !r.Loop {
				r.Log.Info().Int("frames", n).Msg("end of input")
				return errDone
			}
			if _, err := file.Seek(0, io.SeekStart); err != nil {
				return err
			}
			br.Reset(file)
			if _, err := io.ReadFull(br, buf); err != nil {
				return err
			}
			r.Log.Debug().Int("frames", n).Msg("loop")
			r.QoS.OnRequestSendKeyFrame(qos.StreamHigh)
		}
		n++
		p, err := frame.FromI420(buf, r.Width, r.Height)
		if err != nil {
			return err
		}
		m.add(size)
		return submit(sink, p.Y, p.U, p.V, p.Width, p.Height)
	})
}

// meter reports the input bitrate about once per second.
type meter struct {
	obs   qos.Observer
	bytes int
	since time.Time
	now   func() time.Time
}

func newMeter(obs qos.Observer) *meter {
	return &meter{obs: obs, since: time.Now(), now: time.Now}
}

func (m *meter) add(n int) {
	m.bytes += n
	now := m.now()
	elapsed := now.Sub(m.since)
	if elapsed < time.Second {
		return
	}
	bps := float64(m.bytes*8) / elapsed.Seconds()
	m.obs.OnBitrateUpdated(uint32(min(bps, float64(^uint32(0)))), qos.StreamHigh)
	m.bytes, m.since = 0, now
}
