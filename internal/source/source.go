// Package source produces planar frames for the compositor. Every source
// runs on its own goroutine and pushes frames into a Sink at the pace of
// a Clock.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/junsooki/yuvview/internal/config"
	"github.com/junsooki/yuvview/internal/decoder"
	"github.com/junsooki/yuvview/internal/logger"
	"github.com/junsooki/yuvview/internal/qos"
	"github.com/junsooki/yuvview/internal/render"
)

// Sink receives frames. render.Compositor.Submit is a Sink.
type Sink func(y, u, v []byte, w, h int) error

// Source pushes frames into a Sink until the input ends or ctx is done.
type Source interface {
	Run(ctx context.Context, sink Sink) error
}

// errDone ends a Clock loop without an error.
var errDone = errors.New("done")

// Clock ticks at a fixed frame rate and can be paused.
type Clock struct {
	interval time.Duration
	paused   atomic.Bool
}

func NewClock(fps int) *Clock {
	if fps <= 0 {
		fps = 30
	}
	return &Clock{interval: time.Second / time.Duration(fps)}
}

// Toggle flips the pause state and returns the new one.
func (c *Clock) Toggle() bool {
	for {
		p := c.paused.Load()
		if c.paused.CompareAndSwap(p, !p) {
			return !p
		}
	}
}

func (c *Clock) Paused() bool { return c.paused.Load() }

// Run calls tick once right away and then on every unpaused tick.
func (c *Clock) Run(ctx context.Context, tick func() error) error {
	t := time.NewTicker(c.interval)
	defer t.Stop()
	first := true
	for {
		if first || !c.Paused() {
			first = false
			if err := tick(); err != nil {
				if errors.Is(err, errDone) {
					return nil
				}
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

// submit forwards a frame. Only a closed compositor stops the source,
// a rejected frame is already logged by the compositor.
func submit(sink Sink, y, u, v []byte, w, h int) error {
	err := sink(y, u, v, w, h)
	if errors.Is(err, render.ErrClosed) {
		return errDone
	}
	return nil
}

// New builds the source selected in the configuration.
func New(conf config.Source, clock *Clock, obs qos.Observer, log *logger.Logger) (Source, error) {
	if obs == nil {
		obs = qos.Nop{}
	}
	switch conf.Kind {
	case "raw":
		return &RawFile{
			Path: conf.Path, Width: conf.Width, Height: conf.Height, Loop: conf.Loop,
			Clock: clock, QoS: obs, Log: log.Component("raw"),
		}, nil
	case "pattern":
		return &Pattern{Width: conf.Width, Height: conf.Height, Clock: clock, QoS: obs}, nil
	case "image":
		data, err := os.ReadFile(conf.Path)
		if err != nil {
			return nil, err
		}
		f, err := decoder.NewImageDecoder().Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", conf.Path, err)
		}
		log.Info().Str("path", conf.Path).Str("frame", f.String()).Msg("image loaded")
		return &Still{Frame: f, Clock: clock}, nil
	}
	return nil, fmt.Errorf("source: unknown kind %q", conf.Kind)
}
