package render

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/junsooki/yuvview/internal/frame"
	"github.com/junsooki/yuvview/internal/geometry"
	"github.com/junsooki/yuvview/internal/logger"
)

// Compositor turns submitted YUV420 frames into draw calls on a Device.
//
// Submit and Resize may be called from any goroutine. Draw and Close must
// be called on the goroutine that owns the Device.
type Compositor struct {
	dev  Device
	buf  *frame.Buffer
	view *geometry.Viewport
	log  *logger.Logger

	onRepaint func()
	onReject  func(error)

	// render thread only
	cur    *frame.Planar
	closed atomic.Bool

	mu      sync.Mutex
	drawn   *frame.Planar
	lastDst geometry.Rect

	rejected atomic.Uint64
	draws    atomic.Uint64
	skipped  atomic.Uint64
}

type Option func(*Compositor)

// WithRepaint sets the callback asking the host to schedule a Draw.
func WithRepaint(fn func()) Option { return func(c *Compositor) { c.onRepaint = fn } }

// WithOnReject is called with every rejected frame error.
func WithOnReject(fn func(error)) Option { return func(c *Compositor) { c.onReject = fn } }

func WithLogger(log *logger.Logger) Option { return func(c *Compositor) { c.log = log } }

// New initializes the device and returns a ready compositor.
// A setup failure is fatal, the device is released.
func New(dev Device, show geometry.Rect, opts ...Option) (*Compositor, error) {
	c := &Compositor{
		dev:  dev,
		buf:  frame.NewBuffer(),
		view: geometry.NewViewport(show),
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := dev.Setup(FullScreenQuad); err != nil {
		dev.Release()
		c.log.Error().Err(err).Msg("compositor init")
		return nil, fmt.Errorf("compositor init: %w", err)
	}
	c.log.Debug().Str("show", show.String()).Msg("compositor ready")
	return c, nil
}

// Submit stores a frame for the next Draw. A malformed frame is rejected,
// the previously accepted frame stays on screen.
func (c *Compositor) Submit(y, u, v []byte, w, h int) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.buf.Put(y, u, v, w, h); err != nil {
		c.rejected.Add(1)
		c.log.Warn().Err(err).Int("w", w).Int("h", h).Msg("frame rejected")
		if c.onReject != nil {
			c.onReject(err)
		}
		return err
	}
	c.repaint()
	return nil
}

// Resize updates the host area the frame is fitted into.
func (c *Compositor) Resize(show geometry.Rect) {
	c.view.SetShow(show)
	c.repaint()
}

// Draw uploads the newest frame and draws it. With no new frame the last
// one is drawn again, before the first one the device is only cleared. A failed upload skips the tick and keeps the frame
// for the next one.
func (c *Compositor) Draw() error {
	if c.closed.Load() {
		return ErrClosed
	}
	if f, resized, ok := c.buf.Take(); ok {
		if c.cur != nil && c.cur != f {
			c.release(c.cur)
		}
		c.cur = f
		if resized {
			c.view.SetFrame(f.Width, f.Height)
		}
	}
	f := c.cur
	if f == nil {
		if cl, ok := c.dev.(Clearer); ok {
			return cl.Clear()
		}
		return nil
	}

	dst, recomputed := c.view.Rect()
	if recomputed {
		c.log.Debug().Str("frame", f.String()).Str("dst", dst.String()).Msg("viewport")
	}

	cw, ch := f.Width/2, f.Height/2
	uploads := []struct {
		p    Plane
		data []byte
		w, h int
	}{
		{PlaneY, f.Y, f.Width, f.Height},
		{PlaneU, f.U, cw, ch},
		{PlaneV, f.V, cw, ch},
	}
	for _, up := range uploads {
		if err := c.dev.Upload(up.p, up.data, up.w, up.h); err != nil {
			c.skipped.Add(1)
			c.log.Warn().Err(err).Stringer("plane", up.p).Msg("draw skipped")
			return fmt.Errorf("%w: plane %v: %w", ErrTextureUpload, up.p, err)
		}
	}
	if err := c.dev.Draw(dst); err != nil {
		c.skipped.Add(1)
		c.log.Warn().Err(err).Msg("draw failed")
		return err
	}
	c.draws.Add(1)

	c.mu.Lock()
	prev := c.drawn
	c.drawn, c.lastDst = f, dst
	c.mu.Unlock()
	if prev != nil && prev != f {
		c.buf.Recycle(prev)
	}
	return nil
}

// Current returns a copy of the last drawn frame, or nil.
func (c *Compositor) Current() *frame.Planar {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drawn == nil {
		return nil
	}
	return c.drawn.Clone()
}

// Viewport returns the rect the last frame was drawn into.
func (c *Compositor) Viewport() geometry.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDst
}

// Close releases the device. Further calls fail with ErrClosed.
func (c *Compositor) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.dev.Release()
	c.log.Debug().Msg("compositor closed")
}

// Stats is a snapshot of the compositor counters.
type Stats struct {
	Submitted uint64
	Dropped   uint64
	Rejected  uint64
	Drawn     uint64
	Skipped   uint64
}

func (c *Compositor) Stats() Stats {
	bs := c.buf.Stats()
	return Stats{
		Submitted: bs.Submitted,
		Dropped:   bs.Dropped,
		Rejected:  c.rejected.Load(),
		Drawn:     c.draws.Load(),
		Skipped:   c.skipped.Load(),
	}
}

func (c *Compositor) repaint() {
	if c.onRepaint != nil {
		c.onRepaint()
	}
}

// release recycles a replaced frame unless it is still the drawn one,
// which is recycled once its successor is drawn.
func (c *Compositor) release(f *frame.Planar) {
	c.mu.Lock()
	inUse := c.drawn == f
	c.mu.Unlock()
	if !inUse {
		c.buf.Recycle(f)
	}
}
