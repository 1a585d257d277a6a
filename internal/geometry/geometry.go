package geometry

import (
	"fmt"
	"sync"
)

// Rect is a rectangle in host-window coordinates (top-left origin).
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// FlipY converts the rect to a bottom-left origin inside a surface of
// height surfaceH, as glViewport expects.
func (r Rect) FlipY(surfaceH int) Rect {
	return Rect{X: r.X, Y: surfaceH - r.Y - r.H, W: r.W, H: r.H}
}

func (r Rect) String() string { return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H) }

// Fit returns the largest rect with the frame aspect ratio that fits
// inside show, centered on the free axis (letterbox/pillarbox).
// Products are truncated to integers.
func Fit(show Rect, frameW, frameH int) Rect {
	if show.Empty() || frameW <= 0 || frameH <= 0 {
		return Rect{}
	}
	windowRatio := float64(show.W) / float64(show.H)
	frameRatio := float64(frameW) / float64(frameH)

	if windowRatio > frameRatio {
		w := show.H * frameW / frameH
		return Rect{X: show.X + (show.W-w)/2, Y: show.Y, W: w, H: show.H}
	}
	h := show.W * frameH / frameW
	return Rect{X: show.X, Y: show.Y + (show.H-h)/2, W: show.W, H: h}
}

// Viewport keeps the fitted destination rect for the current frame.
// The rect is recomputed only after the show area or the frame size
// changed.
type Viewport struct {
	mu     sync.Mutex
	show   Rect
	frameW int
	frameH int
	dst    Rect
	dirty  bool
}

func NewViewport(show Rect) *Viewport { return &Viewport{show: show, dirty: true} }

// SetShow updates the host area. Safe to call from any goroutine.
func (v *Viewport) SetShow(show Rect) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if show != v.show {
		v.show = show
		v.dirty = true
	}
}

// SetFrame updates the frame size.
func (v *Viewport) SetFrame(w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if w != v.frameW || h != v.frameH {
		v.frameW, v.frameH = w, h
		v.dirty = true
	}
}

// Rect returns the fitted rect, recomputing it if needed.
// The second value reports whether a recompute happened.
func (v *Viewport) Rect() (Rect, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.dirty {
		return v.dst, false
	}
	v.dst = Fit(v.show, v.frameW, v.frameH)
	v.dirty = false
	return v.dst, true
}
