package sdlgl

import (
	"testing"

	"github.com/junsooki/yuvview/internal/display"
)

func TestRepaintNeverBlocks(t *testing.T) {
	d := NewSDLDisplay(display.Options{})
	for i := 0; i < 10; i++ {
		d.requestRepaint()
	}
	if !d.dirty.Load() {
		t.Error("repaint not recorded")
	}
	if len(d.wake) != 1 {
		t.Errorf("wake queue = %d", len(d.wake))
	}
}

func TestDefaults(t *testing.T) {
	d := NewSDLDisplay(display.Options{Title: "clip"})
	if d.opts.Title != "clip" || d.opts.Width != 1280 || d.opts.Height != 720 || d.opts.Log == nil {
		t.Errorf("opts = %+v", d.opts)
	}
}
