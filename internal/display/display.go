// Package display hosts the compositor in a window.
package display

import (
	"github.com/junsooki/yuvview/internal/input"
	"github.com/junsooki/yuvview/internal/logger"
	"github.com/junsooki/yuvview/internal/render"
)

// Display renders frames and captures user input.
type Display interface {
	// Run opens the window and blocks until it is closed.
	// Must be called from the main goroutine.
	Run() error
}

// Options are shared by all hosts.
type Options struct {
	Title         string
	Width, Height int
	Vsync         bool

	Bindings *input.Bindings
	// Handler gets every bound key press. Quit and fullscreen are also
	// handled by the host itself.
	Handler input.Handler
	// OnReady is called once the compositor exists, before the first
	// frame is drawn.
	OnReady func(*render.Compositor)
	// Done closes the window when it is closed.
	Done <-chan struct{}

	Log *logger.Logger
}

// Prepare fills defaults, hosts call it before opening a window.
func (o *Options) Prepare() {
	if o.Title == "" {
		o.Title = "yuvview"
	}
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = 1280, 720
	}
	if o.Log == nil {
		o.Log = logger.Nop()
	}
}

// Dispatch resolves a host key name and passes the event on.
// ok is false for unbound keys.
func (o *Options) Dispatch(key string) (e input.Event, ok bool) {
	if e, ok = o.Bindings.Resolve(key); !ok {
		return e, false
	}
	o.Log.Debug().Str("key", e.Key).Str("action", string(e.Action)).Msg("key")
	if o.Handler != nil {
		o.Handler(e)
	}
	return e, true
}

// Closed reports whether Done is closed.
func (o *Options) Closed() bool {
	select {
	case <-o.Done:
		return true
	default:
		return false
	}
}
