// Package sdlgl hosts the compositor in an SDL window with an OpenGL 2.1
// context. Every SDL and GL call runs on the main OS thread.
package sdlgl

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/junsooki/yuvview/internal/display"
	"github.com/junsooki/yuvview/internal/geometry"
	"github.com/junsooki/yuvview/internal/input"
	"github.com/junsooki/yuvview/internal/render"
	"github.com/junsooki/yuvview/internal/thread"
)

// poll interval for events when nothing asks for a repaint
const idle = 16 * time.Millisecond

// SDLDisplay is a resizable SDL window rendering with GLDevice.
type SDLDisplay struct {
	opts display.Options

	win   *sdl.Window
	glCtx sdl.GLContext
	dev   *GLDevice
	comp  *render.Compositor

	dirty      atomic.Bool
	wake       chan struct{}
	fullscreen bool
	quit       bool
}

func NewSDLDisplay(opts display.Options) *SDLDisplay {
	opts.Prepare()
	opts.Log = opts.Log.Component("sdl")
	return &SDLDisplay{opts: opts, wake: make(chan struct{}, 1)}
}

// Run must be called inside thread.Main.
func (d *SDLDisplay) Run() error {
	if err := thread.CallErr(d.init); err != nil {
		return err
	}
	defer thread.Call(d.deinit)

	if d.opts.OnReady != nil {
		d.opts.OnReady(d.comp)
	}

	t := time.NewTicker(idle)
	defer t.Stop()
	for {
		var err error
		thread.Call(func() { err = d.step() })
		if err != nil {
			return err
		}
		if d.quit {
			return nil
		}
		select {
		case <-d.wake:
		case <-t.C:
		}
	}
}

func (d *SDLDisplay) init() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	setAttribute(d, sdl.GL_CONTEXT_MAJOR_VERSION, 2)
	setAttribute(d, sdl.GL_CONTEXT_MINOR_VERSION, 1)
	setAttribute(d, sdl.GL_DOUBLEBUFFER, 1)

	var err error
	d.win, err = sdl.CreateWindow(d.opts.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(d.opts.Width), int32(d.opts.Height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE|sdl.WINDOW_SHOWN|sdl.WINDOW_ALLOW_HIGHDPI)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("sdl window: %w", err)
	}
	if d.glCtx, err = d.win.GLCreateContext(); err != nil {
		_ = d.win.Destroy()
		sdl.Quit()
		return fmt.Errorf("gl context: %w", err)
	}
	if err = d.win.GLMakeCurrent(d.glCtx); err == nil {
		err = gl.InitWithProcAddrFunc(sdl.GLGetProcAddress)
	}
	if err != nil {
		d.destroyWindow()
		return fmt.Errorf("gl init: %w", err)
	}
	interval := 0
	if d.opts.Vsync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		d.opts.Log.Warn().Err(err).Msg("swap interval")
	}

	d.dev = NewGLDevice(d.opts.Log)
	show := d.surface()
	d.comp, err = render.New(d.dev, show,
		render.WithLogger(d.opts.Log),
		render.WithRepaint(d.requestRepaint))
	if err != nil {
		d.destroyWindow()
		return err
	}
	d.dirty.Store(true)
	d.opts.Log.Info().Str("show", show.String()).Msg("window")
	return nil
}

func (d *SDLDisplay) deinit() {
	d.comp.Close()
	d.destroyWindow()
	d.opts.Log.Debug().Msg("closed")
}

func (d *SDLDisplay) destroyWindow() {
	if d.glCtx != nil {
		sdl.GLDeleteContext(d.glCtx)
		d.glCtx = nil
	}
	if d.win != nil {
		if err := d.win.Destroy(); err != nil {
			d.opts.Log.Warn().Err(err).Msg("couldn't destroy the window")
		}
		d.win = nil
	}
	sdl.Quit()
}

// requestRepaint may be called from any goroutine.
func (d *SDLDisplay) requestRepaint() {
	d.dirty.Store(true)
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// surface reads the drawable size and passes it to the device.
func (d *SDLDisplay) surface() geometry.Rect {
	w, h := d.win.GLGetDrawableSize()
	d.dev.SetSurface(int(w), int(h))
	return geometry.Rect{W: int(w), H: int(h)}
}

// step handles pending events and draws if needed. Main thread only.
func (d *SDLDisplay) step() error {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			d.quit = true
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				d.comp.Resize(d.surface())
			case sdl.WINDOWEVENT_EXPOSED:
				d.dirty.Store(true)
			}
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				d.key(sdl.GetKeyName(e.Keysym.Sym))
			}
		}
	}
	if d.opts.Closed() {
		d.quit = true
	}
	if d.quit || !d.dirty.Swap(false) {
		return nil
	}
	if err := d.comp.Draw(); err != nil {
		if errors.Is(err, render.ErrClosed) {
			return err
		}
		// keep the frame, retry next tick
		d.dirty.Store(true)
		d.opts.Log.Debug().Err(err).Msg("draw")
		return nil
	}
	d.win.GLSwap()
	return nil
}

func (d *SDLDisplay) key(name string) {
	e, ok := d.opts.Dispatch(name)
	if !ok {
		return
	}
	switch e.Action {
	case input.ActionQuit:
		d.quit = true
	case input.ActionFullscreen:
		d.fullscreen = !d.fullscreen
		var flags uint32
		if d.fullscreen {
			flags = uint32(sdl.WINDOW_FULLSCREEN_DESKTOP)
		}
		if err := d.win.SetFullscreen(flags); err != nil {
			d.opts.Log.Warn().Err(err).Msg("fullscreen")
		}
	}
}

func setAttribute(d *SDLDisplay, attr sdl.GLattr, value int) {
	if err := sdl.GLSetAttribute(attr, value); err != nil {
		d.opts.Log.Warn().Err(err).Msg("attribute")
	}
}
