package display

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/junsooki/yuvview/internal/geometry"
	"github.com/junsooki/yuvview/internal/input"
	"github.com/junsooki/yuvview/internal/render"
)

// EbitenDisplay hosts the compositor in an Ebitengine window.
type EbitenDisplay struct {
	opts Options
	dev  *EbitenDevice
	comp *render.Compositor

	screenW int
	screenH int
}

// NewEbitenDisplay creates an Ebitengine-based display.
func NewEbitenDisplay(opts Options) *EbitenDisplay {
	opts.Prepare()
	opts.Log = opts.Log.Component("ebiten")
	return &EbitenDisplay{opts: opts, dev: NewEbitenDevice()}
}

// Run starts the Ebitengine game loop. Must be called from the main goroutine.
func (d *EbitenDisplay) Run() error {
	show := geometry.Rect{W: d.opts.Width, H: d.opts.Height}
	comp, err := render.New(d.dev, show, render.WithLogger(d.opts.Log))
	if err != nil {
		return err
	}
	defer comp.Close()
	d.comp = comp
	d.screenW, d.screenH = show.W, show.H
	if d.opts.OnReady != nil {
		d.opts.OnReady(comp)
	}

	ebiten.SetWindowSize(d.opts.Width, d.opts.Height)
	ebiten.SetWindowTitle(d.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(d.opts.Vsync)
	d.opts.Log.Info().Int("w", d.opts.Width).Int("h", d.opts.Height).Msg("window")

	err = ebiten.RunGame(d)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// --- ebiten.Game interface ---

func (d *EbitenDisplay) Update() error {
	if d.opts.Closed() {
		return ebiten.Termination
	}
	for k, name := range ebitenKeyNames {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		e, ok := d.opts.Dispatch(name)
		if !ok {
			continue
		}
		switch e.Action {
		case input.ActionQuit:
			return ebiten.Termination
		case input.ActionFullscreen:
			ebiten.SetFullscreen(!ebiten.IsFullscreen())
		}
	}
	return nil
}

func (d *EbitenDisplay) Draw(screen *ebiten.Image) {
	d.dev.SetTarget(screen)
	if err := d.comp.Draw(); err != nil && !errors.Is(err, render.ErrClosed) {
		// the compositor keeps the frame and retries on the next tick
		d.opts.Log.Debug().Err(err).Msg("draw")
	}
}

func (d *EbitenDisplay) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != d.screenW || outsideHeight != d.screenH {
		d.screenW, d.screenH = outsideWidth, outsideHeight
		d.comp.Resize(geometry.Rect{W: outsideWidth, H: outsideHeight})
	}
	return outsideWidth, outsideHeight
}
