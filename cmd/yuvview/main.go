package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/junsooki/yuvview/internal/config"
	"github.com/junsooki/yuvview/internal/display"
	"github.com/junsooki/yuvview/internal/display/sdlgl"
	"github.com/junsooki/yuvview/internal/encoder"
	"github.com/junsooki/yuvview/internal/input"
	"github.com/junsooki/yuvview/internal/logger"
	"github.com/junsooki/yuvview/internal/monitoring"
	"github.com/junsooki/yuvview/internal/qos"
	"github.com/junsooki/yuvview/internal/render"
	"github.com/junsooki/yuvview/internal/source"
	"github.com/junsooki/yuvview/internal/thread"
)

func main() {
	conf, err := config.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New(conf.Log.Debug)
	if conf.Log.Console {
		log = logger.NewConsole(conf.Log.Debug, "view", conf.Log.NoColor)
	}
	log.Info().Str("backend", conf.Backend).Str("source", conf.Source.Kind).
		Str("path", conf.Source.Path).Int("fps", conf.Source.FPS).Msg("yuvview starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := monitoring.NewRegistry()
	feed := qos.NewFeed(log)
	observer := qos.NewDispatcher(qos.Multi{qos.NewLogObserver(log), qos.NewMetrics(reg), feed}, 64)
	defer observer.Close()

	var comp atomic.Pointer[render.Compositor]
	monitoring.RegisterCompositor(reg, func() render.Stats {
		if c := comp.Load(); c != nil {
			return c.Stats()
		}
		return render.Stats{}
	})

	clock := source.NewClock(conf.Source.FPS)
	src, err := source.New(conf.Source, clock, observer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("source")
	}
	enc, err := encoder.New(conf.Snapshot.Format, conf.Snapshot.Quality)
	if err != nil {
		log.Fatal().Err(err).Msg("snapshot encoder")
	}
	snap := encoder.NewSnapshot(conf.Snapshot.Dir, enc)
	bindings, err := input.NewBindings(conf.Keys)
	if err != nil {
		log.Fatal().Err(err).Msg("key bindings")
	}

	g, gctx := errgroup.WithContext(ctx)
	if conf.Monitoring.IsEnabled() {
		mon := monitoring.New(conf.Monitoring, reg, feed, log)
		g.Go(func() error { return mon.Run(gctx) })
	}

	opts := display.Options{
		Title:    conf.Window.Title,
		Width:    conf.Window.Width,
		Height:   conf.Window.Height,
		Vsync:    conf.Window.Vsync,
		Bindings: bindings,
		Done:     gctx.Done(),
		Log:      log,
		OnReady: func(c *render.Compositor) {
			comp.Store(c)
			g.Go(func() error { return src.Run(gctx, c.Submit) })
		},
		Handler: func(e input.Event) {
			switch e.Action {
			case input.ActionPause:
				log.Info().Bool("paused", clock.Toggle()).Msg("pause")
			case input.ActionSnapshot:
				c := comp.Load()
				if c == nil {
					return
				}
				f := c.Current()
				go func() {
					path, err := snap.Save(f)
					if err != nil {
						log.Warn().Err(err).Msg("snapshot")
						return
					}
					log.Info().Str("path", path).Msg("snapshot saved")
				}()
			}
		},
	}

	switch conf.Backend {
	case "gl":
		thread.Main(func() { err = sdlgl.NewSDLDisplay(opts).Run() })
	default:
		err = display.NewEbitenDisplay(opts).Run()
	}
	stop()
	if err != nil {
		log.Error().Err(err).Msg("display")
	}
	if werr := g.Wait(); werr != nil {
		log.Error().Err(werr).Msg("shutdown")
		err = werr
	}
	if c := comp.Load(); c != nil {
		st := c.Stats()
		log.Info().Uint64("submitted", st.Submitted).Uint64("dropped", st.Dropped).
			Uint64("rejected", st.Rejected).Uint64("drawn", st.Drawn).Msg("bye")
	}
	if err != nil {
		observer.Close()
		os.Exit(1)
	}
}
