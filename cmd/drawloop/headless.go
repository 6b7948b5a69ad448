package main

import (
	"fmt"
	"image"
	"io"
	"log"

	"github.com/younwookim/drawloop/internal/application/loop"
	"github.com/younwookim/drawloop/internal/application/replay"
	"github.com/younwookim/drawloop/internal/application/scene"
	"github.com/younwookim/drawloop/internal/domain/entity"
	"github.com/younwookim/drawloop/internal/infrastructure/config"
)

// escapeGuard stops the driver on an Escape press, the headless
// counterpart of the window's exit-on-escape
type escapeGuard struct {
	scene.ContentHandler
	stop func()
}

func (g escapeGuard) HandleInput(ev entity.InputEvent) {
	if ev.Kind == entity.Press && ev.Key == entity.KeyEscape {
		g.stop()
		return
	}
	g.ContentHandler.HandleInput(ev)
}

// runHeadless drives the canvas from a Scheduler into an in-memory surface.
// With a replay file, recorded input is fed back tick by tick.
func runHeadless(cfg *config.ShellConfig, diag io.Writer, clock loop.Clock, replayFilename string, ticks int) (loop.Stats, error) {
	w := cfg.Window
	surface := image.NewRGBA(image.Rect(0, 0, w.Width, w.Height))
	canvas := scene.NewCanvas(surface, canvasOptions(cfg, diag))

	var poller loop.Poller
	if replayFilename != "" {
		data, err := replay.Load(replayFilename)
		if err != nil {
			return loop.Stats{}, err
		}
		replayer, err := replay.NewReplayer(*data)
		if err != nil {
			return loop.Stats{}, fmt.Errorf("failed to load replay %s: %w", replayFilename, err)
		}
		if ups := replayer.UPS(); ups != 0 && ups != w.UPS {
			log.Printf("Replay was recorded at %d UPS, playing at %d", ups, w.UPS)
		}
		if ticks <= 0 {
			ticks = replayer.TotalTicks()
		}
		poller = replayer
	}

	sched := loop.NewScheduler(clock, poller, loop.Settings{
		UPS:      w.UPS,
		MaxFPS:   w.MaxFPS,
		Viewport: surface.Bounds(),
	})

	var handler scene.ContentHandler = canvas
	if w.ExitOnEscape {
		handler = escapeGuard{ContentHandler: canvas, stop: sched.Stop}
	}

	stats := loop.Run(loop.Limit(sched, ticks), handler)

	if err := canvas.Close(); err != nil {
		return stats, err
	}
	return stats, nil
}
