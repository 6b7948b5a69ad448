// Package game adapts ebiten's callback loop to the serialized tick stream
// consumed by a scene.ContentHandler.
package game

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/drawloop/internal/application/loop"
	"github.com/younwookim/drawloop/internal/application/replay"
	"github.com/younwookim/drawloop/internal/application/scene"
	"github.com/younwookim/drawloop/internal/application/system"
	"github.com/younwookim/drawloop/internal/domain/entity"
)

// Options configures a Game
type Options struct {
	ScreenW      int
	ScreenH      int
	UPS          int  // Must match ebiten.SetTPS
	ExitOnEscape bool // Escape press terminates the loop
	// Target is the offscreen surface the content renders into. The host
	// presents it on the screen as the last step of each render tick,
	// after the content has finished rendering. May be nil.
	Target   *ebiten.Image
	Recorder *replay.Recorder
}

// Game implements ebiten.Game. ebiten calls Update at a fixed TPS and Draw
// once per display frame, never concurrently.
type Game struct {
	content      scene.ContentHandler
	input        system.InputSource
	target       *ebiten.Image
	recorder     *replay.Recorder
	screenW      int
	screenH      int
	exitOnEscape bool
	updateDt     time.Duration

	now        func() time.Time
	present    func(screen, target *ebiten.Image)
	start      time.Time
	lastUpdate time.Time
	frame      uint64
}

// New creates a new Game dispatching to content
func New(content scene.ContentHandler, input system.InputSource, opts Options) *Game {
	ups := loop.ClampRate(opts.UPS, loop.DefaultUPS)
	g := &Game{
		content:      content,
		input:        input,
		target:       opts.Target,
		recorder:     opts.Recorder,
		screenW:      opts.ScreenW,
		screenH:      opts.ScreenH,
		exitOnEscape: opts.ExitOnEscape,
		updateDt:     time.Second / time.Duration(ups),
		now:          time.Now,
		present:      drawTarget,
	}
	g.start = g.now()
	g.lastUpdate = g.start
	return g
}

// Update delivers this tick's key transitions, then one update tick.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	var events []entity.InputEvent
	if g.input != nil {
		events = g.input.Poll()
	}
	if g.recorder != nil {
		g.recorder.RecordTick(events)
	}

	for _, ev := range events {
		if g.exitOnEscape && ev.Kind == entity.Press && ev.Key == entity.KeyEscape {
			return ebiten.Termination
		}
		loop.Dispatch(g.content, loop.Key(ev))
	}

	loop.Dispatch(g.content, loop.Update())
	g.lastUpdate = g.now()
	return nil
}

// Draw delivers one render tick. The render tick ends with the host
// copying the target onto the screen; the content never sees the screen
// and the target is only read once RenderAll has returned.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	loop.Dispatch(g.content, loop.Render(g.frameContext()))

	if g.target != nil {
		g.present(screen, g.target)
	}
}

// Layout returns the fixed logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

func (g *Game) frameContext() entity.FrameContext {
	now := g.now()
	lag := float64(now.Sub(g.lastUpdate)) / float64(g.updateDt)
	if lag < 0 {
		lag = 0
	}
	if lag >= 1 {
		lag = 0.999
	}

	fc := entity.FrameContext{
		Frame:    g.frame,
		Viewport: image.Rect(0, 0, g.screenW, g.screenH),
		Elapsed:  now.Sub(g.start),
		Lag:      lag,
	}
	g.frame++
	return fc
}

func drawTarget(screen, target *ebiten.Image) {
	screen.DrawImage(target, nil)
}
