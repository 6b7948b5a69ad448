// Package entity defines the contract shared by every visual entity the
// canvas dispatches to, plus the transient values passed along each tick.
package entity

import (
	"image"
	"image/color"
	"image/draw"
	"time"
)

// Surface is the render target handed to drawables during a render tick.
//
// The host image satisfies it on the windowed path; *image.RGBA is used
// headless and in tests.
type Surface interface {
	draw.Image
}

// Filler is implemented by surfaces that can clear themselves faster than
// a per-pixel draw.
type Filler interface {
	Fill(clr color.Color)
}

// FrameContext carries viewport and timing info for one render tick.
// It is only valid for the duration of the Render call.
type FrameContext struct {
	Frame    uint64          // Render tick number, starting at 0
	Viewport image.Rectangle // Logical drawing area
	Elapsed  time.Duration   // Time since the loop started
	Lag      float64         // Fraction of an update interval since the last update, [0,1)
}

// Drawable is one visual entity owned by a canvas.
type Drawable interface {
	// Render draws the current state onto surface. It must not change
	// entity state.
	Render(surface Surface, frame FrameContext)

	// Update advances the entity by exactly one fixed logical tick.
	// It must not touch the surface.
	Update()
}

// Clear fills the whole surface with clr.
func Clear(surface Surface, clr color.Color) {
	if f, ok := surface.(Filler); ok {
		f.Fill(clr)
		return
	}
	draw.Draw(surface, surface.Bounds(), image.NewUniform(clr), image.Point{}, draw.Src)
}
