// Package scene defines the dispatch contract driven by the loop and the
// Canvas that implements it.
//
// The loop delivers exactly one call at a time: RenderAll on a render tick,
// UpdateAll on an update tick, HandleInput on a key transition. No call
// overlaps another, so nothing here takes a lock.
package scene

import "github.com/younwookim/drawloop/internal/domain/entity"

// ContentHandler receives the serialized tick stream from a loop driver.
type ContentHandler interface {
	// RenderAll clears the surface and renders every drawable for one frame.
	RenderAll(frame entity.FrameContext)

	// UpdateAll advances every drawable by one fixed logical tick.
	UpdateAll()

	// HandleInput reacts to a single key transition.
	HandleInput(ev entity.InputEvent)
}
