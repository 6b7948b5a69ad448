package scene

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/younwookim/drawloop/internal/application/state"
	"github.com/younwookim/drawloop/internal/domain/entity"
)

var (
	// ErrClosed is returned when adding to a destroyed canvas.
	ErrClosed = errors.New("scene: canvas is destroyed")
	// ErrNilDrawable is returned when adding a nil drawable.
	ErrNilDrawable = errors.New("scene: nil drawable")
)

// Options configures a Canvas. Zero values fall back to defaults.
type Options struct {
	// Background is the clear color for every frame (default black)
	Background color.Color
	// Bindings maps designated keys to the diagnostic line emitted on press
	Bindings map[entity.Key]string
	// Diagnostics receives binding lines (default io.Discard)
	Diagnostics io.Writer
}

// DefaultBindings returns the bindings used when Options.Bindings is nil.
func DefaultBindings() map[entity.Key]string {
	return map[entity.Key]string{
		entity.KeySpace: "Space pressed!",
	}
}

// Canvas owns the rendering surface and an ordered set of drawables.
// Insertion order is render order: later drawables paint over earlier ones.
type Canvas struct {
	surface    entity.Surface
	items      []entity.Drawable
	background color.Color
	bindings   map[entity.Key]string
	diag       io.Writer
	state      state.Lifecycle
}

var _ ContentHandler = (*Canvas)(nil)

// NewCanvas creates an empty canvas that renders into surface.
func NewCanvas(surface entity.Surface, opts Options) *Canvas {
	if surface == nil {
		panic("scene: nil surface")
	}

	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}

	src := opts.Bindings
	if src == nil {
		src = DefaultBindings()
	}
	bindings := make(map[entity.Key]string, len(src))
	for k, msg := range src {
		bindings[k] = msg
	}

	diag := opts.Diagnostics
	if diag == nil {
		diag = io.Discard
	}

	return &Canvas{
		surface:    surface,
		background: bg,
		bindings:   bindings,
		diag:       diag,
		state:      state.Constructed,
	}
}

// Add appends d to the canvas. It must not be called during a dispatch.
func (c *Canvas) Add(d entity.Drawable) error {
	if c.state == state.Destroyed {
		return ErrClosed
	}
	if d == nil {
		return ErrNilDrawable
	}
	c.items = append(c.items, d)
	return nil
}

// Len returns the number of owned drawables
func (c *Canvas) Len() int {
	return len(c.items)
}

// State returns the lifecycle stage
func (c *Canvas) State() state.Lifecycle {
	return c.state
}

// RenderAll clears the surface to the background color, then renders every
// drawable in insertion order.
func (c *Canvas) RenderAll(frame entity.FrameContext) {
	c.enter("RenderAll")

	entity.Clear(c.surface, c.background)
	for _, item := range c.items {
		item.Render(c.surface, frame)
	}
}

// UpdateAll updates every drawable in insertion order.
func (c *Canvas) UpdateAll() {
	c.enter("UpdateAll")

	for _, item := range c.items {
		item.Update()
	}
}

// HandleInput writes the bound diagnostic line when a designated key is
// pressed. Releases and unbound keys are ignored.
func (c *Canvas) HandleInput(ev entity.InputEvent) {
	c.enter("HandleInput")

	if ev.Kind != entity.Press {
		return
	}
	msg, ok := c.bindings[ev.Key]
	if !ok {
		return
	}
	_, _ = fmt.Fprintln(c.diag, msg)
}

// Close destroys the canvas. Drawables implementing io.Closer are closed in
// insertion order. Calling Close again is a no-op.
func (c *Canvas) Close() error {
	if c.state == state.Destroyed {
		return nil
	}
	c.state = state.Destroyed

	var errs []error
	for i, item := range c.items {
		closer, ok := item.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close drawable %d: %w", i, err))
		}
	}
	c.items = nil
	c.surface = nil
	return errors.Join(errs...)
}

func (c *Canvas) enter(op string) {
	if !c.state.Dispatchable() {
		panic("scene: " + op + " on destroyed canvas")
	}
	c.state = state.Active
}
