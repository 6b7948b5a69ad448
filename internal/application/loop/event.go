// Package loop ties frame timing, update timing and input delivery into a
// single serialized stream of tagged events.
//
// A Source yields events one at a time; Run pulls them and dispatches each to
// a scene.ContentHandler synchronously, so exactly one of RenderAll,
// UpdateAll or HandleInput executes at any instant.
package loop

import (
	"fmt"

	"github.com/younwookim/drawloop/internal/application/scene"
	"github.com/younwookim/drawloop/internal/domain/entity"
)

// Kind tags an Event
type Kind int

const (
	RenderTick Kind = iota
	UpdateTick
	Input
)

// String returns the string representation of the event kind
func (k Kind) String() string {
	switch k {
	case RenderTick:
		return "RenderTick"
	case UpdateTick:
		return "UpdateTick"
	case Input:
		return "Input"
	default:
		return "Unknown"
	}
}

// Event is one unit of work for the content handler.
// Frame is only meaningful for RenderTick, Input only for Input.
type Event struct {
	Kind  Kind
	Frame entity.FrameContext
	Input entity.InputEvent
}

// Render returns a render tick event
func Render(frame entity.FrameContext) Event {
	return Event{Kind: RenderTick, Frame: frame}
}

// Update returns an update tick event
func Update() Event {
	return Event{Kind: UpdateTick}
}

// Key returns an input event
func Key(ev entity.InputEvent) Event {
	return Event{Kind: Input, Input: ev}
}

func (e Event) String() string {
	switch e.Kind {
	case RenderTick:
		return fmt.Sprintf("RenderTick(#%d)", e.Frame.Frame)
	case Input:
		return "Input(" + e.Input.String() + ")"
	default:
		return e.Kind.String()
	}
}

// Source yields the serialized event stream. It is lazy and cannot be
// restarted; ok is false once the host has signalled closure.
type Source interface {
	Next() (ev Event, ok bool)
}

// Stats counts dispatched events per kind
type Stats struct {
	Renders int
	Updates int
	Inputs  int
}

// Total returns the number of dispatched events
func (s Stats) Total() int {
	return s.Renders + s.Updates + s.Inputs
}

func (s *Stats) count(k Kind) {
	switch k {
	case RenderTick:
		s.Renders++
	case UpdateTick:
		s.Updates++
	case Input:
		s.Inputs++
	}
}

// Dispatch invokes exactly one handler operation for e.
// An unknown kind is a programming error and panics.
func Dispatch(h scene.ContentHandler, e Event) {
	switch e.Kind {
	case RenderTick:
		h.RenderAll(e.Frame)
	case UpdateTick:
		h.UpdateAll()
	case Input:
		h.HandleInput(e.Input)
	default:
		panic(fmt.Sprintf("loop: unknown event kind %d", int(e.Kind)))
	}
}

// Run pulls events from src until it closes, dispatching each to h before
// pulling the next.
func Run(src Source, h scene.ContentHandler) Stats {
	var stats Stats
	for {
		ev, ok := src.Next()
		if !ok {
			return stats
		}
		Dispatch(h, ev)
		stats.count(ev.Kind)
	}
}

// limited closes the wrapped source after a number of update ticks
type limited struct {
	src       Source
	remaining int
}

// Limit returns a Source that ends right after the given number of update
// ticks have been yielded. A non-positive count means no limit.
func Limit(src Source, updates int) Source {
	if updates <= 0 {
		return src
	}
	return &limited{src: src, remaining: updates}
}

func (l *limited) Next() (Event, bool) {
	if l.remaining <= 0 {
		return Event{}, false
	}
	ev, ok := l.src.Next()
	if !ok {
		l.remaining = 0
		return Event{}, false
	}
	if ev.Kind == UpdateTick {
		l.remaining--
	}
	return ev, true
}
