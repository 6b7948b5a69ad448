package system

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/drawloop/internal/domain/entity"
	"github.com/younwookim/drawloop/internal/infrastructure/keymap"
)

// InputSource supplies the key transitions observed since the last poll.
// InputSystem reads the live keyboard; replay.Replayer plays back a recording.
type InputSource interface {
	Poll() []entity.InputEvent
}

// InputSystem turns ebiten's per-tick keyboard state into transitions
type InputSystem struct {
	pressed  []ebiten.Key
	released []ebiten.Key
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Poll reads the keys that changed during the current tick.
// Must be called from ebiten's Update.
func (s *InputSystem) Poll() []entity.InputEvent {
	s.pressed = inpututil.AppendJustPressedKeys(s.pressed[:0])
	s.released = inpututil.AppendJustReleasedKeys(s.released[:0])
	return Transitions(s.pressed, s.released)
}

// Transitions converts pressed/released key lists into events.
// Presses come first; each group is ordered by ebiten key code.
func Transitions(pressed, released []ebiten.Key) []entity.InputEvent {
	if len(pressed) == 0 && len(released) == 0 {
		return nil
	}

	events := make([]entity.InputEvent, 0, len(pressed)+len(released))
	for _, k := range sortedKeys(pressed) {
		events = append(events, entity.Pressed(keymap.FromEbiten(k)))
	}
	for _, k := range sortedKeys(released) {
		events = append(events, entity.Released(keymap.FromEbiten(k)))
	}
	return events
}

func sortedKeys(keys []ebiten.Key) []ebiten.Key {
	out := slices.Clone(keys)
	slices.Sort(out)
	return out
}
