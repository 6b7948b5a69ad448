package entity

import "fmt"

// InputKind discriminates key transitions
type InputKind int

const (
	Press InputKind = iota
	Release
)

// String returns the string representation of the input kind
func (k InputKind) String() string {
	switch k {
	case Press:
		return "Press"
	case Release:
		return "Release"
	default:
		return "Unknown"
	}
}

// Key identifies a keyboard key by its canonical host name ("Space", "A").
// Hosts map their own key codes onto it.
type Key string

// Keys the shell itself refers to
const (
	KeyA      Key = "A"
	KeyB      Key = "B"
	KeyEnter  Key = "Enter"
	KeyEscape Key = "Escape"
	KeySpace  Key = "Space"
)

func (k Key) String() string {
	return string(k)
}

// InputEvent is a single key transition observed by the host.
type InputEvent struct {
	Kind InputKind
	Key  Key
}

// Pressed returns an InputEvent for a key going down
func Pressed(key Key) InputEvent {
	return InputEvent{Kind: Press, Key: key}
}

// Released returns an InputEvent for a key going up
func Released(key Key) InputEvent {
	return InputEvent{Kind: Release, Key: key}
}

func (e InputEvent) String() string {
	return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
}
