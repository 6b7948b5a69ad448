package state

// Lifecycle represents the current stage of a canvas
type Lifecycle int

const (
	Constructed Lifecycle = iota
	Active
	Destroyed
)

// String returns the string representation of the lifecycle stage
func (s Lifecycle) String() string {
	switch s {
	case Constructed:
		return "Constructed"
	case Active:
		return "Active"
	case Destroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Dispatchable reports whether dispatch calls are valid in this stage
func (s Lifecycle) Dispatchable() bool {
	return s == Constructed || s == Active
}
