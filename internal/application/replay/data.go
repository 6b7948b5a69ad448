package replay

// KeyTransition records a single key going down or up
type KeyTransition struct {
	Key     string `json:"k"`           // key name
	Release bool   `json:"r,omitempty"` // false = press
}

// TickInput records the transitions observed during one update tick
type TickInput struct {
	T      int             `json:"t"`           // Tick number
	Events []KeyTransition `json:"e,omitempty"` // In delivery order
}

// Data contains all data needed to replay an input session
type Data struct {
	Version   string      `json:"version"`
	StartTime string      `json:"startTime"`
	UPS       int         `json:"ups"`
	Ticks     []TickInput `json:"ticks"`
}

const currentVersion = "1.0"
