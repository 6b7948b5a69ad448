package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/drawloop/internal/domain/entity"
	"github.com/younwookim/drawloop/internal/infrastructure/keymap"
)

// Replayer plays back recorded key transitions. Each Poll yields the next
// recorded tick, so it can stand in for the live input system.
type Replayer struct {
	data Data
	tick int
}

// NewReplayer creates a new replayer from recorded data.
// Key names are validated up front.
func NewReplayer(data Data) (*Replayer, error) {
	for _, ti := range data.Ticks {
		for _, kt := range ti.Events {
			if _, ok := keymap.ByName(kt.Key); !ok {
				return nil, fmt.Errorf("tick %d: unknown key %q", ti.T, kt.Key)
			}
		}
	}
	return &Replayer{data: data}, nil
}

// Load reads replay data from a file
func Load(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Data
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Poll returns the transitions for the current tick and advances.
// Once the recording is exhausted it returns nil.
func (r *Replayer) Poll() []entity.InputEvent {
	if r.Done() {
		return nil
	}

	ti := r.data.Ticks[r.tick]
	r.tick++

	if len(ti.Events) == 0 {
		return nil
	}
	events := make([]entity.InputEvent, 0, len(ti.Events))
	for _, kt := range ti.Events {
		k, _ := keymap.ByName(kt.Key)
		if kt.Release {
			events = append(events, entity.Released(k))
		} else {
			events = append(events, entity.Pressed(k))
		}
	}
	return events
}

// Done reports whether every recorded tick has been played
func (r *Replayer) Done() bool {
	return r.tick >= len(r.data.Ticks)
}

// TotalTicks returns the total number of ticks
func (r *Replayer) TotalTicks() int {
	return len(r.data.Ticks)
}

// UPS returns the update rate the recording was made at
func (r *Replayer) UPS() int {
	return r.data.UPS
}
