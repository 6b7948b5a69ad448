package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/drawloop/internal/domain/entity"
)

// Recorder captures key transitions tick by tick for later playback
type Recorder struct {
	data Data
	tick int
}

// NewRecorder creates a new recorder for a loop running at ups
func NewRecorder(ups int) *Recorder {
	return &Recorder{
		data: Data{
			Version:   currentVersion,
			StartTime: time.Now().Format(time.RFC3339),
			UPS:       ups,
			Ticks:     make([]TickInput, 0, 3600), // Pre-allocate for ~1 minute at 60 UPS
		},
	}
}

// RecordTick records one update tick and the transitions delivered before it
func (r *Recorder) RecordTick(events []entity.InputEvent) {
	ti := TickInput{T: r.tick}
	for _, ev := range events {
		ti.Events = append(ti.Events, KeyTransition{
			Key:     ev.Key.String(),
			Release: ev.Kind == entity.Release,
		})
	}

	r.data.Ticks = append(r.data.Ticks, ti)
	r.tick++
}

// Save writes the recording to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Ticks) == 0 {
		return fmt.Errorf("no ticks to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// TickCount returns the number of recorded ticks
func (r *Recorder) TickCount() int {
	return len(r.data.Ticks)
}

// GetData returns the recorded data
func (r *Recorder) GetData() Data {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
