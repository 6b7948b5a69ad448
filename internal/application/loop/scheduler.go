package loop

import (
	"image"
	"time"

	"github.com/younwookim/drawloop/internal/domain/entity"
)

const (
	DefaultUPS        = 60
	DefaultMaxFPS     = 60
	DefaultMaxCatchUp = 10

	// MaxRate caps UPS and MaxFPS; above it tick intervals would
	// truncate toward zero.
	MaxRate = 1000
)

// Clock abstracts wall time so the scheduler can be driven deterministically
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Poller supplies the key transitions observed since the previous poll
type Poller interface {
	Poll() []entity.InputEvent
}

// Settings configures a Scheduler
type Settings struct {
	UPS        int             // Update ticks per second (default 60)
	MaxFPS     int             // Render ticks per second cap, 0 = uncapped
	MaxCatchUp int             // Updates the driver may lag before the backlog is dropped (default 10)
	Viewport   image.Rectangle // Reported in every FrameContext
}

// Scheduler is a pull-based loop driver for hosts without their own event
// loop. Update ticks are delivered at a fixed rate of 1/UPS seconds,
// render ticks as often as MaxFPS allows, and input observed by the poller
// is delivered just before the update tick it was polled for.
type Scheduler struct {
	clock      Clock
	poller     Poller
	viewport   image.Rectangle
	updateDt   time.Duration
	frameDt    time.Duration
	maxCatchUp int

	start      time.Time
	lastUpdate time.Time
	nextUpdate time.Time
	nextFrame  time.Time
	frame      uint64
	queue      []Event
	started    bool
	stopped    bool
}

// NewScheduler creates a scheduler. poller may be nil.
func NewScheduler(clock Clock, poller Poller, s Settings) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	ups := ClampRate(s.UPS, DefaultUPS)
	catchUp := s.MaxCatchUp
	if catchUp <= 0 {
		catchUp = DefaultMaxCatchUp
	}
	var frameDt time.Duration
	if s.MaxFPS > 0 {
		frameDt = time.Second / time.Duration(min(s.MaxFPS, MaxRate))
	}

	return &Scheduler{
		clock:      clock,
		poller:     poller,
		viewport:   s.Viewport,
		updateDt:   time.Second / time.Duration(ups),
		frameDt:    frameDt,
		maxCatchUp: catchUp,
	}
}

// ClampRate returns def for a non-positive rate and caps it at MaxRate
func ClampRate(rate, def int) int {
	if rate <= 0 {
		return def
	}
	return min(rate, MaxRate)
}

// UpdateInterval returns the fixed logical tick length
func (s *Scheduler) UpdateInterval() time.Duration {
	return s.updateDt
}

// Stop ends the event sequence. Queued events are discarded.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.queue = nil
}

// Next blocks until the next event is due and returns it.
func (s *Scheduler) Next() (Event, bool) {
	for {
		if s.stopped {
			return Event{}, false
		}
		if len(s.queue) > 0 {
			ev := s.queue[0]
			s.queue = s.queue[1:]
			return ev, true
		}

		now := s.clock.Now()
		if !s.started {
			s.started = true
			s.start = now
			s.lastUpdate = now
			s.nextUpdate = now
			s.nextFrame = now
		}

		// Updates take priority over frames
		if !now.Before(s.nextUpdate) {
			if now.Sub(s.nextUpdate) > time.Duration(s.maxCatchUp)*s.updateDt {
				s.nextUpdate = now
			}
			s.pollInput()
			s.queue = append(s.queue, Update())
			s.lastUpdate = s.nextUpdate
			s.nextUpdate = s.nextUpdate.Add(s.updateDt)
			continue
		}

		if s.frameDt == 0 || !now.Before(s.nextFrame) {
			if s.frameDt > 0 {
				s.nextFrame = s.nextFrame.Add(s.frameDt)
				if !s.nextFrame.After(now) {
					s.nextFrame = now.Add(s.frameDt)
				}
			}
			return Render(s.frameContext(now)), true
		}

		wait := s.nextUpdate.Sub(now)
		if d := s.nextFrame.Sub(now); d < wait {
			wait = d
		}
		s.clock.Sleep(wait)
	}
}

func (s *Scheduler) pollInput() {
	if s.poller == nil {
		return
	}
	for _, ev := range s.poller.Poll() {
		s.queue = append(s.queue, Key(ev))
	}
}

func (s *Scheduler) frameContext(now time.Time) entity.FrameContext {
	lag := float64(now.Sub(s.lastUpdate)) / float64(s.updateDt)
	if lag < 0 {
		lag = 0
	}
	if lag >= 1 {
		lag = 0.999
	}

	fc := entity.FrameContext{
		Frame:    s.frame,
		Viewport: s.viewport,
		Elapsed:  now.Sub(s.start),
		Lag:      lag,
	}
	s.frame++
	return fc
}
