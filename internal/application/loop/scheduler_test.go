package loop

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/drawloop/internal/domain/entity"
)

// fakeClock only moves when slept on or advanced by the test
type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// scriptedPoller returns one scripted batch per poll
type scriptedPoller struct {
	batches [][]entity.InputEvent
	polls   int
}

func (p *scriptedPoller) Poll() []entity.InputEvent {
	p.polls++
	if len(p.batches) == 0 {
		return nil
	}
	b := p.batches[0]
	p.batches = p.batches[1:]
	return b
}

func take(t *testing.T, s *Scheduler, n int) []Event {
	t.Helper()
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		ev, ok := s.Next()
		require.True(t, ok, "event %d", i)
		events = append(events, ev)
	}
	return events
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(newFakeClock(), nil, Settings{})

	assert.Equal(t, time.Second/60, s.UpdateInterval())
	assert.Equal(t, DefaultMaxCatchUp, s.maxCatchUp)
	assert.Equal(t, time.Duration(0), s.frameDt, "zero MaxFPS is uncapped")
}

func TestNewScheduler_ClampsRates(t *testing.T) {
	s := NewScheduler(newFakeClock(), nil, Settings{UPS: 2_000_000_000, MaxFPS: 1_500_000_000})

	assert.Equal(t, time.Second/MaxRate, s.UpdateInterval())
	assert.Equal(t, time.Second/MaxRate, s.frameDt)
	assert.Positive(t, s.UpdateInterval())
}

func TestClampRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		expected int
	}{
		{"zero uses default", 0, 60},
		{"negative uses default", -5, 60},
		{"in range", 144, 144},
		{"at cap", MaxRate, MaxRate},
		{"above cap", MaxRate + 1, MaxRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampRate(tt.rate, 60))
		})
	}
}

func TestScheduler_UpdatesAtFixedRate(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(clock, nil, Settings{UPS: 60, MaxFPS: 60})

	var updateTimes []time.Time
	for len(updateTimes) < 5 {
		ev, ok := s.Next()
		require.True(t, ok)
		if ev.Kind == UpdateTick {
			updateTimes = append(updateTimes, clock.Now())
		}
	}

	for i := 1; i < len(updateTimes); i++ {
		assert.Equal(t, time.Second/60, updateTimes[i].Sub(updateTimes[i-1]), "update %d", i)
	}
}

func TestScheduler_MatchedRatesAlternate(t *testing.T) {
	s := NewScheduler(newFakeClock(), nil, Settings{UPS: 60, MaxFPS: 60})

	events := take(t, s, 6)

	assert.Equal(t, []Kind{UpdateTick, RenderTick, UpdateTick, RenderTick, UpdateTick, RenderTick}, kinds(events))
}

func TestScheduler_RenderRateIndependentOfUpdateRate(t *testing.T) {
	s := NewScheduler(newFakeClock(), nil, Settings{UPS: 60, MaxFPS: 120})

	events := take(t, s, 9)

	assert.Equal(t, []Kind{
		UpdateTick, RenderTick, RenderTick,
		UpdateTick, RenderTick, RenderTick,
		UpdateTick, RenderTick, RenderTick,
	}, kinds(events))
}

func TestScheduler_FrameContext(t *testing.T) {
	clock := newFakeClock()
	viewport := image.Rect(0, 0, 480, 480)
	s := NewScheduler(clock, nil, Settings{UPS: 60, MaxFPS: 120, Viewport: viewport})

	events := take(t, s, 3)

	first := events[1].Frame
	assert.Equal(t, uint64(0), first.Frame)
	assert.Equal(t, viewport, first.Viewport)
	assert.Equal(t, time.Duration(0), first.Elapsed)
	assert.InDelta(t, 0.0, first.Lag, 1e-9)

	second := events[2].Frame
	assert.Equal(t, uint64(1), second.Frame)
	assert.Equal(t, time.Second/120, second.Elapsed)
	assert.InDelta(t, 0.5, second.Lag, 1e-6)
}

func TestScheduler_InputPrecedesItsUpdate(t *testing.T) {
	poller := &scriptedPoller{batches: [][]entity.InputEvent{
		{entity.Pressed(entity.KeySpace), entity.Pressed(entity.KeyA)},
		nil,
		{entity.Released(entity.KeySpace)},
	}}
	s := NewScheduler(newFakeClock(), poller, Settings{UPS: 60, MaxFPS: 60})

	events := take(t, s, 8)

	assert.Equal(t, []Kind{
		Input, Input, UpdateTick, RenderTick,
		UpdateTick, RenderTick,
		Input, UpdateTick,
	}, kinds(events))
	assert.Equal(t, entity.Pressed(entity.KeySpace), events[0].Input)
	assert.Equal(t, entity.Pressed(entity.KeyA), events[1].Input)
	assert.Equal(t, entity.Released(entity.KeySpace), events[6].Input)
	assert.Equal(t, 3, poller.polls, "polled once per update tick")
}

func TestScheduler_CatchesUpSmallBacklog(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(clock, nil, Settings{UPS: 60, MaxFPS: 60})
	take(t, s, 2) // update + render at t0

	clock.Advance(5 * time.Second / 60)

	updates := 0
	for {
		ev, ok := s.Next()
		require.True(t, ok)
		if ev.Kind == RenderTick {
			break
		}
		updates++
	}
	assert.Equal(t, 5, updates)
}

func TestScheduler_DropsLargeBacklog(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(clock, nil, Settings{UPS: 60, MaxFPS: 60, MaxCatchUp: 10})
	take(t, s, 2)

	clock.Advance(time.Second)

	events := take(t, s, 2)
	assert.Equal(t, []Kind{UpdateTick, RenderTick}, kinds(events))

	// Schedule was re-anchored to the current time
	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, UpdateTick, next.Kind)
	assert.Equal(t, []time.Duration{time.Second / 60}, clock.slept)
}

func TestScheduler_SleepsInsteadOfSpinning(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(clock, nil, Settings{UPS: 60, MaxFPS: 60})

	take(t, s, 4)

	assert.Equal(t, []time.Duration{time.Second / 60}, clock.slept)
}

func TestScheduler_Stop(t *testing.T) {
	poller := &scriptedPoller{batches: [][]entity.InputEvent{{entity.Pressed(entity.KeySpace)}}}
	s := NewScheduler(newFakeClock(), poller, Settings{})

	ev, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, Input, ev.Kind)

	s.Stop()

	_, ok = s.Next()
	assert.False(t, ok, "queued update is discarded")
	_, ok = s.Next()
	assert.False(t, ok)
}

func TestScheduler_RunWithLimit(t *testing.T) {
	s := NewScheduler(newFakeClock(), nil, Settings{UPS: 60, MaxFPS: 60})
	h := &recordingHandler{}

	stats := Run(Limit(s, 3), h)

	assert.Equal(t, 3, stats.Updates)
	assert.Equal(t, 2, stats.Renders)
	assert.Equal(t, []string{"update", "render", "update", "render", "update"}, h.calls)
}
