package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/drawloop/internal/application/loop"
	"github.com/younwookim/drawloop/internal/application/replay"
	"github.com/younwookim/drawloop/internal/domain/entity"
	"github.com/younwookim/drawloop/internal/infrastructure/config"
)

// fakeClock advances only when slept on
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func testConfig(t *testing.T) *config.ShellConfig {
	t.Helper()
	cfg, err := loadConfig("")
	require.NoError(t, err)
	return cfg
}

func writeReplay(t *testing.T, ticks ...[]entity.InputEvent) string {
	t.Helper()
	rec := replay.NewRecorder(60)
	for _, events := range ticks {
		rec.RecordTick(events)
	}
	path := filepath.Join(t.TempDir(), "replay.json")
	require.NoError(t, rec.Save(path))
	return path
}

func TestLoadConfig_Embedded(t *testing.T) {
	cfg := testConfig(t)

	assert.Equal(t, "Title", cfg.Window.Title)
	assert.Equal(t, 480, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.True(t, cfg.Window.VSync)
	assert.False(t, cfg.Window.Resizable)
	assert.True(t, cfg.Window.ExitOnEscape)
}

func TestLoadConfig_Directory(t *testing.T) {
	cfg, err := loadConfig("configs")
	require.NoError(t, err)
	assert.Equal(t, testConfig(t), cfg)

	_, err = loadConfig(filepath.Join(t.TempDir(), "nowhere"))
	assert.Error(t, err)
}

func TestRunHeadless_EmptyScene(t *testing.T) {
	var out bytes.Buffer

	stats, err := runHeadless(testConfig(t), &out, newFakeClock(), "", 3)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Updates)
	assert.Equal(t, 2, stats.Renders)
	assert.Equal(t, 0, stats.Inputs)
	assert.Empty(t, out.String())
}

func TestRunHeadless_Replay(t *testing.T) {
	path := writeReplay(t,
		[]entity.InputEvent{entity.Pressed(entity.KeySpace)},
		[]entity.InputEvent{entity.Released(entity.KeySpace)},
		[]entity.InputEvent{entity.Pressed(entity.KeyA)},
	)
	var out bytes.Buffer

	stats, err := runHeadless(testConfig(t), &out, newFakeClock(), path, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Updates, "runs until the replay ends")
	assert.Equal(t, 3, stats.Inputs)
	assert.Equal(t, "Space pressed!\n", out.String())
}

func TestRunHeadless_EscapeStops(t *testing.T) {
	path := writeReplay(t,
		nil,
		[]entity.InputEvent{entity.Pressed(entity.KeyEscape)},
		[]entity.InputEvent{entity.Pressed(entity.KeySpace)},
		nil,
	)
	var out bytes.Buffer

	stats, err := runHeadless(testConfig(t), &out, newFakeClock(), path, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Updates)
	assert.Equal(t, 1, stats.Inputs)
	assert.Empty(t, out.String(), "space after escape is never delivered")
}

func TestRunHeadless_MissingReplay(t *testing.T) {
	_, err := runHeadless(testConfig(t), &bytes.Buffer{}, newFakeClock(), filepath.Join(t.TempDir(), "none.json"), 0)
	assert.Error(t, err)
}

func TestCheckFlags(t *testing.T) {
	tests := []struct {
		name     string
		record   string
		headless bool
		replay   string
		wantErr  string
	}{
		{"nothing", "", false, "", ""},
		{"record in window", "out.json", false, "", ""},
		{"headless alone", "", true, "", ""},
		{"replay alone", "", false, "in.json", ""},
		{"record with headless", "out.json", true, "", "-headless"},
		{"record with replay", "out.json", false, "in.json", "-replay"},
		{"record with both", "auto", true, "in.json", "-replay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkFlags(tt.record, tt.headless, tt.replay)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRecordPath(t *testing.T) {
	assert.Equal(t, "", recordPath(""))
	assert.Equal(t, "session.json", recordPath("session.json"))
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, recordPath("auto"))
}

func TestRunHeadless_ReplayAtDifferentUPS(t *testing.T) {
	rec := replay.NewRecorder(30)
	rec.RecordTick([]entity.InputEvent{entity.Pressed(entity.KeySpace)})
	rec.RecordTick(nil)
	path := filepath.Join(t.TempDir(), "slow.json")
	require.NoError(t, rec.Save(path))
	var out bytes.Buffer

	stats, err := runHeadless(testConfig(t), &out, newFakeClock(), path, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Updates, "played at the configured rate")
	assert.Equal(t, "Space pressed!\n", out.String())
}

func TestRateCapsAgree(t *testing.T) {
	assert.Equal(t, loop.MaxRate, config.MaxRate)
}
