package main

import (
	"errors"
	"flag"
	"io"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/drawloop/internal/application/game"
	"github.com/younwookim/drawloop/internal/application/loop"
	"github.com/younwookim/drawloop/internal/application/replay"
	"github.com/younwookim/drawloop/internal/application/scene"
	"github.com/younwookim/drawloop/internal/application/system"
	"github.com/younwookim/drawloop/internal/infrastructure/config"
	"github.com/younwookim/drawloop/internal/infrastructure/console"
)

func loadConfig(dir string) (*config.ShellConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadAll()
	}

	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs").LoadAll()
}

func canvasOptions(cfg *config.ShellConfig, diag io.Writer) scene.Options {
	return scene.Options{
		Background:  cfg.BackgroundColor(),
		Bindings:    cfg.KeyBindings(),
		Diagnostics: diag,
	}
}

// autoRecord asks for a generated recording filename
const autoRecord = "auto"

// checkFlags rejects flag combinations that would be silently ignored
func checkFlags(record string, headless bool, replayFile string) error {
	if record == "" {
		return nil
	}
	if replayFile != "" {
		return errors.New("-record cannot be combined with -replay")
	}
	if headless {
		return errors.New("-record requires the window; drop -headless")
	}
	return nil
}

// recordPath resolves the -record flag to a filename
func recordPath(record string) string {
	if record == autoRecord {
		return replay.GenerateFilename()
	}
	return record
}

func runWindow(cfg *config.ShellConfig, diag io.Writer, recordFilename string) error {
	w := cfg.Window

	// The canvas owns this image; the game presents it after every render tick
	target := ebiten.NewImage(w.Width, w.Height)
	canvas := scene.NewCanvas(target, canvasOptions(cfg, diag))
	defer func() {
		if err := canvas.Close(); err != nil {
			log.Printf("Failed to close canvas: %v", err)
		}
	}()

	var recorder *replay.Recorder
	if recordFilename != "" {
		recorder = replay.NewRecorder(w.UPS)
		log.Printf("Recording enabled: %s", recordFilename)
	}

	g := game.New(canvas, system.NewInputSystem(), game.Options{
		ScreenW:      w.Width,
		ScreenH:      w.Height,
		UPS:          w.UPS,
		ExitOnEscape: w.ExitOnEscape,
		Target:       target,
		Recorder:     recorder,
	})

	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetVsyncEnabled(w.VSync)
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetTPS(w.UPS)

	err := ebiten.RunGame(g)

	if recorder != nil {
		if saveErr := recorder.Save(recordFilename); saveErr != nil {
			log.Printf("Failed to save recording: %v", saveErr)
		} else {
			log.Printf("Recording saved: %s (%d ticks)", recordFilename, recorder.TickCount())
		}
	}

	return err
}

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Load window.json and bindings.yaml from this directory instead of the built-in ones")
	recordFlag := flag.String("record", "", "Record key transitions to file (e.g., -record replay.json, or -record auto)")
	replayFlag := flag.String("replay", "", "Play back a recording without a window (implies -headless)")
	headless := flag.Bool("headless", false, "Run the loop without a window")
	ticks := flag.Int("ticks", 600, "Update ticks to run headless, 0 = until the replay ends")
	clearFlag := flag.Bool("clear", false, "Clear the console before starting")
	flag.Parse()

	if err := checkFlags(*recordFlag, *headless, *replayFlag); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	cfg, err := loadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	out := console.Stdout()
	if *clearFlag {
		_ = out.Clear()
	}

	if *headless || *replayFlag != "" {
		stats, err := runHeadless(cfg, out, loop.SystemClock{}, *replayFlag, *ticks)
		if err != nil {
			log.Fatalf("Headless run failed: %v", err)
		}
		log.Printf("Headless run finished: %d events (%d updates, %d frames, %d inputs)",
			stats.Total(), stats.Updates, stats.Renders, stats.Inputs)
		return
	}

	if err := runWindow(cfg, out, recordPath(*recordFlag)); err != nil {
		log.Fatal(err)
	}
}
