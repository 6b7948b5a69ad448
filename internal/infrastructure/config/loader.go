package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"

	"github.com/younwookim/drawloop/internal/domain/entity"
	"github.com/younwookim/drawloop/internal/infrastructure/keymap"
	"gopkg.in/yaml.v3"
)

// ShellConfig holds all loaded configurations
type ShellConfig struct {
	Window   *WindowConfig
	Bindings *BindingsConfig
}

// Loader loads shell configuration from files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadWindow loads window.json. Fields missing from the file keep their
// DefaultWindow values.
func (l *Loader) LoadWindow() (*WindowConfig, error) {
	data, err := fs.ReadFile(l.fsys, "window.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read window.json: %w", err)
	}

	cfg := DefaultWindow()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse window.json: %w", err)
	}

	return &cfg, nil
}

// LoadBindings loads bindings.yaml, falling back to DefaultBindings when the
// file does not exist.
func (l *Loader) LoadBindings() (*BindingsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "bindings.yaml")
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultBindings()
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read bindings.yaml: %w", err)
	}

	var cfg BindingsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bindings.yaml: %w", err)
	}

	return &cfg, nil
}

// LoadAll loads and validates all configurations (window, bindings)
func (l *Loader) LoadAll() (*ShellConfig, error) {
	window, err := l.LoadWindow()
	if err != nil {
		return nil, err
	}

	bindings, err := l.LoadBindings()
	if err != nil {
		return nil, err
	}

	cfg := &ShellConfig{
		Window:   window,
		Bindings: bindings,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", l.basePath, err)
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a window
func (c *ShellConfig) Validate() error {
	w := c.Window
	if w == nil {
		return errors.New("missing window config")
	}
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.UPS <= 0 || w.UPS > MaxRate {
		return fmt.Errorf("ups must be in 1..%d, got %d", MaxRate, w.UPS)
	}
	if w.MaxFPS < 0 || w.MaxFPS > MaxRate {
		return fmt.Errorf("maxFps must be in 0..%d, got %d", MaxRate, w.MaxFPS)
	}
	if _, err := ParseColor(w.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}

	if c.Bindings == nil {
		return nil
	}
	seen := make(map[entity.Key]bool, len(c.Bindings.Bindings))
	for i, b := range c.Bindings.Bindings {
		k, ok := keymap.ByName(b.Key)
		if !ok {
			return fmt.Errorf("binding %d: unknown key %q", i, b.Key)
		}
		if b.Message == "" {
			return fmt.Errorf("binding %d (%s): empty message", i, b.Key)
		}
		if seen[k] {
			return fmt.Errorf("binding %d: duplicate key %q", i, b.Key)
		}
		seen[k] = true
	}

	return nil
}

// BackgroundColor returns the parsed background color.
// Call after Validate.
func (c *ShellConfig) BackgroundColor() color.Color {
	bg, err := ParseColor(c.Window.Background)
	if err != nil {
		return Black
	}
	return bg
}

// KeyBindings returns the bindings keyed by canonical key name.
// Call after Validate; unknown keys are skipped.
func (c *ShellConfig) KeyBindings() map[entity.Key]string {
	if c.Bindings == nil {
		return nil
	}
	out := make(map[entity.Key]string, len(c.Bindings.Bindings))
	for _, b := range c.Bindings.Bindings {
		if k, ok := keymap.ByName(b.Key); ok {
			out[k] = b.Message
		}
	}
	return out
}
