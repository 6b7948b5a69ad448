package config

// MaxRate is the highest accepted ups and maxFps. The loop drivers use the
// same cap so a tick interval never truncates to zero.
const MaxRate = 1000

// WindowConfig is the root config for window.json.
// It is read once at startup and never mutated afterwards.
type WindowConfig struct {
	Title        string `json:"title"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	VSync        bool   `json:"vsync"`
	Resizable    bool   `json:"resizable"`
	ExitOnEscape bool   `json:"exitOnEscape"`
	UPS          int    `json:"ups"`        // Update ticks per second
	MaxFPS       int    `json:"maxFps"`     // Render cap for the headless driver, 0 = uncapped
	Background   string `json:"background"` // Color name or #rrggbb
}

// Binding maps a designated key to the diagnostic line printed on press
type Binding struct {
	Key     string `yaml:"key"`
	Message string `yaml:"message"`
}

// BindingsConfig is the root config for bindings.yaml
type BindingsConfig struct {
	Bindings []Binding `yaml:"bindings"`
}

// DefaultWindow returns the window settings used when window.json omits a field
func DefaultWindow() WindowConfig {
	return WindowConfig{
		Title:        "Title",
		Width:        480,
		Height:       480,
		VSync:        true,
		Resizable:    false,
		ExitOnEscape: true,
		UPS:          60,
		MaxFPS:       60,
		Background:   "black",
	}
}

// DefaultBindings returns the bindings used when bindings.yaml is absent
func DefaultBindings() BindingsConfig {
	return BindingsConfig{
		Bindings: []Binding{{Key: "Space", Message: "Space pressed!"}},
	}
}
