package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-customizer/common"
	"github.com/pelletier/go-toml/v2"
)

// Defaults applied to fields left empty in a config file.
const (
	DefaultTitle             = "Oxy Customizer"
	DefaultWidth             = 1280
	DefaultHeight            = 720
	DefaultDataDir           = "saves"
	DefaultFileID            = "default"
	DefaultAnimationMillis   = 500
	DefaultSaveWorkers       = 2
	DefaultProfilerMillis    = 1000
	DefaultRotateSpeed       = 1.0
	DefaultZoomSpeed         = 1.0
	DefaultPanSpeed          = 1.0
	DefaultMinCameraDistance = 0.3
	DefaultMaxCameraDistance = 3.0
)

// Config is the customizer's configuration file.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Editor   EditorConfig   `toml:"editor"`
	Renderer RendererConfig `toml:"renderer"`
	Profiler ProfilerConfig `toml:"profiler"`
}

// WindowConfig describes the desktop window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// EditorConfig describes what is edited and how the camera behaves.
type EditorConfig struct {
	// DataDir is where material blobs are stored.
	DataDir string `toml:"data_dir"`

	// FileID is the file opened at startup.
	FileID string `toml:"file_id"`

	// ModelPath is an optional YAML part catalog. The built-in shirt is used when empty.
	ModelPath string `toml:"model_path"`

	// AnimationMillis is the camera flight duration in milliseconds.
	AnimationMillis int `toml:"animation_ms"`

	SaveWorkers int `toml:"save_workers"`

	RotateSpeed       float32 `toml:"rotate_speed"`
	ZoomSpeed         float32 `toml:"zoom_speed"`
	PanSpeed          float32 `toml:"pan_speed"`
	MinCameraDistance float32 `toml:"min_camera_distance"`
	MaxCameraDistance float32 `toml:"max_camera_distance"`
}

// RendererConfig describes the GPU backend.
type RendererConfig struct {
	// Uncapped presents immediately instead of waiting for vsync.
	Uncapped bool `toml:"uncapped"`

	// SoftwareRenderer forces a fallback adapter.
	SoftwareRenderer bool `toml:"software_renderer"`

	// Background is the RGB clear color used while no part is selected.
	Background [3]float64 `toml:"background"`
}

// ProfilerConfig describes redraw statistics logging.
type ProfilerConfig struct {
	Enabled        bool `toml:"enabled"`
	IntervalMillis int  `toml:"interval_ms"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Load reads a TOML config file. Fields the file leaves out keep their defaults.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the configuration
//   - error: error if the file cannot be read, has unknown keys or fails validation
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes TOML configuration from r and fills in defaults.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the configuration
//   - error: error if the source is malformed, has unknown keys or fails validation
func Parse(r io.Reader) (Config, error) {
	var c Config
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&c); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	c.Window.Title = common.Coalesce(c.Window.Title, DefaultTitle)
	c.Window.Width = common.Coalesce(c.Window.Width, DefaultWidth)
	c.Window.Height = common.Coalesce(c.Window.Height, DefaultHeight)

	c.Editor.DataDir = common.Coalesce(c.Editor.DataDir, DefaultDataDir)
	c.Editor.FileID = common.Coalesce(c.Editor.FileID, DefaultFileID)
	c.Editor.AnimationMillis = common.Coalesce(c.Editor.AnimationMillis, DefaultAnimationMillis)
	c.Editor.SaveWorkers = common.Coalesce(c.Editor.SaveWorkers, DefaultSaveWorkers)
	c.Editor.RotateSpeed = common.Coalesce(c.Editor.RotateSpeed, DefaultRotateSpeed)
	c.Editor.ZoomSpeed = common.Coalesce(c.Editor.ZoomSpeed, DefaultZoomSpeed)
	c.Editor.PanSpeed = common.Coalesce(c.Editor.PanSpeed, DefaultPanSpeed)
	c.Editor.MinCameraDistance = common.Coalesce(c.Editor.MinCameraDistance, DefaultMinCameraDistance)
	c.Editor.MaxCameraDistance = common.Coalesce(c.Editor.MaxCameraDistance, DefaultMaxCameraDistance)

	c.Renderer.Background = common.Coalesce(c.Renderer.Background, [3]float64{0.1, 0.1, 0.1})

	c.Profiler.IntervalMillis = common.Coalesce(c.Profiler.IntervalMillis, DefaultProfilerMillis)
}

// Validate rejects values no component can work with.
//
// Returns:
//   - error: the first invalid field, or nil
func (c Config) Validate() error {
	switch {
	case c.Window.Width < 0 || c.Window.Height < 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Editor.AnimationMillis < 0:
		return fmt.Errorf("editor.animation_ms %d must be positive", c.Editor.AnimationMillis)
	case c.Editor.SaveWorkers < 0:
		return fmt.Errorf("editor.save_workers %d must be positive", c.Editor.SaveWorkers)
	case c.Editor.MinCameraDistance < 0 || c.Editor.MaxCameraDistance < c.Editor.MinCameraDistance:
		return fmt.Errorf("editor camera distance range [%g, %g] is invalid", c.Editor.MinCameraDistance, c.Editor.MaxCameraDistance)
	case c.Profiler.IntervalMillis < 0:
		return fmt.Errorf("profiler.interval_ms %d must be positive", c.Profiler.IntervalMillis)
	}
	return nil
}

// AnimationDuration returns the camera flight duration.
func (c Config) AnimationDuration() time.Duration {
	return time.Duration(c.Editor.AnimationMillis) * time.Millisecond
}

// ProfilerInterval returns how often redraw statistics are logged.
func (c Config) ProfilerInterval() time.Duration {
	return time.Duration(c.Profiler.IntervalMillis) * time.Millisecond
}
