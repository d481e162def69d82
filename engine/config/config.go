// Package config loads viewer settings from a TOML file, falling back to
// sensible defaults when no file is present.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/duskglow/loupe/common"
)

// Config holds the viewer's startup settings.
type Config struct {
	Window struct {
		// Title is the window title text.
		Title string `toml:"title"`
		// Width and Height are the initial window dimensions in pixels.
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"window"`

	Camera struct {
		// Speed is the fly-camera movement speed in units per second.
		Speed float32 `toml:"speed"`
		// Sensitivity scales mouse-look and scroll responsiveness.
		Sensitivity float32 `toml:"sensitivity"`
	} `toml:"camera"`

	Renderer struct {
		// ClearColor is the render pass clear color as RGBA in [0, 1].
		ClearColor [4]float64 `toml:"clear_color"`
	} `toml:"renderer"`

	Import struct {
		// ScenePath is the glTF asset to load at startup. The command line
		// overrides it when set.
		ScenePath string `toml:"scene_path"`
		// Workers is the staging worker count for import.
		Workers int `toml:"workers"`
	} `toml:"import"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: defaults matching a 1280x720 window and a moderate fly camera
func Default() Config {
	var c Config
	c.Window.Title = "loupe"
	c.Window.Width = 1280
	c.Window.Height = 720
	c.Camera.Speed = 4.0
	c.Camera.Sensitivity = 0.4
	c.Renderer.ClearColor = [4]float64{0.05, 0.05, 0.08, 1.0}
	c.Import.Workers = 4
	return c
}

// Load reads the configuration at path, layered over the defaults. A missing
// file is not an error; the defaults are returned and a debug line is logged.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the effective configuration
//   - error: if the file exists but cannot be read or parsed
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			common.LogDebug("config: %s not found, using defaults", path)
			return c, nil
		}
		return c, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, nil
}
