package engineconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"grid-viewer/internal/grid"
	"grid-viewer/internal/scene"
	"grid-viewer/internal/stats"
)

// ConfigPath is the default preferences file, relative to the process working directory.
const ConfigPath = "config/viewer.yaml"

// Colors are "#rrggbb" strings.
type Colors struct {
	Default    string `yaml:"default"`
	Hover      string `yaml:"hover"`
	Selection  string `yaml:"selection"`
	Emissive   string `yaml:"emissive"`
	Background string `yaml:"background"`
}

// Window is the initial window geometry.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Resizable  bool   `yaml:"resizable"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// ViewerPrefs holds the viewer preferences persisted across runs.
type ViewerPrefs struct {
	Window         Window  `yaml:"window"`
	Rows           int     `yaml:"rows"`
	Step           float32 `yaml:"step"`
	SizeRatio      float32 `yaml:"size_ratio"`
	DefaultZoom    float32 `yaml:"default_zoom"`
	FPSLimit       float32 `yaml:"fps_limit"`
	StatsMode      string  `yaml:"stats_mode"`
	StartInstanced bool    `yaml:"start_instanced"`
	OverlayFont    string  `yaml:"overlay_font"` // family name or path; empty uses the raylib default
	Colors         Colors  `yaml:"colors"`
}

// Default returns the stock preferences: a 100×100 grid at step 0.1, zoom 90, 60 FPS
// cap and the FPS overlay.
func Default() ViewerPrefs {
	g := grid.DefaultConfig()
	return ViewerPrefs{
		Window: Window{
			Title:     "grid viewer",
			Width:     1280,
			Height:    720,
			Resizable: true,
		},
		Rows:        g.RowCount,
		Step:        g.Step,
		SizeRatio:   g.SizeRatio,
		DefaultZoom: 90,
		FPSLimit:    60,
		StatsMode:   "fps",
		Colors: Colors{
			Default:    "#156289",
			Hover:      "#f7ab4d",
			Selection:  "#ff0000",
			Emissive:   "#072534",
			Background: "#f3f4f5",
		},
	}
}

// Load reads preferences from path on top of Default, so missing keys keep their
// defaults. A missing file is not an error. An unreadable or invalid file returns
// Default() together with the error.
func Load(path string) (ViewerPrefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p ViewerPrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and that every color and the stats mode parse.
func (p ViewerPrefs) Validate() error {
	if p.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", p.Rows)
	}
	if p.Step <= 0 {
		return fmt.Errorf("step must be positive, got %g", p.Step)
	}
	if p.SizeRatio <= 0 {
		return fmt.Errorf("size_ratio must be positive, got %g", p.SizeRatio)
	}
	if p.DefaultZoom <= 0 {
		return fmt.Errorf("default_zoom must be positive, got %g", p.DefaultZoom)
	}
	if p.FPSLimit < 0 {
		return fmt.Errorf("fps_limit must not be negative, got %g", p.FPSLimit)
	}
	if p.Window.Width <= 0 || p.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", p.Window.Width, p.Window.Height)
	}
	if _, _, err := stats.ParseMode(p.StatsMode); err != nil {
		return err
	}
	_, err := p.Palette()
	return err
}

// Grid returns the grid layout.
func (p ViewerPrefs) Grid() grid.Config {
	return grid.Config{RowCount: p.Rows, Step: p.Step, SizeRatio: p.SizeRatio}
}

// Palette is the parsed color set.
type Palette struct {
	Default, Hover, Selection, Emissive, Background scene.Color
}

// Palette parses the configured colors.
func (p ViewerPrefs) Palette() (Palette, error) {
	var out Palette
	fields := []struct {
		name string
		in   string
		dst  *scene.Color
	}{
		{"default", p.Colors.Default, &out.Default},
		{"hover", p.Colors.Hover, &out.Hover},
		{"selection", p.Colors.Selection, &out.Selection},
		{"emissive", p.Colors.Emissive, &out.Emissive},
		{"background", p.Colors.Background, &out.Background},
	}
	for _, f := range fields {
		c, err := scene.ParseHex(f.in)
		if err != nil {
			return Palette{}, fmt.Errorf("colors.%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return out, nil
}
