package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir" yaml:"base_dir"`
	Model     string `json:"model" yaml:"model"`
	ModelsDir string `json:"models_dir" yaml:"models_dir"`
	Primitive string `json:"primitive" yaml:"primitive"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Render settings
	Width         int     `json:"width" yaml:"width"`
	Height        int     `json:"height" yaml:"height"`
	Workers       int     `json:"workers" yaml:"workers"`
	RasterWorkers int     `json:"raster_workers" yaml:"raster_workers"`
	Format        string  `json:"format" yaml:"format"`
	Frames        int     `json:"frames" yaml:"frames"`
	Elevation     float64 `json:"elevation" yaml:"elevation"`
	Thumbnail     int     `json:"thumbnail" yaml:"thumbnail"`
	Overlay       bool    `json:"overlay" yaml:"overlay"`
	Foreground    string  `json:"foreground" yaml:"foreground"`
	Background    string  `json:"background" yaml:"background"`
	PiercingEdges bool    `json:"piercing_edges" yaml:"piercing_edges"`

	Camera Camera `json:"camera" yaml:"camera"`
}

// Camera overrides the automatic framing. A nil Position orbits the model.
type Camera struct {
	Position *[3]float64 `json:"position,omitempty" yaml:"position,omitempty"`
	Target   *[3]float64 `json:"target,omitempty" yaml:"target,omitempty"`
	FOV      float64     `json:"fov" yaml:"fov"`
	Near     float64     `json:"near" yaml:"near"`
	Far      float64     `json:"far" yaml:"far"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values. BaseDir defaults to
// the directory holding the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Model     string
	ModelsDir string
	Primitive string
	OutputDir string
	Format    string
	Width     int
	Height    int
	Workers   int
	Frames    int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Model != "" {
		c.Model = flags.Model
	}
	if flags.ModelsDir != "" {
		c.ModelsDir = flags.ModelsDir
	}
	if flags.Primitive != "" {
		c.Primitive = flags.Primitive
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		c.Model = c.abs(c.Model)
		c.ModelsDir = c.abs(c.ModelsDir)
		c.OutputDir = c.abs(c.OutputDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.RasterWorkers <= 0 {
		c.RasterWorkers = 1
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	c.Format = strings.ToLower(c.Format)
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.Foreground == "" {
		c.Foreground = "#ffffff"
	}
	if c.Background == "" {
		c.Background = "#000000"
	}
	if c.Camera.FOV <= 0 {
		c.Camera.FOV = 80
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = 0.1
	}
	if c.Camera.Far <= c.Camera.Near {
		c.Camera.Far = 2000
	}
}

func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Colors parses the foreground and background colors.
func (c *Config) Colors() (fg, bg color.NRGBA, err error) {
	if fg, err = ParseHexColor(c.Foreground); err != nil {
		return fg, bg, err
	}
	bg, err = ParseHexColor(c.Background)
	return fg, bg, err
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("config: color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("config: color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
