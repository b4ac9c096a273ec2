// Package config loads logo.yml, the project settings for canvas size,
// turtle defaults, animation pacing and image export.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arnavsurve/logo/internal/turtle"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory when no path is given.
const FileName = "logo.yml"

// EnvPath names an alternative config file.
const EnvPath = "LOGO_CONFIG"

type Config struct {
	Path string `yaml:"-"`

	Canvas    Canvas    `yaml:"canvas"`
	Turtle    Turtle    `yaml:"turtle"`
	Animation Animation `yaml:"animation"`
	Output    Output    `yaml:"output"`
	Limits    Limits    `yaml:"limits"`
}

type Canvas struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

type Turtle struct {
	PenColor string  `yaml:"pen_color"`
	PenSize  float64 `yaml:"pen_size"`
	Visible  bool    `yaml:"visible"`
}

type Animation struct {
	Speed         int           `yaml:"speed"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	CommandDelay  time.Duration `yaml:"command_delay"`
	// Headless plays animations as fast as possible instead of in real time.
	Headless bool `yaml:"headless"`
}

type Output struct {
	Image string  `yaml:"image"`
	Scale float64 `yaml:"scale"`
}

type Limits struct {
	MaxDepth int `yaml:"max_depth"`
}

func Default() *Config {
	return &Config{
		Canvas: Canvas{Width: 800, Height: 600, Background: "white"},
		Turtle: Turtle{PenColor: "black", PenSize: 1, Visible: true},
		Animation: Animation{
			Speed:         50,
			FrameInterval: 16 * time.Millisecond,
			CommandDelay:  300 * time.Millisecond,
			Headless:      true,
		},
		Output: Output{Image: "out/drawing.png", Scale: 1},
		Limits: Limits{MaxDepth: 1000},
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Locate picks the config file: an explicit path wins, then $LOGO_CONFIG,
// then logo.yml in the working directory.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env
	}
	return FileName
}

// Load reads path over the defaults. A missing file yields the defaults
// unless the path was given explicitly.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			log.Debug().Str("phase", "config").Str("path", absPath).Msg("no config file, using defaults")
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug().Str("phase", "config").Str("path", absPath).Msg("loaded config")
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs ValidationError
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if _, err := turtle.ParseColor(c.Canvas.Background); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("canvas.background: %v", err))
	}
	if _, err := turtle.ParseColor(c.Turtle.PenColor); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("turtle.pen_color: %v", err))
	}
	if c.Turtle.PenSize < 1 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("turtle.pen_size must be at least 1, got %g", c.Turtle.PenSize))
	}
	if c.Animation.Speed < 0 || c.Animation.Speed > 100 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("animation.speed must be within 0..100, got %d", c.Animation.Speed))
	}
	if c.Animation.FrameInterval <= 0 {
		errs.Issues = append(errs.Issues, "animation.frame_interval must be positive")
	}
	if c.Animation.CommandDelay < 0 {
		errs.Issues = append(errs.Issues, "animation.command_delay must not be negative")
	}
	if c.Output.Scale <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("output.scale must be positive, got %g", c.Output.Scale))
	}
	if c.Limits.MaxDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("limits.max_depth must be positive, got %d", c.Limits.MaxDepth))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// BackgroundColor and PenColor assume a validated config.
func (c *Config) BackgroundColor() color.RGBA {
	col, _ := turtle.ParseColor(c.Canvas.Background)
	return col
}

func (c *Config) PenColor() color.RGBA {
	col, _ := turtle.ParseColor(c.Turtle.PenColor)
	return col
}

// InitialState is the turtle state the config describes.
func (c *Config) InitialState() turtle.State {
	s := turtle.Initial()
	s.PenColor = c.PenColor()
	s.Background = c.BackgroundColor()
	s.PenSize = c.Turtle.PenSize
	s.Visible = c.Turtle.Visible
	return s
}
