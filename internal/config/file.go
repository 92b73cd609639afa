package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/cosmic-portfolio/internal/logging"
)

// ErrInvalid is returned by Validate when a value is out of range.
var ErrInvalid = errors.New("invalid config")

// DefaultPath is where main looks for the config file when no flag is given.
const DefaultPath = "portfolio.yaml"

// Config holds everything that can be tuned without recompiling.
//
// Loaded from YAML; every field missing from the file keeps its Default value.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Theme    ThemeConfig    `yaml:"theme"`
	Music    MusicConfig    `yaml:"music"`
	Scene    SceneConfig    `yaml:"scene"`
	Cursor   CursorConfig   `yaml:"cursor"`
	Backdrop BackdropConfig `yaml:"backdrop"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type ThemeConfig struct {
	Dark bool `yaml:"dark"`
}

// MusicConfig describes the two theme tracks and how they are played.
type MusicConfig struct {
	DarkTrack  string  `yaml:"darkTrack"`
	LightTrack string  `yaml:"lightTrack"`
	Volume     float64 `yaml:"volume"`
	// LightStartOffset is where the light track starts after a theme swap.
	LightStartOffset time.Duration `yaml:"lightStartOffset"`
	Autoplay         bool          `yaml:"autoplay"`
}

type SceneConfig struct {
	MaxWidth     int           `yaml:"maxWidth"`
	Height       int           `yaml:"height"`
	Padding      int           `yaml:"padding"`
	Meteors      int           `yaml:"meteors"`
	Stars        int           `yaml:"stars"`
	SpawnStagger time.Duration `yaml:"spawnStagger"`
}

type CursorConfig struct {
	MaxPoints       int           `yaml:"maxPoints"`
	FadeSpeed       float64       `yaml:"fadeSpeed"`
	StopDelay       time.Duration `yaml:"stopDelay"`
	TouchBreakpoint int           `yaml:"touchBreakpoint"`
}

type BackdropConfig struct {
	// StarDensity is the number of square pixels per star.
	StarDensity int `yaml:"starDensity"`
	Meteors     int `yaml:"meteors"`
}

// Default returns the values the site shipped with.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "Portfolio - T: theme, M: music, O: choose track, Esc/Q: quit",
		},
		Theme: ThemeConfig{Dark: true},
		Music: MusicConfig{
			DarkTrack:        "assets/sounds/background-music-dark.mp3",
			LightTrack:       "assets/sounds/background-music-light.mp3",
			Volume:           0.15,
			LightStartOffset: 3 * time.Second,
			Autoplay:         true,
		},
		Scene: SceneConfig{
			MaxWidth:     400,
			Height:       350,
			Padding:      32,
			Meteors:      5,
			Stars:        50,
			SpawnStagger: 400 * time.Millisecond,
		},
		Cursor: CursorConfig{
			MaxPoints:       50,
			FadeSpeed:       0.02,
			StopDelay:       30 * time.Millisecond,
			TouchBreakpoint: TouchBreakpoint,
		},
		Backdrop: BackdropConfig{
			StarDensity: 10000,
			Meteors:     4,
		},
	}
}

// Load reads the YAML file at path on top of Default.
//
// A missing file is not an error: the defaults are returned as is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, logging.WrapError(err, "failed to read config")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, logging.WrapError(err, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Music.Volume < 0 || c.Music.Volume > 1:
		return fmt.Errorf("%w: music volume %v not in [0, 1]", ErrInvalid, c.Music.Volume)
	case c.Music.DarkTrack == "" || c.Music.LightTrack == "":
		return fmt.Errorf("%w: both music tracks are required", ErrInvalid)
	case c.Music.LightStartOffset < 0:
		return fmt.Errorf("%w: negative light start offset", ErrInvalid)
	case c.Scene.MaxWidth <= 0 || c.Scene.Height <= 0:
		return fmt.Errorf("%w: scene size %dx%d", ErrInvalid, c.Scene.MaxWidth, c.Scene.Height)
	case c.Scene.Padding < 0:
		return fmt.Errorf("%w: negative scene padding", ErrInvalid)
	case c.Scene.Meteors < 0 || c.Scene.Stars < 0:
		return fmt.Errorf("%w: negative scene population", ErrInvalid)
	case c.Cursor.MaxPoints < 3:
		return fmt.Errorf("%w: cursor trail needs at least 3 points, got %d", ErrInvalid, c.Cursor.MaxPoints)
	case c.Cursor.FadeSpeed <= 0:
		return fmt.Errorf("%w: cursor fade speed must be positive", ErrInvalid)
	case c.Backdrop.StarDensity <= 0 || c.Backdrop.Meteors < 0:
		return fmt.Errorf("%w: backdrop density %d, meteors %d", ErrInvalid, c.Backdrop.StarDensity, c.Backdrop.Meteors)
	}
	return nil
}
