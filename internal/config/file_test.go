package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if cfg.Scene != want.Scene || cfg.Cursor != want.Cursor || cfg.Music != want.Music {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
theme:
  dark: false
music:
  volume: 0.4
  lightStartOffset: 1500ms
scene:
  meteors: 3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Theme.Dark {
		t.Error("theme.dark should be false")
	}
	if cfg.Music.Volume != 0.4 {
		t.Errorf("music.volume = %v, want 0.4", cfg.Music.Volume)
	}
	if cfg.Music.LightStartOffset != 1500*time.Millisecond {
		t.Errorf("music.lightStartOffset = %v, want 1.5s", cfg.Music.LightStartOffset)
	}
	if cfg.Scene.Meteors != 3 {
		t.Errorf("scene.meteors = %d, want 3", cfg.Scene.Meteors)
	}
	// untouched fields keep defaults
	if cfg.Scene.Height != 350 || cfg.Scene.MaxWidth != 400 {
		t.Errorf("scene size = %dx%d, want 400x350", cfg.Scene.MaxWidth, cfg.Scene.Height)
	}
	if cfg.Music.DarkTrack != Default().Music.DarkTrack {
		t.Errorf("music.darkTrack = %q, want default", cfg.Music.DarkTrack)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "scene: [not, a, map")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail on malformed YAML")
	}
	if !strings.HasPrefix(err.Error(), "failed to parse config: ") {
		t.Errorf("Load() error = %q, want the parse context", err)
	}
}

func TestLoadUnreadablePath(t *testing.T) {
	// a directory exists but cannot be read as a file
	_, err := Load(t.TempDir())
	if err == nil || !strings.HasPrefix(err.Error(), "failed to read config: ") {
		t.Errorf("Load(dir) error = %v, want the read context", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"volume too loud", func(c *Config) { c.Music.Volume = 1.5 }},
		{"negative volume", func(c *Config) { c.Music.Volume = -0.1 }},
		{"missing dark track", func(c *Config) { c.Music.DarkTrack = "" }},
		{"zero window", func(c *Config) { c.Window.Width = 0 }},
		{"zero scene height", func(c *Config) { c.Scene.Height = 0 }},
		{"negative meteors", func(c *Config) { c.Scene.Meteors = -1 }},
		{"short trail", func(c *Config) { c.Cursor.MaxPoints = 2 }},
		{"no fade", func(c *Config) { c.Cursor.FadeSpeed = 0 }},
		{"zero star density", func(c *Config) { c.Backdrop.StarDensity = 0 }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}
