package core

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendImage = "image"
	BackendGG    = "gg"
)

var ErrInvalidConfig = errors.New("core: invalid config")

//go:embed default.toml
var defaultConfig string

type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Font   FontConfig   `toml:"font"`
	Input  InputConfig  `toml:"input"`
	Memory MemoryConfig `toml:"memory"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

type RenderConfig struct {
	Backend string `toml:"backend"`
	// FrameRate paces Run; 0 leaves pacing to the host (vsync).
	FrameRate int  `toml:"frame_rate"`
	Debug     bool `toml:"debug"`
}

type FontConfig struct {
	Path string  `toml:"path"`
	Size float64 `toml:"size"`
}

type InputConfig struct {
	WheelScale float64 `toml:"wheel_scale"`
}

type MemoryConfig struct {
	Size int `toml:"size"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() Config {
	var cfg Config
	if _, err := toml.Decode(defaultConfig, &cfg); err != nil {
		panic(fmt.Sprintf("core: embedded default config: %v", err))
	}
	return cfg
}

// ParseConfig overlays data on the defaults. Keys missing from data keep
// their default value; unknown keys are an error.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("core: parse config: %w", err)
	}
	return cfg, checkDecoded(md, cfg)
}

// LoadConfig reads the TOML file at path over the defaults. An empty path
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("core: load config %s: %w", path, err)
	}
	return cfg, checkDecoded(md, cfg)
}

func checkDecoded(md toml.MetaData, cfg Config) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(names, ", "))
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Render.Backend != BackendImage && c.Render.Backend != BackendGG:
		return fmt.Errorf("%w: backend %q", ErrInvalidConfig, c.Render.Backend)
	case c.Render.FrameRate < 0:
		return fmt.Errorf("%w: frame rate %d", ErrInvalidConfig, c.Render.FrameRate)
	case c.Font.Size <= 0:
		return fmt.Errorf("%w: font size %g", ErrInvalidConfig, c.Font.Size)
	case c.Memory.Size <= 0:
		return fmt.Errorf("%w: memory size %d", ErrInvalidConfig, c.Memory.Size)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level ("debug", "info", "warn", "error").
func (c Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return l, nil
}
