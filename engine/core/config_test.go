package core

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "mucanvas", cfg.Window.Title)
	assert.Equal(t, BackendImage, cfg.Render.Backend)
	assert.Equal(t, 12.0, cfg.Font.Size)
	assert.Equal(t, 30.0, cfg.Input.WheelScale)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestParseConfig_OverlaysDefaults(t *testing.T) {
	cfg, err := ParseConfig(`
[render]
backend = "gg"
debug = true

[log]
level = "debug"
`)
	require.NoError(t, err)
	assert.Equal(t, BackendGG, cfg.Render.Backend)
	assert.True(t, cfg.Render.Debug)
	assert.Equal(t, 800, cfg.Window.Width, "unset keys keep defaults")
	assert.Equal(t, 60, cfg.Render.FrameRate)
}

func TestParseConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "[window]\ncolour = 1\n"},
		{"unknown table", "[audio]\nvolume = 1\n"},
		{"zero width", "[window]\nwidth = 0\n"},
		{"backend", `[render]
backend = "vulkan"`},
		{"negative frame rate", "[render]\nframe_rate = -1\n"},
		{"font size", "[font]\nsize = 0.0\n"},
		{"memory", "[memory]\nsize = 0\n"},
		{"log level", `[log]
level = "loud"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := ParseConfig("[window\n")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "mucanvas.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"demo\"\nwidth = 320\n"), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	SetLogger(nil)
	require.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))

	SetLogger(slog.Default())
	assert.Same(t, slog.Default(), Logger())
}
