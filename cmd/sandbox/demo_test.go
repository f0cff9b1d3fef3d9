package main

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/mucanvas/engine/core"
	"github.com/hubastard/mucanvas/engine/input"
)

func newDemoDriver(t *testing.T) (*core.Driver, *Demo) {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Render.FrameRate = 0
	demo := NewDemo()
	d, err := core.NewDriver(core.DriverOptions{Config: cfg, App: demo})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d, demo
}

func step(t *testing.T, d *core.Driver, evs ...input.Event) {
	t.Helper()
	for _, ev := range evs {
		d.HandleEvent(ev)
	}
	require.NoError(t, d.Frame())
}

// press hovers (x, y) long enough for the hover root to settle, then
// clicks.
func press(t *testing.T, d *core.Driver, x, y float64) {
	t.Helper()
	step(t, d, input.PointerMove{X: x, Y: y})
	step(t, d)
	step(t, d, input.PointerDown{X: x, Y: y, Button: input.ButtonLeft})
	step(t, d, input.PointerUp{X: x, Y: y, Button: input.ButtonLeft})
}

func TestDemo_FirstFrame(t *testing.T) {
	d, demo := newDemoDriver(t)
	step(t, d)

	require.NoError(t, demo.Err())
	img := d.Surface().Image()
	px := color.RGBAModel.Convert(img.At(5, 5)).(color.RGBA)
	assert.Equal(t, color.RGBA{90, 95, 100, 255}, px)
	assert.Equal(t, "#5A5F64", demo.Background().Hex())
	assert.Empty(t, demo.Log())
	assert.Positive(t, d.Region().Used())
}

func TestDemo_LogInputSubmitsOnEnter(t *testing.T) {
	d, demo := newDemoDriver(t)
	step(t, d)

	// textbox of the Log Window
	press(t, d, 400, 225)
	step(t, d,
		input.KeyDown{Key: "h"}, input.KeyDown{Key: "e"}, input.KeyDown{Key: "l"},
		input.KeyDown{Key: "l"}, input.KeyDown{Key: "o"},
	)
	buf, err := demo.input.Get(nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", buf.String())

	step(t, d, input.KeyDown{Key: "Enter"})
	assert.Equal(t, "hello", demo.Log())
	assert.True(t, buf.Empty())

	// an empty buffer logs nothing
	step(t, d, input.KeyUp{Key: "Enter"}, input.KeyDown{Key: "Enter"})
	assert.Equal(t, "hello", demo.Log())
}

func TestDemo_SubmitButtonAppendsLines(t *testing.T) {
	d, demo := newDemoDriver(t)
	step(t, d)

	press(t, d, 400, 225)
	step(t, d, input.KeyDown{Key: "a"})
	press(t, d, 610, 225)
	press(t, d, 400, 225)
	step(t, d, input.KeyDown{Key: "b"})
	press(t, d, 610, 225)

	assert.Equal(t, "a\nb", demo.Log())
}

func TestDemo_CountButton(t *testing.T) {
	d, demo := newDemoDriver(t)
	step(t, d)

	press(t, d, 700, 79)
	press(t, d, 700, 79)
	assert.Equal(t, 2, demo.count)
}

func TestDemo_StatsWindow(t *testing.T) {
	d, demo := newDemoDriver(t)
	demo.stats = newStatsWindow(d)
	for range 3 {
		step(t, d)
	}
	assert.Positive(t, demo.stats.frameMS)
	assert.True(t, d.Context().GetContainer("Stats").Open())
}
