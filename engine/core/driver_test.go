package core

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/mucanvas/engine/colors"
	"github.com/hubastard/mucanvas/engine/gfx/raster"
	"github.com/hubastard/mucanvas/engine/input"
	"github.com/hubastard/mucanvas/engine/ui"
)

type counterApp struct{ clicks int }

func (a *counterApp) BuildUI(ctx *ui.Context) {
	if ctx.BeginWindowEx("Counter", ui.Rect{W: 200, H: 150}, ui.OptNoTitle|ui.OptNoClose|ui.OptNoResize) {
		if ctx.Button("Go") {
			a.clicks++
		}
		ctx.EndWindow()
	}
}

func (a *counterApp) Background() colors.Color { return colors.Red }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Window.Width = 200
	cfg.Window.Height = 200
	cfg.Render.FrameRate = 0
	return cfg
}

func newTestDriver(t *testing.T, cfg Config) (*Driver, *counterApp) {
	t.Helper()
	app := &counterApp{}
	d, err := NewDriver(DriverOptions{Config: cfg, App: app})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d, app
}

func rgba(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestNewDriver_Rejects(t *testing.T) {
	_, err := NewDriver(DriverOptions{Config: testConfig()})
	assert.Error(t, err)

	cfg := testConfig()
	cfg.Font.Size = -1
	_, err = NewDriver(DriverOptions{Config: cfg, App: &counterApp{}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewDriver(DriverOptions{Config: testConfig(), App: &counterApp{}, Font: []byte("not a font")})
	assert.Error(t, err)
}

func TestDriver_FrameDrawsBackgroundAndWindows(t *testing.T) {
	d, _ := newTestDriver(t, testConfig())
	require.NoError(t, d.Frame())
	assert.Equal(t, 1, d.Frames())

	img := d.Surface().Image()
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba(img, 100, 190), "background below the window")
	assert.Equal(t, color.RGBA{50, 50, 50, 255}, rgba(img, 150, 100), "window body")
	assert.Positive(t, d.Renderer().Stats().Texts)
}

func TestDriver_ClickThroughEvents(t *testing.T) {
	d, app := newTestDriver(t, testConfig())
	step := func(ev input.Event) {
		if ev != nil {
			require.True(t, d.HandleEvent(ev))
		}
		require.NoError(t, d.Frame())
	}
	step(input.PointerMove{X: 20, Y: 10})
	step(nil)
	step(input.PointerDown{X: 20, Y: 10, Button: input.ButtonLeft})
	step(input.PointerUp{X: 20, Y: 10, Button: input.ButtonLeft})
	assert.Equal(t, 1, app.clicks)
}

func TestDriver_GGBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Render.Backend = BackendGG
	d, _ := newTestDriver(t, cfg)
	require.IsType(t, &raster.GGSurface{}, d.Surface())
	require.NoError(t, d.Frame())
	assert.Equal(t, color.RGBA{50, 50, 50, 255}, rgba(d.Surface().Image(), 150, 100))
}

func TestDriver_LogsSetup(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	d, _ := newTestDriver(t, testConfig())
	require.NoError(t, d.Frame())
	assert.Contains(t, buf.String(), "driver ready")
	assert.Contains(t, buf.String(), "first frame")
}

func TestDriver_InputLogsFollowSetLogger(t *testing.T) {
	d, _ := newTestDriver(t, testConfig())

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	assert.False(t, d.HandleEvent(input.PointerDown{X: 1, Y: 1, Button: 7}))
	assert.Contains(t, buf.String(), "ignored pointer button")

	SetLogger(nil)
	buf.Reset()
	assert.False(t, d.HandleEvent(input.PointerDown{X: 1, Y: 1, Button: 7}))
	assert.Empty(t, buf.String())
}

type fakeHost struct {
	events   []input.Event
	presents int
	limit    int
	err      error
}

func (h *fakeHost) PollEvents(handle func(input.Event)) {
	for _, ev := range h.events {
		handle(ev)
	}
	h.events = nil
}

func (h *fakeHost) ShouldClose() bool { return h.presents >= h.limit }

func (h *fakeHost) Present(image.Image) error {
	h.presents++
	return h.err
}

func TestRun_StopsWhenHostCloses(t *testing.T) {
	d, _ := newTestDriver(t, testConfig())
	host := &fakeHost{limit: 3, events: []input.Event{input.PointerMove{X: 7, Y: 9}}}
	require.NoError(t, Run(context.Background(), d, host))
	assert.Equal(t, 3, host.presents)
	assert.Equal(t, 3, d.Frames())
	assert.Equal(t, ui.Vec2{X: 7, Y: 9}, d.Context().MousePos())
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Render.FrameRate = 1
	d, _ := newTestDriver(t, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, Run(ctx, d, &fakeHost{limit: 100}))
	assert.Zero(t, d.Frames())

	cfg.Render.FrameRate = 0
	d, _ = newTestDriver(t, cfg)
	require.NoError(t, Run(ctx, d, &fakeHost{limit: 100}))
	assert.Zero(t, d.Frames())
}

func TestRun_PresentError(t *testing.T) {
	d, _ := newTestDriver(t, testConfig())
	boom := errors.New("lost surface")
	err := Run(context.Background(), d, &fakeHost{limit: 5, err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, d.Frames())
}
