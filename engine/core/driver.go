package core

import (
	"errors"
	"fmt"

	"github.com/hubastard/mucanvas/engine/gfx/raster"
	"github.com/hubastard/mucanvas/engine/gfx/renderer2d"
	"github.com/hubastard/mucanvas/engine/input"
	"github.com/hubastard/mucanvas/engine/memory"
	"github.com/hubastard/mucanvas/engine/profiler"
	"github.com/hubastard/mucanvas/engine/text"
	"github.com/hubastard/mucanvas/engine/ui"
)

type DriverOptions struct {
	Config Config
	App    App
	// Font is TTF or OTF data. Nil selects the built-in face.
	Font []byte
	// Surface replaces the backend chosen by Config.Render.Backend.
	Surface raster.Surface
}

// Driver owns one UI context and everything needed to turn its frames
// into pixels. It is not safe for concurrent use.
type Driver struct {
	cfg        Config
	app        App
	region     *memory.Region
	metrics    *text.Metrics
	ctx        *ui.Context
	normalizer *input.Normalizer
	surface    raster.Surface
	renderer   *renderer2d.Renderer
	frames     int
}

func NewDriver(opts DriverOptions) (*Driver, error) {
	if opts.App == nil {
		return nil, errors.New("core: driver needs an app")
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		metrics *text.Metrics
		err     error
	)
	if opts.Font != nil {
		metrics, err = text.New(opts.Font, cfg.Font.Size)
	} else {
		metrics, err = text.Default(cfg.Font.Size)
	}
	if err != nil {
		return nil, fmt.Errorf("core: text metrics: %w", err)
	}

	region := memory.NewRegion(cfg.Memory.Size)
	ctx, err := ui.New(region)
	if err != nil {
		_ = metrics.Close()
		return nil, fmt.Errorf("core: ui context: %w", err)
	}
	width, height := metrics.Callbacks()
	ctx.SetTextWidth(ui.TextWidthFunc(width))
	ctx.SetTextHeight(ui.TextHeightFunc(height))

	surface := opts.Surface
	if surface == nil {
		w, h := cfg.Window.Width, cfg.Window.Height
		switch cfg.Render.Backend {
		case BackendGG:
			surface = raster.NewGG(w, h, metrics.Source())
		default:
			surface = raster.NewImage(w, h, metrics)
		}
	}

	renderer := renderer2d.New(metrics, cfg.Font.Size)
	renderer.Debug = cfg.Render.Debug

	Logger().Info("core: driver ready",
		"backend", cfg.Render.Backend,
		"size", surface.Bounds().Size(),
		"font_size", cfg.Font.Size,
		"line_height", metrics.Height(),
		"memory", region.Cap(),
	)

	return &Driver{
		cfg:        cfg,
		app:        opts.App,
		region:     region,
		metrics:    metrics,
		ctx:        ctx,
		normalizer: input.NewNormalizer(ctx, liveLogger()),
		surface:    surface,
		renderer:   renderer,
	}, nil
}

func (d *Driver) Config() Config                 { return d.cfg }
func (d *Driver) Context() *ui.Context           { return d.ctx }
func (d *Driver) Region() *memory.Region         { return d.region }
func (d *Driver) Surface() raster.Surface        { return d.surface }
func (d *Driver) Renderer() *renderer2d.Renderer { return d.renderer }
func (d *Driver) Metrics() *text.Metrics         { return d.metrics }
func (d *Driver) Frames() int                    { return d.frames }

// HandleEvent feeds one input event to the UI context. Events arriving
// between frames are seen by the next Frame.
func (d *Driver) HandleEvent(ev input.Event) bool {
	return d.normalizer.Dispatch(ev)
}

// Frame builds the UI, clears the surface to the app background and
// draws the resulting command list.
func (d *Driver) Frame() error {
	defer profiler.Start("frame")()

	end := profiler.Start("build")
	d.ctx.Begin()
	d.app.BuildUI(d.ctx)
	d.ctx.End()
	end()

	end = profiler.Start("render")
	d.surface.Clear(d.app.Background())
	err := d.renderer.Render(d.surface, d.ctx.Commands())
	end()
	if err != nil {
		return fmt.Errorf("core: frame %d: %w", d.ctx.Frame(), err)
	}
	d.frames++

	if st := d.renderer.Stats(); d.frames == 1 {
		Logger().Debug("core: first frame",
			"commands", st.Commands,
			"rects", st.Rects,
			"texts", st.Texts,
			"icons", st.Icons,
			"clips", st.Clips,
		)
	}
	return nil
}

// Close releases the font resources.
func (d *Driver) Close() error {
	return d.metrics.Close()
}
