// Command sandbox runs the demo UI, either in a desktop window or
// headless for a fixed number of frames with the result written to PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/hubastard/mucanvas/engine/assets"
	"github.com/hubastard/mucanvas/engine/core"
	"github.com/hubastard/mucanvas/engine/platform"
	"github.com/hubastard/mucanvas/engine/profiler"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

type options struct {
	config  string
	frames  int
	out     string
	stats   bool
	profile string
}

func main() {
	var o options
	flag.StringVar(&o.config, "config", "", "TOML config file (defaults are built in)")
	flag.IntVar(&o.frames, "frames", 0, "render this many frames headless and exit")
	flag.StringVar(&o.out, "out", "frame.png", "PNG written after a headless run")
	flag.BoolVar(&o.stats, "stats", false, "show the stats window")
	flag.StringVar(&o.profile, "profile", "sandbox.speedscope.json", "speedscope dump (profile builds only)")
	flag.Parse()

	if err := run(o); err != nil {
		slog.Error("sandbox failed", "err", err)
		os.Exit(1)
	}
}

func run(o options) error {
	cfg := core.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = core.LoadConfig(o.config); err != nil {
			return err
		}
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	core.SetLogger(logger)

	profiler.Init(1 << 14)

	font, err := assets.LoadFont(cfg.Font.Path)
	if err != nil {
		return err
	}

	demo := NewDemo()
	d, err := core.NewDriver(core.DriverOptions{Config: cfg, App: demo, Font: font})
	if err != nil {
		return err
	}
	defer d.Close()
	if o.stats {
		demo.stats = newStatsWindow(d)
	}

	if o.frames > 0 {
		err = headless(d, o.frames, o.out)
	} else {
		err = windowed(d, cfg)
	}
	if err != nil {
		return err
	}
	if err := demo.Err(); err != nil {
		return err
	}

	if profiler.Enabled {
		if err := profiler.Dump(o.profile); err != nil {
			return err
		}
		logger.Info("sandbox: profile written", "path", o.profile)
	}
	return nil
}

func headless(d *core.Driver, frames int, out string) error {
	for range frames {
		if err := d.Frame(); err != nil {
			return err
		}
	}
	if err := assets.SavePNG(out, d.Surface().Image()); err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}
	core.Logger().Info("sandbox: frame written", "path", out, "frames", frames)
	return nil
}

func windowed(d *core.Driver, cfg core.Config) error {
	win, err := platform.NewGLFWWindow(cfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return core.Run(ctx, d, win)
}
