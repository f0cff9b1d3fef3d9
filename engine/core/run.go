package core

import (
	"context"
	"fmt"
	"time"

	"github.com/hubastard/mucanvas/engine/input"
	"github.com/hubastard/mucanvas/engine/profiler"
)

// Run drives d until the host asks to close or ctx is cancelled. Each
// tick polls host events, runs a frame and presents it. With a zero frame
// rate the loop runs as fast as Present returns.
//
// Graphics hosts must call Run from the goroutine locked to the main
// thread.
func Run(ctx context.Context, d *Driver, host Host) error {
	var tick <-chan time.Time
	if rate := d.cfg.Render.FrameRate; rate > 0 {
		t := time.NewTicker(time.Second / time.Duration(rate))
		defer t.Stop()
		tick = t.C
	}
	handle := func(ev input.Event) { d.HandleEvent(ev) }

	start := time.Now()
	for !host.ShouldClose() {
		if tick != nil {
			select {
			case <-ctx.Done():
				return stopped(d, start, "cancelled")
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return stopped(d, start, "cancelled")
		}

		host.PollEvents(handle)
		if err := d.Frame(); err != nil {
			return err
		}
		end := profiler.Start("present")
		err := host.Present(d.surface.Image())
		end()
		if err != nil {
			return fmt.Errorf("core: present: %w", err)
		}
	}
	return stopped(d, start, "host closed")
}

func stopped(d *Driver, start time.Time, reason string) error {
	Logger().Info("core: run loop stopped",
		"reason", reason,
		"frames", d.frames,
		"uptime", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
