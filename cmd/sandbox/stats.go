package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/hubastard/mucanvas/engine/colors"
	"github.com/hubastard/mucanvas/engine/gfx/renderer2d"
	"github.com/hubastard/mucanvas/engine/memory"
	"github.com/hubastard/mucanvas/engine/profiler"
	"github.com/hubastard/mucanvas/engine/ui"
)

// statsSource is what the stats window reads each frame. *core.Driver
// implements it.
type statsSource interface {
	Frames() int
	Renderer() *renderer2d.Renderer
	Region() *memory.Region
}

// statsWindow shows frame timing, renderer counters and memory use.
type statsWindow struct {
	src       statsSource
	lastFrame time.Time
	frameMS   float64
	mem       runtime.MemStats
}

func newStatsWindow(src statsSource) *statsWindow {
	return &statsWindow{src: src}
}

func (s *statsWindow) sample(now time.Time) {
	if !s.lastFrame.IsZero() {
		s.frameMS = float64(now.Sub(s.lastFrame).Microseconds()) / 1000
	}
	s.lastFrame = now
	// ReadMemStats stops the world; once a second is plenty
	if s.src.Frames()%60 == 0 {
		runtime.ReadMemStats(&s.mem)
	}
}

func (s *statsWindow) section(ctx *ui.Context, title string) {
	r := ctx.LayoutNext()
	ctx.DrawControlText(title, r, ui.ColorText, 0)
	ctx.DrawRect(ui.Rect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1}, colors.Yellow)
}

func (s *statsWindow) build(ctx *ui.Context) {
	s.sample(time.Now())
	if !ctx.BeginWindowEx("Stats", ui.Rect{X: 670, Y: 140, W: 200, H: 330}, ui.OptNoResize) {
		return
	}
	ctx.LayoutRow(0, -1)

	s.section(ctx, "Frame")
	ctx.Label(fmt.Sprintf("  %d", s.src.Frames()))
	if s.frameMS > 0 {
		ctx.Label(fmt.Sprintf("  %2.3f ms (%.1f FPS)", s.frameMS, 1000/s.frameMS))
	}

	st := s.src.Renderer().Stats()
	s.section(ctx, "Renderer")
	ctx.Label(fmt.Sprintf("  Commands: %d", st.Commands))
	ctx.Label(fmt.Sprintf("  Rects: %d  Texts: %d", st.Rects, st.Texts))
	ctx.Label(fmt.Sprintf("  Icons: %d  Clips: %d", st.Icons, st.Clips))

	reg := s.src.Region()
	s.section(ctx, "Memory")
	ctx.Label(fmt.Sprintf("  Region: %d / %d B", reg.Used(), reg.Cap()))
	ctx.Label(fmt.Sprintf("  Blocks: %d", reg.Blocks()))
	ctx.Label(fmt.Sprintf("  Heap: %.3f MB", float64(s.mem.HeapAlloc)/(1<<20)))
	ctx.Label(fmt.Sprintf("  Goroutines: %d", runtime.NumGoroutine()))

	if profiler.Enabled {
		s.section(ctx, "Profile")
		totals := profiler.Totals()
		for _, name := range []string{"build", "render", "present"} {
			ctx.Label(fmt.Sprintf("  %s: %s", name, totals[name].Round(time.Microsecond)))
		}
	}
	ctx.EndWindow()
}
