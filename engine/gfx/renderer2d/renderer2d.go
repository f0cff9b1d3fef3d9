// Package renderer2d replays a UI command list onto a raster surface.
package renderer2d

import (
	"github.com/hubastard/mucanvas/engine/colors"
	"github.com/hubastard/mucanvas/engine/gfx/raster"
	"github.com/hubastard/mucanvas/engine/ui"
)

// DefaultFontSize is the nominal text height in pixels.
const DefaultFontSize = 12

const (
	iconLineWidth = 1.25

	iconR  = 0.35
	iconDX = 0.1

	checkDY1 = 0.55
	checkDX1 = 0.2
	checkDX2 = 0.15
	checkDX3 = 0.4
)

// Metrics is what the renderer needs to place text. *text.Metrics
// satisfies it.
type Metrics interface {
	Ascent() float64
	Descent() float64
	Width(s string, length int) int
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	Commands int
	Clips    int
	Rects    int
	Texts    int
	Icons    int
}

type Renderer struct {
	metrics  Metrics
	fontSize float64
	// Debug outlines text boxes and backs icons with a translucent box.
	Debug bool

	stats Statistics
}

// New returns a renderer drawing text at fontSize pixels. A non-positive
// size selects DefaultFontSize.
func New(m Metrics, fontSize float64) *Renderer {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return &Renderer{metrics: m, fontSize: fontSize}
}

// Stats returns the statistics of the last Render call.
func (rd *Renderer) Stats() Statistics { return rd.stats }

func (rd *Renderer) FontSize() float64 { return rd.fontSize }

// Render draws cmds in order. The surface state is saved before the first
// command and restored after the last one, so clips never leak out of a
// frame. It returns the first error the surface recorded.
func (rd *Renderer) Render(s raster.Surface, cmds []ui.Command) error {
	rd.stats = Statistics{}
	if len(cmds) == 0 {
		return s.Err()
	}
	s.Save()
	for i := range cmds {
		cmd := &cmds[i]
		rd.stats.Commands++
		switch cmd.Kind {
		case ui.CommandClip:
			rd.stats.Clips++
			rd.clip(s, cmd.Rect)
		case ui.CommandRect:
			rd.stats.Rects++
			rd.rect(s, cmd.Rect, cmd.Color)
		case ui.CommandText:
			rd.stats.Texts++
			rd.text(s, cmd.Text, cmd.Pos, cmd.Color)
		case ui.CommandIcon:
			rd.stats.Icons++
			rd.icon(s, cmd.Icon, cmd.Rect, cmd.Color)
		}
	}
	s.Restore()
	return s.Err()
}

// clip replaces the active clip. Surface clips intersect, so the frame
// state is restored and saved again before the new rect is applied.
func (rd *Renderer) clip(s raster.Surface, r ui.Rect) {
	s.Restore()
	s.Save()
	s.ClipRect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
}

func (rd *Renderer) rect(s raster.Surface, r ui.Rect, c colors.Color) {
	s.SetFillColor(c.Hex())
	s.FillRect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
}

func (rd *Renderer) text(s raster.Surface, str string, pos ui.Vec2, c colors.Color) {
	s.SetFontSize(rd.fontSize)
	s.SetFillColor(c.Hex())
	ascent := rd.metrics.Ascent()
	x := float64(pos.X)
	y := float64(pos.Y) + ascent
	s.FillText(str, x, y)

	if rd.Debug {
		w := float64(rd.metrics.Width(str, -1))
		h := ascent + rd.metrics.Descent()
		top := float64(pos.Y)
		s.SetStrokeColor(colors.Blue.Hex())
		s.SetLineWidth(1)
		s.SetLineCap(raster.LineCapButt)
		s.BeginPath()
		s.MoveTo(x, top)
		s.LineTo(x+w, top)
		s.LineTo(x+w, top+h)
		s.LineTo(x, top+h)
		s.LineTo(x, top)
		s.Stroke()
	}
}

func (rd *Renderer) icon(s raster.Surface, id ui.Icon, r ui.Rect, c colors.Color) {
	if rd.Debug {
		rd.rect(s, r, colors.DebugBox)
	}
	x, y := float64(r.X), float64(r.Y)
	w, h := float64(r.W), float64(r.H)
	at := func(fx, fy float64) (float64, float64) { return x + w*fx, y + h*fy }

	switch id {
	case ui.IconClose:
		beginIcon(s, c)
		s.MoveTo(at(iconR, iconR))
		s.LineTo(at(1-iconR, 1-iconR))
		s.MoveTo(at(1-iconR, iconR))
		s.LineTo(at(iconR, 1-iconR))
	case ui.IconCheck:
		beginIcon(s, c)
		s.MoveTo(at(checkDX1, checkDY1))
		s.LineTo(at(checkDX1+checkDX2, checkDY1+checkDX2))
		s.LineTo(at(checkDX1+checkDX2+checkDX3, checkDY1+checkDX2-checkDX3))
	case ui.IconCollapsed:
		beginIcon(s, c)
		s.MoveTo(at(iconR+iconDX, iconR))
		s.LineTo(at(0.5+iconDX, 0.5))
		s.LineTo(at(iconR+iconDX, 1-iconR))
	case ui.IconExpanded:
		beginIcon(s, c)
		s.MoveTo(at(iconR, iconR+iconDX))
		s.LineTo(at(0.5, 0.5+iconDX))
		s.LineTo(at(1-iconR, iconR+iconDX))
	default:
		return
	}
	s.Stroke()
}

func beginIcon(s raster.Surface, c colors.Color) {
	s.SetStrokeColor(c.Hex())
	s.SetLineWidth(iconLineWidth)
	s.SetLineCap(raster.LineCapSquare)
	s.BeginPath()
}
