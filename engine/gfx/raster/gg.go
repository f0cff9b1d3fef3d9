package raster

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"

	"github.com/hubastard/mucanvas/engine/colors"
)

// GGSurface draws through a gogpu/gg context. gg keeps a single brush for
// fill and stroke, so the current style is applied right before each draw.
//
// The software gg renderer does not consult its clip stack, so the clip
// box is tracked here. Rectangles are cut to it exactly. Text and strokes
// that straddle the clip edge are rasterized into a layer covering only
// the visible part and composited back with DrawImage.
type GGSurface struct {
	dc     *gg.Context
	source *ggtext.FontSource

	st    state
	stack []state
	path  path
	faces map[float64]ggtext.Face
	err   error
}

// NewGG creates a w x h gg-backed surface. source may be nil, in which case
// FillText is a no-op.
func NewGG(w, h int, source *ggtext.FontSource) *GGSurface {
	dc := gg.NewContext(w, h)
	return &GGSurface{
		dc:     dc,
		source: source,
		st:     defaultState(image.Rect(0, 0, w, h)),
		faces:  make(map[float64]ggtext.Face),
	}
}

// Context exposes the underlying gg context.
func (s *GGSurface) Context() *gg.Context { return s.dc }

func (s *GGSurface) Save() {
	s.stack = append(s.stack, s.st)
}

func (s *GGSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.st = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *GGSurface) ClipRect(x, y, w, h float64) {
	s.st.clip = s.st.clip.Intersect(clipBox(x, y, w, h))
}

func (s *GGSurface) SetFillColor(hex string)   { s.st.fill = hex }
func (s *GGSurface) SetStrokeColor(hex string) { s.st.stroke = hex }
func (s *GGSurface) SetLineWidth(w float64)    { s.st.lineWidth = w }
func (s *GGSurface) SetLineCap(c LineCap)      { s.st.lineCap = c }
func (s *GGSurface) SetFontSize(px float64)    { s.st.fontSize = px }

func (s *GGSurface) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 || s.st.clip.Empty() {
		return
	}
	x0, y0 := max(x, float64(s.st.clip.Min.X)), max(y, float64(s.st.clip.Min.Y))
	x1, y1 := min(x+w, float64(s.st.clip.Max.X)), min(y+h, float64(s.st.clip.Max.Y))
	if x1 <= x0 || y1 <= y0 {
		return
	}
	if !s.brush(s.st.fill) {
		return
	}
	s.dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	if err := s.dc.Fill(); err != nil {
		s.fail(fmt.Errorf("raster: fill: %w", err))
	}
}

func (s *GGSurface) FillText(str string, x, y float64) {
	if str == "" || s.source == nil || s.st.clip.Empty() {
		return
	}
	face := s.face(s.st.fontSize)
	m := face.Metrics()
	// glyph ink may overhang the advance box; pad by a full em
	pad := m.Ascent + m.Descent
	box := clipBox(x-pad, y-m.Ascent-pad, face.Advance(str)+2*pad, m.Ascent+m.Descent+2*pad)
	visible := box.Intersect(s.st.clip)
	if visible.Empty() {
		return
	}
	c, err := colors.ParseHex(s.st.fill)
	if err != nil {
		s.fail(fmt.Errorf("raster: style %q: %w", s.st.fill, err))
		return
	}
	if box.In(s.st.clip) {
		s.dc.SetHexColor(s.st.fill)
		s.dc.SetFont(face)
		s.dc.DrawString(str, x, y)
		return
	}
	// the layer's bounds are the visible box, so the drawer cuts the glyphs
	layer := image.NewNRGBA(visible)
	ggtext.Draw(layer, str, face, x, y, c)
	s.composite(layer)
}

func (s *GGSurface) BeginPath() {
	s.path.reset()
	s.dc.ClearPath()
}

func (s *GGSurface) MoveTo(x, y float64) {
	s.path.moveTo(x, y)
	s.dc.MoveTo(x, y)
}

func (s *GGSurface) LineTo(x, y float64) {
	s.path.lineTo(x, y)
	s.dc.LineTo(x, y)
}

func (s *GGSurface) Stroke() {
	defer s.BeginPath()
	if s.st.lineWidth <= 0 || s.st.clip.Empty() {
		return
	}
	box := s.path.bounds(s.st.lineWidth).Inset(-1)
	visible := box.Intersect(s.st.clip)
	if visible.Empty() {
		return
	}
	if !s.brush(s.st.stroke) {
		return
	}
	if box.In(s.st.clip) {
		s.stroke(s.dc)
		return
	}

	off := gg.NewContext(visible.Dx(), visible.Dy())
	defer off.Close()
	off.SetHexColor(s.st.stroke)
	off.Translate(-float64(visible.Min.X), -float64(visible.Min.Y))
	for _, line := range s.path {
		for i, pt := range line {
			if i == 0 {
				off.MoveTo(pt.x, pt.y)
			} else {
				off.LineTo(pt.x, pt.y)
			}
		}
	}
	s.stroke(off)

	layer := image.NewNRGBA(visible)
	draw.Draw(layer, visible, off.Image(), image.Point{}, draw.Src)
	s.composite(layer)
}

func (s *GGSurface) stroke(dc *gg.Context) {
	dc.SetLineWidth(s.st.lineWidth)
	dc.SetLineCap(ggCap(s.st.lineCap))
	if err := dc.Stroke(); err != nil {
		s.fail(fmt.Errorf("raster: stroke: %w", err))
	}
}

// composite blends layer over the pixmap at the layer's own bounds.
func (s *GGSurface) composite(layer *image.NRGBA) {
	r := layer.Bounds()
	s.dc.DrawImageEx(gg.ImageBufFromImage(layer), gg.DrawImageOptions{
		X:         float64(r.Min.X),
		Y:         float64(r.Min.Y),
		Opacity:   1,
		BlendMode: gg.BlendNormal,
	})
}

func (s *GGSurface) Clear(c colors.Color) {
	s.dc.ClearWithColor(gg.Hex(c.Hex()))
	s.err = nil
}

func (s *GGSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.dc.Width(), s.dc.Height())
}

// Image returns a snapshot of the current pixels.
func (s *GGSurface) Image() image.Image { return s.dc.Image() }

func (s *GGSurface) Err() error { return s.err }

func (s *GGSurface) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *GGSurface) brush(hex string) bool {
	if _, err := colors.ParseHex(hex); err != nil {
		s.fail(fmt.Errorf("raster: style %q: %w", hex, err))
		return false
	}
	s.dc.SetHexColor(hex)
	return true
}

func (s *GGSurface) face(size float64) ggtext.Face {
	f, ok := s.faces[size]
	if !ok {
		f = s.source.Face(size)
		s.faces[size] = f
	}
	return f
}

func ggCap(c LineCap) gg.LineCap {
	switch c {
	case LineCapRound:
		return gg.LineCapRound
	case LineCapSquare:
		return gg.LineCapSquare
	}
	return gg.LineCapButt
}

var _ Surface = (*GGSurface)(nil)
