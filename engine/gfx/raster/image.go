package raster

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/hubastard/mucanvas/engine/colors"
)

// FaceSource hands out opentype faces by pixel size. *text.Metrics
// implements it.
type FaceSource interface {
	OpenType(size float64) (font.Face, error)
}

// ImageSurface rasterizes into an *image.RGBA. Every operation, text
// included, is clipped to the pixel box of the current clip.
type ImageSurface struct {
	dst   *image.RGBA
	faces FaceSource

	st    state
	stack []state
	path  path

	z   vector.Rasterizer
	err error

	// last decoded style, keyed by the hex string
	hexKey string
	hexVal colors.Color
}

// NewImage creates a w x h software surface. faces may be nil, in which
// case FillText is a no-op.
func NewImage(w, h int, faces FaceSource) *ImageSurface {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	return &ImageSurface{
		dst:   dst,
		faces: faces,
		st:    defaultState(dst.Bounds()),
	}
}

func (s *ImageSurface) Save() {
	s.stack = append(s.stack, s.st)
}

func (s *ImageSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.st = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *ImageSurface) ClipRect(x, y, w, h float64) {
	s.st.clip = s.st.clip.Intersect(clipBox(x, y, w, h))
}

func (s *ImageSurface) SetFillColor(hex string)   { s.st.fill = hex }
func (s *ImageSurface) SetStrokeColor(hex string) { s.st.stroke = hex }
func (s *ImageSurface) SetLineWidth(w float64)    { s.st.lineWidth = w }
func (s *ImageSurface) SetLineCap(c LineCap)      { s.st.lineCap = c }
func (s *ImageSurface) SetFontSize(px float64)    { s.st.fontSize = px }

func (s *ImageSurface) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 || s.st.clip.Empty() {
		return
	}
	src, ok := s.color(s.st.fill)
	if !ok {
		return
	}
	if integral(x, y, w, h) {
		r := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(s.st.clip)
		draw.Draw(s.dst, r, src, image.Point{}, draw.Over)
		return
	}
	s.rasterize(src, func(z *vector.Rasterizer, ox, oy float64) {
		polygon(z, ox, oy,
			point{x, y}, point{x + w, y}, point{x + w, y + h}, point{x, y + h})
	})
}

func (s *ImageSurface) FillText(str string, x, y float64) {
	if str == "" || s.faces == nil || s.st.clip.Empty() {
		return
	}
	src, ok := s.color(s.st.fill)
	if !ok {
		return
	}
	face, err := s.faces.OpenType(s.st.fontSize)
	if err != nil {
		s.fail(fmt.Errorf("raster: text face: %w", err))
		return
	}
	d := font.Drawer{
		Dst:  s.dst.SubImage(s.st.clip).(*image.RGBA),
		Src:  src,
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(str)
}

func (s *ImageSurface) BeginPath()          { s.path.reset() }
func (s *ImageSurface) MoveTo(x, y float64) { s.path.moveTo(x, y) }
func (s *ImageSurface) LineTo(x, y float64) { s.path.lineTo(x, y) }

// Stroke outlines the current path. Round caps are drawn as square caps.
func (s *ImageSurface) Stroke() {
	if len(s.path) == 0 || s.st.lineWidth <= 0 || s.st.clip.Empty() {
		return
	}
	src, ok := s.color(s.st.stroke)
	if !ok {
		return
	}
	hw := s.st.lineWidth / 2
	ext := 0.0
	if s.st.lineCap != LineCapButt {
		ext = hw
	}
	s.rasterize(src, func(z *vector.Rasterizer, ox, oy float64) {
		for _, line := range s.path {
			for i := 1; i < len(line); i++ {
				segment(z, ox, oy, line[i-1], line[i], hw, ext)
			}
		}
	})
}

func (s *ImageSurface) Clear(c colors.Color) {
	draw.Draw(s.dst, s.dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	s.err = nil
}

func (s *ImageSurface) Bounds() image.Rectangle { return s.dst.Bounds() }

// Image returns the backing image. It is live: later draws show up in it.
func (s *ImageSurface) Image() image.Image { return s.dst }

// RGBA is Image without the interface conversion.
func (s *ImageSurface) RGBA() *image.RGBA { return s.dst }

func (s *ImageSurface) Err() error { return s.err }

func (s *ImageSurface) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *ImageSurface) color(hex string) (*image.Uniform, bool) {
	if hex != s.hexKey {
		c, err := colors.ParseHex(hex)
		if err != nil {
			s.fail(fmt.Errorf("raster: style %q: %w", hex, err))
			return nil, false
		}
		s.hexKey, s.hexVal = hex, c
	}
	return image.NewUniform(s.hexVal), true
}

// rasterize runs build against a rasterizer covering the clip box and
// composites src through the resulting coverage mask.
func (s *ImageSurface) rasterize(src image.Image, build func(z *vector.Rasterizer, ox, oy float64)) {
	clip := s.st.clip
	s.z.Reset(clip.Dx(), clip.Dy())
	s.z.DrawOp = draw.Over
	build(&s.z, float64(clip.Min.X), float64(clip.Min.Y))
	s.z.Draw(s.dst, clip, src, image.Point{})
}

func polygon(z *vector.Rasterizer, ox, oy float64, pts ...point) {
	z.MoveTo(float32(pts[0].x-ox), float32(pts[0].y-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.x-ox), float32(p.y-oy))
	}
	z.ClosePath()
}

// segment adds the quad covering a line from a to b of half width hw,
// extended by ext at both ends.
func segment(z *vector.Rasterizer, ox, oy float64, a, b point, hw, ext float64) {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	dx, dy = dx/l, dy/l
	nx, ny := -dy*hw, dx*hw
	a = point{a.x - dx*ext, a.y - dy*ext}
	b = point{b.x + dx*ext, b.y + dy*ext}
	polygon(z, ox, oy,
		point{a.x - nx, a.y - ny},
		point{b.x - nx, b.y - ny},
		point{b.x + nx, b.y + ny},
		point{a.x + nx, a.y + ny},
	)
}

func integral(vs ...float64) bool {
	for _, v := range vs {
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }

func floor(v float64) int { return int(math.Floor(v)) }
func ceil(v float64) int  { return int(math.Ceil(v)) }

var _ Surface = (*ImageSurface)(nil)
