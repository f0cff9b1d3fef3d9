// Package raster is the 2D drawing surface the command renderer targets.
//
// The API follows the usual immediate canvas model: a save/restore state
// stack, an intersecting rectangular clip, a current fill and stroke style
// given as hex strings, and a single path that is built with MoveTo/LineTo
// and consumed by Stroke. Two backends are provided: an x/image software
// rasterizer (NewImage) and a gogpu/gg context (NewGG).
package raster

import (
	"image"

	"github.com/hubastard/mucanvas/engine/colors"
)

type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

func (c LineCap) String() string {
	switch c {
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	}
	return "butt"
}

// Surface is a drawing target. Coordinates are surface-local pixels with
// the origin at the top left.
type Surface interface {
	// Save pushes the clip and the style state. Restore pops it; an
	// unbalanced Restore is ignored.
	Save()
	Restore()
	// ClipRect intersects the current clip with the rectangle.
	ClipRect(x, y, w, h float64)

	SetFillColor(hex string)
	SetStrokeColor(hex string)
	SetLineWidth(w float64)
	SetLineCap(c LineCap)
	SetFontSize(px float64)

	FillRect(x, y, w, h float64)
	// FillText draws s with its baseline at y.
	FillText(s string, x, y float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()

	// Clear fills the whole surface, ignoring the clip.
	Clear(c colors.Color)
	Bounds() image.Rectangle
	Image() image.Image
	// Err returns the first drawing error since the last Clear.
	Err() error
}

// state is what Save and Restore carry.
type state struct {
	clip      image.Rectangle
	fill      string
	stroke    string
	lineWidth float64
	lineCap   LineCap
	fontSize  float64
}

func defaultState(bounds image.Rectangle) state {
	return state{
		clip:      bounds,
		fill:      "#000000",
		stroke:    "#000000",
		lineWidth: 1,
		lineCap:   LineCapButt,
		fontSize:  10,
	}
}

type point struct{ x, y float64 }

// path is a list of polylines.
type path [][]point

func (p *path) moveTo(x, y float64) {
	*p = append(*p, []point{{x, y}})
}

func (p *path) lineTo(x, y float64) {
	if len(*p) == 0 {
		p.moveTo(x, y)
		return
	}
	last := len(*p) - 1
	(*p)[last] = append((*p)[last], point{x, y})
}

func (p *path) reset() { *p = (*p)[:0] }

// bounds is the pixel box of the path grown by the stroke width.
func (p path) bounds(width float64) image.Rectangle {
	var r image.Rectangle
	for _, line := range p {
		for _, pt := range line {
			r = r.Union(clipBox(pt.x-width, pt.y-width, 2*width, 2*width))
		}
	}
	return r
}

// clipBox converts a float rectangle into the pixel box it touches.
func clipBox(x, y, w, h float64) image.Rectangle {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(floor(x), floor(y), ceil(x+w), ceil(y+h))
}
