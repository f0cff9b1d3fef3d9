// Package text measures strings for the GUI engine and hands out font
// faces for the raster backends.
package text

import (
	"errors"
	"fmt"
	"strings"

	ggtext "github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultSize is the nominal font height in pixels.
const DefaultSize = 12

var ErrBadSize = errors.New("text: font size must be positive")

// TextWidth is the shape of the engine's width callback. length is a byte
// count, or -1 for "up to the end of the string".
type TextWidth func(s string, length int) int

// TextHeight is the shape of the engine's height callback.
type TextHeight func() int

// Metrics answers width and height queries for one font at one size.
type Metrics struct {
	ttf    []byte
	source *ggtext.FontSource
	face   ggtext.Face
	size   float64

	ascent  float64
	descent float64
	height  int

	faces faceCache
}

// New parses ttf and builds a face of the given pixel size.
func New(ttf []byte, size float64) (*Metrics, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadSize, size)
	}
	source, err := ggtext.NewFontSource(ttf)
	if err != nil {
		return nil, fmt.Errorf("text: load font: %w", err)
	}
	face := source.Face(size)
	fm := face.Metrics()

	m := &Metrics{
		ttf:     ttf,
		source:  source,
		face:    face,
		size:    size,
		ascent:  fm.Ascent,
		descent: fm.Descent,
	}
	// constant for the session, so measured once
	m.height = int(fm.Ascent + fm.Descent)
	if m.height <= 0 {
		return nil, fmt.Errorf("%w: font reports line height %v", ErrBadSize, fm.Ascent+fm.Descent)
	}
	return m, nil
}

// Default returns metrics for the bundled Go Regular font.
func Default(size float64) (*Metrics, error) {
	return New(goregular.TTF, size)
}

// Width measures the first length bytes of s, or everything up to the
// first NUL when length is -1. The result is truncated to whole pixels.
func (m *Metrics) Width(s string, length int) int {
	if length < 0 {
		if i := strings.IndexByte(s, 0); i >= 0 {
			s = s[:i]
		}
	} else if length < len(s) {
		s = s[:length]
	}
	if s == "" {
		return 0
	}
	return int(m.face.Advance(s))
}

// Height is ascent plus descent.
func (m *Metrics) Height() int { return m.height }

// Ascent is the distance from the top of a line to its baseline.
func (m *Metrics) Ascent() float64 { return m.ascent }

func (m *Metrics) Descent() float64 { return m.descent }

func (m *Metrics) Size() float64 { return m.size }

// Face is the gg face the metrics are computed from.
func (m *Metrics) Face() ggtext.Face { return m.face }

func (m *Metrics) Source() *ggtext.FontSource { return m.source }

// Callbacks returns the width and height functions the engine registers.
func (m *Metrics) Callbacks() (TextWidth, TextHeight) {
	return m.Width, m.Height
}

// Close releases the font source.
func (m *Metrics) Close() error {
	m.faces.close()
	return m.source.Close()
}
