package colors

import (
	"errors"
	"fmt"
	"strings"
)

// Color is an 8-bit RGBA quad. A == 255 is fully opaque.
type Color struct {
	R, G, B, A uint8
}

var ErrInvalidHex = errors.New("colors: invalid hex color")

var (
	White    = Color{255, 255, 255, 255}
	Red      = Color{255, 0, 0, 255}
	Green    = Color{0, 255, 0, 255}
	Blue     = Color{0, 0, 255, 255}
	Black    = Color{0, 0, 0, 255}
	Magenta  = Color{255, 0, 255, 255}
	Cyan     = Color{0, 255, 255, 255}
	Yellow   = Color{255, 255, 0, 255}
	Gray     = Color{128, 128, 128, 255}
	DarkGray = Color{20, 26, 31, 255}
	DebugBox = Color{10, 10, 250, 190}
)

func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Opaque reports whether the color carries no translucency.
func (c Color) Opaque() bool { return c.A == 255 }

const hexDigits = "0123456789ABCDEF"

// Hex encodes the color as #RRGGBB, appending AA only when the color is
// translucent. Digits are uppercase and zero padded.
func (c Color) Hex() string {
	var b [9]byte
	b[0] = '#'
	put := func(i int, v uint8) {
		b[i] = hexDigits[v>>4]
		b[i+1] = hexDigits[v&0x0F]
	}
	put(1, c.R)
	put(3, c.G)
	put(5, c.B)
	if c.A == 255 {
		return string(b[:7])
	}
	put(7, c.A)
	return string(b[:9])
}

func (c Color) String() string { return c.Hex() }

// RGBA implements image/color.Color (alpha-premultiplied, 16 bits per channel).
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 255
	g = uint32(c.G) * a / 255
	b = uint32(c.B) * a / 255
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

// Floats returns the channels normalized to [0..1], the shape GL clear colors take.
func (c Color) Floats() [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// ParseHex decodes #RRGGBB or #RRGGBBAA (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(s)/2; i++ {
		hi, ok1 := nibble(s[2*i])
		lo, ok2 := nibble(s[2*i+1])
		if !ok1 || !ok2 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		ch[i] = hi<<4 | lo
	}
	return Color{ch[0], ch[1], ch[2], ch[3]}, nil
}

func nibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// FromFloats builds an opaque color from 0..255 float channels, truncating
// fractional parts the same way the engine narrows its float sliders.
func FromFloats(r, g, b float32) Color {
	return Color{clampByte(r), clampByte(g), clampByte(b), 255}
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
