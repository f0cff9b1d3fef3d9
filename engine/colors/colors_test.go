package colors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{"opaque black", Color{0, 0, 0, 255}, "#000000"},
		{"opaque white", Color{255, 255, 255, 255}, "#FFFFFF"},
		{"zero padded", Color{1, 2, 10, 255}, "#01020A"},
		{"translucent", Color{90, 95, 100, 128}, "#5A5F6480"},
		{"fully transparent", Color{0, 0, 0, 0}, "#00000000"},
		{"alpha 254", Color{255, 255, 255, 254}, "#FFFFFFFE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.color.Hex())
		})
	}
}

func TestHex_OpaqueRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := Color{uint8(v), uint8(255 - v), uint8(v * 7 % 256), 255}
		s := c.Hex()
		require.Len(t, s, 7)
		require.Equal(t, strings.ToUpper(s), s)
		got, err := ParseHex(s)
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
}

func TestHex_TranslucentCarriesAlpha(t *testing.T) {
	for a := 0; a < 255; a++ {
		c := Color{12, 34, 56, uint8(a)}
		s := c.Hex()
		require.Len(t, s, 9, "alpha %d", a)
		got, err := ParseHex(s)
		require.NoError(t, err)
		assert.Equal(t, uint8(a), got.A)
		assert.Equal(t, c, got)
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, s := range []string{"", "#", "#12345", "#GG0000", "#1234567"} {
		_, err := ParseHex(s)
		assert.ErrorIs(t, err, ErrInvalidHex, s)
	}
}

func TestFromFloats_Truncates(t *testing.T) {
	c := FromFloats(127.9, 0, 300)
	assert.Equal(t, Color{127, 0, 255, 255}, c)
	assert.Equal(t, Color{0, 0, 0, 255}, FromFloats(-3, -0.5, 0.99))
}

func TestRGBA_Premultiplied(t *testing.T) {
	r, g, b, a := Color{255, 0, 0, 128}.RGBA()
	assert.Equal(t, uint32(128*0x101), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(128*0x101), a)
}
