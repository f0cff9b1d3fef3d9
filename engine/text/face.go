package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// faceCache keeps one opentype face per pixel size.
type faceCache struct {
	parsed *opentype.Font
	faces  map[float64]font.Face
}

func (c *faceCache) close() {
	for size, f := range c.faces {
		_ = f.Close()
		delete(c.faces, size)
	}
}

// OpenType returns an x/image face of the given pixel size for the same
// font. Faces are cached for the lifetime of m.
func (m *Metrics) OpenType(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadSize, size)
	}
	if f, ok := m.faces.faces[size]; ok {
		return f, nil
	}
	if m.faces.parsed == nil {
		ft, err := opentype.Parse(m.ttf)
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		m.faces.parsed = ft
	}
	face, err := opentype.NewFace(m.faces.parsed, &opentype.FaceOptions{
		Size: size, DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	if m.faces.faces == nil {
		m.faces.faces = make(map[float64]font.Face)
	}
	m.faces.faces[size] = face
	return face, nil
}
