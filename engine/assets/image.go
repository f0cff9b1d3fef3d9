package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
)

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save png %q: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png %q: %w", path, err)
	}
	return f.Close()
}

func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode png %q: %w", path, err)
	}
	return img, nil
}

// PackRGBA returns the size of img and its pixels as tightly packed RGBA8
// rows, top row first.
func PackRGBA(img image.Image) (w, h int, pix []byte) {
	m := ToRGBA(img)
	w, h = m.Rect.Dx(), m.Rect.Dy()
	if m.Stride == w*4 {
		return w, h, m.Pix[:w*h*4]
	}
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], m.Pix[y*m.Stride:y*m.Stride+w*4])
	}
	return w, h, out
}

// ToRGBA returns img as an *image.RGBA with its origin at (0,0), copying
// only when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
