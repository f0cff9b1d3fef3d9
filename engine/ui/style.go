package ui

import (
	"github.com/hubastard/mucanvas/engine/colors"
	"github.com/hubastard/mucanvas/engine/memory"
)

type ColorID int

const (
	ColorText ColorID = iota
	ColorBorder
	ColorWindowBG
	ColorTitleBG
	ColorTitleText
	ColorPanelBG
	ColorButton
	ColorButtonHover
	ColorButtonFocus
	ColorBase
	ColorBaseHover
	ColorBaseFocus
	ColorScrollBase
	ColorScrollThumb
	ColorMax
)

var colorNames = [ColorMax]string{
	"text", "border", "windowbg", "titlebg", "titletext", "panelbg",
	"button", "buttonhover", "buttonfocus",
	"base", "basehover", "basefocus",
	"scrollbase", "scrollthumb",
}

func (c ColorID) String() string {
	if c < 0 || c >= ColorMax {
		return "unknown"
	}
	return colorNames[c]
}

var defaultColors = [ColorMax]colors.Color{
	{R: 230, G: 230, B: 230, A: 255}, // text
	{R: 25, G: 25, B: 25, A: 255},    // border
	{R: 50, G: 50, B: 50, A: 255},    // windowbg
	{R: 25, G: 25, B: 25, A: 255},    // titlebg
	{R: 240, G: 240, B: 240, A: 255}, // titletext
	{R: 0, G: 0, B: 0, A: 0},         // panelbg
	{R: 75, G: 75, B: 75, A: 255},    // button
	{R: 95, G: 95, B: 95, A: 255},    // buttonhover
	{R: 115, G: 115, B: 115, A: 255}, // buttonfocus
	{R: 30, G: 30, B: 30, A: 255},    // base
	{R: 35, G: 35, B: 35, A: 255},    // basehover
	{R: 40, G: 40, B: 40, A: 255},    // basefocus
	{R: 43, G: 43, B: 43, A: 255},    // scrollbase
	{R: 30, G: 30, B: 30, A: 255},    // scrollthumb
}

// Style holds the metrics and colors controls are drawn with. The colors
// live in the memory region as RGBA byte quads so they can be edited in
// place by byte-sized controls.
type Style struct {
	Size          Vec2
	Padding       int
	Spacing       int
	Indent        int
	TitleHeight   int
	ScrollbarSize int
	ThumbSize     int

	channels []memory.U8
}

func newStyle(r *memory.Region) (*Style, error) {
	ch, err := r.U8s(int(ColorMax) * 4)
	if err != nil {
		return nil, err
	}
	s := &Style{
		Size:          Vec2{68, 10},
		Padding:       5,
		Spacing:       4,
		Indent:        24,
		TitleHeight:   24,
		ScrollbarSize: 12,
		ThumbSize:     8,
		channels:      ch,
	}
	for id, c := range defaultColors {
		s.SetColor(ColorID(id), c)
	}
	return s, nil
}

func (s *Style) Color(id ColorID) colors.Color {
	i := int(id) * 4
	return colors.Color{
		R: s.channels[i].Get(),
		G: s.channels[i+1].Get(),
		B: s.channels[i+2].Get(),
		A: s.channels[i+3].Get(),
	}
}

func (s *Style) SetColor(id ColorID, c colors.Color) {
	i := int(id) * 4
	s.channels[i].Set(c.R)
	s.channels[i+1].Set(c.G)
	s.channels[i+2].Set(c.B)
	s.channels[i+3].Set(c.A)
}

// Channel returns the byte slot of one channel (0..3 = r, g, b, a) of a
// style color.
func (s *Style) Channel(id ColorID, ch int) memory.U8 {
	return s.channels[int(id)*4+ch]
}
