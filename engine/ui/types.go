package ui

// ===== Geometry =====

type Vec2 struct{ X, Y int }

type Rect struct{ X, Y, W, H int }

func (r Rect) expand(n int) Rect {
	return Rect{r.X - n, r.Y - n, r.W + n*2, r.H + n*2}
}

func (r Rect) intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.W, o.X+o.W)
	y2 := min(r.Y+r.H, o.Y+o.H)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return Rect{x1, y1, x2 - x1, y2 - y1}
}

// Contains reports whether p lies inside r (right and bottom edges excluded).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// unclipped is the clip rect that disables clipping.
var unclipped = Rect{0, 0, 0x1000000, 0x1000000}

// ===== Flags =====

type Clip int

const (
	ClipPart Clip = 1 + iota
	ClipAll
)

type Icon int

const (
	IconClose Icon = 1 + iota
	IconCheck
	IconCollapsed
	IconExpanded
)

// Res is the bit set a control returns.
type Res int

const (
	ResActive Res = 1 << iota
	ResSubmit
	ResChange
)

type Opt int

const (
	OptAlignCenter Opt = 1 << iota
	OptAlignRight
	OptNoInteract
	OptNoFrame
	OptNoResize
	OptNoScroll
	OptNoClose
	OptNoTitle
	OptHoldFocus
	OptAutoSize
	OptPopup
	OptClosed
	OptExpanded
)

type MouseButton int

const (
	MouseLeft MouseButton = 1 << iota
	MouseRight
	MouseMiddle
)

type Key int

const (
	KeyShift Key = 1 << iota
	KeyCtrl
	KeyAlt
	KeyBackspace
	KeyReturn
)

// ID identifies a control, container or tree node across frames.
type ID uint32
