package ui

// ===== Row layout =====

type nextType int

const (
	nextNone nextType = iota
	nextRelative
	nextAbsolute
)

type layout struct {
	body      Rect
	next      Rect
	position  Vec2
	size      Vec2
	max       Vec2
	widths    [maxWidths]int
	items     int
	itemIndex int
	nextRow   int
	nextType  nextType
	indent    int
}

func (c *Context) pushLayout(body Rect, scroll Vec2) {
	c.layoutStack = append(c.layoutStack, layout{
		body: Rect{body.X - scroll.X, body.Y - scroll.Y, body.W, body.H},
		max:  Vec2{-0x1000000, -0x1000000},
	})
	c.layoutRow(1, []int{0}, 0)
}

func (c *Context) layout() *layout {
	return &c.layoutStack[len(c.layoutStack)-1]
}

func (c *Context) popLayout() {
	c.layoutStack = c.layoutStack[:len(c.layoutStack)-1]
}

// LayoutBeginColumn starts a nested layout inside the next cell.
func (c *Context) LayoutBeginColumn() {
	c.pushLayout(c.LayoutNext(), Vec2{})
}

// LayoutEndColumn closes a column; the parent inherits the column's extent.
func (c *Context) LayoutEndColumn() {
	b := *c.layout()
	c.popLayout()
	a := c.layout()
	a.position.X = max(a.position.X, b.position.X+b.body.X-a.body.X)
	a.nextRow = max(a.nextRow, b.nextRow+b.body.Y-a.body.Y)
	a.max.X = max(a.max.X, b.max.X)
	a.max.Y = max(a.max.Y, b.max.Y)
}

// LayoutRow starts a row of len(widths) cells. A width of 0 uses the style
// default, a negative width fills to that distance from the right edge.
// Height follows the same rules.
func (c *Context) LayoutRow(height int, widths ...int) {
	c.layoutRow(len(widths), widths, height)
}

func (c *Context) layoutRow(items int, widths []int, height int) {
	l := c.layout()
	if widths != nil {
		if items > maxWidths {
			panic("ui: too many cells in layout row")
		}
		copy(l.widths[:], widths[:items])
	}
	l.items = items
	l.position = Vec2{l.indent, l.nextRow}
	l.size.Y = height
	l.itemIndex = 0
}

func (c *Context) LayoutWidth(w int)  { c.layout().size.X = w }
func (c *Context) LayoutHeight(h int) { c.layout().size.Y = h }

// LayoutSetNext overrides the next cell. A relative rect is offset by the
// layout body and advances the row; an absolute one is used verbatim.
func (c *Context) LayoutSetNext(r Rect, relative bool) {
	l := c.layout()
	l.next = r
	l.nextType = nextAbsolute
	if relative {
		l.nextType = nextRelative
	}
}

// LayoutNext returns the rect of the next cell.
func (c *Context) LayoutNext() Rect {
	l := c.layout()
	style := c.style
	var res Rect

	if l.nextType != nextNone {
		typ := l.nextType
		l.nextType = nextNone
		res = l.next
		if typ == nextAbsolute {
			c.lastRect = res
			return res
		}
	} else {
		if l.itemIndex == l.items {
			c.layoutRow(l.items, nil, l.size.Y)
		}

		res.X = l.position.X
		res.Y = l.position.Y

		if l.items > 0 {
			res.W = l.widths[l.itemIndex]
		} else {
			res.W = l.size.X
		}
		res.H = l.size.Y
		if res.W == 0 {
			res.W = style.Size.X + style.Padding*2
		}
		if res.H == 0 {
			res.H = style.Size.Y + style.Padding*2
		}
		if res.W < 0 {
			res.W += l.body.W - res.X + 1
		}
		if res.H < 0 {
			res.H += l.body.H - res.Y + 1
		}

		l.itemIndex++
	}

	l.position.X += res.W + style.Spacing
	l.nextRow = max(l.nextRow, res.Y+res.H+style.Spacing)

	res.X += l.body.X
	res.Y += l.body.Y

	l.max.X = max(l.max.X, res.X+res.W)
	l.max.Y = max(l.max.Y, res.Y+res.H)

	c.lastRect = res
	return res
}

// LastRect is the rect most recently returned by LayoutNext.
func (c *Context) LastRect() Rect { return c.lastRect }
