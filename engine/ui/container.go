package ui

// Container is a window, popup or panel. Containers persist across frames;
// the engine owns them and hands out pointers that stay valid.
type Container struct {
	rect        Rect
	body        Rect
	contentSize Vec2
	scroll      Vec2
	zindex      int
	open        bool

	root bool
	cmds []Command
}

func (cnt *Container) Rect() Rect        { return cnt.rect }
func (cnt *Container) Body() Rect        { return cnt.body }
func (cnt *Container) ContentSize() Vec2 { return cnt.contentSize }
func (cnt *Container) Scroll() Vec2      { return cnt.scroll }
func (cnt *Container) Zindex() int       { return cnt.zindex }
func (cnt *Container) Open() bool        { return cnt.open }

// SetRect moves or resizes the container. The change shows from the next
// frame on.
func (cnt *Container) SetRect(r Rect) { cnt.rect = r }

// SetScroll sets the scroll offset; it is clamped to the content the next
// time the container is laid out.
func (cnt *Container) SetScroll(v Vec2) { cnt.scroll = v }

func (cnt *Container) SetOpen(open bool) { cnt.open = open }

func (c *Context) CurrentContainer() *Container {
	return c.containerStack[len(c.containerStack)-1]
}

func (c *Context) popContainer() {
	cnt := c.CurrentContainer()
	l := c.layout()
	cnt.contentSize.X = l.max.X - l.body.X
	cnt.contentSize.Y = l.max.Y - l.body.Y
	c.containerStack = c.containerStack[:len(c.containerStack)-1]
	c.popLayout()
	c.PopID()
}

func (c *Context) getContainer(id ID, opt Opt) *Container {
	if idx := poolGet(c.containerPool[:], id); idx >= 0 {
		if c.containers[idx].open || opt&OptClosed == 0 {
			c.poolUpdate(c.containerPool[:], idx)
		}
		return &c.containers[idx]
	}
	if opt&OptClosed != 0 {
		return nil
	}
	idx := c.poolInit(c.containerPool[:], id)
	cnt := &c.containers[idx]
	cmds := cnt.cmds[:0]
	*cnt = Container{open: true, cmds: cmds}
	c.BringToFront(cnt)
	return cnt
}

// GetContainer looks a container up by name, creating it when needed.
func (c *Context) GetContainer(name string) *Container {
	return c.getContainer(c.getStringID(name), 0)
}

func (c *Context) BringToFront(cnt *Container) {
	c.lastZindex++
	cnt.zindex = c.lastZindex
}

// ===== Scrolling =====

func (c *Context) scrollbarY(cnt *Container, b *Rect, cs Vec2) {
	maxScroll := cs.Y - b.H
	if maxScroll <= 0 || b.H <= 0 {
		cnt.scroll.Y = 0
		return
	}
	id := c.getStringID("!scrollbary")

	base := *b
	base.X = b.X + b.W
	base.W = c.style.ScrollbarSize

	c.UpdateControl(id, base, 0)
	if c.focus == id && c.mouseDown == MouseLeft {
		cnt.scroll.Y += c.mouseDelta.Y * cs.Y / base.H
	}
	cnt.scroll.Y = clamp(cnt.scroll.Y, 0, maxScroll)

	c.DrawFrame(c, base, ColorScrollBase)
	thumb := base
	thumb.H = max(c.style.ThumbSize, base.H*b.H/cs.Y)
	thumb.Y += cnt.scroll.Y * (base.H - thumb.H) / maxScroll
	c.DrawFrame(c, thumb, ColorScrollThumb)

	if c.MouseOver(*b) {
		c.scrollTarget = cnt
	}
}

func (c *Context) scrollbarX(cnt *Container, b *Rect, cs Vec2) {
	maxScroll := cs.X - b.W
	if maxScroll <= 0 || b.W <= 0 {
		cnt.scroll.X = 0
		return
	}
	id := c.getStringID("!scrollbarx")

	base := *b
	base.Y = b.Y + b.H
	base.H = c.style.ScrollbarSize

	c.UpdateControl(id, base, 0)
	if c.focus == id && c.mouseDown == MouseLeft {
		cnt.scroll.X += c.mouseDelta.X * cs.X / base.W
	}
	cnt.scroll.X = clamp(cnt.scroll.X, 0, maxScroll)

	c.DrawFrame(c, base, ColorScrollBase)
	thumb := base
	thumb.W = max(c.style.ThumbSize, base.W*b.W/cs.X)
	thumb.X += cnt.scroll.X * (base.W - thumb.W) / maxScroll
	c.DrawFrame(c, thumb, ColorScrollThumb)

	if c.MouseOver(*b) {
		c.scrollTarget = cnt
	}
}

func (c *Context) scrollbars(cnt *Container, body *Rect) {
	sz := c.style.ScrollbarSize
	cs := cnt.contentSize
	cs.X += c.style.Padding * 2
	cs.Y += c.style.Padding * 2
	c.PushClipRect(*body)
	// make room for the bars
	if cs.Y > cnt.body.H {
		body.W -= sz
	}
	if cs.X > cnt.body.W {
		body.H -= sz
	}
	c.scrollbarY(cnt, body, cs)
	c.scrollbarX(cnt, body, cs)
	c.PopClipRect()
}

func (c *Context) pushContainerBody(cnt *Container, body Rect, opt Opt) {
	if opt&OptNoScroll == 0 {
		c.scrollbars(cnt, &body)
	}
	c.pushLayout(body.expand(-c.style.Padding), cnt.scroll)
	cnt.body = body
}

// ===== Root containers =====

func (c *Context) beginRootContainer(cnt *Container) {
	c.containerStack = append(c.containerStack, cnt)
	c.rootList = append(c.rootList, cnt)
	cnt.root = true
	cnt.cmds = cnt.cmds[:0]
	if cnt.rect.Contains(c.mousePos) &&
		(c.nextHoverRoot == nil || cnt.zindex > c.nextHoverRoot.zindex) {
		c.nextHoverRoot = cnt
	}
	// a root begun inside another root is not clipped by it
	c.clipStack = append(c.clipStack, unclipped)
}

func (c *Context) endRootContainer() {
	c.PopClipRect()
	c.popContainer()
}

// BeginWindowEx opens a window. It returns false when the window is closed,
// in which case EndWindow must not be called.
func (c *Context) BeginWindowEx(title string, rect Rect, opt Opt) bool {
	id := c.getStringID(title)
	cnt := c.getContainer(id, opt)
	if cnt == nil || !cnt.open {
		return false
	}
	c.idStack = append(c.idStack, id)

	if cnt.rect.W == 0 {
		cnt.rect = rect
	}
	c.beginRootContainer(cnt)
	rect = cnt.rect
	body := rect

	if opt&OptNoFrame == 0 {
		c.DrawFrame(c, rect, ColorWindowBG)
	}

	if opt&OptNoTitle == 0 {
		tr := rect
		tr.H = c.style.TitleHeight
		c.DrawFrame(c, tr, ColorTitleBG)

		titleID := c.getStringID("!title")
		c.UpdateControl(titleID, tr, opt)
		c.DrawControlText(title, tr, ColorTitleText, opt)
		if titleID == c.focus && c.mouseDown == MouseLeft {
			cnt.rect.X += c.mouseDelta.X
			cnt.rect.Y += c.mouseDelta.Y
		}
		body.Y += tr.H
		body.H -= tr.H

		if opt&OptNoClose == 0 {
			closeID := c.getStringID("!close")
			r := Rect{tr.X + tr.W - tr.H, tr.Y, tr.H, tr.H}
			c.DrawIcon(IconClose, r, c.style.Color(ColorTitleText))
			c.UpdateControl(closeID, r, opt)
			if c.mousePressed == MouseLeft && closeID == c.focus {
				cnt.open = false
			}
		}
	}

	c.pushContainerBody(cnt, body, opt)

	if opt&OptNoResize == 0 {
		sz := c.style.TitleHeight
		resizeID := c.getStringID("!resize")
		r := Rect{rect.X + rect.W - sz, rect.Y + rect.H - sz, sz, sz}
		c.UpdateControl(resizeID, r, opt)
		if resizeID == c.focus && c.mouseDown == MouseLeft {
			cnt.rect.W = max(96, cnt.rect.W+c.mouseDelta.X)
			cnt.rect.H = max(64, cnt.rect.H+c.mouseDelta.Y)
		}
	}

	if opt&OptAutoSize != 0 {
		r := c.layout().body
		cnt.rect.W = cnt.contentSize.X + (cnt.rect.W - r.W)
		cnt.rect.H = cnt.contentSize.Y + (cnt.rect.H - r.H)
	}

	// popups close on a click anywhere else
	if opt&OptPopup != 0 && c.mousePressed != 0 && c.hoverRoot != cnt {
		cnt.open = false
	}

	c.PushClipRect(cnt.body)
	return true
}

func (c *Context) BeginWindow(title string, rect Rect) bool {
	return c.BeginWindowEx(title, rect, 0)
}

func (c *Context) EndWindow() {
	c.PopClipRect()
	c.endRootContainer()
}

// OpenPopup opens the named popup at the mouse position.
func (c *Context) OpenPopup(name string) {
	cnt := c.GetContainer(name)
	c.hoverRoot = cnt
	c.nextHoverRoot = cnt
	cnt.rect = Rect{c.mousePos.X, c.mousePos.Y, 1, 1}
	cnt.open = true
	c.BringToFront(cnt)
}

func (c *Context) BeginPopup(name string) bool {
	opt := OptPopup | OptAutoSize | OptNoResize | OptNoScroll | OptNoTitle | OptClosed
	return c.BeginWindowEx(name, Rect{}, opt)
}

func (c *Context) EndPopup() { c.EndWindow() }

// ===== Panels =====

func (c *Context) BeginPanelEx(name string, opt Opt) {
	c.PushID(name)
	cnt := c.getContainer(c.lastID, opt)
	cnt.rect = c.LayoutNext()
	if opt&OptNoFrame == 0 {
		c.DrawFrame(c, cnt.rect, ColorPanelBG)
	}
	c.containerStack = append(c.containerStack, cnt)
	c.pushContainerBody(cnt, cnt.rect, opt)
	c.PushClipRect(cnt.body)
}

func (c *Context) BeginPanel(name string) { c.BeginPanelEx(name, 0) }

func (c *Context) EndPanel() {
	c.PopClipRect()
	c.popContainer()
}

func clamp(v, lo, hi int) int { return min(hi, max(lo, v)) }
