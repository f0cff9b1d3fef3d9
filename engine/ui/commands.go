package ui

import "github.com/hubastard/mucanvas/engine/colors"

type CommandKind int

// CommandJump is reserved: Commands() returns the list already flattened
// into z-order, so it never contains jumps.
const (
	CommandJump CommandKind = 1 + iota
	CommandClip
	CommandRect
	CommandText
	CommandIcon
)

func (k CommandKind) String() string {
	switch k {
	case CommandJump:
		return "jump"
	case CommandClip:
		return "clip"
	case CommandRect:
		return "rect"
	case CommandText:
		return "text"
	case CommandIcon:
		return "icon"
	}
	return "unknown"
}

// Command is one draw instruction. Which fields are meaningful depends on
// Kind: Clip uses Rect; Rect uses Rect and Color; Text uses Pos, Text and
// Color; Icon uses Icon, Rect and Color.
type Command struct {
	Kind  CommandKind
	Rect  Rect
	Color colors.Color
	Pos   Vec2
	Text  string
	Icon  Icon
}

func (c *Context) pushCommand(cmd Command) {
	for i := len(c.containerStack) - 1; i >= 0; i-- {
		if cnt := c.containerStack[i]; cnt.root {
			cnt.cmds = append(cnt.cmds, cmd)
			return
		}
	}
	c.loose = append(c.loose, cmd)
}

// ===== Clipping =====

func (c *Context) PushClipRect(r Rect) {
	c.clipStack = append(c.clipStack, r.intersect(c.ClipRect()))
}

func (c *Context) PopClipRect() {
	c.clipStack = c.clipStack[:len(c.clipStack)-1]
}

// ClipRect returns the innermost clip rect, or the unclipped rect when the
// stack is empty.
func (c *Context) ClipRect() Rect {
	if len(c.clipStack) == 0 {
		return unclipped
	}
	return c.clipStack[len(c.clipStack)-1]
}

// CheckClip reports how r relates to the current clip rect: 0 when fully
// visible, ClipPart when partially visible and ClipAll when hidden.
func (c *Context) CheckClip(r Rect) Clip {
	cr := c.ClipRect()
	if r.X > cr.X+cr.W || r.X+r.W < cr.X || r.Y > cr.Y+cr.H || r.Y+r.H < cr.Y {
		return ClipAll
	}
	if r.X >= cr.X && r.X+r.W <= cr.X+cr.W && r.Y >= cr.Y && r.Y+r.H <= cr.Y+cr.H {
		return 0
	}
	return ClipPart
}

// SetClip emits a clip command. It replaces the active clip of the
// renderer; it does not touch the clip stack.
func (c *Context) SetClip(r Rect) {
	c.pushCommand(Command{Kind: CommandClip, Rect: r})
}

// ===== Drawing =====

// DrawRect emits r cut to the clip rect. Nothing is emitted when the
// visible part is empty.
func (c *Context) DrawRect(r Rect, color colors.Color) {
	r = r.intersect(c.ClipRect())
	if r.W > 0 && r.H > 0 {
		c.pushCommand(Command{Kind: CommandRect, Rect: r, Color: color})
	}
}

// DrawBox outlines r with one pixel lines.
func (c *Context) DrawBox(r Rect, color colors.Color) {
	c.DrawRect(Rect{r.X + 1, r.Y, r.W - 2, 1}, color)
	c.DrawRect(Rect{r.X + 1, r.Y + r.H - 1, r.W - 2, 1}, color)
	c.DrawRect(Rect{r.X, r.Y, 1, r.H}, color)
	c.DrawRect(Rect{r.X + r.W - 1, r.Y, 1, r.H}, color)
}

func (c *Context) DrawText(s string, pos Vec2, color colors.Color) {
	r := Rect{pos.X, pos.Y, c.textWidth(s, -1), c.textHeight()}
	clipped := c.CheckClip(r)
	if clipped == ClipAll {
		return
	}
	if clipped == ClipPart {
		c.SetClip(c.ClipRect())
	}
	c.pushCommand(Command{Kind: CommandText, Text: s, Pos: pos, Color: color})
	if clipped != 0 {
		c.SetClip(unclipped)
	}
}

func (c *Context) DrawIcon(id Icon, r Rect, color colors.Color) {
	clipped := c.CheckClip(r)
	if clipped == ClipAll {
		return
	}
	if clipped == ClipPart {
		c.SetClip(c.ClipRect())
	}
	c.pushCommand(Command{Kind: CommandIcon, Icon: id, Rect: r, Color: color})
	if clipped != 0 {
		c.SetClip(unclipped)
	}
}
