package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hubastard/mucanvas/engine/memory"
)

const (
	sliderFormat = "%.2f"
	numberFormat = "%.2f"
	realFormat   = "%.3g"
)

// ===== Control plumbing =====

func (c *Context) inHoverRoot() bool {
	for i := len(c.containerStack) - 1; i >= 0; i-- {
		cnt := c.containerStack[i]
		if cnt == c.hoverRoot {
			return true
		}
		// stop at the current root
		if cnt.root {
			break
		}
	}
	return false
}

// MouseOver reports whether the mouse is over r, inside the clip rect and
// within the topmost root container under the cursor.
func (c *Context) MouseOver(r Rect) bool {
	return r.Contains(c.mousePos) && c.ClipRect().Contains(c.mousePos) && c.inHoverRoot()
}

// DrawControlFrame draws the frame of control id, shifting colorID to its
// hover or focus variant.
func (c *Context) DrawControlFrame(id ID, r Rect, colorID ColorID, opt Opt) {
	if opt&OptNoFrame != 0 {
		return
	}
	switch id {
	case c.focus:
		colorID += 2
	case c.hover:
		colorID++
	}
	c.DrawFrame(c, r, colorID)
}

func (c *Context) DrawControlText(s string, r Rect, colorID ColorID, opt Opt) {
	tw := c.textWidth(s, -1)
	c.PushClipRect(r)
	var pos Vec2
	pos.Y = r.Y + (r.H-c.textHeight())/2
	switch {
	case opt&OptAlignCenter != 0:
		pos.X = r.X + (r.W-tw)/2
	case opt&OptAlignRight != 0:
		pos.X = r.X + r.W - tw - c.style.Padding
	default:
		pos.X = r.X + c.style.Padding
	}
	c.DrawText(s, pos, c.style.Color(colorID))
	c.PopClipRect()
}

// UpdateControl runs the hover and focus state machine for control id.
func (c *Context) UpdateControl(id ID, r Rect, opt Opt) {
	mouseOver := c.MouseOver(r)

	if c.focus == id {
		c.updatedFocus = true
	}
	if opt&OptNoInteract != 0 {
		return
	}
	if mouseOver && c.mouseDown == 0 {
		c.hover = id
	}

	if c.focus == id {
		if c.mousePressed != 0 && !mouseOver {
			c.SetFocus(0)
		}
		if c.mouseDown == 0 && opt&OptHoldFocus == 0 {
			c.SetFocus(0)
		}
	}

	if c.hover == id {
		if c.mousePressed != 0 {
			c.SetFocus(id)
		} else if !mouseOver {
			c.hover = 0
		}
	}
}

// ===== Text =====

// Text draws word-wrapped text filling the row width.
func (c *Context) Text(text string) {
	color := c.style.Color(ColorText)
	c.LayoutBeginColumn()
	c.layoutRow(1, []int{-1}, c.textHeight())
	p := 0
	for {
		r := c.LayoutNext()
		w := 0
		start, end := p, p
		for {
			word := p
			for p < len(text) && text[p] != ' ' && text[p] != '\n' {
				p++
			}
			w += c.textWidth(text[word:p], -1)
			if w > r.W && end != start {
				break
			}
			w += c.textWidth(text[p:], 1)
			end = p
			p++
			if end >= len(text) || text[end] == '\n' {
				break
			}
		}
		c.DrawText(text[start:end], Vec2{r.X, r.Y}, color)
		p = end + 1
		if end >= len(text) {
			break
		}
	}
	c.LayoutEndColumn()
}

func (c *Context) Label(text string) {
	c.DrawControlText(text, c.LayoutNext(), ColorText, 0)
}

// ===== Buttons =====

// ButtonEx draws a button with a label, an icon or both. It returns
// ResSubmit on the frame the left button is pressed on it.
func (c *Context) ButtonEx(label string, icon Icon, opt Opt) Res {
	var res Res
	var id ID
	if label != "" {
		id = c.getStringID(label)
	} else {
		id = c.GetID([]byte{byte(icon), byte(icon >> 8), byte(icon >> 16), byte(icon >> 24)})
	}
	r := c.LayoutNext()
	c.UpdateControl(id, r, opt)
	if c.mousePressed == MouseLeft && c.focus == id {
		res |= ResSubmit
	}
	c.DrawControlFrame(id, r, ColorButton, opt)
	if label != "" {
		c.DrawControlText(label, r, ColorText, opt)
	}
	if icon != 0 {
		c.DrawIcon(icon, r, c.style.Color(ColorText))
	}
	return res
}

func (c *Context) Button(label string) bool {
	return c.ButtonEx(label, 0, OptAlignCenter)&ResSubmit != 0
}

// Checkbox toggles state when clicked and returns ResChange on that frame.
func (c *Context) Checkbox(label string, state memory.I32) Res {
	var res Res
	id := c.getHandleID(state)
	r := c.LayoutNext()
	box := Rect{r.X, r.Y, r.H, r.H}
	c.UpdateControl(id, r, 0)
	if c.mousePressed == MouseLeft && c.focus == id {
		res |= ResChange
		state.SetBool(!state.Bool())
	}
	c.DrawControlFrame(id, box, ColorBase, 0)
	if state.Bool() {
		c.DrawIcon(IconCheck, box, c.style.Color(ColorText))
	}
	r = Rect{r.X + box.W, r.Y, r.W - box.W, r.H}
	c.DrawControlText(label, r, ColorText, 0)
	return res
}

// ===== Text input =====

// TextboxRaw edits buf in place while focused. Typed text is appended up to
// the buffer capacity, backspace removes one UTF-8 sequence and return
// submits and drops focus.
func (c *Context) TextboxRaw(buf memory.Text, id ID, r Rect, opt Opt) Res {
	var res Res
	c.UpdateControl(id, r, opt|OptHoldFocus)

	if c.focus == id {
		if len(c.inputText) > 0 && buf.Append(string(c.inputText)) > 0 {
			res |= ResChange
		}
		if c.keyPressed&KeyBackspace != 0 && buf.Backspace() {
			res |= ResChange
		}
		if c.keyPressed&KeyReturn != 0 {
			c.SetFocus(0)
			res |= ResSubmit
		}
	}

	c.DrawControlFrame(id, r, ColorBase, opt)
	if c.focus == id {
		color := c.style.Color(ColorText)
		s := buf.String()
		textW := c.textWidth(s, -1)
		textH := c.textHeight()
		ofx := r.W - c.style.Padding - textW - 1
		textX := r.X + min(ofx, c.style.Padding)
		textY := r.Y + (r.H-textH)/2
		c.PushClipRect(r)
		c.DrawText(s, Vec2{textX, textY}, color)
		c.DrawRect(Rect{textX + textW, textY, 1, textH}, color)
		c.PopClipRect()
	} else {
		c.DrawControlText(buf.String(), r, ColorText, opt)
	}
	return res
}

func (c *Context) TextboxEx(buf memory.Text, opt Opt) Res {
	id := c.getHandleID(buf)
	r := c.LayoutNext()
	return c.TextboxRaw(buf, id, r, opt)
}

func (c *Context) Textbox(buf memory.Text) Res { return c.TextboxEx(buf, 0) }

// numberTextbox switches a numeric control into text editing on
// shift+click. It reports true while the edit is in progress.
func (c *Context) numberTextbox(value *float32, r Rect, id ID) bool {
	if c.mousePressed == MouseLeft && c.keyDown&KeyShift != 0 && c.hover == id {
		c.numberEdit = id
		c.numberEditBuf.SetString(fmt.Sprintf(realFormat, *value))
	}
	if c.numberEdit != id {
		return false
	}
	res := c.TextboxRaw(c.numberEditBuf, id, r, 0)
	if res&ResSubmit != 0 || c.focus != id {
		*value = parseReal(c.numberEditBuf.String())
		c.numberEdit = 0
		return false
	}
	return true
}

// parseReal reads a leading float the way strtod does, yielding 0 when
// there is none.
func parseReal(s string) float32 {
	s = strings.TrimSpace(s)
	for n := len(s); n > 0; n-- {
		if v, err := strconv.ParseFloat(s[:n], 32); err == nil {
			return float32(v)
		}
	}
	return 0
}

// ===== Numeric controls =====

// SliderEx edits value within [low, high]. A non-zero step snaps the value
// to multiples of step. format is a fmt verb for one float32.
func (c *Context) SliderEx(value memory.F32, low, high, step float32, format string, opt Opt) Res {
	var res Res
	last := value.Get()
	v := last
	id := c.getHandleID(value)
	base := c.LayoutNext()

	if c.numberTextbox(&v, base, id) {
		return res
	}

	c.UpdateControl(id, base, opt)

	if c.focus == id && (c.mouseDown|c.mousePressed) == MouseLeft {
		v = low + float32(c.mousePos.X-base.X)*(high-low)/float32(base.W)
		if step != 0 {
			v = float32(math.Floor(float64((v+step/2)/step))) * step
		}
	}
	v = min(high, max(low, v))
	value.Set(v)
	if last != v {
		res |= ResChange
	}

	c.DrawControlFrame(id, base, ColorBase, opt)
	w := c.style.ThumbSize
	x := int((v - low) * float32(base.W-w) / (high - low))
	thumb := Rect{base.X + x, base.Y, w, base.H}
	c.DrawControlFrame(id, thumb, ColorButton, opt)
	c.DrawControlText(fmt.Sprintf(format, v), base, ColorText, opt)
	return res
}

func (c *Context) Slider(value memory.F32, low, high float32) Res {
	return c.SliderEx(value, low, high, 0, sliderFormat, OptAlignCenter)
}

// NumberEx edits value by dragging horizontally, step per pixel.
func (c *Context) NumberEx(value memory.F32, step float32, format string, opt Opt) Res {
	var res Res
	id := c.getHandleID(value)
	base := c.LayoutNext()
	last := value.Get()
	v := last

	if c.numberTextbox(&v, base, id) {
		return res
	}
	value.Set(v)

	c.UpdateControl(id, base, opt)

	if c.focus == id && c.mouseDown == MouseLeft {
		v += float32(c.mouseDelta.X) * step
		value.Set(v)
	}
	if v != last {
		res |= ResChange
	}

	c.DrawControlFrame(id, base, ColorBase, opt)
	c.DrawControlText(fmt.Sprintf(format, v), base, ColorText, opt)
	return res
}

func (c *Context) Number(value memory.F32, step float32) Res {
	return c.NumberEx(value, step, numberFormat, OptAlignCenter)
}

// ===== Headers and tree nodes =====

func (c *Context) header(label string, treeNode bool, opt Opt) bool {
	id := c.getStringID(label)
	idx := poolGet(c.treeNodePool[:], id)
	c.layoutRow(1, []int{-1}, 0)

	active := idx >= 0
	expanded := active
	if opt&OptExpanded != 0 {
		expanded = !active
	}
	r := c.LayoutNext()
	c.UpdateControl(id, r, 0)

	if c.mousePressed == MouseLeft && c.focus == id {
		active = !active
	}

	if idx >= 0 {
		if active {
			c.poolUpdate(c.treeNodePool[:], idx)
		} else {
			c.treeNodePool[idx] = poolItem{}
		}
	} else if active {
		c.poolInit(c.treeNodePool[:], id)
	}

	if treeNode {
		if c.hover == id {
			c.DrawFrame(c, r, ColorButtonHover)
		}
	} else {
		c.DrawControlFrame(id, r, ColorButton, 0)
	}
	icon := IconCollapsed
	if expanded {
		icon = IconExpanded
	}
	c.DrawIcon(icon, Rect{r.X, r.Y, r.H, r.H}, c.style.Color(ColorText))
	r.X += r.H - c.style.Padding
	r.W -= r.H - c.style.Padding
	c.DrawControlText(label, r, ColorText, 0)

	return expanded
}

// HeaderEx draws a collapsible header and reports whether it is expanded.
// OptExpanded makes it start expanded.
func (c *Context) HeaderEx(label string, opt Opt) bool { return c.header(label, false, opt) }

func (c *Context) Header(label string) bool { return c.HeaderEx(label, 0) }

// BeginTreenodeEx is a header that indents its content. EndTreenode must be
// called only when it returns true.
func (c *Context) BeginTreenodeEx(label string, opt Opt) bool {
	if !c.header(label, true, opt) {
		return false
	}
	c.layout().indent += c.style.Indent
	c.idStack = append(c.idStack, c.lastID)
	return true
}

func (c *Context) BeginTreenode(label string) bool { return c.BeginTreenodeEx(label, 0) }

func (c *Context) EndTreenode() {
	c.layout().indent -= c.style.Indent
	c.PopID()
}
