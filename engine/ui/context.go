// Package ui is an immediate-mode GUI engine. Each frame the application
// calls Begin, declares its windows and controls, and calls End; the engine
// answers with a flat list of draw commands.
//
// Scalar widget state (slider values, check flags, text buffers, style
// colors) lives in a memory.Region. Controls that edit such a value take
// its handle and derive their ID from the handle's slot.
package ui

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/hubastard/mucanvas/engine/colors"
	"github.com/hubastard/mucanvas/engine/memory"
)

const (
	containerPoolSize = 48
	treeNodePoolSize  = 48
	maxWidths         = 16
	numberEditSize    = 127

	hashInitial ID = 2166136261
)

// TextWidthFunc measures the first length bytes of s (-1 for all of it).
type TextWidthFunc func(s string, length int) int

// TextHeightFunc returns the line height of the font.
type TextHeightFunc func() int

// DrawFrameFunc draws the background of a control.
type DrawFrameFunc func(c *Context, r Rect, color ColorID)

type poolItem struct {
	id         ID
	lastUpdate int
}

type Context struct {
	textWidth  TextWidthFunc
	textHeight TextHeightFunc
	DrawFrame  DrawFrameFunc

	region *memory.Region
	style  *Style

	hover         ID
	focus         ID
	lastID        ID
	lastRect      Rect
	lastZindex    int
	updatedFocus  bool
	frame         int
	hoverRoot     *Container
	nextHoverRoot *Container
	scrollTarget  *Container
	numberEditBuf memory.Text
	numberEdit    ID

	// per-frame output
	commands []Command
	loose    []Command

	rootList       []*Container
	containerStack []*Container
	clipStack      []Rect
	idStack        []ID
	layoutStack    []layout

	treeNodePool  [treeNodePoolSize]poolItem
	containerPool [containerPoolSize]poolItem
	containers    [containerPoolSize]Container

	mousePos     Vec2
	lastMousePos Vec2
	mouseDelta   Vec2
	scrollDelta  Vec2
	mouseDown    MouseButton
	mousePressed MouseButton
	keyDown      Key
	keyPressed   Key
	inputText    []byte
}

// New creates a context whose style colors and internal buffers are
// allocated from r.
func New(r *memory.Region) (*Context, error) {
	style, err := newStyle(r)
	if err != nil {
		return nil, fmt.Errorf("ui: style colors: %w", err)
	}
	buf, err := r.Text(numberEditSize)
	if err != nil {
		return nil, fmt.Errorf("ui: number edit buffer: %w", err)
	}
	return &Context{
		DrawFrame:     drawFrame,
		region:        r,
		style:         style,
		numberEditBuf: buf,
	}, nil
}

func (c *Context) SetTextWidth(f TextWidthFunc)   { c.textWidth = f }
func (c *Context) SetTextHeight(f TextHeightFunc) { c.textHeight = f }

func (c *Context) Style() *Style { return c.style }

// StyleColor returns the current value of a style color.
func (c *Context) StyleColor(id ColorID) colors.Color { return c.style.Color(id) }

// StyleChannel returns the byte slot backing one channel of a style color.
func (c *Context) StyleChannel(id ColorID, ch int) memory.U8 { return c.style.Channel(id, ch) }

func (c *Context) Region() *memory.Region { return c.region }

func drawFrame(c *Context, r Rect, id ColorID) {
	c.DrawRect(r, c.style.Color(id))
	if id == ColorScrollBase || id == ColorScrollThumb || id == ColorTitleBG {
		return
	}
	if border := c.style.Color(ColorBorder); border.A != 0 {
		c.DrawBox(r.expand(1), border)
	}
}

// ===== Frame =====

func (c *Context) Begin() {
	if c.textWidth == nil || c.textHeight == nil {
		panic("ui: text measurement callbacks are not set")
	}
	c.commands = c.commands[:0]
	c.loose = c.loose[:0]
	c.rootList = c.rootList[:0]
	c.scrollTarget = nil
	c.hoverRoot = c.nextHoverRoot
	c.nextHoverRoot = nil
	c.mouseDelta = Vec2{c.mousePos.X - c.lastMousePos.X, c.mousePos.Y - c.lastMousePos.Y}
	c.frame++
}

func (c *Context) End() {
	switch {
	case len(c.containerStack) != 0:
		panic("ui: unbalanced container stack at End")
	case len(c.clipStack) != 0:
		panic("ui: unbalanced clip stack at End")
	case len(c.idStack) != 0:
		panic("ui: unbalanced id stack at End")
	case len(c.layoutStack) != 0:
		panic("ui: unbalanced layout stack at End")
	}

	if c.scrollTarget != nil {
		c.scrollTarget.scroll.X += c.scrollDelta.X
		c.scrollTarget.scroll.Y += c.scrollDelta.Y
	}

	if !c.updatedFocus {
		c.focus = 0
	}
	c.updatedFocus = false

	if c.mousePressed != 0 && c.nextHoverRoot != nil &&
		c.nextHoverRoot.zindex < c.lastZindex && c.nextHoverRoot.zindex >= 0 {
		c.BringToFront(c.nextHoverRoot)
	}

	c.keyPressed = 0
	c.inputText = c.inputText[:0]
	c.mousePressed = 0
	c.scrollDelta = Vec2{}
	c.lastMousePos = c.mousePos

	// root containers composite back to front
	slices.SortStableFunc(c.rootList, func(a, b *Container) int { return a.zindex - b.zindex })
	c.commands = append(c.commands, c.loose...)
	for _, cnt := range c.rootList {
		c.commands = append(c.commands, cnt.cmds...)
	}
}

// Commands returns the draw list built by the last Begin/End pair. The
// slice is reused by the next frame.
func (c *Context) Commands() []Command { return c.commands }

// Frame is the number of Begin calls so far.
func (c *Context) Frame() int { return c.frame }

// ===== IDs and focus =====

func (c *Context) SetFocus(id ID) {
	c.focus = id
	c.updatedFocus = true
}

func (c *Context) Focus() ID  { return c.focus }
func (c *Context) Hover() ID  { return c.hover }
func (c *Context) LastID() ID { return c.lastID }

// GetID hashes data (FNV-1a, 32 bit) on top of the innermost pushed ID.
func (c *Context) GetID(data []byte) ID {
	res := hashInitial
	if n := len(c.idStack); n > 0 {
		res = c.idStack[n-1]
	}
	for _, b := range data {
		res = (res ^ ID(b)) * 16777619
	}
	c.lastID = res
	return res
}

func (c *Context) getStringID(s string) ID { return c.GetID([]byte(s)) }

// getHandleID derives an ID from the memory slot behind a handle.
func (c *Context) getHandleID(h memory.Identifier) ID {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], h.Identity())
	return c.GetID(b[:])
}

func (c *Context) PushID(s string) {
	c.idStack = append(c.idStack, c.getStringID(s))
}

// PushIDFor scopes the following controls under the slot of h.
func (c *Context) PushIDFor(h memory.Identifier) {
	c.idStack = append(c.idStack, c.getHandleID(h))
}

func (c *Context) PopID() {
	c.idStack = c.idStack[:len(c.idStack)-1]
}

// ===== Input =====

func (c *Context) InputMouseMove(x, y int) { c.mousePos = Vec2{x, y} }

func (c *Context) InputMouseDown(x, y int, btn MouseButton) {
	c.InputMouseMove(x, y)
	c.mouseDown |= btn
	c.mousePressed |= btn
}

func (c *Context) InputMouseUp(x, y int, btn MouseButton) {
	c.InputMouseMove(x, y)
	c.mouseDown &^= btn
}

func (c *Context) InputScroll(x, y int) {
	c.scrollDelta.X += x
	c.scrollDelta.Y += y
}

func (c *Context) InputKeyDown(k Key) {
	c.keyPressed |= k
	c.keyDown |= k
}

func (c *Context) InputKeyUp(k Key) { c.keyDown &^= k }

func (c *Context) InputText(s string) { c.inputText = append(c.inputText, s...) }

func (c *Context) MousePos() Vec2 { return c.mousePos }

// ===== Pools =====

func (c *Context) poolInit(items []poolItem, id ID) int {
	n, f := -1, c.frame
	for i := range items {
		if items[i].lastUpdate < f {
			f = items[i].lastUpdate
			n = i
		}
	}
	if n < 0 {
		panic("ui: pool exhausted")
	}
	items[n].id = id
	c.poolUpdate(items, n)
	return n
}

func poolGet(items []poolItem, id ID) int {
	for i := range items {
		if items[i].id == id {
			return i
		}
	}
	return -1
}

func (c *Context) poolUpdate(items []poolItem, idx int) {
	items[idx].lastUpdate = c.frame
}
