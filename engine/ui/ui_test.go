package ui

import (
	"testing"

	"github.com/hubastard/mucanvas/engine/colors"
	"github.com/hubastard/mucanvas/engine/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	charWidth  = 8
	lineHeight = 10
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	c, err := New(memory.NewRegion(4096))
	require.NoError(t, err)
	c.SetTextWidth(func(s string, n int) int {
		if n < 0 || n > len(s) {
			n = len(s)
		}
		return n * charWidth
	})
	c.SetTextHeight(func() int { return lineHeight })
	return c
}

// frame runs one frame with body declared inside a bare 200x200 window at
// the origin. The window body starts at (5,5) after padding.
func frame(c *Context, body func()) {
	c.Begin()
	if c.BeginWindowEx("Test", Rect{0, 0, 200, 200}, OptNoTitle|OptNoResize|OptNoClose) {
		body()
		c.EndWindow()
	}
	c.End()
}

// click moves the mouse to (x, y), lets hover settle, then presses and
// releases the left button, one frame per step.
func click(c *Context, x, y int, body func()) {
	c.InputMouseMove(x, y)
	frame(c, body)
	frame(c, body)
	c.InputMouseDown(x, y, MouseLeft)
	frame(c, body)
	c.InputMouseUp(x, y, MouseLeft)
	frame(c, body)
}

func TestBegin_PanicsWithoutCallbacks(t *testing.T) {
	c, err := New(memory.NewRegion(4096))
	require.NoError(t, err)
	assert.Panics(t, c.Begin)
}

func TestEnd_PanicsOnUnbalancedStacks(t *testing.T) {
	c := newTestContext(t)
	c.Begin()
	c.PushID("leak")
	assert.Panics(t, c.End)
}

func TestLayoutNext_DefaultCell(t *testing.T) {
	c := newTestContext(t)
	var cells []Rect
	frame(c, func() {
		cells = append(cells, c.LayoutNext(), c.LayoutNext())
		c.LayoutRow(30, 50, -1)
		cells = append(cells, c.LayoutNext(), c.LayoutNext())
	})
	assert.Equal(t, []Rect{
		{5, 5, 78, 20},
		{5, 29, 78, 20},
		{5, 53, 50, 30},
		{59, 53, 136, 30},
	}, cells)
}

func TestButton_SubmitsOncePerClick(t *testing.T) {
	c := newTestContext(t)
	submits := 0
	body := func() {
		if c.Button("OK") {
			submits++
		}
	}
	click(c, 20, 10, body)
	assert.Equal(t, 1, submits)

	// holding still does not repeat
	frame(c, body)
	frame(c, body)
	assert.Equal(t, 1, submits)

	click(c, 20, 10, body)
	assert.Equal(t, 2, submits)
}

func TestButton_OnlyClickedButtonFires(t *testing.T) {
	c := newTestContext(t)
	hits := map[string]int{}
	body := func() {
		c.LayoutRow(0, 50, 50, 50)
		for _, name := range []string{"A", "B", "C"} {
			if c.Button(name) {
				hits[name]++
			}
		}
	}
	// cells: A 5..55, B 59..109, C 113..163
	click(c, 80, 10, body)
	assert.Equal(t, map[string]int{"B": 1}, hits)

	click(c, 10, 10, body)
	assert.Equal(t, map[string]int{"A": 1, "B": 1}, hits)
}

func TestButton_IgnoresClicksOutside(t *testing.T) {
	c := newTestContext(t)
	submits := 0
	click(c, 150, 150, func() {
		if c.Button("OK") {
			submits++
		}
	})
	assert.Zero(t, submits)
}

func TestCheckbox_Toggles(t *testing.T) {
	c := newTestContext(t)
	is, err := c.Region().I32s(1)
	require.NoError(t, err)
	state := is[0]

	var changes int
	body := func() {
		if c.Checkbox("check", state)&ResChange != 0 {
			changes++
		}
	}
	click(c, 10, 10, body)
	assert.True(t, state.Bool())
	assert.Equal(t, 1, changes)

	click(c, 10, 10, body)
	assert.False(t, state.Bool())
	assert.Equal(t, 2, changes)
}

func TestSlider(t *testing.T) {
	tests := []struct {
		name  string
		step  float32
		x     int
		start float32
		want  float32
	}{
		{"continuous", 0, 55, 0, 50},
		{"snapped up", 10, 52, 0, 50},
		{"snapped down", 10, 49, 0, 40},
		{"clamped high", 0, 104, 0, 99},
		{"start value clamped", 0, 150, 300, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t)
			fs, err := c.Region().F32s(1)
			require.NoError(t, err)
			v := fs[0]
			v.Set(tt.start)
			click(c, tt.x, 10, func() {
				c.LayoutRow(0, 100)
				c.SliderEx(v, 0, 100, tt.step, "%.0f", OptAlignCenter)
			})
			assert.InDelta(t, tt.want, v.Get(), 1e-4)
		})
	}
}

func TestNumber_ShiftClickEditsAsText(t *testing.T) {
	c := newTestContext(t)
	fs, err := c.Region().F32s(1)
	require.NoError(t, err)
	v := fs[0]
	v.Set(1.5)
	body := func() { c.Number(v, 0.1) }

	c.InputKeyDown(KeyShift)
	click(c, 10, 10, body)
	c.InputKeyUp(KeyShift)
	assert.Equal(t, "1.5", c.numberEditBuf.String())

	c.InputKeyDown(KeyBackspace)
	frame(c, body)
	c.InputKeyDown(KeyBackspace)
	frame(c, body)
	c.InputText("42")
	frame(c, body)
	c.InputKeyDown(KeyReturn)
	frame(c, body)

	assert.Equal(t, float32(142), v.Get())
	assert.Zero(t, c.numberEdit)
}

func TestTextbox_TypeAndSubmit(t *testing.T) {
	c := newTestContext(t)
	buf, err := c.Region().Text(8)
	require.NoError(t, err)

	var res Res
	body := func() { res = c.Textbox(buf) }
	click(c, 10, 10, body)
	require.NotZero(t, c.Focus(), "textbox keeps focus after release")

	c.InputText("hi")
	frame(c, body)
	assert.Equal(t, "hi", buf.String())
	assert.Equal(t, ResChange, res)

	c.InputKeyDown(KeyBackspace)
	frame(c, body)
	assert.Equal(t, "h", buf.String())

	c.InputText("abcdefghij")
	frame(c, body)
	assert.Equal(t, "habcdef", buf.String(), "input is bounded by capacity")

	c.InputKeyDown(KeyReturn)
	frame(c, body)
	assert.Equal(t, ResSubmit, res)
	assert.Zero(t, c.Focus())

	c.InputText("x")
	frame(c, body)
	assert.Equal(t, "habcdef", buf.String(), "unfocused textbox ignores input")
}

func TestHeader_Expands(t *testing.T) {
	c := newTestContext(t)
	var plain, preset bool
	body := func() {
		plain = c.Header("Plain")
		preset = c.HeaderEx("Preset", OptExpanded)
	}
	frame(c, body)
	assert.False(t, plain)
	assert.True(t, preset)

	click(c, 20, 10, body)
	assert.True(t, plain)
	assert.True(t, preset)

	// the second header sits one row below
	click(c, 20, 34, body)
	assert.True(t, plain)
	assert.False(t, preset)
}

func TestTreenode_IndentsContent(t *testing.T) {
	c := newTestContext(t)
	var inner Rect
	body := func() {
		if c.BeginTreenodeEx("Node", OptExpanded) {
			c.Label("child")
			inner = c.LastRect()
			c.EndTreenode()
		}
	}
	frame(c, body)
	assert.Equal(t, 5+c.Style().Indent, inner.X)
}

func TestText_WrapsWords(t *testing.T) {
	c := newTestContext(t)
	frame(c, func() {
		c.LayoutRow(0, 50)
		c.Text("aa bb cc")
	})
	var lines []string
	var ys []int
	for _, cmd := range c.Commands() {
		if cmd.Kind == CommandText {
			lines = append(lines, cmd.Text)
			ys = append(ys, cmd.Pos.Y)
		}
	}
	assert.Equal(t, []string{"aa bb", "cc"}, lines)
	assert.Equal(t, []int{5, 5 + lineHeight + 4}, ys)
}

func TestCheckClip(t *testing.T) {
	c := newTestContext(t)
	c.PushClipRect(Rect{10, 10, 100, 100})
	defer c.PopClipRect()

	assert.Equal(t, Clip(0), c.CheckClip(Rect{20, 20, 10, 10}))
	assert.Equal(t, ClipPart, c.CheckClip(Rect{0, 0, 20, 20}))
	assert.Equal(t, ClipAll, c.CheckClip(Rect{200, 200, 10, 10}))
}

func TestDrawText_PartialClipIsBracketed(t *testing.T) {
	c := newTestContext(t)
	white := colors.Color{R: 255, G: 255, B: 255, A: 255}
	c.PushClipRect(Rect{0, 0, 50, 50})
	c.DrawText("hello world", Vec2{40, 0}, white)
	c.DrawText("gone", Vec2{100, 100}, white)
	c.DrawText("ok", Vec2{0, 0}, white)
	c.PopClipRect()

	require.Len(t, c.loose, 4)
	assert.Equal(t, Command{Kind: CommandClip, Rect: Rect{0, 0, 50, 50}}, c.loose[0])
	assert.Equal(t, CommandText, c.loose[1].Kind)
	assert.Equal(t, "hello world", c.loose[1].Text)
	assert.Equal(t, Command{Kind: CommandClip, Rect: unclipped}, c.loose[2])
	assert.Equal(t, "ok", c.loose[3].Text)
}

func TestDrawRect_CutToClip(t *testing.T) {
	c := newTestContext(t)
	red := colors.Color{R: 255, A: 255}
	c.PushClipRect(Rect{0, 0, 50, 50})
	c.DrawRect(Rect{40, 40, 20, 20}, red)
	c.DrawRect(Rect{60, 60, 20, 20}, red)
	c.PopClipRect()

	require.Len(t, c.loose, 1)
	assert.Equal(t, Rect{40, 40, 10, 10}, c.loose[0].Rect)
}

func firstRect(cmds []Command, r Rect) int {
	for i, cmd := range cmds {
		if cmd.Kind == CommandRect && cmd.Rect == r {
			return i
		}
	}
	return -1
}

func TestEnd_OrdersWindowsByZindex(t *testing.T) {
	c := newTestContext(t)
	a := Rect{0, 0, 100, 100}
	b := Rect{50, 50, 100, 100}
	run := func() {
		c.Begin()
		if c.BeginWindowEx("A", a, OptNoResize) {
			c.EndWindow()
		}
		if c.BeginWindowEx("B", b, OptNoResize) {
			c.EndWindow()
		}
		c.End()
	}

	run()
	require.Less(t, firstRect(c.Commands(), a), firstRect(c.Commands(), b))

	// clicking A's body raises it above B
	c.InputMouseMove(10, 60)
	run()
	c.InputMouseDown(10, 60, MouseLeft)
	run()
	c.InputMouseUp(10, 60, MouseLeft)
	run()
	assert.Greater(t, firstRect(c.Commands(), a), firstRect(c.Commands(), b))
	assert.Greater(t, c.GetContainer("A").Zindex(), c.GetContainer("B").Zindex())
}

func TestWindow_Close(t *testing.T) {
	c := newTestContext(t)
	open := false
	run := func() {
		c.Begin()
		open = c.BeginWindow("Closable", Rect{0, 0, 100, 100})
		if open {
			c.EndWindow()
		}
		c.End()
	}
	run()
	require.True(t, open)

	// close icon is the title-height square at the top right
	c.InputMouseMove(90, 10)
	run()
	run()
	c.InputMouseDown(90, 10, MouseLeft)
	run()
	c.InputMouseUp(90, 10, MouseLeft)
	run()
	assert.False(t, open)
	assert.False(t, c.GetContainer("Closable").Open())
}

func TestPopup_ClosesOnOutsideClick(t *testing.T) {
	c := newTestContext(t)
	var popupOpen bool
	body := func() {
		if c.Button("Open") {
			c.OpenPopup("Menu")
		}
		popupOpen = c.BeginPopup("Menu")
		if popupOpen {
			c.Label("item")
			c.EndPopup()
		}
	}
	frame(c, body)
	assert.False(t, popupOpen)

	click(c, 20, 10, body)
	assert.True(t, popupOpen)

	click(c, 180, 180, body)
	frame(c, body)
	assert.False(t, popupOpen)
}

func TestPanel_ScrollsToContent(t *testing.T) {
	c := newTestContext(t)
	var panel *Container
	body := func() {
		c.LayoutRow(60, -1)
		c.BeginPanel("Log")
		panel = c.CurrentContainer()
		for range 10 {
			c.Label("line")
		}
		c.EndPanel()
	}
	frame(c, body)
	require.Greater(t, panel.ContentSize().Y, panel.Body().H)

	panel.SetScroll(Vec2{0, panel.ContentSize().Y})
	frame(c, body)
	maxScroll := panel.ContentSize().Y + c.Style().Padding*2 - panel.Body().H
	assert.Equal(t, maxScroll, panel.Scroll().Y)
}

func TestIDs_ScopedByStack(t *testing.T) {
	c := newTestContext(t)
	plain := c.GetID([]byte("x"))
	c.PushID("scope")
	scoped := c.GetID([]byte("x"))
	c.PopID()
	assert.NotEqual(t, plain, scoped)
	assert.Equal(t, plain, c.GetID([]byte("x")))

	fs, err := c.Region().F32s(2)
	require.NoError(t, err)
	assert.NotEqual(t, c.getHandleID(fs[0]), c.getHandleID(fs[1]))
}

func TestStyle_ChannelsBackColors(t *testing.T) {
	c := newTestContext(t)
	c.StyleChannel(ColorButton, 0).Set(200)
	assert.Equal(t, uint8(200), c.StyleColor(ColorButton).R)
	assert.Equal(t, "button", ColorButton.String())
}
