package main

import (
	"fmt"
	"strings"

	"github.com/hubastard/mucanvas/engine/colors"
	"github.com/hubastard/mucanvas/engine/core"
	"github.com/hubastard/mucanvas/engine/memory"
	"github.com/hubastard/mucanvas/engine/ui"
)

const lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing " +
	"elit. Maecenas lacinia, sem eu lacinia molestie, mi risus faucibus " +
	"ipsum, eu varius magna felis a nulla."

const logCapacity = 128

var styleLabels = [ui.ColorMax]string{
	"text:", "border:", "windowbg:", "titlebg:", "titletext:", "panelbg:",
	"button:", "buttonhover:", "buttonfocus:",
	"base:", "basehover:", "basefocus:",
	"scrollbase:", "scrollthumb:",
}

// Demo is the sample application: a widget showcase, a log with an input
// line, a style editor and a counter.
type Demo struct {
	bg     *memory.Lazy[[]memory.F32]
	checks *memory.Lazy[[]memory.I32]
	input  *memory.Lazy[memory.Text]
	byteUI *memory.Lazy[*memory.ByteSlider]

	log        strings.Builder
	logUpdated bool
	count      int

	// optional frame statistics window
	stats *statsWindow

	err error
}

func NewDemo() *Demo {
	return &Demo{
		bg: memory.NewLazy(
			func(r *memory.Region) ([]memory.F32, error) { return r.F32s(3) },
			func(v []memory.F32) {
				v[0].Set(90)
				v[1].Set(95)
				v[2].Set(100)
			},
		),
		checks: memory.NewLazy(
			func(r *memory.Region) ([]memory.I32, error) { return r.I32s(3) },
			func(v []memory.I32) {
				v[0].SetBool(true)
				v[2].SetBool(true)
			},
		),
		input: memory.NewLazy(
			func(r *memory.Region) (memory.Text, error) { return r.Text(logCapacity) },
			nil,
		),
		byteUI: memory.NewLazy(memory.NewByteSlider, nil),
	}
}

// Err returns the first allocation failure. Windows whose state could not
// be allocated are skipped.
func (d *Demo) Err() error { return d.err }

func (d *Demo) Log() string { return d.log.String() }

func (d *Demo) writeLog(s string) {
	if d.log.Len() != 0 {
		d.log.WriteByte('\n')
	}
	d.log.WriteString(s)
	d.logUpdated = true
}

func (d *Demo) fail(err error) {
	if d.err == nil {
		d.err = err
		core.Logger().Error("sandbox: allocation failed", "err", err)
	}
}

func (d *Demo) BuildUI(ctx *ui.Context) {
	d.demoWindow(ctx)
	d.logWindow(ctx)
	d.styleWindow(ctx)
	d.testWindow(ctx)
	if d.stats != nil {
		d.stats.build(ctx)
	}
}

func (d *Demo) Background() colors.Color {
	if !d.bg.Allocated() {
		return colors.Color{R: 90, G: 95, B: 100, A: 255}
	}
	bg, _ := d.bg.Get(nil)
	return colors.Color{R: memory.Narrow(bg[0].Get()), G: memory.Narrow(bg[1].Get()), B: memory.Narrow(bg[2].Get()), A: 255}
}

func (d *Demo) demoWindow(ctx *ui.Context) {
	if !ctx.BeginWindow("Demo Window", ui.Rect{X: 40, Y: 40, W: 300, H: 450}) {
		return
	}
	win := ctx.CurrentContainer()
	r := win.Rect()
	r.W = max(r.W, 240)
	r.H = max(r.H, 300)
	win.SetRect(r)

	if ctx.Header("Window Info") {
		r := ctx.CurrentContainer().Rect()
		ctx.LayoutRow(0, 54, -1)
		ctx.Label("Position:")
		ctx.Label(fmt.Sprintf("%d, %d", r.X, r.Y))
		ctx.Label("Size:")
		ctx.Label(fmt.Sprintf("%d, %d", r.W, r.H))
	}

	if ctx.HeaderEx("Test Buttons", ui.OptExpanded) {
		ctx.LayoutRow(0, 86, -110, -1)
		ctx.Label("Test buttons 1:")
		if ctx.Button("Button 1") {
			d.writeLog("Pressed button 1")
		}
		if ctx.Button("Button 2") {
			d.writeLog("Pressed button 2")
		}
		ctx.Label("Test buttons 2:")
		if ctx.Button("Button 3") {
			d.writeLog("Pressed button 3")
		}
		if ctx.Button("Popup") {
			ctx.OpenPopup("Test Popup")
		}
		if ctx.BeginPopup("Test Popup") {
			ctx.Button("Hello")
			ctx.Button("World")
			ctx.EndPopup()
		}
	}

	if ctx.HeaderEx("Tree and Text", ui.OptExpanded) {
		ctx.LayoutRow(0, 140, -1)
		ctx.LayoutBeginColumn()
		d.tree(ctx)
		ctx.LayoutEndColumn()

		ctx.LayoutBeginColumn()
		ctx.LayoutRow(0, -1)
		ctx.Text(lorem)
		ctx.LayoutEndColumn()
	}

	if ctx.HeaderEx("Background Color", ui.OptExpanded) {
		d.backgroundSliders(ctx)
	}

	ctx.EndWindow()
}

func (d *Demo) tree(ctx *ui.Context) {
	if ctx.BeginTreenode("Test 1") {
		if ctx.BeginTreenode("Test 1a") {
			ctx.Label("Hello")
			ctx.Label("world")
			ctx.EndTreenode()
		}
		if ctx.BeginTreenode("Test 1b") {
			if ctx.Button("Button 1") {
				d.writeLog("Pressed button 1")
			}
			if ctx.Button("Button 2") {
				d.writeLog("Pressed button 2")
			}
			ctx.EndTreenode()
		}
		ctx.EndTreenode()
	}
	if ctx.BeginTreenode("Test 2") {
		ctx.LayoutRow(0, 54, 54)
		for i := 3; i <= 6; i++ {
			if ctx.Button(fmt.Sprintf("Button %d", i)) {
				d.writeLog(fmt.Sprintf("Pressed button %d", i))
			}
		}
		ctx.EndTreenode()
	}
	if ctx.BeginTreenode("Test 3") {
		checks, err := d.checks.Get(ctx.Region())
		if err != nil {
			d.fail(err)
		} else {
			ctx.Checkbox("Checkbox 1", checks[0])
			ctx.Checkbox("Checkbox 2", checks[1])
			ctx.Checkbox("Checkbox 3", checks[2])
		}
		ctx.EndTreenode()
	}
}

func (d *Demo) backgroundSliders(ctx *ui.Context) {
	bg, err := d.bg.Get(ctx.Region())
	if err != nil {
		d.fail(err)
		return
	}
	ctx.LayoutRow(74, -78, -1)
	ctx.LayoutBeginColumn()
	ctx.LayoutRow(0, 46, -1)
	ctx.Label("Red:")
	ctx.Slider(bg[0], 0, 255)
	ctx.Label("Green:")
	ctx.Slider(bg[1], 0, 255)
	ctx.Label("Blue:")
	ctx.Slider(bg[2], 0, 255)
	ctx.LayoutEndColumn()

	r := ctx.LayoutNext()
	c := d.Background()
	ctx.DrawRect(r, c)
	ctx.DrawControlText(c.Hex(), r, ui.ColorText, ui.OptAlignCenter)
}

func (d *Demo) logWindow(ctx *ui.Context) {
	if !ctx.BeginWindow("Log Window", ui.Rect{X: 350, Y: 40, W: 300, H: 200}) {
		return
	}
	ctx.LayoutRow(-25, -1)
	ctx.BeginPanel("Log Output")
	panel := ctx.CurrentContainer()
	ctx.LayoutRow(-1, -1)
	ctx.Text(d.log.String())
	ctx.EndPanel()
	if d.logUpdated {
		panel.SetScroll(ui.Vec2{X: panel.Scroll().X, Y: panel.ContentSize().Y})
		d.logUpdated = false
	}

	buf, err := d.input.Get(ctx.Region())
	if err != nil {
		d.fail(err)
		ctx.EndWindow()
		return
	}
	submitted := false
	ctx.LayoutRow(0, -70, -1)
	if ctx.Textbox(buf)&ui.ResSubmit != 0 {
		ctx.SetFocus(ctx.LastID())
		submitted = true
	}
	if ctx.Button("Submit") {
		submitted = true
	}
	if submitted && !buf.Empty() {
		d.writeLog(buf.String())
		buf.Clear()
	}
	ctx.EndWindow()
}

// byteSlider edits one style channel through the shared float scratch.
func (d *Demo) byteSlider(ctx *ui.Context, u memory.U8) ui.Res {
	bs, err := d.byteUI.Get(ctx.Region())
	if err != nil {
		d.fail(err)
		return 0
	}
	ctx.PushIDFor(u)
	bs.Load(u)
	res := ctx.SliderEx(bs.Scratch, 0, 255, 0, "%.0f", ui.OptAlignCenter)
	bs.Store(u)
	ctx.PopID()
	return res
}

func (d *Demo) styleWindow(ctx *ui.Context) {
	if !ctx.BeginWindow("Style Editor", ui.Rect{X: 350, Y: 250, W: 300, H: 240}) {
		return
	}
	sw := int(float64(ctx.CurrentContainer().Body().W) * 0.14)
	ctx.LayoutRow(0, 80, sw, sw, sw, sw, -1)
	for id := ui.ColorText; id < ui.ColorMax; id++ {
		ctx.Label(styleLabels[id])
		for ch := 0; ch < 4; ch++ {
			d.byteSlider(ctx, ctx.StyleChannel(id, ch))
		}
		ctx.DrawRect(ctx.LayoutNext(), ctx.StyleColor(id))
	}
	ctx.EndWindow()
}

func (d *Demo) testWindow(ctx *ui.Context) {
	if !ctx.BeginWindow("Test Window", ui.Rect{X: 670, Y: 40, W: 120, H: 80}) {
		return
	}
	if ctx.Button("count") {
		d.count++
	}
	ctx.Text(fmt.Sprintf("count: %d", d.count))
	ctx.EndWindow()
}
