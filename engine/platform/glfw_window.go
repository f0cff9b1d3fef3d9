// Package platform hosts the UI in a desktop window.
package platform

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/mucanvas/engine/core"
	glbackend "github.com/hubastard/mucanvas/engine/gfx/gl"
	"github.com/hubastard/mucanvas/engine/input"
)

// GLFWWindow implements core.Host. Input arrives through GLFW callbacks,
// is translated into DOM-shaped events and queued until PollEvents.
type GLFWWindow struct {
	w         *glfw.Window
	presenter *glbackend.Presenter
	queue     []input.Event

	// surface size, cursor positions are mapped into it
	surfaceW, surfaceH int
	wheelScale         float64
}

// NewGLFWWindow opens the window described by cfg. It must be called on
// the main thread, locked with runtime.LockOSThread.
func NewGLFWWindow(cfg core.Config) (*GLFWWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("platform: glfw init: %w", err)
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("platform: create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("platform: gl init: %w", err)
	}
	core.Logger().Info("platform: window open", "gl", gl.GoStr(gl.GetString(gl.VERSION)))

	presenter, err := glbackend.NewPresenter()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}

	g := &GLFWWindow{
		w:          win,
		presenter:  presenter,
		surfaceW:   cfg.Window.Width,
		surfaceH:   cfg.Window.Height,
		wheelScale: cfg.Input.WheelScale,
	}

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		x, y = g.toSurface(x, y)
		g.emit(input.PointerMove{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := g.toSurface(g.w.GetCursorPos())
		btn := domButton(b)
		if action == glfw.Press {
			g.emit(input.PointerDown{X: x, Y: y, Button: btn})
		} else {
			g.emit(input.PointerUp{X: x, Y: y, Button: btn})
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		// GLFW reports +y for scrolling up; the DOM reports +y for down.
		g.emit(input.Wheel{DX: -xoff * g.wheelScale, DY: -yoff * g.wheelScale})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		name, ok := keyName(key)
		if !ok {
			return
		}
		if action == glfw.Release {
			g.emit(input.KeyUp{Key: name})
		} else {
			g.emit(input.KeyDown{Key: name})
		}
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		g.emit(input.KeyDown{Key: string(r)})
	})

	return g, nil
}

func (g *GLFWWindow) emit(ev input.Event) { g.queue = append(g.queue, ev) }

func (g *GLFWWindow) toSurface(x, y float64) (float64, float64) {
	ww, wh := g.w.GetSize()
	if ww <= 0 || wh <= 0 {
		return x, y
	}
	return x * float64(g.surfaceW) / float64(ww), y * float64(g.surfaceH) / float64(wh)
}

// core.Host impl
func (g *GLFWWindow) PollEvents(handle func(input.Event)) {
	glfw.PollEvents()
	for _, ev := range g.queue {
		handle(ev)
	}
	g.queue = g.queue[:0]
}

func (g *GLFWWindow) ShouldClose() bool { return g.w.ShouldClose() }

func (g *GLFWWindow) Present(img image.Image) error {
	fw, fh := g.w.GetFramebufferSize()
	if fw < 1 || fh < 1 {
		return nil
	}
	g.presenter.Present(img, fw, fh)
	g.w.SwapBuffers()
	return nil
}

func (g *GLFWWindow) SetTitle(t string) { g.w.SetTitle(t) }

// Destroy releases GL objects, the window and GLFW.
func (g *GLFWWindow) Destroy() {
	g.presenter.Shutdown()
	g.w.Destroy()
	glfw.Terminate()
}

func domButton(b glfw.MouseButton) int {
	switch b {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle
	case glfw.MouseButtonRight:
		return input.ButtonRight
	default:
		// DOM numbers the extra buttons from 3
		return int(b)
	}
}

// keyName maps the keys that produce no character event to DOM key names.
// Printable keys arrive through the char callback instead.
func keyName(k glfw.Key) (string, bool) {
	switch k {
	case glfw.KeyLeftShift, glfw.KeyRightShift:
		return "Shift", true
	case glfw.KeyLeftControl, glfw.KeyRightControl:
		return "Control", true
	case glfw.KeyLeftAlt, glfw.KeyRightAlt:
		return "Alt", true
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return "Enter", true
	case glfw.KeyBackspace:
		return "Backspace", true
	case glfw.KeyEscape:
		return "Escape", true
	case glfw.KeyTab:
		return "Tab", true
	}
	return "", false
}
