package core

import (
	"image"

	"github.com/hubastard/mucanvas/engine/colors"
	"github.com/hubastard/mucanvas/engine/input"
	"github.com/hubastard/mucanvas/engine/ui"
)

// App is the application side of a frame.
type App interface {
	// BuildUI declares the frame's windows and controls. It is called
	// between Begin and End.
	BuildUI(ctx *ui.Context)
	// Background is the color the surface is cleared to before the
	// command list is drawn.
	Background() colors.Color
}

// Host is the platform side: a window or a headless stand-in.
type Host interface {
	// PollEvents hands every pending input event to handle.
	PollEvents(handle func(input.Event))
	ShouldClose() bool
	// Present shows a rendered frame.
	Present(img image.Image) error
}
