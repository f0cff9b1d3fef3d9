// Package input turns host events in the browser's DOM shape into calls on
// the UI engine.
package input

import (
	"fmt"
	"log/slog"

	"github.com/rivo/uniseg"

	"github.com/hubastard/mucanvas/engine/ui"
)

// Event is one host input event.
type Event interface{ isEvent() }

// DOM button indices.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

// PointerMove carries surface-local coordinates.
type PointerMove struct{ X, Y float64 }

type PointerDown struct {
	X, Y   float64
	Button int
}

type PointerUp struct {
	X, Y   float64
	Button int
}

// Wheel deltas follow the DOM sign: positive DY scrolls content down.
type Wheel struct{ DX, DY float64 }

// KeyDown and KeyUp carry DOM key names ("Shift", "Enter", "a", "é").
type KeyDown struct{ Key string }

type KeyUp struct{ Key string }

func (PointerMove) isEvent() {}
func (PointerDown) isEvent() {}
func (PointerUp) isEvent()   {}
func (Wheel) isEvent()       {}
func (KeyDown) isEvent()     {}
func (KeyUp) isEvent()       {}

// Sink receives normalized input. *ui.Context implements it.
type Sink interface {
	InputMouseMove(x, y int)
	InputMouseDown(x, y int, btn ui.MouseButton)
	InputMouseUp(x, y int, btn ui.MouseButton)
	InputScroll(x, y int)
	InputKeyDown(k ui.Key)
	InputKeyUp(k ui.Key)
	InputText(s string)
}

var _ Sink = (*ui.Context)(nil)

// Normalizer maps events onto a Sink.
type Normalizer struct {
	sink    Sink
	log     *slog.Logger
	buttons map[int]ui.MouseButton
	keys    map[string]ui.Key
}

// NewNormalizer returns a normalizer feeding sink. A nil logger discards.
func NewNormalizer(sink Sink, log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Normalizer{
		sink: sink,
		log:  log,
		buttons: map[int]ui.MouseButton{
			ButtonLeft:   ui.MouseLeft,
			ButtonMiddle: ui.MouseMiddle,
			ButtonRight:  ui.MouseRight,
		},
		keys: map[string]ui.Key{
			"Shift":     ui.KeyShift,
			"Control":   ui.KeyCtrl,
			"Alt":       ui.KeyAlt,
			"Enter":     ui.KeyReturn,
			"Backspace": ui.KeyBackspace,
		},
	}
}

// Dispatch forwards ev and reports whether the sink saw it.
func (n *Normalizer) Dispatch(ev Event) bool {
	switch e := ev.(type) {
	case PointerMove:
		n.sink.InputMouseMove(int(e.X), int(e.Y))
	case PointerDown:
		btn, ok := n.button(e.Button)
		if !ok {
			return false
		}
		n.sink.InputMouseDown(int(e.X), int(e.Y), btn)
	case PointerUp:
		btn, ok := n.button(e.Button)
		if !ok {
			return false
		}
		n.sink.InputMouseUp(int(e.X), int(e.Y), btn)
	case Wheel:
		n.sink.InputScroll(int(e.DX), int(e.DY))
	case KeyDown:
		if k, ok := n.keys[e.Key]; ok {
			n.sink.InputKeyDown(k)
			return true
		}
		if !printable(e.Key) {
			n.log.Debug("input: ignored key", "key", e.Key)
			return false
		}
		n.sink.InputText(e.Key)
	case KeyUp:
		k, ok := n.keys[e.Key]
		if !ok {
			return false
		}
		n.sink.InputKeyUp(k)
	default:
		n.log.Debug("input: unknown event", "type", fmt.Sprintf("%T", ev))
		return false
	}
	return true
}

func (n *Normalizer) button(b int) (ui.MouseButton, bool) {
	btn, ok := n.buttons[b]
	if !ok {
		n.log.Debug("input: ignored pointer button", "button", b)
	}
	return btn, ok
}

// printable reports whether key names a single user-perceived character.
func printable(key string) bool {
	return key != "" && uniseg.GraphemeClusterCount(key) == 1 && key[0] >= ' ' && key[0] != 0x7f
}
