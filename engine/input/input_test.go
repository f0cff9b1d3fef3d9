package input

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/mucanvas/engine/memory"
	"github.com/hubastard/mucanvas/engine/ui"
)

type recorder struct{ calls []string }

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) InputMouseMove(x, y int)                     { r.add("move %d %d", x, y) }
func (r *recorder) InputMouseDown(x, y int, btn ui.MouseButton) { r.add("down %d %d %d", x, y, btn) }
func (r *recorder) InputMouseUp(x, y int, btn ui.MouseButton)   { r.add("up %d %d %d", x, y, btn) }
func (r *recorder) InputScroll(x, y int)                        { r.add("scroll %d %d", x, y) }
func (r *recorder) InputKeyDown(k ui.Key)                       { r.add("keydown %d", k) }
func (r *recorder) InputKeyUp(k ui.Key)                         { r.add("keyup %d", k) }
func (r *recorder) InputText(s string)                          { r.add("text %q", s) }

func TestDispatch(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		ok   bool
		want string
	}{
		{"move truncates", PointerMove{10.9, 20.2}, true, "move 10 20"},
		{"left down", PointerDown{1, 2, ButtonLeft}, true, fmt.Sprintf("down 1 2 %d", ui.MouseLeft)},
		{"middle down", PointerDown{1, 2, ButtonMiddle}, true, fmt.Sprintf("down 1 2 %d", ui.MouseMiddle)},
		{"right up", PointerUp{3, 4, ButtonRight}, true, fmt.Sprintf("up 3 4 %d", ui.MouseRight)},
		{"unknown button", PointerDown{1, 2, 3}, false, ""},
		{"back button up", PointerUp{1, 2, 4}, false, ""},
		{"wheel passes through", Wheel{0, -30}, true, "scroll 0 -30"},
		{"shift", KeyDown{"Shift"}, true, fmt.Sprintf("keydown %d", ui.KeyShift)},
		{"control", KeyDown{"Control"}, true, fmt.Sprintf("keydown %d", ui.KeyCtrl)},
		{"alt", KeyDown{"Alt"}, true, fmt.Sprintf("keydown %d", ui.KeyAlt)},
		{"enter", KeyDown{"Enter"}, true, fmt.Sprintf("keydown %d", ui.KeyReturn)},
		{"backspace", KeyDown{"Backspace"}, true, fmt.Sprintf("keydown %d", ui.KeyBackspace)},
		{"letter", KeyDown{"a"}, true, `text "a"`},
		{"space", KeyDown{" "}, true, `text " "`},
		{"accented", KeyDown{"é"}, true, `text "é"`},
		{"combining sequence", KeyDown{"e\u0301"}, true, fmt.Sprintf("text %q", "e\u0301")},
		{"named key", KeyDown{"ArrowLeft"}, false, ""},
		{"empty key", KeyDown{""}, false, ""},
		{"control key up", KeyUp{"Enter"}, true, fmt.Sprintf("keyup %d", ui.KeyReturn)},
		{"text key up", KeyUp{"a"}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			n := NewNormalizer(rec, nil)
			assert.Equal(t, tt.ok, n.Dispatch(tt.ev))
			if tt.want == "" {
				assert.Empty(t, rec.calls)
				return
			}
			assert.Equal(t, []string{tt.want}, rec.calls)
		})
	}
}

type otherEvent struct{}

func (otherEvent) isEvent() {}

func TestDispatch_LogsDrops(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	n := NewNormalizer(&recorder{}, log)

	assert.False(t, n.Dispatch(KeyDown{"F5"}))
	assert.False(t, n.Dispatch(otherEvent{}))
	assert.Contains(t, buf.String(), "key=F5")
	assert.Contains(t, buf.String(), "otherEvent")
}

func TestNormalizers_DoNotShareTables(t *testing.T) {
	a := NewNormalizer(&recorder{}, nil)
	b := NewNormalizer(&recorder{}, nil)
	a.keys["Tab"] = ui.KeyCtrl
	assert.True(t, a.Dispatch(KeyDown{"Tab"}))
	assert.False(t, b.Dispatch(KeyDown{"Tab"}))
}

func TestDispatch_DrivesContext(t *testing.T) {
	c, err := ui.New(memory.NewRegion(4096))
	require.NoError(t, err)
	n := NewNormalizer(c, nil)
	n.Dispatch(PointerMove{12.7, 30.1})
	assert.Equal(t, ui.Vec2{X: 12, Y: 30}, c.MousePos())
}
