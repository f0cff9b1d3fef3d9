//go:build profile

package profiler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpans(t *testing.T) {
	Init(64)
	endFrame := Start("frame")
	endBuild := Start("build")
	time.Sleep(time.Millisecond)
	endBuild()
	endFrame()

	totals := Totals()
	assert.GreaterOrEqual(t, totals["build"], time.Millisecond)
	assert.GreaterOrEqual(t, totals["frame"], totals["build"])

	path := filepath.Join(t.TempDir(), "capture.json")
	require.NoError(t, Dump(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc ssFile
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Profiles, 1)
	evs := doc.Profiles[0].Events
	require.Len(t, evs, 4)
	assert.Equal(t, []string{"O", "O", "C", "C"}, []string{evs[0].Type, evs[1].Type, evs[2].Type, evs[3].Type})
}

func TestSpeedscope_ClosesDanglingSpans(t *testing.T) {
	doc := speedscope([]event{
		{at: 0, span: 0, open: true},
		{at: 2000, span: 1},
		{at: 3000, span: 1, open: true},
	}, []string{"a", "b"})
	evs := doc.Profiles[0].Events
	require.Len(t, evs, 4)
	assert.Equal(t, ssEvent{Type: "C", At: 3, Frame: 1}, evs[2])
	assert.Equal(t, ssEvent{Type: "C", At: 3, Frame: 0}, evs[3])
}
