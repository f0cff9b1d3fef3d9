//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

const Enabled = true

// Init must be called once before the first span with the number of span
// events to keep. Older events are overwritten.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	ring.init(capacity)
}

// Start opens a span and returns the func that closes it.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := intern(name)
	now := time.Now().UnixNano()
	ring.push(event{at: now, span: id, open: true})
	return func() {
		end := max(time.Now().UnixNano(), now)
		ring.push(event{at: end, span: id})
	}
}

// Totals sums the closed duration of every span name still in the ring.
func Totals() map[string]time.Duration {
	evs := ring.snapshot()
	names := spanNames()
	out := make(map[string]time.Duration, len(names))
	var open []event
	for _, e := range evs {
		if e.open {
			open = append(open, e)
			continue
		}
		if len(open) == 0 || open[len(open)-1].span != e.span {
			continue
		}
		start := open[len(open)-1]
		open = open[:len(open)-1]
		out[names[e.span]] += time.Duration(e.at - start.at)
	}
	return out
}

// Dump writes the ring as a speedscope evented profile.
func Dump(path string) error {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return errors.New("profiler: no events to dump")
	}
	doc := speedscope(evs, spanNames())
	if len(doc.Profiles[0].Events) == 0 {
		return errors.New("profiler: no balanced spans")
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("profiler: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	return os.Rename(tmp, path)
}

// ===== event ring =====

type event struct {
	at   int64
	span int
	open bool
}

type eventRing struct {
	ready atomic.Bool
	size  uint64
	write atomic.Uint64
	evs   []event
}

func (r *eventRing) init(capacity int) {
	r.size = uint64(capacity)
	r.evs = make([]event, r.size)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%r.size] = e
}

// snapshot returns events in write order.
func (r *eventRing) snapshot() []event {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	var start uint64
	if n > r.size {
		start = n - r.size
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.size])
	}
	return out
}

var ring eventRing

// ===== span names =====

var (
	namesMu sync.Mutex
	names   []string
	index   = map[string]int{}
)

func intern(name string) int {
	namesMu.Lock()
	defer namesMu.Unlock()
	if id, ok := index[name]; ok {
		return id
	}
	id := len(names)
	index[name] = id
	names = append(names, name)
	return id
}

func spanNames() []string {
	namesMu.Lock()
	defer namesMu.Unlock()
	return append([]string(nil), names...)
}

// ===== speedscope =====

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`
	Frame int    `json:"frame"`
}

func speedscope(evs []event, spans []string) ssFile {
	frames := make([]ssFrame, len(spans))
	for i, n := range spans {
		frames[i] = ssFrame{Name: n}
	}

	base := evs[0].at
	var endUS int64
	lastUS := int64(-1)
	out := make([]ssEvent, 0, len(evs))
	stack := make([]int, 0, 16)

	for _, e := range evs {
		atUS := max((e.at-base)/1000, lastUS)
		if e.open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.span})
			stack = append(stack, e.span)
		} else {
			// closes whose open fell out of the ring
			if len(stack) == 0 || stack[len(stack)-1] != e.span {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.span})
		}
		lastUS = atUS
		endUS = max(endUS, atUS)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}

	return ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "frame phases",
			Unit:     "microseconds",
			EndValue: endUS,
			Events:   out,
		}},
		Exporter: "mucanvas",
		Name:     "mucanvas capture",
	}
}
