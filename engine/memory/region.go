// Package memory is the engine's flat, byte-addressable state region.
//
// Widget scalars (slider values, checkbox flags, text buffers, style colors)
// live here instead of as Go values so that the engine can key widget
// identity off the slot a value occupies. Application code never sees raw
// offsets: the Region hands out typed handles, and every handle stays valid
// (and unique) for the lifetime of the Region.
//
// A Region is single-threaded, like the frame loop that owns it.
package memory

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	ErrOutOfMemory = errors.New("memory: region exhausted")
	ErrBadSize     = errors.New("memory: invalid allocation size")
)

// Kind is the element type stored at a slot.
type Kind uint8

const (
	KindU8 Kind = iota + 1
	KindI32
	KindF32
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindI32:
		return "i32"
	case KindF32:
		return "f32"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Size returns the element width in bytes.
func (k Kind) Size() int {
	switch k {
	case KindI32, KindF32:
		return 4
	}
	return 1
}

// Region is a bump allocator over a fixed byte buffer. Offsets are never
// reused, so a handle's identity cannot alias a later allocation.
type Region struct {
	buf  []byte
	next int
	// allocation count, surfaced for diagnostics
	blocks int
}

// NewRegion creates a region of the given capacity (bytes).
func NewRegion(capacity int) *Region {
	if capacity <= 0 {
		capacity = 4 * 1024
	}
	// offset 0 is kept unused so a zero handle never names a live slot
	return &Region{buf: make([]byte, capacity), next: 8}
}

func (r *Region) Cap() int    { return len(r.buf) }
func (r *Region) Used() int   { return r.next }
func (r *Region) Blocks() int { return r.blocks }

// alloc reserves size bytes aligned to align and zeroes them.
func (r *Region) alloc(size, align int) (int, error) {
	if size <= 0 || align <= 0 {
		return 0, fmt.Errorf("%w: size=%d align=%d", ErrBadSize, size, align)
	}
	off := (r.next + align - 1) / align * align
	if off+size > len(r.buf) {
		return 0, fmt.Errorf("%w: need %d bytes at %d, capacity %d", ErrOutOfMemory, size, off, len(r.buf))
	}
	clear(r.buf[off : off+size])
	r.next = off + size
	r.blocks++
	return off, nil
}

// F32s allocates n contiguous float32 slots.
func (r *Region) F32s(n int) ([]F32, error) {
	off, err := r.alloc(n*4, 4)
	if err != nil {
		return nil, err
	}
	out := make([]F32, n)
	for i := range out {
		out[i] = F32{cell{r: r, off: off + i*4}}
	}
	return out, nil
}

// I32s allocates n contiguous int32 slots.
func (r *Region) I32s(n int) ([]I32, error) {
	off, err := r.alloc(n*4, 4)
	if err != nil {
		return nil, err
	}
	out := make([]I32, n)
	for i := range out {
		out[i] = I32{cell{r: r, off: off + i*4}}
	}
	return out, nil
}

// U8s allocates n contiguous byte slots.
func (r *Region) U8s(n int) ([]U8, error) {
	off, err := r.alloc(n, 1)
	if err != nil {
		return nil, err
	}
	out := make([]U8, n)
	for i := range out {
		out[i] = U8{cell{r: r, off: off + i}}
	}
	return out, nil
}

// Text allocates a null-terminated text buffer holding at most capacity-1
// bytes of content.
func (r *Region) Text(capacity int) (Text, error) {
	if capacity < 1 {
		return Text{}, fmt.Errorf("%w: text capacity %d", ErrBadSize, capacity)
	}
	off, err := r.alloc(capacity, 1)
	if err != nil {
		return Text{}, err
	}
	return Text{cell: cell{r: r, off: off}, capacity: capacity}, nil
}

func (r *Region) loadU32(off int) uint32     { return binary.LittleEndian.Uint32(r.buf[off : off+4]) }
func (r *Region) storeU32(off int, v uint32) { binary.LittleEndian.PutUint32(r.buf[off:off+4], v) }

func (r *Region) loadF32(off int) float32     { return math.Float32frombits(r.loadU32(off)) }
func (r *Region) storeF32(off int, v float32) { r.storeU32(off, math.Float32bits(v)) }
