package memory

import "bytes"

// cell is the (region, offset) pair behind every handle.
type cell struct {
	r   *Region
	off int
}

func (c cell) valid() bool { return c.r != nil }

// Identity is a stable key for the slot. It is the same every frame and is
// never shared by two allocations of one Region, which lets the engine seed
// widget IDs from it.
func (c cell) Identity() uint64 { return uint64(c.off) }

// Identifier is implemented by every handle type.
type Identifier interface {
	Identity() uint64
}

// F32 is a float32 slot.
type F32 struct{ cell }

func (h F32) Kind() Kind { return KindF32 }

func (h F32) Get() float32 {
	if !h.valid() {
		return 0
	}
	return h.r.loadF32(h.off)
}

func (h F32) Set(v float32) {
	if h.valid() {
		h.r.storeF32(h.off, v)
	}
}

// I32 is an int32 slot, used for boolean flags (0 / non-zero).
type I32 struct{ cell }

func (h I32) Kind() Kind { return KindI32 }

func (h I32) Get() int32 {
	if !h.valid() {
		return 0
	}
	return int32(h.r.loadU32(h.off))
}

func (h I32) Set(v int32) {
	if h.valid() {
		h.r.storeU32(h.off, uint32(v))
	}
}

func (h I32) Bool() bool { return h.Get() != 0 }

func (h I32) SetBool(v bool) {
	if v {
		h.Set(1)
		return
	}
	h.Set(0)
}

// U8 is a single byte slot.
type U8 struct{ cell }

func (h U8) Kind() Kind { return KindU8 }

func (h U8) Get() uint8 {
	if !h.valid() {
		return 0
	}
	return h.r.buf[h.off]
}

func (h U8) Set(v uint8) {
	if h.valid() {
		h.r.buf[h.off] = v
	}
}

// Text is a fixed-capacity, null-terminated UTF-8 buffer.
type Text struct {
	cell
	capacity int
}

func (h Text) Kind() Kind { return KindText }

// Cap is the buffer size in bytes, terminator included.
func (h Text) Cap() int { return h.capacity }

func (h Text) raw() []byte {
	if !h.valid() {
		return nil
	}
	return h.r.buf[h.off : h.off+h.capacity]
}

// Len is the content length in bytes (up to the terminator).
func (h Text) Len() int {
	b := h.raw()
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return i
	}
	// unreachable for buffers written through this type
	return len(b)
}

func (h Text) Empty() bool { return h.Len() == 0 }

// String decodes the content up to the terminator.
func (h Text) String() string {
	return string(h.raw()[:h.Len()])
}

// SetString overwrites the buffer from offset 0. Content beyond Cap()-1
// bytes is dropped.
func (h Text) SetString(s string) {
	b := h.raw()
	if b == nil {
		return
	}
	n := copy(b[:len(b)-1], s)
	b[n] = 0
}

// Append adds as much of s as fits and returns the number of bytes written.
func (h Text) Append(s string) int {
	b := h.raw()
	if b == nil {
		return 0
	}
	l := h.Len()
	n := copy(b[l:len(b)-1], s)
	b[l+n] = 0
	return n
}

// Backspace removes the last UTF-8 encoded rune. It reports whether
// anything was removed.
func (h Text) Backspace() bool {
	b := h.raw()
	l := h.Len()
	if l == 0 {
		return false
	}
	l--
	for l > 0 && b[l]&0xC0 == 0x80 {
		l--
	}
	b[l] = 0
	return true
}

func (h Text) Clear() {
	if b := h.raw(); b != nil {
		b[0] = 0
	}
}
