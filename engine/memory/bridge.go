package memory

// Lazy is a slot the application allocates on first use and then reuses
// for the rest of the session. Keeping the handle (and so its offset)
// stable across frames is what keeps the engine's widget identity stable.
type Lazy[T any] struct {
	alloc func(*Region) (T, error)
	init  func(T)
	v     T
	ok    bool
}

// NewLazy wraps an allocator. init, if non-nil, runs once right after the
// allocation to seed initial values.
func NewLazy[T any](alloc func(*Region) (T, error), init func(T)) *Lazy[T] {
	return &Lazy[T]{alloc: alloc, init: init}
}

// Get returns the cached handle, allocating it from r the first time.
func (l *Lazy[T]) Get(r *Region) (T, error) {
	if l.ok {
		return l.v, nil
	}
	v, err := l.alloc(r)
	if err != nil {
		var zero T
		return zero, err
	}
	if l.init != nil {
		l.init(v)
	}
	l.v, l.ok = v, true
	return v, nil
}

// Allocated reports whether Get has succeeded at least once.
func (l *Lazy[T]) Allocated() bool { return l.ok }

// ByteSlider lets a float32 engine control edit a byte-sized value. The
// scratch slot is loaded from the byte before the control runs and stored
// back after it.
type ByteSlider struct {
	Scratch F32
}

func NewByteSlider(r *Region) (*ByteSlider, error) {
	s, err := r.F32s(1)
	if err != nil {
		return nil, err
	}
	return &ByteSlider{Scratch: s[0]}, nil
}

// Load copies the byte into the scratch float.
func (b *ByteSlider) Load(u U8) {
	b.Scratch.Set(float32(u.Get()))
}

// Store narrows the scratch float back into the byte, truncating toward
// zero and clamping to 0..255.
func (b *ByteSlider) Store(u U8) {
	u.Set(Narrow(b.Scratch.Get()))
}

// Narrow converts a float into the 0..255 domain the way the engine does:
// truncation, not rounding.
func Narrow(v float32) uint8 {
	switch {
	case v != v, v <= 0: // NaN or negative
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
