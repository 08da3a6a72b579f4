package coalesce

import (
	"math"
	"sync/atomic"
)

// MouseMove is a latest-wins coalescer for pointer-move events: Set always
// overwrites whatever (x, y) was pending, and Take drains it at most once.
type MouseMove struct {
	pending atomic.Uint32
	packed  atomic.Uint64
}

func packF32x2(x, y float32) uint64 {
	return uint64(math.Float32bits(x))<<32 | uint64(math.Float32bits(y))
}

func unpackF32x2(v uint64) (x, y float32) {
	x = math.Float32frombits(uint32(v >> 32))
	y = math.Float32frombits(uint32(v))
	return
}

// Set stores the latest point and marks the coalescer pending. It returns
// true iff this call transitions pending from 0 to 1 — the first writer in
// a burst is the one responsible for signalling the engine thread.
func (m *MouseMove) Set(x, y float32) bool {
	m.packed.Store(packF32x2(x, y))
	return m.pending.Swap(1) == 0
}

// Take clears the pending flag and returns the latest point, or false if
// nothing was pending.
func (m *MouseMove) Take() (x, y float32, ok bool) {
	if m.pending.Swap(0) == 0 {
		return 0, 0, false
	}
	x, y = unpackF32x2(m.packed.Load())
	return x, y, true
}
