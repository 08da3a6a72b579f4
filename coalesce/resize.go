package coalesce

import "sync/atomic"

// Resize is a latest-wins coalescer for view resize requests, symmetric to
// MouseMove but packing two uint32s instead of two float32s.
type Resize struct {
	pending atomic.Uint32
	packed  atomic.Uint64
}

func packU32x2(w, h uint32) uint64 {
	return uint64(w)<<32 | uint64(h)
}

func unpackU32x2(v uint64) (w, h uint32) {
	return uint32(v >> 32), uint32(v)
}

// Set stores the latest size and marks the coalescer pending, returning
// true iff this call was the first to mark it (0 → 1 transition).
func (r *Resize) Set(width, height uint32) bool {
	r.packed.Store(packU32x2(width, height))
	return r.pending.Swap(1) == 0
}

// Take clears the pending flag and returns the latest size, or false if
// nothing was pending.
func (r *Resize) Take() (width, height uint32, ok bool) {
	if r.pending.Swap(0) == 0 {
		return 0, 0, false
	}
	width, height = unpackU32x2(r.packed.Load())
	return width, height, true
}
