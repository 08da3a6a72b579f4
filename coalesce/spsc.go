package coalesce

import "sync/atomic"

// spscRing is the single-producer/single-consumer fast path for
// InputEventQueue, selected when a view is created with
// INPUT_SINGLE_PRODUCER. The producer advances tail and keeps cachedHead,
// a stale copy of the consumer's head; the consumer advances head and
// keeps cachedTail, a stale copy of the producer's tail — each on its own
// field group so producer and consumer writes never false-share — so the
// common case never has to cross-core load the other side's index.
//
// Grounded on the cached-head/tail SPSC ring shape used for per-worker
// queues elsewhere in the retrieval pack; adapted here to a fixed
// InputEvent payload with a TryPush/pop API matching InputEventQueue.
type spscRing struct {
	tail       atomic.Uint64
	cachedHead uint64
	_          [40]byte

	head       atomic.Uint64
	cachedTail uint64
	_          [40]byte

	buf  []InputEvent
	mask uint64
}

func newSPSCRing(capacity int) *spscRing {
	size := uint64(1)
	for size < uint64(capacity) {
		size <<= 1
	}
	return &spscRing{
		buf:  make([]InputEvent, size),
		mask: size - 1,
	}
}

// tryPush is producer-only.
func (r *spscRing) tryPush(ev InputEvent) bool {
	tail := r.tail.Load()
	if tail-r.cachedHead > r.mask {
		r.cachedHead = r.head.Load()
		if tail-r.cachedHead > r.mask {
			return false
		}
	}
	r.buf[tail&r.mask] = ev
	r.tail.Store(tail + 1)
	return true
}

// pop is consumer-only.
func (r *spscRing) pop() (InputEvent, bool) {
	var zero InputEvent
	head := r.head.Load()
	if head == r.cachedTail {
		r.cachedTail = r.tail.Load()
		if head == r.cachedTail {
			return zero, false
		}
	}
	ev := r.buf[head&r.mask]
	r.buf[head&r.mask] = zero
	r.head.Store(head + 1)
	return ev, true
}
