package lfq

import (
	"errors"
	"sync/atomic"
)

// ErrFull is returned by BoundedRing.TryPush when the ring has no free slot.
var ErrFull = errors.New("lfq: ring full")

// ringSlot pairs a sequence counter with a value, the classic per-slot
// generation count that lets multiple producers race on CAS without a lock.
type ringSlot[T any] struct {
	seq   atomic.Uint64
	value T
}

// BoundedRing is a bounded lock-free multi-producer/single-consumer queue.
// It is FIFO; TryPush returns ErrFull instead of blocking so the caller
// decides the backpressure policy.
type BoundedRing[T any] struct {
	enqueuePos atomic.Uint64
	_          [56]byte // pad: separate enqueuePos and dequeuePos onto distinct cache lines
	dequeuePos atomic.Uint64
	_          [56]byte

	mask  uint64
	slots []ringSlot[T]
}

// NewBoundedRing creates a bounded MPSC ring with at least capacity slots,
// rounded up to the next power of two.
func NewBoundedRing[T any](capacity int) *BoundedRing[T] {
	if capacity < 1 {
		capacity = 1
	}
	capacity = nextPow2(capacity)

	slots := make([]ringSlot[T], capacity)
	for i := range slots {
		slots[i].seq.Store(uint64(i))
	}

	return &BoundedRing[T]{
		mask:  uint64(capacity - 1),
		slots: slots,
	}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// TryPush attempts to enqueue one value. It returns ErrFull if the ring is
// currently full; any number of goroutines may call TryPush concurrently.
func (r *BoundedRing[T]) TryPush(value T) error {
	pos := r.enqueuePos.Load()
	for {
		slot := &r.slots[pos&r.mask]
		seq := slot.seq.Load()
		dif := int64(seq) - int64(pos)

		switch {
		case dif == 0:
			if r.enqueuePos.CompareAndSwap(pos, pos+1) {
				slot.value = value
				slot.seq.Store(pos + 1)
				return nil
			}
			pos = r.enqueuePos.Load()
		case dif < 0:
			return ErrFull
		default:
			pos = r.enqueuePos.Load()
		}
	}
}

// Pop removes and returns the oldest queued value. Pop must only be called
// from a single consumer goroutine at a time.
func (r *BoundedRing[T]) Pop() (T, bool) {
	var zero T
	pos := r.dequeuePos.Load()
	slot := &r.slots[pos&r.mask]
	seq := slot.seq.Load()
	dif := int64(seq) - int64(pos+1)

	if dif != 0 {
		return zero, false
	}

	r.dequeuePos.Store(pos + 1)
	value := slot.value
	slot.value = zero
	slot.seq.Store(pos + uint64(len(r.slots)))
	return value, true
}
