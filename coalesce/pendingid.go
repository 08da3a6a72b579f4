package coalesce

import (
	"sync/atomic"

	"github.com/gazed/servoview/lfq"
)

// PendingIDQueue is the engine-wide lock-free queue of dirtied view IDs: a
// view handle pushes its ID once per wake instead of the engine thread
// scanning every view on every tick. If the ring fills, Push sets an
// overflow flag instead of blocking; the engine thread's drain loop checks
// TakeOverflowed and falls back to a full scan of its view table for that
// tick, so no dirtied view is ever silently dropped.
type PendingIDQueue struct {
	ring       *lfq.BoundedRing[uint32]
	overflowed atomic.Bool
}

// NewPendingIDQueue creates a queue backed by a bounded ring of at least
// capacity slots.
func NewPendingIDQueue(capacity int) *PendingIDQueue {
	return &PendingIDQueue{ring: lfq.NewBoundedRing[uint32](capacity)}
}

// Push enqueues id, returning false and setting the overflow flag if the
// ring is currently full.
func (q *PendingIDQueue) Push(id uint32) bool {
	if err := q.ring.TryPush(id); err != nil {
		q.overflowed.Store(true)
		return false
	}
	return true
}

// Pop removes and returns the oldest queued ID. Single consumer only.
func (q *PendingIDQueue) Pop() (uint32, bool) {
	return q.ring.Pop()
}

// TakeOverflowed returns and clears the overflow flag.
func (q *PendingIDQueue) TakeOverflowed() bool {
	return q.overflowed.Swap(false)
}
