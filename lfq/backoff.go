// Package lfq provides the lock-free primitives the engine thread and its
// caller-facing handles use to exchange work without blocking each other:
// a bounded ring, an unbounded intrusive queue, a one-shot handoff, a
// latest-wins coalescing box, a spin-then-yield backoff, and a
// channel-based parker standing in for OS thread park/unpark.
package lfq

import (
	"runtime"
)

// spinLimit is the number of spin_loop-equivalent iterations performed
// before falling back to an OS-level yield.
const spinLimit = 64

// Backoff implements a minimal spin-then-yield strategy for lock-free hot
// paths: spin briefly to cover short producer/consumer gaps, then yield to
// avoid burning CPU once the spin budget is exceeded.
type Backoff struct {
	spins uint32
}

// Snooze performs one backoff step.
func (b *Backoff) Snooze() {
	if b.spins < spinLimit {
		runtime.Gosched()
	} else {
		yieldOS()
	}
	b.spins++
}

// Reset returns the backoff to its initial spin budget.
func (b *Backoff) Reset() {
	b.spins = 0
}
