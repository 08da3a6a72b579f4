package engine

import (
	"sync/atomic"

	"github.com/gazed/servoview/lfq"
)

// threadWaker is the EventLoopWaker installed into the web engine,
// grounded on servo_thread.rs's ThreadWaker: a coalesced pending flag so
// a burst of wakes from the web engine's own internal threads unparks
// the engine thread at most once per idle→busy transition. Phase D reads
// and clears the same pending flag before deciding whether to park.
type threadWaker struct {
	parker  *lfq.Parker
	pending atomic.Bool
}

func newThreadWaker(parker *lfq.Parker) *threadWaker {
	return &threadWaker{parker: parker}
}

// Wake implements EventLoopWaker.
func (w *threadWaker) Wake() {
	if !w.pending.Swap(true) {
		w.parker.Unpark()
	}
}

// takeWakePending clears the flag and reports whether it was set,
// matching Phase D's wake_pending.swap(false) check.
func (w *threadWaker) takeWakePending() bool {
	return w.pending.Swap(false)
}
