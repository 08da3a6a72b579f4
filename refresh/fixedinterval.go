package refresh

import (
	"sync/atomic"
	"time"

	"github.com/gazed/servoview/lfq"
)

// FixedInterval is the per-view refresh driver used when a view is
// created with a non-zero target_fps. observe_next_frame calls coalesce:
// only the latest callback submitted before the next tick fires runs.
type FixedInterval struct {
	scheduler *Scheduler
	interval  time.Duration

	callback  lfq.CoalescedBox[Callback]
	scheduled atomic.Bool
}

// NewFixedInterval builds a driver that ticks every 1/targetFPS seconds
// against the shared scheduler.
func NewFixedInterval(scheduler *Scheduler, targetFPS float64) *FixedInterval {
	return &FixedInterval{
		scheduler: scheduler,
		interval:  time.Duration(float64(time.Second) / targetFPS),
	}
}

// ObserveNextFrame replaces the coalesced pending callback and, if no tick
// is already scheduled, arms one for the next interval.
func (f *FixedInterval) ObserveNextFrame(cb Callback) {
	f.setCallback(cb)
	if !f.scheduled.Swap(true) {
		f.scheduler.Schedule(f.interval, f.tick)
	}
}

func (f *FixedInterval) setCallback(cb Callback) {
	node := f.callback.PopFree()
	if node == nil {
		node = new(Callback)
	}
	*node = cb
	if old := f.callback.Replace(node); old != nil {
		*old = nil
		f.callback.PushFree(old)
	}
}

func (f *FixedInterval) takeCallback() Callback {
	node := f.callback.Take()
	if node == nil {
		return nil
	}
	cb := *node
	*node = nil
	f.callback.PushFree(node)
	return cb
}

// tick runs on the scheduler's worker goroutine. It clears scheduled
// before invoking the callback so a re-entrant ObserveNextFrame call made
// from inside cb can re-arm immediately instead of waiting for this tick
// to return.
func (f *FixedInterval) tick() {
	cb := f.takeCallback()
	f.scheduled.Store(false)

	if cb != nil {
		cb()
	}

	// A producer may have published a callback in the narrow window
	// between takeCallback and the Store above; re-arm for it here.
	if f.callback.IsPending() && !f.scheduled.Swap(true) {
		f.scheduler.Schedule(f.interval, f.tick)
	}
}
