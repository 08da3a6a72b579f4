package coalesce

import (
	"sync/atomic"

	"github.com/gazed/servoview/lfq"
)

// InputEventCapacity is the default capacity of a view's input-event
// queue (power-of-two per §3), used when NewInputEventQueue is given a
// capacity of 0. The `input_queue_capacity` key in servoview.yaml
// (engine.LoadConfigFile) overrides this default process-wide.
const InputEventCapacity = 256

// InputEvent is the POD record carried through the bounded queue: one ABI
// input event, translated by engine into the embedded web engine's own
// event types on drain.
type InputEvent struct {
	Kind uint32 // 1=MouseMove, 2=MouseButton, 3=Wheel, 4=Key

	X, Y      float32
	Modifiers uint32

	MouseButton uint32
	MouseAction uint32

	WheelDeltaX, WheelDeltaY, WheelDeltaZ float64
	WheelMode                             uint32

	KeyState     uint32
	KeyLocation  uint32
	Repeat       uint32
	IsComposing  uint32
	KeyCodepoint uint32
	GLFWKey      uint32
}

// Input event kind tags, matching the ABI layout in §6.
const (
	InputKindMouseMove   uint32 = 1
	InputKindMouseButton uint32 = 2
	InputKindWheel       uint32 = 3
	InputKindKey         uint32 = 4
)

// InputEventQueue is the bounded per-view queue of InputEvent records. It
// can run in MPMC mode (the default, built on lfq.BoundedRing) or a
// lighter-weight SPSC fast path selected at creation via
// NewInputEventQueue's singleProducer flag, matching the view-creation
// flag INPUT_SINGLE_PRODUCER in §6. The queue also carries a coalesced
// pending flag so a burst of pushes signals the engine thread at most once.
type InputEventQueue struct {
	mpmc *lfq.BoundedRing[InputEvent]
	spsc *spscRing

	pending atomic.Uint32
}

// NewInputEventQueue creates a queue of capacity entries (InputEventCapacity
// if capacity <= 0) in either MPMC (default) or SPSC fast-path mode.
func NewInputEventQueue(singleProducer bool, capacity int) *InputEventQueue {
	if capacity <= 0 {
		capacity = InputEventCapacity
	}
	q := &InputEventQueue{}
	if singleProducer {
		q.spsc = newSPSCRing(capacity)
	} else {
		q.mpmc = lfq.NewBoundedRing[InputEvent](capacity)
	}
	return q
}

// TryPush enqueues one event, returning false if the queue is full.
func (q *InputEventQueue) TryPush(ev InputEvent) bool {
	if q.spsc != nil {
		return q.spsc.tryPush(ev)
	}
	return q.mpmc.TryPush(ev) == nil
}

// TryPushSlice enqueues as many of events as fit, returning the count
// accepted. It stops at the first rejection rather than skipping ahead, so
// FIFO order within the slice is preserved among the accepted events.
func (q *InputEventQueue) TryPushSlice(events []InputEvent) int {
	accepted := 0
	for _, ev := range events {
		if !q.TryPush(ev) {
			break
		}
		accepted++
	}
	return accepted
}

// Pop removes and returns the oldest queued event. Single-consumer only.
func (q *InputEventQueue) Pop() (InputEvent, bool) {
	if q.spsc != nil {
		return q.spsc.pop()
	}
	return q.mpmc.Pop()
}

// MarkPending sets the coalesced pending flag, returning true iff this
// call transitions it from clear to set.
func (q *InputEventQueue) MarkPending() bool {
	return q.pending.Swap(1) == 0
}

// ClearPending clears the coalesced pending flag.
func (q *InputEventQueue) ClearPending() {
	q.pending.Store(0)
}

// IsPending reports whether the coalesced pending flag is currently set.
func (q *InputEventQueue) IsPending() bool {
	return q.pending.Load() != 0
}
